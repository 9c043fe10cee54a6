package ui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	item     lipgloss.Style
	selected lipgloss.Style
	price    lipgloss.Style
	muted    lipgloss.Style
	badge    lipgloss.Style
	alert    lipgloss.Style
	option   lipgloss.Style
	chosen   lipgloss.Style
}

func defaultStyles() styles {
	primary := lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#60A5FA"}
	secondary := lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	success := lipgloss.AdaptiveColor{Light: "#10B981", Dark: "#34D399"}
	warning := lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#FBBF24"}

	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(primary).MarginBottom(1),
		item:     lipgloss.NewStyle().PaddingLeft(2),
		selected: lipgloss.NewStyle().PaddingLeft(0).Bold(true).Foreground(primary),
		price:    lipgloss.NewStyle().Foreground(success),
		muted:    lipgloss.NewStyle().Foreground(secondary),
		badge:    lipgloss.NewStyle().Bold(true).Foreground(warning),
		alert:    lipgloss.NewStyle().Bold(true).Foreground(warning).MarginTop(1),
		option:   lipgloss.NewStyle().Padding(0, 1),
		chosen:   lipgloss.NewStyle().Padding(0, 1).Bold(true).Reverse(true),
	}
}
