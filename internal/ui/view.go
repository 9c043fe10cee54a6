package ui

import (
	"fmt"
	"strings"

	"github.com/angelmondragon/shopfront-miniapp/internal/session"
	"github.com/angelmondragon/shopfront-miniapp/pkg/enums"
	"github.com/angelmondragon/shopfront-miniapp/pkg/money"
)

// View renders the active screen from a fresh controller snapshot.
func (m *Model) View() string {
	if m.quitting {
		return "Thanks for shopping!\n"
	}

	view := m.ctrl.View()
	var b strings.Builder

	switch view.Screen {
	case enums.ScreenLoader:
		m.renderLoader(&b, view)
	case enums.ScreenCategories:
		m.renderCategories(&b, view)
	case enums.ScreenProducts:
		m.renderProducts(&b, view)
	case enums.ScreenProductDetails:
		m.renderProductDetails(&b, view)
	case enums.ScreenCart:
		m.renderCart(&b, view)
	}

	b.WriteString("\n")
	b.WriteString(m.styles.muted.Render(m.helpLine(view)))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) renderLoader(b *strings.Builder, view session.View) {
	b.WriteString(m.styles.title.Render("Shop"))
	b.WriteString("\n")
	if view.LoaderMessage != "" {
		b.WriteString(m.styles.alert.Render(view.LoaderMessage))
	} else {
		b.WriteString(m.styles.muted.Render("Loading the shop..."))
	}
	b.WriteString("\n")
}

func (m *Model) renderCategories(b *strings.Builder, view session.View) {
	b.WriteString(m.styles.title.Render("Categories" + m.cartBadge(view)))
	b.WriteString("\n")
	if len(view.Categories) == 0 {
		b.WriteString(m.styles.muted.Render("The shop is empty."))
		b.WriteString("\n")
		return
	}
	for i, category := range view.Categories {
		b.WriteString(m.renderLine(i, category.Name))
	}
}

func (m *Model) renderProducts(b *strings.Builder, view session.View) {
	b.WriteString(m.styles.title.Render(view.CategoryTitle + m.cartBadge(view)))
	b.WriteString("\n")
	if len(view.Products) == 0 {
		b.WriteString(m.styles.muted.Render("No products in this category yet."))
		b.WriteString("\n")
		return
	}
	for i, product := range view.Products {
		label := fmt.Sprintf("%s  %s", product.Name,
			m.styles.price.Render(money.Format(product.Price, view.Currency)))
		b.WriteString(m.renderLine(i, label))
	}
}

func (m *Model) renderProductDetails(b *strings.Builder, view session.View) {
	b.WriteString(m.styles.title.Render(view.Product.Name + m.cartBadge(view)))
	b.WriteString("\n")
	b.WriteString(m.styles.price.Render(money.Format(view.Product.Price, view.Currency)))
	b.WriteString("\n")
	if view.Product.Description != "" {
		b.WriteString(view.Product.Description)
		b.WriteString("\n")
	}
	if len(view.Product.Sizes) > 0 {
		b.WriteString("\nSize:  ")
		b.WriteString(m.renderOptions(view.Product.Sizes, view.SelectedSize))
		b.WriteString("\n")
	}
	if len(view.Product.Colors) > 0 {
		b.WriteString("Color: ")
		b.WriteString(m.renderOptions(view.Product.Colors, view.SelectedColor))
		b.WriteString("\n")
	}
}

func (m *Model) renderCart(b *strings.Builder, view session.View) {
	b.WriteString(m.styles.title.Render("Cart"))
	b.WriteString("\n")
	if len(view.CartEntries) == 0 {
		b.WriteString(m.styles.muted.Render("Your cart is empty."))
		b.WriteString("\n")
		return
	}
	for i, entry := range view.CartEntries {
		line := fmt.Sprintf("%s (%s, %s)  %d x %s",
			entry.Item.Name, entry.Item.Size, entry.Item.Color,
			entry.Qty, money.Major(entry.Item.Price))
		b.WriteString(m.renderLine(i, line))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.price.Render("Total: " + view.CartTotal))
	b.WriteString("\n")
}

func (m *Model) renderLine(index int, label string) string {
	if index == m.cursor {
		return m.styles.selected.Render("> "+label) + "\n"
	}
	return m.styles.item.Render(label) + "\n"
}

func (m *Model) renderOptions(options []string, selected string) string {
	parts := make([]string, 0, len(options))
	for _, option := range options {
		if option == selected {
			parts = append(parts, m.styles.chosen.Render(option))
		} else {
			parts = append(parts, m.styles.option.Render(option))
		}
	}
	return strings.Join(parts, " ")
}

func (m *Model) cartBadge(view session.View) string {
	if view.CartCount == 0 {
		return ""
	}
	return "  " + m.styles.badge.Render(fmt.Sprintf("[cart: %d]", view.CartCount))
}

func (m *Model) helpLine(view session.View) string {
	switch view.Screen {
	case enums.ScreenLoader:
		return "q quit"
	case enums.ScreenCategories:
		return "↑/↓ move · enter open · c cart · q quit"
	case enums.ScreenProducts:
		return "↑/↓ move · enter open · esc back · c cart · q quit"
	case enums.ScreenProductDetails:
		return "s size · o color · enter add to cart · esc back · c cart · q quit"
	case enums.ScreenCart:
		return "↑/↓ move · x remove · enter pay · esc back · q quit"
	}
	return ""
}
