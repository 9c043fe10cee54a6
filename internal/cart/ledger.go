// Package cart keeps the session's shopping cart: line items keyed by
// product and chosen variant, quantities, and integer minor-unit totals.
// The cart lives only in memory and dies with the session.
package cart

import (
	"fmt"

	"github.com/angelmondragon/shopfront-miniapp/internal/catalog"
	"github.com/angelmondragon/shopfront-miniapp/pkg/enums"
	pkgerrors "github.com/angelmondragon/shopfront-miniapp/pkg/errors"
)

// NoSelection marks a variant dimension the product does not offer. It is
// also the wire value inside line keys, so order payloads stay compatible
// with the backend bot.
const NoSelection = "--"

// LineItem is the price-bearing description of one cart line.
type LineItem struct {
	ProductID int64  `json:"id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// Key builds the line key identifying this variant.
func (li LineItem) Key() string {
	return LineKey(li.ProductID, li.Size, li.Color)
}

// LineKey builds the composite "<product>_<size>_<color>" key.
func LineKey(productID int64, size, color string) string {
	return fmt.Sprintf("%d_%s_%s", productID, size, color)
}

// Entry is one ledger line. Qty is always >= 1; a line that would reach
// zero is deleted instead.
type Entry struct {
	Item LineItem `json:"item"`
	Qty  int      `json:"qty"`
}

// Notifier is the slice of host chrome the ledger touches when an item
// lands in the cart.
type Notifier interface {
	ShowAlert(text string)
	HapticNotify(kind enums.HapticKind)
}

// Ledger maps line keys to entries, preserving insertion order for
// display.
type Ledger struct {
	entries  map[string]Entry
	order    []string
	notifier Notifier
}

// NewLedger builds an empty ledger.
func NewLedger(notifier Notifier) (*Ledger, error) {
	if notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	return &Ledger{
		entries:  make(map[string]Entry),
		notifier: notifier,
	}, nil
}

// Add puts one unit of the product variant into the cart. Products that
// define sizes or colors require a matching selection; a missing one
// aborts with MISSING_SELECTION and leaves the ledger untouched.
func (l *Ledger) Add(p catalog.Product, size, color string) error {
	if p.HasSizes() && size == "" {
		return pkgerrors.New(pkgerrors.CodeMissingSelection, "please choose a size")
	}
	if p.HasColors() && color == "" {
		return pkgerrors.New(pkgerrors.CodeMissingSelection, "please choose a color")
	}

	if !p.HasSizes() {
		size = NoSelection
	}
	if !p.HasColors() {
		color = NoSelection
	}

	key := LineKey(p.ID, size, color)
	if entry, ok := l.entries[key]; ok {
		entry.Qty++
		l.entries[key] = entry
	} else {
		l.entries[key] = Entry{
			Item: LineItem{
				ProductID: p.ID,
				Name:      p.Name,
				Price:     p.Price,
				Size:      size,
				Color:     color,
			},
			Qty: 1,
		}
		l.order = append(l.order, key)
	}

	l.notifier.HapticNotify(enums.HapticSuccess)
	l.notifier.ShowAlert(p.Name + " added to cart!")
	return nil
}

// Remove deletes a line entirely. Removing an absent key is a no-op.
func (l *Ledger) Remove(key string) {
	if _, ok := l.entries[key]; !ok {
		return
	}
	delete(l.entries, key)
	for i, candidate := range l.order {
		if candidate == key {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

// TotalItemCount sums quantities across all lines.
func (l *Ledger) TotalItemCount() int {
	total := 0
	for _, entry := range l.entries {
		total += entry.Qty
	}
	return total
}

// TotalAmount sums price*qty in minor units. Integer math only; display
// conversion to major units happens at the rendering edge.
func (l *Ledger) TotalAmount() int64 {
	var total int64
	for _, entry := range l.entries {
		total += entry.Item.Price * int64(entry.Qty)
	}
	return total
}

// Entries returns the lines in insertion order.
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, 0, len(l.order))
	for _, key := range l.order {
		out = append(out, l.entries[key])
	}
	return out
}

// Snapshot returns the mapping sent to the backend on checkout.
func (l *Ledger) Snapshot() map[string]Entry {
	out := make(map[string]Entry, len(l.entries))
	for key, entry := range l.entries {
		out[key] = entry
	}
	return out
}

// Clear empties the ledger. Called only after a confirmed payment.
func (l *Ledger) Clear() {
	l.entries = make(map[string]Entry)
	l.order = nil
}
