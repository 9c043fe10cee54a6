package session

import (
	"github.com/angelmondragon/shopfront-miniapp/internal/cart"
	"github.com/angelmondragon/shopfront-miniapp/internal/catalog"
	"github.com/angelmondragon/shopfront-miniapp/pkg/enums"
	"github.com/angelmondragon/shopfront-miniapp/pkg/money"
)

// View is the render snapshot for the active screen. It is rebuilt from
// the catalog store and cart ledger on every call; nothing is cached
// between transitions.
type View struct {
	Screen        enums.Screen
	LoaderMessage string

	Categories []catalog.Category

	CategoryTitle string
	Products      []catalog.Product

	Product       catalog.Product
	ProductKnown  bool
	SelectedSize  string
	SelectedColor string

	CartEntries []cart.Entry
	CartTotal   string
	CartCount   int
	Currency    string

	BackVisible bool
}

// View assembles the current render snapshot.
func (c *Controller) View() View {
	v := View{
		Screen:        c.screen,
		LoaderMessage: c.loaderMessage,
		CartCount:     c.ledger.TotalItemCount(),
		Currency:      c.currency,
		BackVisible:   c.screen != enums.ScreenCategories && c.screen != enums.ScreenLoader,
	}

	switch c.screen {
	case enums.ScreenCategories:
		v.Categories = c.store.Categories()

	case enums.ScreenProducts:
		v.CategoryTitle = c.store.CategoryName(c.currentCategoryID)
		v.Products = c.store.ProductsByCategory(c.currentCategoryID)

	case enums.ScreenProductDetails:
		product, err := c.store.ProductByID(c.currentProductID)
		if err == nil {
			v.Product = product
			v.ProductKnown = true
		} else {
			// Defensive fallback: render a labeled placeholder rather
			// than failing the screen.
			v.Product = catalog.Product{Name: "Unknown product"}
		}
		v.SelectedSize = c.selectedSize
		v.SelectedColor = c.selectedColor

	case enums.ScreenCart:
		v.CartEntries = c.ledger.Entries()
		v.CartTotal = money.Format(c.ledger.TotalAmount(), c.currency)
	}

	return v
}
