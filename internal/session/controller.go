// Package session owns the screen state machine: which view is active,
// the navigation history behind the back button, and the orchestration
// between catalog, cart and the host bridge. All methods are synchronous
// and must be called from a single event loop.
package session

import (
	"context"
	"fmt"

	"github.com/angelmondragon/shopfront-miniapp/internal/cart"
	"github.com/angelmondragon/shopfront-miniapp/internal/catalog"
	"github.com/angelmondragon/shopfront-miniapp/internal/nav"
	"github.com/angelmondragon/shopfront-miniapp/pkg/bridge"
	"github.com/angelmondragon/shopfront-miniapp/pkg/enums"
	pkgerrors "github.com/angelmondragon/shopfront-miniapp/pkg/errors"
	"github.com/angelmondragon/shopfront-miniapp/pkg/logger"
	"github.com/angelmondragon/shopfront-miniapp/pkg/money"
)

// Params collects the controller's dependencies.
type Params struct {
	Store    *catalog.Store
	Ledger   *cart.Ledger
	Bridge   bridge.Bridge
	Logger   *logger.Logger
	Currency string
}

// Controller drives the fixed set of screens. It owns all mutable session
// state; nothing here survives the process.
type Controller struct {
	store    *catalog.Store
	ledger   *cart.Ledger
	br       bridge.Bridge
	log      *logger.Logger
	currency string

	screen            enums.Screen
	stack             nav.Stack
	currentCategoryID int64
	currentProductID  int64
	selectedSize      string
	selectedColor     string
	loaderMessage     string
	closed            bool

	offs []func()
}

// NewController validates dependencies and builds a controller parked on
// the loader screen.
func NewController(p Params) (*Controller, error) {
	if p.Store == nil {
		return nil, fmt.Errorf("catalog store required")
	}
	if p.Ledger == nil {
		return nil, fmt.Errorf("cart ledger required")
	}
	if p.Bridge == nil {
		return nil, fmt.Errorf("bridge required")
	}
	if p.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if p.Currency == "" {
		p.Currency = "MDL"
	}
	return &Controller{
		store:    p.Store,
		ledger:   p.Ledger,
		br:       p.Bridge,
		log:      p.Logger,
		currency: p.Currency,
		screen:   enums.ScreenLoader,
	}, nil
}

// Start announces the app to the host, subscribes to inbound events and
// fires the one-shot catalog request. The screen stays on the loader
// until an all_data event lands; if even the request cannot be sent the
// loader shows a permanent failure message, with no retry.
func (c *Controller) Start(ctx context.Context) {
	c.br.Ready()
	c.br.Expand()

	c.offs = append(c.offs,
		c.br.On(bridge.EventAllData, c.HandleBridgeEvent),
		c.br.On(bridge.EventPaymentURL, c.HandleBridgeEvent),
		c.br.On(bridge.EventBackButtonClicked, func(bridge.Event) { c.Back() }),
		c.br.On(bridge.EventMainButtonClicked, func(bridge.Event) { c.Checkout(ctx) }),
	)

	if err := c.br.Send(ctx, bridge.NewGetAllData()); err != nil {
		loadErr := pkgerrors.Wrap(pkgerrors.CodeCatalogLoad, err, "catalog request never left the app")
		c.log.Error(c.logCtx(ctx), "failed to request catalog", loadErr)
		c.loaderMessage = pkgerrors.UserMessage(loadErr)
	}
}

// Stop drops the event subscriptions.
func (c *Controller) Stop() {
	for _, off := range c.offs {
		off()
	}
	c.offs = nil
}

// HandleBridgeEvent applies one inbound backend event. Events are
// uncorrelated to any request and may arrive on any screen; malformed
// payloads are logged and change nothing.
func (c *Controller) HandleBridgeEvent(ev bridge.Event) {
	ctx := c.log.WithEventType(c.logCtx(context.Background()), string(ev.Type))

	switch ev.Type {
	case bridge.EventAllData:
		c.handleAllData(ctx, ev)
	case bridge.EventPaymentURL:
		c.handlePaymentURL(ctx, ev)
	default:
		c.log.Warn(ctx, "ignoring unexpected bridge event")
	}
}

func (c *Controller) handleAllData(ctx context.Context, ev bridge.Event) {
	if err := c.store.LoadRaw(ev.Data); err != nil {
		c.log.Error(ctx, "discarding catalog payload", err)
		return
	}
	c.log.Info(ctx, "catalog loaded")
	c.enterCategories()
}

func (c *Controller) handlePaymentURL(ctx context.Context, ev bridge.Event) {
	c.log.Info(ctx, "opening invoice")
	c.br.OpenInvoice(ev.URL, func(status enums.InvoiceStatus) {
		statusCtx := c.log.WithField(ctx, "status", status.String())
		if status != enums.InvoicePaid {
			c.log.Warn(statusCtx, "invoice closed without payment")
			return
		}
		c.log.Info(statusCtx, "payment confirmed, closing app")
		c.ledger.Clear()
		c.closed = true
		c.br.Close()
	})
}

// SelectCategory drills from the category list into a product list.
func (c *Controller) SelectCategory(categoryID int64) {
	if c.screen != enums.ScreenCategories {
		c.logIgnored("select category")
		return
	}
	c.enterProductList(categoryID)
	c.stack.Push(nav.CategoryFrame(categoryID))
}

// SelectProduct drills from a product list into the detail view.
func (c *Controller) SelectProduct(productID int64) {
	if c.screen != enums.ScreenProducts {
		c.logIgnored("select product")
		return
	}
	product, err := c.store.ProductByID(productID)
	if err != nil {
		c.log.Error(c.logCtx(context.Background()), "selected product vanished from catalog", err)
		return
	}
	c.enterProductDetails(productID)
	c.stack.Push(nav.ProductFrame(productID, product.CategoryID))
}

// ChooseSize records a size selection on the detail screen.
func (c *Controller) ChooseSize(size string) {
	if c.screen != enums.ScreenProductDetails {
		c.logIgnored("choose size")
		return
	}
	if product, err := c.store.ProductByID(c.currentProductID); err == nil {
		for _, option := range product.Sizes {
			if option == size {
				c.selectedSize = size
				return
			}
		}
	}
	c.log.Warn(c.logCtx(context.Background()), "ignoring unknown size option "+size)
}

// ChooseColor records a color selection on the detail screen.
func (c *Controller) ChooseColor(color string) {
	if c.screen != enums.ScreenProductDetails {
		c.logIgnored("choose color")
		return
	}
	if product, err := c.store.ProductByID(c.currentProductID); err == nil {
		for _, option := range product.Colors {
			if option == color {
				c.selectedColor = color
				return
			}
		}
	}
	c.log.Warn(c.logCtx(context.Background()), "ignoring unknown color option "+color)
}

// AddToCart puts the currently viewed variant in the cart. The screen
// does not change; a missing selection surfaces as a host alert and
// leaves all state untouched.
func (c *Controller) AddToCart() {
	if c.screen != enums.ScreenProductDetails {
		c.logIgnored("add to cart")
		return
	}
	product, err := c.store.ProductByID(c.currentProductID)
	if err != nil {
		c.log.Error(c.logCtx(context.Background()), "viewed product vanished from catalog", err)
		return
	}
	if err := c.ledger.Add(product, c.selectedSize, c.selectedColor); err != nil {
		if pkgerrors.IsAlert(err) {
			c.br.ShowAlert(pkgerrors.UserMessage(err))
		} else {
			c.log.Error(c.logCtx(context.Background()), "add to cart rejected", err)
		}
		return
	}
}

// OpenCart shows the cart from any screen. The navigation stack is left
// as is, so backing out of the cart resumes the previous path.
func (c *Controller) OpenCart() {
	if c.screen == enums.ScreenLoader || c.screen == enums.ScreenCart {
		c.logIgnored("open cart")
		return
	}
	c.screen = enums.ScreenCart
	c.syncChrome()
}

// RemoveFromCart deletes one cart line while on the cart screen.
func (c *Controller) RemoveFromCart(lineKey string) {
	if c.screen != enums.ScreenCart {
		c.logIgnored("remove from cart")
		return
	}
	c.ledger.Remove(lineKey)
	c.syncChrome()
}

// Checkout hands the cart to the backend bot. Nothing changes locally:
// the payment flow continues through a later, uncorrelated payment_url
// event.
func (c *Controller) Checkout(ctx context.Context) {
	if c.screen != enums.ScreenCart {
		c.logIgnored("checkout")
		return
	}
	if c.ledger.TotalItemCount() == 0 {
		c.logIgnored("checkout with empty cart")
		return
	}
	msg := bridge.NewCreateOrder(c.ledger.Snapshot())
	if err := c.br.Send(ctx, msg); err != nil {
		sendErr := pkgerrors.Wrap(pkgerrors.CodeBridge, err, "order hand-off failed")
		c.log.Error(c.logCtx(ctx), "failed to send order", sendErr)
		return
	}
	c.log.Info(c.log.WithMessageID(c.logCtx(ctx), msg.ID.String()), "order sent to backend")
}

// Back retraces one navigation step. The destination depends on the
// current screen as well as the stack: the product-list and detail
// screens walk the recorded path, while the cart resumes wherever the
// shopper left off without consuming history.
func (c *Controller) Back() {
	switch c.screen {
	case enums.ScreenProducts:
		c.enterCategories()

	case enums.ScreenProductDetails:
		popped, ok := c.stack.Pop()
		if !ok {
			c.enterCategories()
			return
		}
		categoryID := popped.CategoryID
		if top, ok := c.stack.Peek(); ok && top.Kind == nav.FrameCategory {
			categoryID = top.CategoryID
		}
		c.enterProductList(categoryID)

	case enums.ScreenCart:
		top, ok := c.stack.Peek()
		if !ok {
			c.enterCategories()
			return
		}
		switch top.Kind {
		case nav.FrameCategory:
			c.enterProductList(top.CategoryID)
		case nav.FrameProduct:
			c.enterProductDetails(top.ProductID)
		}

	default:
		// Categories has no back affordance; the loader ignores back.
		c.logIgnored("back")
	}
}

// Screen returns the active screen.
func (c *Controller) Screen() enums.Screen {
	return c.screen
}

// StackDepth exposes the navigation depth for diagnostics and tests.
func (c *Controller) StackDepth() int {
	return c.stack.Len()
}

// Closed reports whether a confirmed payment has requested app close.
func (c *Controller) Closed() bool {
	return c.closed
}

func (c *Controller) enterCategories() {
	c.stack.Reset()
	c.screen = enums.ScreenCategories
	c.syncChrome()
}

func (c *Controller) enterProductList(categoryID int64) {
	c.currentCategoryID = categoryID
	c.screen = enums.ScreenProducts
	c.syncChrome()
}

func (c *Controller) enterProductDetails(productID int64) {
	c.currentProductID = productID
	c.selectedSize = ""
	c.selectedColor = ""
	c.screen = enums.ScreenProductDetails
	c.syncChrome()
}

// syncChrome realigns host chrome with the active screen: the back button
// hides only on the category list (and loader), the main button exists
// only on a non-empty cart.
func (c *Controller) syncChrome() {
	showBack := c.screen != enums.ScreenCategories && c.screen != enums.ScreenLoader
	c.br.ShowBackButton(showBack)

	if c.screen == enums.ScreenCart && c.ledger.TotalItemCount() > 0 {
		c.br.SetMainButton("Pay "+money.Format(c.ledger.TotalAmount(), c.currency), true)
	} else {
		c.br.SetMainButton("", false)
	}
}

func (c *Controller) logIgnored(action string) {
	ctx := c.log.WithScreen(c.logCtx(context.Background()), c.screen.String())
	c.log.Debug(ctx, "ignoring "+action+" on this screen")
}

func (c *Controller) logCtx(ctx context.Context) context.Context {
	return c.log.WithScreen(ctx, c.screen.String())
}
