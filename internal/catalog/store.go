// Package catalog holds the in-memory snapshot of the shop delivered by
// the backend bot. The snapshot arrives once per session over the bridge;
// there is no network or persistence behind this store.
package catalog

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	pkgerrors "github.com/angelmondragon/shopfront-miniapp/pkg/errors"
	"github.com/go-playground/validator/v10"
)

// DefaultCategoryName labels product lists whose category cannot be
// resolved, rather than failing the render.
const DefaultCategoryName = "Products"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// Store is the read side of the catalog. Load replaces the snapshot
// wholesale; every accessor reads the snapshot as received.
type Store struct {
	snapshot Snapshot
	loaded   bool
}

// NewStore builds an empty, unloaded store.
func NewStore() *Store {
	return &Store{}
}

// Load applies a full catalog snapshot. A repeated call replaces the
// previous snapshot entirely.
func (s *Store) Load(snapshot Snapshot) error {
	if err := validate.Struct(&snapshot); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeMalformedResponse, err, "catalog payload failed validation")
	}
	s.snapshot = snapshot
	s.loaded = true
	return nil
}

// LoadRaw decodes and applies a JSON catalog payload.
func (s *Store) LoadRaw(raw []byte) error {
	var snapshot Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeMalformedResponse, err, "undecodable catalog payload")
	}
	return s.Load(snapshot)
}

// Loaded reports whether a snapshot has been applied.
func (s *Store) Loaded() bool {
	return s.loaded
}

// Categories returns all categories in received order.
func (s *Store) Categories() []Category {
	return s.snapshot.Categories
}

// ProductsByCategory returns the ordered products of one category. A
// category with no products yields an empty slice, not an error; the
// display layer shows "no products", never a loading state.
func (s *Store) ProductsByCategory(categoryID int64) []Product {
	out := make([]Product, 0)
	for _, p := range s.snapshot.Products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out
}

// ProductByID returns the matching product or a NOT_FOUND error.
func (s *Store) ProductByID(id int64) (Product, error) {
	for _, p := range s.snapshot.Products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %d not found", id))
}

// CategoryName resolves a category label, falling back to a default so a
// dangling category id never breaks rendering.
func (s *Store) CategoryName(id int64) string {
	for _, c := range s.snapshot.Categories {
		if c.ID == id {
			return c.Name
		}
	}
	return DefaultCategoryName
}
