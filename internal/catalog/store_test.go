package catalog

import (
	"testing"

	pkgerrors "github.com/angelmondragon/shopfront-miniapp/pkg/errors"
)

func testSnapshot() Snapshot {
	return Snapshot{
		Categories: []Category{
			{ID: 1, Name: "Shoes"},
			{ID: 2, Name: "Hats"},
			{ID: 3, Name: "Empty"},
		},
		Products: []Product{
			{ID: 10, CategoryID: 1, Name: "Runner", Price: 1500, Sizes: OptionList{"40", "41"}},
			{ID: 11, CategoryID: 2, Name: "Beanie", Price: 2000, Colors: OptionList{"red"}},
			{ID: 12, CategoryID: 1, Name: "Loafer", Price: 3000},
		},
	}
}

func TestStoreLoadAndLookups(t *testing.T) {
	t.Parallel()

	store := NewStore()
	if store.Loaded() {
		t.Fatal("fresh store must not report loaded")
	}
	if err := store.Load(testSnapshot()); err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if !store.Loaded() {
		t.Fatal("store must report loaded after Load")
	}

	cats := store.Categories()
	if len(cats) != 3 || cats[0].Name != "Shoes" || cats[2].Name != "Empty" {
		t.Fatalf("categories lost order: %+v", cats)
	}

	shoes := store.ProductsByCategory(1)
	if len(shoes) != 2 || shoes[0].ID != 10 || shoes[1].ID != 12 {
		t.Fatalf("unexpected category products: %+v", shoes)
	}

	product, err := store.ProductByID(11)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.Name != "Beanie" {
		t.Fatalf("unexpected product %+v", product)
	}
}

func TestStoreEmptyCategoryIsEmptySliceNotError(t *testing.T) {
	t.Parallel()

	store := NewStore()
	if err := store.Load(testSnapshot()); err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}

	got := store.ProductsByCategory(3)
	if got == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(got) != 0 {
		t.Fatalf("expected no products, got %+v", got)
	}
}

func TestStoreProductByIDNotFound(t *testing.T) {
	t.Parallel()

	store := NewStore()
	if err := store.Load(testSnapshot()); err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}

	_, err := store.ProductByID(999)
	if err == nil {
		t.Fatal("expected error for unknown product")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestStoreCategoryNameFallback(t *testing.T) {
	t.Parallel()

	store := NewStore()
	if err := store.Load(testSnapshot()); err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}

	if name := store.CategoryName(2); name != "Hats" {
		t.Fatalf("unexpected name %q", name)
	}
	if name := store.CategoryName(404); name != DefaultCategoryName {
		t.Fatalf("expected fallback label, got %q", name)
	}
}

func TestStoreLoadReplacesSnapshot(t *testing.T) {
	t.Parallel()

	store := NewStore()
	if err := store.Load(testSnapshot()); err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if err := store.Load(Snapshot{Categories: []Category{{ID: 9, Name: "Only"}}}); err != nil {
		t.Fatalf("unexpected reload error: %v", err)
	}

	if len(store.Categories()) != 1 {
		t.Fatalf("reload must replace, not merge: %+v", store.Categories())
	}
	if got := store.ProductsByCategory(1); len(got) != 0 {
		t.Fatalf("old products must be gone, got %+v", got)
	}
}

func TestStoreLoadRejectsInvalidPayload(t *testing.T) {
	t.Parallel()

	store := NewStore()
	err := store.Load(Snapshot{
		Categories: []Category{{ID: 1}}, // missing name
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeMalformedResponse {
		t.Fatalf("expected MALFORMED_RESPONSE, got %v", err)
	}
	if store.Loaded() {
		t.Fatal("failed load must not mark the store loaded")
	}
}

func TestStoreLoadRaw(t *testing.T) {
	t.Parallel()

	store := NewStore()
	raw := []byte(`{
		"categories":[{"id":1,"name":"Shoes"}],
		"products":[{"id":10,"category_id":1,"name":"Runner","price":1500,"sizes":"40,41,","colors":[]}]
	}`)
	if err := store.LoadRaw(raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	product, err := store.ProductByID(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(product.Sizes) != 2 || product.Sizes[0] != "40" || product.Sizes[1] != "41" {
		t.Fatalf("comma-joined sizes mishandled: %+v", product.Sizes)
	}
	if product.HasColors() {
		t.Fatalf("empty colors must not require a selection")
	}

	if err := store.LoadRaw([]byte(`{"categories": 5}`)); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestOptionListUnmarshal(t *testing.T) {
	t.Parallel()

	var list OptionList
	if err := list.UnmarshalJSON([]byte(`"S, M ,L,"`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 3 || list[0] != "S" || list[1] != "M" || list[2] != "L" {
		t.Fatalf("unexpected list %+v", list)
	}

	if err := list.UnmarshalJSON([]byte(`["red","","blue"]`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 2 || list[1] != "blue" {
		t.Fatalf("unexpected list %+v", list)
	}

	if err := list.UnmarshalJSON([]byte(`123`)); err == nil {
		t.Fatal("expected error for non-string, non-array value")
	}
}
