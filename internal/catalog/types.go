package catalog

import (
	"encoding/json"
	"strings"
)

// Category groups products. Immutable once loaded.
type Category struct {
	ID   int64  `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

// Product is one sellable item. Price is in minor currency units.
type Product struct {
	ID          int64      `json:"id" validate:"required"`
	CategoryID  int64      `json:"category_id" validate:"required"`
	Name        string     `json:"name" validate:"required"`
	Price       int64      `json:"price" validate:"min=0"`
	Photo       string     `json:"photo"`
	Description string     `json:"description"`
	Sizes       OptionList `json:"sizes"`
	Colors      OptionList `json:"colors"`
}

// HasSizes reports whether a size must be chosen before adding to cart.
func (p Product) HasSizes() bool {
	return len(p.Sizes) > 0
}

// HasColors reports whether a color must be chosen before adding to cart.
func (p Product) HasColors() bool {
	return len(p.Colors) > 0
}

// Snapshot is the full catalog payload delivered once at startup.
type Snapshot struct {
	Categories []Category `json:"categories" validate:"dive"`
	Products   []Product  `json:"products" validate:"dive"`
}

// OptionList holds variant options in backend order. The backend bot
// historically sends them as a comma-joined string ("S,M,L"); newer
// payloads send a JSON array. Both decode to the same list, with empty
// segments dropped.
type OptionList []string

func (o *OptionList) UnmarshalJSON(raw []byte) error {
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		*o = splitOptions(asString)
		return nil
	}
	var asList []string
	if err := json.Unmarshal(raw, &asList); err != nil {
		return err
	}
	out := make(OptionList, 0, len(asList))
	for _, item := range asList {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	*o = out
	return nil
}

func splitOptions(joined string) OptionList {
	parts := strings.Split(joined, ",")
	out := make(OptionList, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
