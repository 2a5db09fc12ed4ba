package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const (
	defaultTitle = "Product"
	defaultAlt   = "Cart item"
)

// LineItem is one product entry in the cart, keyed by product id, carrying
// the quantity and a price snapshot taken when the product was added.
type LineItem struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
	Image    string  `json:"image,omitempty"`
	Alt      string  `json:"alt"`
}

// Subtotal is the line's contribution to the cart subtotal.
func (i LineItem) Subtotal() float64 {
	return i.Price * i.Quantity
}

// NormalizeLineItem validates and coerces an item before it is trusted.
// Missing id and non-finite or non-positive quantity reject the whole line;
// price, title, image and alt are coerced with defaults instead. The
// asymmetry is deliberate: a line with a broken price is still a sellable
// line, a line with a broken quantity is not a line at all.
func NormalizeLineItem(item LineItem) (LineItem, bool) {
	if item.ID == "" {
		return LineItem{}, false
	}
	if !isFinite(item.Quantity) || item.Quantity <= 0 {
		return LineItem{}, false
	}

	out := item
	if !isFinite(out.Price) {
		out.Price = 0
	}
	if out.Title == "" {
		out.Title = defaultTitle
	}
	if out.Alt == "" {
		if item.Title != "" {
			out.Alt = item.Title
		} else {
			out.Alt = defaultAlt
		}
	}
	return out, true
}

// ParseLineItems decodes a stored cart payload. Elements that fail
// normalization are dropped; a payload that is not a JSON array is an error
// the caller is expected to swallow.
func ParseLineItems(data []byte) ([]LineItem, error) {
	var raw []rawLineItem
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	items := make([]LineItem, 0, len(raw))
	for _, entry := range raw {
		if item, ok := entry.normalize(); ok {
			items = append(items, item)
		}
	}
	return items, nil
}

// CloneLineItems returns an independent copy callers may mutate freely.
func CloneLineItems(items []LineItem) []LineItem {
	return append([]LineItem(nil), items...)
}

// rawLineItem tolerates whatever a previous (or foreign) writer left in
// storage: numbers stored as strings, ids stored as numbers, absent fields.
type rawLineItem struct {
	ID       any `json:"id"`
	Title    any `json:"title"`
	Price    any `json:"price"`
	Quantity any `json:"quantity"`
	Image    any `json:"image"`
	Alt      any `json:"alt"`
}

func (r rawLineItem) normalize() (LineItem, bool) {
	id := stringID(r.ID)
	if id == "" {
		return LineItem{}, false
	}

	quantity, ok := numberValue(r.Quantity)
	if !ok || quantity <= 0 {
		return LineItem{}, false
	}

	price, ok := numberValue(r.Price)
	if !ok {
		price = 0
	}

	title, _ := r.Title.(string)
	image, _ := r.Image.(string)

	alt, isString := r.Alt.(string)
	if !isString {
		if title != "" {
			alt = title
		} else {
			alt = defaultAlt
		}
	}

	if title == "" {
		title = defaultTitle
	}

	return LineItem{
		ID:       id,
		Title:    title,
		Price:    price,
		Quantity: quantity,
		Image:    image,
		Alt:      alt,
	}, true
}

// stringID accepts string ids and ids a foreign writer stored as numbers.
func stringID(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		if id == 0 {
			return ""
		}
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return ""
	}
}

// numberValue mirrors loose numeric coercion: numeric strings parse, an
// empty string is zero, anything else is not a number.
func numberValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, isFinite(n)
	case string:
		trimmed := strings.TrimSpace(n)
		if trimmed == "" {
			return 0, true
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		return parsed, isFinite(parsed)
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case nil:
		return 0, false
	default:
		return 0, false
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
