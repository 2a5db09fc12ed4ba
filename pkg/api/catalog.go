package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/MrAlob/project-exam-1/pkg/config"
)

var (
	ErrMissingProductID = errors.New("a product id is required")
	ErrEmptyCatalog     = errors.New("the product list is empty")
)

// Media is an image reference. Older API versions return a bare URL string,
// newer ones an object with url and alt, so it decodes from either.
type Media struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

func (m *Media) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*m = Media{}
		return nil
	}

	if trimmed[0] == '"' {
		var url string
		if err := json.Unmarshal(trimmed, &url); err != nil {
			return err
		}
		*m = Media{URL: url}
		return nil
	}

	type mediaObject Media
	var obj mediaObject
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		// Anything unrecognized reads as no image rather than a failure.
		*m = Media{}
		return nil
	}
	*m = Media(obj)
	return nil
}

// Product as the catalog endpoint returns it.
type Product struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Price           float64  `json:"price"`
	DiscountedPrice *float64 `json:"discountedPrice"`
	ImageURL        string   `json:"imageUrl"`
	Image           Media    `json:"image"`
	Tags            []string `json:"tags"`
	Rating          float64  `json:"rating"`
}

// CurrentPrice is what the customer pays right now.
func (p Product) CurrentPrice() float64 {
	if p.DiscountedPrice != nil {
		return *p.DiscountedPrice
	}
	return p.Price
}

// OnSale reports whether the original price should be shown struck through.
func (p Product) OnSale() bool {
	return p.DiscountedPrice != nil && *p.DiscountedPrice < p.Price
}

// ImageSource resolves the image URL across the API's shapes: imageUrl
// string first, then the image field.
func (p Product) ImageSource() string {
	if strings.TrimSpace(p.ImageURL) != "" {
		return p.ImageURL
	}
	return p.Image.URL
}

func (p Product) ImageAlt() string {
	if strings.TrimSpace(p.Image.Alt) != "" {
		return p.Image.Alt
	}
	if p.Title != "" {
		return p.Title
	}
	return "Product image"
}

// CatalogClient reads the product catalog.
type CatalogClient struct {
	client *Client
	base   string
}

func NewCatalogClient(client *Client, base string) *CatalogClient {
	return &CatalogClient{client: client, base: base}
}

// ListProducts fetches up to limit products. The sorted query shape is
// tried first, then progressively plainer URLs, because not every
// deployment of the API understands the query parameters.
func (c *CatalogClient) ListProducts(ctx context.Context, limit int) ([]Product, error) {
	endpoints := []string{c.base}
	if limit > 0 {
		endpoints = []string{
			fmt.Sprintf("%s?sort=created&sortOrder=desc&limit=%d", c.base, limit),
			fmt.Sprintf("%s?limit=%d", c.base, limit),
			c.base,
		}
	}

	var lastErr error
	for _, url := range endpoints {
		payload, err := c.client.FetchJSON(ctx, http.MethodGet, url, nil)
		if err != nil {
			lastErr = err
			continue
		}

		var products []Product
		if err := json.Unmarshal(payload, &products); err != nil {
			lastErr = errors.Wrap(err, "decode product list")
			continue
		}
		if len(products) > 0 {
			if limit > 0 && len(products) > limit {
				products = products[:limit]
			}
			return products, nil
		}
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, ErrEmptyCatalog
}

func (c *CatalogClient) GetProduct(ctx context.Context, id string) (*Product, error) {
	if id == "" {
		return nil, ErrMissingProductID
	}

	payload, err := c.client.FetchJSON(ctx, http.MethodGet, config.AppendPath(c.base, id), nil)
	if err != nil {
		return nil, err
	}

	var product Product
	if err := json.Unmarshal(payload, &product); err != nil {
		return nil, errors.Wrap(err, "decode product")
	}
	return &product, nil
}
