package model

// Totals is the money summary of a completed order. Shipping is kept as an
// explicit field even while the shop ships for free, so a snapshot read
// back later states what the customer actually paid.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// Customer holds the contact details entered at checkout.
type Customer struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// Delivery holds the shipping address entered at checkout.
type Delivery struct {
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	Postal  string `json:"postal,omitempty"`
	Country string `json:"country,omitempty"`
}

// Order is the snapshot of the last completed order. It is written once at
// checkout completion, overwriting any previous snapshot, and read only by
// the confirmation flow. Timestamps are ISO-8601 strings.
type Order struct {
	OrderNumber   string     `json:"orderNumber"`
	CreatedAt     string     `json:"createdAt"`
	PaymentMethod string     `json:"paymentMethod"`
	Items         []LineItem `json:"items"`
	Totals        Totals     `json:"totals"`
	Customer      Customer   `json:"customer"`
	Delivery      Delivery   `json:"delivery"`
	Notes         string     `json:"notes,omitempty"`
	SavedAt       string     `json:"savedAt"`
}
