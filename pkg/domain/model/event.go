package model

type ItemAddedToCart struct {
	ItemID   string
	Quantity float64
	IsNew    bool
}

func (e ItemAddedToCart) Type() string { return "ItemAddedToCart" }

type CartItemQuantityChanged struct {
	ItemID   string
	Quantity float64
}

func (e CartItemQuantityChanged) Type() string { return "CartItemQuantityChanged" }

type ItemRemovedFromCart struct {
	ItemID string
}

func (e ItemRemovedFromCart) Type() string { return "ItemRemovedFromCart" }

type CartCleared struct{}

func (e CartCleared) Type() string { return "CartCleared" }

type OrderSaved struct {
	OrderNumber string
	Total       float64
}

func (e OrderSaved) Type() string { return "OrderSaved" }

type SignedIn struct {
	Email string
}

func (e SignedIn) Type() string { return "SignedIn" }

type SignedOut struct{}

func (e SignedOut) Type() string { return "SignedOut" }
