package service

import (
	"encoding/json"
	"math"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/MrAlob/project-exam-1/pkg/common/domain"
	"github.com/MrAlob/project-exam-1/pkg/domain/model"
	"github.com/MrAlob/project-exam-1/pkg/storage"
)

var (
	ErrMissingItemID       = errors.New("cart items must include an id")
	ErrInvalidQuantity     = errors.New("quantity must be zero or a positive number")
	ErrItemNotNormalizable = errors.New("cart item could not be normalized")
)

// CartUpdate reports the outcome of a cart mutation: the full updated list,
// the affected line (nil when the mutation targeted an absent id or removed
// the line) and whether AddItem created a new line.
type CartUpdate struct {
	Items []model.LineItem
	Item  *model.LineItem
	IsNew bool
}

// CartService is the sole authority over the persisted cart. Every mutation
// runs a read-full-list, mutate, write-full-list cycle against the injected
// store, so there is no in-memory copy to go stale. Reads degrade to an
// empty cart on any storage or decode problem; writes surface their errors.
type CartService interface {
	Items() []model.LineItem
	AddItem(item model.LineItem, quantity float64) (*CartUpdate, error)
	SetItemQuantity(id string, quantity float64) (*CartUpdate, error)
	RemoveItem(id string) (*CartUpdate, error)
	Clear()
	TotalQuantity() float64
	Subtotal() float64
}

func NewCartService(store storage.Store, key string, dispatcher domain.EventDispatcher) CartService {
	return &cartService{store: store, key: key, dispatcher: dispatcher}
}

type cartService struct {
	store      storage.Store
	key        string
	dispatcher domain.EventDispatcher
}

func (s *cartService) Items() []model.LineItem {
	return s.readItems()
}

func (s *cartService) AddItem(item model.LineItem, quantity float64) (*CartUpdate, error) {
	if item.ID == "" {
		return nil, ErrMissingItemID
	}

	increment := quantity
	if !isFinite(increment) || increment <= 0 {
		increment = 1
	}

	base := item
	base.Quantity = increment
	normalized, ok := model.NormalizeLineItem(base)
	if !ok {
		return nil, ErrItemNotNormalizable
	}

	items := s.readItems()
	existing := -1
	for i := range items {
		if items[i].ID == normalized.ID {
			existing = i
			break
		}
	}

	var updated model.LineItem
	if existing >= 0 {
		updated = items[existing]
		updated.Quantity += increment
		items[existing] = updated
	} else {
		updated = normalized
		items = append(items, updated)
	}

	if err := s.writeItems(items); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.ItemAddedToCart{
		ItemID:   updated.ID,
		Quantity: updated.Quantity,
		IsNew:    existing == -1,
	})

	return &CartUpdate{
		Items: model.CloneLineItems(items),
		Item:  &updated,
		IsNew: existing == -1,
	}, nil
}

func (s *cartService) SetItemQuantity(id string, quantity float64) (*CartUpdate, error) {
	if id == "" {
		return nil, ErrMissingItemID
	}
	if !isFinite(quantity) || quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	items := s.readItems()
	index := -1
	for i := range items {
		if items[i].ID == id {
			index = i
			break
		}
	}

	// Absent id is an idempotent no-op, not an error.
	if index == -1 {
		return &CartUpdate{Items: model.CloneLineItems(items)}, nil
	}

	removed := quantity == 0
	var updated model.LineItem
	if removed {
		items = append(items[:index], items[index+1:]...)
	} else {
		updated = items[index]
		updated.Quantity = quantity
		items[index] = updated
	}

	if err := s.writeItems(items); err != nil {
		return nil, err
	}

	update := &CartUpdate{Items: model.CloneLineItems(items)}
	if removed {
		_ = s.dispatcher.Dispatch(model.ItemRemovedFromCart{ItemID: id})
	} else {
		update.Item = &updated
		_ = s.dispatcher.Dispatch(model.CartItemQuantityChanged{ItemID: id, Quantity: quantity})
	}
	return update, nil
}

func (s *cartService) RemoveItem(id string) (*CartUpdate, error) {
	return s.SetItemQuantity(id, 0)
}

// Clear deletes the cart wholesale. Best effort: a failing delete is logged
// and swallowed.
func (s *cartService) Clear() {
	if err := s.store.Delete(s.key); err != nil {
		log.WithError(err).Error("Failed to clear the cart")
		return
	}
	_ = s.dispatcher.Dispatch(model.CartCleared{})
}

func (s *cartService) TotalQuantity() float64 {
	var total float64
	for _, item := range s.readItems() {
		total += item.Quantity
	}
	return total
}

func (s *cartService) Subtotal() float64 {
	var total float64
	for _, item := range s.readItems() {
		total += item.Subtotal()
	}
	return total
}

func (s *cartService) readItems() []model.LineItem {
	raw, err := s.store.Get(s.key)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			log.WithError(err).Error("Failed to read the cart from storage")
		}
		return []model.LineItem{}
	}

	items, err := model.ParseLineItems([]byte(raw))
	if err != nil {
		log.WithError(err).Error("Failed to decode the stored cart")
		return []model.LineItem{}
	}
	return items
}

// writeItems re-normalizes before persisting so no caller can smuggle an
// invalid line into storage.
func (s *cartService) writeItems(items []model.LineItem) error {
	normalized := make([]model.LineItem, 0, len(items))
	for _, item := range items {
		if line, ok := model.NormalizeLineItem(item); ok {
			normalized = append(normalized, line)
		}
	}

	raw, err := json.Marshal(normalized)
	if err != nil {
		return errors.Wrap(err, "encode cart")
	}
	if err := s.store.Set(s.key, string(raw)); err != nil {
		return errors.Wrap(err, "persist cart")
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
