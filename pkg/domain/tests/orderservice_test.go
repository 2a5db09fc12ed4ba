package tests

import (
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrAlob/project-exam-1/pkg/domain/model"
	"github.com/MrAlob/project-exam-1/pkg/domain/service"
)

const orderKey = "the-shop-last-order"

var orderNumberPattern = regexp.MustCompile(`^TS-[0-9A-Z]{8}$`)

func setupOrders(t *testing.T) (service.OrderService, *mockStore, *mockEventDispatcher) {
	store := newMockStore()
	dispatcher := &mockEventDispatcher{}
	orderService := service.NewOrderService(store, orderKey, dispatcher)
	return orderService, store, dispatcher
}

func sampleOrder() *model.Order {
	return &model.Order{
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
		PaymentMethod: "card",
		Items: []model.LineItem{
			{ID: "p1", Title: "Mug", Price: 10, Quantity: 2, Alt: "Mug"},
		},
		Totals:   model.Totals{Subtotal: 20, Shipping: 0, Total: 20},
		Customer: model.Customer{FirstName: "Ada", Email: "ada@example.com"},
		Delivery: model.Delivery{City: "Oslo", Country: "Norway"},
	}
}

func TestSaveOrder(t *testing.T) {
	orderService, store, dispatcher := setupOrders(t)

	t.Run("Success", func(t *testing.T) {
		saved, err := orderService.Save(sampleOrder())

		require.NoError(t, err)
		assert.Regexp(t, orderNumberPattern, saved.OrderNumber)
		assert.NotEmpty(t, saved.SavedAt)
		_, parseErr := time.Parse(time.RFC3339, saved.SavedAt)
		assert.NoError(t, parseErr)

		var persisted model.Order
		require.NoError(t, json.Unmarshal([]byte(store.entries[orderKey]), &persisted))
		assert.Equal(t, saved.OrderNumber, persisted.OrderNumber)

		require.Len(t, dispatcher.events, 1)
		event, ok := dispatcher.events[0].(model.OrderSaved)
		require.True(t, ok)
		assert.Equal(t, float64(20), event.Total)
	})

	t.Run("Keeps a caller-provided order number", func(t *testing.T) {
		order := sampleOrder()
		order.OrderNumber = "TS-CUSTOM01"

		saved, err := orderService.Save(order)
		require.NoError(t, err)
		assert.Equal(t, "TS-CUSTOM01", saved.OrderNumber)
	})

	t.Run("Overwrites the previous snapshot", func(t *testing.T) {
		first, err := orderService.Save(sampleOrder())
		require.NoError(t, err)
		second, err := orderService.Save(sampleOrder())
		require.NoError(t, err)

		last := orderService.Last()
		require.NotNil(t, last)
		assert.Equal(t, second.OrderNumber, last.OrderNumber)
		assert.NotEqual(t, first.OrderNumber, last.OrderNumber)
	})

	t.Run("Fail on nil order", func(t *testing.T) {
		_, err := orderService.Save(nil)
		assert.ErrorIs(t, err, service.ErrNilOrder)
	})

	t.Run("Fail on persistence error", func(t *testing.T) {
		store.failSet = errors.New("backend down")
		_, err := orderService.Save(sampleOrder())
		require.Error(t, err)
		store.failSet = nil
	})
}

func TestLastOrder(t *testing.T) {
	orderService, store, _ := setupOrders(t)

	t.Run("Nil when nothing was saved", func(t *testing.T) {
		assert.Nil(t, orderService.Last())
	})

	t.Run("Nil on corrupted snapshot", func(t *testing.T) {
		store.entries[orderKey] = "{{{"
		assert.Nil(t, orderService.Last())
	})

	t.Run("Round trip", func(t *testing.T) {
		saved, err := orderService.Save(sampleOrder())
		require.NoError(t, err)

		last := orderService.Last()
		require.NotNil(t, last)
		assert.Equal(t, saved.OrderNumber, last.OrderNumber)
		require.Len(t, last.Items, 1)
		assert.Equal(t, "Mug", last.Items[0].Title)
		assert.Equal(t, "Oslo", last.Delivery.City)
	})
}

func TestClearOrder(t *testing.T) {
	orderService, store, _ := setupOrders(t)

	_, err := orderService.Save(sampleOrder())
	require.NoError(t, err)

	orderService.Clear()
	_, ok := store.entries[orderKey]
	assert.False(t, ok)
	assert.Nil(t, orderService.Last())

	// Best effort: clearing again, even with a failing backend, is silent.
	store.failDelete = errors.New("backend gone")
	orderService.Clear()
}

func TestGenerateOrderNumber(t *testing.T) {
	orderService, _, _ := setupOrders(t)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		number := orderService.GenerateOrderNumber()
		assert.Regexp(t, orderNumberPattern, number)
		seen[number] = true
	}
	// Not guaranteed unique, but 50 collisions in a row would mean the
	// random suffix is broken.
	assert.Greater(t, len(seen), 1)
}
