package service

import (
	"encoding/json"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/MrAlob/project-exam-1/pkg/common/domain"
	"github.com/MrAlob/project-exam-1/pkg/domain/model"
	"github.com/MrAlob/project-exam-1/pkg/storage"
)

var ErrNilOrder = errors.New("an order is required to save the order summary")

const orderNumberAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// OrderService persists the snapshot of the last completed order. The
// snapshot is overwritten wholesale on every save; there are no partial
// updates.
type OrderService interface {
	Save(order *model.Order) (*model.Order, error)
	Last() *model.Order
	Clear()
	GenerateOrderNumber() string
}

func NewOrderService(store storage.Store, key string, dispatcher domain.EventDispatcher) OrderService {
	return &orderService{store: store, key: key, dispatcher: dispatcher}
}

type orderService struct {
	store      storage.Store
	key        string
	dispatcher domain.EventDispatcher
}

func (s *orderService) Save(order *model.Order) (*model.Order, error) {
	if order == nil {
		return nil, ErrNilOrder
	}

	snapshot := *order
	if snapshot.OrderNumber == "" {
		snapshot.OrderNumber = s.GenerateOrderNumber()
	}
	snapshot.SavedAt = time.Now().UTC().Format(time.RFC3339)

	raw, err := json.Marshal(snapshot)
	if err != nil {
		return nil, errors.Wrap(err, "encode order")
	}
	if err := s.store.Set(s.key, string(raw)); err != nil {
		return nil, errors.Wrap(err, "persist order")
	}

	_ = s.dispatcher.Dispatch(model.OrderSaved{
		OrderNumber: snapshot.OrderNumber,
		Total:       snapshot.Totals.Total,
	})

	return &snapshot, nil
}

// Last returns the stored snapshot, or nil when there is none or it cannot
// be decoded.
func (s *orderService) Last() *model.Order {
	raw, err := s.store.Get(s.key)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			log.WithError(err).Error("Failed to read the last order from storage")
		}
		return nil
	}

	var order model.Order
	if err := json.Unmarshal([]byte(raw), &order); err != nil {
		log.WithError(err).Error("Failed to decode the stored order")
		return nil
	}
	return &order
}

func (s *orderService) Clear() {
	if err := s.store.Delete(s.key); err != nil {
		log.WithError(err).Error("Failed to clear the last order")
	}
}

// GenerateOrderNumber builds a confirmation number: "TS-", the last four
// base-36 digits of the current epoch milliseconds, then four random
// base-36 characters. Good enough for a demo confirmation page, not for an
// order ledger.
func (s *orderService) GenerateOrderNumber() string {
	timestamp := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	if len(timestamp) > 4 {
		timestamp = timestamp[len(timestamp)-4:]
	}

	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = orderNumberAlphabet[rand.Intn(len(orderNumberAlphabet))]
	}
	return "TS-" + timestamp + string(suffix)
}
