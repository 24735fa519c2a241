package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/pageza/tomato/backend/internal/apperrors"
	"github.com/pageza/tomato/backend/internal/metrics"
	"github.com/pageza/tomato/backend/internal/model"
	"github.com/pageza/tomato/backend/internal/validation"
)

const orderKeyPrefix = "order:"

// OrderInput is the submitted order form for one menu item
type OrderInput struct {
	ItemID   int    `json:"itemId"`
	Quantity int    `json:"quantity"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Address  string `json:"address"`
}

// PaymentInput is the submitted card form. Card data is validated and
// discarded except for the last four digits.
type PaymentInput struct {
	Name       string `json:"name"`
	CardNumber string `json:"cardNumber"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

// OrderService runs the simulated order and payment flow. Orders live in
// Redis and expire after ttl; nothing is charged.
type OrderService struct {
	redis   redis.UniversalClient
	menu    IMenuService
	ttl     time.Duration
	log     *logrus.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewOrderService creates a new OrderService instance
func NewOrderService(client redis.UniversalClient, menu IMenuService, ttl time.Duration, log *logrus.Logger, m *metrics.Metrics) *OrderService {
	return &OrderService{
		redis:   client,
		menu:    menu,
		ttl:     ttl,
		log:     log,
		metrics: m,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the time source used for order timestamps and expiry checks
func (s *OrderService) SetClock(now func() time.Time) {
	s.now = now
}

// Place validates the order form, prices the item and stores a pending order
func (s *OrderService) Place(ctx context.Context, input OrderInput) (order *model.Order, err error) {
	defer func() { s.metrics.OrderOp("place", err) }()

	errs := validation.ValidateOrder(validation.OrderForm{
		Name:     input.Name,
		Phone:    input.Phone,
		Email:    input.Email,
		Address:  input.Address,
		Quantity: input.Quantity,
	})
	if err := firstFieldError(
		"name", errs.Name,
		"phone", errs.Phone,
		"email", errs.Email,
		"address", errs.Address,
		"quantity", errs.Quantity,
	); err != nil {
		return nil, err
	}

	item, ok := s.menu.Item(input.ItemID)
	if !ok {
		return nil, apperrors.NotFound("menu item", strconv.Itoa(input.ItemID))
	}
	unit, err := validation.ParsePrice(item.Price)
	if err != nil {
		return nil, apperrors.Validation("itemId", err.Error())
	}

	order = &model.Order{
		ID:         uuid.NewString(),
		ItemID:     item.ID,
		ItemName:   item.Name,
		ItemPrice:  item.Price,
		Quantity:   input.Quantity,
		UnitPrice:  unit,
		TotalPrice: validation.OrderTotal(unit, input.Quantity),
		Name:       strings.TrimSpace(input.Name),
		Phone:      strings.TrimSpace(input.Phone),
		Email:      strings.TrimSpace(input.Email),
		Address:    strings.TrimSpace(input.Address),
		Status:     model.OrderStatusPending,
		CreatedAt:  s.now(),
	}

	data, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order: %w", err)
	}
	if err := s.redis.Set(ctx, orderKey(order.ID), data, s.ttl).Err(); err != nil {
		s.log.WithError(err).Error("Failed to save order")
		return nil, apperrors.Storage("save order", err)
	}

	s.log.WithFields(logrus.Fields{"order_id": order.ID, "item": item.Name, "total": order.TotalPrice}).Info("Order placed")
	return order, nil
}

// Get returns a stored order
func (s *OrderService) Get(ctx context.Context, id string) (*model.Order, error) {
	return loadOrder(ctx, s.redis, id)
}

// Pay validates the card form and marks a pending order as paid
func (s *OrderService) Pay(ctx context.Context, id string, input PaymentInput) (order *model.Order, err error) {
	defer func() { s.metrics.OrderOp("pay", err) }()

	errs := validation.ValidatePayment(validation.PaymentForm{
		Name:       input.Name,
		CardNumber: input.CardNumber,
		Expiry:     input.Expiry,
		CVV:        input.CVV,
	}, s.now())
	if err := firstFieldError(
		"name", errs.Name,
		"cardNumber", errs.CardNumber,
		"expiry", errs.Expiry,
		"cvv", errs.CVV,
	); err != nil {
		return nil, err
	}

	key := orderKey(id)
	err = s.redis.Watch(ctx, func(tx *redis.Tx) error {
		current, err := loadOrder(ctx, tx, id)
		if err != nil {
			return err
		}
		if current.Status == model.OrderStatusPaid {
			return apperrors.Conflict("order already paid")
		}

		paidAt := s.now()
		card := validation.CleanCardNumber(input.CardNumber)
		current.Status = model.OrderStatusPaid
		current.PaidAt = &paidAt
		current.CardLast4 = card[len(card)-4:]

		data, err := json.Marshal(current)
		if err != nil {
			return fmt.Errorf("failed to marshal order: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, redis.KeepTTL)
			return nil
		})
		if err != nil {
			return err
		}
		order = current
		return nil
	}, key)

	switch {
	case err == nil:
	case errors.Is(err, redis.TxFailedErr):
		return nil, apperrors.Conflict("order was modified concurrently, please retry")
	case apperrors.IsNotFound(err), apperrors.IsConflict(err), apperrors.IsStorage(err):
		return nil, err
	default:
		s.log.WithError(err).WithField("order_id", id).Error("Failed to pay order")
		return nil, apperrors.Storage("pay order", err)
	}

	s.log.WithFields(logrus.Fields{"order_id": id, "total": order.TotalPrice}).Info("Order paid")
	return order, nil
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func loadOrder(ctx context.Context, c stringGetter, id string) (*model.Order, error) {
	data, err := c.Get(ctx, orderKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.NotFound("order", id)
		}
		return nil, apperrors.Storage("load order", err)
	}

	var order model.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, apperrors.Storage("decode order", err)
	}
	return &order, nil
}

func orderKey(id string) string {
	return orderKeyPrefix + id
}

// firstFieldError takes field/message pairs and returns a ValidationError
// for the first pair with a message
func firstFieldError(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] != "" {
			return apperrors.Validation(pairs[i], pairs[i+1])
		}
	}
	return nil
}
