package client

import (
	"context"
	"sync"
	"time"

	"github.com/pageza/tomato/backend/internal/model"
	"github.com/pageza/tomato/backend/internal/validation"
)

// OrderView is the state of the order form for one menu item
type OrderView struct {
	api    *Client
	notes  *Notifier
	item   model.MenuItem
	submit inFlight

	mu     sync.Mutex
	form   validation.OrderForm
	errors validation.OrderErrors
	order  *model.Order
}

func NewOrderView(api *Client, notes *Notifier, item model.MenuItem) *OrderView {
	return &OrderView{api: api, notes: notes, item: item, form: validation.DefaultOrderForm()}
}

func (v *OrderView) Item() model.MenuItem {
	return v.item
}

func (v *OrderView) Form() validation.OrderForm {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.form
}

func (v *OrderView) SetForm(f validation.OrderForm) {
	v.mu.Lock()
	v.form = f
	v.mu.Unlock()
}

func (v *OrderView) Errors() validation.OrderErrors {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errors
}

// Order returns the placed order, nil before a successful submit
func (v *OrderView) Order() *model.Order {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.order
}

func (v *OrderView) InFlight() bool {
	return v.submit.active()
}

// Total is the price shown next to the quantity selector
func (v *OrderView) Total() float64 {
	unit, err := validation.ParsePrice(v.item.Price)
	if err != nil {
		return 0
	}
	return validation.OrderTotal(unit, v.Form().Quantity)
}

// Submit validates the form and places the order
func (v *OrderView) Submit(ctx context.Context) (*model.Order, error) {
	v.mu.Lock()
	form := v.form
	errs := validation.ValidateOrder(form)
	v.errors = errs
	v.mu.Unlock()

	if !errs.Valid() {
		v.notes.Push(KindError, errs.First())
		return nil, invalidForm(errs.First())
	}
	if !v.submit.acquire() {
		return nil, ErrSubmitInFlight
	}
	defer v.submit.release()

	v.notes.Push(KindInfo, "Processing your order...")
	order, err := v.api.PlaceOrder(ctx, v.item.ID, form)
	if err != nil {
		v.notes.Push(KindError, failureMessage(err, "Failed to process order. Please try again."))
		return nil, err
	}

	v.mu.Lock()
	v.order = order
	v.form = validation.DefaultOrderForm()
	v.errors = validation.OrderErrors{}
	v.mu.Unlock()

	v.notes.Push(KindSuccess, "Order details saved! Redirecting to payment...")
	return order, nil
}

// PaymentView is the state of the card form for a placed order
type PaymentView struct {
	api     *Client
	notes   *Notifier
	orderID string
	now     func() time.Time
	submit  inFlight

	mu     sync.Mutex
	form   validation.PaymentForm
	errors validation.PaymentErrors
	order  *model.Order
}

func NewPaymentView(api *Client, notes *Notifier, orderID string) *PaymentView {
	return &PaymentView{api: api, notes: notes, orderID: orderID, now: time.Now}
}

// SetClock replaces the time source used to check the card expiry
func (v *PaymentView) SetClock(now func() time.Time) {
	v.now = now
}

func (v *PaymentView) Form() validation.PaymentForm {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.form
}

func (v *PaymentView) SetForm(f validation.PaymentForm) {
	v.mu.Lock()
	v.form = f
	v.mu.Unlock()
}

func (v *PaymentView) Errors() validation.PaymentErrors {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errors
}

// Confirmation returns the paid order, nil before a successful submit
func (v *PaymentView) Confirmation() *model.Order {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.order
}

func (v *PaymentView) InFlight() bool {
	return v.submit.active()
}

// Submit validates the card form and pays the order
func (v *PaymentView) Submit(ctx context.Context) (*model.Order, error) {
	v.mu.Lock()
	form := v.form
	errs := validation.ValidatePayment(form, v.now())
	v.errors = errs
	v.mu.Unlock()

	if !errs.Valid() {
		v.notes.Push(KindError, errs.First())
		return nil, invalidForm(errs.First())
	}
	if !v.submit.acquire() {
		return nil, ErrSubmitInFlight
	}
	defer v.submit.release()

	order, err := v.api.PayOrder(ctx, v.orderID, form)
	if err != nil {
		v.notes.Push(KindError, failureMessage(err, "Payment failed. Please try again."))
		return nil, err
	}

	v.mu.Lock()
	v.order = order
	v.form = validation.PaymentForm{}
	v.errors = validation.PaymentErrors{}
	v.mu.Unlock()

	v.notes.Push(KindSuccess, "Order confirmed! Thank you for your purchase!")
	return order, nil
}
