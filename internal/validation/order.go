package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	phonePattern = regexp.MustCompile(`^[0-9+\-\s()]{10,15}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	pricePattern = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)
)

const (
	MinQuantity = 1
	MaxQuantity = 10

	addressMin = 10
)

// OrderForm is the state of the order form for one menu item
type OrderForm struct {
	Name     string
	Phone    string
	Email    string
	Address  string
	Quantity int
}

// DefaultOrderForm returns the form as shown after a reset
func DefaultOrderForm() OrderForm {
	return OrderForm{Quantity: 1}
}

// OrderErrors holds one message per order form field
type OrderErrors struct {
	Name     string
	Phone    string
	Email    string
	Address  string
	Quantity string
}

func (e OrderErrors) First() string {
	return firstOf(e.Name, e.Phone, e.Email, e.Address, e.Quantity)
}

func (e OrderErrors) Valid() bool {
	return e.First() == ""
}

// ValidateOrder checks every order form field
func ValidateOrder(f OrderForm) OrderErrors {
	var e OrderErrors

	name := strings.TrimSpace(f.Name)
	switch {
	case name == "":
		e.Name = "Name is required"
	case length(name) < 2:
		e.Name = "Name must be at least 2 characters"
	case !lettersOnly(name):
		e.Name = "Name can only contain letters"
	}

	switch {
	case strings.TrimSpace(f.Phone) == "":
		e.Phone = "Phone number is required"
	case !phonePattern.MatchString(removeSpace(f.Phone)):
		e.Phone = "Invalid phone number format"
	}

	switch {
	case strings.TrimSpace(f.Email) == "":
		e.Email = "Email is required"
	case !emailPattern.MatchString(f.Email):
		e.Email = "Please enter a valid email address"
	}

	address := strings.TrimSpace(f.Address)
	switch {
	case address == "":
		e.Address = "Delivery address is required"
	case length(address) < addressMin:
		e.Address = "Please provide a complete address (minimum 10 characters)"
	}

	switch {
	case f.Quantity < MinQuantity:
		e.Quantity = "Quantity must be at least 1"
	case f.Quantity > MaxQuantity:
		e.Quantity = "Maximum quantity is 10"
	}

	return e
}

// ParsePrice extracts the numeric amount from a display price such as
// "1500.00LKR", "$12.50" or "LKR 1,200.00". Currency text is ignored.
func ParsePrice(display string) (float64, error) {
	m := pricePattern.FindString(display)
	if m == "" {
		return 0, fmt.Errorf("no amount in price %q", display)
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount in price %q: %w", display, err)
	}
	return v, nil
}

// OrderTotal multiplies the unit price by quantity, rounded to cents
func OrderTotal(unit float64, quantity int) float64 {
	return math.Round(unit*float64(quantity)*100) / 100
}
