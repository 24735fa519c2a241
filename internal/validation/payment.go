package validation

import (
	"strconv"
	"strings"
	"time"
)

// PaymentForm is the state of the simulated card payment form
type PaymentForm struct {
	Name       string
	CardNumber string
	Expiry     string // YYYY-MM or MM/YY
	CVV        string
}

// PaymentErrors holds one message per payment form field
type PaymentErrors struct {
	Name       string
	CardNumber string
	Expiry     string
	CVV        string
}

func (e PaymentErrors) First() string {
	return firstOf(e.Name, e.CardNumber, e.Expiry, e.CVV)
}

func (e PaymentErrors) Valid() bool {
	return e.First() == ""
}

// ValidatePayment checks every payment form field. Expiry is compared with
// the month of now.
func ValidatePayment(f PaymentForm, now time.Time) PaymentErrors {
	var e PaymentErrors

	name := strings.TrimSpace(f.Name)
	if length(name) < 2 || !lettersOnly(name) {
		e.Name = "Please enter a valid name (letters only, at least 2 characters)"
	}

	card := CleanCardNumber(f.CardNumber)
	if len(card) < 13 || len(card) > 19 || !allDigits(card) {
		e.CardNumber = "Please enter a valid card number (13-19 digits)"
	}

	if !validExpiry(f.Expiry, now) {
		e.Expiry = "Please enter a valid future expiry date"
	}

	if len(f.CVV) < 3 || len(f.CVV) > 4 || !allDigits(f.CVV) {
		e.CVV = "Please enter a valid CVV (3-4 digits)"
	}

	return e
}

// CleanCardNumber removes the spaces and dashes used for display grouping
func CleanCardNumber(card string) string {
	return strings.ReplaceAll(removeSpace(card), "-", "")
}

func validExpiry(expiry string, now time.Time) bool {
	year, month, ok := parseExpiry(strings.TrimSpace(expiry))
	if !ok {
		return false
	}
	if year != now.Year() {
		return year > now.Year()
	}
	return month >= int(now.Month())
}

func parseExpiry(s string) (year, month int, ok bool) {
	var y, m string
	switch {
	case len(s) == 7 && s[4] == '-':
		y, m = s[:4], s[5:]
	case len(s) == 5 && s[2] == '/':
		m, y = s[:2], "20"+s[3:]
	default:
		return 0, 0, false
	}
	year, err := strconv.Atoi(y)
	if err != nil {
		return 0, 0, false
	}
	month, err = strconv.Atoi(m)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, month, true
}
