package model

import "time"

// MenuItem is a dish offered for ordering. Price is the display string,
// for example "1500.00LKR".
type MenuItem struct {
	ID       int    `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	Category string `yaml:"category" json:"category"`
	Image    string `yaml:"image" json:"image"`
	Price    string `yaml:"price" json:"price"`
}

const (
	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"
)

// Order is a simulated food order. Orders are kept in Redis only and expire.
type Order struct {
	ID         string     `json:"id"`
	ItemID     int        `json:"itemId"`
	ItemName   string     `json:"itemName"`
	ItemPrice  string     `json:"itemPrice"`
	Quantity   int        `json:"quantity"`
	UnitPrice  float64    `json:"unitPrice"`
	TotalPrice float64    `json:"totalPrice"`
	Name       string     `json:"name"`
	Phone      string     `json:"phone"`
	Email      string     `json:"email"`
	Address    string     `json:"address"`
	Status     string     `json:"status"`
	CardLast4  string     `json:"cardLast4,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	PaidAt     *time.Time `json:"paidAt,omitempty"`
}
