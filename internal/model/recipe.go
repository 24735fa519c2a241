package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringArray stores an ordered list of strings as a JSON document
type StringArray []string

// Value implements the driver.Valuer interface
func (a StringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = StringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringArray", value)
	}

	return json.Unmarshal(bytes, a)
}

// Recipe is a user-submitted recipe. Rating and ReviewCount are stored but
// never updated; reviews are not linked to recipes.
type Recipe struct {
	ID           string      `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title        string      `gorm:"type:text;not null" json:"title" validate:"required"`
	Category     string      `gorm:"type:text;not null" json:"category" validate:"required"`
	Difficulty   string      `gorm:"type:text;not null" json:"difficulty" validate:"required"`
	CookTime     string      `gorm:"type:text;not null" json:"cookTime" validate:"required"`
	Servings     int         `gorm:"not null;check:servings >= 1" json:"servings" validate:"required,min=1"`
	Image        string      `gorm:"type:text" json:"image,omitempty"`
	Ingredients  StringArray `gorm:"type:jsonb;not null" json:"ingredients" validate:"min=1,dive,required"`
	Instructions StringArray `gorm:"type:jsonb;not null" json:"instructions" validate:"min=1,dive,required"`
	Rating       float64     `gorm:"not null;default:0" json:"rating"`
	ReviewCount  int         `gorm:"not null;default:0" json:"reviewCount"`
	DateAdded    time.Time   `gorm:"<-:create;not null;index" json:"dateAdded"`
}

// BeforeSave rejects a recipe that misses any required field, whatever the caller
func (r *Recipe) BeforeSave(tx *gorm.DB) error {
	return Check(r)
}

// BeforeCreate assigns the identity and creation time
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.DateAdded.IsZero() {
		r.DateAdded = time.Now().UTC()
	}
	return nil
}
