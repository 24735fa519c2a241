package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ReviewCategoryGeneral   = "general"
	ReviewCategoryDelivery  = "delivery"
	ReviewCategoryRecipes   = "recipes"
	ReviewCategoryInterface = "interface"
)

// ReviewCategories lists the accepted review categories in display order
var ReviewCategories = []string{
	ReviewCategoryGeneral,
	ReviewCategoryDelivery,
	ReviewCategoryRecipes,
	ReviewCategoryInterface,
}

// Review is site feedback left by a visitor
type Review struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name      string    `gorm:"type:text;not null" json:"name" validate:"required"`
	Email     string    `gorm:"type:text" json:"email,omitempty"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating" validate:"required,min=1,max=5"`
	Comment   string    `gorm:"type:text;not null" json:"comment" validate:"required"`
	Category  string    `gorm:"type:varchar(20);not null;default:general" json:"category" validate:"oneof=general delivery recipes interface"`
	Likes     int       `gorm:"not null;default:0;check:likes >= 0" json:"likes" validate:"min=0"`
	CreatedAt time.Time `gorm:"<-:create;not null;index" json:"createdAt"`
}

// BeforeSave enforces the review constraints on every write
func (r *Review) BeforeSave(tx *gorm.DB) error {
	if r.Category == "" {
		r.Category = ReviewCategoryGeneral
	}
	return Check(r)
}

// BeforeCreate assigns the identity
func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// IsReviewCategory reports whether c is an accepted review category
func IsReviewCategory(c string) bool {
	for _, v := range ReviewCategories {
		if v == c {
			return true
		}
	}
	return false
}
