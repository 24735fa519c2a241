package service

import (
	"context"
	"io"

	"github.com/pageza/tomato/backend/internal/model"
)

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	List(ctx context.Context) ([]model.Recipe, error)
	Create(ctx context.Context, input RecipeInput, image *ImageUpload) (*model.Recipe, error)
	Delete(ctx context.Context, id string) error
}

// IReviewService defines the interface for review operations
type IReviewService interface {
	List(ctx context.Context) ([]model.Review, error)
	Create(ctx context.Context, input ReviewInput) (*model.Review, error)
	Like(ctx context.Context, id string) (*model.Review, error)
}

// IMenuService defines the interface for the menu catalog
type IMenuService interface {
	Items() []model.MenuItem
	Item(id int) (model.MenuItem, bool)
}

// IOrderService defines the interface for the simulated order flow
type IOrderService interface {
	Place(ctx context.Context, input OrderInput) (*model.Order, error)
	Get(ctx context.Context, id string) (*model.Order, error)
	Pay(ctx context.Context, id string, input PaymentInput) (*model.Order, error)
}

// ImageStore keeps uploaded images outside the database and returns the
// reference that is persisted on the recipe
type ImageStore interface {
	Save(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
	Remove(ctx context.Context, ref string) error
}
