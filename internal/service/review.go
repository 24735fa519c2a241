package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/pageza/tomato/backend/internal/apperrors"
	"github.com/pageza/tomato/backend/internal/metrics"
	"github.com/pageza/tomato/backend/internal/model"
)

// ReviewInput is the submitted review form
type ReviewInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
	Category string `json:"category"`
}

// ReviewService handles review operations
type ReviewService struct {
	db      *gorm.DB
	log     *logrus.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewReviewService creates a new ReviewService instance
func NewReviewService(db *gorm.DB, log *logrus.Logger, m *metrics.Metrics) *ReviewService {
	return &ReviewService{
		db:      db,
		log:     log,
		metrics: m,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the time source used for createdAt
func (s *ReviewService) SetClock(now func() time.Time) {
	s.now = now
}

// List returns every review, newest first
func (s *ReviewService) List(ctx context.Context) ([]model.Review, error) {
	reviews := []model.Review{}
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&reviews).Error; err != nil {
		s.log.WithError(err).Error("Failed to list reviews")
		return nil, storageErr("list reviews", err)
	}
	return reviews, nil
}

// Create validates and persists a review with zero likes
func (s *ReviewService) Create(ctx context.Context, input ReviewInput) (review *model.Review, err error) {
	defer func() { s.metrics.ReviewOp("create", err) }()

	category := strings.ToLower(strings.TrimSpace(input.Category))
	if category == "" {
		category = model.ReviewCategoryGeneral
	}
	if !model.IsReviewCategory(category) {
		return nil, apperrors.Validation("category", "category must be one of: "+strings.Join(model.ReviewCategories, ", "))
	}

	review = &model.Review{
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.TrimSpace(input.Email),
		Rating:    input.Rating,
		Comment:   strings.TrimSpace(input.Comment),
		Category:  category,
		CreatedAt: s.now(),
	}
	if err := model.Check(review); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(review).Error; err != nil {
		s.log.WithError(err).Error("Failed to create review")
		return nil, storageErr("create review", err)
	}

	s.log.WithFields(logrus.Fields{"review_id": review.ID, "rating": review.Rating}).Info("Review created")
	return review, nil
}

// Like adds one to a review's likes. The read and the write are separate
// statements, so concurrent likes on one review can lose increments.
func (s *ReviewService) Like(ctx context.Context, id string) (review *model.Review, err error) {
	defer func() { s.metrics.ReviewOp("like", err) }()

	review = &model.Review{}
	if err := s.db.WithContext(ctx).First(review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("review", id)
		}
		return nil, storageErr("like review", err)
	}

	review.Likes++
	if err := s.db.WithContext(ctx).Model(review).Update("likes", review.Likes).Error; err != nil {
		s.log.WithError(err).WithField("review_id", id).Error("Failed to like review")
		return nil, storageErr("like review", err)
	}

	return review, nil
}
