package client

import (
	"context"
	"math"
	"sync"

	"github.com/pageza/tomato/backend/internal/model"
	"github.com/pageza/tomato/backend/internal/validation"
)

// ReviewSummary is the header shown above the review list
type ReviewSummary struct {
	Count   int
	Average float64 // rounded to one decimal, 0 without reviews
}

// SummarizeReviews computes the review count and average rating
func SummarizeReviews(reviews []model.Review) ReviewSummary {
	if len(reviews) == 0 {
		return ReviewSummary{}
	}
	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	avg := float64(total) / float64(len(reviews))
	return ReviewSummary{Count: len(reviews), Average: math.Round(avg*10) / 10}
}

// ReviewView is the state of the review page
type ReviewView struct {
	api    *Client
	notes  *Notifier
	submit inFlight

	mu      sync.Mutex
	form    validation.ReviewForm
	errors  validation.ReviewErrors
	reviews []model.Review
}

func NewReviewView(api *Client, notes *Notifier) *ReviewView {
	return &ReviewView{api: api, notes: notes, form: validation.DefaultReviewForm()}
}

func (v *ReviewView) Form() validation.ReviewForm {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.form
}

func (v *ReviewView) SetForm(f validation.ReviewForm) {
	v.mu.Lock()
	v.form = f
	v.mu.Unlock()
}

func (v *ReviewView) Errors() validation.ReviewErrors {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errors
}

func (v *ReviewView) Reviews() []model.Review {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]model.Review, len(v.reviews))
	copy(out, v.reviews)
	return out
}

func (v *ReviewView) Summary() ReviewSummary {
	v.mu.Lock()
	defer v.mu.Unlock()
	return SummarizeReviews(v.reviews)
}

func (v *ReviewView) InFlight() bool {
	return v.submit.active()
}

// Load fetches the review list
func (v *ReviewView) Load(ctx context.Context) error {
	reviews, err := v.api.ListReviews(ctx)
	if err != nil {
		v.notes.Push(KindError, failureMessage(err, "Failed to load reviews"))
		return err
	}
	v.mu.Lock()
	v.reviews = reviews
	v.mu.Unlock()
	return nil
}

// Submit validates and posts the review, then refreshes the list
func (v *ReviewView) Submit(ctx context.Context) (*model.Review, error) {
	v.mu.Lock()
	form := v.form
	errs := validation.ValidateReview(form)
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

	review, err := v.api.CreateReview(ctx, form)
	if err != nil {
		v.notes.Push(KindError, failureMessage(err, "Failed to submit review. Please try again later."))
		return nil, err
	}

	reviews, err := v.api.ListReviews(ctx)
	v.mu.Lock()
	if err == nil {
		v.reviews = reviews
	} else {
		v.reviews = append([]model.Review{*review}, v.reviews...)
	}
	v.form = validation.DefaultReviewForm()
	v.errors = validation.ReviewErrors{}
	v.mu.Unlock()

	v.notes.Push(KindSuccess, "Thank you! Your review has been submitted successfully")
	return review, nil
}

// Like adds a like and updates the review in the list
func (v *ReviewView) Like(ctx context.Context, id string) (*model.Review, error) {
	review, err := v.api.LikeReview(ctx, id)
	if err != nil {
		v.notes.Push(KindError, failureMessage(err, "Failed to like review"))
		return nil, err
	}

	v.mu.Lock()
	for i := range v.reviews {
		if v.reviews[i].ID == id {
			v.reviews[i] = *review
		}
	}
	v.mu.Unlock()

	v.notes.Push(KindSuccess, "Review liked!")
	return review, nil
}
