package validation

import "strings"

const reviewCommentMin = 10

// ReviewForm is the state of the write-a-review form
type ReviewForm struct {
	Name     string
	Email    string
	Rating   int // 0 means no star selected
	Comment  string
	Category string
}

// DefaultReviewForm returns the form as shown after a reset
func DefaultReviewForm() ReviewForm {
	return ReviewForm{Category: "general"}
}

// ReviewErrors holds one message per review form field
type ReviewErrors struct {
	Name    string
	Rating  string
	Comment string
}

func (e ReviewErrors) First() string {
	return firstOf(e.Name, e.Rating, e.Comment)
}

func (e ReviewErrors) Valid() bool {
	return e.First() == ""
}

// ValidateReview checks every review form field
func ValidateReview(f ReviewForm) ReviewErrors {
	var e ReviewErrors
	if strings.TrimSpace(f.Name) == "" {
		e.Name = "Please enter your name"
	}
	if f.Rating < 1 || f.Rating > 5 {
		e.Rating = "Please select a rating"
	}
	comment := strings.TrimSpace(f.Comment)
	switch {
	case comment == "":
		e.Comment = "Please write your review comment"
	case length(comment) < reviewCommentMin:
		e.Comment = "Review comment should be at least 10 characters long"
	}
	return e
}
