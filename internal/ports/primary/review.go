package primary

import (
	"context"
	"time"
)

// ReviewService defines the primary port for reviewer verdicts.
type ReviewService interface {
	// SubmitReview records the verdict for a review section. An approval may
	// auto-progress the case.
	SubmitReview(ctx context.Context, req SubmitReviewRequest) (*Review, error)

	// ListReviews lists a case's reviews.
	ListReviews(ctx context.Context, caseID string) ([]*Review, error)
}

// SubmitReviewRequest contains parameters for submitting a review.
type SubmitReviewRequest struct {
	CaseID  string
	Section string
	Status  string
	Remarks string
	Actor   Actor
}

// Review is the public view of a review.
type Review struct {
	ID         string
	CaseID     string
	Section    string
	ReviewerID string
	Status     string
	Remarks    string
	ReviewedAt time.Time
}
