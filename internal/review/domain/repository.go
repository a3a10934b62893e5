package domain

import "context"

// ReviewRepository is the persistence port for reviews. Implementations are
// expected to back ExistsForHostelAndStudent with a unique compound index so
// the one-review-per-pair invariant also holds under write races.
type ReviewRepository interface {
	Create(ctx context.Context, review *Review) error
	FindByHostelID(ctx context.Context, hostelID string) ([]*Review, error)
	ExistsForHostelAndStudent(ctx context.Context, hostelID, studentID string) (bool, error)
}
