package domain

import (
	"errors"
	"time"
)

var (
	// ErrNotFound indicates that the reviewed hostel (or review) does not exist.
	ErrNotFound = errors.New("entity not found")
	// ErrForbidden indicates the actor is not a student.
	ErrForbidden = errors.New("action forbidden")
	// ErrInvalidInput indicates a missing hostel id or a rating outside 1..5.
	ErrInvalidInput = errors.New("invalid input data")
	// ErrReviewAlreadyExists indicates this student already reviewed this hostel.
	ErrReviewAlreadyExists = errors.New("review already exists for this hostel and student")
	// ErrRepository indicates a generic persistence failure.
	ErrRepository = errors.New("repository error")
)

// Review is a student's rating of a hostel. At most one review may exist per
// (hostel, student) pair; reviews are never updated or deleted.
type Review struct {
	ID        string
	HostelID  string
	StudentID string
	Rating    int32
	Comment   string
	CreatedAt time.Time

	Student *StudentRef
}

// StudentRef is the display projection of the review's author.
type StudentRef struct {
	ID       string
	Username string
	UserType string
}

// NewReview validates and builds a review instance.
func NewReview(hostelID, studentID string, rating int32, comment string) (*Review, error) {
	if hostelID == "" {
		return nil, errors.New("hostelID cannot be empty")
	}
	if studentID == "" {
		return nil, errors.New("studentID cannot be empty")
	}
	if rating < 1 || rating > 5 {
		return nil, errors.New("rating must be between 1 and 5")
	}
	return &Review{
		HostelID:  hostelID,
		StudentID: studentID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now().UTC(),
	}, nil
}
