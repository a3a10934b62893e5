package domain

import "errors"

var (
	// ErrHostelNotFound indicates that no hostel exists for the given id.
	ErrHostelNotFound = errors.New("hostel not found")
	// ErrForbidden indicates the actor has the wrong role or does not own the hostel.
	ErrForbidden = errors.New("action forbidden")
	// ErrInvalidHostelData indicates missing or invalid input fields.
	ErrInvalidHostelData = errors.New("invalid hostel data")
	// ErrRepository indicates a generic persistence failure.
	ErrRepository = errors.New("repository error")
)
