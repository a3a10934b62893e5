package domain

import "context"

// HostelRepository is the persistence port for hostel records.
type HostelRepository interface {
	Create(ctx context.Context, hostel *Hostel) error
	Update(ctx context.Context, hostel *Hostel) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Hostel, error)
	FindByFilter(ctx context.Context, filter Filter) ([]*Hostel, error)
}

// OwnerDirectory resolves a user id to its display projection. It is a
// read-only lookup; the hostel domain never owns user records.
type OwnerDirectory interface {
	ResolveUser(ctx context.Context, userID string) (*OwnerRef, error)
}

// PhotoStorage is the external object-store port. Delete failures are
// expected to be tolerated by callers (best-effort cleanup).
type PhotoStorage interface {
	Upload(ctx context.Context, fileName string, data []byte) (Photo, error)
	Delete(ctx context.Context, identifier string) error
}
