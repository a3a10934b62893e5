package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/hostelconnect/hostel-service/internal/hostel/domain"
	"github.com/hostelconnect/hostel-service/internal/platform/logger"
	"go.uber.org/zap"
)

const roleOwner = "owner"

// Actor identifies the authenticated caller of a usecase operation.
type Actor struct {
	UserID   string
	UserType string
}

// HostelCache is a read-through cache for single-hostel lookups. A (nil, nil)
// return means cache miss.
type HostelCache interface {
	GetHostel(ctx context.Context, id string) (*domain.Hostel, error)
	SetHostel(ctx context.Context, hostel *domain.Hostel) error
	DeleteHostel(ctx context.Context, id string) error
}

// EventPublisher broadcasts domain events. Publishing is best-effort; the
// record-level change never depends on it.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// CreateHostelInput carries the fields accepted when an owner creates a
// hostel. Photos are trusted as already uploaded.
type CreateHostelInput struct {
	Name          string
	Address       *domain.Address
	Price         *float64
	Amenities     []string
	Photos        []domain.Photo
	Availability  *bool
	ContactNumber string
}

// UpdateHostelInput carries partial-update fields. A nil pointer means "keep
// the existing value"; a present pointer replaces it, which makes
// availability=false and price=0 expressible.
type UpdateHostelInput struct {
	Name          *string
	Address       *domain.Address
	Price         *float64
	Amenities     *[]string
	Photos        *[]domain.Photo
	Availability  *bool
	ContactNumber *string
}

// HostelUsecase orchestrates authorization, photo reconciliation and
// persistence for hostel listings.
type HostelUsecase struct {
	repo       domain.HostelRepository
	owners     domain.OwnerDirectory
	reconciler *PhotoReconciler
	cache      HostelCache
	events     EventPublisher
	logger     *logger.Logger
}

func NewHostelUsecase(
	repo domain.HostelRepository,
	owners domain.OwnerDirectory,
	reconciler *PhotoReconciler,
	cache HostelCache,
	events EventPublisher,
	log *logger.Logger,
) *HostelUsecase {
	return &HostelUsecase{
		repo:       repo,
		owners:     owners,
		reconciler: reconciler,
		cache:      cache,
		events:     events,
		logger:     log.Named("HostelUsecase"),
	}
}

// Search returns all hostels matching the filter, with owners resolved for
// display. An empty filter returns every hostel.
func (uc *HostelUsecase) Search(ctx context.Context, filter domain.Filter) ([]*domain.Hostel, error) {
	hostels, err := uc.repo.FindByFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("failed to search hostels", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrRepository, err)
	}

	resolved := make(map[string]*domain.OwnerRef, len(hostels))
	for _, h := range hostels {
		ref, ok := resolved[h.OwnerID]
		if !ok {
			ref = uc.resolveOwner(ctx, h.OwnerID)
			resolved[h.OwnerID] = ref
		}
		h.Owner = ref
	}
	return hostels, nil
}

// GetByID returns a single hostel with its owner resolved.
func (uc *HostelUsecase) GetByID(ctx context.Context, id string) (*domain.Hostel, error) {
	hostel, err := uc.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	hostel.Owner = uc.resolveOwner(ctx, hostel.OwnerID)
	return hostel, nil
}

// Create persists a new hostel owned by the acting user. Only owners may
// create listings.
func (uc *HostelUsecase) Create(ctx context.Context, actor Actor, input CreateHostelInput) (*domain.Hostel, error) {
	if actor.UserType != roleOwner {
		uc.logger.Warn("non-owner attempted to create hostel", zap.String("user_id", actor.UserID), zap.String("user_type", actor.UserType))
		return nil, domain.ErrForbidden
	}
	if input.Name == "" || input.Address == nil || input.Price == nil || input.ContactNumber == "" {
		return nil, fmt.Errorf("%w: name, address, price and contactNumber are required", domain.ErrInvalidHostelData)
	}
	if *input.Price < 0 {
		return nil, fmt.Errorf("%w: price must be non-negative", domain.ErrInvalidHostelData)
	}

	availability := true
	if input.Availability != nil {
		availability = *input.Availability
	}
	photos := input.Photos
	if photos == nil {
		photos = []domain.Photo{}
	}
	amenities := input.Amenities
	if amenities == nil {
		amenities = []string{}
	}

	now := time.Now().UTC()
	hostel := &domain.Hostel{
		OwnerID:       actor.UserID,
		Name:          input.Name,
		Address:       *input.Address,
		Price:         *input.Price,
		Amenities:     amenities,
		Photos:        photos,
		Availability:  availability,
		ContactNumber: input.ContactNumber,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uc.repo.Create(ctx, hostel); err != nil {
		uc.logger.Error("failed to create hostel", zap.String("owner_id", actor.UserID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrRepository, err)
	}

	uc.publish(ctx, "hostel.created", map[string]interface{}{
		"hostel_id": hostel.ID,
		"owner_id":  hostel.OwnerID,
		"name":      hostel.Name,
	})
	uc.logger.Info("hostel created", zap.String("hostel_id", hostel.ID), zap.String("owner_id", actor.UserID))
	hostel.Owner = uc.resolveOwner(ctx, hostel.OwnerID)
	return hostel, nil
}

// Update applies a partial update to a hostel after role and ownership checks.
// When a photo set is provided the previous set is reconciled against it:
// orphaned assets are deleted from storage (best-effort) and the submitted
// set becomes the persisted one.
func (uc *HostelUsecase) Update(ctx context.Context, actor Actor, id string, input UpdateHostelInput) (*domain.Hostel, error) {
	if actor.UserType != roleOwner {
		return nil, domain.ErrForbidden
	}

	hostel, err := uc.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if hostel.OwnerID != actor.UserID {
		uc.logger.Warn("user is not the owner of the hostel",
			zap.String("hostel_id", id), zap.String("owner_id", hostel.OwnerID), zap.String("user_id", actor.UserID))
		return nil, domain.ErrForbidden
	}

	if input.Name != nil {
		hostel.Name = *input.Name
	}
	if input.Address != nil {
		hostel.Address = *input.Address
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, fmt.Errorf("%w: price must be non-negative", domain.ErrInvalidHostelData)
		}
		hostel.Price = *input.Price
	}
	if input.Amenities != nil {
		hostel.Amenities = *input.Amenities
	}
	if input.Availability != nil {
		hostel.Availability = *input.Availability
	}
	if input.ContactNumber != nil {
		hostel.ContactNumber = *input.ContactNumber
	}
	if input.Photos != nil {
		hostel.Photos = uc.reconciler.Reconcile(ctx, hostel.Photos, *input.Photos)
	}
	hostel.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Update(ctx, hostel); err != nil {
		uc.logger.Error("failed to update hostel", zap.String("hostel_id", id), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrRepository, err)
	}
	uc.invalidate(ctx, id)

	uc.publish(ctx, "hostel.updated", map[string]interface{}{
		"hostel_id": hostel.ID,
		"owner_id":  hostel.OwnerID,
	})
	uc.logger.Info("hostel updated", zap.String("hostel_id", id))
	hostel.Owner = uc.resolveOwner(ctx, hostel.OwnerID)
	return hostel, nil
}

// Delete removes a hostel after role and ownership checks, tearing down every
// photo it owns from object storage before the record goes away.
func (uc *HostelUsecase) Delete(ctx context.Context, actor Actor, id string) error {
	if actor.UserType != roleOwner {
		return domain.ErrForbidden
	}

	hostel, err := uc.lookup(ctx, id)
	if err != nil {
		return err
	}
	if hostel.OwnerID != actor.UserID {
		uc.logger.Warn("user is not the owner of the hostel",
			zap.String("hostel_id", id), zap.String("owner_id", hostel.OwnerID), zap.String("user_id", actor.UserID))
		return domain.ErrForbidden
	}

	uc.reconciler.Teardown(ctx, hostel.Photos)

	if err := uc.repo.Delete(ctx, id); err != nil {
		uc.logger.Error("failed to delete hostel", zap.String("hostel_id", id), zap.Error(err))
		return fmt.Errorf("%w: %v", domain.ErrRepository, err)
	}
	uc.invalidate(ctx, id)

	uc.publish(ctx, "hostel.deleted", map[string]interface{}{
		"hostel_id": id,
		"owner_id":  hostel.OwnerID,
	})
	uc.logger.Info("hostel deleted", zap.String("hostel_id", id))
	return nil
}

// lookup fetches a hostel through the cache when one is configured.
func (uc *HostelUsecase) lookup(ctx context.Context, id string) (*domain.Hostel, error) {
	if uc.cache != nil {
		cached, err := uc.cache.GetHostel(ctx, id)
		if err != nil {
			uc.logger.Warn("hostel cache read failed", zap.String("hostel_id", id), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	hostel, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.SetHostel(ctx, hostel); err != nil {
			uc.logger.Warn("hostel cache write failed", zap.String("hostel_id", id), zap.Error(err))
		}
	}
	return hostel, nil
}

func (uc *HostelUsecase) invalidate(ctx context.Context, id string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.DeleteHostel(ctx, id); err != nil {
		uc.logger.Warn("hostel cache invalidation failed", zap.String("hostel_id", id), zap.Error(err))
	}
}

// resolveOwner looks up the display projection of an owner. Resolution is for
// display only, so failures degrade to an absent owner rather than failing
// the read.
func (uc *HostelUsecase) resolveOwner(ctx context.Context, ownerID string) *domain.OwnerRef {
	if uc.owners == nil {
		return nil
	}
	ref, err := uc.owners.ResolveUser(ctx, ownerID)
	if err != nil {
		uc.logger.Warn("failed to resolve hostel owner", zap.String("owner_id", ownerID), zap.Error(err))
		return nil
	}
	return ref
}

func (uc *HostelUsecase) publish(ctx context.Context, subject string, data map[string]interface{}) {
	if uc.events == nil {
		return
	}
	if err := uc.events.Publish(ctx, subject, data); err != nil {
		uc.logger.Warn("failed to publish event", zap.String("subject", subject), zap.Error(err))
	}
}
