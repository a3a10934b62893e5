package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/hostelconnect/hostel-service/internal/platform/logger"
	"github.com/hostelconnect/hostel-service/internal/review/domain"
	"go.uber.org/zap"
)

const roleStudent = "student"

// Actor identifies the authenticated caller.
type Actor struct {
	UserID   string
	UserType string
}

// HostelInfo is the slice of a hostel record the review flow needs: existence,
// display name, and who to notify.
type HostelInfo struct {
	ID      string
	Name    string
	OwnerID string
}

// HostelCatalog checks that a reviewed hostel exists. Returns
// domain.ErrNotFound when it does not.
type HostelCatalog interface {
	LookupHostel(ctx context.Context, hostelID string) (*HostelInfo, error)
}

// UserDirectory resolves user references for display and notification.
type UserDirectory interface {
	ResolveStudent(ctx context.Context, userID string) (*domain.StudentRef, error)
	ContactEmail(ctx context.Context, userID string) (string, error)
}

// EventPublisher broadcasts domain events, best-effort.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// Mailer sends the owner a note when their hostel receives a review.
type Mailer interface {
	SendReviewReceivedEmail(toEmail, hostelName string, rating int32) error
}

// ReviewUsecase implements listing and adding hostel reviews.
type ReviewUsecase struct {
	repo    domain.ReviewRepository
	hostels HostelCatalog
	users   UserDirectory
	events  EventPublisher
	mailer  Mailer
	logger  *logger.Logger
}

func NewReviewUsecase(
	repo domain.ReviewRepository,
	hostels HostelCatalog,
	users UserDirectory,
	events EventPublisher,
	mailer Mailer,
	log *logger.Logger,
) *ReviewUsecase {
	return &ReviewUsecase{
		repo:    repo,
		hostels: hostels,
		users:   users,
		events:  events,
		mailer:  mailer,
		logger:  log.Named("ReviewUsecase"),
	}
}

// ListForHostel returns a hostel's reviews newest first, with student
// references resolved for display.
func (uc *ReviewUsecase) ListForHostel(ctx context.Context, hostelID string) ([]*domain.Review, error) {
	reviews, err := uc.repo.FindByHostelID(ctx, hostelID)
	if err != nil {
		uc.logger.Error("failed to list reviews", zap.String("hostel_id", hostelID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrRepository, err)
	}

	resolved := make(map[string]*domain.StudentRef, len(reviews))
	for _, rv := range reviews {
		ref, ok := resolved[rv.StudentID]
		if !ok {
			ref = uc.resolveStudent(ctx, rv.StudentID)
			resolved[rv.StudentID] = ref
		}
		rv.Student = ref
	}
	return reviews, nil
}

// Add records a student's review of an existing hostel. A second review by
// the same student for the same hostel yields ErrReviewAlreadyExists.
func (uc *ReviewUsecase) Add(ctx context.Context, actor Actor, hostelID string, rating int32, comment string) (*domain.Review, error) {
	if actor.UserType != roleStudent {
		uc.logger.Warn("non-student attempted to add review", zap.String("user_id", actor.UserID), zap.String("user_type", actor.UserType))
		return nil, domain.ErrForbidden
	}
	if hostelID == "" || rating == 0 {
		return nil, fmt.Errorf("%w: hostel id and rating are required", domain.ErrInvalidInput)
	}
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrInvalidInput)
	}

	hostel, err := uc.hostels.LookupHostel(ctx, hostelID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		uc.logger.Error("failed to look up hostel", zap.String("hostel_id", hostelID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrRepository, err)
	}

	exists, err := uc.repo.ExistsForHostelAndStudent(ctx, hostelID, actor.UserID)
	if err != nil {
		uc.logger.Error("failed to check for existing review", zap.String("hostel_id", hostelID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrRepository, err)
	}
	if exists {
		return nil, domain.ErrReviewAlreadyExists
	}

	review, err := domain.NewReview(hostelID, actor.UserID, rating, comment)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	if err := uc.repo.Create(ctx, review); err != nil {
		// The unique compound index closes the race between the existence
		// check and the insert.
		if errors.Is(err, domain.ErrReviewAlreadyExists) {
			return nil, domain.ErrReviewAlreadyExists
		}
		uc.logger.Error("failed to save review", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrRepository, err)
	}

	uc.publish(ctx, "review.created", map[string]interface{}{
		"review_id":  review.ID,
		"hostel_id":  review.HostelID,
		"student_id": review.StudentID,
		"rating":     review.Rating,
	})
	uc.notifyOwner(ctx, hostel, review)

	uc.logger.Info("review created",
		zap.String("review_id", review.ID),
		zap.String("hostel_id", hostelID),
		zap.Int32("rating", rating))
	review.Student = uc.resolveStudent(ctx, actor.UserID)
	return review, nil
}

func (uc *ReviewUsecase) resolveStudent(ctx context.Context, userID string) *domain.StudentRef {
	if uc.users == nil {
		return nil
	}
	ref, err := uc.users.ResolveStudent(ctx, userID)
	if err != nil {
		uc.logger.Warn("failed to resolve review author", zap.String("user_id", userID), zap.Error(err))
		return nil
	}
	return ref
}

// notifyOwner emails the hostel owner about the new review when an address is
// known. Mail failures never surface to the reviewer.
func (uc *ReviewUsecase) notifyOwner(ctx context.Context, hostel *HostelInfo, review *domain.Review) {
	if uc.mailer == nil || uc.users == nil {
		return
	}
	email, err := uc.users.ContactEmail(ctx, hostel.OwnerID)
	if err != nil || email == "" {
		return
	}
	if err := uc.mailer.SendReviewReceivedEmail(email, hostel.Name, review.Rating); err != nil {
		uc.logger.Warn("failed to send review notification",
			zap.String("hostel_id", hostel.ID), zap.Error(err))
	}
}

func (uc *ReviewUsecase) publish(ctx context.Context, subject string, data map[string]interface{}) {
	if uc.events == nil {
		return
	}
	if err := uc.events.Publish(ctx, subject, data); err != nil {
		uc.logger.Warn("failed to publish event", zap.String("subject", subject), zap.Error(err))
	}
}
