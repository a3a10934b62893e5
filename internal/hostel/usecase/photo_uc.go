package usecase

import (
	"context"

	"github.com/hostelconnect/hostel-service/internal/hostel/domain"
	"github.com/hostelconnect/hostel-service/internal/platform/logger"
	"go.uber.org/zap"
)

// PhotoReconciler computes the difference between a hostel's persisted photo
// set and a newly submitted one and removes the orphaned assets from object
// storage. Asset deletion is best-effort: a failed delete is logged and the
// surrounding record mutation proceeds, so a referenced asset is never lost
// but an unreferenced one may linger until removed out of band.
type PhotoReconciler struct {
	storage domain.PhotoStorage
	logger  *logger.Logger
}

func NewPhotoReconciler(storage domain.PhotoStorage, log *logger.Logger) *PhotoReconciler {
	return &PhotoReconciler{
		storage: storage,
		logger:  log.Named("PhotoReconciler"),
	}
}

// Reconcile deletes every photo in existing whose identifier does not appear
// in proposed, and returns proposed as the set to persist. Identity is by
// storage identifier only; a URL change alone is not a removal. Each delete
// is attempted independently (collect-and-continue), and the returned set is
// always exactly proposed regardless of how many deletes succeeded.
func (rc *PhotoReconciler) Reconcile(ctx context.Context, existing, proposed []domain.Photo) []domain.Photo {
	kept := make(map[string]struct{}, len(proposed))
	for _, p := range proposed {
		kept[p.Identifier] = struct{}{}
	}

	var removed, failed int
	for _, p := range existing {
		if _, ok := kept[p.Identifier]; ok {
			continue
		}
		if err := rc.storage.Delete(ctx, p.Identifier); err != nil {
			failed++
			rc.logger.Warn("failed to delete photo from storage, asset may be orphaned",
				zap.String("identifier", p.Identifier), zap.Error(err))
			continue
		}
		removed++
	}

	if removed > 0 || failed > 0 {
		rc.logger.Info("photo set reconciled",
			zap.Int("removed", removed),
			zap.Int("failed", failed),
			zap.Int("persisted", len(proposed)))
	}

	if proposed == nil {
		return []domain.Photo{}
	}
	return proposed
}

// Teardown removes every photo of a hostel that is about to be deleted.
func (rc *PhotoReconciler) Teardown(ctx context.Context, existing []domain.Photo) {
	rc.Reconcile(ctx, existing, nil)
}
