package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hostelconnect/hostel-service/internal/platform/logger"
	"github.com/hostelconnect/hostel-service/internal/review/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const reviewCollectionName = "reviews"

// ReviewRepository implements domain.ReviewRepository using MongoDB.
type ReviewRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewReviewRepository creates the repository and ensures the unique
// (hostel_id, student_id) index that enforces one review per pair under
// concurrent writes.
func NewReviewRepository(db *mongo.Database, log *logger.Logger) (*ReviewRepository, error) {
	collection := db.Collection(reviewCollectionName)

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "hostel_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "hostel_id", Value: 1}, {Key: "student_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Error("Failed to create indexes for reviews collection", zap.Error(err))
	} else {
		log.Info("Successfully ensured indexes for reviews collection")
	}

	return &ReviewRepository{
		collection: collection,
		logger:     log.Named("ReviewRepository"),
	}, nil
}

// Create inserts a new review. A duplicate (hostel, student) pair maps to
// ErrReviewAlreadyExists.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	doc, err := fromDomainReview(review)
	if err != nil {
		return err
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	review.ID = doc.ID.Hex()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			r.logger.Warn("Duplicate key error on review creation",
				zap.String("hostel_id", review.HostelID), zap.String("student_id", review.StudentID))
			return domain.ErrReviewAlreadyExists
		}
		r.logger.Error("Failed to insert review into DB", zap.Error(err))
		return fmt.Errorf("db insert failed: %w", err)
	}
	return nil
}

// FindByHostelID retrieves a hostel's reviews newest first.
func (r *ReviewRepository) FindByHostelID(ctx context.Context, hostelID string) ([]*domain.Review, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"hostel_id": hostelID}, findOptions)
	if err != nil {
		r.logger.Error("Failed to find reviews by hostel_id from DB", zap.Error(err), zap.String("hostel_id", hostelID))
		return nil, fmt.Errorf("db find failed: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*reviewDocument
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("Failed to decode reviews from DB", zap.Error(err))
		return nil, fmt.Errorf("db cursor all failed: %w", err)
	}

	reviews := make([]*domain.Review, 0, len(docs))
	for _, doc := range docs {
		reviews = append(reviews, doc.toDomainReview())
	}
	return reviews, nil
}

// ExistsForHostelAndStudent reports whether this student already reviewed
// this hostel.
func (r *ReviewRepository) ExistsForHostelAndStudent(ctx context.Context, hostelID, studentID string) (bool, error) {
	err := r.collection.FindOne(ctx, bson.M{"hostel_id": hostelID, "student_id": studentID}).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		r.logger.Error("Failed to check for existing review in DB", zap.Error(err))
		return false, fmt.Errorf("db findone failed: %w", err)
	}
	return true, nil
}
