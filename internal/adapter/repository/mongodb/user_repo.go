package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	hosteldomain "github.com/hostelconnect/hostel-service/internal/hostel/domain"
	"github.com/hostelconnect/hostel-service/internal/identity/domain"
	"github.com/hostelconnect/hostel-service/internal/platform/logger"
	reviewdomain "github.com/hostelconnect/hostel-service/internal/review/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const userCollectionName = "users"

// UserRepository implements domain.UserRepository using MongoDB. It also
// serves as the user directory for the hostel and review domains, which only
// need display projections of a user.
type UserRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewUserRepository creates the repository and ensures the unique username
// index that backs the duplicate-registration check.
func NewUserRepository(db *mongo.Database, log *logger.Logger) (*UserRepository, error) {
	collection := db.Collection(userCollectionName)

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Error("Failed to create indexes for users collection", zap.Error(err))
		// Indexes may already exist or be created manually; don't fail startup.
	} else {
		log.Info("Successfully ensured indexes for users collection")
	}

	return &UserRepository{
		collection: collection,
		logger:     log.Named("UserRepository"),
	}, nil
}

// Create inserts a new user. A duplicate username maps to ErrUsernameTaken.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	doc, err := fromDomainUser(user)
	if err != nil {
		return err
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	user.ID = doc.ID.Hex()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			r.logger.Warn("Duplicate username on user creation", zap.String("username", user.Username))
			return domain.ErrUsernameTaken
		}
		r.logger.Error("Failed to insert user into DB", zap.Error(err))
		return fmt.Errorf("db insert failed: %w", err)
	}
	return nil
}

// FindByID retrieves a user by its id.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	docID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	var doc userDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": docID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		r.logger.Error("Failed to get user by ID from DB", zap.Error(err), zap.String("user_id", id))
		return nil, fmt.Errorf("db findone failed: %w", err)
	}
	return doc.toDomainUser(), nil
}

// FindByUsername retrieves a user by its unique username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var doc userDocument
	if err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		r.logger.Error("Failed to get user by username from DB", zap.Error(err), zap.String("username", username))
		return nil, fmt.Errorf("db findone failed: %w", err)
	}
	return doc.toDomainUser(), nil
}

// ResolveUser implements the hostel domain's OwnerDirectory.
func (r *UserRepository) ResolveUser(ctx context.Context, userID string) (*hosteldomain.OwnerRef, error) {
	user, err := r.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &hosteldomain.OwnerRef{ID: user.ID, Username: user.Username, UserType: user.UserType}, nil
}

// ResolveStudent implements the review usecase's UserDirectory.
func (r *UserRepository) ResolveStudent(ctx context.Context, userID string) (*reviewdomain.StudentRef, error) {
	user, err := r.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &reviewdomain.StudentRef{ID: user.ID, Username: user.Username, UserType: user.UserType}, nil
}

// ContactEmail implements the review usecase's UserDirectory.
func (r *UserRepository) ContactEmail(ctx context.Context, userID string) (string, error) {
	user, err := r.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.Email, nil
}
