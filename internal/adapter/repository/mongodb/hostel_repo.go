package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/hostelconnect/hostel-service/internal/hostel/domain"
	"github.com/hostelconnect/hostel-service/internal/platform/logger"
	reviewdomain "github.com/hostelconnect/hostel-service/internal/review/domain"
	reviewusecase "github.com/hostelconnect/hostel-service/internal/review/usecase"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const hostelCollectionName = "hostels"

// HostelRepository implements domain.HostelRepository using MongoDB.
type HostelRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewHostelRepository(db *mongo.Database, log *logger.Logger) (*HostelRepository, error) {
	collection := db.Collection(hostelCollectionName)

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
		{Keys: bson.D{{Key: "address.city", Value: 1}}},
		{Keys: bson.D{{Key: "address.zipcode", Value: 1}}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Error("Failed to create indexes for hostels collection", zap.Error(err))
	} else {
		log.Info("Successfully ensured indexes for hostels collection")
	}

	return &HostelRepository{
		collection: collection,
		logger:     log.Named("HostelRepository"),
	}, nil
}

// Create inserts a new hostel and writes the generated id back to the domain
// entity.
func (r *HostelRepository) Create(ctx context.Context, hostel *domain.Hostel) error {
	doc, err := fromDomainHostel(hostel)
	if err != nil {
		return err
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	hostel.ID = doc.ID.Hex()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		r.logger.Error("Failed to insert hostel into DB", zap.Error(err))
		return fmt.Errorf("db insert failed: %w", err)
	}
	return nil
}

// Update replaces a hostel's mutable fields.
func (r *HostelRepository) Update(ctx context.Context, hostel *domain.Hostel) error {
	doc, err := fromDomainHostel(hostel)
	if err != nil {
		return err
	}
	if doc.ID.IsZero() {
		return errors.New("cannot update hostel without ID")
	}

	update := bson.M{
		"$set": bson.M{
			"name":           doc.Name,
			"address":        doc.Address,
			"price":          doc.Price,
			"amenities":      doc.Amenities,
			"photos":         doc.Photos,
			"availability":   doc.Availability,
			"contact_number": doc.ContactNumber,
			"updated_at":     doc.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": doc.ID}, update)
	if err != nil {
		r.logger.Error("Failed to update hostel in DB", zap.Error(err), zap.String("hostel_id", hostel.ID))
		return fmt.Errorf("db update failed: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrHostelNotFound
	}
	return nil
}

// Delete removes a hostel record.
func (r *HostelRepository) Delete(ctx context.Context, id string) error {
	docID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrHostelNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": docID})
	if err != nil {
		r.logger.Error("Failed to delete hostel from DB", zap.Error(err), zap.String("hostel_id", id))
		return fmt.Errorf("db delete failed: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrHostelNotFound
	}
	return nil
}

// FindByID retrieves a hostel by its id.
func (r *HostelRepository) FindByID(ctx context.Context, id string) (*domain.Hostel, error) {
	docID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrHostelNotFound
	}

	var doc hostelDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": docID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrHostelNotFound
		}
		r.logger.Error("Failed to get hostel by ID from DB", zap.Error(err), zap.String("hostel_id", id))
		return nil, fmt.Errorf("db findone failed: %w", err)
	}
	return doc.toDomainHostel(), nil
}

// FindByFilter retrieves all hostels matching the filter, newest first.
func (r *HostelRepository) FindByFilter(ctx context.Context, filter domain.Filter) ([]*domain.Hostel, error) {
	query := buildHostelQuery(filter)

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		r.logger.Error("Failed to find hostels by filter from DB", zap.Error(err))
		return nil, fmt.Errorf("db find failed: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*hostelDocument
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("Failed to decode hostels from DB", zap.Error(err))
		return nil, fmt.Errorf("db cursor all failed: %w", err)
	}
	return toDomainHostels(docs), nil
}

// LookupHostel implements the review usecase's HostelCatalog: existence plus
// the fields the review flow needs.
func (r *HostelRepository) LookupHostel(ctx context.Context, hostelID string) (*reviewusecase.HostelInfo, error) {
	hostel, err := r.FindByID(ctx, hostelID)
	if err != nil {
		if errors.Is(err, domain.ErrHostelNotFound) {
			return nil, reviewdomain.ErrNotFound
		}
		return nil, err
	}
	return &reviewusecase.HostelInfo{ID: hostel.ID, Name: hostel.Name, OwnerID: hostel.OwnerID}, nil
}

// buildHostelQuery translates a domain filter into a MongoDB query. Absent
// options impose no constraint; all present options are ANDed. City and state
// match as case-insensitive substrings, zipcode exactly, and the price bounds
// are inclusive.
func buildHostelQuery(filter domain.Filter) bson.M {
	query := bson.M{}

	price := bson.M{}
	if filter.PriceMin != nil {
		price["$gte"] = *filter.PriceMin
	}
	if filter.PriceMax != nil {
		price["$lte"] = *filter.PriceMax
	}
	if len(price) > 0 {
		query["price"] = price
	}

	if filter.City != "" {
		query["address.city"] = bson.M{"$regex": regexp.QuoteMeta(filter.City), "$options": "i"}
	}
	if filter.State != "" {
		query["address.state"] = bson.M{"$regex": regexp.QuoteMeta(filter.State), "$options": "i"}
	}
	if filter.Zipcode != nil {
		query["address.zipcode"] = *filter.Zipcode
	}
	return query
}
