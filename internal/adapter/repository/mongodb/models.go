package mongodb

import (
	"fmt"
	"time"

	hosteldomain "github.com/hostelconnect/hostel-service/internal/hostel/domain"
	identitydomain "github.com/hostelconnect/hostel-service/internal/identity/domain"
	reviewdomain "github.com/hostelconnect/hostel-service/internal/review/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// userDocument is the MongoDB representation of a user account.
type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	PasswordHash string             `bson:"password_hash"`
	UserType     string             `bson:"user_type"`
	Email        string             `bson:"email,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (d *userDocument) toDomainUser() *identitydomain.User {
	return &identitydomain.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		UserType:     d.UserType,
		Email:        d.Email,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func fromDomainUser(u *identitydomain.User) (*userDocument, error) {
	if u == nil {
		return nil, nil
	}
	docID, err := objectIDFromDomain(u.ID)
	if err != nil {
		return nil, fmt.Errorf("fromDomainUser: %w", err)
	}
	return &userDocument{
		ID:           docID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		UserType:     u.UserType,
		Email:        u.Email,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}, nil
}

// photoDocument mirrors the persisted photo shape: {url, identifier}.
type photoDocument struct {
	URL        string `bson:"url"`
	Identifier string `bson:"identifier"`
}

// addressDocument is embedded in hostelDocument; it has no identity of its own.
type addressDocument struct {
	DoorNumber string `bson:"door_number"`
	StreetName string `bson:"street_name"`
	Landmark   string `bson:"landmark,omitempty"`
	City       string `bson:"city"`
	State      string `bson:"state"`
	Zipcode    int    `bson:"zipcode"`
}

// hostelDocument is the MongoDB representation of a hostel listing.
type hostelDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID       string             `bson:"owner_id"`
	Name          string             `bson:"name"`
	Address       addressDocument    `bson:"address"`
	Price         float64            `bson:"price"`
	Amenities     []string           `bson:"amenities"`
	Photos        []photoDocument    `bson:"photos"`
	Availability  bool               `bson:"availability"`
	ContactNumber string             `bson:"contact_number"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func fromDomainHostel(h *hosteldomain.Hostel) (*hostelDocument, error) {
	if h == nil {
		return nil, nil
	}
	docID, err := objectIDFromDomain(h.ID)
	if err != nil {
		return nil, fmt.Errorf("fromDomainHostel: %w", err)
	}

	photos := make([]photoDocument, 0, len(h.Photos))
	for _, p := range h.Photos {
		photos = append(photos, photoDocument{URL: p.URL, Identifier: p.Identifier})
	}
	amenities := h.Amenities
	if amenities == nil {
		amenities = []string{}
	}

	return &hostelDocument{
		ID:      docID,
		OwnerID: h.OwnerID,
		Name:    h.Name,
		Address: addressDocument{
			DoorNumber: h.Address.DoorNumber,
			StreetName: h.Address.StreetName,
			Landmark:   h.Address.Landmark,
			City:       h.Address.City,
			State:      h.Address.State,
			Zipcode:    h.Address.Zipcode,
		},
		Price:         h.Price,
		Amenities:     amenities,
		Photos:        photos,
		Availability:  h.Availability,
		ContactNumber: h.ContactNumber,
		CreatedAt:     h.CreatedAt,
		UpdatedAt:     h.UpdatedAt,
	}, nil
}

func (d *hostelDocument) toDomainHostel() *hosteldomain.Hostel {
	photos := make([]hosteldomain.Photo, 0, len(d.Photos))
	for _, p := range d.Photos {
		photos = append(photos, hosteldomain.Photo{URL: p.URL, Identifier: p.Identifier})
	}
	amenities := d.Amenities
	if amenities == nil {
		amenities = []string{}
	}

	return &hosteldomain.Hostel{
		ID:      d.ID.Hex(),
		OwnerID: d.OwnerID,
		Name:    d.Name,
		Address: hosteldomain.Address{
			DoorNumber: d.Address.DoorNumber,
			StreetName: d.Address.StreetName,
			Landmark:   d.Address.Landmark,
			City:       d.Address.City,
			State:      d.Address.State,
			Zipcode:    d.Address.Zipcode,
		},
		Price:         d.Price,
		Amenities:     amenities,
		Photos:        photos,
		Availability:  d.Availability,
		ContactNumber: d.ContactNumber,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func toDomainHostels(docs []*hostelDocument) []*hosteldomain.Hostel {
	hostels := make([]*hosteldomain.Hostel, 0, len(docs))
	for _, doc := range docs {
		hostels = append(hostels, doc.toDomainHostel())
	}
	return hostels
}

// reviewDocument is the MongoDB representation of a review.
type reviewDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	HostelID  string             `bson:"hostel_id"`
	StudentID string             `bson:"student_id"`
	Rating    int32              `bson:"rating"`
	Comment   string             `bson:"comment,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
}

func fromDomainReview(r *reviewdomain.Review) (*reviewDocument, error) {
	if r == nil {
		return nil, nil
	}
	docID, err := objectIDFromDomain(r.ID)
	if err != nil {
		return nil, fmt.Errorf("fromDomainReview: %w", err)
	}
	return &reviewDocument{
		ID:        docID,
		HostelID:  r.HostelID,
		StudentID: r.StudentID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}, nil
}

func (d *reviewDocument) toDomainReview() *reviewdomain.Review {
	return &reviewdomain.Review{
		ID:        d.ID.Hex(),
		HostelID:  d.HostelID,
		StudentID: d.StudentID,
		Rating:    d.Rating,
		Comment:   d.Comment,
		CreatedAt: d.CreatedAt,
	}
}

// objectIDFromDomain converts a domain id into an ObjectID. An empty id maps
// to NilObjectID so that InsertOne with omitempty generates one.
func objectIDFromDomain(id string) (primitive.ObjectID, error) {
	if id == "" {
		return primitive.NilObjectID, nil
	}
	docID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid ID format %q: %w", id, err)
	}
	return docID, nil
}
