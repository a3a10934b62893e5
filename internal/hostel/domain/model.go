package domain

import "time"

// Photo is a single gallery image stored in external object storage.
// Identifier is the storage key and the identity used when two photo sets
// are reconciled; the URL is display-only and may change without the photo
// becoming a different asset.
type Photo struct {
	URL        string
	Identifier string
}

// Address is embedded in a Hostel and has no identity of its own. It is
// replaced wholesale on update.
type Address struct {
	DoorNumber string
	StreetName string
	Landmark   string
	City       string
	State      string
	Zipcode    int
}

// Hostel is the canonical listing record. OwnerID is a weak reference to the
// user that created it; Owner is resolved at the service layer for display
// and is never persisted.
type Hostel struct {
	ID            string
	OwnerID       string
	Name          string
	Address       Address
	Price         float64
	Amenities     []string
	Photos        []Photo
	Availability  bool
	ContactNumber string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Owner *OwnerRef
}

// OwnerRef is the display projection of a hostel's owner.
type OwnerRef struct {
	ID       string
	Username string
	UserType string
}

// Filter holds the recognized search options. Zero values impose no
// constraint; PriceMin/PriceMax use pointers so that a bound of 0 is still a
// bound. All present options are ANDed.
type Filter struct {
	PriceMin *float64
	PriceMax *float64
	City     string
	State    string
	Zipcode  *int
}
