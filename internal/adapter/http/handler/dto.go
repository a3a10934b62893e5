package handler

import (
	"time"

	hosteldomain "github.com/hostelconnect/hostel-service/internal/hostel/domain"
	reviewdomain "github.com/hostelconnect/hostel-service/internal/review/domain"
)

type photoDTO struct {
	URL        string `json:"url"`
	Identifier string `json:"identifier"`
}

type addressDTO struct {
	DoorNumber string `json:"doorNumber"`
	StreetName string `json:"streetName"`
	Landmark   string `json:"landmark,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	Zipcode    int    `json:"zipcode"`
}

type ownerDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	UserType string `json:"userType"`
}

type hostelResponse struct {
	ID            string     `json:"id"`
	Owner         *ownerDTO  `json:"owner,omitempty"`
	OwnerID       string     `json:"ownerId"`
	Name          string     `json:"name"`
	Address       addressDTO `json:"address"`
	Price         float64    `json:"price"`
	Amenities     []string   `json:"amenities"`
	Photos        []photoDTO `json:"photos"`
	Availability  bool       `json:"availability"`
	ContactNumber string     `json:"contactNumber"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type studentDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type reviewResponse struct {
	ID        string      `json:"id"`
	HostelID  string      `json:"hostelId"`
	Student   *studentDTO `json:"student,omitempty"`
	StudentID string      `json:"studentId"`
	Rating    int32       `json:"rating"`
	Comment   string      `json:"comment"`
	CreatedAt time.Time   `json:"createdAt"`
}

func photosToDTO(photos []hosteldomain.Photo) []photoDTO {
	out := make([]photoDTO, 0, len(photos))
	for _, p := range photos {
		out = append(out, photoDTO{URL: p.URL, Identifier: p.Identifier})
	}
	return out
}

func photosFromDTO(photos []photoDTO) []hosteldomain.Photo {
	out := make([]hosteldomain.Photo, 0, len(photos))
	for _, p := range photos {
		out = append(out, hosteldomain.Photo{URL: p.URL, Identifier: p.Identifier})
	}
	return out
}

func addressToDTO(a hosteldomain.Address) addressDTO {
	return addressDTO{
		DoorNumber: a.DoorNumber,
		StreetName: a.StreetName,
		Landmark:   a.Landmark,
		City:       a.City,
		State:      a.State,
		Zipcode:    a.Zipcode,
	}
}

func addressFromDTO(a addressDTO) hosteldomain.Address {
	return hosteldomain.Address{
		DoorNumber: a.DoorNumber,
		StreetName: a.StreetName,
		Landmark:   a.Landmark,
		City:       a.City,
		State:      a.State,
		Zipcode:    a.Zipcode,
	}
}

func hostelToResponse(h *hosteldomain.Hostel) hostelResponse {
	resp := hostelResponse{
		ID:            h.ID,
		OwnerID:       h.OwnerID,
		Name:          h.Name,
		Address:       addressToDTO(h.Address),
		Price:         h.Price,
		Amenities:     h.Amenities,
		Photos:        photosToDTO(h.Photos),
		Availability:  h.Availability,
		ContactNumber: h.ContactNumber,
		CreatedAt:     h.CreatedAt,
		UpdatedAt:     h.UpdatedAt,
	}
	if resp.Amenities == nil {
		resp.Amenities = []string{}
	}
	if h.Owner != nil {
		resp.Owner = &ownerDTO{ID: h.Owner.ID, Username: h.Owner.Username, UserType: h.Owner.UserType}
	}
	return resp
}

func reviewToResponse(r *reviewdomain.Review) reviewResponse {
	resp := reviewResponse{
		ID:        r.ID,
		HostelID:  r.HostelID,
		StudentID: r.StudentID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
	if r.Student != nil {
		resp.Student = &studentDTO{ID: r.Student.ID, Username: r.Student.Username}
	}
	return resp
}
