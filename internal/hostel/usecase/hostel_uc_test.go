package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/hostelconnect/hostel-service/internal/hostel/domain"
	"github.com/hostelconnect/hostel-service/internal/platform/logger"
)

type MockHostelRepository struct{ mock.Mock }

func (m *MockHostelRepository) Create(ctx context.Context, hostel *domain.Hostel) error {
	args := m.Called(ctx, hostel)
	return args.Error(0)
}
func (m *MockHostelRepository) Update(ctx context.Context, hostel *domain.Hostel) error {
	args := m.Called(ctx, hostel)
	return args.Error(0)
}
func (m *MockHostelRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockHostelRepository) FindByID(ctx context.Context, id string) (*domain.Hostel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Hostel), args.Error(1)
}
func (m *MockHostelRepository) FindByFilter(ctx context.Context, filter domain.Filter) ([]*domain.Hostel, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Hostel), args.Error(1)
}

type MockOwnerDirectory struct{ mock.Mock }

func (m *MockOwnerDirectory) ResolveUser(ctx context.Context, userID string) (*domain.OwnerRef, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OwnerRef), args.Error(1)
}

func newTestHostelUsecase(repo *MockHostelRepository, owners *MockOwnerDirectory, storage *MockPhotoStorage) *HostelUsecase {
	log := logger.NewLogger()
	return NewHostelUsecase(repo, owners, NewPhotoReconciler(storage, log), nil, nil, log)
}

func validCreateInput() CreateHostelInput {
	price := 4500.0
	return CreateHostelInput{
		Name: "Sunrise Hostel",
		Address: &domain.Address{
			DoorNumber: "12A",
			StreetName: "MG Road",
			City:       "Bangalore",
			State:      "Karnataka",
			Zipcode:    560001,
		},
		Price:         &price,
		Amenities:     []string{"wifi"},
		ContactNumber: "9876543210",
	}
}

func TestHostelUsecase_Create_RejectsNonOwner(t *testing.T) {
	repo := new(MockHostelRepository)
	uc := newTestHostelUsecase(repo, new(MockOwnerDirectory), new(MockPhotoStorage))

	_, err := uc.Create(context.Background(), Actor{UserID: "u1", UserType: "student"}, validCreateInput())

	assert.ErrorIs(t, err, domain.ErrForbidden)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestHostelUsecase_Create_RequiresMandatoryFields(t *testing.T) {
	repo := new(MockHostelRepository)
	uc := newTestHostelUsecase(repo, new(MockOwnerDirectory), new(MockPhotoStorage))
	actor := Actor{UserID: "u1", UserType: "owner"}

	input := validCreateInput()
	input.Name = ""
	_, err := uc.Create(context.Background(), actor, input)
	assert.ErrorIs(t, err, domain.ErrInvalidHostelData)

	input = validCreateInput()
	input.Price = nil
	_, err = uc.Create(context.Background(), actor, input)
	assert.ErrorIs(t, err, domain.ErrInvalidHostelData)

	input = validCreateInput()
	negative := -1.0
	input.Price = &negative
	_, err = uc.Create(context.Background(), actor, input)
	assert.ErrorIs(t, err, domain.ErrInvalidHostelData)
}

func TestHostelUsecase_Create_DefaultsAvailabilityTrue(t *testing.T) {
	repo := new(MockHostelRepository)
	owners := new(MockOwnerDirectory)
	uc := newTestHostelUsecase(repo, owners, new(MockPhotoStorage))
	ctx := context.Background()
	actor := Actor{UserID: "u1", UserType: "owner"}

	repo.On("Create", ctx, mock.AnythingOfType("*domain.Hostel")).Return(nil).Once()
	owners.On("ResolveUser", ctx, "u1").Return(&domain.OwnerRef{ID: "u1", Username: "alice", UserType: "owner"}, nil).Once()

	hostel, err := uc.Create(ctx, actor, validCreateInput())

	assert.NoError(t, err)
	assert.True(t, hostel.Availability)
	assert.Equal(t, "u1", hostel.OwnerID)
	assert.NotNil(t, hostel.Photos)
	assert.Equal(t, "alice", hostel.Owner.Username)
	repo.AssertExpectations(t)
}

func TestHostelUsecase_Update_ChecksOwnership(t *testing.T) {
	repo := new(MockHostelRepository)
	uc := newTestHostelUsecase(repo, new(MockOwnerDirectory), new(MockPhotoStorage))
	ctx := context.Background()

	repo.On("FindByID", ctx, "h1").Return(&domain.Hostel{ID: "h1", OwnerID: "someone-else"}, nil).Once()

	name := "New Name"
	_, err := uc.Update(ctx, Actor{UserID: "u1", UserType: "owner"}, "h1", UpdateHostelInput{Name: &name})

	assert.ErrorIs(t, err, domain.ErrForbidden)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestHostelUsecase_Update_NotFound(t *testing.T) {
	repo := new(MockHostelRepository)
	uc := newTestHostelUsecase(repo, new(MockOwnerDirectory), new(MockPhotoStorage))
	ctx := context.Background()

	repo.On("FindByID", ctx, "missing").Return(nil, domain.ErrHostelNotFound).Once()

	_, err := uc.Update(ctx, Actor{UserID: "u1", UserType: "owner"}, "missing", UpdateHostelInput{})

	assert.ErrorIs(t, err, domain.ErrHostelNotFound)
}

func TestHostelUsecase_Update_AppliesOnlyProvidedFields(t *testing.T) {
	repo := new(MockHostelRepository)
	owners := new(MockOwnerDirectory)
	uc := newTestHostelUsecase(repo, owners, new(MockPhotoStorage))
	ctx := context.Background()

	current := &domain.Hostel{
		ID:            "h1",
		OwnerID:       "u1",
		Name:          "Old Name",
		Price:         3000,
		Availability:  true,
		ContactNumber: "111",
	}
	repo.On("FindByID", ctx, "h1").Return(current, nil).Once()
	repo.On("Update", ctx, mock.AnythingOfType("*domain.Hostel")).Return(nil).Once()
	owners.On("ResolveUser", ctx, "u1").Return(&domain.OwnerRef{ID: "u1", Username: "alice"}, nil).Once()

	price := 0.0
	availability := false
	updated, err := uc.Update(ctx, Actor{UserID: "u1", UserType: "owner"}, "h1", UpdateHostelInput{
		Price:        &price,
		Availability: &availability,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Old Name", updated.Name)
	assert.Equal(t, 0.0, updated.Price)
	assert.False(t, updated.Availability)
	assert.Equal(t, "111", updated.ContactNumber)
	repo.AssertExpectations(t)
}

func TestHostelUsecase_Update_ReconcilesPhotoSet(t *testing.T) {
	repo := new(MockHostelRepository)
	owners := new(MockOwnerDirectory)
	storage := new(MockPhotoStorage)
	uc := newTestHostelUsecase(repo, owners, storage)
	ctx := context.Background()

	current := &domain.Hostel{
		ID:      "h1",
		OwnerID: "u1",
		Photos: []domain.Photo{
			{URL: "http://s3/a.jpg", Identifier: "photos/a.jpg"},
			{URL: "http://s3/b.jpg", Identifier: "photos/b.jpg"},
		},
	}
	repo.On("FindByID", ctx, "h1").Return(current, nil).Once()
	repo.On("Update", ctx, mock.AnythingOfType("*domain.Hostel")).Return(nil).Once()
	owners.On("ResolveUser", ctx, "u1").Return(&domain.OwnerRef{ID: "u1"}, nil).Once()
	storage.On("Delete", ctx, "photos/b.jpg").Return(nil).Once()

	photos := []domain.Photo{{URL: "http://s3/a.jpg", Identifier: "photos/a.jpg"}}
	updated, err := uc.Update(ctx, Actor{UserID: "u1", UserType: "owner"}, "h1", UpdateHostelInput{Photos: &photos})

	assert.NoError(t, err)
	assert.Equal(t, photos, updated.Photos)
	storage.AssertExpectations(t)
}

func TestHostelUsecase_Update_NilPhotosSkipsReconcile(t *testing.T) {
	repo := new(MockHostelRepository)
	owners := new(MockOwnerDirectory)
	storage := new(MockPhotoStorage)
	uc := newTestHostelUsecase(repo, owners, storage)
	ctx := context.Background()

	current := &domain.Hostel{
		ID:      "h1",
		OwnerID: "u1",
		Photos:  []domain.Photo{{URL: "http://s3/a.jpg", Identifier: "photos/a.jpg"}},
	}
	repo.On("FindByID", ctx, "h1").Return(current, nil).Once()
	repo.On("Update", ctx, mock.AnythingOfType("*domain.Hostel")).Return(nil).Once()
	owners.On("ResolveUser", ctx, "u1").Return(&domain.OwnerRef{ID: "u1"}, nil).Once()

	name := "Renamed"
	updated, err := uc.Update(ctx, Actor{UserID: "u1", UserType: "owner"}, "h1", UpdateHostelInput{Name: &name})

	assert.NoError(t, err)
	assert.Len(t, updated.Photos, 1)
	storage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestHostelUsecase_Delete_TearsDownPhotos(t *testing.T) {
	repo := new(MockHostelRepository)
	storage := new(MockPhotoStorage)
	uc := newTestHostelUsecase(repo, new(MockOwnerDirectory), storage)
	ctx := context.Background()

	current := &domain.Hostel{
		ID:      "h1",
		OwnerID: "u1",
		Photos: []domain.Photo{
			{URL: "http://s3/a.jpg", Identifier: "photos/a.jpg"},
			{URL: "http://s3/b.jpg", Identifier: "photos/b.jpg"},
		},
	}
	repo.On("FindByID", ctx, "h1").Return(current, nil).Once()
	storage.On("Delete", ctx, "photos/a.jpg").Return(nil).Once()
	storage.On("Delete", ctx, "photos/b.jpg").Return(nil).Once()
	repo.On("Delete", ctx, "h1").Return(nil).Once()

	err := uc.Delete(ctx, Actor{UserID: "u1", UserType: "owner"}, "h1")

	assert.NoError(t, err)
	repo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestHostelUsecase_Delete_ProceedsWhenAssetDeleteFails(t *testing.T) {
	repo := new(MockHostelRepository)
	storage := new(MockPhotoStorage)
	uc := newTestHostelUsecase(repo, new(MockOwnerDirectory), storage)
	ctx := context.Background()

	current := &domain.Hostel{
		ID:      "h1",
		OwnerID: "u1",
		Photos:  []domain.Photo{{URL: "http://s3/a.jpg", Identifier: "photos/a.jpg"}},
	}
	repo.On("FindByID", ctx, "h1").Return(current, nil).Once()
	storage.On("Delete", ctx, "photos/a.jpg").Return(errors.New("storage down")).Once()
	repo.On("Delete", ctx, "h1").Return(nil).Once()

	err := uc.Delete(ctx, Actor{UserID: "u1", UserType: "owner"}, "h1")

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestHostelUsecase_Delete_RejectsNonOwnerRole(t *testing.T) {
	repo := new(MockHostelRepository)
	uc := newTestHostelUsecase(repo, new(MockOwnerDirectory), new(MockPhotoStorage))

	err := uc.Delete(context.Background(), Actor{UserID: "u1", UserType: "student"}, "h1")

	assert.ErrorIs(t, err, domain.ErrForbidden)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestHostelUsecase_Search_ResolvesOwnersOnce(t *testing.T) {
	repo := new(MockHostelRepository)
	owners := new(MockOwnerDirectory)
	uc := newTestHostelUsecase(repo, owners, new(MockPhotoStorage))
	ctx := context.Background()

	hostels := []*domain.Hostel{
		{ID: "h1", OwnerID: "u1"},
		{ID: "h2", OwnerID: "u1"},
	}
	min := 1000.0
	filter := domain.Filter{PriceMin: &min, City: "bangalore"}
	repo.On("FindByFilter", ctx, filter).Return(hostels, nil).Once()
	owners.On("ResolveUser", ctx, "u1").Return(&domain.OwnerRef{ID: "u1", Username: "alice"}, nil).Once()

	result, err := uc.Search(ctx, filter)

	assert.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Equal(t, "alice", result[0].Owner.Username)
	assert.Equal(t, "alice", result[1].Owner.Username)
	owners.AssertExpectations(t)
}

func TestHostelUsecase_Search_WrapsRepositoryError(t *testing.T) {
	repo := new(MockHostelRepository)
	uc := newTestHostelUsecase(repo, new(MockOwnerDirectory), new(MockPhotoStorage))
	ctx := context.Background()

	repo.On("FindByFilter", ctx, domain.Filter{}).Return(nil, errors.New("cursor error")).Once()

	_, err := uc.Search(ctx, domain.Filter{})

	assert.ErrorIs(t, err, domain.ErrRepository)
}
