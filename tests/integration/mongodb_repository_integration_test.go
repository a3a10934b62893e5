package integration

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	mongoRepo "github.com/hostelconnect/hostel-service/internal/adapter/repository/mongodb"
	hosteldomain "github.com/hostelconnect/hostel-service/internal/hostel/domain"
	identitydomain "github.com/hostelconnect/hostel-service/internal/identity/domain"
	platformLogger "github.com/hostelconnect/hostel-service/internal/platform/logger"
	reviewdomain "github.com/hostelconnect/hostel-service/internal/review/domain"
)

const testDatabaseName = "test_hostelconnect_db"

var (
	testDBClient   *mongo.Client
	testUserRepo   *mongoRepo.UserRepository
	testHostelRepo *mongoRepo.HostelRepository
	testReviewRepo *mongoRepo.ReviewRepository
	testLogger     *platformLogger.Logger

	dockerAvailable bool
)

// TestMain starts a MongoDB container and builds the repositories against it.
// When Docker is not reachable, the suite runs with every test skipping.
func TestMain(m *testing.M) {
	testLogger = platformLogger.NewLogger()

	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Printf("Could not construct pool, skipping integration tests: %s", err)
		os.Exit(m.Run())
	}
	if err := pool.Client.Ping(); err != nil {
		log.Printf("Could not connect to Docker, skipping integration tests: %s", err)
		os.Exit(m.Run())
	}

	mongoResource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mongo",
		Tag:        "5.0",
		Env: []string{
			"MONGO_INITDB_ROOT_USERNAME=root",
			"MONGO_INITDB_ROOT_PASSWORD=password",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("Could not start MongoDB resource: %s", err)
	}
	mongoURI := fmt.Sprintf("mongodb://root:password@%s/%s?authSource=admin",
		mongoResource.GetHostPort("27017/tcp"), testDatabaseName)

	if err := pool.Retry(func() error {
		var errRetry error
		testDBClient, errRetry = mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURI))
		if errRetry != nil {
			return errRetry
		}
		return testDBClient.Ping(context.Background(), nil)
	}); err != nil {
		log.Fatalf("Could not connect to MongoDB: %s", err)
	}

	db := testDBClient.Database(testDatabaseName)
	testUserRepo, err = mongoRepo.NewUserRepository(db, testLogger)
	if err != nil {
		log.Fatalf("Could not create test user repository: %s", err)
	}
	testHostelRepo, err = mongoRepo.NewHostelRepository(db, testLogger)
	if err != nil {
		log.Fatalf("Could not create test hostel repository: %s", err)
	}
	testReviewRepo, err = mongoRepo.NewReviewRepository(db, testLogger)
	if err != nil {
		log.Fatalf("Could not create test review repository: %s", err)
	}
	dockerAvailable = true

	code := m.Run()

	if err := pool.Purge(mongoResource); err != nil {
		log.Fatalf("Could not purge MongoDB resource: %s", err)
	}
	os.Exit(code)
}

func requireDocker(t *testing.T) {
	if !dockerAvailable {
		t.Skip("Docker is not available")
	}
}

func clearCollection(t *testing.T, name string) {
	_, err := testDBClient.Database(testDatabaseName).Collection(name).DeleteMany(context.Background(), bson.M{})
	require.NoError(t, err, "Failed to clear %s collection", name)
}

func newTestUser(username string) *identitydomain.User {
	now := time.Now().UTC()
	return &identitydomain.User{
		Username:     username,
		PasswordHash: "$2a$10$notarealhashbutlongenough0000000000000000000000000000",
		UserType:     "owner",
		Email:        username + "@example.com",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func newTestHostel(ownerID, name, city string, price float64) *hosteldomain.Hostel {
	now := time.Now().UTC()
	return &hosteldomain.Hostel{
		OwnerID: ownerID,
		Name:    name,
		Address: hosteldomain.Address{
			DoorNumber: "12A",
			StreetName: "MG Road",
			City:       city,
			State:      "Karnataka",
			Zipcode:    560001,
		},
		Price:         price,
		Amenities:     []string{"wifi"},
		Photos:        []hosteldomain.Photo{},
		Availability:  true,
		ContactNumber: "9876543210",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// --- Test Cases ---

func TestUserRepository_CreateAndFind(t *testing.T) {
	requireDocker(t)
	clearCollection(t, "users")
	ctx := context.Background()

	user := newTestUser("alice")
	require.NoError(t, testUserRepo.Create(ctx, user))
	assert.NotEmpty(t, user.ID)

	byUsername, err := testUserRepo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byUsername.ID)
	assert.Equal(t, "owner", byUsername.UserType)

	byID, err := testUserRepo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
}

func TestUserRepository_DuplicateUsernameRejectedByIndex(t *testing.T) {
	requireDocker(t)
	clearCollection(t, "users")
	ctx := context.Background()

	require.NoError(t, testUserRepo.Create(ctx, newTestUser("bob")))

	err := testUserRepo.Create(ctx, newTestUser("bob"))
	assert.ErrorIs(t, err, identitydomain.ErrUsernameTaken)
}

func TestUserRepository_MissingUser(t *testing.T) {
	requireDocker(t)
	clearCollection(t, "users")
	ctx := context.Background()

	_, err := testUserRepo.FindByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, identitydomain.ErrUserNotFound)

	_, err = testUserRepo.FindByID(ctx, "not-a-hex-id")
	assert.ErrorIs(t, err, identitydomain.ErrUserNotFound)
}

func TestReviewRepository_DuplicatePairRejectedByIndex(t *testing.T) {
	requireDocker(t)
	clearCollection(t, "reviews")
	ctx := context.Background()

	first, err := reviewdomain.NewReview("hostel1", "student1", 5, "great")
	require.NoError(t, err)
	require.NoError(t, testReviewRepo.Create(ctx, first))

	second, err := reviewdomain.NewReview("hostel1", "student1", 2, "changed my mind")
	require.NoError(t, err)
	err = testReviewRepo.Create(ctx, second)
	assert.ErrorIs(t, err, reviewdomain.ErrReviewAlreadyExists)

	// Same hostel, different student is fine.
	other, err := reviewdomain.NewReview("hostel1", "student2", 4, "")
	require.NoError(t, err)
	assert.NoError(t, testReviewRepo.Create(ctx, other))
}

func TestReviewRepository_FindByHostelIDNewestFirst(t *testing.T) {
	requireDocker(t)
	clearCollection(t, "reviews")
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Millisecond)
	for i, studentID := range []string{"s1", "s2", "s3"} {
		review := &reviewdomain.Review{
			HostelID:  "hostel1",
			StudentID: studentID,
			Rating:    3,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, testReviewRepo.Create(ctx, review))
	}

	reviews, err := testReviewRepo.FindByHostelID(ctx, "hostel1")
	require.NoError(t, err)
	require.Len(t, reviews, 3)
	assert.Equal(t, "s3", reviews[0].StudentID)
	assert.Equal(t, "s2", reviews[1].StudentID)
	assert.Equal(t, "s1", reviews[2].StudentID)
	assert.True(t, reviews[0].CreatedAt.After(reviews[2].CreatedAt))
}

func TestReviewRepository_ExistsForHostelAndStudent(t *testing.T) {
	requireDocker(t)
	clearCollection(t, "reviews")
	ctx := context.Background()

	review, err := reviewdomain.NewReview("hostel1", "student1", 4, "")
	require.NoError(t, err)
	require.NoError(t, testReviewRepo.Create(ctx, review))

	exists, err := testReviewRepo.ExistsForHostelAndStudent(ctx, "hostel1", "student1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = testReviewRepo.ExistsForHostelAndStudent(ctx, "hostel1", "student2")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestHostelRepository_CreateFindUpdateDelete(t *testing.T) {
	requireDocker(t)
	clearCollection(t, "hostels")
	ctx := context.Background()

	hostel := newTestHostel("owner1", "Sunrise Hostel", "Bangalore", 4500)
	require.NoError(t, testHostelRepo.Create(ctx, hostel))
	require.NotEmpty(t, hostel.ID)

	fetched, err := testHostelRepo.FindByID(ctx, hostel.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sunrise Hostel", fetched.Name)
	assert.Equal(t, "Bangalore", fetched.Address.City)

	fetched.Price = 5000
	fetched.Availability = false
	require.NoError(t, testHostelRepo.Update(ctx, fetched))

	updated, err := testHostelRepo.FindByID(ctx, hostel.ID)
	require.NoError(t, err)
	assert.Equal(t, 5000.0, updated.Price)
	assert.False(t, updated.Availability)

	require.NoError(t, testHostelRepo.Delete(ctx, hostel.ID))
	_, err = testHostelRepo.FindByID(ctx, hostel.ID)
	assert.ErrorIs(t, err, hosteldomain.ErrHostelNotFound)
}

func TestHostelRepository_UpdateMissingHostel(t *testing.T) {
	requireDocker(t)
	clearCollection(t, "hostels")
	ctx := context.Background()

	ghost := newTestHostel("owner1", "Ghost Hostel", "Nowhere", 100)
	ghost.ID = "64f000000000000000000000"

	err := testHostelRepo.Update(ctx, ghost)
	assert.ErrorIs(t, err, hosteldomain.ErrHostelNotFound)
}

func TestHostelRepository_FilterQueryAgainstRealDriver(t *testing.T) {
	requireDocker(t)
	clearCollection(t, "hostels")
	ctx := context.Background()

	require.NoError(t, testHostelRepo.Create(ctx, newTestHostel("owner1", "Cheap Stay", "Bangalore", 1500)))
	require.NoError(t, testHostelRepo.Create(ctx, newTestHostel("owner1", "Mid Stay", "Bangalore", 3000)))
	require.NoError(t, testHostelRepo.Create(ctx, newTestHostel("owner2", "Pricey Stay", "Mysore", 9000)))

	min := 1500.0
	max := 3000.0
	inRange, err := testHostelRepo.FindByFilter(ctx, hosteldomain.Filter{PriceMin: &min, PriceMax: &max})
	require.NoError(t, err)
	assert.Len(t, inRange, 2, "price bounds are inclusive")

	// Case-insensitive substring match on city.
	byCity, err := testHostelRepo.FindByFilter(ctx, hosteldomain.Filter{City: "bangal"})
	require.NoError(t, err)
	assert.Len(t, byCity, 2)

	everything, err := testHostelRepo.FindByFilter(ctx, hosteldomain.Filter{})
	require.NoError(t, err)
	assert.Len(t, everything, 3)
}
