package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/hostelconnect/hostel-service/internal/hostel/domain"
	"github.com/redis/go-redis/v9"
)

const hostelKeyPrefix = "hostel:"
const hostelTTL = 1 * time.Hour

// HostelCache is a redis read-through cache for single-hostel lookups.
type HostelCache struct {
	client *redis.Client
}

func NewHostelCache(addr string) (*HostelCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr, // e.g., "localhost:6379"
	})
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}
	return &HostelCache{client: client}, nil
}

// GetHostel returns (nil, nil) on cache miss.
func (c *HostelCache) GetHostel(ctx context.Context, id string) (*domain.Hostel, error) {
	data, err := c.client.Get(ctx, hostelKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var hostel domain.Hostel
	if err := json.Unmarshal(data, &hostel); err != nil {
		return nil, err
	}
	return &hostel, nil
}

func (c *HostelCache) SetHostel(ctx context.Context, hostel *domain.Hostel) error {
	// The display-only owner projection is not cached.
	clone := *hostel
	clone.Owner = nil

	data, err := json.Marshal(&clone)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, hostelKeyPrefix+hostel.ID, data, hostelTTL).Err()
}

func (c *HostelCache) DeleteHostel(ctx context.Context, id string) error {
	return c.client.Del(ctx, hostelKeyPrefix+id).Err()
}
