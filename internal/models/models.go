// package models defines the data model for the watchlist web application
package models

import (
	"context"
	"time"
)

// Model defines the base interface for all persistent models in the watchlist.
// Implementations include User and Movie.
type Model interface {
	ID() int64            // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(ctx context.Context, model T) error    // Create inserts a new model into the database
	Get(ctx context.Context, id int64) (T, error) // Get retrieves a model by its ID
	Update(ctx context.Context, model T) error    // Update modifies an existing model in the database
	Delete(ctx context.Context, id int64) error   // Delete removes a model from the database by its ID
	List(ctx context.Context) ([]T, error)        // List retrieves all models ordered by ID
	Count(ctx context.Context) (int, error)       // Count returns the number of stored models
}

// timestamps carries the bookkeeping fields shared by persistent models.
type timestamps struct {
	createdAt time.Time
	updatedAt time.Time
}

func newTimestamps() timestamps {
	now := time.Now().UTC()
	return timestamps{createdAt: now, updatedAt: now}
}

func (t *timestamps) CreatedAt() time.Time      { return t.createdAt }
func (t *timestamps) UpdatedAt() time.Time      { return t.updatedAt }
func (t *timestamps) SetCreatedAt(ts time.Time) { t.createdAt = ts }
func (t *timestamps) SetUpdatedAt(ts time.Time) { t.updatedAt = ts }
