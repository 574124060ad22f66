// Package catalog stores word records and orchestrates bulk imports.
package catalog

import (
	"context"

	"github.com/autolearn/kotoba/internal/models"
)

// Store is the document-store collaborator for the word catalog. Consumers
// depend on this interface rather than the concrete Mongo type to facilitate
// testing with in-memory fakes.
type Store interface {
	// Insert persists one word record.
	Insert(ctx context.Context, rec *models.WordRecord) error
	// DeleteAll removes every word record.
	DeleteAll(ctx context.Context) error
	// ListAll returns every word record sorted by createdAt descending,
	// free of any storage-internal identifier.
	ListAll(ctx context.Context) ([]models.WordRecord, error)
}

// Verify *Mongo satisfies Store at compile time.
var _ Store = (*Mongo)(nil)
