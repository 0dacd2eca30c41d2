package storage

import (
	"context"

	"github.com/chrismlittle123/finchly/core"
)

// LinkRepository provides keyed storage for links with upsert-by-unique-URL
// semantics and vector similarity search. Implementations must be
// thread-safe and support concurrent access.
type LinkRepository interface {
	// InsertIfAbsent stores a new unenriched link unless one with the
	// same URL already exists. Generates the content-based ID and sets
	// CreatedAt/UpdatedAt. Returns true if a row was inserted, false if
	// the URL was already present (a no-op, not an error).
	InsertIfAbsent(ctx context.Context, link *core.Link) (bool, error)

	// GetLink retrieves a single link by ID.
	// Returns ErrNotFound if the link doesn't exist.
	GetLink(ctx context.Context, id core.ID) (*core.Link, error)

	// GetLinks retrieves multiple links by their IDs.
	// Returns only the links that exist (no error for missing links).
	GetLinks(ctx context.Context, ids ...core.ID) ([]*core.Link, error)

	// FindByURL retrieves a link by its unique URL.
	// Returns ErrNotFound if no link has that URL.
	FindByURL(ctx context.Context, url string) (*core.Link, error)

	// UpdateEnrichment merges the produced enrichment fields into the
	// link matched by URL: fields the run produced overwrite, empty
	// fields are left untouched. Sets EnrichedAt and UpdatedAt. A
	// missing URL is a no-op, not an error.
	UpdateEnrichment(ctx context.Context, url string, enrichment *core.Enrichment) error

	// UpdateVector replaces a link's embedding vector.
	// Returns ErrNotFound if the link doesn't exist.
	UpdateVector(ctx context.Context, id core.ID, vector []float32) error

	// RecentLinks retrieves up to limit links ordered by creation time
	// descending.
	RecentLinks(ctx context.Context, limit int) ([]*core.Link, error)

	// DeleteLinks removes links by their IDs, including their indices.
	// Returns ErrNotFound if any link doesn't exist.
	DeleteLinks(ctx context.Context, ids ...core.ID) error

	// IterateLinks calls fn for every stored link. Iteration stops at
	// the first error from fn, which is returned.
	IterateLinks(ctx context.Context, fn func(link *core.Link) error) error

	// FindSimilar finds links whose embedding has cosine similarity
	// strictly greater than minSimilarity to the given vector, up to
	// limit results ordered by similarity descending. Links without an
	// embedding do not participate.
	FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.RetrievalMatch, error)

	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}
