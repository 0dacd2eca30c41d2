package badger

import (
	"context"
	"slices"
	"time"

	"github.com/chrismlittle123/finchly/core"
	"github.com/chrismlittle123/finchly/storage"
	"github.com/dgraph-io/badger/v4"
)

// LinkRepository implements storage.LinkRepository for BadgerDB.
type LinkRepository struct {
	backend *Backend
}

var _ storage.LinkRepository = (*LinkRepository)(nil)

// NewLinkRepository creates a new LinkRepository.
func NewLinkRepository(backend *Backend) *LinkRepository {
	return &LinkRepository{backend: backend}
}

// Close is a no-op; the backend owns the database handle.
func (r *LinkRepository) Close() error {
	return nil
}

// FindSimilar delegates to the backend.
func (r *LinkRepository) FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.RetrievalMatch, error) {
	return r.backend.FindSimilar(ctx, vector, minSimilarity, limit)
}

// WithTransaction delegates to the backend.
func (r *LinkRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// InsertIfAbsent stores a new unenriched link unless its URL is already
// present. The ID is derived from the URL, so retried inserts of the
// same URL are idempotent.
func (r *LinkRepository) InsertIfAbsent(ctx context.Context, link *core.Link) (bool, error) {
	if err := core.ValidateLink(link); err != nil {
		return false, err
	}

	inserted := false
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		urlKey := makeLinkURLKey(link.URL)
		_, err := tx.Get(urlKey)
		if err == nil {
			// URL already saved
			return nil
		}
		if err != badger.ErrKeyNotFound {
			return err
		}

		link.Id = core.IDFromURL(link.URL)
		link.CreatedAt = time.Now().UTC()
		link.UpdatedAt = link.CreatedAt

		// Store primary record
		key := makeLinkKey(link.Id)
		if err := tx.Set(key, storage.MarshalLink(link)); err != nil {
			return err
		}

		// Update URL index
		if err := tx.Set(urlKey, storage.MarshalID(link.Id)); err != nil {
			return err
		}

		// Update creation-time index
		createdKey := makeLinkCreatedKey(link.CreatedAt, link.Id)
		if err := tx.Set(createdKey, storage.MarshalID(link.Id)); err != nil {
			return err
		}

		inserted = true
		return tx.Commit()
	}, true)

	return inserted, err
}

// GetLink retrieves a single link by ID.
func (r *LinkRepository) GetLink(ctx context.Context, id core.ID) (*core.Link, error) {
	var result *core.Link
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readLink(tx, makeLinkKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetLinks retrieves multiple links by their IDs. Missing IDs are
// silently skipped.
func (r *LinkRepository) GetLinks(ctx context.Context, ids ...core.ID) ([]*core.Link, error) {
	var result []*core.Link
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			link, err := r.readLink(tx, makeLinkKey(id))
			if err != nil {
				return err
			}
			if link != nil {
				result = append(result, link)
			}
		}
		return nil
	}, false)
	return result, err
}

// FindByURL retrieves a link by its unique URL.
func (r *LinkRepository) FindByURL(ctx context.Context, url string) (*core.Link, error) {
	var result *core.Link
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		id, err := r.readURLIndex(tx, url)
		if err != nil {
			return err
		}
		result, err = r.readLink(tx, makeLinkKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// UpdateEnrichment merges enrichment fields into the link matched by
// URL. Empty fields leave the stored value untouched, so a degraded run
// never erases data from an earlier richer one. A missing URL is a
// no-op.
func (r *LinkRepository) UpdateEnrichment(ctx context.Context, url string, enrichment *core.Enrichment) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		id, err := r.readURLIndex(tx, url)
		if err == storage.ErrNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		link, err := r.readLink(tx, makeLinkKey(id))
		if err != nil {
			return err
		}
		if link == nil {
			return nil
		}

		if enrichment.Title != "" {
			link.Title = enrichment.Title
		}
		if enrichment.Description != "" {
			link.Description = enrichment.Description
		}
		if enrichment.Summary != "" {
			link.Summary = enrichment.Summary
		}
		if len(enrichment.Tags) > 0 {
			link.Tags = enrichment.Tags
		}
		if enrichment.ImageURL != "" {
			link.ImageURL = enrichment.ImageURL
		}
		if enrichment.RawContent != "" {
			link.RawContent = enrichment.RawContent
		}
		if enrichment.Source != 0 {
			link.Source = enrichment.Source
		}
		if len(enrichment.Vector) > 0 {
			link.Vector = enrichment.Vector
		}

		link.EnrichedAt = time.Now().UTC()
		link.UpdatedAt = link.EnrichedAt

		if err := tx.Set(makeLinkKey(link.Id), storage.MarshalLink(link)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// UpdateVector replaces a link's embedding vector.
func (r *LinkRepository) UpdateVector(ctx context.Context, id core.ID, vector []float32) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		link, err := r.readLink(tx, makeLinkKey(id))
		if err != nil {
			return err
		}
		if link == nil {
			return storage.ErrNotFound
		}

		link.Vector = vector
		link.UpdatedAt = time.Now().UTC()

		if err := tx.Set(makeLinkKey(link.Id), storage.MarshalLink(link)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// RecentLinks retrieves the N most recent links, ordered by creation
// time descending.
func (r *LinkRepository) RecentLinks(ctx context.Context, limit int) ([]*core.Link, error) {
	var results []*core.Link
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Use reverse iterator to get most recent links first
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek to the last possible key in the creation-time index
		startKey := makePartialLinkCreatedKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))

		prefix := []byte(linkCreatedPrefix + ":")

		count := 0
		for iter.Seek(startKey); iter.Valid() && count < limit; iter.Next() {
			key := iter.Item().Key()

			// Check if we're still in the creation-time index
			if len(key) < len(prefix) || slices.Compare(key[:len(prefix)], prefix) != 0 {
				break
			}

			// Read the ID from the index
			var id core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				id, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			// Look up the full record
			link, err := r.readLink(tx, makeLinkKey(id))
			if err != nil {
				return err
			}
			if link != nil {
				results = append(results, link)
				count++
			}
		}
		return nil
	}, false)

	return results, err
}

// DeleteLinks removes links by their IDs, including their indices.
func (r *LinkRepository) DeleteLinks(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeLinkKey(id)

			// Read record to get metadata for index cleanup
			link, err := r.readLink(tx, key)
			if err != nil {
				return err
			}
			if link == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(makeLinkURLKey(link.URL)); err != nil {
				return err
			}
			if err := tx.Delete(makeLinkCreatedKey(link.CreatedAt, link.Id)); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// IterateLinks calls fn for every stored link.
func (r *LinkRepository) IterateLinks(ctx context.Context, fn func(link *core.Link) error) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(linkRecordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		createdPrefix := []byte(linkCreatedPrefix + ":")
		for iter.Rewind(); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if len(key) >= len(createdPrefix) && slices.Compare(key[:len(createdPrefix)], createdPrefix) == 0 {
				continue
			}

			var link *core.Link
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				link, err = storage.UnmarshalLink(val)
				return err
			}); err != nil {
				return err
			}
			if err := fn(link); err != nil {
				return err
			}
		}
		return nil
	}, false)
}

// readLink reads and deserializes a link within a transaction.
// Returns nil (not an error) if the key doesn't exist.
func (r *LinkRepository) readLink(tx *badger.Txn, key []byte) (*core.Link, error) {
	item, err := tx.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var link *core.Link
	err = item.Value(func(val []byte) error {
		var err error
		link, err = storage.UnmarshalLink(val)
		return err
	})
	return link, err
}

// readURLIndex resolves a URL to a link ID through the URL index.
func (r *LinkRepository) readURLIndex(tx *badger.Txn, url string) (core.ID, error) {
	item, err := tx.Get(makeLinkURLKey(url))
	if err == badger.ErrKeyNotFound {
		return 0, storage.ErrNotFound
	}
	if err != nil {
		return 0, err
	}

	var id core.ID
	err = item.Value(func(val []byte) error {
		var err error
		id, err = storage.UnmarshalID(val)
		return err
	})
	return id, err
}
