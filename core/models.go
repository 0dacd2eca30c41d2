package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// Link IDs are generated by content-based hashing of the URL.
type ID uint64

// IDFromURL generates a deterministic ID from a URL using BLAKE2b hashing.
// The same URL always produces the same ID, which makes link inserts
// naturally idempotent.
func IDFromURL(url string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(url))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Link represents a saved URL together with everything the enrichment
// pipeline has derived for it. A freshly inserted link carries only the
// URL and provenance; enrichment populates the remaining fields and sets
// EnrichedAt.
type Link struct {
	Id          ID
	URL         string
	Title       string
	Description string
	Summary     string
	Tags        []string // ordered, taxonomy-constrained
	ImageURL    string
	RawContent  string // extracted body text, may be large
	Source      SourceKind
	Vector      []float32 // embedding, empty means unavailable
	ChannelID   string    // originating chat channel, optional
	UserID      string    // originating chat user, optional
	MessageTS   string    // originating chat message timestamp, optional
	EnrichedAt  time.Time // zero until the first enrichment run persists
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Enriched reports whether the link has been through at least one
// enrichment run.
func (l *Link) Enriched() bool {
	return !l.EnrichedAt.IsZero()
}

// ExtractionResult is the normalized output of a content extractor.
// It is ephemeral: the orchestrator folds it into the stored Link.
type ExtractionResult struct {
	Title       string
	Description string
	ImageURL    string
	RawContent  string
	Source      SourceKind // always set, even for bare results
	// ExtractedURLs are URLs discovered inside the content, e.g.
	// unshortened links inside a social post.
	ExtractedURLs []string
}

// SummaryResult holds the model-derived summary and tags for a link.
// Tags are guaranteed to be members of the fixed taxonomy.
type SummaryResult struct {
	Summary string
	Tags    []string
}

// Enrichment carries the fields one enrichment run produced for a link.
// Empty fields were not produced by the run and must be left untouched
// on the stored record.
type Enrichment struct {
	Title       string
	Description string
	Summary     string
	Tags        []string
	ImageURL    string
	RawContent  string
	Source      SourceKind
	Vector      []float32
}

// RetrievalMatch is a stored link plus its similarity to a query vector.
type RetrievalMatch struct {
	Link       *Link
	Similarity float32
}
