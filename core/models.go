package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Source identifies the job board a posting was collected from.
type Source int

const (
	// SourceIndeed represents postings collected from Indeed.
	SourceIndeed Source = iota + 1
	// SourceNaukri represents postings collected from Naukri.
	SourceNaukri
	// SourceLinkedIn represents postings collected from LinkedIn.
	SourceLinkedIn
)

// String returns the lowercase board name used in persisted records and CLIs.
func (s Source) String() string {
	switch s {
	case SourceIndeed:
		return "indeed"
	case SourceNaukri:
		return "naukri"
	case SourceLinkedIn:
		return "linkedin"
	default:
		return "unknown"
	}
}

// ParseSource converts a board name into a Source.
// Returns ErrInvalidSource for unrecognized names.
func ParseSource(name string) (Source, error) {
	switch name {
	case "indeed":
		return SourceIndeed, nil
	case "naukri":
		return SourceNaukri, nil
	case "linkedin":
		return SourceLinkedIn, nil
	default:
		return 0, ErrInvalidSource
	}
}

// JobPosting represents a single job advertisement in the corpus.
// Postings are immutable for the duration of a scoring request; the matching
// engine only ever reads a snapshot of them.
type JobPosting struct {
	Id          ID
	Source      Source
	Title       string
	Company     string
	Location    string
	Description string
	Url         string
	InsertedAt  time.Time // When the posting was inserted into the database
	UpdatedAt   time.Time // When the posting was last updated
}

// CombinedText returns the text scored against a resume: title, company and
// description joined by single spaces. Field order matters for reproducible
// scoring.
func (p *JobPosting) CombinedText() string {
	return p.Title + " " + p.Company + " " + p.Description
}

// Fingerprint returns a content-based ID over the identifying fields of the
// posting. Re-scraped copies of the same advertisement share a fingerprint.
func (p *JobPosting) Fingerprint() ID {
	tuple := "(" + p.Source.String() + "," + p.Title + "," + p.Company + "," + p.Url + ")"
	return IDFromContent(tuple)
}

// ConfidenceScale tags which scale a RoleSuggestion confidence was computed on.
// The two scales carry different meanings and must not be compared directly.
type ConfidenceScale int

const (
	// ScaleCosine is a raw cosine similarity in [-1, 1], produced when the
	// suggestion was derived from title embeddings.
	ScaleCosine ConfidenceScale = iota + 1
	// ScaleNormalized is a normalized fused score divided by 100, in [0, 1],
	// produced by the fallback path when no embedding model is available.
	ScaleNormalized
)

// String returns the scale name used in logs and CLI output.
func (s ConfidenceScale) String() string {
	switch s {
	case ScaleCosine:
		return "cosine"
	case ScaleNormalized:
		return "normalized"
	default:
		return "unknown"
	}
}

// RoleSuggestion is the single best-fit role label for a resume.
type RoleSuggestion struct {
	Role       string
	Confidence float64
	Scale      ConfidenceScale
}

// SearchLinks holds derived job-board search URLs for a posting title.
type SearchLinks struct {
	LinkedIn string
	Indeed   string
	Naukri   string
}

// MatchResult pairs a posting with its fused score and presentation fields.
// Constructed during ranking, immutable thereafter.
type MatchResult struct {
	Posting *JobPosting
	Score   float64 // Normalized fused score in [0, 100], rounded to 2 decimals
	Snippet string  // Description prefix, at most 400 characters
	Links   SearchLinks
}

// MatchReport is the full response for one scoring request.
type MatchReport struct {
	Suggestion    RoleSuggestion
	Results       []*MatchResult
	ExtractedText string // Normalized resume text, capped at 5000 characters
}
