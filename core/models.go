package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Document is a message-like document owned by the mail collaborator.
// The engine only reads documents, it never mutates them.
type Document struct {
	Id        string
	Subject   string
	Body      string
	From      string
	Date      time.Time
	Important bool
	Starred   bool
}

// IndexEntry holds the per-document token data produced by the index builder.
// Entries are replaced wholesale on every rebuild, never patched.
type IndexEntry struct {
	DocumentId string
	Tokens     []string           // all fields concatenated, for containment checks
	Entities   []string           // detected addresses, name-service domains, emails
	Categories []string           // coarse tags such as "financial", "web3", "important"
	Weights    map[string]float64 // token -> accumulated field weight
}

// Field identifies a searchable document field.
type Field string

const (
	FieldSubject Field = "subject"
	FieldBody    Field = "body"
	FieldFrom    Field = "from"
)

// TermType identifies the kind of a typed term extracted from text.
type TermType int

const (
	// TermTypePerson is an email address treated as a person reference.
	TermTypePerson TermType = iota + 1
	// TermTypeDate is a date expression.
	TermTypeDate
	// TermTypeAmount is a currency amount.
	TermTypeAmount
	// TermTypeAddress is a wallet address.
	TermTypeAddress
	// TermTypeKeyword is a plain search keyword.
	TermTypeKeyword
)

// String returns the lowercase name of the term type.
func (t TermType) String() string {
	switch t {
	case TermTypePerson:
		return "person"
	case TermTypeDate:
		return "date"
	case TermTypeAmount:
		return "amount"
	case TermTypeAddress:
		return "address"
	case TermTypeKeyword:
		return "keyword"
	default:
		return "unknown"
	}
}

// TypedTerm is a term extracted from a query or document with a detected type.
// Typed terms are transient; they are never persisted.
type TypedTerm struct {
	Type       TermType
	Value      string
	Confidence float64 // in [0, 1]
}

// Category is the semantic category assigned to a query.
type Category int

const (
	CategorySender Category = iota + 1
	CategorySubject
	CategoryContent
	CategoryDate
	CategoryWeb3
	CategoryFinancial
	CategoryMixed
)

// String returns the lowercase name of the category.
func (c Category) String() string {
	switch c {
	case CategorySender:
		return "sender"
	case CategorySubject:
		return "subject"
	case CategoryContent:
		return "content"
	case CategoryDate:
		return "date"
	case CategoryWeb3:
		return "web3"
	case CategoryFinancial:
		return "financial"
	case CategoryMixed:
		return "mixed"
	default:
		return "unknown"
	}
}

// QueryCategory is the result of classifying a raw query string.
type QueryCategory struct {
	Category       Category
	Confidence     float64 // in [0, 1]
	ExtractedTerms []TypedTerm
}

// Highlight is a marked snippet for a single document field.
type Highlight struct {
	Field   Field
	Snippet string
}

// SearchResult is a ranked, highlighted match for a query.
// Results are produced fresh per query and never cached.
type SearchResult struct {
	Document      *Document
	Relevance     float64 // normalized to [0, 1]
	MatchedFields []Field
	Summary       string
	Highlights    []Highlight
}

// QueryLogEntry records one historical query for usage insights.
type QueryLogEntry struct {
	Id           ID
	Query        string
	Timestamp    time.Time // when the query was issued
	ResultsCount int
	InsertedAt   time.Time // when the entry was persisted
}

// TermCount pairs a query term with its frequency in the log.
type TermCount struct {
	Term  string
	Count int
}

// CategoryShare is a query category with its integer share of all logged queries.
type CategoryShare struct {
	Category Category
	Percent  int
}

// Insights aggregates historical query statistics.
type Insights struct {
	TopTerms           []TermCount
	HourlyDistribution [24]int
	CategoryBreakdown  []CategoryShare // sorted by descending percent
	SuggestedSearches  []string
	Tips               []string
}
