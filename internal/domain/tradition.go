package domain

import (
	"context"
	"time"
)

// Kind identifies which of the three tradition collections a record
// belongs to.
type Kind string

const (
	KindPhilosophy Kind = "philosophy"
	KindReligion   Kind = "religion"
	KindAstrology  Kind = "astrology"
)

// Tradition is a curated record describing a philosophy, religion, or
// astrological system. Only the facets relevant to the record's kind are
// populated; the rest stay empty and are omitted from JSON output.
type Tradition struct {
	ID          string
	Kind        Kind
	Name        string
	Description string

	Traditions    []string // philosophy sub-traditions
	KeyPrinciples []string // philosophy, astrology
	Practices     []string // philosophy, religion
	KeyBeliefs    []string // religion
	Elements      []string // astrology

	Texts       []Text       // philosophy
	SacredTexts []SacredText // religion
	Techniques  []Technique  // astrology

	Keywords []string

	// Enhanced is derived per request for authenticated callers and is
	// never written back to the store.
	Enhanced *EnhancedContent

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Text is a structured philosophical text reference.
type Text struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
	Author  string `json:"author,omitempty"`
	Period  string `json:"period,omitempty"`
}

// SacredText is a structured religious text reference.
type SacredText struct {
	Title    string `json:"title,omitempty"`
	Content  string `json:"content,omitempty"`
	Language string `json:"language,omitempty"`
	Period   string `json:"period,omitempty"`
}

// Technique is a structured astrological technique.
type Technique struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Application string `json:"application,omitempty"`
}

// EnhancedContent is the template-generated commentary attached to a
// tradition for authenticated requests. Field usage varies by kind:
// philosophies and astrological systems carry practicalApplications and
// modernInterpretations, religions carry modernPractices and
// culturalContext.
type EnhancedContent struct {
	PersonalInsights      string   `json:"personalInsights,omitempty"`
	PracticalApplications []string `json:"practicalApplications,omitempty"`
	ModernPractices       []string `json:"modernPractices,omitempty"`
	ModernInterpretations string   `json:"modernInterpretations,omitempty"`
	CulturalContext       string   `json:"culturalContext,omitempty"`
	RecommendedReadings   []string `json:"recommendedReadings,omitempty"`
}

// TraditionRepository defines persistence operations for one tradition
// collection. Records are read-only from the API; Create and DeleteAll
// exist for the seed utility.
type TraditionRepository interface {
	Create(ctx context.Context, t *Tradition) error
	GetByID(ctx context.Context, id string) (*Tradition, error)
	List(ctx context.Context) ([]Tradition, error)
	Search(ctx context.Context, query string) ([]Tradition, error)
	DeleteAll(ctx context.Context) error
}
