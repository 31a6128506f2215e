package handler

import (
	"time"

	"github.com/spiritually/spiritually/internal/domain"
	"github.com/spiritually/spiritually/internal/service"
)

// UserDTO is the public-safe JSON representation of a user. The password
// hash never leaves the server; reading history is served by its own
// endpoint.
type UserDTO struct {
	ID           int64               `json:"id"`
	Username     string              `json:"username"`
	Email        string              `json:"email"`
	BirthDetails domain.BirthDetails `json:"birthDetails"`
	Preferences  domain.Preferences  `json:"preferences"`
	Profile      domain.Profile      `json:"profile"`
	CreatedAt    string              `json:"createdAt"`
	UpdatedAt    string              `json:"updatedAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		BirthDetails: u.BirthDetails,
		Preferences:  u.Preferences,
		Profile:      u.Profile,
		CreatedAt:    u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    u.UpdatedAt.Format(time.RFC3339),
	}
}

// TraditionDTO is the JSON representation of a tradition record. Facets
// that do not apply to the record's kind are omitted.
type TraditionDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`

	Traditions    []string `json:"traditions,omitempty"`
	KeyPrinciples []string `json:"keyPrinciples,omitempty"`
	Practices     []string `json:"practices,omitempty"`
	KeyBeliefs    []string `json:"keyBeliefs,omitempty"`
	Elements      []string `json:"elements,omitempty"`

	Texts       []domain.Text       `json:"texts,omitempty"`
	SacredTexts []domain.SacredText `json:"sacredTexts,omitempty"`
	Techniques  []domain.Technique  `json:"techniques,omitempty"`

	Keywords []string `json:"keywords,omitempty"`

	EnhancedContent *domain.EnhancedContent `json:"enhancedContent,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toTraditionDTO(t domain.Tradition) TraditionDTO {
	return TraditionDTO{
		ID:              t.ID,
		Name:            t.Name,
		Description:     t.Description,
		Traditions:      t.Traditions,
		KeyPrinciples:   t.KeyPrinciples,
		Practices:       t.Practices,
		KeyBeliefs:      t.KeyBeliefs,
		Elements:        t.Elements,
		Texts:           t.Texts,
		SacredTexts:     t.SacredTexts,
		Techniques:      t.Techniques,
		Keywords:        t.Keywords,
		EnhancedContent: t.Enhanced,
		CreatedAt:       t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       t.UpdatedAt.Format(time.RFC3339),
	}
}

func toTraditionDTOs(traditions []domain.Tradition) []TraditionDTO {
	dtos := make([]TraditionDTO, len(traditions))
	for i, t := range traditions {
		dtos[i] = toTraditionDTO(t)
	}
	return dtos
}

func toCatalogDTO(catalog service.Catalog) map[string][]TraditionDTO {
	dto := make(map[string][]TraditionDTO, len(catalog))
	for key, traditions := range catalog {
		dto[key] = toTraditionDTOs(traditions)
	}
	return dto
}

// ReadingDTO is the JSON representation of one reading-history entry.
type ReadingDTO struct {
	Date         string           `json:"date"`
	QuestionType string           `json:"questionType,omitempty"`
	Question     string           `json:"question,omitempty"`
	Answer       string           `json:"answer,omitempty"`
	Feedback     *domain.Feedback `json:"feedback,omitempty"`
}

func toReadingDTOs(entries []domain.ReadingEntry) []ReadingDTO {
	dtos := make([]ReadingDTO, len(entries))
	for i, e := range entries {
		dtos[i] = ReadingDTO{
			Date:         e.Date.Format(time.RFC3339),
			QuestionType: e.QuestionType,
			Question:     e.Question,
			Answer:       e.Answer,
			Feedback:     e.Feedback,
		}
	}
	return dtos
}
