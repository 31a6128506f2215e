// Package seed holds the curated tradition dataset and loads it into the
// knowledge store.
package seed

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spiritually/spiritually/internal/domain"
	"github.com/spiritually/spiritually/internal/repository/sqlite"
)

// Run replaces the contents of all three collections with the curated
// dataset. Each record's keyword list is derived from its facet lists.
func Run(ctx context.Context, db *sqlite.DB) error {
	for _, set := range []struct {
		kind    domain.Kind
		records []domain.Tradition
	}{
		{domain.KindPhilosophy, Philosophies},
		{domain.KindReligion, Religions},
		{domain.KindAstrology, AstrologicalSystems},
	} {
		repo := db.Traditions(set.kind)
		if err := repo.DeleteAll(ctx); err != nil {
			return err
		}
		for _, record := range set.records {
			record.ID = uuid.NewString()
			record.Keywords = keywordsFor(&record)
			if err := repo.Create(ctx, &record); err != nil {
				return err
			}
		}
		slog.Info("collection seeded", "kind", set.kind, "records", len(set.records))
	}
	return nil
}

// keywordsFor concatenates a record's principle, belief, practice, and
// element lists into its search-augmentation keywords.
func keywordsFor(t *domain.Tradition) []string {
	var keywords []string
	keywords = append(keywords, t.KeyPrinciples...)
	keywords = append(keywords, t.KeyBeliefs...)
	keywords = append(keywords, t.Practices...)
	keywords = append(keywords, t.Elements...)
	return keywords
}

// Philosophies is the curated philosophy dataset.
var Philosophies = []domain.Tradition{
	{
		Name:        "Stoicism",
		Description: "Ancient Greek philosophy emphasizing virtue, reason, and living in harmony with nature",
		Traditions:  []string{"Roman Stoicism", "Greek Stoicism"},
		KeyPrinciples: []string{
			"Focus on what you can control",
			"Live according to nature",
			"Practice self-discipline",
			"Cultivate wisdom, justice, courage, and moderation",
			"Accept what cannot be changed",
		},
		Practices: []string{
			"Daily meditation",
			"Journaling",
			"Negative visualization",
			"Self-reflection",
		},
	},
	{
		Name:        "Zen Buddhism",
		Description: "A Mahayana Buddhist tradition emphasizing direct insight through meditation",
		Traditions:  []string{"Sōtō", "Rinzai", "Ōbaku"},
		KeyPrinciples: []string{
			"Direct experience of reality",
			"Mindfulness",
			"Non-attachment",
			"Present moment awareness",
			"Emptiness (Śūnyatā)",
		},
		Practices: []string{
			"Zazen meditation",
			"Koan study",
			"Mindful daily activities",
			"Tea ceremony",
		},
	},
	{
		Name:        "Existentialism",
		Description: "Philosophy focusing on the human condition and individual existence",
		Traditions:  []string{"French Existentialism", "Religious Existentialism"},
		KeyPrinciples: []string{
			"Existence precedes essence",
			"Freedom of choice",
			"Personal responsibility",
			"Authenticity",
			"Confronting the absurd",
		},
		Practices: []string{
			"Self-reflection",
			"Authentic living",
			"Embracing uncertainty",
			"Creating personal meaning",
		},
	},
	{
		Name:        "Taoism",
		Description: "Chinese philosophy emphasizing living in harmony with the Tao (Way)",
		Traditions:  []string{"Philosophical Taoism", "Religious Taoism"},
		KeyPrinciples: []string{
			"Wu Wei (non-action)",
			"Balance of Yin and Yang",
			"Living in harmony with nature",
			"Simplicity and spontaneity",
			"The Tao as the source",
		},
		Practices: []string{
			"Tai Chi",
			"Qigong",
			"Meditation",
			"Living simply",
		},
	},
	{
		Name:        "Vedanta",
		Description: "Indian philosophical tradition focusing on self-realization and the nature of consciousness",
		Traditions:  []string{"Advaita Vedanta", "Dvaita Vedanta", "Vishishtadvaita"},
		KeyPrinciples: []string{
			"Brahman as ultimate reality",
			"Atman (true self)",
			"Maya (illusion)",
			"Unity of existence",
			"Self-knowledge",
		},
		Practices: []string{
			"Meditation",
			"Self-inquiry",
			"Study of sacred texts",
			"Yoga",
		},
	},
}

// Religions is the curated religion dataset.
var Religions = []domain.Tradition{
	{
		Name:        "Buddhism",
		Description: "Path to enlightenment through meditation",
		Practices:   []string{"Meditation", "Mindfulness", "Compassion"},
		KeyBeliefs:  []string{"Four Noble Truths", "Eightfold Path"},
	},
	{
		Name:        "Hinduism",
		Description: "Ancient Indian spiritual tradition",
		Practices:   []string{"Yoga", "Meditation", "Rituals"},
		KeyBeliefs:  []string{"Dharma", "Karma", "Reincarnation"},
	},
}

// AstrologicalSystems is the curated astrology dataset.
var AstrologicalSystems = []domain.Tradition{
	{
		Name:          "Vedic Astrology",
		Description:   "Traditional Indian astrological system",
		Elements:      []string{"Houses", "Planets", "Nakshatras"},
		KeyPrinciples: []string{"Karma", "Planetary Periods"},
	},
	{
		Name:          "Western Astrology",
		Description:   "Modern Western zodiac system",
		Elements:      []string{"Houses", "Planets", "Signs"},
		KeyPrinciples: []string{"Sun Sign", "Rising Sign", "Moon Sign"},
	},
}
