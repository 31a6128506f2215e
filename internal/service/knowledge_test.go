package service_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/spiritually/spiritually/internal/domain"
	"github.com/spiritually/spiritually/internal/repository/sqlite"
	"github.com/spiritually/spiritually/internal/seed"
	"github.com/spiritually/spiritually/internal/service"
)

func newTestKnowledgeService(t *testing.T) (*service.KnowledgeService, *sqlite.DB) {
	t.Helper()
	db := newTestDB(t)
	if err := seed.Run(context.Background(), db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	repos := map[domain.Kind]domain.TraditionRepository{}
	for _, c := range domain.Collections {
		repos[c.Kind] = db.Traditions(c.Kind)
	}
	return service.NewKnowledgeService(repos), db
}

func TestKnowledgeService_ListAll(t *testing.T) {
	knowledge, _ := newTestKnowledgeService(t)

	catalog, err := knowledge.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}

	if got := len(catalog["philosophies"]); got != len(seed.Philosophies) {
		t.Fatalf("expected %d philosophies, got %d", len(seed.Philosophies), got)
	}
	if got := len(catalog["religions"]); got != len(seed.Religions) {
		t.Fatalf("expected %d religions, got %d", len(seed.Religions), got)
	}
	if got := len(catalog["astrologicalSystems"]); got != len(seed.AstrologicalSystems) {
		t.Fatalf("expected %d astrological systems, got %d", len(seed.AstrologicalSystems), got)
	}
}

func TestKnowledgeService_ListByTag(t *testing.T) {
	knowledge, _ := newTestKnowledgeService(t)
	ctx := context.Background()

	tests := []struct {
		tag  string
		want int
	}{
		{"philosophies", len(seed.Philosophies)},
		{"religions", len(seed.Religions)},
		{"astrological-systems", len(seed.AstrologicalSystems)},
		// Singular aliases used by the chat routes resolve too.
		{"philosophy", len(seed.Philosophies)},
		{"astrology", len(seed.AstrologicalSystems)},
	}
	for _, tc := range tests {
		t.Run(tc.tag, func(t *testing.T) {
			records, err := knowledge.ListByTag(ctx, tc.tag)
			if err != nil {
				t.Fatalf("ListByTag(%q): %v", tc.tag, err)
			}
			if len(records) != tc.want {
				t.Fatalf("ListByTag(%q): expected %d records, got %d", tc.tag, tc.want, len(records))
			}
		})
	}

	if _, err := knowledge.ListByTag(ctx, "alchemy"); !errors.Is(err, domain.ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
}

func TestKnowledgeService_GetByID(t *testing.T) {
	knowledge, _ := newTestKnowledgeService(t)
	ctx := context.Background()

	philosophies, err := knowledge.ListByTag(ctx, "philosophies")
	if err != nil {
		t.Fatalf("ListByTag: %v", err)
	}

	got, err := knowledge.GetByID(ctx, "philosophies", philosophies[0].ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != philosophies[0].Name {
		t.Fatalf("expected %q, got %q", philosophies[0].Name, got.Name)
	}

	if _, err := knowledge.GetByID(ctx, "philosophies", "no-such-id"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := knowledge.GetByID(ctx, "alchemy", philosophies[0].ID); !errors.Is(err, domain.ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
}

func TestKnowledgeService_Search(t *testing.T) {
	knowledge, _ := newTestKnowledgeService(t)
	ctx := context.Background()

	catalog, err := knowledge.Search(ctx, "stoic")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	philosophies := catalog["philosophies"]
	if len(philosophies) != 1 || philosophies[0].Name != "Stoicism" {
		t.Fatalf("expected Stoicism for 'stoic', got %+v", philosophies)
	}

	// Meditation appears in several collections via practices keywords.
	catalog, err = knowledge.Search(ctx, "meditation")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(catalog["philosophies"]) == 0 || len(catalog["religions"]) == 0 {
		t.Fatalf("expected cross-collection hits for 'meditation', got %+v", catalog)
	}
}

func TestKnowledgeService_Search_NoMatchesIsNotAnError(t *testing.T) {
	knowledge, _ := newTestKnowledgeService(t)
	ctx := context.Background()

	for _, query := range []string{"", "xyzzy", "quantum chromodynamics"} {
		catalog, err := knowledge.Search(ctx, query)
		if err != nil {
			t.Fatalf("Search(%q): %v", query, err)
		}
		for _, c := range domain.Collections {
			if len(catalog[c.Key]) != 0 {
				t.Fatalf("Search(%q): expected empty %s set, got %d", query, c.Key, len(catalog[c.Key]))
			}
		}
	}
}

func TestKnowledgeService_EnhancedListByTag(t *testing.T) {
	knowledge, _ := newTestKnowledgeService(t)
	ctx := context.Background()

	plain, err := knowledge.ListByTag(ctx, "philosophies")
	if err != nil {
		t.Fatalf("ListByTag: %v", err)
	}
	enhanced, err := knowledge.EnhancedListByTag(ctx, "philosophies")
	if err != nil {
		t.Fatalf("EnhancedListByTag: %v", err)
	}
	if len(enhanced) != len(plain) {
		t.Fatalf("expected %d enhanced records, got %d", len(plain), len(enhanced))
	}

	for i, record := range enhanced {
		if record.Enhanced == nil {
			t.Fatalf("record %q missing enhanced content", record.Name)
		}
		// Base fields are identical to the plain variant.
		bare := record
		bare.Enhanced = nil
		if !reflect.DeepEqual(bare, plain[i]) {
			t.Fatalf("base fields diverged for %q", record.Name)
		}
	}
}

func TestKnowledgeService_EnhancedIsNotPersisted(t *testing.T) {
	knowledge, _ := newTestKnowledgeService(t)
	ctx := context.Background()

	if _, err := knowledge.EnhancedListByTag(ctx, "philosophies"); err != nil {
		t.Fatalf("EnhancedListByTag: %v", err)
	}

	plain, err := knowledge.ListByTag(ctx, "philosophies")
	if err != nil {
		t.Fatalf("ListByTag: %v", err)
	}
	for _, record := range plain {
		if record.Enhanced != nil {
			t.Fatalf("enhanced content leaked into the store for %q", record.Name)
		}
	}
}

func TestDecorate_PerKindFields(t *testing.T) {
	philosophy := service.Decorate(domain.Tradition{
		Kind:      domain.KindPhilosophy,
		Name:      "Stoicism",
		Practices: []string{"Journaling"},
	})
	if philosophy.Enhanced.PersonalInsights == "" {
		t.Fatal("expected personal insights")
	}
	if !reflect.DeepEqual(philosophy.Enhanced.PracticalApplications, []string{"Journaling"}) {
		t.Fatalf("practicalApplications should mirror practices, got %+v", philosophy.Enhanced.PracticalApplications)
	}
	if philosophy.Enhanced.ModernInterpretations == "" {
		t.Fatal("expected modern interpretations for a philosophy")
	}

	religion := service.Decorate(domain.Tradition{
		Kind:      domain.KindReligion,
		Name:      "Buddhism",
		Practices: []string{"Meditation"},
	})
	if !reflect.DeepEqual(religion.Enhanced.ModernPractices, []string{"Meditation"}) {
		t.Fatalf("modernPractices should mirror practices, got %+v", religion.Enhanced.ModernPractices)
	}
	if religion.Enhanced.CulturalContext == "" {
		t.Fatal("expected cultural context for a religion")
	}

	astrology := service.Decorate(domain.Tradition{
		Kind:     domain.KindAstrology,
		Name:     "Vedic Astrology",
		Elements: []string{"Houses"},
	})
	if !reflect.DeepEqual(astrology.Enhanced.PracticalApplications, []string{"Houses"}) {
		t.Fatalf("practicalApplications should mirror elements, got %+v", astrology.Enhanced.PracticalApplications)
	}
}

func TestDecorate_DoesNotMutateInput(t *testing.T) {
	original := domain.Tradition{
		Kind:      domain.KindPhilosophy,
		Name:      "Stoicism",
		Practices: []string{"Journaling"},
	}
	service.Decorate(original)
	if original.Enhanced != nil {
		t.Fatal("Decorate must not mutate its input")
	}
}
