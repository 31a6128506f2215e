package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/spiritually/spiritually/internal/domain"
	"github.com/spiritually/spiritually/internal/repository/sqlite"
)

func seedPhilosophy(t *testing.T, repo *sqlite.TraditionRepository, name string) *domain.Tradition {
	t.Helper()
	record := &domain.Tradition{
		ID:            uuid.NewString(),
		Name:          name,
		Description:   "Ancient Greek philosophy emphasizing virtue and reason",
		Traditions:    []string{"Roman Stoicism"},
		KeyPrinciples: []string{"Focus on what you can control"},
		Practices:     []string{"Journaling", "Negative visualization"},
		Keywords:      []string{"virtue", "reason"},
	}
	if err := repo.Create(context.Background(), record); err != nil {
		t.Fatalf("Create %s: %v", name, err)
	}
	return record
}

func TestTraditionRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := db.Traditions(domain.KindPhilosophy)
	ctx := context.Background()

	record := seedPhilosophy(t, repo, "Stoicism")

	got, err := repo.GetByID(ctx, record.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Stoicism" {
		t.Fatalf("expected name Stoicism, got %q", got.Name)
	}
	if got.Kind != domain.KindPhilosophy {
		t.Fatalf("expected philosophy kind, got %q", got.Kind)
	}
	if len(got.Practices) != 2 || got.Practices[0] != "Journaling" {
		t.Fatalf("facets not round-tripped: %+v", got.Practices)
	}
	if got.Enhanced != nil {
		t.Fatal("enhanced content must never be persisted")
	}
}

func TestTraditionRepository_GetMissing(t *testing.T) {
	db := newTestDB(t)
	repo := db.Traditions(domain.KindPhilosophy)

	_, err := repo.GetByID(context.Background(), uuid.NewString())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTraditionRepository_ListOrderedByName(t *testing.T) {
	db := newTestDB(t)
	repo := db.Traditions(domain.KindPhilosophy)

	seedPhilosophy(t, repo, "Taoism")
	seedPhilosophy(t, repo, "Existentialism")

	records, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Name != "Existentialism" || records[1].Name != "Taoism" {
		t.Fatalf("expected name order, got %q then %q", records[0].Name, records[1].Name)
	}
}

func TestTraditionRepository_Search(t *testing.T) {
	db := newTestDB(t)
	repo := db.Traditions(domain.KindPhilosophy)
	ctx := context.Background()

	seedPhilosophy(t, repo, "Stoicism")
	seedPhilosophy(t, repo, "Taoism")

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"prefix of name", "stoic", 1},
		{"description term", "virtue", 2},
		{"keyword term", "reason", 2},
		{"no match", "quantum", 0},
		{"empty query", "", 0},
		{"punctuation only", "?!#", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			results, err := repo.Search(ctx, tc.query)
			if err != nil {
				t.Fatalf("Search(%q): %v", tc.query, err)
			}
			if len(results) != tc.want {
				t.Fatalf("Search(%q): expected %d results, got %d", tc.query, tc.want, len(results))
			}
		})
	}
}

func TestTraditionRepository_SearchFindsStructuredTextContent(t *testing.T) {
	db := newTestDB(t)
	repo := db.Traditions(domain.KindReligion)
	ctx := context.Background()

	record := &domain.Tradition{
		ID:          uuid.NewString(),
		Name:        "Buddhism",
		Description: "Path to enlightenment through meditation",
		Practices:   []string{"Meditation"},
		KeyBeliefs:  []string{"Four Noble Truths"},
		SacredTexts: []domain.SacredText{
			{Title: "Dhammapada", Content: "A collection of sayings in verse form", Language: "Pali"},
		},
	}
	if err := repo.Create(ctx, record); err != nil {
		t.Fatalf("Create: %v", err)
	}

	results, err := repo.Search(ctx, "dhammapada")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Name != "Buddhism" {
		t.Fatalf("expected Buddhism via sacred text title, got %+v", results)
	}
}

func TestTraditionRepository_CreateFailureLeavesNoIndexRow(t *testing.T) {
	db := newTestDB(t)
	repo := db.Traditions(domain.KindPhilosophy)
	ctx := context.Background()

	seedPhilosophy(t, repo, "Stoicism")

	// A second record with the same name violates the UNIQUE constraint;
	// the whole insert must roll back, leaving the search index untouched.
	dup := &domain.Tradition{
		ID:          uuid.NewString(),
		Name:        "Stoicism",
		Description: "duplicate entry",
	}
	if err := repo.Create(ctx, dup); err == nil {
		t.Fatal("expected duplicate name to fail")
	}

	records, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record after failed insert, got %d", len(records))
	}

	results, err := repo.Search(ctx, "stoicism")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 index row after failed insert, got %d", len(results))
	}
}

func TestTraditionRepository_DeleteAll(t *testing.T) {
	db := newTestDB(t)
	repo := db.Traditions(domain.KindAstrology)
	ctx := context.Background()

	record := &domain.Tradition{
		ID:       uuid.NewString(),
		Name:     "Vedic Astrology",
		Elements: []string{"Houses", "Planets"},
	}
	if err := repo.Create(ctx, record); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.DeleteAll(ctx); err != nil {
		t.Fatalf("DeleteAll: %v", err)
	}

	records, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty collection, got %d records", len(records))
	}

	// The search index must be cleared too.
	results, err := repo.Search(ctx, "vedic")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no search hits after DeleteAll, got %d", len(results))
	}
}

func TestTraditionRepository_CollectionsAreIndependent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seedPhilosophy(t, db.Traditions(domain.KindPhilosophy), "Stoicism")

	religions, err := db.Traditions(domain.KindReligion).List(ctx)
	if err != nil {
		t.Fatalf("List religions: %v", err)
	}
	if len(religions) != 0 {
		t.Fatalf("expected empty religion collection, got %d", len(religions))
	}
}
