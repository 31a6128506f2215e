package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spiritually/spiritually/internal/domain"
)

// TraditionRepository implements domain.TraditionRepository for one
// collection. Each record's facets live in a single JSON doc column; a
// companion FTS5 table indexes name, description, body text, and keywords
// and is written in the same transaction as the base row (records only
// change through the seeder, so no triggers are needed).
type TraditionRepository struct {
	db    *sql.DB
	kind  domain.Kind
	table string
	fts   string
}

// traditionDoc is the JSON shape of the doc column.
type traditionDoc struct {
	Traditions    []string            `json:"traditions,omitempty"`
	KeyPrinciples []string            `json:"keyPrinciples,omitempty"`
	Practices     []string            `json:"practices,omitempty"`
	KeyBeliefs    []string            `json:"keyBeliefs,omitempty"`
	Elements      []string            `json:"elements,omitempty"`
	Texts         []domain.Text       `json:"texts,omitempty"`
	SacredTexts   []domain.SacredText `json:"sacredTexts,omitempty"`
	Techniques    []domain.Technique  `json:"techniques,omitempty"`
	Keywords      []string            `json:"keywords,omitempty"`
}

func (r *TraditionRepository) Create(ctx context.Context, t *domain.Tradition) error {
	doc, err := json.Marshal(traditionDoc{
		Traditions:    t.Traditions,
		KeyPrinciples: t.KeyPrinciples,
		Practices:     t.Practices,
		KeyBeliefs:    t.KeyBeliefs,
		Elements:      t.Elements,
		Texts:         t.Texts,
		SacredTexts:   t.SacredTexts,
		Techniques:    t.Techniques,
		Keywords:      t.Keywords,
	})
	if err != nil {
		return fmt.Errorf("encode tradition doc: %w", err)
	}

	// The base row and its index row must land together, or the record
	// would exist but be invisible to search.
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin %s insert: %w", r.kind, err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO `+r.table+` (id, name, description, doc, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Description, string(doc), now, now,
	)
	if err != nil {
		return fmt.Errorf("insert %s: %w", r.kind, err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO `+r.fts+` (id, name, description, body, keywords)
		 VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Description, bodyText(t), strings.Join(t.Keywords, " "),
	)
	if err != nil {
		return fmt.Errorf("index %s: %w", r.kind, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s insert: %w", r.kind, err)
	}

	t.Kind = r.kind
	t.CreatedAt = now
	t.UpdatedAt = now
	return nil
}

func (r *TraditionRepository) GetByID(ctx context.Context, id string) (*domain.Tradition, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, doc, created_at, updated_at
		 FROM `+r.table+` WHERE id = ?`, id)
	t, err := r.scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query %s by id: %w", r.kind, err)
	}
	return t, nil
}

func (r *TraditionRepository) List(ctx context.Context) ([]domain.Tradition, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, description, doc, created_at, updated_at
		 FROM `+r.table+` ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.kind, err)
	}
	return r.collect(rows)
}

// Search runs an FTS5 match against the collection's index. A query with
// no searchable tokens matches nothing.
func (r *TraditionRepository) Search(ctx context.Context, query string) ([]domain.Tradition, error) {
	match := ftsQuery(query)
	if match == "" {
		return []domain.Tradition{}, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT t.id, t.name, t.description, t.doc, t.created_at, t.updated_at
		 FROM `+r.fts+` f
		 JOIN `+r.table+` t ON t.id = f.id
		 WHERE `+r.fts+` MATCH ?
		 ORDER BY rank`, match)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", r.kind, err)
	}
	return r.collect(rows)
}

func (r *TraditionRepository) DeleteAll(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin %s clear: %w", r.kind, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM `+r.table); err != nil {
		return fmt.Errorf("clear %s: %w", r.kind, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM `+r.fts); err != nil {
		return fmt.Errorf("clear %s index: %w", r.kind, err)
	}
	return tx.Commit()
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *TraditionRepository) scan(row scanner) (*domain.Tradition, error) {
	t := &domain.Tradition{Kind: r.kind}
	var docJSON string
	if err := row.Scan(&t.ID, &t.Name, &t.Description, &docJSON, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}

	var doc traditionDoc
	if err := json.Unmarshal([]byte(docJSON), &doc); err != nil {
		return nil, fmt.Errorf("decode tradition doc: %w", err)
	}
	t.Traditions = doc.Traditions
	t.KeyPrinciples = doc.KeyPrinciples
	t.Practices = doc.Practices
	t.KeyBeliefs = doc.KeyBeliefs
	t.Elements = doc.Elements
	t.Texts = doc.Texts
	t.SacredTexts = doc.SacredTexts
	t.Techniques = doc.Techniques
	t.Keywords = doc.Keywords
	return t, nil
}

func (r *TraditionRepository) collect(rows *sql.Rows) ([]domain.Tradition, error) {
	defer rows.Close()

	traditions := []domain.Tradition{}
	for rows.Next() {
		t, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.kind, err)
		}
		traditions = append(traditions, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", r.kind, err)
	}
	return traditions, nil
}

// bodyText gathers the free-text content of a record's structured facets
// for full-text indexing.
func bodyText(t *domain.Tradition) string {
	var parts []string
	for _, text := range t.Texts {
		parts = append(parts, text.Title, text.Content)
	}
	for _, text := range t.SacredTexts {
		parts = append(parts, text.Title, text.Content)
	}
	for _, tech := range t.Techniques {
		parts = append(parts, tech.Name, tech.Description, tech.Application)
	}
	return strings.Join(parts, " ")
}

// ftsQuery converts free-form user input into a safe FTS5 match
// expression: each token becomes a quoted prefix query ("stoic" matches
// "Stoicism") and the tokens are OR'd, mirroring any-term text search.
// Returns "" when no searchable tokens remain.
func ftsQuery(query string) string {
	tokens := strings.FieldsFunc(query, func(r rune) bool {
		return !(r == '\'' || r == '-' ||
			('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') ||
			('0' <= r && r <= '9') || r > 127)
	})
	if len(tokens) == 0 {
		return ""
	}

	quoted := make([]string, len(tokens))
	for i, tok := range tokens {
		quoted[i] = `"` + tok + `"*`
	}
	return strings.Join(quoted, " OR ")
}
