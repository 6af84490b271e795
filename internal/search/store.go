package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ziadkadry99/oopconcepts/internal/db"
)

const (
	// DefaultLimit is used when a query asks for no particular limit.
	DefaultLimit = 10
	// MaxLimit caps the number of results of one query.
	MaxLimit = 50
)

// Weights of a term match per column.
const (
	titleWeight   = 8
	summaryWeight = 4
	bodyWeight    = 2
	codeWeight    = 1
)

// Result is a scored document.
type Result struct {
	Document
	Score int `json:"score"`
}

// Index stores documents in the search_docs table.
type Index struct {
	db *db.DB
}

// NewIndex creates an index over the given database.
func NewIndex(d *db.DB) *Index {
	return &Index{db: d}
}

// Rebuild replaces every stored document with docs in one transaction.
func (x *Index) Rebuild(ctx context.Context, docs []Document) error {
	tx, err := x.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM search_docs`); err != nil {
		return fmt.Errorf("clearing documents: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO search_docs (path, concept_id, unit_id, title, concept_name, summary, body, code, position)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, d := range docs {
		if _, err := stmt.ExecContext(ctx, d.Path, d.ConceptID, d.UnitID, d.Title,
			d.ConceptName, d.Summary, d.Body, d.Code, i); err != nil {
			return fmt.Errorf("indexing %s: %w", d.Path, err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO search_meta (key, value, updated_at) VALUES ('built_at', ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		time.Now().UTC().Format(time.RFC3339), time.Now().UTC()); err != nil {
		return fmt.Errorf("recording build time: %w", err)
	}
	return tx.Commit()
}

// Count returns the number of indexed documents.
func (x *Index) Count(ctx context.Context) (int, error) {
	var n int
	if err := x.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM search_docs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return n, nil
}

// Search returns documents containing every term of query, best first. Terms
// are matched case-insensitively as substrings. An empty query matches
// nothing.
func (x *Index) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return []Result{}, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	var score, where []string
	var scoreArgs, whereArgs []any
	for _, term := range terms {
		score = append(score, fmt.Sprintf(
			`(CASE WHEN instr(lower(title), ?) > 0 THEN %d ELSE 0 END
			 + CASE WHEN instr(lower(summary), ?) > 0 THEN %d ELSE 0 END
			 + CASE WHEN instr(lower(body), ?) > 0 THEN %d ELSE 0 END
			 + CASE WHEN instr(lower(code), ?) > 0 THEN %d ELSE 0 END)`,
			titleWeight, summaryWeight, bodyWeight, codeWeight))
		scoreArgs = append(scoreArgs, term, term, term, term)
		where = append(where, `instr(lower(title || ' ' || concept_name || ' ' || summary || ' ' || body || ' ' || code), ?) > 0`)
		whereArgs = append(whereArgs, term)
	}

	q := `SELECT path, concept_id, unit_id, title, concept_name, summary, ` +
		strings.Join(score, " + ") + ` AS score
		 FROM search_docs WHERE ` + strings.Join(where, " AND ") + `
		 ORDER BY score DESC, position ASC LIMIT ?`
	args := append(append(scoreArgs, whereArgs...), limit)

	rows, err := x.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("searching documents: %w", err)
	}
	defer rows.Close()

	results := []Result{}
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.Path, &r.ConceptID, &r.UnitID, &r.Title, &r.ConceptName,
			&r.Summary, &r.Score); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
