// Package history persists solve results and makes them searchable. The
// controller itself never touches this layer; the CLI and web surfaces save
// and query records as external collaborators of the solve loop.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/pondlabs/ponder/internal/agent"
)

// Record is one persisted solve.
type Record struct {
	ID        string        `json:"id"`
	Question  string        `json:"question"`
	Answer    string        `json:"answer"`
	Status    string        `json:"status"`
	Reasoning string        `json:"reasoning"`
	Plan      string        `json:"plan"`
	Checks    []agent.Check `json:"checks"`
	Retries   int           `json:"retries"`
	CreatedAt time.Time     `json:"created_at"`
}

// NewRecord builds a Record from a solve response.
func NewRecord(question string, resp *agent.Response) *Record {
	return &Record{
		ID:        uuid.NewString(),
		Question:  question,
		Answer:    resp.Answer,
		Status:    string(resp.Status),
		Reasoning: resp.ReasoningVisibleToUser,
		Plan:      resp.Metadata.Plan,
		Checks:    resp.Metadata.Checks,
		Retries:   resp.Metadata.Retries,
		CreatedAt: time.Now().UTC(),
	}
}

// Store combines the SQLite record store with the bleve search index.
type Store struct {
	db    *sql.DB
	index *searchIndex
}

// Open opens (or creates) the store at path. The search index lives in a
// sibling directory named path + ".bleve".
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// SQLite handles one writer; keep the pool at a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	index, err := openSearchIndex(path + ".bleve")
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, index: index}, nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS solves (
		id          TEXT PRIMARY KEY,
		question    TEXT NOT NULL,
		answer      TEXT NOT NULL,
		status      TEXT NOT NULL,
		reasoning   TEXT NOT NULL,
		plan        TEXT NOT NULL,
		checks_json TEXT NOT NULL,
		retries     INTEGER NOT NULL,
		created_at  INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_solves_created_at ON solves(created_at DESC);
	`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// Save persists a record and indexes it for search.
func (s *Store) Save(ctx context.Context, rec *Record) error {
	checksJSON, err := json.Marshal(rec.Checks)
	if err != nil {
		return fmt.Errorf("failed to marshal checks: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO solves (id, question, answer, status, reasoning, plan, checks_json, retries, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Question, rec.Answer, rec.Status, rec.Reasoning, rec.Plan,
		string(checksJSON), rec.Retries, rec.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert solve record: %w", err)
	}

	return s.index.add(rec)
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, question, answer, status, reasoning, plan, checks_json, retries, created_at
		FROM solves ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent solves: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Search runs a full-text query over question and answer text and returns
// matching records, best match first.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}

	ids, err := s.index.search(query, limit)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(ids))
	for _, id := range ids {
		rec, err := s.get(ctx, id)
		if err == sql.ErrNoRows {
			// Index can briefly lead the table; skip the orphan.
			continue
		}
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, nil
}

func (s *Store) get(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, question, answer, status, reasoning, plan, checks_json, retries, created_at
		FROM solves WHERE id = ?`, id)

	var (
		rec        Record
		checksJSON string
		createdAt  int64
	)
	if err := row.Scan(&rec.ID, &rec.Question, &rec.Answer, &rec.Status, &rec.Reasoning,
		&rec.Plan, &checksJSON, &rec.Retries, &createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(checksJSON), &rec.Checks); err != nil {
		return nil, fmt.Errorf("corrupt checks_json for record %s: %w", rec.ID, err)
	}
	rec.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &rec, nil
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var (
			rec        Record
			checksJSON string
			createdAt  int64
		)
		if err := rows.Scan(&rec.ID, &rec.Question, &rec.Answer, &rec.Status, &rec.Reasoning,
			&rec.Plan, &checksJSON, &rec.Retries, &createdAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(checksJSON), &rec.Checks); err != nil {
			return nil, fmt.Errorf("corrupt checks_json for record %s: %w", rec.ID, err)
		}
		rec.CreatedAt = time.Unix(createdAt, 0).UTC()
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close closes the database and the search index.
func (s *Store) Close() error {
	indexErr := s.index.close()
	dbErr := s.db.Close()
	if dbErr != nil {
		return dbErr
	}
	return indexErr
}
