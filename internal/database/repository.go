package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-fixture-summary/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no summary has been stored yet.
var ErrNotFound = errors.New("summary not found")

const schema = `
CREATE TABLE IF NOT EXISTS match_summaries (
	match_id         TEXT PRIMARY KEY,
	run_id           TEXT NOT NULL,
	selector_version TEXT NOT NULL,
	summary          JSONB NOT NULL,
	narrative        TEXT,
	scraped_at       TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type Repository struct {
	db *pgxpool.Pool
}

// StoredSummary is one row of match_summaries.
type StoredSummary struct {
	MatchID         string
	RunID           string
	SelectorVersion string
	Summary         *models.MatchSummary
	Narrative       *string
	ScrapedAt       time.Time
}

func ConnectDB(ctx context.Context, connString string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}

	config.MaxConns = 4
	config.MinConns = 1
	config.MaxConnLifetime = time.Hour

	// Transaction-mode poolers do not keep prepared statements between queries.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	// Ping to ensure connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &Repository{db: pool}, nil
}

func (r *Repository) Close() {
	if r.db != nil {
		r.db.Close()
	}
}

func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// StorageKey is the row key for a summary. Summaries without a match id are
// keyed by run so they never overwrite each other.
func StorageKey(summary *models.MatchSummary, runID string) string {
	if summary.MatchID != nil && *summary.MatchID != "" {
		return *summary.MatchID
	}
	return "run:" + runID
}

// SaveSummary inserts the summary or replaces the stored one for the same match.
func (r *Repository) SaveSummary(ctx context.Context, runID, selectorVersion string, summary *models.MatchSummary, narrative string) error {
	doc, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	var text *string
	if narrative != "" {
		text = &narrative
	}

	query := `
		INSERT INTO match_summaries (match_id, run_id, selector_version, summary, narrative)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (match_id)
		DO UPDATE SET run_id = EXCLUDED.run_id, selector_version = EXCLUDED.selector_version,
			summary = EXCLUDED.summary, narrative = COALESCE(EXCLUDED.narrative, match_summaries.narrative),
			scraped_at = now()`

	if _, err := r.db.Exec(ctx, query, StorageKey(summary, runID), runID, selectorVersion, string(doc), text); err != nil {
		return fmt.Errorf("failed to save summary: %w", err)
	}
	return nil
}

// GetLatest returns the most recently scraped summary.
func (r *Repository) GetLatest(ctx context.Context) (*StoredSummary, error) {
	query := `SELECT match_id, run_id, selector_version, summary, narrative, scraped_at
		FROM match_summaries ORDER BY scraped_at DESC LIMIT 1`

	var (
		row StoredSummary
		doc []byte
	)
	err := r.db.QueryRow(ctx, query).Scan(&row.MatchID, &row.RunID, &row.SelectorVersion, &doc, &row.Narrative, &row.ScrapedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get latest summary: %w", err)
	}

	row.Summary = &models.MatchSummary{}
	if err := json.Unmarshal(doc, row.Summary); err != nil {
		return nil, fmt.Errorf("failed to decode stored summary: %w", err)
	}
	return &row, nil
}
