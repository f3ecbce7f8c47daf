package store

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"atsscore/internal/config"
	"atsscore/internal/errors"
	"atsscore/internal/types"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS resumes (
	id         UUID PRIMARY KEY,
	document   JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS resume_scores (
	id        UUID PRIMARY KEY,
	resume_id UUID NOT NULL REFERENCES resumes(id) ON DELETE CASCADE,
	score     INTEGER NOT NULL,
	rating    TEXT NOT NULL,
	report    JSONB NOT NULL,
	scored_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS resume_scores_resume_scored_idx
	ON resume_scores (resume_id, scored_at DESC);
`

// PostgresRepository stores documents as JSONB in PostgreSQL
type PostgresRepository struct {
	pool *pgxpool.Pool
}

var _ ResumeRepository = (*PostgresRepository)(nil)

// Connect opens a pool, verifies it with a ping and optionally creates the schema
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*PostgresRepository, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig, "invalid database URL", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.ConnectTimeout > 0 {
		poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed, "failed to connect to database", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed, "failed to ping database", err)
	}

	repo := &PostgresRepository{pool: pool}
	if cfg.AutoMigrate {
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return repo, nil
}

// EnsureSchema creates the tables if they do not exist
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schemaSQL); err != nil {
		return errors.NewStorageError(errors.ErrCodeStorageFailed, "failed to create schema", err)
	}
	return nil
}

func (r *PostgresRepository) SaveResume(ctx context.Context, doc map[string]any) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", errors.NewValidationError(errors.ErrCodeInvalidResume, "resume is not JSON serialisable", err)
	}

	id := uuid.NewString()
	if _, err := r.pool.Exec(ctx,
		`INSERT INTO resumes (id, document) VALUES ($1::uuid, $2)`,
		id, data,
	); err != nil {
		return "", errors.NewStorageError(errors.ErrCodeStorageFailed, "failed to save resume", err)
	}
	return id, nil
}

func (r *PostgresRepository) GetResume(ctx context.Context, id string) (map[string]any, error) {
	id, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	var data []byte
	err = r.pool.QueryRow(ctx, `SELECT document FROM resumes WHERE id = $1::uuid`, id).Scan(&data)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, notFound(id)
		}
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed, "failed to load resume", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed, "stored resume is not an object", err)
	}
	return doc, nil
}

func (r *PostgresRepository) SaveScore(ctx context.Context, record types.ScoreRecord) error {
	resumeID, err := ParseID(record.ResumeID)
	if err != nil {
		return err
	}
	report, err := json.Marshal(record.Report)
	if err != nil {
		return errors.NewInternalError(errors.ErrCodeStorageFailed, "failed to encode report", err)
	}

	tag, err := r.pool.Exec(ctx,
		`INSERT INTO resume_scores (id, resume_id, score, rating, report, scored_at)
		 SELECT $1::uuid, id, $3, $4, $5, $6 FROM resumes WHERE id = $2::uuid`,
		record.ID, resumeID, record.Score, string(record.Rating), report, record.ScoredAt,
	)
	if err != nil {
		return errors.NewStorageError(errors.ErrCodeStorageFailed, "failed to save score", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound(resumeID)
	}
	return nil
}

func (r *PostgresRepository) ScoreHistory(ctx context.Context, resumeID string, limit int) ([]types.ScoreRecord, error) {
	id, err := ParseID(resumeID)
	if err != nil {
		return nil, err
	}
	if _, err := r.GetResume(ctx, id); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id::text, resume_id::text, score, rating, report, scored_at
		 FROM resume_scores WHERE resume_id = $1::uuid
		 ORDER BY scored_at DESC LIMIT $2`,
		id, limit,
	)
	if err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed, "failed to query score history", err)
	}
	defer rows.Close()

	history := []types.ScoreRecord{}
	for rows.Next() {
		var rec types.ScoreRecord
		var rating string
		var report []byte
		if err := rows.Scan(&rec.ID, &rec.ResumeID, &rec.Score, &rating, &report, &rec.ScoredAt); err != nil {
			return nil, errors.NewStorageError(errors.ErrCodeStorageFailed, "failed to scan score record", err)
		}
		rec.Rating = types.Rating(rating)
		if err := json.Unmarshal(report, &rec.Report); err != nil {
			return nil, errors.NewStorageError(errors.ErrCodeStorageFailed, "stored report is corrupt", err)
		}
		history = append(history, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate score history: %w", err)
	}
	return history, nil
}

// Close closes the connection pool
func (r *PostgresRepository) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}
