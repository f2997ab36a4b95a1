package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/newsreel/pkg/domain"
)

// SourceRepository handles source registry operations
type SourceRepository struct {
	db *sqlx.DB
}

// sourceSQL represents a source for SQL operations
type sourceSQL struct {
	ID          int64      `db:"id"`
	Name        string     `db:"name"`
	URL         string     `db:"url"`
	Parser      string     `db:"parser"`
	Active      bool       `db:"active"`
	LastFetched *time.Time `db:"last_fetched"`
	ErrorCount  int        `db:"error_count"`
	LastError   string     `db:"last_error"`
	CreatedAt   time.Time  `db:"created_at"`
}

// SourceUpdate is a partial update of the registry fields, nil fields are left as is
type SourceUpdate struct {
	Name    *string
	URL     *string
	Dialect *domain.Dialect
	Active  *bool
}

// NewSourceRepository creates a new source repository
func NewSourceRepository(db *sqlx.DB) *SourceRepository {
	return &SourceRepository{db: db}
}

// CreateSource inserts a new source and sets its ID and creation time
func (r *SourceRepository) CreateSource(ctx context.Context, src *domain.Source) error {
	if src.Dialect == "" {
		src.Dialect = domain.DialectStandard
	}
	rec := toSourceSQL(src)
	rec.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO sources (name, url, parser, active, last_fetched, error_count, last_error, created_at)
		VALUES (:name, :url, :parser, :active, :last_fetched, :error_count, :last_error, :created_at)
	`
	var id int64
	err := withLockRetry(ctx, func() error {
		res, err := r.db.NamedExecContext(ctx, query, rec)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if isUniqueError(err) {
		return fmt.Errorf("create source %s: %w", src.URL, ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("create source: %w", err)
	}

	src.ID = id
	src.CreatedAt = rec.CreatedAt
	return nil
}

// GetSource retrieves a source by ID
func (r *SourceRepository) GetSource(ctx context.Context, id int64) (*domain.Source, error) {
	var rec sourceSQL
	err := r.db.GetContext(ctx, &rec, "SELECT * FROM sources WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get source %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get source: %w", err)
	}
	return rec.toDomain(), nil
}

// ListSources returns all sources in registry order
func (r *SourceRepository) ListSources(ctx context.Context) ([]domain.Source, error) {
	return r.list(ctx, "SELECT * FROM sources ORDER BY id")
}

// ListActive returns active sources in registry order
func (r *SourceRepository) ListActive(ctx context.Context) ([]domain.Source, error) {
	return r.list(ctx, "SELECT * FROM sources WHERE active = 1 ORDER BY id")
}

// UpdateSource applies a partial update of registry fields and returns the updated source
func (r *SourceRepository) UpdateSource(ctx context.Context, id int64, upd SourceUpdate) (*domain.Source, error) {
	src, err := r.GetSource(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		src.Name = *upd.Name
	}
	if upd.URL != nil {
		src.URL = *upd.URL
	}
	if upd.Dialect != nil {
		src.Dialect = *upd.Dialect
	}
	if upd.Active != nil {
		src.Active = *upd.Active
	}

	query := `UPDATE sources SET name = :name, url = :url, parser = :parser, active = :active WHERE id = :id`
	err = withLockRetry(ctx, func() error {
		_, err := r.db.NamedExecContext(ctx, query, toSourceSQL(src))
		return err
	})
	if isUniqueError(err) {
		return nil, fmt.Errorf("update source %d: %w", id, ErrDuplicate)
	}
	if err != nil {
		return nil, fmt.Errorf("update source: %w", err)
	}
	return src, nil
}

// Save persists health bookkeeping of a source: active flag, last fetch time and error state.
// The active flag can only be cleared here, a source disabled since src was loaded stays disabled.
func (r *SourceRepository) Save(ctx context.Context, src *domain.Source) error {
	query := `
		UPDATE sources
		SET active = CASE WHEN :active THEN active ELSE 0 END,
		    last_fetched = :last_fetched,
		    error_count = :error_count,
		    last_error = :last_error
		WHERE id = :id
	`
	var affected int64
	err := withLockRetry(ctx, func() error {
		res, err := r.db.NamedExecContext(ctx, query, toSourceSQL(src))
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("save source: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("save source %d: %w", src.ID, ErrNotFound)
	}
	return nil
}

// DeleteSource removes a source
func (r *SourceRepository) DeleteSource(ctx context.Context, id int64) error {
	var affected int64
	err := withLockRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, "DELETE FROM sources WHERE id = ?", id)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("delete source: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete source %d: %w", id, ErrNotFound)
	}
	return nil
}

// SeedSources inserts sources whose URL isn't registered yet and returns how many were added
func (r *SourceRepository) SeedSources(ctx context.Context, sources []domain.Source) (int, error) {
	added := 0
	for _, s := range sources {
		var exists bool
		if err := r.db.GetContext(ctx, &exists, "SELECT EXISTS(SELECT 1 FROM sources WHERE url = ?)", s.URL); err != nil {
			return added, fmt.Errorf("check source %s: %w", s.URL, err)
		}
		if exists {
			continue
		}
		src := s
		if err := r.CreateSource(ctx, &src); err != nil {
			if errors.Is(err, ErrDuplicate) {
				continue
			}
			return added, fmt.Errorf("seed source %s: %w", s.URL, err)
		}
		added++
	}
	return added, nil
}

func (r *SourceRepository) list(ctx context.Context, query string) ([]domain.Source, error) {
	var recs []sourceSQL
	if err := r.db.SelectContext(ctx, &recs, query); err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	res := make([]domain.Source, 0, len(recs))
	for _, rec := range recs {
		res = append(res, *rec.toDomain())
	}
	return res, nil
}

func (s *sourceSQL) toDomain() *domain.Source {
	return &domain.Source{
		ID:          s.ID,
		Name:        s.Name,
		URL:         s.URL,
		Dialect:     domain.Dialect(s.Parser),
		Active:      s.Active,
		LastFetched: s.LastFetched,
		ErrorCount:  s.ErrorCount,
		LastError:   s.LastError,
		CreatedAt:   s.CreatedAt,
	}
}

func toSourceSQL(src *domain.Source) *sourceSQL {
	return &sourceSQL{
		ID:          src.ID,
		Name:        src.Name,
		URL:         src.URL,
		Parser:      string(src.Dialect),
		Active:      src.Active,
		LastFetched: src.LastFetched,
		ErrorCount:  src.ErrorCount,
		LastError:   src.LastError,
		CreatedAt:   src.CreatedAt,
	}
}
