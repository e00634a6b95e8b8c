package store

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/digest/pkg/content"
	"github.com/dmitrymomot/digest/pkg/logger"
	"github.com/dmitrymomot/digest/pkg/selector"
)

// querier is the part of pgx shared by pools, connections and transactions.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Store gives access to digest content in PostgreSQL.
type Store struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Store on top of pool.
func New(pool *pgxpool.Pool, opts ...Option) *Store {
	s := &Store{pool: pool, logger: logger.NewNope()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open acquires a connection for one digest run.
func (s *Store) Open(ctx context.Context) (*Session, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}
	return &Session{conn: conn, q: conn}, nil
}

// Session is a store connection scoped to one run.
// It implements selector.JobSource and selector.LetterSource.
type Session struct {
	conn *pgxpool.Conn
	q    querier
}

var (
	_ selector.JobSource    = (*Session)(nil)
	_ selector.LetterSource = (*Session)(nil)
)

// Close releases the connection. Safe to call more than once.
func (s *Session) Close() {
	if s.conn != nil {
		s.conn.Release()
		s.conn = nil
		s.q = nil
	}
}

// FindJobs implements selector.JobSource.
func (s *Session) FindJobs(ctx context.Context, q selector.JobQuery) ([]content.JobPosting, error) {
	if s.q == nil {
		return nil, ErrSessionClosed
	}
	if q.Limit <= 0 {
		return nil, nil
	}
	return findJobs(ctx, s.q, q)
}

// FindLetter implements selector.LetterSource.
func (s *Session) FindLetter(ctx context.Context, key content.MonthDay) (content.Letter, error) {
	if s.q == nil {
		return content.Letter{}, ErrSessionClosed
	}
	return findLetter(ctx, s.q, key)
}

// FindLetters implements selector.LetterSource.
func (s *Session) FindLetters(ctx context.Context, keys []content.MonthDay) ([]content.Letter, error) {
	if s.q == nil {
		return nil, ErrSessionClosed
	}
	if len(keys) == 0 {
		return nil, nil
	}
	return findLetters(ctx, s.q, keys)
}

func findJobs(ctx context.Context, q querier, jq selector.JobQuery) ([]content.JobPosting, error) {
	sql, args := buildJobsQuery(jq)
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[jobRow])
	if err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}

	jobs := make([]content.JobPosting, 0, len(records))
	for _, r := range records {
		j, err := r.toJob()
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

func findLetter(ctx context.Context, q querier, key content.MonthDay) (content.Letter, error) {
	rows, err := q.Query(ctx, letterByKeyQuery, key.String())
	if err != nil {
		return content.Letter{}, errors.Join(ErrQueryFailed, err)
	}
	record, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[letterRow])
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return content.Letter{}, content.ErrNotFound
	case err != nil:
		return content.Letter{}, errors.Join(ErrQueryFailed, err)
	}
	return record.toLetter()
}

func findLetters(ctx context.Context, q querier, keys []content.MonthDay) ([]content.Letter, error) {
	ks := make([]string, len(keys))
	for i, k := range keys {
		ks[i] = k.String()
	}
	rows, err := q.Query(ctx, lettersByKeysQuery, ks)
	if err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[letterRow])
	if err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}

	letters := make([]content.Letter, 0, len(records))
	for _, r := range records {
		l, err := r.toLetter()
		if err != nil {
			return nil, err
		}
		letters = append(letters, l)
	}
	return letters, nil
}
