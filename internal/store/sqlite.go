package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3" // goqu sqlite3 dialect
	"github.com/serroba/shortlink/internal/shortener"
	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// OpenSQLite opens the database file at path with WAL journaling and a busy
// timeout. The pool is limited to one connection, so writers queue inside
// database/sql instead of failing with SQLITE_BUSY.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

func sqliteDSN(path string) string {
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}

	// See: https://pkg.go.dev/modernc.org/sqlite#pkg-overview
	params := url.Values{}
	params.Set("_pragma", "foreign_keys(1)")
	params.Add("_pragma", "journal_mode(WAL)")
	params.Add("_pragma", "synchronous(NORMAL)")
	params.Add("_pragma", "busy_timeout(5000)")

	return path + "?" + params.Encode()
}

// SQLiteStore is a SQLite implementation of shortener.Repository.
type SQLiteStore struct {
	db *sql.DB
	qb *goqu.Database
}

type linkRow struct {
	ID        int64  `db:"id"         goqu:"skipinsert"`
	Code      string `db:"code"`
	Target    string `db:"target"`
	CreatedAt int64  `db:"created_at"`
}

func (r linkRow) toDomain() *shortener.Link {
	return &shortener.Link{
		Code:      shortener.Code(r.Code),
		Target:    r.Target,
		CreatedAt: time.Unix(0, r.CreatedAt).UTC(),
	}
}

// NewSQLiteStore creates a new SQLite-backed link store.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, qb: goqu.New("sqlite3", db)}
}

func (s *SQLiteStore) TryInsert(ctx context.Context, link *shortener.Link) (bool, error) {
	row := linkRow{
		Code:      string(link.Code),
		Target:    link.Target,
		CreatedAt: link.CreatedAt.UnixNano(),
	}

	res, err := s.qb.Insert("links").
		Rows(row).
		OnConflict(goqu.DoNothing()).
		Executor().
		ExecContext(ctx)
	if err != nil {
		return false, unavailable("insert link", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, unavailable("insert link", err)
	}

	return n == 1, nil
}

func (s *SQLiteStore) Lookup(ctx context.Context, code shortener.Code) (*shortener.Link, error) {
	var row linkRow

	found, err := s.qb.From("links").
		Select("id", "code", "target", "created_at").
		Where(goqu.Ex{"code": string(code)}).
		ScanStructContext(ctx, &row)
	if err != nil {
		return nil, unavailable("lookup link", err)
	}

	if !found {
		return nil, shortener.ErrNotFound
	}

	return row.toDomain(), nil
}

func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]*shortener.Link, error) {
	limit = shortener.ClampLimit(limit)
	if limit == 0 {
		return []*shortener.Link{}, nil
	}

	var rows []linkRow

	err := s.qb.From("links").
		Select("id", "code", "target", "created_at").
		Order(goqu.C("id").Desc()).
		Limit(uint(limit)).
		ScanStructsContext(ctx, &rows)
	if err != nil {
		return nil, unavailable("list recent links", err)
	}

	links := make([]*shortener.Link, len(rows))
	for i, row := range rows {
		links[i] = row.toDomain()
	}

	return links, nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

var _ shortener.Repository = (*SQLiteStore)(nil)
