package book

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// timeLayout keeps created_at lexically sortable in TEXT columns.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteRepo stores books through database/sql. It is used with the
// modernc.org/sqlite driver.
type SQLiteRepo struct {
	db      *sql.DB
	timeout time.Duration
	now     func() time.Time
}

func NewSQLiteRepo(db *sql.DB, timeout time.Duration) *SQLiteRepo {
	return &SQLiteRepo{db: db, timeout: timeout, now: time.Now}
}

func (r *SQLiteRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *SQLiteRepo) Save(ctx context.Context, b *Book) error {
	const query = `INSERT INTO books (id, title, author, price, created_at) VALUES (?, ?, ?, ?, ?)`

	id := uuid.NewString()
	createdAt := r.now().UTC()

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if _, err := r.db.ExecContext(timeoutCtx, query, id, b.Title, b.Author, b.Price, createdAt.Format(timeLayout)); err != nil {
		return fmt.Errorf("insert book: %w", err)
	}

	b.ID = id
	b.CreatedAt = createdAt
	return nil
}

func (r *SQLiteRepo) FindAll(ctx context.Context) ([]Book, error) {
	const query = `SELECT id, title, author, price, created_at FROM books ORDER BY rowid`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.QueryContext(timeoutCtx, query)
	if err != nil {
		return nil, fmt.Errorf("select books: %w", err)
	}
	defer rows.Close()

	out := []Book{}
	for rows.Next() {
		var (
			b         Book
			createdAt string
		)
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Price, &createdAt); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		if b.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}
	return out, nil
}
