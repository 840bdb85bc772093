package portfolio

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrItemNotFound = errors.New("portfolio item not found")

const itemColumns = `id, title, category, type, url, thumbnail, description, created_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Insert persists a new item, assigning its id, and created_at when absent.
func (r *Repo) Insert(ctx context.Context, item *Item) (*Item, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}

	item.ID = uuid.NewString()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}

	_, err := r.db.Exec(
		ctx,
		`INSERT INTO portfolio_item (id, title, category, type, url, thumbnail, description, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
		item.ID, item.Title, item.Category, item.Type, item.URL,
		item.Thumbnail, item.Description, item.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert portfolio item: %w", err)
	}

	return item, nil
}

func (r *Repo) Get(ctx context.Context, id string) (*Item, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT `+itemColumns+` FROM portfolio_item WHERE id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	item, err := scanSingleItem(rows)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Update fully replaces the mutable fields of an existing item. The id and
// created_at stay untouched. Concurrent updates to the same id are
// last-writer-wins, atomicity comes from the single-row statement.
func (r *Repo) Update(ctx context.Context, id string, item *Item) (*Item, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(
		ctx,
		`UPDATE portfolio_item
			SET title = $1, category = $2, type = $3, url = $4, thumbnail = $5, description = $6
			WHERE id = $7
			RETURNING `+itemColumns+`;`,
		item.Title, item.Category, item.Type, item.URL,
		item.Thumbnail, item.Description, id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	updated, err := scanSingleItem(rows)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the item and returns the removed record.
func (r *Repo) Delete(ctx context.Context, id string) (*Item, error) {
	rows, err := r.db.Query(
		ctx,
		`DELETE FROM portfolio_item WHERE id = $1 RETURNING `+itemColumns+`;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deleted, err := scanSingleItem(rows)
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// List returns all items, newest first.
func (r *Repo) List(ctx context.Context) ([]Item, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT `+itemColumns+`
			FROM portfolio_item
			ORDER BY created_at DESC, id;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func scanSingleItem(rows pgx.Rows) (*Item, error) {
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if !rows.Next() {
		return nil, ErrItemNotFound
	}
	return scanItem(rows)
}

func scanItem(rows pgx.Rows) (*Item, error) {
	var item Item
	if err := rows.Scan(
		&item.ID, &item.Title, &item.Category, &item.Type, &item.URL,
		&item.Thumbnail, &item.Description, &item.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}
	return &item, nil
}
