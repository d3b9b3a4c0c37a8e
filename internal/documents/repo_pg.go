package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new document and returns it with the generated id and
// creation timestamp.
func (r *PGRepo) Create(ctx context.Context, doc Document) (Document, error) {
	const query = `
INSERT INTO documents (name, file_url, text, user_id, created_at)
VALUES ($1, $2, $3, $4, now())
RETURNING id, created_at`

	err := r.DB.QueryRowContext(
		ctx,
		query,
		nullableString(doc.Name),
		doc.FileURL,
		nullableString(doc.Text),
		doc.UserID,
	).Scan(&doc.ID, &doc.CreatedAt)
	if err != nil {
		return Document{}, fmt.Errorf("create document: %w", err)
	}
	return doc, nil
}

// FindByIDAndOwner returns the document only if it belongs to ownerID.
// A foreign-owned document yields ErrNotFound, same as a missing one.
func (r *PGRepo) FindByIDAndOwner(ctx context.Context, id int64, ownerID string) (Document, error) {
	const query = `
SELECT id, name, file_url, text, user_id, created_at
FROM documents
WHERE id = $1 AND user_id = $2
LIMIT 1`

	doc, err := scanDocument(r.DB.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, fmt.Errorf("find document: %w", err)
	}
	return doc, nil
}

// ListByOwner returns one page of the owner's documents, newest first, plus
// the total matching count. search filters by case-insensitive substring
// match on name.
func (r *PGRepo) ListByOwner(ctx context.Context, ownerID string, limit, offset int, search string) ([]Document, int64, error) {
	if limit <= 0 {
		limit = 6
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	countQuery := `SELECT count(*) FROM documents WHERE user_id = $1`
	listQuery := `
SELECT id, name, file_url, text, user_id, created_at
FROM documents
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	countArgs := []any{ownerID}
	listArgs := []any{ownerID, limit, offset}
	if search != "" {
		countQuery = `SELECT count(*) FROM documents WHERE user_id = $1 AND name ILIKE '%' || $2 || '%'`
		listQuery = `
SELECT id, name, file_url, text, user_id, created_at
FROM documents
WHERE user_id = $1 AND name ILIKE '%' || $2 || '%'
ORDER BY created_at DESC
LIMIT $3 OFFSET $4`
		countArgs = []any{ownerID, search}
		listArgs = []any{ownerID, search, limit, offset}
	}

	var total int64
	if err := r.DB.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count documents: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	out := []Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan document: %w", err)
		}
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list documents: %w", err)
	}
	return out, total, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var doc Document
	var name sql.NullString
	var text sql.NullString
	if err := row.Scan(
		&doc.ID,
		&name,
		&doc.FileURL,
		&text,
		&doc.UserID,
		&doc.CreatedAt,
	); err != nil {
		return Document{}, err
	}
	if name.Valid {
		doc.Name = name.String
	}
	if text.Valid {
		doc.Text = text.String
	}
	return doc, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

var _ Repo = (*PGRepo)(nil)
