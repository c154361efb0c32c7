package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"itemtrace-registry-service/internal/domain/item"
	"itemtrace-registry-service/internal/domain/shared"
	"itemtrace-registry-service/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const itemColumns = "id, user_id, name, serial_number, description, category, contact_info, owner, image_url, images, fee, status, created_at, updated_at"

// ItemRepository implements the item repository interface
type ItemRepository struct {
	conn *Connection
}

// NewItemRepository creates a new item repository
func NewItemRepository(conn *Connection) *ItemRepository {
	return &ItemRepository{conn: conn}
}

// Insert stores a new item, created_at is assigned by the database
func (r *ItemRepository) Insert(ctx context.Context, it *item.Item) (*item.Item, error) {
	query := `
		INSERT INTO items (id, user_id, name, serial_number, description, category, contact_info, owner, image_url, images, fee, status, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + itemColumns

	row := r.conn.GetDB().QueryRowContext(ctx, query,
		it.ID,
		it.UserID,
		it.Name,
		it.SerialNumber,
		it.Description,
		it.Category,
		it.ContactInfo,
		it.Owner,
		it.ImageURL,
		pq.Array(it.Images),
		it.Fee,
		it.Status,
		it.UpdatedAt,
	)

	inserted, err := scanItem(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert item: %w", err)
	}

	return inserted, nil
}

// GetByID retrieves an item by id scoped to its owner
func (r *ItemRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*item.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE id = $1 AND user_id = $2
	`

	it, err := scanItem(r.conn.GetDB().QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, shared.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return it, nil
}

// List retrieves a page of items matching the filter, newest first
func (r *ItemRepository) List(ctx context.Context, filter outbound.ItemFilter, limit, offset int) ([]*item.Item, error) {
	whereClause, args := buildWhereClause(filter)

	query := fmt.Sprintf(`
		SELECT `+itemColumns+`
		FROM items
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.conn.GetDB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []*item.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return items, nil
}

// Count returns the exact number of items matching the filter
func (r *ItemRepository) Count(ctx context.Context, filter outbound.ItemFilter) (int, error) {
	whereClause, args := buildWhereClause(filter)

	query := fmt.Sprintf("SELECT COUNT(*) FROM items %s", whereClause)

	var count int
	if err := r.conn.GetDB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}

	return count, nil
}

// Update applies a patch to an owner-scoped item and returns the updated row
func (r *ItemRepository) Update(ctx context.Context, id, userID uuid.UUID, patch *item.Patch) (*item.Item, error) {
	assignments, args := buildSetClause(patch)

	query := fmt.Sprintf(`
		UPDATE items
		SET %s
		WHERE id = $%d AND user_id = $%d
		RETURNING `+itemColumns,
		strings.Join(assignments, ", "), len(args)+1, len(args)+2)
	args = append(args, id, userID)

	updated, err := scanItem(r.conn.GetDB().QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, shared.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	return updated, nil
}

// Delete removes an owner-scoped item
func (r *ItemRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	query := `DELETE FROM items WHERE id = $1 AND user_id = $2`

	result, err := r.conn.GetDB().ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return shared.ErrItemNotFound
	}

	return nil
}

// LatestUpdatedAt returns the most recent updated_at for a user's items
func (r *ItemRepository) LatestUpdatedAt(ctx context.Context, userID uuid.UUID) (*time.Time, error) {
	query := `
		SELECT updated_at
		FROM items
		WHERE user_id = $1
		ORDER BY updated_at DESC
		LIMIT 1
	`

	var updatedAt time.Time
	err := r.conn.GetDB().QueryRowContext(ctx, query, userID).Scan(&updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest updated_at: %w", err)
	}

	return &updatedAt, nil
}

// CategoriesByUser returns the category values of a user's items
func (r *ItemRepository) CategoriesByUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	query := `
		SELECT category
		FROM items
		WHERE user_id = $1 AND category IS NOT NULL AND category <> ''
	`

	rows, err := r.conn.GetDB().QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}

	return categories, nil
}

// buildWhereClause translates the filter predicate set into SQL
func buildWhereClause(filter outbound.ItemFilter) (string, []any) {
	var conditions []string
	var args []any

	next := func(arg any) int {
		args = append(args, arg)
		return len(args)
	}

	if filter.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", next(*filter.UserID)))
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", next(*filter.Status)))
	}
	if filter.Category != nil {
		conditions = append(conditions, fmt.Sprintf("category = $%d", next(*filter.Category)))
	}
	if filter.SerialNumber != nil {
		conditions = append(conditions, fmt.Sprintf("serial_number = $%d", next(*filter.SerialNumber)))
	}
	if filter.Search != "" && len(filter.SearchFields) > 0 {
		pattern := "%" + filter.Search + "%"
		var matches []string
		for _, field := range filter.SearchFields {
			matches = append(matches, fmt.Sprintf("%s ILIKE $%d", field, next(pattern)))
		}
		conditions = append(conditions, "("+strings.Join(matches, " OR ")+")")
	}
	if filter.CreatedSince != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", next(*filter.CreatedSince)))
	}

	if len(conditions) == 0 {
		return "", nil
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

// buildSetClause translates a patch into SQL assignments
func buildSetClause(patch *item.Patch) ([]string, []any) {
	var assignments []string
	var args []any

	set := func(column string, value any) {
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		set("name", *patch.Name)
	}
	if patch.SerialNumber != nil {
		set("serial_number", *patch.SerialNumber)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.Category != nil {
		set("category", *patch.Category)
	}
	if patch.ContactInfo != nil {
		set("contact_info", *patch.ContactInfo)
	}
	if patch.Owner != nil {
		set("owner", *patch.Owner)
	}
	if patch.ImageURL != nil {
		set("image_url", *patch.ImageURL)
	}
	if patch.Images != nil {
		set("images", pq.Array(patch.Images))
	}
	if patch.Fee != nil {
		set("fee", *patch.Fee)
	}
	if patch.Status != nil {
		set("status", *patch.Status)
	}
	set("updated_at", patch.UpdatedAt)

	return assignments, args
}

// scanner covers both sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

// scanItem reads one items row into the domain entity
func scanItem(row scanner) (*item.Item, error) {
	var it item.Item
	var description, category, contactInfo, owner, imageURL, status sql.NullString
	var images pq.StringArray
	var fee sql.NullFloat64

	err := row.Scan(
		&it.ID,
		&it.UserID,
		&it.Name,
		&it.SerialNumber,
		&description,
		&category,
		&contactInfo,
		&owner,
		&imageURL,
		&images,
		&fee,
		&status,
		&it.CreatedAt,
		&it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	it.Description = nullableString(description)
	it.Category = nullableString(category)
	it.ContactInfo = nullableString(contactInfo)
	it.Owner = nullableString(owner)
	it.ImageURL = nullableString(imageURL)
	it.Images = images
	if fee.Valid {
		it.Fee = &fee.Float64
	}
	if status.Valid {
		s := item.Status(status.String)
		it.Status = &s
	}

	return &it, nil
}

func nullableString(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	return &value.String
}
