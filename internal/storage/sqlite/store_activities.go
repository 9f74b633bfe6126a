package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/luzeprogresso/portal/internal/storage"
)

const activityColumns = "id, title, category, description, content, event_date, image_url, gallery_images, partnerships, results, is_featured, is_public, created_at, updated_at"

func encodeStringList(values []string) (string, error) {
	if len(values) == 0 {
		return "[]", nil
	}
	encoded, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("encode string list: %w", err)
	}
	return string(encoded), nil
}

func decodeStringList(encoded string) ([]string, error) {
	if strings.TrimSpace(encoded) == "" || encoded == "[]" {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(encoded), &values); err != nil {
		return nil, fmt.Errorf("decode string list: %w", err)
	}
	return values, nil
}

func scanActivity(row rowScanner) (storage.Activity, error) {
	var activity storage.Activity
	var eventDate sql.NullInt64
	var gallery, partnerships string
	var createdAt, updatedAt int64
	err := row.Scan(
		&activity.ID,
		&activity.Title,
		&activity.Category,
		&activity.Description,
		&activity.Content,
		&eventDate,
		&activity.ImageURL,
		&gallery,
		&partnerships,
		&activity.Results,
		&activity.IsFeatured,
		&activity.IsPublic,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return storage.Activity{}, err
	}
	activity.EventDate = millisPtr(eventDate)
	activity.CreatedAt = fromMillis(createdAt)
	activity.UpdatedAt = fromMillis(updatedAt)
	if activity.GalleryImages, err = decodeStringList(gallery); err != nil {
		return storage.Activity{}, err
	}
	if activity.Partnerships, err = decodeStringList(partnerships); err != nil {
		return storage.Activity{}, err
	}
	return activity, nil
}

func (s *Store) listActivities(ctx context.Context, query string, args ...any) ([]storage.Activity, error) {
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	var activities []storage.Activity
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		activities = append(activities, activity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return activities, nil
}

// ListPublicActivities returns public activities, most recent date first.
func (s *Store) ListPublicActivities(ctx context.Context) ([]storage.Activity, error) {
	return s.listActivities(ctx,
		"SELECT "+activityColumns+" FROM activities WHERE is_public = 1 ORDER BY event_date DESC, created_at DESC")
}

// ListFeaturedActivities returns featured public activities for the home page.
func (s *Store) ListFeaturedActivities(ctx context.Context, limit int) ([]storage.Activity, error) {
	if limit <= 0 {
		limit = 3
	}
	return s.listActivities(ctx,
		"SELECT "+activityColumns+" FROM activities WHERE is_public = 1 AND is_featured = 1 ORDER BY event_date DESC, created_at DESC LIMIT ?",
		limit,
	)
}

// ListAllActivities returns every activity for the commission area.
func (s *Store) ListAllActivities(ctx context.Context) ([]storage.Activity, error) {
	return s.listActivities(ctx,
		"SELECT "+activityColumns+" FROM activities ORDER BY event_date DESC, created_at DESC")
}

// GetActivity loads one activity by id.
func (s *Store) GetActivity(ctx context.Context, id string) (storage.Activity, error) {
	row := s.sqlDB.QueryRowContext(ctx, "SELECT "+activityColumns+" FROM activities WHERE id = ?", id)
	activity, err := scanActivity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Activity{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.Activity{}, fmt.Errorf("get activity: %w", err)
	}
	return activity, nil
}

// InsertActivity persists a new activity.
func (s *Store) InsertActivity(ctx context.Context, activity storage.Activity) (storage.Activity, error) {
	if strings.TrimSpace(activity.ID) == "" {
		return storage.Activity{}, fmt.Errorf("activity id is required")
	}
	if strings.TrimSpace(activity.Title) == "" {
		return storage.Activity{}, fmt.Errorf("activity title is required")
	}
	gallery, err := encodeStringList(activity.GalleryImages)
	if err != nil {
		return storage.Activity{}, err
	}
	partnerships, err := encodeStringList(activity.Partnerships)
	if err != nil {
		return storage.Activity{}, err
	}
	now := nowUTC()
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = now
	}
	activity.UpdatedAt = activity.CreatedAt

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO activities (id, title, category, description, content, event_date, image_url, gallery_images, partnerships, results, is_featured, is_public, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		activity.ID,
		activity.Title,
		activity.Category,
		activity.Description,
		activity.Content,
		nullMillis(activity.EventDate),
		activity.ImageURL,
		gallery,
		partnerships,
		activity.Results,
		activity.IsFeatured,
		activity.IsPublic,
		toMillis(activity.CreatedAt),
		toMillis(activity.UpdatedAt),
	)
	if err != nil {
		return storage.Activity{}, fmt.Errorf("insert activity: %w", err)
	}
	return activity, nil
}

// UpdateActivity rewrites an existing activity.
func (s *Store) UpdateActivity(ctx context.Context, activity storage.Activity) error {
	gallery, err := encodeStringList(activity.GalleryImages)
	if err != nil {
		return err
	}
	partnerships, err := encodeStringList(activity.Partnerships)
	if err != nil {
		return err
	}
	activity.UpdatedAt = nowUTC()

	result, err := s.sqlDB.ExecContext(ctx, `
UPDATE activities
SET title = ?, category = ?, description = ?, content = ?, event_date = ?, image_url = ?, gallery_images = ?, partnerships = ?, results = ?, is_featured = ?, is_public = ?, updated_at = ?
WHERE id = ?`,
		activity.Title,
		activity.Category,
		activity.Description,
		activity.Content,
		nullMillis(activity.EventDate),
		activity.ImageURL,
		gallery,
		partnerships,
		activity.Results,
		activity.IsFeatured,
		activity.IsPublic,
		toMillis(activity.UpdatedAt),
		activity.ID,
	)
	if err != nil {
		return fmt.Errorf("update activity: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update activity: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteActivity removes an activity by id.
func (s *Store) DeleteActivity(ctx context.Context, id string) error {
	result, err := s.sqlDB.ExecContext(ctx, "DELETE FROM activities WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete activity: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete activity: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
