package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/luzeprogresso/portal/internal/storage"
)

const eventColumns = "id, title, description, event_date, location, image_url, is_public, created_at, updated_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (storage.Event, error) {
	var event storage.Event
	var eventDate, createdAt, updatedAt int64
	err := row.Scan(&event.ID, &event.Title, &event.Description, &eventDate, &event.Location, &event.ImageURL, &event.IsPublic, &createdAt, &updatedAt)
	if err != nil {
		return storage.Event{}, err
	}
	event.EventDate = fromMillis(eventDate)
	event.CreatedAt = fromMillis(createdAt)
	event.UpdatedAt = fromMillis(updatedAt)
	return event, nil
}

func (s *Store) listEvents(ctx context.Context, query string, args ...any) ([]storage.Event, error) {
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []storage.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// ListPublicEvents returns public events ordered by date ascending.
func (s *Store) ListPublicEvents(ctx context.Context) ([]storage.Event, error) {
	return s.listEvents(ctx, "SELECT "+eventColumns+" FROM events WHERE is_public = 1 ORDER BY event_date ASC")
}

// ListUpcomingPublicEvents returns the next public events at or after now.
func (s *Store) ListUpcomingPublicEvents(ctx context.Context, limit int) ([]storage.Event, error) {
	if limit <= 0 {
		limit = 3
	}
	now := toMillis(nowUTC())
	return s.listEvents(ctx,
		"SELECT "+eventColumns+" FROM events WHERE is_public = 1 AND event_date >= ? ORDER BY event_date ASC LIMIT ?",
		now, limit,
	)
}

// ListAllEvents returns every event, public or not, newest date first.
func (s *Store) ListAllEvents(ctx context.Context) ([]storage.Event, error) {
	return s.listEvents(ctx, "SELECT "+eventColumns+" FROM events ORDER BY event_date DESC")
}

// GetEvent loads one event by id.
func (s *Store) GetEvent(ctx context.Context, id string) (storage.Event, error) {
	row := s.sqlDB.QueryRowContext(ctx, "SELECT "+eventColumns+" FROM events WHERE id = ?", id)
	event, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Event{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.Event{}, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

// InsertEvent persists a new event and returns it with timestamps set.
func (s *Store) InsertEvent(ctx context.Context, event storage.Event) (storage.Event, error) {
	if strings.TrimSpace(event.ID) == "" {
		return storage.Event{}, fmt.Errorf("event id is required")
	}
	if strings.TrimSpace(event.Title) == "" {
		return storage.Event{}, fmt.Errorf("event title is required")
	}
	now := nowUTC()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = now
	}
	event.UpdatedAt = event.CreatedAt

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO events (id, title, description, event_date, location, image_url, is_public, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID,
		event.Title,
		event.Description,
		toMillis(event.EventDate),
		event.Location,
		event.ImageURL,
		event.IsPublic,
		toMillis(event.CreatedAt),
		toMillis(event.UpdatedAt),
	)
	if err != nil {
		return storage.Event{}, fmt.Errorf("insert event: %w", err)
	}
	return event, nil
}

// UpdateEvent rewrites an existing event.
func (s *Store) UpdateEvent(ctx context.Context, event storage.Event) error {
	event.UpdatedAt = nowUTC()
	result, err := s.sqlDB.ExecContext(ctx, `
UPDATE events
SET title = ?, description = ?, event_date = ?, location = ?, image_url = ?, is_public = ?, updated_at = ?
WHERE id = ?`,
		event.Title,
		event.Description,
		toMillis(event.EventDate),
		event.Location,
		event.ImageURL,
		event.IsPublic,
		toMillis(event.UpdatedAt),
		event.ID,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteEvent removes an event by id.
func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	result, err := s.sqlDB.ExecContext(ctx, "DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
