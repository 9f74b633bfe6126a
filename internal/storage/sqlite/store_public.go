package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/luzeprogresso/portal/internal/storage"
)

// ListPublishedArticles returns the latest published public articles.
func (s *Store) ListPublishedArticles(ctx context.Context, limit int) ([]storage.Article, error) {
	if limit <= 0 {
		limit = 3
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, title, content, excerpt, image_url, author_id, is_public, is_published, created_at, updated_at
FROM articles
WHERE is_public = 1 AND is_published = 1
ORDER BY created_at DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	var articles []storage.Article
	for rows.Next() {
		var article storage.Article
		var createdAt, updatedAt int64
		if err := rows.Scan(&article.ID, &article.Title, &article.Content, &article.Excerpt, &article.ImageURL, &article.AuthorID, &article.IsPublic, &article.IsPublished, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		article.CreatedAt = fromMillis(createdAt)
		article.UpdatedAt = fromMillis(updatedAt)
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return articles, nil
}

// ListActiveOfficers returns the officer roster in display order.
func (s *Store) ListActiveOfficers(ctx context.Context) ([]storage.Officer, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, name, position, bio, photo_url, sort_order, active, created_at, updated_at
FROM officers
WHERE active = 1
ORDER BY sort_order ASC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list officers: %w", err)
	}
	defer rows.Close()

	var officers []storage.Officer
	for rows.Next() {
		var officer storage.Officer
		var createdAt, updatedAt int64
		if err := rows.Scan(&officer.ID, &officer.Name, &officer.Position, &officer.Bio, &officer.PhotoURL, &officer.SortOrder, &officer.Active, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan officer: %w", err)
		}
		officer.CreatedAt = fromMillis(createdAt)
		officer.UpdatedAt = fromMillis(updatedAt)
		officers = append(officers, officer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list officers: %w", err)
	}
	return officers, nil
}

// GetLodgeInfo returns the single institutional record.
func (s *Store) GetLodgeInfo(ctx context.Context) (storage.LodgeInfo, error) {
	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, name, subtitle, description, mission, vision, lodge_values, address, phone, email, website, logo_url, hero_image_url, created_at, updated_at
FROM lodge_info
ORDER BY created_at ASC
LIMIT 1`)

	var info storage.LodgeInfo
	var createdAt, updatedAt int64
	err := row.Scan(&info.ID, &info.Name, &info.Subtitle, &info.Description, &info.Mission, &info.Vision, &info.Values, &info.Address, &info.Phone, &info.Email, &info.Website, &info.LogoURL, &info.HeroImageURL, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.LodgeInfo{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.LodgeInfo{}, fmt.Errorf("get lodge info: %w", err)
	}
	info.CreatedAt = fromMillis(createdAt)
	info.UpdatedAt = fromMillis(updatedAt)
	return info, nil
}

// ListEducationalContent returns study entries grouped for the education page.
func (s *Store) ListEducationalContent(ctx context.Context) ([]storage.EducationalContent, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, title, category, content, author, sort_order, is_featured, created_at, updated_at
FROM educational_content
ORDER BY category ASC, sort_order ASC, title ASC`)
	if err != nil {
		return nil, fmt.Errorf("list educational content: %w", err)
	}
	defer rows.Close()

	var entries []storage.EducationalContent
	for rows.Next() {
		var entry storage.EducationalContent
		var createdAt, updatedAt int64
		if err := rows.Scan(&entry.ID, &entry.Title, &entry.Category, &entry.Content, &entry.Author, &entry.SortOrder, &entry.IsFeatured, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan educational content: %w", err)
		}
		entry.CreatedAt = fromMillis(createdAt)
		entry.UpdatedAt = fromMillis(updatedAt)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list educational content: %w", err)
	}
	return entries, nil
}

// DefaultContactSubject fills in for a visitor who leaves the subject blank.
const DefaultContactSubject = "Contato pelo site"

// InsertContactMessage persists a visitor message. An empty subject stores
// the site default.
func (s *Store) InsertContactMessage(ctx context.Context, msg storage.ContactMessage) (storage.ContactMessage, error) {
	if strings.TrimSpace(msg.ID) == "" {
		return storage.ContactMessage{}, fmt.Errorf("contact message id is required")
	}
	if strings.TrimSpace(msg.Name) == "" {
		return storage.ContactMessage{}, fmt.Errorf("contact name is required")
	}
	if strings.TrimSpace(msg.Email) == "" {
		return storage.ContactMessage{}, fmt.Errorf("contact email is required")
	}
	if strings.TrimSpace(msg.Message) == "" {
		return storage.ContactMessage{}, fmt.Errorf("contact message body is required")
	}
	if strings.TrimSpace(msg.Subject) == "" {
		msg.Subject = DefaultContactSubject
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = nowUTC()
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO contact_messages (id, name, email, subject, message, is_read, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		msg.ID, msg.Name, msg.Email, msg.Subject, msg.Message, msg.IsRead, toMillis(msg.CreatedAt),
	)
	if err != nil {
		return storage.ContactMessage{}, fmt.Errorf("insert contact message: %w", err)
	}
	return msg, nil
}

// ListContactMessages returns visitor messages, newest first.
func (s *Store) ListContactMessages(ctx context.Context) ([]storage.ContactMessage, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, name, email, subject, message, is_read, created_at
FROM contact_messages
ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	var messages []storage.ContactMessage
	for rows.Next() {
		var msg storage.ContactMessage
		var createdAt int64
		if err := rows.Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Subject, &msg.Message, &msg.IsRead, &createdAt); err != nil {
			return nil, fmt.Errorf("scan contact message: %w", err)
		}
		msg.CreatedAt = fromMillis(createdAt)
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	return messages, nil
}

// MarkContactMessageRead flags one visitor message as handled.
func (s *Store) MarkContactMessageRead(ctx context.Context, id string) error {
	result, err := s.sqlDB.ExecContext(ctx, "UPDATE contact_messages SET is_read = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("mark contact message read: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark contact message read: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
