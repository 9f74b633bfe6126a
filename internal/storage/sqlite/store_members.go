package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/luzeprogresso/portal/internal/storage"
)

// ListInternalDocuments returns members-only documents grouped by category.
func (s *Store) ListInternalDocuments(ctx context.Context) ([]storage.InternalDocument, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, title, category, description, file_url, access_level, uploaded_by, created_at, updated_at
FROM internal_documents
ORDER BY category ASC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list internal documents: %w", err)
	}
	defer rows.Close()

	var documents []storage.InternalDocument
	for rows.Next() {
		var doc storage.InternalDocument
		var createdAt, updatedAt int64
		if err := rows.Scan(&doc.ID, &doc.Title, &doc.Category, &doc.Description, &doc.FileURL, &doc.AccessLevel, &doc.UploadedBy, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan internal document: %w", err)
		}
		doc.CreatedAt = fromMillis(createdAt)
		doc.UpdatedAt = fromMillis(updatedAt)
		documents = append(documents, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list internal documents: %w", err)
	}
	return documents, nil
}

// ListAgendaEntries returns the reserved agenda, soonest first.
func (s *Store) ListAgendaEntries(ctx context.Context) ([]storage.AgendaEntry, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, title, event_type, event_date, description, location, access_level, created_by, created_at, updated_at
FROM reserved_agenda
ORDER BY event_date ASC`)
	if err != nil {
		return nil, fmt.Errorf("list agenda entries: %w", err)
	}
	defer rows.Close()

	var entries []storage.AgendaEntry
	for rows.Next() {
		var entry storage.AgendaEntry
		var eventDate, createdAt, updatedAt int64
		if err := rows.Scan(&entry.ID, &entry.Title, &entry.EventType, &eventDate, &entry.Description, &entry.Location, &entry.AccessLevel, &entry.CreatedBy, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan agenda entry: %w", err)
		}
		entry.EventDate = fromMillis(eventDate)
		entry.CreatedAt = fromMillis(createdAt)
		entry.UpdatedAt = fromMillis(updatedAt)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list agenda entries: %w", err)
	}
	return entries, nil
}

// ListMessagesForUser returns direct messages to the user plus broadcasts,
// newest first.
func (s *Store) ListMessagesForUser(ctx context.Context, userID string) ([]storage.MemberMessage, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, sender_id, recipient_id, subject, content, is_broadcast, is_read, created_at
FROM member_messages
WHERE recipient_id = ? OR is_broadcast = 1 OR sender_id = ?
ORDER BY created_at DESC`, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("list member messages: %w", err)
	}
	defer rows.Close()

	var messages []storage.MemberMessage
	for rows.Next() {
		var msg storage.MemberMessage
		var createdAt int64
		if err := rows.Scan(&msg.ID, &msg.SenderID, &msg.RecipientID, &msg.Subject, &msg.Content, &msg.IsBroadcast, &msg.IsRead, &createdAt); err != nil {
			return nil, fmt.Errorf("scan member message: %w", err)
		}
		msg.CreatedAt = fromMillis(createdAt)
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list member messages: %w", err)
	}
	return messages, nil
}

// InsertMemberMessage persists a member-to-member or broadcast message.
func (s *Store) InsertMemberMessage(ctx context.Context, msg storage.MemberMessage) (storage.MemberMessage, error) {
	if strings.TrimSpace(msg.ID) == "" {
		return storage.MemberMessage{}, fmt.Errorf("message id is required")
	}
	if strings.TrimSpace(msg.SenderID) == "" {
		return storage.MemberMessage{}, fmt.Errorf("sender id is required")
	}
	if strings.TrimSpace(msg.Content) == "" {
		return storage.MemberMessage{}, fmt.Errorf("message content is required")
	}
	if !msg.IsBroadcast && strings.TrimSpace(msg.RecipientID) == "" {
		return storage.MemberMessage{}, fmt.Errorf("recipient id is required for a direct message")
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = nowUTC()
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO member_messages (id, sender_id, recipient_id, subject, content, is_broadcast, is_read, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		msg.ID, msg.SenderID, msg.RecipientID, msg.Subject, msg.Content, msg.IsBroadcast, msg.IsRead, toMillis(msg.CreatedAt),
	)
	if err != nil {
		return storage.MemberMessage{}, fmt.Errorf("insert member message: %w", err)
	}
	return msg, nil
}

// ListWorshipfulMasters returns the gallery with the active master first.
func (s *Store) ListWorshipfulMasters(ctx context.Context) ([]storage.WorshipfulMaster, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, name, installation_year, term_start_date, term_end_date, bio, achievements, photo_url, sort_order, is_active, created_at, updated_at
FROM worshipful_masters
ORDER BY is_active DESC, sort_order ASC, installation_year DESC`)
	if err != nil {
		return nil, fmt.Errorf("list worshipful masters: %w", err)
	}
	defer rows.Close()

	var masters []storage.WorshipfulMaster
	for rows.Next() {
		var master storage.WorshipfulMaster
		var termStart, termEnd sql.NullInt64
		var createdAt, updatedAt int64
		if err := rows.Scan(&master.ID, &master.Name, &master.InstallationYear, &termStart, &termEnd, &master.Bio, &master.Achievements, &master.PhotoURL, &master.SortOrder, &master.IsActive, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan worshipful master: %w", err)
		}
		master.TermStartDate = millisPtr(termStart)
		master.TermEndDate = millisPtr(termEnd)
		master.CreatedAt = fromMillis(createdAt)
		master.UpdatedAt = fromMillis(updatedAt)
		masters = append(masters, master)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list worshipful masters: %w", err)
	}
	return masters, nil
}

const studyWorkColumns = "id, brother_name, work_title, file_path, file_size, description, category, is_approved, uploaded_by, upload_date"

func scanStudyWork(row rowScanner) (storage.StudyWork, error) {
	var work storage.StudyWork
	var uploadDate int64
	err := row.Scan(&work.ID, &work.BrotherName, &work.WorkTitle, &work.FilePath, &work.FileSize, &work.Description, &work.Category, &work.IsApproved, &work.UploadedBy, &uploadDate)
	if err != nil {
		return storage.StudyWork{}, err
	}
	work.UploadDate = fromMillis(uploadDate)
	return work, nil
}

// ListStudyWorks returns uploaded study papers, newest first.
func (s *Store) ListStudyWorks(ctx context.Context) ([]storage.StudyWork, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		"SELECT "+studyWorkColumns+" FROM study_works ORDER BY upload_date DESC")
	if err != nil {
		return nil, fmt.Errorf("list study works: %w", err)
	}
	defer rows.Close()

	var works []storage.StudyWork
	for rows.Next() {
		work, err := scanStudyWork(rows)
		if err != nil {
			return nil, fmt.Errorf("scan study work: %w", err)
		}
		works = append(works, work)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list study works: %w", err)
	}
	return works, nil
}

// GetStudyWork loads one study paper by id.
func (s *Store) GetStudyWork(ctx context.Context, id string) (storage.StudyWork, error) {
	row := s.sqlDB.QueryRowContext(ctx, "SELECT "+studyWorkColumns+" FROM study_works WHERE id = ?", id)
	work, err := scanStudyWork(row)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.StudyWork{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.StudyWork{}, fmt.Errorf("get study work: %w", err)
	}
	return work, nil
}

// InsertStudyWork persists an uploaded study paper record.
func (s *Store) InsertStudyWork(ctx context.Context, work storage.StudyWork) (storage.StudyWork, error) {
	if strings.TrimSpace(work.ID) == "" {
		return storage.StudyWork{}, fmt.Errorf("study work id is required")
	}
	if strings.TrimSpace(work.WorkTitle) == "" {
		return storage.StudyWork{}, fmt.Errorf("study work title is required")
	}
	if strings.TrimSpace(work.FilePath) == "" {
		return storage.StudyWork{}, fmt.Errorf("study work file path is required")
	}
	if work.UploadDate.IsZero() {
		work.UploadDate = nowUTC()
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO study_works (id, brother_name, work_title, file_path, file_size, description, category, is_approved, uploaded_by, upload_date)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		work.ID, work.BrotherName, work.WorkTitle, work.FilePath, work.FileSize, work.Description, work.Category, work.IsApproved, work.UploadedBy, toMillis(work.UploadDate),
	)
	if err != nil {
		return storage.StudyWork{}, fmt.Errorf("insert study work: %w", err)
	}
	return work, nil
}
