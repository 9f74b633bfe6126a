package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/luzeprogresso/portal/internal/auth"
	"github.com/luzeprogresso/portal/internal/storage"
)

const userColumns = "id, email, password_hash, confirmed_at, last_sign_in_at, created_at, updated_at"

func scanUser(row *sql.Row) (auth.User, error) {
	var user auth.User
	var confirmedAt, lastSignInAt sql.NullInt64
	var createdAt, updatedAt int64
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &confirmedAt, &lastSignInAt, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return auth.User{}, storage.ErrNotFound
	}
	if err != nil {
		return auth.User{}, fmt.Errorf("scan user: %w", err)
	}
	user.ConfirmedAt = millisPtr(confirmedAt)
	user.LastSignInAt = millisPtr(lastSignInAt)
	user.CreatedAt = fromMillis(createdAt)
	user.UpdatedAt = fromMillis(updatedAt)
	return user, nil
}

// GetUser loads one identity record by id.
func (s *Store) GetUser(ctx context.Context, id string) (auth.User, error) {
	row := s.sqlDB.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	return scanUser(row)
}

// GetUserByEmail loads one identity record by its unique email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (auth.User, error) {
	row := s.sqlDB.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE email = ?", email)
	return scanUser(row)
}

// PutUser inserts or replaces an identity record.
func (s *Store) PutUser(ctx context.Context, user auth.User) error {
	if strings.TrimSpace(user.ID) == "" {
		return fmt.Errorf("user id is required")
	}
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO users (id, email, password_hash, confirmed_at, last_sign_in_at, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	email = excluded.email,
	password_hash = excluded.password_hash,
	confirmed_at = excluded.confirmed_at,
	last_sign_in_at = excluded.last_sign_in_at,
	updated_at = excluded.updated_at
`,
		user.ID,
		user.Email,
		user.PasswordHash,
		nullMillis(user.ConfirmedAt),
		nullMillis(user.LastSignInAt),
		toMillis(user.CreatedAt),
		toMillis(user.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put user: %w", err)
	}
	return nil
}

// MarkUserConfirmed stamps the email confirmation timestamp.
func (s *Store) MarkUserConfirmed(ctx context.Context, id string, at time.Time) error {
	return s.stampUser(ctx, "confirmed_at", id, at)
}

// MarkUserSignedIn records the latest successful credential exchange.
func (s *Store) MarkUserSignedIn(ctx context.Context, id string, at time.Time) error {
	return s.stampUser(ctx, "last_sign_in_at", id, at)
}

func (s *Store) stampUser(ctx context.Context, column, id string, at time.Time) error {
	result, err := s.sqlDB.ExecContext(ctx,
		"UPDATE users SET "+column+" = ?, updated_at = ? WHERE id = ?",
		toMillis(at), toMillis(at), id,
	)
	if err != nil {
		return fmt.Errorf("stamp user %s: %w", column, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("stamp user %s: %w", column, err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// GetSession loads one session by id.
func (s *Store) GetSession(ctx context.Context, id string) (auth.Session, error) {
	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, user_id, origin, created_at, expires_at, revoked_at
FROM sessions WHERE id = ?`, id)

	var session auth.Session
	var createdAt, expiresAt int64
	var revokedAt sql.NullInt64
	err := row.Scan(&session.ID, &session.UserID, &session.Origin, &createdAt, &expiresAt, &revokedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return auth.Session{}, storage.ErrNotFound
	}
	if err != nil {
		return auth.Session{}, fmt.Errorf("scan session: %w", err)
	}
	session.CreatedAt = fromMillis(createdAt)
	session.ExpiresAt = fromMillis(expiresAt)
	session.RevokedAt = millisPtr(revokedAt)
	return session, nil
}

// PutSession inserts a new session row.
func (s *Store) PutSession(ctx context.Context, session auth.Session) error {
	if strings.TrimSpace(session.ID) == "" {
		return fmt.Errorf("session id is required")
	}
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO sessions (id, user_id, origin, created_at, expires_at, revoked_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		session.ID,
		session.UserID,
		session.Origin,
		toMillis(session.CreatedAt),
		toMillis(session.ExpiresAt),
		nullMillis(session.RevokedAt),
	)
	if err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

// RevokeSession stamps the session as revoked. Revoking an already revoked
// session keeps the earlier timestamp.
func (s *Store) RevokeSession(ctx context.Context, id string, at time.Time) error {
	result, err := s.sqlDB.ExecContext(ctx,
		"UPDATE sessions SET revoked_at = COALESCE(revoked_at, ?) WHERE id = ?",
		toMillis(at), id,
	)
	if err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

const profileColumns = "id, user_id, full_name, position, photo_url, role, created_at, updated_at"

// GetProfileByUserID loads the one-to-one profile extension of a user.
func (s *Store) GetProfileByUserID(ctx context.Context, userID string) (auth.Profile, error) {
	row := s.sqlDB.QueryRowContext(ctx, "SELECT "+profileColumns+" FROM profiles WHERE user_id = ?", userID)

	var profile auth.Profile
	var createdAt, updatedAt int64
	err := row.Scan(&profile.ID, &profile.UserID, &profile.FullName, &profile.Position, &profile.PhotoURL, &profile.Role, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return auth.Profile{}, storage.ErrNotFound
	}
	if err != nil {
		return auth.Profile{}, fmt.Errorf("scan profile: %w", err)
	}
	profile.CreatedAt = fromMillis(createdAt)
	profile.UpdatedAt = fromMillis(updatedAt)
	return profile, nil
}

// PutProfile inserts a profile row.
func (s *Store) PutProfile(ctx context.Context, profile auth.Profile) error {
	if strings.TrimSpace(profile.ID) == "" {
		return fmt.Errorf("profile id is required")
	}
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO profiles (id, user_id, full_name, position, photo_url, role, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		profile.ID,
		profile.UserID,
		profile.FullName,
		profile.Position,
		profile.PhotoURL,
		profile.Role,
		toMillis(profile.CreatedAt),
		toMillis(profile.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put profile: %w", err)
	}
	return nil
}

// UpdateProfile rewrites the mutable profile columns. The role column is
// written as stored so self-service updates cannot escalate access.
func (s *Store) UpdateProfile(ctx context.Context, profile auth.Profile) error {
	result, err := s.sqlDB.ExecContext(ctx, `
UPDATE profiles
SET full_name = ?, position = ?, photo_url = ?, role = ?, updated_at = ?
WHERE id = ?`,
		profile.FullName,
		profile.Position,
		profile.PhotoURL,
		profile.Role,
		toMillis(profile.UpdatedAt),
		profile.ID,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
