package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/luzeprogresso/portal/internal/auth/password"
	platformerrors "github.com/luzeprogresso/portal/internal/platform/errors"
	"github.com/luzeprogresso/portal/internal/platform/id"
	"github.com/luzeprogresso/portal/internal/storage"
)

// defaultSessionTTL keeps members signed in for a week of meetings.
const defaultSessionTTL = 7 * 24 * time.Hour

// Config carries the collaborators a Service needs.
type Config struct {
	Store      Store
	Secret     []byte
	SessionTTL time.Duration

	// Clock and NewID exist as seams for tests.
	Clock func() time.Time
	NewID func() (string, error)
	Logf  func(format string, args ...any)
}

// Service is the session manager. It is safe for concurrent use.
type Service struct {
	store      Store
	secret     []byte
	sessionTTL time.Duration
	clock      func() time.Time
	newID      func() (string, error)
	logf       func(format string, args ...any)
}

// NewService constructs the session manager.
func NewService(cfg Config) (*Service, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if len(cfg.Secret) == 0 {
		return nil, fmt.Errorf("signing secret is required")
	}
	svc := &Service{
		store:      cfg.Store,
		secret:     cfg.Secret,
		sessionTTL: cfg.SessionTTL,
		clock:      cfg.Clock,
		newID:      cfg.NewID,
		logf:       cfg.Logf,
	}
	if svc.sessionTTL <= 0 {
		svc.sessionTTL = defaultSessionTTL
	}
	if svc.clock == nil {
		svc.clock = time.Now
	}
	if svc.newID == nil {
		svc.newID = id.NewID
	}
	if svc.logf == nil {
		svc.logf = log.Printf
	}
	return svc, nil
}

// SignIn exchanges credentials for a session. Authentication failures are
// returned as values carrying AUTH_INVALID_CREDENTIALS; the caller shows them
// inline and no session state changes on failure.
func (s *Service) SignIn(ctx context.Context, email, plaintext string) (Session, error) {
	email = normalizeEmail(email)
	if email == "" {
		return Session{}, platformerrors.New(platformerrors.CodeAuthEmailRequired, "informe o e-mail")
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		return Session{}, invalidCredentials()
	}
	if err != nil {
		return Session{}, fmt.Errorf("load user: %w", err)
	}

	ok, err := password.Verify(plaintext, user.PasswordHash)
	if err != nil || !ok {
		return Session{}, invalidCredentials()
	}

	sessionID, err := s.newID()
	if err != nil {
		return Session{}, fmt.Errorf("generate session id: %w", err)
	}
	now := s.clock().UTC()
	session := Session{
		ID:        sessionID,
		UserID:    user.ID,
		Origin:    OriginPassword,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.store.PutSession(ctx, session); err != nil {
		return Session{}, fmt.Errorf("put session: %w", err)
	}
	if err := s.store.MarkUserSignedIn(ctx, user.ID, now); err != nil {
		s.logf("auth: mark signed in user=%s: %v", user.ID, err)
	}
	return session, nil
}

// SignUp creates an account plus its empty-role profile row and returns the
// signed confirmation token for the emailed link. It never signs the user in.
func (s *Service) SignUp(ctx context.Context, email, plaintext, fullName, redirectTo string) (string, error) {
	email = normalizeEmail(email)
	if email == "" {
		return "", platformerrors.New(platformerrors.CodeAuthEmailRequired, "informe o e-mail")
	}
	if len(plaintext) < password.MinLength {
		return "", platformerrors.New(platformerrors.CodeAuthPasswordTooShort, "a senha deve ter pelo menos %d caracteres", password.MinLength)
	}

	if _, err := s.store.GetUserByEmail(ctx, email); err == nil {
		return "", platformerrors.New(platformerrors.CodeAuthEmailInUse, "este e-mail já está cadastrado")
	} else if !errors.Is(err, storage.ErrNotFound) {
		return "", fmt.Errorf("check email: %w", err)
	}

	hash, err := password.Hash(plaintext)
	if err != nil {
		return "", platformerrors.Wrap(platformerrors.CodeAuthPasswordTooShort, err, "senha inválida")
	}

	userID, err := s.newID()
	if err != nil {
		return "", fmt.Errorf("generate user id: %w", err)
	}
	profileID, err := s.newID()
	if err != nil {
		return "", fmt.Errorf("generate profile id: %w", err)
	}
	now := s.clock().UTC()
	user := User{
		ID:           userID,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.PutUser(ctx, user); err != nil {
		return "", fmt.Errorf("put user: %w", err)
	}
	profile := Profile{
		ID:        profileID,
		UserID:    userID,
		FullName:  strings.TrimSpace(fullName),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.PutProfile(ctx, profile); err != nil {
		return "", fmt.Errorf("put profile: %w", err)
	}

	if strings.TrimSpace(redirectTo) == "" {
		redirectTo = "/"
	}
	token, err := newConfirmationToken(s.secret, userID, redirectTo, now)
	if err != nil {
		return "", err
	}
	return token, nil
}

// Confirm validates an emailed confirmation token and stamps the account as
// confirmed. Confirmation never creates a session; the returned target is
// where the browser should land next.
func (s *Service) Confirm(ctx context.Context, rawToken string) (string, error) {
	token, err := parseConfirmationToken(s.secret, rawToken, s.clock().UTC())
	if err != nil {
		return "", platformerrors.Wrap(platformerrors.CodeAuthConfirmationToken, err, "link de confirmação inválido ou expirado")
	}
	if err := s.store.MarkUserConfirmed(ctx, token.UserID, s.clock().UTC()); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", platformerrors.New(platformerrors.CodeAuthConfirmationToken, "link de confirmação inválido ou expirado")
		}
		return "", fmt.Errorf("mark confirmed: %w", err)
	}
	if token.RedirectTo == "" {
		return "/", nil
	}
	return token.RedirectTo, nil
}

// SignOut revokes the session. It never returns an error: the caller has
// already cleared its local state (cookies) before invoking this, and the
// boolean only selects between the success and failure notification copy.
func (s *Service) SignOut(ctx context.Context, sessionID string) bool {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return true
	}
	if err := s.store.RevokeSession(ctx, sessionID, s.clock().UTC()); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return true
		}
		s.logf("auth: revoke session %s: %v", sessionID, err)
		return false
	}
	return true
}

// Resolve maps a session identifier to the observable authentication state.
//
// Missing, expired, revoked and confirmation-origin sessions resolve to the
// anonymous state. A transient store failure resolves to State{Loading: true}
// so gated pages render their neutral placeholder instead of a denial. A
// missing or failing profile row degrades to an authenticated state with no
// role flags.
func (s *Service) Resolve(ctx context.Context, sessionID string) State {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return Anonymous()
	}

	session, err := s.store.GetSession(ctx, sessionID)
	if errors.Is(err, storage.ErrNotFound) {
		return Anonymous()
	}
	if err != nil {
		s.logf("auth: get session %s: %v", sessionID, err)
		return State{Loading: true}
	}

	now := s.clock().UTC()
	if session.RevokedAt != nil || !session.ExpiresAt.After(now) {
		return Anonymous()
	}
	if session.Origin != OriginPassword {
		// A confirmation link must never grant access. Revoke and fall back
		// to anonymous instead of trusting timestamp heuristics.
		if err := s.store.RevokeSession(ctx, session.ID, now); err != nil && !errors.Is(err, storage.ErrNotFound) {
			s.logf("auth: revoke anomalous session %s: %v", session.ID, err)
		}
		return Anonymous()
	}

	user, err := s.store.GetUser(ctx, session.UserID)
	if errors.Is(err, storage.ErrNotFound) {
		return Anonymous()
	}
	if err != nil {
		s.logf("auth: get user %s: %v", session.UserID, err)
		return State{Loading: true}
	}

	state := State{User: &user, Session: &session}
	profile, err := s.store.GetProfileByUserID(ctx, user.ID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logf("auth: get profile user=%s: %v", user.ID, err)
		}
		return state
	}
	state.Profile = &profile
	state.IsMember, state.IsCommissionMember = RoleFlags(profile.Role)
	return state
}

// UpdateOwnProfile lets a signed-in user change display attributes. The role
// column is deliberately not reachable from here.
func (s *Service) UpdateOwnProfile(ctx context.Context, userID, fullName, position, photoURL string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return platformerrors.New(platformerrors.CodeProfileUserID, "usuário não identificado")
	}
	profile, err := s.store.GetProfileByUserID(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return platformerrors.New(platformerrors.CodeProfileMissing, "perfil não encontrado")
	}
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	profile.FullName = strings.TrimSpace(fullName)
	profile.Position = strings.TrimSpace(position)
	profile.PhotoURL = strings.TrimSpace(photoURL)
	profile.UpdatedAt = s.clock().UTC()
	if err := s.store.UpdateProfile(ctx, profile); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

func invalidCredentials() error {
	return platformerrors.New(platformerrors.CodeAuthInvalidCredentials, "e-mail ou senha incorretos")
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
