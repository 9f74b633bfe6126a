package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	platformerrors "github.com/luzeprogresso/portal/internal/platform/errors"
	"github.com/luzeprogresso/portal/internal/storage"
)

type fakeStore struct {
	users    map[string]User
	byEmail  map[string]string
	sessions map[string]Session
	profiles map[string]Profile

	sessionErr error
	profileErr error
	revokeErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[string]User),
		byEmail:  make(map[string]string),
		sessions: make(map[string]Session),
		profiles: make(map[string]Profile),
	}
}

func (f *fakeStore) GetUser(_ context.Context, id string) (User, error) {
	user, ok := f.users[id]
	if !ok {
		return User{}, storage.ErrNotFound
	}
	return user, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (User, error) {
	id, ok := f.byEmail[email]
	if !ok {
		return User{}, storage.ErrNotFound
	}
	return f.users[id], nil
}

func (f *fakeStore) PutUser(_ context.Context, user User) error {
	f.users[user.ID] = user
	f.byEmail[user.Email] = user.ID
	return nil
}

func (f *fakeStore) MarkUserConfirmed(_ context.Context, id string, at time.Time) error {
	user, ok := f.users[id]
	if !ok {
		return storage.ErrNotFound
	}
	user.ConfirmedAt = &at
	f.users[id] = user
	return nil
}

func (f *fakeStore) MarkUserSignedIn(_ context.Context, id string, at time.Time) error {
	user, ok := f.users[id]
	if !ok {
		return storage.ErrNotFound
	}
	user.LastSignInAt = &at
	f.users[id] = user
	return nil
}

func (f *fakeStore) GetSession(_ context.Context, id string) (Session, error) {
	if f.sessionErr != nil {
		return Session{}, f.sessionErr
	}
	session, ok := f.sessions[id]
	if !ok {
		return Session{}, storage.ErrNotFound
	}
	return session, nil
}

func (f *fakeStore) PutSession(_ context.Context, session Session) error {
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeStore) RevokeSession(_ context.Context, id string, at time.Time) error {
	if f.revokeErr != nil {
		return f.revokeErr
	}
	session, ok := f.sessions[id]
	if !ok {
		return storage.ErrNotFound
	}
	session.RevokedAt = &at
	f.sessions[id] = session
	return nil
}

func (f *fakeStore) GetProfileByUserID(_ context.Context, userID string) (Profile, error) {
	if f.profileErr != nil {
		return Profile{}, f.profileErr
	}
	for _, profile := range f.profiles {
		if profile.UserID == userID {
			return profile, nil
		}
	}
	return Profile{}, storage.ErrNotFound
}

func (f *fakeStore) PutProfile(_ context.Context, profile Profile) error {
	f.profiles[profile.ID] = profile
	return nil
}

func (f *fakeStore) UpdateProfile(_ context.Context, profile Profile) error {
	if _, ok := f.profiles[profile.ID]; !ok {
		return storage.ErrNotFound
	}
	f.profiles[profile.ID] = profile
	return nil
}

func newTestService(t *testing.T, store Store) *Service {
	t.Helper()
	counter := 0
	svc, err := NewService(Config{
		Store:  store,
		Secret: []byte("test-secret"),
		Clock:  func() time.Time { return time.Date(2024, 3, 15, 19, 0, 0, 0, time.UTC) },
		NewID: func() (string, error) {
			counter++
			return fmt.Sprintf("id-%02d", counter), nil
		},
		Logf: t.Logf,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func seedMember(t *testing.T, svc *Service, store *fakeStore, email, role string) Session {
	t.Helper()
	ctx := context.Background()
	if _, err := svc.SignUp(ctx, email, "segredo-forte", "Irmão Teste", "/"); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	userID := store.byEmail[email]
	for id, profile := range store.profiles {
		if profile.UserID == userID {
			profile.Role = role
			store.profiles[id] = profile
		}
	}
	session, err := svc.SignIn(ctx, email, "segredo-forte")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	return session
}

func TestSignInWithMemberRoleResolvesFlags(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)
	session := seedMember(t, svc, store, "irmao@luz.org.br", RoleMember)

	state := svc.Resolve(context.Background(), session.ID)
	if state.Loading {
		t.Fatal("expected resolved state")
	}
	if state.User == nil || state.User.Email != "irmao@luz.org.br" {
		t.Fatalf("unexpected user: %+v", state.User)
	}
	if !state.IsMember {
		t.Fatal("expected IsMember = true for role member")
	}
	if state.IsCommissionMember {
		t.Fatal("expected IsCommissionMember = false for role member")
	}
}

func TestCommissionRoleImpliesMembership(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)
	session := seedMember(t, svc, store, "veneravel@luz.org.br", RoleCommission)

	state := svc.Resolve(context.Background(), session.ID)
	if !state.IsMember || !state.IsCommissionMember {
		t.Fatalf("expected both flags, got member=%t commission=%t", state.IsMember, state.IsCommissionMember)
	}
}

func TestSignInWrongPasswordReturnsErrorValue(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)
	seedMember(t, svc, store, "irmao@luz.org.br", RoleMember)

	_, err := svc.SignIn(context.Background(), "irmao@luz.org.br", "senha-errada")
	if err == nil {
		t.Fatal("expected error")
	}
	if code := platformerrors.CodeOf(err); code != platformerrors.CodeAuthInvalidCredentials {
		t.Fatalf("code = %q, want %q", code, platformerrors.CodeAuthInvalidCredentials)
	}
}

func TestSignInUnknownEmailIndistinguishableFromWrongPassword(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)

	_, err := svc.SignIn(context.Background(), "ninguem@luz.org.br", "qualquer-coisa")
	if code := platformerrors.CodeOf(err); code != platformerrors.CodeAuthInvalidCredentials {
		t.Fatalf("code = %q, want %q", code, platformerrors.CodeAuthInvalidCredentials)
	}
}

func TestSignUpDoesNotCreateSession(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)

	token, err := svc.SignUp(context.Background(), "novo@luz.org.br", "segredo-forte", "Novo Irmão", "/members")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if token == "" {
		t.Fatal("expected confirmation token")
	}
	if len(store.sessions) != 0 {
		t.Fatalf("expected no sessions after sign up, got %d", len(store.sessions))
	}

	userID := store.byEmail["novo@luz.org.br"]
	profile, err := store.GetProfileByUserID(context.Background(), userID)
	if err != nil {
		t.Fatalf("expected profile row: %v", err)
	}
	if profile.Role != "" {
		t.Fatalf("expected empty role on sign up, got %q", profile.Role)
	}
	if profile.FullName != "Novo Irmão" {
		t.Fatalf("full name = %q", profile.FullName)
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)
	seedMember(t, svc, store, "irmao@luz.org.br", RoleMember)

	_, err := svc.SignUp(context.Background(), "irmao@luz.org.br", "segredo-forte", "", "/")
	if code := platformerrors.CodeOf(err); code != platformerrors.CodeAuthEmailInUse {
		t.Fatalf("code = %q, want %q", code, platformerrors.CodeAuthEmailInUse)
	}
}

func TestConfirmStampsUserAndReturnsRedirect(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)

	token, err := svc.SignUp(context.Background(), "novo@luz.org.br", "segredo-forte", "", "/members")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}

	redirect, err := svc.Confirm(context.Background(), token)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if redirect != "/members" {
		t.Fatalf("redirect = %q, want %q", redirect, "/members")
	}

	userID := store.byEmail["novo@luz.org.br"]
	if store.users[userID].ConfirmedAt == nil {
		t.Fatal("expected confirmed timestamp")
	}
	if len(store.sessions) != 0 {
		t.Fatal("confirmation must not create a session")
	}
}

func TestConfirmRejectsTamperedToken(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)

	_, err := svc.Confirm(context.Background(), "not-a-real-token")
	if code := platformerrors.CodeOf(err); code != platformerrors.CodeAuthConfirmationToken {
		t.Fatalf("code = %q, want %q", code, platformerrors.CodeAuthConfirmationToken)
	}
}

func TestSignInSignOutRoundTripRestoresAnonymousState(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)
	session := seedMember(t, svc, store, "irmao@luz.org.br", RoleMember)

	if ok := svc.SignOut(context.Background(), session.ID); !ok {
		t.Fatal("expected clean sign out")
	}

	state := svc.Resolve(context.Background(), session.ID)
	if state.User != nil || state.Session != nil || state.IsMember || state.IsCommissionMember || state.Loading {
		t.Fatalf("expected anonymous state after sign out, got %+v", state)
	}
}

func TestSignOutNeverRaisesOnRevokeFailure(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)
	session := seedMember(t, svc, store, "irmao@luz.org.br", RoleMember)

	store.revokeErr = errors.New("backend unreachable")
	ok := svc.SignOut(context.Background(), session.ID)
	if ok {
		t.Fatal("expected failure to be reported for notification copy")
	}
}

func TestSignOutUnknownSessionIsClean(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)
	if ok := svc.SignOut(context.Background(), "missing"); !ok {
		t.Fatal("expected missing session to sign out cleanly")
	}
}

func TestResolveExpiredSessionIsAnonymous(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)
	session := seedMember(t, svc, store, "irmao@luz.org.br", RoleMember)

	expired := store.sessions[session.ID]
	expired.ExpiresAt = time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)
	store.sessions[session.ID] = expired

	state := svc.Resolve(context.Background(), session.ID)
	if state.User != nil || state.Loading {
		t.Fatalf("expected anonymous state, got %+v", state)
	}
}

func TestResolveConfirmationOriginSessionIsRevoked(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)
	session := seedMember(t, svc, store, "irmao@luz.org.br", RoleMember)

	anomalous := store.sessions[session.ID]
	anomalous.Origin = OriginConfirmation
	store.sessions[session.ID] = anomalous

	state := svc.Resolve(context.Background(), session.ID)
	if state.User != nil {
		t.Fatal("confirmation-origin session must not grant access")
	}
	if store.sessions[session.ID].RevokedAt == nil {
		t.Fatal("expected anomalous session to be revoked")
	}
}

func TestResolveProfileMissingDegradesToNoRole(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)
	session := seedMember(t, svc, store, "irmao@luz.org.br", RoleMember)
	store.profiles = make(map[string]Profile)

	state := svc.Resolve(context.Background(), session.ID)
	if state.Loading {
		t.Fatal("profile miss must not block resolution")
	}
	if state.User == nil {
		t.Fatal("user must stay authenticated")
	}
	if state.IsMember || state.IsCommissionMember {
		t.Fatal("expected no role flags without a profile row")
	}
}

func TestResolveProfileQueryErrorDegradesToNoRole(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)
	session := seedMember(t, svc, store, "irmao@luz.org.br", RoleMember)
	store.profileErr = errors.New("query timeout")

	state := svc.Resolve(context.Background(), session.ID)
	if state.User == nil || state.IsMember {
		t.Fatalf("expected authenticated no-role state, got %+v", state)
	}
}

func TestResolveSessionStoreErrorReportsLoading(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)
	session := seedMember(t, svc, store, "irmao@luz.org.br", RoleMember)
	store.sessionErr = errors.New("database locked")

	state := svc.Resolve(context.Background(), session.ID)
	if !state.Loading {
		t.Fatal("expected loading state on transient store failure")
	}
	if state.User != nil || state.IsMember {
		t.Fatal("loading state must not expose a user or role flags")
	}
}

func TestResolveFlagsAlwaysMatchResolvedUser(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)
	memberSession := seedMember(t, svc, store, "irmao@luz.org.br", RoleMember)
	commissionSession := seedMember(t, svc, store, "veneravel@luz.org.br", RoleCommission)

	memberState := svc.Resolve(context.Background(), memberSession.ID)
	commissionState := svc.Resolve(context.Background(), commissionSession.ID)

	if memberState.User.Email != "irmao@luz.org.br" || memberState.IsCommissionMember {
		t.Fatalf("member state carries foreign flags: %+v", memberState)
	}
	if commissionState.User.Email != "veneravel@luz.org.br" || !commissionState.IsCommissionMember {
		t.Fatalf("commission state carries foreign flags: %+v", commissionState)
	}
}

func TestUpdateOwnProfileKeepsRole(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)
	session := seedMember(t, svc, store, "irmao@luz.org.br", RoleMember)
	state := svc.Resolve(context.Background(), session.ID)

	if err := svc.UpdateOwnProfile(context.Background(), state.User.ID, "Nome Atualizado", "Orador", ""); err != nil {
		t.Fatalf("update profile: %v", err)
	}

	updated := svc.Resolve(context.Background(), session.ID)
	if updated.Profile == nil || updated.Profile.FullName != "Nome Atualizado" {
		t.Fatalf("profile not updated: %+v", updated.Profile)
	}
	if !updated.IsMember {
		t.Fatal("role must survive a profile update")
	}
}

func TestRoleFlagsDerivation(t *testing.T) {
	cases := []struct {
		role           string
		wantMember     bool
		wantCommission bool
	}{
		{"member", true, false},
		{"commission", true, true},
		{"", false, false},
		{"visitor", false, false},
	}
	for _, tc := range cases {
		member, commission := RoleFlags(tc.role)
		if member != tc.wantMember || commission != tc.wantCommission {
			t.Fatalf("RoleFlags(%q) = (%t, %t), want (%t, %t)", tc.role, member, commission, tc.wantMember, tc.wantCommission)
		}
	}
}
