package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/contacthub/internal/common"
	"github.com/dmitrijs2005/contacthub/internal/logging"
	"github.com/dmitrijs2005/contacthub/internal/server/auth"
	"github.com/dmitrijs2005/contacthub/internal/server/repositories/users"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []string
}

func (m *fakeMailer) SendConfirmation(ctx context.Context, email, username, baseURL, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, email)
	return nil
}

func (m *fakeMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type fakeAvatarStore struct {
	lastKey string
	url     string
	err     error
}

func (s *fakeAvatarStore) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	s.lastKey = key
	if s.err != nil {
		return "", s.err
	}
	return s.url, nil
}

type nopLogger struct{}

func (nopLogger) Info(ctx context.Context, msg string, args ...any)  {}
func (nopLogger) Warn(ctx context.Context, msg string, args ...any)  {}
func (nopLogger) Error(ctx context.Context, msg string, args ...any) {}
func (nopLogger) With(args ...any) logging.Logger                    { return nopLogger{} }

func newTestService(t *testing.T) (*UserService, *users.InMemoryRepository, *fakeMailer) {
	t.Helper()
	repo := users.NewInMemoryRepository()
	tokens := auth.NewTokenManager([]byte("test-secret"), 15*time.Minute, 7*24*time.Hour, 7*24*time.Hour)
	m := &fakeMailer{}
	svc := NewUserService(repo, tokens, m, &fakeAvatarStore{url: "http://s3/avatar"}, "http://localhost:8080", nopLogger{})
	return svc, repo, m
}

func signupConfirmed(t *testing.T, svc *UserService, repo *users.InMemoryRepository, email, password string) {
	t.Helper()
	if _, err := svc.Signup(context.Background(), "tester", email, password); err != nil {
		t.Fatalf("Signup error: %v", err)
	}
	if err := repo.MarkConfirmed(context.Background(), email); err != nil {
		t.Fatalf("MarkConfirmed error: %v", err)
	}
}

func TestSignup(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newTestService(t)

	created, err := svc.Signup(context.Background(), "tester", "a@x.com", "secret")
	if err != nil {
		t.Fatalf("Signup error: %v", err)
	}
	if created.ID == 0 || created.Confirmed {
		t.Fatalf("unexpected user: %+v", created)
	}
	if created.Password == "secret" {
		t.Fatal("password stored as plain text")
	}
	if !strings.Contains(created.Avatar, "gravatar.com") {
		t.Fatalf("expected gravatar default, got %q", created.Avatar)
	}

	stored, err := repo.GetByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if !auth.VerifyPassword("secret", stored.Password) {
		t.Fatal("stored hash does not verify")
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService(t)

	if _, err := svc.Signup(context.Background(), "tester", "a@x.com", "secret"); err != nil {
		t.Fatalf("first Signup error: %v", err)
	}
	_, err := svc.Signup(context.Background(), "other", "a@x.com", "secret2")
	if !errors.Is(err, common.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestLogin_CorrectPassword(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newTestService(t)
	signupConfirmed(t, svc, repo, "a@x.com", "secret")

	pair, err := svc.Login(context.Background(), "a@x.com", "secret")
	if err != nil {
		t.Fatalf("login with the correct password failed: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("incomplete pair: %+v", pair)
	}
}

func TestLogin_UnknownAndWrongPasswordLookAlike(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newTestService(t)
	signupConfirmed(t, svc, repo, "a@x.com", "secret")

	_, errUnknown := svc.Login(context.Background(), "nobody@x.com", "secret")
	_, errWrong := svc.Login(context.Background(), "a@x.com", "wrong")

	if !errors.Is(errUnknown, common.ErrUnauthorized) || !errors.Is(errWrong, common.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for both, got %v / %v", errUnknown, errWrong)
	}
}

func TestLogin_UnconfirmedRejected(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService(t)

	if _, err := svc.Signup(context.Background(), "tester", "a@x.com", "secret"); err != nil {
		t.Fatalf("Signup error: %v", err)
	}
	_, err := svc.Login(context.Background(), "a@x.com", "secret")
	if !errors.Is(err, common.ErrEmailNotConfirmed) {
		t.Fatalf("expected ErrEmailNotConfirmed, got %v", err)
	}
}

func TestLogin_StoresRefreshToken(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newTestService(t)
	signupConfirmed(t, svc, repo, "a@x.com", "secret")

	pair, err := svc.Login(context.Background(), "a@x.com", "secret")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("incomplete pair: %+v", pair)
	}

	stored, _ := repo.GetByEmail(context.Background(), "a@x.com")
	if stored.RefreshToken == nil || *stored.RefreshToken != pair.RefreshToken {
		t.Fatal("refresh token not persisted on the account")
	}
}

func TestConfirmEmail(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newTestService(t)

	if _, err := svc.Signup(context.Background(), "tester", "a@x.com", "secret"); err != nil {
		t.Fatalf("Signup error: %v", err)
	}

	token, err := svc.tokens.CreateEmailToken("a@x.com")
	if err != nil {
		t.Fatalf("CreateEmailToken error: %v", err)
	}

	if err := svc.ConfirmEmail(context.Background(), token); err != nil {
		t.Fatalf("ConfirmEmail error: %v", err)
	}
	stored, _ := repo.GetByEmail(context.Background(), "a@x.com")
	if !stored.Confirmed {
		t.Fatal("account not confirmed")
	}

	// confirming again is a no-op success
	if err := svc.ConfirmEmail(context.Background(), token); err != nil {
		t.Fatalf("second ConfirmEmail error: %v", err)
	}
}

func TestConfirmEmail_RejectsWrongScope(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService(t)

	if _, err := svc.Signup(context.Background(), "tester", "a@x.com", "secret"); err != nil {
		t.Fatalf("Signup error: %v", err)
	}

	token, err := svc.tokens.CreateAccessToken("a@x.com")
	if err != nil {
		t.Fatalf("CreateAccessToken error: %v", err)
	}
	err = svc.ConfirmEmail(context.Background(), token)
	if !errors.Is(err, common.ErrScopeMismatch) {
		t.Fatalf("expected ErrScopeMismatch, got %v", err)
	}
}

func TestRefresh_RotatesPair(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newTestService(t)
	signupConfirmed(t, svc, repo, "a@x.com", "secret")

	pair, err := svc.Login(context.Background(), "a@x.com", "secret")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}

	// jwt iat/exp have second resolution, an immediate refresh would
	// mint an identical token
	time.Sleep(1100 * time.Millisecond)

	next, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh error: %v", err)
	}
	if next.RefreshToken == pair.RefreshToken {
		t.Fatal("refresh token was not rotated")
	}

	stored, _ := repo.GetByEmail(context.Background(), "a@x.com")
	if stored.RefreshToken == nil || *stored.RefreshToken != next.RefreshToken {
		t.Fatal("rotated token not persisted")
	}
}

func TestRefresh_ReplayRevokesStoredToken(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newTestService(t)
	signupConfirmed(t, svc, repo, "a@x.com", "secret")

	pair, err := svc.Login(context.Background(), "a@x.com", "secret")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}

	time.Sleep(1100 * time.Millisecond)

	if _, err := svc.Refresh(context.Background(), pair.RefreshToken); err != nil {
		t.Fatalf("first Refresh error: %v", err)
	}

	// replaying the already-rotated token must fail and revoke the slot
	_, err = svc.Refresh(context.Background(), pair.RefreshToken)
	if !errors.Is(err, common.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	stored, _ := repo.GetByEmail(context.Background(), "a@x.com")
	if stored.RefreshToken != nil {
		t.Fatal("stored token not revoked after replay")
	}
}

func TestRefresh_RejectsAccessScope(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newTestService(t)
	signupConfirmed(t, svc, repo, "a@x.com", "secret")

	pair, err := svc.Login(context.Background(), "a@x.com", "secret")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	_, err = svc.Refresh(context.Background(), pair.AccessToken)
	if !errors.Is(err, common.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestCurrentUser(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newTestService(t)
	signupConfirmed(t, svc, repo, "a@x.com", "secret")

	pair, err := svc.Login(context.Background(), "a@x.com", "secret")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}

	user, err := svc.CurrentUser(context.Background(), pair.AccessToken)
	if err != nil {
		t.Fatalf("CurrentUser error: %v", err)
	}
	if user.Email != "a@x.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := svc.CurrentUser(context.Background(), pair.RefreshToken); !errors.Is(err, common.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for refresh-scope token, got %v", err)
	}
}

func TestRequestConfirmationEmail(t *testing.T) {
	t.Parallel()
	svc, repo, m := newTestService(t)

	if err := svc.RequestConfirmationEmail(context.Background(), "nobody@x.com"); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if _, err := svc.Signup(context.Background(), "tester", "a@x.com", "secret"); err != nil {
		t.Fatalf("Signup error: %v", err)
	}

	before := m.count()
	if err := svc.RequestConfirmationEmail(context.Background(), "a@x.com"); err != nil {
		t.Fatalf("RequestConfirmationEmail error: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for m.count() <= before {
		select {
		case <-deadline:
			t.Fatal("confirmation email was not sent")
		case <-time.After(10 * time.Millisecond):
		}
	}

	// already confirmed account: success, no new mail
	if err := repo.MarkConfirmed(context.Background(), "a@x.com"); err != nil {
		t.Fatalf("MarkConfirmed error: %v", err)
	}
	after := m.count()
	if err := svc.RequestConfirmationEmail(context.Background(), "a@x.com"); err != nil {
		t.Fatalf("RequestConfirmationEmail error: %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	if m.count() != after {
		t.Fatal("mail sent for an already confirmed account")
	}
}

func TestUpdateAvatar(t *testing.T) {
	t.Parallel()
	repo := users.NewInMemoryRepository()
	tokens := auth.NewTokenManager([]byte("test-secret"), 15*time.Minute, 7*24*time.Hour, 7*24*time.Hour)
	store := &fakeAvatarStore{url: "http://s3/bucket/avatars/abc"}
	svc := NewUserService(repo, tokens, &fakeMailer{}, store, "http://localhost:8080", nopLogger{})

	if _, err := svc.Signup(context.Background(), "tester", "a@x.com", "secret"); err != nil {
		t.Fatalf("Signup error: %v", err)
	}

	user, err := svc.UpdateAvatar(context.Background(), "a@x.com", strings.NewReader("png-bytes"), "image/png")
	if err != nil {
		t.Fatalf("UpdateAvatar error: %v", err)
	}
	if user.Avatar != store.url {
		t.Fatalf("avatar URL not stored: %+v", user)
	}
	if !strings.HasPrefix(store.lastKey, "avatars/") {
		t.Fatalf("unexpected object key: %q", store.lastKey)
	}
}
