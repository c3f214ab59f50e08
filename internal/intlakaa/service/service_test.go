package service_test

import (
	"context"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/domain"
	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/mailer"
	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/service"
	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/store/drivers/sqlite"
	"github.com/aussiebroadwan/intlakaa/pkg/cryptox"
	"github.com/aussiebroadwan/intlakaa/pkg/idx"
	"github.com/aussiebroadwan/intlakaa/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "intlakaa-service")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

const testPassword = "correct-horse-battery"

type recordingMailer struct {
	mu   sync.Mutex
	sent []mailer.InviteEmail
	err  error
}

func (m *recordingMailer) SendInvite(_ context.Context, msg mailer.InviteEmail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *recordingMailer) Close() error { return nil }

// lastToken extracts the raw invite token from the most recent link.
func (m *recordingMailer) lastToken(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.sent)
	u, err := url.Parse(m.sent[len(m.sent)-1].Link)
	require.NoError(t, err)
	return u.Query().Get("token")
}

type fixture struct {
	store     *sqlite.Store
	mail      *recordingMailer
	now       time.Time
	keys      *jwtx.Keys
	auth      *service.AuthService
	invites   *service.InviteService
	admins    *service.AdminService
	requests  *service.RequestService
	bootstrap *service.BootstrapService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	keys, err := jwtx.NewEdDSAKeys(pemKey, "intlakaa-test")
	require.NoError(t, err)

	// Start behind wall time so issued tokens verify after a few advance calls.
	f := &fixture{
		store: s,
		mail:  &recordingMailer{},
		now:   time.Now().UTC().Add(-time.Minute).Truncate(time.Second),
		keys:  keys,
	}
	clock := service.Clock(func() time.Time { return f.now })

	f.auth = &service.AuthService{Store: s, Keys: keys, TokenTTL: time.Hour, Clock: clock}
	f.invites = &service.InviteService{
		Store:       s,
		Mailer:      f.mail,
		Auth:        f.auth,
		TTL:         48 * time.Hour,
		FrontendURL: "http://localhost:5173/",
		Policy:      domain.PasswordPolicy{MinLength: 8},
		Clock:       clock,
	}
	f.admins = &service.AdminService{Store: s, Clock: clock}
	f.requests = &service.RequestService{Store: s, Clock: clock}
	f.bootstrap = &service.BootstrapService{Store: s, Invites: f.invites, Token: "bootstrap-secret"}
	return f
}

func (f *fixture) advance(d time.Duration) { f.now = f.now.Add(d) }

// seedAdmin inserts an admin directly, bypassing the invite flow.
func (f *fixture) seedAdmin(t *testing.T, email, role string) domain.Admin {
	t.Helper()
	hash, err := cryptox.HashPassword(testPassword)
	require.NoError(t, err)

	a := domain.Admin{
		ID:           idx.NewAt(f.now).String(),
		Email:        email,
		Name:         "Seed " + role,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    f.now,
		UpdatedAt:    f.now,
	}
	require.NoError(t, f.store.Admins().CreateAdmin(context.Background(), a))
	f.advance(time.Second)
	return a
}

func requireErr(t *testing.T, err, target error) {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, target), "got %v, want %v", err, target)
}
