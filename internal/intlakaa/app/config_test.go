package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"PORT", "ENV", "DATABASE_DRIVER", "MAILER", "INVITE_TTL", "CORS_ALLOWED_ORIGINS", "TRUSTED_PROXIES", "BOOTSTRAP_TOKEN"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	require.Equal(t, 5001, cfg.Port)
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, "sqlite", cfg.DatabaseDriver)
	require.Equal(t, "log", cfg.Mailer)
	require.Equal(t, 48*time.Hour, cfg.InviteTTL)
	require.Equal(t, 24*time.Hour, cfg.AdminTokenTTL)
	require.Equal(t, "intlakaa-api", cfg.Issuer)
	require.Nil(t, cfg.AllowedOrigins)
	require.Nil(t, cfg.TrustedProxies)
	require.Empty(t, cfg.BootstrapToken)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_DRIVER", "Mongo")
	t.Setenv("INVITE_TTL", "90")
	t.Setenv("ADMIN_TOKEN_TTL", "2h")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://intlakaa.com, ,https://admin.intlakaa.com ")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,127.0.0.1")

	cfg := LoadConfig()
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, "mongo", cfg.DatabaseDriver)
	require.Equal(t, 90*time.Minute, cfg.InviteTTL)
	require.Equal(t, 2*time.Hour, cfg.AdminTokenTTL)
	require.Equal(t, []string{"https://intlakaa.com", "https://admin.intlakaa.com"}, cfg.AllowedOrigins)
	require.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.TrustedProxies)
}

func TestLoadConfigInvalidValuesFallBack(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "eighty")
	t.Setenv("HOUSEKEEPING_INTERVAL", "soon")

	cfg := LoadConfig()
	require.Equal(t, 5001, cfg.Port)
	require.Equal(t, time.Hour, cfg.HousekeepingInterval)
}

func TestLoadConfigDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("FRONTEND_URL=https://intlakaa.com\nBOOTSTRAP_TOKEN=from-dotenv\n"), 0o600))

	t.Setenv("FRONTEND_URL", "")
	t.Setenv("BOOTSTRAP_TOKEN", "from-env")
	// godotenv never overrides variables that are already set, and an
	// empty value counts as set.
	require.NoError(t, os.Unsetenv("FRONTEND_URL"))

	cfg := LoadConfig()
	require.Equal(t, "https://intlakaa.com", cfg.FrontendURL)
	require.Equal(t, "from-env", cfg.BootstrapToken)
}

func TestNewRejectsUnknownDrivers(t *testing.T) {
	dir := t.TempDir()
	base := Config{
		Env:            "test",
		LogLevel:       "error",
		DatabaseDriver: "sqlite",
		DatabaseFile:   filepath.Join(dir, "app.db"),
		PepperFile:     filepath.Join(dir, "pepper"),
		SigningKeyFile: filepath.Join(dir, "signing.pem"),
		Issuer:         "intlakaa-test",
		Mailer:         "log",
	}

	cfg := base
	cfg.DatabaseDriver = "postgres"
	_, err := New(cfg)
	require.ErrorContains(t, err, "unknown DATABASE_DRIVER")

	cfg = base
	cfg.DatabaseDriver = "mongo"
	_, err = New(cfg)
	require.ErrorContains(t, err, "MONGO_URI is required")

	cfg = base
	cfg.Mailer = "smtp"
	_, err = New(cfg)
	require.ErrorContains(t, err, "unknown MAILER")

	cfg = base
	cfg.TrustedProxies = []string{"proxy.internal"}
	_, err = New(cfg)
	require.ErrorContains(t, err, "trusted proxies")
}

func TestNewWiresSQLiteApplication(t *testing.T) {
	dir := t.TempDir()
	app, err := New(Config{
		Env:                  "test",
		LogLevel:             "error",
		Port:                 0,
		DatabaseDriver:       "sqlite",
		DatabaseFile:         filepath.Join(dir, "app.db"),
		PepperFile:           filepath.Join(dir, "pepper"),
		SigningKeyFile:       filepath.Join(dir, "signing.pem"),
		Issuer:               "intlakaa-test",
		Mailer:               "log",
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Hour,
	})
	require.NoError(t, err)
	require.NotNil(t, app.router)
	require.FileExists(t, filepath.Join(dir, "signing.pem"))

	app.housekeepingService.Start()
	require.NoError(t, app.Shutdown())
}
