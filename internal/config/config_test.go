package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "http://localhost:8080", cfg.PublicBaseURL())
	assert.Equal(t, "content", cfg.ContentDir)
	assert.Equal(t, 15*time.Minute, cfg.UploadTTL)
	assert.Equal(t, "origin", cfg.PublishRemote)
	// debug mode fills development credentials
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.Equal(t, "admin123", cfg.AdminPassword)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9000"
contentDir: /srv/content
ginMode: release
uploadTTL: 2m
smtpUser: file@example.com
`), 0o644))

	t.Setenv("PORT", "9100")
	t.Setenv("SMTP_PASS", "secret")

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Port, "env wins over file")
	assert.Equal(t, "/srv/content", cfg.ContentDir)
	assert.Equal(t, 2*time.Minute, cfg.UploadTTL)
	assert.Equal(t, "file@example.com", cfg.SMTPUser)
	assert.Equal(t, "secret", cfg.SMTPPass)

	// release mode never invents credentials
	assert.Empty(t, cfg.AdminUsername)
	assert.Empty(t, cfg.AdminPassword)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
