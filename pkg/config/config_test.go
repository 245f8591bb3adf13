package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{
		"host": "vc.example.com",
		"port": 8443,
		"user": "administrator@vsphere.local",
		"password": "secret",
		"cluster": "Prod-Cluster",
		"insecure": true,
		"timeout_seconds": 30
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "vc.example.com", cfg.Host)
	assert.Equal(t, 8443, cfg.Port)
	assert.Equal(t, "administrator@vsphere.local", cfg.User)
	assert.Equal(t, "secret", cfg.Password)
	assert.Equal(t, "Prod-Cluster", cfg.Cluster)
	assert.True(t, cfg.Insecure)
	assert.Equal(t, 30*time.Second, cfg.Timeout())
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"host": "vc.example.com"}`), 0600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultCluster, cfg.Cluster)
	assert.Equal(t, DefaultTimeoutSeconds, cfg.TimeoutSeconds)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadConfigBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("VSANCHECK_HOST", "vc.example.com")
	t.Setenv("VSANCHECK_USER", "administrator@vsphere.local")
	t.Setenv("VSANCHECK_PASSWORD", "secret")
	t.Setenv("VSANCHECK_CLUSTER", "Prod-Cluster")
	t.Setenv("VSANCHECK_INSECURE", "true")
	t.Setenv("VSANCHECK_PORT", "9443")

	cfg := LoadFromEnv()

	assert.Equal(t, "vc.example.com", cfg.Host)
	assert.Equal(t, "administrator@vsphere.local", cfg.User)
	assert.Equal(t, "secret", cfg.Password)
	assert.Equal(t, "Prod-Cluster", cfg.Cluster)
	assert.True(t, cfg.Insecure)
	assert.Equal(t, 9443, cfg.Port)
}

func TestLoadFromEnvDefaults(t *testing.T) {
	t.Setenv("VSANCHECK_HOST", "")
	t.Setenv("VSANCHECK_USER", "")
	t.Setenv("VSANCHECK_PORT", "")
	t.Setenv("VSANCHECK_CLUSTER", "")
	t.Setenv("VSANCHECK_INSECURE", "")

	cfg := LoadFromEnv()

	assert.Empty(t, cfg.Host)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultCluster, cfg.Cluster)
	assert.False(t, cfg.Insecure)
}

func TestLoadFromEnvBadPort(t *testing.T) {
	t.Setenv("VSANCHECK_PORT", "not-a-port")

	cfg := LoadFromEnv()
	assert.Equal(t, DefaultPort, cfg.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Host: "vc.example.com", User: "admin"}, false},
		{"missing host", Config{User: "admin"}, true},
		{"missing user", Config{Host: "vc.example.com"}, true},
		{"empty", Config{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
