package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv_Defaults(t *testing.T) {
	t.Setenv("CAIXINHA_LOG_LEVEL", "")
	t.Setenv("CAIXINHA_LOCALE", "")
	t.Setenv("CAIXINHA_FORMAT", "")

	env := LoadEnv(filepath.Join(t.TempDir(), "absent.env"))
	assert.Equal(t, "info", env.LogLevel)
	assert.Equal(t, "pt-BR", env.Locale)
	assert.Equal(t, "console", env.DefaultFormat)
}

func TestLoadEnv_FileAndOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CAIXINHA_LOCALE=en-US\nCAIXINHA_FORMAT=json\n"), 0644))

	t.Setenv("CAIXINHA_LOCALE", "")
	t.Setenv("CAIXINHA_FORMAT", "csv")
	// godotenv only fills variables that are unset
	require.NoError(t, os.Unsetenv("CAIXINHA_LOCALE"))

	env := LoadEnv(path)
	assert.Equal(t, "en-US", env.Locale)
	assert.Equal(t, "csv", env.DefaultFormat)
}
