package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJson(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"port": "8181",
		"poll_interval": "1s",
		"poll_max_attempts": 3,
		"s3_bucket": "archive"
	}`), 0o600))

	t.Run("partial file overlays set fields", func(t *testing.T) {
		withArgs(t, "-c", path)

		c := &Config{}
		c.LoadDefaults()
		parseJson(c)

		assert.Equal(t, "8181", c.Port)
		assert.Equal(t, time.Second, c.PollInterval)
		assert.Equal(t, 3, c.PollMaxAttempts)
		assert.Equal(t, "archive", c.S3Bucket)
		assert.Equal(t, "veo-3.1-fast-generate-preview", c.Model)
	})

	t.Run("no flag, no change", func(t *testing.T) {
		withArgs(t)

		c := &Config{Port: "1"}
		parseJson(c)

		assert.Equal(t, "1", c.Port)
	})

	t.Run("missing file panics", func(t *testing.T) {
		withArgs(t, "-config", filepath.Join(dir, "nope.json"))

		require.Panics(t, func() { parseJson(&Config{}) })
	})
}
