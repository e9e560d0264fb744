package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	t.Cleanup(func() { log = nil })

	t.Run("json output with fields", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Init("info", "json", &buf))

		WithFields(logrus.Fields{"session_id": "s1"}).Info("request sent")
		Debugf("hidden %d", 1)

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "request sent", entry["msg"])
		assert.Equal(t, "s1", entry["session_id"])
		assert.Equal(t, "info", entry["level"])
	})

	t.Run("level filters", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Init("error", "text", &buf))

		Infof("dropped")
		assert.Empty(t, buf.String())

		Errorf("kept %s", "this")
		assert.Contains(t, buf.String(), "kept this")
	})

	t.Run("invalid settings", func(t *testing.T) {
		assert.Error(t, Init("verbose", "text", &bytes.Buffer{}))
		assert.Error(t, Init("info", "xml", &bytes.Buffer{}))
	})
}

func TestEntryBeforeInit(t *testing.T) {
	log = nil
	assert.NotPanics(t, func() {
		Entry().Error("discarded")
		Infof("discarded")
	})
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "chat.log")

	f, err := OpenFile(path)
	require.NoError(t, err)
	_, err = f.WriteString("line\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line\n", string(data))
}
