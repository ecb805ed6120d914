package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, FormatJSON, false)

	log.Debug().Msg("hidden")
	log.Info().Str("isbn", "978-1").Msg("book added")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "978-1", entry["isbn"])
	assert.Equal(t, "book added", entry["message"])
}

func TestNewConsoleDebug(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, FormatConsole, true)

	log.Debug().Msg("search done")
	assert.Contains(t, buf.String(), "search done")
}
