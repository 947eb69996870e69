package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWithWriter_JSONAndLevel(t *testing.T) {
	t.Cleanup(func() { Log = zerolog.Nop() })

	var buf bytes.Buffer
	InitWithWriter("warn", "json", &buf)

	Info().Msg("hidden")
	Warn().Str("key", "ht_library_v1").Msg("corrupt slot")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "ht_library_v1", entry["key"])
	assert.Equal(t, "corrupt slot", entry["message"])
}

func TestInitWithWriter_BadLevelFallsBackToInfo(t *testing.T) {
	t.Cleanup(func() { Log = zerolog.Nop() })

	var buf bytes.Buffer
	InitWithWriter("loud", "json", &buf)

	Debug().Msg("hidden")
	Info().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
	assert.NotContains(t, buf.String(), "hidden")
}
