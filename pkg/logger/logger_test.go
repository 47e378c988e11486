package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel(" warn "))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("verbose"))
}

func TestNew_JSONWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "info", Service: "inventario", Output: &buf})

	l.Debug().Msg("oculto")
	c := l.Component("workflow")
	c.Info().Str("code", "VTA0001").Msg("transacción registrada")

	var ev map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &ev))
	assert.Equal(t, "inventario", ev["service"])
	assert.Equal(t, "workflow", ev["component"])
	assert.Equal(t, "VTA0001", ev["code"])
	assert.Equal(t, "info", ev["level"])
}
