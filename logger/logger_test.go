package logger

import (
	"bytes"
	"testing"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConsoleLog(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitConsoleLog(&buf, "info", false))

	log := logging.MustGetLogger("test")
	log.Debug("hidden")
	log.Info("shown")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[INFO]")
	assert.Contains(t, out, "shown")

	buf.Reset()
	require.NoError(t, InitConsoleLog(&buf, "DEBUG", false))
	log.Debug("now shown")
	assert.Contains(t, buf.String(), "[DEBU]")

	assert.Error(t, InitConsoleLog(&buf, "loud", false))
}
