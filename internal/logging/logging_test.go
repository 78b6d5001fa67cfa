package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, log.WarnLevel, ParseLevel(" WARN "))
	assert.Equal(t, log.InfoLevel, ParseLevel("chatty"))
	assert.True(t, ValidLevel("error"))
	assert.False(t, ValidLevel("chatty"))
}

func TestNewWritesAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info")

	logger.Debug("hidden")
	logger.Info("list created", ListID(7), ListName("Shopping"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "list created")
	assert.Contains(t, out, "list_id=7")
	assert.Contains(t, out, "Shopping")
}

func TestErrorAttr(t *testing.T) {
	assert.Equal(t, "", Error(nil).Value.String())
	assert.Equal(t, "boom", Error(errors.New("boom")).Value.String())
}
