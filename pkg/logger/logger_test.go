package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithConfig(Config{Level: "warn", Output: &buf})

	log.Infof("[Test] hidden %d", 1)
	assert.Empty(t, buf.String())

	log.Warnf("[Test] shown %d", 2)
	assert.Contains(t, buf.String(), "[Test] shown 2")
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestParseLevel(t *testing.T) {
	assert.True(t, ValidLevel("DEBUG"))
	assert.True(t, ValidLevel("warning"))
	assert.False(t, ValidLevel("verbose"))
}

func TestNopDiscards(t *testing.T) {
	log := Nop()
	log.Errorf("nothing to see")
	log.Info("still nothing")
}
