package warnings

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSetWarningWriterCaptures tests redirecting warnings into a buffer.
//
// It verifies:
//   - Warnf output lands on the new writer
//   - the restore function puts the previous writer back
//   - a nil writer falls back to os.Stderr
func TestSetWarningWriterCaptures(t *testing.T) {
	previous := WarningWriter()

	var buf bytes.Buffer
	restore := SetWarningWriter(&buf)
	Warnf("Warning: command timed out after %ds\n", 15)
	restore()

	assert.Contains(t, buf.String(), "Warning: command timed out after 15s")
	assert.Equal(t, previous, WarningWriter())

	restore = SetWarningWriter(nil)
	assert.Equal(t, os.Stderr, WarningWriter())
	restore()
	assert.Equal(t, previous, WarningWriter())
}

// TestWarningWriterTracksChanges tests that WarningWriter always reports
// the active destination.
func TestWarningWriterTracksChanges(t *testing.T) {
	previous := WarningWriter()

	var buf bytes.Buffer
	restore := SetWarningWriter(&buf)
	assert.Equal(t, &buf, WarningWriter())

	restore()
	assert.Equal(t, previous, WarningWriter())
}
