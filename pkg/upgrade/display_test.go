package upgrade

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crateup/crateup/pkg/constants"
	"github.com/crateup/crateup/pkg/manifest"
)

// TestPrintResults tests the outcome table rendering.
//
// It verifies:
//   - Header and one row per result are written
//   - Status, name, kind, and versions appear in the row
//   - Empty results produce no output
func TestPrintResults(t *testing.T) {
	results := []Result{
		{
			Entry:  entryFor("crossterm", "crossterm", "0.28.0", "0.28.1", manifest.KindNormal),
			Target: "0.28.1",
			Status: constants.StatusUpdated,
		},
		{
			Entry:  entryFor("mockall", "mockall", "0.12.0", "0.13.1", manifest.KindDev),
			Target: "0.13.1",
			Status: constants.StatusFailed,
		},
	}

	var buf bytes.Buffer
	PrintResults(&buf, results)
	out := buf.String()

	assert.Contains(t, out, "Status")
	assert.Contains(t, out, "crossterm")
	assert.Contains(t, out, "normal")
	assert.Contains(t, out, "0.28.0")
	assert.Contains(t, out, "0.28.1")
	assert.Contains(t, out, constants.StatusUpdated)
	assert.Contains(t, out, constants.StatusFailed)
	assert.Contains(t, out, "dev")

	buf.Reset()
	PrintResults(&buf, nil)
	assert.Empty(t, buf.String())
}

// TestPrintSummary tests the closing count lines.
func TestPrintSummary(t *testing.T) {
	skipped := Result{
		Entry:  entryFor("local-util", "local-util", "0.1.0", "0.2.0", manifest.KindNormal),
		Status: constants.StatusSkipped,
		Reason: "path dependency; bump the version in crates/local-util/Cargo.toml instead",
	}
	results := []Result{
		{Entry: entryFor("anyhow", "anyhow", "1.0.0", "1.0.98", manifest.KindNormal), Status: constants.StatusUpdated},
		{Entry: entryFor("broken", "broken", "1.0.0", "2.0.0", manifest.KindNormal), Status: constants.StatusFailed},
		skipped,
	}

	var buf bytes.Buffer
	PrintSummary(&buf, results, false)
	out := buf.String()

	assert.Contains(t, out, "Total crates: 3")
	assert.Contains(t, out, "Updated: 1")
	assert.Contains(t, out, "Failed: 1")
	assert.Contains(t, out, "Skipped: 1")
	assert.Contains(t, out, "local-util: path dependency")
}

// TestPrintSummaryDryRun tests that dry runs report planned counts only.
func TestPrintSummaryDryRun(t *testing.T) {
	results := []Result{
		{Entry: entryFor("anyhow", "anyhow", "1.0.0", "1.0.98", manifest.KindNormal), Status: constants.StatusPlanned},
	}

	var buf bytes.Buffer
	PrintSummary(&buf, results, true)

	assert.Contains(t, buf.String(), "Planned: 1")
	assert.Contains(t, buf.String(), "dry-run")
}
