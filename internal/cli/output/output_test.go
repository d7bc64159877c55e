package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testHeaders = []string{"Name", "Status"}
	testRows    = [][]string{
		{"Amara Osei", "interview"},
		{"Jonas Lindqvist", "applied"},
	}
)

func TestRecordsTable(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, ModeTable)

	require.NoError(t, r.Records(testHeaders, testRows))
	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Amara Osei")
	assert.Contains(t, out, "applied")
}

func TestRecordsCSV(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, ModeCSV)

	require.NoError(t, r.Records(testHeaders, testRows))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Name")
	assert.Contains(t, lines[1], "Amara Osei")
}

func TestRecordsJSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, ModeJSON)

	require.NoError(t, r.Records(testHeaders, testRows))

	var decoded []map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "interview", decoded[0]["Status"])
}

func TestAutoModeFallsBackToCSVForNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, ModeAuto)
	assert.Equal(t, ModeCSV, r.EffectiveMode())
}

func TestUnknownModeBecomesAuto(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, Mode("yaml"))
	assert.Equal(t, ModeCSV, r.EffectiveMode())
}

func TestSummarySkippedForMachineModes(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, ModeCSV)
	r.Summary(1, 10, 25, 1, 3)
	assert.Empty(t, buf.String())
}

func TestSummaryTable(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, ModeTable)

	r.Summary(21, 25, 25, 3, 3)
	assert.Contains(t, buf.String(), "Showing 21 to 25 of 25 (page 3 of 3)")

	buf.Reset()
	r.Summary(0, 0, 0, 1, 1)
	assert.Contains(t, buf.String(), "No results.")
}
