package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/scriptmeta/scriptmeta"
	"github.com/scriptmeta/scriptmeta/internal/tt"
	"github.com/scriptmeta/scriptmeta/service"
	"github.com/scriptmeta/scriptmeta/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *service.Result {
	return &service.Result{
		Raw: "### Titles\n1. A title\n\n### Tags\nfocus, habits",
		Sections: []scriptmeta.Section{
			{Title: "Titles", Content: "1. A title"},
			{Title: "Tags", Content: "focus, habits"},
			{Title: "Notes", Content: ""},
		},
		Coverage: map[string]bool{"Titles": true, "Tags": true},
		Metadata: validate.MetadataResult{State: validate.StateNotApplicable},
	}
}

func TestMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Markdown(&buf, sampleResult()))

	expected := "### Titles\n" +
		"1. A title\n" +
		"\n" +
		"### Tags\n" +
		"focus, habits\n" +
		"\n" +
		"### Notes\n"
	tt.AssertTextEqual(t, expected, buf.String())
}

func TestMarkdownRoundTripsThroughParser(t *testing.T) {
	result := sampleResult()

	var buf bytes.Buffer
	require.NoError(t, Markdown(&buf, result))

	// The export uses the same heading convention the parser reads, so the
	// non-empty sections survive a round trip.
	assert.Contains(t, buf.String(), "### Titles\n1. A title")
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, sampleResult()))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.NotContains(t, doc, "raw")

	sections, ok := doc["sections"].([]any)
	require.True(t, ok)
	assert.Len(t, sections, 3)

	metadata, ok := doc["metadata"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "not applicable", metadata["state"])
}

func TestJSONIncludesValidMetadataObject(t *testing.T) {
	result := sampleResult()
	result.Metadata = validate.MetadataResult{
		State:  validate.StateValid,
		Object: map[string]any{"title": "x", "categoryId": "27"},
	}

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, result))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	metadata := doc["metadata"].(map[string]any)
	assert.Equal(t, "valid", metadata["state"])
	assert.Equal(t, map[string]any{"title": "x", "categoryId": "27"},
		metadata["object"])
}

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()
	result := sampleResult()

	mdPath := filepath.Join(dir, "result.md")
	require.NoError(t, WriteMarkdownFile(mdPath, result))
	md, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	assert.Contains(t, string(md), "### Titles")

	jsonPath := filepath.Join(dir, "result.json")
	require.NoError(t, WriteJSONFile(jsonPath, result))
	raw, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.True(t, json.Valid(raw))
}

func TestWriteFileBadPath(t *testing.T) {
	err := WriteMarkdownFile(filepath.Join(t.TempDir(), "missing", "out.md"), sampleResult())
	assert.Error(t, err)
}
