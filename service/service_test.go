package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/scriptmeta/scriptmeta"
	"github.com/scriptmeta/scriptmeta/store"
	"github.com/scriptmeta/scriptmeta/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodReply = "### Titles\n1. Five habits that ruin your focus\n\n" +
	"### Hook\nYou lose two hours every day without noticing.\n\n" +
	"### Description\nA video about focus.\n\n" +
	"### Tags\nfocus, habits, productivity\n\n" +
	"### Hashtags\n#focus #habits\n\n" +
	"### Thumbnail Concepts\nA cracked hourglass\n\n" +
	"### Metadata JSON\n```json\n" +
	`{"title":"Five habits that ruin your focus","description":"A video about focus.",` +
	`"tags":["focus","habits"],"defaultLanguage":"en","defaultAudioLanguage":"en-US",` +
	`"categoryId":"27"}` + "\n```"

// fakeModel returns a canned reply and records the prompt it was given.
type fakeModel struct {
	reply string
	err   error

	gotPrompt string
}

func (f *fakeModel) Generate(_ context.Context, prompt string) (*scriptmeta.ContentResponse, error) {
	f.gotPrompt = prompt
	if f.err != nil {
		return nil, f.err
	}
	return &scriptmeta.ContentResponse{
		Content: f.reply,
		Info:    &scriptmeta.GenerationInfo{InputTokens: 100, OutputTokens: 50, TotalTokens: 150},
	}, nil
}

func newTestService(t *testing.T, model scriptmeta.Model, withCache bool) Service {
	t.Helper()

	var cache *store.Cache
	if withCache {
		var err error
		cache, err = store.Open(filepath.Join(t.TempDir(), "cache.db"))
		require.NoError(t, err)
		t.Cleanup(func() { cache.Close() })
	}

	return New(nil, model, cache, nil, validate.DefaultRules())
}

func TestGenerateMetadata(t *testing.T) {
	model := &fakeModel{reply: goodReply}
	svc := newTestService(t, model, false)

	result, err := svc.GenerateMetadata(context.Background(), "A script about focus.")
	require.NoError(t, err)

	assert.Contains(t, model.gotPrompt, "A script about focus.")
	assert.Contains(t, model.gotPrompt, "### Metadata JSON")

	assert.Equal(t, goodReply, result.Raw)
	assert.Len(t, result.Sections, 7)
	assert.True(t, result.Complete())
	assert.Equal(t, validate.StateValid, result.Metadata.State)
	require.NotNil(t, result.Usage)
	assert.Equal(t, 150, result.Usage.TotalTokens)
}

func TestGenerateMetadataPassesOptionsToPrompt(t *testing.T) {
	model := &fakeModel{reply: goodReply}
	svc := newTestService(t, model, false)

	_, err := svc.GenerateMetadata(context.Background(), "script",
		WithTone("casual"), WithAudience("students"))
	require.NoError(t, err)

	assert.Contains(t, model.gotPrompt, "Target tone: casual")
	assert.Contains(t, model.gotPrompt, "Target audience: students")
}

func TestGenerateMetadataEmptyScript(t *testing.T) {
	svc := newTestService(t, &fakeModel{reply: goodReply}, false)

	_, err := svc.GenerateMetadata(context.Background(), "   \n ")

	assert.ErrorIs(t, err, ErrEmptyScript)
}

func TestGenerateMetadataModelError(t *testing.T) {
	wantErr := errors.New("provider unavailable")
	svc := newTestService(t, &fakeModel{err: wantErr}, false)

	_, err := svc.GenerateMetadata(context.Background(), "script")

	assert.ErrorIs(t, err, wantErr)
}

func TestGenerateMetadataIncompleteReply(t *testing.T) {
	svc := newTestService(t, &fakeModel{reply: "### Titles\n1. A title"}, false)

	result, err := svc.GenerateMetadata(context.Background(), "script")
	require.NoError(t, err)

	assert.False(t, result.Complete())
	assert.True(t, result.Coverage["Titles"])
	assert.False(t, result.Coverage["Tags"])
	assert.Equal(t, validate.StateNotApplicable, result.Metadata.State)
}

func TestGenerateMetadataCachesSession(t *testing.T) {
	svc := newTestService(t, &fakeModel{reply: goodReply}, true)

	_, err := svc.GenerateMetadata(context.Background(), "the script")
	require.NoError(t, err)

	script, result, err := svc.Last()
	require.NoError(t, err)
	assert.Equal(t, "the script", script)
	require.NotNil(t, result)
	assert.Equal(t, goodReply, result.Raw)
	assert.Equal(t, validate.StateValid, result.Metadata.State)
	assert.Nil(t, result.Usage)
}

func TestLastEmptyCache(t *testing.T) {
	svc := newTestService(t, &fakeModel{reply: goodReply}, true)

	script, result, err := svc.Last()
	require.NoError(t, err)
	assert.Equal(t, "", script)
	assert.Nil(t, result)
}

func TestLastWithoutCache(t *testing.T) {
	svc := newTestService(t, &fakeModel{reply: goodReply}, false)

	script, result, err := svc.Last()
	require.NoError(t, err)
	assert.Equal(t, "", script)
	assert.Nil(t, result)
}

func TestEvaluateIsStateless(t *testing.T) {
	svc := newTestService(t, &fakeModel{}, false)

	first := svc.Evaluate(goodReply)
	second := svc.Evaluate(goodReply)

	assert.Equal(t, first, second)
}
