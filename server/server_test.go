package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/scriptmeta/scriptmeta"
	"github.com/scriptmeta/scriptmeta/service"
	"github.com/scriptmeta/scriptmeta/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubService is a canned service.Service for handler tests.
type stubService struct {
	result     *service.Result
	err        error
	lastScript string
	lastResult *service.Result
	lastErr    error

	gotScript string
}

func (s *stubService) GenerateMetadata(
	_ context.Context,
	script string,
	_ ...service.Option,
) (*service.Result, error) {
	s.gotScript = script
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubService) Evaluate(raw string) *service.Result {
	return &service.Result{Raw: raw}
}

func (s *stubService) Last() (string, *service.Result, error) {
	return s.lastScript, s.lastResult, s.lastErr
}

func sampleResult() *service.Result {
	return &service.Result{
		Raw: "### Titles\n1. A title",
		Sections: []scriptmeta.Section{
			{Title: "Titles", Content: "1. A title"},
		},
		Coverage: map[string]bool{"Titles": true},
		Metadata: validate.MetadataResult{State: validate.StateNotApplicable},
	}
}

func doRequest(t *testing.T, stub *stubService, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	New(nil, stub).Handler().ServeHTTP(rec, req)
	return rec
}

func TestIndexServesForm(t *testing.T) {
	stub := &stubService{lastScript: "previous script"}

	rec := doRequest(t, stub, http.MethodGet, "/", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "previous script")
}

func TestGenerate(t *testing.T) {
	stub := &stubService{result: sampleResult()}

	rec := doRequest(t, stub, http.MethodPost, "/api/generate",
		`{"script":"a script","tone":"casual"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a script", stub.gotScript)

	var result map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, map[string]any{"Titles": true}, result["coverage"])
}

func TestGenerateEmptyScript(t *testing.T) {
	stub := &stubService{err: service.ErrEmptyScript}

	rec := doRequest(t, stub, http.MethodPost, "/api/generate", `{"script":""}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateModelFailure(t *testing.T) {
	stub := &stubService{err: errors.New("provider down")}

	rec := doRequest(t, stub, http.MethodPost, "/api/generate", `{"script":"x"}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.NotContains(t, rec.Body.String(), "provider down")
}

func TestGenerateBadBody(t *testing.T) {
	stub := &stubService{result: sampleResult()}

	rec := doRequest(t, stub, http.MethodPost, "/api/generate", "{not json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLast(t *testing.T) {
	stub := &stubService{lastScript: "cached", lastResult: sampleResult()}

	rec := doRequest(t, stub, http.MethodGet, "/api/last", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.JSONEq(t, `"cached"`, string(body["script"]))
}

func TestExportMarkdown(t *testing.T) {
	stub := &stubService{lastResult: sampleResult()}

	rec := doRequest(t, stub, http.MethodGet, "/export/markdown", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "scriptmeta.md")
	assert.Contains(t, rec.Body.String(), "### Titles")
}

func TestExportJSON(t *testing.T) {
	stub := &stubService{lastResult: sampleResult()}

	rec := doRequest(t, stub, http.MethodGet, "/export/json", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, json.Valid(rec.Body.Bytes()))
}

func TestExportWithoutResult(t *testing.T) {
	stub := &stubService{}

	for _, path := range []string{"/export/markdown", "/export/json"} {
		rec := doRequest(t, stub, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}

func TestUnknownPath(t *testing.T) {
	rec := doRequest(t, &stubService{}, http.MethodGet, "/nope", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
