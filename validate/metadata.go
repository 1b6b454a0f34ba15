package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/scriptmeta/scriptmeta"
	"github.com/scriptmeta/scriptmeta/schema"
)

// Metadata is the publishing metadata block the model embeds in its reply.
type Metadata struct {
	Title                string   `json:"title"`
	Description          string   `json:"description"`
	Tags                 []string `json:"tags"`
	DefaultLanguage      string   `json:"defaultLanguage"`
	DefaultAudioLanguage string   `json:"defaultAudioLanguage"`
	CategoryID           string   `json:"categoryId"`
}

// MetadataFields lists the required fields of the metadata block, in the
// order they are checked.
var MetadataFields = []string{
	"title",
	"description",
	"tags",
	"defaultLanguage",
	"defaultAudioLanguage",
	"categoryId",
}

// Default fixed values for the metadata block.
const (
	// DefaultMetadataSection is the title of the section carrying the block.
	DefaultMetadataSection = "Metadata JSON"

	// DefaultLanguage is the expected defaultLanguage code.
	DefaultLanguage = "en"

	// DefaultAudioLanguage is the expected defaultAudioLanguage code.
	DefaultAudioLanguage = "en-US"
)

var metadataSchema = MetadataSchemaFor(DefaultLanguage, DefaultAudioLanguage)

// MetadataSchemaFor builds the JSON Schema for the metadata block with the
// given locale codes pinned. The raw form is embedded in the outbound prompt;
// the compiled form backs the structural pass of ValidateMetadata. Beyond the
// locale consts the schema constrains type shape only; value niceties like
// title length live in the descriptions as prompt-side nudges.
func MetadataSchemaFor(language, audioLanguage string) *schema.Schema {
	return schema.MustCompile(schema.Object(map[string]*schema.Property{
		"title":                schema.String("Video title, under 100 characters"),
		"description":          schema.String("Video description"),
		"tags":                 schema.Array("Search tags", map[string]any{"type": "string"}),
		"defaultLanguage":      schema.String("Metadata language code").Const(language),
		"defaultAudioLanguage": schema.String("Spoken audio language code").Const(audioLanguage),
		"categoryId":           schema.String("Numeric category ID, as a string"),
	}, MetadataFields...))
}

// MetadataSchema returns the metadata block schema with the stock locale
// codes. Hosts with overridden codes build theirs via MetadataSchemaFor so
// the schema, the explicit checks, and the prompt agree.
func MetadataSchema() *schema.Schema {
	return metadataSchema
}

// Rules carries the fixed values ValidateMetadata checks against. They are
// explicit parameters rather than embedded literals so the validator can be
// exercised against alternate schemas.
type Rules struct {
	// SectionTitle is the title of the section expected to carry the block.
	SectionTitle string

	// RequiredFields are checked for presence, in order.
	RequiredFields []string

	// Language is the exact value defaultLanguage must hold.
	Language string

	// AudioLanguage is the exact value defaultAudioLanguage must hold.
	AudioLanguage string

	// Schema, when non-nil, runs a structural pass after the fixed checks so
	// wrong-typed fields are caught with the schema's own detail.
	Schema *schema.Schema
}

// DefaultRules returns the rules the host application ships with.
func DefaultRules() Rules {
	return Rules{
		SectionTitle:   DefaultMetadataSection,
		RequiredFields: MetadataFields,
		Language:       DefaultLanguage,
		AudioLanguage:  DefaultAudioLanguage,
		Schema:         metadataSchema,
	}
}

// State classifies the outcome of a metadata validation.
type State int

const (
	// StateNotApplicable means no metadata section was found in the reply.
	// This is not a failure.
	StateNotApplicable State = iota

	// StateValid means the block parsed and passed every check.
	StateValid

	// StateInvalid means the block is malformed; Reason says why.
	StateInvalid
)

func (s State) String() string {
	switch s {
	case StateNotApplicable:
		return "not applicable"
	case StateValid:
		return "valid"
	case StateInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// MetadataResult is the outcome of ValidateMetadata.
type MetadataResult struct {
	State State

	// Reason is a human-readable failure description, set when invalid.
	Reason string

	// Err wraps the matching sentinel error, set when invalid. Use errors.Is
	// to classify failures programmatically.
	Err error

	// Object is the parsed metadata object, set when valid.
	Object map[string]any

	// Metadata is the decoded block, set when valid and decodable.
	Metadata *Metadata
}

// MarshalJSON renders the result for API responses and exports. The wrapped
// error collapses into the reason string.
func (r MetadataResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		State  string         `json:"state"`
		Reason string         `json:"reason,omitempty"`
		Object map[string]any `json:"object,omitempty"`
	}{
		State:  r.State.String(),
		Reason: r.Reason,
		Object: r.Object,
	})
}

// ValidateMetadata locates the metadata section among the parsed sections and
// validates its embedded JSON block against the rules.
//
// An absent section yields StateNotApplicable. Anything wrong with a present
// block - no JSON object, unparsable JSON, a missing required field, a locale
// code mismatch, a schema violation - yields StateInvalid with a reason; the
// function never panics on malformed content. The input sections are not
// modified.
func ValidateMetadata(sections []scriptmeta.Section, rules Rules) MetadataResult {
	section := findSection(sections, rules.SectionTitle)
	if section == nil {
		return MetadataResult{State: StateNotApplicable}
	}

	content := stripCodeFence(section.Content)

	candidate, ok := jsonObjectCandidate(content)
	if !ok {
		return invalid(scriptmeta.ErrNoJSONObject, "no JSON object found")
	}

	var object map[string]any
	if err := json.Unmarshal([]byte(candidate), &object); err != nil {
		return invalid(
			fmt.Errorf("%w: %v", scriptmeta.ErrInvalidJSON, err),
			fmt.Sprintf("invalid JSON: %v", err),
		)
	}

	for _, field := range rules.RequiredFields {
		if _, present := object[field]; !present {
			return invalid(
				fmt.Errorf("%w: %s", scriptmeta.ErrMissingField, field),
				fmt.Sprintf("missing field: %s", field),
			)
		}
	}

	if audio, _ := object["defaultAudioLanguage"].(string); audio != rules.AudioLanguage {
		return invalid(
			fmt.Errorf("%w: defaultAudioLanguage", scriptmeta.ErrWrongLocale),
			fmt.Sprintf("defaultAudioLanguage must be %q", rules.AudioLanguage),
		)
	}
	if lang, _ := object["defaultLanguage"].(string); lang != rules.Language {
		return invalid(
			fmt.Errorf("%w: defaultLanguage", scriptmeta.ErrWrongLocale),
			fmt.Sprintf("defaultLanguage must be %q", rules.Language),
		)
	}

	if rules.Schema != nil {
		if err := rules.Schema.Validate(object); err != nil {
			return invalid(
				fmt.Errorf("%w: %v", scriptmeta.ErrSchemaMismatch, err),
				err.Error(),
			)
		}
	}

	result := MetadataResult{State: StateValid, Object: object}

	// Best effort: the object already passed validation, a decode miss here
	// only loses the typed convenience view.
	var meta Metadata
	if err := json.Unmarshal([]byte(candidate), &meta); err == nil {
		result.Metadata = &meta
	}

	return result
}

func invalid(err error, reason string) MetadataResult {
	return MetadataResult{State: StateInvalid, Reason: reason, Err: err}
}

// jsonObjectCandidate bounds the JSON object by the first '{' and the last
// '}'. Reports false when either brace is absent. When the braces are out of
// order the empty candidate is returned and left for the JSON parser to
// reject, matching how the bounds are sliced.
func jsonObjectCandidate(content string) (string, bool) {
	first := strings.IndexByte(content, '{')
	last := strings.LastIndexByte(content, '}')
	if first < 0 || last < 0 {
		return "", false
	}
	if last < first {
		return "", true
	}
	return content[first : last+1], true
}

// stripCodeFence removes an optional fenced code-block wrapper (a leading
// marker line and a trailing marker line) around the content.
func stripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return content
	}

	lines := strings.Split(trimmed, "\n")
	lines = lines[1:]
	if n := len(lines); n > 0 && strings.HasPrefix(strings.TrimSpace(lines[n-1]), "```") {
		lines = lines[:n-1]
	}
	return strings.Join(lines, "\n")
}
