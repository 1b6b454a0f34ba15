// Package prompt builds the outbound prompt sent to the text generation
// model. Building is deterministic: the same script and options always
// produce byte-identical prompt text.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/scriptmeta/scriptmeta/format"
)

// DefaultSections is the section set the host application requests by
// default. The validator checks the reply against the same list.
var DefaultSections = []string{
	"Titles",
	"Hook",
	"Description",
	"Tags",
	"Hashtags",
	"Thumbnail Concepts",
	"Metadata JSON",
}

// defaultGuidance holds per-section instructions for the default set.
var defaultGuidance = map[string]string{
	"Titles":             "3 candidate titles, one per line, each under 100 characters.",
	"Hook":               "An opening line for the first 5 seconds of the video.",
	"Description":        "A 2-3 paragraph description with a call to action at the end.",
	"Tags":               "10-15 comma-separated search tags.",
	"Hashtags":           "3-5 hashtags, space-separated, each starting with #.",
	"Thumbnail Concepts": "2-3 thumbnail ideas, one per line, each under 10 words.",
	"Metadata JSON":      "A single JSON object matching the schema below, inside a ```json fence.",
}

// Builder assembles the prompt piece by piece.
//
//	text := prompt.New(script).
//	    WithTone("casual").
//	    WithSections(prompt.DefaultSections).
//	    WithMetadataSchema(validate.MetadataSchema().Raw()).
//	    Build()
type Builder struct {
	script         string
	tone           string
	audience       string
	sections       []string
	guidance       map[string]string
	metadataSchema map[string]any
}

// New creates a Builder for the given video script.
func New(script string) *Builder {
	return &Builder{
		script:   script,
		sections: DefaultSections,
		guidance: defaultGuidance,
	}
}

// WithTone sets the tone the generated copy should take (e.g. "casual",
// "authoritative"). Empty means the model picks.
func (b *Builder) WithTone(tone string) *Builder {
	b.tone = tone
	return b
}

// WithAudience sets the audience description included in the prompt.
func (b *Builder) WithAudience(audience string) *Builder {
	b.audience = audience
	return b
}

// WithSections sets the section names requested from the model, in order.
func (b *Builder) WithSections(names []string) *Builder {
	b.sections = names
	return b
}

// WithGuidance sets or overrides the per-section instruction emitted for
// name. Sections without guidance get only their skeleton heading.
func (b *Builder) WithGuidance(name, text string) *Builder {
	merged := make(map[string]string, len(b.guidance)+1)
	for k, v := range b.guidance {
		merged[k] = v
	}
	merged[name] = text
	b.guidance = merged
	return b
}

// WithMetadataSchema embeds the JSON Schema the metadata block must match.
// Pass validate.MetadataSchema().Raw(). Nil omits the schema block.
func (b *Builder) WithMetadataSchema(raw map[string]any) *Builder {
	b.metadataSchema = raw
	return b
}

// Build renders the prompt text.
func (b *Builder) Build() string {
	var sb strings.Builder

	sb.WriteString("You are a video publishing assistant. ")
	sb.WriteString("Given the script below, produce publish-ready metadata for the video.\n\n")

	if b.tone != "" {
		fmt.Fprintf(&sb, "Target tone: %s\n", b.tone)
	}
	if b.audience != "" {
		fmt.Fprintf(&sb, "Target audience: %s\n", b.audience)
	}
	if b.tone != "" || b.audience != "" {
		sb.WriteString("\n")
	}

	sb.WriteString("Format your response using \"### \" headings, ")
	sb.WriteString("one per section, exactly in this order:\n\n")
	sb.WriteString(format.Skeleton(b.sections))

	b.writeGuidance(&sb)
	b.writeSchema(&sb)

	sb.WriteString("Script:\n\"\"\"\n")
	sb.WriteString(b.script)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// writeGuidance emits guidance lines in section order, skipping sections
// that have none. Map iteration order never leaks into the output.
func (b *Builder) writeGuidance(sb *strings.Builder) {
	var lines []string
	for _, name := range b.sections {
		if text, ok := b.guidance[name]; ok {
			lines = append(lines, fmt.Sprintf("- %s: %s", name, text))
		}
	}
	if len(lines) == 0 {
		return
	}

	sb.WriteString("Section guidance:\n")
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

func (b *Builder) writeSchema(sb *strings.Builder) {
	if b.metadataSchema == nil {
		return
	}

	// json.Marshal sorts map keys, keeping Build deterministic.
	schemaJSON, err := json.MarshalIndent(b.metadataSchema, "", "  ")
	if err != nil {
		return
	}

	sb.WriteString("The Metadata JSON object must match this schema:\n")
	sb.Write(schemaJSON)
	sb.WriteString("\n\n")
}
