package format

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/scriptmeta/scriptmeta"
)

// HeadingMarker starts every section heading line in a model reply.
const HeadingMarker = "### "

// headingPattern matches the marker at line starts only, so a mid-line
// "### " never opens a section.
var headingPattern = regexp.MustCompile(`(?m)^### `)

// ParseSections splits text into an ordered slice of sections.
//
// The text is cut immediately before every line that begins with the heading
// marker; the marker stays with the chunk it opens. Content before the first
// heading becomes an "Overview" section, blank chunks are dropped, and a
// heading whose title is empty after trimming is renamed to its positional
// placeholder. Blank input yields a nil slice.
func ParseSections(text string) []scriptmeta.Section {
	text = normalizeNewlines(text)
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var sections []scriptmeta.Section
	for _, chunk := range splitBeforeHeadings(text) {
		if strings.HasPrefix(chunk, HeadingMarker) {
			sections = append(sections, headingSection(chunk, len(sections)+1))
			continue
		}
		// Leading chunk with no marker: preamble the model wrote before the
		// first heading.
		if body := strings.TrimSpace(chunk); body != "" {
			sections = append(sections, scriptmeta.Section{
				Title:   scriptmeta.OverviewTitle,
				Content: body,
			})
		}
	}
	return sections
}

// splitBeforeHeadings cuts text at the start of every heading line, keeping
// the marker with the following chunk. The first chunk may lack a marker.
func splitBeforeHeadings(text string) []string {
	marks := headingPattern.FindAllStringIndex(text, -1)

	bounds := make([]int, 0, len(marks)+2)
	bounds = append(bounds, 0)
	for _, m := range marks {
		if m[0] != 0 {
			bounds = append(bounds, m[0])
		}
	}
	bounds = append(bounds, len(text))

	chunks := make([]string, 0, len(bounds)-1)
	for i := 0; i+1 < len(bounds); i++ {
		chunks = append(chunks, text[bounds[i]:bounds[i+1]])
	}
	return chunks
}

// headingSection builds a section from a chunk that starts with the heading
// marker. idx is the 1-based position the section will take in the result.
func headingSection(chunk string, idx int) scriptmeta.Section {
	rest := chunk[len(HeadingMarker):]

	var title, content string
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		title = rest[:nl]
		content = rest[nl+1:]
	} else {
		title = rest
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = scriptmeta.PlaceholderTitle(idx)
	}

	return scriptmeta.Section{
		Title:   title,
		Content: strings.TrimSpace(content),
	}
}

// normalizeNewlines folds CRLF and bare CR line endings to LF.
func normalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// Skeleton renders the response skeleton the model is asked to follow: one
// heading per section name with a brief placeholder body.
func Skeleton(names []string) string {
	var sb strings.Builder
	for _, name := range names {
		fmt.Fprintf(&sb, "%s%s\n", HeadingMarker, name)
		fmt.Fprintf(&sb, "... %s content here ...\n\n", name)
	}
	return sb.String()
}
