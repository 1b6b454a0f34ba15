package scriptmeta

import "fmt"

// OverviewTitle is the synthetic title given to content that appears before
// the first heading in a model reply.
const OverviewTitle = "Overview"

// Section is a titled block of text extracted from a model reply.
// Sections are value types produced fresh on every parse; the title is never
// rewritten after assignment. Titles are not guaranteed unique.
type Section struct {
	// Title is the heading text, trimmed. Never empty: untitled sections get
	// a positional placeholder from PlaceholderTitle.
	Title string `json:"title"`

	// Content is the body between this heading and the next one, trimmed.
	// May be empty when two headings are adjacent.
	Content string `json:"content"`
}

// PlaceholderTitle returns the title substituted for a heading that is empty
// after trimming. idx is the 1-based position of the section in the parsed
// sequence.
func PlaceholderTitle(idx int) string {
	return fmt.Sprintf("Section %d", idx)
}
