// Package format splits a model's Markdown reply into titled sections.
//
// The reply convention is flat "### " headings, one per section:
//
//	### Titles
//	1. Five habits that ruin your focus
//
//	### Tags
//	focus, productivity, habits
//
// Parsing is pure and total: any input, including empty or heading-less
// text, produces a (possibly empty) ordered slice of sections without error.
// Content before the first heading becomes a synthetic "Overview" section,
// and a heading that is blank after trimming gets a positional "Section N"
// placeholder. Headings are recognized only at line starts; there is no
// nesting, every section sits at the same level.
//
// [Skeleton] renders the same convention in the outbound direction, as the
// response skeleton the prompt builder shows the model.
package format
