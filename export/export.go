// Package export renders a generation result for download as Markdown or
// JSON.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/scriptmeta/scriptmeta"
	"github.com/scriptmeta/scriptmeta/service"
	"github.com/scriptmeta/scriptmeta/validate"
)

// Markdown writes the result's sections back out in the same "### " heading
// convention the reply used, one blank line between sections.
func Markdown(w io.Writer, result *service.Result) error {
	for i, section := range result.Sections {
		if i > 0 {
			if _, err := fmt.Fprint(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "### %s\n", section.Title); err != nil {
			return err
		}
		if section.Content != "" {
			if _, err := fmt.Fprintf(w, "%s\n", section.Content); err != nil {
				return err
			}
		}
	}
	return nil
}

// document is the JSON export shape. The raw reply is omitted: the sections
// are the rendered result.
type document struct {
	Sections []scriptmeta.Section    `json:"sections"`
	Coverage map[string]bool         `json:"coverage"`
	Metadata validate.MetadataResult `json:"metadata"`
}

// JSON writes the result as an indented JSON document.
func JSON(w io.Writer, result *service.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(document{
		Sections: result.Sections,
		Coverage: result.Coverage,
		Metadata: result.Metadata,
	})
}

// WriteMarkdownFile renders the Markdown export to path.
func WriteMarkdownFile(path string, result *service.Result) error {
	return writeFile(path, result, Markdown)
}

// WriteJSONFile renders the JSON export to path.
func WriteJSONFile(path string, result *service.Result) error {
	return writeFile(path, result, JSON)
}

func writeFile(
	path string,
	result *service.Result,
	render func(io.Writer, *service.Result) error,
) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export %s: %w", path, err)
	}
	defer f.Close()

	if err := render(f, result); err != nil {
		return fmt.Errorf("render export %s: %w", path, err)
	}
	return f.Close()
}
