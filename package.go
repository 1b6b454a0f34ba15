// Package scriptmeta turns a video script into publish-ready video metadata.
//
// It builds a deterministic prompt from the script, sends it to a text
// generation model, splits the Markdown reply into titled sections, checks
// that every expected section is present, and validates the metadata JSON
// block embedded in the reply.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "context"
//	    "fmt"
//
//	    "github.com/scriptmeta/scriptmeta"
//	    "github.com/scriptmeta/scriptmeta/format"
//	    "github.com/scriptmeta/scriptmeta/prompt"
//	    "github.com/scriptmeta/scriptmeta/validate"
//	    "github.com/tmc/langchaingo/llms/openai"
//	)
//
//	func main() {
//	    llm, _ := openai.New()
//
//	    p := prompt.New(script).
//	        WithSections(prompt.DefaultSections).
//	        WithMetadataSchema(validate.MetadataSchema().Raw()).
//	        Build()
//
//	    raw, _ := scriptmeta.Generate(context.Background(), llm, p)
//
//	    sections := format.ParseSections(raw)
//	    coverage := validate.CheckRequiredSections(sections, prompt.DefaultSections)
//	    verdict := validate.ValidateMetadata(sections, validate.DefaultRules())
//
//	    fmt.Println(coverage, verdict.State)
//	}
//
// For a ready-made pipeline with caching and logging, see the service
// package. The cmd/scriptmeta binary hosts the pipeline behind an HTTP form
// and an interactive REPL.
package scriptmeta
