package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/scriptmeta/scriptmeta/export"
	"github.com/scriptmeta/scriptmeta/service"
	"github.com/scriptmeta/scriptmeta/validate"
)

// ANSI color codes
const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorCyan  = "\033[36m"
	colorDim   = "\033[2m"
)

// runREPL reads a script from the terminal, generates metadata for it, and
// prints the validated result. The script is terminated by a line holding
// only "END".
func runREPL(ctx context.Context, svc service.Service) error {
	rl, err := readline.New("scriptmeta> ")
	if err != nil {
		return fmt.Errorf("create readline: %w", err)
	}
	defer rl.Close()

	fmt.Println("Paste a script and finish with a line holding only END.")
	fmt.Println("Commands: :last, :export md <path>, :export json <path>, :quit")

	var last *service.Result
	var scriptLines []string

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch {
		case line == ":quit", line == ":exit":
			return nil

		case line == ":last":
			script, result, err := svc.Last()
			if err != nil {
				printError(err)
				continue
			}
			if result == nil {
				fmt.Println("nothing cached yet")
				continue
			}
			last = result
			fmt.Printf("%slast script (%d chars)%s\n", colorDim, len(script), colorReset)
			printResult(result)

		case strings.HasPrefix(line, ":export "):
			exportLast(last, strings.TrimPrefix(line, ":export "))

		case line == "END":
			script := strings.Join(scriptLines, "\n")
			scriptLines = nil

			result, err := svc.GenerateMetadata(ctx, script)
			if err != nil {
				printError(err)
				continue
			}
			last = result
			printResult(result)

		default:
			scriptLines = append(scriptLines, line)
		}
	}
}

func exportLast(last *service.Result, args string) {
	if last == nil {
		fmt.Println("nothing to export yet")
		return
	}

	kind, path, ok := strings.Cut(args, " ")
	if !ok || path == "" {
		fmt.Println("usage: :export md|json <path>")
		return
	}

	var err error
	switch kind {
	case "md":
		err = export.WriteMarkdownFile(path, last)
	case "json":
		err = export.WriteJSONFile(path, last)
	default:
		fmt.Println("usage: :export md|json <path>")
		return
	}
	if err != nil {
		printError(err)
		return
	}
	fmt.Printf("wrote %s\n", path)
}

func printResult(result *service.Result) {
	names := make([]string, 0, len(result.Coverage))
	for name := range result.Coverage {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if result.Coverage[name] {
			fmt.Printf("%s✓ %s%s\n", colorGreen, name, colorReset)
		} else {
			fmt.Printf("%s✗ %s%s\n", colorRed, name, colorReset)
		}
	}

	switch result.Metadata.State {
	case validate.StateValid:
		fmt.Printf("%smetadata: valid%s\n", colorGreen, colorReset)
	case validate.StateInvalid:
		fmt.Printf("%smetadata: %s%s\n", colorRed, result.Metadata.Reason, colorReset)
	case validate.StateNotApplicable:
		fmt.Printf("%smetadata: not applicable%s\n", colorDim, colorReset)
	}

	for _, section := range result.Sections {
		fmt.Printf("\n%s### %s%s\n%s\n", colorCyan, section.Title, colorReset, section.Content)
	}
}

func printError(err error) {
	fmt.Printf("%sError: %v%s\n", colorRed, err, colorReset)
}
