// Command formbuilder serves the form builder API and offers offline
// helpers to validate, fill, export and describe form configs.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/renderers/tui"
)

type command struct {
	summary string
	usage   string
	run     func(a *app, args []string) error
}

type app struct {
	stdout io.Writer
	stderr io.Writer
	// driver answers the fill prompts; nil uses the survey terminal driver.
	driver tui.PromptDriver
}

// exitError carries a non-zero exit status without an extra message.
type exitError struct {
	code int
}

func (e exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func commands() map[string]command {
	return map[string]command{
		"serve": {
			summary: "run the HTTP API",
			usage:   "serve [--addr :8080] [--form file] [--config formbuilder.yaml]",
			run:     (*app).serve,
		},
		"validate": {
			summary: "check a form config file",
			usage:   "validate <file>",
			run:     (*app).validate,
		},
		"fill": {
			summary: "fill a form in the terminal and print the values",
			usage:   "fill <file> [--output json|form|pretty]",
			run:     (*app).fill,
		},
		"export": {
			summary: "export a filled form as text or html",
			usage:   "export <file> --values <file> [--format text|html] [--output file]",
			run:     (*app).export,
		},
		"schema": {
			summary: "print the OpenAPI document describing submitted values",
			usage:   "schema <file> [--format json|yaml]",
			run:     (*app).schema,
		},
	}
}

func main() {
	a := &app{stdout: os.Stdout, stderr: os.Stderr}
	os.Exit(a.run(os.Args[1:]))
}

func (a *app) run(args []string) int {
	cmds := commands()
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		a.usage(cmds)
		if len(args) == 0 {
			return 2
		}
		return 0
	}

	cmd, ok := cmds[args[0]]
	if !ok {
		fmt.Fprintf(a.stderr, "formbuilder: unknown command %q\n\n", args[0])
		a.usage(cmds)
		return 2
	}
	if err := cmd.run(a, args[1:]); err != nil {
		var exit exitError
		if errors.As(err, &exit) {
			return exit.code
		}
		fmt.Fprintf(a.stderr, "formbuilder %s: %v\n", args[0], err)
		return 1
	}
	return 0
}

func (a *app) usage(cmds map[string]command) {
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("Usage: formbuilder <command> [flags]\n\nCommands:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %-9s %s\n", name, cmds[name].summary)
		fmt.Fprintf(&b, "            formbuilder %s\n", cmds[name].usage)
	}
	fmt.Fprint(a.stderr, b.String())
}
