package cmd

import (
	"context"

	"github.com/ardnew/stache/mustache"
)

// Dedent prints a template with its common margin removed, exactly as render
// sees it before parsing.
type Dedent struct {
	Source string `arg:"" default:"-" help:"Template file or '-' for stdin." name:"source"`
	Output string `default:"-" help:"Output file or '-' for stdout." short:"o" type:"path"`
}

// Run executes the dedent command.
func (d *Dedent) Run(ctx context.Context) error {
	text, err := readSource(ctx, d.Source)
	if err != nil {
		return err
	}

	return writeTarget(ctx, d.Output, []byte(mustache.Dedent(string(text))))
}
