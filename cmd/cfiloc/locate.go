package main

import (
	"fmt"

	"github.com/fwojciec/cfiloc"
)

// Run executes the locate command.
func (c *LocateCmd) Run(deps *Dependencies) error {
	if err := deps.Generator.Generate(deps.Ctx, c.Path, c.Data); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cfiloc.ErrorMessage(err))
		return err
	}

	paragraphs, err := deps.Loader.Load(deps.Ctx, c.Data)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cfiloc.ErrorMessage(err))
		return err
	}

	m, err := cfiloc.NewIndex(paragraphs).Locate(c.Query)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cfiloc.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, cfiloc.FormatMatch(m))
	return nil
}

// Run executes the range command.
func (c *RangeCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, cfiloc.NewRange(c.Start, c.End, c.StartOffset, c.EndOffset))
	return nil
}
