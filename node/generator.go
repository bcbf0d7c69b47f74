// Package node runs the epub-cfi-generator Node.js tool to build paragraph
// databases.
package node

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/fwojciec/cfiloc"
)

// Default invocation of the generator, relative to the working directory.
const (
	DefaultCommand = "node"
	DefaultScript  = "./node_modules/.bin/epub-cfi-generator"
)

// Ensure Generator implements cfiloc.Generator at compile time.
var _ cfiloc.Generator = (*Generator)(nil)

// Generator invokes an external process as "<command> <args...> <src> <dst>".
type Generator struct {
	command string
	args    []string
}

// NewGenerator creates a Generator running command with the given leading
// arguments. An empty command falls back to the node defaults.
func NewGenerator(command string, args ...string) *Generator {
	if command == "" {
		command = DefaultCommand
		args = []string{DefaultScript}
	}
	return &Generator{command: command, args: args}
}

// Generate runs the tool. A non-zero exit status is reported as EINTERNAL
// with the tool's stderr output as the message.
func (g *Generator) Generate(ctx context.Context, src, dst string) error {
	args := make([]string, 0, len(g.args)+2)
	args = append(args, g.args...)
	args = append(args, src, dst)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, g.command, args...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return cfiloc.Errorf(cfiloc.EINTERNAL, "failed to generate database: %s", msg)
	}
	return nil
}
