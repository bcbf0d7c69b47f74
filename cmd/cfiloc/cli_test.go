package main_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/cfiloc/cmd/cfiloc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allCommands = []string{"add", "list", "delete", "search", "locate", "range"}

// newDeps returns dependencies writing to fresh buffers.
func newDeps() (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Logger: slog.New(slog.DiscardHandler),
	}, stdout, stderr
}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	// Kong prints help even if Parse returns an error.
	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range allCommands {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestCLI_ParsesRangeArguments(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"range", "/6/4!/4/2/1:0", "/6/4!/4/6/1:0", "3", "7"})
	require.NoError(t, err)

	assert.Equal(t, "/6/4!/4/2/1:0", cli.Range.Start)
	assert.Equal(t, "/6/4!/4/6/1:0", cli.Range.End)
	assert.Equal(t, 3, cli.Range.StartOffset)
	assert.Equal(t, 7, cli.Range.EndOffset)
}

func TestCLI_LocateDataDefault(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"locate", "book.epub", "some text"})
	require.NoError(t, err)

	assert.Equal(t, "data.json", cli.Locate.Data)
}
