package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/cfiloc"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Books      cfiloc.BookService
	Paragraphs cfiloc.ParagraphService
	Generator  cfiloc.Generator
	Loader     cfiloc.Loader
	CacheDir   string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB        string `name:"db" env:"CFILOC_DB" help:"Database path"`
	Config    string `env:"CFILOC_CONFIG" help:"Config file path"`
	Generator string `help:"Paragraph generator (native or node)"`
	Verbose   bool   `short:"v" help:"Log operations to stderr"`

	Add    AddCmd    `cmd:"" help:"Add an EPUB to the library"`
	List   ListCmd   `cmd:"" help:"List all books in the library"`
	Delete DeleteCmd `cmd:"" help:"Delete a book and its paragraphs"`
	Search SearchCmd `cmd:"" help:"Search the library and print the first match"`
	Locate LocateCmd `cmd:"" help:"Locate a query in an EPUB without the library"`
	Range  RangeCmd  `cmd:"" help:"Build an epubcfi range from two locations"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	Name  string `arg:"" help:"Book name"`
	Path  string `arg:"" name:"epub" help:"Path to the EPUB file" type:"existingfile"`
	Force bool   `short:"f" help:"Delete existing book first"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Book name"`
	Force bool   `help:"Confirm deletion"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query string `arg:"" help:"Text to find"`
	Book  string `short:"b" help:"Only search this book"`
}

// LocateCmd is the "locate" subcommand.
type LocateCmd struct {
	Path  string `arg:"" name:"epub" help:"Path to the EPUB file"`
	Query string `arg:"" help:"Text to find"`
	Data  string `short:"d" default:"data.json" help:"Paragraph database path, generated if missing"`
}

// RangeCmd is the "range" subcommand.
type RangeCmd struct {
	Start       string `arg:"" help:"Start location"`
	End         string `arg:"" help:"End location"`
	StartOffset int    `arg:"" name:"start-offset" help:"Offset within the start paragraph"`
	EndOffset   int    `arg:"" name:"end-offset" help:"Offset within the end paragraph"`
}
