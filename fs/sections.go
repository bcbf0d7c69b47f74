// Package fs provides file-based storage for generated paragraph databases.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fwojciec/cfiloc"
)

// ReadSections decodes a paragraph database: a JSON array of sections, each
// holding a "content" array of {"node", "cfi"} objects.
//
// Sections without a content array and entries missing either string field
// are skipped. A top-level value that is not an array yields no sections.
func ReadSections(r io.Reader) ([]cfiloc.Section, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, cfiloc.Errorf(cfiloc.EINVALID, "invalid paragraph database: %v", err)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, nil
	}

	sections := make([]cfiloc.Section, 0, len(items))
	for _, item := range items {
		var s struct {
			Href    string            `json:"href"`
			Content []json.RawMessage `json:"content"`
		}
		if err := json.Unmarshal(item, &s); err != nil || s.Content == nil {
			continue
		}

		section := cfiloc.Section{Href: s.Href}
		for _, c := range s.Content {
			var e struct {
				Node *string `json:"node"`
				CFI  *string `json:"cfi"`
			}
			if err := json.Unmarshal(c, &e); err != nil || e.Node == nil || e.CFI == nil {
				continue
			}
			section.Paragraphs = append(section.Paragraphs, cfiloc.Paragraph{Text: *e.Node, Location: *e.CFI})
		}
		sections = append(sections, section)
	}

	return sections, nil
}

// WriteSections encodes sections in the format read by ReadSections.
func WriteSections(w io.Writer, sections []cfiloc.Section) error {
	// Empty content must still encode as an array.
	out := make([]cfiloc.Section, len(sections))
	for i, s := range sections {
		if s.Paragraphs == nil {
			s.Paragraphs = []cfiloc.Paragraph{}
		}
		out[i] = s
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(out)
}

// WriteFile writes sections to path via path+".tmp" and a rename. A failed
// write leaves nothing at path.
func WriteFile(path string, sections []cfiloc.Section) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if err := WriteSections(f, sections); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to encode paragraph database: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, path)
}

// Ensure Loader implements cfiloc.Loader at compile time.
var _ cfiloc.Loader = (*Loader)(nil)

// Loader reads paragraph databases from disk.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the database at path and returns its paragraphs in document order.
func (l *Loader) Load(ctx context.Context, path string) ([]cfiloc.Paragraph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sections, err := ReadSections(f)
	if err != nil {
		return nil, err
	}
	return cfiloc.Flatten(sections), nil
}
