// Package epub builds paragraph databases directly from EPUB files.
//
// The container and package documents are read with etree. Content documents
// are parsed as XML when well-formed and through goquery's HTML parser
// otherwise, so that slightly broken books still produce CFIs.
package epub

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"path"

	"github.com/beevik/etree"
	"github.com/fwojciec/cfiloc"
	"github.com/fwojciec/cfiloc/fs"
	"golang.org/x/sync/errgroup"
)

const containerPath = "META-INF/container.xml"

// Ensure Generator implements cfiloc.Generator at compile time.
var _ cfiloc.Generator = (*Generator)(nil)

// Generator extracts paragraphs and their CFIs from EPUB files.
type Generator struct {
	concurrency int
}

// Option configures a Generator.
type Option func(*Generator)

// WithConcurrency sets how many content documents are parsed at once.
func WithConcurrency(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.concurrency = n
		}
	}
}

// NewGenerator creates a new Generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{concurrency: 4}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate parses the EPUB at src and writes its paragraph database to dst.
func (g *Generator) Generate(ctx context.Context, src, dst string) error {
	sections, err := g.Parse(ctx, src)
	if err != nil {
		return err
	}
	return fs.WriteFile(dst, sections)
}

// spineItem is a content document referenced from the spine.
type spineItem struct {
	href   string // path inside the archive
	prefix string // CFI steps up to and including the indirection
}

// Parse returns one section per spine item, in spine order.
func (g *Generator) Parse(ctx context.Context, src string) ([]cfiloc.Section, error) {
	r, err := zip.OpenReader(src)
	if err != nil {
		return nil, cfiloc.Errorf(cfiloc.EINVALID, "failed to open epub %q: %v", src, err)
	}
	defer r.Close()

	files := make(map[string]*zip.File, len(r.File))
	for _, f := range r.File {
		files[f.Name] = f
	}

	opfPath, err := findPackage(files)
	if err != nil {
		return nil, err
	}
	items, err := readSpine(files, opfPath)
	if err != nil {
		return nil, err
	}

	sections := make([]cfiloc.Section, len(items))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.concurrency)
	for i, item := range items {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, ok := files[item.href]
			if !ok {
				return cfiloc.Errorf(cfiloc.EINVALID, "spine item %q missing from archive", item.href)
			}
			data, err := readFile(f)
			if err != nil {
				return err
			}
			paragraphs, err := extractParagraphs(data, item.prefix)
			if err != nil {
				return fmt.Errorf("%s: %w", item.href, err)
			}
			sections[i] = cfiloc.Section{Href: item.href, Paragraphs: paragraphs}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return sections, nil
}

// findPackage returns the archive path of the package document.
func findPackage(files map[string]*zip.File) (string, error) {
	f, ok := files[containerPath]
	if !ok {
		return "", cfiloc.Errorf(cfiloc.EINVALID, "missing %s", containerPath)
	}
	doc, err := readXML(f)
	if err != nil {
		return "", err
	}

	rootfile := doc.FindElement("//rootfile")
	if rootfile == nil {
		return "", cfiloc.Errorf(cfiloc.EINVALID, "no rootfile in %s", containerPath)
	}
	fullPath := rootfile.SelectAttrValue("full-path", "")
	if fullPath == "" {
		return "", cfiloc.Errorf(cfiloc.EINVALID, "rootfile without full-path in %s", containerPath)
	}
	return fullPath, nil
}

// readSpine resolves spine itemrefs against the manifest. Steps follow the
// element positions in the package document, so the usual spine yields
// prefixes like /6/2!, /6/4!, ...
func readSpine(files map[string]*zip.File, opfPath string) ([]spineItem, error) {
	f, ok := files[opfPath]
	if !ok {
		return nil, cfiloc.Errorf(cfiloc.EINVALID, "package document %q missing from archive", opfPath)
	}
	doc, err := readXML(f)
	if err != nil {
		return nil, err
	}

	pkg := doc.Root()
	if pkg == nil {
		return nil, cfiloc.Errorf(cfiloc.EINVALID, "empty package document")
	}

	manifest := make(map[string]*etree.Element)
	for _, item := range pkg.FindElements("manifest/item") {
		manifest[item.SelectAttrValue("id", "")] = item
	}

	base := path.Dir(opfPath)
	var items []spineItem
	for i, child := range pkg.ChildElements() {
		if child.Tag != "spine" {
			continue
		}
		spineStep := 2 * (i + 1)
		for j, ref := range child.ChildElements() {
			if ref.Tag != "itemref" {
				continue
			}
			item, ok := manifest[ref.SelectAttrValue("idref", "")]
			if !ok || !isContentDocument(item.SelectAttrValue("media-type", "")) {
				continue
			}
			href, err := url.PathUnescape(item.SelectAttrValue("href", ""))
			if err != nil {
				return nil, cfiloc.Errorf(cfiloc.EINVALID, "invalid manifest href: %v", err)
			}
			items = append(items, spineItem{
				href:   path.Join(base, href),
				prefix: fmt.Sprintf("/%d/%d!", spineStep, 2*(j+1)),
			})
		}
		break
	}

	return items, nil
}

func isContentDocument(mediaType string) bool {
	switch mediaType {
	case "application/xhtml+xml", "text/html":
		return true
	}
	return false
}

func readFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func readXML(f *zip.File) (*etree.Document, error) {
	data, err := readFile(f)
	if err != nil {
		return nil, err
	}
	doc := etree.NewDocument()
	doc.ReadSettings.Entity = xml.HTMLEntity
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, cfiloc.Errorf(cfiloc.EINVALID, "failed to parse %s: %v", f.Name, err)
	}
	return doc, nil
}
