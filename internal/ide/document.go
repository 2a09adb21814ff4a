package ide

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/beevik/etree"
)

const (
	componentTag  = "component"
	mappingTag    = "mapping"
	directoryAttr = "directory"
	vcsAttr       = "vcs"
	mappingsName  = "VcsDirectoryMappings"
	indentSpaces  = 2
)

// ErrNoRoot is returned for documents without a root element.
var ErrNoRoot = errors.New("document has no root element")

// Mapping is one directory mapping as stored in the document.
type Mapping struct {
	Directory string
	VCS       string
}

// Document is a loaded VCS mapping file.
type Document struct {
	path string
	doc  *etree.Document

	// spacedEmpty records that the file writes empty elements as `<a x="1" />`.
	spacedEmpty bool
}

// Load parses the mapping document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("reading %s: %w", path, ErrNoRoot)
	}
	return &Document{
		path:        path,
		doc:         doc,
		spacedEmpty: bytes.Contains(data, []byte(`" />`)),
	}, nil
}

// Mappings returns every mapping, in document order, whose vcs attribute
// equals kind ignoring case.
func (d *Document) Mappings(kind string) []Mapping {
	var result []Mapping
	for _, component := range d.doc.FindElements("//" + componentTag) {
		for _, el := range component.FindElements(".//" + mappingTag) {
			vcs := el.SelectAttrValue(vcsAttr, "")
			if vcs == "" || !strings.EqualFold(vcs, kind) {
				continue
			}
			result = append(result, Mapping{
				Directory: el.SelectAttrValue(directoryAttr, ""),
				VCS:       vcs,
			})
		}
	}
	return result
}

// Append adds a mapping for directory to the mappings component. Only the
// whitespace around the new element is written; existing formatting is kept.
func (d *Document) Append(directory, kind string) {
	el := etree.NewElement(mappingTag)
	el.CreateAttr(directoryAttr, directory)
	el.CreateAttr(vcsAttr, kind)
	d.appendIndented(d.container(), el)
}

// appendIndented adds child as the last element of parent. The child copies
// the whitespace in front of its last sibling element; in an empty parent it
// is indented one level deeper than the parent.
func (d *Document) appendIndented(parent, child *etree.Element) {
	if siblings := parent.ChildElements(); len(siblings) > 0 {
		last := siblings[len(siblings)-1]
		i := last.Index()
		parent.InsertChildAt(i+1, child)
		parent.InsertChildAt(i+1, etree.NewText(leadingSpace(last)))
		return
	}

	outer := leadingSpace(parent)
	for i := len(parent.Child) - 1; i >= 0; i-- {
		if text, ok := parent.Child[i].(*etree.CharData); ok && blank(text) {
			parent.RemoveChildAt(i)
		}
	}
	parent.AddChild(etree.NewText(outer + d.indentUnit()))
	parent.AddChild(child)
	parent.AddChild(etree.NewText(outer))
}

// indentUnit returns the indentation of the root's first child element, or
// two spaces when the document has none.
func (d *Document) indentUnit() string {
	if children := d.doc.Root().ChildElements(); len(children) > 0 {
		ws := leadingSpace(children[0])
		if unit := ws[strings.LastIndex(ws, "\n")+1:]; unit != "" {
			return unit
		}
	}
	return strings.Repeat(" ", indentSpaces)
}

// leadingSpace returns the whitespace text directly before el, or a bare
// newline when there is none.
func leadingSpace(el *etree.Element) string {
	parent := el.Parent()
	if parent == nil {
		return "\n"
	}
	if i := el.Index(); i > 0 {
		if text, ok := parent.Child[i-1].(*etree.CharData); ok && blank(text) && strings.Contains(text.Data, "\n") {
			return text.Data
		}
	}
	return "\n"
}

// container picks the component new mappings go into: the first component
// already holding mappings, else the one named VcsDirectoryMappings, else the
// first component. Without any component a VcsDirectoryMappings component is
// created under the root.
func (d *Document) container() *etree.Element {
	components := d.doc.FindElements("//" + componentTag)
	for _, c := range components {
		if c.FindElement(".//"+mappingTag) != nil {
			return c
		}
	}
	for _, c := range components {
		if c.SelectAttrValue("name", "") == mappingsName {
			return c
		}
	}
	if len(components) > 0 {
		return components[0]
	}

	c := etree.NewElement(componentTag)
	c.CreateAttr("name", mappingsName)
	d.appendIndented(d.doc.Root(), c)
	return c
}

// Save writes the document back to the file it was loaded from.
func (d *Document) Save() error {
	var buf bytes.Buffer
	if _, err := d.doc.WriteTo(&buf); err != nil {
		return fmt.Errorf("encoding %s: %w", d.path, err)
	}
	data := buf.Bytes()
	if d.spacedEmpty {
		data = bytes.ReplaceAll(data, []byte(`"/>`), []byte(`" />`))
	}
	if err := os.WriteFile(d.path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", d.path, err)
	}
	return nil
}

func blank(text *etree.CharData) bool {
	return strings.TrimSpace(text.Data) == ""
}
