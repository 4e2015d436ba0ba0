package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// BlockKind identifies a sub-block inside a section.
type BlockKind int

const (
	// BlockTableBody is the first <tbody> of a section.
	BlockTableBody BlockKind = iota
	// BlockOrderedList is the first <ol> of a section.
	BlockOrderedList
	// BlockCallout is the first <div class="callout"> of a section.
	BlockCallout
)

// String returns the markup name of the block.
func (k BlockKind) String() string {
	switch k {
	case BlockTableBody:
		return "tbody"
	case BlockOrderedList:
		return "ol"
	case BlockCallout:
		return "callout"
	default:
		return "unknown"
	}
}

// Class names recognised on <div> elements.
const (
	ClassCallout   = "callout"
	ClassMeta      = "meta"
	ClassNoticeBox = "note-box"
)

// voidElements never have an end tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// Span is a half-open byte range [Start, End) into the document.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Element is a located element.
// Outer covers the start tag through the end tag; Inner covers the content between them.
type Element struct {
	Outer Span
	Inner Span
}

// Section is a <section id="..."> region and the sub-blocks found inside it.
type Section struct {
	// ID is the section's id attribute.
	ID string

	// Element is the location of the section itself.
	Element Element

	// TableBody, OrderedList and Callout are nil when the section has none.
	TableBody   *Element
	OrderedList *Element
	Callout     *Element

	// TableEnd is the offset just past the first </table>, or -1.
	TableEnd int

	claimed map[BlockKind]bool
}

// Block returns the sub-block of the given kind, or nil.
func (s *Section) Block(kind BlockKind) *Element {
	switch kind {
	case BlockTableBody:
		return s.TableBody
	case BlockOrderedList:
		return s.OrderedList
	case BlockCallout:
		return s.Callout
	default:
		return nil
	}
}

// Document is a tokenized report template.
type Document struct {
	src      []byte
	sections []*Section
	byID     map[string]*Section

	// Meta is the first <div class="meta"> (the report header line), or nil.
	Meta *Element

	// NoticeBox is the first <div class="note-box"> (the placeholder instructions), or nil.
	NoticeBox *Element
}

// openElement is an element whose end tag has not been seen yet.
type openElement struct {
	tag        string
	start      int
	innerStart int
	section    *Section
	onClose    func(Element)
}

// Parse tokenizes src and records the location of every section and the
// sub-blocks the generator and updater address.
// Elements that are never explicitly closed are not recorded.
func Parse(src []byte) (*Document, error) {
	d := &Document{
		src:  src,
		byID: make(map[string]*Section),
	}

	z := html.NewTokenizer(bytes.NewReader(src))
	seen := make(map[string]bool)
	var stack []openElement
	offset := 0

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to tokenize document: %w", z.Err())
		}

		raw := z.Raw()
		start, end := offset, offset+len(raw)
		offset = end

		switch tt {
		case html.StartTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)
			if voidElements[tag] {
				continue
			}
			attrs := readAttrs(z, hasAttr)

			el := openElement{tag: tag, start: start, innerStart: end}
			current := innermostSection(stack)

			switch {
			case tag == "section" && attrs["id"] != "":
				id := attrs["id"]
				if seen[id] {
					return nil, fmt.Errorf("%w: %s", ErrDuplicateSection, id)
				}
				seen[id] = true
				sec := &Section{ID: id, TableEnd: -1, claimed: make(map[BlockKind]bool)}
				el.section = sec
				el.onClose = func(e Element) {
					sec.Element = e
					d.sections = append(d.sections, sec)
					d.byID[id] = sec
				}
			case tag == "tbody":
				el.onClose = claim(current, BlockTableBody)
			case tag == "ol":
				el.onClose = claim(current, BlockOrderedList)
			case tag == "div" && hasClass(attrs["class"], ClassCallout):
				el.onClose = claim(current, BlockCallout)
			case tag == "div" && hasClass(attrs["class"], ClassMeta) && d.Meta == nil:
				d.Meta = &Element{}
				target := d.Meta
				el.onClose = func(e Element) { *target = e }
			case tag == "div" && hasClass(attrs["class"], ClassNoticeBox) && d.NoticeBox == nil:
				d.NoticeBox = &Element{}
				target := d.NoticeBox
				el.onClose = func(e Element) { *target = e }
			}

			stack = append(stack, el)

		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)

			idx := -1
			for i := len(stack) - 1; i >= 0; i-- {
				if stack[i].tag == tag {
					idx = i
					break
				}
			}
			if idx < 0 {
				continue
			}

			el := stack[idx]
			stack = stack[:idx]
			if el.onClose != nil {
				el.onClose(Element{
					Outer: Span{Start: el.start, End: end},
					Inner: Span{Start: el.innerStart, End: start},
				})
			}

			if tag == "table" {
				if sec := innermostSection(stack); sec != nil && sec.TableEnd < 0 {
					sec.TableEnd = end
				}
			}
		}
	}

	// Blocks claimed at open time but never closed are dropped.
	if d.Meta != nil && d.Meta.Outer.End == 0 {
		d.Meta = nil
	}
	if d.NoticeBox != nil && d.NoticeBox.Outer.End == 0 {
		d.NoticeBox = nil
	}

	return d, nil
}

// claim reserves the first block of a kind in a section at its start tag, so a
// nested block of the same kind that closes earlier cannot take its place.
func claim(sec *Section, kind BlockKind) func(Element) {
	if sec == nil || sec.claimed[kind] {
		return nil
	}
	sec.claimed[kind] = true
	return func(e Element) {
		switch kind {
		case BlockTableBody:
			sec.TableBody = &e
		case BlockOrderedList:
			sec.OrderedList = &e
		case BlockCallout:
			sec.Callout = &e
		}
	}
}

func innermostSection(stack []openElement) *Section {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].section != nil {
			return stack[i].section
		}
	}
	return nil
}

func readAttrs(z *html.Tokenizer, hasAttr bool) map[string]string {
	attrs := make(map[string]string)
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		k := string(key)
		if _, dup := attrs[k]; !dup {
			attrs[k] = string(val)
		}
	}
	return attrs
}

func hasClass(classAttr, name string) bool {
	return slices.Contains(strings.Fields(classAttr), name)
}

// Bytes returns the document content.
func (d *Document) Bytes() []byte {
	return d.src
}

// Sections returns all closed sections in document order of their end tags.
func (d *Document) Sections() []*Section {
	return d.sections
}

// Section returns the section with the given id.
func (d *Document) Section(id string) (*Section, error) {
	sec, ok := d.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSectionNotFound, id)
	}
	return sec, nil
}

// Block returns the first block of the given kind inside the section.
func (d *Document) Block(sectionID string, kind BlockKind) (*Element, error) {
	sec, err := d.Section(sectionID)
	if err != nil {
		return nil, err
	}
	el := sec.Block(kind)
	if el == nil {
		return nil, fmt.Errorf("%w: %s in %s", ErrBlockNotFound, kind, sectionID)
	}
	return el, nil
}

// Text returns the bytes covered by span.
func (d *Document) Text(span Span) string {
	return string(d.src[span.Start:span.End])
}
