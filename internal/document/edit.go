package document

import (
	"fmt"
	"regexp"
)

// dateLen is the length of a YYYY-MM-DD token.
const dateLen = len("2006-01-02")

// splice returns a copy of src with span replaced by content.
func splice(src []byte, span Span, content []byte) []byte {
	out := make([]byte, 0, len(src)-span.Len()+len(content))
	out = append(out, src[:span.Start]...)
	out = append(out, content...)
	return append(out, src[span.End:]...)
}

// ReplaceInner replaces the content of the first block of the given kind in
// the section, keeping the block's own start and end tags.
// On error the original src is returned together with the error, so callers
// that treat missing markers as warnings can keep going.
func ReplaceInner(src []byte, sectionID string, kind BlockKind, content string) ([]byte, error) {
	d, err := Parse(src)
	if err != nil {
		return src, err
	}
	el, err := d.Block(sectionID, kind)
	if err != nil {
		return src, err
	}
	return splice(src, el.Inner, []byte(content)), nil
}

// ReplaceOuter replaces the whole first block of the given kind in the section,
// including its start and end tags.
func ReplaceOuter(src []byte, sectionID string, kind BlockKind, markup string) ([]byte, error) {
	d, err := Parse(src)
	if err != nil {
		return src, err
	}
	el, err := d.Block(sectionID, kind)
	if err != nil {
		return src, err
	}
	return splice(src, el.Outer, []byte(markup)), nil
}

// InsertAfterTable inserts markup directly after the first </table> of the section.
func InsertAfterTable(src []byte, sectionID, markup string) ([]byte, error) {
	d, err := Parse(src)
	if err != nil {
		return src, err
	}
	sec, err := d.Section(sectionID)
	if err != nil {
		return src, err
	}
	if sec.TableEnd < 0 {
		return src, fmt.Errorf("%w: table in %s", ErrBlockNotFound, sectionID)
	}
	return splice(src, Span{Start: sec.TableEnd, End: sec.TableEnd}, []byte(markup)), nil
}

// RemoveNoticeBox removes the first <div class="note-box"> element.
// It reports whether a notice box was found.
func RemoveNoticeBox(src []byte) ([]byte, bool, error) {
	d, err := Parse(src)
	if err != nil {
		return src, false, err
	}
	if d.NoticeBox == nil {
		return src, false, nil
	}
	return splice(src, d.NoticeBox.Outer, nil), true, nil
}

// ReplaceDate replaces the YYYY-MM-DD token that directly follows prefix with date.
// The search is limited to the header element (the first <div class="meta">)
// when the document has one; other documents are searched whole. Only the
// first occurrence is replaced. It reports whether the prefix was found.
func ReplaceDate(src []byte, prefix, date string) ([]byte, bool) {
	scope := Span{Start: 0, End: len(src)}
	if d, err := Parse(src); err == nil && d.Meta != nil {
		scope = d.Meta.Outer
	}

	re := regexp.MustCompile(regexp.QuoteMeta(prefix) + `\d{4}-\d{2}-\d{2}`)
	loc := re.FindIndex(src[scope.Start:scope.End])
	if loc == nil {
		return src, false
	}
	end := scope.Start + loc[1]
	return splice(src, Span{Start: end - dateLen, End: end}, []byte(date)), true
}
