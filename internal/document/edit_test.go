package document

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestReplaceInner(t *testing.T) {
	t.Parallel()

	t.Run("replaces only the block content", func(t *testing.T) {
		t.Parallel()
		src := []byte(testTemplate)
		out, err := ReplaceInner(src, "sec1", BlockTableBody, "\nNEW\n    ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		before, _, _ := strings.Cut(testTemplate, `<section id="sec1">`)
		if !bytes.HasPrefix(out, []byte(before)) {
			t.Error("content before the section changed")
		}
		_, after, _ := strings.Cut(testTemplate, "</tbody>\n  </table>\n  <div class=\"callout\">")
		if !bytes.HasSuffix(out, []byte(after)) {
			t.Error("content after the block changed")
		}
		if !bytes.Contains(out, []byte("<tbody>\nNEW\n    </tbody>")) {
			t.Errorf("expected new tbody content, got %s", out)
		}
		if bytes.Contains(out, []byte("日期（如：12月1日）")) {
			t.Error("expected sample row to be replaced")
		}
	})

	t.Run("other sections keep their blocks", func(t *testing.T) {
		t.Parallel()
		out, err := ReplaceInner([]byte(testTemplate), "sec6", BlockTableBody, "X")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.Contains(out, []byte("日期（如：12月1日）")) {
			t.Error("sec1 must be untouched")
		}
		if !bytes.Contains(out, []byte("<tbody>X</tbody>")) {
			t.Errorf("expected sec6 replacement, got %s", out)
		}
	})

	t.Run("missing section returns input unchanged", func(t *testing.T) {
		t.Parallel()
		src := []byte(testTemplate)
		out, err := ReplaceInner(src, "sec3", BlockTableBody, "X")
		if !errors.Is(err, ErrSectionNotFound) {
			t.Fatalf("expected ErrSectionNotFound, got %v", err)
		}
		if !bytes.Equal(out, src) {
			t.Error("expected unchanged document")
		}
	})

	t.Run("missing block returns input unchanged", func(t *testing.T) {
		t.Parallel()
		src := []byte(testTemplate)
		out, err := ReplaceInner(src, "sec5", BlockTableBody, "X")
		if !errors.Is(err, ErrBlockNotFound) {
			t.Fatalf("expected ErrBlockNotFound, got %v", err)
		}
		if !bytes.Equal(out, src) {
			t.Error("expected unchanged document")
		}
	})
}

func TestReplaceOuter(t *testing.T) {
	t.Parallel()

	out, err := ReplaceOuter([]byte(testTemplate), "sec1", BlockCallout, `<div class="callout">X</div>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Contains(out, []byte("</table>\n  <div class=\"callout\">X</div>\n</section>")) {
		t.Errorf("unexpected output %s", out)
	}
}

func TestInsertAfterTable(t *testing.T) {
	t.Parallel()

	t.Run("inserts after first table", func(t *testing.T) {
		t.Parallel()
		out, err := InsertAfterTable([]byte(testTemplate), "sec6", "\n  <div>added</div>")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.Contains(out, []byte("</table>\n  <div>added</div>\n</section>")) {
			t.Errorf("unexpected output %s", out)
		}
	})

	t.Run("section without table", func(t *testing.T) {
		t.Parallel()
		src := []byte(testTemplate)
		out, err := InsertAfterTable(src, "sec5", "x")
		if !errors.Is(err, ErrBlockNotFound) {
			t.Errorf("expected ErrBlockNotFound, got %v", err)
		}
		if !bytes.Equal(out, src) {
			t.Error("expected unchanged document")
		}
	})
}

func TestRemoveNoticeBox(t *testing.T) {
	t.Parallel()

	out, removed, err := RemoveNoticeBox([]byte(testTemplate))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !removed {
		t.Fatal("expected notice box to be removed")
	}
	if bytes.Contains(out, []byte("note-box")) || bytes.Contains(out, []byte("提示")) {
		t.Errorf("notice box remnants found: %s", out)
	}
	if !bytes.Contains(out, []byte("2025-12-02</div>\n\n<!--")) {
		t.Errorf("surrounding content changed: %s", out)
	}

	again, removed, err := RemoveNoticeBox(out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed || !bytes.Equal(again, out) {
		t.Error("second removal must be a no-op")
	}
}

func TestReplaceDate(t *testing.T) {
	t.Parallel()

	const prefix = `<div class="meta">Market Research Team @ `

	t.Run("replaces the date token", func(t *testing.T) {
		t.Parallel()
		out, ok := ReplaceDate([]byte(testTemplate), prefix, "2025-12-09")
		if !ok {
			t.Fatal("expected date to be replaced")
		}
		if !bytes.Contains(out, []byte(prefix+"2025-12-09</div>")) {
			t.Errorf("unexpected output %s", out)
		}
		if len(out) != len(testTemplate) {
			t.Error("only the date token may change")
		}
	})

	t.Run("requires a full date after the prefix", func(t *testing.T) {
		t.Parallel()
		src := []byte(prefix + "2025-1-2</div>")
		out, ok := ReplaceDate(src, prefix, "2025-12-09")
		if ok || !bytes.Equal(out, src) {
			t.Error("expected no replacement")
		}
	})

	t.Run("only the header element is searched", func(t *testing.T) {
		t.Parallel()
		src := []byte(`<p>Market Research Team @ 2025-11-25</p>` +
			`<div class="meta">Market Research Team @ 2025-12-02</div>`)
		out, ok := ReplaceDate(src, "Market Research Team @ ", "2025-12-09")
		if !ok {
			t.Fatal("expected date to be replaced")
		}
		want := `<p>Market Research Team @ 2025-11-25</p>` +
			`<div class="meta">Market Research Team @ 2025-12-09</div>`
		if string(out) != want {
			t.Errorf("unexpected output %q", out)
		}
	})

	t.Run("prefix outside the header element is not replaced", func(t *testing.T) {
		t.Parallel()
		src := []byte(`<div class="meta">Weekly</div><p>Market Research Team @ 2025-12-02</p>`)
		out, ok := ReplaceDate(src, "Market Research Team @ ", "2025-12-09")
		if ok || !bytes.Equal(out, src) {
			t.Errorf("expected no replacement, got %q", out)
		}
	})

	t.Run("prefix metacharacters are literal", func(t *testing.T) {
		t.Parallel()
		src := []byte("axb 2025-01-01 a.b 2025-01-01")
		out, ok := ReplaceDate(src, "a.b ", "2026-10-16")
		if !ok {
			t.Fatal("expected replacement")
		}
		if string(out) != "axb 2025-01-01 a.b 2026-10-16" {
			t.Errorf("unexpected output %q", out)
		}
	})
}
