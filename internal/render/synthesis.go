package render

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// FullWidthColon separates a synthesis point's title from its body.
const FullWidthColon = "："

// SynthesisStyle selects how points without a title are rendered.
//
// The generator has always emitted such points as plain items while the
// updater numbers them. Both behaviours are kept behind one renderer so the
// difference is a named, testable choice instead of two diverging copies.
type SynthesisStyle string

const (
	// SynthesisPlain renders a point without a colon as <li>point</li>.
	SynthesisPlain SynthesisStyle = "plain"

	// SynthesisNumbered renders a point without a colon as
	// <li><strong>要点N：</strong>point</li> and keeps points that already
	// contain <strong> markup untouched.
	SynthesisNumbered SynthesisStyle = "numbered"
)

// ErrInvalidSynthesisStyle is returned by ParseSynthesisStyle for unknown names.
var ErrInvalidSynthesisStyle = errors.New("invalid synthesis style: must be plain or numbered")

// ParseSynthesisStyle converts a configuration value into a SynthesisStyle.
func ParseSynthesisStyle(s string) (SynthesisStyle, error) {
	switch SynthesisStyle(strings.ToLower(strings.TrimSpace(s))) {
	case SynthesisPlain:
		return SynthesisPlain, nil
	case SynthesisNumbered:
		return SynthesisNumbered, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSynthesisStyle, s)
	}
}

// ListItem renders one synthesis point. index is the 1-based position of the
// point and is only used by SynthesisNumbered.
func ListItem(point string, index int, style SynthesisStyle) string {
	if style == SynthesisNumbered && strings.Contains(point, "<strong>") {
		return "    <li>" + point + "</li>\n"
	}
	if title, body, ok := strings.Cut(point, FullWidthColon); ok {
		return "    <li><strong>" + title + FullWidthColon + "</strong>" + body + "</li>\n"
	}
	if style == SynthesisNumbered {
		return "    <li><strong>要点" + strconv.Itoa(index) + FullWidthColon + "</strong>" + point + "</li>\n"
	}
	return "    <li>" + point + "</li>\n"
}

// ListItems renders all points in order.
func ListItems(points []string, style SynthesisStyle) string {
	var sb strings.Builder
	for i, p := range points {
		sb.WriteString(ListItem(p, i+1, style))
	}
	return sb.String()
}

// ListBody wraps items produced by ListItems as <ol> content.
func ListBody(items string) string {
	return "\n" + items
}
