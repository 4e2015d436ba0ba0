package render

// SummaryLabel is the bold label that opens every summary callout.
const SummaryLabel = "小结："

// CalloutContent renders the inner content of a summary callout.
func CalloutContent(text string) string {
	return "<strong>" + SummaryLabel + "</strong> " + text
}

// Callout renders a complete summary callout element.
func Callout(text string) string {
	return `<div class="callout">` + CalloutContent(text) + `</div>`
}
