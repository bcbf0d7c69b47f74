package cfiloc

import (
	"fmt"
	"strings"
)

// FormatMatch renders a match and its CFI range as a human-readable report.
func FormatMatch(m *Match) string {
	if m == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("Query found:\n")
	fmt.Fprintf(&b, "Start index: %d\n", m.StartIndex)
	fmt.Fprintf(&b, "End index: %d\n", m.EndIndex)
	fmt.Fprintf(&b, "Start paragraph: %s\n", m.StartText)
	fmt.Fprintf(&b, "End paragraph: %s\n", m.EndText)
	fmt.Fprintf(&b, "Start CFI: %s\n", m.StartLocation)
	fmt.Fprintf(&b, "End CFI: %s\n", m.EndLocation)
	fmt.Fprintf(&b, "Start offset in paragraph: %d\n", m.StartOffset)
	fmt.Fprintf(&b, "End offset in paragraph: %d\n", m.EndOffset)
	fmt.Fprintf(&b, "Formatted CFI: %s", m.Range())
	return b.String()
}
