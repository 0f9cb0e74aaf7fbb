// Package xmlutil escapes user text before it is embedded in XML-delimited
// prompt sections.
package xmlutil

import (
	"encoding/xml"
	"strings"
)

// Escape replaces characters with special meaning in XML so user content
// cannot close or open prompt sections.
func Escape(s string) string {
	var buf strings.Builder
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		// EscapeText only fails on invalid UTF-8.
		return s
	}
	return buf.String()
}

// Section renders content escaped inside <tag>...</tag>.
func Section(tag, content string) string {
	var b strings.Builder
	b.Grow(len(tag)*2 + len(content) + 5)
	b.WriteString("<")
	b.WriteString(tag)
	b.WriteString(">")
	b.WriteString(Escape(content))
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteString(">")
	return b.String()
}
