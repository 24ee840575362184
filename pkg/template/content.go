package template

import "strings"

// DefaultMarker is the prefix that flags a string element for patching
const DefaultMarker = "//nex"

// Content is the decoded text of a string element. It is either unmarked
// text, left alone, or a marked payload whose paths get rewritten.
type Content struct {
	marked bool
	text   string
	marker string
}

// Decode classifies text against marker. An empty marker marks nothing.
func Decode(marker, text string) Content {
	if marker != "" && strings.HasPrefix(text, marker) {
		return Content{marked: true, text: text, marker: marker}
	}
	return Content{text: text}
}

// Marked reports whether the content carried the marker
func (c Content) Marked() bool {
	return c.marked
}

// Payload returns the text after the marker, or the whole text when unmarked
func (c Content) Payload() string {
	if !c.marked {
		return c.text
	}
	return c.text[len(c.marker):]
}

// Text returns the original text, marker included
func (c Content) Text() string {
	return c.text
}
