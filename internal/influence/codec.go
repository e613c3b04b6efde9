// Package influence formats and parses the influence line embedded in a
// document body: a contiguous run of link markers such as
// "[Moth](:/abc123) ⬩ [Candle](:/def456) ⬩".
package influence

import (
	"fmt"
	"regexp"
	"strings"
)

// Separator terminates every link marker.
const Separator = "⬩"

var (
	markerRe    = regexp.MustCompile(`\[[^\]]*\]\([^)]*\) *` + Separator)
	extensionRe = regexp.MustCompile(`^ *\[[^\]]*\]\([^)]*\) *` + Separator)
)

// Format returns the canonical marker for one influence reference.
func Format(title, id string) string {
	return fmt.Sprintf("[%s](:/%s) %s", title, id, Separator)
}

// Located is the decomposition of a body around its influence line.
type Located struct {
	Prefix string
	Line   string
	Suffix string
}

// Locate finds the influence line in body: the run starting at the first link
// marker, extended forward through consecutive markers, ending right after the
// last separator before any non-marker trailing text. The second return is
// false when no marker exists anywhere in the body.
func Locate(body string) (Located, bool) {
	loc := markerRe.FindStringIndex(body)
	if loc == nil {
		return Located{}, false
	}
	start, end := loc[0], loc[1]
	for {
		m := extensionRe.FindStringIndex(body[end:])
		if m == nil {
			break
		}
		end += m[1]
	}
	return Located{
		Prefix: body[:start],
		Line:   body[start:end],
		Suffix: body[end:],
	}, true
}

// ContainsID reports whether the raw identifier occurs anywhere in the line.
// Intentionally a loose substring check, not a structural parse.
func (l Located) ContainsID(id string) bool {
	return strings.Contains(l.Line, id)
}

// Append adds a link marker to body's influence line, or starts a new line at
// the top of the body when none exists.
func Append(body, link string) string {
	l, ok := Locate(body)
	if !ok {
		return link + "\n\n" + body
	}
	return l.Prefix + l.Line + " " + link + l.Suffix
}
