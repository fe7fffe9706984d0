// Package code parses dot-delimited account codes like "410.1.2" and
// derives parent codes from them. Parent/child position is encoded
// entirely in the code string: a child is its parent's code plus exactly
// one trailing segment.
package code

import (
	"fmt"
	"strings"
)

// Code is an ordered sequence of account code segments.
type Code []string

// MalformedCodeError reports a code string that cannot be split into
// non-empty segments.
type MalformedCodeError struct {
	Raw string
}

func (e MalformedCodeError) Error() string {
	return fmt.Sprintf("malformed account code %q: empty segment", e.Raw)
}

// Parse splits a code string on ".". Leading, trailing, or doubled dots
// produce a MalformedCodeError.
func Parse(raw string) (Code, error) {
	segments := strings.Split(raw, ".")
	for _, seg := range segments {
		if seg == "" {
			return nil, MalformedCodeError{Raw: raw}
		}
	}
	return Code(segments), nil
}

// String joins the segments back into the dot-delimited form.
func (c Code) String() string {
	return strings.Join(c, ".")
}

// Depth returns the number of segments.
func (c Code) Depth() int {
	return len(c)
}

// Parent returns the code with its last segment removed. Single-segment
// codes are roots and have no parent.
func (c Code) Parent() (Code, bool) {
	if len(c) <= 1 {
		return nil, false
	}
	return c[:len(c)-1], true
}

// ChildOf reports whether c is a direct child of parent: same segments
// plus exactly one trailing segment.
func (c Code) ChildOf(parent Code) bool {
	if len(c) != len(parent)+1 {
		return false
	}
	for i, seg := range parent {
		if c[i] != seg {
			return false
		}
	}
	return true
}
