// Package jsontree edits and renders arbitrary JSON documents addressed by paths
// such as jobs[2].title.
package jsontree

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment is one step of a Path: a Key into an object or an Index into an array.
type Segment interface {
	segment()
	String() string
}

type Key string

type Index int

func (Key) segment()   {}
func (Index) segment() {}

func (k Key) String() string {
	if isPlainKey(string(k)) {
		return string(k)
	}
	return "[" + strconv.Quote(string(k)) + "]"
}

func (i Index) String() string { return "[" + strconv.Itoa(int(i)) + "]" }

// Path addresses a node inside a document. The empty path is the root.
type Path []Segment

// String renders p in dotted form, quoting keys that are not plain identifiers.
func (p Path) String() string {
	var b strings.Builder
	for i, s := range p {
		k, isKey := s.(Key)
		if isKey && isPlainKey(string(k)) && i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s.String())
	}
	return b.String()
}

// Child returns a copy of p extended by s.
func (p Path) Child(s Segment) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, s)
}

// ParsePath parses the dotted form produced by Path.String.
func ParsePath(s string) (Path, error) {
	var p Path
	i := 0
	expectKey := true
	for i < len(s) {
		switch c := s[i]; {
		case c == '[':
			end, seg, err := parseBracket(s, i)
			if err != nil {
				return nil, err
			}
			p = append(p, seg)
			i = end
			expectKey = false
		case c == '.':
			if expectKey || i+1 >= len(s) || s[i+1] == '[' {
				return nil, fmt.Errorf("path %q: unexpected '.' at %d", s, i)
			}
			i++
			expectKey = true
		default:
			if !expectKey {
				return nil, fmt.Errorf("path %q: expected '.' or '[' at %d", s, i)
			}
			j := i
			for j < len(s) && s[j] != '.' && s[j] != '[' && s[j] != ']' {
				j++
			}
			if j < len(s) && s[j] == ']' {
				return nil, fmt.Errorf("path %q: unbalanced ']' at %d", s, j)
			}
			p = append(p, Key(s[i:j]))
			i = j
			expectKey = false
		}
	}
	if expectKey && len(s) > 0 {
		return nil, fmt.Errorf("path %q: trailing separator", s)
	}
	return p, nil
}

func parseBracket(s string, start int) (int, Segment, error) {
	rest := s[start+1:]
	if strings.HasPrefix(rest, `"`) {
		q, err := strconv.QuotedPrefix(rest)
		if err != nil {
			return 0, nil, fmt.Errorf("path %q: bad quoted key at %d", s, start)
		}
		key, _ := strconv.Unquote(q)
		end := start + 1 + len(q)
		if end >= len(s) || s[end] != ']' {
			return 0, nil, fmt.Errorf("path %q: missing ']' at %d", s, end)
		}
		return end + 1, Key(key), nil
	}
	end := strings.IndexByte(rest, ']')
	if end < 0 {
		return 0, nil, fmt.Errorf("path %q: missing ']' after %d", s, start)
	}
	digits := rest[:end]
	if !isCanonicalIndex(digits) {
		return 0, nil, fmt.Errorf("path %q: invalid index %q", s, digits)
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, nil, fmt.Errorf("path %q: invalid index %q", s, digits)
	}
	return start + 1 + end + 1, Index(n), nil
}

// isCanonicalIndex accepts the decimal digits Index.String emits: no sign,
// no leading zeros.
func isCanonicalIndex(d string) bool {
	if d == "" || (len(d) > 1 && d[0] == '0') {
		return false
	}
	for i := 0; i < len(d); i++ {
		if d[i] < '0' || d[i] > '9' {
			return false
		}
	}
	return true
}

func isPlainKey(k string) bool {
	if k == "" {
		return false
	}
	for _, r := range k {
		if r == '.' || r == '[' || r == ']' || r == '"' {
			return false
		}
	}
	return true
}
