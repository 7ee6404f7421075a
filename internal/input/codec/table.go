// Package codec loads the ordered name tables that translate between
// enumerated event values and the names used in binding files.
//
// A table file holds one name per line. Blank lines and lines whose first
// character is '/' are ignored; the 0-based position of a name among the
// remaining lines is its index.
package codec

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// CommentMarker starts a comment line in table and binding files.
const CommentMarker = '/'

// Table is an ordered list of names; position is the enumerated value.
// A Table is read-only once loaded.
type Table []string

// LoadTable reads a table from path.
// Fails with an error wrapping ErrIO if the file cannot be opened.
func LoadTable(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, IOError(path, err)
	}
	defer f.Close()

	return parse(path, f)
}

// Parse reads a table from r. Source names r in error messages.
func Parse(source string, r io.Reader) (Table, error) {
	return parse(source, r)
}

func parse(source string, r io.Reader) (Table, error) {
	var t Table
	seen := make(map[string]int)

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if IsSkippable(line) {
			continue
		}
		if first, dup := seen[line]; dup {
			return nil, ParseError(source, lineNo, "duplicate name %q (first on line %d)", line, first)
		}
		seen[line] = lineNo
		t = append(t, line)
	}
	if err := sc.Err(); err != nil {
		return nil, IOError(source, err)
	}
	return t, nil
}

// IsSkippable reports whether a trimmed line is blank or a comment.
func IsSkippable(line string) bool {
	return line == "" || line[0] == CommentMarker
}

// NameToIndex returns the position of name in the table.
func (t Table) NameToIndex(name string) (int, bool) {
	for i, n := range t {
		if n == name {
			return i, true
		}
	}
	return -1, false
}

// IndexToName returns the name at position i.
func (t Table) IndexToName(i int) (string, bool) {
	if i < 0 || i >= len(t) {
		return "", false
	}
	return t[i], true
}

// Contains reports whether name is present in the table.
func (t Table) Contains(name string) bool {
	_, ok := t.NameToIndex(name)
	return ok
}

// Len returns the number of names.
func (t Table) Len() int {
	return len(t)
}
