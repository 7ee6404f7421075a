package key

import (
	"fmt"

	"github.com/dshills/tickbind/internal/input/codec"
)

// Table returns the built-in key name table in enumeration order.
func Table() codec.Table {
	return codec.Table(Names())
}

// VerifyTable checks that every name in t is a canonical key name.
// A table naming a key that does not exist is rejected so that drift
// between a data file and this enumeration fails loudly at startup.
func VerifyTable(source string, t codec.Table) error {
	for i, name := range t {
		if _, ok := FromName(name); !ok {
			hint := ""
			if s := Suggest(name); s != "" {
				hint = fmt.Sprintf(" (did you mean %q?)", s)
			}
			return &codec.FileError{
				Path: source,
				Err:  fmt.Errorf("%w: entry %d: unknown key name %q%s", codec.ErrParse, i, name, hint),
			}
		}
	}
	return nil
}
