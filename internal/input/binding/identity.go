package binding

import (
	"sort"
	"strconv"
	"strings"
)

// Owner is a handle identifying one consumer of the manager for its
// lifetime. The zero Owner is never issued.
type Owner struct {
	index uint32
	gen   uint32
}

// IsZero reports whether o is the zero handle.
func (o Owner) IsZero() bool {
	return o.gen == 0
}

// String renders the handle as "index.generation". The rendering never
// contains ':' so identity keys split unambiguously.
func (o Owner) String() string {
	return strconv.FormatUint(uint64(o.index), 10) + "." + strconv.FormatUint(uint64(o.gen), 10)
}

// KeySeparator joins a binding name and an owner token in a Key.
const KeySeparator = ":"

// Key identifies one (owner, binding name) pair. Orders and callbacks are
// stored under it.
type Key string

// MakeKey derives the identity key for a binding name chosen by an owner.
// Two live owners never share a handle, so their keys differ even when
// they choose the same name.
func MakeKey(owner Owner, name string) Key {
	return Key(name + KeySeparator + owner.String())
}

// Split returns the binding name and the owner token of k.
func (k Key) Split() (name, owner string) {
	s := string(k)
	i := strings.LastIndex(s, KeySeparator)
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i+1:]
}

// Name returns the binding name part of k.
func (k Key) Name() string {
	name, _ := k.Split()
	return name
}

// Less orders handles by slot index, then generation.
func (o Owner) Less(other Owner) bool {
	if o.index != other.index {
		return o.index < other.index
	}
	return o.gen < other.gen
}

func sortOwners(owners []Owner) {
	sort.Slice(owners, func(i, j int) bool { return owners[i].Less(owners[j]) })
}
