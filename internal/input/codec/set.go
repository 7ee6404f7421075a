package codec

// Set holds the two tables a binding parser needs.
type Set struct {
	// Kinds lists the event kind names binding files may use.
	Kinds Table

	// Keys lists the key names binding files may use.
	Keys Table
}

// LoadSet loads the kind and key tables from their files.
func LoadSet(kindsPath, keysPath string) (Set, error) {
	kinds, err := LoadTable(kindsPath)
	if err != nil {
		return Set{}, err
	}
	keys, err := LoadTable(keysPath)
	if err != nil {
		return Set{}, err
	}
	return Set{Kinds: kinds, Keys: keys}, nil
}
