// Package key defines keyboard key codes and modifier flags.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Key: a closed enumeration of physical keys with canonical names
//   - Modifier: the four independent modifier flags (Alt, Ctrl, Shift, System)
//
// # Names
//
// Every Key has exactly one canonical name ("A", "Num1", "Space", "F5").
// Binding files refer to keys by these names and FromName resolves them
// through an explicit table, never by position in a data file. Use
// Table to obtain the built-in name list and VerifyTable to check that an
// externally supplied list only names keys that exist.
//
// # Modifiers
//
// Binding files spell modifiers as lower-case tokens: alt, ctrl, shift,
// system. They are order-insensitive and each is optional.
package key
