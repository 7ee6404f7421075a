// Package event defines the input events that flow from a surface into the
// binding manager.
//
// Kind is a closed set of event discriminators, each with a canonical name
// (Closed, KeyPressed, ...). Event is an immutable value carrying the kind
// and whatever payload that kind has.
//
// # Matching
//
// An Event also describes what an order waits for. Event.Matches applies
// the kind-specific rule:
//
//   - kinds must be equal
//   - Closed, LostFocus and GainedFocus match on kind alone
//   - KeyPressed and KeyReleased also need the same key code and the same
//     alt, ctrl, shift and system flags
//   - any other kind never matches
//
// Unknown kinds are ignored rather than rejected so that new surfaces can
// emit events older bindings know nothing about.
package event
