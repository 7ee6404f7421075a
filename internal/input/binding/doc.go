// Package binding maps named interests of independent owners onto input
// events and dispatches matching events to the owners' callbacks.
//
// # Owners and keys
//
// Every consumer first obtains an Owner handle from NewOwner. A handle is
// never reissued, so a released owner's keys cannot collide with a new
// owner created in the same tick. The identity key of a binding is the
// binding name joined to the owner handle with KeySeparator:
//
//	jump:3.1
//
// Two owners may therefore use the same binding name without interfering.
//
// # Orders and callbacks
//
// An order is a (key, event) pair loaded from a binding file. A callback is
// the handler registered for a key. Callbacks are bound and unbound
// immediately. Orders are only added or removed by Reconcile, which applies
// queued forgets before queued loads:
//
//	o := m.NewOwner()
//	m.BindCallback(o, "jump", binding.HandlerFunc(onJump))
//	m.RequestLoad(o, "resources/bindings/player")
//	...
//	m.Reconcile() // once per tick, before dispatch
//	m.Handle(ev)
//
// An order whose key is pending removal never fires, even before the
// reconciliation that removes it. An order that matches while no callback
// is registered under its key is a contract violation; Handle reports it as
// a *ContractViolationError and the driving loop treats it as fatal.
//
// # Binding files
//
// The line format holds one binding per line:
//
//	/ comment
//	window_close Closed
//	jump KeyPressed Space
//	save KeyPressed S ctrl
//
// Files ending in .yaml or .yml use an equivalent YAML document; see
// Parser.ParseYAML.
package binding
