// Package lua runs scripted binding owners on gopher-lua.
//
// A script is an owner like any other: it gets its own handle from the
// binding manager, binds callbacks and requests binding files. The script
// sees a global tickbind table:
//
//	tickbind.load("player")              -- queue a binding file
//	tickbind.bind("jump", function(ev)   -- register a callback
//	    tickbind.log("jump " .. ev.key)
//	end)
//	tickbind.forget("jump")              -- queue removal of the orders
//	tickbind.unbind("jump")              -- forget the orders, drop the callback now
//
// Callbacks receive a table with the event fields: kind, key, alt, ctrl,
// shift, system, rune, width, height, x, y, delta and text.
//
// Only the base, table, string and math libraries are opened, and
// dofile and loadfile are removed from base.
package lua
