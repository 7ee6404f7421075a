package binding

import (
	"sort"

	"github.com/dshills/tickbind/internal/event"
)

// Order pairs an identity key with the event it waits for.
type Order struct {
	// Key identifies the owner and binding name.
	Key Key

	// Event describes what the order matches.
	Event event.Event

	// Source is the file the order was loaded from.
	Source string
}

// BindingTable is a multimap from identity key to orders. Orders are kept
// sorted by key; orders under the same key keep their insertion order, so
// iteration is stable across ticks.
type BindingTable struct {
	orders []Order
}

// NewBindingTable creates an empty table.
func NewBindingTable() *BindingTable {
	return &BindingTable{}
}

// Add inserts an order after any existing orders with the same key.
func (t *BindingTable) Add(o Order) {
	i := sort.Search(len(t.orders), func(i int) bool {
		return t.orders[i].Key > o.Key
	})
	t.orders = append(t.orders, Order{})
	copy(t.orders[i+1:], t.orders[i:])
	t.orders[i] = o
}

// RemoveAll removes every order whose key equals k and returns how many
// were removed. Matching is on the exact key only.
func (t *BindingTable) RemoveAll(k Key) int {
	lo, hi := t.span(k)
	if lo == hi {
		return 0
	}
	t.orders = append(t.orders[:lo], t.orders[hi:]...)
	return hi - lo
}

// RemoveFrom removes the orders under k that were loaded from source and
// returns how many were removed. Orders under k from other files stay.
func (t *BindingTable) RemoveFrom(k Key, source string) int {
	lo, hi := t.span(k)
	kept := lo
	for i := lo; i < hi; i++ {
		if t.orders[i].Source != source {
			t.orders[kept] = t.orders[i]
			kept++
		}
	}
	if kept == hi {
		return 0
	}
	t.orders = append(t.orders[:kept], t.orders[hi:]...)
	return hi - kept
}

// Get returns a copy of the orders stored under k.
func (t *BindingTable) Get(k Key) []Order {
	lo, hi := t.span(k)
	if lo == hi {
		return nil
	}
	out := make([]Order, hi-lo)
	copy(out, t.orders[lo:hi])
	return out
}

// Has reports whether any order is stored under k.
func (t *BindingTable) Has(k Key) bool {
	lo, hi := t.span(k)
	return hi > lo
}

// Len returns the number of orders.
func (t *BindingTable) Len() int {
	return len(t.orders)
}

// At returns the order at position i in iteration order.
func (t *BindingTable) At(i int) Order {
	return t.orders[i]
}

// All returns a copy of every order in iteration order.
func (t *BindingTable) All() []Order {
	out := make([]Order, len(t.orders))
	copy(out, t.orders)
	return out
}

// Clear removes all orders.
func (t *BindingTable) Clear() {
	t.orders = nil
}

func (t *BindingTable) span(k Key) (int, int) {
	lo := sort.Search(len(t.orders), func(i int) bool {
		return t.orders[i].Key >= k
	})
	hi := lo
	for hi < len(t.orders) && t.orders[hi].Key == k {
		hi++
	}
	return lo, hi
}
