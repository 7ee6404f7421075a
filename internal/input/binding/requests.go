package binding

import "sort"

// forgetRequest is a pending removal of every order under one key.
type forgetRequest struct {
	owner Owner
	name  string
}

// loadRequest is a pending parse of one binding file for one owner.
type loadRequest struct {
	owner Owner
	file  string
}

// replaceRequest swaps the orders one owner loaded from one file for a set
// parsed when the reload was requested.
type replaceRequest struct {
	owner    Owner
	path     string
	bindings []Binding
}

// RequestQueue buffers binding changes until the next reconciliation.
// Removals are applied first, then replacements, then loads.
type RequestQueue struct {
	deletes  map[Key]forgetRequest
	replaces []replaceRequest
	loads    []loadRequest
}

// NewRequestQueue creates an empty queue.
func NewRequestQueue() *RequestQueue {
	return &RequestQueue{deletes: make(map[Key]forgetRequest)}
}

// RequestLoad queues file to be parsed into orders for owner. Several files
// may be queued for the same owner; all of them are loaded, in order.
func (q *RequestQueue) RequestLoad(owner Owner, file string) {
	q.loads = append(q.loads, loadRequest{owner: owner, file: file})
}

// RequestForget marks the key for (owner, name) for removal.
func (q *RequestQueue) RequestForget(owner Owner, name string) Key {
	k := MakeKey(owner, name)
	q.deletes[k] = forgetRequest{owner: owner, name: name}
	return k
}

// requestReplace queues bindings to replace what owner loaded from path.
// A later request for the same owner and path supersedes an earlier one.
func (q *RequestQueue) requestReplace(owner Owner, path string, bindings []Binding) {
	req := replaceRequest{owner: owner, path: path, bindings: bindings}
	for i, r := range q.replaces {
		if r.owner == owner && r.path == path {
			q.replaces[i] = req
			return
		}
	}
	q.replaces = append(q.replaces, req)
}

// IsPendingDelete reports whether orders under k are marked for removal.
func (q *RequestQueue) IsPendingDelete(k Key) bool {
	_, ok := q.deletes[k]
	return ok
}

// PendingDeletes returns the number of keys marked for removal.
func (q *RequestQueue) PendingDeletes() int {
	return len(q.deletes)
}

// PendingLoads returns the number of queued file loads.
func (q *RequestQueue) PendingLoads() int {
	return len(q.loads)
}

// PendingReloads returns the number of queued file replacements.
func (q *RequestQueue) PendingReloads() int {
	return len(q.replaces)
}

// Empty reports whether nothing is queued.
func (q *RequestQueue) Empty() bool {
	return len(q.deletes) == 0 && len(q.replaces) == 0 && len(q.loads) == 0
}

// takeDeletes empties the delete set and returns its requests sorted by key.
func (q *RequestQueue) takeDeletes() []forgetRequest {
	if len(q.deletes) == 0 {
		return nil
	}
	keys := make([]Key, 0, len(q.deletes))
	for k := range q.deletes {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	out := make([]forgetRequest, len(keys))
	for i, k := range keys {
		out[i] = q.deletes[k]
	}
	q.deletes = make(map[Key]forgetRequest)
	return out
}

// takeReplaces empties the replacement list and returns it in request order.
func (q *RequestQueue) takeReplaces() []replaceRequest {
	replaces := q.replaces
	q.replaces = nil
	return replaces
}

// takeLoads empties the load list and returns it in request order.
func (q *RequestQueue) takeLoads() []loadRequest {
	loads := q.loads
	q.loads = nil
	return loads
}

// clear drops everything queued.
func (q *RequestQueue) clear() {
	q.deletes = make(map[Key]forgetRequest)
	q.replaces = nil
	q.loads = nil
}
