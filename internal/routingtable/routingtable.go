package routingtable

import (
	"ChordDHT/internal/domain"
	"ChordDHT/internal/logger"
	"fmt"
	"sync"
)

// routingEntry represents a single entry in the routing table.
//
// Each entry holds a reference to a domain.Node and provides
// thread-safe access through a read/write mutex. The type is
// defined as a struct to allow future extensions (e.g., storing
// metadata, timestamps, or health information about the node).
type routingEntry struct {
	// node is the domain-level node stored in this entry.
	// It can be read and updated concurrently using mu.
	node *domain.Node

	// mu synchronizes access to node, ensuring safe
	// concurrent reads and writes.
	mu sync.RWMutex
}

// RoutingTable represents the routing state of a node on the Chord ring:
// the finger table, the successor list, and the predecessor pointer.
// It is owned by a single node (self) and maintained through the
// stabilization protocol.
//
// Fields:
//   - logger: used for structured logging of routing operations.
//   - space: identifier space configuration (bit-length and successor list size).
//   - self: the local node that owns this routing table.
//   - successorList: a list of R successors, providing redundancy
//     and fault tolerance against node failures.
//   - predecessor: the immediate predecessor of this node on the ring.
//   - fingers: the finger table, length M (space.Bits). fingers[i] points
//     to the node owning finger_start(i) = (self.id + 2^i) mod 2^M.
//   - nextFinger: round-robin cursor used by fix_fingers to refresh one
//     slot per stabilization tick.
type RoutingTable struct {
	logger        logger.Logger   // logger for routing table operations
	space         domain.Space    // identifier space and successor list size
	self          *domain.Node    // the local node owning this routing table
	successorList []*routingEntry // R successors for fault tolerance
	succListSize  int             // configured size of the successor list
	predecessor   *routingEntry   // immediate predecessor in the ring
	fingers       []*routingEntry // finger table, length M
	nextFinger    int             // round-robin cursor for fix_fingers (protected by cursorMu)
	cursorMu      sync.Mutex
}

// New creates and initializes a new RoutingTable for the given node.
//
// The routing table is initialized with empty successor entries, an empty
// predecessor entry, and a finger table of length space.Bits. By default,
// logging is disabled (NopLogger) unless overridden with options.
//
// Arguments:
//   - self: the local node owning this routing table.
//   - space: the identifier space configuration (bit-length and successor list size).
//   - succListSize: the size of the successor list (typically O(log n)).
//   - opts: functional options to customize the routing table (logger).
//
// Returns:
//   - *RoutingTable: a pointer to the newly created routing table, with all
//     entries initialized but containing nil nodes until stabilization fills them.
func New(self *domain.Node, space domain.Space, succListSize int, opts ...Option) *RoutingTable {
	rt := &RoutingTable{
		self:          self,
		space:         space,
		successorList: make([]*routingEntry, succListSize), // successors initially nil
		succListSize:  succListSize,                         // configured size of the successor list
		predecessor:   &routingEntry{},                      // predecessor initially nil
		fingers:       make([]*routingEntry, space.Bits),     // finger table initially nil
		logger:        &logger.NopLogger{},                   // default: no logging
	}
	// Initialize successor list entries with empty routingEntry structs.
	for i := range rt.successorList {
		rt.successorList[i] = &routingEntry{}
	}
	// Initialize finger entries with empty routingEntry structs.
	for i := range rt.fingers {
		rt.fingers[i] = &routingEntry{}
	}
	// Apply functional options (custom logger).
	for _, opt := range opts {
		opt(rt)
	}
	// Log the creation of the routing table.
	rt.logger.Debug("routing table initialized")
	return rt
}

// InitSingleNode configures the routing table to represent a single-node ring.
//
// The successor list and finger table point at the local node itself;
// the predecessor is left nil, matching source semantics where a fresh
// singleton has no predecessor until its first self-notify (see
// Node.IsAlone and DESIGN.md).
//
// Per the reference implementation, the initial sweep only populates
// finger[0..M-2]; finger[M-1] is left unset until the first fix_fingers
// pass (see DESIGN.md).
func (rt *RoutingTable) InitSingleNode() {
	for i := range rt.successorList {
		rt.successorList[i] = &routingEntry{node: rt.self}
	}
	rt.predecessor = &routingEntry{}
	for i := 0; i < len(rt.fingers)-1; i++ {
		rt.fingers[i] = &routingEntry{node: rt.self}
	}
	rt.logger.Debug("routing table set to single-node ring")
}

// Space return the identifier space configuration of the ring.
func (rt *RoutingTable) Space() domain.Space {
	return rt.space
}

// Self returns the local node owning this routing table.
func (rt *RoutingTable) Self() *domain.Node {
	return rt.self
}

// SuccListSize returns the configured size of the successor list.
func (rt *RoutingTable) SuccListSize() int {
	return rt.succListSize
}

// GetSuccessor returns the i-th successor from the successor list.
//
// If the index is out of range or the entry does not contain a node,
// the method returns nil. Access is synchronized using a read lock
// to ensure thread-safe concurrent access.
func (rt *RoutingTable) GetSuccessor(i int) *domain.Node {
	if i < 0 || i >= len(rt.successorList) {
		rt.logger.Warn(
			"GetSuccessor: index out of range",
			logger.F("requested", i),
			logger.F("valid_range", fmt.Sprintf("[0..%d]", len(rt.successorList)-1)),
		)
		return nil
	}
	entry := rt.successorList[i]
	entry.mu.RLock()
	node := entry.node
	entry.mu.RUnlock()
	rt.logger.Debug("GetSuccessor: returning successor", logger.F("index", i), logger.FNode("successor", node))
	return node
}

// FirstSuccessor return the first successor in the successor list.
// It is a convenience method equivalent to GetSuccessor(0).
// If the successor list is empty or the first entry is nil, it returns nil.
func (rt *RoutingTable) FirstSuccessor() *domain.Node {
	return rt.GetSuccessor(0)
}

// SetSuccessor updates the i-th successor entry with the specified node.
//
// If the index is out of range, the method logs a warning and does nothing.
// The update is synchronized with a write lock to ensure thread-safe
// concurrent modifications.
func (rt *RoutingTable) SetSuccessor(i int, node *domain.Node) {
	if i < 0 || i >= len(rt.successorList) {
		rt.logger.Warn(
			"SetSuccessor: index out of range",
			logger.F("requested", i),
			logger.F("valid_range", fmt.Sprintf("[0..%d]", len(rt.successorList)-1)),
		)
		return
	}
	entry := rt.successorList[i]
	entry.mu.Lock()
	entry.node = node
	entry.mu.Unlock()
	rt.logger.Debug("SetSuccessor: updated successor", logger.F("index", i), logger.FNode("successor", node))
}

// SuccessorList returns a slice of all non-nil successors currently known
// in the routing table.
//
// Each successor entry is read under a read lock to ensure thread-safe access.
// The returned slice contains only initialized successors; entries with a nil
// node are skipped. Callers receive a shallow copy of the successor list and
// may safely modify it without affecting the internal state.
func (rt *RoutingTable) SuccessorList() []*domain.Node {
	out := make([]*domain.Node, 0, len(rt.successorList))
	for _, entry := range rt.successorList {
		entry.mu.RLock()
		node := entry.node
		entry.mu.RUnlock()
		if node != nil {
			out = append(out, node)
		}
	}
	return out
}

// SetSuccessorList replaces the entire successor list with the given slice.
//
// The provided slice must have the same length as the internal successor list.
// Each entry is updated under a write lock to ensure thread safety.
// If the slice length does not match, the method logs a warning and does nothing.
func (rt *RoutingTable) SetSuccessorList(nodes []*domain.Node) {
	if len(nodes) != len(rt.successorList) {
		rt.logger.Warn(
			"SetSuccessorList: length mismatch",
			logger.F("expected", len(rt.successorList)),
			logger.F("got", len(nodes)),
		)
		return
	}
	for i, node := range nodes {
		rt.SetSuccessor(i, node)
	}
	rt.logger.Debug("SetSuccessorList: successor list updated")
}

// PromoteCandidate restructures the successor list by promoting the
// successor at position i to the head of the list.
//
// Behavior:
//   - The node at index i becomes the new successor at position 0.
//   - All successors after position i are shifted forward,
//     preserving their relative order.
//   - All successors before position i are discarded.
//   - The list is padded with nil entries until it reaches
//     the configured successor list size.
//
// Parameters:
//   - i: the index of the candidate successor to promote.
//     If i <= 0 or out of range, the function does nothing.
func (rt *RoutingTable) PromoteCandidate(i int) {
	if i <= 0 || i >= rt.succListSize {
		rt.logger.Warn(
			"PromoteCandidate: invalid index",
			logger.F("requested", i),
			logger.F("valid_range", fmt.Sprintf("[1..%d]", rt.succListSize-1)),
		)
		return
	}
	candidate := rt.GetSuccessor(i)
	if candidate == nil {
		rt.logger.Warn(
			"PromoteCandidate: candidate is nil",
			logger.F("index", i),
		)
		return
	}
	// Build a new list: candidate + all successors after it
	newList := make([]*domain.Node, 0, rt.succListSize)
	newList = append(newList, candidate)
	for j := i + 1; j < rt.succListSize; j++ {
		if succ := rt.GetSuccessor(j); succ != nil {
			newList = append(newList, succ)
		}
	}
	// Pad the list with nil to reach the configured size
	for len(newList) < rt.succListSize {
		newList = append(newList, nil)
	}
	rt.SetSuccessorList(newList)
	rt.logger.Debug(
		"PromoteCandidate: successor promoted",
		logger.F("from_index", i),
		logger.FNode("candidate", candidate),
	)
}

// GetPredecessor return the current predecessor node.
// If the predecessor is not set, it returns nil.
// Access is synchronized with a read lock for thread safety.
func (rt *RoutingTable) GetPredecessor() *domain.Node {
	rt.predecessor.mu.RLock()
	node := rt.predecessor.node
	rt.predecessor.mu.RUnlock()
	return node
}

// SetPredecessor updates the predecessor pointer to the specified node.
// Access is synchronized with a write lock to ensure thread-safe updates.
func (rt *RoutingTable) SetPredecessor(node *domain.Node) {
	rt.predecessor.mu.Lock()
	rt.predecessor.node = node
	rt.predecessor.mu.Unlock()
	rt.logger.Debug(
		"SetPredecessor: predecessor updated",
		logger.FNode("predecessor", node),
	)
}

// GetFinger returns the node pointer stored at finger table slot i.
//
// If i is out of range, the method returns nil. Access is synchronized
// with a read lock to ensure thread-safe concurrent access.
func (rt *RoutingTable) GetFinger(i int) *domain.Node {
	if i < 0 || i >= len(rt.fingers) {
		rt.logger.Warn(
			"GetFinger: index out of range",
			logger.F("requested", i),
			logger.F("valid_range", fmt.Sprintf("[0..%d]", len(rt.fingers)-1)),
		)
		return nil
	}
	entry := rt.fingers[i]
	entry.mu.RLock()
	node := entry.node
	entry.mu.RUnlock()
	return node
}

// SetFinger updates finger table slot i with the given node.
//
// If i is out of range, the method logs a warning and does nothing.
func (rt *RoutingTable) SetFinger(i int, node *domain.Node) {
	if i < 0 || i >= len(rt.fingers) {
		rt.logger.Warn(
			"SetFinger: index out of range",
			logger.F("requested", i),
			logger.F("valid_range", fmt.Sprintf("[0..%d]", len(rt.fingers)-1)),
		)
		return
	}
	entry := rt.fingers[i]
	entry.mu.Lock()
	entry.node = node
	entry.mu.Unlock()
	rt.logger.Debug("SetFinger: entry updated", logger.F("index", i), logger.FNode("node", node))
}

// FingerList returns a slice of all non-nil finger entries currently known.
func (rt *RoutingTable) FingerList() []*domain.Node {
	out := make([]*domain.Node, 0, len(rt.fingers))
	for _, entry := range rt.fingers {
		entry.mu.RLock()
		node := entry.node
		entry.mu.RUnlock()
		if node != nil {
			out = append(out, node)
		}
	}
	return out
}

// NextFinger returns the current fix_fingers round-robin cursor and
// advances it (wrapping at M), so a full sweep takes M calls.
func (rt *RoutingTable) NextFinger() int {
	rt.cursorMu.Lock()
	defer rt.cursorMu.Unlock()
	i := rt.nextFinger
	rt.nextFinger = (rt.nextFinger + 1) % len(rt.fingers)
	return i
}

// ClosestPrecedingFinger scans finger[M-1] down to finger[0] and returns
// the first entry whose id lies strictly between self and id (using
// domain.ID.Between) and which passes the given liveness probe.
// If no finger qualifies, it returns self.
//
// alive is injected by the caller (the node/client layer) so that this
// package stays independent of the RPC transport.
func (rt *RoutingTable) ClosestPrecedingFinger(id domain.ID, alive func(*domain.Node) bool) *domain.Node {
	for i := len(rt.fingers) - 1; i >= 0; i-- {
		f := rt.GetFinger(i)
		if f == nil {
			continue
		}
		if f.ID.Between(rt.self.ID, id) && alive(f) {
			return f
		}
	}
	return rt.self
}

// DebugLog emits a structured DEBUG-level log entry containing a snapshot
// of the entire routing table: self, predecessor, successor list and
// finger table. Intended for debugging and monitoring; read-only.
func (rt *RoutingTable) DebugLog() {
	rt.predecessor.mu.RLock()
	pred := rt.predecessor.node
	rt.predecessor.mu.RUnlock()

	successors := make([]map[string]any, 0, len(rt.successorList))
	for i, entry := range rt.successorList {
		entry.mu.RLock()
		node := entry.node
		entry.mu.RUnlock()
		successors = append(successors, map[string]any{"index": i, "node": nodeDebugInfo(node)})
	}

	fingers := make([]map[string]any, 0, len(rt.fingers))
	for i, entry := range rt.fingers {
		entry.mu.RLock()
		node := entry.node
		entry.mu.RUnlock()
		fingers = append(fingers, map[string]any{"index": i, "node": nodeDebugInfo(node)})
	}

	rt.logger.Debug("routing table snapshot",
		logger.FNode("self", rt.self),
		logger.FNode("predecessor", pred),
		logger.F("successors", successors),
		logger.F("fingers", fingers),
	)
}

func nodeDebugInfo(n *domain.Node) any {
	if n == nil {
		return nil
	}
	return map[string]any{"id": n.ID.String(), "addr": n.Addr}
}
