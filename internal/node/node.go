// Package node implements the Chord ring participant: routing lookups,
// the join/leave protocol, notification handlers, and the stabilization
// loop that keeps routing state converging as peers come and go.
package node

import (
	dhtv1 "ChordDHT/internal/api/dht/v1"
	"ChordDHT/internal/client"
	"ChordDHT/internal/domain"
	"ChordDHT/internal/logger"
	"ChordDHT/internal/routingtable"
	"context"
	"sync"
)

// Node is a single Chord ring participant. It owns a RoutingTable (the
// passive routing state) and a client.Pool (pooled RPC connections to
// neighbors), and exposes the lookup/join/leave/notify operations that
// both the gRPC service and the stabilization loop drive.
type Node struct {
	lgr logger.Logger
	cp  *client.Pool
	rt  *routingtable.RoutingTable

	mu     sync.RWMutex
	active bool

	// joined is closed exactly once, the first time this node adopts
	// a predecessor after join. Storage layers above routing (out of
	// scope here) watch it to trigger key handoff.
	joined     chan struct{}
	joinedOnce sync.Once
}

// New constructs a Node around an already-initialized routing table
// and client pool. The node starts inactive; call Join to form or
// attach to a ring.
func New(rt *routingtable.RoutingTable, cp *client.Pool, opts ...Option) *Node {
	n := &Node{
		lgr:    &logger.NopLogger{},
		cp:     cp,
		rt:     rt,
		joined: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Self returns this node's own descriptor.
func (n *Node) Self() *domain.Node {
	return n.rt.Self()
}

// Space returns the identifier space this node's ring uses.
func (n *Node) Space() domain.Space {
	return n.rt.Space()
}

// Active reports whether the node currently considers itself an
// active ring member. False after a failed join, after leave, or
// after stabilization finds itself isolated.
func (n *Node) Active() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.active
}

func (n *Node) setActive(v bool) {
	n.mu.Lock()
	n.active = v
	n.mu.Unlock()
}

// Joined returns a channel that closes exactly once, the first time
// this node adopts a predecessor after joining the ring.
func (n *Node) Joined() <-chan struct{} {
	return n.joined
}

func (n *Node) fireJoined() {
	n.joinedOnce.Do(func() { close(n.joined) })
}

// IsAlone reports whether this node believes it is the only member
// of the ring: both predecessor and successor point at self. A
// singleton that has not yet received its first self-notify returns
// false, since predecessor is still nil at that point.
func (n *Node) IsAlone() bool {
	self := n.rt.Self()
	pred := n.rt.GetPredecessor()
	succ := n.rt.FirstSuccessor()
	return pred != nil && succ != nil && pred.ID.Equal(self.ID) && succ.ID.Equal(self.ID)
}

// Successor returns this node's current successor (finger[0]).
func (n *Node) Successor() *domain.Node {
	return n.rt.FirstSuccessor()
}

// Predecessor returns this node's current predecessor, or nil if none
// is known yet.
func (n *Node) Predecessor() *domain.Node {
	return n.rt.GetPredecessor()
}

// SuccessorList returns this node's current successor list.
func (n *Node) SuccessorList() []*domain.Node {
	return n.rt.SuccessorList()
}

// dialOrGet returns a client for addr, preferring an already-pooled
// (reference-counted) connection and falling back to an ephemeral
// one-shot dial. The returned cleanup func must always be called.
func (n *Node) dialOrGet(addr string) (dhtv1.DHTClient, func(), error) {
	if cli, err := n.cp.Get(addr); err == nil {
		return cli, func() {}, nil
	}
	cli, conn, err := n.cp.DialEphemeral(addr)
	if err != nil {
		return nil, nil, err
	}
	return cli, func() { conn.Close() }, nil
}

// alive probes whether node is reachable. Self is always considered
// alive without a network round trip. It backs both
// RoutingTable.ClosestPrecedingFinger's liveness probe and the
// maintenance loop's own checks.
func (n *Node) alive(node *domain.Node) bool {
	if node == nil {
		return false
	}
	if node.ID.Equal(n.rt.Self().ID) {
		return true
	}
	cli, closeFn, err := n.dialOrGet(node.Addr)
	if err != nil {
		return false
	}
	defer closeFn()

	ctx, cancel := context.WithTimeout(context.Background(), n.cp.FailureTimeout())
	defer cancel()
	return client.Ping(ctx, cli, node.Addr) == nil
}
