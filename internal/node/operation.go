package node

import (
	"ChordDHT/internal/client"
	"ChordDHT/internal/ctxutil"
	"ChordDHT/internal/domain"
	"ChordDHT/internal/logger"
	"context"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ClosestPrecedingFinger scans the local finger table for the entry
// closest to, but not past, target, skipping fingers that fail the
// liveness probe. Falls back to self if no finger qualifies.
func (n *Node) ClosestPrecedingFinger(target domain.ID) *domain.Node {
	return n.rt.ClosestPrecedingFinger(target, n.alive)
}

// successorOf returns node's successor, dispatching locally if node
// is self and over RPC otherwise.
func (n *Node) successorOf(ctx context.Context, node *domain.Node) (*domain.Node, error) {
	if node.ID.Equal(n.rt.Self().ID) {
		return n.rt.FirstSuccessor(), nil
	}
	cli, closeFn, err := n.dialOrGet(node.Addr)
	if err != nil {
		return nil, fmt.Errorf("successor: %w", err)
	}
	defer closeFn()
	return client.Successor(ctx, cli, node.Addr)
}

// closestPrecedingFingerOf asks node (locally or over RPC) for the
// finger closest to target.
func (n *Node) closestPrecedingFingerOf(ctx context.Context, node *domain.Node, target domain.ID) (*domain.Node, error) {
	if node.ID.Equal(n.rt.Self().ID) {
		return n.ClosestPrecedingFinger(target), nil
	}
	cli, closeFn, err := n.dialOrGet(node.Addr)
	if err != nil {
		return nil, fmt.Errorf("closest_preceding_finger: %w", err)
	}
	defer closeFn()
	return client.ClosestPrecedingFinger(ctx, cli, node.Addr, target)
}

// FindSuccessor resolves the node responsible for target. If target
// falls in (self, successor], the local successor is the answer;
// otherwise the lookup is delegated to the closest preceding finger.
func (n *Node) FindSuccessor(ctx context.Context, target domain.ID) (*domain.Node, error) {
	if err := ctxutil.CheckContext(ctx); err != nil {
		return nil, err
	}

	self := n.rt.Self()
	ctx = ctxutil.EnsureTraceID(ctx, self.ID)
	succ := n.rt.FirstSuccessor()
	if succ == nil {
		return nil, status.Error(codes.Internal, "routing table not initialized")
	}
	if target.BetweenE(self.ID, succ.ID) {
		return succ, nil
	}

	next := n.ClosestPrecedingFinger(target)
	if next.ID.Equal(self.ID) {
		// No finger strictly precedes target: fall back to the
		// successor rather than recursing into self.
		return succ, nil
	}

	cli, closeFn, err := n.dialOrGet(next.Addr)
	if err != nil {
		return nil, fmt.Errorf("find_successor: %w", err)
	}
	defer closeFn()
	return client.FindSuccessor(ctx, cli, next.Addr, target)
}

// FindPredecessor walks the ring towards target's owner and returns
// the hop immediately preceding it.
func (n *Node) FindPredecessor(ctx context.Context, target domain.ID) (*domain.Node, error) {
	if err := ctxutil.CheckContext(ctx); err != nil {
		return nil, err
	}

	self := n.rt.Self()
	ctx = ctxutil.EnsureTraceID(ctx, self.ID)
	if target.Equal(self.ID) {
		return n.rt.GetPredecessor(), nil
	}

	n1 := self
	for hops := 0; hops <= n.rt.Space().Bits; hops++ {
		succ, err := n.successorOf(ctx, n1)
		if err != nil {
			return nil, fmt.Errorf("find_predecessor: %w", err)
		}
		if succ == nil {
			return nil, status.Error(codes.Internal, "find_predecessor: successor unavailable")
		}
		if target.BetweenE(n1.ID, succ.ID) {
			return n1, nil
		}
		next, err := n.closestPrecedingFingerOf(ctx, n1, target)
		if err != nil {
			return nil, fmt.Errorf("find_predecessor: %w", err)
		}
		if next.ID.Equal(n1.ID) {
			return n1, nil
		}
		n1 = next
	}
	return nil, status.Error(codes.Internal, "find_predecessor: exceeded hop budget, possible routing loop")
}

// SuccessorCandidates returns up to max nodes responsible for target,
// for callers (e.g. a storage layer) that want fallback targets if the
// primary owner is unreachable. found is false only when both the
// find_successor and find_predecessor fallbacks failed.
func (n *Node) SuccessorCandidates(ctx context.Context, target domain.ID, max int) ([]*domain.Node, bool) {
	var list []*domain.Node

	succ, err := n.FindSuccessor(ctx, target)
	if err == nil && succ != nil {
		list = append(list, succ)
		if sl, serr := n.successorListOf(ctx, succ); serr == nil {
			list = append(list, sl...)
		}
	} else {
		pred, perr := n.FindPredecessor(ctx, target)
		if perr != nil || pred == nil {
			return nil, false
		}
		sl, serr := n.successorListOf(ctx, pred)
		if serr != nil {
			return nil, false
		}
		list = sl
	}

	for len(list) < max && len(list) > 0 {
		last := list[len(list)-1]
		next, err := n.successorOf(ctx, last)
		if err != nil || next == nil {
			break
		}
		list = append(list, next)
	}

	if len(list) > max {
		list = list[:max]
	}
	return list, true
}

func (n *Node) successorListOf(ctx context.Context, node *domain.Node) ([]*domain.Node, error) {
	if node.ID.Equal(n.rt.Self().ID) {
		return n.rt.SuccessorList(), nil
	}
	cli, closeFn, err := n.dialOrGet(node.Addr)
	if err != nil {
		return nil, err
	}
	defer closeFn()
	return client.GetSuccessorList(ctx, cli, node.Addr)
}

// Join attaches this node to the ring. An empty bootstrapAddr forms a
// new singleton ring; otherwise the bootstrap node is used to resolve
// the initial successor and seed the finger table and successor list.
func (n *Node) Join(ctx context.Context, bootstrapAddr string) error {
	self := n.rt.Self()
	n.rt.SetPredecessor(nil)

	if bootstrapAddr == "" {
		n.rt.InitSingleNode()
		n.setActive(true)
		n.lgr.Info("join: formed singleton ring", logger.FNode("self", self))
		return nil
	}

	cli, conn, err := n.cp.DialEphemeral(bootstrapAddr)
	if err != nil {
		return fmt.Errorf("join: bootstrap unreachable: %w", err)
	}
	defer conn.Close()

	succ, err := client.FindSuccessor(ctx, cli, bootstrapAddr, self.ID)
	if err != nil {
		return fmt.Errorf("join: bootstrap find_successor failed: %w", err)
	}
	if err := n.cp.AddRef(succ.Addr); err != nil {
		return fmt.Errorf("join: failed to pool successor: %w", err)
	}
	n.rt.SetFinger(0, succ)
	n.rt.SetSuccessor(0, succ)

	if err := n.buildFingerTable(ctx, bootstrapAddr); err != nil {
		n.lgr.Warn("join: finger table build incomplete, stabilization will complete it",
			logger.F("err", err))
	}
	if err := n.buildSuccessorList(ctx); err != nil {
		n.lgr.Warn("join: successor list build incomplete, stabilization will complete it",
			logger.F("err", err))
	}

	n.setActive(true)
	n.lgr.Info("join: joined ring via bootstrap",
		logger.F("bootstrap", bootstrapAddr), logger.FNode("successor", succ))
	return nil
}

// buildFingerTable fills fingers 1..M-1 using the bootstrap node,
// reusing the previous slot's value wherever the new finger's start
// falls within the interval the previous finger already covers.
func (n *Node) buildFingerTable(ctx context.Context, bootstrapAddr string) error {
	self := n.rt.Self()
	space := n.rt.Space()

	cli, conn, err := n.cp.DialEphemeral(bootstrapAddr)
	if err != nil {
		return fmt.Errorf("build_finger_table: %w", err)
	}
	defer conn.Close()

	for i := 0; i < space.Bits-1; i++ {
		fi := n.rt.GetFinger(i)
		if fi == nil {
			return fmt.Errorf("build_finger_table: finger[%d] unset", i)
		}
		startNext, err := space.FingerStart(self.ID, i+1)
		if err != nil {
			return fmt.Errorf("build_finger_table: %w", err)
		}
		if startNext.EBetween(self.ID, fi.ID) {
			n.rt.SetFinger(i+1, fi)
			continue
		}
		next, err := client.FindSuccessor(ctx, cli, bootstrapAddr, startNext)
		if err != nil {
			return fmt.Errorf("build_finger_table: finger[%d]: %w", i+1, err)
		}
		n.rt.SetFinger(i+1, next)
	}
	return nil
}

// buildSuccessorList seeds the successor list with finger[0], then
// repeatedly queries the last entry's successor until it reaches the
// configured length or a hop fails.
func (n *Node) buildSuccessorList(ctx context.Context) error {
	size := n.rt.SuccListSize()
	succ0 := n.rt.GetFinger(0)
	if succ0 == nil {
		return fmt.Errorf("build_successor_list: finger[0] unset")
	}

	list := []*domain.Node{succ0}
	last := succ0
	for len(list) < size {
		next, err := n.successorOf(ctx, last)
		if err != nil || next == nil || next.ID.Equal(n.rt.Self().ID) {
			break
		}
		list = append(list, next)
		last = next
	}
	for _, nd := range list {
		if err := n.cp.AddRef(nd.Addr); err != nil {
			n.lgr.Warn("build_successor_list: addref failed", logger.FNode("node", nd), logger.F("err", err))
		}
	}
	for len(list) < size {
		list = append(list, nil)
	}
	n.rt.SetSuccessorList(list)
	return nil
}

// Leave gracefully removes this node from the ring: it notifies its
// successor and predecessor so they can repair their pointers, then
// marks itself inactive. The maintenance loop must be stopped by the
// caller separately; transport errors here are swallowed, matching
// best-effort leave.
func (n *Node) Leave(ctx context.Context) {
	self := n.rt.Self()
	succ := n.rt.FirstSuccessor()
	pred := n.rt.GetPredecessor()

	if succ != nil && pred != nil && !succ.ID.Equal(pred.ID) {
		if !succ.ID.Equal(self.ID) {
			if cli, closeFn, err := n.dialOrGet(succ.Addr); err == nil {
				if err := client.NotifyPredecessorLeaving(ctx, cli, succ.Addr, self, pred); err != nil {
					n.lgr.Warn("leave: notify_predecessor_leaving failed",
						logger.FNode("successor", succ), logger.F("err", err))
				}
				closeFn()
			}
		}
		if pred != nil && !pred.ID.Equal(self.ID) {
			if cli, closeFn, err := n.dialOrGet(pred.Addr); err == nil {
				if err := client.NotifySuccessorLeaving(ctx, cli, pred.Addr, self, n.rt.SuccessorList()); err != nil {
					n.lgr.Warn("leave: notify_successor_leaving failed",
						logger.FNode("predecessor", pred), logger.F("err", err))
				}
				closeFn()
			}
		}
	}

	n.setActive(false)
	n.lgr.Info("leave: node left the ring", logger.FNode("self", self))
}

// Notify informs this node that p may be its predecessor, per the
// Chord stabilization protocol. Adopted when there is no predecessor
// yet, or when p lies strictly between the current predecessor and
// self. The first adoption after join fires the joined signal.
func (n *Node) Notify(p *domain.Node) {
	self := n.rt.Self()
	if p == nil {
		return
	}

	pred := n.rt.GetPredecessor()
	if pred != nil && !p.ID.Between(pred.ID, self.ID) {
		return
	}

	if err := n.cp.AddRef(p.Addr); err != nil {
		n.lgr.Warn("notify: failed to pool new predecessor", logger.FNode("node", p), logger.F("err", err))
	}
	n.rt.SetPredecessor(p)
	if pred != nil && !pred.ID.Equal(p.ID) {
		if err := n.cp.Release(pred.Addr); err != nil {
			n.lgr.Warn("notify: failed to release old predecessor", logger.FNode("node", pred), logger.F("err", err))
		}
	}
	n.fireJoined()
	n.lgr.Info("notify: predecessor updated", logger.FNode("newPredecessor", p), logger.FNode("oldPredecessor", pred))
}

// NotifyPredecessorLeaving handles the notice a departing node sends
// to its successor: if node matches our current predecessor, adopt
// newPredecessor (which may be nil) as our new predecessor so the ring
// heals around the gap. A notice from anyone else is stale and is
// ignored.
func (n *Node) NotifyPredecessorLeaving(node, newPredecessor *domain.Node) {
	pred := n.rt.GetPredecessor()
	if node == nil || pred == nil || !node.ID.Equal(pred.ID) {
		return
	}

	if newPredecessor != nil {
		if err := n.cp.AddRef(newPredecessor.Addr); err != nil {
			n.lgr.Warn("notify_predecessor_leaving: failed to pool new predecessor",
				logger.FNode("node", newPredecessor), logger.F("err", err))
		}
	}
	n.rt.SetPredecessor(newPredecessor)
	if err := n.cp.Release(pred.Addr); err != nil {
		n.lgr.Warn("notify_predecessor_leaving: failed to release leaving predecessor",
			logger.FNode("node", pred), logger.F("err", err))
	}
	n.lgr.Info("notify_predecessor_leaving: predecessor replaced",
		logger.FNode("leaving", pred), logger.FNode("new", newPredecessor))
}

// NotifySuccessorLeaving handles the notice a departing node sends to
// its predecessor: if node matches our current successor, drop it
// from the successor list, extend the list with the tail of the
// departing node's own successor list, and adopt the new head as our
// successor.
func (n *Node) NotifySuccessorLeaving(node *domain.Node, successors []*domain.Node) {
	succ := n.rt.FirstSuccessor()
	if node == nil || succ == nil || !node.ID.Equal(succ.ID) {
		return
	}

	size := n.rt.SuccListSize()
	current := n.rt.SuccessorList()
	newList := make([]*domain.Node, 0, size)
	if len(current) > 1 {
		newList = append(newList, current[1:]...)
	}
	if len(successors) > 0 {
		if tail := successors[len(successors)-1]; tail != nil && !tail.ID.Equal(n.rt.Self().ID) {
			newList = append(newList, tail)
			if err := n.cp.AddRef(tail.Addr); err != nil {
				n.lgr.Warn("notify_successor_leaving: failed to pool new tail",
					logger.FNode("node", tail), logger.F("err", err))
			}
		}
	}
	if len(newList) > size {
		newList = newList[:size]
	}
	for len(newList) < size {
		newList = append(newList, nil)
	}
	n.rt.SetSuccessorList(newList)

	if newSucc := newList[0]; newSucc != nil {
		n.rt.SetSuccessor(0, newSucc)
		n.rt.SetFinger(0, newSucc)
	}
	if err := n.cp.Release(succ.Addr); err != nil {
		n.lgr.Warn("notify_successor_leaving: failed to release leaving successor",
			logger.FNode("node", succ), logger.F("err", err))
	}
	n.lgr.Info("notify_successor_leaving: successor replaced",
		logger.FNode("leaving", succ), logger.FNode("new", newList[0]))
}
