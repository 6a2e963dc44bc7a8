package node

import (
	"ChordDHT/internal/client"
	"ChordDHT/internal/domain"
	"ChordDHT/internal/logger"
	"context"
	"time"
)

// StartStabilizationLoop launches the maintenance task: every
// interval, while the node is active, it runs stabilize, fix_fingers,
// fix_successor_list and fix_predecessor in that order. Order matters:
// fixing fingers against a stale successor wastes work. The loop stops
// when ctx is canceled.
func (n *Node) StartStabilizationLoop(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				n.lgr.Info("stabilization loop stopped")
				return
			case <-ticker.C:
				if !n.Active() {
					continue
				}
				n.stabilize(ctx)
				n.fixFingers(ctx)
				n.fixSuccessorList(ctx)
				n.fixPredecessor()
			}
		}
	}()
}

// printRoutingTable logs the current state of the routing table.
func (n *Node) printRoutingTable() {
	n.rt.DebugLog()
}

// printClientPoolStats logs the current state of the client pool.
func (n *Node) printClientPoolStats() {
	n.cp.DebugLog()
}

func (n *Node) predecessorOf(ctx context.Context, node *domain.Node) (*domain.Node, error) {
	if node.ID.Equal(n.rt.Self().ID) {
		return n.rt.GetPredecessor(), nil
	}
	cli, closeFn, err := n.dialOrGet(node.Addr)
	if err != nil {
		return nil, err
	}
	defer closeFn()
	pred, err := client.GetPredecessor(ctx, cli, node.Addr)
	if err != nil {
		if err == client.ErrNoPredecessor {
			return nil, nil
		}
		return nil, err
	}
	return pred, nil
}

// stabilize implements §4.6 Phase A (successor liveness and
// promotion) and Phase B (learning a better successor from the
// current one, then notifying it). Tail-recursive by nature; modeled
// here as a loop to avoid holding any lock across the recursive call.
func (n *Node) stabilize(ctx context.Context) {
	for {
		self := n.rt.Self()
		succ := n.rt.FirstSuccessor()
		if succ == nil {
			n.lgr.Error("stabilize: successor is nil (invalid state)")
			return
		}

		if !succ.ID.Equal(self.ID) && !n.alive(succ) {
			n.lgr.Warn("stabilize: successor unresponsive, dropping", logger.FNode("successor", succ))
			if err := n.cp.Release(succ.Addr); err != nil {
				n.lgr.Warn("stabilize: failed to release dead successor",
					logger.FNode("successor", succ), logger.F("err", err))
			}

			promoted := -1
			for i := 1; i < n.rt.SuccListSize(); i++ {
				if cand := n.rt.GetSuccessor(i); cand != nil {
					promoted = i
					break
				}
			}
			if promoted > 0 {
				n.rt.PromoteCandidate(promoted)
				continue
			}

			var fallback *domain.Node
			for i := n.rt.Space().Bits - 1; i >= 0; i-- {
				if f := n.rt.GetFinger(i); f != nil && n.alive(f) {
					fallback = f
					break
				}
			}
			if fallback == nil {
				n.lgr.Warn("stabilize: isolated, no reachable peers remain")
				n.setActive(false)
				return
			}
			if err := n.cp.AddRef(fallback.Addr); err != nil {
				n.lgr.Warn("stabilize: failed to pool fallback successor",
					logger.FNode("node", fallback), logger.F("err", err))
			}
			n.rt.SetSuccessor(0, fallback)
			continue
		}

		x, err := n.predecessorOf(ctx, succ)
		if err == nil && x != nil && n.alive(x) && x.ID.Between(self.ID, succ.ID) {
			if err := n.cp.AddRef(x.Addr); err != nil {
				n.lgr.Warn("stabilize: failed to pool new successor", logger.FNode("node", x), logger.F("err", err))
			}
			n.rt.SetSuccessor(0, x)
			n.rt.SetFinger(0, x)
			if err := n.cp.Release(succ.Addr); err != nil {
				n.lgr.Warn("stabilize: failed to release old successor", logger.FNode("node", succ), logger.F("err", err))
			}
			succ = x
		}

		if succ.ID.Equal(self.ID) {
			n.Notify(self)
			return
		}

		cli, closeFn, err := n.dialOrGet(succ.Addr)
		if err != nil {
			n.lgr.Warn("stabilize: could not reach successor to notify",
				logger.FNode("successor", succ), logger.F("err", err))
			return
		}
		nctx, cancel := context.WithTimeout(ctx, n.cp.FailureTimeout())
		err = client.Notify(nctx, cli, succ.Addr, self)
		cancel()
		closeFn()
		if err != nil {
			n.lgr.Warn("stabilize: notify RPC failed", logger.FNode("successor", succ), logger.F("err", err))
		}
		return
	}
}

// fixFingers refreshes exactly one finger table slot per call,
// advancing the round-robin cursor. A full sweep takes M ticks.
func (n *Node) fixFingers(ctx context.Context) {
	i := n.rt.NextFinger()
	self := n.rt.Self()

	start, err := n.rt.Space().FingerStart(self.ID, i)
	if err != nil {
		n.lgr.Error("fix_fingers: failed to compute finger start", logger.F("index", i), logger.F("err", err))
		return
	}
	next, err := n.FindSuccessor(ctx, start)
	if err != nil {
		n.lgr.Warn("fix_fingers: find_successor failed", logger.F("index", i), logger.F("err", err))
		return
	}

	old := n.rt.GetFinger(i)
	if old != nil && old.Addr == next.Addr {
		return
	}
	if err := n.cp.AddRef(next.Addr); err != nil {
		n.lgr.Warn("fix_fingers: failed to pool new finger", logger.FNode("node", next), logger.F("err", err))
	}
	n.rt.SetFinger(i, next)
	if old != nil {
		if err := n.cp.Release(old.Addr); err != nil {
			n.lgr.Warn("fix_fingers: failed to release old finger", logger.FNode("node", old), logger.F("err", err))
		}
	}
}

// fixSuccessorList refreshes the successor list by fetching the
// current successor's own list, prepending the successor, and
// truncating to the configured length. Leaves the list untouched on
// transport failure.
func (n *Node) fixSuccessorList(ctx context.Context) {
	succ := n.rt.FirstSuccessor()
	if succ == nil || succ.ID.Equal(n.rt.Self().ID) {
		return
	}

	remote, err := n.successorListOf(ctx, succ)
	if err != nil {
		n.lgr.Warn("fix_successor_list: could not fetch remote list",
			logger.FNode("successor", succ), logger.F("err", err))
		return
	}

	size := n.rt.SuccListSize()
	newList := append([]*domain.Node{succ}, remote...)
	if len(newList) > size {
		newList = newList[:size]
	}

	old := n.rt.SuccessorList()
	oldSet := make(map[string]bool, len(old))
	for _, nd := range old {
		if nd != nil {
			oldSet[nd.Addr] = true
		}
	}
	newSet := make(map[string]bool, len(newList))
	for _, nd := range newList {
		if nd != nil {
			newSet[nd.Addr] = true
		}
	}
	for addr := range newSet {
		if !oldSet[addr] {
			if err := n.cp.AddRef(addr); err != nil {
				n.lgr.Warn("fix_successor_list: addref failed", logger.F("addr", addr), logger.F("err", err))
			}
		}
	}
	for len(newList) < size {
		newList = append(newList, nil)
	}
	n.rt.SetSuccessorList(newList)
	for addr := range oldSet {
		if !newSet[addr] {
			if err := n.cp.Release(addr); err != nil {
				n.lgr.Warn("fix_successor_list: release failed", logger.F("addr", addr), logger.F("err", err))
			}
		}
	}
}

// fixPredecessor clears the predecessor pointer if it fails the
// liveness probe, forcing re-adoption via a future notify.
func (n *Node) fixPredecessor() {
	pred := n.rt.GetPredecessor()
	if pred == nil || pred.ID.Equal(n.rt.Self().ID) {
		return
	}
	if !n.alive(pred) {
		n.lgr.Warn("fix_predecessor: predecessor unresponsive, clearing", logger.FNode("predecessor", pred))
		if err := n.cp.Release(pred.Addr); err != nil {
			n.lgr.Warn("fix_predecessor: failed to release predecessor",
				logger.FNode("predecessor", pred), logger.F("err", err))
		}
		n.rt.SetPredecessor(nil)
	}
}
