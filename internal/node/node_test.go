package node

import (
	"ChordDHT/internal/client"
	"ChordDHT/internal/domain"
	"ChordDHT/internal/routingtable"
	"testing"
	"time"
)

func newTestSpace(t *testing.T) domain.Space {
	t.Helper()
	sp, err := domain.NewSpace(8, 3)
	if err != nil {
		t.Fatalf("NewSpace: %v", err)
	}
	return sp
}

func nodeAt(t *testing.T, sp domain.Space, hex, addr string) *domain.Node {
	t.Helper()
	id, err := sp.FromHexString(hex)
	if err != nil {
		t.Fatalf("FromHexString(%q): %v", hex, err)
	}
	return &domain.Node{ID: id, Addr: addr}
}

func newTestNode(t *testing.T, self *domain.Node, sp domain.Space) *Node {
	t.Helper()
	rt := routingtable.New(self, sp, 3)
	cp := client.New(time.Second)
	return New(rt, cp)
}

func TestIsAloneFalseBeforeFirstNotify(t *testing.T) {
	sp := newTestSpace(t)
	self := nodeAt(t, sp, "0x10", "self:1")
	n := newTestNode(t, self, sp)

	if n.IsAlone() {
		t.Fatal("IsAlone = true before any predecessor is known, want false")
	}
}

func TestIsAloneFalseRightAfterSingletonJoin(t *testing.T) {
	sp := newTestSpace(t)
	self := nodeAt(t, sp, "0x10", "self:1")
	n := newTestNode(t, self, sp)

	if err := n.Join(nil, ""); err != nil {
		t.Fatalf("Join(singleton): %v", err)
	}
	if n.IsAlone() {
		t.Fatal("IsAlone = true immediately after forming a singleton ring, want false (predecessor is nil until the first self-notify)")
	}
	if n.rt.GetPredecessor() != nil {
		t.Fatalf("GetPredecessor = %v, want nil right after Join(\"\")", n.rt.GetPredecessor())
	}
}

func TestIsAloneTrueAfterFirstPredecessorAdoption(t *testing.T) {
	sp := newTestSpace(t)
	self := nodeAt(t, sp, "0x10", "self:1")
	n := newTestNode(t, self, sp)

	if err := n.Join(nil, ""); err != nil {
		t.Fatalf("Join(singleton): %v", err)
	}
	n.rt.SetPredecessor(self)

	if !n.IsAlone() {
		t.Fatal("IsAlone = false once predecessor has been adopted as self, want true")
	}
}

func TestIsAloneFalseWithDistinctSuccessor(t *testing.T) {
	sp := newTestSpace(t)
	self := nodeAt(t, sp, "0x10", "self:1")
	other := nodeAt(t, sp, "0x20", "other:1")
	n := newTestNode(t, self, sp)

	n.rt.SetPredecessor(self)
	n.rt.SetSuccessor(0, other)
	n.rt.SetFinger(0, other)

	if n.IsAlone() {
		t.Fatal("IsAlone = true with a distinct successor, want false")
	}
}

func TestNotifyAdoptsFirstPredecessor(t *testing.T) {
	sp := newTestSpace(t)
	self := nodeAt(t, sp, "0x10", "self:1")
	p := nodeAt(t, sp, "0x05", "p:1")
	n := newTestNode(t, self, sp)

	n.Notify(p)

	got := n.rt.GetPredecessor()
	if got == nil || !got.ID.Equal(p.ID) {
		t.Fatalf("GetPredecessor = %v, want %v", got, p)
	}
	select {
	case <-n.Joined():
	default:
		t.Fatal("joined channel not closed after first predecessor adoption")
	}
}

func TestNotifyAdoptsCloserPredecessor(t *testing.T) {
	sp := newTestSpace(t)
	self := nodeAt(t, sp, "0x10", "self:1")
	far := nodeAt(t, sp, "0x01", "far:1")
	closer := nodeAt(t, sp, "0x0c", "closer:1")
	n := newTestNode(t, self, sp)

	n.Notify(far)
	n.Notify(closer)

	got := n.rt.GetPredecessor()
	if got == nil || !got.ID.Equal(closer.ID) {
		t.Fatalf("GetPredecessor = %v, want %v (closer candidate)", got, closer)
	}
}

func TestNotifyIgnoresFartherCandidate(t *testing.T) {
	sp := newTestSpace(t)
	self := nodeAt(t, sp, "0x10", "self:1")
	closer := nodeAt(t, sp, "0x0c", "closer:1")
	far := nodeAt(t, sp, "0x01", "far:1")
	n := newTestNode(t, self, sp)

	n.Notify(closer)
	n.Notify(far)

	got := n.rt.GetPredecessor()
	if got == nil || !got.ID.Equal(closer.ID) {
		t.Fatalf("GetPredecessor = %v, want %v (farther candidate ignored)", got, closer)
	}
}

func TestNotifyAdoptsSelfWhenNoPredecessor(t *testing.T) {
	sp := newTestSpace(t)
	self := nodeAt(t, sp, "0x10", "self:1")
	n := newTestNode(t, self, sp)

	n.Notify(self)

	if got := n.rt.GetPredecessor(); got == nil || !got.ID.Equal(self.ID) {
		t.Fatalf("GetPredecessor = %v, want self after self-notify with no predecessor", got)
	}
}

func TestClosestPrecedingFingerFallsBackToSelf(t *testing.T) {
	sp := newTestSpace(t)
	self := nodeAt(t, sp, "0x10", "self:1")
	n := newTestNode(t, self, sp)

	target, err := sp.FromHexString("0x40")
	if err != nil {
		t.Fatalf("FromHexString: %v", err)
	}

	got := n.ClosestPrecedingFinger(target)
	if got == nil || !got.ID.Equal(self.ID) {
		t.Fatalf("ClosestPrecedingFinger = %v, want self (empty finger table)", got)
	}
}

func TestClosestPrecedingFingerSkipsDeadFinger(t *testing.T) {
	sp := newTestSpace(t)
	self := nodeAt(t, sp, "0x10", "self:1")
	dead := nodeAt(t, sp, "0x20", "127.0.0.1:1") // unreachable: nothing listens there
	n := newTestNode(t, self, sp)
	n.rt.SetFinger(3, dead)

	target, err := sp.FromHexString("0x40")
	if err != nil {
		t.Fatalf("FromHexString: %v", err)
	}

	got := n.ClosestPrecedingFinger(target)
	if got == nil || !got.ID.Equal(self.ID) {
		t.Fatalf("ClosestPrecedingFinger = %v, want self (only finger is unreachable)", got)
	}
}
