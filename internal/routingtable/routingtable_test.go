package routingtable

import (
	"ChordDHT/internal/domain"
	"testing"
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

func TestInitSingleNode(t *testing.T) {
	sp := newTestSpace(t)
	self := nodeAt(t, sp, "0x0a", "self:1")
	rt := New(self, sp, 3)
	rt.InitSingleNode()

	if got := rt.FirstSuccessor(); got != self {
		t.Errorf("FirstSuccessor = %v, want self", got)
	}
	if got := rt.GetPredecessor(); got != nil {
		t.Errorf("GetPredecessor = %v, want nil", got)
	}
	for i := 0; i < sp.Bits-1; i++ {
		if got := rt.GetFinger(i); got != self {
			t.Errorf("GetFinger(%d) = %v, want self", i, got)
		}
	}
	if got := rt.GetFinger(sp.Bits - 1); got != nil {
		t.Errorf("GetFinger(M-1) = %v, want nil (off-by-one preserved)", got)
	}
}

func TestSetSuccessorListMismatch(t *testing.T) {
	sp := newTestSpace(t)
	self := nodeAt(t, sp, "0x0a", "self:1")
	rt := New(self, sp, 3)
	rt.SetSuccessorList([]*domain.Node{self}) // wrong length, ignored
	if got := rt.SuccessorList(); len(got) != 0 {
		t.Errorf("expected no-op on length mismatch, got %v", got)
	}
}

func TestPromoteCandidate(t *testing.T) {
	sp := newTestSpace(t)
	self := nodeAt(t, sp, "0x0a", "self:1")
	a := nodeAt(t, sp, "0x14", "a:1")
	b := nodeAt(t, sp, "0x1e", "b:1")
	c := nodeAt(t, sp, "0x28", "c:1")
	rt := New(self, sp, 3)
	rt.SetSuccessorList([]*domain.Node{a, b, c})

	rt.PromoteCandidate(1)

	list := rt.SuccessorList()
	if len(list) != 2 || list[0] != b || list[1] != c {
		t.Fatalf("unexpected list after promote: %v", list)
	}
}

func TestClosestPrecedingFinger(t *testing.T) {
	sp := newTestSpace(t)
	self := nodeAt(t, sp, "0x00", "self:1")
	far := nodeAt(t, sp, "0x40", "far:1")
	near := nodeAt(t, sp, "0x10", "near:1")
	rt := New(self, sp, 3)
	rt.SetFinger(6, far)  // between(0,target) for target beyond 0x40
	rt.SetFinger(4, near) // between(0,target)

	alwaysAlive := func(*domain.Node) bool { return true }
	got := rt.ClosestPrecedingFinger(sp.Zero(), alwaysAlive) // target = self (0): (0, 0) is the whole ring minus 0, so every finger qualifies
	if got != far {
		t.Errorf("expected highest qualifying finger (far), got %v", got)
	}

	deadOnly := func(n *domain.Node) bool { return n != far }
	got = rt.ClosestPrecedingFinger(sp.Zero(), deadOnly)
	if got != near {
		t.Errorf("expected fallback to next alive finger (near), got %v", got)
	}

	noneAlive := func(*domain.Node) bool { return false }
	got = rt.ClosestPrecedingFinger(sp.Zero(), noneAlive)
	if got != self {
		t.Errorf("expected fallback to self when no finger is alive, got %v", got)
	}
}

func TestNextFingerWraps(t *testing.T) {
	sp := newTestSpace(t)
	self := nodeAt(t, sp, "0x00", "self:1")
	rt := New(self, sp, 3)
	seen := make(map[int]bool)
	for i := 0; i < sp.Bits; i++ {
		seen[rt.NextFinger()] = true
	}
	if len(seen) != sp.Bits {
		t.Errorf("expected a full sweep of %d distinct slots, got %d", sp.Bits, len(seen))
	}
	if got := rt.NextFinger(); got != 0 {
		t.Errorf("expected cursor to wrap back to 0, got %d", got)
	}
}
