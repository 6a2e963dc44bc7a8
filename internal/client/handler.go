package client

import (
	dhtv1 "ChordDHT/internal/api/dht/v1"
	"ChordDHT/internal/domain"
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrClientNotInPool = errors.New("client pool: client not found in pool")
	ErrNoPredecessor   = errors.New("client: remote node has no predecessor")

	// ErrUnreachable is the "Unreachable" error kind required by the
	// RPC contract: it means the peer did not respond at all, as
	// opposed to responding with an application-level error. Callers
	// treat it as a liveness negative.
	ErrUnreachable = errors.New("client: remote node unreachable")
)

// classify maps a raw gRPC error onto ErrUnreachable when it reflects
// a transport failure (no response, connection down, deadline blown)
// rather than an application error returned by a reachable peer.
func classify(addr string, method string, err error) error {
	if err == nil {
		return nil
	}
	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.Unavailable, codes.DeadlineExceeded:
			return fmt.Errorf("%w: %s (%s)", ErrUnreachable, addr, method)
		}
		return fmt.Errorf("client: %s RPC to %s failed: %w", method, addr, err)
	}
	return fmt.Errorf("%w: %s (%s): %v", ErrUnreachable, addr, method, err)
}

func nodeFromProto(p *dhtv1.Node) *domain.Node {
	return domain.NodeFromProto(p)
}

func nodeListFromProto(list []*dhtv1.Node) []*domain.Node {
	out := make([]*domain.Node, len(list))
	for i, p := range list {
		out[i] = nodeFromProto(p)
	}
	return out
}

func nodeListToProto(list []*domain.Node) []*dhtv1.Node {
	out := make([]*dhtv1.Node, len(list))
	for i, n := range list {
		out[i] = n.ToProto()
	}
	return out
}

// Id returns the remote node's identifier.
func Id(ctx context.Context, cli dhtv1.DHTClient, addr string) (domain.ID, error) {
	resp, err := cli.Id(ctx, &dhtv1.Empty{})
	if err != nil {
		return nil, classify(addr, "Id", err)
	}
	return domain.ID(resp.Id), nil
}

// Active reports whether the remote node considers itself an active
// ring member.
func Active(ctx context.Context, cli dhtv1.DHTClient, addr string) (bool, error) {
	resp, err := cli.Active(ctx, &dhtv1.Empty{})
	if err != nil {
		return false, classify(addr, "Active", err)
	}
	return resp.Active, nil
}

// Info returns the remote node's own descriptor.
func Info(ctx context.Context, cli dhtv1.DHTClient, addr string) (*domain.Node, error) {
	resp, err := cli.Info(ctx, &dhtv1.Empty{})
	if err != nil {
		return nil, classify(addr, "Info", err)
	}
	return nodeFromProto(resp), nil
}

// Successor returns the remote node's successor (finger[0]).
func Successor(ctx context.Context, cli dhtv1.DHTClient, addr string) (*domain.Node, error) {
	resp, err := cli.Successor(ctx, &dhtv1.Empty{})
	if err != nil {
		return nil, classify(addr, "Successor", err)
	}
	return nodeFromProto(resp), nil
}

// GetPredecessor returns the remote node's predecessor, or
// ErrNoPredecessor if it has none.
func GetPredecessor(ctx context.Context, cli dhtv1.DHTClient, addr string) (*domain.Node, error) {
	resp, err := cli.Predecessor(ctx, &dhtv1.Empty{})
	if err != nil {
		if st, ok := status.FromError(err); ok && st.Code() == codes.NotFound {
			return nil, ErrNoPredecessor
		}
		return nil, classify(addr, "Predecessor", err)
	}
	return nodeFromProto(resp), nil
}

// GetSuccessorList returns the remote node's successor list.
func GetSuccessorList(ctx context.Context, cli dhtv1.DHTClient, addr string) ([]*domain.Node, error) {
	resp, err := cli.SuccessorList(ctx, &dhtv1.Empty{})
	if err != nil {
		return nil, classify(addr, "SuccessorList", err)
	}
	return nodeListFromProto(resp.Nodes), nil
}

// FindSuccessor asks the remote node to resolve target, possibly
// forwarding the lookup further around the ring on its end.
func FindSuccessor(ctx context.Context, cli dhtv1.DHTClient, addr string, target domain.ID) (*domain.Node, error) {
	resp, err := cli.FindSuccessor(ctx, &dhtv1.FindSuccessorRequest{TargetId: []byte(target)})
	if err != nil {
		return nil, classify(addr, "FindSuccessor", err)
	}
	return nodeFromProto(resp.Node), nil
}

// FindPredecessor asks the remote node to resolve the predecessor of
// target's owner.
func FindPredecessor(ctx context.Context, cli dhtv1.DHTClient, addr string, target domain.ID) (*domain.Node, error) {
	resp, err := cli.FindPredecessor(ctx, &dhtv1.FindPredecessorRequest{TargetId: []byte(target)})
	if err != nil {
		return nil, classify(addr, "FindPredecessor", err)
	}
	return nodeFromProto(resp.Node), nil
}

// ClosestPrecedingFinger asks the remote node to scan its own finger
// table for the closest entry preceding target.
func ClosestPrecedingFinger(ctx context.Context, cli dhtv1.DHTClient, addr string, target domain.ID) (*domain.Node, error) {
	resp, err := cli.ClosestPrecedingFinger(ctx, &dhtv1.ClosestPrecedingFingerRequest{TargetId: []byte(target)})
	if err != nil {
		return nil, classify(addr, "ClosestPrecedingFinger", err)
	}
	return nodeFromProto(resp.Node), nil
}

// Notify informs the remote node that self may be its predecessor.
func Notify(ctx context.Context, cli dhtv1.DHTClient, addr string, self *domain.Node) error {
	_, err := cli.Notify(ctx, self.ToProto())
	if err != nil {
		return classify(addr, "Notify", err)
	}
	return nil
}

// NotifyPredecessorLeaving informs the remote successor that node is
// leaving and proposes newPredecessor (may be nil) as its replacement.
func NotifyPredecessorLeaving(ctx context.Context, cli dhtv1.DHTClient, addr string, node, newPredecessor *domain.Node) error {
	_, err := cli.NotifyPredecessorLeaving(ctx, &dhtv1.NotifyPredecessorLeavingRequest{
		Node:           node.ToProto(),
		NewPredecessor: newPredecessor.ToProto(),
	})
	if err != nil {
		return classify(addr, "NotifyPredecessorLeaving", err)
	}
	return nil
}

// NotifySuccessorLeaving informs the remote predecessor that node is
// leaving and supplies its successor list for continuity.
func NotifySuccessorLeaving(ctx context.Context, cli dhtv1.DHTClient, addr string, node *domain.Node, successors []*domain.Node) error {
	_, err := cli.NotifySuccessorLeaving(ctx, &dhtv1.NotifySuccessorLeavingRequest{
		Node:       node.ToProto(),
		Successors: nodeListToProto(successors),
	})
	if err != nil {
		return classify(addr, "NotifySuccessorLeaving", err)
	}
	return nil
}

// SuccessorCandidates asks the remote node for up to max nodes
// responsible for target. found is false if the remote node could not
// resolve any candidate at all.
func SuccessorCandidates(ctx context.Context, cli dhtv1.DHTClient, addr string, target domain.ID, max int) ([]*domain.Node, bool, error) {
	resp, err := cli.SuccessorCandidates(ctx, &dhtv1.SuccessorCandidatesRequest{TargetId: []byte(target), Max: int32(max)})
	if err != nil {
		return nil, false, classify(addr, "SuccessorCandidates", err)
	}
	return nodeListFromProto(resp.Nodes), resp.Found, nil
}

// Ping probes whether the remote node is alive. A nil return means
// alive; ErrUnreachable (via classify) means dead.
func Ping(ctx context.Context, cli dhtv1.DHTClient, addr string) error {
	_, err := cli.Ping(ctx, &dhtv1.Empty{})
	if err != nil {
		return classify(addr, "Ping", err)
	}
	return nil
}
