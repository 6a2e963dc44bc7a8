package server

import (
	dhtv1 "ChordDHT/internal/api/dht/v1"
	"ChordDHT/internal/ctxutil"
	"ChordDHT/internal/domain"
	"ChordDHT/internal/node"
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// dhtService adapts a node.Node to the dhtv1.DHTServer gRPC contract:
// wire<->domain conversion and gRPC status translation. All protocol
// logic lives in node.Node; this type is a thin shim.
type dhtService struct {
	dhtv1.UnimplementedDHTServer
	node *node.Node
}

// NewDHTService wraps n as a dhtv1.DHTServer.
func NewDHTService(n *node.Node) dhtv1.DHTServer {
	return &dhtService{node: n}
}

func (s *dhtService) Id(ctx context.Context, _ *dhtv1.Empty) (*dhtv1.IdResponse, error) {
	if err := ctxutil.CheckContext(ctx); err != nil {
		return nil, err
	}
	return &dhtv1.IdResponse{Id: []byte(s.node.Self().ID)}, nil
}

func (s *dhtService) Active(ctx context.Context, _ *dhtv1.Empty) (*dhtv1.ActiveResponse, error) {
	if err := ctxutil.CheckContext(ctx); err != nil {
		return nil, err
	}
	return &dhtv1.ActiveResponse{Active: s.node.Active()}, nil
}

func (s *dhtService) Info(ctx context.Context, _ *dhtv1.Empty) (*dhtv1.Node, error) {
	if err := ctxutil.CheckContext(ctx); err != nil {
		return nil, err
	}
	return s.node.Self().ToProto(), nil
}

func (s *dhtService) Successor(ctx context.Context, _ *dhtv1.Empty) (*dhtv1.Node, error) {
	if err := ctxutil.CheckContext(ctx); err != nil {
		return nil, err
	}
	succ := s.node.Successor()
	if succ == nil {
		return nil, status.Error(codes.Internal, "routing table not initialized")
	}
	return succ.ToProto(), nil
}

func (s *dhtService) Predecessor(ctx context.Context, _ *dhtv1.Empty) (*dhtv1.Node, error) {
	if err := ctxutil.CheckContext(ctx); err != nil {
		return nil, err
	}
	pred := s.node.Predecessor()
	if pred == nil {
		return nil, status.Error(codes.NotFound, "no predecessor set")
	}
	return pred.ToProto(), nil
}

func (s *dhtService) SuccessorList(ctx context.Context, _ *dhtv1.Empty) (*dhtv1.NodeList, error) {
	if err := ctxutil.CheckContext(ctx); err != nil {
		return nil, err
	}
	return &dhtv1.NodeList{Nodes: toProtoList(s.node.SuccessorList())}, nil
}

func (s *dhtService) FindSuccessor(ctx context.Context, req *dhtv1.FindSuccessorRequest) (*dhtv1.FindSuccessorResponse, error) {
	if err := ctxutil.CheckContext(ctx); err != nil {
		return nil, err
	}
	succ, err := s.node.FindSuccessor(ctx, domain.ID(req.TargetId))
	if err != nil {
		return nil, translateErr(err)
	}
	return &dhtv1.FindSuccessorResponse{Node: succ.ToProto()}, nil
}

func (s *dhtService) FindPredecessor(ctx context.Context, req *dhtv1.FindPredecessorRequest) (*dhtv1.FindPredecessorResponse, error) {
	if err := ctxutil.CheckContext(ctx); err != nil {
		return nil, err
	}
	pred, err := s.node.FindPredecessor(ctx, domain.ID(req.TargetId))
	if err != nil {
		return nil, translateErr(err)
	}
	return &dhtv1.FindPredecessorResponse{Node: pred.ToProto()}, nil
}

func (s *dhtService) ClosestPrecedingFinger(ctx context.Context, req *dhtv1.ClosestPrecedingFingerRequest) (*dhtv1.ClosestPrecedingFingerResponse, error) {
	if err := ctxutil.CheckContext(ctx); err != nil {
		return nil, err
	}
	finger := s.node.ClosestPrecedingFinger(domain.ID(req.TargetId))
	return &dhtv1.ClosestPrecedingFingerResponse{Node: finger.ToProto()}, nil
}

func (s *dhtService) Notify(ctx context.Context, req *dhtv1.Node) (*dhtv1.Empty, error) {
	if err := ctxutil.CheckContext(ctx); err != nil {
		return nil, err
	}
	if req == nil || len(req.Id) == 0 || req.Address == "" {
		return nil, status.Error(codes.InvalidArgument, "invalid node")
	}
	s.node.Notify(domain.NodeFromProto(req))
	return &dhtv1.Empty{}, nil
}

func (s *dhtService) NotifyPredecessorLeaving(ctx context.Context, req *dhtv1.NotifyPredecessorLeavingRequest) (*dhtv1.Empty, error) {
	if err := ctxutil.CheckContext(ctx); err != nil {
		return nil, err
	}
	if req == nil || req.Node == nil {
		return nil, status.Error(codes.InvalidArgument, "missing node")
	}
	s.node.NotifyPredecessorLeaving(domain.NodeFromProto(req.Node), domain.NodeFromProto(req.NewPredecessor))
	return &dhtv1.Empty{}, nil
}

func (s *dhtService) NotifySuccessorLeaving(ctx context.Context, req *dhtv1.NotifySuccessorLeavingRequest) (*dhtv1.Empty, error) {
	if err := ctxutil.CheckContext(ctx); err != nil {
		return nil, err
	}
	if req == nil || req.Node == nil {
		return nil, status.Error(codes.InvalidArgument, "missing node")
	}
	s.node.NotifySuccessorLeaving(domain.NodeFromProto(req.Node), fromProtoList(req.Successors))
	return &dhtv1.Empty{}, nil
}

func (s *dhtService) SuccessorCandidates(ctx context.Context, req *dhtv1.SuccessorCandidatesRequest) (*dhtv1.SuccessorCandidatesResponse, error) {
	if err := ctxutil.CheckContext(ctx); err != nil {
		return nil, err
	}
	nodes, found := s.node.SuccessorCandidates(ctx, domain.ID(req.TargetId), int(req.Max))
	return &dhtv1.SuccessorCandidatesResponse{Nodes: toProtoList(nodes), Found: found}, nil
}

func (s *dhtService) Ping(ctx context.Context, _ *dhtv1.Empty) (*dhtv1.Empty, error) {
	if err := ctxutil.CheckContext(ctx); err != nil {
		return nil, err
	}
	return &dhtv1.Empty{}, nil
}

// translateErr maps a node operation's error onto a gRPC status,
// passing through one already produced by CheckContext or the RPC
// client's own classification and falling back to Internal otherwise.
func translateErr(err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Error(codes.Internal, err.Error())
}

func toProtoList(nodes []*domain.Node) []*dhtv1.Node {
	out := make([]*dhtv1.Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.ToProto()
	}
	return out
}

func fromProtoList(nodes []*dhtv1.Node) []*domain.Node {
	out := make([]*domain.Node, len(nodes))
	for i, n := range nodes {
		out[i] = domain.NodeFromProto(n)
	}
	return out
}
