package v1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DHTClient is the client API for the DHT RPC surface (§6 of the
// routing specification). Hand-authored in the shape
// protoc-gen-go-grpc would generate.
type DHTClient interface {
	Id(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*IdResponse, error)
	Active(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ActiveResponse, error)
	Info(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Node, error)
	Successor(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Node, error)
	Predecessor(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Node, error)
	SuccessorList(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*NodeList, error)
	FindSuccessor(ctx context.Context, in *FindSuccessorRequest, opts ...grpc.CallOption) (*FindSuccessorResponse, error)
	FindPredecessor(ctx context.Context, in *FindPredecessorRequest, opts ...grpc.CallOption) (*FindPredecessorResponse, error)
	ClosestPrecedingFinger(ctx context.Context, in *ClosestPrecedingFingerRequest, opts ...grpc.CallOption) (*ClosestPrecedingFingerResponse, error)
	Notify(ctx context.Context, in *Node, opts ...grpc.CallOption) (*Empty, error)
	NotifyPredecessorLeaving(ctx context.Context, in *NotifyPredecessorLeavingRequest, opts ...grpc.CallOption) (*Empty, error)
	NotifySuccessorLeaving(ctx context.Context, in *NotifySuccessorLeavingRequest, opts ...grpc.CallOption) (*Empty, error)
	SuccessorCandidates(ctx context.Context, in *SuccessorCandidatesRequest, opts ...grpc.CallOption) (*SuccessorCandidatesResponse, error)
	Ping(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error)
}

type dhtClient struct {
	cc grpc.ClientConnInterface
}

// NewDHTClient wraps a grpc.ClientConnInterface (typically a
// *grpc.ClientConn dialed with grpc.ForceCodec(GobCodec{})) with the
// typed DHT client stub.
func NewDHTClient(cc grpc.ClientConnInterface) DHTClient {
	return &dhtClient{cc: cc}
}

func (c *dhtClient) Id(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*IdResponse, error) {
	out := new(IdResponse)
	if err := c.cc.Invoke(ctx, "/dht.v1.DHT/Id", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *dhtClient) Active(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ActiveResponse, error) {
	out := new(ActiveResponse)
	if err := c.cc.Invoke(ctx, "/dht.v1.DHT/Active", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *dhtClient) Info(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Node, error) {
	out := new(Node)
	if err := c.cc.Invoke(ctx, "/dht.v1.DHT/Info", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *dhtClient) Successor(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Node, error) {
	out := new(Node)
	if err := c.cc.Invoke(ctx, "/dht.v1.DHT/Successor", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *dhtClient) Predecessor(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Node, error) {
	out := new(Node)
	if err := c.cc.Invoke(ctx, "/dht.v1.DHT/Predecessor", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *dhtClient) SuccessorList(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*NodeList, error) {
	out := new(NodeList)
	if err := c.cc.Invoke(ctx, "/dht.v1.DHT/SuccessorList", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *dhtClient) FindSuccessor(ctx context.Context, in *FindSuccessorRequest, opts ...grpc.CallOption) (*FindSuccessorResponse, error) {
	out := new(FindSuccessorResponse)
	if err := c.cc.Invoke(ctx, "/dht.v1.DHT/FindSuccessor", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *dhtClient) FindPredecessor(ctx context.Context, in *FindPredecessorRequest, opts ...grpc.CallOption) (*FindPredecessorResponse, error) {
	out := new(FindPredecessorResponse)
	if err := c.cc.Invoke(ctx, "/dht.v1.DHT/FindPredecessor", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *dhtClient) ClosestPrecedingFinger(ctx context.Context, in *ClosestPrecedingFingerRequest, opts ...grpc.CallOption) (*ClosestPrecedingFingerResponse, error) {
	out := new(ClosestPrecedingFingerResponse)
	if err := c.cc.Invoke(ctx, "/dht.v1.DHT/ClosestPrecedingFinger", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *dhtClient) Notify(ctx context.Context, in *Node, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.cc.Invoke(ctx, "/dht.v1.DHT/Notify", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *dhtClient) NotifyPredecessorLeaving(ctx context.Context, in *NotifyPredecessorLeavingRequest, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.cc.Invoke(ctx, "/dht.v1.DHT/NotifyPredecessorLeaving", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *dhtClient) NotifySuccessorLeaving(ctx context.Context, in *NotifySuccessorLeavingRequest, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.cc.Invoke(ctx, "/dht.v1.DHT/NotifySuccessorLeaving", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *dhtClient) SuccessorCandidates(ctx context.Context, in *SuccessorCandidatesRequest, opts ...grpc.CallOption) (*SuccessorCandidatesResponse, error) {
	out := new(SuccessorCandidatesResponse)
	if err := c.cc.Invoke(ctx, "/dht.v1.DHT/SuccessorCandidates", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *dhtClient) Ping(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.cc.Invoke(ctx, "/dht.v1.DHT/Ping", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// DHTServer is the server API for the DHT RPC surface.
type DHTServer interface {
	Id(context.Context, *Empty) (*IdResponse, error)
	Active(context.Context, *Empty) (*ActiveResponse, error)
	Info(context.Context, *Empty) (*Node, error)
	Successor(context.Context, *Empty) (*Node, error)
	Predecessor(context.Context, *Empty) (*Node, error)
	SuccessorList(context.Context, *Empty) (*NodeList, error)
	FindSuccessor(context.Context, *FindSuccessorRequest) (*FindSuccessorResponse, error)
	FindPredecessor(context.Context, *FindPredecessorRequest) (*FindPredecessorResponse, error)
	ClosestPrecedingFinger(context.Context, *ClosestPrecedingFingerRequest) (*ClosestPrecedingFingerResponse, error)
	Notify(context.Context, *Node) (*Empty, error)
	NotifyPredecessorLeaving(context.Context, *NotifyPredecessorLeavingRequest) (*Empty, error)
	NotifySuccessorLeaving(context.Context, *NotifySuccessorLeavingRequest) (*Empty, error)
	SuccessorCandidates(context.Context, *SuccessorCandidatesRequest) (*SuccessorCandidatesResponse, error)
	Ping(context.Context, *Empty) (*Empty, error)
}

// UnimplementedDHTServer embeds into dhtService to satisfy DHTServer
// for any methods not overridden, returning Unimplemented. Required
// for forward-compatible server implementations.
type UnimplementedDHTServer struct{}

func (UnimplementedDHTServer) Id(context.Context, *Empty) (*IdResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Id not implemented")
}
func (UnimplementedDHTServer) Active(context.Context, *Empty) (*ActiveResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Active not implemented")
}
func (UnimplementedDHTServer) Info(context.Context, *Empty) (*Node, error) {
	return nil, status.Error(codes.Unimplemented, "method Info not implemented")
}
func (UnimplementedDHTServer) Successor(context.Context, *Empty) (*Node, error) {
	return nil, status.Error(codes.Unimplemented, "method Successor not implemented")
}
func (UnimplementedDHTServer) Predecessor(context.Context, *Empty) (*Node, error) {
	return nil, status.Error(codes.Unimplemented, "method Predecessor not implemented")
}
func (UnimplementedDHTServer) SuccessorList(context.Context, *Empty) (*NodeList, error) {
	return nil, status.Error(codes.Unimplemented, "method SuccessorList not implemented")
}
func (UnimplementedDHTServer) FindSuccessor(context.Context, *FindSuccessorRequest) (*FindSuccessorResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method FindSuccessor not implemented")
}
func (UnimplementedDHTServer) FindPredecessor(context.Context, *FindPredecessorRequest) (*FindPredecessorResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method FindPredecessor not implemented")
}
func (UnimplementedDHTServer) ClosestPrecedingFinger(context.Context, *ClosestPrecedingFingerRequest) (*ClosestPrecedingFingerResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ClosestPrecedingFinger not implemented")
}
func (UnimplementedDHTServer) Notify(context.Context, *Node) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Notify not implemented")
}
func (UnimplementedDHTServer) NotifyPredecessorLeaving(context.Context, *NotifyPredecessorLeavingRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method NotifyPredecessorLeaving not implemented")
}
func (UnimplementedDHTServer) NotifySuccessorLeaving(context.Context, *NotifySuccessorLeavingRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method NotifySuccessorLeaving not implemented")
}
func (UnimplementedDHTServer) SuccessorCandidates(context.Context, *SuccessorCandidatesRequest) (*SuccessorCandidatesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SuccessorCandidates not implemented")
}
func (UnimplementedDHTServer) Ping(context.Context, *Empty) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}

func _DHT_Id_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DHTServer).Id(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/dht.v1.DHT/Id"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DHTServer).Id(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _DHT_Active_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DHTServer).Active(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/dht.v1.DHT/Active"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DHTServer).Active(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _DHT_Info_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DHTServer).Info(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/dht.v1.DHT/Info"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DHTServer).Info(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _DHT_Successor_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DHTServer).Successor(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/dht.v1.DHT/Successor"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DHTServer).Successor(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _DHT_Predecessor_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DHTServer).Predecessor(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/dht.v1.DHT/Predecessor"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DHTServer).Predecessor(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _DHT_SuccessorList_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DHTServer).SuccessorList(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/dht.v1.DHT/SuccessorList"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DHTServer).SuccessorList(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _DHT_FindSuccessor_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(FindSuccessorRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DHTServer).FindSuccessor(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/dht.v1.DHT/FindSuccessor"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DHTServer).FindSuccessor(ctx, req.(*FindSuccessorRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DHT_FindPredecessor_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(FindPredecessorRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DHTServer).FindPredecessor(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/dht.v1.DHT/FindPredecessor"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DHTServer).FindPredecessor(ctx, req.(*FindPredecessorRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DHT_ClosestPrecedingFinger_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ClosestPrecedingFingerRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DHTServer).ClosestPrecedingFinger(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/dht.v1.DHT/ClosestPrecedingFinger"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DHTServer).ClosestPrecedingFinger(ctx, req.(*ClosestPrecedingFingerRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DHT_Notify_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(Node)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DHTServer).Notify(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/dht.v1.DHT/Notify"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DHTServer).Notify(ctx, req.(*Node))
	}
	return interceptor(ctx, in, info, handler)
}

func _DHT_NotifyPredecessorLeaving_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(NotifyPredecessorLeavingRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DHTServer).NotifyPredecessorLeaving(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/dht.v1.DHT/NotifyPredecessorLeaving"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DHTServer).NotifyPredecessorLeaving(ctx, req.(*NotifyPredecessorLeavingRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DHT_NotifySuccessorLeaving_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(NotifySuccessorLeavingRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DHTServer).NotifySuccessorLeaving(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/dht.v1.DHT/NotifySuccessorLeaving"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DHTServer).NotifySuccessorLeaving(ctx, req.(*NotifySuccessorLeavingRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DHT_SuccessorCandidates_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SuccessorCandidatesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DHTServer).SuccessorCandidates(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/dht.v1.DHT/SuccessorCandidates"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DHTServer).SuccessorCandidates(ctx, req.(*SuccessorCandidatesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DHT_Ping_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DHTServer).Ping(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/dht.v1.DHT/Ping"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DHTServer).Ping(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// DHT_ServiceDesc is the grpc.ServiceDesc for the DHT service, in the
// shape protoc-gen-go-grpc would produce.
var DHT_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "dht.v1.DHT",
	HandlerType: (*DHTServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Id", Handler: _DHT_Id_Handler},
		{MethodName: "Active", Handler: _DHT_Active_Handler},
		{MethodName: "Info", Handler: _DHT_Info_Handler},
		{MethodName: "Successor", Handler: _DHT_Successor_Handler},
		{MethodName: "Predecessor", Handler: _DHT_Predecessor_Handler},
		{MethodName: "SuccessorList", Handler: _DHT_SuccessorList_Handler},
		{MethodName: "FindSuccessor", Handler: _DHT_FindSuccessor_Handler},
		{MethodName: "FindPredecessor", Handler: _DHT_FindPredecessor_Handler},
		{MethodName: "ClosestPrecedingFinger", Handler: _DHT_ClosestPrecedingFinger_Handler},
		{MethodName: "Notify", Handler: _DHT_Notify_Handler},
		{MethodName: "NotifyPredecessorLeaving", Handler: _DHT_NotifyPredecessorLeaving_Handler},
		{MethodName: "NotifySuccessorLeaving", Handler: _DHT_NotifySuccessorLeaving_Handler},
		{MethodName: "SuccessorCandidates", Handler: _DHT_SuccessorCandidates_Handler},
		{MethodName: "Ping", Handler: _DHT_Ping_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "dht/v1/dht.proto",
}

// RegisterDHTServer registers srv as the implementation of the DHT
// service on s.
func RegisterDHTServer(s grpc.ServiceRegistrar, srv DHTServer) {
	s.RegisterService(&DHT_ServiceDesc, srv)
}
