package server

import (
	dhtv1 "ChordDHT/internal/api/dht/v1"
	"ChordDHT/internal/logger"
	"ChordDHT/internal/node"
	"fmt"
	"net"

	"google.golang.org/grpc"
)

// Server wraps a gRPC server hosting the DHT service.
type Server struct {
	grpcServer *grpc.Server
	listener   net.Listener
	lgr        logger.Logger
}

// New creates a new gRPC server bound to the given listener and
// registers the DHT service. You can pass both grpc.ServerOptions and
// custom server.Options.
//
// The server forces the gob codec (dhtv1.GobCodec) on every connection
// rather than relying on protobuf wire marshaling, since the hand-written
// message structs in internal/api/dht/v1 are not protoc-generated types.
func New(lis net.Listener, n *node.Node, grpcOpts []grpc.ServerOption, srvOpts ...Option) (*Server, error) {
	allOpts := append([]grpc.ServerOption{grpc.ForceServerCodec(dhtv1.GobCodec{})}, grpcOpts...)
	s := &Server{
		grpcServer: grpc.NewServer(allOpts...),
		listener:   lis,
		lgr:        &logger.NopLogger{}, // default: no logging
	}
	// Apply functional options (logger)
	for _, opt := range srvOpts {
		opt(s)
	}
	// Register the DHT service with a reference to node
	dhtv1.RegisterDHTServer(s.grpcServer, NewDHTService(n))
	return s, nil
}

// Start runs the gRPC server and blocks until it stops.
// It returns any error from grpc.Server.Serve.
func (s *Server) Start() error {
	if err := s.grpcServer.Serve(s.listener); err != nil {
		return fmt.Errorf("gRPC server stopped: %w", err)
	}
	return nil
}

// Stop immediately stops the server and closes all active connections.
func (s *Server) Stop() {
	s.grpcServer.Stop()
}

// GracefulStop gracefully shuts down the server,
// waiting for in-flight RPCs to complete.
func (s *Server) GracefulStop() {
	s.grpcServer.GracefulStop()
}
