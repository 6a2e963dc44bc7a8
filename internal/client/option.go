package client

import (
	"ChordDHT/internal/logger"

	"google.golang.org/grpc"
)

type Option func(pool *Pool)

// WithLogger sets the logger used by the client pool.
func WithLogger(l logger.Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.lgr = l
		}
	}
}

// WithDialOptions overrides the gRPC dial options used for every
// connection the pool opens, replacing the insecure-transport default.
func WithDialOptions(opts ...grpc.DialOption) Option {
	return func(p *Pool) {
		p.dialOpts = opts
	}
}
