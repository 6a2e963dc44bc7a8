package client

import (
	dhtv1 "ChordDHT/internal/api/dht/v1"
	"ChordDHT/internal/logger"
	"fmt"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// connEntry is a pooled gRPC connection shared by every routing-table
// slot (finger, successor-list entry, predecessor) that currently
// points at the same address. Reference counted so a slot swap that
// merely moves a node from one slot to another does not tear the
// connection down and redial it.
type connEntry struct {
	conn *grpc.ClientConn
	cli  dhtv1.DHTClient
	refs int
}

// Pool manages reusable gRPC connections to peer nodes.
//
// Entries are reference counted: AddRef dials (once) and increments,
// Release decrements and closes on reaching zero. Get looks up an
// existing entry without touching its count, for callers that only
// need to issue one RPC against a connection someone else owns.
type Pool struct {
	lgr            logger.Logger
	mu             sync.RWMutex
	conns          map[string]*connEntry
	dialOpts       []grpc.DialOption
	failureTimeout time.Duration
}

// New creates an empty connection pool. failureTimeout is the default
// per-RPC deadline the node package applies to stabilization calls;
// it is stored here purely so callers can retrieve it alongside the
// pool without threading a second value through every maintenance
// function.
func New(failureTimeout time.Duration, opts ...Option) *Pool {
	p := &Pool{
		lgr:            &logger.NopLogger{},
		conns:          make(map[string]*connEntry),
		failureTimeout: failureTimeout,
		dialOpts: []grpc.DialOption{
			grpc.WithTransportCredentials(insecure.NewCredentials()),
			grpc.WithDefaultCallOptions(grpc.ForceCodec(dhtv1.GobCodec{})),
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FailureTimeout returns the default RPC deadline for this pool.
func (p *Pool) FailureTimeout() time.Duration {
	return p.failureTimeout
}

func (p *Pool) dial(addr string) (*grpc.ClientConn, dhtv1.DHTClient, error) {
	conn, err := grpc.NewClient(addr, p.dialOpts...)
	if err != nil {
		return nil, nil, fmt.Errorf("client pool: dial %s: %w", addr, err)
	}
	return conn, dhtv1.NewDHTClient(conn), nil
}

// AddRef ensures a connection to addr exists, dialing it if this is
// the first reference, and increments its reference count.
func (p *Pool) AddRef(addr string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if e, ok := p.conns[addr]; ok {
		e.refs++
		return nil
	}
	conn, cli, err := p.dial(addr)
	if err != nil {
		return err
	}
	p.conns[addr] = &connEntry{conn: conn, cli: cli, refs: 1}
	p.lgr.Info("client pool: connection opened", logger.F("addr", addr))
	return nil
}

// Release decrements addr's reference count, closing and removing the
// connection once it drops to zero. Releasing an address with no
// tracked references is a no-op.
func (p *Pool) Release(addr string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.conns[addr]
	if !ok {
		return nil
	}
	e.refs--
	if e.refs > 0 {
		return nil
	}
	delete(p.conns, addr)
	if err := e.conn.Close(); err != nil {
		return fmt.Errorf("client pool: close %s: %w", addr, err)
	}
	p.lgr.Info("client pool: connection closed", logger.F("addr", addr))
	return nil
}

// Get returns the DHT client stub for an already-referenced address.
// It does not affect the reference count and does not dial.
func (p *Pool) Get(addr string) (dhtv1.DHTClient, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	e, ok := p.conns[addr]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrClientNotInPool, addr)
	}
	return e.cli, nil
}

// DialEphemeral opens an unreferenced, one-shot connection for a
// single call against a node the pool has no standing reference to
// (e.g. the bootstrap node, or a successor candidate during
// stabilization promotion). The caller owns the returned connection
// and must close it.
func (p *Pool) DialEphemeral(addr string) (dhtv1.DHTClient, *grpc.ClientConn, error) {
	conn, cli, err := p.dial(addr)
	if err != nil {
		return nil, nil, err
	}
	return cli, conn, nil
}

// DebugLog logs the current set of pooled connections and their
// reference counts, for diagnostics.
func (p *Pool) DebugLog() {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for addr, e := range p.conns {
		p.lgr.Debug("client pool entry", logger.F("addr", addr), logger.F("refs", e.refs))
	}
}

// Close tears down every pooled connection, regardless of reference
// count. Intended for node shutdown.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for addr, e := range p.conns {
		if err := e.conn.Close(); err != nil {
			return fmt.Errorf("client pool: close %s: %w", addr, err)
		}
		delete(p.conns, addr)
	}
	return nil
}
