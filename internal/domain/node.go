package domain

import (
	dhtv1 "ChordDHT/internal/api/dht/v1"
)

// Node is a Chord ring participant: an identifier and the network
// address at which its RPC surface is reachable.
type Node struct {
	ID   ID     // identifier in the 2^M ring
	Addr string // network address, e.g. "127.0.0.1:5000"
}

// ToProto converts a Node into its wire representation.
func (n *Node) ToProto() *dhtv1.Node {
	if n == nil {
		return nil
	}
	return &dhtv1.Node{
		Id:      []byte(n.ID),
		Address: n.Addr,
	}
}

// NodeFromProto reconstructs a Node from its wire representation.
// Returns nil if given a nil message.
func NodeFromProto(p *dhtv1.Node) *Node {
	if p == nil {
		return nil
	}
	return &Node{
		ID:   ID(p.Id),
		Addr: p.Address,
	}
}
