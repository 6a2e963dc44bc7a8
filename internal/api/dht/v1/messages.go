// Package v1 defines the wire contract of the DHT gRPC service: the
// request/response structs exchanged between Chord nodes.
//
// No protoc toolchain is available in this environment, so these are
// hand-written Go structs (not protoc-gen-go output) paired with a
// custom gob-based codec (see codec.go) instead of protobuf wire
// encoding. Field names and shape otherwise mirror what a .proto
// definition of this surface would generate.
package v1

// Empty is the argument/return value for RPCs that carry no payload
// (Id, Active, Info, Successor, Predecessor, SuccessorList, Notify,
// NotifyPredecessorLeaving, NotifySuccessorLeaving, Ping). It is a
// hand-written stand-in for google.protobuf.Empty: the gob codec
// refuses to encode emptypb.Empty, since all of its fields are
// unexported, so every empty message on this wire uses this type
// instead.
type Empty struct{}

// Node is the wire representation of a ring participant.
type Node struct {
	Id      []byte
	Address string
}

// IdResponse carries a node's identifier.
type IdResponse struct {
	Id []byte
}

// ActiveResponse carries a node's active flag.
type ActiveResponse struct {
	Active bool
}

// NodeList is a sequence of nodes, used for successor lists and
// successor-candidate results.
type NodeList struct {
	Nodes []*Node
}

// FindSuccessorRequest asks for the owner of TargetId.
type FindSuccessorRequest struct {
	TargetId []byte
}

// FindSuccessorResponse carries the resolved successor.
type FindSuccessorResponse struct {
	Node *Node
}

// FindPredecessorRequest asks for the predecessor of TargetId's owner.
type FindPredecessorRequest struct {
	TargetId []byte
}

// FindPredecessorResponse carries the resolved predecessor hop.
type FindPredecessorResponse struct {
	Node *Node
}

// ClosestPrecedingFingerRequest asks a node to scan its own finger table.
type ClosestPrecedingFingerRequest struct {
	TargetId []byte
}

// ClosestPrecedingFingerResponse carries the closest preceding finger found.
type ClosestPrecedingFingerResponse struct {
	Node *Node
}

// NotifyPredecessorLeavingRequest informs the successor that Node is
// leaving and proposes NewPredecessor (may be nil) as its replacement.
type NotifyPredecessorLeavingRequest struct {
	Node           *Node
	NewPredecessor *Node
}

// NotifySuccessorLeavingRequest informs the predecessor that Node is
// leaving and supplies its successor list for continuity.
type NotifySuccessorLeavingRequest struct {
	Node       *Node
	Successors []*Node
}

// SuccessorCandidatesRequest asks for up to Max nodes responsible for Id.
type SuccessorCandidatesRequest struct {
	TargetId []byte
	Max      int32
}

// SuccessorCandidatesResponse carries the candidate list. Found is false
// when both the find_successor and find_predecessor fallbacks failed.
type SuccessorCandidatesResponse struct {
	Nodes []*Node
	Found bool
}
