package v1

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

// GobCodec is a minimal encoding.Codec (as defined by
// google.golang.org/grpc/encoding) that marshals the hand-written
// message structs in this package using encoding/gob instead of
// protobuf wire encoding.
//
// It is installed per-connection via grpc.ForceServerCodec /
// grpc.ForceCodec rather than registered globally with
// encoding.RegisterCodec, so it never shadows the proto codec other
// packages in the process may rely on.
type GobCodec struct{}

// Name reports the codec's wire identifier, sent in the content-subtype
// of the gRPC request.
func (GobCodec) Name() string { return "gob" }

// Marshal gob-encodes v.
func (GobCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, fmt.Errorf("gob codec: marshal failed: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal gob-decodes data into v.
func (GobCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(v); err != nil {
		return fmt.Errorf("gob codec: unmarshal failed: %w", err)
	}
	return nil
}
