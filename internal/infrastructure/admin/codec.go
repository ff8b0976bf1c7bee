package admin

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// codecName is the gRPC content-subtype ("application/grpc+json") the
// SessionIntrospection service is invoked under. There is no protobuf
// schema for this service — requests and responses are plain structs
// marshaled as JSON — so the standard "proto" codec built into
// google.golang.org/grpc is bypassed entirely for this one service.
const codecName = "json"

// jsonCodec implements encoding.Codec by delegating straight to
// encoding/json. It is registered globally via encoding.RegisterCodec in
// init, the same mechanism a protoc-generated codec would use.
type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return codecName
}
