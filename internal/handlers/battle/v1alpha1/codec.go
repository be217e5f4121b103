package v1alpha1

import (
	"encoding/json"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/nyanko-battle/internal/errors"
)

// DecodeStruct unmarshals a Struct payload into v through its JSON form
func DecodeStruct(req *structpb.Struct, v any) error {
	if req == nil {
		req = &structpb.Struct{}
	}

	data, err := protojson.Marshal(req)
	if err != nil {
		return errors.Wrap(err, "failed to read request")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.InvalidArgumentf("malformed request: %v", err)
	}
	return nil
}

// EncodeStruct marshals v into a Struct payload through its JSON form
func EncodeStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode response")
	}

	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, errors.Wrap(err, "failed to encode response")
	}
	return out, nil
}
