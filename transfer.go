package socketmock

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/ramory-l/socketmock/engineio"
)

var (
	ErrPayloadNotSerializable = errors.New("payload not serializable")
	ErrMaxDepthExceeded       = errors.New("max dispatch depth exceeded")
)

// transfer sends payload through the same encoding a real socket would use
// and returns what the receiving side decodes. The result is a fresh value of
// the payload's dynamic type that shares no memory with the original.
func transfer(namespace, event string, payload interface{}) (interface{}, error) {
	encoded, err := eventPacket(namespace, event, payload).Encode()
	if err != nil {
		return nil, fmt.Errorf("emit %q: %w: %w", event, ErrPayloadNotSerializable, err)
	}

	data, err := engineio.Unwrap(engineio.Message(encoded).Bytes())
	if err != nil {
		return nil, fmt.Errorf("emit %q: %w", event, err)
	}

	packet, err := DecodePacket(data)
	if err != nil {
		return nil, fmt.Errorf("emit %q: %w: %w", event, ErrPayloadNotSerializable, err)
	}

	_, args, err := packet.Event()
	if err != nil {
		return nil, fmt.Errorf("emit %q: %w", event, err)
	}

	if payload == nil || len(args) == 0 {
		return nil, nil
	}

	target := reflect.New(reflect.TypeOf(payload))
	if err := json.Unmarshal(args[0], target.Interface()); err != nil {
		return nil, fmt.Errorf("emit %q: %w: %w", event, ErrPayloadNotSerializable, err)
	}

	return target.Elem().Interface(), nil
}
