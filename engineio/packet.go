package engineio

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrNotMessage is returned when a frame carries something other than a message packet
var ErrNotMessage = errors.New("not a message frame")

// PacketType represents Engine.IO packet types
type PacketType byte

const (
	PacketTypeOpen PacketType = iota
	PacketTypeClose
	PacketTypePing
	PacketTypePong
	PacketTypeMessage
	PacketTypeUpgrade
	PacketTypeNoop
)

// Frame is a single Engine.IO packet as it would travel over the transport
type Frame struct {
	Type PacketType
	Data []byte
}

// Message wraps an encoded Socket.IO packet in a message frame
func Message(data string) *Frame {
	return &Frame{Type: PacketTypeMessage, Data: []byte(data)}
}

// Bytes returns the frame in its text encoding: one type digit followed by the data
func (f *Frame) Bytes() []byte {
	out := make([]byte, 0, len(f.Data)+1)
	out = append(out, byte('0'+f.Type))
	return append(out, f.Data...)
}

// ParseFrame decodes bytes produced by Bytes
func ParseFrame(data []byte) (*Frame, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty packet")
	}

	typeChar := data[0]
	if typeChar < '0' || typeChar > '6' {
		return nil, fmt.Errorf("invalid packet type: %c", typeChar)
	}

	frame := &Frame{Type: PacketType(typeChar - '0')}
	if len(data) > 1 {
		frame.Data = append([]byte(nil), data[1:]...)
	}
	return frame, nil
}

// Unwrap returns the Socket.IO payload carried by a message frame
func Unwrap(data []byte) (string, error) {
	frame, err := ParseFrame(data)
	if err != nil {
		return "", err
	}
	if frame.Type != PacketTypeMessage {
		return "", fmt.Errorf("%w: got %s", ErrNotMessage, frame.Type)
	}
	return string(frame.Data), nil
}

// String returns the packet type as a string
func (pt PacketType) String() string {
	switch pt {
	case PacketTypeOpen:
		return "open"
	case PacketTypeClose:
		return "close"
	case PacketTypePing:
		return "ping"
	case PacketTypePong:
		return "pong"
	case PacketTypeMessage:
		return "message"
	case PacketTypeUpgrade:
		return "upgrade"
	case PacketTypeNoop:
		return "noop"
	default:
		return "unknown(" + strconv.Itoa(int(pt)) + ")"
	}
}
