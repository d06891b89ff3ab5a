package socketmock

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// PacketType represents Socket.IO packet types
type PacketType int

const (
	PacketTypeConnect PacketType = iota
	PacketTypeDisconnect
	PacketTypeEvent
	PacketTypeAck
	PacketTypeConnectError
	PacketTypeBinaryEvent
	PacketTypeBinaryAck
)

// Packet represents a Socket.IO packet.
//
// Data is marshalled as-is by Encode. DecodePacket leaves it as a
// json.RawMessage so the receiver can pick the target type.
type Packet struct {
	Type      PacketType
	Namespace string
	Data      interface{}
	ID        *int
}

// eventPacket builds an EVENT packet carrying [event, payload]
func eventPacket(namespace, event string, payload interface{}) *Packet {
	return &Packet{
		Type:      PacketTypeEvent,
		Namespace: namespace,
		Data:      []interface{}{event, payload},
	}
}

// Encode encodes a Socket.IO packet to string
func (p *Packet) Encode() (string, error) {
	var builder strings.Builder

	builder.WriteString(strconv.Itoa(int(p.Type)))

	if p.Namespace != "" && p.Namespace != "/" {
		builder.WriteString(p.Namespace)
		builder.WriteByte(',')
	}

	if p.ID != nil {
		builder.WriteString(strconv.Itoa(*p.ID))
	}

	if p.Data != nil {
		jsonData, err := json.Marshal(p.Data)
		if err != nil {
			return "", fmt.Errorf("failed to marshal packet data: %w", err)
		}
		builder.Write(jsonData)
	}

	return builder.String(), nil
}

// DecodePacket decodes a Socket.IO packet from string
func DecodePacket(data string) (*Packet, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty packet")
	}

	packet := &Packet{
		Namespace: "/",
	}

	pos := 0

	if data[pos] < '0' || data[pos] > '6' {
		return nil, fmt.Errorf("invalid packet type: %c", data[pos])
	}
	packet.Type = PacketType(data[pos] - '0')
	pos++

	if pos >= len(data) {
		return packet, nil
	}

	if data[pos] == '/' {
		end := strings.IndexByte(data[pos:], ',')
		if end == -1 {
			packet.Namespace = data[pos:]
			return packet, nil
		}
		packet.Namespace = data[pos : pos+end]
		pos += end + 1
	}

	if pos >= len(data) {
		return packet, nil
	}

	if data[pos] >= '0' && data[pos] <= '9' {
		end := pos
		for end < len(data) && data[end] >= '0' && data[end] <= '9' {
			end++
		}
		id, _ := strconv.Atoi(data[pos:end])
		packet.ID = &id
		pos = end
	}

	if pos >= len(data) {
		return packet, nil
	}

	raw := json.RawMessage(data[pos:])
	if !json.Valid(raw) {
		return nil, fmt.Errorf("failed to unmarshal packet data: invalid JSON")
	}
	packet.Data = raw

	return packet, nil
}

// Event splits a decoded EVENT packet into its name and raw arguments
func (p *Packet) Event() (string, []json.RawMessage, error) {
	if p.Type != PacketTypeEvent {
		return "", nil, fmt.Errorf("packet is %s, not event", p.Type)
	}

	raw, ok := p.Data.(json.RawMessage)
	if !ok {
		return "", nil, fmt.Errorf("packet data is not raw JSON")
	}

	var args []json.RawMessage
	if err := json.Unmarshal(raw, &args); err != nil {
		return "", nil, fmt.Errorf("failed to unmarshal event args: %w", err)
	}
	if len(args) == 0 {
		return "", nil, fmt.Errorf("event packet without name")
	}

	var name string
	if err := json.Unmarshal(args[0], &name); err != nil {
		return "", nil, fmt.Errorf("event name is not a string: %w", err)
	}

	return name, args[1:], nil
}

// String returns the packet type as a string
func (pt PacketType) String() string {
	switch pt {
	case PacketTypeConnect:
		return "connect"
	case PacketTypeDisconnect:
		return "disconnect"
	case PacketTypeEvent:
		return "event"
	case PacketTypeAck:
		return "ack"
	case PacketTypeConnectError:
		return "connect_error"
	case PacketTypeBinaryEvent:
		return "binary_event"
	case PacketTypeBinaryAck:
		return "binary_ack"
	default:
		return "unknown"
	}
}
