package socketmock

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultMaxDepth bounds how deeply handlers may re-emit into each other
const DefaultMaxDepth = 64

// Config represents mock socket configuration
type Config struct {
	// MaxDepth is the deepest chain of nested deliveries allowed before an
	// emit fails with ErrMaxDepthExceeded. Zero means DefaultMaxDepth and a
	// negative value disables the limit.
	MaxDepth int

	// Logger receives dispatch traces at debug level. Nil disables logging.
	Logger *zerolog.Logger
}

// DefaultConfig returns the configuration used by New
func DefaultConfig() *Config {
	return &Config{
		MaxDepth: DefaultMaxDepth,
	}
}

// Server is the server half of a mocked socket. It owns exactly one Client.
type Server struct {
	id              string
	namespace       string
	config          Config
	logger          zerolog.Logger
	handlers        *registry[Handler]
	generalHandlers *registry[GeneralHandler]
	rooms           roomSet
	depth           atomic.Int32
	client          *Client
}

// New creates a server socket and its paired client with default configuration
func New() *Server {
	return NewServer(nil)
}

// NewServer creates a server socket and its paired client
func NewServer(config *Config) *Server {
	if config == nil {
		config = DefaultConfig()
	}

	cfg := *config
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	server := &Server{
		id:              uuid.NewString(),
		namespace:       "/",
		config:          cfg,
		handlers:        newRegistry[Handler](),
		generalHandlers: newRegistry[GeneralHandler](),
	}
	server.logger = logger.With().Str("sid", server.id).Logger()
	server.client = newClient(server)

	return server
}

// ID returns the socket ID shared by both halves
func (s *Server) ID() string {
	return s.id
}

// Client returns the paired client socket
func (s *Server) Client() *Client {
	return s.client
}

// On registers the handler for events emitted by the client. A nil handler
// removes the registration.
func (s *Server) On(event string, handler Handler) {
	if handler == nil {
		s.handlers.delete(event)
		return
	}
	s.handlers.set(event, handler)
}

// Off removes the handler for event
func (s *Server) Off(event string) {
	s.handlers.delete(event)
}

// EmitEvent delivers an event from the client to this server. It returns the
// handler's result, or nil when no handler is registered.
func (s *Server) EmitEvent(event string, payload interface{}) (interface{}, error) {
	handler, ok := s.handlers.get(event)
	if !ok {
		return nil, nil
	}

	data, err := transfer(s.namespace, event, payload)
	if err != nil {
		return nil, err
	}

	leave, err := s.enter("server", event)
	if err != nil {
		return nil, err
	}
	defer leave()

	s.logger.Debug().
		Str("side", "server").
		Str("event", event).
		Interface("payload", data).
		Msg("event dispatched")

	return handler(data), nil
}

// Emit sends an event to the client
func (s *Server) Emit(event string, payload interface{}) error {
	data, err := transfer(s.namespace, event, payload)
	if err != nil {
		return err
	}
	return s.client.FireEvent(event, data)
}

// EmitWithAck hands a copy of payload to the client's Emit and passes the
// result to ack.
func (s *Server) EmitWithAck(event string, ack AckHandler, payload interface{}) error {
	data, err := transfer(s.namespace, event, payload)
	if err != nil {
		return err
	}
	return s.client.Emit(event, data, ack)
}

// Broadcast sends to every other client. With a single client this is Emit.
func (s *Server) Broadcast(event string, payload interface{}) error {
	return s.Emit(event, payload)
}

// OnEmit registers the general handler that observes BroadcastTo emits of event
func (s *Server) OnEmit(event string, handler GeneralHandler) {
	if handler == nil {
		s.generalHandlers.delete(event)
		return
	}
	s.generalHandlers.set(event, handler)
}

// BroadcastTo returns a target for emitting to everyone in room
func (s *Server) BroadcastTo(room string) RoomTarget {
	return RoomTarget{server: s, room: room}
}

// Join adds the socket to a room
func (s *Server) Join(room string) {
	s.rooms.add(room)
}

// Leave removes the first membership of room. Leaving a room that was never
// joined does nothing.
func (s *Server) Leave(room string) {
	if !s.rooms.remove(room) {
		s.logger.Debug().Str("room", room).Msg("leave for room not joined")
	}
}

// Rooms returns joined rooms in join order
func (s *Server) Rooms() []string {
	return s.rooms.list()
}

// Monitor logs value
func (s *Server) Monitor(value interface{}) {
	s.logger.Debug().Interface("value", value).Msg("monitor")
}

// Of returns the socket for namespace name. Namespaces are not routed, so
// every name resolves to the receiver.
func (s *Server) Of(name string) *Server {
	s.logger.Debug().Str("namespace", name).Msg("namespace requested")
	return s
}

// Namespace returns the namespace every packet is sent on
func (s *Server) Namespace() string {
	return s.namespace
}

// ConnectClient fires the server's "connect" handler with the paired client
func (s *Server) ConnectClient() error {
	handler, ok := s.handlers.get("connect")
	if !ok {
		return nil
	}

	leave, err := s.enter("server", "connect")
	if err != nil {
		return err
	}
	defer leave()

	s.logger.Debug().Str("side", "server").Str("event", "connect").Msg("client connected")
	handler(s.client)
	return nil
}

// enter records one more nested delivery. The returned func must be called
// once the handler returns.
func (s *Server) enter(side, event string) (func(), error) {
	depth := s.depth.Add(1)
	if s.config.MaxDepth >= 0 && int(depth) > s.config.MaxDepth {
		s.depth.Add(-1)
		s.logger.Warn().
			Str("side", side).
			Str("event", event).
			Int("max_depth", s.config.MaxDepth).
			Msg("dispatch depth exceeded")
		return nil, fmt.Errorf("%s event %q: %w", side, event, ErrMaxDepthExceeded)
	}
	return func() { s.depth.Add(-1) }, nil
}
