package socketmock

// Client is the client half of a mocked socket
type Client struct {
	server   *Server
	handlers *registry[Handler]
}

func newClient(server *Server) *Client {
	return &Client{
		server:   server,
		handlers: newRegistry[Handler](),
	}
}

// ID returns the socket ID shared by both halves
func (c *Client) ID() string {
	return c.server.id
}

// Server returns the paired server socket
func (c *Client) Server() *Server {
	return c.server
}

// On registers the handler for events emitted by the server. A nil handler
// removes the registration.
func (c *Client) On(event string, handler Handler) {
	if handler == nil {
		c.handlers.delete(event)
		return
	}
	c.handlers.set(event, handler)
}

// Off removes the handler for event
func (c *Client) Off(event string) {
	c.handlers.delete(event)
}

// Emit sends an event to the server and calls each ack with the server
// handler's result. A nil payload is sent as null.
func (c *Client) Emit(event string, payload interface{}, ack ...AckHandler) error {
	result, err := c.server.EmitEvent(event, payload)
	if err != nil {
		return err
	}

	for _, fn := range ack {
		if fn != nil {
			fn(result)
		}
	}
	return nil
}

// FireEvent delivers a server-initiated event. The payload is handed to the
// handler as is; callers are expected to have copied it already.
func (c *Client) FireEvent(event string, payload interface{}) error {
	handler, ok := c.handlers.get(event)
	if !ok {
		return nil
	}

	leave, err := c.server.enter("client", event)
	if err != nil {
		return err
	}
	defer leave()

	c.server.logger.Debug().
		Str("side", "client").
		Str("event", event).
		Interface("payload", payload).
		Msg("event dispatched")

	handler(payload)
	return nil
}

// Broadcast does nothing: a lone client has nobody else to reach
func (c *Client) Broadcast(event string, payload interface{}) {}
