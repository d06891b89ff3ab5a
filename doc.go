// Package socketmock provides an in-memory Socket.IO socket pair for unit tests.
//
// A Server and its Client are created together and talk to each other
// synchronously, without goroutines or network connections. Every delivery
// goes through the Socket.IO and Engine.IO packet encoding, so the receiving
// handler gets a copy of the payload and never shares memory with the sender.
//
// # Quick Start
//
//	socket := socketmock.New()
//
//	socket.On("message", func(payload interface{}) interface{} {
//	    msg := payload.(map[string]interface{})
//	    return msg["text"]
//	})
//
//	socket.Client().Emit("message", map[string]interface{}{"text": "hi"},
//	    func(result interface{}) {
//	        log.Printf("server answered: %v", result)
//	    })
//
// Payloads are decoded into a fresh value of the type that was sent. Maps
// of interface{} follow encoding/json rules, so numbers arrive as float64.
//
// # Server to client
//
//	socket.Client().On("news", func(payload interface{}) interface{} {
//	    log.Printf("news: %v", payload)
//	    return nil
//	})
//	socket.Emit("news", "Hello!")
//
// Broadcast is the same as Emit because there is only one client. The
// client's own Broadcast does nothing.
//
// # Rooms
//
// Join and Leave record membership in join order. BroadcastTo does not
// filter by membership; it hands the payload and room to the general
// handler registered with OnEmit:
//
//	socket.OnEmit("news", func(payload interface{}, room string) {
//	    log.Printf("%s got %v", room, payload)
//	})
//	socket.BroadcastTo("room1").Emit("news", "Hello room!")
//
// # Errors
//
// Emitting an event nobody listens to is not an error. Emits fail only when
// the payload cannot be encoded (ErrPayloadNotSerializable) or when handlers
// re-emit into each other deeper than Config.MaxDepth (ErrMaxDepthExceeded).
//
// # Thread Safety
//
// Registration and room calls are goroutine-safe. Delivery runs the handler
// on the caller's goroutine, and the depth limit assumes one pair is driven
// from one goroutine at a time.
package socketmock
