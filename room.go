package socketmock

import "sync"

// roomSet keeps joined rooms in join order. Duplicates are kept.
type roomSet struct {
	rooms []string
	mu    sync.RWMutex
}

func (r *roomSet) add(room string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rooms = append(r.rooms, room)
}

// remove drops the first occurrence of room and reports whether it was found
func (r *roomSet) remove(room string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, joined := range r.rooms {
		if joined == room {
			r.rooms = append(r.rooms[:i], r.rooms[i+1:]...)
			return true
		}
	}
	return false
}

func (r *roomSet) list() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, len(r.rooms))
	copy(result, r.rooms)
	return result
}

// RoomTarget emits to the general handlers on behalf of one room.
// It is returned by Server.BroadcastTo.
type RoomTarget struct {
	server *Server
	room   string
}

// Room returns the room this target addresses
func (t RoomTarget) Room() string {
	return t.room
}

// Emit invokes the general handler registered for event with a copy of
// payload and the target room. It does nothing when no handler is registered.
func (t RoomTarget) Emit(event string, payload interface{}) error {
	handler, ok := t.server.generalHandlers.get(event)
	if !ok {
		return nil
	}

	data, err := transfer(t.server.namespace, event, payload)
	if err != nil {
		return err
	}

	leave, err := t.server.enter("room", event)
	if err != nil {
		return err
	}
	defer leave()

	t.server.logger.Debug().
		Str("event", event).
		Str("room", t.room).
		Interface("payload", data).
		Msg("broadcast to room dispatched")

	handler(data, t.room)
	return nil
}
