package socketmock

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mock.Mock
}

func (r *recorder) handle(payload interface{}) interface{} {
	args := r.MethodCalled("handle", payload)
	return args.Get(0)
}

func song() map[string]interface{} {
	return map[string]interface{}{
		"never": "gonna",
		"gonna": "give",
		"give":  "you",
		"you":   []interface{}{"up"},
	}
}

func TestNewPairsServerAndClient(t *testing.T) {
	socket := New()

	require.NotNil(t, socket.Client())
	assert.Same(t, socket, socket.Client().Server())
	assert.Equal(t, socket.ID(), socket.Client().ID())

	_, err := uuid.Parse(socket.ID())
	assert.NoError(t, err)
	assert.NotEqual(t, socket.ID(), New().ID())
}

func TestEmitEventUsesLastRegisteredHandler(t *testing.T) {
	socket := New()

	first := &recorder{}
	second := &recorder{}
	second.On("handle", song()).Return("second").Once()

	socket.On("test", first.handle)
	socket.On("test", second.handle)

	result, err := socket.EmitEvent("test", song())
	require.NoError(t, err)
	assert.Equal(t, "second", result)

	first.AssertNotCalled(t, "handle", mock.Anything)
	second.AssertExpectations(t)
}

func TestEmitEventCopiesPayload(t *testing.T) {
	socket := New()
	sent := song()

	var received map[string]interface{}
	socket.On("test", func(payload interface{}) interface{} {
		received = payload.(map[string]interface{})
		return nil
	})

	_, err := socket.EmitEvent("test", sent)
	require.NoError(t, err)

	assert.Equal(t, sent, received)
	assert.NotEqual(t, reflect.ValueOf(sent).Pointer(), reflect.ValueOf(received).Pointer())
}

func TestEmitEventWithoutHandler(t *testing.T) {
	socket := New()

	result, err := socket.EmitEvent("missing", song())
	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestOffAndNilHandlerRemoveRegistration(t *testing.T) {
	socket := New()
	called := 0
	handler := func(payload interface{}) interface{} {
		called++
		return nil
	}

	socket.On("a", handler)
	socket.Off("a")
	socket.On("b", handler)
	socket.On("b", nil)

	for _, event := range []string{"a", "b"} {
		_, err := socket.EmitEvent(event, nil)
		require.NoError(t, err)
	}
	assert.Zero(t, called)
}

func TestEmitFiresClientHandler(t *testing.T) {
	socket := New()

	var received interface{}
	calls := 0
	socket.Client().On("test", func(payload interface{}) interface{} {
		calls++
		received = payload
		return nil
	})

	require.NoError(t, socket.Emit("test", song()))
	assert.Equal(t, 1, calls)
	assert.Equal(t, song(), received)
}

func TestEmitWithoutClientHandler(t *testing.T) {
	socket := New()
	assert.NoError(t, socket.Emit("nobody", "listening"))
}

func TestBroadcastReachesClient(t *testing.T) {
	socket := New()

	var received interface{}
	socket.Client().On("test", func(payload interface{}) interface{} {
		received = payload
		return nil
	})

	require.NoError(t, socket.Broadcast("test", "hello"))
	assert.Equal(t, "hello", received)
}

func TestEmitWithAck(t *testing.T) {
	socket := New()
	socket.On("ping", func(payload interface{}) interface{} {
		return "pong " + payload.(string)
	})

	var acked interface{}
	err := socket.EmitWithAck("ping", func(result interface{}) {
		acked = result
	}, "there")
	require.NoError(t, err)
	assert.Equal(t, "pong there", acked)
}

func TestBroadcastToCallsGeneralHandler(t *testing.T) {
	socket := New()

	type call struct {
		payload interface{}
		room    string
	}
	var calls []call
	socket.OnEmit("test", func(payload interface{}, room string) {
		calls = append(calls, call{payload: payload, room: room})
	})

	require.NoError(t, socket.BroadcastTo("room1").Emit("test", map[string]interface{}{"test": "123"}))
	require.NoError(t, socket.BroadcastTo("never-joined").Emit("test", "x"))
	require.NoError(t, socket.BroadcastTo("room1").Emit("other", "ignored"))

	require.Len(t, calls, 2)
	assert.Equal(t, call{payload: map[string]interface{}{"test": "123"}, room: "room1"}, calls[0])
	assert.Equal(t, call{payload: "x", room: "never-joined"}, calls[1])
}

func TestBroadcastToDoesNotReachClient(t *testing.T) {
	socket := New()
	socket.Client().On("test", func(payload interface{}) interface{} {
		t.Fatal("client handler must not run for room broadcasts")
		return nil
	})

	target := socket.BroadcastTo("room1")
	assert.Equal(t, "room1", target.Room())
	assert.NoError(t, target.Emit("test", "x"))
}

func TestOnEmitOverwrites(t *testing.T) {
	socket := New()
	var got []string
	socket.OnEmit("test", func(payload interface{}, room string) { got = append(got, "first") })
	socket.OnEmit("test", func(payload interface{}, room string) { got = append(got, "second") })

	require.NoError(t, socket.BroadcastTo("r").Emit("test", nil))
	assert.Equal(t, []string{"second"}, got)
}

func TestRooms(t *testing.T) {
	t.Run("join appends", func(t *testing.T) {
		socket := New()
		socket.Join("room")
		socket.Join("lobby")
		assert.Equal(t, []string{"room", "lobby"}, socket.Rooms())
	})

	t.Run("leave after join empties", func(t *testing.T) {
		socket := New()
		socket.Join("room")
		assert.Equal(t, "room", socket.Rooms()[0])

		socket.Leave("room")
		assert.Empty(t, socket.Rooms())
	})

	t.Run("leave unknown is a no-op", func(t *testing.T) {
		socket := New()
		socket.Join("room")
		assert.NotPanics(t, func() { socket.Leave("other") })
		assert.Equal(t, []string{"room"}, socket.Rooms())
	})

	t.Run("duplicates removed one at a time", func(t *testing.T) {
		socket := New()
		socket.Join("a")
		socket.Join("b")
		socket.Join("a")

		socket.Leave("a")
		assert.Equal(t, []string{"b", "a"}, socket.Rooms())
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		socket := New()
		socket.Join("a")
		rooms := socket.Rooms()
		rooms[0] = "changed"
		assert.Equal(t, []string{"a"}, socket.Rooms())
	})
}

func TestOfReturnsSameSocket(t *testing.T) {
	socket := New()
	assert.Same(t, socket, socket.Of("/admin"))
	assert.Equal(t, "/", socket.Namespace())
}

func TestConnectClient(t *testing.T) {
	socket := New()
	assert.NoError(t, socket.ConnectClient())

	var got interface{}
	socket.On("connect", func(payload interface{}) interface{} {
		got = payload
		return nil
	})

	require.NoError(t, socket.ConnectClient())
	assert.Same(t, socket.Client(), got)
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	socket := NewServer(&Config{Logger: &logger})

	socket.On("test", func(payload interface{}) interface{} { return nil })
	require.NoError(t, socket.Client().Emit("test", "hi"))
	assert.NotPanics(t, func() { socket.Monitor("watching") })

	out := buf.String()
	assert.Contains(t, out, `"message":"event dispatched"`)
	assert.Contains(t, out, `"event":"test"`)
	assert.Contains(t, out, `"value":"watching"`)
	assert.Contains(t, out, socket.ID())
}

func TestMonitorWithoutLogger(t *testing.T) {
	assert.NotPanics(t, func() { New().Monitor(map[string]int{"a": 1}) })
}
