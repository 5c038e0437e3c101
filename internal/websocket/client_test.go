package websocket

import (
	"errors"
	"sync"
	"testing"
	"time"

	"cassie-be/internal/dto"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type frame struct {
	kind int
	data []byte
}

// fakeConn blocks reads until hangUp is called and records writes.
type fakeConn struct {
	mu      sync.Mutex
	written []frame
	closed  bool
	gone    chan struct{}
	once    sync.Once
}

func newFakeConn() *fakeConn {
	return &fakeConn{gone: make(chan struct{})}
}

func (f *fakeConn) hangUp() { f.once.Do(func() { close(f.gone) }) }

func (f *fakeConn) SetReadLimit(int64)                {}
func (f *fakeConn) SetReadDeadline(time.Time) error   { return nil }
func (f *fakeConn) SetWriteDeadline(time.Time) error  { return nil }
func (f *fakeConn) SetPongHandler(func(string) error) {}
func (f *fakeConn) ReadMessage() (int, []byte, error) {
	<-f.gone
	return 0, nil, errors.New("peer gone")
}

func (f *fakeConn) WriteMessage(kind int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.written = append(f.written, frame{kind: kind, data: data})
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) kinds() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []int
	for _, fr := range f.written {
		out = append(out, fr.kind)
	}
	return out
}

func TestServe_DeliversUntilPeerLeaves(t *testing.T) {
	hub := runHub(t)
	userID := uuid.New()
	fc := newFakeConn()

	done := make(chan struct{})
	go func() {
		serve(hub, fc, userID)
		close(done)
	}()
	require.Eventually(t, func() bool { return hub.ClientCount(userID) == 1 }, time.Second, 5*time.Millisecond)

	hub.Send(userID, dto.NotificationResponse{Title: "Your plan is active"})
	require.Eventually(t, func() bool {
		return len(fc.kinds()) > 0
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, websocket.TextMessage, fc.kinds()[0])

	fc.hangUp()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("serve did not return after the peer left")
	}

	require.Eventually(t, func() bool { return hub.ClientCount(userID) == 0 }, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool {
		kinds := fc.kinds()
		return len(kinds) > 0 && kinds[len(kinds)-1] == websocket.CloseMessage
	}, time.Second, 5*time.Millisecond)
}
