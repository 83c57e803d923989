package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	gws "github.com/huddle-rtc/huddle/internal/adapter/driven/gateway/ws"
	"github.com/huddle-rtc/huddle/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient records deliveries and can simulate a broken channel.
type fakeClient struct {
	id     string
	mu     sync.Mutex
	sent   [][]byte
	broken bool
	closed bool
}

func newFakeClient(id string) *fakeClient {
	return &fakeClient{id: id}
}

func (c *fakeClient) ID() string { return c.id }

func (c *fakeClient) Send(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.broken {
		return errors.New("broken pipe")
	}
	c.sent = append(c.sent, payload)
	return nil
}

func (c *fakeClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeClient) received() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([][]byte, len(c.sent))
	copy(out, c.sent)
	return out
}

func TestRelay_FanOutExceptSender(t *testing.T) {
	registry := gws.NewRegistry()
	relay := NewRelayService(registry)

	a, b, c := newFakeClient("a"), newFakeClient("b"), newFakeClient("c")
	relay.Join("r1", a)
	relay.Join("r1", b)
	relay.Join("r1", c)

	payload := []byte(`{"type":"offer","sdp":"v=0"}`)
	relay.Relay("r1", a, payload)

	assert.Empty(t, a.received(), "sender must not receive its own message")
	require.Len(t, b.received(), 1)
	require.Len(t, c.received(), 1)
	assert.Equal(t, payload, b.received()[0])
	assert.Equal(t, payload, c.received()[0])
}

func TestRelay_BrokenMemberDoesNotAbortBroadcast(t *testing.T) {
	registry := gws.NewRegistry()
	relay := NewRelayService(registry)

	a, b, c := newFakeClient("a"), newFakeClient("b"), newFakeClient("c")
	relay.Join("r1", a)
	relay.Join("r1", b)
	relay.Join("r1", c)
	b.broken = true

	relay.Relay("r1", a, []byte(`{"type":"candidate"}`))

	require.Len(t, c.received(), 1, "healthy member must still receive")
	assert.True(t, b.closed, "broken member should be closed")
	assert.NotContains(t, registry.Members("r1"), b, "broken member should be unregistered")
}

func TestRelay_MessagesStayOpaque(t *testing.T) {
	registry := gws.NewRegistry()
	relay := NewRelayService(registry)

	a, b := newFakeClient("a"), newFakeClient("b")
	relay.Join("r1", a)
	relay.Join("r1", b)

	// Not JSON at all; the relay must pass it through untouched.
	payload := []byte("\x00\x01opaque")
	relay.Relay("r1", a, payload)

	require.Len(t, b.received(), 1)
	assert.Equal(t, payload, b.received()[0])
}

func TestDisconnect_NotifiesRemainingMembers(t *testing.T) {
	registry := gws.NewRegistry()
	relay := NewRelayService(registry)

	a, b, c := newFakeClient("a"), newFakeClient("b"), newFakeClient("c")
	relay.Join("r1", a)
	relay.Join("r1", b)
	relay.Join("r1", c)

	relay.Disconnect("r1", b)

	assert.Empty(t, b.received(), "departed member must not be notified")
	for _, member := range []*fakeClient{a, c} {
		msgs := member.received()
		require.Len(t, msgs, 1)
		var evt domain.Event
		require.NoError(t, json.Unmarshal(msgs[0], &evt))
		assert.Equal(t, "user-left", evt.Type)
		assert.Equal(t, "A participant has left the call", evt.Message)
	}
}

func TestDisconnect_LastMemberIsNoOp(t *testing.T) {
	registry := gws.NewRegistry()
	relay := NewRelayService(registry)

	a, b := newFakeClient("a"), newFakeClient("b")
	relay.Join("r1", a)
	relay.Join("r1", b)

	relay.Disconnect("r1", b)
	require.Len(t, a.received(), 1)

	// a is now alone; its departure notifies nobody and must not error.
	relay.Disconnect("r1", a)
	assert.Empty(t, registry.Members("r1"))
}

func TestDisconnect_Idempotent(t *testing.T) {
	registry := gws.NewRegistry()
	relay := NewRelayService(registry)

	a, b := newFakeClient("a"), newFakeClient("b")
	relay.Join("r1", a)
	relay.Join("r1", b)

	relay.Disconnect("r1", b)
	relay.Disconnect("r1", b)

	// Only one user-left despite the double cleanup.
	assert.Len(t, a.received(), 1)
}

func TestDisconnect_NonMemberNotifiesNobody(t *testing.T) {
	registry := gws.NewRegistry()
	relay := NewRelayService(registry)

	a := newFakeClient("a")
	relay.Join("r1", a)

	relay.Disconnect("r1", newFakeClient("stranger"))
	assert.Empty(t, a.received())
}

func TestRelay_DoubleJoinDeliversOnce(t *testing.T) {
	registry := gws.NewRegistry()
	relay := NewRelayService(registry)

	a, b := newFakeClient("a"), newFakeClient("b")
	relay.Join("r1", a)
	relay.Join("r1", b)
	relay.Join("r1", b)

	relay.Relay("r1", a, []byte(`{"type":"offer"}`))
	assert.Len(t, b.received(), 1)
}

func TestRelay_ConcurrentSenders(t *testing.T) {
	registry := gws.NewRegistry()
	relay := NewRelayService(registry)

	receiver := newFakeClient("rx")
	relay.Join("r1", receiver)

	const senders = 8
	const perSender = 50

	var wg sync.WaitGroup
	for i := 0; i < senders; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			sender := newFakeClient(fmt.Sprintf("s%d", n))
			relay.Join("r1", sender)
			for j := 0; j < perSender; j++ {
				relay.Relay("r1", sender, []byte(`{"type":"candidate"}`))
			}
			relay.Disconnect("r1", sender)
		}(i)
	}
	wg.Wait()

	// Every sender's messages reached the receiver; departure notifications
	// arrive on top of them.
	assert.GreaterOrEqual(t, len(receiver.received()), senders*perSender)
}
