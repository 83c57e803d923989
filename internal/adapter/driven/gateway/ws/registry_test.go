package ws

import (
	"fmt"
	"sync"
	"testing"

	"github.com/huddle-rtc/huddle/internal/core/port"
)

type stubClient struct {
	id string
}

func (c *stubClient) ID() string        { return c.id }
func (c *stubClient) Send([]byte) error { return nil }
func (c *stubClient) Close() error      { return nil }

func TestRegistry_RegisterUnregister(t *testing.T) {
	r := NewRegistry()
	c := &stubClient{id: "c1"}

	r.Register("room", c)
	if got := len(r.Members("room")); got != 1 {
		t.Fatalf("Members() after register = %d, want 1", got)
	}

	r.Unregister("room", c)
	if got := len(r.Members("room")); got != 0 {
		t.Fatalf("Members() after unregister = %d, want 0", got)
	}
	// No empty placeholder set may linger.
	r.mu.RLock()
	_, leaked := r.rooms["room"]
	r.mu.RUnlock()
	if leaked {
		t.Fatal("empty room entry leaked in registry")
	}
}

func TestRegistry_UnregisterUnknownIsNoOp(t *testing.T) {
	r := NewRegistry()
	c := &stubClient{id: "c1"}

	if r.Unregister("missing", c) {
		t.Fatal("Unregister() of unknown room reported a removal")
	}

	r.Register("room", c)
	if r.Unregister("room", &stubClient{id: "other"}) {
		t.Fatal("Unregister() of non-member reported a removal")
	}
	if got := len(r.Members("room")); got != 1 {
		t.Fatalf("Members() = %d, want 1", got)
	}
}

func TestRegistry_UnregisterReportsSingleRemoval(t *testing.T) {
	r := NewRegistry()
	c := &stubClient{id: "c1"}
	r.Register("room", c)

	if !r.Unregister("room", c) {
		t.Fatal("first Unregister() = false, want true")
	}
	if r.Unregister("room", c) {
		t.Fatal("second Unregister() = true, want false")
	}
}

func TestRegistry_DoubleRegisterKeepsOneEntry(t *testing.T) {
	r := NewRegistry()
	c := &stubClient{id: "c1"}

	r.Register("room", c)
	r.Register("room", c)
	if got := len(r.Members("room")); got != 1 {
		t.Fatalf("Members() after double register = %d, want 1", got)
	}

	r.Unregister("room", c)
	if got := r.Online("room"); got != 0 {
		t.Fatalf("Online() = %d, want 0", got)
	}
}

func TestRegistry_MembersIsSnapshot(t *testing.T) {
	r := NewRegistry()
	a := &stubClient{id: "a"}
	b := &stubClient{id: "b"}
	r.Register("room", a)
	r.Register("room", b)

	snapshot := r.Members("room")
	r.Unregister("room", a)
	r.Unregister("room", b)

	if len(snapshot) != 2 {
		t.Fatalf("snapshot mutated: len = %d, want 2", len(snapshot))
	}
}

func TestRegistry_RoomsAreIndependent(t *testing.T) {
	r := NewRegistry()
	r.Register("r1", &stubClient{id: "a"})
	r.Register("r2", &stubClient{id: "b"})

	if got := r.Online("r1"); got != 1 {
		t.Fatalf("Online(r1) = %d, want 1", got)
	}
	if got := r.Online("r2"); got != 1 {
		t.Fatalf("Online(r2) = %d, want 1", got)
	}
}

func TestRegistry_Concurrent(t *testing.T) {
	r := NewRegistry()

	const workers = 16
	const perWorker = 100

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			roomID := fmt.Sprintf("room-%d", w%4)
			for i := 0; i < perWorker; i++ {
				c := port.Client(&stubClient{id: fmt.Sprintf("%d-%d", w, i)})
				r.Register(roomID, c)
				_ = r.Members(roomID)
				r.Unregister(roomID, c)
			}
		}(w)
	}
	wg.Wait()

	for i := 0; i < 4; i++ {
		roomID := fmt.Sprintf("room-%d", i)
		if got := r.Online(roomID); got != 0 {
			t.Fatalf("Online(%s) = %d after churn, want 0", roomID, got)
		}
	}
}
