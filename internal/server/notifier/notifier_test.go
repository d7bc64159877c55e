package notifier

import (
	"testing"
	"time"
)

func TestBroadcastReachesAllListeners(t *testing.T) {
	n := New()
	a := n.Subscribe()
	b := n.Subscribe()
	defer n.Unsubscribe(a)
	defer n.Unsubscribe(b)

	n.Broadcast()

	for name, ch := range map[string]chan struct{}{"a": a, "b": b} {
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Fatalf("listener %s did not receive ping", name)
		}
	}
}

func TestBroadcastDoesNotBlockOnFullBuffer(t *testing.T) {
	n := New()
	ch := n.Subscribe()
	defer n.Unsubscribe(ch)

	// Two broadcasts against an unread single-slot buffer must collapse
	// rather than block.
	done := make(chan struct{})
	go func() {
		n.Broadcast()
		n.Broadcast()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on full listener")
	}

	<-ch
	select {
	case <-ch:
		t.Fatal("collapsed pings delivered twice")
	default:
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	n := New()
	ch := n.Subscribe()
	n.Unsubscribe(ch)

	if _, open := <-ch; open {
		t.Fatal("channel still open after unsubscribe")
	}

	// Broadcasting after unsubscribe must not panic on the closed channel.
	n.Broadcast()
}
