package events

import "testing"

func TestBrokerFanOut(t *testing.T) {
	hub := NewBroker()
	ch1, cancel1 := hub.Subscribe()
	ch2, cancel2 := hub.Subscribe()
	defer cancel1()
	defer cancel2()

	hub.Publish(Event{Type: TypeTaskCreated, UserID: "u1"})

	for _, ch := range []<-chan Event{ch1, ch2} {
		select {
		case ev := <-ch:
			if ev.Type != TypeTaskCreated || ev.UserID != "u1" {
				t.Errorf("got %+v", ev)
			}
		default:
			t.Fatal("subscriber did not receive the event")
		}
	}
}

func TestBrokerCancelStopsDelivery(t *testing.T) {
	hub := NewBroker()
	ch, cancel := hub.Subscribe()
	cancel()

	// Publishing after cancel must not panic and the channel is closed.
	hub.Publish(Event{Type: TypeTaskDeleted, UserID: "u1"})
	if _, ok := <-ch; ok {
		t.Error("expected closed channel after cancel")
	}

	// Cancel is safe to call twice.
	cancel()
}

func TestBrokerDoesNotBlockOnSlowSubscriber(t *testing.T) {
	hub := NewBroker()
	_, cancel := hub.Subscribe()
	defer cancel()

	// The subscriber never drains; publishing past the buffer must
	// drop rather than block.
	for i := 0; i < 100; i++ {
		hub.Publish(Event{Type: TypeTaskUpdated, UserID: "u1"})
	}
}
