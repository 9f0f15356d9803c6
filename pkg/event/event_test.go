package event

import "testing"

func TestEmitterOnAndEmit(t *testing.T) {
	e := NewEmitter()

	var got []Event
	e.On(AnalyticsUpdated, func(ev Event) {
		got = append(got, ev)
	})

	e.Emit(AnalyticsUpdatedEvent{Summary: "s"})
	e.Emit(SummaryUpsertedEvent{ConversationID: "c1"})

	if len(got) != 1 {
		t.Fatalf("listener fired %d times, want 1", len(got))
	}
	if got[0].EventName() != AnalyticsUpdated {
		t.Fatalf("event name = %q, want %q", got[0].EventName(), AnalyticsUpdated)
	}
}

func TestEmitterOnAny(t *testing.T) {
	e := NewEmitter()

	count := 0
	e.OnAny(func(Event) { count++ })

	e.Emit(AnalyticsUpdatedEvent{})
	e.Emit(SummaryUpsertedEvent{})

	if count != 2 {
		t.Fatalf("OnAny fired %d times, want 2", count)
	}
}

func TestEmitterUnsubscribe(t *testing.T) {
	e := NewEmitter()

	count := 0
	off := e.On(SummaryUpserted, func(Event) { count++ })

	e.Emit(SummaryUpsertedEvent{})
	off()
	e.Emit(SummaryUpsertedEvent{})

	if count != 1 {
		t.Fatalf("listener fired %d times after unsubscribe, want 1", count)
	}
}

func TestEmitterUnsubscribeRemovesOnlyItself(t *testing.T) {
	e := NewEmitter()

	a, b := 0, 0
	offA := e.On(SummaryUpserted, func(Event) { a++ })
	e.On(SummaryUpserted, func(Event) { b++ })

	offA()
	e.Emit(SummaryUpsertedEvent{})

	if a != 0 || b != 1 {
		t.Fatalf("a = %d, b = %d, want 0 and 1", a, b)
	}
}
