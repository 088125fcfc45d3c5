package pointer

import "testing"

func TestBusSubscribeDispatch(t *testing.T) {
	bus := NewBus()
	var got []Kind
	unsub := bus.Subscribe(func(ev Event) { got = append(got, ev.Kind) })

	bus.Dispatch(Event{Kind: Move})
	bus.Dispatch(Event{Kind: Release})
	unsub()
	bus.Dispatch(Event{Kind: Move})

	if len(got) != 2 || got[0] != Move || got[1] != Release {
		t.Errorf("received %v", got)
	}
	if bus.Len() != 0 {
		t.Errorf("Len() = %d after unsubscribe", bus.Len())
	}
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	bus := NewBus()
	a := bus.Subscribe(func(Event) {})
	b := bus.Subscribe(func(Event) {})

	a()
	a()
	if bus.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", bus.Len())
	}
	b()
	if bus.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", bus.Len())
	}
}

func TestUnsubscribeDuringDispatch(t *testing.T) {
	bus := NewBus()
	calls := 0
	var unsubSecond func()

	var unsubFirst func()
	unsubFirst = bus.Subscribe(func(Event) {
		calls++
		unsubFirst()
		unsubSecond()
	})
	unsubSecond = bus.Subscribe(func(Event) { calls += 10 })

	bus.Dispatch(Event{Kind: Release})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if bus.Len() != 0 {
		t.Errorf("Len() = %d, want 0", bus.Len())
	}
}

func TestTargetInteractive(t *testing.T) {
	tests := []struct {
		target Target
		want   bool
	}{
		{TargetNone, false},
		{TargetTrackArea, false},
		{TargetRuler, false},
		{TargetClip, true},
		{TargetHeader, true},
		{TargetButton, true},
	}
	for _, tt := range tests {
		if got := tt.target.Interactive(); got != tt.want {
			t.Errorf("Target(%d).Interactive() = %v, want %v", tt.target, got, tt.want)
		}
	}
}

func TestModContains(t *testing.T) {
	m := ModCtrl | ModShift
	if !m.Contains(ModCtrl) || !m.Contains(ModShift) || m.Contains(ModAlt) {
		t.Errorf("Contains misreports %08b", m)
	}
}
