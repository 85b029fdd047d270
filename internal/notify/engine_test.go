package notify

import (
	"testing"
	"time"
)

func TestEngineEmitsInTriggerOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	laterID, err := engine.Schedule(Request{Title: "later", TriggerAt: now.Add(80 * time.Millisecond)})
	if err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	soonerID, err := engine.Schedule(Request{Title: "sooner", TriggerAt: now.Add(20 * time.Millisecond)})
	if err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitNotification(t, engine.C(), time.Second)
	second := waitNotification(t, engine.C(), time.Second)
	if first.ID != soonerID || second.ID != laterID {
		t.Fatalf("unexpected order: first=%s second=%s", first.Title, second.Title)
	}
}

func TestEngineCancelRemovesPending(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	id, err := engine.Schedule(Request{
		Title:     "doomed",
		Data:      Payload{TaskID: "t1", Type: TypeTaskReminder},
		TriggerAt: now.Add(50 * time.Millisecond),
	})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	keepID, err := engine.Schedule(Request{
		Title:     "kept",
		Data:      Payload{TaskID: "t2", Type: TypeTaskReminder},
		TriggerAt: now.Add(60 * time.Millisecond),
	})
	if err != nil {
		t.Fatalf("schedule kept: %v", err)
	}

	if err := engine.Cancel(id); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	got := waitNotification(t, engine.C(), time.Second)
	if got.ID != keepID {
		t.Fatalf("cancelled notification fired: %s", got.Title)
	}
	select {
	case n := <-engine.C():
		t.Fatalf("unexpected second notification: %s", n.Title)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestEngineCancelUnknownIDIsNoop(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Cancel("missing"); err != nil {
		t.Fatalf("cancel of unknown id must be a no-op, got %v", err)
	}
}

func TestEngineListScheduledExposesPayloads(t *testing.T) {
	engine := NewEngine(1)
	far := time.Now().UTC().Add(time.Hour)

	if _, err := engine.Schedule(Request{Data: Payload{TaskID: "a", Type: TypeTaskReminder}, TriggerAt: far}); err != nil {
		t.Fatalf("schedule a: %v", err)
	}
	if _, err := engine.Schedule(Request{Data: Payload{TaskID: "b", Type: TypeTaskReminder}, TriggerAt: far}); err != nil {
		t.Fatalf("schedule b: %v", err)
	}

	pending := engine.ListScheduled()
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending, got %d", len(pending))
	}
	seen := map[string]bool{}
	for _, s := range pending {
		seen[s.Data.TaskID] = true
	}
	if !seen["a"] || !seen["b"] {
		t.Fatalf("payload task ids missing: %+v", pending)
	}
}

func TestScheduleValidatesTriggerTime(t *testing.T) {
	engine := NewEngine(1)
	if _, err := engine.Schedule(Request{Title: "bad"}); err != ErrInvalidTriggerTime {
		t.Fatalf("expected ErrInvalidTriggerTime, got %v", err)
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	trigger := time.Now().UTC().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if _, err := engine.Schedule(Request{Title: "evt", TriggerAt: trigger}); err != nil {
			t.Fatalf("schedule event: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped notifications > 0, got %d", engine.Dropped())
	}
}

func waitNotification(t *testing.T, ch <-chan Notification, timeout time.Duration) Notification {
	t.Helper()
	select {
	case n := <-ch:
		return n
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for notification")
		return Notification{}
	}
}
