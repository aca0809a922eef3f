package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesOnlyTargetEmployee(t *testing.T) {
	t.Parallel()
	hub := NewHub()

	chA, cleanupA := hub.Subscribe("emp-a")
	defer cleanupA()
	chB, cleanupB := hub.Subscribe("emp-b")
	defer cleanupB()

	ev := NewEvent("emp-a", TypeStillClockedInWarning, time.Now(), nil)
	hub.Publish(ev)

	select {
	case got := <-chA:
		assert.Equal(t, "emp-a", got.EmployeeID)
		assert.Equal(t, TypeStillClockedInWarning, got.Type)
		assert.NotEmpty(t, got.ID)
	case <-time.After(time.Second):
		t.Fatal("subscriber A did not receive event")
	}

	select {
	case got := <-chB:
		t.Fatalf("subscriber B received foreign event %+v", got)
	default:
	}
}

func TestCleanupRemovesSubscriber(t *testing.T) {
	t.Parallel()
	hub := NewHub()

	_, cleanup := hub.Subscribe("emp-a")
	require.Equal(t, 1, hub.SubscriberCount("emp-a"))

	cleanup()
	assert.Equal(t, 0, hub.SubscriberCount("emp-a"))

	// Publishing to an employee with no subscribers must not block or panic.
	hub.Publish(NewEvent("emp-a", TypeAutoLogoutFired, time.Now(), nil))
}

func TestPublishDoesNotBlockOnFullChannel(t *testing.T) {
	t.Parallel()
	hub := NewHub()

	_, cleanup := hub.Subscribe("emp-a")
	defer cleanup()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Publish(NewEvent("emp-a", TypeStillClockedInWarning, time.Now(), nil))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a full subscriber channel")
	}
}
