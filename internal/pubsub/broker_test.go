package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type listing struct {
	ID   int
	Make string
}

func receive[T any](t *testing.T, ch <-chan Event[T]) Event[T] {
	t.Helper()
	select {
	case event := <-ch:
		return event
	case <-time.After(100 * time.Millisecond):
		require.Fail(t, "timeout waiting for event")
	}
	return Event[T]{}
}

func TestBroker_SubscribeReceivesPublishedEvent(t *testing.T) {
	broker := NewBroker[listing]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := broker.Subscribe(ctx)
	broker.Publish(CreatedEvent, listing{ID: 1, Make: "Toyota"})

	event := receive(t, ch)
	require.Equal(t, CreatedEvent, event.Type)
	require.Equal(t, listing{ID: 1, Make: "Toyota"}, event.Payload)
	require.False(t, event.Timestamp.IsZero())
}

func TestBroker_EverySubscriberGetsTheEvent(t *testing.T) {
	broker := NewBroker[listing]()
	defer broker.Close()

	ctx := context.Background()
	subs := []<-chan Event[listing]{broker.Subscribe(ctx), broker.Subscribe(ctx), broker.Subscribe(ctx)}
	require.Equal(t, 3, broker.SubscriberCount())

	broker.Publish(DeletedEvent, listing{ID: 9})

	for i, ch := range subs {
		event := receive(t, ch)
		require.Equal(t, 9, event.Payload.ID, "subscriber %d", i)
		require.Equal(t, DeletedEvent, event.Type, "subscriber %d", i)
	}
}

func TestBroker_CancelUnsubscribes(t *testing.T) {
	broker := NewBroker[listing]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := broker.Subscribe(ctx)
	require.Equal(t, 1, broker.SubscriberCount())

	cancel()
	require.Eventually(t, func() bool { return broker.SubscriberCount() == 0 }, time.Second, 5*time.Millisecond)

	_, ok := <-ch
	require.False(t, ok, "channel should be closed after cancel")
}

func TestBroker_PublishDropsWhenSubscriberIsFull(t *testing.T) {
	broker := NewBrokerWithBuffer[int](1)
	defer broker.Close()

	ch := broker.Subscribe(context.Background())
	broker.Publish(UpdatedEvent, 1)

	done := make(chan struct{})
	go func() {
		broker.Publish(UpdatedEvent, 2)
		broker.Publish(UpdatedEvent, 3)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		require.Fail(t, "Publish blocked on a full subscriber")
	}

	require.Equal(t, 1, (<-ch).Payload)
	require.Equal(t, int64(2), broker.Dropped())
}

func TestBroker_Close(t *testing.T) {
	broker := NewBroker[string]()
	ctx := context.Background()

	ch1 := broker.Subscribe(ctx)
	ch2 := broker.Subscribe(ctx)

	broker.Close()
	broker.Close()

	_, ok1 := <-ch1
	_, ok2 := <-ch2
	require.False(t, ok1)
	require.False(t, ok2)
	require.Equal(t, 0, broker.SubscriberCount())

	ch3 := broker.Subscribe(ctx)
	_, ok3 := <-ch3
	require.False(t, ok3, "subscribing to a closed broker yields a closed channel")

	broker.Publish(UpdatedEvent, "ignored")
}
