package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInMemoryDispatcher(t *testing.T) {
	d := NewInMemoryDispatcher()
	var seen []EventType

	d.Subscribe(EventWorkorderCreated, func(_ context.Context, e Event) error {
		seen = append(seen, e.Type)
		return errors.New("first handler failed")
	})
	d.Subscribe(EventWorkorderCreated, func(_ context.Context, e Event) error {
		seen = append(seen, e.Type)
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventWorkorderCreated, WorkorderID: 1})
	assert.EqualError(t, err, "first handler failed")
	assert.Equal(t, []EventType{EventWorkorderCreated, EventWorkorderCreated}, seen)

	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventWorkorderDeleted}))
	assert.Len(t, seen, 2)
}
