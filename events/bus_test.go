package events

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitDeliversInOrder(t *testing.T) {
	bus := NewBus(slog.Default())
	var got []string

	bus.On(TrackableCreated, func(payload any) { got = append(got, "first:"+payload.(string)) })
	bus.On(TrackableCreated, func(payload any) { got = append(got, "second:"+payload.(string)) })
	bus.On(TrackableDeleted, func(payload any) { got = append(got, "other") })

	bus.Emit(TrackableCreated, "feed")

	assert.Equal(t, []string{"first:feed", "second:feed"}, got)
}

func TestEmitIsolatesPanickingHandler(t *testing.T) {
	bus := NewBus(slog.Default())
	called := false

	bus.On(ChildCreated, func(any) { panic("boom") })
	bus.On(ChildCreated, func(any) { called = true })

	assert.NotPanics(t, func() { bus.Emit(ChildCreated, nil) })
	assert.True(t, called)
}

func TestEmitWithoutHandlers(t *testing.T) {
	bus := NewBus(nil)
	assert.NotPanics(t, func() { bus.Emit("nothing.here", 1) })
}

func TestPayloadFamilyResolution(t *testing.T) {
	assert.Equal(t, uint(0), ChildPayload{}.TargetFamily())
	assert.Equal(t, uint(0), FamilyPayload{}.TargetFamily())
	assert.Equal(t, uint(7), TrackablePayload{FamilyID: 7}.TargetFamily())
	assert.Equal(t, uint(3), TrackableDeletedPayload{FamilyID: 3}.TargetFamily())
}
