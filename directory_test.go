package skagent_test

import (
	"sync"
	"testing"

	"github.com/LifeMC/skagent"
	"github.com/LifeMC/skagent/internal/tt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDirectory_IsEmpty(t *testing.T) {
	dir := skagent.NewDirectory()

	assert.False(t, dir.IsTrackingEnabled())
	assert.Equal(t, 0, dir.Len())
	assert.Empty(t, dir.Agents())
	assert.False(t, dir.HasAgent(skagent.CoreAddon))
}

func TestDirectory_RegisterAndUnregister_TracksEnabled(t *testing.T) {
	dir := skagent.NewDirectory()
	other := &skagent.Addon{Name: "other"}

	first := dir.RegisterAgent(skagent.CoreAddon, tt.NewRecorder().Handle, skagent.KindFunctionStart)
	assert.True(t, dir.IsTrackingEnabled())
	assert.True(t, dir.HasAgent(skagent.CoreAddon))
	assert.False(t, dir.HasAgent(other))

	second := dir.RegisterAgent(other, tt.NewRecorder().Handle)
	assert.Equal(t, []*skagent.Agent{first, second}, dir.Agents())

	dir.UnregisterAgent(first)
	assert.False(t, dir.HasAgent(skagent.CoreAddon))
	assert.True(t, dir.IsTrackingEnabled())
	assert.Empty(t, first.ListenedKinds(), "unregister clears listeners")

	dir.UnregisterAgent(second)
	assert.False(t, dir.IsTrackingEnabled())
	assert.Equal(t, 0, dir.Len())
}

func TestDirectory_RegisterAgent_DoesNotDeduplicate(t *testing.T) {
	dir := skagent.NewDirectory()
	rec := tt.NewRecorder()

	dir.RegisterAgent(skagent.CoreAddon, rec.Handle, skagent.KindForLoopEnd)
	dir.RegisterAgent(skagent.CoreAddon, rec.Handle, skagent.KindForLoopEnd)

	assert.Equal(t, 2, dir.Len())
}

func TestDirectory_RegisterAgent_PanicsOnNilArguments(t *testing.T) {
	dir := skagent.NewDirectory()

	assert.Panics(t, func() { dir.RegisterAgent(nil, tt.NewRecorder().Handle) })
	assert.Panics(t, func() { dir.RegisterAgent(skagent.CoreAddon, nil) })
}

func TestDirectory_UnregisterAgent_PanicsWhenAbsent(t *testing.T) {
	dir := skagent.NewDirectory()
	agent := dir.RegisterAgent(skagent.CoreAddon, tt.NewRecorder().Handle)
	dir.UnregisterAgent(agent)

	assert.Panics(t, func() { dir.UnregisterAgent(agent) })

	foreign := skagent.NewDirectory().RegisterAgent(skagent.CoreAddon, tt.NewRecorder().Handle)
	assert.Panics(t, func() { dir.UnregisterAgent(foreign) })
}

func TestDirectory_ThrowEvent_PanicsWhenDisabled(t *testing.T) {
	dir := skagent.NewDirectory()

	assert.Panics(t, func() {
		dir.ThrowEvent(&skagent.ForLoopStartEvent{Times: 3})
	})
}

func TestDirectory_ThrowEvent_DeliversOnlyToListeners(t *testing.T) {
	dir := skagent.NewDirectory()
	loops := tt.NewRecorder()
	functions := tt.NewRecorder()
	dir.RegisterAgent(skagent.CoreAddon, loops.Handle, skagent.KindForLoopStart, skagent.KindForLoopEnd)
	dir.RegisterAgent(skagent.CoreAddon, functions.Handle, skagent.KindFunctionStart)

	start := &skagent.ForLoopStartEvent{Times: 3}
	assert.Equal(t, 1, dir.ThrowEvent(start))
	assert.Equal(t, 0, dir.ThrowEvent(&skagent.DelayStartEvent{}))

	assert.Equal(t, []skagent.Event{start}, loops.Events())
	assert.Empty(t, functions.Events())
}

func TestDirectory_ThrowEvent_RegistrationOrderAndSameInstance(t *testing.T) {
	dir := skagent.NewDirectory()
	var (
		order []string
		seen  []skagent.Event
	)
	record := func(name string) skagent.Handler {
		return func(e skagent.Event) {
			order = append(order, name)
			seen = append(seen, e)
		}
	}
	dir.RegisterAgent(skagent.CoreAddon, record("first"), skagent.KindForLoopEnd)
	dir.RegisterAgent(skagent.CoreAddon, record("second"), skagent.KindForLoopEnd)

	event := &skagent.ForLoopEndEvent{Times: 10, StartTime: 0, EndTime: 1_000}
	assert.Equal(t, 2, dir.ThrowEvent(event))

	assert.Equal(t, []string{"first", "second"}, order)
	require.Len(t, seen, 2)
	assert.Same(t, event, seen[0])
	assert.Same(t, event, seen[1])
}

func TestDirectory_ThrowEvent_SkipsAgentRemovedDuringFanOut(t *testing.T) {
	dir := skagent.NewDirectory()
	late := tt.NewRecorder()
	var second *skagent.Agent

	dir.RegisterAgent(skagent.CoreAddon, func(skagent.Event) {
		dir.UnregisterAgent(second)
	}, skagent.KindDelayEnd)
	second = dir.RegisterAgent(skagent.CoreAddon, late.Handle, skagent.KindDelayEnd)

	assert.Equal(t, 1, dir.ThrowEvent(&skagent.DelayEndEvent{}))
	assert.Empty(t, late.Events())
	assert.Equal(t, 1, dir.Len())
}

func TestDirectory_HandlerPanicPropagates(t *testing.T) {
	dir := skagent.NewDirectory()
	dir.RegisterAgent(skagent.CoreAddon, func(skagent.Event) {
		panic("boom")
	}, skagent.KindResolvedPlayer)

	assert.PanicsWithValue(t, "boom", func() {
		dir.ThrowEvent(&skagent.ResolvedPlayerEvent{Player: tt.Player("Notch")})
	})
}

func TestDirectory_ConcurrentRegisterAndThrow(t *testing.T) {
	dir := skagent.NewDirectory()
	keep := tt.NewRecorder()
	dir.RegisterAgent(skagent.CoreAddon, keep.Handle, skagent.KindForLoopStart)

	const rounds = 200
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			a := dir.RegisterAgent(skagent.CoreAddon, tt.NewRecorder().Handle, skagent.KindForLoopStart)
			dir.UnregisterAgent(a)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			dir.ThrowEvent(&skagent.ForLoopStartEvent{Times: i})
		}
	}()
	wg.Wait()

	assert.Len(t, keep.Events(), rounds)
	assert.Equal(t, 1, dir.Len())
}
