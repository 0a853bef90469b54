package skagent

import "time"

// Instrument is the emitting side of the tracking subsystem, embedded by the
// interpreter at each trigger point. Every method checks whether anybody
// listens before building an event, so an untracked runtime pays one atomic
// load per call.
//
// Each event is delivered against the directory snapshot taken by its own
// fast-path check. An agent removed concurrently in between therefore never
// turns into a "thrown while disabled" failure.
type Instrument struct {
	dir   *Directory
	clock Clock
}

// NewInstrument creates an Instrument emitting into dir. A nil clock uses a
// SystemClock.
func NewInstrument(dir *Directory, clock Clock) *Instrument {
	if clock == nil {
		clock = NewSystemClock()
	}
	return &Instrument{dir: dir, clock: clock}
}

// Directory returns the directory events are emitted into.
func (in *Instrument) Directory() *Directory {
	return in.dir
}

// emit delivers the event built by build, if anybody is registered.
// Reports whether the directory was non-empty.
func (in *Instrument) emit(build func() Event) bool {
	agents := in.dir.snapshot()
	if len(agents) == 0 {
		return false
	}
	fanOut(agents, build())
	return true
}

// Function runs body as a call of fn, emitting FunctionStart before and
// FunctionEnd after. The end event is emitted even if body panics, and only
// if the start event was.
func (in *Instrument) Function(fn Function, args [][]any, body func()) {
	tracked := in.emit(func() Event {
		return &FunctionStartEvent{Function: fn, Arguments: args}
	})
	if !tracked {
		body()
		return
	}
	start := in.clock.Nanotime()
	defer func() {
		end := in.clock.Nanotime()
		in.emit(func() Event {
			return &FunctionEndEvent{Function: fn, Arguments: args, StartTime: start, EndTime: end}
		})
	}()
	body()
}

// Loop runs iteration for i in [1, times], emitting ForLoopStart before the
// first iteration and ForLoopEnd after the last. A loop with no iterations
// emits nothing.
func (in *Instrument) Loop(times int, iteration func(i int)) {
	if times < 1 {
		return
	}
	var start int64
	tracked := in.emit(func() Event {
		start = in.clock.Nanotime()
		return &ForLoopStartEvent{Times: times}
	})
	if tracked {
		defer func() {
			end := in.clock.Nanotime()
			in.emit(func() Event {
				return &ForLoopEndEvent{Times: times, StartTime: start, EndTime: end}
			})
		}()
	}
	for i := 1; i <= times; i++ {
		iteration(i)
	}
}

// Delay records that a wait of duration d was scheduled and returns the
// continuation to hand to the scheduler. Running the returned function runs
// continuation and emits DelayEnd with the continuation's own run time.
func (in *Instrument) Delay(d time.Duration, continuation func()) func() {
	tracked := in.emit(func() Event {
		return &DelayStartEvent{Duration: d}
	})
	if !tracked {
		return continuation
	}
	return func() {
		start := in.clock.Nanotime()
		defer func() {
			end := in.clock.Nanotime()
			in.emit(func() Event {
				return &DelayEndEvent{Duration: d, StartTime: start, EndTime: end}
			})
		}()
		continuation()
	}
}

// VariableChanged reports a completed variable write. A nil newValue means
// the variable is now none.
func (in *Instrument) VariableChanged(variable Variable, newValue []any) {
	in.emit(func() Event {
		return &VariableChangeEndEvent{Variable: variable, NewValue: newValue}
	})
}

// PlayerUnresolved reports that a player lookup was queued.
func (in *Instrument) PlayerUnresolved(player Player) {
	in.emit(func() Event {
		return &UnresolvedPlayerEvent{Player: player}
	})
}

// PlayerResolved reports that a queued player lookup completed.
func (in *Instrument) PlayerResolved(player Player) {
	in.emit(func() Event {
		return &ResolvedPlayerEvent{Player: player}
	})
}
