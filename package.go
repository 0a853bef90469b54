// Package skagent lets observers ("agents") subscribe to lifecycle events emitted
// by a script interpreter without the interpreter knowing who listens.
//
// # Overview
//
// The interpreter embeds an [Instrument] and calls it at each trigger point:
// function calls, counted loops, delayed tasks, variable writes and
// asynchronous player lookups. The Instrument checks whether any agent is
// registered in the [Directory] and, only then, builds the [Event] and fans it
// out to every agent listening to its [EventKind].
//
//	dir := skagent.NewDirectory()
//	in := skagent.NewInstrument(dir, skagent.NewSystemClock())
//
//	agent := dir.RegisterAgent(skagent.CoreAddon, func(e skagent.Event) {
//	    if end, ok := e.(*skagent.FunctionEndEvent); ok {
//	        log.Printf("%s took %v", end.Function.Name(), end.Elapsed())
//	    }
//	}, skagent.KindFunctionEnd)
//	defer dir.UnregisterAgent(agent)
//
//	in.Function(fn, args, func() { /* run the body */ })
//
// # Delivery
//
// Delivery is synchronous: handlers run on the goroutine that emitted the
// event, in agent registration order. A slow handler stalls the interpreter
// action that emitted the event. Tracking is opt-in and handlers are
// expected to be cheap.
//
// # Trackers
//
// Package trackers provides ready-made agents that format events into text
// lines for a [Target], and a registry that keeps at most one live tracker per
// (kind, target). Package control parses the "enable the agent ..." effect
// that drives that registry.
//
// # Programming Errors
//
// Misuse that indicates a bug in an integration panics: unregistering an
// agent that is not registered, throwing an event while nothing is
// registered, or registering a tracker twice.
package skagent
