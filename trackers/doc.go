// Package trackers provides the built-in tracking agents and the registry
// that switches them on and off per output target.
//
// # Tracker Kinds
//
// Each Kind owns a fixed set of event kinds and formats them into text
// lines:
//   - [Functions]: function start and duration
//   - [Loops]: counted loop start and duration
//   - [Resolver]: asynchronous player lookups queued and resolved
//   - [Delays]: wait statements and the run time of their continuation
//   - [Variables]: variables set to none (also turns on none-value warnings)
//
// # Using the Registry
//
//	dir := skagent.NewDirectory()
//	reg := trackers.NewRegistry(dir, skagent.NewSettings()).
//	    WithPrefix("[Tracker] ")
//
//	reg.Register(trackers.Functions, console) // true: now live
//	reg.Register(trackers.Functions, console) // false: already live
//	reg.Unregister(trackers.Functions, console)
//
// The registry keeps at most one live agent per (kind, target) and reuses
// the tracker object it created for that pair the next time it is enabled.
//
// # Programming Errors
//
// Registering a tracker that is already registered, unregistering one that
// is not, or delivering an event kind a tracker did not ask for all panic.
package trackers
