// Package control implements the script effect that turns trackers on and
// off at runtime:
//
//	enable[ the] agent <names>[ for <targets>]
//	disable[ the] agent <names>[ for <targets>]
//
// Names and targets are comma and/or "and" separated lists of bare words or
// double-quoted strings:
//
//	enable the agent "functions" and "loops"
//	disable agent delays, variables for console and "ops"
//
// # Overview
//
// [Parse] turns one line into an [Effect]. Tracker names are resolved while
// parsing; names that match no tracker are kept in [Effect.Unknown] so the
// remaining names still take effect. [Effect.Execute] resolves target names
// through a [TargetResolver] and drives a [trackers.Registry]. A missing
// target list means the console.
//
// [Controller] combines the two steps and logs configuration errors, which is
// what an interpreter hosting the effect calls for each line.
package control
