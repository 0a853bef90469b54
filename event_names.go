package skagent

import (
	"fmt"
	"strings"
)

// EventKind tags one category of occurrence. The set is closed: handlers switch
// over it exhaustively and treat anything else as an internal error.
type EventKind uint8

// Event name constants follow the pattern "namespace:category:timing".
//
// # Examples
//
//	skript:function:start    // a function call began
//	skript:loop:end          // a counted loop finished
//	skript:variable:end      // a variable write completed
const (
	EventNameFunctionStart    = "skript:function:start"
	EventNameFunctionEnd      = "skript:function:end"
	EventNameForLoopStart     = "skript:loop:start"
	EventNameForLoopEnd       = "skript:loop:end"
	EventNameDelayStart       = "skript:delay:start"
	EventNameDelayEnd         = "skript:delay:end"
	EventNameVariableChange   = "skript:variable:end"
	EventNameUnresolvedPlayer = "skript:player:unresolved"
	EventNameResolvedPlayer   = "skript:player:resolved"
)

const (
	KindFunctionStart EventKind = iota + 1
	KindFunctionEnd
	KindForLoopStart
	KindForLoopEnd
	KindDelayStart
	KindDelayEnd
	KindVariableChangeEnd
	KindUnresolvedPlayer
	KindResolvedPlayer

	kindCount = int(KindResolvedPlayer)
)

var eventKindNames = [...]string{
	KindFunctionStart:     EventNameFunctionStart,
	KindFunctionEnd:       EventNameFunctionEnd,
	KindForLoopStart:      EventNameForLoopStart,
	KindForLoopEnd:        EventNameForLoopEnd,
	KindDelayStart:        EventNameDelayStart,
	KindDelayEnd:          EventNameDelayEnd,
	KindVariableChangeEnd: EventNameVariableChange,
	KindUnresolvedPlayer:  EventNameUnresolvedPlayer,
	KindResolvedPlayer:    EventNameResolvedPlayer,
}

// AllEventKinds returns every event kind in declaration order.
func AllEventKinds() []EventKind {
	kinds := make([]EventKind, 0, kindCount)
	for k := KindFunctionStart; k <= KindResolvedPlayer; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Valid reports whether k is one of the declared kinds.
func (k EventKind) Valid() bool {
	return k >= KindFunctionStart && k <= KindResolvedPlayer
}

func (k EventKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("EventKind(%d)", uint8(k))
	}
	return eventKindNames[k]
}

// bit is the listener-mask bit for k.
func (k EventKind) bit() uint32 {
	return 1 << uint32(k)
}

// ParseEventKind resolves an event name such as "skript:function:end".
// Matching ignores case.
func ParseEventKind(name string) (EventKind, error) {
	for _, k := range AllEventKinds() {
		if strings.EqualFold(eventKindNames[k], name) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown event kind %q", name)
}
