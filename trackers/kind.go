package trackers

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned by ParseKind for names that match no tracker.
var ErrUnknownKind = errors.New("unknown tracker type")

// Kind selects one tracker strategy.
type Kind uint8

const (
	Functions Kind = iota + 1
	Loops
	Resolver
	Delays
	Variables
)

var kindNames = [...]string{
	Functions: "functions",
	Loops:     "loops",
	Resolver:  "resolver",
	Delays:    "delays",
	Variables: "variables",
}

// AllKinds returns every tracker kind in declaration order.
func AllKinds() []Kind {
	return []Kind{Functions, Loops, Resolver, Delays, Variables}
}

func (k Kind) String() string {
	if k < Functions || k > Variables {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// ParseKind resolves a tracker name. Matching ignores case and accepts the
// name with or without a trailing "s": "function", "Functions" and
// "resolvers" all resolve.
func ParseKind(s string) (Kind, error) {
	name := singular(strings.TrimSpace(s))
	if name != "" {
		for _, k := range AllKinds() {
			if singular(kindNames[k]) == name {
				return k, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownKind, s)
}

func singular(s string) string {
	return strings.TrimSuffix(strings.ToLower(s), "s")
}
