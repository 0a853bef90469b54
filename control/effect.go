package control

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/LifeMC/skagent"
	"github.com/LifeMC/skagent/trackers"
)

var (
	// ErrSyntax is returned by Parse for lines that are not an agent effect.
	ErrSyntax = errors.New("invalid agent effect")

	// ErrUnknownTarget is reported for target names no resolver knows.
	ErrUnknownTarget = errors.New("unknown target")
)

// Action is what an Effect does to the trackers it names.
type Action uint8

const (
	Enable Action = iota + 1
	Disable
)

func (a Action) String() string {
	switch a {
	case Enable:
		return "enable"
	case Disable:
		return "disable"
	default:
		return fmt.Sprintf("Action(%d)", uint8(a))
	}
}

// Effect is one parsed enable/disable line.
type Effect struct {
	Action Action

	// Names are the tracker names as written.
	Names []string

	// Kinds are the resolved tracker kinds, without duplicates, in the order
	// they were first named.
	Kinds []trackers.Kind

	// Unknown are the names that matched no tracker kind.
	Unknown []string

	// Targets are the target names as written. Empty means the console.
	Targets []string
}

// Parse parses one effect line.
func Parse(line string) (*Effect, error) {
	tokens, err := lex(line)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}

	eff := &Effect{}
	verb, ok := p.next()
	switch {
	case !ok:
		return nil, fmt.Errorf("%w: empty line", ErrSyntax)
	case verb.is("enable"):
		eff.Action = Enable
	case verb.is("disable"):
		eff.Action = Disable
	default:
		return nil, fmt.Errorf("%w: expected enable or disable, got %s", ErrSyntax, verb)
	}

	if tok, ok := p.peek(); ok && tok.is("the") {
		p.next()
	}
	if tok, ok := p.next(); !ok || !tok.is("agent") {
		return nil, p.unexpected(tok, ok, `"agent"`)
	}

	eff.Names, err = p.list("tracker name")
	if err != nil {
		return nil, err
	}
	if tok, ok := p.peek(); ok && tok.is("for") {
		p.next()
		eff.Targets, err = p.list("target")
		if err != nil {
			return nil, err
		}
	}
	if tok, ok := p.next(); ok {
		return nil, fmt.Errorf("%w: unexpected %s at column %d", ErrSyntax, tok, tok.pos+1)
	}

	for _, name := range eff.Names {
		kind, err := trackers.ParseKind(name)
		if err != nil {
			eff.Unknown = append(eff.Unknown, name)
			continue
		}
		if !slices.Contains(eff.Kinds, kind) {
			eff.Kinds = append(eff.Kinds, kind)
		}
	}
	return eff, nil
}

// Execute enables or disables every resolved kind for every resolved target.
// Unknown tracker names and unknown targets are skipped and reported in the
// returned error; the remaining pairs still take effect. Returns the number
// of pairs whose state changed.
func (e *Effect) Execute(registry *trackers.Registry, resolver TargetResolver) (int, error) {
	var errs []error
	for _, name := range e.Unknown {
		errs = append(errs, fmt.Errorf("%w: %s", trackers.ErrUnknownKind, name))
	}

	names := e.Targets
	if len(names) == 0 {
		names = []string{skagent.ConsoleName}
	}
	targets := make([]skagent.Target, 0, len(names))
	for _, name := range names {
		target, ok := resolver.ResolveTarget(name)
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrUnknownTarget, name))
			continue
		}
		targets = append(targets, target)
	}

	changes := 0
	for _, kind := range e.Kinds {
		for _, target := range targets {
			var changed bool
			if e.Action == Disable {
				changed = registry.Unregister(kind, target)
			} else {
				changed = registry.Register(kind, target)
			}
			if changed {
				changes++
			}
		}
	}
	return changes, errors.Join(errs...)
}

// String renders the effect in canonical form, e.g.
// "enable agent functions, loops for ops".
func (e *Effect) String() string {
	var sb strings.Builder
	sb.WriteString(e.Action.String())
	sb.WriteString(" agent ")
	sb.WriteString(strings.Join(e.Names, ", "))
	if len(e.Targets) > 0 {
		sb.WriteString(" for ")
		sb.WriteString(strings.Join(e.Targets, ", "))
	}
	return sb.String()
}

// -----------------------------------------------------------------------------
// Parser
// -----------------------------------------------------------------------------

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.tokens) {
		return token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) next() (token, bool) {
	tok, ok := p.peek()
	if ok {
		p.pos++
	}
	return tok, ok
}

func (p *parser) unexpected(tok token, ok bool, want string) error {
	if !ok {
		return fmt.Errorf("%w: expected %s, got end of line", ErrSyntax, want)
	}
	return fmt.Errorf("%w: expected %s, got %s at column %d", ErrSyntax, want, tok, tok.pos+1)
}

// list parses "item ((, | and | , and) item)*". An unquoted "for" ends the
// list.
func (p *parser) list(what string) ([]string, error) {
	var items []string
	for {
		tok, ok := p.next()
		if !ok || tok.kind == tokenComma || tok.is("and") || tok.is("for") {
			return nil, p.unexpected(tok, ok, what)
		}
		items = append(items, tok.text)

		sep, ok := p.peek()
		if !ok || sep.is("for") {
			return items, nil
		}
		switch {
		case sep.kind == tokenComma:
			p.next()
			if tok, ok := p.peek(); ok && tok.is("and") {
				p.next()
			}
		case sep.is("and"):
			p.next()
		default:
			return nil, fmt.Errorf("%w: expected \",\" or \"and\" before %s at column %d", ErrSyntax, sep, sep.pos+1)
		}
	}
}
