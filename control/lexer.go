package control

import (
	"fmt"
	"strings"
	"unicode"
)

type tokenKind uint8

const (
	tokenWord tokenKind = iota + 1
	tokenString
	tokenComma
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// is reports whether tok is the unquoted keyword word.
func (tok token) is(word string) bool {
	return tok.kind == tokenWord && strings.EqualFold(tok.text, word)
}

func (tok token) String() string {
	switch tok.kind {
	case tokenString:
		return `"` + tok.text + `"`
	case tokenComma:
		return ","
	default:
		return tok.text
	}
}

// lex splits line into words, quoted strings and commas. Inside a quoted
// string a doubled quote stands for one literal quote.
func lex(line string) ([]token, error) {
	var tokens []token
	runes := []rune(line)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == ',':
			tokens = append(tokens, token{kind: tokenComma, text: ",", pos: i})
			i++
		case r == '"':
			start := i
			var sb strings.Builder
			i++
			closed := false
			for i < len(runes) {
				if runes[i] == '"' {
					if i+1 < len(runes) && runes[i+1] == '"' {
						sb.WriteRune('"')
						i += 2
						continue
					}
					i++
					closed = true
					break
				}
				sb.WriteRune(runes[i])
				i++
			}
			if !closed {
				return nil, fmt.Errorf("%w: unterminated string at column %d", ErrSyntax, start+1)
			}
			tokens = append(tokens, token{kind: tokenString, text: sb.String(), pos: start})
		default:
			start := i
			for i < len(runes) && !unicode.IsSpace(runes[i]) && runes[i] != ',' && runes[i] != '"' {
				i++
			}
			tokens = append(tokens, token{kind: tokenWord, text: string(runes[start:i]), pos: start})
		}
	}
	return tokens, nil
}
