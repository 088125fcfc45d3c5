package tape

import (
	"strings"
)

// Lexer splits a tape into lines of words. Double-quoted words may contain
// spaces and the escapes \" and \\. A '#' outside quotes starts a comment.
type Lexer struct {
	lines []string
	pos   int
}

// New returns a lexer over input.
func New(input string) *Lexer {
	input = strings.ReplaceAll(input, "\r\n", "\n")
	return &Lexer{lines: strings.Split(input, "\n")}
}

// NextLine returns the words of the next non-empty line and its 1-based
// line number. ok is false at the end of input. unterminated reports an
// unclosed quote.
func (l *Lexer) NextLine() (words []string, line int, unterminated, ok bool) {
	for l.pos < len(l.lines) {
		raw := l.lines[l.pos]
		l.pos++
		words, unterminated = splitWords(raw)
		if len(words) == 0 && !unterminated {
			continue
		}
		return words, l.pos, unterminated, true
	}
	return nil, 0, false, false
}

func splitWords(s string) (words []string, unterminated bool) {
	var (
		cur     strings.Builder
		inWord  bool
		inQuote bool
	)
	flush := func() {
		if inWord {
			words = append(words, cur.String())
			cur.Reset()
			inWord = false
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inQuote && c == '\\' && i+1 < len(s) && (s[i+1] == '"' || s[i+1] == '\\'):
			cur.WriteByte(s[i+1])
			i++
		case c == '"':
			inQuote = !inQuote
			inWord = true
		case inQuote:
			cur.WriteByte(c)
		case c == '#':
			flush()
			return words, false
		case c == ' ' || c == '\t':
			flush()
		default:
			cur.WriteByte(c)
			inWord = true
		}
	}
	flush()
	return words, inQuote
}
