package parser

import "github.com/leapstack-labs/leaplisp/pkg/token"

// Stream is a token sequence consumed destructively from the front.
// Every recursive parse call shares one Stream, so siblings observe each
// other's consumption.
type Stream struct {
	toks []token.Token
	end  token.Position // position just past the last token
}

// NewStream wraps toks. end is reported by errors raised at end of input.
func NewStream(toks []token.Token, end token.Position) *Stream {
	return &Stream{toks: toks, end: end}
}

// Tokens lexes src into a Stream.
func Tokens(src string) *Stream {
	l := token.NewLexer(src)
	var toks []token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			return NewStream(toks, tok.Pos)
		}
		toks = append(toks, tok)
	}
}

// Len returns the number of tokens left.
func (s *Stream) Len() int {
	return len(s.toks)
}

// Peek returns the next token without consuming it.
func (s *Stream) Peek() (token.Token, bool) {
	if len(s.toks) == 0 {
		return token.Token{Type: token.EOF, Pos: s.end}, false
	}
	return s.toks[0], true
}

// Next consumes and returns the next token.
func (s *Stream) Next() (token.Token, bool) {
	tok, ok := s.Peek()
	if ok {
		s.toks = s.toks[1:]
	}
	return tok, ok
}

// End returns the position just past the last token.
func (s *Stream) End() token.Position {
	return s.end
}
