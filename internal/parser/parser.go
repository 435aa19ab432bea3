// Package parser consumes a lazy stream of source lines and produces one
// Scheme expression at a time, buffering tokens across line
// boundaries so a multi-line form reads as a single expression.
package parser

import (
	"errors"

	"github.com/tinyscm-go/tinyscm/internal/diagnostics"
	"github.com/tinyscm-go/tinyscm/internal/lexer"
	"github.com/tinyscm-go/tinyscm/internal/token"
	"github.com/tinyscm-go/tinyscm/internal/value"
)

// LineSource is the external collaborator that hands the parser its next
// line of input on demand: stdin, a loaded file, or a test fixture. It
// returns diagnostics.EndOfInput when no more lines are available; the
// REPL front end, not this package, decides what that means (a clean
// prompt-for-more vs. program exit).
type LineSource interface {
	NextLine() (string, error)
}

// WarnFunc receives non-fatal tokenizer warnings (token length, say).
type WarnFunc func(msg string)

// Parser holds the cross-call token buffer.
type Parser struct {
	source LineSource
	warn   WarnFunc
	buf    []token.Token
	pos    int
	lineNo int
}

// New returns a Parser reading from source. warn may be nil.
func New(source LineSource, warn WarnFunc) *Parser {
	return &Parser{source: source, warn: warn}
}

// IsBufferEmpty reports whether every token read so far has been
// consumed, i.e. whether the next Parse call will need a fresh line from
// the LineSource. The REPL uses this to decide whether to print a fresh
// prompt or a continuation prompt.
func (p *Parser) IsBufferEmpty() bool {
	return p.pos >= len(p.buf)
}

func (p *Parser) fill() error {
	for p.pos >= len(p.buf) {
		line, err := p.source.NextLine()
		if err != nil {
			return err
		}
		p.lineNo++
		toks, warnings, err := lexer.Tokenize(line, p.lineNo)
		if err != nil {
			return err
		}
		for _, w := range warnings {
			if p.warn != nil {
				p.warn(w)
			}
		}
		p.buf = toks
		p.pos = 0
	}
	return nil
}

func (p *Parser) peek() (token.Token, error) {
	if err := p.fill(); err != nil {
		return token.Token{}, err
	}
	return p.buf[p.pos], nil
}

func (p *Parser) advance() (token.Token, error) {
	tok, err := p.peek()
	if err != nil {
		return tok, err
	}
	p.pos++
	return tok, nil
}

// isEndOfInput reports whether err is the LineSource-exhausted sentinel.
func isEndOfInput(err error) bool {
	var eoi diagnostics.EndOfInput
	return errors.As(err, &eoi)
}

// expectMore turns a LineSource end-of-input into the syntax error spec
// §4.2 requires when end of input happens mid-form: "unexpected end of
// file". A plain end-of-input at the top level (between forms) is left
// untouched so the REPL can distinguish "nothing more to read" from
// "the user left a form unterminated".
func expectMore(err error) error {
	if isEndOfInput(err) {
		return diagnostics.NewSyntaxError(diagnostics.PhaseParser, diagnostics.ErrUnexpectedEOF, 0,
			"unexpected end of file")
	}
	return err
}

// Parse reads and returns the next complete expression, or an error. At
// true end of input (no partial form pending) the error is
// diagnostics.EndOfInput.
func (p *Parser) Parse() (value.Value, error) {
	tok, err := p.advance()
	if err != nil {
		return nil, err
	}
	return p.parseFromToken(tok)
}

func (p *Parser) parseFromToken(tok token.Token) (value.Value, error) {
	switch tok.Type {
	case token.BOOL:
		return value.Boolean(tok.Literal.(bool)), nil
	case token.INT:
		return value.Integer(tok.Literal.(int64)), nil
	case token.REAL:
		return value.Real(tok.Literal.(float64)), nil
	case token.STRING:
		return value.String(tok.Literal.(string)), nil
	case token.SYMBOL:
		return value.Symbol(tok.Lexeme), nil
	case token.NIL:
		return value.EmptyList, nil
	case token.QUOTE:
		return p.wrapNext("quote")
	case token.BACKTICK:
		return p.wrapNext("quasiquote")
	case token.COMMA:
		return p.wrapNext("unquote")
	case token.COMMA_AT:
		return p.wrapNext("unquote-splicing")
	case token.LPAREN:
		return p.parseList()
	case token.RPAREN:
		return nil, diagnostics.NewSyntaxError(diagnostics.PhaseParser, diagnostics.ErrUnexpectedToken, tok.Line,
			"unexpected )")
	case token.DOT:
		return nil, diagnostics.NewSyntaxError(diagnostics.PhaseParser, diagnostics.ErrUnexpectedToken, tok.Line,
			"unexpected .")
	default:
		return nil, diagnostics.NewSyntaxError(diagnostics.PhaseParser, diagnostics.ErrUnexpectedToken, tok.Line,
			"unexpected token %q", tok.Lexeme)
	}
}

// wrapNext parses one expression and wraps it as (<head> expr), used to
// desugar '/`/,/,@ into their (quote x)/(quasiquote x)/... forms.
func (p *Parser) wrapNext(head string) (value.Value, error) {
	e, err := p.Parse()
	if err != nil {
		return nil, expectMore(err)
	}
	return value.List(value.Symbol(head), e), nil
}

// parseList implements rest_list := ")" | expr rest_list | "." expr ")".
func (p *Parser) parseList() (value.Value, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, expectMore(err)
	}
	if tok.Type == token.RPAREN {
		p.pos++
		return value.EmptyList, nil
	}
	if tok.Type == token.DOT {
		return nil, diagnostics.NewSyntaxError(diagnostics.PhaseParser, diagnostics.ErrBadDottedPair, tok.Line,
			"unexpected . at start of list")
	}

	first, err := p.Parse()
	if err != nil {
		return nil, expectMore(err)
	}

	tok2, err := p.peek()
	if err != nil {
		return nil, expectMore(err)
	}
	if tok2.Type == token.DOT {
		p.pos++
		tail, err := p.Parse()
		if err != nil {
			return nil, expectMore(err)
		}
		closeTok, err := p.advance()
		if err != nil {
			return nil, expectMore(err)
		}
		if closeTok.Type != token.RPAREN {
			return nil, diagnostics.NewSyntaxError(diagnostics.PhaseParser, diagnostics.ErrBadDottedPair, closeTok.Line,
				"expected ) after dotted tail")
		}
		return value.NewPair(first, tail), nil
	}

	rest, err := p.parseList()
	if err != nil {
		return nil, err
	}
	return value.NewPair(first, rest), nil
}
