// Package compiler implements the single-pass Pratt compiler: it drives
// the lexer one token at a time and emits directly into a chunk.Chunk,
// with no intervening AST.
package compiler

import (
	"strconv"

	"github.com/hashicorp/go-multierror"

	"loxvm/chunk"
	"loxvm/lexer"
	"loxvm/token"
	"loxvm/value"
)

// maxConstants is the number of constant-pool entries (indices 0-255) the
// 1-byte OP_CONSTANT operand this compiler emits can address. Chunks can hold more
// constants via OP_CONSTANT_LONG (see chunk.WriteConstant), but this
// compiler never emits that form — it reports an error past this cap
// instead, matching make_constant's UINT8_MAX check.
const maxConstants = 256

// Compiler holds the two-token lookahead window and error-recovery state
// for one compile pass. Construct one with New per call to Compile; it is
// not reusable across calls.
type Compiler struct {
	lex   *lexer.Lexer
	chunk *chunk.Chunk
	heap  *value.Heap

	current  token.Token
	previous token.Token

	hadError  bool
	panicMode bool
	errs      *multierror.Error
}

// New constructs a Compiler that will emit into c, interning any string
// literals into heap. heap is owned by the VM that will later run c, so
// that string constants created at compile time are tracked by the same
// object registry the VM frees on shutdown.
func New(source string, c *chunk.Chunk, heap *value.Heap) *Compiler {
	return &Compiler{lex: lexer.New(source), chunk: c, heap: heap}
}

// Compile compiles source into c and reports whether it succeeded. On
// failure the returned error is a *multierror.Error holding the
// CompileError recorded during the pass; panic mode is never cleared, so
// that is always the first error alone.
func Compile(source string, c *chunk.Chunk, heap *value.Heap) (bool, error) {
	comp := New(source, c, heap)
	comp.advance()
	for !comp.check(token.EOF) {
		comp.declaration()
	}
	comp.endCompiler()

	if comp.hadError {
		return false, comp.errs.ErrorOrNil()
	}
	return true, nil
}

func (c *Compiler) declaration() {
	c.statement()
}

func (c *Compiler) statement() {
	switch {
	case c.match(token.Print):
		c.printStatement()
	default:
		c.expressionStatement()
	}
}

func (c *Compiler) printStatement() {
	c.expression()
	c.consume(token.Semicolon, "Expected ';' after expression.")
	c.emitByte(byte(chunk.OpPrint))
}

func (c *Compiler) expressionStatement() {
	c.expression()
	c.consume(token.Semicolon, "Expected ';' after expression.")
	c.emitByte(byte(chunk.OpPop))
}

func (c *Compiler) expression() {
	c.parsePrecedence(PrecAssignment)
}

func (c *Compiler) parsePrecedence(precedence Precedence) {
	c.advance()
	prefix := getRule(c.previous.Type).prefix
	if prefix == nil {
		c.errorAtPrevious("Expected an expression.")
		return
	}
	prefix(c)

	for precedence <= getRule(c.current.Type).precedence {
		c.advance()
		infix := getRule(c.previous.Type).infix
		infix(c)
	}
}

func (c *Compiler) literal() { c.emitLiteral() }

func (c *Compiler) emitLiteral() {
	switch c.previous.Type {
	case token.False:
		c.emitByte(byte(chunk.OpFalse))
	case token.True:
		c.emitByte(byte(chunk.OpTrue))
	case token.Nil:
		c.emitByte(byte(chunk.OpNil))
	default:
		panic("compiler: unreachable literal token")
	}
}

func (c *Compiler) number() {
	n, err := strconv.ParseFloat(c.previous.Lexeme, 64)
	if err != nil {
		c.errorAtPrevious("Invalid number literal.")
		return
	}
	c.emitConstant(value.Number(n))
}

func (c *Compiler) string() {
	lexeme := c.previous.Lexeme
	content := lexeme[1 : len(lexeme)-1]
	obj := c.heap.Intern(content)
	c.emitConstant(value.Obj(obj))
}

func (c *Compiler) grouping() {
	c.expression()
	c.consume(token.RightParen, "Expected ')' after expression.")
}

func (c *Compiler) unary() {
	operator := c.previous.Type

	c.parsePrecedence(PrecUnary)

	switch operator {
	case token.Minus:
		c.emitByte(byte(chunk.OpNegate))
	case token.Bang:
		c.emitByte(byte(chunk.OpNot))
	default:
		panic("compiler: unreachable unary operator")
	}
}

func (c *Compiler) binary() {
	operator := c.previous.Type
	rule := getRule(operator)
	c.parsePrecedence(rule.precedence + 1)

	switch operator {
	case token.BangEqual:
		c.emitBytes(byte(chunk.OpEqual), byte(chunk.OpNot))
	case token.EqualEqual:
		c.emitByte(byte(chunk.OpEqual))
	case token.Greater:
		c.emitByte(byte(chunk.OpGreater))
	case token.GreaterEqual:
		c.emitBytes(byte(chunk.OpLess), byte(chunk.OpNot))
	case token.Less:
		c.emitByte(byte(chunk.OpLess))
	case token.LessEqual:
		c.emitBytes(byte(chunk.OpGreater), byte(chunk.OpNot))
	case token.Plus:
		c.emitByte(byte(chunk.OpAdd))
	case token.Minus:
		c.emitByte(byte(chunk.OpSubtract))
	case token.Star:
		c.emitByte(byte(chunk.OpMultiply))
	case token.Slash:
		c.emitByte(byte(chunk.OpDivide))
	default:
		panic("compiler: unreachable binary operator")
	}
}

func (c *Compiler) emitConstant(v value.Value) {
	index := c.makeConstant(v)
	c.emitBytes(byte(chunk.OpConstant), index)
}

func (c *Compiler) makeConstant(v value.Value) byte {
	index := c.chunk.AddConstant(v)
	if index >= maxConstants {
		c.errorAtPrevious("Too many constants in one chunk.")
		return 0
	}
	return byte(index)
}

func (c *Compiler) emitByte(b byte) {
	c.chunk.Write(b, c.previous.Line)
}

func (c *Compiler) emitBytes(b1, b2 byte) {
	c.emitByte(b1)
	c.emitByte(b2)
}

func (c *Compiler) endCompiler() {
	c.emitByte(byte(chunk.OpReturn))
}

// advance shifts current into previous and pulls the next non-error
// token from the lexer, reporting and skipping any error tokens along
// the way so the rest of the pass only ever sees well-formed tokens.
func (c *Compiler) advance() {
	c.previous = c.current
	for {
		c.current = c.lex.ScanToken()
		if c.current.Type != token.Error {
			break
		}
		c.errorAtCurrent(c.current.Message)
	}
}

func (c *Compiler) check(typ token.Type) bool {
	return c.current.Type == typ
}

func (c *Compiler) match(typ token.Type) bool {
	if !c.check(typ) {
		return false
	}
	c.advance()
	return true
}

func (c *Compiler) consume(typ token.Type, msg string) {
	if c.current.Type == typ {
		c.advance()
		return
	}
	c.errorAtCurrent(msg)
}

func (c *Compiler) errorAtCurrent(msg string) { c.errorAt(c.current, msg) }
func (c *Compiler) errorAtPrevious(msg string) { c.errorAt(c.previous, msg) }

// errorAt records a CompileError for tok unless the parser is already in
// panic mode, in which case it is swallowed: one malformed token tends to
// produce a cascade of bogus follow-on errors, and panic mode exists so
// only the first of a cascade gets reported. Nothing clears panic mode
// once set — this grammar has no statement-level synchronization point
// to resume at, so a single error suppresses every error after it for
// the rest of the compile pass.
func (c *Compiler) errorAt(tok token.Token, msg string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.hadError = true

	err := &CompileError{Line: tok.Line, Message: msg}
	switch tok.Type {
	case token.EOF:
		err.AtEnd = true
	case token.Error:
		// no lexeme to point at; message alone identifies it
	default:
		err.AtToken = tok.Lexeme
	}
	c.errs = multierror.Append(c.errs, err)
}
