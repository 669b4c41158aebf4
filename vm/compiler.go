package vm

import (
	"fmt"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/vesper-lang/vesper/debug"
	lerrors "github.com/vesper-lang/vesper/errors"
	"github.com/vesper-lang/vesper/utils"
)

// Local is a declared local variable and the scope depth at which it was
// declared. depth is nil while the variable is being initialized: reading
// it in its own initializer is a compile error.
type Local struct {
	name  Token
	depth *int
}

// Parser is the single-pass Pratt compiler: it drives the Scanner and
// emits bytecode directly into chunk as it goes, with no intermediate AST.
// Its local-variable stack and scopeDepth track lexical scoping; there are
// no nested function bodies in this language, so unlike a full Lox compiler
// there's exactly one flat compiler per source, not a chain of enclosing
// ones.
type Parser struct {
	*Scanner
	prev, curr Token
	chunk      *Chunk
	interner   *Interner

	locals     []Local
	scopeDepth int

	errors    *multierror.Error
	panicMode bool
}

func NewParser(interner *Interner) *Parser { return &Parser{interner: interner} }

const maxLocals = 256

/* Expression and statement compilation */

func (p *Parser) emitByte(b byte) { p.chunk.Write(b, p.prev.Line) }

func (p *Parser) emitBytes(bs ...byte) {
	for _, b := range bs {
		p.emitByte(b)
	}
}

func (p *Parser) emitConstant(val Value) { p.emitBytes(byte(OpConstant), p.makeConstant(val)) }

// makeConstant adds val to the current chunk's constant pool. Overflowing
// the one-byte index space is a compile-time diagnostic, and the offending
// instruction falls back to index 0.
func (p *Parser) makeConstant(val Value) byte {
	idx, ok := p.chunk.AddConst(val)
	if !ok {
		p.error("Too many constants in one chunk.")
		return 0
	}
	return byte(idx)
}

func (p *Parser) number(_canAssign bool) {
	val, err := strconv.ParseFloat(p.prev.Lexeme(), 64)
	debug.Assertf(err == nil, "scanner produced an unparseable number literal %q", p.prev.Lexeme())
	p.emitConstant(VNum(val))
}

func (p *Parser) grouping(_canAssign bool) {
	p.expression()
	p.consume(TokenRightParen, "Expect ')' after expression.")
}

func (p *Parser) literal(_canAssign bool) {
	switch p.prev.Kind {
	case TokenFalse:
		p.emitByte(byte(OpFalse))
	case TokenNil:
		p.emitByte(byte(OpNil))
	case TokenTrue:
		p.emitByte(byte(OpTrue))
	default:
		panic(lerrors.Unreachable)
	}
}

func (p *Parser) string_(_canAssign bool) {
	lexeme := p.prev.Lexeme()
	unquoted := lexeme[1 : len(lexeme)-1] // Strip the surrounding quotes.
	p.emitConstant(NewVStr(p.interner, unquoted))
}

func (p *Parser) variable(canAssign bool) { p.namedVariable(p.prev, canAssign) }

func (p *Parser) namedVariable(name Token, canAssign bool) {
	var arg byte
	var getOp, setOp OpCode
	if slot, ok := p.resolveLocal(name); ok {
		arg, getOp, setOp = byte(slot), OpGetLocal, OpSetLocal
	} else {
		arg, getOp, setOp = p.identifierConstant(name), OpGetGlobal, OpSetGlobal
	}

	if canAssign && p.match(TokenEqual) {
		p.expression()
		p.emitBytes(byte(setOp), arg)
		return
	}
	p.emitBytes(byte(getOp), arg)
}

func (p *Parser) unary(_canAssign bool) {
	op := p.prev.Kind
	p.parsePrecedence(PrecUnary)
	switch op {
	case TokenBang:
		p.emitByte(byte(OpNot))
	case TokenMinus:
		p.emitByte(byte(OpNegate))
	default:
		panic(lerrors.Unreachable)
	}
}

func (p *Parser) binary(_canAssign bool) {
	op := p.prev.Kind
	rule := parseRules[op]
	p.parsePrecedence(rule.Prec.next())

	switch op {
	case TokenBangEqual:
		p.emitBytes(byte(OpEqual), byte(OpNot))
	case TokenEqualEqual:
		p.emitByte(byte(OpEqual))
	case TokenGreater:
		p.emitByte(byte(OpGreater))
	case TokenGreaterEqual:
		p.emitBytes(byte(OpLess), byte(OpNot))
	case TokenLess:
		p.emitByte(byte(OpLess))
	case TokenLessEqual:
		p.emitBytes(byte(OpGreater), byte(OpNot))
	case TokenPlus:
		p.emitByte(byte(OpAdd))
	case TokenMinus:
		p.emitByte(byte(OpSubtract))
	case TokenStar:
		p.emitByte(byte(OpMultiply))
	case TokenSlash:
		p.emitByte(byte(OpDivide))
	default:
		panic(lerrors.Unreachable)
	}
}

func (p *Parser) expression() { p.parsePrecedence(PrecAssignment) }

func (p *Parser) exprStatement() {
	p.expression()
	p.consume(TokenSemicolon, "Expect ';' after expression.")
	p.emitByte(byte(OpPop))
}

func (p *Parser) printStatement() {
	p.expression()
	p.consume(TokenSemicolon, "Expect ';' after value.")
	p.emitByte(byte(OpPrint))
}

func (p *Parser) block() {
	for !p.check(TokenRightBrace) && !p.check(TokenEOF) {
		p.declaration()
	}
	p.consume(TokenRightBrace, "Expect '}' after block.")
}

// statement parses print, a brace-delimited block, or falls back to an
// expression statement. Control-flow keywords (if/while/for/fun/class/
// return) have no handler here and no prefix parse rule, so they fall
// through to exprStatement and are rejected there as "Expect expression."
func (p *Parser) statement() {
	switch {
	case p.match(TokenPrint):
		p.printStatement()
	case p.match(TokenLeftBrace):
		p.beginScope()
		p.block()
		p.endScope()
	default:
		p.exprStatement()
	}
}

func (p *Parser) varDeclaration() {
	global, isGlobal, ok := p.parseVariable("Expect variable name.")
	if p.match(TokenEqual) {
		p.expression()
	} else {
		p.emitByte(byte(OpNil))
	}
	p.consume(TokenSemicolon, "Expect ';' after variable declaration.")
	if ok {
		p.defineVariable(global, isGlobal)
	}
}

func (p *Parser) declaration() {
	switch {
	case p.match(TokenVar):
		p.varDeclaration()
	default:
		p.statement()
	}
	if p.panicMode {
		p.synchronize()
	}
}

type ParseFn func(p *Parser, canAssign bool)

type ParseRule struct {
	Prefix, Infix ParseFn
	Prec          Prec
}

// parseRules is keyed by TokenKind; any kind not listed gets the zero
// ParseRule{nil, nil, PrecNone}: no prefix, no infix. That default is what
// keeps and/or/class/fun/if/while/for/return/super/this out of the grammar:
// the tokens scan fine, but the parser has nothing to do with them and
// reports "Expect expression."
var parseRules = [TokenEOF + 1]ParseRule{
	TokenLeftParen:    {Prefix: (*Parser).grouping, Prec: PrecNone},
	TokenMinus:        {Prefix: (*Parser).unary, Infix: (*Parser).binary, Prec: PrecTerm},
	TokenPlus:         {Infix: (*Parser).binary, Prec: PrecTerm},
	TokenSlash:        {Infix: (*Parser).binary, Prec: PrecFactor},
	TokenStar:         {Infix: (*Parser).binary, Prec: PrecFactor},
	TokenBang:         {Prefix: (*Parser).unary, Prec: PrecNone},
	TokenBangEqual:    {Infix: (*Parser).binary, Prec: PrecEquality},
	TokenEqualEqual:   {Infix: (*Parser).binary, Prec: PrecEquality},
	TokenGreater:      {Infix: (*Parser).binary, Prec: PrecComparison},
	TokenGreaterEqual: {Infix: (*Parser).binary, Prec: PrecComparison},
	TokenLess:         {Infix: (*Parser).binary, Prec: PrecComparison},
	TokenLessEqual:    {Infix: (*Parser).binary, Prec: PrecComparison},
	TokenIdentifier:   {Prefix: (*Parser).variable, Prec: PrecNone},
	TokenString:       {Prefix: (*Parser).string_, Prec: PrecNone},
	TokenNumber:       {Prefix: (*Parser).number, Prec: PrecNone},
	TokenFalse:        {Prefix: (*Parser).literal, Prec: PrecNone},
	TokenNil:          {Prefix: (*Parser).literal, Prec: PrecNone},
	TokenTrue:         {Prefix: (*Parser).literal, Prec: PrecNone},
}

// parsePrecedence is the precedence-climbing core of the Pratt driver:
// parse one prefix expression, then keep folding in infix operators as
// long as the upcoming token's precedence is at least min.
func (p *Parser) parsePrecedence(min Prec) {
	p.advance()

	prefix := parseRules[p.prev.Kind].Prefix
	if prefix == nil {
		p.error("Expect expression.")
		return
	}
	canAssign := min <= PrecAssignment
	prefix(p, canAssign)

	for parseRules[p.curr.Kind].Prec >= min {
		p.advance()
		infix := parseRules[p.prev.Kind].Infix
		if infix == nil {
			panic(lerrors.Unreachable)
		}
		infix(p, canAssign)
	}

	if canAssign && p.match(TokenEqual) {
		p.error("Invalid assignment target.")
	}
}

/* Token-stream helpers */

func (p *Parser) check(kind TokenKind) bool     { return p.curr.Kind == kind }
func (p *Parser) checkPrev(kind TokenKind) bool { return p.prev.Kind == kind }

func (p *Parser) advance() {
	p.prev = p.curr
	for {
		p.curr = p.ScanToken()
		if !p.check(TokenError) {
			break
		}
		p.errorAtCurrent(p.curr.Lexeme())
	}
}

func (p *Parser) match(kind TokenKind) bool {
	if !p.check(kind) {
		return false
	}
	p.advance()
	return true
}

// consume advances past curr if it has the expected kind, else latches
// errMsg at curr and leaves the parser positioned where it was.
func (p *Parser) consume(kind TokenKind, errMsg string) bool {
	if !p.check(kind) {
		p.errorAtCurrent(errMsg)
		return false
	}
	p.advance()
	return true
}

/* Top-level entry point */

// Compile scans and parses src as a sequence of top-level declarations
// until EOF, emitting a trailing Return, and returns the resulting chunk.
// Any compile-time diagnostics latched along the way come back as a single
// aggregated error; a non-nil chunk is still returned so callers that want
// to inspect partial output for tests or tracing can.
func Compile(src string, interner *Interner) (*Chunk, error) {
	p := NewParser(interner)
	p.chunk = NewChunk()
	p.Scanner = NewScanner(src)

	p.advance()
	for !p.match(TokenEOF) {
		p.declaration()
	}
	p.endCompiler()

	return p.chunk, p.errors.ErrorOrNil()
}

func (p *Parser) endCompiler() {
	p.emitByte(byte(OpReturn))
	if debug.DEBUG {
		logrus.Debugln(p.chunk.Disassemble("code"))
	}
}

func (p *Parser) identifierConstant(name Token) byte {
	return p.makeConstant(NewVStr(p.interner, name.Lexeme()))
}

// markInitialized records that the most recently declared local is now
// readable: its depth becomes the current scope depth instead of the
// "being initialized" nil sentinel.
func (p *Parser) markInitialized() {
	if p.scopeDepth == 0 {
		return
	}
	p.locals[len(p.locals)-1].depth = utils.Box(p.scopeDepth)
}

// defineVariable finishes a declaration. Locals are simply marked
// initialized: they already live on the runtime stack at their
// compile-time slot. Globals emit DefineGlobal against the constant-pool
// index parseVariable returned.
func (p *Parser) defineVariable(global byte, isGlobal bool) {
	if !isGlobal {
		p.markInitialized()
		return
	}
	p.emitBytes(byte(OpDefineGlobal), global)
}

// parseVariable consumes an identifier and declares it. For a local
// (scopeDepth > 0) the variable is resolved by stack slot rather than the
// constant pool, so global/isGlobal are meaningless; ok reports whether a
// valid identifier was found at all, so callers can skip defineVariable on
// failure instead of operating on a local that was never declared.
func (p *Parser) parseVariable(errMsg string) (global byte, isGlobal, ok bool) {
	if !p.consume(TokenIdentifier, errMsg) {
		return 0, false, false
	}
	p.declareVariable()
	if p.scopeDepth > 0 {
		return 0, false, true
	}
	return p.identifierConstant(p.prev), true, true
}

// declareVariable is a no-op at global scope: globals live in the constant
// pool, not the local stack. At block scope it rejects redeclaring a name
// already bound in the current scope, then pushes a new, as-yet-
// uninitialized Local.
func (p *Parser) declareVariable() {
	if p.scopeDepth == 0 {
		return
	}
	name := p.prev
	for i := len(p.locals) - 1; i >= 0; i-- {
		local := p.locals[i]
		if local.depth != nil && *local.depth < p.scopeDepth {
			break // Left the current scope; shadowing an outer name is fine.
		}
		if name.Eq(local.name) {
			p.error("Already a variable with this name in this scope.")
		}
	}
	p.addLocal(name)
}

func (p *Parser) addLocal(name Token) {
	if len(p.locals) >= maxLocals {
		p.error("Too many local variables in function.")
		return
	}
	p.locals = append(p.locals, Local{name: name})
}

// resolveLocal scans locals top-down for a lexeme match. Reading a local in
// its own initializer (depth == nil) is a compile error, but the slot is
// still returned so a later reference to the same name doesn't cascade a
// second, redundant diagnostic.
func (p *Parser) resolveLocal(name Token) (slot int, found bool) {
	for i := len(p.locals) - 1; i >= 0; i-- {
		local := p.locals[i]
		if name.Eq(local.name) {
			if local.depth == nil {
				p.error("Can't read variable in its own initializer.")
			}
			return i, true
		}
	}
	return 0, false
}

func (p *Parser) beginScope() { p.scopeDepth++ }

// endScope pops every local declared in the scope being exited, emitting
// one Pop per local so the runtime stack is back to where it was before
// the block once its result is discarded.
func (p *Parser) endScope() {
	p.scopeDepth--
	for len(p.locals) > 0 {
		// A nil depth means a compile error left this local uninitialized
		// (e.g. a bad initializer expression); it still belongs to the
		// scope being popped, so treat it the same as "deeper than here".
		d := p.locals[len(p.locals)-1].depth
		if d != nil && *d <= p.scopeDepth {
			break
		}
		p.emitByte(byte(OpPop))
		p.locals = p.locals[:len(p.locals)-1]
	}
}

/* Precedence */

//go:generate stringer -type=Prec
type Prec int

const (
	PrecNone Prec = iota
	PrecAssignment
	PrecOr
	PrecAnd
	PrecEquality
	PrecComparison
	PrecTerm
	PrecFactor
	PrecUnary
	PrecCall
	PrecPrimary
	PrecExt
)

// next steps to the next tighter precedence level. Ext is a sentinel
// ceiling: incrementing Ext yields Ext, which keeps binary()'s
// one-level-tighter recursion from running past the end of the
// precedence scale.
func (p Prec) next() Prec {
	if p >= PrecPrimary {
		return PrecExt
	}
	return p + 1
}

/* Error handling */

// synchronize discards tokens after a parse error until it finds a
// statement boundary: a just-consumed ';', or a token that starts a new
// declaration/statement. Most of the listed keywords don't actually
// introduce a statement in this language, but they remain plausible
// resync points for any source that uses them.
func (p *Parser) synchronize() {
	p.panicMode = false
	for !p.check(TokenEOF) {
		if p.checkPrev(TokenSemicolon) {
			return
		}
		switch p.curr.Kind {
		case TokenClass, TokenFun, TokenVar, TokenFor, TokenIf, TokenWhile, TokenPrint, TokenReturn:
			return
		}
		p.advance()
	}
}

func (p *Parser) errorAt(tok Token, msg string) {
	if p.panicMode {
		return
	}
	p.panicMode = true

	var where string
	switch tok.Kind {
	case TokenEOF:
		where = "at end"
	case TokenError:
		where = ""
	default:
		where = fmt.Sprintf("at '%s'", tok.Lexeme())
	}
	err := &lerrors.CompileError{Line: tok.Line, Where: where, Message: msg}

	if debug.DEBUG {
		logrus.Debugln(err)
	}
	p.errors = multierror.Append(p.errors, err)
}

func (p *Parser) error(msg string)          { p.errorAt(p.prev, msg) }
func (p *Parser) errorAtCurrent(msg string) { p.errorAt(p.curr, msg) }
