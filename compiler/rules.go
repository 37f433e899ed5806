package compiler

import "loxvm/token"

// Precedence orders how tightly an infix operator binds, low to high.
// parsePrecedence keeps consuming infix operators whose rule precedence
// is at least as high as the precedence it was called with.
type Precedence int

const (
	PrecNone Precedence = iota
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
)

type parseFn func(c *Compiler)

type parseRule struct {
	prefix     parseFn
	infix      parseFn
	precedence Precedence
}

// rules is the parse table, one entry per token.Type. A nil prefix or
// infix field means that position is never valid for that token.
//
// BangEqual and EqualEqual sit at PrecComparison rather than the
// PrecEquality level the enum above reserves for them: the source this
// table is grounded on places them there, so chained comparisons and
// equalities associate the same way here.
var rules map[token.Type]parseRule

func init() {
	rules = map[token.Type]parseRule{
		token.LeftParen:    {prefix: (*Compiler).grouping},
		token.Minus:        {prefix: (*Compiler).unary, infix: (*Compiler).binary, precedence: PrecTerm},
		token.Plus:         {infix: (*Compiler).binary, precedence: PrecTerm},
		token.Slash:        {infix: (*Compiler).binary, precedence: PrecFactor},
		token.Star:         {infix: (*Compiler).binary, precedence: PrecFactor},
		token.Bang:         {prefix: (*Compiler).unary},
		token.BangEqual:    {infix: (*Compiler).binary, precedence: PrecComparison},
		token.EqualEqual:   {infix: (*Compiler).binary, precedence: PrecComparison},
		token.Greater:      {infix: (*Compiler).binary, precedence: PrecComparison},
		token.GreaterEqual: {infix: (*Compiler).binary, precedence: PrecComparison},
		token.Less:         {infix: (*Compiler).binary, precedence: PrecComparison},
		token.LessEqual:    {infix: (*Compiler).binary, precedence: PrecComparison},
		token.String:       {prefix: (*Compiler).string},
		token.Number:       {prefix: (*Compiler).number},
		token.False:        {prefix: (*Compiler).literal},
		token.Nil:          {prefix: (*Compiler).literal},
		token.True:         {prefix: (*Compiler).literal},
	}
}

func getRule(typ token.Type) parseRule {
	return rules[typ]
}
