package xplore

import (
	"strings"

	gobib "github.com/reoring/gobib"
)

// Op is a boolean connective of a search expression.
type Op string

const (
	OpAnd Op = "AND"
	OpOr  Op = "OR"
)

// Expr is a node of a search expression tree: either a Literal or a
// Compound. Negation lives on literals; the service has no grouping
// syntax, so a negated compound cannot be rendered.
type Expr interface {
	isExpr()
}

// Literal is one quoted search term. Terms may carry the service's
// wildcards, "*" (any characters) and "?" (any character).
type Literal struct {
	Text    string
	Negated bool
}

func (Literal) isExpr() {}

// Not returns the negated literal.
func (l Literal) Not() Literal {
	l.Negated = !l.Negated
	return l
}

// String renders the quoted term. Negation is rendered by the enclosing
// compound.
func (l Literal) String() string { return `"` + l.Text + `"` }

// Compound joins two or more subexpressions with one connective.
type Compound struct {
	Op       Op
	Children []Expr
}

func (Compound) isExpr() {}

// And joins the operands with AND, flattening nested AND compounds.
func And(exprs ...Expr) (Compound, error) {
	return compound(OpAnd, exprs)
}

// Or joins the operands with OR, flattening nested OR compounds. Negated
// literals are rejected; the service supports exclusion only under AND.
func Or(exprs ...Expr) (Compound, error) {
	for _, e := range exprs {
		if l, ok := e.(Literal); ok && l.Negated {
			return Compound{}, gobib.Issues{{
				Path:    "/",
				Code:    gobib.CodeInvalidFormat,
				Message: "a negated term can only be combined with AND",
			}}
		}
	}
	return compound(OpOr, exprs)
}

func compound(op Op, exprs []Expr) (Compound, error) {
	if len(exprs) < 2 {
		return Compound{}, gobib.Issues{{
			Path:    "/",
			Code:    gobib.CodeInvalidFormat,
			Message: "a compound expression needs at least two operands",
		}}
	}
	c := Compound{Op: op}
	for _, e := range exprs {
		if sub, ok := e.(Compound); ok && sub.Op == op {
			c.Children = append(c.Children, sub.Children...)
			continue
		}
		c.Children = append(c.Children, e)
	}
	return c, nil
}

// Render serializes the expression the way the service's query language
// expects it: plain children joined by the connective, then every negated
// literal appended with NOT. At least one child must not be negated.
func (c Compound) Render() (string, error) {
	var plain, negated []string
	for _, e := range c.Children {
		switch t := e.(type) {
		case Literal:
			if t.Negated {
				negated = append(negated, t.String())
			} else {
				plain = append(plain, t.String())
			}
		case Compound:
			s, err := t.Render()
			if err != nil {
				return "", err
			}
			plain = append(plain, s)
		}
	}
	if len(plain) == 0 {
		return "", gobib.Issues{{
			Path:    "/",
			Code:    gobib.CodeInvalidFormat,
			Message: "a compound expression needs at least one non-negated term",
		}}
	}

	query := strings.Join(plain, " "+string(c.Op)+" ")
	if len(negated) > 0 {
		query += " NOT " + strings.Join(negated, " NOT ")
	}
	return query, nil
}
