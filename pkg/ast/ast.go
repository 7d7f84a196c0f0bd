// Package ast declares the syntax tree of the primordial language and the
// printer that reconstructs source text from it.
//
// Nodes are immutable once built. Every child is owned by exactly one parent,
// so a tree cannot contain cycles or shared subtrees. Construction goes through
// the New… functions; fields are reachable only through accessors.
package ast

import (
	"io"
	"strings"
)

// Node is the base interface for all AST nodes.
type Node interface {
	// Render writes the source form of the node to w. Indentation-sensitive
	// nodes (imports, fields, closing braces) are prefixed with level tabs.
	Render(w io.Writer, level int) error
}

// Type is a marker interface for type nodes.
type Type interface {
	Node
	typeNode()
}

// Expr is a marker interface for expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Sprint renders n at level zero and returns the text.
func Sprint(n Node) (string, error) {
	var b strings.Builder
	if err := n.Render(&b, 0); err != nil {
		return b.String(), err
	}
	return b.String(), nil
}

func render(w io.Writer, n Node, level int) error {
	p := newPrinter(w, level)
	p.node(n)
	return p.err
}
