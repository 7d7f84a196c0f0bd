package ast

import (
	"fmt"
	"io"
	"strings"
)

const indentChar = "\t"

// printer writes source text straight to the caller's writer. The first
// error, from the writer or from an operator lookup, is kept and all later
// output is dropped.
type printer struct {
	w           io.Writer
	depth       int
	atLineStart bool
	err         error
}

func newPrinter(w io.Writer, depth int) *printer {
	return &printer{w: w, depth: depth, atLineStart: true}
}

func (p *printer) write(s string) {
	if p.err != nil || s == "" {
		return
	}
	if _, err := io.WriteString(p.w, s); err != nil {
		p.err = err
		return
	}
	p.atLineStart = s[len(s)-1] == '\n'
}

func (p *printer) writef(format string, args ...any) {
	p.write(fmt.Sprintf(format, args...))
}

func (p *printer) writeln() {
	p.write("\n")
}

// endLine terminates the current line unless a member already did.
func (p *printer) endLine() {
	if !p.atLineStart {
		p.writeln()
	}
}

func (p *printer) writeIndent() {
	if p.depth > 0 {
		p.write(strings.Repeat(indentChar, p.depth))
	}
}

func (p *printer) indent() {
	p.depth++
}

func (p *printer) dedent() {
	if p.depth > 0 {
		p.depth--
	}
}

func (p *printer) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p *printer) node(n Node) {
	switch n := n.(type) {
	case Type:
		p.typ(n)
	case Expr:
		p.expr(n)
	case *File:
		p.file(n)
	case *Import:
		p.importDecl(n)
	case *Field:
		p.field(n)
	case *Method:
		p.method(n)
	default:
		p.fail(fmt.Errorf("ast: unknown node %T", n))
	}
}

func (p *printer) file(f *File) {
	p.writeIndent()
	p.writef("package %s\n\n", f.pkg)
	switch len(f.imports) {
	case 0:
	case 1:
		p.importDecl(f.imports[0])
		p.writeln()
	default:
		for _, imp := range f.imports {
			p.importDecl(imp)
		}
		p.writeln()
	}
}

func (p *printer) importDecl(i *Import) {
	p.writeIndent()
	p.write("import ")
	if i.alias != "" {
		p.write(i.alias)
		p.write(" ")
	}
	p.write(i.path)
	p.writeln()
}

func (p *printer) field(f *Field) {
	p.writeIndent()
	if !f.IsEmbedding() {
		p.write(f.name)
		p.write(" ")
	}
	p.typ(f.typ)
}

func (p *printer) method(m *Method) {
	p.writeIndent()
	p.write(m.name)
	p.write(" ")
	p.typ(m.signature)
}

func (p *printer) typ(t Type) {
	switch t := t.(type) {
	case *NamedType:
		p.write(t.name)
	case *QualifiedTypeName:
		if t.parent != nil {
			p.typ(t.parent)
		} else {
			p.write(t.pkg)
		}
		p.write(".")
		p.write(t.name)
	case *ArrayType:
		p.typ(t.item)
		p.write("[")
		p.expr(t.size)
		p.write("]")
	case *SliceType:
		p.typ(t.item)
		p.write("[]")
	case *RawSliceType:
		p.typ(t.item)
		p.write("[_]")
	case *PointerType:
		p.typ(t.item)
		p.write("?")
	case *FunctionType:
		p.signature(t)
	case *StructType:
		p.fields("struct", t.fields)
	case *UnionType:
		p.fields("union", t.fields)
	case *InterfaceType:
		p.write("interface {")
		p.writeln()
		p.indent()
		for _, m := range t.methods {
			p.method(m)
			p.endLine()
		}
		p.dedent()
		p.closeBrace()
	case *TypeInstantiation:
		p.typ(t.generic)
		p.write("[")
		p.types(t.args)
		p.write("]")
	default:
		p.fail(fmt.Errorf("ast: unknown type node %T", t))
	}
}

func (p *printer) signature(t *FunctionType) {
	p.write("func (")
	p.types(t.inputs)
	p.write(") -> (")
	p.types(t.outputs)
	p.write(")")
}

func (p *printer) fields(keyword string, fields []*Field) {
	p.write(keyword)
	p.write(" {")
	p.writeln()
	p.indent()
	for _, f := range fields {
		p.field(f)
		p.endLine()
	}
	p.dedent()
	p.closeBrace()
}

func (p *printer) closeBrace() {
	p.writeIndent()
	p.write("}")
	p.writeln()
}

// types prints a comma separated list with no trailing separator.
func (p *printer) types(types []Type) {
	for i, t := range types {
		if i > 0 {
			p.write(", ")
		}
		p.typ(t)
	}
}

func (p *printer) expr(e Expr) {
	switch e := e.(type) {
	case *BinaryExpr:
		tok, err := e.op.Token()
		if err != nil {
			p.fail(err)
			return
		}
		p.write("(")
		p.expr(e.left)
		p.write(") ")
		p.write(tok)
		p.write(" (")
		p.expr(e.right)
		p.write(")")
	case *UnaryExpr:
		tok, err := e.op.Token()
		if err != nil {
			p.fail(err)
			return
		}
		p.write(tok)
		p.write(" ")
		p.expr(e.operand)
	case *BooleanLiteral:
		if e.value {
			p.write("true")
		} else {
			p.write("false")
		}
	case *StringLiteral:
		p.write(e.value)
	case *NumericLiteral:
		p.write(e.value)
	case *ArrayAccess:
		p.expr(e.array)
		p.write("[")
		p.expr(e.index)
		p.write("]")
	case *FieldAccess:
		p.expr(e.record)
		p.write(".")
		p.write(e.field)
	case *PackageAccess:
		p.write(e.pkg)
		p.write(".")
		p.write(e.name)
	case *PointerDereference:
		p.expr(e.pointer)
		p.write(".")
	case *TypeCast:
		p.typ(e.target)
		p.write("(")
		p.expr(e.expr)
		p.write(")")
	default:
		p.fail(fmt.Errorf("ast: unknown expression node %T", e))
	}
}
