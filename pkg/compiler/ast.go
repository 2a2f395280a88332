package compiler

import "fmt"

//  Expression nodes

// Expr is implemented by every node that produces a value.
type Expr interface {
	exprNode()
	String() string
}

// IntLiteral is an integer constant, kept as the digit run from the source.
//
//	exit 42;
//	     ^^  IntLiteral{Value: "42"}
type IntLiteral struct {
	Value string
}

func (*IntLiteral) exprNode()        {}
func (l *IntLiteral) String() string { return l.Value }

//  Statement nodes

// Stmt is implemented by every top-level statement. The language has one
// statement form today; codegen switches on the concrete type.
type Stmt interface {
	stmtNode()
	String() string
}

// ExitStmt terminates the process with Value as its status.
//
//	exit 42;
type ExitStmt struct {
	Value Expr
}

func (*ExitStmt) stmtNode() {}
func (s *ExitStmt) String() string {
	return fmt.Sprintf("Exit(%s)", s.Value)
}
