package compiler

import (
	"errors"
	"fmt"
	"strings"
)

// CodeGen walks an AST and emits assembly source text for one Target.
type CodeGen struct {
	target Target
	out    strings.Builder
}

func newCodeGen(target Target) *CodeGen {
	return &CodeGen{target: target}
}

func (cg *CodeGen) line(format string, args ...any) {
	fmt.Fprintf(&cg.out, format+"\n", args...)
}

// instr emits one indented instruction with an optional trailing comment.
func (cg *CodeGen) instr(text, comment string) {
	if comment == "" {
		cg.line("    %s", text)
		return
	}
	cg.line("    %-20s %s %s", text, cg.target.Comment, comment)
}

// load emits a register load of a decimal immediate operand.
func (cg *CodeGen) load(reg, digits, comment string) {
	cg.instr(fmt.Sprintf("%s %s, %s", cg.target.Move, reg, cg.target.Immediate(digits)), comment)
}

// genExpr returns the operand text for e.
func (cg *CodeGen) genExpr(e Expr) (string, error) {
	switch n := e.(type) {
	case *IntLiteral:
		if n.Value == "" {
			return "", errors.New("integer literal has no digits")
		}
		return n.Value, nil
	case nil:
		return "", errors.New("missing expression")
	default:
		return "", fmt.Errorf("unsupported expression %T", e)
	}
}

func (cg *CodeGen) genStmt(s Stmt) error {
	switch n := s.(type) {
	case *ExitStmt:
		if n == nil {
			return errors.New("nil exit statement")
		}
		status, err := cg.genExpr(n.Value)
		if err != nil {
			return err
		}
		cg.load(cg.target.NumberReg, fmt.Sprint(cg.target.ExitSyscall), "exit")
		cg.load(cg.target.ArgReg, status, "")
		cg.instr(cg.target.Trap, "")
		return nil
	default:
		return fmt.Errorf("unsupported statement %T", s)
	}
}

// Generate emits a complete assembly unit for stmt: the exported entry label
// followed by the exit syscall. The literal keeps its decimal value, spelled
// as the target's assembler reads it, and is not range-checked against the
// exit status width.
func Generate(stmt Stmt, target Target) (string, error) {
	if stmt == nil {
		return "", errors.New("codegen: no statement")
	}
	cg := newCodeGen(target)

	cg.line("    %s %s", target.Global, target.Entry)
	cg.line("    %s", target.Section)
	cg.line("%s:", target.Entry)
	if err := cg.genStmt(stmt); err != nil {
		return "", fmt.Errorf("codegen: %w", err)
	}

	return cg.out.String(), nil
}
