// Package asm statically checks assembly text produced by the compiler
// before it is handed to an external assembler.
//
// It understands only the small instruction subset the code generator emits
// for each target, which keeps malformed output from ever reaching nasm or as.
package asm

import (
	"fmt"
	"strings"
	"unicode"

	"exitc/pkg/compiler"
)

// Line is one parsed, non-empty source line.
type Line struct {
	LineNo   int
	Labels   []string
	Mnemonic string // upper-cased
	Operands []string
}

// Listing is the checked structure of an assembly unit.
type Listing struct {
	Labels       []string
	Directives   []Line
	Instructions []Line
	ExitStatus   string // literal loaded into the syscall argument register
}

// Checker validates assembly for a single target.
type Checker struct {
	target       compiler.Target
	directives   map[string]bool
	instructions map[string]bool
	registers    map[string]bool
	trap         string
}

func NewChecker(target compiler.Target) *Checker {
	return &Checker{
		target: target,
		directives: map[string]bool{
			mnemonicOf(target.Global):  true,
			mnemonicOf(target.Section): true,
		},
		instructions: map[string]bool{
			mnemonicOf(target.Move): true,
			mnemonicOf(target.Trap): true,
		},
		registers: map[string]bool{
			strings.ToUpper(target.NumberReg): true,
			strings.ToUpper(target.ArgReg):    true,
		},
		trap: mnemonicOf(target.Trap),
	}
}

// Check parses code for target and verifies it is a complete exit program.
func Check(code string, target compiler.Target) (*Listing, error) {
	return NewChecker(target).Check(code)
}

func (c *Checker) Check(code string) (*Listing, error) {
	listing := &Listing{}
	values := make(map[string]string)

	for i, raw := range strings.Split(code, "\n") {
		lineNo := i + 1
		p, err := c.parseLine(raw, lineNo)
		if err != nil {
			return nil, err
		}
		listing.Labels = append(listing.Labels, p.Labels...)
		if p.Mnemonic == "" {
			continue
		}

		switch {
		case c.directives[p.Mnemonic]:
			listing.Directives = append(listing.Directives, p)
		case c.instructions[p.Mnemonic]:
			if err := c.checkOperands(p, values); err != nil {
				return nil, err
			}
			listing.Instructions = append(listing.Instructions, p)
		default:
			return nil, fmt.Errorf("unknown instruction on line %d: %s", lineNo, p.Mnemonic)
		}
	}

	if err := c.checkStructure(listing); err != nil {
		return nil, err
	}
	listing.ExitStatus = values[strings.ToUpper(c.target.ArgReg)]
	return listing, nil
}

// checkOperands validates a single instruction and records register loads.
func (c *Checker) checkOperands(p Line, values map[string]string) error {
	if p.Mnemonic == c.trap {
		return nil
	}
	if len(p.Operands) != 2 {
		return fmt.Errorf("%s expects 2 operands on line %d, got %d", p.Mnemonic, p.LineNo, len(p.Operands))
	}
	reg := strings.ToUpper(p.Operands[0])
	if !c.registers[reg] {
		return fmt.Errorf("invalid register '%s' on line %d", p.Operands[0], p.LineNo)
	}
	imm, err := c.parseImmediate(p.Operands[1], p.LineNo)
	if err != nil {
		return err
	}
	values[reg] = imm
	return nil
}

// parseImmediate accepts an unsigned decimal literal with the target's
// immediate prefix. GNU as reads a leading 0 as octal, so GAS immediates
// with one are rejected. Width is left to the assembler.
func (c *Checker) parseImmediate(token string, lineNo int) (string, error) {
	digits, ok := strings.CutPrefix(token, c.target.ImmPrefix)
	if !ok || digits == "" {
		return "", fmt.Errorf("invalid immediate on line %d: %s", lineNo, token)
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("invalid immediate on line %d: %s", lineNo, token)
		}
	}
	if c.target.Syntax == compiler.GAS && len(digits) > 1 && digits[0] == '0' {
		return "", fmt.Errorf("octal immediate on line %d: %s", lineNo, token)
	}
	return digits, nil
}

func (c *Checker) checkStructure(l *Listing) error {
	if len(l.Labels) != 1 || l.Labels[0] != c.target.Entry {
		return fmt.Errorf("expected exactly one label %q, found %v", c.target.Entry, l.Labels)
	}

	exported := false
	globalOp := mnemonicOf(c.target.Global)
	for _, d := range l.Directives {
		if d.Mnemonic == globalOp && len(d.Operands) == 1 && d.Operands[0] == c.target.Entry {
			exported = true
		}
	}
	if !exported {
		return fmt.Errorf("entry symbol %q is not exported", c.target.Entry)
	}

	traps := 0
	for _, in := range l.Instructions {
		if in.Mnemonic == c.trap {
			traps++
		}
	}
	if traps != 1 {
		return fmt.Errorf("expected exactly one %s, found %d", strings.ToLower(c.trap), traps)
	}
	if last := l.Instructions[len(l.Instructions)-1]; last.Mnemonic != c.trap {
		return fmt.Errorf("line %d: %s must be the last instruction", last.LineNo, strings.ToLower(c.trap))
	}
	return nil
}

func (c *Checker) parseLine(raw string, lineNo int) (Line, error) {
	p := Line{LineNo: lineNo}

	line := strings.TrimSpace(stripComments(raw, c.target.Comment))
	if line == "" {
		return p, nil
	}

	for {
		colon := strings.IndexByte(line, ':')
		if colon <= 0 {
			break
		}

		beforeColon := strings.TrimSpace(line[:colon])
		if strings.ContainsAny(beforeColon, " \t") {
			break
		}
		if !isIdentifier(beforeColon) {
			return p, fmt.Errorf("invalid label '%s' on line %d", beforeColon, lineNo)
		}

		p.Labels = append(p.Labels, beforeColon)
		line = strings.TrimSpace(line[colon+1:])
		if line == "" {
			return p, nil
		}
	}

	fields := strings.Fields(normalizeInstructionText(line))
	p.Mnemonic = strings.ToUpper(fields[0])
	if len(fields) > 1 {
		p.Operands = fields[1:]
	}
	return p, nil
}

func stripComments(line, leader string) string {
	if cut := strings.Index(line, leader); cut >= 0 {
		return line[:cut]
	}
	return line
}

func normalizeInstructionText(line string) string {
	return strings.ReplaceAll(line, ",", " ")
}

// mnemonicOf returns the upper-cased first word of an instruction template.
func mnemonicOf(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(fields[0])
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if i == 0 {
			if !unicode.IsLetter(r) && r != '_' && r != '.' {
				return false
			}
			continue
		}

		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}

	return true
}
