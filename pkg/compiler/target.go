package compiler

import (
	"fmt"
	"strings"
)

// Syntax selects the assembler dialect a Target is emitted in.
type Syntax int

const (
	NASM Syntax = iota // Intel syntax, assembled with nasm
	GAS                // GNU as
)

func (s Syntax) String() string {
	switch s {
	case NASM:
		return "nasm"
	case GAS:
		return "gas"
	}
	return fmt.Sprintf("Syntax(%d)", int(s))
}

// Target describes the syscall convention and assembly dialect for one
// OS/architecture pair.
type Target struct {
	OS     string
	Arch   string
	Syntax Syntax

	Entry       string // entry-point symbol
	Global      string // directive exporting Entry
	Section     string // directive selecting the text section
	Comment     string // line comment leader
	ExitSyscall int    // syscall number of exit
	NumberReg   string // register holding the syscall number
	ArgReg      string // register holding the first syscall argument
	ImmPrefix   string // prefix for immediate operands
	Move        string // register-load mnemonic
	Trap        string // syscall instruction
}

func (t Target) String() string { return t.OS + "/" + t.Arch }

// AsmExt is the conventional file extension for the target's assembler.
func (t Target) AsmExt() string {
	if t.Syntax == NASM {
		return ".asm"
	}
	return ".s"
}

// Immediate renders a decimal digit run as an immediate operand.
// GNU as reads a leading 0 as octal, so GAS operands lose their leading
// zeros; nasm reads them as decimal and gets the digits unchanged.
func (t Target) Immediate(digits string) string {
	if t.Syntax == GAS {
		digits = strings.TrimLeft(digits, "0")
		if digits == "" {
			digits = "0"
		}
	}
	return t.ImmPrefix + digits
}

var (
	LinuxAMD64 = Target{
		OS:          "linux",
		Arch:        "amd64",
		Syntax:      NASM,
		Entry:       "_start",
		Global:      "global",
		Section:     "section .text",
		Comment:     ";",
		ExitSyscall: 60,
		NumberReg:   "rax",
		ArgReg:      "rdi",
		Move:        "mov",
		Trap:        "syscall",
	}

	LinuxARM64 = Target{
		OS:          "linux",
		Arch:        "arm64",
		Syntax:      GAS,
		Entry:       "_start",
		Global:      ".global",
		Section:     ".text",
		Comment:     "//",
		ExitSyscall: 93,
		NumberReg:   "x8",
		ArgReg:      "x0",
		ImmPrefix:   "#",
		Move:        "mov",
		Trap:        "svc #0",
	}
)

// DefaultTarget is used when no target is requested.
var DefaultTarget = LinuxAMD64

// Targets lists every supported target.
func Targets() []Target {
	return []Target{LinuxAMD64, LinuxARM64}
}

// LookupTarget resolves an "os/arch" name such as "linux/amd64".
func LookupTarget(name string) (Target, error) {
	for _, t := range Targets() {
		if strings.EqualFold(name, t.String()) {
			return t, nil
		}
	}
	names := make([]string, 0, len(Targets()))
	for _, t := range Targets() {
		names = append(names, t.String())
	}
	return Target{}, fmt.Errorf("unknown target %q (supported: %s)", name, strings.Join(names, ", "))
}
