// Package toolchain turns generated assembly into a native executable by
// writing it to disk and running the external assembler and linker.
package toolchain

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"exitc/pkg/compiler"
	"exitc/pkg/utils"
)

// Runner executes an external command and returns its combined output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// ToolError reports a failed assembler or linker invocation.
type ToolError struct {
	Tool   string
	Args   []string
	Output string
	Err    error
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Tool, strings.Join(e.Args, " "), e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\n" + out
	}
	return msg
}

func (e *ToolError) Unwrap() error { return e.Err }

// Command is one external tool invocation.
type Command struct {
	Name string
	Args []string
}

func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Builder drives the assembler and linker for one target.
type Builder struct {
	Runner Runner
	Target compiler.Target
}

func NewBuilder(target compiler.Target) *Builder {
	return &Builder{Runner: ExecRunner{}, Target: target}
}

// Commands returns the assemble and link steps for paths, in order.
func (b *Builder) Commands(paths utils.OutputPaths) []Command {
	var assemble Command
	switch b.Target.Syntax {
	case compiler.NASM:
		assemble = Command{Name: "nasm", Args: []string{"-f", "elf64", "-o", paths.Object, paths.Asm}}
	default:
		assemble = Command{Name: "as", Args: []string{"-o", paths.Object, paths.Asm}}
	}
	link := Command{Name: "ld", Args: []string{"-o", paths.Executable, paths.Object}}
	return []Command{assemble, link}
}

// WriteAssembly writes text to paths.Asm.
func (b *Builder) WriteAssembly(paths utils.OutputPaths, text string) error {
	if err := os.WriteFile(paths.Asm, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write assembly %q: %w", paths.Asm, err)
	}
	return nil
}

// Build writes the assembly, then assembles and links it. It stops at the
// first tool that fails.
func (b *Builder) Build(ctx context.Context, paths utils.OutputPaths, text string) error {
	if err := b.WriteAssembly(paths, text); err != nil {
		return err
	}
	for _, cmd := range b.Commands(paths) {
		out, err := b.Runner.Run(ctx, cmd.Name, cmd.Args...)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				err = ctxErr
			}
			return &ToolError{Tool: cmd.Name, Args: cmd.Args, Output: string(out), Err: err}
		}
	}
	return nil
}

// Clean removes the intermediate assembly and object files. Missing files
// are not an error.
func (b *Builder) Clean(paths utils.OutputPaths) error {
	var errs []error
	for _, p := range []string{paths.Asm, paths.Object} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
