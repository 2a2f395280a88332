package main

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"exitc/pkg/asm"
	"exitc/pkg/compiler"
	"exitc/pkg/toolchain"
	"exitc/pkg/utils"
)

// hostTarget returns the target matching the machine running the tests, or
// skips when the host cannot execute any supported target.
func hostTarget(t *testing.T) compiler.Target {
	t.Helper()
	target, err := compiler.LookupTarget(runtime.GOOS + "/" + runtime.GOARCH)
	if err != nil {
		t.Skipf("no target for host %s/%s", runtime.GOOS, runtime.GOARCH)
	}
	b := toolchain.NewBuilder(target)
	for _, c := range b.Commands(utils.OutputPaths{}) {
		if _, err := exec.LookPath(c.Name); err != nil {
			t.Skipf("%s not installed", c.Name)
		}
	}
	return target
}

func TestCompileAndRun(t *testing.T) {
	target := hostTarget(t)

	tests := []struct {
		source string
		status int
	}{
		{"exit 0;", 0},
		{"exit 42;", 42},
		{"  exit\n  255 ;\n", 255},
		{"exit 007;", 7},
		{"exit 010;", 10},
		{"exit 09;", 9},
		// Statuses wrap to the low byte on Linux; the compiler does not clamp.
		{"exit 256;", 0},
		{"exit 300;", 44},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			// 1. Compile
			res, err := compiler.Compile(tt.source, target)
			if err != nil {
				t.Fatalf("Compile failed: %v", err)
			}
			t.Logf("Generated Assembly:\n%s", res.Assembly)

			// 2. Check
			if _, err := asm.Check(res.Assembly, target); err != nil {
				t.Fatalf("Check failed: %v", err)
			}

			// 3. Assemble and link
			paths := utils.DeriveOutputPaths(filepath.Join(t.TempDir(), "prog"), target.AsmExt())
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := toolchain.NewBuilder(target).Build(ctx, paths, res.Assembly); err != nil {
				t.Fatalf("Build failed: %v", err)
			}

			// 4. Run and check the exit status
			err = exec.CommandContext(ctx, paths.Executable).Run()
			status := 0
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				status = exitErr.ExitCode()
			} else if err != nil {
				t.Fatalf("run failed: %v", err)
			}
			if status != tt.status {
				t.Errorf("exit status = %d; want %d", status, tt.status)
			}
		})
	}
}
