package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"exitc/pkg/asm"
	"exitc/pkg/compiler"
	"exitc/pkg/toolchain"
	"exitc/pkg/utils"
)

// config collects the command-line flags.
type config struct {
	output  string
	emitAsm bool
	target  string
	dump    bool
	keep    bool
	timeout time.Duration
	verbose bool
}

// stageError marks a failure in the pipeline proper, as opposed to a usage
// mistake. It decides the process exit status.
type stageError struct {
	stage string
	err   error
}

func (e *stageError) Error() string { return fmt.Sprintf("%s error: %v", e.stage, e.err) }
func (e *stageError) Unwrap() error { return e.err }

func newRootCmd(runner toolchain.Runner) *cobra.Command {
	cfg := &config{}

	cmd := &cobra.Command{
		Use:   "exitc [flags] source",
		Short: "Compile an exit program to a native executable",
		Long: `Exitc compiles a program written in the exit language, a single
statement of the form

    exit <decimal-digits>;

into assembly that terminates the process with that status, then runs the
system assembler and linker to produce an executable.

Use -S to stop after writing the assembly file.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, cfg, runner, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfg.output, "output", "o", "", "executable path (default: source path without extension)")
	flags.BoolVarP(&cfg.emitAsm, "emit-asm", "S", false, "stop after writing the assembly file")
	flags.StringVar(&cfg.target, "target", compiler.DefaultTarget.String(), "target platform as os/arch")
	flags.BoolVar(&cfg.dump, "dump", false, "print tokens, AST and assembly")
	flags.BoolVar(&cfg.keep, "keep", false, "keep intermediate assembly and object files")
	flags.DurationVar(&cfg.timeout, "timeout", 30*time.Second, "limit for each assembler/linker run")
	flags.BoolVarP(&cfg.verbose, "verbose", "v", false, "log each pipeline step")

	return cmd
}

func run(cmd *cobra.Command, cfg *config, runner toolchain.Runner, srcPath string) error {
	log.SetFlags(0)
	log.SetPrefix("exitc: ")
	if cfg.verbose {
		log.SetOutput(cmd.ErrOrStderr())
	} else {
		log.SetOutput(io.Discard)
	}

	target, err := compiler.LookupTarget(cfg.target)
	if err != nil {
		return err
	}

	fullPath, baseDir, err := utils.GetPathInfo(srcPath)
	if err != nil {
		return &stageError{"read", err}
	}
	source, err := os.ReadFile(fullPath)
	if err != nil {
		return &stageError{"read", err}
	}
	log.Printf("compiling %s (dir %s) for %s", fullPath, baseDir, target)

	res, err := compiler.Compile(string(source), target)
	if err != nil {
		return &stageError{stageOf(err), err}
	}

	if cfg.dump {
		dump(cmd.OutOrStdout(), res)
	}

	listing, err := asm.Check(res.Assembly, target)
	if err != nil {
		return &stageError{"check", err}
	}
	log.Printf("checked %d instructions, exit status %s", len(listing.Instructions), listing.ExitStatus)

	paths, err := outputPaths(cfg, target, baseDir, fullPath)
	if err != nil {
		return err
	}

	builder := &toolchain.Builder{Runner: runner, Target: target}
	if cfg.emitAsm {
		if err := builder.WriteAssembly(paths, res.Assembly); err != nil {
			return &stageError{"write", err}
		}
		log.Printf("wrote %s", paths.Asm)
		return nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.timeout)
	defer cancel()

	for _, c := range builder.Commands(paths) {
		log.Printf("run %s", c)
	}
	buildErr := builder.Build(ctx, paths, res.Assembly)
	if !cfg.keep {
		if err := builder.Clean(paths); err != nil {
			log.Printf("cleanup: %v", err)
		}
	}
	if buildErr != nil {
		return &stageError{"build", buildErr}
	}
	log.Printf("built %s", paths.Executable)
	return nil
}

// outputPaths names the build outputs. Defaults go next to the source; when
// they would land on the source itself (prog.asm -> prog.asm) the executable
// name gets ".out". An explicit -o that collides is refused.
func outputPaths(cfg *config, target compiler.Target, baseDir, fullPath string) (utils.OutputPaths, error) {
	if cfg.output != "" {
		paths := utils.DeriveOutputPaths(cfg.output, target.AsmExt())
		if paths.Overwrites(fullPath) {
			return utils.OutputPaths{}, fmt.Errorf("output %q would overwrite source %s", cfg.output, fullPath)
		}
		return paths, nil
	}

	exe := utils.DefaultExecutablePath(baseDir, fullPath)
	paths := utils.DeriveOutputPaths(exe, target.AsmExt())
	if paths.Overwrites(fullPath) {
		paths = utils.DeriveOutputPaths(exe+".out", target.AsmExt())
	}
	return paths, nil
}

// stageOf names the compiler stage an error came from.
func stageOf(err error) string {
	var lexErr *compiler.LexicalError
	var synErr *compiler.SyntaxError
	switch {
	case errors.As(err, &lexErr):
		return "lex"
	case errors.As(err, &synErr):
		return "parse"
	default:
		return "codegen"
	}
}

func dump(w io.Writer, res *compiler.Result) {
	fmt.Fprintf(w, "Tokens (%d)\n", len(res.Tokens))
	for _, tok := range res.Tokens {
		fmt.Fprintln(w, " ", tok)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "AST")
	fmt.Fprintln(w, " ", res.Program)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Generated Assembly")
	fmt.Fprint(w, res.Assembly)
}

// exitCode maps an error to the process status: 1 for a failed compilation,
// 2 for bad usage.
func exitCode(err error) int {
	var se *stageError
	if errors.As(err, &se) {
		return 1
	}
	return 2
}

func main() {
	cmd := newRootCmd(toolchain.ExecRunner{})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "exitc:", err)
		os.Exit(exitCode(err))
	}
}
