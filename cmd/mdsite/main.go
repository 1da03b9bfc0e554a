package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Sentinel errors for CLI operations.
var (
	ErrUsage       = errors.New("invalid usage")
	ErrReadInput   = errors.New("failed to read input")
	ErrPagesFailed = errors.New("page conversion failed")
)

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args, DefaultEnv())
	stop()
	os.Exit(code)
}

// runMain dispatches to a command and returns the process exit code.
// Without a known command name the arguments are handed to build, so
// "mdsite /repo/" behaves like "mdsite build /repo/".
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) > 0 {
		args = args[1:]
	}

	cmd, rest := "build", args
	if len(args) > 0 {
		switch {
		case isCommand(args[0]):
			cmd, rest = args[0], args[1:]
		case args[0] == "-h" || args[0] == "--help":
			cmd, rest = "help", nil
		}
	}

	var err error
	switch cmd {
	case "build":
		err = runBuild(ctx, rest, env)
	case "render":
		err = runRender(ctx, rest, env)
	case "completion":
		err = runCompletion(rest, env)
	case "version":
		fmt.Fprintf(env.Stdout, "go-mdsite %s\n", Version)
	case "help":
		return runHelp(rest, env)
	}

	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, false))
	}
	return exitCodeFor(err)
}

// isCommand reports whether arg names a subcommand.
func isCommand(arg string) bool {
	switch arg {
	case "build", "render", "completion", "version", "help":
		return true
	}
	return false
}

// newLogger builds the console logger for a command. Verbose switches to
// the development encoder at debug level; quiet keeps warnings and errors.
func newLogger(env *Environment, verbose, quiet bool) *zap.SugaredLogger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	level := zapcore.InfoLevel
	var opts []zap.Option

	switch {
	case verbose:
		encCfg = zap.NewDevelopmentEncoderConfig()
		level = zapcore.DebugLevel
		opts = append(opts, zap.Development())
	case quiet:
		level = zapcore.WarnLevel
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(env.Stderr), level)
	return zap.New(core, opts...).Sugar()
}

// usageError wraps a flag parsing failure so it maps to ExitUsage.
func usageError(err error) error {
	msg := strings.TrimSpace(err.Error())
	return fmt.Errorf("%w: %s", ErrUsage, msg)
}
