package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/google/shlex"
	"github.com/spf13/cobra"

	"github.com/runger/subproc"
	"github.com/runger/subproc/internal/config"
	"github.com/runger/subproc/internal/logging"
	"github.com/runger/subproc/internal/storage"
	"github.com/runger/subproc/internal/tail"
)

// ExitError carries the child's exit code to main.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("process exited with code %d", e.Code)
}

var runCmd = &cobra.Command{
	Use:   "run [flags] -- <command> [args...]",
	Short: "Run a command, streaming its output",
	Long: `Run spawns the command, streams its stdout/stderr to this process's
streams, and exits with the child's exit code. A single quoted argument
is split POSIX-style.

With --on-silence or --max-runtime, the child receives the configured
signal when the condition trips, then SIGKILL after the grace window.`,
	Args:         cobra.MinimumNArgs(1),
	RunE:         runRun,
	SilenceUsage: true,
}

func init() {
	runCmd.Flags().String("dir", "", "Working directory for the child")
	runCmd.Flags().StringArray("env", nil, "Environment variable for the child (key=value, repeatable)")
	runCmd.Flags().Bool("replace-env", false, "Give the child only the --env variables")
	runCmd.Flags().Duration("on-silence", 0, "Signal the child after this much output silence")
	runCmd.Flags().Duration("max-runtime", 0, "Signal the child after this much total runtime")
	runCmd.Flags().String("signal", "", "Policy signal: int or term (default from config)")
	runCmd.Flags().Duration("grace", 0, "Grace window before SIGKILL escalation (default from config)")
	runCmd.Flags().Bool("no-history", false, "Skip recording this run in history")
	runCmd.Flags().Bool("debug", false, "Enable debug logging")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	debug, _ := cmd.Flags().GetBool("debug")
	logger := logging.New(&logging.Config{
		Level: logging.ParseLevel(cfg.Log.Level),
		Debug: debug,
	})

	argv, err := splitArgv(args)
	if err != nil {
		return err
	}

	desc, err := buildDescriptor(cmd, cfg, argv)
	if err != nil {
		return err
	}

	ctrl, err := subproc.New(desc)
	if err != nil {
		return err
	}

	tailBytes := cfg.History.TailKB * 1024
	outTail := tail.New(tailBytes)
	errTail := tail.New(tailBytes)

	ctrl.OnStdout(func(chunk []byte, _ subproc.Unsubscribe) {
		_, _ = os.Stdout.Write(chunk)
		_, _ = outTail.Write(chunk)
	})
	ctrl.OnStderr(func(chunk []byte, _ subproc.Unsubscribe) {
		_, _ = os.Stderr.Write(chunk)
		_, _ = errTail.Write(chunk)
	})

	var signaled atomic.Bool
	var signalName atomic.Value
	ctrl.OnSignal(func(sig os.Signal, _ subproc.Unsubscribe) {
		signaled.Store(true)
		signalName.Store(sig.String())
		logger.Warn("policy signal sent", "signal", sig.String())
	})
	ctrl.OnStart(func(c *subproc.Controller, _ subproc.Unsubscribe) {
		logger.Debug("child spawned", "command", strings.Join(argv, " "))
	})

	started := time.Now()
	if err := ctrl.Run(); err != nil {
		return err
	}
	status := ctrl.Status()
	logger.Debug("child exited", "code", status.ExitCode)

	noHistory, _ := cmd.Flags().GetBool("no-history")
	if cfg.History.Enabled && !noHistory {
		name, _ := signalName.Load().(string)
		recordRun(logger, cfg, &storage.Run{
			Command:    strings.Join(argv, " "),
			Dir:        desc.Dir,
			StartedAt:  started,
			Duration:   time.Since(started),
			ExitCode:   status.ExitCode,
			Signaled:   signaled.Load(),
			Signal:     name,
			StdoutTail: outTail.String(),
			StderrTail: errTail.String(),
		})
	}

	if status.ExitCode != 0 {
		return &ExitError{Code: status.ExitCode}
	}
	return nil
}

// splitArgv turns command arguments into an argv. A single argument
// containing whitespace is treated as a quoted command line.
func splitArgv(args []string) ([]string, error) {
	if len(args) == 1 && strings.ContainsAny(args[0], " \t") {
		argv, err := shlex.Split(args[0])
		if err != nil {
			return nil, fmt.Errorf("splitting command: %w", err)
		}
		if len(argv) == 0 {
			return nil, fmt.Errorf("command produced empty argv")
		}
		return argv, nil
	}
	return args, nil
}

func buildDescriptor(cmd *cobra.Command, cfg *config.Config, argv []string) (subproc.Descriptor, error) {
	dir, _ := cmd.Flags().GetString("dir")
	replaceEnv, _ := cmd.Flags().GetBool("replace-env")
	envPairs, _ := cmd.Flags().GetStringArray("env")

	env, err := parseEnv(envPairs)
	if err != nil {
		return subproc.Descriptor{}, err
	}

	desc := subproc.Descriptor{
		Path:       argv[0],
		Args:       argv[1:],
		Env:        env,
		ReplaceEnv: replaceEnv,
		Dir:        dir,
	}

	policy, err := buildPolicy(cmd, cfg)
	if err != nil {
		return subproc.Descriptor{}, err
	}
	desc.Policy = policy

	return desc, nil
}

func buildPolicy(cmd *cobra.Command, cfg *config.Config) (*subproc.Policy, error) {
	silence, _ := cmd.Flags().GetDuration("on-silence")
	maxRuntime, _ := cmd.Flags().GetDuration("max-runtime")
	if silence == 0 && maxRuntime == 0 {
		return nil, nil
	}
	if silence != 0 && maxRuntime != 0 {
		return nil, fmt.Errorf("--on-silence and --max-runtime are mutually exclusive")
	}

	sigName, _ := cmd.Flags().GetString("signal")
	if sigName == "" {
		sigName = cfg.Run.Signal
	}
	sig, err := parseSignal(sigName)
	if err != nil {
		return nil, err
	}

	var policy *subproc.Policy
	if silence != 0 {
		policy = subproc.KillOnSilence(sig, silence)
	} else {
		policy = subproc.KillAfterRuntime(sig, maxRuntime)
	}

	grace, _ := cmd.Flags().GetDuration("grace")
	if grace == 0 {
		grace = time.Duration(cfg.Run.GraceMs) * time.Millisecond
	}
	policy.Grace = grace

	return policy, nil
}

func parseSignal(name string) (syscall.Signal, error) {
	switch strings.ToLower(name) {
	case "int", "sigint":
		return syscall.SIGINT, nil
	case "term", "sigterm":
		return syscall.SIGTERM, nil
	default:
		return 0, fmt.Errorf("unknown signal %q (want int or term)", name)
	}
}

// parseEnv turns key=value pairs into a map.
func parseEnv(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	env := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		idx := strings.IndexByte(pair, '=')
		if idx <= 0 {
			return nil, fmt.Errorf("invalid --env %q (want key=value)", pair)
		}
		env[pair[:idx]] = pair[idx+1:]
	}
	return env, nil
}

// recordRun appends to history; failures are logged, never fatal.
func recordRun(logger *slog.Logger, cfg *config.Config, run *storage.Run) {
	path := cfg.History.Path
	if path == "" {
		path = config.DefaultPaths().HistoryDB()
	}
	store, err := storage.Open(path)
	if err != nil {
		logger.Warn("history unavailable", "error", err.Error())
		return
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := store.RecordRun(ctx, run); err != nil {
		logger.Warn("failed to record run", "error", err.Error())
	}
}
