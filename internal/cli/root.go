package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sigrok-cross/cleanlinkrsp/internal/branding"
	"github.com/sigrok-cross/cleanlinkrsp/internal/config"
	"github.com/sigrok-cross/cleanlinkrsp/internal/rsp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	orderFlag  string
	layoutFlag string
	dryRun     bool
	verbose    bool

	logger = zap.NewNop()
)

// errUsage is returned when the root command gets the wrong number of
// positional arguments.
var errUsage = errors.New("wrong number of arguments")

func init() {
	rootCmd.PersistentFlags().StringVar(&orderFlag, "order", "", "Comma-separated group order (search-paths,prefix-libs,archives,import-libs,other-libs)")
	rootCmd.PersistentFlags().StringVar(&layoutFlag, "layout", "", "Layout file with the group order (overrides --order)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the rewritten content instead of overwriting the file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log diagnostics to stderr")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " <filename> <prefix>",
	Short: branding.Description(),
	Long: branding.DisplayName() + ` rewrites a linker response file in place to work around CMake's
link ordering for cross builds. Library search paths, -l references and quoted
archives are deduplicated (last occurrence wins), paths are normalized, and the
groups are written back in a fixed order:

  search-paths   -L<path> tokens
  prefix-libs    -l<name> with <prefix>/lib/lib<name>.a present
  archives       "<path>.a" tokens
  import-libs    "<path>dll.a" tokens
  other-libs     remaining -l<name> tokens

Any other token is dropped. The order can be changed with --order, --layout or
the "order"/"layout" config keys.

The words version, config and layout select a subcommand when they come first,
unless a file of that name exists in the working directory.`,
	Args:          exactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load()

		l, err := newLogger(verbose || config.Current().Verbose, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: runRewrite,
}

// exactArgs rejects any positional argument count other than n with errUsage.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return fmt.Errorf("%w: expected %d, got %d", errUsage, n, len(args))
		}
		return nil
	}
}

func usageLine() string {
	return fmt.Sprintf("Usage: %s <filename> <prefix>", branding.CLIName())
}

func runRewrite(cmd *cobra.Command, args []string) error {
	filename, prefix := args[0], args[1]

	order, source, err := resolveOrder(layoutFlag, orderFlag, config.Current())
	if err != nil {
		return err
	}
	logger.Debug("resolved group order",
		zap.Stringer("order", order),
		zap.String("source", source),
	)

	opts := rsp.Options{Order: order, Logger: logger}

	if dryRun {
		_, out, err := rsp.Plan(filename, prefix, opts)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}

	result, err := rsp.Rewrite(filename, prefix, opts)
	if err != nil {
		return err
	}
	if result.Dropped > 0 {
		logger.Debug("dropped unrecognized tokens", zap.Int("count", result.Dropped))
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Rewrote library list (workaround CMake link issue):", filename)
	return nil
}

// requireSubcommand is the RunE of parent commands that do nothing on their
// own, so a bare "config" or "layout" exits non-zero.
func requireSubcommand(cmd *cobra.Command, args []string) error {
	var names []string
	for _, c := range cmd.Commands() {
		if c.IsAvailableCommand() {
			names = append(names, c.Name())
		}
	}
	return fmt.Errorf("%s needs a subcommand (%s)", cmd.CommandPath(), strings.Join(names, ", "))
}

// newLogger returns a no-op logger unless verbose is set, in which case
// debug output goes to w in console format.
func newLogger(verbose bool, w io.Writer) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	l, err := cfg.Build(zap.WrapCore(func(zapcore.Core) zapcore.Core {
		return zapcore.NewCore(
			zapcore.NewConsoleEncoder(cfg.EncoderConfig),
			zapcore.AddSync(w),
			cfg.Level,
		)
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return l, nil
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return execute(os.Args[1:], os.Stdout, os.Stderr)
}

// execute runs the command tree against args. A usage error prints the usage
// line to stdout; any other error is reported on stderr.
func execute(args []string, stdout, stderr io.Writer) error {
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(routeArgs(args))
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	switch {
	case err == nil:
	case errors.Is(err, errUsage):
		fmt.Fprintln(stdout, usageLine())
	default:
		fmt.Fprintln(stderr, "Error:", err)
	}
	return err
}

// routeArgs pins a call to the root command unless its first positional
// argument names a subcommand and no regular file of that name exists. Pinned
// calls get their flags moved ahead of a "--" so cobra never matches a
// response file name against the subcommands.
func routeArgs(args []string) []string {
	flags, positional := splitArgs(rootCmd, args)
	if len(positional) == 0 {
		return args
	}
	if isSubcommand(positional[0]) && !isRegularFile(positional[0]) {
		return args
	}
	routed := append(flags, "--")
	return append(routed, positional...)
}

// splitArgs separates flags, with the values they consume, from positional
// arguments. Everything after "--" is positional.
func splitArgs(cmd *cobra.Command, args []string) (flags, positional []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return flags, append(positional, args[i+1:]...)
		case len(arg) > 1 && arg[0] == '-':
			flags = append(flags, arg)
			f := lookupFlag(cmd, arg)
			if f != nil && f.NoOptDefVal == "" && !strings.Contains(arg, "=") && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		default:
			positional = append(positional, arg)
		}
	}
	return flags, positional
}

func lookupFlag(cmd *cobra.Command, arg string) *pflag.Flag {
	if name, ok := strings.CutPrefix(arg, "--"); ok {
		if f := cmd.Flags().Lookup(name); f != nil {
			return f
		}
		return cmd.PersistentFlags().Lookup(name)
	}
	short := arg[1:]
	if len(short) != 1 {
		return nil
	}
	if f := cmd.Flags().ShorthandLookup(short); f != nil {
		return f
	}
	return cmd.PersistentFlags().ShorthandLookup(short)
}

func isSubcommand(name string) bool {
	for _, c := range rootCmd.Commands() {
		if !c.IsAvailableCommand() {
			continue
		}
		if c.Name() == name || c.HasAlias(name) {
			return true
		}
	}
	return false
}

func isRegularFile(name string) bool {
	info, err := os.Stat(name)
	return err == nil && info.Mode().IsRegular()
}
