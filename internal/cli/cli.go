package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/specialistvlad/shadergrid/internal/app"
	"github.com/specialistvlad/shadergrid/pkg/codegen"
	"github.com/spf13/cobra"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(err error) error {
	return &ExitError{Code: 2, Message: err.Error()}
}

// globals are the persistent flags shared by every command.
type globals struct {
	configPath string
	logLevel   string
	logFormat  string

	config *app.Config
}

// Execute runs the command line with args. Command results are written to
// outW; logs and usage go to errW.
func Execute(ctx context.Context, outW, errW io.Writer, args []string, opts ...app.Option) error {
	g := &globals{}
	root := newRootCmd(g, outW, errW, opts)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	return &ExitError{Code: 1, Message: err.Error()}
}

func newRootCmd(g *globals, outW, errW io.Writer, opts []app.Option) *cobra.Command {
	root := &cobra.Command{
		Use:   "shadergrid",
		Short: "Build, check and commit render-engine shader node graphs",
		Long: `shadergrid loads shader node graphs written in HCL or Cycles XML, validates
them, converts between dialects, generates Go code or diagrams from them and
commits them to a render engine.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return g.resolve(cmd)
		},
	}
	root.SetOut(outW)
	root.SetErr(errW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError(err) })

	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "Path to a TOML configuration file.")
	pf.StringVar(&g.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.StringVar(&g.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")

	newApp := func() (*app.App, error) {
		return app.NewApp(outW, errW, g.config, opts...)
	}
	root.AddCommand(
		newValidateCmd(newApp),
		newConvertCmd(newApp, outW),
		newCodegenCmd(newApp, outW),
		newGraphCmd(newApp, outW),
		newCommitCmd(newApp),
	)
	return root
}

// resolve merges the configuration file with the flags the user set and
// validates the result.
func (g *globals) resolve(cmd *cobra.Command) error {
	slog.Debug("Resolving configuration.", "config", g.configPath)
	cfg := app.DefaultConfig()
	if g.configPath != "" {
		loaded, err := app.LoadConfig(g.configPath)
		if err != nil {
			return usageError(err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") || g.configPath == "" {
		cfg.LogLevel = g.logLevel
	}
	if flags.Changed("log-format") || g.configPath == "" {
		cfg.LogFormat = g.logFormat
	}
	if flags.Changed("engine") {
		cfg.Engine.Kind, _ = flags.GetString("engine")
	}
	if flags.Changed("url") {
		cfg.Engine.URL, _ = flags.GetString("url")
	}
	if flags.Changed("scene") {
		cfg.Engine.Scene, _ = flags.GetUint32("scene")
	}
	if flags.Changed("shader") {
		cfg.Engine.Shader, _ = flags.GetUint32("shader")
	}
	if flags.Changed("timeout") {
		cfg.Engine.Timeout, _ = flags.GetDuration("timeout")
	}

	config, err := app.NewConfig(cfg)
	if err != nil {
		return usageError(err)
	}
	g.config = config
	slog.Debug("CLI parameter validation complete.", "engine", config.Engine.Kind)
	return nil
}

// args wraps a positional argument check so violations exit with code 2.
func args(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, a []string) error {
		if err := check(cmd, a); err != nil {
			return usageError(err)
		}
		return nil
	}
}

func newValidateCmd(newApp func() (*app.App, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "validate PATH...",
		Short: "Load and validate shader files or directories",
		Args:  args(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, paths []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			return a.Validate(cmd.Context(), paths...)
		},
	}
}

func newConvertCmd(newApp func() (*app.App, error), outW io.Writer) *cobra.Command {
	var to, out string
	cmd := &cobra.Command{
		Use:   "convert PATH",
		Short: "Re-emit a shader in another markup dialect",
		Args:  args(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, paths []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			data, err := a.Convert(cmd.Context(), paths[0], to)
			if err != nil {
				return err
			}
			return writeOutput(outW, out, data)
		},
	}
	cmd.Flags().StringVar(&to, "to", app.FormatHCL, "Target dialect. Options: 'hcl' or 'xml'.")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to this file instead of standard output.")
	return cmd
}

func newCodegenCmd(newApp func() (*app.App, error), outW io.Writer) *cobra.Command {
	var opts codegen.Options
	var out string
	cmd := &cobra.Command{
		Use:   "codegen PATH",
		Short: "Generate Go source that rebuilds a shader",
		Args:  args(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, paths []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			data, err := a.Codegen(cmd.Context(), paths[0], opts)
			if err != nil {
				return err
			}
			return writeOutput(outW, out, data)
		},
	}
	cmd.Flags().StringVar(&opts.Package, "package", codegen.DefaultPackage, "Package name of the generated file.")
	cmd.Flags().StringVar(&opts.Func, "func", codegen.DefaultFunc, "Name of the generated function.")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to this file instead of standard output.")
	return cmd
}

func newGraphCmd(newApp func() (*app.App, error), outW io.Writer) *cobra.Command {
	var format, out string
	var values bool
	cmd := &cobra.Command{
		Use:   "graph PATH",
		Short: "Render a shader as a Graphviz diagram",
		Args:  args(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, paths []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			data, err := a.Graph(cmd.Context(), paths[0], format, values)
			if err != nil {
				return err
			}
			return writeOutput(outW, out, data)
		},
	}
	cmd.Flags().StringVar(&format, "format", app.FormatDOT, "Output format. Options: 'dot' or 'svg'.")
	cmd.Flags().BoolVar(&values, "values", false, "Show input literals in node labels.")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to this file instead of standard output.")
	return cmd
}

func newCommitCmd(newApp func() (*app.App, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit PATH",
		Short: "Validate a shader and commit it to a render engine",
		Args:  args(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, paths []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			return a.Commit(cmd.Context(), paths[0])
		},
	}
	f := cmd.Flags()
	f.String("engine", app.EngineRecorder, "Engine to commit to. Options: 'recorder' or 'socketio'.")
	f.String("url", "", "socket.io URL of the render engine.")
	f.Uint32("scene", 0, "Engine scene id.")
	f.Uint32("shader", 0, "Engine shader id.")
	f.Duration("timeout", 0, "Per-call acknowledgement timeout.")
	return cmd
}

func writeOutput(outW io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := outW.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
