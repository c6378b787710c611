package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/specialistvlad/shadergrid/internal/ctxlog"
	"github.com/specialistvlad/shadergrid/pkg/codegen"
	"github.com/specialistvlad/shadergrid/pkg/engine"
	"github.com/specialistvlad/shadergrid/pkg/markup"
	"github.com/specialistvlad/shadergrid/pkg/markup/hclfmt"
	"github.com/specialistvlad/shadergrid/pkg/markup/xmlfmt"
	"github.com/specialistvlad/shadergrid/pkg/visualize"
)

// Output formats.
const (
	FormatHCL = "hcl"
	FormatXML = "xml"
	FormatDOT = "dot"
	FormatSVG = "svg"
)

// Validate loads and checks every shader file under paths, reporting one
// line per file. The returned error joins every failure.
func (a *App) Validate(ctx context.Context, paths ...string) error {
	ctx = a.withLogger(ctx)
	files, err := FindShaderFiles(paths...)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s or %s files found", hclfmt.Extension, xmlfmt.Extension)
	}

	var errs []error
	for _, f := range files {
		l, err := a.Load(ctx, f)
		if err == nil {
			if err = l.Shader.Validate(); err != nil {
				err = fmt.Errorf("%s: %w", f, err)
			}
		}
		if err != nil {
			fmt.Fprintf(a.outW, "FAIL %s\n", f)
			errs = append(errs, err)
			continue
		}
		fmt.Fprintf(a.outW, "ok   %s (%s, %d nodes)\n", f, l.Shader.Name, len(l.Shader.Nodes()))
	}
	a.logger.Info("Validation finished.", "files", len(files), "failed", len(errs))
	return errors.Join(errs...)
}

// Convert re-emits the shader at path in the given markup format.
func (a *App) Convert(ctx context.Context, path, to string) ([]byte, error) {
	l, err := a.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	doc := markup.FromShader(l.Shader)
	switch strings.ToLower(to) {
	case FormatHCL:
		return hclfmt.Encode(doc), nil
	case FormatXML:
		return xmlfmt.Encode(doc)
	default:
		return nil, fmt.Errorf("unsupported format %q: must be '%s' or '%s'", to, FormatHCL, FormatXML)
	}
}

// Codegen emits Go source that rebuilds the shader at path.
func (a *App) Codegen(ctx context.Context, path string, opts codegen.Options) ([]byte, error) {
	l, err := a.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	return codegen.Generate(l.Shader, a.registry, opts)
}

// Graph renders the shader at path as DOT or SVG.
func (a *App) Graph(ctx context.Context, path, format string, values bool) ([]byte, error) {
	l, err := a.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	dot := visualize.ToDOT(l.Shader, visualize.Options{Values: values})
	switch strings.ToLower(format) {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return visualize.RenderSVG(ctx, dot)
	default:
		return nil, fmt.Errorf("unsupported format %q: must be '%s' or '%s'", format, FormatDOT, FormatSVG)
	}
}

// Commit validates the shader at path and commits it to the configured
// engine. The recorder engine's call trace is written to outW.
func (a *App) Commit(ctx context.Context, path string) error {
	ctx = a.withLogger(ctx)
	logger := ctxlog.FromContext(ctx)

	l, err := a.Load(ctx, path)
	if err != nil {
		return err
	}
	eng, rec, release, err := a.openEngine(ctx)
	if err != nil {
		return err
	}
	defer release()

	target := engine.Target{Scene: a.config.Engine.Scene, Shader: a.config.Engine.Shader}
	logger.Info("🚀 Committing shader...", "shader", l.Shader.Name, "engine", a.config.Engine.Kind)
	if err := l.Shader.Commit(ctx, eng, target); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	logger.Info("🏁 Commit finished.", "shader", l.Shader.Name)

	if rec != nil {
		fmt.Fprintln(a.outW, traceTable(rec.Calls()))
	}
	return nil
}

// traceTable renders recorded engine calls.
func traceTable(calls []engine.Call) string {
	rows := make([][]string, 0, len(calls))
	for i, c := range calls {
		to := ""
		if c.Op == engine.OpConnect {
			to = fmt.Sprintf("%d.%s", c.ToNode, c.ToName)
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), string(c.Op), strconv.FormatUint(uint64(c.Node), 10), string(c.Kind), c.Name, c.Value, to})
	}

	headerStyle := lipgloss.NewStyle().Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("#", "Op", "Node", "Kind", "Name", "Value", "To").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	return t.Render()
}
