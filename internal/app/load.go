package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/shadergrid/internal/ctxlog"
	"github.com/specialistvlad/shadergrid/internal/fsutil"
	"github.com/specialistvlad/shadergrid/pkg/graph"
	"github.com/specialistvlad/shadergrid/pkg/markup"
	"github.com/specialistvlad/shadergrid/pkg/markup/hclfmt"
	"github.com/specialistvlad/shadergrid/pkg/markup/xmlfmt"
	"github.com/specialistvlad/shadergrid/pkg/texture"
)

// Loaded is one shader file, decoded and built.
type Loaded struct {
	Path   string
	Doc    *markup.Document
	Shader *graph.Shader
}

// FindShaderFiles expands paths: files are kept as given and directories
// are searched recursively for .hcl and .xml files.
func FindShaderFiles(paths ...string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to stat path %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		found, err := fsutil.FindFiles(p, hclfmt.Extension, xmlfmt.Extension)
		if err != nil {
			return nil, fmt.Errorf("failed to search %s: %w", p, err)
		}
		files = append(files, found...)
	}
	return files, nil
}

// Decode reads the shader file at path in the dialect its extension names.
func Decode(path string) (*markup.Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case hclfmt.Extension:
		return hclfmt.DecodeFile(path)
	case xmlfmt.Extension:
		return xmlfmt.DecodeFile(path)
	default:
		return nil, fmt.Errorf("unsupported shader file %s: expected %s or %s", path, hclfmt.Extension, xmlfmt.Extension)
	}
}

// Load decodes and builds the shader file at path. Texture paths resolve
// relative to the file.
func (a *App) Load(ctx context.Context, path string) (*Loaded, error) {
	ctx = a.withLogger(ctx)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading shader file.", "path", path)

	doc, err := Decode(path)
	if err != nil {
		return nil, err
	}
	sh, err := markup.Build(ctx, doc, a.registry, markup.WithTextureLoader(texture.FileLoader{Dir: filepath.Dir(path), MaxSize: a.config.TextureMaxSize}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("Shader file loaded.", "path", path, "shader", sh.Name, "nodes", len(doc.Nodes))
	return &Loaded{Path: path, Doc: doc, Shader: sh}, nil
}
