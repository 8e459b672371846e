// Package codegen turns parsed Gleam modules into encoder and decoder
// source code. Generation runs in two passes: the naming pass computes
// the canonical function name of every requested decoder and encoder
// so that cross-module references always agree, and the generation
// pass renders the code, grouping each file's output by destination.
package codegen

import (
	"go.uber.org/zap"

	"github.com/abs0luty/gloss/backend"
	"github.com/abs0luty/gloss/config"
	"github.com/abs0luty/gloss/errors"
	"github.com/abs0luty/gloss/gleam"
	"github.com/abs0luty/gloss/manifest"
)

// Generator drives code generation for one project.
type Generator struct {
	ProjectRoot string
	Backends    *backend.Registry
	Log         *zap.SugaredLogger
}

// New returns a generator. A nil logger is replaced with a nop logger.
func New(projectRoot string, backends *backend.Registry, log *zap.SugaredLogger) *Generator {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Generator{ProjectRoot: projectRoot, Backends: backends, Log: log}
}

// Run generates code for every annotated type in the given modules.
// The result maps source file paths to their generated units. A fatal
// error in one file stops that file and is reported; sibling files
// still generate.
func (g *Generator) Run(modules []*gleam.Module) (map[string][]*GeneratedUnit, error) {
	if err := g.checkBackendDependencies(modules); err != nil {
		return nil, err
	}

	registry := NewRegistry()
	for _, m := range modules {
		for _, decl := range m.Types {
			if !decl.Annotated {
				continue
			}
			registry.Add(&Entry{
				ModulePath:       m.ImportPath,
				TypeName:         decl.Name,
				Decl:             decl,
				GeneratesDecoder: decl.GenerateDecoder,
				EncoderNames:     map[string]string{},
			})
		}
	}

	if err := g.namingPass(modules, registry); err != nil {
		return nil, err
	}

	outputs := map[string][]*GeneratedUnit{}
	var fileErrs []error
	for _, m := range modules {
		units, err := g.generateFile(m, registry)
		if err != nil {
			fileErrs = append(fileErrs, errors.Wrapf(err, "%s", m.Path))
			continue
		}
		if len(units) > 0 {
			outputs[m.Path] = units
		}
	}

	return outputs, errors.Join(fileErrs...)
}

func (g *Generator) checkBackendDependencies(modules []*gleam.Module) error {
	var used []string
	for _, m := range modules {
		for _, decl := range m.Types {
			for _, id := range decl.Encoders {
				seen := false
				for _, u := range used {
					if u == id {
						seen = true
						break
					}
				}
				if !seen {
					used = append(used, id)
				}
			}
		}
	}
	if len(used) == 0 {
		return nil
	}

	mf, err := manifest.Load(g.ProjectRoot)
	if err != nil {
		return errors.Wrap(err, "generating encoders requires a readable gleam.toml")
	}
	return g.Backends.CheckDependencies(mf, used)
}

// namingPass fills in canonical function names for every registered
// type, honoring file-level and type-level fn naming overrides, so
// that references from other files resolve to the right names.
func (g *Generator) namingPass(modules []*gleam.Module, registry *Registry) error {
	for _, m := range modules {
		cfg, err := config.LoadCascaded(g.ProjectRoot, m.Path)
		if err != nil {
			return err
		}
		cfg.FnNaming.ApplyFnNamingOverride(m.FileFnNaming)

		for _, decl := range m.Types {
			if !decl.Annotated {
				continue
			}
			entry := registry.Get(m.ImportPath, decl.Name)
			if entry == nil {
				continue
			}

			naming := cfg.FnNaming
			naming.ApplyFnNamingOverride(decl.FnNaming)

			if decl.GenerateDecoder {
				entry.DecoderName = naming.RenderDecoderName(decl.Name)
			}

			backends := uniqueBackends(decl.Encoders)
			multi := len(backends) > 1
			for _, id := range backends {
				name := naming.RenderEncoderName(decl.Name, id)
				if multi && !naming.EncoderPatternHasBackend() {
					name += "_" + id
				}
				entry.EncoderNames[id] = name
			}
		}
	}
	return nil
}

// typeContext is the fully resolved configuration for one type.
type typeContext struct {
	cfg      config.Config
	pathMode config.PathMode
}

func (g *Generator) generateFile(m *gleam.Module, registry *Registry) ([]*GeneratedUnit, error) {
	cfg, err := config.LoadCascaded(g.ProjectRoot, m.Path)
	if err != nil {
		return nil, err
	}

	// Path mode from the cascade: a configured directory infers its
	// own mode with a project-relative fallback, no directory means
	// file-relative.
	pathMode := config.FileRelative
	if cfg.Output.Directory != "" {
		pathMode = config.InferPathMode(cfg.Output.Directory, config.ProjectRelative)
	}

	if m.FileOutput != nil {
		if m.FileOutput.Directory != nil {
			pathMode = config.InferPathMode(*m.FileOutput.Directory, config.FileRelative)
		}
		cfg.Output.ApplyOutputOverride(m.FileOutput)
		if m.FileOutput.Directory == nil && cfg.Output.Directory != "" {
			pathMode = config.InferPathMode(cfg.Output.Directory, pathMode)
		}
	}
	cfg.FnNaming.ApplyFnNamingOverride(m.FileFnNaming)
	if m.FileUnknownVariantMessage != nil {
		cfg.UnknownVariantMessage = *m.FileUnknownVariantMessage
	}

	var units []*GeneratedUnit

	for _, decl := range m.Types {
		if !decl.Annotated {
			continue
		}

		ctx := resolveTypeContext(cfg, pathMode, decl)

		gen := &genContext{
			cfg:        ctx.cfg,
			registry:   registry,
			imports:    importMap{},
			modulePath: m.ImportPath,
		}

		var decoder string
		usesOption := false
		if decl.GenerateDecoder {
			out, err := gen.generateDecoder(decl)
			if err != nil {
				return nil, err
			}
			decoder = out.code
			usesOption = out.usesOptionHelpers
		}

		var encoder string
		usedBackends := map[string]backend.Backend{}
		if len(decl.Encoders) > 0 {
			var pieces []string
			for _, id := range decl.Encoders {
				b, ok := g.Backends.Get(id)
				if !ok {
					return nil, errors.Generationf("no encoder backend registered for %q", id)
				}
				usedBackends[id] = b

				code, err := gen.generateEncoder(decl, id, b)
				if err != nil {
					return nil, err
				}
				pieces = append(pieces, code)
			}
			encoder = joinBlocks(pieces)
		}

		if decoder == "" && encoder == "" {
			continue
		}

		g.Log.Debugw("generated type",
			"module", m.ImportPath, "type", decl.Name,
			"decoder", decoder != "", "backends", len(usedBackends))

		tc := TypeCode{
			TypeName:     decl.Name,
			ModulePath:   m.ImportPath,
			Constructors: constructorNames(decl),
			Decoder:      decoder,
			Encoder:      encoder,
		}

		unit := findUnit(units, ctx.pathMode, ctx.cfg.Output)
		if unit != nil {
			unit.Types = append(unit.Types, tc)
			importMap(unit.Imports).merge(gen.imports)
			for id, b := range usedBackends {
				unit.Backends[id] = b
			}
			unit.DecoderUsesOptionHelpers = unit.DecoderUsesOptionHelpers || usesOption
			if unit.DecoderUsesOptionHelpers {
				if err := checkOptionAlias(importMap(unit.Imports)); err != nil {
					return nil, err
				}
			}
			continue
		}

		if usesOption {
			if err := checkOptionAlias(gen.imports); err != nil {
				return nil, err
			}
		}
		units = append(units, &GeneratedUnit{
			Types:                    []TypeCode{tc},
			Output:                   ctx.cfg.Output,
			PathMode:                 ctx.pathMode,
			Imports:                  gen.imports,
			Backends:                 usedBackends,
			DecoderUsesOptionHelpers: usesOption,
		})
	}

	return units, nil
}

// resolveTypeContext layers the type-level overrides onto the file's
// effective config and resolves the final path mode.
func resolveTypeContext(fileCfg config.Config, filePathMode config.PathMode, decl *gleam.TypeDecl) typeContext {
	cfg := fileCfg
	pathMode := filePathMode

	if decl.Output != nil {
		if decl.Output.Directory != nil {
			pathMode = config.InferPathMode(*decl.Output.Directory, config.FileRelative)
		}
		cfg.Output.ApplyOutputOverride(decl.Output)
		if decl.Output.Directory == nil && cfg.Output.Directory != "" {
			pathMode = config.InferPathMode(cfg.Output.Directory, pathMode)
		}
	} else if cfg.Output.Directory != "" {
		pathMode = config.InferPathMode(cfg.Output.Directory, pathMode)
	}

	cfg.FnNaming.ApplyFnNamingOverride(decl.FnNaming)
	if decl.UnknownVariantMessage != nil {
		cfg.UnknownVariantMessage = *decl.UnknownVariantMessage
	}

	return typeContext{cfg: cfg, pathMode: pathMode}
}

func findUnit(units []*GeneratedUnit, pathMode config.PathMode, output config.OutputConfig) *GeneratedUnit {
	for _, u := range units {
		if u.PathMode == pathMode && u.Output == output {
			return u
		}
	}
	return nil
}

func constructorNames(decl *gleam.TypeDecl) []string {
	names := make([]string, len(decl.Constructors))
	for i, c := range decl.Constructors {
		names[i] = c.Name
	}
	return names
}

func joinBlocks(pieces []string) string {
	out := ""
	for i, p := range pieces {
		if i > 0 {
			out += "\n\n"
		}
		out += p
	}
	return out
}
