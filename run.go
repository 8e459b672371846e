package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abs0luty/gloss/backend"
	"github.com/abs0luty/gloss/codegen"
	"github.com/abs0luty/gloss/config"
	"github.com/abs0luty/gloss/errors"
	"github.com/abs0luty/gloss/gleamparser"
	"github.com/abs0luty/gloss/writer"
)

type generateOptions struct {
	path    string
	dryRun  bool
	verbose bool
	out     io.Writer
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gloss",
		Short:         "Generate JSON encoders/decoders for Gleam types",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newGenerateCmd())
	return root
}

func newGenerateCmd() *cobra.Command {
	opts := generateOptions{out: os.Stdout}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate encoders/decoders for marked types in a Gleam project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts)
		},
	}
	cmd.Flags().StringVarP(&opts.path, "path", "p", ".", "path to the Gleam project root")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print generated code without writing files")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "show verbose output")
	return cmd
}

func runGenerate(opts generateOptions) error {
	root, err := filepath.Abs(opts.path)
	if err != nil {
		return errors.Wrapf(err, "invalid project path %q", opts.path)
	}

	log := zap.NewNop().Sugar()
	if opts.verbose {
		dev, err := zap.NewDevelopment()
		if err != nil {
			return errors.Wrap(err, "failed to build logger")
		}
		defer dev.Sync() //nolint:errcheck
		log = dev.Sugar()
	}

	if opts.verbose {
		printConfigSummary(root)
	}

	modules, err := gleamparser.ParseProject(root, log)
	if err != nil {
		return err
	}

	gen := codegen.New(root, backend.NewRegistry(), log)
	outputs, genErr := gen.Run(modules)

	if len(outputs) == 0 && genErr == nil {
		printNoAnnotationsHelp()
		return nil
	}

	if opts.verbose {
		pterm.Info.Printfln("Generated code for %d module(s)", len(outputs))
	}

	w := writer.New(root, opts.dryRun, opts.verbose, opts.out, log)
	if err := w.WriteOutputs(outputs); err != nil {
		return err
	}
	if genErr != nil {
		return genErr
	}

	if opts.dryRun {
		pterm.Success.Println("Dry run complete. No files were modified.")
	} else {
		pterm.Success.Println("Code generation complete!")
	}
	return nil
}

func printConfigSummary(root string) {
	cfg := config.Default()
	if doc, err := config.LoadDocument(root); err == nil {
		cfg.Apply(doc)
	}

	pterm.Info.Printfln("Scanning Gleam project at: %s", root)
	pterm.Println("Configuration:")
	pterm.Printfln("  Field naming: %s", cfg.FieldNaming)
	pterm.Printfln("  Absent field mode: %s", cfg.AbsentMode)
	pterm.Printfln("  Separate files: %t", cfg.Output.SeparateFiles)
	pterm.Printfln("  File pattern: %s", cfg.Output.FilePattern)
	if cfg.Output.Directory != "" {
		pterm.Printfln("  Output directory: %s", cfg.Output.Directory)
	}
	pterm.Println()
}

func printNoAnnotationsHelp() {
	pterm.Println("No types found with gloss!: annotations.")
	pterm.Println()
	pterm.Println("To generate encoders/decoders, add annotations to your custom types:")
	pterm.Println("  // gloss!: encoder(json), decoder")
	pterm.Println("  pub type MyType {")
	pterm.Println("    MyType(")
	pterm.Println("      field: String,")
	pterm.Println("      // gloss!: maybe_absent")
	pterm.Println("      maybe_absent_field: Option(Int),")
	pterm.Println("    )")
	pterm.Println("  }")
	pterm.Println()
	pterm.Println("See gloss.toml for configuration options.")
}
