// Command introspectgen writes descriptor source for the annotated
// declarations of a Go package.
//
//	introspectgen [-p package] [-o file] [--into pkg] [--private] [--register] [--type T]...
//
// It is usually run from a go:generate line in the package it describes.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/introspect/internal/gen"
)

var (
	genOpts = struct {
		pkg      string
		output   string
		into     string
		private  bool
		register bool
		types    []string
		verbose  bool
	}{}

	rootCmd = &cobra.Command{
		Use:   "introspectgen",
		Short: "Generate introspection descriptors",
		Long: `Generate descriptor types for the declarations of a package marked with
//introspect:reflect, //introspect:enum or //introspect:func.

Without --into the output joins the package itself and descriptor names end
in Info. With --into it is a separate package seeing only exported members.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
)

func init() {
	rootCmd.Flags().StringVarP(&genOpts.pkg, "package", "p", ".", "package to describe")
	rootCmd.Flags().StringVarP(&genOpts.output, "output", "o", "", "output file (default <pkg>_introspect.go in the package or --into directory)")
	rootCmd.Flags().StringVar(&genOpts.into, "into", "", "generate into a separate package with this name")
	rootCmd.Flags().BoolVar(&genOpts.private, "private", false, "include unexported declarations and members")
	rootCmd.Flags().BoolVar(&genOpts.register, "register", false, "register descriptors with registry.Default in an init function")
	rootCmd.Flags().StringSliceVar(&genOpts.types, "type", nil, "only describe these declarations")
	rootCmd.Flags().BoolVarP(&genOpts.verbose, "verbose", "v", false, "log progress to stderr")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "introspectgen:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	if genOpts.verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()
		gen.SetLogger(logger)
	}

	pkg, err := gen.Load(ctx, ".", genOpts.pkg)
	if err != nil {
		return err
	}
	src, err := gen.Generate(pkg, gen.Options{
		Into:     genOpts.into,
		Private:  genOpts.private,
		Register: genOpts.register,
		Types:    genOpts.types,
	})
	if err != nil {
		return err
	}

	out := outputPath(pkg)
	if genOpts.into != "" {
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(out, src, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	gen.Logger().Info("wrote descriptors", zap.String("file", out), zap.Int("bytes", len(src)))
	return nil
}

// outputPath returns -o as given, or the default file next to the package
// or inside its --into directory.
func outputPath(pkg *gen.Package) string {
	if genOpts.output != "" {
		return genOpts.output
	}
	dir := pkg.Dir
	if genOpts.into != "" {
		dir = filepath.Join(dir, genOpts.into)
	}
	return filepath.Join(dir, pkg.Name+"_introspect.go")
}
