package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tarn-lang/tarn/frontend"
	"github.com/tarn-lang/tarn/frontend/ast"
	"github.com/tarn-lang/tarn/frontend/ir"
	"github.com/tarn-lang/tarn/frontend/tarnerr"
	"github.com/tarn-lang/tarn/internal/log"
)

var DesugarCmd = &cobra.Command{
	Use:          "desugar [module.json]",
	Short:        "Desugar a parsed tarn module into its core form",
	Long:         "Reads a serialized surface module (from the given file, or stdin when no file is given), rewrites it into the core calculus, and prints the result.",
	RunE:         runDesugar,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
}

var (
	desugarOutPath *string
	logLevel       *int
)

func init() {
	desugarOutPath = DesugarCmd.Flags().StringP("out", "o", "", "output path (defaults to stdout)")
	logLevel = DesugarCmd.Flags().IntP("log-level", "l", int(slog.LevelError), "log level")
}

func runDesugar(cmd *cobra.Command, args []string) error {
	log.SetLevel(slog.Level(*logLevel))

	data, err := readInput(args)
	if err != nil {
		return err
	}

	module, err := ast.DecodeModule(data)
	if err != nil {
		return errors.Wrap(err, "could not decode surface module (this is a parser bug, not a compile error)")
	}

	desugared, errs := frontend.DesugarModule(module)
	if errs.HasError() {
		for _, e := range errs.Errors() {
			_, _ = fmt.Fprintln(os.Stderr, tarnerr.Render(e))
		}
		return fmt.Errorf("%d error(s) while desugaring module %s", len(errs.Errors()), module.Name)
	}

	out := ir.ModuleString(desugared)
	if *desugarOutPath == "" {
		_, err = cmd.OutOrStdout().Write([]byte(out))
		return err
	}
	if err := os.WriteFile(*desugarOutPath, []byte(out), 0o644); err != nil {
		return errors.Wrap(err, "could not write output file")
	}
	return nil
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, errors.Wrap(err, "could not read stdin")
		}
		return data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, errors.Wrap(err, "could not read input file")
	}
	return data, nil
}
