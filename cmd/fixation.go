package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/candlelang/candle/frontend/infer"
	"github.com/candlelang/candle/frontend/scenario"
	"github.com/candlelang/candle/internal/log"
	"github.com/spf13/cobra"
)

var FixationCmd = &cobra.Command{
	Use:          "fixation ./scenario.yaml",
	Short:        "Trace the type-variable fixation order for an inference scenario",
	RunE:         runFixation,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var logLevel *int

func init() {
	logLevel = FixationCmd.Flags().IntP("log-level", "l", int(slog.LevelError), "log level")
}

func runFixation(cmd *cobra.Command, args []string) error {
	log.SetLevel(slog.Level(*logLevel))

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("could not open scenario: %w", err)
	}
	defer func() { _ = f.Close() }()

	sc, err := scenario.Decode(f)
	if err != nil {
		return fmt.Errorf("could not load scenario: %w", err)
	}

	finder := infer.NewFixationFinder(nil)
	steps, reason := infer.RunToFixpoint(sc.System, finder, sc.Postponed, sc.Mode, sc.TopLevelType, infer.DefaultFixer(sc.System))

	out := cmd.OutOrStdout()
	for i, step := range steps {
		_, _ = fmt.Fprintf(out, "round %d: fix %s := %s", i+1, step.Result.Variable, step.FixedTo)
		if !step.Result.HasProperConstraint {
			_, _ = fmt.Fprint(out, " (defaulted, no proper constraint)")
		} else if step.Result.HasOnlyTrivialProperConstraint {
			_, _ = fmt.Fprint(out, " (only trivial constraints)")
		}
		_, _ = fmt.Fprintln(out)
	}
	_, _ = fmt.Fprintf(out, "done: %s\n", reason)
	return nil
}
