package main

import (
	"fmt"
	"io"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"castlink/internal/observ"
	"castlink/internal/probe"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] probe.toml...",
	Short: "Run cast probe files against their manifests",
	Long:  `check links the manifest named by each probe file and evaluates its cases; files are checked in parallel`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Int("jobs", runtime.GOMAXPROCS(0), "number of probe files checked in parallel")
	checkCmd.Flags().Bool("verbose", false, "print passing cases too")
	checkCmd.Flags().Bool("timings", false, "print link and evaluation time per probe file")
}

func runCheck(cmd *cobra.Command, args []string) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	timings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	var timer *observ.Timer
	if timings {
		timer = observ.NewTimer()
	}
	reports, err := probe.CheckFiles(cmd.Context(), args, jobs, timer)
	if err != nil {
		return err
	}

	failed := 0
	for _, rep := range reports {
		failed += renderReport(cmd.OutOrStdout(), rep, verbose)
	}
	if timings {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}
	if failed > 0 {
		return fmt.Errorf("%d case(s): %w", failed, errChecksFailed)
	}
	return nil
}

func renderReport(out io.Writer, rep *probe.Report, verbose bool) int {
	pass := color.New(color.FgGreen, color.Bold)
	fail := color.New(color.FgRed, color.Bold)
	dim := color.New(color.Faint)

	failed := rep.Failed()
	if failed == 0 {
		pass.Fprint(out, "PASS")
	} else {
		fail.Fprint(out, "FAIL")
	}
	fmt.Fprintf(out, " %s (%d cases, %d failed)\n", rep.Path, len(rep.Results), failed)

	for _, res := range rep.Results {
		switch {
		case res.Err != nil:
			fail.Fprint(out, "  error ")
			fmt.Fprintf(out, "%s: %v\n", res.Case.Name, res.Err)
		case !res.Passed():
			fail.Fprint(out, "  fail  ")
			fmt.Fprintf(out, "%s: got %s, want %s\n", res.Case.Name, res.Got, res.Case.Expect)
			if res.Detail != "" {
				dim.Fprintf(out, "        %s\n", res.Detail)
			}
		case verbose:
			pass.Fprint(out, "  ok    ")
			fmt.Fprintf(out, "%s: %s\n", res.Case.Name, res.Got)
		}
	}
	return failed
}
