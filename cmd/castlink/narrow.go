package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"castlink/internal/numconv"
)

var narrowCmd = &cobra.Command{
	Use:   "narrow [flags] op|all x...",
	Short: "Apply double to int/short/char/byte conversions",
	Long:  `narrow runs narrow_* (truncate and wrap) or round_* (saturate, then narrow) conversions on each argument`,
	Args:  cobra.MinimumNArgs(2),
	RunE:  runNarrow,
}

func init() {
	narrowCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type narrowResult struct {
	Op     string `json:"op"`
	In     string `json:"input"`
	Result int64  `json:"result"`
}

func runNarrow(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}

	var opList []numconv.Op
	if args[0] == "all" {
		opList = numconv.Ops()
	} else {
		op, err := numconv.ParseOp(args[0])
		if err != nil {
			return err
		}
		opList = []numconv.Op{op}
	}

	var results []narrowResult
	for _, arg := range args[1:] {
		x, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q: %w", arg, err)
		}
		for _, op := range opList {
			r, err := numconv.Apply(op, x)
			if err != nil {
				return err
			}
			results = append(results, narrowResult{Op: op.String(), In: arg, Result: r})
		}
	}

	if format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	renderNarrowPretty(cmd.OutOrStdout(), results)
	return nil
}

func renderNarrowPretty(out io.Writer, results []narrowResult) {
	for _, r := range results {
		if r.Op == numconv.OpNarrowChar.String() || r.Op == numconv.OpRoundChar.String() {
			fmt.Fprintf(out, "%s(%s) = %d %q\n", r.Op, r.In, r.Result, charString(r.Result))
			continue
		}
		fmt.Fprintf(out, "%s(%s) = %d\n", r.Op, r.In, r.Result)
	}
}
