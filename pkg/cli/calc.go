package cli

import (
	"github.com/spf13/cobra"

	"github.com/andrew-torda/seqperplex/pkg/calc"
)

func newCalcCmd(a *app) *cobra.Command {
	var flags calc.CmdFlag

	// calcCmd is the one shot calculation, file in, csv out
	calcCmd := &cobra.Command{
		Use:   "calc [infile [outfile]]",
		Short: "Calculate perplexity at each position and write csv",
		Long: `
Given no arguments, read and write from stdin / stdout.
Given one argument, read from the given file name, but write to stdout.
Given two arguments, read from the first one, write to the second.

Input is either one sequence per line or fasta. The output is a csv file
with the columns Position and Perplexity.`,
		Args: usageArgs(cobra.MaximumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := a.bind(cmd.Flags(), map[string]string{
				"kind":     "kind",
				"truncate": "truncate",
				"upper":    "upper",
				"width":    "chart.width",
				"height":   "chart.height",
			})
			if err != nil {
				return err
			}
			cfg, err := a.config()
			if err != nil {
				return usageError{err}
			}
			flags.Kind = cfg.KindValue()
			flags.Truncate = cfg.Truncate
			flags.Upper = cfg.Upper
			flags.Chart = cfg.ChartOpts()
			flags.Stderr = cmd.ErrOrStderr()

			var infile, outfile string
			if len(args) > 0 {
				infile = args[0]
				if len(args) > 1 {
					outfile = args[1]
				}
			}
			return calc.Mymain(&flags, infile, outfile)
		},
	}

	f := calcCmd.Flags()
	f.StringP("kind", "k", "conditional", "kind of perplexity, see 'perplex kinds'")
	f.Bool("truncate", false, "use the length of the first sequence, do not insist on equal lengths")
	f.BoolP("upper", "u", false, "convert sequences to upper case")
	f.Int("width", 0, "chart width in pixels")
	f.Int("height", 0, "chart height in pixels")
	f.StringVarP(&flags.Plot, "plot", "p", "", "write a chart to this file, the format from a .png or .svg suffix, otherwise chart.format")
	f.StringVarP(&flags.Chimera, "chimera", "c", "", "filename to write chimera format to")
	f.IntVarP(&flags.Offset, "offset", "f", 0, "offset for numbering chimera output, renumbering sites")
	f.BoolVarP(&flags.Verbose, "verbose", "v", false, "print caption and summary to stderr")
	f.BoolVarP(&flags.Time, "time", "t", false, "print out timing information")
	return calcCmd
}
