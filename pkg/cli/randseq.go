package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrew-torda/seqperplex/pkg/randseq"
	"github.com/andrew-torda/seqperplex/pkg/seq/common"
)

func newRandSeqCmd(a *app) *cobra.Command {
	args := randseq.RandSeqArgs{Cmmt: "random seq"}
	randseqCmd := &cobra.Command{
		Use:   "randseq [outfile]",
		Short: "Write random aligned DNA sequences, for trying things out",
		Long: `
Write random DNA sequences, all the same length. Each column is
conserved (one base in every sequence) with some probability, so the
perplexities are spread between 1 and 4. The same seed always gives
the same sequences.`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, posArgs []string) error {
			err := a.bind(cmd.Flags(), map[string]string{
				"nseq":     "randseq.nseq",
				"len":      "randseq.len",
				"seed":     "randseq.seed",
				"conserve": "randseq.conserve",
			})
			if err != nil {
				return err
			}
			cfg, err := a.config()
			if err != nil {
				return usageError{err}
			}
			args.Nseq = cfg.RandSeq.NSeq
			args.Len = cfg.RandSeq.Len
			args.Iseed = cfg.RandSeq.Seed
			args.Conserve = cfg.RandSeq.Conserve
			args.Wrtr = cmd.OutOrStdout()

			if len(posArgs) > 0 && !common.IsStdio(posArgs[0]) {
				common.WarnExists(posArgs[0])
				fp, err := os.Create(posArgs[0])
				if err != nil {
					return fmt.Errorf("output file %v: %w", posArgs[0], err)
				}
				defer fp.Close()
				args.Wrtr = fp
			}
			return randseq.RandSeqMain(&args)
		},
	}
	f := randseqCmd.Flags()
	f.IntP("nseq", "n", 6, "number of sequences")
	f.IntP("len", "l", 40, "length of sequences")
	f.Int64P("seed", "s", 1, "random number seed")
	f.Float64("conserve", 0.5, "probability that a column is conserved")
	f.BoolVar(&args.Plain, "plain", false, "one sequence per line, no comments")
	f.StringVar(&args.Cmmt, "cmmt", args.Cmmt, "comment for fasta lines")
	return randseqCmd
}
