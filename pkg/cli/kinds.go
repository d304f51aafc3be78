package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/andrew-torda/seqperplex/pkg/perplex"
)

// writeKinds lists the kinds of perplexity as yaml or json
func writeKinds(w io.Writer, format string) error {
	kk := perplex.KindTable()
	switch strings.ToLower(format) {
	case "", "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(kk); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		b, err := json.MarshalIndent(kk, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}
	return usageError{fmt.Errorf("kinds format must be yaml or json, not %q", format)}
}

func newKindsCmd(a *app) *cobra.Command {
	var format string
	kindsCmd := &cobra.Command{
		Use:   "kinds",
		Short: "List the kinds of perplexity with their captions",
		Long: `
List the kinds of perplexity which can be given to calc. Only
conditional perplexity has its own calculation. The others give the
same numbers with their own caption.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeKinds(cmd.OutOrStdout(), format)
		},
	}
	kindsCmd.Flags().StringVar(&format, "format", "yaml", "output format, yaml or json")
	return kindsCmd
}
