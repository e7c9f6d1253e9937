package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/briangreenhill/athletiq/internal/bmi"
	"github.com/briangreenhill/athletiq/internal/prompt"
)

func (r *root) newPromptCmd() *cobra.Command {
	var pf profileFlags
	var layout string

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the coaching prompt without calling a provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := pf.profile()
			if err := p.Validate(); err != nil {
				return err
			}
			res, err := bmi.Classify(p.HeightCm, p.WeightKg)
			if err != nil {
				return err
			}

			pc := r.cfg.Prompt
			if layout != "" {
				pc.Layout = layout
			}
			b, err := prompt.FromConfig(pc)
			if err != nil {
				return err
			}

			text := b.Build(p, res)
			if r.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"bmi": res, "prompt": text})
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), text)
			return err
		},
	}
	pf.register(cmd.Flags())
	cmd.Flags().StringVar(&layout, "layout", "", "Prompt layout: sections or table (default from PROMPT_LAYOUT)")
	return cmd
}
