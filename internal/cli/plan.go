package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/briangreenhill/athletiq/internal/providers"
)

func (r *root) newPlanCmd() *cobra.Command {
	var pf profileFlags
	var interactive bool
	var outDir string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate a personalised training plan",
		Long: `Generate a personalised training plan and save it as
<AppName>_<sport>_Plan.txt in --out.

With --interactive the profile is collected with a form; flags give its
starting values.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := pf.profile()
			if interactive {
				var err error
				if p, err = runProfileForm(p); err != nil {
					return err
				}
			}
			if err := p.Validate(); err != nil {
				return err
			}

			svc, closeSvc, err := r.newService(cmd.Context(), r.cfg)
			if err != nil {
				return err
			}
			defer closeSvc()

			out := cmd.OutOrStdout()
			pl, genErr := svc.Generate(cmd.Context(), p)
			if pl == nil {
				return genErr
			}
			if r.jsonOutput {
				if err := writeJSON(out, pl); err != nil {
					return err
				}
			} else {
				renderPlan(out, pl)
			}
			if genErr != nil {
				if errors.Is(genErr, providers.ErrGeneration) {
					return errors.New("plan generation failed")
				}
				return genErr
			}

			path, err := savePlan(outDir, pl.Filename(r.cfg.AppName), pl.Export())
			if err != nil {
				return err
			}
			if !r.jsonOutput {
				fmt.Fprintln(out, mutedStyle.Render("Saved "+path))
			}
			return nil
		},
	}
	pf.register(cmd.Flags())
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Fill in the profile with an interactive form")
	cmd.Flags().StringVar(&outDir, "out", ".", "Directory the plan file is written to")
	return cmd
}

func savePlan(dir, name, content string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write plan: %w", err)
	}
	return path, nil
}

