package cli

import (
	"github.com/spf13/cobra"

	"github.com/briangreenhill/athletiq/internal/athlete"
	"github.com/briangreenhill/athletiq/internal/bmi"
)

func (r *root) newBMICmd() *cobra.Command {
	d := athlete.Default()
	var height, weight float64

	cmd := &cobra.Command{
		Use:   "bmi",
		Short: "Classify BMI from height and weight",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := bmi.Classify(height, weight)
			if err != nil {
				return err
			}
			if r.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"bmi":        res.Value,
					"category":   res.Category,
					"label":      res.Category.Label(bmi.LabelsCoaching),
					"disclaimer": bmi.Disclaimer,
				})
			}
			renderBMI(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().Float64Var(&height, "height", d.HeightCm, "Height in cm")
	cmd.Flags().Float64Var(&weight, "weight", d.WeightKg, "Weight in kg")
	return cmd
}
