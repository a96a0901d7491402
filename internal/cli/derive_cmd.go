package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newDeriveCmd(app *App) *cobra.Command {
	var outPath string
	var compact bool

	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Run the full derivation and emit the result as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Analysis.Derive(context.Background(), app.Input)
			if err != nil {
				return err
			}

			var data []byte
			if compact {
				data, err = json.Marshal(result)
			} else {
				data, err = json.MarshalIndent(result, "", "  ")
			}
			if err != nil {
				return fmt.Errorf("encoding result: %w", err)
			}

			if outPath != "" {
				if err := os.WriteFile(outPath, append(data, '\n'), 0o644); err != nil {
					return fmt.Errorf("writing %s: %w", outPath, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", outPath)
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write JSON to a file instead of stdout")
	cmd.Flags().BoolVar(&compact, "compact", false, "Emit compact JSON without indentation")

	return cmd
}
