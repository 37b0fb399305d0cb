package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/silhouette/pkg/art"
	"github.com/matzehuels/silhouette/pkg/errors"
)

// artCommand creates the art debug command. It decodes an art file into
// the binary target grid and prints it, so users can check what the
// layout engine will actually aim for before rendering.
func (c *CLI) artCommand() *cobra.Command {
	var width, height int

	cmd := &cobra.Command{
		Use:   "art --art <path>",
		Short: "Preview the binary target grid of an art file (debug)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlags(cmd, "art"); err != nil {
				return err
			}
			if cmd.Flags().Changed("width") {
				if err := errors.ValidateDimension("width", width); err != nil {
					return err
				}
			}
			heightSet := cmd.Flags().Changed("height")
			if heightSet && height < 0 {
				return errors.New(errors.ErrCodeInvalidFlag, "height must be a non-negative integer, got %d", height)
			}

			path, _ := cmd.Flags().GetString("art")
			dm := c.cfg.DensityMap()
			grid := art.Parse(string(c.readInput(path)), art.Options{
				Width:     width,
				Height:    height,
				HasHeight: heightSet,
				Density:   &dm,
			})

			printInfo("Grid %dx%d, %d foreground cells", grid.W, grid.H, grid.Ones())
			for r := 0; r < grid.H; r++ {
				var line strings.Builder
				for col := 0; col < grid.W; col++ {
					if grid.At(r, col) {
						line.WriteString(styleForeground.Render("#"))
					} else {
						line.WriteString(styleBackground.Render("."))
					}
				}
				fmt.Println(line.String())
			}
			return nil
		},
	}

	cmd.Flags().String("art", "", "ASCII art file, UTF-8 (required)")
	cmd.Flags().IntVar(&width, "width", 0, "override inferred art width")
	cmd.Flags().IntVar(&height, "height", 0, "override inferred art height")

	return cmd
}
