package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	productJSON     bool
	productVertices int
)

var productCmd = &cobra.Command{
	Use:     "product <f> <g>",
	GroupID: GroupCompute,
	Short:   "Multiply two elements with the candidate product",
	Long: `Product multiplies two elements of the resolution. Coefficients of the
candidate product that are not pinned down by the construction stay
symbolic, so results may carry the unknowns A_k and B_k.

Examples:
  dga product 'e(1,1;0,1)' 'e(1,1;1,2)'
  dga product 'x0*e(1,1;0,1)' 'y3*e(1,1;2,3)' --json`,
	Args: cobra.ExactArgs(2),
	RunE: runProduct,
}

func init() {
	rootCmd.AddCommand(productCmd)
	productCmd.Flags().BoolVar(&productJSON, "json", false, "output as JSON")
	productCmd.Flags().IntVarP(&productVertices, "vertices", "n", 0, "override the vertex count")
}

func runProduct(cmd *cobra.Command, args []string) error {
	c, err := workspaceComplex(productVertices)
	if err != nil {
		return err
	}
	f, err := c.ParseElement(args[0])
	if err != nil {
		return fmt.Errorf("left factor: %w", err)
	}
	g, err := c.ParseElement(args[1])
	if err != nil {
		return fmt.Errorf("right factor: %w", err)
	}
	out := c.Product(f, g)
	if productJSON {
		return printJSON(map[string]interface{}{
			"left":   args[0],
			"right":  args[1],
			"result": out.String(),
			"terms":  elementTerms(out),
		})
	}
	fmt.Println(out.String())
	return nil
}
