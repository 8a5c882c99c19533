package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/commalg/dgares/internal/style"
)

var (
	leibnizDefectOnly bool
	leibnizJSON       bool
	leibnizVertices   int
)

var leibnizCmd = &cobra.Command{
	Use:     "leibniz <f> <g>",
	GroupID: GroupCompute,
	Short:   "Check the graded Leibniz rule on a pair",
	Long: `Leibniz compares d(f*g) against d(f)*g -/+ f*d(g), where the sign comes
from the S-degree of f. The difference is the defect; the rule holds on
the pair exactly when the defect vanishes identically.

For basis pairs the defect is affine-linear in the unknown coefficients
A_k and B_k, which is what 'system build' harvests across all pairs.

Examples:
  dga leibniz 'e(1,1;0,1)' 'e(1,1;1,2)'
  dga leibniz 'e(1,1;0,1)' 'e(1,1;2,3)' --defect -n 5`,
	Args: cobra.ExactArgs(2),
	RunE: runLeibniz,
}

func init() {
	rootCmd.AddCommand(leibnizCmd)
	leibnizCmd.Flags().BoolVar(&leibnizDefectOnly, "defect", false, "print only the defect")
	leibnizCmd.Flags().BoolVar(&leibnizJSON, "json", false, "output as JSON")
	leibnizCmd.Flags().IntVarP(&leibnizVertices, "vertices", "n", 0, "override the vertex count")
}

func runLeibniz(cmd *cobra.Command, args []string) error {
	c, err := workspaceComplex(leibnizVertices)
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

	defect, err := c.LeibnizDefect(f, g)
	if err != nil {
		return err
	}
	holds := defect.IsZero()

	if leibnizJSON {
		return printJSON(map[string]interface{}{
			"left":   args[0],
			"right":  args[1],
			"defect": defect.String(),
			"terms":  elementTerms(defect),
			"holds":  holds,
		})
	}
	if leibnizDefectOnly {
		fmt.Println(defect.String())
		return nil
	}

	expr, err := c.LeibnizExpr(f, g)
	if err != nil {
		return err
	}
	fmt.Printf("d(f*g)            = %s\n", c.Differential(c.Product(f, g)))
	fmt.Printf("d(f)*g -/+ f*d(g) = %s\n", expr)
	fmt.Printf("defect            = %s\n", defect)
	if holds {
		fmt.Printf("\n%s Leibniz rule holds on this pair\n", style.SuccessPrefix)
	} else {
		fmt.Printf("\n%s defect has %d terms; 'dga system build' collects the constraints\n",
			style.WarningPrefix, defect.Len())
	}
	return nil
}
