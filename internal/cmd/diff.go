package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/commalg/dgares/internal/resolution"
)

var (
	diffSquare   bool
	diffJSON     bool
	diffVertices int
)

var diffCmd = &cobra.Command{
	Use:     "diff <element>",
	GroupID: GroupCompute,
	Short:   "Apply the differential to an element",
	Long: `Diff applies the resolution differential to an element written in
e-notation. With --square the differential is applied twice, which must
give zero on every element.

Examples:
  dga diff 'e(1,1;0,1)'
  dga diff 'x0*y2*e(2,1;0,1,3)' --square`,
	Args: cobra.ExactArgs(1),
	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)
	diffCmd.Flags().BoolVar(&diffSquare, "square", false, "apply the differential twice")
	diffCmd.Flags().BoolVar(&diffJSON, "json", false, "output as JSON")
	diffCmd.Flags().IntVarP(&diffVertices, "vertices", "n", 0, "override the vertex count")
}

func runDiff(cmd *cobra.Command, args []string) error {
	c, err := workspaceComplex(diffVertices)
	if err != nil {
		return err
	}
	e, err := c.ParseElement(args[0])
	if err != nil {
		return err
	}
	out := c.Differential(e)
	if diffSquare {
		out = c.Differential(out)
	}
	if diffJSON {
		return printJSON(map[string]interface{}{
			"input":  args[0],
			"square": diffSquare,
			"result": out.String(),
			"terms":  elementTerms(out),
		})
	}
	fmt.Println(out.String())
	return nil
}

// elementTerms renders an element as basis/coefficient pairs for JSON output.
func elementTerms(e resolution.Element) []map[string]string {
	terms := e.Terms()
	out := make([]map[string]string, 0, len(terms))
	for _, t := range terms {
		out = append(out, map[string]string{
			"basis": t.Basis.Key(),
			"coef":  t.Coef.String(),
		})
	}
	return out
}
