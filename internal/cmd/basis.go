package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/commalg/dgares/internal/resolution"
	"github.com/commalg/dgares/internal/style"
)

var (
	basisHdeg     int
	basisDegree   int
	basisAll      bool
	basisCount    bool
	basisJSON     bool
	basisVertices int
)

var basisCmd = &cobra.Command{
	Use:     "basis",
	GroupID: GroupCompute,
	Short:   "List free-module bases of the resolution",
	Long: `Basis describes the free modules of the resolution of K_n. Without flags
it prints the S-basis rank in every homological degree. With --hdeg it
lists the S-basis there; adding --degree restricts to the slice of that
twisted degree, where monomial multiples appear.

Slices grow quickly, so --degree prints the count by default; pass --all
to list the elements.

Examples:
  dga basis
  dga basis --hdeg 1
  dga basis --hdeg 2 --degree 5 --all`,
	Args: cobra.NoArgs,
	RunE: runBasis,
}

func init() {
	rootCmd.AddCommand(basisCmd)
	basisCmd.Flags().IntVar(&basisHdeg, "hdeg", -1, "homological degree to inspect")
	basisCmd.Flags().IntVar(&basisDegree, "degree", -1, "twisted degree of the slice")
	basisCmd.Flags().BoolVar(&basisAll, "all", false, "list slice elements instead of counting")
	basisCmd.Flags().BoolVar(&basisCount, "count", false, "print counts only")
	basisCmd.Flags().BoolVar(&basisJSON, "json", false, "output as JSON")
	basisCmd.Flags().IntVarP(&basisVertices, "vertices", "n", 0, "override the vertex count")
}

func runBasis(cmd *cobra.Command, args []string) error {
	c, err := workspaceComplex(basisVertices)
	if err != nil {
		return err
	}
	if basisHdeg < 0 {
		if basisDegree >= 0 {
			return fmt.Errorf("--degree needs --hdeg")
		}
		return basisOverview(c)
	}
	if basisHdeg > c.Length() {
		return fmt.Errorf("homological degree %d out of range (resolution has length %d)", basisHdeg, c.Length())
	}
	if basisDegree < 0 {
		return basisSBasis(c)
	}
	return basisSlice(c)
}

func basisOverview(c *resolution.Complex) error {
	if basisJSON {
		type row struct {
			Hdeg int   `json:"hdeg"`
			Rank int64 `json:"rank"`
		}
		rows := make([]row, 0, c.Length()+1)
		for h := 0; h <= c.Length(); h++ {
			rows = append(rows, row{Hdeg: h, Rank: c.SBasisSize(h)})
		}
		return printJSON(map[string]interface{}{"vertices": c.N, "sbasis": rows})
	}

	tbl := style.NewTable(
		style.Column{Name: "HDEG", Width: 4, Align: style.AlignRight},
		style.Column{Name: "RANK", Width: 8, Align: style.AlignRight},
	)
	var total int64
	for h := 0; h <= c.Length(); h++ {
		size := c.SBasisSize(h)
		total += size
		tbl.AddRow(fmt.Sprintf("%d", h), style.Count(int(size)))
	}
	fmt.Printf("S-basis ranks of the resolution for n=%d\n\n", c.N)
	fmt.Print(tbl.Render())
	fmt.Printf("\n  total %s\n", style.Count(int(total)))
	return nil
}

func basisSBasis(c *resolution.Complex) error {
	basis := c.SBasis(basisHdeg)
	if basisJSON {
		out := map[string]interface{}{
			"vertices": c.N,
			"hdeg":     basisHdeg,
			"rank":     len(basis),
		}
		if !basisCount {
			keys := make([]string, 0, len(basis))
			for _, b := range basis {
				keys = append(keys, b.Key())
			}
			out["basis"] = keys
		}
		return printJSON(out)
	}
	if basisCount {
		fmt.Println(style.Count(len(basis)))
		return nil
	}
	fmt.Printf("S-basis in homological degree %d (n=%d): %s elements\n\n", basisHdeg, c.N, style.Count(len(basis)))
	for _, b := range basis {
		fmt.Printf("  %s\n", b.Key())
	}
	return nil
}

func basisSlice(c *resolution.Complex) error {
	size := c.SliceSize(basisHdeg, basisDegree)
	listed := basisAll && !basisCount
	if basisJSON {
		out := map[string]interface{}{
			"vertices": c.N,
			"hdeg":     basisHdeg,
			"degree":   basisDegree,
			"count":    size,
		}
		if listed {
			slice := c.Slice(basisHdeg, basisDegree)
			keys := make([]string, 0, len(slice))
			for _, b := range slice {
				keys = append(keys, b.Key())
			}
			out["basis"] = keys
		}
		return printJSON(out)
	}
	if !listed {
		fmt.Println(style.Count(int(size)))
		return nil
	}
	fmt.Printf("Slice basis in hdeg %d, twisted degree %d (n=%d): %s elements\n\n",
		basisHdeg, basisDegree, c.N, style.Count(int(size)))
	for _, b := range c.Slice(basisHdeg, basisDegree) {
		fmt.Printf("  %s\n", b.Key())
	}
	return nil
}

// printJSON writes v to stdout with the indentation all dga commands use.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
