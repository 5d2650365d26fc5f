package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/goruler/pkg/geometry"
	"github.com/philipparndt/goruler/pkg/ruler"
)

var (
	point1X, point1Y, point1Z float64
	point2X, point2Y, point2Z float64
)

var measureCmd = &cobra.Command{
	Use:   "measure",
	Short: "Measure the distance between two points",
	Long: `Measure the straight-line distance between two points given in meters
and print the label that would be shown for them.`,
	Args: cobra.NoArgs,
	RunE: runMeasure,
}

func init() {
	rootCmd.AddCommand(measureCmd)

	measureCmd.Flags().Float64Var(&point1X, "x1", 0.0, "X coordinate of first point")
	measureCmd.Flags().Float64Var(&point1Y, "y1", 0.0, "Y coordinate of first point")
	measureCmd.Flags().Float64Var(&point1Z, "z1", 0.0, "Z coordinate of first point")
	measureCmd.Flags().Float64Var(&point2X, "x2", 0.0, "X coordinate of second point")
	measureCmd.Flags().Float64Var(&point2Y, "y2", 0.0, "Y coordinate of second point")
	measureCmd.Flags().Float64Var(&point2Z, "z2", 0.0, "Z coordinate of second point")

	measureCmd.MarkFlagsRequiredTogether("x1", "y1", "z1", "x2", "y2", "z2")
}

func runMeasure(cmd *cobra.Command, args []string) error {
	if !cmd.Flags().Changed("x1") {
		return fmt.Errorf("both points are required: --x1 --y1 --z1 --x2 --y2 --z2")
	}

	start := geometry.NewVector3(point1X, point1Y, point1Z)
	end := geometry.NewVector3(point2X, point2Y, point2Z)

	var p ruler.Presenter
	label := p.Present(start, end)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Point-to-Point Measurement")
	fmt.Fprintln(out, "==========================")
	fmt.Fprintf(out, "\nPoint 1: %s\n", start)
	fmt.Fprintf(out, "Point 2: %s\n", end)
	fmt.Fprintf(out, "\n%s\n", label.Text)
	fmt.Fprintf(out, "Label anchor: %s\n", label.Anchor)
	fmt.Fprintf(out, "Label scale:  %s\n", label.Scale)
	return nil
}
