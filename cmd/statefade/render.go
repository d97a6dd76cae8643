package main

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"

	"github.com/go-drift/statefade/pkg/graphics"
	"github.com/spf13/cobra"
)

var renderOpts struct {
	items    string
	output   string
	width    float64
	height   float64
	selected int
	focused  bool
	disabled bool
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the face and open drop-down list to a PNG",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		if err := runRender(e); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", renderOpts.output)
		return e.printMetrics(cmd)
	},
}

func init() {
	f := renderCmd.Flags()
	f.StringVarP(&renderOpts.items, "items", "i", "", "Items YAML file (defaults to a built-in sample)")
	f.StringVarP(&renderOpts.output, "output", "o", "list.png", "Output PNG path")
	f.Float64Var(&renderOpts.width, "width", 0, "Width in pixels (0 fits the widest row)")
	f.Float64Var(&renderOpts.height, "face-height", 0, "Face height in pixels (0 uses one row)")
	f.IntVar(&renderOpts.selected, "selected", -1, "Row to select")
	f.BoolVar(&renderOpts.focused, "focused", false, "Draw the list as focused")
	f.BoolVar(&renderOpts.disabled, "disabled", false, "Draw the list as disabled")
	rootCmd.AddCommand(renderCmd)
}

func runRender(e *env) error {
	items, err := itemsFrom(renderOpts.items)
	if err != nil {
		return err
	}
	list, err := buildList(e, items, nil, "")
	if err != nil {
		return err
	}
	defer list.Dispose()

	list.Select(renderOpts.selected)
	if renderOpts.focused {
		list.FocusGained()
	}
	list.SetDisabled(renderOpts.disabled)

	width := renderOpts.width
	if width <= 0 {
		width = math.Ceil(list.ListWidth()) + 24
	}
	faceHeight := renderOpts.height
	if faceHeight <= 0 {
		faceHeight = math.Ceil(list.Layout().LineHeight()) + 6
	}
	faceSize := graphics.Size{Width: width, Height: faceHeight}
	list.Attach(faceSize)

	face := graphics.NewRasterCanvas(faceSize, nil)
	list.Paint(face)

	listHeight := math.Ceil(list.ListHeight())
	rows := graphics.NewRasterCanvas(graphics.Size{Width: width, Height: listHeight}, nil)
	list.PaintList(rows, width)

	out := graphics.NewRasterCanvas(graphics.Size{Width: width, Height: faceHeight + listHeight}, nil)
	out.DrawImage(face.Image(), graphics.Offset{})
	out.DrawImage(rows.Image(), graphics.Offset{Y: faceHeight})
	return writePNG(renderOpts.output, out.Image())
}

func writePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return file.Close()
}
