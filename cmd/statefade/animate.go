package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-drift/statefade/pkg/animation"
	"github.com/go-drift/statefade/pkg/bufferedpaint"
	"github.com/go-drift/statefade/pkg/graphics"
	"github.com/go-drift/statefade/pkg/visualstate"
	"github.com/spf13/cobra"
)

var animateOpts struct {
	items    string
	outDir   string
	from     string
	to       string
	frames   int
	width    float64
	height   float64
	selected int
}

var animateCmd = &cobra.Command{
	Use:   "animate",
	Short: "Write the cross-fade between two visual states as PNG frames",
	Long: `Renders the list face in the --from state, switches it to the --to state
and writes one PNG per frame of the resulting cross-fade. Time is simulated,
so the frames are evenly spaced over the configured transition duration.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		n, err := runAnimate(e)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d frames to %s\n", n, animateOpts.outDir)
		return e.printMetrics(cmd)
	},
}

func init() {
	f := animateCmd.Flags()
	f.StringVarP(&animateOpts.items, "items", "i", "", "Items YAML file (defaults to a built-in sample)")
	f.StringVarP(&animateOpts.outDir, "output", "o", "frames", "Output directory")
	f.StringVar(&animateOpts.from, "from", string(visualstate.Normal), "State to fade from")
	f.StringVar(&animateOpts.to, "to", string(visualstate.Hot), "State to fade to")
	f.IntVar(&animateOpts.frames, "frames", 8, "Number of frames after the first")
	f.Float64Var(&animateOpts.width, "width", 160, "Face width in pixels")
	f.Float64Var(&animateOpts.height, "height", 28, "Face height in pixels")
	f.IntVar(&animateOpts.selected, "selected", 0, "Row shown in the face")
	rootCmd.AddCommand(animateCmd)
}

func runAnimate(e *env) (int, error) {
	from, err := visualstate.ParseState(animateOpts.from)
	if err != nil {
		return 0, err
	}
	to, err := visualstate.ParseState(animateOpts.to)
	if err != nil {
		return 0, err
	}
	if animateOpts.frames < 1 {
		return 0, fmt.Errorf("--frames must be at least 1")
	}
	items, err := itemsFrom(animateOpts.items)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(animateOpts.outDir, 0o755); err != nil {
		return 0, err
	}

	clk := animation.NewManualClock()
	prev := animation.SetClock(clk)
	defer animation.SetClock(prev)

	compositor := bufferedpaint.NewCompositor(
		bufferedpaint.WithLogger(e.logger),
		bufferedpaint.WithCurve(e.cfg.Curve()),
	)
	defer compositor.Close()

	list, err := buildList(e, items, compositor, from)
	if err != nil {
		return 0, err
	}
	defer list.Dispose()
	list.Select(animateOpts.selected)

	size := graphics.Size{Width: animateOpts.width, Height: animateOpts.height}
	list.Attach(size)
	target := graphics.NewRasterCanvas(size, nil)
	list.Paint(target)

	list.Animator().SetState(to)
	d := list.Animator().DurationFor(from, to)
	step := d / time.Duration(animateOpts.frames)
	if step <= 0 {
		step = time.Millisecond
	}

	written := 0
	for i := 0; i <= animateOpts.frames; i++ {
		if i > 0 {
			clk.Advance(step)
			animation.StepTickers()
		}
		target.Clear(graphics.ColorTransparent)
		list.Paint(target)
		path := filepath.Join(animateOpts.outDir, fmt.Sprintf("frame_%03d.png", i))
		if err := writePNG(path, target.Image()); err != nil {
			return written, err
		}
		written++
	}
	e.logger.Debug("animation written", "from", from, "to", to, "duration", d, "frames", written)
	return written, nil
}
