package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-drift/carousel/cmd/carousel/internal/config"
	"github.com/go-drift/carousel/cmd/carousel/internal/filmstrip"
)

func init() {
	RegisterCommand(&Command{
		Name:  "snapshot",
		Short: "Render a transition preview to PNG",
		Long: `Render a simulated one-page drag with the configured transition.

Each frame is one row of the image, from rest to a full page to the left.
Padding pages are drawn grey.

Flags:
  --config DIR   Directory containing carousel.yaml (default: .)
  --out FILE     Output PNG path (default: carousel.png)
  --frames N     Number of frames (default: 5)`,
		Usage: "carousel snapshot [--config DIR] [--out FILE] [--frames N]",
		Run:   runSnapshot,
	})
}

func runSnapshot(args []string) error {
	fs := newFlagSet()
	dir := fs.String("config", ".")
	out := fs.String("out", "carousel.png")
	framesFlag := fs.String("frames", strconv.Itoa(filmstrip.DefaultFrames))
	if err := fs.Parse(args); err != nil {
		return err
	}

	frames, err := strconv.Atoi(*framesFlag)
	if err != nil || frames <= 0 {
		return fmt.Errorf("--frames must be a positive integer, got %q", *framesFlag)
	}

	res, err := config.Resolve(*dir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", *out, err)
	}
	if err := filmstrip.Encode(f, res.Items, res.Carousel, filmstrip.Options{Frames: frames}); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", *out, err)
	}

	fmt.Fprintf(stdout, "Wrote %d frames (%s) to %s\n", frames, res.Carousel.Transition, *out)
	return nil
}
