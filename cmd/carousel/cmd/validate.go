package cmd

import (
	"fmt"

	"github.com/go-drift/carousel/cmd/carousel/internal/config"
)

func init() {
	RegisterCommand(&Command{
		Name:  "validate",
		Short: "Check carousel.yaml",
		Long: `Load carousel.yaml, apply defaults and report the resolved settings.

A missing file is valid and resolves to the defaults.

Flags:
  --config DIR   Directory containing carousel.yaml (default: .)`,
		Usage: "carousel validate [--config DIR]",
		Run:   runValidate,
	})
}

func runValidate(args []string) error {
	fs := newFlagSet()
	dir := fs.String("config", ".")
	if err := fs.Parse(args); err != nil {
		return err
	}

	res, err := config.Resolve(*dir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cc := res.Carousel
	fmt.Fprintf(stdout, "%s: ok (version %s)\n", res.Path, res.Version)
	fmt.Fprintf(stdout, "  items:         %d\n", len(res.Items))
	fmt.Fprintf(stdout, "  interval:      %s\n", cc.Interval)
	fmt.Fprintf(stdout, "  settle delay:  %s\n", cc.SettleDelay)
	fmt.Fprintf(stdout, "  transition:    %s\n", cc.Transition)
	fmt.Fprintf(stdout, "  layout:        height=%g padding=%g radius=%g width=%g\n",
		cc.Height, cc.HorizontalPadding, cc.CornerRadius, cc.ScreenWidth)
	if len(res.Items) == 0 {
		fmt.Fprintln(stdout, "  warning: no items, the carousel will stay on its empty page")
	}
	return nil
}
