package cli

import (
	"fmt"

	"github.com/sigrok-cross/cleanlinkrsp/internal/config"
	"github.com/sigrok-cross/cleanlinkrsp/internal/layout"
	"github.com/sigrok-cross/cleanlinkrsp/internal/rsp"
)

// resolveOrder picks the group order from, in decreasing precedence, the
// --layout flag, the --order flag, the configured layout file, the configured
// order and the built-in default. It also returns a description of the
// source it used.
func resolveOrder(layoutPath, order string, s config.Settings) (rsp.Order, string, error) {
	switch {
	case layoutPath != "":
		o, err := orderFromLayout(layoutPath)
		return o, "--layout " + layoutPath, err
	case order != "":
		o, err := parseOrder(order)
		return o, "--order", err
	case s.Layout != "":
		o, err := orderFromLayout(s.Layout)
		return o, "config " + config.KeyLayout + " " + s.Layout, err
	case s.Order != "":
		o, err := parseOrder(s.Order)
		return o, "config " + config.KeyOrder, err
	default:
		return rsp.DefaultOrder(), "default", nil
	}
}

func orderFromLayout(path string) (rsp.Order, error) {
	l, err := layout.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return l.Order()
}

func parseOrder(s string) (rsp.Order, error) {
	o, err := rsp.ParseOrder(s)
	if err != nil {
		return nil, fmt.Errorf("parsing order %q: %w", s, err)
	}
	return o, nil
}
