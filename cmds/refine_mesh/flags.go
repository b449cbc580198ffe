package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// flagCoord is a point given as comma-separated coordinates.
type flagCoord struct {
	c   model3d.Coord3D
	set bool
}

func (f *flagCoord) String() string {
	if !f.set {
		return ""
	}
	return fmt.Sprintf("%f,%f,%f", f.c.X, f.c.Y, f.c.Z)
}

func (f *flagCoord) Set(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return errors.Errorf("expected 3 coordinates but got %d", len(parts))
	}
	var values [3]float64
	for i, part := range parts {
		x, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return errors.Wrap(err, "parse coordinate")
		}
		values[i] = x
	}
	f.c = model3d.NewCoord3DArray(values)
	f.set = true
	return nil
}
