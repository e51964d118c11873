// Package prompt reads a body placement interactively from a text stream.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/orbits/game"
)

// ReadPlacement asks for mass, colour, speed, angle and radius, in that
// order, for a body at pos. Each field is asked again until it parses and
// is valid. If the input ends first the returned error wraps io.EOF.
func ReadPlacement(r io.Reader, w io.Writer, pos r2.Vec) (game.PlacementSpec, error) {
	p := &prompter{in: bufio.NewScanner(r), out: w}
	spec := game.PlacementSpec{Pos: pos}

	var err error
	if spec.Mass, err = p.float("Mass (kg)", positive(game.ErrInvalidMass)); err != nil {
		return spec, err
	}
	if spec.Color, err = p.color("Color (R G B, 0-255)"); err != nil {
		return spec, err
	}
	if spec.Speed, err = p.float("Speed (m/s)", nil); err != nil {
		return spec, err
	}
	if spec.AngleDeg, err = p.float("Angle (degrees from +x)", nil); err != nil {
		return spec, err
	}
	if spec.Radius, err = p.float("Radius (m)", positive(game.ErrInvalidRadius)); err != nil {
		return spec, err
	}

	if err := spec.Validate(); err != nil {
		return spec, err
	}
	return spec, nil
}

type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// line prints label and returns the next trimmed input line.
func (p *prompter) line(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("reading %s: %w", label, err)
		}
		return "", fmt.Errorf("reading %s: %w", label, io.EOF)
	}
	return strings.TrimSpace(p.in.Text()), nil
}

func (p *prompter) float(label string, check func(float64) error) (float64, error) {
	for {
		text, err := p.line(label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			fmt.Fprintf(p.out, "  not a number: %q\n", text)
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			fmt.Fprintf(p.out, "  %q: %v\n", text, game.ErrNotFinite)
			continue
		}
		if check != nil {
			if err := check(v); err != nil {
				fmt.Fprintf(p.out, "  %v\n", err)
				continue
			}
		}
		return v, nil
	}
}

func (p *prompter) color(label string) ([3]int, error) {
	for {
		text, err := p.line(label)
		if err != nil {
			return [3]int{}, err
		}
		c, err := parseColor(text)
		if err != nil {
			fmt.Fprintf(p.out, "  %v\n", err)
			continue
		}
		return c, nil
	}
}

var errColorFields = errors.New("expected three components")

// parseColor reads "R G B", also accepting commas as separators.
func parseColor(text string) ([3]int, error) {
	var c [3]int
	fields := strings.FieldsFunc(text, func(r rune) bool { return r == ' ' || r == ',' || r == '\t' })
	if len(fields) != 3 {
		return c, errColorFields
	}
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return c, fmt.Errorf("component %q: %w", f, err)
		}
		if v < 0 || v > 255 {
			return c, fmt.Errorf("component %d: %w", v, game.ErrInvalidColor)
		}
		c[i] = v
	}
	return c, nil
}

func positive(sentinel error) func(float64) error {
	return func(v float64) error {
		if !(v > 0) || math.IsInf(v, 0) {
			return sentinel
		}
		return nil
	}
}
