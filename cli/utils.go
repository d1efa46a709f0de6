package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"go.viam.com/inertia/inertia"
	"go.viam.com/inertia/logging"
	"go.viam.com/inertia/scalar"
	"go.viam.com/inertia/spatialmath"
	"go.viam.com/inertia/utils"
)

// printf prints a message with no prefix.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

// infof prints a message with an "Info: " prefix.
func infof(w io.Writer, format string, a ...interface{}) {
	printf(w, "Info: "+format, a...)
}

// warningf prints a message with a "Warning: " prefix.
func warningf(w io.Writer, format string, a ...interface{}) {
	printf(w, "Warning: "+format, a...)
}

// newLogger returns a logger writing to the app's error stream, at debug level if requested.
func newLogger(c *cli.Context, name string) logging.Logger {
	level := logging.INFO
	if c.Bool(generalFlagDebug) {
		level = logging.DEBUG
	}
	return logging.NewWriterLogger("inertia", level, c.App.ErrWriter).Sublogger(name)
}

// parseFloats parses a comma separated list of n numbers.
func parseFloats(s string, n ...int) ([]float64, error) {
	parts := lo.Map(strings.Split(s, ","), func(p string, _ int) string { return strings.TrimSpace(p) })
	if !lo.Contains(n, len(parts)) {
		return nil, errors.Errorf("expected %s comma separated numbers, got %q",
			strings.Join(lo.Map(n, func(v, _ int) string { return strconv.Itoa(v) }), " or "), s)
	}
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing %q", s)
		}
		out = append(out, v)
	}
	return out, nil
}

// vectorAttribute parses "x,y,z" into the map form ShapeConfig decodes.
func vectorAttribute(s string) (map[string]interface{}, error) {
	v, err := parseFloats(s, 3)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"x": v[0], "y": v[1], "z": v[2]}, nil
}

// parseTensor parses "ixx,iyy,izz" or "ixx,iyy,izz,ixy,ixz,iyz".
func parseTensor(s string) (inertia.SymmetricTensor[scalar.Float64], error) {
	v, err := parseFloats(s, 3, 6)
	if err != nil {
		return inertia.SymmetricTensor[scalar.Float64]{}, err
	}
	if len(v) == 3 {
		v = append(v, 0, 0, 0)
	}
	f := lo.Map(v, func(x float64, _ int) scalar.Float64 { return scalar.Float64(x) })
	return inertia.NewSymmetricTensor(f[0], f[1], f[2], f[3], f[4], f[5]), nil
}

func formatFloat(v float64) string {
	if v == 0 {
		// no "-0"
		v = 0
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func formatVector(v spatialmath.Vector3[scalar.Float64]) string {
	return fmt.Sprintf("(%s, %s, %s)", formatFloat(v.X.Value()), formatFloat(v.Y.Value()), formatFloat(v.Z.Value()))
}

// printTable prints a rendered table under a title line.
func printTable(w io.Writer, title, rendered string) {
	printf(w, "%s:\n%s", title, rendered)
}

// tensorTable renders the full 3x3 matrix of s.
func tensorTable(s inertia.SymmetricTensor[scalar.Float64]) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"", "x", "y", "z"})
	for i, axis := range []string{"x", "y", "z"} {
		t.AppendRow(table.Row{
			axis,
			formatFloat(s.At(i, 0).Value()),
			formatFloat(s.At(i, 1).Value()),
			formatFloat(s.At(i, 2).Value()),
		})
	}
	return t.Render()
}

// printPrincipal prints the principal moments with their axes, followed by the rotation from the
// tensor's frame to the principal frame as an axis angle in degrees.
func printPrincipal(w io.Writer, d inertia.PrincipalDecomposition[scalar.Float64]) {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Moment", "Axis"})
	for i := 0; i < 3; i++ {
		t.AppendRow(table.Row{i + 1, formatFloat(d.Moments.At(i).Value()), formatVector(d.Axes.Col(i))})
	}
	printTable(w, "principal moments", t.Render())

	aa := spatialmath.QuatToR4AA(d.Axes.Quaternion())
	printf(w, "principal axes rotation: %s° about (%s, %s, %s) (rotation vector %s rad)",
		formatFloat(utils.RadToDeg(aa.Theta)), formatFloat(aa.RX), formatFloat(aa.RY), formatFloat(aa.RZ),
		formatVector(spatialmath.VectorFromR3[scalar.Float64](aa.ToR3())))
}

// equivalentShapeTable renders the half-lengths of a fitted shape with their directions.
func equivalentShapeTable(e inertia.EquivalentShape[scalar.Float64]) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Half-length", "Length", "Axis"})
	lengths := e.Dimensions()
	for i := 0; i < 3; i++ {
		t.AppendRow(table.Row{
			i + 1,
			formatFloat(e.HalfLengths.At(i).Value()),
			formatFloat(lengths.At(i).Value()),
			formatVector(e.Axes.Col(i)),
		})
	}
	return t.Render()
}
