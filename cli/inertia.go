package cli

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
	commonpb "go.viam.com/api/common/v1"
	"google.golang.org/protobuf/encoding/protojson"

	"go.viam.com/inertia/inertia"
	"go.viam.com/inertia/scalar"
	"go.viam.com/inertia/spatialmath"
	"go.viam.com/inertia/urdf"
	"go.viam.com/inertia/utils"
)

// ShapeAction is the corresponding Action for 'shape'.
func ShapeAction(c *cli.Context) error {
	logger := newLogger(c, "shape")
	attributes, err := shapeAttributes(c)
	if err != nil {
		return err
	}
	logger.Debugw("shape attributes", "attributes", attributes)

	cfg, err := inertia.NewShapeConfig(attributes)
	if err != nil {
		return err
	}
	u, err := cfg.UnitInertia()
	if err != nil {
		return err
	}
	if c.IsSet(shapeFlagRotation) {
		v, err := parseFloats(c.String(shapeFlagRotation), 3)
		if err != nil {
			return errors.Wrapf(err, "--%s", shapeFlagRotation)
		}
		rotation := spatialmath.R3ToR4(r3.Vector{X: v[0], Y: v[1], Z: v[2]})
		logger.Debugw("re-expressing", "rotation", rotation)
		u = u.ReExpress(spatialmath.RotationMatrix[scalar.Float64](rotation))
	}

	printTable(c.App.Writer, "unit inertia", tensorTable(u.Tensor()))
	if c.IsSet(shapeFlagMass) {
		ri := u.MultiplyByMass(scalar.Float64(c.Float64(shapeFlagMass)))
		printTable(c.App.Writer, "rotational inertia", tensorTable(ri.SymmetricTensor))
	}
	printPrincipal(c.App.Writer, u.PrincipalMomentsAndAxes())
	return nil
}

// shapeAttributes builds the attribute map for a ShapeConfig, from the config file if one is given
// and from the command's flags otherwise.
func shapeAttributes(c *cli.Context) (map[string]interface{}, error) {
	if path := c.Path(shapeFlagConfig); path != "" {
		//nolint:gosec
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read shape config")
		}
		var raw interface{}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrapf(err, "failed to parse shape config %q", path)
		}
		attributes, ok := raw.(map[string]interface{})
		if !ok {
			return nil, utils.NewUnexpectedTypeError(attributes, raw)
		}
		return attributes, nil
	}

	if !c.IsSet(shapeFlagType) {
		return nil, errors.Errorf("either --%s or --%s is required", shapeFlagType, shapeFlagConfig)
	}
	attributes := map[string]interface{}{"type": c.String(shapeFlagType)}
	for _, name := range shapeDimensionFlags {
		if c.IsSet(name) {
			attributes[name] = c.Float64(name)
		}
	}
	for _, name := range []string{shapeFlagAxis, shapeFlagOffset} {
		if !c.IsSet(name) {
			continue
		}
		v, err := vectorAttribute(c.String(name))
		if err != nil {
			return nil, errors.Wrapf(err, "--%s", name)
		}
		attributes[name] = v
	}
	if c.IsSet(shapeFlagVertices) {
		vertices := make([]interface{}, 0, 4)
		for _, s := range strings.Split(c.String(shapeFlagVertices), ";") {
			v, err := vectorAttribute(s)
			if err != nil {
				return nil, errors.Wrapf(err, "--%s", shapeFlagVertices)
			}
			vertices = append(vertices, v)
		}
		attributes[shapeFlagVertices] = vertices
	}
	return attributes, nil
}

// SchemaAction is the corresponding Action for 'schema'.
func SchemaAction(c *cli.Context) error {
	out, err := json.MarshalIndent(inertia.ShapeConfigSchema(), "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode shape config schema")
	}
	printf(c.App.Writer, "%s", out)
	return nil
}

// PrincipalAction is the corresponding Action for 'principal'.
func PrincipalAction(c *cli.Context) error {
	s, err := parseTensor(c.String(inertiaFlagMoments))
	if err != nil {
		return err
	}
	if err := s.Validate(c.Float64(inertiaFlagTolerance)); err != nil {
		warningf(c.App.ErrWriter, "%v", err)
	}
	printPrincipal(c.App.Writer, s.PrincipalMomentsAndAxes())
	return nil
}

// FitAction is the corresponding Action for 'fit'.
func FitAction(c *cli.Context) error {
	logger := newLogger(c, "fit")
	s, err := parseTensor(c.String(inertiaFlagMoments))
	if err != nil {
		return err
	}

	var factor float64
	title := "equivalent solid " + c.String(fitFlagShape)
	switch {
	case c.IsSet(fitFlagFactor):
		factor = c.Float64(fitFlagFactor)
		title = "equivalent shape"
	case c.String(fitFlagShape) == "ellipsoid":
		factor = inertia.SolidEllipsoidShapeFactor
	case c.String(fitFlagShape) == "box":
		factor = inertia.SolidBoxShapeFactor
	default:
		return utils.NewUnsupportedShapeError(c.String(fitFlagShape))
	}
	if err := s.Validate(inertia.DefaultTolerance); err != nil {
		warningf(c.App.ErrWriter, "fitting an inertia that is not physically valid: %v", err)
	}

	d := s.PrincipalMomentsAndAxes()
	logger.Debugw("principal moments", "moments", d.Moments.String(), "factor", factor)
	shape, err := d.EquivalentShape(factor)
	if err != nil {
		return err
	}
	printTable(c.App.Writer, title, equivalentShapeTable(shape))
	return nil
}

// GeometryAction is the corresponding Action for 'geometry'.
func GeometryAction(c *cli.Context) error {
	path := c.Path(fileFlagPath)
	//nolint:gosec
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read geometry")
	}
	geometry := &commonpb.Geometry{}
	if err := protojson.Unmarshal(data, geometry); err != nil {
		return errors.Wrapf(err, "failed to parse geometry %q", path)
	}

	g, err := inertia.UnitInertiaFromGeometryProto(geometry)
	if err != nil {
		return err
	}
	u := g.Inertia
	title := "unit inertia about the geometry center (mm²)"
	if c.Bool(geometryFlagAboutOrigin) {
		u = g.AboutOrigin()
		title = "unit inertia about the parent frame origin (mm²)"
	}
	if g.Label != "" {
		title = g.Label + ": " + title
	}
	printTable(c.App.Writer, title, tensorTable(u.Tensor()))
	mmSquaredToMetersSquared := utils.Square(utils.MMToMeters(1))
	printTable(c.App.Writer, "in m²", tensorTable(u.Scale(mmSquaredToMetersSquared)))
	return nil
}

// URDFAction is the corresponding Action for 'urdf'.
func URDFAction(c *cli.Context) error {
	logger := newLogger(c, "urdf")
	links, err := urdf.ParseInertialsFile(c.Path(fileFlagPath), logger)
	if err != nil {
		return err
	}
	if len(links) == 0 {
		infof(c.App.Writer, "no links with mass properties in %s", c.Path(fileFlagPath))
		return nil
	}

	tolerance := c.Float64(inertiaFlagTolerance)
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Link", "Mass", "COM (mm)", "Ixx", "Iyy", "Izz", "Ixy", "Ixz", "Iyz", "Valid", "Collision"})
	for _, l := range links {
		valid := "yes"
		if err := l.Validate(tolerance); err != nil {
			valid = "no"
			warningf(c.App.ErrWriter, "%v", err)
		}
		collision := ""
		if l.Collision != nil {
			collision = l.Collision.Shape
		}
		moments, products := l.Inertia.Moments(), l.Inertia.Products()
		t.AppendRow(table.Row{
			l.Name,
			formatFloat(l.Mass),
			strings.Join(lo.Map([]float64{l.CenterOfMass.X, l.CenterOfMass.Y, l.CenterOfMass.Z},
				func(v float64, _ int) string { return formatFloat(utils.MetersToMM(v)) }), ", "),
			formatFloat(moments.X.Value()), formatFloat(moments.Y.Value()), formatFloat(moments.Z.Value()),
			formatFloat(products.X.Value()), formatFloat(products.Y.Value()), formatFloat(products.Z.Value()),
			valid,
			collision,
		})
	}
	printf(c.App.Writer, "%s", t.Render())
	totalMass, err := stats.Sum(lo.Map(links, func(l urdf.LinkInertia, _ int) float64 { return l.Mass }))
	if err != nil {
		return err
	}
	infof(c.App.Writer, "total mass of %d links: %s", len(links), formatFloat(totalMass))
	withCollision := lo.CountBy(links, func(l urdf.LinkInertia) bool { return l.Collision != nil })
	infof(c.App.Writer, "%s of %d links have collision geometry with a computable inertia",
		lo.Ternary(withCollision == len(links), "all", strconv.Itoa(withCollision)), len(links))

	for _, l := range links {
		estimate, ok := l.CollisionEstimate()
		if !ok {
			continue
		}
		logger.Debugw("uniform density estimate from collision geometry",
			"link", l.Name, "shape", l.Collision.Shape, "inertia", estimate.String())
	}
	return nil
}
