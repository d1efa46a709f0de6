package cli

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"go.viam.com/inertia/inertia"
)

const (
	// Flags.
	generalFlagDebug = "debug"

	shapeFlagConfig   = "config"
	shapeFlagType     = "type"
	shapeFlagAxis     = "axis"
	shapeFlagOffset   = "offset"
	shapeFlagVertices = "vertices"
	shapeFlagMass     = "mass"
	shapeFlagRotation = "rotation"

	inertiaFlagMoments   = "moments"
	inertiaFlagTolerance = "tolerance"

	fitFlagShape  = "shape"
	fitFlagFactor = "factor"

	fileFlagPath           = "file"
	geometryFlagAboutOrigin = "about-origin"
)

// shapeDimensionFlags are the numeric ShapeConfig attributes, each settable by a flag of the same name.
var shapeDimensionFlags = []string{"x", "y", "z", "r", "l", "j", "k"}

func dimensionFlags() []cli.Flag {
	usage := map[string]string{
		"x": "ellipsoid semi-axis or box side length along x",
		"y": "ellipsoid semi-axis or box side length along y",
		"z": "ellipsoid semi-axis or box side length along z",
		"r": "radius",
		"l": "length",
		"j": "moment about the axis of an axially symmetric shape",
		"k": "moment about any axis perpendicular to the axis of an axially symmetric shape",
	}
	flags := make([]cli.Flag, 0, len(shapeDimensionFlags))
	for _, name := range shapeDimensionFlags {
		flags = append(flags, &cli.Float64Flag{Name: name, Usage: usage[name]})
	}
	return flags
}

var app = &cli.App{
	Name:            "inertia",
	Usage:           "compute and inspect unit inertias of rigid bodies",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    generalFlagDebug,
			Aliases: []string{"vvv"},
			Usage:   "enable debug logging",
		},
	},
	Commands: []*cli.Command{
		{
			Name:  "shape",
			Usage: "compute the unit inertia of a uniform-density shape about its center of mass",
			UsageText: fmt.Sprintf("inertia shape --%s <%s> [dimensions] [other options]",
				shapeFlagType, shapeFlagType),
			Flags: append([]cli.Flag{
				&cli.PathFlag{
					Name:  shapeFlagConfig,
					Usage: "load the shape from a JSON `FILE` instead of flags",
				},
				&cli.StringFlag{
					Name: shapeFlagType,
					Usage: "shape type: point, sphere, hollow_sphere, ellipsoid, box, cylinder, " +
						"cylinder_about_end, capsule, rod, axially_symmetric or tetrahedron",
				},
				&cli.StringFlag{
					Name:  shapeFlagAxis,
					Usage: "unit axis of symmetry as x,y,z",
				},
				&cli.StringFlag{
					Name:  shapeFlagOffset,
					Usage: "position of the center of mass from the reference point as x,y,z",
				},
				&cli.StringFlag{
					Name:  shapeFlagVertices,
					Usage: "tetrahedron vertices as x,y,z;x,y,z;x,y,z;x,y,z",
				},
				&cli.Float64Flag{
					Name:  shapeFlagMass,
					Usage: "also print the rotational inertia for this mass",
				},
				&cli.StringFlag{
					Name:  shapeFlagRotation,
					Usage: "re-express the inertia in a frame rotated by this rotation vector x,y,z in radians",
				},
			}, dimensionFlags()...),
			Action: ShapeAction,
		},
		{
			Name:   "schema",
			Usage:  "print the JSON schema of shape config files",
			Action: SchemaAction,
		},
		{
			Name:      "principal",
			Usage:     "compute the principal moments and axes of an inertia",
			UsageText: fmt.Sprintf("inertia principal --%s ixx,iyy,izz[,ixy,ixz,iyz]", inertiaFlagMoments),
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     inertiaFlagMoments,
					Required: true,
					Usage:    "tensor elements as ixx,iyy,izz or ixx,iyy,izz,ixy,ixz,iyz",
				},
				&cli.Float64Flag{
					Name:  inertiaFlagTolerance,
					Value: inertia.DefaultTolerance,
					Usage: "relative tolerance of the physical validity check",
				},
			},
			Action: PrincipalAction,
		},
		{
			Name:      "fit",
			Usage:     "find the uniform-density shape with the same principal moments as a unit inertia",
			UsageText: fmt.Sprintf("inertia fit --%s ixx,iyy,izz[,ixy,ixz,iyz] [other options]", inertiaFlagMoments),
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     inertiaFlagMoments,
					Required: true,
					Usage:    "unit inertia elements as ixx,iyy,izz or ixx,iyy,izz,ixy,ixz,iyz",
				},
				&cli.StringFlag{
					Name:  fitFlagShape,
					Value: "ellipsoid",
					Usage: "shape to fit: ellipsoid or box",
				},
				&cli.Float64Flag{
					Name:  fitFlagFactor,
					Usage: "shape factor in (0, 1], overrides --" + fitFlagShape,
				},
			},
			Action: FitAction,
		},
		{
			Name:      "geometry",
			Usage:     "compute the unit inertia of a geometry message in millimeters",
			UsageText: fmt.Sprintf("inertia geometry --%s <geometry.json>", fileFlagPath),
			Flags: []cli.Flag{
				&cli.PathFlag{
					Name:     fileFlagPath,
					Required: true,
					Usage:    "JSON encoded geometry message",
				},
				&cli.BoolFlag{
					Name:  geometryFlagAboutOrigin,
					Usage: "shift the inertia to the origin of the geometry's parent frame",
				},
			},
			Action: GeometryAction,
		},
		{
			Name:      "urdf",
			Usage:     "check the declared mass properties of the links in a URDF file",
			UsageText: fmt.Sprintf("inertia urdf --%s <robot.urdf>", fileFlagPath),
			Flags: []cli.Flag{
				&cli.PathFlag{
					Name:     fileFlagPath,
					Required: true,
					Usage:    "URDF file",
				},
				&cli.Float64Flag{
					Name:  inertiaFlagTolerance,
					Value: 1e-6,
					Usage: "relative tolerance of the physical validity check",
				},
			},
			Action: URDFAction,
		},
	},
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app.Writer = out
	app.ErrWriter = errOut
	return app
}
