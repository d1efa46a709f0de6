// Package urdf reads the mass properties of the links in a Universal Robot Description Format file.
package urdf

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/inertia/inertia"
	"go.viam.com/inertia/logging"
	"go.viam.com/inertia/scalar"
	"go.viam.com/inertia/spatialmath"
	"go.viam.com/inertia/utils"
)

// Extension is the file extension associated with URDF files.
const Extension string = "urdf"

// ErrNoModelInformation is returned when the URDF data is empty.
var ErrNoModelInformation = errors.New("no model information")

// ModelConfig represents the fields of a URDF file that carry mass properties.
type ModelConfig struct {
	XMLName xml.Name `xml:"robot"`
	Name    string   `xml:"name,attr"`
	Links   []link   `xml:"link"`
}

// link is a struct which details the XML used in a URDF link element.
type link struct {
	XMLName   xml.Name    `xml:"link"`
	Name      string      `xml:"name,attr"`
	Inertial  *inertial   `xml:"inertial"`
	Collision []collision `xml:"collision"`
}

type inertial struct {
	Origin  *pose         `xml:"origin"`
	Mass    mass          `xml:"mass"`
	Inertia inertiaMatrix `xml:"inertia"`
}

type mass struct {
	Value float64 `xml:"value,attr"`
}

// inertiaMatrix holds the six independent tensor elements; the off-diagonal ones are the tensor's
// elements, not the negated products of inertia.
type inertiaMatrix struct {
	Ixx float64 `xml:"ixx,attr"`
	Ixy float64 `xml:"ixy,attr"`
	Ixz float64 `xml:"ixz,attr"`
	Iyy float64 `xml:"iyy,attr"`
	Iyz float64 `xml:"iyz,attr"`
	Izz float64 `xml:"izz,attr"`
}

// pose is the URDF origin element. Lengths are meters and angles are radians.
type pose struct {
	XYZ string `xml:"xyz,attr"`
	RPY string `xml:"rpy,attr"`
}

// LinkInertia holds the mass properties declared for one link. Lengths are meters and masses are
// whatever unit the file uses, normally kilograms.
type LinkInertia struct {
	Name string
	Mass float64
	// CenterOfMass is the position of the link's center of mass from the link frame's origin.
	CenterOfMass r3.Vector
	// Inertia is the declared rotational inertia about the center of mass, expressed in the link frame.
	Inertia inertia.RotationalInertia[scalar.Float64]
	// Collision is the inertia of the link's first collision geometry, if it has one that can be
	// computed.
	Collision *CollisionInertia
}

// CollisionInertia is the unit inertia of a solid, uniform-density collision geometry.
type CollisionInertia struct {
	Shape string
	// Center is the position of the geometry's center from the link frame's origin.
	Center r3.Vector
	// UnitInertia is about Center and expressed in the link frame.
	UnitInertia inertia.UnitInertia[scalar.Float64]
}

// Validate checks that the link has a positive mass and a physically valid declared inertia.
func (l *LinkInertia) Validate(tolerance float64) error {
	if !(l.Mass > 0) {
		return errors.Wrapf(inertia.ErrInvalidMass, "link %q has mass %g", l.Name, l.Mass)
	}
	if err := l.Inertia.Validate(tolerance); err != nil {
		return errors.Wrapf(err, "link %q", l.Name)
	}
	return nil
}

// UnitInertia returns the declared inertia divided by the link's mass.
func (l *LinkInertia) UnitInertia() (inertia.UnitInertia[scalar.Float64], error) {
	u, err := l.Inertia.DivideByMass(scalar.Float64(l.Mass))
	if err != nil {
		return inertia.UnitInertia[scalar.Float64]{}, errors.Wrapf(err, "link %q", l.Name)
	}
	return u, nil
}

// CollisionEstimate returns the rotational inertia the link would have about its declared center of
// mass if its mass were spread uniformly through its collision geometry. It returns false if the
// link has no usable collision geometry.
func (l *LinkInertia) CollisionEstimate() (inertia.RotationalInertia[scalar.Float64], bool) {
	if l.Collision == nil {
		return inertia.RotationalInertia[scalar.Float64]{}, false
	}
	toCom := spatialmath.VectorFromR3[scalar.Float64](l.CenterOfMass.Sub(l.Collision.Center))
	aboutCom := l.Collision.UnitInertia.ShiftFromCenterOfMass(toCom)
	return aboutCom.MultiplyByMass(scalar.Float64(l.Mass)), true
}

// UnmarshalModelXML decodes the links of a URDF document.
func UnmarshalModelXML(xmlData []byte) (*ModelConfig, error) {
	// empty data probably means that the read URDF has no actionable information
	if len(xmlData) == 0 {
		return nil, ErrNoModelInformation
	}
	urdf := &ModelConfig{}
	if err := xml.Unmarshal(xmlData, urdf); err != nil {
		return nil, errors.Wrap(err, "failed to convert URDF data to equivalent URDFConfig struct")
	}
	return urdf, nil
}

// ParseInertials returns the mass properties of every link in the URDF document that declares an
// inertial element, in document order.
func ParseInertials(xmlData []byte) ([]LinkInertia, error) {
	return parseInertials(xmlData, logging.NewBlankLogger("urdf"))
}

// ParseInertialsFile will read a given file and parse the mass properties of its links. Links that
// are skipped, and collision geometries that cannot be computed, are logged at debug level.
func ParseInertialsFile(filename string, logger logging.Logger) ([]LinkInertia, error) {
	if ext := strings.TrimPrefix(filepath.Ext(filename), "."); !strings.EqualFold(ext, Extension) {
		logger.Warnw("file does not have a URDF extension", "file", filename, "extension", ext)
	}
	//nolint:gosec
	xmlData, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read URDF file")
	}
	return parseInertials(xmlData, logger)
}

func parseInertials(xmlData []byte, logger logging.Logger) ([]LinkInertia, error) {
	urdf, err := UnmarshalModelXML(xmlData)
	if err != nil {
		return nil, err
	}

	links := make([]LinkInertia, 0, len(urdf.Links))
	for _, linkElem := range urdf.Links {
		if linkElem.Inertial == nil {
			logger.Debugw("skipping link without inertial element", "robot", urdf.Name, "link", linkElem.Name)
			continue
		}
		li, err := linkElem.Inertial.toLinkInertia(linkElem.Name)
		if err != nil {
			return nil, err
		}

		if len(linkElem.Collision) > 0 {
			ci, err := linkElem.Collision[0].toCollisionInertia()
			if err != nil {
				return nil, errors.Wrapf(err, "link %q collision", linkElem.Name)
			}
			if ci == nil {
				logger.Debugw("collision geometry has no inertia", "link", linkElem.Name,
					"error", utils.NewUnsupportedShapeError(linkElem.Collision[0].Geometry.kind()))
			}
			li.Collision = ci
		}
		links = append(links, li)
	}
	return links, nil
}

func (in *inertial) toLinkInertia(name string) (LinkInertia, error) {
	center, rotation, err := in.Origin.parse()
	if err != nil {
		return LinkInertia{}, errors.Wrapf(err, "link %q inertial origin", name)
	}
	m := in.Inertia
	declared := inertia.NewRotationalInertia[scalar.Float64](
		scalar.Float64(m.Ixx), scalar.Float64(m.Iyy), scalar.Float64(m.Izz),
		scalar.Float64(m.Ixy), scalar.Float64(m.Ixz), scalar.Float64(m.Iyz),
	)
	return LinkInertia{
		Name:         name,
		Mass:         in.Mass.Value,
		CenterOfMass: center,
		Inertia:      declared.ReExpress(rotation),
	}, nil
}

// parse returns the translation and the rotation whose columns are the origin frame's axes
// expressed in the parent frame. A missing origin is the identity.
func (p *pose) parse() (r3.Vector, spatialmath.Matrix3[scalar.Float64], error) {
	if p == nil {
		return r3.Vector{}, spatialmath.Identity3[scalar.Float64](), nil
	}
	xyz, err := spaceDelimitedStringToFloatSlice(p.XYZ)
	if err != nil {
		return r3.Vector{}, spatialmath.Matrix3[scalar.Float64]{}, errors.Wrap(err, "xyz")
	}
	rpy, err := spaceDelimitedStringToFloatSlice(p.RPY)
	if err != nil {
		return r3.Vector{}, spatialmath.Matrix3[scalar.Float64]{}, errors.Wrap(err, "rpy")
	}
	orientation := &spatialmath.EulerAngles{Roll: rpy[0], Pitch: rpy[1], Yaw: rpy[2]}
	return r3.Vector{X: xyz[0], Y: xyz[1], Z: xyz[2]}, spatialmath.RotationMatrix[scalar.Float64](orientation), nil
}

// spaceDelimitedStringToFloatSlice parses a URDF triple. An empty attribute is all zeros.
func spaceDelimitedStringToFloatSlice(s string) ([]float64, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return []float64{0, 0, 0}, nil
	}
	if len(fields) != 3 {
		return nil, errors.Errorf("expected 3 values, got %q", s)
	}
	out := make([]float64, 0, 3)
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
