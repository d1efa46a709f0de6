package inertia

import (
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/golang/geo/r3"
	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"

	"go.viam.com/inertia/scalar"
	"go.viam.com/inertia/spatialmath"
)

// ShapeType names a shape constructor in a ShapeConfig.
type ShapeType string

// The shape types a ShapeConfig can describe.
const (
	PointType            = ShapeType("point")
	SphereType           = ShapeType("sphere")
	HollowSphereType     = ShapeType("hollow_sphere")
	EllipsoidType        = ShapeType("ellipsoid")
	BoxType              = ShapeType("box")
	CylinderType         = ShapeType("cylinder")
	CylinderAboutEndType = ShapeType("cylinder_about_end")
	CapsuleType          = ShapeType("capsule")
	RodType              = ShapeType("rod")
	AxiallySymmetricType = ShapeType("axially_symmetric")
	TetrahedronType      = ShapeType("tetrahedron")
)

// ShapeConfig describes a shape whose unit inertia can be computed. Which fields are used depends
// on Type:
//   - point: Offset is the particle position
//   - sphere, hollow_sphere: R
//   - ellipsoid: X, Y, Z are the semi-axes
//   - box: X, Y, Z are the side lengths
//   - cylinder, capsule: R, L, Axis (defaults to z)
//   - cylinder_about_end: R, L
//   - rod: L, Axis
//   - axially_symmetric: J, K, Axis
//   - tetrahedron: Vertices, exactly four
//
// For every type but point and tetrahedron, a non-nil Offset is the position of the shape's center
// of mass from the point the inertia is wanted about.
type ShapeConfig struct {
	Type     ShapeType   `json:"type"`
	X        float64     `json:"x,omitempty"`
	Y        float64     `json:"y,omitempty"`
	Z        float64     `json:"z,omitempty"`
	R        float64     `json:"r,omitempty"`
	L        float64     `json:"l,omitempty"`
	J        float64     `json:"j,omitempty"`
	K        float64     `json:"k,omitempty"`
	Axis     *r3.Vector  `json:"axis,omitempty"`
	Offset   *r3.Vector  `json:"offset,omitempty"`
	Vertices []r3.Vector `json:"vertices,omitempty"`
}

// NewShapeConfig decodes a shape description from an attribute map, such as one read from JSON.
// Unknown attributes are an error.
func NewShapeConfig(attributes map[string]interface{}) (*ShapeConfig, error) {
	cfg := &ShapeConfig{}
	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:  "json",
		Result:   cfg,
		Metadata: &md,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(attributes); err != nil {
		return nil, errors.Wrap(err, "failed to decode shape attributes")
	}
	if len(md.Unused) > 0 {
		sort.Strings(md.Unused)
		return nil, errors.Errorf("unknown shape attributes: %s", strings.Join(md.Unused, ", "))
	}
	return cfg, nil
}

// ShapeConfigSchema returns the JSON schema of the documents NewShapeConfig accepts.
func ShapeConfigSchema() *jsonschema.Schema {
	return jsonschema.Reflect(&ShapeConfig{})
}

// Validate ensures all parts of the config are valid.
func (cfg *ShapeConfig) Validate(path string) error {
	switch cfg.Type {
	case PointType:
		if cfg.Offset == nil {
			return errors.Errorf("%s: point shape requires an offset", path)
		}
	case TetrahedronType:
		if len(cfg.Vertices) != 4 {
			return errors.Errorf("%s: tetrahedron requires 4 vertices, got %d", path, len(cfg.Vertices))
		}
	case RodType, AxiallySymmetricType:
		if cfg.Axis == nil {
			return errors.Errorf("%s: %s shape requires an axis", path, cfg.Type)
		}
	case SphereType, HollowSphereType, EllipsoidType, BoxType, CylinderType, CylinderAboutEndType, CapsuleType:
	case "":
		return errors.Errorf("%s: shape type is required", path)
	default:
		return errors.Errorf("%s: unknown shape type %q", path, cfg.Type)
	}
	return nil
}

func (cfg *ShapeConfig) axis() spatialmath.Vector3[scalar.Float64] {
	if cfg.Axis == nil {
		return spatialmath.UnitZ[scalar.Float64]()
	}
	return spatialmath.VectorFromR3[scalar.Float64](*cfg.Axis)
}

// UnitInertia computes the unit inertia the config describes.
func (cfg *ShapeConfig) UnitInertia() (UnitInertia[scalar.Float64], error) {
	if err := cfg.Validate("shape"); err != nil {
		return UnitInertia[scalar.Float64]{}, err
	}
	type f64 = scalar.Float64
	x, y, z := f64(cfg.X), f64(cfg.Y), f64(cfg.Z)
	r, l := f64(cfg.R), f64(cfg.L)

	var (
		u   UnitInertia[f64]
		err error
	)
	switch cfg.Type {
	case PointType:
		return PointMass(spatialmath.VectorFromR3[f64](*cfg.Offset)), nil
	case TetrahedronType:
		v := make([]spatialmath.Vector3[f64], 0, len(cfg.Vertices))
		for _, vertex := range cfg.Vertices {
			v = append(v, spatialmath.VectorFromR3[f64](vertex))
		}
		return SolidTetrahedronAboutPoint(v[0], v[1], v[2], v[3]), nil
	case SphereType:
		u, err = SolidSphere(r)
	case HollowSphereType:
		u, err = HollowSphere(r)
	case EllipsoidType:
		u, err = SolidEllipsoid(x, y, z)
	case BoxType:
		u, err = SolidBox(x, y, z)
	case CylinderType:
		u, err = SolidCylinder(r, l, cfg.axis())
	case CylinderAboutEndType:
		u, err = SolidCylinderAboutEnd(r, l)
	case CapsuleType:
		u, err = SolidCapsule(r, l, cfg.axis())
	case RodType:
		u, err = ThinRod(l, cfg.axis())
	case AxiallySymmetricType:
		u, err = AxiallySymmetric(f64(cfg.J), f64(cfg.K), cfg.axis())
	}
	if err != nil {
		return UnitInertia[f64]{}, err
	}
	if cfg.Offset != nil {
		u = u.ShiftFromCenterOfMass(spatialmath.VectorFromR3[f64](*cfg.Offset).Neg())
	}
	return u, nil
}
