package urdf

import (
	"encoding/xml"

	"go.viam.com/inertia/inertia"
	"go.viam.com/inertia/scalar"
	"go.viam.com/inertia/spatialmath"
)

type collision struct {
	XMLName  xml.Name `xml:"collision"`
	Origin   *pose    `xml:"origin"`
	Geometry geometry `xml:"geometry"`
}

type geometry struct {
	Box *struct {
		Size string `xml:"size,attr"`
	} `xml:"box,omitempty"`
	Sphere *struct {
		Radius float64 `xml:"radius,attr"`
	} `xml:"sphere,omitempty"`
	Cylinder *struct {
		Radius float64 `xml:"radius,attr"`
		Length float64 `xml:"length,attr"`
	} `xml:"cylinder,omitempty"`
	Capsule *struct {
		Radius float64 `xml:"radius,attr"`
		Length float64 `xml:"length,attr"`
	} `xml:"capsule,omitempty"`
	Mesh *struct {
		Filename string `xml:"filename,attr"`
	} `xml:"mesh,omitempty"`
}

func (g *geometry) kind() string {
	switch {
	case g.Box != nil:
		return "box"
	case g.Sphere != nil:
		return "sphere"
	case g.Cylinder != nil:
		return "cylinder"
	case g.Capsule != nil:
		return "capsule"
	case g.Mesh != nil:
		return "mesh"
	default:
		return "unknown"
	}
}

// toCollisionInertia returns the unit inertia of the collision geometry, or nil if the geometry is
// a kind whose inertia cannot be computed.
func (c *collision) toCollisionInertia() (*CollisionInertia, error) {
	type f64 = scalar.Float64
	var (
		u   inertia.UnitInertia[f64]
		err error
	)
	// URDF cylinders and capsules are along the z axis of the collision frame
	z := spatialmath.UnitZ[f64]()
	switch g := c.Geometry; {
	case g.Box != nil:
		var size []float64
		size, err = spaceDelimitedStringToFloatSlice(g.Box.Size)
		if err != nil {
			return nil, err
		}
		u, err = inertia.SolidBox(f64(size[0]), f64(size[1]), f64(size[2]))
	case g.Sphere != nil:
		u, err = inertia.SolidSphere(f64(g.Sphere.Radius))
	case g.Cylinder != nil:
		u, err = inertia.SolidCylinder(f64(g.Cylinder.Radius), f64(g.Cylinder.Length), z)
	case g.Capsule != nil:
		u, err = inertia.SolidCapsule(f64(g.Capsule.Radius), f64(g.Capsule.Length), z)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	center, rotation, err := c.Origin.parse()
	if err != nil {
		return nil, err
	}
	return &CollisionInertia{
		Shape:       c.Geometry.kind(),
		Center:      center,
		UnitInertia: u.ReExpress(rotation),
	}, nil
}
