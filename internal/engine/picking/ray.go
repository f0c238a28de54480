// Package picking provides ray casting against flat scene quads.
package picking

import (
	gomath "math"

	"github.com/Faultbox/boxfold/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// Quad is a parallelogram Origin + u*U + v*V for u, v in [0,1].
// Origin is the bottom-left corner, so v grows toward the top edge.
type Quad struct {
	Origin math.Vec3
	U      math.Vec3
	V      math.Vec3
}

// Hit describes a ray/quad intersection.
type Hit struct {
	Distance float32
	U, V     float32
	Point    math.Vec3
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates, viewportW/H are viewport dimensions.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) Ray {
	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH // Flip Y

	nearWorld := unproject(invViewProj, ndcX, ndcY, -1)
	farWorld := unproject(invViewProj, ndcX, ndcY, 1)

	return Ray{
		Origin:    nearWorld,
		Direction: farWorld.Sub(nearWorld).Normalize(),
	}
}

func unproject(invViewProj math.Mat4, x, y, z float32) math.Vec3 {
	p := invViewProj.MulVec4(math.Vec4{x, y, z, 1})
	if p[3] != 0 {
		p[0] /= p[3]
		p[1] /= p[3]
		p[2] /= p[3]
	}
	return math.Vec3{X: p[0], Y: p[1], Z: p[2]}
}

// IntersectQuad tests the ray against a quad, hitting either face.
func (r Ray) IntersectQuad(q Quad) (Hit, bool) {
	normal := q.U.Cross(q.V)
	denom := normal.Dot(r.Direction)
	if gomath.Abs(float64(denom)) < 1e-6 {
		return Hit{}, false // Ray parallel to plane
	}

	t := normal.Dot(q.Origin.Sub(r.Origin)) / denom
	if t < 0 {
		return Hit{}, false // Intersection behind ray origin
	}

	point := r.Origin.Add(r.Direction.Scale(t))
	rel := point.Sub(q.Origin)

	// Solve rel = u*U + v*V in the quad's plane.
	uu, uv, vv := q.U.Dot(q.U), q.U.Dot(q.V), q.V.Dot(q.V)
	ru, rv := rel.Dot(q.U), rel.Dot(q.V)
	det := uu*vv - uv*uv
	if det == 0 {
		return Hit{}, false
	}
	u := (ru*vv - rv*uv) / det
	v := (rv*uu - ru*uv) / det
	if u < 0 || u > 1 || v < 0 || v > 1 {
		return Hit{}, false
	}

	return Hit{Distance: t, U: u, V: v, Point: point}, true
}
