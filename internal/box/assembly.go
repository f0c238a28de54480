package box

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/boxfold/internal/geometry"
	"github.com/Faultbox/boxfold/internal/logger"
	"github.com/Faultbox/boxfold/pkg/math"
)

// Node is a transform in the box scene graph. Rotation is XYZ Euler radians.
type Node struct {
	Name     string
	Position math.Vec3
	Rotation math.Vec3
	Mesh     *geometry.Mesh

	parent   *Node
	children []*Node
}

func newNode(name string) *Node {
	return &Node{Name: name}
}

func (n *Node) add(children ...*Node) {
	for _, c := range children {
		c.parent = n
		n.children = append(n.children, c)
	}
}

// Parent returns the parent node, or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the direct children.
func (n *Node) Children() []*Node {
	return n.children
}

// LocalMatrix returns the node transform relative to its parent.
func (n *Node) LocalMatrix() math.Mat4 {
	return math.Compose(n.Position, n.Rotation)
}

// WorldMatrix returns the node transform relative to the root's parent space.
func (n *Node) WorldMatrix() math.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul(m)
	}
	return m
}

// Walk visits n and its descendants depth-first with their world matrices.
func (n *Node) Walk(fn func(node *Node, world math.Mat4)) {
	n.walk(math.Identity(), fn)
}

func (n *Node) walk(parent math.Mat4, fn func(*Node, math.Mat4)) {
	world := parent.Mul(n.LocalMatrix())
	fn(n, world)
	for _, c := range n.children {
		c.walk(world, fn)
	}
}

// Key addresses one panel node.
type Key struct {
	Half Half
	Axis Axis
	Part Part
}

func (k Key) String() string {
	return fmt.Sprintf("%sHalf.%s.%s", k.Half, k.Axis, k.Part)
}

func (k Key) valid() bool {
	return k.Half >= Back && k.Half <= Front &&
		k.Axis >= Length && k.Axis <= Width &&
		k.Part >= Top && k.Part <= Bottom
}

// Keys returns all twelve panel keys in table order.
func Keys() []Key {
	keys := make([]Key, 0, 12)
	for _, h := range Halves {
		for _, a := range Axes {
			for _, p := range Parts {
				keys = append(keys, Key{h, a, p})
			}
		}
	}
	return keys
}

// Assembly is the box scene graph: root, two halves, two side groups per
// half and a top and bottom flap per side. The tree shape never changes;
// Rebuild replaces meshes and Apply replaces transforms.
type Assembly struct {
	root    *Node
	halves  [2]*Node
	nodes   [2][2][3]*Node
	overlay *Overlay

	params Params
	state  State
	built  bool
	log    *zap.Logger
}

// New creates an empty assembly. Call Rebuild before rendering.
func New(overlay OverlayConfig) *Assembly {
	a := &Assembly{
		root: newNode("box"),
		log:  logger.Named("box"),
	}
	for _, h := range Halves {
		half := newNode(h.String() + "Half")
		a.halves[h] = half
		a.root.add(half)
		for _, ax := range Axes {
			var panels [3]*Node
			for _, p := range Parts {
				panels[p] = newNode(Key{h, ax, p}.String())
			}
			side := panels[Side]
			side.add(panels[Top], panels[Bottom])
			half.add(side)
			a.nodes[h][ax] = panels
		}
	}
	a.overlay = newOverlay(overlay)
	a.root.add(a.overlay.node)
	return a
}

// Rebuild regenerates all twelve panel meshes for p. On error nothing is
// attached and the previous meshes and params stay in place.
func (a *Assembly) Rebuild(p Params) error {
	var built [2][2]PanelSet
	for _, h := range Halves {
		for _, ax := range Axes {
			set, err := BuildPanels(p, ax)
			if err != nil {
				a.log.Error("rebuild rejected", zap.Error(err))
				return fmt.Errorf("rebuild %s half: %w", h, err)
			}
			built[h][ax] = set
		}
	}

	vertices := 0
	for _, h := range Halves {
		for _, ax := range Axes {
			for _, part := range Parts {
				n := a.nodes[h][ax][part]
				n.Mesh = built[h][ax].Mesh(part)
				vertices += n.Mesh.VertexCount()
			}
			a.nodes[h][ax][Top].Position = math.Vec3{Y: float32(0.5 * p.Depth)}
			a.nodes[h][ax][Bottom].Position = math.Vec3{Y: float32(-0.5 * p.Depth)}
		}
	}
	a.params = p
	a.built = true
	a.applyTransforms()

	a.log.Info("box rebuilt",
		zap.Float64("width", p.Width),
		zap.Float64("length", p.Length),
		zap.Float64("depth", p.Depth),
		zap.Float64("thickness", p.Thickness),
		zap.Float64("fluteFrequency", p.FluteFrequency),
		zap.Int("vertices", vertices),
	)
	return nil
}

// ApplyAnimation poses the box for progress and returns the pose used.
func (a *Assembly) ApplyAnimation(progress float64) State {
	s := Evaluate(progress)
	a.Apply(s)
	return s
}

// Apply sets every node transform from s. The result depends only on s and
// the current params.
func (a *Assembly) Apply(s State) {
	a.state = s
	a.applyTransforms()
}

// Root returns the scene root.
func (a *Assembly) Root() *Node {
	return a.root
}

// Node returns the panel node for k. It panics on a key outside the table.
func (a *Assembly) Node(k Key) *Node {
	if !k.valid() {
		panic(fmt.Sprintf("box: invalid node key %+v", k))
	}
	return a.nodes[k.Half][k.Axis][k.Part]
}

// Params returns the params of the last successful rebuild.
func (a *Assembly) Params() Params {
	return a.params
}

// State returns the last applied pose.
func (a *Assembly) State() State {
	return a.state
}

// Built reports whether Rebuild has succeeded at least once.
func (a *Assembly) Built() bool {
	return a.built
}

// Meshes returns the twelve panel meshes in Keys order, or nil before the
// first successful rebuild.
func (a *Assembly) Meshes() []*geometry.Mesh {
	if !a.built {
		return nil
	}
	meshes := make([]*geometry.Mesh, 0, 12)
	for _, k := range Keys() {
		meshes = append(meshes, a.Node(k).Mesh)
	}
	return meshes
}

// Overlay returns the copyright overlay.
func (a *Assembly) Overlay() *Overlay {
	return a.overlay
}
