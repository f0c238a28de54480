package box

import (
	"strings"

	"github.com/Faultbox/boxfold/internal/engine/picking"
	"github.com/Faultbox/boxfold/internal/geometry"
	"github.com/Faultbox/boxfold/pkg/math"
)

// OverlayConfig sizes the copyright plate and names its two links.
type OverlayConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	EmailURL     string  `yaml:"email_url"`
	InstagramURL string  `yaml:"instagram_url"`
}

// DefaultOverlayConfig returns the stock copyright plate.
func DefaultOverlayConfig() OverlayConfig {
	return OverlayConfig{
		Width:        27,
		Height:       10,
		EmailURL:     "mailto:studio@okayokay.com",
		InstagramURL: "https://instagram.com/okayokay",
	}
}

// Link identifies which half of the overlay was hit.
type Link int

const (
	LinkNone Link = iota
	LinkEmail
	LinkInstagram
)

func (l Link) String() string {
	switch l {
	case LinkEmail:
		return "email"
	case LinkInstagram:
		return "instagram"
	default:
		return "none"
	}
}

// Overlay is the clickable copyright plate. It rides along the lower right
// corner of the front length side, one thickness in front of it.
type Overlay struct {
	cfg  OverlayConfig
	node *Node
}

func newOverlay(cfg OverlayConfig) *Overlay {
	n := newNode("copyright")
	n.Mesh = geometry.NewQuad(float32(cfg.Width), float32(cfg.Height))
	return &Overlay{cfg: cfg, node: n}
}

func (o *Overlay) place(side math.Vec3, p Params) {
	o.node.Position = side.Add(math.Vec3{
		X: float32(0.5*p.Length - 0.5*o.cfg.Width),
		Y: float32(-0.5 * (p.Depth - o.cfg.Height)),
		Z: float32(p.Thickness),
	})
}

// Node returns the overlay's scene node.
func (o *Overlay) Node() *Node {
	return o.node
}

// Config returns the overlay configuration.
func (o *Overlay) Config() OverlayConfig {
	return o.cfg
}

// Quad returns the overlay rectangle in world space, origin at the lower
// left corner.
func (o *Overlay) Quad() picking.Quad {
	world := o.node.WorldMatrix()
	hw, hh := float32(0.5*o.cfg.Width), float32(0.5*o.cfg.Height)
	origin := world.TransformVec3(math.Vec3{X: -hw, Y: -hh})
	right := world.TransformVec3(math.Vec3{X: hw, Y: -hh})
	top := world.TransformVec3(math.Vec3{X: -hw, Y: hh})
	return picking.Quad{
		Origin: origin,
		U:      right.Sub(origin),
		V:      top.Sub(origin),
	}
}

// HitTest returns the link under ray: the upper half is the email link,
// the lower half the Instagram link.
func (o *Overlay) HitTest(ray picking.Ray) Link {
	hit, ok := ray.IntersectQuad(o.Quad())
	if !ok {
		return LinkNone
	}
	if hit.V > 0.5 {
		return LinkEmail
	}
	return LinkInstagram
}

// URL returns the target of l, or "" for LinkNone.
func (o *Overlay) URL(l Link) string {
	switch l {
	case LinkEmail:
		return o.cfg.EmailURL
	case LinkInstagram:
		return o.cfg.InstagramURL
	}
	return ""
}

// Lines returns the text printed on the plate, email above Instagram, with
// the URL schemes dropped.
func (o *Overlay) Lines() []string {
	return []string{displayURL(o.cfg.EmailURL), displayURL(o.cfg.InstagramURL)}
}

func displayURL(url string) string {
	for _, scheme := range []string{"mailto:", "https://", "http://"} {
		if rest, ok := strings.CutPrefix(url, scheme); ok {
			return rest
		}
	}
	return url
}
