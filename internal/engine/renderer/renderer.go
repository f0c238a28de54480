// Package renderer draws box panel meshes with OpenGL.
package renderer

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/boxfold/internal/engine/lighting"
	"github.com/Faultbox/boxfold/internal/engine/shader"
	"github.com/Faultbox/boxfold/internal/geometry"
	"github.com/Faultbox/boxfold/internal/logger"
	"github.com/Faultbox/boxfold/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	// Color is the cardboard albedo as 0xRRGGBB.
	Color uint32
}

// Highlight selects which half of an overlay quad is emphasised.
type Highlight int32

const (
	HighlightNone Highlight = iota
	HighlightUpper
	HighlightLower
)

// Item is one mesh placed in the world.
type Item struct {
	Mesh  *geometry.Mesh
	Model math.Mat4
	// Overlay items are drawn unlit and translucent after opaque items.
	Overlay   bool
	Highlight Highlight
	// Label is printed across an overlay quad, top row at the quad's top.
	Label *image.RGBA
}

// Frame is everything needed to draw one frame.
type Frame struct {
	View       math.Mat4
	Projection math.Mat4
	// LightRotation orients the light rig; pass the camera orientation to
	// keep lights fixed relative to the viewer.
	LightRotation math.Mat4
	Items         []Item
}

type gpuMesh struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config   Config
	lighting lighting.Rig
	program  *shader.Program
	meshes   map[*geometry.Mesh]*gpuMesh
	labels   map[*image.RGBA]uint32
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config, rig lighting.Rig) (*Renderer, error) {
	if err := rig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid light rig: %w", err)
	}
	r := &Renderer{
		config:   cfg,
		lighting: rig,
		meshes:   make(map[*geometry.Mesh]*gpuMesh),
		labels:   make(map[*image.RGBA]uint32),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	var err error
	r.program, err = shader.Compile(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	logger.Debug("shader program created", zap.Uint32("program", r.program.ID))

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer", zap.Int("meshes", len(r.meshes)))
	for m := range r.meshes {
		r.release(m)
	}
	for img, tex := range r.labels {
		gl.DeleteTextures(1, &tex)
		delete(r.labels, img)
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Begin starts a new frame. State is set every frame because a UI pass
// may share the context.
func (r *Renderer) Begin() {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Disable(gl.CULL_FACE) // panels are double-sided
	gl.Disable(gl.SCISSOR_TEST)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(1, 1, 1, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame.
func (r *Renderer) End() {}

// ReadPixels reads the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	if w <= 0 || h <= 0 {
		return nil, 0, 0
	}
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// Draw uploads any new meshes, frees meshes no longer referenced and draws
// the frame: opaque panels first, then translucent overlays.
func (r *Renderer) Draw(f Frame) {
	r.sync(f.Items)

	p := r.program
	p.Use()
	p.SetMat4("uView", f.View)
	p.SetMat4("uProjection", f.Projection)
	p.SetVec3("uColor", rgb(r.config.Color))
	p.SetFloat("uAmbient", r.lighting.Ambient)
	lights := r.lighting.Oriented(f.LightRotation)
	p.SetInt("uLightCount", int32(len(lights)))
	p.SetVec3Array("uLightPos", lighting.Positions(lights))
	p.SetFloatArray("uLightIntensity", lighting.Intensities(lights))

	p.SetInt("uOverlay", 0)
	for _, it := range f.Items {
		if !it.Overlay {
			r.drawItem(it)
		}
	}

	gl.Enable(gl.BLEND)
	gl.DepthMask(false)
	p.SetInt("uOverlay", 1)
	p.SetInt("uLabel", 0)
	for _, it := range f.Items {
		if it.Overlay {
			p.SetInt("uHighlight", int32(it.Highlight))
			p.SetFloat("uHalfWidth", 0.5*(it.Mesh.Bounds.Max[0]-it.Mesh.Bounds.Min[0]))
			p.SetFloat("uHalfHeight", 0.5*(it.Mesh.Bounds.Max[1]-it.Mesh.Bounds.Min[1]))
			tex := r.labels[it.Label]
			if tex != 0 {
				gl.ActiveTexture(gl.TEXTURE0)
				gl.BindTexture(gl.TEXTURE_2D, tex)
				p.SetInt("uHasLabel", 1)
			} else {
				p.SetInt("uHasLabel", 0)
			}
			r.drawItem(it)
		}
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
	gl.BindVertexArray(0)
}

func (r *Renderer) drawItem(it Item) {
	g := r.meshes[it.Mesh]
	if g == nil || g.indexCount == 0 {
		return
	}
	r.program.SetMat4("uModel", it.Model)
	gl.BindVertexArray(g.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, g.indexCount, gl.UNSIGNED_INT, 0)
}

// sync makes the GPU mesh and label sets match those referenced by items.
// Panel meshes and labels are immutable, so identity is enough to detect a
// rebuild.
func (r *Renderer) sync(items []Item) {
	live := make(map[*geometry.Mesh]bool, len(items))
	liveLabels := make(map[*image.RGBA]bool)
	uploaded := 0
	for _, it := range items {
		if it.Label != nil {
			liveLabels[it.Label] = true
			if _, ok := r.labels[it.Label]; !ok {
				r.labels[it.Label] = uploadLabel(it.Label)
			}
		}
		if it.Mesh == nil {
			continue
		}
		live[it.Mesh] = true
		if _, ok := r.meshes[it.Mesh]; !ok {
			r.meshes[it.Mesh] = upload(it.Mesh)
			uploaded++
		}
	}
	released := 0
	for m := range r.meshes {
		if !live[m] {
			r.release(m)
			released++
		}
	}
	for img, tex := range r.labels {
		if !liveLabels[img] {
			gl.DeleteTextures(1, &tex)
			delete(r.labels, img)
		}
	}
	if uploaded > 0 || released > 0 {
		logger.Debug("meshes synced",
			zap.Int("uploaded", uploaded),
			zap.Int("released", released),
		)
	}
}

func upload(m *geometry.Mesh) *gpuMesh {
	g := &gpuMesh{indexCount: int32(len(m.Indices))}
	if len(m.Vertices) == 0 || len(m.Indices) == 0 {
		return g
	}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	vertexSize := int(unsafe.Sizeof(geometry.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*vertexSize, unsafe.Pointer(&m.Vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	return g
}

// uploadLabel creates a texture from img. Row 0 of img lands at v=0.
func uploadLabel(img *image.RGBA) uint32 {
	b := img.Bounds()
	if b.Empty() {
		return 0
	}
	if img.Stride != 4*b.Dx() {
		img = repack(img)
	}
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

// repack copies img into a tightly packed image with its origin at (0,0).
func repack(img *image.RGBA) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		copy(out.Pix[y*out.Stride:y*out.Stride+4*b.Dx()], img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):])
	}
	return out
}

func (r *Renderer) release(m *geometry.Mesh) {
	g := r.meshes[m]
	delete(r.meshes, m)
	if g == nil {
		return
	}
	if g.ebo != 0 {
		gl.DeleteBuffers(1, &g.ebo)
	}
	if g.vbo != 0 {
		gl.DeleteBuffers(1, &g.vbo)
	}
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
	}
}

func rgb(c uint32) [3]float32 {
	return [3]float32{
		float32(c>>16&0xff) / 255,
		float32(c>>8&0xff) / 255,
		float32(c&0xff) / 255,
	}
}
