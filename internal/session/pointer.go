package session

// clickSlop is how far, in pixels, the pointer may travel between press and
// release and still count as a click.
const clickSlop = 4

// Pointer separates clicks from orbit drags.
type Pointer struct {
	X, Y int

	down     bool
	dragging bool
	pressX   int
	pressY   int
}

// Press records a button press at (x, y).
func (p *Pointer) Press(x, y int) {
	p.X, p.Y = x, y
	p.down = true
	p.dragging = false
	p.pressX, p.pressY = x, y
}

// Move records pointer motion and returns the drag delta, which is zero
// unless a button is held.
func (p *Pointer) Move(x, y int) (dx, dy int) {
	dx, dy = x-p.X, y-p.Y
	p.X, p.Y = x, y
	if !p.down {
		return 0, 0
	}
	if abs(x-p.pressX) > clickSlop || abs(y-p.pressY) > clickSlop {
		p.dragging = true
	}
	return dx, dy
}

// Release ends a press and reports whether it was a click.
func (p *Pointer) Release(x, y int) bool {
	p.Move(x, y)
	click := p.down && !p.dragging
	p.down = false
	p.dragging = false
	return click
}

// Dragging reports whether the held button has moved past the click slop.
func (p *Pointer) Dragging() bool {
	return p.dragging
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
