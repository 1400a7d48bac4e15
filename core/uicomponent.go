package core

import "github.com/ionut-t/gotext/internal/log"

// UIComponent is a rectangular part of the screen that redraws itself only
// when its content changed.
type UIComponent interface {
	SetNeedsRedraw(value bool)
	NeedsRedraw() bool
	Resize(size Size)
	Render(term Terminal, originRow int)
}

// component holds the redraw bookkeeping shared by every UIComponent.
// Embedders provide draw and may hook setSize.
type component struct {
	needsRedraw bool
	size        Size
	name        string
	draw        func(term Terminal, originRow int) error
	setSize     func(size Size)
}

func (c *component) SetNeedsRedraw(value bool) {
	c.needsRedraw = value
}

func (c *component) NeedsRedraw() bool {
	return c.needsRedraw
}

func (c *component) Size() Size {
	return c.size
}

// Resize updates the size and requests a redraw.
func (c *component) Resize(size Size) {
	c.size = size
	if c.setSize != nil {
		c.setSize(size)
	}
	c.SetNeedsRedraw(true)
}

// Render draws the component if needed. A failed draw keeps the redraw
// flag so the next render retries.
func (c *component) Render(term Terminal, originRow int) {
	if !c.needsRedraw || c.draw == nil {
		return
	}
	if err := c.draw(term, originRow); err != nil {
		log.ErrorErr(log.CatView, "could not render component", err, "component", c.name)
		return
	}
	c.needsRedraw = false
}
