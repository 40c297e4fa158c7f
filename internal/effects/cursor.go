package effects

import (
	"fmt"
	"html/template"
	"strconv"
)

// Cursor is the decorative dot that follows the pointer. Every move
// repositions it; nothing is throttled.
type Cursor struct {
	X, Y float64
}

func (c *Cursor) Move(x, y float64) {
	c.X, c.Y = x, y
}

// Style centers the dot on the pointer.
func (c Cursor) Style() template.CSS {
	return template.CSS(fmt.Sprintf("left:%spx;top:%spx;transform:translate(-50%%,-50%%)", px(c.X), px(c.Y)))
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
