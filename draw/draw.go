// Package draw implements the drawing primitives used to compose sign content.
//
// Every primitive writes through [Image.Set], so the destination image is responsible for
// rejecting pixels outside its bounds.
package draw

import (
	"image/draw"
)

// Image is an alias for [image/draw.Image].
type Image = draw.Image
