// Package pixel implements the packed 1-bit image format used by dot-matrix LED signs.
//
// Pixels are stored row-major, eight to a byte, with the most significant bit holding the
// leftmost pixel of each 8-pixel group. The types are compatible with Go's native
// [color.Color] and [image.Image] / [draw.Image] interfaces.
package pixel
