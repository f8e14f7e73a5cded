package video

import (
	"image"
	"image/color"
)

const (
	FramebufferWidth  = 256
	FramebufferHeight = 240
)

// Color is a packed 0xRRGGBB value.
type Color uint32

const BlackColor Color = 0x000000

// RGBA unpacks the color with full alpha.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: 0xFF}
}

type FrameBuffer struct {
	width  uint
	height uint
	buffer []uint32
}

// NewFrameBuffer creates a frame buffer with the specified size.
func NewFrameBuffer(width, height uint) *FrameBuffer {
	return &FrameBuffer{
		width:  width,
		height: height,
		buffer: make([]uint32, width*height),
	}
}

// NewScreenBuffer creates a frame buffer sized to the visible picture.
func NewScreenBuffer() *FrameBuffer {
	return NewFrameBuffer(FramebufferWidth, FramebufferHeight)
}

func (fb *FrameBuffer) Width() uint  { return fb.width }
func (fb *FrameBuffer) Height() uint { return fb.height }

func (fb *FrameBuffer) GetPixel(x, y uint) uint32 {
	return fb.buffer[y*fb.width+x]
}

func (fb *FrameBuffer) SetPixel(x, y uint, color Color) {
	fb.buffer[y*fb.width+x] = uint32(color)
}

// Fill paints every pixel with color.
func (fb *FrameBuffer) Fill(color Color) {
	for i := range fb.buffer {
		fb.buffer[i] = uint32(color)
	}
}

func (fb *FrameBuffer) ToSlice() []uint32 {
	return fb.buffer
}

// Clone returns an independent copy, frames leave the PPU context as copies.
func (fb *FrameBuffer) Clone() *FrameBuffer {
	out := NewFrameBuffer(fb.width, fb.height)
	copy(out.buffer, fb.buffer)
	return out
}

// ToImage converts the buffer to an RGBA image.
func (fb *FrameBuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, int(fb.width), int(fb.height)))
	for y := uint(0); y < fb.height; y++ {
		for x := uint(0); x < fb.width; x++ {
			img.SetRGBA(int(x), int(y), Color(fb.GetPixel(x, y)).RGBA())
		}
	}
	return img
}
