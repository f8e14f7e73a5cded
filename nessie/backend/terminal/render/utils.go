package render

import "github.com/valerio/go-nessie/nessie/video"

// HalfBlock is drawn with the top pixel as foreground and the bottom pixel as
// background, packing two rows into one terminal cell.
const HalfBlock = '▀'

// Average blends a block of pixels into one colour.
func Average(frame *video.FrameBuffer, x, y, w, h uint) video.Color {
	var r, g, b, n uint
	for dy := uint(0); dy < h && y+dy < frame.Height(); dy++ {
		for dx := uint(0); dx < w && x+dx < frame.Width(); dx++ {
			p := frame.GetPixel(x+dx, y+dy)
			r += uint(p>>16) & 0xFF
			g += uint(p>>8) & 0xFF
			b += uint(p) & 0xFF
			n++
		}
	}
	if n == 0 {
		return video.BlackColor
	}
	return video.Color((r/n)<<16 | (g/n)<<8 | b/n)
}
