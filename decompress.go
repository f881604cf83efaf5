package wetex

import (
	"image"
	"image/draw"

	"github.com/pierrec/lz4/v4"
	"github.com/woozymasta/bcn"
)

// decompressMipmap mutates m in place per spec §4.4: LZ4-decode the payload
// if flagged, then block-decode BC1/BC3 into RGBA8888. Idempotent — once the
// LZ4 flag is cleared and the format is no longer compressed, a second call
// is a no-op.
func decompressMipmap(m *Mipmap) error {
	if m.IsLZ4Compressed {
		if m.DecompressedSize == 0 {
			m.IsLZ4Compressed = false
		} else {
			out := make([]byte, m.DecompressedSize)
			n, err := lz4.UncompressBlock(m.Bytes, out)
			if err != nil {
				return errLz4Decompression(err)
			}
			m.Bytes = out[:n]
			m.IsLZ4Compressed = false
		}
	}

	if !m.Format.IsCompressed() {
		return nil
	}

	var bcnFormat bcn.Format
	switch m.Format {
	case MipmapCompressedDXT1:
		bcnFormat = bcn.FormatDXT1
	case MipmapCompressedDXT3:
		return errDxtDecompression("BC2 not supported")
	case MipmapCompressedDXT5:
		bcnFormat = bcn.FormatDXT5
	default:
		return errUnsupportedMipmapFormat(m.Format.String())
	}

	decoded, err := bcn.DecodeImage(m.Bytes, int(m.Width), int(m.Height), bcnFormat)
	if err != nil {
		return errDxtDecompression(err.Error())
	}

	nrgba := toNRGBA(decoded, int(m.Width), int(m.Height))
	m.Bytes = nrgba.Pix
	m.Format = MipmapRGBA8888
	return nil
}

// toNRGBA normalizes an arbitrary decoded image into a tightly packed
// *image.NRGBA of exactly width*height*4 bytes, straight (non-premultiplied)
// R,G,B,A per pixel, matching the format's own raw RGBA8888 byte layout.
func toNRGBA(img image.Image, width, height int) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Dx() == width && n.Rect.Dy() == height && n.Stride == width*4 {
		return n
	}
	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}
