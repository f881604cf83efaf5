package wetex

import (
	"bytes"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"

	bmp "github.com/sergeymakinen/go-bmp"
	"golang.org/x/image/tiff"

	webp "github.com/deepteams/webp"
)

// encodeImage re-encodes img into the requested output format. MP4 is not an
// image encoding: it falls to the default case and returns an InvalidData
// error (static textures are rejected earlier, animated ones reach here).
func encodeImage(img image.Image, format OutputFormat, opts *ConvertOptions) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch format {
	case OutputPNG:
		err = png.Encode(&buf, img)
	case OutputJPEG:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: opts.jpegQuality()})
	case OutputGIF:
		err = gif.Encode(&buf, img, nil)
	case OutputBMP:
		err = bmp.Encode(&buf, img)
	case OutputTIFF:
		err = tiff.Encode(&buf, img, nil)
	case OutputWebP:
		err = webp.Encode(&buf, img, nil)
	case OutputTGA:
		err = encodeTGA(&buf, img)
	default:
		return nil, errInvalidData("unsupported output format")
	}
	if err != nil {
		return nil, errImageConversion(err)
	}
	return buf.Bytes(), nil
}

// encodeAnimatedGIF assembles reconstructed frames into an infinitely
// looping animated GIF, per §4.6.
func encodeAnimatedGIF(frames []reconstructedFrame) ([]byte, error) {
	out := &gif.GIF{LoopCount: 0}
	for _, f := range frames {
		paletted := image.NewPaletted(f.Image.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(paletted, f.Image.Bounds(), f.Image, image.Point{})
		out.Image = append(out.Image, paletted)
		out.Delay = append(out.Delay, f.DelayCentiseconds)
		out.Disposal = append(out.Disposal, gif.DisposalBackground)
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, out); err != nil {
		return nil, errImageConversion(err)
	}
	return buf.Bytes(), nil
}

// encodeTGA writes a minimal uncompressed 32-bpp TGA file. No example repo
// in the corpus imports a TGA library (there isn't one that fits a pure-Go
// module without cgo), so this hand-rolled writer follows the same
// byte-by-byte structured-output style the teacher uses for its own binary
// formats rather than reaching for an external dependency that doesn't
// exist in the ecosystem the pack draws from.
func encodeTGA(w *bytes.Buffer, img image.Image) error {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width <= 0 || height <= 0 || width > 0xffff || height > 0xffff {
		return errInvalidData("invalid TGA dimensions")
	}

	header := make([]byte, 18)
	header[2] = 2 // uncompressed true-color
	header[12] = byte(width)
	header[13] = byte(width >> 8)
	header[14] = byte(height)
	header[15] = byte(height >> 8)
	header[16] = 32 // bits per pixel
	// descriptor: 8 alpha bits, bottom-left origin (rows written bottom-up)
	header[17] = 0x08
	w.Write(header)

	// TGA pixel rows are stored bottom-to-top, BGRA order.
	row := make([]byte, width*4)
	for y := b.Max.Y - 1; y >= b.Min.Y; y-- {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			i := (x - b.Min.X) * 4
			row[i+0] = c.B
			row[i+1] = c.G
			row[i+2] = c.R
			row[i+3] = c.A
		}
		w.Write(row)
	}
	return nil
}
