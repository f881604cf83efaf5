package wetex

import (
	"bytes"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "github.com/sergeymakinen/go-bmp"
	_ "golang.org/x/image/tiff"
)

// ConvertOptions configures Convert's re-encode step.
type ConvertOptions struct {
	// JPEGQuality is capped at 100; zero or a negative value selects the
	// default of 90.
	JPEGQuality int
}

func (o *ConvertOptions) jpegQuality() int {
	if o == nil || o.JPEGQuality <= 0 {
		return 90
	}
	if o.JPEGQuality > 100 {
		return 100
	}
	return o.JPEGQuality
}

// RecommendedFormat implements §4.5's recommended_format: MP4 for video
// textures, GIF for animated textures, PNG otherwise.
func RecommendedFormat(tex *Texture) OutputFormat {
	switch {
	case tex.IsVideo():
		return OutputMP4
	case tex.IsAnimated():
		return OutputGIF
	default:
		return OutputPNG
	}
}

// Convert dispatches on the texture's kind (video / animated / static) and
// produces encoded bytes in the requested format, returning the format
// actually used (which can differ from the request only via error paths —
// on success the returned format always equals the one requested).
func Convert(tex *Texture, format OutputFormat, opts *ConvertOptions) ([]byte, OutputFormat, error) {
	switch {
	case tex.IsVideo():
		return convertVideo(tex, format)
	case tex.IsAnimated():
		return convertAnimated(tex, format, opts)
	default:
		return convertStatic(tex, format, opts)
	}
}

func convertVideo(tex *Texture, format OutputFormat) ([]byte, OutputFormat, error) {
	img, ok := tex.FirstImage()
	if !ok {
		return nil, 0, errInvalidData("video texture has no images")
	}
	mip, ok := img.FirstMipmap()
	if !ok {
		return nil, 0, errInvalidData("video texture has no mipmaps")
	}
	if len(mip.Bytes) < 8 || string(mip.Bytes[4:8]) != "ftyp" {
		return nil, 0, errInvalidData("video mipmap missing ftyp box header")
	}
	if format != OutputMP4 {
		return nil, 0, errInvalidData("video textures can only be converted to MP4")
	}
	out := make([]byte, len(mip.Bytes))
	copy(out, mip.Bytes)
	return out, OutputMP4, nil
}

func convertStatic(tex *Texture, format OutputFormat, opts *ConvertOptions) ([]byte, OutputFormat, error) {
	if format == OutputMP4 {
		return nil, 0, errInvalidData("static textures cannot be converted to MP4")
	}
	img, ok := tex.FirstImage()
	if !ok {
		return nil, 0, errInvalidData("texture has no images")
	}
	mip, ok := img.FirstMipmap()
	if !ok {
		return nil, 0, errInvalidData("texture has no mipmaps")
	}

	if kind, ok := embeddedKindForFormat(format); ok && mip.Format == kind {
		out := make([]byte, len(mip.Bytes))
		copy(out, mip.Bytes)
		return out, format, nil
	}

	decoded, err := decodeMipmapToImage(mip)
	if err != nil {
		return nil, 0, err
	}

	if tex.Header.NeedsCrop() {
		decoded = cropTopLeft(decoded, int(tex.Header.ImageWidth), int(tex.Header.ImageHeight))
	}

	data, err := encodeImage(decoded, format, opts)
	if err != nil {
		return nil, 0, err
	}
	return data, format, nil
}

func convertAnimated(tex *Texture, format OutputFormat, opts *ConvertOptions) ([]byte, OutputFormat, error) {
	if tex.FrameTable == nil || len(tex.FrameTable.Frames) == 0 {
		return nil, 0, errInvalidData("animated texture missing frame table")
	}

	frames, err := reconstructFrames(tex)
	if err != nil {
		return nil, 0, err
	}
	if len(frames) == 0 {
		return nil, 0, errInvalidData("no frames could be reconstructed")
	}

	if format == OutputGIF {
		data, err := encodeAnimatedGIF(frames)
		if err != nil {
			return nil, 0, err
		}
		return data, OutputGIF, nil
	}

	data, err := encodeImage(frames[0].Image, format, opts)
	if err != nil {
		return nil, 0, err
	}
	return data, format, nil
}

// DecodeFirstMipmap decodes a static texture's first image/first mipmap to
// pixels, cropping to the header's logical dimensions if needed. It backs
// the wteximg.Decode image.RegisterFormat shim; animated and video textures
// are out of scope for the single-image image.Image contract and should use
// Convert directly.
func DecodeFirstMipmap(tex *Texture) (image.Image, error) {
	img, ok := tex.FirstImage()
	if !ok {
		return nil, errInvalidData("texture has no images")
	}
	mip, ok := img.FirstMipmap()
	if !ok {
		return nil, errInvalidData("texture has no mipmaps")
	}
	decoded, err := decodeMipmapToImage(mip)
	if err != nil {
		return nil, err
	}
	if tex.Header.NeedsCrop() {
		decoded = cropTopLeft(decoded, int(tex.Header.ImageWidth), int(tex.Header.ImageHeight))
	}
	return decoded, nil
}

func embeddedKindForFormat(format OutputFormat) (MipmapFormat, bool) {
	switch format {
	case OutputPNG:
		return MipmapImagePNG, true
	case OutputJPEG:
		return MipmapImageJPEG, true
	case OutputGIF:
		return MipmapImageGIF, true
	case OutputBMP:
		return MipmapImageBMP, true
	case OutputTIFF:
		return MipmapImageTIFF, true
	case OutputWebP:
		return MipmapImageWebP, true
	case OutputTGA:
		return MipmapImageTGA, true
	default:
		return 0, false
	}
}

// decodeMipmapToImage decodes an embedded image format via the standard
// library (plus the third-party codecs blank-imported above), or infers the
// true raw pixel layout per §4.5 before building an image.Image from it.
func decodeMipmapToImage(m *Mipmap) (image.Image, error) {
	if m.Format.IsImage() {
		img, _, err := image.Decode(bytes.NewReader(m.Bytes))
		if err != nil {
			return nil, errImageConversion(err)
		}
		return img, nil
	}

	effective := inferRawFormat(m.Format, m.Bytes, int(m.Width), int(m.Height))
	return rawToImage(effective, m.Bytes, int(m.Width), int(m.Height))
}

// inferRawFormat implements §4.5's format-inference rule: trust the
// declared raw format only if the byte count matches exactly, otherwise
// infer by exact division, falling back to the declared format so any
// remaining failure surfaces from the image-buffer construction itself.
func inferRawFormat(declared MipmapFormat, data []byte, w, h int) MipmapFormat {
	n := w * h
	if declared.IsRaw() {
		if bpp, ok := declared.BytesPerPixel(); ok && len(data) == n*bpp {
			return declared
		}
	}
	switch {
	case n > 0 && len(data) == 4*n:
		return MipmapRGBA8888
	case n > 0 && len(data) == 2*n:
		return MipmapRG88
	case n > 0 && len(data) == n:
		return MipmapR8
	default:
		return declared
	}
}

func rawToImage(format MipmapFormat, data []byte, w, h int) (image.Image, error) {
	switch format {
	case MipmapRGBA8888:
		if len(data) < w*h*4 {
			return nil, errInvalidData("insufficient data for RGBA8888 mipmap")
		}
		return &image.NRGBA{Pix: data[:w*h*4], Stride: w * 4, Rect: image.Rect(0, 0, w, h)}, nil
	case MipmapRG88:
		return rg88ToImage(data, w, h)
	case MipmapR8:
		if len(data) < w*h {
			return nil, errInvalidData("insufficient data for R8 mipmap")
		}
		return &image.Gray{Pix: data[:w*h], Stride: w, Rect: image.Rect(0, 0, w, h)}, nil
	default:
		return nil, errUnsupportedMipmapFormat(format.String())
	}
}

// rg88ToImage lays the two channels into R and G, leaving B at zero and A
// opaque; RG88 mipmaps are most often normal-map components, not color.
func rg88ToImage(data []byte, w, h int) (image.Image, error) {
	if len(data) < w*h*2 {
		return nil, errInvalidData("insufficient data for RG88 mipmap")
	}
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < w*h; i++ {
		out.Pix[i*4+0] = data[i*2+0]
		out.Pix[i*4+1] = data[i*2+1]
		out.Pix[i*4+2] = 0
		out.Pix[i*4+3] = 255
	}
	return out, nil
}

func cropTopLeft(img image.Image, w, h int) image.Image {
	b := img.Bounds()
	rect := image.Rect(b.Min.X, b.Min.Y, b.Min.X+w, b.Min.Y+h).Intersect(b)
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, image.Rect(0, 0, rect.Dx(), rect.Dy()), img, rect.Min, draw.Src)
	return out
}
