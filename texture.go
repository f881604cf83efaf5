package wetex

import "math"

// Texture is a parsed TEX container: the two fixed magics, a header, an
// image container, and an optional frame table present exactly when the
// header's animated flag is set.
type Texture struct {
	Magic1     string // always "TEXV0005"
	Magic2     string // always "TEXI0001"
	Header     TextureHeader
	Images     ImageContainer
	FrameTable *FrameTable
}

// IsAnimated reports whether the header's animated flag is set.
func (t *Texture) IsAnimated() bool { return t.Header.Flags.Has(FlagIsAnimated) }

// IsVideo reports whether the header's video flag is set.
func (t *Texture) IsVideo() bool { return t.Header.Flags.Has(FlagIsVideo) }

// FirstImage returns the first image in the container, if any.
func (t *Texture) FirstImage() (*Image, bool) {
	if len(t.Images.Images) == 0 {
		return nil, false
	}
	return &t.Images.Images[0], true
}

// TextureHeader is the seven-field fixed header that follows the two magics.
type TextureHeader struct {
	Format        PixelFormat
	Flags         HeaderFlags
	TextureWidth  uint32
	TextureHeight uint32
	ImageWidth    uint32
	ImageHeight   uint32
	// UnkInt0 is preserved but never interpreted; see spec's open questions.
	UnkInt0 uint32
}

// NeedsCrop reports whether the logical image dimensions differ from the
// power-of-two storage dimensions.
func (h TextureHeader) NeedsCrop() bool {
	return h.ImageWidth != h.TextureWidth || h.ImageHeight != h.TextureHeight
}

// ImageContainer holds the version tag, the resolved image-kind, and the
// ordered image list.
type ImageContainer struct {
	Version   ContainerVersion
	ImageKind EmbeddedImageKind
	Images    []Image
}

// mipmapFormat derives the effective mipmap format for this container given
// the texture's declared pixel format, per spec §4.3.
func (c ImageContainer) mipmapFormat(texFormat PixelFormat) MipmapFormat {
	if f := c.ImageKind.toMipmapFormat(); f != MipmapInvalid {
		return f
	}
	return pixelFormatToMipmapFormat(texFormat)
}

// Image is an ordered mipmap stack, index 0 being the largest.
type Image struct {
	Mipmaps []Mipmap
}

// FirstMipmap returns the largest mipmap, if any.
func (im *Image) FirstMipmap() (*Mipmap, bool) {
	if len(im.Mipmaps) == 0 {
		return nil, false
	}
	return &im.Mipmaps[0], true
}

// Mipmap is one level of an image's mipmap stack.
type Mipmap struct {
	Width  uint32
	Height uint32
	Format MipmapFormat

	// IsLZ4Compressed and DecompressedSize describe the payload before
	// decompressMipmap runs; decompressMipmap clears the flag once it has
	// replaced Bytes with the decoded form.
	IsLZ4Compressed  bool
	DecompressedSize uint32

	Bytes []byte

	// OriginalByteCount and FileOffset are read-only bookkeeping recorded at
	// read time, independent of later mutation by the decompressor. Used by
	// VideoDataLocation for zero-copy extraction.
	OriginalByteCount uint32
	FileOffset        int64
}

// ExpectedSize returns width*height*bytesPerPixel for raw formats, per
// spec §4.3/§4.4; ok is false for non-raw formats.
func (m Mipmap) ExpectedSize() (size int, ok bool) {
	bpp, ok := m.Format.BytesPerPixel()
	if !ok {
		return 0, false
	}
	return int(m.Width) * int(m.Height) * bpp, true
}

// FrameTable is the optional animation frame table, present exactly when
// the header's animated flag is set.
type FrameTable struct {
	GifWidth  uint32
	GifHeight uint32
	Frames    []FrameRecord
}

// FrameRecord is one entry in the frame table: which source image to crop
// from, how long to display it, and the crop/rotation-encoding scalars.
type FrameRecord struct {
	ImageID   uint32
	FrameTime float32
	X         float32
	Y         float32
	Width     float32
	HeightX   float32
	WidthY    float32
	Height    float32
}

// ActualWidth is the frame's true output width: Width if non-zero, else
// |HeightX|.
func (f FrameRecord) ActualWidth() float32 {
	if f.Width != 0 {
		return absf32(f.Width)
	}
	return absf32(f.HeightX)
}

// ActualHeight is the frame's true output height: Height if non-zero, else
// |WidthY|.
func (f FrameRecord) ActualHeight() float32 {
	if f.Height != 0 {
		return absf32(f.Height)
	}
	return absf32(f.WidthY)
}

// DelayMilliseconds is round(FrameTime * 1000), the frame's display time in
// milliseconds. GIF assembly uses DelayCentiseconds instead.
func (f FrameRecord) DelayMilliseconds() int {
	return int(roundf32(f.FrameTime * 1000))
}

// DelayCentiseconds is round(FrameTime * 100), GIF's native delay unit.
func (f FrameRecord) DelayCentiseconds() int {
	return int(roundf32(f.FrameTime * 100))
}

func absf32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func roundf32(v float32) float32 {
	return float32(math.Round(float64(v)))
}
