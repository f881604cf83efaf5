package wetex

import (
	"fmt"
	"strings"
)

// PixelFormat is the texture header's declared pixel format.
type PixelFormat uint32

// Declared pixel format identifiers, as found in the TEX header.
const (
	PixelRGBA8888 PixelFormat = 0
	PixelDXT5     PixelFormat = 4 // BC3
	PixelDXT3     PixelFormat = 6 // BC2, rejected by the decompressor
	PixelDXT1     PixelFormat = 7 // BC1
	PixelR8       PixelFormat = 8
	PixelRG88     PixelFormat = 9
)

// IsKnown reports whether f is one of the named formats above.
func (f PixelFormat) IsKnown() bool {
	switch f {
	case PixelRGBA8888, PixelDXT5, PixelDXT3, PixelDXT1, PixelR8, PixelRG88:
		return true
	default:
		return false
	}
}

func (f PixelFormat) String() string {
	switch f {
	case PixelRGBA8888:
		return "RGBA8888"
	case PixelDXT5:
		return "DXT5"
	case PixelDXT3:
		return "DXT3"
	case PixelDXT1:
		return "DXT1"
	case PixelR8:
		return "R8"
	case PixelRG88:
		return "RG88"
	default:
		return fmt.Sprintf("Unknown(%d)", uint32(f))
	}
}

// HeaderFlags is the texture header's bitmask. Bits beyond the eight named
// here are read but never interpreted, per the format's own reservation of
// four of them.
type HeaderFlags uint32

const (
	FlagNoInterpolation HeaderFlags = 1 << 0
	FlagClampUVs        HeaderFlags = 1 << 1
	FlagIsAnimated      HeaderFlags = 1 << 2
	FlagReserved3       HeaderFlags = 1 << 3
	FlagReserved4       HeaderFlags = 1 << 4
	FlagIsVideo         HeaderFlags = 1 << 5
	FlagReserved6       HeaderFlags = 1 << 6
	FlagReserved7       HeaderFlags = 1 << 7
)

func (f HeaderFlags) Has(bit HeaderFlags) bool { return f&bit != 0 }

// ContainerVersion identifies one of the four image-container generations,
// selected by the TEXB000X magic.
type ContainerVersion int

const (
	ContainerVersion1 ContainerVersion = 1
	ContainerVersion2 ContainerVersion = 2
	ContainerVersion3 ContainerVersion = 3
	ContainerVersion4 ContainerVersion = 4
)

// containerVersionFromMagic parses a null-terminated "TEXB000X" magic into
// a ContainerVersion, mirroring the teacher's magic-to-enum round trip.
func containerVersionFromMagic(magic string) (ContainerVersion, bool) {
	switch magic {
	case "TEXB0001":
		return ContainerVersion1, true
	case "TEXB0002":
		return ContainerVersion2, true
	case "TEXB0003":
		return ContainerVersion3, true
	case "TEXB0004":
		return ContainerVersion4, true
	default:
		return 0, false
	}
}

// BlockFormat names the block-compression scheme a mipmap's bytes use once
// decoding begins.
type BlockFormat int

const (
	BlockNone BlockFormat = iota
	BlockBC1
	BlockBC2 // never decoded; rejected explicitly in decompress.go
	BlockBC3
)

// EmbeddedImageKind mirrors the FreeImage format table the image container
// stores its image-kind code against, plus the custom MP4 sentinel this
// format layers on top of it.
type EmbeddedImageKind int

const (
	EmbeddedUnknown EmbeddedImageKind = -1
	EmbeddedBMP     EmbeddedImageKind = 0
	EmbeddedICO     EmbeddedImageKind = 1
	EmbeddedJPEG    EmbeddedImageKind = 2
	EmbeddedJNG     EmbeddedImageKind = 3
	EmbeddedKoala   EmbeddedImageKind = 4
	EmbeddedLBM     EmbeddedImageKind = 5
	EmbeddedMNG     EmbeddedImageKind = 6
	EmbeddedPBM     EmbeddedImageKind = 7
	EmbeddedPBMRaw  EmbeddedImageKind = 8
	EmbeddedPCD     EmbeddedImageKind = 9
	EmbeddedPCX     EmbeddedImageKind = 10
	EmbeddedPGM     EmbeddedImageKind = 11
	EmbeddedPGMRaw  EmbeddedImageKind = 12
	EmbeddedPNG     EmbeddedImageKind = 13
	EmbeddedPPM     EmbeddedImageKind = 14
	EmbeddedPPMRaw  EmbeddedImageKind = 15
	EmbeddedRAS     EmbeddedImageKind = 16
	EmbeddedTarga   EmbeddedImageKind = 17
	EmbeddedTIFF    EmbeddedImageKind = 18
	EmbeddedWBMP    EmbeddedImageKind = 19
	EmbeddedPSD     EmbeddedImageKind = 20
	EmbeddedCUT     EmbeddedImageKind = 21
	EmbeddedXBM     EmbeddedImageKind = 22
	EmbeddedXPM     EmbeddedImageKind = 23
	EmbeddedDDS     EmbeddedImageKind = 24
	EmbeddedGIF     EmbeddedImageKind = 25
	EmbeddedHDR     EmbeddedImageKind = 26
	EmbeddedFAXG3   EmbeddedImageKind = 27
	EmbeddedSGI     EmbeddedImageKind = 28
	EmbeddedEXR     EmbeddedImageKind = 29
	EmbeddedJ2K     EmbeddedImageKind = 30
	EmbeddedJP2     EmbeddedImageKind = 31
	EmbeddedPFM     EmbeddedImageKind = 32
	EmbeddedPICT    EmbeddedImageKind = 33
	EmbeddedRAW     EmbeddedImageKind = 34
	EmbeddedWebP    EmbeddedImageKind = 35
	EmbeddedJXR     EmbeddedImageKind = 36
	EmbeddedMP4     EmbeddedImageKind = 37 // not a FreeImage code; this format's own marker
)

// MipmapFormat is the effective, post-inference format a mipmap's bytes are
// actually in, per spec §4.3.
type MipmapFormat int

const (
	MipmapInvalid MipmapFormat = iota
	MipmapRGBA8888
	MipmapR8
	MipmapRG88
	MipmapCompressedDXT1
	MipmapCompressedDXT3
	MipmapCompressedDXT5
	MipmapVideoMP4
	MipmapImageBMP
	MipmapImageJPEG
	MipmapImagePNG
	MipmapImageGIF
	MipmapImageTGA
	MipmapImageDDS
	MipmapImageTIFF
	MipmapImageWebP
)

func (f MipmapFormat) String() string {
	switch f {
	case MipmapInvalid:
		return "Invalid"
	case MipmapRGBA8888:
		return "RGBA8888"
	case MipmapR8:
		return "R8"
	case MipmapRG88:
		return "RG88"
	case MipmapCompressedDXT1:
		return "CompressedDXT1"
	case MipmapCompressedDXT3:
		return "CompressedDXT3"
	case MipmapCompressedDXT5:
		return "CompressedDXT5"
	case MipmapVideoMP4:
		return "VideoMp4"
	case MipmapImageBMP:
		return "ImageBMP"
	case MipmapImageJPEG:
		return "ImageJPEG"
	case MipmapImagePNG:
		return "ImagePNG"
	case MipmapImageGIF:
		return "ImageGIF"
	case MipmapImageTGA:
		return "ImageTGA"
	case MipmapImageDDS:
		return "ImageDDS"
	case MipmapImageTIFF:
		return "ImageTIFF"
	case MipmapImageWebP:
		return "ImageWebP"
	default:
		return "Unknown"
	}
}

// IsCompressed reports whether f is one of the BC1/BC2/BC3 block formats.
func (f MipmapFormat) IsCompressed() bool {
	switch f {
	case MipmapCompressedDXT1, MipmapCompressedDXT3, MipmapCompressedDXT5:
		return true
	default:
		return false
	}
}

// IsRaw reports whether f is uncompressed pixel data.
func (f MipmapFormat) IsRaw() bool {
	switch f {
	case MipmapRGBA8888, MipmapR8, MipmapRG88:
		return true
	default:
		return false
	}
}

// IsImage reports whether f is a fully encoded embedded image file.
func (f MipmapFormat) IsImage() bool {
	switch f {
	case MipmapImageBMP, MipmapImageJPEG, MipmapImagePNG, MipmapImageGIF,
		MipmapImageTGA, MipmapImageDDS, MipmapImageTIFF, MipmapImageWebP:
		return true
	default:
		return false
	}
}

// BytesPerPixel returns the raw stride for raw formats, and (0, false) for
// anything else.
func (f MipmapFormat) BytesPerPixel() (int, bool) {
	switch f {
	case MipmapRGBA8888:
		return 4, true
	case MipmapR8:
		return 1, true
	case MipmapRG88:
		return 2, true
	default:
		return 0, false
	}
}

// toMipmapFormat maps an embedded-image kind to its mipmap format, or
// MipmapInvalid if the kind has no known image-codec counterpart.
func (k EmbeddedImageKind) toMipmapFormat() MipmapFormat {
	switch k {
	case EmbeddedBMP:
		return MipmapImageBMP
	case EmbeddedJPEG:
		return MipmapImageJPEG
	case EmbeddedPNG:
		return MipmapImagePNG
	case EmbeddedGIF:
		return MipmapImageGIF
	case EmbeddedTarga:
		return MipmapImageTGA
	case EmbeddedDDS:
		return MipmapImageDDS
	case EmbeddedTIFF:
		return MipmapImageTIFF
	case EmbeddedWebP:
		return MipmapImageWebP
	case EmbeddedMP4:
		return MipmapVideoMP4
	default:
		return MipmapInvalid
	}
}

// pixelFormatToMipmapFormat implements the §4.3 fallback table, used when
// the container's image-kind does not resolve to a known embedded codec.
func pixelFormatToMipmapFormat(f PixelFormat) MipmapFormat {
	switch f {
	case PixelRGBA8888:
		return MipmapRGBA8888
	case PixelDXT1:
		return MipmapCompressedDXT1
	case PixelDXT3:
		return MipmapCompressedDXT3
	case PixelDXT5:
		return MipmapCompressedDXT5
	case PixelR8:
		return MipmapR8
	case PixelRG88:
		return MipmapRG88
	default:
		return MipmapInvalid
	}
}

// OutputFormat is a requested or actual conversion target.
type OutputFormat int

const (
	OutputPNG OutputFormat = iota
	OutputJPEG
	OutputGIF
	OutputWebP
	OutputBMP
	OutputTIFF
	OutputTGA
	OutputMP4
)

// Extension returns the canonical lowercase extension for f, without a dot.
func (f OutputFormat) Extension() string {
	switch f {
	case OutputPNG:
		return "png"
	case OutputJPEG:
		return "jpg"
	case OutputGIF:
		return "gif"
	case OutputWebP:
		return "webp"
	case OutputBMP:
		return "bmp"
	case OutputTIFF:
		return "tiff"
	case OutputTGA:
		return "tga"
	case OutputMP4:
		return "mp4"
	default:
		return ""
	}
}

// MimeType returns the MIME type for f.
func (f OutputFormat) MimeType() string {
	switch f {
	case OutputPNG:
		return "image/png"
	case OutputJPEG:
		return "image/jpeg"
	case OutputGIF:
		return "image/gif"
	case OutputWebP:
		return "image/webp"
	case OutputBMP:
		return "image/bmp"
	case OutputTIFF:
		return "image/tiff"
	case OutputTGA:
		return "image/x-tga"
	case OutputMP4:
		return "video/mp4"
	default:
		return "application/octet-stream"
	}
}

// ParseOutputFormat parses a CLI-style format name (case-insensitive) into
// an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, bool) {
	switch strings.ToLower(s) {
	case "png":
		return OutputPNG, true
	case "jpg", "jpeg":
		return OutputJPEG, true
	case "gif":
		return OutputGIF, true
	case "webp":
		return OutputWebP, true
	case "bmp":
		return OutputBMP, true
	case "tiff", "tif":
		return OutputTIFF, true
	case "tga":
		return OutputTGA, true
	case "mp4":
		return OutputMP4, true
	default:
		return 0, false
	}
}

// EntryKind is the derived category of a package entry, inferred from its
// path suffix.
type EntryKind int

const (
	EntryOther EntryKind = iota
	EntryTexture
	EntryConfig
	EntryShader
)

func (k EntryKind) String() string {
	switch k {
	case EntryTexture:
		return "texture"
	case EntryConfig:
		return "configuration"
	case EntryShader:
		return "shader"
	default:
		return "other"
	}
}
