package wetex

import (
	"fmt"
	"io"
)

// Safety limits for the TEX reader, per spec §4.2.
const (
	maxTexImageCount  = 1000
	maxTexMipmapCount = 20
	maxTexFrameCount  = 10_000
	maxTexMagicField  = 16
	maxTexNameField   = 4096
)

// ReadMode selects how much of a texture's payload ReadTexture loads.
type ReadMode int

const (
	// ReadFull reads every mipmap payload and decompresses it.
	ReadFull ReadMode = iota
	// ReadNoDecompress reads every mipmap payload but leaves bytes as-stored.
	ReadNoDecompress
	// ReadHeadersOnly skips mipmap payloads, seeking past them while still
	// recording their original size and file offset.
	ReadHeadersOnly
)

// ReadTextureOptions controls ReadTexture's payload handling.
type ReadTextureOptions struct {
	Mode ReadMode
}

// ReadTexture parses a TEX container from r, accepting the same kinds of
// reader as ReadPackage.
func ReadTexture(r io.Reader, opts *ReadTextureOptions) (*Texture, error) {
	src, err := ensureSeeker(r)
	if err != nil {
		return nil, err
	}
	mode := ReadFull
	if opts != nil {
		mode = opts.Mode
	}

	magic1, err := readNullTerminatedString(src, maxTexMagicField)
	if err != nil {
		return nil, err
	}
	if magic1 != "TEXV0005" {
		return nil, errInvalidTexMagic("TEXV0005", magic1)
	}
	magic2, err := readNullTerminatedString(src, maxTexMagicField)
	if err != nil {
		return nil, err
	}
	if magic2 != "TEXI0001" {
		return nil, errInvalidTexMagic("TEXI0001", magic2)
	}

	header, err := readTextureHeader(src)
	if err != nil {
		return nil, err
	}

	container, err := readImageContainer(src, mode, header.Format)
	if err != nil {
		return nil, err
	}

	tex := &Texture{
		Magic1: magic1,
		Magic2: magic2,
		Header: header,
		Images: container,
	}

	if header.Flags.Has(FlagIsAnimated) {
		ft, err := readFrameTable(src)
		if err != nil {
			return nil, err
		}
		tex.FrameTable = ft
	}

	if mode == ReadFull {
		for ii := range tex.Images.Images {
			mips := tex.Images.Images[ii].Mipmaps
			for mi := range mips {
				if len(mips[mi].Bytes) == 0 {
					continue
				}
				if err := decompressMipmap(&mips[mi]); err != nil {
					return nil, err
				}
			}
		}
	}

	return tex, nil
}

func readTextureHeader(src byteSource) (TextureHeader, error) {
	var h TextureHeader
	format, err := readU32(src)
	if err != nil {
		return h, err
	}
	flags, err := readU32(src)
	if err != nil {
		return h, err
	}
	texW, err := readU32(src)
	if err != nil {
		return h, err
	}
	texH, err := readU32(src)
	if err != nil {
		return h, err
	}
	imgW, err := readU32(src)
	if err != nil {
		return h, err
	}
	imgH, err := readU32(src)
	if err != nil {
		return h, err
	}
	unk0, err := readU32(src)
	if err != nil {
		return h, err
	}
	return TextureHeader{
		Format:        PixelFormat(format),
		Flags:         HeaderFlags(flags),
		TextureWidth:  texW,
		TextureHeight: texH,
		ImageWidth:    imgW,
		ImageHeight:   imgH,
		UnkInt0:       unk0,
	}, nil
}

func readImageContainer(src byteSource, mode ReadMode, texFormat PixelFormat) (ImageContainer, error) {
	var c ImageContainer

	magic, err := readNullTerminatedString(src, maxTexMagicField)
	if err != nil {
		return c, err
	}
	version, ok := containerVersionFromMagic(magic)
	if !ok {
		return c, errUnsupportedContainerVersion(magic)
	}
	c.Version = version

	imageCount, err := readI32(src)
	if err != nil {
		return c, err
	}

	imageKind := EmbeddedUnknown
	effectiveVersion := version

	switch version {
	case ContainerVersion1, ContainerVersion2:
		// no further container-level fields
	case ContainerVersion3:
		kind, err := readI32(src)
		if err != nil {
			return c, err
		}
		imageKind = EmbeddedImageKind(kind)
	case ContainerVersion4:
		kind, err := readI32(src)
		if err != nil {
			return c, err
		}
		isMP4, err := readI32(src)
		if err != nil {
			return c, err
		}
		imageKind = EmbeddedImageKind(kind)
		if imageKind == EmbeddedUnknown && isMP4 == 1 {
			imageKind = EmbeddedMP4
		}
		// A v4 container whose effective kind isn't MP4 parses exactly like
		// v3: the extra v4-only per-mipmap fields never appear.
		if imageKind != EmbeddedMP4 {
			effectiveVersion = ContainerVersion3
		}
	}

	if imageCount < 0 || imageCount > maxTexImageCount {
		return c, errSafetyLimit("image count exceeds limit")
	}
	c.ImageKind = imageKind

	mipFormat := c.mipmapFormat(texFormat)

	images := make([]Image, 0, imageCount)
	for i := int32(0); i < imageCount; i++ {
		img, err := readImage(src, mode, effectiveVersion, mipFormat)
		if err != nil {
			return c, err
		}
		images = append(images, img)
	}
	c.Images = images
	return c, nil
}

func readImage(src byteSource, mode ReadMode, version ContainerVersion, mipFormat MipmapFormat) (Image, error) {
	var img Image
	mipCount, err := readU32(src)
	if err != nil {
		return img, err
	}
	if mipCount > maxTexMipmapCount {
		return img, errSafetyLimit("mipmap count exceeds limit")
	}

	streamEnd, err := streamLen(src)
	if err != nil {
		return img, err
	}

	mips := make([]Mipmap, 0, mipCount)
	for i := uint32(0); i < mipCount; i++ {
		m, err := readMipmap(src, mode, version, mipFormat, streamEnd)
		if err != nil {
			return img, err
		}
		mips = append(mips, m)
	}
	img.Mipmaps = mips
	return img, nil
}

func readMipmap(src byteSource, mode ReadMode, version ContainerVersion, format MipmapFormat, streamEnd int64) (Mipmap, error) {
	var m Mipmap
	m.Format = format

	if version == ContainerVersion4 {
		// Unknown v4 preamble fields, read and discarded, never interpreted.
		if _, err := readU32(src); err != nil {
			return m, err
		}
		if _, err := readU32(src); err != nil {
			return m, err
		}
		if _, err := readNullTerminatedString(src, maxTexNameField); err != nil {
			return m, err
		}
		if _, err := readU32(src); err != nil {
			return m, err
		}
	}

	width, err := readU32(src)
	if err != nil {
		return m, err
	}
	height, err := readU32(src)
	if err != nil {
		return m, err
	}
	m.Width = width
	m.Height = height

	var byteCount uint32
	switch version {
	case ContainerVersion1:
		byteCount, err = readU32(src)
		if err != nil {
			return m, err
		}
	default: // v2, v3, and v4-demoted-to-v3
		isLZ4, err2 := readU32(src)
		if err2 != nil {
			return m, err2
		}
		decompressedSize, err2 := readU32(src)
		if err2 != nil {
			return m, err2
		}
		byteCount, err = readU32(src)
		if err != nil {
			return m, err
		}
		m.IsLZ4Compressed = isLZ4 == 1
		m.DecompressedSize = decompressedSize
	}

	offset, err := src.Seek(0, io.SeekCurrent)
	if err != nil {
		return m, errIO(err)
	}
	if offset+int64(byteCount) > streamEnd {
		return m, errSafetyLimit("mipmap payload exceeds stream length")
	}
	m.FileOffset = offset
	m.OriginalByteCount = byteCount

	if mode == ReadHeadersOnly {
		if _, err := src.Seek(int64(byteCount), io.SeekCurrent); err != nil {
			return m, errIO(err)
		}
		return m, nil
	}

	data, err := readFull(src, int(byteCount))
	if err != nil {
		return m, err
	}
	m.Bytes = data
	return m, nil
}

func readFrameTable(src byteSource) (*FrameTable, error) {
	magic, err := readNullTerminatedString(src, maxTexMagicField)
	if err != nil {
		return nil, err
	}
	switch magic {
	case "TEXS0001", "TEXS0002", "TEXS0003":
		// all three accepted with an identical layout; TEXS0001 and TEXS0002
		// are not exercised by any fixture, so their layout is unverified.
	default:
		return nil, errInvalidData(fmt.Sprintf("unrecognized frame table magic %q", magic))
	}

	gifW, err := readU32(src)
	if err != nil {
		return nil, err
	}
	gifH, err := readU32(src)
	if err != nil {
		return nil, err
	}
	if _, err := readU32(src); err != nil { // unused
		return nil, err
	}
	frameCount, err := readU32(src)
	if err != nil {
		return nil, err
	}
	if frameCount > maxTexFrameCount {
		return nil, errSafetyLimit("frame count exceeds limit")
	}

	frames := make([]FrameRecord, 0, frameCount)
	for i := uint32(0); i < frameCount; i++ {
		fr, err := readFrameRecord(src)
		if err != nil {
			return nil, err
		}
		frames = append(frames, fr)
	}

	return &FrameTable{GifWidth: gifW, GifHeight: gifH, Frames: frames}, nil
}

func readFrameRecord(src byteSource) (FrameRecord, error) {
	var fr FrameRecord
	imageID, err := readU32(src)
	if err != nil {
		return fr, err
	}
	fr.ImageID = imageID

	fields := []*float32{&fr.FrameTime, &fr.X, &fr.Y, &fr.Width, &fr.HeightX, &fr.WidthY, &fr.Height}
	for _, f := range fields {
		v, err := readF32(src)
		if err != nil {
			return fr, err
		}
		*f = v
	}
	return fr, nil
}
