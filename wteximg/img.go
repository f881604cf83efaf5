// Package wteximg registers the TEX container format with the standard
// library's image package, mirroring the teacher's img subpackage for PAA.
// Blank-import this package to make image.Decode and image.DecodeConfig
// work directly on a .tex byte stream for the static (non-animated,
// non-video) case.
package wteximg

import (
	"image"
	"image/color"
	"io"

	"github.com/pkgtex/wetex"
)

func init() {
	image.RegisterFormat("tex", "TEXV0005", Decode, DecodeConfig)
}

// Decode reads a TEX container and returns its first mipmap decoded to an
// image.Image. Animated and video textures are not representable by the
// single-image image.Image contract; use wetex.ReadTexture and wetex.Convert
// directly for those.
func Decode(r io.Reader) (image.Image, error) {
	tex, err := wetex.ReadTexture(r, nil)
	if err != nil {
		return nil, err
	}
	return wetex.DecodeFirstMipmap(tex)
}

// DecodeConfig reads a TEX container's header only and reports its logical
// dimensions, without decoding any pixel data.
func DecodeConfig(r io.Reader) (image.Config, error) {
	tex, err := wetex.ReadTexture(r, &wetex.ReadTextureOptions{Mode: wetex.ReadHeadersOnly})
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      int(tex.Header.ImageWidth),
		Height:     int(tex.Header.ImageHeight),
	}, nil
}
