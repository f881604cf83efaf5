package wetex

import (
	"image"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
)

// reconstructedFrame is one decoded, cropped, rotated and resized animation
// frame, ready for GIF assembly or single-image re-encode.
type reconstructedFrame struct {
	Image             *image.NRGBA
	DelayCentiseconds int
}

// reconstructFrames implements §4.6: for each frame record, in file order,
// crop the referenced source image's atlas region, undo its signed
// rotation, and resize it to the record's declared actual dimensions.
// Decoded source images are cached across frames sharing the same ImageID.
func reconstructFrames(tex *Texture) ([]reconstructedFrame, error) {
	cache := make(map[uint32]image.Image)
	frames := make([]reconstructedFrame, 0, len(tex.FrameTable.Frames))

	for _, fr := range tex.FrameTable.Frames {
		if int(fr.ImageID) >= len(tex.Images.Images) {
			continue // out-of-bounds image_id: skip, do not fail
		}

		src, ok := cache[fr.ImageID]
		if !ok {
			mip, ok := tex.Images.Images[fr.ImageID].FirstMipmap()
			if !ok {
				continue
			}
			decoded, err := decodeMipmapToImage(mip)
			if err != nil {
				return nil, err
			}
			src = decoded
			cache[fr.ImageID] = src
		}

		cropped := cropFrame(src, fr)
		rotated := rotateFrame(cropped, fr)
		resized := resizeToActual(rotated, fr)

		frames = append(frames, reconstructedFrame{
			Image:             asNRGBA(resized),
			DelayCentiseconds: fr.DelayCentiseconds(),
		})
	}

	return frames, nil
}

// cropFrame extracts the atlas region a frame record describes.
func cropFrame(img image.Image, fr FrameRecord) image.Image {
	w := fr.Width
	if w == 0 {
		w = fr.HeightX
	}
	h := fr.Height
	if h == 0 {
		h = fr.WidthY
	}

	x0 := int(minf32(fr.X, fr.X+w))
	y0 := int(minf32(fr.Y, fr.Y+h))
	cw := int(absf32(w))
	ch := int(absf32(h))
	if cw <= 0 || ch <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}

	b := img.Bounds()
	rect := image.Rect(b.Min.X+x0, b.Min.Y+y0, b.Min.X+x0+cw, b.Min.Y+y0+ch).Intersect(b)

	out := image.NewNRGBA(image.Rect(0, 0, cw, ch))
	draw.Draw(out, image.Rect(0, 0, rect.Dx(), rect.Dy()), img, rect.Min, draw.Src)
	return out
}

// rotateFrame undoes the signed rotation encoded by the (width, height,
// width_y, height_x) quartet, using the atan2(sign_h, sign_w) - pi/4
// identity rather than ad-hoc case analysis. Angles within 1 degree of
// 90/180/270 get the matching lossless quarter turn; anything else,
// including the 0 that two positive signs produce, is left as-is.
func rotateFrame(img image.Image, fr FrameRecord) image.Image {
	w := fr.Width
	if w == 0 {
		w = fr.HeightX
	}
	h := fr.Height
	if h == 0 {
		h = fr.WidthY
	}

	signW := 1.0
	if w < 0 {
		signW = -1.0
	}
	signH := 1.0
	if h < 0 {
		signH = -1.0
	}

	angle := -(math.Atan2(signH, signW) - math.Pi/4)
	degrees := math.Round(angle * 180 / math.Pi)
	deg := int(degrees) % 360
	if deg < 0 {
		deg += 360
	}

	switch {
	case deg >= 89 && deg <= 91:
		return imaging.Rotate90(img)
	case deg >= 179 && deg <= 181:
		return imaging.Rotate180(img)
	case deg >= 269 && deg <= 271:
		return imaging.Rotate270(img)
	default:
		return img
	}
}

// resizeToActual resamples a rotated frame to its declared actual
// dimensions with Lanczos-3, unless it already matches.
func resizeToActual(img image.Image, fr FrameRecord) image.Image {
	targetW := int(fr.ActualWidth())
	targetH := int(fr.ActualHeight())
	b := img.Bounds()
	if b.Dx() == targetW && b.Dy() == targetH {
		return img
	}
	return imaging.Resize(img, targetW, targetH, imaging.Lanczos)
}

func asNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

func minf32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
