package wetex

import (
	"image"
	"image/color"
	"testing"
)

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestCropFrameExtractsRegion(t *testing.T) {
	atlas := solidImage(10, 10, color.NRGBA{R: 1, A: 255})
	fr := FrameRecord{X: 2, Y: 3, Width: 4, Height: 5}
	cropped := cropFrame(atlas, fr)
	b := cropped.Bounds()
	if b.Dx() != 4 || b.Dy() != 5 {
		t.Errorf("cropped bounds = %v, want 4x5", b)
	}
}

func TestCropFrameUsesHeightXWidthYWhenWidthHeightAreZero(t *testing.T) {
	atlas := solidImage(10, 10, color.NRGBA{G: 1, A: 255})
	fr := FrameRecord{X: 0, Y: 0, HeightX: 6, WidthY: 7}
	cropped := cropFrame(atlas, fr)
	b := cropped.Bounds()
	if b.Dx() != 6 || b.Dy() != 7 {
		t.Errorf("cropped bounds = %v, want 6x7", b)
	}
}

// markedImage returns a w x h NRGBA that is black except for a single white
// pixel at (0,0), so rotation can be detected by where the marker lands.
func markedImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{A: 255})
		}
	}
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	return img
}

func TestRotateFrameAngles(t *testing.T) {
	tests := []struct {
		name         string
		width        float32
		height       float32
		wantW, wantH int
		markerAt     image.Point // expected marker position in the result
	}{
		{"0 degrees: both positive", 10, 10, 4, 2, image.Pt(0, 0)},
		{"90 degrees: width positive, height negative", 10, -10, 2, 4, image.Pt(0, 3)},
		{"270 degrees: width negative, height positive", -10, 10, 2, 4, image.Pt(1, 0)},
		{"180 degrees: both negative", -10, -10, 4, 2, image.Pt(3, 1)},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			src := markedImage(4, 2)
			fr := FrameRecord{Width: tt.width, Height: tt.height}
			out := rotateFrame(src, fr)
			b := out.Bounds()
			if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Fatalf("bounds = %v, want %dx%d", b, tt.wantW, tt.wantH)
			}
			c := color.NRGBAModel.Convert(out.At(tt.markerAt.X, tt.markerAt.Y)).(color.NRGBA)
			if c.R != 255 || c.G != 255 || c.B != 255 {
				t.Errorf("marker not found at %v, got %v", tt.markerAt, c)
			}
		})
	}
}

func TestResizeToActualNoopWhenDimensionsMatch(t *testing.T) {
	src := solidImage(4, 4, color.NRGBA{A: 255})
	fr := FrameRecord{Width: 4, Height: 4}
	out := resizeToActual(src, fr)
	if out.Bounds().Dx() != 4 || out.Bounds().Dy() != 4 {
		t.Errorf("bounds = %v, want 4x4", out.Bounds())
	}
}

func TestResizeToActualResamples(t *testing.T) {
	src := solidImage(4, 4, color.NRGBA{A: 255})
	fr := FrameRecord{Width: 8, Height: 8}
	out := resizeToActual(src, fr)
	if out.Bounds().Dx() != 8 || out.Bounds().Dy() != 8 {
		t.Errorf("bounds = %v, want 8x8", out.Bounds())
	}
}

// TestReconstructFramesEndToEnd mirrors the spec's scenario 5: two source
// images sharing a 100x100 canvas, two frames with distinct crop origins.
func TestReconstructFramesEndToEnd(t *testing.T) {
	mk := func(c color.NRGBA) Mipmap {
		img := solidImage(100, 100, c)
		return Mipmap{Format: MipmapRGBA8888, Width: 100, Height: 100, Bytes: img.Pix}
	}

	tex := &Texture{
		Header: TextureHeader{Flags: FlagIsAnimated, TextureWidth: 100, TextureHeight: 100, ImageWidth: 100, ImageHeight: 100},
		Images: ImageContainer{Images: []Image{
			{Mipmaps: []Mipmap{mk(color.NRGBA{R: 255, A: 255})}},
			{Mipmaps: []Mipmap{mk(color.NRGBA{B: 255, A: 255})}},
		}},
		FrameTable: &FrameTable{
			GifWidth: 100, GifHeight: 100,
			Frames: []FrameRecord{
				{ImageID: 0, FrameTime: 0.1, Width: 50, Height: 50},
				{ImageID: 1, FrameTime: 0.2, Width: 50, Height: 50, X: 50},
			},
		},
	}

	frames, err := reconstructFrames(tex)
	if err != nil {
		t.Fatalf("reconstructFrames: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("len(frames) = %d, want 2", len(frames))
	}
	if frames[0].DelayCentiseconds != 10 {
		t.Errorf("frame 0 delay = %d, want 10", frames[0].DelayCentiseconds)
	}
	if frames[1].DelayCentiseconds != 20 {
		t.Errorf("frame 1 delay = %d, want 20", frames[1].DelayCentiseconds)
	}

	total := 0
	for _, f := range frames {
		total += f.DelayCentiseconds
	}
	if total != 30 {
		t.Errorf("total duration = %d centiseconds, want 30 (0.3s)", total)
	}
}

func TestReconstructFramesSkipsOutOfBoundsImageID(t *testing.T) {
	mip := Mipmap{Format: MipmapRGBA8888, Width: 4, Height: 4, Bytes: solidImage(4, 4, color.NRGBA{A: 255}).Pix}
	tex := &Texture{
		Header: TextureHeader{Flags: FlagIsAnimated},
		Images: ImageContainer{Images: []Image{{Mipmaps: []Mipmap{mip}}}},
		FrameTable: &FrameTable{
			Frames: []FrameRecord{
				{ImageID: 0, FrameTime: 0.1, Width: 4, Height: 4},
				{ImageID: 99, FrameTime: 0.1, Width: 4, Height: 4}, // out of bounds, must be skipped
			},
		},
	}

	frames, err := reconstructFrames(tex)
	if err != nil {
		t.Fatalf("reconstructFrames: %v", err)
	}
	if len(frames) != 1 {
		t.Errorf("len(frames) = %d, want 1 (out-of-bounds frame skipped)", len(frames))
	}
}
