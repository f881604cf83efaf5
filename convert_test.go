package wetex

import (
	"bytes"
	"errors"
	"image/png"
	"testing"
)

func makeTexture(format PixelFormat, flags HeaderFlags, texW, texH, imgW, imgH uint32, images []Image) *Texture {
	return &Texture{
		Magic1: "TEXV0005",
		Magic2: "TEXI0001",
		Header: TextureHeader{
			Format: format, Flags: flags,
			TextureWidth: texW, TextureHeight: texH,
			ImageWidth: imgW, ImageHeight: imgH,
		},
		Images: ImageContainer{Version: ContainerVersion3, Images: images},
	}
}

func TestRecommendedFormat(t *testing.T) {
	tests := []struct {
		name  string
		flags HeaderFlags
		want  OutputFormat
	}{
		{"plain", 0, OutputPNG},
		{"animated", FlagIsAnimated, OutputGIF},
		{"video", FlagIsVideo, OutputMP4},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			tex := makeTexture(PixelRGBA8888, tt.flags, 4, 4, 4, 4, nil)
			if got := RecommendedFormat(tex); got != tt.want {
				t.Errorf("RecommendedFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConvertVideoPassthrough(t *testing.T) {
	mp4 := append([]byte{0, 0, 0, 0x18}, []byte("ftypisom")...)
	tex := makeTexture(PixelRGBA8888, FlagIsVideo, 4, 4, 4, 4, []Image{{Mipmaps: []Mipmap{{Bytes: mp4}}}})

	data, format, err := Convert(tex, OutputMP4, nil)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if format != OutputMP4 {
		t.Errorf("format = %v, want OutputMP4", format)
	}
	if !bytes.Equal(data, mp4) {
		t.Error("video passthrough should be byte-for-byte identical")
	}
}

func TestConvertVideoRejectsMissingFtyp(t *testing.T) {
	tex := makeTexture(PixelRGBA8888, FlagIsVideo, 4, 4, 4, 4,
		[]Image{{Mipmaps: []Mipmap{{Bytes: []byte("not an mp4 box at all")}}}})

	_, _, err := Convert(tex, OutputMP4, nil)
	if !errors.Is(err, ErrInvalidData) {
		t.Fatalf("err = %v, want ErrInvalidData", err)
	}
}

func TestConvertStaticPassthroughEmbeddedPNG(t *testing.T) {
	fakePNG := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0xDE, 0xAD}
	tex := makeTexture(PixelRGBA8888, 0, 4, 4, 4, 4,
		[]Image{{Mipmaps: []Mipmap{{Format: MipmapImagePNG, Bytes: fakePNG}}}})

	data, format, err := Convert(tex, OutputPNG, nil)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if format != OutputPNG {
		t.Errorf("format = %v, want OutputPNG", format)
	}
	if !bytes.Equal(data, fakePNG) {
		t.Error("matching embedded format should pass through unchanged")
	}
}

func TestConvertStaticRejectsMP4(t *testing.T) {
	tex := makeTexture(PixelRGBA8888, 0, 4, 4, 4, 4,
		[]Image{{Mipmaps: []Mipmap{{Format: MipmapRGBA8888, Bytes: make([]byte, 64)}}}})

	_, _, err := Convert(tex, OutputMP4, nil)
	if !errors.Is(err, ErrInvalidData) {
		t.Fatalf("err = %v, want ErrInvalidData", err)
	}
}

func TestConvertStaticCropsToLogicalDimensions(t *testing.T) {
	const storageW, storageH = 8, 8
	const logicalW, logicalH = 5, 3

	raw := make([]byte, storageW*storageH*4)
	for i := range raw {
		raw[i] = 0x7F
	}
	tex := makeTexture(PixelRGBA8888, 0, storageW, storageH, logicalW, logicalH,
		[]Image{{Mipmaps: []Mipmap{{Format: MipmapRGBA8888, Width: storageW, Height: storageH, Bytes: raw}}}})

	data, format, err := Convert(tex, OutputPNG, nil)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if format != OutputPNG {
		t.Errorf("format = %v, want OutputPNG", format)
	}

	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	b := decoded.Bounds()
	if b.Dx() != logicalW || b.Dy() != logicalH {
		t.Errorf("decoded bounds = %v, want %dx%d", b, logicalW, logicalH)
	}
}

func TestInferRawFormatMislabeledSingleChannel(t *testing.T) {
	w, h := 4, 4
	data := make([]byte, w*h) // exactly n bytes: true format is R8
	got := inferRawFormat(MipmapRG88, data, w, h)
	if got != MipmapR8 {
		t.Errorf("inferRawFormat() = %v, want MipmapR8", got)
	}
}

func TestInferRawFormatTrustsExactDeclaredMatch(t *testing.T) {
	w, h := 4, 4
	data := make([]byte, w*h*2) // matches declared RG88 exactly
	got := inferRawFormat(MipmapRG88, data, w, h)
	if got != MipmapRG88 {
		t.Errorf("inferRawFormat() = %v, want MipmapRG88 (trust exact declared match)", got)
	}
}

func TestConvertAnimatedMissingFrameTable(t *testing.T) {
	tex := makeTexture(PixelRGBA8888, FlagIsAnimated, 8, 8, 8, 8, []Image{{Mipmaps: []Mipmap{{Bytes: make([]byte, 16)}}}})
	_, _, err := Convert(tex, OutputGIF, nil)
	if !errors.Is(err, ErrInvalidData) {
		t.Fatalf("err = %v, want ErrInvalidData", err)
	}
}

func TestDecodeFirstMipmapCropsLikeConvert(t *testing.T) {
	raw := make([]byte, 8*8*4)
	tex := makeTexture(PixelRGBA8888, 0, 8, 8, 5, 3,
		[]Image{{Mipmaps: []Mipmap{{Format: MipmapRGBA8888, Width: 8, Height: 8, Bytes: raw}}}})

	img, err := DecodeFirstMipmap(tex)
	if err != nil {
		t.Fatalf("DecodeFirstMipmap: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 5 || b.Dy() != 3 {
		t.Errorf("bounds = %v, want 5x3", b)
	}
}
