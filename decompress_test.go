package wetex

import (
	"bytes"
	"errors"
	"testing"
)

// minimalLZ4Block builds the smallest valid LZ4 block-format encoding of
// literal-only data: a single token whose high nibble is the literal
// length, followed by the literal bytes, with no trailing match sequence.
func minimalLZ4Block(literal []byte) []byte {
	if len(literal) >= 15 {
		panic("fixture only supports literal runs under 15 bytes")
	}
	block := make([]byte, 0, len(literal)+1)
	block = append(block, byte(len(literal))<<4)
	block = append(block, literal...)
	return block
}

func TestDecompressMipmapLZ4(t *testing.T) {
	literal := []byte("abcd")
	m := &Mipmap{
		Width:            1,
		Height:           1,
		Format:           MipmapR8,
		IsLZ4Compressed:  true,
		DecompressedSize: uint32(len(literal)),
		Bytes:            minimalLZ4Block(literal),
	}

	if err := decompressMipmap(m); err != nil {
		t.Fatalf("decompressMipmap: %v", err)
	}
	if m.IsLZ4Compressed {
		t.Error("IsLZ4Compressed should be cleared after decompression")
	}
	if !bytes.Equal(m.Bytes, literal) {
		t.Errorf("Bytes = %v, want %v", m.Bytes, literal)
	}
}

func TestDecompressMipmapLZ4ZeroSizeIsNoop(t *testing.T) {
	original := []byte{1, 2, 3}
	m := &Mipmap{
		Width: 1, Height: 1,
		Format:           MipmapR8,
		IsLZ4Compressed:  true,
		DecompressedSize: 0,
		Bytes:            original,
	}
	if err := decompressMipmap(m); err != nil {
		t.Fatalf("decompressMipmap: %v", err)
	}
	if m.IsLZ4Compressed {
		t.Error("IsLZ4Compressed should be cleared even on the zero-size no-op path")
	}
	if !bytes.Equal(m.Bytes, original) {
		t.Errorf("Bytes should be untouched, got %v", m.Bytes)
	}
}

func TestDecompressMipmapBC2Rejected(t *testing.T) {
	m := &Mipmap{
		Width: 4, Height: 4,
		Format: MipmapCompressedDXT3,
		Bytes:  make([]byte, 16),
	}
	err := decompressMipmap(m)
	if !errors.Is(err, ErrDxtDecompression) {
		t.Fatalf("err = %v, want ErrDxtDecompression", err)
	}
}

func TestDecompressMipmapBC1ProducesRGBA8888(t *testing.T) {
	m := &Mipmap{
		Width: 4, Height: 4,
		Format: MipmapCompressedDXT1,
		Bytes:  make([]byte, 8), // one 4x4 BC1 block, all-zero is a valid encoding
	}
	if err := decompressMipmap(m); err != nil {
		t.Fatalf("decompressMipmap: %v", err)
	}
	if m.Format != MipmapRGBA8888 {
		t.Errorf("Format = %v, want MipmapRGBA8888", m.Format)
	}
	if len(m.Bytes) != 4*4*4 {
		t.Errorf("len(Bytes) = %d, want %d", len(m.Bytes), 4*4*4)
	}
}

func TestDecompressMipmapIdempotent(t *testing.T) {
	m := &Mipmap{
		Width: 4, Height: 4,
		Format: MipmapCompressedDXT1,
		Bytes:  make([]byte, 8),
	}
	if err := decompressMipmap(m); err != nil {
		t.Fatalf("first decompressMipmap: %v", err)
	}
	first := append([]byte(nil), m.Bytes...)

	if err := decompressMipmap(m); err != nil {
		t.Fatalf("second decompressMipmap: %v", err)
	}
	if !bytes.Equal(m.Bytes, first) {
		t.Error("second decompress call changed the payload")
	}
}

func TestDecompressMipmapUncompressedFormatIsNoop(t *testing.T) {
	original := []byte{1, 2, 3, 4}
	m := &Mipmap{Width: 1, Height: 1, Format: MipmapRGBA8888, Bytes: original}
	if err := decompressMipmap(m); err != nil {
		t.Fatalf("decompressMipmap: %v", err)
	}
	if !bytes.Equal(m.Bytes, original) {
		t.Error("uncompressed raw mipmap should be left untouched")
	}
}
