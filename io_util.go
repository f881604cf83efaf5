package wetex

import (
	"encoding/binary"
	"io"
	"math"
	"unicode/utf8"
)

// byteSource is the random-access interface both readers require: sequential
// read, absolute-position seek, current-position query, seek-to-end. A plain
// *bytes.Reader or *os.File satisfies it.
type byteSource interface {
	io.Reader
	io.Seeker
}

// ensureSeeker mirrors the teacher's read.go helper of the same purpose: a
// reader that cannot seek is buffered fully into memory so the random-access
// contract can still be honored.
func ensureSeeker(r io.Reader) (byteSource, error) {
	if s, ok := r.(byteSource); ok {
		return s, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errIO(err)
	}
	return &sliceSeeker{data: data}, nil
}

type sliceSeeker struct {
	data []byte
	pos  int64
}

func (s *sliceSeeker) Read(p []byte) (int, error) {
	if s.pos >= int64(len(s.data)) {
		return 0, io.EOF
	}
	n := copy(p, s.data[s.pos:])
	s.pos += int64(n)
	return n, nil
}

func (s *sliceSeeker) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = s.pos + offset
	case io.SeekEnd:
		abs = int64(len(s.data)) + offset
	}
	s.pos = abs
	return abs, nil
}

func streamLen(r byteSource) (int64, error) {
	cur, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, errIO(err)
	}
	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, errIO(err)
	}
	if _, err := r.Seek(cur, io.SeekStart); err != nil {
		return 0, errIO(err)
	}
	return end, nil
}

func readFull(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, errUnexpectedEOF("")
		}
		return nil, errIO(err)
	}
	return buf, nil
}

func readU32(r io.Reader) (uint32, error) {
	buf, err := readFull(r, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf), nil
}

func readI32(r io.Reader) (int32, error) {
	v, err := readU32(r)
	return int32(v), err
}

func readF32(r io.Reader) (float32, error) {
	v, err := readU32(r)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// readLengthPrefixedString reads [u32 len][len UTF-8 bytes], used by the PKG
// reader for its magic and its directory's entry paths.
func readLengthPrefixedString(r io.Reader, maxLen int) (string, error) {
	n, err := readU32(r)
	if err != nil {
		return "", err
	}
	if maxLen > 0 && int(n) > maxLen {
		return "", errSafetyLimit("string length exceeds limit")
	}
	buf, err := readFull(r, int(n))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(buf) {
		return "", errStringEncoding("non-UTF-8 string")
	}
	return string(buf), nil
}

// readNullTerminatedString reads byte-by-byte up to maxLen, stopping at a
// NUL and leaving the cursor positioned right after it. Every magic and name
// field in the TEX format is stored this way: variable-length content plus a
// single terminating NUL, never padded to a fixed width.
func readNullTerminatedString(r io.Reader, maxLen int) (string, error) {
	buf := make([]byte, 0, 16)
	one := make([]byte, 1)
	for i := 0; i < maxLen; i++ {
		if _, err := io.ReadFull(r, one); err != nil {
			return "", errUnexpectedEOF("")
		}
		if one[0] == 0 {
			return string(buf), nil
		}
		buf = append(buf, one[0])
	}
	return string(buf), nil
}

