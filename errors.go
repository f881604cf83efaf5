package wetex

import "errors"

// Kind classifies the failure modes a reader or converter can surface.
// Callers that care about a specific failure should compare against the
// sentinel Err* values below with errors.Is, not against Kind directly.
type Kind int

const (
	KindInvalidPkgMagic Kind = iota
	KindInvalidTexMagic
	KindUnsupportedContainerVersion
	KindUnsupportedMipmapFormat
	KindLz4Decompression
	KindDxtDecompression
	KindInvalidData
	KindSafetyLimit
	KindUnexpectedEOF
	KindStringEncoding
	KindIO
	KindImageConversion
)

func (k Kind) String() string {
	switch k {
	case KindInvalidPkgMagic:
		return "InvalidPkgMagic"
	case KindInvalidTexMagic:
		return "InvalidTexMagic"
	case KindUnsupportedContainerVersion:
		return "UnsupportedContainerVersion"
	case KindUnsupportedMipmapFormat:
		return "UnsupportedMipmapFormat"
	case KindLz4Decompression:
		return "Lz4Decompression"
	case KindDxtDecompression:
		return "DxtDecompression"
	case KindInvalidData:
		return "InvalidData"
	case KindSafetyLimit:
		return "SafetyLimit"
	case KindUnexpectedEOF:
		return "UnexpectedEof"
	case KindStringEncoding:
		return "StringEncoding"
	case KindIO:
		return "Io"
	case KindImageConversion:
		return "ImageConversion"
	default:
		return "Unknown"
	}
}

// Sentinel causes. Use errors.Is(err, wetex.ErrInvalidPkgMagic) etc; *Error
// wraps one of these (or an arbitrary cause for Io/ImageConversion) and
// carries a Kind plus an optional human-facing Suggestion.
var (
	ErrInvalidPkgMagic             = errors.New("wetex: invalid PKG magic")
	ErrInvalidTexMagic             = errors.New("wetex: invalid TEX magic")
	ErrUnsupportedContainerVersion = errors.New("wetex: unsupported container version")
	ErrUnsupportedMipmapFormat     = errors.New("wetex: unsupported mipmap format")
	ErrLz4Decompression            = errors.New("wetex: LZ4 decompression failed")
	ErrDxtDecompression            = errors.New("wetex: block decompression failed")
	ErrInvalidData                 = errors.New("wetex: invalid data")
	ErrSafetyLimit                 = errors.New("wetex: safety limit exceeded")
	ErrUnexpectedEOF               = errors.New("wetex: unexpected end of stream")
	ErrStringEncoding              = errors.New("wetex: invalid string encoding")
)

// Error is the structured failure type returned by every exported wetex
// function. It carries a machine-readable Kind, an optional human-facing
// Suggestion, and the wrapped cause.
type Error struct {
	Kind       Kind
	Suggestion string
	Detail     string
	cause      error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.cause }

// Is reports whether target is the sentinel this Error was built from, so
// errors.Is(err, wetex.ErrInvalidPkgMagic) keeps working against the
// wrapper the way it would against a bare sentinel.
func (e *Error) Is(target error) bool {
	return errors.Is(e.cause, target)
}

func newErr(kind Kind, sentinel error, detail, suggestion string) *Error {
	return &Error{Kind: kind, cause: sentinel, Detail: detail, Suggestion: suggestion}
}

func errInvalidPkgMagic(found string) *Error {
	return newErr(KindInvalidPkgMagic, ErrInvalidPkgMagic, "found "+found,
		"This file may not be a valid PKG file. Verify it comes from Wallpaper Engine.")
}

func errInvalidTexMagic(expected, found string) *Error {
	return newErr(KindInvalidTexMagic, ErrInvalidTexMagic, "expected "+expected+", found "+found,
		"This file may not be a valid TEX file. Use --no-convert to extract raw files.")
}

func errUnsupportedContainerVersion(version string) *Error {
	return newErr(KindUnsupportedContainerVersion, ErrUnsupportedContainerVersion, "version "+version,
		"This file uses a newer format version. Please report this issue on GitHub.")
}

func errUnsupportedMipmapFormat(detail string) *Error {
	return newErr(KindUnsupportedMipmapFormat, ErrUnsupportedMipmapFormat, detail,
		"Try using --format png or --no-convert to extract raw data.")
}

func errLz4Decompression(cause error) *Error {
	e := newErr(KindLz4Decompression, ErrLz4Decompression, "",
		"The file may be corrupted. Try re-downloading from Wallpaper Engine workshop.")
	if cause != nil {
		e.cause = errors.Join(ErrLz4Decompression, cause)
	}
	return e
}

func errDxtDecompression(detail string) *Error {
	return newErr(KindDxtDecompression, ErrDxtDecompression, detail,
		"The file may be corrupted. Try re-downloading from Wallpaper Engine workshop.")
}

func errInvalidData(detail string) *Error {
	return newErr(KindInvalidData, ErrInvalidData, detail, "")
}

func errSafetyLimit(detail string) *Error {
	return newErr(KindSafetyLimit, ErrSafetyLimit, detail, "The file may be corrupted or malicious.")
}

func errUnexpectedEOF(detail string) *Error {
	return newErr(KindUnexpectedEOF, ErrUnexpectedEOF, detail, "")
}

func errStringEncoding(detail string) *Error {
	return newErr(KindStringEncoding, ErrStringEncoding, detail, "")
}

func errIO(cause error) *Error {
	e := newErr(KindIO, nil, "", "")
	e.cause = cause
	return e
}

func errImageConversion(cause error) *Error {
	e := newErr(KindImageConversion, nil, "", "Try a different output format with --format.")
	e.cause = cause
	return e
}
