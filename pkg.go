package wetex

import (
	"io"
	"path"
	"strings"
)

// Safety limits for the PKG directory, per spec §4.1.
const (
	maxPkgMagicLength = 64
	maxPkgPathLength  = 4096
	maxPkgEntryCount  = 100_000
)

// Package is a parsed PKG archive: a magic string, the directory's header
// size, and its ordered entry list.
type Package struct {
	Magic      string
	HeaderSize int64
	Entries    []PackageEntry
}

// PackageEntry is one directory record, plus its payload when the package
// was read in full mode.
type PackageEntry struct {
	FullPath string
	Offset   uint32
	Length   uint32
	Bytes    []byte // nil when read with ReadPackageOptions.InfoOnly
	Kind     EntryKind
}

// HasBytes reports whether this entry's payload was loaded.
func (e PackageEntry) HasBytes() bool { return e.Bytes != nil }

// Name returns the entry's file stem (base name without extension).
func (e PackageEntry) Name() string {
	base := path.Base(e.FullPath)
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		return base[:i]
	}
	return base
}

// Extension returns the entry's extension including the leading dot, or ""
// if it has none.
func (e PackageEntry) Extension() string {
	ext := path.Ext(e.FullPath)
	return ext
}

// DirectoryPath returns the entry's parent directory, or "" at the root.
func (e PackageEntry) DirectoryPath() string {
	dir := path.Dir(e.FullPath)
	if dir == "." {
		return ""
	}
	return dir
}

// entryKindFromPath infers a PackageEntry's Kind from its path suffix,
// case-insensitively.
func entryKindFromPath(p string) EntryKind {
	lower := strings.ToLower(p)
	switch {
	case strings.HasSuffix(lower, ".tex"):
		return EntryTexture
	case strings.HasSuffix(lower, ".json"):
		return EntryConfig
	case strings.HasSuffix(lower, ".vert"), strings.HasSuffix(lower, ".frag"):
		return EntryShader
	default:
		return EntryOther
	}
}

// EntryCount returns the number of directory entries.
func (p *Package) EntryCount() int { return len(p.Entries) }

// TotalDataSize returns the sum of every entry's length.
func (p *Package) TotalDataSize() uint64 {
	var total uint64
	for _, e := range p.Entries {
		total += uint64(e.Length)
	}
	return total
}

// Stat returns the entry at the given path, if present.
func (p *Package) Stat(fullPath string) (PackageEntry, bool) {
	for _, e := range p.Entries {
		if e.FullPath == fullPath {
			return e, true
		}
	}
	return PackageEntry{}, false
}

// Kind returns the derived EntryKind for the given path, if present.
func (p *Package) Kind(fullPath string) (EntryKind, bool) {
	e, ok := p.Stat(fullPath)
	if !ok {
		return EntryOther, false
	}
	return e.Kind, true
}

// ReadPackageOptions controls how ReadPackage loads entry payloads.
type ReadPackageOptions struct {
	// InfoOnly skips loading entry bytes, leaving PackageEntry.Bytes nil.
	InfoOnly bool
}

// ReadPackage parses a PKG archive from r. A reader that also implements
// io.Seeker is read in place; any other reader is first buffered fully into
// memory so the parser can still seek within it.
func ReadPackage(r io.Reader, opts *ReadPackageOptions) (*Package, error) {
	src, err := ensureSeeker(r)
	if err != nil {
		return nil, err
	}
	infoOnly := opts != nil && opts.InfoOnly

	packageStart, err := src.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, errIO(err)
	}

	magic, err := readLengthPrefixedString(src, maxPkgMagicLength)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(magic, "PKGV") {
		return nil, errInvalidPkgMagic(magic)
	}

	entryCount, err := readU32(src)
	if err != nil {
		return nil, err
	}
	if entryCount > maxPkgEntryCount {
		return nil, errSafetyLimit("entry count exceeds limit")
	}

	entries := make([]PackageEntry, 0, entryCount)
	for i := uint32(0); i < entryCount; i++ {
		fullPath, err := readLengthPrefixedString(src, maxPkgPathLength)
		if err != nil {
			return nil, err
		}
		offset, err := readU32(src)
		if err != nil {
			return nil, err
		}
		length, err := readU32(src)
		if err != nil {
			return nil, err
		}
		entries = append(entries, PackageEntry{
			FullPath: fullPath,
			Offset:   offset,
			Length:   length,
			Kind:     entryKindFromPath(fullPath),
		})
	}

	dataStart, err := src.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, errIO(err)
	}
	headerSize := dataStart - packageStart

	if !infoOnly {
		for i := range entries {
			e := &entries[i]
			if _, err := src.Seek(dataStart+int64(e.Offset), io.SeekStart); err != nil {
				return nil, errIO(err)
			}
			data, err := readFull(src, int(e.Length))
			if err != nil {
				return nil, err
			}
			e.Bytes = data
		}
	}

	return &Package{
		Magic:      magic,
		HeaderSize: headerSize,
		Entries:    entries,
	}, nil
}

// ReadPackageInfo parses a PKG archive's directory without loading any
// entry payloads. Equivalent to ReadPackage with InfoOnly set.
func ReadPackageInfo(r io.Reader) (*Package, error) {
	return ReadPackage(r, &ReadPackageOptions{InfoOnly: true})
}
