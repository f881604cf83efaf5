package wetex

// VideoDataLocation describes where a video texture's MP4 payload sits
// within the original input buffer, so a caller can slice it directly
// instead of copying it through the core's API.
type VideoDataLocation struct {
	IsVideo    bool
	DataOffset int64
	DataSize   uint32
}

// VideoDataLocation reports the file offset and size of a video texture's
// MP4 payload, using the bookkeeping a headers-only or full ReadTexture
// call already records on the first mipmap. This exists so a host embedding
// wetex can extract hundreds-of-megabytes video payloads without pulling
// them through the parsed-model boundary, per spec's zero-copy design note.
func (t *Texture) VideoDataLocation() VideoDataLocation {
	if !t.IsVideo() {
		return VideoDataLocation{}
	}
	img, ok := t.FirstImage()
	if !ok {
		return VideoDataLocation{IsVideo: true}
	}
	mip, ok := img.FirstMipmap()
	if !ok {
		return VideoDataLocation{IsVideo: true}
	}
	return VideoDataLocation{
		IsVideo:    true,
		DataOffset: mip.FileOffset,
		DataSize:   mip.OriginalByteCount,
	}
}
