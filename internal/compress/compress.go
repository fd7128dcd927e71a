// Package compress provides the codecs applied to document, snapshot and
// backup content at the service edge.
package compress

// Compress encodes and decodes content payloads.
type Compress interface {
	Encode(data []byte) ([]byte, error)
	Decode(data []byte) ([]byte, error)
}

// FromName returns the codec registered under the given name. Unknown names
// fall back to the nop codec.
func FromName(name string) Compress {
	switch name {
	case "gzip":
		return NewGZip()
	case "lz4":
		return NewLZ4()
	case "brotli":
		return NewBrotli()
	default:
		return NewNop()
	}
}
