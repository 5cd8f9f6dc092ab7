package snapshot

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression names a payload compression scheme. The name is recorded in
// the snapshot header.
type Compression string

const (
	// None stores the payload uncompressed.
	None Compression = "none"
	// Zstd compresses with Zstandard (the default).
	Zstd Compression = "zstd"
	// LZ4 compresses with the LZ4 frame format.
	LZ4 Compression = "lz4"
)

func (c Compression) valid() bool {
	switch c {
	case None, Zstd, LZ4:
		return true
	}
	return false
}

func (c Compression) compress(data []byte) ([]byte, error) {
	switch c {
	case None:
		return data, nil
	case Zstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		defer enc.Close()
		return enc.EncodeAll(data, nil), nil
	case LZ4:
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("snapshot: unsupported compression %q", c)
	}
}

func (c Compression) decompress(data []byte) ([]byte, error) {
	switch c {
	case None:
		return data, nil
	case Zstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(data, nil)
	case LZ4:
		return io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	default:
		return nil, fmt.Errorf("snapshot: unsupported compression %q", c)
	}
}
