// Package snapshot persists datasets as immutable, self-describing blobs.
//
// A snapshot records its codec and compression by name in a small binary
// header, followed by the CRC32-checksummed, compressed payload. Values are
// stored as IEEE-754 bit patterns so that NaN and infinite measurements
// survive JSON encoding exactly.
package snapshot

import (
	"context"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"math"

	"github.com/hupe1980/genphen"
	"github.com/hupe1980/genphen/blobstore"
	"github.com/hupe1980/genphen/codec"
	"github.com/hupe1980/genphen/resource"
)

var (
	magic         = [4]byte{'G', 'P', 'S', '1'}
	formatVersion = uint16(1)
)

const headerSize = 16

type options struct {
	codec       codec.Codec
	compression Compression
	controller  *resource.Controller
	logger      *genphen.Logger
}

// Option configures Save and Load.
type Option func(*options)

// WithCodec sets the payload codec. Defaults to codec.Default.
func WithCodec(c codec.Codec) Option {
	return func(o *options) { o.codec = c }
}

// WithCompression sets the payload compression. Defaults to Zstd.
func WithCompression(c Compression) Option {
	return func(o *options) { o.compression = c }
}

// WithController rate-limits snapshot IO through a resource controller.
func WithController(c *resource.Controller) Option {
	return func(o *options) { o.controller = c }
}

// WithLogger attaches a logger for operation-level diagnostics.
func WithLogger(l *genphen.Logger) Option {
	return func(o *options) { o.logger = l }
}

// fileDataset is the wire form of a dataset. Values carry IEEE-754 bit
// patterns rather than floats: JSON cannot represent NaN or infinities,
// and measurements must round-trip exactly.
type fileDataset struct {
	Entries     []string   `json:"entries"`
	Populations []string   `json:"populations"`
	Features    []string   `json:"features"`
	Values      [][]uint64 `json:"values"`
	Missing     [][]bool   `json:"missing"`
	Mask        [][]bool   `json:"mask"`
}

// Save validates d and writes it to the store under name.
//
// Layout: 16-byte header (magic, version, codec/compression name lengths,
// payload CRC32), codec name, compression name, compressed payload.
func Save(ctx context.Context, store blobstore.Store, name string, d *genphen.Dataset, opts ...Option) error {
	o := applyOptions(opts)

	err := save(ctx, store, name, d, o)
	if o.logger != nil {
		o.logger.LogSnapshot(ctx, "save", name, 0, err)
	}
	return err
}

func save(ctx context.Context, store blobstore.Store, name string, d *genphen.Dataset, o options) error {
	if err := d.Validate(); err != nil {
		return err
	}

	payload, err := o.codec.Marshal(toFile(d))
	if err != nil {
		return fmt.Errorf("snapshot: encode failed: %w", err)
	}
	compressed, err := o.compression.compress(payload)
	if err != nil {
		return fmt.Errorf("snapshot: compression failed: %w", err)
	}

	codecName := []byte(o.codec.Name())
	compName := []byte(o.compression)

	buf := make([]byte, 0, headerSize+len(codecName)+len(compName)+len(compressed))
	var hdr [headerSize]byte
	copy(hdr[0:4], magic[:])
	binary.LittleEndian.PutUint16(hdr[4:6], formatVersion)
	binary.LittleEndian.PutUint16(hdr[6:8], uint16(len(codecName)))
	binary.LittleEndian.PutUint16(hdr[8:10], uint16(len(compName)))
	binary.LittleEndian.PutUint32(hdr[10:14], crc32.ChecksumIEEE(compressed))
	buf = append(buf, hdr[:]...)
	buf = append(buf, codecName...)
	buf = append(buf, compName...)
	buf = append(buf, compressed...)

	if err := o.controller.AcquireIO(ctx, len(buf)); err != nil {
		return err
	}
	return store.Put(ctx, name, buf)
}

// Load reads, verifies, and decodes the named snapshot. The decoded
// dataset is re-validated before it is returned.
func Load(ctx context.Context, store blobstore.Store, name string, opts ...Option) (*genphen.Dataset, error) {
	o := applyOptions(opts)

	d, err := load(ctx, store, name, o)
	if o.logger != nil {
		o.logger.LogSnapshot(ctx, "load", name, 0, err)
	}
	return d, err
}

func load(ctx context.Context, store blobstore.Store, name string, o options) (*genphen.Dataset, error) {
	buf, err := store.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := o.controller.AcquireIO(ctx, len(buf)); err != nil {
		return nil, err
	}

	if len(buf) < headerSize || [4]byte(buf[0:4]) != magic {
		return nil, fmt.Errorf("snapshot: unsupported format: bad magic")
	}
	if v := binary.LittleEndian.Uint16(buf[4:6]); v != formatVersion {
		return nil, fmt.Errorf("snapshot: unsupported format version: %d", v)
	}
	codecLen := int(binary.LittleEndian.Uint16(buf[6:8]))
	compLen := int(binary.LittleEndian.Uint16(buf[8:10]))
	sum := binary.LittleEndian.Uint32(buf[10:14])
	if len(buf) < headerSize+codecLen+compLen {
		return nil, fmt.Errorf("snapshot: truncated header")
	}

	codecName := string(buf[headerSize : headerSize+codecLen])
	compName := Compression(buf[headerSize+codecLen : headerSize+codecLen+compLen])
	compressed := buf[headerSize+codecLen+compLen:]

	if actual := crc32.ChecksumIEEE(compressed); actual != sum {
		return nil, &ErrChecksumMismatch{Expected: sum, Actual: actual}
	}

	c, ok := codec.ByName(codecName)
	if !ok {
		return nil, fmt.Errorf("snapshot: unsupported codec %q", codecName)
	}
	if !compName.valid() {
		return nil, fmt.Errorf("snapshot: unsupported compression %q", compName)
	}

	payload, err := compName.decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("snapshot: decompression failed: %w", err)
	}

	var f fileDataset
	if err := c.Unmarshal(payload, &f); err != nil {
		return nil, fmt.Errorf("snapshot: decode failed: %w", err)
	}

	d := fromFile(&f)
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("snapshot: decoded dataset is invalid: %w", err)
	}
	return d, nil
}

func applyOptions(opts []Option) options {
	o := options{
		codec:       codec.Default,
		compression: Zstd,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.codec == nil {
		o.codec = codec.Default
	}
	return o
}

func toFile(d *genphen.Dataset) *fileDataset {
	f := &fileDataset{
		Entries:     d.Entries,
		Populations: d.Populations,
		Features:    d.Features,
		Values:      make([][]uint64, len(d.Values)),
		Missing:     d.Missing,
		Mask:        d.Mask,
	}
	for i, row := range d.Values {
		bits := make([]uint64, len(row))
		for j, v := range row {
			bits[j] = math.Float64bits(v)
		}
		f.Values[i] = bits
	}
	return f
}

func fromFile(f *fileDataset) *genphen.Dataset {
	d := &genphen.Dataset{
		Entries:     f.Entries,
		Populations: f.Populations,
		Features:    f.Features,
		Values:      make([][]float64, len(f.Values)),
		Missing:     f.Missing,
		Mask:        f.Mask,
	}
	for i, row := range f.Values {
		vals := make([]float64, len(row))
		for j, b := range row {
			vals[j] = math.Float64frombits(b)
		}
		d.Values[i] = vals
	}
	return d
}
