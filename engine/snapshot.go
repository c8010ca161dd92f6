package engine

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/imputego/codec"
)

var (
	snapshotMagic         = [4]byte{'I', 'M', 'P', '1'}
	snapshotFormatVersion = uint16(1)
)

// maxSectionLen bounds a section's declared length so a corrupt or hostile
// length prefix cannot force a huge allocation before the read fails.
const maxSectionLen = 1 << 30

// Compression selects how the snapshot body is compressed.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionZstd
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Compression(%d)", uint8(c))
	}
}

// Valid reports whether c is a defined compression scheme.
func (c Compression) Valid() bool {
	return c <= CompressionLZ4
}

// snapshotManifest is the self-describing, codec-marshaled section of a
// snapshot. Model bytes are always gob: the ensemble holds interface-typed
// slots and gob's type registration is the round-trip mechanism for those.
type snapshotManifest struct {
	Config     Config    `json:"config"`
	Cols       int       `json:"cols"`
	Rounds     int       `json:"rounds"`
	VisitOrder []int     `json:"visit_order"`
	InitValues []float64 `json:"init_values"`
	SlotCount  int       `json:"slot_count"`
}

// SaveState writes a snapshot of the retained run state to w.
//
// Format:
//  1. header: magic, version, compression, manifest-codec name
//  2. body (compressed as a whole):
//     a. u32 length + manifest bytes (manifest codec)
//     b. u32 length + fitted-slot bytes (gob)
//
// The manifest codec defaults to codec.Default; model implementations must
// be registered with encoding/gob.
func SaveState(w io.Writer, state *State, c codec.Codec, comp Compression) error {
	if state == nil || state.Models == nil {
		return ErrNoStoredModels
	}
	if c == nil {
		c = codec.Default
	}
	if !comp.Valid() {
		return &ErrInvalidConfig{Param: "compression", Value: comp.String()}
	}

	codecName := c.Name()
	if len(codecName) > 0xFF {
		return fmt.Errorf("snapshot codec name too long: %d", len(codecName))
	}

	// Header (8 bytes + codec name)
	// [0:4] magic
	// [4:6] version
	// [6]   compression
	// [7]   codec name len
	var hdr [8]byte
	copy(hdr[0:4], snapshotMagic[:])
	binary.LittleEndian.PutUint16(hdr[4:6], snapshotFormatVersion)
	hdr[6] = byte(comp)
	hdr[7] = byte(len(codecName))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	if _, err := w.Write([]byte(codecName)); err != nil {
		return err
	}

	body, closeBody, err := compressWriter(w, comp)
	if err != nil {
		return err
	}

	slots := state.Models.slots()

	manifest := snapshotManifest{
		Config:     state.Config,
		Cols:       state.Cols,
		Rounds:     state.Models.Rounds(),
		VisitOrder: state.VisitOrder,
		InitValues: state.InitValues,
		SlotCount:  len(slots),
	}
	manifestBytes, err := c.Marshal(manifest)
	if err != nil {
		closeBody()
		return fmt.Errorf("marshal manifest: %w", err)
	}

	modelBytes, err := (codec.Gob{}).Marshal(slots)
	if err != nil {
		closeBody()
		return fmt.Errorf("marshal models: %w", err)
	}

	if err := writeSection(body, manifestBytes); err != nil {
		closeBody()
		return err
	}
	if err := writeSection(body, modelBytes); err != nil {
		closeBody()
		return err
	}

	return closeBody()
}

// LoadState reads a snapshot written by SaveState.
func LoadState(r io.Reader) (*State, error) {
	var hdr [8]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("read snapshot header: %w", err)
	}
	if [4]byte(hdr[0:4]) != snapshotMagic {
		return nil, fmt.Errorf("not an imputation snapshot")
	}
	if v := binary.LittleEndian.Uint16(hdr[4:6]); v != snapshotFormatVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", v)
	}

	comp := Compression(hdr[6])
	if !comp.Valid() {
		return nil, fmt.Errorf("unsupported snapshot compression %d", hdr[6])
	}

	nameBytes := make([]byte, hdr[7])
	if _, err := io.ReadFull(r, nameBytes); err != nil {
		return nil, fmt.Errorf("read codec name: %w", err)
	}
	c, ok := codec.ByName(string(nameBytes))
	if !ok {
		return nil, fmt.Errorf("unknown snapshot codec %q", nameBytes)
	}

	body, closeBody, err := decompressReader(r, comp)
	if err != nil {
		return nil, err
	}
	defer closeBody()

	manifestBytes, err := readSection(body)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var manifest snapshotManifest
	if err := c.Unmarshal(manifestBytes, &manifest); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	if err := manifest.Config.Validate(); err != nil {
		return nil, fmt.Errorf("snapshot config: %w", err)
	}

	modelBytes, err := readSection(body)
	if err != nil {
		return nil, fmt.Errorf("read models: %w", err)
	}
	var slots []Slot
	if err := (codec.Gob{}).Unmarshal(modelBytes, &slots); err != nil {
		return nil, fmt.Errorf("unmarshal models: %w", err)
	}
	if len(slots) != manifest.SlotCount {
		return nil, fmt.Errorf("snapshot corrupt: %d slots, manifest says %d", len(slots), manifest.SlotCount)
	}

	ens := NewEnsemble(manifest.Rounds, manifest.Cols)
	for _, s := range slots {
		if s.Round < 0 || s.Round >= manifest.Rounds || s.Col < 0 || s.Col >= manifest.Cols {
			return nil, fmt.Errorf("snapshot corrupt: slot (%d,%d) out of range", s.Round, s.Col)
		}
		ens[s.Round][s.Col] = s.Model
	}

	return &State{
		Config:     manifest.Config,
		Cols:       manifest.Cols,
		VisitOrder: manifest.VisitOrder,
		InitValues: manifest.InitValues,
		Models:     ens,
	}, nil
}

func writeSection(w io.Writer, data []byte) error {
	if len(data) > maxSectionLen {
		return fmt.Errorf("snapshot section too large: %d bytes", len(data))
	}
	var n [4]byte
	binary.LittleEndian.PutUint32(n[:], uint32(len(data)))
	if _, err := w.Write(n[:]); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}

func readSection(r io.Reader) ([]byte, error) {
	var n [4]byte
	if _, err := io.ReadFull(r, n[:]); err != nil {
		return nil, err
	}
	size := binary.LittleEndian.Uint32(n[:])
	if size > maxSectionLen {
		return nil, fmt.Errorf("snapshot corrupt: section length %d exceeds %d", size, maxSectionLen)
	}
	data := make([]byte, size)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, err
	}
	return data, nil
}

func compressWriter(w io.Writer, comp Compression) (io.Writer, func() error, error) {
	switch comp {
	case CompressionZstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, nil, err
		}
		return zw, zw.Close, nil
	case CompressionLZ4:
		lw := lz4.NewWriter(w)
		return lw, lw.Close, nil
	default:
		return w, func() error { return nil }, nil
	}
}

func decompressReader(r io.Reader, comp Compression) (io.Reader, func(), error) {
	switch comp {
	case CompressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return zr, zr.Close, nil
	case CompressionLZ4:
		return lz4.NewReader(r), func() {}, nil
	default:
		return r, func() {}, nil
	}
}
