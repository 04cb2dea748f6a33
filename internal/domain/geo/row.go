package geo

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
)

// NsweAll marks every direction as passable. Together with height 0 it is
// the sentinel for "no terrain data at this point".
const NsweAll byte = 0xFF

const (
	RowBlocks   = BlocksPerSide
	SampleBytes = 3
	RowBytes    = RowBlocks * SampleBytes
)

type Sample struct {
	Height int16
	Nswe   byte
}

// NoData is the sample substituted when the engine has nothing loaded at a
// point. Absence degrades to fully open rather than blocking.
var NoData = Sample{Height: 0, Nswe: NsweAll}

// EncodeRow packs 256 samples into the wire layout: per block a
// little-endian signed 16-bit height followed by the nswe byte.
func EncodeRow(samples []Sample) ([]byte, error) {
	if len(samples) != RowBlocks {
		return nil, fmt.Errorf("row must hold %d samples, got %d", RowBlocks, len(samples))
	}
	out := make([]byte, RowBytes)
	for i, s := range samples {
		off := i * SampleBytes
		binary.LittleEndian.PutUint16(out[off:], uint16(s.Height))
		out[off+2] = s.Nswe
	}
	return out, nil
}

func DecodeRow(data []byte) ([]Sample, error) {
	if len(data) != RowBytes {
		return nil, fmt.Errorf("row payload must be %d bytes, got %d", RowBytes, len(data))
	}
	out := make([]Sample, RowBlocks)
	for i := range out {
		off := i * SampleBytes
		out[i] = Sample{
			Height: int16(binary.LittleEndian.Uint16(data[off:])),
			Nswe:   data[off+2],
		}
	}
	return out, nil
}

// EncodeRowText armors a packed row for the text command channel.
func EncodeRowText(row []byte) string {
	return base64.StdEncoding.EncodeToString(row)
}

func DecodeRowText(encoded string) ([]Sample, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode row payload: %w", err)
	}
	return DecodeRow(raw)
}
