package progress

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"

	"orthoview.app/internal/ortho"
)

// Progress codes are the shareable serialization of a view triplet: a
// version byte, the resolution, then the nine arrays (cells, v, h per view
// in front/top/side order) as varint RLE pairs, base64-encoded. The format
// is deterministic: identical views always produce identical codes.

const codeVersion = 1

// EncodeCode serializes a view triplet into a progress code.
func EncodeCode(v ortho.Views) string {
	var buf bytes.Buffer
	var tmp [binary.MaxVarintLen64]byte

	put := func(u uint64) {
		n := binary.PutUvarint(tmp[:], u)
		buf.Write(tmp[:n])
	}

	put(codeVersion)
	put(uint64(v.Front.R))
	for _, view := range []ortho.View{v.Front, v.Top, v.Side} {
		for _, arr := range [][]uint8{view.Cells, view.V, view.H} {
			writeRLE(&buf, tmp[:], arr)
		}
	}
	return base64.RawURLEncoding.EncodeToString(buf.Bytes())
}

// DecodeCode parses a progress code back into a view triplet.
func DecodeCode(code string) (ortho.Views, error) {
	var out ortho.Views
	raw, err := base64.RawURLEncoding.DecodeString(code)
	if err != nil {
		return out, fmt.Errorf("progress code: %w", err)
	}
	rd := bytes.NewReader(raw)

	ver, err := binary.ReadUvarint(rd)
	if err != nil {
		return out, fmt.Errorf("progress code: %w", err)
	}
	if ver != codeVersion {
		return out, fmt.Errorf("progress code: unsupported version %d", ver)
	}
	r64, err := binary.ReadUvarint(rd)
	if err != nil {
		return out, fmt.Errorf("progress code: %w", err)
	}
	if r64 == 0 || r64 > 64 {
		return out, fmt.Errorf("progress code: bad resolution %d", r64)
	}
	r := int(r64)

	out = ortho.Views{Front: ortho.NewView(r), Top: ortho.NewView(r), Side: ortho.NewView(r)}
	for _, view := range []*ortho.View{&out.Front, &out.Top, &out.Side} {
		for _, arr := range [][]uint8{view.Cells, view.V, view.H} {
			if err := readRLE(rd, arr); err != nil {
				return out, err
			}
		}
	}
	return out, nil
}

func writeRLE(buf *bytes.Buffer, tmp []byte, arr []uint8) {
	i := 0
	for i < len(arr) {
		v := arr[i]
		run := 1
		for j := i + 1; j < len(arr) && arr[j] == v; j++ {
			run++
		}
		n := binary.PutUvarint(tmp, uint64(v))
		buf.Write(tmp[:n])
		n = binary.PutUvarint(tmp, uint64(run))
		buf.Write(tmp[:n])
		i += run
	}
}

func readRLE(rd *bytes.Reader, arr []uint8) error {
	i := 0
	for i < len(arr) {
		v, err := binary.ReadUvarint(rd)
		if err != nil {
			return fmt.Errorf("progress code: %w", err)
		}
		run, err := binary.ReadUvarint(rd)
		if err != nil {
			return fmt.Errorf("progress code: %w", err)
		}
		if v > 0xFF {
			return fmt.Errorf("progress code: cell value too large: %d", v)
		}
		if run == 0 || int(run) > len(arr)-i {
			return fmt.Errorf("progress code: bad run length %d at %d", run, i)
		}
		for k := 0; k < int(run); k++ {
			arr[i] = uint8(v)
			i++
		}
	}
	return nil
}
