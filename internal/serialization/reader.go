package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/born-ml/nncore/internal/tensor"
)

// ReadStateDict reads a state dictionary written by WriteStateDict.
//
// The header is validated before any tensor is decoded, and the data section
// is checked against the stored checksum if one is present. Returns the
// tensors and the metadata (including the "sha256" entry).
func ReadStateDict(r io.Reader) (map[string]*tensor.Tensor, map[string]string, error) {
	// Read header size (8 bytes, little-endian uint64)
	var headerSize uint64
	if err := binary.Read(r, binary.LittleEndian, &headerSize); err != nil {
		return nil, nil, fmt.Errorf("failed to read header size: %w", err)
	}
	if headerSize > MaxHeaderSize {
		return nil, nil, &ValidationError{
			Err:     ErrHeaderTooLarge,
			Details: fmt.Sprintf("%d bytes, max %d", headerSize, MaxHeaderSize),
		}
	}

	// Read header JSON
	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}

	var header Header
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, nil, fmt.Errorf("failed to parse header JSON: %w", err)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read tensor data: %w", err)
	}

	if err := ValidateHeader(&header, int64(len(data))); err != nil {
		return nil, nil, err
	}
	if stored, ok := header.Metadata[checksumKey]; ok {
		if err := ValidateChecksum(data, stored); err != nil {
			return nil, nil, err
		}
	}

	stateDict := make(map[string]*tensor.Tensor, len(header.Tensors))
	for name, info := range header.Tensors {
		chunk := data[info.DataOffsets[0]:info.DataOffsets[1]]
		values := make([]float64, len(chunk)/bytesPerElement)
		for i := range values {
			values[i] = math.Float64frombits(binary.LittleEndian.Uint64(chunk[i*bytesPerElement:]))
		}

		t, err := tensor.FromSlice(values, tensor.Shape(info.Shape))
		if err != nil {
			return nil, nil, fmt.Errorf("tensor %q: %w", name, err)
		}
		stateDict[name] = t
	}

	return stateDict, header.Metadata, nil
}

// LoadFile reads a state dictionary from path.
func LoadFile(path string) (map[string]*tensor.Tensor, map[string]string, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for checkpoint loading
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		_ = file.Close() // Best effort close
	}()

	return ReadStateDict(file)
}
