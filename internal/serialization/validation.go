package serialization

import (
	"fmt"
	"sort"
	"strings"
)

// Validation limits for security and resource protection.
const (
	MaxHeaderSize    = 100 * 1024 * 1024 // 100MB - maximum header size
	MaxTensorCount   = 100_000           // Maximum number of tensors in a file
	MaxTensorNameLen = 4096              // Maximum tensor name length
)

// ValidateTensorName rejects names that are empty, too long, reserved or
// contain path separators, ".." or null bytes.
func ValidateTensorName(name string) error {
	invalid := func(details string) error {
		return &ValidationError{Err: ErrInvalidTensorName, Tensor: name, Details: details}
	}

	switch {
	case name == "":
		return invalid("empty name")
	case len(name) > MaxTensorNameLen:
		return invalid(fmt.Sprintf("length %d > max %d", len(name), MaxTensorNameLen))
	case name == metadataKey:
		return invalid("reserved name")
	case strings.Contains(name, ".."):
		return invalid("contains '..' (path traversal attempt)")
	case strings.ContainsAny(name, "/\\"):
		return invalid("contains path separator (/ or \\)")
	case strings.Contains(name, "\x00"):
		return invalid("contains null byte")
	}
	return nil
}

// ValidateHeader checks names, dtypes, shapes and offsets of every tensor
// against a data section of dataSize bytes.
//
// Offsets must lie inside the data section, must not overlap and must span
// exactly 8 bytes per element.
func ValidateHeader(h *Header, dataSize int64) error {
	if len(h.Tensors) > MaxTensorCount {
		return &ValidationError{
			Err:     ErrTooManyTensors,
			Details: fmt.Sprintf("got %d, max %d", len(h.Tensors), MaxTensorCount),
		}
	}

	names := make([]string, 0, len(h.Tensors))
	for name, info := range h.Tensors {
		if err := ValidateTensorName(name); err != nil {
			return err
		}
		if info.DType != DTypeF64 {
			return &ValidationError{Err: ErrUnsupportedDType, Tensor: name, Details: info.DType}
		}

		elements := int64(1)
		for _, dim := range info.Shape {
			if dim <= 0 {
				return &ValidationError{Err: ErrOutOfBounds, Tensor: name, Details: fmt.Sprintf("invalid shape %v", info.Shape)}
			}
			elements *= int64(dim)
			if elements*bytesPerElement > dataSize {
				return &ValidationError{Err: ErrOutOfBounds, Tensor: name, Details: fmt.Sprintf("shape %v exceeds data section", info.Shape)}
			}
		}

		start, end := info.DataOffsets[0], info.DataOffsets[1]
		if start < 0 || end < start || end > dataSize {
			return &ValidationError{
				Err:     ErrOutOfBounds,
				Tensor:  name,
				Details: fmt.Sprintf("offsets [%d, %d) outside data size %d", start, end, dataSize),
			}
		}
		if end-start != elements*bytesPerElement {
			return &ValidationError{
				Err:     ErrOutOfBounds,
				Tensor:  name,
				Details: fmt.Sprintf("offsets span %d bytes, shape %v needs %d", end-start, info.Shape, elements*bytesPerElement),
			}
		}
		names = append(names, name)
	}

	// Sort tensors by offset for efficient overlap detection.
	sort.Slice(names, func(i, j int) bool {
		return h.Tensors[names[i]].DataOffsets[0] < h.Tensors[names[j]].DataOffsets[0]
	})
	for i := 1; i < len(names); i++ {
		prev, cur := h.Tensors[names[i-1]], h.Tensors[names[i]]
		if prev.DataOffsets[1] > cur.DataOffsets[0] {
			return &ValidationError{
				Err:     ErrOffsetOverlap,
				Tensor:  names[i-1],
				Tensor2: names[i],
				Details: fmt.Sprintf("regions [%d-%d] and [%d-%d] overlap",
					prev.DataOffsets[0], prev.DataOffsets[1], cur.DataOffsets[0], cur.DataOffsets[1]),
			}
		}
	}

	return nil
}
