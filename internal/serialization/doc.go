// Package serialization saves and restores optimizer state dicts.
//
// Files use the SafeTensors layout so they can be inspected with standard
// tooling:
//
//	Format Structure:
//	  [8 bytes: Header Size (uint64 LE)]
//	  [Header: JSON {name: {dtype, shape, data_offsets}, "__metadata__": {...}}]
//	  [Tensor data: little-endian float64, packed in name order]
//
// Every tensor is stored as "F64". The metadata always carries a SHA-256
// checksum of the data section under the "sha256" key; ReadStateDict
// verifies it when present.
//
// Example usage:
//
//	// Save optimizer state
//	err := serialization.SaveFile("adam.safetensors", optimizer.StateDict(),
//	    map[string]string{"optimizer": "adam"})
//
//	// Restore it into a freshly constructed optimizer
//	state, _, err := serialization.LoadFile("adam.safetensors")
//	if err != nil {
//	    return err
//	}
//	err = optimizer.LoadStateDict(state)
package serialization
