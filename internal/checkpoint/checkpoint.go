// Package checkpoint persists trained forecasting models as single
// .augur files: a JSON header with the training config, fitted scaler,
// and tensor table, followed by raw little-endian tensor data, the
// whole payload guarded by a SHA-256 checksum.
package checkpoint

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/augur-ml/augur/internal/forecast"
	"github.com/augur-ml/augur/internal/series"
	"github.com/augur-ml/augur/internal/tensor"
)

// Save writes a trained model and its fitted scaler to path. Tensors
// are laid out in name order, so saving the same model twice produces
// byte-identical data sections.
func Save[B tensor.Backend](path string, model *forecast.Model[B], scaler *series.Scaler) error {
	stateDict := model.StateDict()

	names := make([]string, 0, len(stateDict))
	for name := range stateDict {
		names = append(names, name)
	}
	sort.Strings(names)

	header := Header{
		FormatVersion: FormatVersion,
		AugurVersion:  ToolkitVersion,
		CreatedAt:     time.Now().UTC(),
		Config:        model.Config(),
		Scaler:        *scaler,
		Tensors:       make([]TensorMeta, 0, len(names)),
	}

	var offset int64
	var data []byte
	for _, name := range names {
		raw := stateDict[name]
		size := int64(raw.NumElements() * raw.DType().Size())

		header.Tensors = append(header.Tensors, TensorMeta{
			Name:   name,
			DType:  dtypeToString(raw.DType()),
			Shape:  []int(raw.Shape()),
			Offset: offset,
			Size:   size,
		})

		offset += size
		data = append(data, raw.Data()...)
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("marshaling header: %w", err)
	}
	if len(headerJSON) > maxHeaderSize {
		return ErrHeaderTooLarge
	}

	// The checksum covers everything mutable: header JSON plus tensor
	// data. Flipping any byte of either fails the load.
	digest := sha256.New()
	digest.Write(headerJSON)
	digest.Write(data)
	var checksum [checksumSize]byte
	copy(checksum[:], digest.Sum(nil))

	fixed := make([]byte, fixedHeaderSize)
	copy(fixed[0:4], Magic)
	binary.LittleEndian.PutUint32(fixed[4:8], uint32(FormatVersion))
	binary.LittleEndian.PutUint64(fixed[16:24], uint64(len(headerJSON)))
	binary.LittleEndian.PutUint64(fixed[24:32], uint64(len(data)))
	copy(fixed[checksumOffset:checksumOffset+checksumSize], checksum[:])

	//nolint:gosec // G304: File path comes from user input, which is expected for model saving
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	for _, chunk := range [][]byte{fixed, headerJSON} {
		if _, err := file.Write(chunk); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}

	if pad := padding(int64(fixedHeaderSize + len(headerJSON))); pad > 0 {
		if _, err := file.Write(make([]byte, pad)); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}

	if _, err := file.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return file.Close()
}

// Load rebuilds a model and scaler from a .augur file. The header's
// config drives model construction, then saved values overwrite the
// fresh initialization, so the result predicts exactly as the saved
// model did.
func Load[B tensor.Backend](path string, backend B) (*forecast.Model[B], *series.Scaler, error) {
	header, stateDict, err := read(path, backend)
	if err != nil {
		return nil, nil, err
	}

	model, err := forecast.NewModel(header.Config, backend)
	if err != nil {
		return nil, nil, fmt.Errorf("rebuilding model from %s: %w", path, err)
	}
	if err := model.LoadStateDict(stateDict); err != nil {
		return nil, nil, fmt.Errorf("loading parameters from %s: %w", path, err)
	}

	scaler := header.Scaler
	return model, &scaler, nil
}

// ReadHeader parses just the header of a .augur file, skipping tensor
// data and checksum validation. Useful for inspecting a checkpoint
// without paying for a full load.
func ReadHeader(path string) (*Header, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model loading
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	header, _, _, err := parseFixedHeader(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return header, nil
}

// read parses the whole file, validates the checksum, and materializes
// every tensor on the backend's device.
func read[B tensor.Backend](path string, backend B) (*Header, map[string]*tensor.RawTensor, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model loading
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	header, headerJSON, layout, err := parseFixedHeader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	if pad := padding(int64(fixedHeaderSize + len(headerJSON))); pad > 0 {
		if _, err := io.CopyN(io.Discard, file, pad); err != nil {
			return nil, nil, fmt.Errorf("%s: reading padding: %w", path, err)
		}
	}

	data := make([]byte, layout.dataSize)
	if _, err := io.ReadFull(file, data); err != nil {
		return nil, nil, fmt.Errorf("%s: reading tensor data: %w", path, err)
	}

	digest := sha256.New()
	digest.Write(headerJSON)
	digest.Write(data)
	var computed [checksumSize]byte
	copy(computed[:], digest.Sum(nil))
	if computed != layout.checksum {
		return nil, nil, fmt.Errorf("%s: %w", path, ErrChecksumMismatch)
	}

	stateDict := make(map[string]*tensor.RawTensor, len(header.Tensors))
	for _, meta := range header.Tensors {
		raw, err := materialize(meta, data, backend)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: tensor %s: %w", path, meta.Name, err)
		}
		stateDict[meta.Name] = raw
	}

	return header, stateDict, nil
}

// fileLayout holds the binary fields of the fixed header.
type fileLayout struct {
	dataSize int64
	checksum [checksumSize]byte
}

// parseFixedHeader reads the 64-byte fixed header and the JSON header
// that follows it, leaving the file positioned at the padding.
func parseFixedHeader(file *os.File) (*Header, []byte, fileLayout, error) {
	var layout fileLayout

	fixed := make([]byte, fixedHeaderSize)
	if _, err := io.ReadFull(file, fixed); err != nil {
		return nil, nil, layout, fmt.Errorf("reading fixed header: %w", err)
	}

	if string(fixed[0:4]) != Magic {
		return nil, nil, layout, ErrInvalidMagic
	}

	version := binary.LittleEndian.Uint32(fixed[4:8])
	if version != FormatVersion {
		return nil, nil, layout, fmt.Errorf("%w: got %d, expected %d", ErrUnsupportedVersion, version, FormatVersion)
	}

	headerSize := binary.LittleEndian.Uint64(fixed[16:24])
	if headerSize > maxHeaderSize {
		return nil, nil, layout, ErrHeaderTooLarge
	}
	layout.dataSize = int64(binary.LittleEndian.Uint64(fixed[24:32]))
	copy(layout.checksum[:], fixed[checksumOffset:checksumOffset+checksumSize])

	headerJSON := make([]byte, headerSize)
	if _, err := io.ReadFull(file, headerJSON); err != nil {
		return nil, nil, layout, fmt.Errorf("reading header JSON: %w", err)
	}

	var header Header
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return nil, nil, layout, fmt.Errorf("parsing header JSON: %w", err)
	}

	return &header, headerJSON, layout, nil
}

// materialize copies one tensor's bytes out of the data section.
func materialize[B tensor.Backend](meta TensorMeta, data []byte, backend B) (*tensor.RawTensor, error) {
	dtype, ok := stringToDtype(meta.DType)
	if !ok {
		return nil, fmt.Errorf("unsupported dtype %q", meta.DType)
	}

	shape := tensor.Shape(meta.Shape)
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	if meta.Offset < 0 || meta.Size < 0 || meta.Offset+meta.Size > int64(len(data)) {
		return nil, fmt.Errorf("extends beyond data section (offset %d, size %d, data %d)", meta.Offset, meta.Size, len(data))
	}
	if want := int64(shape.NumElements() * dtype.Size()); meta.Size != want {
		return nil, fmt.Errorf("size %d does not match shape %v (%d bytes)", meta.Size, shape, want)
	}

	raw, err := tensor.NewRaw(shape, dtype, backend.Device())
	if err != nil {
		return nil, err
	}
	copy(raw.Data(), data[meta.Offset:meta.Offset+meta.Size])
	return raw, nil
}
