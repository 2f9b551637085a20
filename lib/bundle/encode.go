// Copyright 2026 The hwidkit Authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hwidkit/hwidkit/lib/codec"
)

// Format identifies the serialization of an artifact payload.
type Format uint8

const (
	// FormatJSON is indented JSON. Diffable, reviewable, the default
	// for artifacts that land in source control.
	FormatJSON Format = 0

	// FormatCBOR is deterministic CBOR via lib/codec. Compact and
	// byte-stable for machine consumers.
	FormatCBOR Format = 1
)

// String returns the human-readable name of a format.
func (format Format) String() string {
	switch format {
	case FormatJSON:
		return "json"
	case FormatCBOR:
		return "cbor"
	default:
		return fmt.Sprintf("unknown(%d)", format)
	}
}

// ParseFormat parses a format from its string representation.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "json":
		return FormatJSON, nil
	case "cbor":
		return FormatCBOR, nil
	default:
		return 0, fmt.Errorf("unknown artifact format: %q", name)
	}
}

// Compression identifies the frame wrapping an artifact payload.
type Compression uint8

const (
	// CompressionNone writes the payload bytes unwrapped.
	CompressionNone Compression = 0

	// CompressionLZ4 wraps the payload in an LZ4 frame. Fast decode
	// for artifacts fetched repeatedly at build time.
	CompressionLZ4 Compression = 1

	// CompressionZstd wraps the payload in a zstd frame at the
	// default level. Best ratio for JSON payloads.
	CompressionZstd Compression = 2
)

// String returns the human-readable name of a compression choice.
func (compression Compression) String() string {
	switch compression {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", compression)
	}
}

// ParseCompression parses a compression choice from its string
// representation.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("unknown artifact compression: %q", name)
	}
}

// Options selects the wire format and compression of an encoded
// artifact.
type Options struct {
	Format      Format
	Compression Compression
}

// OptionsForPath derives Options from a file path's extension chain:
// ".json" or ".cbor", optionally followed by ".zst" or ".lz4"
// (e.g. "reqs.cbor.zst").
func OptionsForPath(path string) (Options, error) {
	options := Options{}
	rest := path

	switch ext := filepath.Ext(rest); ext {
	case ".zst":
		options.Compression = CompressionZstd
		rest = strings.TrimSuffix(rest, ext)
	case ".lz4":
		options.Compression = CompressionLZ4
		rest = strings.TrimSuffix(rest, ext)
	}

	switch ext := filepath.Ext(rest); ext {
	case ".json":
		options.Format = FormatJSON
	case ".cbor":
		options.Format = FormatCBOR
	default:
		return Options{}, fmt.Errorf(
			"artifact path %q: unrecognized extension (want .json or .cbor, optionally followed by .zst or .lz4)", path)
	}

	return options, nil
}

// zstdEncoder and zstdDecoder are reused across calls. Both are safe
// for concurrent use and produce/consume standard zstd frames.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
	)
	if err != nil {
		panic("bundle: zstd encoder initialization failed: " + err.Error())
	}

	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("bundle: zstd decoder initialization failed: " + err.Error())
	}
}

// Encode serializes an artifact per options.
func Encode(artifact *Artifact, options Options) ([]byte, error) {
	var payload []byte
	var err error
	switch options.Format {
	case FormatJSON:
		payload, err = json.MarshalIndent(artifact, "", "  ")
		if err == nil {
			payload = append(payload, '\n')
		}
	case FormatCBOR:
		payload, err = codec.Marshal(artifact)
	default:
		return nil, fmt.Errorf("unsupported artifact format: %d", options.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("encoding artifact: %w", err)
	}

	return compress(payload, options.Compression)
}

// Decode deserializes an artifact per options.
func Decode(data []byte, options Options) (*Artifact, error) {
	payload, err := decompress(data, options.Compression)
	if err != nil {
		return nil, err
	}

	var artifact Artifact
	switch options.Format {
	case FormatJSON:
		err = json.Unmarshal(payload, &artifact)
	case FormatCBOR:
		err = codec.Unmarshal(payload, &artifact)
	default:
		return nil, fmt.Errorf("unsupported artifact format: %d", options.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding artifact: %w", err)
	}

	return &artifact, nil
}

// Write encodes an artifact to a stream.
func Write(w io.Writer, artifact *Artifact, options Options) error {
	data, err := Encode(artifact, options)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing artifact: %w", err)
	}
	return nil
}

// Read decodes an artifact from a stream.
func Read(r io.Reader, options Options) (*Artifact, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading artifact: %w", err)
	}
	return Decode(data, options)
}

// WriteFile encodes an artifact to a file, deriving format and
// compression from the path's extension chain.
func WriteFile(path string, artifact *Artifact) error {
	options, err := OptionsForPath(path)
	if err != nil {
		return err
	}
	data, err := Encode(artifact, options)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ReadFile decodes an artifact from a file, deriving format and
// compression from the path's extension chain.
func ReadFile(path string) (*Artifact, error) {
	options, err := OptionsForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	artifact, err := Decode(data, options)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return artifact, nil
}

func compress(data []byte, compression Compression) ([]byte, error) {
	switch compression {
	case CompressionNone:
		return data, nil

	case CompressionLZ4:
		var buffer bytes.Buffer
		writer := lz4.NewWriter(&buffer)
		if _, err := writer.Write(data); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		return buffer.Bytes(), nil

	case CompressionZstd:
		return zstdEncoder.EncodeAll(data, nil), nil

	default:
		return nil, fmt.Errorf("unsupported artifact compression: %d", compression)
	}
}

func decompress(data []byte, compression Compression) ([]byte, error) {
	switch compression {
	case CompressionNone:
		return data, nil

	case CompressionLZ4:
		decompressed, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		return decompressed, nil

	case CompressionZstd:
		decompressed, err := zstdDecoder.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		return decompressed, nil

	default:
		return nil, fmt.Errorf("unsupported artifact compression: %d", compression)
	}
}
