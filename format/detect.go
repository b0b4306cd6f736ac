// Package format provides input format detection so byte buffers can be
// routed to deck processing or archive traversal.
package format

import (
	"archive/zip"
	"bytes"
	"path/filepath"
	"strings"
)

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// Deck indicates a PPTX presentation.
	Deck
	// Archive indicates a generic ZIP archive (potentially holding decks).
	Archive
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case Deck:
		return "deck"
	case Archive:
		return "archive"
	default:
		return "unknown"
	}
}

// Detect determines input format from the filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pptx":
		return Deck
	case ".zip":
		return Archive
	default:
		return Unknown
	}
}

// DetectBytes inspects content to determine format. This is more
// reliable than extension-based detection: both decks and plain
// archives are ZIP containers, so ZIP inputs are probed for the
// presentation marker.
func DetectBytes(data []byte) Format {
	// ZIP magic: PK\x03\x04
	if len(data) < 4 || data[0] != 0x50 || data[1] != 0x4B || data[2] != 0x03 || data[3] != 0x04 {
		return Unknown
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Unknown
	}

	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "ppt/") {
			return Deck
		}
	}
	return Archive
}
