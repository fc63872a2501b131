package stego

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Segment kinds written into a frame. The kind byte is authoritative
// for classification on decode; content is never sniffed.
const (
	kindEnd   byte = 0x00
	KindText  byte = 0x01
	KindImage byte = 0x02
)

// frameMagic marks the start of an embedded frame. A carrier whose
// leading hidden bytes do not begin with it carries no hidden data.
var frameMagic = []byte{0x53, 0x54, 0x47, 0x31} // "STG1"

const (
	magicLength   = 4
	segmentHeader = 5 // 1 kind byte + 4-byte big-endian ciphertext length
)

// Segment is one encrypted payload within a frame.
type Segment struct {
	Kind       byte
	Ciphertext []byte
}

// FrameOverhead returns the frame size in bytes for the given segment
// ciphertext lengths, used for capacity pre-validation.
func FrameOverhead(ciphertextLengths ...int) int {
	size := magicLength + 1 // magic + end marker
	for _, n := range ciphertextLengths {
		size += segmentHeader + n
	}
	return size
}

// BuildFrame serializes segments into the embeddable byte frame:
// magic || (kind || length || ciphertext)* || end marker.
func BuildFrame(segments []Segment) []byte {
	size := magicLength + 1
	for _, seg := range segments {
		size += segmentHeader + len(seg.Ciphertext)
	}

	frame := make([]byte, 0, size)
	frame = append(frame, frameMagic...)
	for _, seg := range segments {
		frame = append(frame, seg.Kind)
		var length [4]byte
		binary.BigEndian.PutUint32(length[:], uint32(len(seg.Ciphertext)))
		frame = append(frame, length[:]...)
		frame = append(frame, seg.Ciphertext...)
	}
	frame = append(frame, kindEnd)

	return frame
}

// ParseFrame reads segments back out of the bytes extracted from a
// carrier. found is false when no frame magic is present, which maps
// to a "no hidden data" outcome rather than an error.
func ParseFrame(data []byte) (segments []Segment, found bool, err error) {
	if len(data) < magicLength || !bytes.Equal(data[:magicLength], frameMagic) {
		return nil, false, nil
	}

	seen := make(map[byte]bool)
	offset := magicLength
	for {
		if offset >= len(data) {
			return nil, true, fmt.Errorf("%w: missing end marker", ErrMalformedFrame)
		}

		kind := data[offset]
		offset++
		if kind == kindEnd {
			break
		}
		if kind != KindText && kind != KindImage {
			return nil, true, fmt.Errorf("%w: unknown segment kind 0x%02x", ErrMalformedFrame, kind)
		}
		if seen[kind] {
			return nil, true, fmt.Errorf("%w: duplicate segment kind 0x%02x", ErrMalformedFrame, kind)
		}
		seen[kind] = true

		if offset+4 > len(data) {
			return nil, true, fmt.Errorf("%w: truncated segment header", ErrMalformedFrame)
		}
		length := int(binary.BigEndian.Uint32(data[offset : offset+4]))
		offset += 4

		if length > len(data)-offset {
			return nil, true, fmt.Errorf("%w: segment length %d exceeds remaining %d bytes",
				ErrMalformedFrame, length, len(data)-offset)
		}
		segments = append(segments, Segment{
			Kind:       kind,
			Ciphertext: data[offset : offset+length],
		})
		offset += length
	}

	return segments, true, nil
}
