package asm

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/svr2kos2/sayo-asm/pkg/isa"
)

// Image layout:
//
//	0x0000  3  CALL main (address big-endian)
//	0x0003  1  EXIT
//	0x0004  4  magic "SAYO"
//	0x0008  1  version
//	0x0009  2  text size, little-endian
//	0x000B  1  reserved
//	0x000C     text section, then data section
const (
	HeaderSize = 12
	Version    = 0x01

	callOffset     = 0
	exitOffset     = 3
	magicOffset    = 4
	versionOffset  = 8
	textSizeOffset = 9
	reservedOffset = 11
)

var Magic = [4]byte{'S', 'A', 'Y', 'O'}

// Header is the decoded form of the first HeaderSize bytes of an image.
type Header struct {
	MainAddress uint16
	TextSize    uint16
	Version     byte
}

// TextStart is the image offset of the first text byte.
func (h Header) TextStart() int { return HeaderSize }

// DataStart is the image offset of the first data byte.
func (h Header) DataStart() int { return HeaderSize + int(h.TextSize) }

// GenerateHeader builds the bootstrap and header bytes.
func GenerateHeader(main, textSize uint16) []byte {
	hdr := make([]byte, HeaderSize)
	hdr[callOffset] = isa.OpCALL.Descriptor().Opcode
	binary.BigEndian.PutUint16(hdr[callOffset+1:], main)
	hdr[exitOffset] = isa.OpEXIT.Descriptor().Opcode
	copy(hdr[magicOffset:], Magic[:])
	hdr[versionOffset] = Version
	binary.LittleEndian.PutUint16(hdr[textSizeOffset:], textSize)
	hdr[reservedOffset] = 0x00
	return hdr
}

// ParseHeader decodes the header at the start of image.
func ParseHeader(image []byte) (Header, error) {
	if len(image) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes", ErrHeaderTooShort, len(image))
	}
	if !bytes.Equal(image[magicOffset:magicOffset+4], Magic[:]) {
		return Header{}, fmt.Errorf("%w % x", ErrBadMagic, image[magicOffset:magicOffset+4])
	}
	h := Header{
		MainAddress: binary.BigEndian.Uint16(image[callOffset+1:]),
		TextSize:    binary.LittleEndian.Uint16(image[textSizeOffset:]),
		Version:     image[versionOffset],
	}
	if h.Version != Version {
		return h, fmt.Errorf("%w 0x%02x", ErrUnsupportedVersion, h.Version)
	}
	return h, nil
}
