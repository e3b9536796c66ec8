package adf

import (
	"bytes"
	"encoding/binary"
	"unicode"
)

// Writer is an append-only buffer whose integer writers always emit
// big-endian (Motorola) byte order.
type Writer struct {
	buf bytes.Buffer
}

func NewWriter() *Writer {
	return &Writer{}
}

// WriteASCII writes exactly length bytes of text, padding with spaces or
// truncating as needed. Runes outside the ASCII range are written as '?'.
func (w *Writer) WriteASCII(text string, length int) {
	w.buf.Write(asciiField(text, length))
}

func (w *Writer) WriteInt16(value int16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], uint16(value))
	w.buf.Write(b[:])
}

func (w *Writer) WriteInt32(value int32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(value))
	w.buf.Write(b[:])
}

func (w *Writer) WriteBytes(raw []byte) {
	w.buf.Write(raw)
}

// Position is the number of bytes written so far.
func (w *Writer) Position() int {
	return w.buf.Len()
}

// Bytes returns the written data. The Writer must not be used afterwards.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

func asciiField(text string, length int) []byte {
	field := bytes.Repeat([]byte{' '}, length)
	i := 0
	for _, r := range text {
		if i == length {
			break
		}
		if r > unicode.MaxASCII {
			r = '?'
		}
		field[i] = byte(r)
		i++
	}
	return field
}
