package bitio

import (
	"fmt"
)

// Writer accumulates bits MSB-first into a growing byte buffer.
// The zero value is ready to use.
type Writer struct {
	buf  []byte
	used uint8 // bits used in the last byte of buf, 0..7
}

// WriteBit appends a single bit. Any non-zero value writes a one bit.
func (w *Writer) WriteBit(bit byte) {
	if w.used == 0 {
		w.buf = append(w.buf, 0)
	}
	if bit != 0 {
		w.buf[len(w.buf)-1] |= 1 << (7 - w.used)
	}
	w.used = (w.used + 1) % 8
}

// WriteBits appends the low `width` bits of v, most significant bit first.
// width must be between 0 and 64.
func (w *Writer) WriteBits(v uint64, width uint) {
	for i := int(width) - 1; i >= 0; i-- {
		w.WriteBit(byte((v >> uint(i)) & 1))
	}
}

// BitLen reports the number of bits written so far.
func (w *Writer) BitLen() int {
	if w.used == 0 {
		return len(w.buf) * 8
	}
	return (len(w.buf)-1)*8 + int(w.used)
}

// Bytes returns the written bits padded with zero bits to a byte boundary.
// The returned slice aliases the Writer's buffer.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// ErrOutOfBits is returned when a Reader runs past the end of its input.
var ErrOutOfBits = fmt.Errorf("bitio: read past end of input")

// Reader consumes bits MSB-first from a byte slice. The slice is not
// copied; the caller must not modify it while reading.
type Reader struct {
	data []byte
	pos  int // absolute bit position
}

// NewReader returns a Reader over data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// ReadBit consumes and returns the next bit.
func (r *Reader) ReadBit() (byte, error) {
	if r.pos >= len(r.data)*8 {
		return 0, ErrOutOfBits
	}
	b := (r.data[r.pos/8] >> (7 - uint(r.pos%8))) & 1
	r.pos++
	return b, nil
}

// ReadBits consumes `width` bits and returns them as the low bits of a
// uint64, first bit read landing in the most significant position.
// width must be between 0 and 64.
func (r *Reader) ReadBits(width uint) (uint64, error) {
	var v uint64
	for i := uint(0); i < width; i++ {
		b, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		v = v<<1 | uint64(b)
	}
	return v, nil
}

// Remaining reports the number of unread bits.
func (r *Reader) Remaining() int {
	return len(r.data)*8 - r.pos
}

// PaddingClean reports whether all remaining bits are zero padding within
// the final byte. Used to enforce canonical encodings: a decoder that has
// consumed a full object accepts only sub-byte zero padding after it.
func (r *Reader) PaddingClean() bool {
	if r.Remaining() >= 8 {
		return false
	}
	for r.Remaining() > 0 {
		b, _ := r.ReadBit()
		if b != 0 {
			return false
		}
	}
	return true
}
