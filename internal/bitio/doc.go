// Package bitio provides the MSB-first bit stream primitives used by the
// treeclock wire codec.
//
// The codec's tag and counter encodings are not byte aligned, so the
// Writer and Reader operate on individual bits and fixed-width bit groups.
// Bits within each byte are consumed most-significant first; a Writer pads
// the final byte with zero bits so that every serialized object ends on a
// byte boundary.
//
// The package is deliberately small and allocation-light: a Writer grows a
// single byte slice, a Reader walks a caller-owned slice without copying.
// Neither type is safe for concurrent use.
package bitio
