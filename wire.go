package treeclock

import (
	"errors"

	"github.com/roach88/treeclock/internal/bitio"
)

// Wire format, version 1.
//
// Every serialized object is one header byte (the format version, 0x01)
// followed by a bit stream, MSB-first within each byte, zero-padded to a
// byte boundary:
//
//	id     := '1' id id            node
//	        | '0' ownbit           leaf ('1' owns, '0' does not)
//	event  := '1' num              leaf counter
//	        | '0' num event event  node base plus children
//	num    := enc(n, 2)  where  enc(n, b) = '0' n:b              if n < 2^b
//	                                      | '1' enc(n - 2^b, b+1) otherwise
//	stamp  := id event
//
// Serialization always emits the normalized form, so two trees that are
// structurally equal after normalization serialize identically, and
// deserialize(serialize(x)) == normalize(x). Counters are 64-bit; this is
// a build-wide choice and part of the wire contract (a 32-bit-counter
// build would not interoperate). The seed stamp serializes to the two
// bytes 0x01 0x60.
//
// The format carries no framing or type tag: callers transmitting
// serialized objects are responsible for framing and for knowing whether
// a buffer holds a stamp, an id or an event.

const wireVersion byte = 0x01

// CounterWidth is the event counter width in bits. Decoding input whose
// counters exceed this width fails with KindInvalidArgument.
const CounterWidth = 64

// DefaultMaxDepth bounds the tree depth accepted by the decoders. The
// bound exists to reject adversarial or corrupt input with a clean error
// instead of exhausting the call stack; depth in healthy systems stays
// near log2 of the number of active replicas.
const DefaultMaxDepth = 96

type decodeConfig struct {
	maxDepth int
}

// DecodeOption adjusts decoder limits.
type DecodeOption func(*decodeConfig)

// WithMaxDepth overrides DefaultMaxDepth for one decode call. Values
// below 1 are ignored.
func WithMaxDepth(depth int) DecodeOption {
	return func(cfg *decodeConfig) {
		if depth >= 1 {
			cfg.maxDepth = depth
		}
	}
}

func newDecodeConfig(opts []DecodeOption) decodeConfig {
	cfg := decodeConfig{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// MarshalBinary serializes the stamp in canonical normalized form.
func (s Stamp) MarshalBinary() ([]byte, error) {
	var w bitio.Writer
	encodeID(&w, normalizeID(s.idTree()))
	encodeEvent(&w, normalizeEvent(s.evTree()))
	return withHeader(&w), nil
}

// MarshalBinary serializes the id in canonical normalized form.
func (i ID) MarshalBinary() ([]byte, error) {
	var w bitio.Writer
	encodeID(&w, normalizeID(i.idTree()))
	return withHeader(&w), nil
}

// MarshalBinary serializes the event tree in canonical normalized form.
func (e Event) MarshalBinary() ([]byte, error) {
	var w bitio.Writer
	encodeEvent(&w, normalizeEvent(e.evTree()))
	return withHeader(&w), nil
}

func withHeader(w *bitio.Writer) []byte {
	body := w.Bytes()
	out := make([]byte, 0, len(body)+1)
	out = append(out, wireVersion)
	return append(out, body...)
}

// UnmarshalStamp decodes a stamp serialized by Stamp.MarshalBinary.
//
// Truncated input, bad tags, version mismatch or trailing garbage fail
// with KindMalformedData; counters wider than CounterWidth — stored
// fields and effective values alike — fail with KindInvalidArgument;
// trees deeper than the configured limit fail with KindResourceExhausted.
func UnmarshalStamp(data []byte, opts ...DecodeOption) (Stamp, error) {
	const op = "UnmarshalStamp"
	cfg := newDecodeConfig(opts)
	r, err := checkHeader(data, op)
	if err != nil {
		return Stamp{}, err
	}
	id, err := decodeID(r, 1, cfg, op)
	if err != nil {
		return Stamp{}, err
	}
	ev, err := decodeEvent(r, 1, cfg, op)
	if err != nil {
		return Stamp{}, err
	}
	if err := checkCounterBounds(ev, 0, op); err != nil {
		return Stamp{}, err
	}
	if !r.PaddingClean() {
		return Stamp{}, errorf(KindMalformedData, op, "trailing data after stamp")
	}
	return Stamp{id: normalizeID(id), ev: normalizeEvent(ev)}, nil
}

// UnmarshalID decodes an id serialized by ID.MarshalBinary. Error
// behavior matches UnmarshalStamp.
func UnmarshalID(data []byte, opts ...DecodeOption) (ID, error) {
	const op = "UnmarshalID"
	cfg := newDecodeConfig(opts)
	r, err := checkHeader(data, op)
	if err != nil {
		return ID{}, err
	}
	t, err := decodeID(r, 1, cfg, op)
	if err != nil {
		return ID{}, err
	}
	if !r.PaddingClean() {
		return ID{}, errorf(KindMalformedData, op, "trailing data after id")
	}
	return ID{tree: normalizeID(t)}, nil
}

// UnmarshalEvent decodes an event tree serialized by Event.MarshalBinary.
// Error behavior matches UnmarshalStamp.
func UnmarshalEvent(data []byte, opts ...DecodeOption) (Event, error) {
	const op = "UnmarshalEvent"
	cfg := newDecodeConfig(opts)
	r, err := checkHeader(data, op)
	if err != nil {
		return Event{}, err
	}
	t, err := decodeEvent(r, 1, cfg, op)
	if err != nil {
		return Event{}, err
	}
	if err := checkCounterBounds(t, 0, op); err != nil {
		return Event{}, err
	}
	if !r.PaddingClean() {
		return Event{}, errorf(KindMalformedData, op, "trailing data after event")
	}
	return Event{tree: normalizeEvent(t)}, nil
}

func checkHeader(data []byte, op string) (*bitio.Reader, error) {
	if len(data) == 0 {
		return nil, errorf(KindMalformedData, op, "empty buffer")
	}
	if data[0] != wireVersion {
		return nil, errorf(KindMalformedData, op,
			"unsupported wire version %#02x (want %#02x)", data[0], wireVersion)
	}
	return bitio.NewReader(data[1:]), nil
}

func encodeID(w *bitio.Writer, t *idTree) {
	if t.isLeaf() {
		w.WriteBit(0)
		if t.owns {
			w.WriteBit(1)
		} else {
			w.WriteBit(0)
		}
		return
	}
	w.WriteBit(1)
	encodeID(w, t.left)
	encodeID(w, t.right)
}

func encodeEvent(w *bitio.Writer, t *eventTree) {
	if t.isLeaf() {
		w.WriteBit(1)
		encodeNum(w, t.n)
		return
	}
	w.WriteBit(0)
	encodeNum(w, t.n)
	encodeEvent(w, t.left)
	encodeEvent(w, t.right)
}

func encodeNum(w *bitio.Writer, n uint64) {
	b := uint(2)
	for b < CounterWidth && n >= 1<<b {
		w.WriteBit(1)
		n -= 1 << b
		b++
	}
	w.WriteBit(0)
	w.WriteBits(n, b)
}

func decodeID(r *bitio.Reader, depth int, cfg decodeConfig, op string) (*idTree, error) {
	if depth > cfg.maxDepth {
		return nil, errorf(KindResourceExhausted, op,
			"id tree exceeds maximum depth %d", cfg.maxDepth)
	}
	tag, err := r.ReadBit()
	if err != nil {
		return nil, truncated(op, err)
	}
	if tag == 0 {
		own, err := r.ReadBit()
		if err != nil {
			return nil, truncated(op, err)
		}
		return idLeaf(own == 1), nil
	}
	l, err := decodeID(r, depth+1, cfg, op)
	if err != nil {
		return nil, err
	}
	rt, err := decodeID(r, depth+1, cfg, op)
	if err != nil {
		return nil, err
	}
	return idNode(l, rt), nil
}

func decodeEvent(r *bitio.Reader, depth int, cfg decodeConfig, op string) (*eventTree, error) {
	if depth > cfg.maxDepth {
		return nil, errorf(KindResourceExhausted, op,
			"event tree exceeds maximum depth %d", cfg.maxDepth)
	}
	tag, err := r.ReadBit()
	if err != nil {
		return nil, truncated(op, err)
	}
	n, err := decodeNum(r, op)
	if err != nil {
		return nil, err
	}
	if tag == 1 {
		return evLeaf(n), nil
	}
	l, err := decodeEvent(r, depth+1, cfg, op)
	if err != nil {
		return nil, err
	}
	rt, err := decodeEvent(r, depth+1, cfg, op)
	if err != nil {
		return nil, err
	}
	return evNode(n, l, rt), nil
}

func decodeNum(r *bitio.Reader, op string) (uint64, error) {
	b := uint(2)
	var acc uint64
	for {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, truncated(op, err)
		}
		if bit == 0 {
			v, err := r.ReadBits(b)
			if err != nil {
				return 0, truncated(op, err)
			}
			n, addErr := addCounters(acc, v, op)
			if addErr != nil {
				return 0, errorf(KindInvalidArgument, op,
					"counter exceeds %d-bit counter width", CounterWidth)
			}
			return n, nil
		}
		if b >= CounterWidth {
			return 0, errorf(KindInvalidArgument, op,
				"counter exceeds %d-bit counter width", CounterWidth)
		}
		acc += 1 << b
		b++
	}
}

// checkCounterBounds walks a decoded event tree verifying that every
// effective counter (a position's stored value plus the accumulated node
// bases above it) fits the counter width. decodeNum bounds each stored
// field on its own, but a well-formed non-canonical encoding can stack
// bases whose sum exceeds the width, which would wrap once normalization
// lifts or collapses them.
func checkCounterBounds(t *eventTree, base uint64, op string) error {
	v, err := addCounters(base, t.n, op)
	if err != nil {
		return errorf(KindInvalidArgument, op,
			"effective counter exceeds %d-bit counter width", CounterWidth)
	}
	if t.isLeaf() {
		return nil
	}
	if err := checkCounterBounds(t.left, v, op); err != nil {
		return err
	}
	return checkCounterBounds(t.right, v, op)
}

func truncated(op string, err error) error {
	if errors.Is(err, bitio.ErrOutOfBits) {
		return errorf(KindMalformedData, op, "truncated input")
	}
	return errorf(KindMalformedData, op, "malformed input: %v", err)
}
