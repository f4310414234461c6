package wire

import (
	"encoding/binary"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/serializer/v2/stream"
)

// Writer encodes into a buffer sized up front from the exact encoded length.
//
// The first failed write is retained and every later write is a no-op, so a
// record encoder can write all of its fields and check Err (or Finish) once.
type Writer struct {
	buf []byte
	off int
	err error
}

// NewWriter returns a writer over a zeroed buffer of exactly size bytes.
func NewWriter(size int) *Writer {
	return &Writer{buf: make([]byte, size)}
}

// Write implements io.Writer. It never grows the buffer.
func (w *Writer) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	if len(p) > len(w.buf)-w.off {
		w.err = ierrors.Wrapf(ErrBufferOverflow, "%d bytes at offset %d of %d", len(p), w.off, len(w.buf))
		return 0, w.err
	}
	copy(w.buf[w.off:], p)
	w.off += len(p)
	return len(p), nil
}

func (w *Writer) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

// Err returns the first error encountered by the writer.
func (w *Writer) Err() error { return w.err }

func (w *Writer) Offset() int    { return w.off }
func (w *Writer) Remaining() int { return len(w.buf) - w.off }

// Bytes returns the buffer written so far.
func (w *Writer) Bytes() []byte { return w.buf[:w.off] }

// Finish returns the encoded bytes, requiring that every pre-sized byte was
// written.
func (w *Writer) Finish() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	if w.off != len(w.buf) {
		return nil, ierrors.Wrapf(ErrLengthMismatch, "wrote %d of %d bytes", w.off, len(w.buf))
	}
	return w.buf, nil
}

func (w *Writer) WriteUint8(v uint8) {
	if w.err != nil {
		return
	}
	w.fail(stream.Write(w, v))
}

func (w *Writer) WriteUint16LE(v uint16) {
	if w.err != nil {
		return
	}
	w.fail(stream.Write(w, v))
}

func (w *Writer) WriteUint32LE(v uint32) {
	if w.err != nil {
		return
	}
	w.fail(stream.Write(w, v))
}

func (w *Writer) WriteUint64LE(v uint64) {
	if w.err != nil {
		return
	}
	w.fail(stream.Write(w, v))
}

func (w *Writer) WriteInt16LE(v int16) { w.WriteUint16LE(uint16(v)) }
func (w *Writer) WriteInt32LE(v int32) { w.WriteUint32LE(uint32(v)) }
func (w *Writer) WriteInt64LE(v int64) { w.WriteUint64LE(uint64(v)) }

func (w *Writer) WriteUint16BE(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.WriteSlice(b[:])
}

func (w *Writer) WriteUint32BE(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.WriteSlice(b[:])
}

func (w *Writer) WriteUint64BE(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.WriteSlice(b[:])
}

// WriteSlice writes b with no length prefix.
func (w *Writer) WriteSlice(b []byte) {
	if w.err != nil || len(b) == 0 {
		return
	}
	w.fail(stream.WriteBytes(w, b))
}

func (w *Writer) WriteVarInt(n uint64) {
	var b [MaxVarIntLen]byte
	w.WriteSlice(b[:PutVarInt(b[:], n)])
}

func (w *Writer) WriteCompactSize(n uint64) {
	var b [9]byte
	w.WriteSlice(b[:PutCompactSize(b[:], n)])
}

// WriteVarSlice writes b prefixed by its CompactSize length.
func (w *Writer) WriteVarSlice(b []byte) {
	w.WriteCompactSize(uint64(len(b)))
	w.WriteSlice(b)
}

// WriteVector writes a CompactSize count followed by each element. Every
// element must be exactly width bytes.
func (w *Writer) WriteVector(elems [][]byte, width int) {
	for i, e := range elems {
		if len(e) != width {
			w.fail(ierrors.Wrapf(ErrElementWidth, "element %d is %d bytes, want %d", i, len(e), width))
			return
		}
	}
	w.WriteCompactSize(uint64(len(elems)))
	for _, e := range elems {
		w.WriteSlice(e)
	}
}

// WriteVarSliceVector writes a CompactSize count followed by each element as
// a var slice.
func (w *Writer) WriteVarSliceVector(elems [][]byte) {
	w.WriteCompactSize(uint64(len(elems)))
	for _, e := range elems {
		w.WriteVarSlice(e)
	}
}

// VectorLen is the encoded length of count fixed width elements.
func VectorLen(count, width int) int {
	return CompactSizeLen(uint64(count)) + count*width
}

// VarSliceVectorLen is the encoded length of elems written by
// WriteVarSliceVector.
func VarSliceVectorLen(elems [][]byte) int {
	n := CompactSizeLen(uint64(len(elems)))
	for _, e := range elems {
		n += VarSliceLen(len(e))
	}
	return n
}
