package wire

import (
	"encoding/binary"
	"io"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/serializer/v2/stream"
)

// Reader decodes from a byte slice with a tracked offset. Each read either
// consumes exactly the bytes of the value or fails and leaves the offset
// unchanged.
type Reader struct {
	data []byte
	off  int
}

func NewReader(b []byte) *Reader {
	return &Reader{data: b}
}

// Read implements io.Reader.
func (r *Reader) Read(p []byte) (int, error) {
	if r.off >= len(r.data) {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := copy(p, r.data[r.off:])
	r.off += n
	return n, nil
}

func (r *Reader) Offset() int    { return r.off }
func (r *Reader) Remaining() int { return len(r.data) - r.off }

// Rest returns the unread bytes without consuming them.
func (r *Reader) Rest() []byte { return r.data[r.off:] }

// Seek moves the cursor to an absolute offset.
func (r *Reader) Seek(offset int) error {
	if offset < 0 || offset > len(r.data) {
		return ierrors.Wrapf(ErrSeekRange, "offset %d of %d", offset, len(r.data))
	}
	r.off = offset
	return nil
}

func (r *Reader) need(n int) error {
	if n < 0 || n > r.Remaining() {
		return ierrors.Wrapf(ErrOutOfData, "need %d bytes at offset %d, have %d", n, r.off, r.Remaining())
	}
	return nil
}

// Sub returns a reader bounded to the next n bytes and advances past them.
func (r *Reader) Sub(n int) (*Reader, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	sub := NewReader(r.data[r.off : r.off+n])
	r.off += n
	return sub, nil
}

func (r *Reader) ReadUint8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	return stream.Read[uint8](r)
}

func (r *Reader) ReadUint16LE() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	return stream.Read[uint16](r)
}

func (r *Reader) ReadUint32LE() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	return stream.Read[uint32](r)
}

func (r *Reader) ReadUint64LE() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	return stream.Read[uint64](r)
}

func (r *Reader) ReadInt16LE() (int16, error) {
	v, err := r.ReadUint16LE()
	return int16(v), err
}

func (r *Reader) ReadInt32LE() (int32, error) {
	v, err := r.ReadUint32LE()
	return int32(v), err
}

func (r *Reader) ReadInt64LE() (int64, error) {
	v, err := r.ReadUint64LE()
	return int64(v), err
}

func (r *Reader) ReadUint16BE() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(r.data[r.off:])
	r.off += 2
	return v, nil
}

func (r *Reader) ReadUint32BE() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(r.data[r.off:])
	r.off += 4
	return v, nil
}

func (r *Reader) ReadUint64BE() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint64(r.data[r.off:])
	r.off += 8
	return v, nil
}

// ReadSlice returns a copy of the next n bytes.
func (r *Reader) ReadSlice(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ReadFixed fills dst from the next len(dst) bytes.
func (r *Reader) ReadFixed(dst []byte) error {
	if err := r.need(len(dst)); err != nil {
		return err
	}
	_, err := io.ReadFull(r, dst)
	return err
}

func (r *Reader) ReadVarInt() (uint64, error) {
	n, l, err := DecodeVarInt(r.data[r.off:])
	if err != nil {
		return 0, ierrors.Wrapf(err, "varint at offset %d", r.off)
	}
	r.off += l
	return n, nil
}

// ReadCompactSize reads a CompactSize value, rejecting any encoding that is
// not the shortest form for its value.
func (r *Reader) ReadCompactSize() (uint64, error) {
	start := r.off
	n, err := r.readCompactSize()
	if err != nil {
		r.off = start
		return 0, err
	}
	return n, nil
}

func (r *Reader) readCompactSize() (uint64, error) {
	marker, err := r.ReadUint8()
	if err != nil {
		return 0, err
	}
	var n, least uint64
	switch marker {
	case compactSize16:
		v, err := r.ReadUint16LE()
		if err != nil {
			return 0, err
		}
		n, least = uint64(v), compactSize16
	case compactSize32:
		v, err := r.ReadUint32LE()
		if err != nil {
			return 0, err
		}
		n, least = uint64(v), 0x10000
	case compactSize64:
		v, err := r.ReadUint64LE()
		if err != nil {
			return 0, err
		}
		n, least = v, 0x100000000
	default:
		return uint64(marker), nil
	}
	if n < least {
		return 0, ierrors.Wrapf(errNonCanonical, "value %d with marker %#x", n, marker)
	}
	return n, nil
}

// readLength reads a CompactSize used as a count of elements of at least
// unit bytes each. The count is bounded by MaxSize and by the data left.
func (r *Reader) readLength(unit int) (int, error) {
	n, err := r.ReadCompactSize()
	if err != nil {
		return 0, err
	}
	if n > MaxSize {
		return 0, ierrors.Wrapf(errCompactSizeLimit, "%d", n)
	}
	if unit > 0 && n*uint64(unit) > uint64(r.Remaining()) {
		return 0, ierrors.Wrapf(ErrOutOfData, "length %d x %d at offset %d, have %d", n, unit, r.off, r.Remaining())
	}
	return int(n), nil
}

// ReadLength reads a CompactSize element count, bounded by MaxSize and by
// the remaining data at one byte per element.
func (r *Reader) ReadLength() (int, error) {
	start := r.off
	n, err := r.readLength(1)
	if err != nil {
		r.off = start
	}
	return n, err
}

// ReadVarSlice reads a CompactSize length prefixed byte string.
func (r *Reader) ReadVarSlice() ([]byte, error) {
	start := r.off
	n, err := r.readLength(1)
	if err != nil {
		r.off = start
		return nil, err
	}
	return r.ReadSlice(n)
}

// ReadVector reads a CompactSize count of width byte elements.
func (r *Reader) ReadVector(width int) ([][]byte, error) {
	start := r.off
	n, err := r.readLength(width)
	if err != nil {
		r.off = start
		return nil, err
	}
	elems := make([][]byte, n)
	for i := range elems {
		// bounds were checked against the count above
		elems[i], _ = r.ReadSlice(width)
	}
	return elems, nil
}

// ReadVarSliceVector reads a CompactSize count of var slices.
func (r *Reader) ReadVarSliceVector() ([][]byte, error) {
	start := r.off
	n, err := r.readLength(1)
	if err != nil {
		r.off = start
		return nil, err
	}
	elems := make([][]byte, n)
	for i := range elems {
		if elems[i], err = r.ReadVarSlice(); err != nil {
			r.off = start
			return nil, ierrors.Wrapf(err, "element %d", i)
		}
	}
	return elems, nil
}
