package codec

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/flowkit-go/creditstream/pool"
)

// Writer serializes primitive values onto an underlying byte sink in
// big-endian order. It is stateless beyond the sink itself: every Write*
// call fully describes the bytes it produces.
type Writer struct {
	w io.Writer
}

// NewWriter wraps w, which may also implement io.Closer for Close to use.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteBool writes one byte, 0x01 for true or 0x00 for false.
func (w *Writer) WriteBool(b bool) error {
	if b {
		return w.raw([]byte{0x01})
	}
	return w.raw([]byte{0x00})
}

// WriteByte writes a signed 8-bit integer as one byte.
func (w *Writer) WriteByte(v int8) error {
	return w.raw([]byte{byte(v)})
}

// WriteUnsignedByte writes an unsigned 8-bit integer as one byte.
func (w *Writer) WriteUnsignedByte(v uint8) error {
	return w.raw([]byte{v})
}

// WriteShort writes a signed 16-bit integer, big-endian.
func (w *Writer) WriteShort(v int16) error {
	return w.WriteUnsignedShort(uint16(v))
}

// WriteUnsignedShort writes an unsigned 16-bit integer, big-endian.
func (w *Writer) WriteUnsignedShort(v uint16) error {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	return w.raw(buf[:])
}

// WriteInt writes a signed 32-bit integer, big-endian.
func (w *Writer) WriteInt(v int32) error {
	return w.WriteUnsignedInt(uint32(v))
}

// WriteUnsignedInt writes an unsigned 32-bit integer, big-endian.
func (w *Writer) WriteUnsignedInt(v uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	return w.raw(buf[:])
}

// WriteLong writes a signed 64-bit integer, big-endian.
func (w *Writer) WriteLong(v int64) error {
	return w.WriteUnsignedLong(uint64(v))
}

// WriteUnsignedLong writes an unsigned 64-bit integer, big-endian.
func (w *Writer) WriteUnsignedLong(v uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	return w.raw(buf[:])
}

// WriteBytes writes run as-is, with no length prefix or other framing.
func (w *Writer) WriteBytes(run []byte) error {
	return w.raw(run)
}

// WriteUTF8 writes a 2-byte unsigned big-endian length prefix (the UTF-8
// encoded byte length of s) followed by the encoded bytes. It fails with
// ErrLengthOverflow if the encoded length exceeds 65535 bytes.
func (w *Writer) WriteUTF8(s string) error {
	if len(s) > 65535 {
		return fmt.Errorf("%w: %d bytes", ErrLengthOverflow, len(s))
	}

	buf := pool.ByteBufferPool.Get()
	defer pool.ByteBufferPool.Put(buf)
	buf.WriteByte(byte(len(s) >> 8))
	buf.WriteByte(byte(len(s)))
	buf.WriteString(s)
	return w.raw(buf.Bytes())
}

// Close closes the underlying sink if it implements io.Closer.
func (w *Writer) Close() error {
	if c, ok := w.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (w *Writer) raw(p []byte) error {
	_, err := w.w.Write(p)
	return err
}
