package codec

import "errors"

// ErrDecodeUnderflow is returned when a typed read needs more bytes than
// the reader can currently supply: a complete buffer reader has run out,
// or a stream reader's upstream has signalled end-of-input mid-field.
var ErrDecodeUnderflow = errors.New("codec: not enough bytes to satisfy read")

// ErrBadUTF8 is returned by ReadUTF8 when the length-prefixed byte run is
// not valid UTF-8.
var ErrBadUTF8 = errors.New("codec: invalid utf-8 in length-prefixed string")

// ErrLengthOverflow is returned by WriteUTF8 when the encoded string is
// longer than the 2-byte length prefix can represent (65535 bytes).
var ErrLengthOverflow = errors.New("codec: utf-8 encoded length exceeds 65535 bytes")
