// SPDX-License-Identifier: Apache-2.0

package vector

import (
	"io"
)

const readBufferSize = 4 * 1024

// Buffer is a bytes.Buffer-like struct backed by a Vector[byte].
// It implements io.Writer, io.Reader, io.ReaderFrom and io.WriterTo.
// Bytes are read from the front; reads shift the remaining bytes down so the
// storage is reused by later writes.
type Buffer struct {
	data    *Vector[byte]
	readBuf *Vector[byte] // intermediate buffer for ReadFrom
}

// NewBuffer creates an empty Buffer. The options configure its storage vector.
func NewBuffer(opts ...Option) *Buffer {
	return &Buffer{
		data: New[byte](opts...),
	}
}

// Write implements io.Writer interface.
// It writes len(p) bytes from p to the buffer.
func (b *Buffer) Write(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	if err := b.data.Append(p...); err != nil {
		return 0, err
	}
	return len(p), nil
}

// WriteByte writes a single byte to the buffer.
func (b *Buffer) WriteByte(c byte) error {
	return b.data.PushBack(c)
}

// WriteString writes a string to the buffer.
func (b *Buffer) WriteString(s string) (n int, err error) {
	return b.Write([]byte(s))
}

// WriteTo writes the buffered bytes to w and drops the ones w accepted.
func (b *Buffer) WriteTo(w io.Writer) (n int64, err error) {
	if b.data.Len() == 0 {
		return 0, nil
	}

	m, err := w.Write(b.data.Slice())
	if m > 0 {
		n += int64(m)
		b.discard(m)
	}

	return n, err
}

// Read reads up to len(p) bytes from the buffer into p.
// It returns io.EOF when the buffer holds fewer than len(p) bytes.
func (b *Buffer) Read(p []byte) (n int, err error) {
	if b.data.Len() == 0 {
		return 0, io.EOF
	}

	n = copy(p, b.data.Slice())
	if n < len(p) {
		err = io.EOF
	}
	b.discard(n)

	return n, err
}

// ReadByte reads and returns the next byte from the buffer.
// If no byte is available, it returns io.EOF.
func (b *Buffer) ReadByte() (byte, error) {
	if b.data.Len() == 0 {
		return 0, io.EOF
	}

	c := *b.data.At(0)
	b.data.Erase(0)

	return c, nil
}

// Bytes returns a slice of length b.Len() holding the unread portion of the buffer.
// The slice is valid for use only until the next buffer modification.
func (b *Buffer) Bytes() []byte {
	if b.data.Len() == 0 {
		return []byte{}
	}
	return b.data.Slice()
}

// String returns the contents of the unread portion of the buffer as a string.
func (b *Buffer) String() string {
	return string(b.data.Slice())
}

// Len returns the number of bytes of the unread portion of the buffer.
func (b *Buffer) Len() int {
	return b.data.Len()
}

// Cap returns the capacity of the buffer's storage.
func (b *Buffer) Cap() int {
	return b.data.Cap()
}

// Reset resets the buffer to be empty but keeps its storage.
func (b *Buffer) Reset() {
	b.data.truncate(0)
}

// Release empties the buffer and returns its storage to the allocator.
func (b *Buffer) Release() {
	b.data.Release()
	if b.readBuf != nil {
		b.readBuf.Release()
		b.readBuf = nil
	}
}

// Truncate discards all but the first n unread bytes from the buffer.
// It panics if n is negative or greater than the length of the buffer.
func (b *Buffer) Truncate(n int) {
	if n < 0 || n > b.data.Len() {
		panic("vector: truncation out of range")
	}
	b.data.truncate(n)
}

// Next returns a slice containing the next n bytes from the buffer,
// advancing the buffer as if the bytes had been returned by Read.
func (b *Buffer) Next(n int) []byte {
	n = min(n, b.data.Len())
	if n <= 0 {
		return []byte{}
	}

	result := make([]byte, n)
	copy(result, b.data.Slice())
	b.discard(n)

	return result
}

// ReadFrom implements io.ReaderFrom interface.
// It reads data from r until EOF or error, writing it to the buffer.
func (b *Buffer) ReadFrom(r io.Reader) (n int64, err error) {
	if b.readBuf == nil {
		rb, err := NewSized[byte](readBufferSize)
		if err != nil {
			return 0, err
		}
		b.readBuf = rb
	}

	for {
		nr, er := r.Read(b.readBuf.Slice())
		if nr > 0 {
			if _, ew := b.Write(b.readBuf.Slice()[:nr]); ew != nil {
				return n, ew
			}
			n += int64(nr)
		}
		if er != nil {
			if er == io.EOF {
				break
			}
			return n, er
		}
	}
	return n, nil
}

// discard drops the first n bytes, moving the rest to the front.
func (b *Buffer) discard(n int) {
	s := b.data.Slice()
	copy(s, s[n:])
	b.data.truncate(len(s) - n)
}
