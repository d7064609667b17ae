package wire

import (
	"bytes"

	"github.com/quic-go/quicwire/internal/protocol"
)

// A PaddingFrame in QUIC.
// NumBytes == 0 means "pad to the end of the packet", which is resolved by
// the packet framer before the frame is written.
type PaddingFrame struct {
	NumBytes int
}

// parsePaddingFrame coalesces a run of padding bytes into a single frame.
// The first byte (0x00) has already been inspected, but not consumed.
func parsePaddingFrame(r *bytes.Reader, version protocol.VersionNumber) (*PaddingFrame, error) {
	frame := &PaddingFrame{}
	for {
		b, err := r.ReadByte()
		if err != nil { // io.EOF: the padding ran to the end of the packet
			return frame, nil
		}
		if b != 0x00 {
			if err := r.UnreadByte(); err != nil {
				return nil, err
			}
			return frame, nil
		}
		frame.NumBytes++
	}
}

// Write writes a PADDING frame
func (f *PaddingFrame) Write(b *bytes.Buffer, version protocol.VersionNumber) error {
	b.Write(make([]byte, f.NumBytes))
	return nil
}

// Length of a written frame
func (f *PaddingFrame) Length(version protocol.VersionNumber) protocol.ByteCount {
	return protocol.ByteCount(f.NumBytes)
}
