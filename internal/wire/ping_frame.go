package wire

import (
	"bytes"

	"github.com/quic-go/quicwire/internal/protocol"
)

// A PingFrame is a ping frame
type PingFrame struct{}

// ParsePingFrame parses a PING frame
func ParsePingFrame(r *bytes.Reader, version protocol.VersionNumber) (*PingFrame, error) {
	if _, err := r.ReadByte(); err != nil { // read the TypeByte
		return nil, err
	}
	return &PingFrame{}, nil
}

// Write writes a PING frame
func (f *PingFrame) Write(b *bytes.Buffer, version protocol.VersionNumber) error {
	if version.UsesIETFFrameFormat() {
		b.WriteByte(0x01)
	} else {
		b.WriteByte(0x07)
	}
	return nil
}

// Length of a written frame
func (f *PingFrame) Length(version protocol.VersionNumber) protocol.ByteCount {
	return 1
}
