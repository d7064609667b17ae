package wire

import (
	"bytes"

	"github.com/quic-go/quicwire/internal/protocol"
	"github.com/quic-go/quicwire/quicvarint"
)

// A MaxDataFrame carries connection-level flow control information
type MaxDataFrame struct {
	ByteOffset protocol.ByteCount
}

// ParseMaxDataFrame parses a MAX_DATA frame
func ParseMaxDataFrame(r *bytes.Reader, version protocol.VersionNumber) (*MaxDataFrame, error) {
	if _, err := r.ReadByte(); err != nil { // read the TypeByte
		return nil, err
	}
	byteOffset, err := quicvarint.Read(r)
	if err != nil {
		return nil, err
	}
	return &MaxDataFrame{ByteOffset: protocol.ByteCount(byteOffset)}, nil
}

// Write writes a MAX_DATA frame
func (f *MaxDataFrame) Write(b *bytes.Buffer, version protocol.VersionNumber) error {
	if !version.UsesIETFFrameFormat() {
		// the legacy encoding uses a WINDOW_UPDATE frame for stream 0
		return writeWindowUpdateFrame(b, 0, f.ByteOffset)
	}
	b.WriteByte(0x10)
	quicvarint.Write(b, uint64(f.ByteOffset))
	return nil
}

// Length of a written frame
func (f *MaxDataFrame) Length(version protocol.VersionNumber) protocol.ByteCount {
	if !version.UsesIETFFrameFormat() {
		return windowUpdateFrameLength
	}
	return 1 + protocol.ByteCount(quicvarint.Len(uint64(f.ByteOffset)))
}
