package wire

import (
	"bytes"

	"github.com/quic-go/quicwire/internal/protocol"
	"github.com/quic-go/quicwire/quicvarint"
)

// A MaxStreamDataFrame carries stream-level flow control information
type MaxStreamDataFrame struct {
	StreamID   protocol.StreamID
	ByteOffset protocol.ByteCount
}

// ParseMaxStreamDataFrame parses a MAX_STREAM_DATA frame
func ParseMaxStreamDataFrame(r *bytes.Reader, version protocol.VersionNumber) (*MaxStreamDataFrame, error) {
	if _, err := r.ReadByte(); err != nil { // read the TypeByte
		return nil, err
	}
	sid, err := quicvarint.Read(r)
	if err != nil {
		return nil, err
	}
	byteOffset, err := quicvarint.Read(r)
	if err != nil {
		return nil, err
	}
	return &MaxStreamDataFrame{
		StreamID:   protocol.StreamID(sid),
		ByteOffset: protocol.ByteCount(byteOffset),
	}, nil
}

// Write writes a MAX_STREAM_DATA frame
func (f *MaxStreamDataFrame) Write(b *bytes.Buffer, version protocol.VersionNumber) error {
	if !version.UsesIETFFrameFormat() {
		return writeWindowUpdateFrame(b, f.StreamID, f.ByteOffset)
	}
	b.WriteByte(0x11)
	quicvarint.Write(b, uint64(f.StreamID))
	quicvarint.Write(b, uint64(f.ByteOffset))
	return nil
}

// Length of a written frame
func (f *MaxStreamDataFrame) Length(version protocol.VersionNumber) protocol.ByteCount {
	if !version.UsesIETFFrameFormat() {
		return windowUpdateFrameLength
	}
	return 1 + protocol.ByteCount(quicvarint.Len(uint64(f.StreamID))+quicvarint.Len(uint64(f.ByteOffset)))
}
