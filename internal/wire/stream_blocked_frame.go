package wire

import (
	"bytes"

	"github.com/quic-go/quicwire/internal/protocol"
	"github.com/quic-go/quicwire/quicvarint"
)

// A StreamBlockedFrame says that the sender is blocked by stream-level flow
// control. It is a STREAM_DATA_BLOCKED frame in the IETF encoding.
type StreamBlockedFrame struct {
	StreamID protocol.StreamID
	// Offset is the stream-level limit at which blocking occurred.
	// The legacy encoding doesn't carry it.
	Offset protocol.ByteCount
}

// ParseStreamBlockedFrame parses a STREAM_DATA_BLOCKED frame
func ParseStreamBlockedFrame(r *bytes.Reader, version protocol.VersionNumber) (*StreamBlockedFrame, error) {
	if _, err := r.ReadByte(); err != nil { // read the TypeByte
		return nil, err
	}
	sid, err := quicvarint.Read(r)
	if err != nil {
		return nil, err
	}
	offset, err := quicvarint.Read(r)
	if err != nil {
		return nil, err
	}
	return &StreamBlockedFrame{
		StreamID: protocol.StreamID(sid),
		Offset:   protocol.ByteCount(offset),
	}, nil
}

// Write writes a STREAM_DATA_BLOCKED frame
func (f *StreamBlockedFrame) Write(b *bytes.Buffer, version protocol.VersionNumber) error {
	if !version.UsesIETFFrameFormat() {
		return writeBlockedFrameLegacy(b, f.StreamID)
	}
	b.WriteByte(0x15)
	quicvarint.Write(b, uint64(f.StreamID))
	quicvarint.Write(b, uint64(f.Offset))
	return nil
}

// Length of a written frame
func (f *StreamBlockedFrame) Length(version protocol.VersionNumber) protocol.ByteCount {
	if !version.UsesIETFFrameFormat() {
		return blockedFrameLegacyLength
	}
	return 1 + protocol.ByteCount(quicvarint.Len(uint64(f.StreamID))+quicvarint.Len(uint64(f.Offset)))
}
