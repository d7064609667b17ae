package wire

import (
	"bytes"

	"github.com/quic-go/quicwire/internal/protocol"
	"github.com/quic-go/quicwire/internal/qerr"
	"github.com/quic-go/quicwire/quicvarint"
)

// A StreamIDBlockedFrame says that the sender wants to open a stream beyond
// the current stream ID limit. It only exists in the IETF frame format.
type StreamIDBlockedFrame struct {
	StreamID protocol.StreamID
}

// ParseStreamIDBlockedFrame parses a STREAM_ID_BLOCKED frame
func ParseStreamIDBlockedFrame(r *bytes.Reader, version protocol.VersionNumber) (*StreamIDBlockedFrame, error) {
	if _, err := r.ReadByte(); err != nil { // read the TypeByte
		return nil, err
	}
	sid, err := quicvarint.Read(r)
	if err != nil {
		return nil, err
	}
	return &StreamIDBlockedFrame{StreamID: protocol.StreamID(sid)}, nil
}

// Write writes a STREAM_ID_BLOCKED frame
func (f *StreamIDBlockedFrame) Write(b *bytes.Buffer, version protocol.VersionNumber) error {
	if !version.UsesIETFFrameFormat() {
		return qerr.Error(qerr.InvalidVersion, "STREAM_ID_BLOCKED frame not supported by this version")
	}
	b.WriteByte(0x16)
	quicvarint.Write(b, uint64(f.StreamID))
	return nil
}

// Length of a written frame
func (f *StreamIDBlockedFrame) Length(version protocol.VersionNumber) protocol.ByteCount {
	return 1 + protocol.ByteCount(quicvarint.Len(uint64(f.StreamID)))
}
