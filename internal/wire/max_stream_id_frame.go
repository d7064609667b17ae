package wire

import (
	"bytes"

	"github.com/quic-go/quicwire/internal/protocol"
	"github.com/quic-go/quicwire/internal/qerr"
	"github.com/quic-go/quicwire/quicvarint"
)

// A MaxStreamIDFrame raises the maximum stream ID the peer is allowed to open.
// It only exists in the IETF frame format.
type MaxStreamIDFrame struct {
	StreamID protocol.StreamID
}

// ParseMaxStreamIDFrame parses a MAX_STREAM_ID frame
func ParseMaxStreamIDFrame(r *bytes.Reader, version protocol.VersionNumber) (*MaxStreamIDFrame, error) {
	if _, err := r.ReadByte(); err != nil { // read the TypeByte
		return nil, err
	}
	sid, err := quicvarint.Read(r)
	if err != nil {
		return nil, err
	}
	return &MaxStreamIDFrame{StreamID: protocol.StreamID(sid)}, nil
}

// Write writes a MAX_STREAM_ID frame
func (f *MaxStreamIDFrame) Write(b *bytes.Buffer, version protocol.VersionNumber) error {
	if !version.UsesIETFFrameFormat() {
		return qerr.Error(qerr.InvalidVersion, "MAX_STREAM_ID frame not supported by this version")
	}
	b.WriteByte(0x12)
	quicvarint.Write(b, uint64(f.StreamID))
	return nil
}

// Length of a written frame
func (f *MaxStreamIDFrame) Length(version protocol.VersionNumber) protocol.ByteCount {
	return 1 + protocol.ByteCount(quicvarint.Len(uint64(f.StreamID)))
}
