package wire

import (
	"bytes"

	"github.com/quic-go/quicwire/internal/protocol"
	"github.com/quic-go/quicwire/internal/qerr"
	"github.com/quic-go/quicwire/quicvarint"
)

// A StopSendingFrame is a STOP_SENDING frame.
// It only exists in the IETF frame format.
type StopSendingFrame struct {
	StreamID  protocol.StreamID
	ErrorCode uint64
}

// ParseStopSendingFrame parses a STOP_SENDING frame
func ParseStopSendingFrame(r *bytes.Reader, version protocol.VersionNumber) (*StopSendingFrame, error) {
	if _, err := r.ReadByte(); err != nil { // read the TypeByte
		return nil, err
	}
	sid, err := quicvarint.Read(r)
	if err != nil {
		return nil, err
	}
	errorCode, err := quicvarint.Read(r)
	if err != nil {
		return nil, err
	}
	return &StopSendingFrame{
		StreamID:  protocol.StreamID(sid),
		ErrorCode: errorCode,
	}, nil
}

// Write writes a STOP_SENDING frame
func (f *StopSendingFrame) Write(b *bytes.Buffer, version protocol.VersionNumber) error {
	if !version.UsesIETFFrameFormat() {
		return qerr.Error(qerr.InvalidVersion, "STOP_SENDING frame not supported by this version")
	}
	b.WriteByte(0x05)
	quicvarint.Write(b, uint64(f.StreamID))
	quicvarint.Write(b, f.ErrorCode)
	return nil
}

// Length of a written frame
func (f *StopSendingFrame) Length(version protocol.VersionNumber) protocol.ByteCount {
	return 1 + protocol.ByteCount(quicvarint.Len(uint64(f.StreamID))+quicvarint.Len(f.ErrorCode))
}
