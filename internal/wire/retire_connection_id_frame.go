package wire

import (
	"bytes"

	"github.com/quic-go/quicwire/internal/protocol"
	"github.com/quic-go/quicwire/internal/qerr"
	"github.com/quic-go/quicwire/quicvarint"
)

// A RetireConnectionIDFrame retires a connection ID the peer supplied earlier.
// It only exists in the IETF frame format.
type RetireConnectionIDFrame struct {
	SequenceNumber uint64
}

// ParseRetireConnectionIDFrame parses a RETIRE_CONNECTION_ID frame
func ParseRetireConnectionIDFrame(r *bytes.Reader, version protocol.VersionNumber) (*RetireConnectionIDFrame, error) {
	if _, err := r.ReadByte(); err != nil { // read the TypeByte
		return nil, err
	}
	seq, err := quicvarint.Read(r)
	if err != nil {
		return nil, err
	}
	return &RetireConnectionIDFrame{SequenceNumber: seq}, nil
}

// Write writes a RETIRE_CONNECTION_ID frame
func (f *RetireConnectionIDFrame) Write(b *bytes.Buffer, version protocol.VersionNumber) error {
	if !version.UsesIETFFrameFormat() {
		return qerr.Error(qerr.InvalidVersion, "RETIRE_CONNECTION_ID frame not supported by this version")
	}
	b.WriteByte(0x19)
	quicvarint.Write(b, f.SequenceNumber)
	return nil
}

// Length of a written frame
func (f *RetireConnectionIDFrame) Length(version protocol.VersionNumber) protocol.ByteCount {
	return 1 + protocol.ByteCount(quicvarint.Len(f.SequenceNumber))
}
