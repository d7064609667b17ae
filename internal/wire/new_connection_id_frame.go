package wire

import (
	"bytes"
	"io"

	"github.com/quic-go/quicwire/internal/protocol"
	"github.com/quic-go/quicwire/internal/qerr"
	"github.com/quic-go/quicwire/quicvarint"
)

// A NewConnectionIDFrame supplies the peer with an alternative connection ID.
// It only exists in the IETF frame format.
type NewConnectionIDFrame struct {
	SequenceNumber      uint64
	RetirePriorTo       uint64
	ConnectionID        protocol.ConnectionID
	StatelessResetToken [16]byte
}

// ParseNewConnectionIDFrame parses a NEW_CONNECTION_ID frame
func ParseNewConnectionIDFrame(r *bytes.Reader, version protocol.VersionNumber) (*NewConnectionIDFrame, error) {
	if _, err := r.ReadByte(); err != nil { // read the TypeByte
		return nil, err
	}
	seq, err := quicvarint.Read(r)
	if err != nil {
		return nil, err
	}
	ret, err := quicvarint.Read(r)
	if err != nil {
		return nil, err
	}
	if ret > seq {
		return nil, qerr.Error(qerr.InvalidFrameData, "retire prior to value larger than the sequence number")
	}
	connIDLen, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if connIDLen != protocol.ConnectionIDLen {
		return nil, qerr.Error(qerr.InvalidFrameData, "invalid connection ID length")
	}
	connID, err := protocol.ReadConnectionID(r, int(connIDLen))
	if err != nil {
		return nil, err
	}
	frame := &NewConnectionIDFrame{
		SequenceNumber: seq,
		RetirePriorTo:  ret,
		ConnectionID:   connID,
	}
	if _, err := io.ReadFull(r, frame.StatelessResetToken[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, io.EOF
		}
		return nil, err
	}
	return frame, nil
}

// Write writes a NEW_CONNECTION_ID frame
func (f *NewConnectionIDFrame) Write(b *bytes.Buffer, version protocol.VersionNumber) error {
	if !version.UsesIETFFrameFormat() {
		return qerr.Error(qerr.InvalidVersion, "NEW_CONNECTION_ID frame not supported by this version")
	}
	if f.ConnectionID.Len() != protocol.ConnectionIDLen {
		return qerr.Error(qerr.InternalError, "invalid connection ID length")
	}
	b.WriteByte(0x18)
	quicvarint.Write(b, f.SequenceNumber)
	quicvarint.Write(b, f.RetirePriorTo)
	b.WriteByte(uint8(f.ConnectionID.Len()))
	b.Write(f.ConnectionID.Bytes())
	b.Write(f.StatelessResetToken[:])
	return nil
}

// Length of a written frame
func (f *NewConnectionIDFrame) Length(version protocol.VersionNumber) protocol.ByteCount {
	return 1 + protocol.ByteCount(quicvarint.Len(f.SequenceNumber)+quicvarint.Len(f.RetirePriorTo)) + 1 + protocol.ByteCount(f.ConnectionID.Len()) + 16
}
