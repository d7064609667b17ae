package wire

import (
	"bytes"

	"github.com/quic-go/quicwire/internal/protocol"
	"github.com/quic-go/quicwire/internal/qerr"
	"github.com/quic-go/quicwire/internal/utils"
)

// A StopWaitingFrame tells the peer not to expect packets below LeastUnacked.
// It only exists in the legacy frame format.
// The least unacked is delta-encoded against the packet number of the packet
// carrying the frame, so writing and parsing need that packet number and its
// wire length.
type StopWaitingFrame struct {
	LeastUnacked    protocol.PacketNumber
	PacketNumber    protocol.PacketNumber
	PacketNumberLen protocol.PacketNumberLen
}

// ParseStopWaitingFrame parses a STOP_WAITING frame
func ParseStopWaitingFrame(r *bytes.Reader, packetNumber protocol.PacketNumber, packetNumberLen protocol.PacketNumberLen, version protocol.VersionNumber) (*StopWaitingFrame, error) {
	if _, err := r.ReadByte(); err != nil { // read the TypeByte
		return nil, err
	}
	leastUnackedDelta, err := utils.BigEndian.ReadUintN(r, uint8(packetNumberLen))
	if err != nil {
		return nil, err
	}
	if leastUnackedDelta >= uint64(packetNumber) {
		return nil, qerr.Error(qerr.InvalidStopWaitingData, "invalid least unacked delta")
	}
	return &StopWaitingFrame{
		LeastUnacked: packetNumber - protocol.PacketNumber(leastUnackedDelta),
	}, nil
}

// Write writes a STOP_WAITING frame
func (f *StopWaitingFrame) Write(b *bytes.Buffer, version protocol.VersionNumber) error {
	if version.UsesIETFFrameFormat() {
		return qerr.Error(qerr.InvalidVersion, "STOP_WAITING frame not supported by this version")
	}
	// packet number and packet number length have to be set before writing
	if f.PacketNumber == protocol.InvalidPacketNumber {
		return qerr.Error(qerr.InternalError, "StopWaitingFrame: packet number not set")
	}
	if f.PacketNumberLen == protocol.PacketNumberLenInvalid {
		return qerr.Error(qerr.InternalError, "StopWaitingFrame: packet number length not set")
	}
	if f.LeastUnacked > f.PacketNumber {
		return qerr.Error(qerr.InternalError, "StopWaitingFrame: least unacked higher than the packet number")
	}

	b.WriteByte(0x06)
	leastUnackedDelta := uint64(f.PacketNumber - f.LeastUnacked)
	utils.BigEndian.WriteUintN(b, uint8(f.PacketNumberLen), leastUnackedDelta)
	return nil
}

// Length of a written frame
func (f *StopWaitingFrame) Length(version protocol.VersionNumber) protocol.ByteCount {
	return 1 + protocol.ByteCount(f.PacketNumberLen)
}
