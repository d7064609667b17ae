package wire

import (
	"bytes"

	"github.com/quic-go/quicwire/internal/protocol"
	"github.com/quic-go/quicwire/internal/utils"
	"github.com/quic-go/quicwire/quicvarint"
)

// A BlockedFrame says that the sender is blocked by connection-level flow
// control. It is a DATA_BLOCKED frame in the IETF encoding and a BLOCKED
// frame for stream 0 in the legacy encoding.
type BlockedFrame struct {
	// Offset is the connection-level limit at which blocking occurred.
	// The legacy encoding doesn't carry it.
	Offset protocol.ByteCount
}

// ParseBlockedFrame parses a DATA_BLOCKED frame
func ParseBlockedFrame(r *bytes.Reader, version protocol.VersionNumber) (*BlockedFrame, error) {
	if _, err := r.ReadByte(); err != nil { // read the TypeByte
		return nil, err
	}
	offset, err := quicvarint.Read(r)
	if err != nil {
		return nil, err
	}
	return &BlockedFrame{Offset: protocol.ByteCount(offset)}, nil
}

// Write writes a BLOCKED frame
func (f *BlockedFrame) Write(b *bytes.Buffer, version protocol.VersionNumber) error {
	if !version.UsesIETFFrameFormat() {
		return writeBlockedFrameLegacy(b, 0)
	}
	b.WriteByte(0x14)
	quicvarint.Write(b, uint64(f.Offset))
	return nil
}

// Length of a written frame
func (f *BlockedFrame) Length(version protocol.VersionNumber) protocol.ByteCount {
	if !version.UsesIETFFrameFormat() {
		return blockedFrameLegacyLength
	}
	return 1 + protocol.ByteCount(quicvarint.Len(uint64(f.Offset)))
}

// The legacy encoding has a single BLOCKED frame for both connection-level
// and stream-level blocking, distinguished the same way as WINDOW_UPDATE.

const blockedFrameLegacyLength = 1 + 4

// parseBlockedFrameLegacy parses a legacy BLOCKED frame.
// It returns a BlockedFrame for stream 0 and a StreamBlockedFrame otherwise.
func parseBlockedFrameLegacy(r *bytes.Reader, version protocol.VersionNumber) (Frame, error) {
	if _, err := r.ReadByte(); err != nil { // read the TypeByte
		return nil, err
	}
	sid, err := utils.BigEndian.ReadUint32(r)
	if err != nil {
		return nil, err
	}
	if sid == 0 {
		return &BlockedFrame{}, nil
	}
	return &StreamBlockedFrame{StreamID: protocol.StreamID(sid)}, nil
}

func writeBlockedFrameLegacy(b *bytes.Buffer, sid protocol.StreamID) error {
	b.WriteByte(0x05)
	utils.BigEndian.WriteUint32(b, uint32(sid))
	return nil
}
