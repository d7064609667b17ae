package wire

import (
	"bytes"

	"github.com/quic-go/quicwire/internal/protocol"
	"github.com/quic-go/quicwire/internal/utils"
)

// The legacy encoding has a single WINDOW_UPDATE frame for both
// connection-level and stream-level flow control. A WINDOW_UPDATE for
// stream 0 means connection-level.

const windowUpdateFrameLength = 1 + 4 + 8

// parseWindowUpdateFrame parses a legacy WINDOW_UPDATE frame.
// It returns a MaxDataFrame for stream 0 and a MaxStreamDataFrame otherwise.
func parseWindowUpdateFrame(r *bytes.Reader, version protocol.VersionNumber) (Frame, error) {
	if _, err := r.ReadByte(); err != nil { // read the TypeByte
		return nil, err
	}
	sid, err := utils.BigEndian.ReadUint32(r)
	if err != nil {
		return nil, err
	}
	byteOffset, err := utils.BigEndian.ReadUint64(r)
	if err != nil {
		return nil, err
	}
	if sid == 0 {
		return &MaxDataFrame{ByteOffset: protocol.ByteCount(byteOffset)}, nil
	}
	return &MaxStreamDataFrame{
		StreamID:   protocol.StreamID(sid),
		ByteOffset: protocol.ByteCount(byteOffset),
	}, nil
}

func writeWindowUpdateFrame(b *bytes.Buffer, sid protocol.StreamID, offset protocol.ByteCount) error {
	b.WriteByte(0x04)
	utils.BigEndian.WriteUint32(b, uint32(sid))
	utils.BigEndian.WriteUint64(b, uint64(offset))
	return nil
}
