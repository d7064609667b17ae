package wire

import (
	"bytes"

	"github.com/quic-go/quicwire/internal/protocol"
	"github.com/quic-go/quicwire/internal/utils"
	"github.com/quic-go/quicwire/quicvarint"
)

// A RstStreamFrame terminates a stream.
// It is a RST_STREAM frame in the legacy encoding and a RESET_STREAM frame
// in the IETF encoding.
type RstStreamFrame struct {
	StreamID   protocol.StreamID
	ErrorCode  uint64
	ByteOffset protocol.ByteCount // the final size of the stream
}

// ParseRstStreamFrame parses a RST_STREAM frame
func ParseRstStreamFrame(r *bytes.Reader, version protocol.VersionNumber) (*RstStreamFrame, error) {
	if _, err := r.ReadByte(); err != nil { // read the TypeByte
		return nil, err
	}

	frame := &RstStreamFrame{}
	if version.UsesIETFFrameFormat() {
		sid, err := quicvarint.Read(r)
		if err != nil {
			return nil, err
		}
		frame.StreamID = protocol.StreamID(sid)
		errorCode, err := quicvarint.Read(r)
		if err != nil {
			return nil, err
		}
		frame.ErrorCode = errorCode
		byteOffset, err := quicvarint.Read(r)
		if err != nil {
			return nil, err
		}
		frame.ByteOffset = protocol.ByteCount(byteOffset)
		return frame, nil
	}

	sid, err := utils.BigEndian.ReadUint32(r)
	if err != nil {
		return nil, err
	}
	frame.StreamID = protocol.StreamID(sid)
	byteOffset, err := utils.BigEndian.ReadUint64(r)
	if err != nil {
		return nil, err
	}
	frame.ByteOffset = protocol.ByteCount(byteOffset)
	errorCode, err := utils.BigEndian.ReadUint32(r)
	if err != nil {
		return nil, err
	}
	frame.ErrorCode = uint64(errorCode)
	return frame, nil
}

// Write writes a RST_STREAM frame
func (f *RstStreamFrame) Write(b *bytes.Buffer, version protocol.VersionNumber) error {
	if version.UsesIETFFrameFormat() {
		b.WriteByte(0x04)
		quicvarint.Write(b, uint64(f.StreamID))
		quicvarint.Write(b, f.ErrorCode)
		quicvarint.Write(b, uint64(f.ByteOffset))
		return nil
	}
	b.WriteByte(0x01)
	utils.BigEndian.WriteUint32(b, uint32(f.StreamID))
	utils.BigEndian.WriteUint64(b, uint64(f.ByteOffset))
	utils.BigEndian.WriteUint32(b, uint32(f.ErrorCode))
	return nil
}

// Length of a written frame
func (f *RstStreamFrame) Length(version protocol.VersionNumber) protocol.ByteCount {
	if version.UsesIETFFrameFormat() {
		return 1 + protocol.ByteCount(quicvarint.Len(uint64(f.StreamID))+quicvarint.Len(f.ErrorCode)+quicvarint.Len(uint64(f.ByteOffset)))
	}
	return 1 + 4 + 8 + 4
}
