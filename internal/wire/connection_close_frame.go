package wire

import (
	"bytes"
	"io"
	"math"

	"github.com/quic-go/quicwire/internal/protocol"
	"github.com/quic-go/quicwire/internal/qerr"
	"github.com/quic-go/quicwire/internal/utils"
	"github.com/quic-go/quicwire/quicvarint"
)

// A ConnectionCloseFrame in QUIC
type ConnectionCloseFrame struct {
	ErrorCode    uint64
	ReasonPhrase string

	// IETF encoding only. A transport-level close also reports the type of
	// the frame that caused the close.
	IsApplicationError bool
	FrameType          uint64
}

// ParseConnectionCloseFrame parses a CONNECTION_CLOSE frame
func ParseConnectionCloseFrame(r *bytes.Reader, version protocol.VersionNumber) (*ConnectionCloseFrame, error) {
	typeByte, err := r.ReadByte()
	if err != nil {
		return nil, err
	}

	frame := &ConnectionCloseFrame{}
	if version.UsesIETFFrameFormat() {
		frame.IsApplicationError = typeByte == 0x1d
		errorCode, err := quicvarint.Read(r)
		if err != nil {
			return nil, err
		}
		frame.ErrorCode = errorCode
		if !frame.IsApplicationError {
			ft, err := quicvarint.Read(r)
			if err != nil {
				return nil, err
			}
			frame.FrameType = ft
		}
		reasonPhraseLen, err := quicvarint.Read(r)
		if err != nil {
			return nil, err
		}
		if reasonPhraseLen > uint64(r.Len()) {
			return nil, io.EOF
		}
		reasonPhrase := make([]byte, reasonPhraseLen)
		if _, err := io.ReadFull(r, reasonPhrase); err != nil {
			return nil, err
		}
		frame.ReasonPhrase = string(reasonPhrase)
		return frame, nil
	}

	errorCode, err := utils.BigEndian.ReadUint32(r)
	if err != nil {
		return nil, err
	}
	frame.ErrorCode = uint64(errorCode)
	reasonPhraseLen, err := utils.BigEndian.ReadUint16(r)
	if err != nil {
		return nil, err
	}
	if int(reasonPhraseLen) > r.Len() {
		return nil, io.EOF
	}
	reasonPhrase := make([]byte, reasonPhraseLen)
	if _, err := io.ReadFull(r, reasonPhrase); err != nil {
		return nil, err
	}
	frame.ReasonPhrase = string(reasonPhrase)
	return frame, nil
}

// Write writes a CONNECTION_CLOSE frame
func (f *ConnectionCloseFrame) Write(b *bytes.Buffer, version protocol.VersionNumber) error {
	if version.UsesIETFFrameFormat() {
		if f.IsApplicationError {
			b.WriteByte(0x1d)
		} else {
			b.WriteByte(0x1c)
		}
		quicvarint.Write(b, f.ErrorCode)
		if !f.IsApplicationError {
			quicvarint.Write(b, f.FrameType)
		}
		quicvarint.Write(b, uint64(len(f.ReasonPhrase)))
		b.WriteString(f.ReasonPhrase)
		return nil
	}

	if len(f.ReasonPhrase) > math.MaxUint16 {
		return qerr.Error(qerr.InternalError, "reason phrase too long")
	}
	b.WriteByte(0x02)
	utils.BigEndian.WriteUint32(b, uint32(f.ErrorCode))
	utils.BigEndian.WriteUint16(b, uint16(len(f.ReasonPhrase)))
	b.WriteString(f.ReasonPhrase)
	return nil
}

// Length of a written frame
func (f *ConnectionCloseFrame) Length(version protocol.VersionNumber) protocol.ByteCount {
	if version.UsesIETFFrameFormat() {
		length := 1 + protocol.ByteCount(quicvarint.Len(f.ErrorCode))
		if !f.IsApplicationError {
			length += protocol.ByteCount(quicvarint.Len(f.FrameType))
		}
		return length + protocol.ByteCount(quicvarint.Len(uint64(len(f.ReasonPhrase)))+len(f.ReasonPhrase))
	}
	return 1 + 4 + 2 + protocol.ByteCount(len(f.ReasonPhrase))
}
