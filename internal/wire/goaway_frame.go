package wire

import (
	"bytes"
	"io"
	"math"

	"github.com/quic-go/quicwire/internal/protocol"
	"github.com/quic-go/quicwire/internal/qerr"
	"github.com/quic-go/quicwire/internal/utils"
)

// A GoawayFrame announces that the connection is about to shut down.
// It only exists in the legacy frame format.
type GoawayFrame struct {
	ErrorCode      uint64
	LastGoodStream protocol.StreamID
	ReasonPhrase   string
}

// ParseGoawayFrame parses a GOAWAY frame
func ParseGoawayFrame(r *bytes.Reader, version protocol.VersionNumber) (*GoawayFrame, error) {
	if _, err := r.ReadByte(); err != nil { // read the TypeByte
		return nil, err
	}

	frame := &GoawayFrame{}
	errorCode, err := utils.BigEndian.ReadUint32(r)
	if err != nil {
		return nil, err
	}
	frame.ErrorCode = uint64(errorCode)

	lastGoodStream, err := utils.BigEndian.ReadUint32(r)
	if err != nil {
		return nil, err
	}
	frame.LastGoodStream = protocol.StreamID(lastGoodStream)

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

// Write writes a GOAWAY frame
func (f *GoawayFrame) Write(b *bytes.Buffer, version protocol.VersionNumber) error {
	if version.UsesIETFFrameFormat() {
		return qerr.Error(qerr.InvalidVersion, "GOAWAY frame not supported by this version")
	}
	if len(f.ReasonPhrase) > math.MaxUint16 {
		return qerr.Error(qerr.InternalError, "reason phrase too long")
	}
	b.WriteByte(0x03)
	utils.BigEndian.WriteUint32(b, uint32(f.ErrorCode))
	utils.BigEndian.WriteUint32(b, uint32(f.LastGoodStream))
	utils.BigEndian.WriteUint16(b, uint16(len(f.ReasonPhrase)))
	b.WriteString(f.ReasonPhrase)
	return nil
}

// Length of a written frame
func (f *GoawayFrame) Length(version protocol.VersionNumber) protocol.ByteCount {
	return 1 + 4 + 4 + 2 + protocol.ByteCount(len(f.ReasonPhrase))
}
