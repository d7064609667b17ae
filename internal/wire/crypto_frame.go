package wire

import (
	"bytes"
	"io"

	"github.com/quic-go/quicwire/internal/protocol"
	"github.com/quic-go/quicwire/internal/qerr"
	"github.com/quic-go/quicwire/quicvarint"
)

// A CryptoFrame carries handshake data.
// It only exists in the IETF frame format, the legacy format sends handshake
// data on a dedicated stream.
type CryptoFrame struct {
	Offset protocol.ByteCount
	Data   []byte
}

// ParseCryptoFrame parses a CRYPTO frame
func ParseCryptoFrame(r *bytes.Reader, version protocol.VersionNumber) (*CryptoFrame, error) {
	if _, err := r.ReadByte(); err != nil { // read the TypeByte
		return nil, err
	}
	frame := &CryptoFrame{}
	offset, err := quicvarint.Read(r)
	if err != nil {
		return nil, err
	}
	frame.Offset = protocol.ByteCount(offset)
	dataLen, err := quicvarint.Read(r)
	if err != nil {
		return nil, err
	}
	if dataLen > uint64(r.Len()) {
		return nil, io.EOF
	}
	if dataLen != 0 {
		frame.Data = make([]byte, dataLen)
		if _, err := io.ReadFull(r, frame.Data); err != nil {
			// this should never happen, since we already checked the dataLen earlier
			return nil, err
		}
	}
	return frame, nil
}

// Write writes a CRYPTO frame
func (f *CryptoFrame) Write(b *bytes.Buffer, version protocol.VersionNumber) error {
	if !version.UsesIETFFrameFormat() {
		return qerr.Error(qerr.InvalidVersion, "CRYPTO frame not supported by this version")
	}
	b.WriteByte(0x06)
	quicvarint.Write(b, uint64(f.Offset))
	quicvarint.Write(b, uint64(len(f.Data)))
	b.Write(f.Data)
	return nil
}

// Length of a written frame
func (f *CryptoFrame) Length(version protocol.VersionNumber) protocol.ByteCount {
	return 1 + protocol.ByteCount(quicvarint.Len(uint64(f.Offset))+quicvarint.Len(uint64(len(f.Data)))+len(f.Data))
}
