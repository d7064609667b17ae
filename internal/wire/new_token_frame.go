package wire

import (
	"bytes"
	"io"

	"github.com/quic-go/quicwire/internal/protocol"
	"github.com/quic-go/quicwire/internal/qerr"
	"github.com/quic-go/quicwire/quicvarint"
)

// A NewTokenFrame supplies the client with a token for a future connection.
// It only exists in the IETF frame format.
type NewTokenFrame struct {
	Token []byte
}

// ParseNewTokenFrame parses a NEW_TOKEN frame
func ParseNewTokenFrame(r *bytes.Reader, version protocol.VersionNumber) (*NewTokenFrame, error) {
	if _, err := r.ReadByte(); err != nil { // read the TypeByte
		return nil, err
	}
	tokenLen, err := quicvarint.Read(r)
	if err != nil {
		return nil, err
	}
	if tokenLen == 0 {
		return nil, qerr.Error(qerr.InvalidFrameData, "token must not be empty")
	}
	if tokenLen > uint64(r.Len()) {
		return nil, io.EOF
	}
	token := make([]byte, tokenLen)
	if _, err := io.ReadFull(r, token); err != nil {
		return nil, err
	}
	return &NewTokenFrame{Token: token}, nil
}

// Write writes a NEW_TOKEN frame
func (f *NewTokenFrame) Write(b *bytes.Buffer, version protocol.VersionNumber) error {
	if !version.UsesIETFFrameFormat() {
		return qerr.Error(qerr.InvalidVersion, "NEW_TOKEN frame not supported by this version")
	}
	b.WriteByte(0x07)
	quicvarint.Write(b, uint64(len(f.Token)))
	b.Write(f.Token)
	return nil
}

// Length of a written frame
func (f *NewTokenFrame) Length(version protocol.VersionNumber) protocol.ByteCount {
	return 1 + protocol.ByteCount(quicvarint.Len(uint64(len(f.Token)))+len(f.Token))
}
