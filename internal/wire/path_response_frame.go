package wire

import (
	"bytes"
	"io"

	"github.com/quic-go/quicwire/internal/protocol"
	"github.com/quic-go/quicwire/internal/qerr"
)

// A PathResponseFrame answers a PATH_CHALLENGE.
// It only exists in the IETF frame format.
type PathResponseFrame struct {
	Data [8]byte
}

// ParsePathResponseFrame parses a PATH_RESPONSE frame
func ParsePathResponseFrame(r *bytes.Reader, version protocol.VersionNumber) (*PathResponseFrame, error) {
	if _, err := r.ReadByte(); err != nil { // read the TypeByte
		return nil, err
	}
	frame := &PathResponseFrame{}
	if _, err := io.ReadFull(r, frame.Data[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, io.EOF
		}
		return nil, err
	}
	return frame, nil
}

// Write writes a PATH_RESPONSE frame
func (f *PathResponseFrame) Write(b *bytes.Buffer, version protocol.VersionNumber) error {
	if !version.UsesIETFFrameFormat() {
		return qerr.Error(qerr.InvalidVersion, "PATH_RESPONSE frame not supported by this version")
	}
	b.WriteByte(0x1b)
	b.Write(f.Data[:])
	return nil
}

// Length of a written frame
func (f *PathResponseFrame) Length(version protocol.VersionNumber) protocol.ByteCount {
	return 1 + 8
}
