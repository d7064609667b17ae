package wire

import (
	"bytes"
	"io"

	"github.com/quic-go/quicwire/internal/protocol"
	"github.com/quic-go/quicwire/internal/qerr"
)

// A PathChallengeFrame probes a network path.
// It only exists in the IETF frame format.
type PathChallengeFrame struct {
	Data [8]byte
}

// ParsePathChallengeFrame parses a PATH_CHALLENGE frame
func ParsePathChallengeFrame(r *bytes.Reader, version protocol.VersionNumber) (*PathChallengeFrame, error) {
	if _, err := r.ReadByte(); err != nil { // read the TypeByte
		return nil, err
	}
	frame := &PathChallengeFrame{}
	if _, err := io.ReadFull(r, frame.Data[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, io.EOF
		}
		return nil, err
	}
	return frame, nil
}

// Write writes a PATH_CHALLENGE frame
func (f *PathChallengeFrame) Write(b *bytes.Buffer, version protocol.VersionNumber) error {
	if !version.UsesIETFFrameFormat() {
		return qerr.Error(qerr.InvalidVersion, "PATH_CHALLENGE frame not supported by this version")
	}
	b.WriteByte(0x1a)
	b.Write(f.Data[:])
	return nil
}

// Length of a written frame
func (f *PathChallengeFrame) Length(version protocol.VersionNumber) protocol.ByteCount {
	return 1 + 8
}
