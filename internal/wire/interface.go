package wire

import (
	"bytes"
	"io"

	"github.com/quic-go/quicwire/internal/protocol"
)

// A Frame in QUIC
type Frame interface {
	Write(b *bytes.Buffer, version protocol.VersionNumber) error
	Length(version protocol.VersionNumber) protocol.ByteCount
}

// A StreamDataProducer writes stream data directly into an encode buffer.
// It is implemented by the send buffer, so that data that is already
// buffered there doesn't have to be copied into the frame first.
type StreamDataProducer interface {
	WriteStreamData(id protocol.StreamID, offset, length protocol.ByteCount, w io.Writer) error
}
