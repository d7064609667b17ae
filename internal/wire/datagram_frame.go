package wire

import (
	"bytes"
	"io"
	"io/ioutil"

	"github.com/quic-go/quicwire/internal/protocol"
	"github.com/quic-go/quicwire/internal/qerr"
	"github.com/quic-go/quicwire/quicvarint"
)

// A DatagramFrame carries an unreliable message.
// It only exists in the IETF frame format.
type DatagramFrame struct {
	DataLenPresent bool
	Data           []byte
}

// ParseDatagramFrame parses a DATAGRAM frame
func ParseDatagramFrame(r *bytes.Reader, version protocol.VersionNumber) (*DatagramFrame, error) {
	typeByte, err := r.ReadByte()
	if err != nil {
		return nil, err
	}

	frame := &DatagramFrame{}
	frame.DataLenPresent = typeByte&0x1 > 0

	var length uint64
	if frame.DataLenPresent {
		var err error
		length, err = quicvarint.Read(r)
		if err != nil {
			return nil, err
		}
		if length > uint64(r.Len()) {
			return nil, io.EOF
		}
	} else {
		length = uint64(r.Len())
	}
	if length > 0 {
		frame.Data = make([]byte, length)
		if _, err := io.ReadFull(r, frame.Data); err != nil {
			return nil, err
		}
	} else if !frame.DataLenPresent {
		// consume the rest of the packet, even if it is empty
		if _, err := ioutil.ReadAll(r); err != nil {
			return nil, err
		}
	}
	return frame, nil
}

// Write writes a DATAGRAM frame
func (f *DatagramFrame) Write(b *bytes.Buffer, version protocol.VersionNumber) error {
	if !version.UsesIETFFrameFormat() {
		return qerr.Error(qerr.InvalidVersion, "DATAGRAM frame not supported by this version")
	}
	typeByte := byte(0x30)
	if f.DataLenPresent {
		typeByte ^= 0x1
	}
	b.WriteByte(typeByte)
	if f.DataLenPresent {
		quicvarint.Write(b, uint64(len(f.Data)))
	}
	b.Write(f.Data)
	return nil
}

// Length of a written frame
func (f *DatagramFrame) Length(version protocol.VersionNumber) protocol.ByteCount {
	length := 1 + protocol.ByteCount(len(f.Data))
	if f.DataLenPresent {
		length += protocol.ByteCount(quicvarint.Len(uint64(len(f.Data))))
	}
	return length
}
