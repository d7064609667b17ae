package wire

import (
	"bytes"
	"io"
	"io/ioutil"

	"github.com/quic-go/quicwire/internal/protocol"
	"github.com/quic-go/quicwire/internal/qerr"
	"github.com/quic-go/quicwire/internal/utils"
	"github.com/quic-go/quicwire/quicvarint"
)

// A StreamFrame of QUIC
type StreamFrame struct {
	StreamID       protocol.StreamID
	Offset         protocol.ByteCount
	Data           []byte
	FinBit         bool
	DataLenPresent bool

	// If Data is nil, the frame body is pulled from the Producer when the
	// frame is written, addressed by (StreamID, Offset, ProducerDataLen).
	// This way data owned by the send buffer is never copied into the frame.
	Producer        StreamDataProducer
	ProducerDataLen protocol.ByteCount
}

// ParseStreamFrame reads a STREAM frame. The type byte must not have been read yet.
func ParseStreamFrame(r *bytes.Reader, version protocol.VersionNumber) (*StreamFrame, error) {
	if version.UsesIETFFrameFormat() {
		return parseStreamFrameIETF(r, version)
	}
	return parseStreamFrameLegacy(r, version)
}

func parseStreamFrameLegacy(r *bytes.Reader, version protocol.VersionNumber) (*StreamFrame, error) {
	frame := &StreamFrame{}

	typeByte, err := r.ReadByte()
	if err != nil {
		return nil, err
	}

	frame.FinBit = typeByte&0x40 > 0
	frame.DataLenPresent = typeByte&0x20 > 0
	offsetLen := typeByte & 0x1c >> 2
	if offsetLen != 0 {
		offsetLen++
	}
	streamIDLen := typeByte&0x03 + 1

	sid, err := utils.BigEndian.ReadUintN(r, streamIDLen)
	if err != nil {
		return nil, err
	}
	frame.StreamID = protocol.StreamID(sid)

	offset, err := utils.BigEndian.ReadUintN(r, offsetLen)
	if err != nil {
		return nil, err
	}
	frame.Offset = protocol.ByteCount(offset)

	var dataLen uint16
	if frame.DataLenPresent {
		dataLen, err = utils.BigEndian.ReadUint16(r)
		if err != nil {
			return nil, err
		}
	}
	if protocol.ByteCount(dataLen) > protocol.MaxReceivePacketSize {
		return nil, qerr.Error(qerr.InvalidStreamData, "data length too large")
	}

	if !frame.DataLenPresent {
		// the rest of the packet is data
		frame.Data, err = ioutil.ReadAll(r)
		if err != nil {
			return nil, err
		}
	} else if dataLen != 0 {
		frame.Data = make([]byte, dataLen)
		if _, err := io.ReadFull(r, frame.Data); err != nil {
			if err == io.ErrUnexpectedEOF {
				return nil, io.EOF
			}
			return nil, err
		}
	}

	if !frame.FinBit && len(frame.Data) == 0 {
		return nil, qerr.Error(qerr.InvalidStreamData, "empty stream frame without fin")
	}
	return frame, nil
}

func parseStreamFrameIETF(r *bytes.Reader, version protocol.VersionNumber) (*StreamFrame, error) {
	frame := &StreamFrame{}

	typeByte, err := r.ReadByte()
	if err != nil {
		return nil, err
	}

	hasOffset := typeByte&0x4 > 0
	frame.FinBit = typeByte&0x1 > 0
	frame.DataLenPresent = typeByte&0x2 > 0

	sid, err := quicvarint.Read(r)
	if err != nil {
		return nil, err
	}
	frame.StreamID = protocol.StreamID(sid)
	if hasOffset {
		offset, err := quicvarint.Read(r)
		if err != nil {
			return nil, err
		}
		frame.Offset = protocol.ByteCount(offset)
	}

	var dataLen uint64
	if frame.DataLenPresent {
		dataLen, err = quicvarint.Read(r)
		if err != nil {
			return nil, err
		}
		// shortcut to prevent the unnecessary allocation of dataLen bytes
		// if the dataLen is larger than the remaining packet, this will throw an error below
		if dataLen > uint64(protocol.MaxReceivePacketSize) {
			return nil, io.EOF
		}
	}

	if !frame.DataLenPresent {
		// the rest of the packet is data
		frame.Data, err = ioutil.ReadAll(r)
		if err != nil {
			return nil, err
		}
	} else if dataLen != 0 {
		frame.Data = make([]byte, dataLen)
		if _, err := io.ReadFull(r, frame.Data); err != nil {
			if err == io.ErrUnexpectedEOF {
				return nil, io.EOF
			}
			return nil, err
		}
	}

	if frame.Offset+frame.DataLen() > protocol.MaxByteCount {
		return nil, qerr.Error(qerr.InvalidStreamData, "stream data overflows maximum offset")
	}
	if !frame.FinBit && len(frame.Data) == 0 {
		return nil, qerr.Error(qerr.InvalidStreamData, "empty stream frame without fin")
	}
	return frame, nil
}

// Write writes a STREAM frame
func (f *StreamFrame) Write(b *bytes.Buffer, version protocol.VersionNumber) error {
	if f.DataLen() == 0 && !f.FinBit {
		return qerr.Error(qerr.InternalError, "attempted to write empty stream frame without fin")
	}
	if version.UsesIETFFrameFormat() {
		return f.writeIETF(b, version)
	}
	return f.writeLegacy(b, version)
}

func (f *StreamFrame) writeLegacy(b *bytes.Buffer, version protocol.VersionNumber) error {
	typeByte := uint8(0x80) // sets the leftmost bit to 1
	if f.FinBit {
		typeByte ^= 0x40
	}
	if f.DataLenPresent {
		typeByte ^= 0x20
	}

	offsetLength := f.getOffsetLength()
	if offsetLength > 0 {
		typeByte ^= (uint8(offsetLength) - 1) << 2
	}
	streamIDLen := f.getStreamIDLength()
	typeByte ^= streamIDLen - 1

	b.WriteByte(typeByte)
	utils.BigEndian.WriteUintN(b, streamIDLen, uint64(f.StreamID))
	if offsetLength > 0 {
		utils.BigEndian.WriteUintN(b, uint8(offsetLength), uint64(f.Offset))
	}
	if f.DataLenPresent {
		utils.BigEndian.WriteUint16(b, uint16(f.DataLen()))
	}
	return f.writeData(b)
}

func (f *StreamFrame) writeIETF(b *bytes.Buffer, version protocol.VersionNumber) error {
	typeByte := byte(0x8)
	if f.FinBit {
		typeByte ^= 0x1
	}
	hasOffset := f.Offset != 0
	if f.DataLenPresent {
		typeByte ^= 0x2
	}
	if hasOffset {
		typeByte ^= 0x4
	}
	b.WriteByte(typeByte)
	quicvarint.Write(b, uint64(f.StreamID))
	if hasOffset {
		quicvarint.Write(b, uint64(f.Offset))
	}
	if f.DataLenPresent {
		quicvarint.Write(b, uint64(f.DataLen()))
	}
	return f.writeData(b)
}

func (f *StreamFrame) writeData(b *bytes.Buffer) error {
	if f.Data == nil && f.Producer != nil {
		return f.Producer.WriteStreamData(f.StreamID, f.Offset, f.ProducerDataLen, b)
	}
	b.Write(f.Data)
	return nil
}

// DataLen gives the length of data in bytes
func (f *StreamFrame) DataLen() protocol.ByteCount {
	if f.Data == nil && f.Producer != nil {
		return f.ProducerDataLen
	}
	return protocol.ByteCount(len(f.Data))
}

// Length of a written frame
func (f *StreamFrame) Length(version protocol.VersionNumber) protocol.ByteCount {
	if version.UsesIETFFrameFormat() {
		length := 1 + protocol.ByteCount(quicvarint.Len(uint64(f.StreamID)))
		if f.Offset != 0 {
			length += protocol.ByteCount(quicvarint.Len(uint64(f.Offset)))
		}
		if f.DataLenPresent {
			length += protocol.ByteCount(quicvarint.Len(uint64(f.DataLen())))
		}
		return length + f.DataLen()
	}
	length := 1 + protocol.ByteCount(f.getStreamIDLength()) + f.getOffsetLength()
	if f.DataLenPresent {
		length += 2
	}
	return length + f.DataLen()
}

func (f *StreamFrame) getStreamIDLength() uint8 {
	if f.StreamID < (1 << 8) {
		return 1
	}
	if f.StreamID < (1 << 16) {
		return 2
	}
	if f.StreamID < (1 << 24) {
		return 3
	}
	return 4
}

func (f *StreamFrame) getOffsetLength() protocol.ByteCount {
	if f.Offset == 0 {
		return 0
	}
	if f.Offset < (1 << 16) {
		return 2
	}
	if f.Offset < (1 << 24) {
		return 3
	}
	if f.Offset < (1 << 32) {
		return 4
	}
	if f.Offset < (1 << 40) {
		return 5
	}
	if f.Offset < (1 << 48) {
		return 6
	}
	if f.Offset < (1 << 56) {
		return 7
	}
	return 8
}
