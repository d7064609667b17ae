package wire

import (
	"bytes"
	"fmt"

	"github.com/quic-go/quicwire/internal/protocol"
	"github.com/quic-go/quicwire/internal/qerr"
	"github.com/quic-go/quicwire/quicvarint"
)

// ParseNextFrame parses the next frame.
// It returns nil, nil when the reader is exhausted.
// The header is needed for frames that are delta-encoded against the packet
// number (the legacy STOP_WAITING frame).
func ParseNextFrame(r *bytes.Reader, hdr *Header, v protocol.VersionNumber) (Frame, error) {
	if r.Len() == 0 {
		return nil, nil
	}
	if v.UsesIETFFrameFormat() {
		return parseIETFFrame(r, v)
	}
	return parseLegacyFrame(r, hdr, v)
}

func parseLegacyFrame(r *bytes.Reader, hdr *Header, v protocol.VersionNumber) (Frame, error) {
	typeByte, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if err := r.UnreadByte(); err != nil {
		return nil, err
	}

	if typeByte&0x80 > 0 {
		frame, err := ParseStreamFrame(r, v)
		if err != nil {
			return nil, wrapFrameError(err, qerr.InvalidStreamData)
		}
		return frame, nil
	}
	if typeByte&0x40 > 0 {
		frame, err := ParseAckFrame(r, v)
		if err != nil {
			return nil, wrapFrameError(err, qerr.InvalidAckData)
		}
		return frame, nil
	}

	var frame Frame
	switch typeByte {
	case 0x00: // PADDING
		frame, err = parsePaddingFrame(r, v)
	case 0x01:
		frame, err = ParseRstStreamFrame(r, v)
		err = wrapFrameError(err, qerr.InvalidRstStreamData)
	case 0x02:
		frame, err = ParseConnectionCloseFrame(r, v)
		err = wrapFrameError(err, qerr.InvalidConnectionCloseData)
	case 0x03:
		frame, err = ParseGoawayFrame(r, v)
		err = wrapFrameError(err, qerr.InvalidGoawayData)
	case 0x04:
		frame, err = parseWindowUpdateFrame(r, v)
		err = wrapFrameError(err, qerr.InvalidWindowUpdateData)
	case 0x05:
		frame, err = parseBlockedFrameLegacy(r, v)
		err = wrapFrameError(err, qerr.InvalidBlockedData)
	case 0x06:
		frame, err = ParseStopWaitingFrame(r, hdr.PacketNumber, hdr.PacketNumberLen, v)
		err = wrapFrameError(err, qerr.InvalidStopWaitingData)
	case 0x07:
		frame, err = ParsePingFrame(r, v)
	default:
		return nil, qerr.Error(qerr.InvalidFrameData, fmt.Sprintf("unknown type byte 0x%x", typeByte))
	}
	if err != nil {
		return nil, err
	}
	return frame, nil
}

func parseIETFFrame(r *bytes.Reader, v protocol.VersionNumber) (Frame, error) {
	// The frame type is a varint. A receiver must reject non-minimal
	// encodings of the type, otherwise a single frame type would have
	// multiple valid wire encodings.
	lenBefore := r.Len()
	typ, err := quicvarint.Read(r)
	if err != nil {
		return nil, err
	}
	consumed := lenBefore - r.Len()
	if consumed != quicvarint.Len(typ) {
		return nil, qerr.Error(qerr.InvalidFrameData, "non-minimal frame type encoding")
	}
	if consumed != 1 {
		// no frame type outside the 1-byte varint range is defined
		return nil, qerr.Error(qerr.InvalidFrameData, fmt.Sprintf("unknown frame type 0x%x", typ))
	}
	// rewind, the frame parsers read their own type byte
	if err := r.UnreadByte(); err != nil {
		return nil, err
	}
	typeByte := byte(typ)

	var frame Frame
	switch {
	case typeByte == 0x00: // PADDING
		frame, err = parsePaddingFrame(r, v)
	case typeByte == 0x01: // PING
		frame, err = ParsePingFrame(r, v)
	case typeByte == 0x02 || typeByte == 0x03: // ACK
		frame, err = ParseAckFrame(r, v)
		err = wrapFrameError(err, qerr.InvalidAckData)
	case typeByte == 0x04: // RESET_STREAM
		frame, err = ParseRstStreamFrame(r, v)
		err = wrapFrameError(err, qerr.InvalidRstStreamData)
	case typeByte == 0x05: // STOP_SENDING
		frame, err = ParseStopSendingFrame(r, v)
		err = wrapFrameError(err, qerr.InvalidFrameData)
	case typeByte == 0x06: // CRYPTO
		frame, err = ParseCryptoFrame(r, v)
		err = wrapFrameError(err, qerr.InvalidFrameData)
	case typeByte == 0x07: // NEW_TOKEN
		frame, err = ParseNewTokenFrame(r, v)
		err = wrapFrameError(err, qerr.InvalidFrameData)
	case typeByte >= 0x08 && typeByte <= 0x0f: // STREAM
		frame, err = ParseStreamFrame(r, v)
		err = wrapFrameError(err, qerr.InvalidStreamData)
	case typeByte == 0x10: // MAX_DATA
		frame, err = ParseMaxDataFrame(r, v)
		err = wrapFrameError(err, qerr.InvalidWindowUpdateData)
	case typeByte == 0x11: // MAX_STREAM_DATA
		frame, err = ParseMaxStreamDataFrame(r, v)
		err = wrapFrameError(err, qerr.InvalidWindowUpdateData)
	case typeByte == 0x12: // MAX_STREAM_ID
		frame, err = ParseMaxStreamIDFrame(r, v)
		err = wrapFrameError(err, qerr.InvalidFrameData)
	case typeByte == 0x14: // DATA_BLOCKED
		frame, err = ParseBlockedFrame(r, v)
		err = wrapFrameError(err, qerr.InvalidBlockedData)
	case typeByte == 0x15: // STREAM_DATA_BLOCKED
		frame, err = ParseStreamBlockedFrame(r, v)
		err = wrapFrameError(err, qerr.InvalidBlockedData)
	case typeByte == 0x16: // STREAM_ID_BLOCKED
		frame, err = ParseStreamIDBlockedFrame(r, v)
		err = wrapFrameError(err, qerr.InvalidBlockedData)
	case typeByte == 0x18: // NEW_CONNECTION_ID
		frame, err = ParseNewConnectionIDFrame(r, v)
		err = wrapFrameError(err, qerr.InvalidFrameData)
	case typeByte == 0x19: // RETIRE_CONNECTION_ID
		frame, err = ParseRetireConnectionIDFrame(r, v)
		err = wrapFrameError(err, qerr.InvalidFrameData)
	case typeByte == 0x1a: // PATH_CHALLENGE
		frame, err = ParsePathChallengeFrame(r, v)
		err = wrapFrameError(err, qerr.InvalidFrameData)
	case typeByte == 0x1b: // PATH_RESPONSE
		frame, err = ParsePathResponseFrame(r, v)
		err = wrapFrameError(err, qerr.InvalidFrameData)
	case typeByte == 0x1c || typeByte == 0x1d: // CONNECTION_CLOSE, APPLICATION_CLOSE
		frame, err = ParseConnectionCloseFrame(r, v)
		err = wrapFrameError(err, qerr.InvalidConnectionCloseData)
	case typeByte == 0x30 || typeByte == 0x31: // DATAGRAM
		frame, err = ParseDatagramFrame(r, v)
		err = wrapFrameError(err, qerr.InvalidFrameData)
	default:
		return nil, qerr.Error(qerr.InvalidFrameData, fmt.Sprintf("unknown type byte 0x%x", typeByte))
	}
	if err != nil {
		return nil, err
	}
	return frame, nil
}

// wrapFrameError attaches an error code to errors that don't carry one yet,
// e.g. truncation errors from the reader.
func wrapFrameError(err error, code qerr.ErrorCode) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*qerr.QuicError); ok {
		return err
	}
	return qerr.Error(code, err.Error())
}
