package qerr

// ErrorCode identifies the reason a packet or frame could not be processed.
type ErrorCode uint32

// The error codes used by this module.
// They are a subset of the QUIC error code space.
const (
	// InternalError is an unspecific internal error
	InternalError ErrorCode = 1
	// InvalidPacketHeader occurs when a packet header is malformed
	InvalidPacketHeader ErrorCode = 2
	// InvalidFrameData occurs when the frame data is malformed
	InvalidFrameData ErrorCode = 4
	// InvalidStreamData occurs when stream frame data is malformed
	InvalidStreamData ErrorCode = 46
	// InvalidAckData occurs when an ACK frame is malformed
	InvalidAckData ErrorCode = 9
	// InvalidVersion occurs when a frame is used with a protocol version
	// that doesn't know this frame type
	InvalidVersion ErrorCode = 20
	// InvalidVersionNegotiationPacket occurs when a version negotiation packet is malformed
	InvalidVersionNegotiationPacket ErrorCode = 21
	// InvalidRstStreamData occurs when a RST_STREAM frame is malformed
	InvalidRstStreamData ErrorCode = 6
	// InvalidConnectionCloseData occurs when a CONNECTION_CLOSE frame is malformed
	InvalidConnectionCloseData ErrorCode = 11
	// InvalidGoawayData occurs when a GOAWAY frame is malformed
	InvalidGoawayData ErrorCode = 12
	// InvalidWindowUpdateData occurs when a WINDOW_UPDATE frame is malformed
	InvalidWindowUpdateData ErrorCode = 57
	// InvalidBlockedData occurs when a BLOCKED frame is malformed
	InvalidBlockedData ErrorCode = 58
	// InvalidStopWaitingData occurs when a STOP_WAITING frame is malformed
	InvalidStopWaitingData ErrorCode = 60
	// DecryptionFailure occurs when the packet payload could not be decrypted
	DecryptionFailure ErrorCode = 55
	// MissingPayload occurs when a decrypted packet contains no frames
	MissingPayload ErrorCode = 48
	// StreamDataAfterTermination occurs when an empty stream frame without FIN is received
	StreamDataAfterTermination ErrorCode = 63
	// FlowControlSentTooMuchData occurs when the peer acknowledges more data than was sent
	FlowControlSentTooMuchData ErrorCode = 64
)

func (e ErrorCode) String() string {
	switch e {
	case InternalError:
		return "InternalError"
	case InvalidPacketHeader:
		return "InvalidPacketHeader"
	case InvalidFrameData:
		return "InvalidFrameData"
	case InvalidStreamData:
		return "InvalidStreamData"
	case InvalidAckData:
		return "InvalidAckData"
	case InvalidVersion:
		return "InvalidVersion"
	case InvalidVersionNegotiationPacket:
		return "InvalidVersionNegotiationPacket"
	case InvalidRstStreamData:
		return "InvalidRstStreamData"
	case InvalidConnectionCloseData:
		return "InvalidConnectionCloseData"
	case InvalidGoawayData:
		return "InvalidGoawayData"
	case InvalidWindowUpdateData:
		return "InvalidWindowUpdateData"
	case InvalidBlockedData:
		return "InvalidBlockedData"
	case InvalidStopWaitingData:
		return "InvalidStopWaitingData"
	case DecryptionFailure:
		return "DecryptionFailure"
	case MissingPayload:
		return "MissingPayload"
	case StreamDataAfterTermination:
		return "StreamDataAfterTermination"
	case FlowControlSentTooMuchData:
		return "FlowControlSentTooMuchData"
	default:
		return "unknown error code"
	}
}
