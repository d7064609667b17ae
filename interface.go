// Package quicwire implements the QUIC wire-protocol codec: packet and frame
// serialization for the legacy and the IETF frame format, and the send-side
// bookkeeping of a stream's outgoing bytes.
package quicwire

import (
	"github.com/quic-go/quicwire/internal/protocol"
	"github.com/quic-go/quicwire/internal/wire"
)

// A Visitor receives the results of parsing a packet, one callback per
// decoded frame. Frame callbacks return whether parsing should continue:
// returning false stops the processing of the remaining frames in the packet
// without treating it as an error.
//
// Frame payloads reference the decryption buffer and are only valid until the
// callback returns.
type Visitor interface {
	// OnHeader is called once the header has been parsed, before the payload
	// is decrypted. Returning false rejects the packet.
	OnHeader(*wire.Header) bool
	// OnDecryptedPacket is called after the payload has been decrypted,
	// before the first frame is parsed.
	OnDecryptedPacket(*wire.Header) bool

	OnStreamFrame(*wire.StreamFrame) bool
	OnCryptoFrame(*wire.CryptoFrame) bool
	OnAckFrame(*wire.AckFrame) bool
	OnPaddingFrame(*wire.PaddingFrame) bool
	OnPingFrame(*wire.PingFrame) bool
	OnRstStreamFrame(*wire.RstStreamFrame) bool
	OnStopSendingFrame(*wire.StopSendingFrame) bool
	OnConnectionCloseFrame(*wire.ConnectionCloseFrame) bool
	OnGoawayFrame(*wire.GoawayFrame) bool
	OnMaxDataFrame(*wire.MaxDataFrame) bool
	OnMaxStreamDataFrame(*wire.MaxStreamDataFrame) bool
	OnMaxStreamIDFrame(*wire.MaxStreamIDFrame) bool
	OnBlockedFrame(*wire.BlockedFrame) bool
	OnStreamBlockedFrame(*wire.StreamBlockedFrame) bool
	OnStreamIDBlockedFrame(*wire.StreamIDBlockedFrame) bool
	OnStopWaitingFrame(*wire.StopWaitingFrame) bool
	OnNewConnectionIDFrame(*wire.NewConnectionIDFrame) bool
	OnRetireConnectionIDFrame(*wire.RetireConnectionIDFrame) bool
	OnNewTokenFrame(*wire.NewTokenFrame) bool
	OnPathChallengeFrame(*wire.PathChallengeFrame) bool
	OnPathResponseFrame(*wire.PathResponseFrame) bool
	OnDatagramFrame(*wire.DatagramFrame) bool

	// OnVersionNegotiationPacket is called for a version negotiation packet.
	// No frames follow.
	OnVersionNegotiationPacket(*wire.Header)
	// OnPublicResetPacket is called for a legacy public reset packet.
	// No frames follow.
	OnPublicResetPacket(*wire.Header)
	// OnStatelessResetPacket is called for a short header packet whose
	// payload failed to decrypt under an IETF version, which marks it as a
	// potential stateless reset. No frames follow.
	OnStatelessResetPacket(*wire.Header)
	// OnError is called when parsing the packet fails.
	OnError(error)
}

// A Sealer encrypts a packet payload.
type Sealer interface {
	Seal(dst, src []byte, packetNumber protocol.PacketNumber, associatedData []byte) []byte
	Overhead() int
}

// An Opener decrypts a packet payload.
type Opener interface {
	Open(dst, src []byte, packetNumber protocol.PacketNumber, associatedData []byte) ([]byte, error)
}
