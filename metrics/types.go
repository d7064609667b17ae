package metrics

import (
	"github.com/quic-go/quicwire/internal/protocol"
	"github.com/quic-go/quicwire/internal/wire"
	"github.com/quic-go/quicwire/logging"
)

func packetType(hdr *logging.Header) string {
	switch {
	case hdr.IsVersionNegotiation:
		return "version_negotiation"
	case hdr.IsPublicReset:
		return "public_reset"
	case !hdr.IsLongHeader:
		return "1RTT"
	}
	switch hdr.Type {
	case protocol.PacketTypeInitial:
		return "initial"
	case protocol.PacketTypeHandshake:
		return "handshake"
	case protocol.PacketTypeZeroRTT:
		return "0RTT"
	default:
		return "unknown"
	}
}

func frameType(f logging.Frame) string {
	switch f.(type) {
	case *wire.StreamFrame:
		return "stream"
	case *wire.CryptoFrame:
		return "crypto"
	case *wire.AckFrame:
		return "ack"
	case *wire.PaddingFrame:
		return "padding"
	case *wire.PingFrame:
		return "ping"
	case *wire.RstStreamFrame:
		return "reset_stream"
	case *wire.StopSendingFrame:
		return "stop_sending"
	case *wire.ConnectionCloseFrame:
		return "connection_close"
	case *wire.GoawayFrame:
		return "goaway"
	case *wire.MaxDataFrame:
		return "max_data"
	case *wire.MaxStreamDataFrame:
		return "max_stream_data"
	case *wire.MaxStreamIDFrame:
		return "max_streams"
	case *wire.BlockedFrame:
		return "data_blocked"
	case *wire.StreamBlockedFrame:
		return "stream_data_blocked"
	case *wire.StreamIDBlockedFrame:
		return "streams_blocked"
	case *wire.StopWaitingFrame:
		return "stop_waiting"
	case *wire.NewConnectionIDFrame:
		return "new_connection_id"
	case *wire.RetireConnectionIDFrame:
		return "retire_connection_id"
	case *wire.NewTokenFrame:
		return "new_token"
	case *wire.PathChallengeFrame:
		return "path_challenge"
	case *wire.PathResponseFrame:
		return "path_response"
	case *wire.DatagramFrame:
		return "datagram"
	default:
		return "unknown"
	}
}
