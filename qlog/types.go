package qlog

import (
	"fmt"

	"github.com/francoispqt/gojay"

	"github.com/quic-go/quicwire/internal/protocol"
	"github.com/quic-go/quicwire/internal/wire"
	"github.com/quic-go/quicwire/logging"
)

type category uint8

const (
	categoryTransport category = iota
	categoryRecovery
)

func (c category) String() string {
	switch c {
	case categoryTransport:
		return "transport"
	case categoryRecovery:
		return "recovery"
	default:
		return "unknown"
	}
}

type versionNumber protocol.VersionNumber

func (v versionNumber) String() string {
	return fmt.Sprintf("%x", uint32(v))
}

type connectionID protocol.ConnectionID

func (c connectionID) String() string {
	return fmt.Sprintf("%x", []byte(c))
}

// packetType maps a header to the qlog packet type string.
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

// A packetHeader marshals the qlog representation of a packet header.
type packetHeader struct {
	hdr  *logging.Header
	size logging.ByteCount

	// overrides the type derived from the header, e.g. for stateless resets
	typeOverride string
}

var _ gojay.MarshalerJSONObject = packetHeader{}

func (h packetHeader) IsNil() bool { return false }

func (h packetHeader) MarshalJSONObject(enc *gojay.Encoder) {
	t := h.typeOverride
	if t == "" {
		t = packetType(h.hdr)
	}
	enc.StringKey("packet_type", t)
	if !h.hdr.IsVersionNegotiation && !h.hdr.IsPublicReset {
		enc.Int64Key("packet_number", int64(h.hdr.PacketNumber))
	}
	if h.size > 0 {
		enc.Int64Key("packet_size", int64(h.size))
	}
	if h.hdr.Version != 0 {
		enc.StringKey("version", versionNumber(h.hdr.Version).String())
	}
	if h.hdr.DestConnectionID.Len() > 0 {
		enc.StringKey("dcid", connectionID(h.hdr.DestConnectionID).String())
	}
	if h.hdr.SrcConnectionID.Len() > 0 {
		enc.StringKey("scid", connectionID(h.hdr.SrcConnectionID).String())
	}
}

type frames []logging.Frame

var _ gojay.MarshalerJSONArray = frames{}

func (fs frames) IsNil() bool { return fs == nil }

func (fs frames) MarshalJSONArray(enc *gojay.Encoder) {
	for _, f := range fs {
		enc.Object(frame{f})
	}
}

type frame struct {
	logging.Frame
}

var _ gojay.MarshalerJSONObject = frame{}

func (f frame) IsNil() bool { return false }

func (f frame) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("frame_type", frameType(f.Frame))
	switch fr := f.Frame.(type) {
	case *wire.StreamFrame:
		enc.Int64Key("stream_id", int64(fr.StreamID))
		enc.Int64Key("offset", int64(fr.Offset))
		enc.IntKey("length", len(fr.Data))
		if fr.FinBit {
			enc.BoolKey("fin", true)
		}
	case *wire.CryptoFrame:
		enc.Int64Key("offset", int64(fr.Offset))
		enc.IntKey("length", len(fr.Data))
	case *wire.AckFrame:
		enc.Int64Key("largest_acked", int64(fr.LargestAcked))
		enc.IntKey("acked_ranges", fr.Ranges.Len())
	case *wire.RstStreamFrame:
		enc.Int64Key("stream_id", int64(fr.StreamID))
		enc.Int64Key("error_code", int64(fr.ErrorCode))
	case *wire.StopSendingFrame:
		enc.Int64Key("stream_id", int64(fr.StreamID))
	case *wire.ConnectionCloseFrame:
		enc.Int64Key("error_code", int64(fr.ErrorCode))
		enc.StringKey("reason", fr.ReasonPhrase)
	case *wire.MaxDataFrame:
		enc.Int64Key("maximum", int64(fr.ByteOffset))
	case *wire.MaxStreamDataFrame:
		enc.Int64Key("stream_id", int64(fr.StreamID))
		enc.Int64Key("maximum", int64(fr.ByteOffset))
	case *wire.MaxStreamIDFrame:
		enc.Int64Key("maximum", int64(fr.StreamID))
	case *wire.StopWaitingFrame:
		enc.Int64Key("least_unacked", int64(fr.LeastUnacked))
	case *wire.DatagramFrame:
		enc.IntKey("length", len(fr.Data))
	case *wire.PaddingFrame:
		enc.IntKey("length", fr.NumBytes)
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
