package quicwire

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/quic-go/quicwire/internal/protocol"
	"github.com/quic-go/quicwire/internal/qerr"
	"github.com/quic-go/quicwire/internal/utils"
	"github.com/quic-go/quicwire/internal/wire"
	"github.com/quic-go/quicwire/logging"
)

// ErrPacketTooLarge is returned by WritePacket when the frames don't fit
// into the given maximum packet size. Hitting it is a normal part of
// packetization, the caller retries with fewer frames.
var ErrPacketTooLarge = errors.New("frames don't fit into the packet")

// A Framer serializes and parses packets.
// It keeps the largest packet number seen so far, which is needed to
// reconstruct full packet numbers from their truncated wire form, and the
// last connection ID, which is used to fill in headers that omit it.
// It is not safe for concurrent use.
type Framer struct {
	version     protocol.VersionNumber
	perspective protocol.Perspective

	sealer Sealer
	opener Opener
	tracer logging.Tracer

	largestPacketNumber protocol.PacketNumber
	lastConnectionID    protocol.ConnectionID
}

// NewFramer creates a new framer.
// perspective is our perspective, not the peer's.
// The tracer may be nil.
func NewFramer(
	version protocol.VersionNumber,
	perspective protocol.Perspective,
	sealer Sealer,
	opener Opener,
	tracer logging.Tracer,
) *Framer {
	if tracer == nil {
		tracer = &logging.NullTracer{}
	}
	return &Framer{
		version:     version,
		perspective: perspective,
		sealer:      sealer,
		opener:      opener,
		tracer:      tracer,
	}
}

// LargestPacketNumber returns the largest packet number successfully
// decrypted so far.
func (f *Framer) LargestPacketNumber() protocol.PacketNumber {
	return f.largestPacketNumber
}

// ParsePacket parses a single packet: the header, then every frame of the
// decrypted payload, handing each to the visitor.
// A frame parse error aborts the rest of the packet, but frames already
// delivered to the visitor are not retracted.
func (f *Framer) ParsePacket(data []byte, v Visitor) error {
	if err := f.parsePacket(data, v); err != nil {
		v.OnError(err)
		return err
	}
	return nil
}

func (f *Framer) parsePacket(data []byte, v Visitor) error {
	if len(data) > int(protocol.MaxReceivePacketSize) {
		return qerr.Error(qerr.InvalidPacketHeader, "packet too large")
	}

	r := bytes.NewReader(data)
	hdr, err := wire.ParseHeader(r, f.perspective.Opposite())
	if err != nil {
		f.tracer.DroppedPacket(logging.PacketDropHeaderParseError, err)
		if err == wire.ErrUnsupportedVersion {
			return qerr.Error(qerr.InvalidVersion, fmt.Sprintf("unsupported version %s", hdr.Version))
		}
		return wrapHeaderError(err)
	}

	if hdr.IsVersionNegotiation {
		f.tracer.ReceivedVersionNegotiationPacket(hdr)
		v.OnVersionNegotiationPacket(hdr)
		return nil
	}
	if hdr.IsPublicReset {
		f.tracer.ReceivedPublicResetPacket(hdr)
		v.OnPublicResetPacket(hdr)
		return nil
	}

	// fill in the connection ID when the short header omits it,
	// and remember it when it doesn't
	if hdr.DestConnectionID.Len() == 0 && !hdr.IsLongHeader {
		hdr.DestConnectionID = f.lastConnectionID
	} else if hdr.DestConnectionID.Len() > 0 {
		f.lastConnectionID = hdr.DestConnectionID
	}

	hdr.PacketNumber = protocol.InferPacketNumber(hdr.PacketNumberLen, f.largestPacketNumber, hdr.PacketNumber)
	if hdr.PacketNumber == protocol.InvalidPacketNumber && !f.couldBeStatelessReset(hdr) {
		return qerr.Error(qerr.InvalidPacketHeader, "packet number 0")
	}

	f.tracer.ReceivedPacket(hdr, protocol.ByteCount(len(data)))
	if !v.OnHeader(hdr) {
		return nil
	}

	buf := getPacketBuffer()
	defer putPacketBuffer(buf)
	associatedData := data[:hdr.ParsedLen()]
	payload, err := f.opener.Open(*buf, data[hdr.ParsedLen():], hdr.PacketNumber, associatedData)
	if err != nil {
		if f.couldBeStatelessReset(hdr) {
			f.tracer.ReceivedStatelessResetPacket(hdr)
			v.OnStatelessResetPacket(hdr)
			return nil
		}
		f.tracer.DroppedPacket(logging.PacketDropPayloadDecryptError, err)
		return qerr.Error(qerr.DecryptionFailure, err.Error())
	}
	if hdr.PacketNumber == protocol.InvalidPacketNumber {
		return qerr.Error(qerr.InvalidPacketHeader, "packet number 0")
	}

	f.largestPacketNumber = utils.MaxPacketNumber(f.largestPacketNumber, hdr.PacketNumber)

	if !v.OnDecryptedPacket(hdr) {
		return nil
	}

	if len(payload) == 0 {
		return qerr.Error(qerr.MissingPayload, "packet contains no frames")
	}
	fr := bytes.NewReader(payload)
	for {
		frame, err := wire.ParseNextFrame(fr, hdr, f.version)
		if err != nil {
			f.tracer.DroppedPacket(logging.PacketDropFrameParseError, err)
			return err
		}
		if frame == nil {
			return nil
		}
		wire.LogFrame(frame, false)
		f.tracer.ReceivedFrame(frame)
		if !f.dispatchFrame(frame, v) {
			return nil
		}
	}
}

// couldBeStatelessReset says if an undecryptable packet might be a stateless
// reset in disguise. Only servers send stateless resets, and only under the
// IETF format. They are shaped like short header packets with a 1-byte
// packet number, so any other packet that fails to decrypt is just broken.
func (f *Framer) couldBeStatelessReset(hdr *wire.Header) bool {
	return f.perspective == protocol.PerspectiveClient &&
		f.version.UsesIETFFrameFormat() &&
		!hdr.IsLongHeader &&
		hdr.PacketNumberLen == protocol.PacketNumberLen1
}

// dispatchFrame hands a frame to the visitor.
// It reports whether parsing of the packet should continue.
func (f *Framer) dispatchFrame(frame wire.Frame, v Visitor) bool {
	switch fr := frame.(type) {
	case *wire.StreamFrame:
		return v.OnStreamFrame(fr)
	case *wire.CryptoFrame:
		return v.OnCryptoFrame(fr)
	case *wire.AckFrame:
		return v.OnAckFrame(fr)
	case *wire.PaddingFrame:
		return v.OnPaddingFrame(fr)
	case *wire.PingFrame:
		return v.OnPingFrame(fr)
	case *wire.RstStreamFrame:
		return v.OnRstStreamFrame(fr)
	case *wire.StopSendingFrame:
		return v.OnStopSendingFrame(fr)
	case *wire.ConnectionCloseFrame:
		return v.OnConnectionCloseFrame(fr)
	case *wire.GoawayFrame:
		return v.OnGoawayFrame(fr)
	case *wire.MaxDataFrame:
		return v.OnMaxDataFrame(fr)
	case *wire.MaxStreamDataFrame:
		return v.OnMaxStreamDataFrame(fr)
	case *wire.MaxStreamIDFrame:
		return v.OnMaxStreamIDFrame(fr)
	case *wire.BlockedFrame:
		return v.OnBlockedFrame(fr)
	case *wire.StreamBlockedFrame:
		return v.OnStreamBlockedFrame(fr)
	case *wire.StreamIDBlockedFrame:
		return v.OnStreamIDBlockedFrame(fr)
	case *wire.StopWaitingFrame:
		return v.OnStopWaitingFrame(fr)
	case *wire.NewConnectionIDFrame:
		return v.OnNewConnectionIDFrame(fr)
	case *wire.RetireConnectionIDFrame:
		return v.OnRetireConnectionIDFrame(fr)
	case *wire.NewTokenFrame:
		return v.OnNewTokenFrame(fr)
	case *wire.PathChallengeFrame:
		return v.OnPathChallengeFrame(fr)
	case *wire.PathResponseFrame:
		return v.OnPathResponseFrame(fr)
	case *wire.DatagramFrame:
		return v.OnDatagramFrame(fr)
	default:
		panic(fmt.Sprintf("unexpected frame type %T", frame))
	}
}

// WritePacket serializes a packet into b: the header, then every frame,
// sealing the payload with the framer's Sealer.
// The packet number of the header must be the full packet number, truncation
// to the header's packet number length happens during serialization.
// A trailing PaddingFrame with NumBytes == 0 is expanded to pad the packet
// to maxSize.
// On failure the bytes already written to b are not rolled back, the caller
// must discard the buffer.
func (f *Framer) WritePacket(b *bytes.Buffer, maxSize protocol.ByteCount, hdr *wire.Header, frames []wire.Frame) (protocol.ByteCount, error) {
	start := b.Len()
	if err := hdr.Write(b, f.perspective, f.version); err != nil {
		return 0, err
	}
	hdrLen := protocol.ByteCount(b.Len() - start)
	overhead := protocol.ByteCount(f.sealer.Overhead())
	if hdrLen+overhead > maxSize {
		return 0, ErrPacketTooLarge
	}
	maxPayload := maxSize - hdrLen - overhead

	payload := &bytes.Buffer{}
	for i, frame := range frames {
		if pad, ok := frame.(*wire.PaddingFrame); ok && pad.NumBytes == 0 {
			if i != len(frames)-1 {
				return 0, errors.New("padding to the end of the packet must be the last frame")
			}
			frame = &wire.PaddingFrame{NumBytes: int(maxPayload) - payload.Len()}
		}
		if protocol.ByteCount(payload.Len())+frame.Length(f.version) > maxPayload {
			return 0, ErrPacketTooLarge
		}
		if err := frame.Write(payload, f.version); err != nil {
			return 0, err
		}
		wire.LogFrame(frame, true)
	}
	if payload.Len() == 0 {
		return 0, qerr.Error(qerr.MissingPayload, "packet contains no frames")
	}

	sealed := f.sealer.Seal(nil, payload.Bytes(), hdr.PacketNumber, b.Bytes()[start:])
	b.Write(sealed)

	if hdr.DestConnectionID.Len() > 0 {
		f.lastConnectionID = hdr.DestConnectionID
	}
	f.tracer.SentPacket(hdr, protocol.ByteCount(b.Len()-start), frames)
	return protocol.ByteCount(b.Len() - start), nil
}

// wrapHeaderError attaches an error code to header parse errors that don't
// carry one yet, e.g. truncation errors.
func wrapHeaderError(err error) error {
	if _, ok := err.(*qerr.QuicError); ok {
		return err
	}
	return qerr.Error(qerr.InvalidPacketHeader, err.Error())
}
