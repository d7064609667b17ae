package qlog

import (
	"time"

	"github.com/francoispqt/gojay"

	"github.com/quic-go/quicwire/logging"
)

type eventDetails interface {
	Category() category
	Name() string
	gojay.MarshalerJSONObject
}

// An event is serialized as a 4-element array: time, category, name, data.
type event struct {
	RelativeTime time.Duration
	eventDetails
}

var _ gojay.MarshalerJSONArray = event{}

func (e event) IsNil() bool { return false }
func (e event) MarshalJSONArray(enc *gojay.Encoder) {
	enc.Float64(float64(e.RelativeTime.Nanoseconds()) / 1e6)
	enc.String(e.Category().String())
	enc.String(e.Name())
	enc.Object(e.eventDetails)
}

type eventPacketSent struct {
	header packetHeader
	frames frames
}

var _ eventDetails = eventPacketSent{}

func (e eventPacketSent) Category() category { return categoryTransport }
func (e eventPacketSent) Name() string       { return "packet_sent" }
func (e eventPacketSent) IsNil() bool        { return false }

func (e eventPacketSent) MarshalJSONObject(enc *gojay.Encoder) {
	enc.ObjectKey("header", e.header)
	if e.frames != nil {
		enc.ArrayKey("frames", e.frames)
	}
}

type eventPacketReceived struct {
	header packetHeader
}

var _ eventDetails = eventPacketReceived{}

func (e eventPacketReceived) Category() category { return categoryTransport }
func (e eventPacketReceived) Name() string       { return "packet_received" }
func (e eventPacketReceived) IsNil() bool        { return false }

func (e eventPacketReceived) MarshalJSONObject(enc *gojay.Encoder) {
	enc.ObjectKey("header", e.header)
}

type eventFrameParsed struct {
	frame frame
}

var _ eventDetails = eventFrameParsed{}

func (e eventFrameParsed) Category() category { return categoryTransport }
func (e eventFrameParsed) Name() string       { return "frame_parsed" }
func (e eventFrameParsed) IsNil() bool        { return false }

func (e eventFrameParsed) MarshalJSONObject(enc *gojay.Encoder) {
	enc.ObjectKey("frame", e.frame)
}

type eventPacketDropped struct {
	reason logging.PacketDropReason
	err    error
}

var _ eventDetails = eventPacketDropped{}

func (e eventPacketDropped) Category() category { return categoryTransport }
func (e eventPacketDropped) Name() string       { return "packet_dropped" }
func (e eventPacketDropped) IsNil() bool        { return false }

func (e eventPacketDropped) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("trigger", e.reason.String())
	if e.err != nil {
		enc.StringKey("details", e.err.Error())
	}
}
