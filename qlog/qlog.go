// Package qlog implements a logging.Tracer that writes a qlog.
// The output is newline-delimited JSON: a trace record first, then one event
// record per line.
package qlog

import (
	"io"
	"sync"
	"time"

	"github.com/francoispqt/gojay"

	"github.com/quic-go/quicwire/internal/protocol"
	"github.com/quic-go/quicwire/logging"
)

type vantagePoint struct {
	perspective protocol.Perspective
}

var _ gojay.MarshalerJSONObject = vantagePoint{}

func (p vantagePoint) IsNil() bool { return false }
func (p vantagePoint) MarshalJSONObject(enc *gojay.Encoder) {
	switch p.perspective {
	case protocol.PerspectiveClient:
		enc.StringKey("type", "client")
	case protocol.PerspectiveServer:
		enc.StringKey("type", "server")
	}
}

type commonFields struct {
	odcid         connectionID
	referenceTime time.Time
}

var _ gojay.MarshalerJSONObject = commonFields{}

func (f commonFields) IsNil() bool { return false }
func (f commonFields) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("ODCID", f.odcid.String())
	enc.StringKey("group_id", f.odcid.String())
	enc.Float64Key("reference_time", float64(f.referenceTime.UnixNano())/1e6)
	enc.StringKey("time_format", "relative")
}

type trace struct {
	vantagePoint vantagePoint
	commonFields commonFields
}

var _ gojay.MarshalerJSONObject = trace{}

func (t trace) IsNil() bool { return false }
func (t trace) MarshalJSONObject(enc *gojay.Encoder) {
	enc.ObjectKey("vantage_point", t.vantagePoint)
	enc.ObjectKey("common_fields", t.commonFields)
}

type topLevel struct {
	trace trace
}

var _ gojay.MarshalerJSONObject = topLevel{}

func (l topLevel) IsNil() bool { return false }
func (l topLevel) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("qlog_format", "NDJSON")
	enc.StringKey("qlog_version", "draft-02")
	enc.ObjectKey("trace", l.trace)
}

// A Tracer records all packet and frame events of a packet framer as a qlog.
// It is safe for concurrent use.
type Tracer struct {
	mutex sync.Mutex

	w             io.WriteCloser
	enc           *gojay.Encoder
	referenceTime time.Time
	encodeErr     error
}

var _ logging.Tracer = &Tracer{}

// NewTracer creates a qlog tracer writing to w.
// Close flushes the qlog and closes w.
func NewTracer(w io.WriteCloser, p protocol.Perspective, odcid protocol.ConnectionID) *Tracer {
	t := &Tracer{
		w:             w,
		enc:           gojay.NewEncoder(w),
		referenceTime: time.Now(),
	}
	t.encode(topLevel{trace: trace{
		vantagePoint: vantagePoint{perspective: p},
		commonFields: commonFields{odcid: connectionID(odcid), referenceTime: t.referenceTime},
	}})
	return t
}

func (t *Tracer) record(ev eventDetails) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.encodeLocked(event{
		RelativeTime: time.Since(t.referenceTime),
		eventDetails: ev,
	})
}

func (t *Tracer) encode(v interface{}) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.encodeLocked(v)
}

func (t *Tracer) encodeLocked(v interface{}) {
	if t.encodeErr != nil { // keep draining events after the first failure
		return
	}
	if err := t.enc.Encode(v); err != nil {
		t.encodeErr = err
		return
	}
	if _, err := t.w.Write([]byte{'\n'}); err != nil {
		t.encodeErr = err
	}
}

// Close closes the underlying writer.
// It returns the first error encountered while encoding, if any.
func (t *Tracer) Close() error {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if err := t.w.Close(); err != nil && t.encodeErr == nil {
		t.encodeErr = err
	}
	return t.encodeErr
}

func (t *Tracer) SentPacket(hdr *logging.Header, size logging.ByteCount, fs []logging.Frame) {
	t.record(eventPacketSent{
		header: packetHeader{hdr: hdr, size: size},
		frames: frames(fs),
	})
}

func (t *Tracer) ReceivedPacket(hdr *logging.Header, size logging.ByteCount) {
	t.record(eventPacketReceived{header: packetHeader{hdr: hdr, size: size}})
}

func (t *Tracer) ReceivedFrame(f logging.Frame) {
	t.record(eventFrameParsed{frame: frame{f}})
}

func (t *Tracer) ReceivedVersionNegotiationPacket(hdr *logging.Header) {
	t.record(eventPacketReceived{header: packetHeader{hdr: hdr}})
}

func (t *Tracer) ReceivedPublicResetPacket(hdr *logging.Header) {
	t.record(eventPacketReceived{header: packetHeader{hdr: hdr}})
}

func (t *Tracer) ReceivedStatelessResetPacket(hdr *logging.Header) {
	t.record(eventPacketReceived{header: packetHeader{hdr: hdr, typeOverride: "stateless_reset"}})
}

func (t *Tracer) DroppedPacket(reason logging.PacketDropReason, err error) {
	t.record(eventPacketDropped{reason: reason, err: err})
}
