// Package metrics implements a logging.Tracer collecting Prometheus metrics.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/quic-go/quicwire/logging"
)

const metricNamespace = "quicwire"

var (
	packetsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "packets_sent_total",
			Help:      "Packets Sent",
		},
		[]string{"packet_type"},
	)
	packetsReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "packets_received_total",
			Help:      "Packets Received",
		},
		[]string{"packet_type"},
	)
	framesReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "frames_received_total",
			Help:      "Frames Received",
		},
		[]string{"frame_type"},
	)
	packetsDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "packets_dropped_total",
			Help:      "Packets Dropped",
		},
		[]string{"reason"},
	)
)

type tracer struct{}

var _ logging.Tracer = &tracer{}

// NewTracer creates a new tracer using the default Prometheus registerer.
func NewTracer() logging.Tracer {
	return NewTracerWithRegisterer(prometheus.DefaultRegisterer)
}

// NewTracerWithRegisterer creates a new tracer using a given Prometheus registerer.
func NewTracerWithRegisterer(registerer prometheus.Registerer) logging.Tracer {
	for _, c := range [...]prometheus.Collector{
		packetsSent,
		packetsReceived,
		framesReceived,
		packetsDropped,
	} {
		if err := registerer.Register(c); err != nil {
			var alreadyRegistered prometheus.AlreadyRegisteredError
			if !errors.As(err, &alreadyRegistered) {
				panic(err)
			}
		}
	}
	return &tracer{}
}

func (t *tracer) SentPacket(hdr *logging.Header, _ logging.ByteCount, _ []logging.Frame) {
	packetsSent.WithLabelValues(packetType(hdr)).Inc()
}

func (t *tracer) ReceivedPacket(hdr *logging.Header, _ logging.ByteCount) {
	packetsReceived.WithLabelValues(packetType(hdr)).Inc()
}

func (t *tracer) ReceivedFrame(f logging.Frame) {
	framesReceived.WithLabelValues(frameType(f)).Inc()
}

func (t *tracer) ReceivedVersionNegotiationPacket(*logging.Header) {
	packetsReceived.WithLabelValues("version_negotiation").Inc()
}

func (t *tracer) ReceivedPublicResetPacket(*logging.Header) {
	packetsReceived.WithLabelValues("public_reset").Inc()
}

func (t *tracer) ReceivedStatelessResetPacket(*logging.Header) {
	packetsReceived.WithLabelValues("stateless_reset").Inc()
}

func (t *tracer) DroppedPacket(reason logging.PacketDropReason, _ error) {
	packetsDropped.WithLabelValues(reason.String()).Inc()
}
