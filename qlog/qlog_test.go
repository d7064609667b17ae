package qlog

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/quic-go/quicwire/internal/protocol"
	"github.com/quic-go/quicwire/internal/wire"
	"github.com/quic-go/quicwire/logging"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type nopWriteCloser struct {
	*bytes.Buffer
}

func (nopWriteCloser) Close() error { return nil }

var _ = Describe("Tracer", func() {
	var (
		buf    *bytes.Buffer
		tracer *Tracer
	)

	BeforeEach(func() {
		buf = &bytes.Buffer{}
		tracer = NewTracer(nopWriteCloser{buf}, protocol.PerspectiveClient, protocol.ConnectionID{1, 2, 3, 4, 5, 6, 7, 8})
	})

	lines := func() [][]byte {
		ExpectWithOffset(1, tracer.Close()).To(Succeed())
		return bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte{'\n'})
	}

	unmarshalEvent := func(line []byte) (string, map[string]interface{}) {
		var arr []interface{}
		ExpectWithOffset(1, json.Unmarshal(line, &arr)).To(Succeed())
		ExpectWithOffset(1, arr).To(HaveLen(4))
		ExpectWithOffset(1, arr[1]).To(Equal("transport"))
		return arr[2].(string), arr[3].(map[string]interface{})
	}

	It("writes the trace record first", func() {
		ls := lines()
		Expect(ls).To(HaveLen(1))
		var m map[string]interface{}
		Expect(json.Unmarshal(ls[0], &m)).To(Succeed())
		Expect(m).To(HaveKeyWithValue("qlog_format", "NDJSON"))
		Expect(m).To(HaveKeyWithValue("qlog_version", "draft-02"))
		trace := m["trace"].(map[string]interface{})
		vp := trace["vantage_point"].(map[string]interface{})
		Expect(vp).To(HaveKeyWithValue("type", "client"))
		cf := trace["common_fields"].(map[string]interface{})
		Expect(cf).To(HaveKeyWithValue("ODCID", "0102030405060708"))
	})

	It("records sent packets", func() {
		hdr := &logging.Header{
			DestConnectionID: protocol.ConnectionID{1, 2, 3, 4, 5, 6, 7, 8},
			PacketNumber:     0x1337,
			PacketNumberLen:  protocol.PacketNumberLen2,
		}
		tracer.SentPacket(hdr, 42, []logging.Frame{&wire.PingFrame{}, &wire.MaxDataFrame{ByteOffset: 10}})
		ls := lines()
		Expect(ls).To(HaveLen(2))
		name, data := unmarshalEvent(ls[1])
		Expect(name).To(Equal("packet_sent"))
		hdrMap := data["header"].(map[string]interface{})
		Expect(hdrMap).To(HaveKeyWithValue("packet_type", "1RTT"))
		Expect(hdrMap).To(HaveKeyWithValue("packet_number", float64(0x1337)))
		Expect(hdrMap).To(HaveKeyWithValue("packet_size", float64(42)))
		Expect(hdrMap).To(HaveKeyWithValue("dcid", "0102030405060708"))
		fs := data["frames"].([]interface{})
		Expect(fs).To(HaveLen(2))
		Expect(fs[0].(map[string]interface{})).To(HaveKeyWithValue("frame_type", "ping"))
		Expect(fs[1].(map[string]interface{})).To(HaveKeyWithValue("frame_type", "max_data"))
	})

	It("records received packets and frames", func() {
		hdr := &logging.Header{
			IsLongHeader:    true,
			Type:            protocol.PacketTypeHandshake,
			Version:         protocol.Version99,
			PacketNumber:    1,
			PacketNumberLen: protocol.PacketNumberLen4,
		}
		tracer.ReceivedPacket(hdr, 1337)
		tracer.ReceivedFrame(&wire.StreamFrame{StreamID: 42, Offset: 17, Data: []byte("foobar")})
		ls := lines()
		Expect(ls).To(HaveLen(3))
		name, data := unmarshalEvent(ls[1])
		Expect(name).To(Equal("packet_received"))
		hdrMap := data["header"].(map[string]interface{})
		Expect(hdrMap).To(HaveKeyWithValue("packet_type", "handshake"))
		Expect(hdrMap).To(HaveKeyWithValue("version", "63"))
		name, data = unmarshalEvent(ls[2])
		Expect(name).To(Equal("frame_parsed"))
		fr := data["frame"].(map[string]interface{})
		Expect(fr).To(HaveKeyWithValue("frame_type", "stream"))
		Expect(fr).To(HaveKeyWithValue("stream_id", float64(42)))
		Expect(fr).To(HaveKeyWithValue("offset", float64(17)))
		Expect(fr).To(HaveKeyWithValue("length", float64(6)))
	})

	It("records version negotiation packets", func() {
		tracer.ReceivedVersionNegotiationPacket(&logging.Header{IsLongHeader: true, IsVersionNegotiation: true})
		name, data := unmarshalEvent(lines()[1])
		Expect(name).To(Equal("packet_received"))
		Expect(data["header"].(map[string]interface{})).To(HaveKeyWithValue("packet_type", "version_negotiation"))
	})

	It("records public reset packets", func() {
		tracer.ReceivedPublicResetPacket(&logging.Header{IsPublicReset: true})
		_, data := unmarshalEvent(lines()[1])
		Expect(data["header"].(map[string]interface{})).To(HaveKeyWithValue("packet_type", "public_reset"))
	})

	It("records stateless reset packets", func() {
		tracer.ReceivedStatelessResetPacket(&logging.Header{})
		_, data := unmarshalEvent(lines()[1])
		Expect(data["header"].(map[string]interface{})).To(HaveKeyWithValue("packet_type", "stateless_reset"))
	})

	It("records dropped packets", func() {
		tracer.DroppedPacket(logging.PacketDropHeaderParseError, errors.New("too short"))
		name, data := unmarshalEvent(lines()[1])
		Expect(name).To(Equal("packet_dropped"))
		Expect(data).To(HaveKeyWithValue("trigger", "header_parse_error"))
		Expect(data).To(HaveKeyWithValue("details", "too short"))
	})
})
