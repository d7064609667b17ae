package quicwire

import (
	"bytes"
	"io"
	"math/rand"

	"github.com/quic-go/quicwire/internal/protocol"
	"github.com/quic-go/quicwire/internal/wire"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Send Buffer", func() {
	var b *SendBuffer

	BeforeEach(func() {
		b = NewSendBuffer()
	})

	// numbered returns length bytes counting up from the given start value,
	// so that reassembled ranges can be checked byte for byte
	numbered := func(start, length int) []byte {
		d := make([]byte, length)
		for i := range d {
			d[i] = byte(start + i)
		}
		return d
	}

	Context("buffering and writing data", func() {
		It("rejects empty data", func() {
			Expect(b.Append(nil)).ToNot(Succeed())
			Expect(b.Append([]byte{})).ToNot(Succeed())
		})

		It("writes data across slice boundaries", func() {
			d1 := bytes.Repeat([]byte{'a'}, 1536)
			d2 := bytes.Repeat([]byte{'b'}, 512)
			Expect(b.Append(d1)).To(Succeed())
			Expect(b.Append(d2)).To(Succeed())
			Expect(b.BytesBuffered()).To(BeEquivalentTo(2048))
			buf := &bytes.Buffer{}
			Expect(b.WriteRange(0, 2048, buf)).To(Succeed())
			expected := append(append([]byte{}, d1...), d2...)
			Expect(buf.Bytes()).To(Equal(expected))
		})

		It("writes previously written ranges at arbitrary offsets", func() {
			Expect(b.Append(numbered(0, 100))).To(Succeed())
			Expect(b.Append(numbered(100, 100))).To(Succeed())
			Expect(b.WriteRange(0, 200, io.Discard)).To(Succeed())
			buf := &bytes.Buffer{}
			Expect(b.WriteRange(50, 100, buf)).To(Succeed())
			Expect(buf.Bytes()).To(Equal(numbered(50, 100)))
		})

		It("errors when writing out of sequence", func() {
			Expect(b.Append(make([]byte, 100))).To(Succeed())
			Expect(b.WriteRange(150, 10, io.Discard)).To(MatchError("SendBuffer: write out of sequence"))
		})

		It("errors when the range is not buffered", func() {
			Expect(b.Append(make([]byte, 100))).To(Succeed())
			Expect(b.WriteRange(0, 100, io.Discard)).To(Succeed())
			Expect(b.WriteRange(50, 100, io.Discard)).To(MatchError("SendBuffer: range is not buffered"))
		})

		It("errors when writing data that was already acked and freed", func() {
			Expect(b.Append(make([]byte, 100))).To(Succeed())
			Expect(b.Append(make([]byte, 100))).To(Succeed())
			Expect(b.Append(make([]byte, 100))).To(Succeed())
			Expect(b.WriteRange(0, 300, io.Discard)).To(Succeed())
			Expect(b.MarkConsumed(300)).To(Succeed())
			_, err := b.OnAck(100, 100)
			Expect(err).ToNot(HaveOccurred())
			Expect(b.WriteRange(100, 50, io.Discard)).To(MatchError("SendBuffer: range was already acked and freed"))
		})

		It("errors when consuming more than was buffered", func() {
			Expect(b.Append(make([]byte, 100))).To(Succeed())
			Expect(b.MarkConsumed(101)).ToNot(Succeed())
			Expect(b.MarkConsumed(100)).To(Succeed())
			Expect(b.MarkConsumed(1)).ToNot(Succeed())
		})

		It("serves as the data producer of a STREAM frame", func() {
			Expect(b.Append(numbered(0, 100))).To(Succeed())
			f := &wire.StreamFrame{
				StreamID:        5,
				Offset:          20,
				Producer:        b.Producer(),
				ProducerDataLen: 50,
			}
			buf := &bytes.Buffer{}
			Expect(f.Write(buf, protocol.Version43)).To(Succeed())
			// the frame body is the last thing written
			Expect(buf.Bytes()[buf.Len()-50:]).To(Equal(numbered(20, 50)))
		})
	})

	Context("acknowledgements", func() {
		It("tracks outstanding bytes through acks", func() {
			Expect(b.Append(make([]byte, 1536))).To(Succeed())
			Expect(b.Append(make([]byte, 512))).To(Succeed())
			Expect(b.WriteRange(0, 2048, io.Discard)).To(Succeed())
			Expect(b.MarkConsumed(2048)).To(Succeed())
			Expect(b.BytesWritten()).To(BeEquivalentTo(2048))
			Expect(b.BytesOutstanding()).To(BeEquivalentTo(2048))

			n, err := b.OnAck(0, 1024)
			Expect(err).ToNot(HaveOccurred())
			Expect(n).To(BeEquivalentTo(1024))
			Expect(b.BytesOutstanding()).To(BeEquivalentTo(1024))

			n, err = b.OnAck(1024, 1024)
			Expect(err).ToNot(HaveOccurred())
			Expect(n).To(BeEquivalentTo(1024))
			Expect(b.BytesOutstanding()).To(BeZero())
			Expect(b.IsOutstanding(0, 2048)).To(BeFalse())
		})

		It("ignores duplicate acks", func() {
			Expect(b.Append(make([]byte, 200))).To(Succeed())
			Expect(b.WriteRange(0, 200, io.Discard)).To(Succeed())
			Expect(b.MarkConsumed(200)).To(Succeed())
			n, err := b.OnAck(0, 100)
			Expect(err).ToNot(HaveOccurred())
			Expect(n).To(BeEquivalentTo(100))
			n, err = b.OnAck(0, 100)
			Expect(err).ToNot(HaveOccurred())
			Expect(n).To(BeZero())
			// a partially overlapping ack only counts the new bytes
			n, err = b.OnAck(50, 100)
			Expect(err).ToNot(HaveOccurred())
			Expect(n).To(BeEquivalentTo(50))
			Expect(b.BytesOutstanding()).To(BeEquivalentTo(50))
		})

		It("errors when the peer acks bytes that were never written", func() {
			Expect(b.Append(make([]byte, 100))).To(Succeed())
			Expect(b.MarkConsumed(50)).To(Succeed())
			_, err := b.OnAck(0, 100)
			Expect(err).To(HaveOccurred())
			// the failed ack didn't change any state
			Expect(b.BytesOutstanding()).To(BeEquivalentTo(50))
			Expect(b.IsOutstanding(0, 50)).To(BeTrue())
		})

		It("frees a slice once every byte of it is acked", func() {
			Expect(b.Append(make([]byte, 100))).To(Succeed())
			Expect(b.Append(make([]byte, 100))).To(Succeed())
			Expect(b.WriteRange(0, 200, io.Discard)).To(Succeed())
			Expect(b.MarkConsumed(200)).To(Succeed())

			_, err := b.OnAck(0, 150)
			Expect(err).ToNot(HaveOccurred())
			Expect(b.slices).To(HaveLen(1))
			Expect(b.slices[0].data).ToNot(BeNil())

			_, err = b.OnAck(150, 50)
			Expect(err).ToNot(HaveOccurred())
			Expect(b.slices).To(BeEmpty())
		})

		It("keeps the write cursor consistent when leading slices are freed", func() {
			Expect(b.Append(make([]byte, 100))).To(Succeed())
			Expect(b.Append(make([]byte, 100))).To(Succeed())
			Expect(b.Append(make([]byte, 100))).To(Succeed())
			Expect(b.WriteRange(0, 100, io.Discard)).To(Succeed())
			Expect(b.MarkConsumed(100)).To(Succeed())
			_, err := b.OnAck(0, 100)
			Expect(err).ToNot(HaveOccurred())

			Expect(b.WriteRange(100, 100, io.Discard)).To(Succeed())
			Expect(b.WriteRange(200, 100, io.Discard)).To(Succeed())
			Expect(b.WriteRange(300, 1, io.Discard)).ToNot(Succeed())
		})
	})

	Context("loss and retransmission", func() {
		BeforeEach(func() {
			Expect(b.Append(make([]byte, 2048))).To(Succeed())
			Expect(b.WriteRange(0, 2048, io.Discard)).To(Succeed())
			Expect(b.MarkConsumed(2048)).To(Succeed())
		})

		It("queues lost ranges for retransmission", func() {
			Expect(b.HasPendingRetransmission()).To(BeFalse())
			b.OnLost(500, 300)
			Expect(b.HasPendingRetransmission()).To(BeTrue())
			offset, length := b.NextPendingRetransmission()
			Expect(offset).To(BeEquivalentTo(500))
			Expect(length).To(BeEquivalentTo(300))
		})

		It("drops pending retransmissions when the range is acked", func() {
			b.OnLost(500, 300)
			n, err := b.OnAck(0, 2048)
			Expect(err).ToNot(HaveOccurred())
			Expect(n).To(BeEquivalentTo(2048))
			Expect(b.HasPendingRetransmission()).To(BeFalse())
			Expect(b.BytesOutstanding()).To(BeZero())
		})

		It("doesn't mark acked bytes as lost", func() {
			_, err := b.OnAck(0, 100)
			Expect(err).ToNot(HaveOccurred())
			b.OnLost(50, 100)
			offset, length := b.NextPendingRetransmission()
			Expect(offset).To(BeEquivalentTo(100))
			Expect(length).To(BeEquivalentTo(50))
		})

		It("clears retransmitted ranges", func() {
			b.OnLost(500, 300)
			b.OnRetransmitted(500, 100)
			offset, length := b.NextPendingRetransmission()
			Expect(offset).To(BeEquivalentTo(600))
			Expect(length).To(BeEquivalentTo(200))
		})

		It("panics when there is no pending retransmission", func() {
			Expect(func() { b.NextPendingRetransmission() }).To(Panic())
		})

		It("says which ranges are still outstanding", func() {
			_, err := b.OnAck(0, 100)
			Expect(err).ToNot(HaveOccurred())
			Expect(b.IsOutstanding(0, 100)).To(BeFalse())
			Expect(b.IsOutstanding(0, 101)).To(BeTrue())
			Expect(b.IsOutstanding(100, 100)).To(BeTrue())
			Expect(b.IsOutstanding(50, 0)).To(BeFalse())
		})
	})

	It("keeps its bookkeeping consistent under random ack and loss patterns", func() {
		r := rand.New(rand.NewSource(0x42))
		const sliceLen = 128
		var written protocol.ByteCount
		for i := 0; i < 32; i++ {
			Expect(b.Append(make([]byte, sliceLen))).To(Succeed())
			Expect(b.WriteRange(written, sliceLen, io.Discard)).To(Succeed())
			Expect(b.MarkConsumed(sliceLen)).To(Succeed())
			written += sliceLen
		}

		for i := 0; i < 1000; i++ {
			offset := protocol.ByteCount(r.Intn(int(written)))
			length := protocol.ByteCount(r.Intn(int(written-offset))) + 1
			switch r.Intn(3) {
			case 0:
				ackedBefore := b.acked.Size()
				n, err := b.OnAck(offset, length)
				Expect(err).ToNot(HaveOccurred())
				Expect(n).To(Equal(b.acked.Size() - ackedBefore))
			case 1:
				b.OnLost(offset, length)
			case 2:
				if b.HasPendingRetransmission() {
					off, l := b.NextPendingRetransmission()
					b.OnRetransmitted(off, l)
				}
			}

			Expect(b.BytesOutstanding()).To(Equal(written - b.acked.Size()))
			// a byte is never both acked and lost
			for _, in := range b.lost.Intervals() {
				Expect(b.acked.CoveredSize(in.Start, in.End)).To(BeZero())
			}
		}
	})
})
