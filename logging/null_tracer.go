package logging

// The NullTracer is a Tracer that does nothing.
type NullTracer struct{}

var _ Tracer = &NullTracer{}

func (n *NullTracer) SentPacket(*Header, ByteCount, []Frame)     {}
func (n *NullTracer) ReceivedPacket(*Header, ByteCount)          {}
func (n *NullTracer) ReceivedFrame(Frame)                        {}
func (n *NullTracer) ReceivedVersionNegotiationPacket(*Header)   {}
func (n *NullTracer) ReceivedPublicResetPacket(*Header)          {}
func (n *NullTracer) ReceivedStatelessResetPacket(*Header)       {}
func (n *NullTracer) DroppedPacket(PacketDropReason, error)      {}
