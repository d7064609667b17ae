//go:build gomock || generate

package quicwire

//go:generate sh -c "go run go.uber.org/mock/mockgen -build_flags=\"-tags=gomock\" -package quicwire -self_package github.com/quic-go/quicwire -destination mock_sealer_test.go github.com/quic-go/quicwire Sealer"
//go:generate sh -c "go run go.uber.org/mock/mockgen -build_flags=\"-tags=gomock\" -package quicwire -self_package github.com/quic-go/quicwire -destination mock_opener_test.go github.com/quic-go/quicwire Opener"
//go:generate sh -c "go run go.uber.org/mock/mockgen -package quicwire -destination mock_tracer_test.go github.com/quic-go/quicwire/logging Tracer"
