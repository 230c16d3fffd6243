// Package logger drains MsgLogLine messages into the HAL logger.
package logger

import (
	"abacus/abacusos/kernel"
	"abacus/abacusos/proto"
	"abacus/hal"
)

type Service struct {
	log hal.Logger
	ep  kernel.Capability
}

func New(log hal.Logger, ep kernel.Capability) *Service {
	return &Service{log: log, ep: ep}
}

// Run handles messages until the endpoint is closed.
func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.ep)
	if !ok {
		return
	}
	for msg := range ch {
		if s.log == nil {
			continue
		}
		switch proto.Kind(msg.Kind) {
		case proto.MsgLogLine:
			s.log.WriteLineBytes(msg.Payload())
		case proto.MsgError:
			code, ref, detail, ok := proto.DecodeErrorPayload(msg.Payload())
			if !ok {
				continue
			}
			s.log.WriteLineString("error: " + code.String() + " (" + ref.String() + "): " + string(detail))
		}
	}
}
