package protocol

// CommandHandler handles one decoded command. args holds the remaining frame
// data; the handler consumes its own arguments from it and may encode a
// response into out.
type CommandHandler func(cmdID uint16, args *[]byte, out OutputBuffer) error

// Responder is the MCU side of the transport: it validates incoming message
// blocks, acknowledges them and sends any responses the handler produced.
type Responder struct {
	nextSeq uint8
	handler CommandHandler
	write   func(frame []byte)
	scratch *ScratchOutput

	resetCallback func()
}

// NewResponder creates a responder that sends frames through write
func NewResponder(handler CommandHandler, write func(frame []byte)) *Responder {
	return &Responder{
		nextSeq: MessageDest,
		handler: handler,
		write:   write,
		scratch: NewScratchOutput(),
	}
}

// SetResetCallback registers a function called when the host restarts its
// sequence numbering.
func (r *Responder) SetResetCallback(cb func()) {
	r.resetCallback = cb
}

// Receive processes every complete message block buffered in input.
func (r *Responder) Receive(input *FifoBuffer) {
	for {
		msg, consumed, err := DecodeFrame(input.Data())
		input.Pop(consumed)

		switch err {
		case nil:
		case ErrBadFrame:
			// Tell the host which sequence is expected
			r.sendAck()
			continue
		default:
			return
		}

		if msg.Sequence == MessageDest && r.nextSeq != MessageDest {
			r.nextSeq = MessageDest
			if r.resetCallback != nil {
				r.resetCallback()
			}
		}

		if msg.Sequence != r.nextSeq {
			// Retransmit or out of order: NAK with the expected sequence
			r.sendAck()
			continue
		}

		r.nextSeq = NextSequence(msg.Sequence)
		r.sendAck()
		r.dispatch(msg.Payload)
	}
}

func (r *Responder) dispatch(frame []byte) {
	for len(frame) > 0 {
		cmdID, err := DecodeVLQUint(&frame)
		if err != nil {
			return
		}

		r.scratch.Reset()
		if err := r.handler(uint16(cmdID), &frame, r.scratch); err != nil {
			return
		}
		if r.scratch.CurPosition() == 0 {
			continue
		}
		if resp, err := EncodeFrame(r.nextSeq, r.scratch.Result()); err == nil {
			r.write(resp)
		}
	}
}

func (r *Responder) sendAck() {
	ack, _ := EncodeFrame(r.nextSeq, nil)
	r.write(ack)
}
