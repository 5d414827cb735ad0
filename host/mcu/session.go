package mcu

import (
	"errors"
	"fmt"
	"io"
	"time"

	"tickcount/core"
	"tickcount/protocol"
)

var (
	ErrTimeout            = errors.New("mcu: response timeout")
	ErrShortWrite         = errors.New("mcu: incomplete write")
	ErrUnexpectedResponse = errors.New("mcu: unexpected response")
)

// DefaultTimeout bounds a single command/response exchange
const DefaultTimeout = time.Second

// Session performs synchronous command/response exchanges with an MCU.
// A Session is not safe for concurrent use; callers serialize access.
type Session struct {
	port    io.ReadWriter
	seq     uint8
	timeout time.Duration

	input   *protocol.FifoBuffer
	readBuf [protocol.MessageLengthMax]byte
}

// NewSession creates a session over an open port
func NewSession(port io.ReadWriter) *Session {
	return &Session{
		port:    port,
		seq:     protocol.MessageDest,
		timeout: DefaultTimeout,
		input:   protocol.NewFifoBuffer(512),
	}
}

// SetTimeout changes the per-exchange timeout
func (s *Session) SetTimeout(d time.Duration) {
	s.timeout = d
}

// Sequence returns the sequence byte the next command will carry
func (s *Session) Sequence() uint8 {
	return s.seq
}

// Query sends cmdID and waits for both the ACK and a response whose
// command ID is respID. It returns the response arguments that follow
// the command ID. Responses with other IDs or sequences are discarded.
func (s *Session) Query(cmdID uint16, args func(output protocol.OutputBuffer), respID uint16) ([]byte, error) {
	frame, err := protocol.EncodeCommand(s.seq, cmdID, args)
	if err != nil {
		return nil, err
	}

	n, err := s.port.Write(frame)
	if err != nil {
		return nil, fmt.Errorf("mcu: write: %w", err)
	}
	if n != len(frame) {
		return nil, ErrShortWrite
	}

	deadline := time.Now().Add(s.timeout)
	expectedAck := protocol.NextSequence(s.seq)
	acked := false
	var response []byte

	for !acked || response == nil {
		msg, err := s.readMessage(deadline)
		if err != nil {
			return nil, err
		}

		if msg.IsAck() {
			if msg.Sequence == expectedAck {
				s.seq = expectedAck
				acked = true
			}
			continue
		}

		// Replies carry the sequence of the ACK that preceded them; anything
		// else is a late reply to an earlier query.
		if msg.Sequence != expectedAck {
			core.DebugPrintln("[mcu] ignoring unsolicited message")
			continue
		}
		payload := msg.Payload
		id, err := protocol.DecodeVLQUint(&payload)
		if err != nil || id != uint32(respID) {
			core.DebugPrintln("[mcu] ignoring unsolicited message")
			continue
		}
		response = payload
	}

	return response, nil
}

// readMessage returns the next valid message, reading from the port until
// one is buffered or the deadline passes.
func (s *Session) readMessage(deadline time.Time) (protocol.Message, error) {
	for {
		msg, consumed, err := protocol.DecodeFrame(s.input.Data())
		s.input.Pop(consumed)

		switch err {
		case nil:
			return msg, nil
		case protocol.ErrBadFrame:
			core.DebugPrintln("[mcu] resync after bad frame")
			continue
		}

		if !time.Now().Before(deadline) {
			return protocol.Message{}, ErrTimeout
		}

		n, err := s.port.Read(s.readBuf[:])
		if n > 0 {
			s.input.Write(s.readBuf[:n])
			continue
		}
		if err != nil && err != io.EOF {
			return protocol.Message{}, fmt.Errorf("mcu: read: %w", err)
		}
		// Nothing arrived within the port's read timeout
		time.Sleep(time.Millisecond)
	}
}
