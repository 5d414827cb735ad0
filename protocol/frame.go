package protocol

import (
	"bytes"
	"errors"
)

var (
	ErrMessageTooLong = errors.New("message too long")
	ErrIncomplete     = errors.New("incomplete frame")
	ErrBadFrame       = errors.New("bad frame")
)

// Message is a decoded message block
type Message struct {
	Sequence uint8
	Payload  []byte // Frame data without header/trailer; empty for ACK/NAK
}

// IsAck reports whether the message carries no payload
func (m Message) IsAck() bool {
	return len(m.Payload) == 0
}

// EncodeFrame wraps payload in a message block with the given sequence
func EncodeFrame(seq uint8, payload []byte) ([]byte, error) {
	msgLen := MessageHeaderSize + len(payload) + MessageTrailerSize
	if msgLen > MessageLengthMax {
		return nil, ErrMessageTooLong
	}

	frame := make([]byte, 0, msgLen)
	frame = append(frame, uint8(msgLen), seq)
	frame = append(frame, payload...)

	crc := CRC16(frame)
	return append(frame, uint8(crc>>8), uint8(crc), MessageValueSync), nil
}

// EncodeCommand builds a frame holding one command: the VLQ command ID
// followed by whatever args writes.
func EncodeCommand(seq uint8, cmdID uint16, args func(output OutputBuffer)) ([]byte, error) {
	scratch := NewScratchOutput()
	EncodeVLQUint(scratch, uint32(cmdID))
	if args != nil {
		args(scratch)
	}
	// The scratch buffer truncates silently, so anything reaching its
	// end is treated as overflow.
	if scratch.CurPosition() > MessagePayloadMax {
		return nil, ErrMessageTooLong
	}
	return EncodeFrame(seq, scratch.Result())
}

// DecodeFrame parses the first message block in data.
//
// consumed is the number of bytes the caller should drop. It is non-zero
// on success, after leading sync bytes, and on ErrBadFrame, where it skips
// past the next sync byte so parsing can resynchronize. ErrIncomplete means
// more data is needed.
func DecodeFrame(data []byte) (msg Message, consumed int, err error) {
	for consumed < len(data) && data[consumed] == MessageValueSync {
		consumed++
	}
	data = data[consumed:]

	if len(data) < MessageLengthMin {
		return Message{}, consumed, ErrIncomplete
	}

	msgLen := int(data[MessagePositionLen])
	if msgLen < MessageLengthMin || msgLen > MessageLengthMax {
		return Message{}, consumed + resync(data), ErrBadFrame
	}
	if data[MessagePositionSeq]&^MessageSeqMask != MessageDest {
		return Message{}, consumed + resync(data), ErrBadFrame
	}
	if len(data) < msgLen {
		return Message{}, consumed, ErrIncomplete
	}
	if data[msgLen-MessageTrailerSync] != MessageValueSync {
		return Message{}, consumed + resync(data), ErrBadFrame
	}

	frameCRC := uint16(data[msgLen-MessageTrailerCRC])<<8 |
		uint16(data[msgLen-MessageTrailerCRC+1])
	if frameCRC != CRC16(data[:msgLen-MessageTrailerSize]) {
		return Message{}, consumed + resync(data), ErrBadFrame
	}

	payload := make([]byte, msgLen-MessageLengthMin)
	copy(payload, data[MessageHeaderSize:msgLen-MessageTrailerSize])

	return Message{
		Sequence: data[MessagePositionSeq],
		Payload:  payload,
	}, consumed + msgLen, nil
}

// resync returns how many bytes to drop to get past the next sync byte
func resync(data []byte) int {
	if i := bytes.IndexByte(data, MessageValueSync); i >= 0 {
		return i + 1
	}
	return len(data)
}
