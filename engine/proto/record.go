package proto

import (
	"bufio"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack"
)

type record struct {
	Type    MsgType `msgpack:"t"`
	DelayMs int64   `msgpack:"d"`
	Body    []byte  `msgpack:"b"`
}

// WriteRecord writes one message as a record to w
//
// delay is the time elapsed since the previous record of the stream
func WriteRecord(w io.Writer, delay time.Duration, msg Message) error {
	body, err := BODY_PACKER.PackBody(msg)
	if err != nil {
		return errors.Wrapf(err, "pack %s", msg.MsgType())
	}

	rec := record{
		Type:    msg.MsgType(),
		DelayMs: int64(delay / time.Millisecond),
		Body:    body,
	}
	if err := msgpack.NewEncoder(w).Encode(&rec); err != nil {
		return errors.Wrapf(err, "write %s record", rec.Type)
	}
	return nil
}

// ReadRecord reads the next record from r, returns io.EOF at the end of the stream
func ReadRecord(r *bufio.Reader) (time.Duration, Message, error) {
	if _, err := r.Peek(1); err == io.EOF {
		return 0, nil, io.EOF
	}

	var rec record
	if err := msgpack.NewDecoder(r).Decode(&rec); err != nil {
		return 0, nil, errors.Wrap(err, "read record")
	}

	msg := NewMessage(rec.Type)
	if msg == nil {
		return 0, nil, errors.Errorf("unknown message type: %d", rec.Type)
	}
	if err := BODY_PACKER.UnpackBody(rec.Body, msg); err != nil {
		return 0, nil, errors.Wrapf(err, "unpack %s", rec.Type)
	}
	return time.Duration(rec.DelayMs) * time.Millisecond, msg, nil
}
