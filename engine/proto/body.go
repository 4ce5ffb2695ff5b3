package proto

import (
	"github.com/vmihailenco/msgpack"
)

// BodyPacker encodes the body of a record, the record header carries the MsgType
type BodyPacker interface {
	PackBody(msg Message) ([]byte, error)
	UnpackBody(data []byte, msg Message) error
}

// BODY_PACKER packs bodies of records written and read by this package
var BODY_PACKER BodyPacker = msgpackBodyPacker{}

// msgpackBodyPacker uses the short msgpack field tags of the message structs
type msgpackBodyPacker struct{}

func (msgpackBodyPacker) PackBody(msg Message) ([]byte, error) {
	return msgpack.Marshal(msg)
}

func (msgpackBodyPacker) UnpackBody(data []byte, msg Message) error {
	return msgpack.Unmarshal(data, msg)
}
