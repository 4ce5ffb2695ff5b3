package proto

import "strconv"

// MsgType is the type of message types
type MsgType uint16

const (
	// MT_INVALID is the invalid message type
	MT_INVALID MsgType = iota
	// MT_BORDER_INITIALIZE is sent by server to define the whole world border
	MT_BORDER_INITIALIZE
	// MT_BORDER_SET_SIZE is sent by server to resize the world border at once
	MT_BORDER_SET_SIZE
	// MT_BORDER_LERP_SIZE is sent by server to resize the world border over time
	MT_BORDER_LERP_SIZE
	// MT_BORDER_SET_CENTER is sent by server to move the world border
	MT_BORDER_SET_CENTER
	// MT_BORDER_SET_WARNING_TIME is a message type for world border warning time
	MT_BORDER_SET_WARNING_TIME
	// MT_BORDER_SET_WARNING_BLOCKS is a message type for world border warning distance
	MT_BORDER_SET_WARNING_BLOCKS
	// MT_PLAYER_POSITION_ROTATION is sent by server to teleport the player
	MT_PLAYER_POSITION_ROTATION
	// MT_SET_SLOT is sent by server to set one inventory slot
	MT_SET_SLOT
)

// Messages types that are sent to the client
const (
	// MT_MOVE_ENTITY_ABSOLUTE moves an entity on client
	MT_MOVE_ENTITY_ABSOLUTE MsgType = 1001 + iota
	// MT_PLAY_SOUND plays a sound on client
	MT_PLAY_SOUND
	// MT_SPAWN_PARTICLE spawns particles on client
	MT_SPAWN_PARTICLE
	// MT_SHOW_ACTION_BAR shows text above the client hotbar
	MT_SHOW_ACTION_BAR
	// MT_INVENTORY_SLOT sets one inventory slot on client
	MT_INVENTORY_SLOT
)

var msgTypeNames = map[MsgType]string{
	MT_INVALID:                   "Invalid",
	MT_BORDER_INITIALIZE:         "BorderInitialize",
	MT_BORDER_SET_SIZE:           "BorderSetSize",
	MT_BORDER_LERP_SIZE:          "BorderLerpSize",
	MT_BORDER_SET_CENTER:         "BorderSetCenter",
	MT_BORDER_SET_WARNING_TIME:   "BorderSetWarningTime",
	MT_BORDER_SET_WARNING_BLOCKS: "BorderSetWarningBlocks",
	MT_PLAYER_POSITION_ROTATION:  "PlayerPositionRotation",
	MT_SET_SLOT:                  "SetSlot",
	MT_MOVE_ENTITY_ABSOLUTE:      "MoveEntityAbsolute",
	MT_PLAY_SOUND:                "PlaySound",
	MT_SPAWN_PARTICLE:            "SpawnParticle",
	MT_SHOW_ACTION_BAR:           "ShowActionBar",
	MT_INVENTORY_SLOT:            "InventorySlot",
}

func (mt MsgType) String() string {
	if name, ok := msgTypeNames[mt]; ok {
		return name
	}
	return "MsgType(" + strconv.Itoa(int(mt)) + ")"
}

// IsClientbound returns if messages of this type are sent to the client
func (mt MsgType) IsClientbound() bool {
	return mt >= MT_MOVE_ENTITY_ABSOLUTE
}

// Message is implemented by every message of the bridge
type Message interface {
	MsgType() MsgType
}

// NewMessage creates an empty message of the message type, or nil for unknown types
func NewMessage(mt MsgType) Message {
	switch mt {
	case MT_BORDER_INITIALIZE:
		return &BorderInitialize{}
	case MT_BORDER_SET_SIZE:
		return &BorderSetSize{}
	case MT_BORDER_LERP_SIZE:
		return &BorderLerpSize{}
	case MT_BORDER_SET_CENTER:
		return &BorderSetCenter{}
	case MT_BORDER_SET_WARNING_TIME:
		return &BorderSetWarningTime{}
	case MT_BORDER_SET_WARNING_BLOCKS:
		return &BorderSetWarningBlocks{}
	case MT_PLAYER_POSITION_ROTATION:
		return &PlayerPositionRotation{}
	case MT_SET_SLOT:
		return &SetSlot{}
	case MT_MOVE_ENTITY_ABSOLUTE:
		return &MoveEntityAbsolute{}
	case MT_PLAY_SOUND:
		return &PlaySound{}
	case MT_SPAWN_PARTICLE:
		return &SpawnParticle{}
	case MT_SHOW_ACTION_BAR:
		return &ShowActionBar{}
	case MT_INVENTORY_SLOT:
		return &InventorySlot{}
	}
	return nil
}
