package proto

import (
	"github.com/xiaonanln/gobridge/engine/common"
)

// BorderInitialize defines the whole world border
type BorderInitialize struct {
	CenterX       float64 `msgpack:"cx"`
	CenterZ       float64 `msgpack:"cz"`
	OldSize       float64 `msgpack:"os"`
	NewSize       float64 `msgpack:"ns"`
	LerpTime      int64   `msgpack:"lt"` // milliseconds
	WarningTime   int32   `msgpack:"wt"` // seconds
	WarningBlocks int32   `msgpack:"wb"`
}

// BorderSetSize resizes the world border at once
type BorderSetSize struct {
	NewSize float64 `msgpack:"ns"`
}

// BorderLerpSize resizes the world border from OldSize to NewSize in LerpTime milliseconds
type BorderLerpSize struct {
	OldSize  float64 `msgpack:"os"`
	NewSize  float64 `msgpack:"ns"`
	LerpTime int64   `msgpack:"lt"`
}

// BorderSetCenter moves the world border
type BorderSetCenter struct {
	CenterX float64 `msgpack:"cx"`
	CenterZ float64 `msgpack:"cz"`
}

// BorderSetWarningTime sets the world border warning time in seconds
type BorderSetWarningTime struct {
	WarningTime int32 `msgpack:"wt"`
}

// BorderSetWarningBlocks sets the world border warning distance
type BorderSetWarningBlocks struct {
	WarningBlocks int32 `msgpack:"wb"`
}

// PlayerPositionRotation teleports the player
type PlayerPositionRotation struct {
	X        float64 `msgpack:"x"`
	Y        float64 `msgpack:"y"`
	Z        float64 `msgpack:"z"`
	Yaw      float32 `msgpack:"yaw"`
	Pitch    float32 `msgpack:"pitch"`
	OnGround bool    `msgpack:"og"`
}

// LegacyItem is an item stack of the server protocol
type LegacyItem struct {
	ID     int32 `msgpack:"id"`
	Damage int32 `msgpack:"dmg"`
	Count  int32 `msgpack:"cnt"`
}

// SetSlot sets one inventory slot
type SetSlot struct {
	WindowID int32      `msgpack:"win"`
	Slot     int32      `msgpack:"slot"`
	Item     LegacyItem `msgpack:"item"`
}

// MoveEntityAbsolute moves an entity on client
type MoveEntityAbsolute struct {
	RuntimeEntityID common.RuntimeEntityID `msgpack:"eid"`
	Position        common.Vector3         `msgpack:"pos"`
	Rotation        common.Vector3         `msgpack:"rot"`
	OnGround        bool                   `msgpack:"og"`
	Teleported      bool                   `msgpack:"tp"`
}

// PlaySound plays a sound on client
type PlaySound struct {
	Position common.Vector3 `msgpack:"pos"`
	Sound    string         `msgpack:"snd"`
	Volume   float32        `msgpack:"vol"`
	Pitch    float32        `msgpack:"pitch"`
}

// SpawnParticle spawns particles on client
type SpawnParticle struct {
	Position common.Vector3 `msgpack:"pos"`
	Particle string         `msgpack:"ptc"`
	Count    int32          `msgpack:"cnt"`
	Data     int32          `msgpack:"data"`
}

// ShowActionBar shows text above the client hotbar
type ShowActionBar struct {
	Text string `msgpack:"txt"`
}

// InventorySlot sets one inventory slot on client
type InventorySlot struct {
	WindowID int32           `msgpack:"win"`
	Slot     int32           `msgpack:"slot"`
	Item     common.ItemData `msgpack:"item"`
}

func (m *BorderInitialize) MsgType() MsgType       { return MT_BORDER_INITIALIZE }
func (m *BorderSetSize) MsgType() MsgType          { return MT_BORDER_SET_SIZE }
func (m *BorderLerpSize) MsgType() MsgType         { return MT_BORDER_LERP_SIZE }
func (m *BorderSetCenter) MsgType() MsgType        { return MT_BORDER_SET_CENTER }
func (m *BorderSetWarningTime) MsgType() MsgType   { return MT_BORDER_SET_WARNING_TIME }
func (m *BorderSetWarningBlocks) MsgType() MsgType { return MT_BORDER_SET_WARNING_BLOCKS }
func (m *PlayerPositionRotation) MsgType() MsgType { return MT_PLAYER_POSITION_ROTATION }
func (m *SetSlot) MsgType() MsgType                { return MT_SET_SLOT }
func (m *MoveEntityAbsolute) MsgType() MsgType     { return MT_MOVE_ENTITY_ABSOLUTE }
func (m *PlaySound) MsgType() MsgType              { return MT_PLAY_SOUND }
func (m *SpawnParticle) MsgType() MsgType          { return MT_SPAWN_PARTICLE }
func (m *ShowActionBar) MsgType() MsgType          { return MT_SHOW_ACTION_BAR }
func (m *InventorySlot) MsgType() MsgType          { return MT_INVENTORY_SLOT }
