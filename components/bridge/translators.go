// Package bridge wires the translators of the bridge
package bridge

import (
	"time"

	"github.com/xiaonanln/gobridge/engine/border"
	"github.com/xiaonanln/gobridge/engine/common"
	"github.com/xiaonanln/gobridge/engine/consts"
	"github.com/xiaonanln/gobridge/engine/gwlog"
	"github.com/xiaonanln/gobridge/engine/items"
	"github.com/xiaonanln/gobridge/engine/proto"
	"github.com/xiaonanln/gobridge/engine/session"
	"github.com/xiaonanln/gobridge/engine/translator"
)

// NewTranslatorRegistry creates the registry with all translators of the bridge
func NewTranslatorRegistry(remapper *items.Remapper) *translator.Registry {
	r := translator.NewRegistry()
	r.RegisterFunc(proto.MT_BORDER_INITIALIZE, translateBorderInitialize)
	r.RegisterFunc(proto.MT_BORDER_SET_SIZE, translateBorderSetSize)
	r.RegisterFunc(proto.MT_BORDER_LERP_SIZE, translateBorderLerpSize)
	r.RegisterFunc(proto.MT_BORDER_SET_CENTER, translateBorderSetCenter)
	r.RegisterFunc(proto.MT_BORDER_SET_WARNING_TIME, translateBorderSetWarningTime)
	r.RegisterFunc(proto.MT_BORDER_SET_WARNING_BLOCKS, translateBorderSetWarningBlocks)
	r.RegisterFunc(proto.MT_PLAYER_POSITION_ROTATION, translatePlayerPositionRotation)
	r.Register(proto.MT_SET_SLOT, &setSlotTranslator{remapper})
	return r
}

func translateBorderInitialize(msg proto.Message, s *session.Session) {
	m := msg.(*proto.BorderInitialize)
	wb := s.InitWorldBorder(common.Vector2{X: m.CenterX, Y: m.CenterZ}, m.OldSize, m.NewSize,
		time.Duration(m.LerpTime)*time.Millisecond, m.WarningBlocks, m.WarningTime)
	wb.Commit()
	if consts.DEBUG_BORDER {
		gwlog.Debugf("%s: initialized %s", s, wb)
	}
}

// sessionBorder returns the world border of the session, transitions before BorderInitialize are dropped
func sessionBorder(msg proto.Message, s *session.Session) *border.WorldBorder {
	wb := s.WorldBorder()
	if wb == nil {
		gwlog.Debugf("%s: %s before world border is initialized, ignored", s, msg.MsgType())
		return nil
	}
	return wb
}

func translateBorderSetSize(msg proto.Message, s *session.Session) {
	if wb := sessionBorder(msg, s); wb != nil {
		wb.SetSize(msg.(*proto.BorderSetSize).NewSize)
		wb.Commit()
	}
}

func translateBorderLerpSize(msg proto.Message, s *session.Session) {
	if wb := sessionBorder(msg, s); wb != nil {
		m := msg.(*proto.BorderLerpSize)
		wb.LerpSize(m.OldSize, m.NewSize, time.Duration(m.LerpTime)*time.Millisecond)
		wb.Commit()
		if consts.DEBUG_BORDER {
			gwlog.Debugf("%s: resizing %s", s, wb)
		}
	}
}

func translateBorderSetCenter(msg proto.Message, s *session.Session) {
	if wb := sessionBorder(msg, s); wb != nil {
		m := msg.(*proto.BorderSetCenter)
		wb.SetCenter(common.Vector2{X: m.CenterX, Y: m.CenterZ})
		wb.Commit()
	}
}

func translateBorderSetWarningTime(msg proto.Message, s *session.Session) {
	if wb := sessionBorder(msg, s); wb != nil {
		wb.SetWarningTime(msg.(*proto.BorderSetWarningTime).WarningTime)
		wb.Commit()
	}
}

func translateBorderSetWarningBlocks(msg proto.Message, s *session.Session) {
	if wb := sessionBorder(msg, s); wb != nil {
		wb.SetWarningBlocks(msg.(*proto.BorderSetWarningBlocks).WarningBlocks)
		wb.Commit()
	}
}

func translatePlayerPositionRotation(msg proto.Message, s *session.Session) {
	m := msg.(*proto.PlayerPositionRotation)
	pos := common.Vec3(m.X, m.Y, m.Z)
	rot := common.Vector3{X: common.Coord(m.Pitch), Y: common.Coord(m.Yaw), Z: common.Coord(m.Yaw)}
	s.MoveAbsolute(pos, rot, m.OnGround, true)
}

type setSlotTranslator struct {
	remapper *items.Remapper
}

func (t *setSlotTranslator) Translate(msg proto.Message, s *session.Session) {
	m := msg.(*proto.SetSlot)
	s.Send(&proto.InventorySlot{
		WindowID: m.WindowID,
		Slot:     m.Slot,
		Item:     t.remapper.Remap(m.Item.ID, m.Item.Damage, m.Item.Count),
	})
}
