// Package items converts legacy server item identifiers to client item stacks
package items

import (
	"github.com/xiaonanln/gobridge/engine/common"
	"github.com/xiaonanln/gobridge/engine/consts"
	"github.com/xiaonanln/gobridge/engine/gwlog"
)

// TargetStepName is the step name logged when the final target lookup fails
const TargetStepName = "target"

// ItemKey identifies an item in one schema version
type ItemKey struct {
	ID  int32
	Sub int32
}

// MappingTable maps item keys of one schema version to the next one
type MappingTable interface {
	Lookup(key ItemKey) (ItemKey, bool)
}

// MapTable is a MappingTable backed by a map
type MapTable map[ItemKey]ItemKey

// Lookup implements MappingTable
func (t MapTable) Lookup(key ItemKey) (ItemKey, bool) {
	v, ok := t[key]
	return v, ok
}

// ShiftTable moves every id at or above From by Delta, ids below From are kept
type ShiftTable struct {
	From  int32
	Delta int32
}

// Lookup implements MappingTable
func (t ShiftTable) Lookup(key ItemKey) (ItemKey, bool) {
	if key.ID >= t.From {
		key.ID += t.Delta
	}
	return key, true
}

// Step is one named schema version conversion
type Step struct {
	Name  string
	Table MappingTable
}

// TargetEntry describes an item of the client protocol
type TargetEntry struct {
	ID          int32
	Aux         int32
	HasSubtypes bool
}

// TargetTable maps canonical ids to client items
type TargetTable map[int32]TargetEntry

// Remapper runs legacy item identifiers through an ordered list of steps
//
// A Remapper is immutable after construction and safe for concurrent use.
type Remapper struct {
	steps     []Step
	target    TargetTable
	logMisses bool
}

// NewRemapper creates a Remapper
func NewRemapper(target TargetTable, steps []Step, logMisses bool) *Remapper {
	return &Remapper{
		steps:     append([]Step(nil), steps...),
		target:    target,
		logMisses: logMisses,
	}
}

// Steps returns the names of all steps in order
func (r *Remapper) Steps() []string {
	names := make([]string, len(r.steps))
	for i, step := range r.steps {
		names[i] = step.Name
	}
	return names
}

// Remap converts a legacy item to a client item, returns common.Air if any lookup fails
func (r *Remapper) Remap(legacyID, subValue, quantity int32) common.ItemData {
	if legacyID == 0 || quantity <= 0 {
		return common.Air
	}

	key := ItemKey{legacyID, subValue}
	for _, step := range r.steps {
		next, ok := step.Table.Lookup(key)
		if !ok && key.Sub != 0 {
			next, ok = step.Table.Lookup(ItemKey{key.ID, 0})
		}
		if !ok {
			r.logMiss(legacyID, subValue, step.Name, key)
			return common.Air
		}
		key = next
	}

	entry, ok := r.target[key.ID]
	if !ok {
		r.logMiss(legacyID, subValue, TargetStepName, key)
		return common.Air
	}

	item := common.ItemData{ID: entry.ID, Count: quantity}
	if entry.HasSubtypes {
		item.Aux = entry.Aux
	}
	if consts.DEBUG_ITEMS {
		gwlog.Debugf("items: %d:%d x%d => %d:%d", legacyID, subValue, quantity, item.ID, item.Aux)
	}
	return item
}

func (r *Remapper) logMiss(legacyID, subValue int32, stepName string, key ItemKey) {
	if r.logMisses {
		gwlog.Warnf("items: no mapping for %d:%d at step %s (key %d:%d), using air", legacyID, subValue, stepName, key.ID, key.Sub)
	}
}
