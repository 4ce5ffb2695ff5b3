package items

// Step names of the default chain
const (
	StepLegacyTo113 = "legacy->1.13"
	Step113To1131   = "1.13->1.13.1"
	Step1131To114   = "1.13.1->1.14"
	Step114To115    = "1.14->1.15"
)

type defaultItem struct {
	name   string
	legacy ItemKey // server id before the flattening
	v113   int32
	v114   int32
	v115   int32
	target TargetEntry
}

// ids are listed per schema version; 1.13.1 ids are derived by defaultShift113
var defaultItems = []defaultItem{
	{"stone", ItemKey{1, 0}, 1, 1, 1, TargetEntry{1, 0, true}},
	{"granite", ItemKey{1, 1}, 2, 2, 2, TargetEntry{1, 1, true}},
	{"diorite", ItemKey{1, 3}, 4, 4, 4, TargetEntry{1, 3, true}},
	{"grass block", ItemKey{2, 0}, 8, 8, 8, TargetEntry{2, 0, false}},
	{"dirt", ItemKey{3, 0}, 9, 9, 9, TargetEntry{3, 0, true}},
	{"cobblestone", ItemKey{4, 0}, 12, 12, 12, TargetEntry{4, 0, false}},
	{"oak planks", ItemKey{5, 0}, 13, 13, 13, TargetEntry{5, 0, true}},
	{"spruce planks", ItemKey{5, 1}, 14, 14, 14, TargetEntry{5, 1, true}},
	{"oak log", ItemKey{17, 0}, 32, 32, 32, TargetEntry{17, 0, true}},
	{"white wool", ItemKey{35, 0}, 82, 82, 82, TargetEntry{35, 0, true}},
	{"red wool", ItemKey{35, 14}, 96, 96, 96, TargetEntry{35, 14, true}},
	{"torch", ItemKey{50, 0}, 148, 148, 148, TargetEntry{50, 0, false}},
	{"chest", ItemKey{54, 0}, 154, 154, 154, TargetEntry{54, 0, false}},
	{"bow", ItemKey{261, 0}, 525, 574, 575, TargetEntry{261, 0, false}},
	{"diamond", ItemKey{264, 0}, 528, 577, 578, TargetEntry{264, 0, false}},
	{"diamond sword", ItemKey{276, 0}, 541, 590, 591, TargetEntry{276, 0, false}},
	{"bread", ItemKey{297, 0}, 562, 611, 612, TargetEntry{297, 0, false}},
	{"lapis lazuli", ItemKey{351, 4}, 604, 653, 654, TargetEntry{351, 4, true}},
	{"potion", ItemKey{373, 0}, 633, 682, 683, TargetEntry{373, 0, true}},
	{"enchanted book", ItemKey{403, 0}, 767, 816, 817, TargetEntry{403, 0, false}},
}

var defaultShift113 = ShiftTable{From: 443, Delta: 5}

// DefaultRemapper builds the legacy -> 1.13 -> 1.13.1 -> 1.14 -> 1.15 chain of the built-in item set
func DefaultRemapper(logMisses bool) *Remapper {
	legacyTo113 := MapTable{}
	to114 := MapTable{}
	to115 := MapTable{}
	target := TargetTable{}

	for _, it := range defaultItems {
		legacyTo113[it.legacy] = ItemKey{ID: it.v113}
		v1131, _ := defaultShift113.Lookup(ItemKey{ID: it.v113})
		to114[v1131] = ItemKey{ID: it.v114}
		to115[ItemKey{ID: it.v114}] = ItemKey{ID: it.v115}
		target[it.v115] = it.target
	}

	return NewRemapper(target, []Step{
		{StepLegacyTo113, legacyTo113},
		{Step113To1131, defaultShift113},
		{Step1131To114, to114},
		{Step114To115, to115},
	}, logMisses)
}
