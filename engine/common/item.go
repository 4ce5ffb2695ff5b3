package common

// ItemData is an item stack in the client protocol: runtime id, aux value and count
type ItemData struct {
	ID    int32 `msgpack:"id"`
	Aux   int32 `msgpack:"aux"`
	Count int32 `msgpack:"cnt"`
}

// Air is the canonical empty item
var Air = ItemData{}

// IsAir returns if the item is the empty item
func (it ItemData) IsAir() bool {
	return it.ID == 0
}
