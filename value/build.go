package value

import "sort"

// ilog2Ceil is the upper-rounded base-2 logarithm of size, or false if
// size is 0 (meaning "no assoc part at all").
func ilog2Ceil(size int) (loglen uint, ok bool) {
	if size == 0 {
		return 0, false
	}
	loglen = 0
	for (1 << loglen) < size {
		loglen++
	}
	return loglen, true
}

// assocBuilder implements the encoder-side insertion algorithm of
// §4.5.2: main-position placement, free-slot search via a decrementing
// last_free cursor, and chain relocation/retargeting on collision.
type assocBuilder struct {
	slots  []AssocSlot
	loglen uint
}

func newAssocBuilder(loglen uint) *assocBuilder {
	n := 1 << loglen
	return &assocBuilder{
		slots:  make([]AssocSlot, n),
		loglen: loglen,
	}
}

func (b *assocBuilder) findFreeIndex(lastFree *uint32) (uint32, bool) {
	for *lastFree > 0 {
		*lastFree--
		if b.slots[*lastFree].Kind == SlotFree {
			return *lastFree, true
		}
	}
	return 0, false
}

// relocate adjusts a moved slot's link so that its absolute chain
// target is unchanged after moving from oldIndex to newIndex. A link of
// 0 is a terminator and is never adjusted.
func relocate(slot AssocSlot, oldIndex, newIndex uint32) AssocSlot {
	if slot.Link != 0 {
		slot.Link += int32(oldIndex) - int32(newIndex)
	}
	return slot
}

// relocateLink is relocate applied in place to a predecessor's link
// field, retargeting it from oldIndex to newIndex.
func relocateLink(slot *AssocSlot, oldIndex, newIndex uint32) {
	if slot.Link != 0 {
		slot.Link += int32(newIndex) - int32(oldIndex)
	}
}

func (b *assocBuilder) insert(key Key, kind SlotKind, value Value, lastFree *uint32) {
	mainIndex := key.mainPosition(b.loglen)
	item := AssocSlot{Kind: kind, Key: key, Value: value}

	if b.slots[mainIndex].Kind == SlotFree {
		item.Link = 0
		b.slots[mainIndex] = item
		return
	}

	freeIndex, ok := b.findFreeIndex(lastFree)
	if !ok {
		panic("value: table is full, choose a larger loglen")
	}

	occupant := b.slots[mainIndex]
	otherIndex := mainIndex
	if occupant.Kind == SlotLive {
		otherIndex = occupant.Key.mainPosition(b.loglen)
	}

	if otherIndex == mainIndex {
		item.Link = int32(freeIndex) - int32(mainIndex)
		b.slots[mainIndex], b.slots[freeIndex] = item, relocate(occupant, mainIndex, freeIndex)
		return
	}

	prevIndex := otherIndex
	for {
		slot := b.slots[prevIndex]
		if slot.Link == 0 {
			panic("value: table structure is broken")
		}
		nextIndex := uint32(int64(prevIndex) + int64(slot.Link))
		if nextIndex == mainIndex {
			break
		}
		prevIndex = nextIndex
	}
	item.Link = 0
	occupant = b.slots[mainIndex]
	b.slots[mainIndex] = item
	b.slots[freeIndex] = relocate(occupant, mainIndex, freeIndex)
	relocateLink(&b.slots[prevIndex], mainIndex, freeIndex)
}

// TableBuilder constructs a Table slot-by-slot, exposing the explicit
// dead-key API the domain layer needs for fields like an instruction's
// "next" (see the table engine's open questions).
type TableBuilder struct {
	array    []Value
	assoc    *assocBuilder
	lastFree uint32
}

// NewTableBuilder starts a builder for a table whose array part will
// have arrayLen entries (fill with SetArray or leave as holes) and
// whose assoc part, if any, has 2^assocLoglen slots.
func NewTableBuilder(arrayLen int, assocLoglen uint, hasAssoc bool) *TableBuilder {
	b := &TableBuilder{array: make([]Value, arrayLen)}
	if hasAssoc {
		b.assoc = newAssocBuilder(assocLoglen)
		b.lastFree = uint32(len(b.assoc.slots))
	}
	return b
}

// SetArray overwrites the array part in place (1-based index i maps to
// values[i-1]); values shorter than the declared array length leave the
// remainder as holes.
func (b *TableBuilder) SetArray(values []Value) {
	copy(b.array, values)
}

// Insert places a live assoc entry for key, computing its main position
// and resolving any collision per §4.5.2.
func (b *TableBuilder) Insert(key Key, val Value) {
	if b.assoc == nil {
		panic("value: table has no assoc part")
	}
	b.assoc.insert(key, SlotLive, val, &b.lastFree)
}

// InsertDead places a tombstone at key's main position (or displaced
// via the same collision-resolution rule as a live insert).
func (b *TableBuilder) InsertDead(key Key) {
	if b.assoc == nil {
		panic("value: table has no assoc part")
	}
	b.assoc.insert(key, SlotDead, Nil, &b.lastFree)
}

// Build finishes the table.
func (b *TableBuilder) Build() *Table {
	t := &Table{Array: b.array}
	if b.assoc != nil {
		t.Assoc = b.assoc.slots
		t.LastFree = b.lastFree
	}
	return t
}

// Entry is one key/value pair supplied to BuildFromEntries.
type Entry struct {
	Key   Key
	Value Value
}

// BuildFromEntries partitions a key->value map into array and assoc
// parts per §4.5.5: positive-integer keys 1..max_index fill the array
// part as long as it stays at least half occupied; the rest (including
// non-positive integer keys and all string keys) go to assoc. This is
// the encoder-side heuristic used when a domain tree hands the codec a
// plain map rather than an already-shaped Table.
func BuildFromEntries(entries []Entry) *Table {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return keyLess(sorted[i].Key, sorted[j].Key)
	})

	var array []Value
	var rest []Entry
	maxLen := len(sorted) * 2

	for _, e := range sorted {
		idx, isInt := e.Key.Int()
		if !isInt || idx <= 0 || int(idx) > maxLen {
			rest = append(rest, e)
			continue
		}
		i := int(idx)
		for len(array) < i {
			array = append(array, Nil)
		}
		array[i-1] = e.Value
	}

	for len(array) > 0 && array[len(array)-1].IsNil() {
		array = array[:len(array)-1]
	}
	arrayLen := 0
	for _, v := range array {
		if !v.IsNil() {
			arrayLen++
		}
	}
	for {
		for len(array) > 0 && array[len(array)-1].IsNil() {
			array = array[:len(array)-1]
		}
		if arrayLen*2 >= len(array) {
			break
		}
		index := len(array)
		value := array[len(array)-1]
		array = array[:len(array)-1]
		arrayLen--
		rest = append(rest, Entry{Key: KeyInt(int32(index)), Value: value})
	}

	loglen, hasAssoc := ilog2Ceil(len(rest))
	b := NewTableBuilder(len(array), loglen, hasAssoc)
	b.SetArray(array)
	sort.Slice(rest, func(i, j int) bool {
		return keyLess(rest[i].Key, rest[j].Key)
	})
	for _, e := range rest {
		b.Insert(e.Key, e.Value)
	}
	return b.Build()
}

// keyLess orders int keys ascending before string keys, which are
// ordered lexicographically; used only to make BuildFromEntries'
// construction order deterministic across calls.
func keyLess(a, b Key) bool {
	ai, aIsInt := a.Int()
	bi, bIsInt := b.Int()
	if aIsInt && bIsInt {
		return ai < bi
	}
	if aIsInt != bIsInt {
		return aIsInt
	}
	as, _ := a.Str()
	bs, _ := b.Str()
	return as < bs
}
