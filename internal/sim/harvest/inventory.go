package harvest

import "scythecraft.gg/internal/protocol"

// mergeable reports whether a slot can absorb plain drop items of the given
// id: same item and nothing that would make the stacks distinct (damage,
// enchantments, tags, lore).
func mergeable(s protocol.ItemStack, item string) bool {
	return s.Item == item && s.Damage == 0 &&
		len(s.Enchantments) == 0 && len(s.Tags) == 0 && len(s.Lore) == 0
}

// FreeSpaceFor computes how many units of an item the slots can still absorb:
// headroom in mergeable stacks plus maxStack per empty slot.
func FreeSpaceFor(slots []protocol.ItemStack, item string, maxStack int) int {
	space := 0
	for _, s := range slots {
		if s.Empty() {
			space += maxStack
			continue
		}
		if mergeable(s, item) && s.Count < maxStack {
			space += maxStack - s.Count
		}
	}
	return space
}

// GiveItems deposits up to n units of an item into a copy of the slots,
// filling mergeable stacks before opening empty slots. It returns the updated
// slots, the amount deposited and the remainder that did not fit; deposited
// plus remainder always equals n.
func GiveItems(slots []protocol.ItemStack, item string, n, maxStack int) (updated []protocol.ItemStack, deposited, remainder int) {
	updated = make([]protocol.ItemStack, len(slots))
	copy(updated, slots)

	left := n
	for i := range updated {
		if left == 0 {
			break
		}
		s := updated[i]
		if s.Empty() || !mergeable(s, item) || s.Count >= maxStack {
			continue
		}
		take := maxStack - s.Count
		if take > left {
			take = left
		}
		updated[i] = s.WithCount(s.Count + take)
		left -= take
	}
	for i := range updated {
		if left == 0 {
			break
		}
		if !updated[i].Empty() {
			continue
		}
		take := maxStack
		if take > left {
			take = left
		}
		updated[i] = protocol.ItemStack{Item: item, Count: take}
		left -= take
	}
	return updated, n - left, left
}

// ledger threads inventory capacity through one swing so successive deposits
// in the same invocation see each other's fill.
type ledger struct {
	slots    []protocol.ItemStack
	maxStack func(item string) int
}

func newLedger(slots []protocol.ItemStack, maxStack func(string) int) *ledger {
	return &ledger{slots: slots, maxStack: maxStack}
}

func (l *ledger) give(item string, n int) (deposited, remainder int) {
	l.slots, deposited, remainder = GiveItems(l.slots, item, n, l.maxStack(item))
	return deposited, remainder
}
