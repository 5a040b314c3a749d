package protocol

const Version = "1.0"

// ItemStack is the wire form of a stack of items held in a container slot
// or attached to an item entity. It is a value type: helpers that change a
// stack return a new value and leave the input untouched.
type ItemStack struct {
	Item         string         `json:"item"`
	Count        int            `json:"count"`
	Damage       int            `json:"damage,omitempty"` // durability points consumed
	Enchantments map[string]int `json:"enchantments,omitempty"`
	Tags         []string       `json:"tags,omitempty"`
	Lore         []string       `json:"lore,omitempty"`
}

// WithDamage returns a copy of the stack with the damage counter replaced.
func (s ItemStack) WithDamage(damage int) ItemStack {
	s.Damage = damage
	return s
}

// WithCount returns a copy of the stack with the count replaced.
func (s ItemStack) WithCount(count int) ItemStack {
	s.Count = count
	return s
}

// EnchantmentLevel returns the level of the named enchantment, 0 if absent.
func (s ItemStack) EnchantmentLevel(name string) int {
	if s.Enchantments == nil {
		return 0
	}
	return s.Enchantments[name]
}

// Equals reports whether two stacks are interchangeable: same item, count,
// damage, enchantments, tags and lore. Order of tags and lore is significant,
// matching how the host compares stacks.
func (s ItemStack) Equals(o ItemStack) bool {
	if s.Item != o.Item || s.Count != o.Count || s.Damage != o.Damage {
		return false
	}
	if len(s.Enchantments) != len(o.Enchantments) {
		return false
	}
	for k, v := range s.Enchantments {
		if o.Enchantments[k] != v {
			return false
		}
	}
	if len(s.Tags) != len(o.Tags) {
		return false
	}
	for i := range s.Tags {
		if s.Tags[i] != o.Tags[i] {
			return false
		}
	}
	if len(s.Lore) != len(o.Lore) {
		return false
	}
	for i := range s.Lore {
		if s.Lore[i] != o.Lore[i] {
			return false
		}
	}
	return true
}

// Empty reports whether the stack carries no items.
func (s ItemStack) Empty() bool { return s.Item == "" || s.Count <= 0 }
