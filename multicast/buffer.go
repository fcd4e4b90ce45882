package multicast

// buffer holds the retained window [base, tail) of produced slots together
// with the number of readers each slot is still waiting for.
type buffer[T any] struct {
	base  uint64
	tail  uint64
	slots []Slot[T]
	refs  []int
}

func (b *buffer[T]) terminal() bool {
	n := len(b.slots)
	return n > 0 && b.slots[n-1].Terminal()
}

// last returns the most recently appended slot.
func (b *buffer[T]) last() (Slot[T], bool) {
	if len(b.slots) == 0 {
		return Slot[T]{}, false
	}
	return b.slots[len(b.slots)-1], true
}

// at returns the slot at index i if it is still retained.
func (b *buffer[T]) at(i uint64) (Slot[T], bool) {
	if i < b.base || i >= b.tail {
		return Slot[T]{}, false
	}
	return b.slots[i-b.base], true
}

// append adds s at tail. Nothing may follow a terminal slot.
func (b *buffer[T]) append(s Slot[T], refs int) {
	if b.terminal() {
		panic("multicast: append after terminal slot")
	}
	b.slots = append(b.slots, s)
	b.refs = append(b.refs, refs)
	b.tail++
}

// release drops one outstanding reader from every retained slot in [from, to).
func (b *buffer[T]) release(from, to uint64) {
	if from < b.base {
		from = b.base
	}
	if to > b.tail {
		to = b.tail
	}
	for i := from; i < to; i++ {
		if b.refs[i-b.base] > 0 {
			b.refs[i-b.base]--
		}
	}
}

// evict drops leading slots nobody is waiting for and returns how many
// were dropped. Terminal slots stay forever.
func (b *buffer[T]) evict() int {
	n := 0
	for n < len(b.slots) && b.refs[n] <= 0 && !b.slots[n].Terminal() {
		n++
	}
	if n == 0 {
		return 0
	}
	clear(b.slots[:n])
	b.slots = b.slots[n:]
	b.refs = b.refs[n:]
	b.base += uint64(n)
	return n
}

func (b *buffer[T]) len() int { return len(b.slots) }

// reset releases every retained slot. tail is kept so indices stay stable.
func (b *buffer[T]) reset() {
	clear(b.slots)
	b.slots = nil
	b.refs = nil
	b.base = b.tail
}
