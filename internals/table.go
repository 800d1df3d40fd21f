package internals

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DefaultCapacity is the number of buckets allocated
// when NewTable is called with capacity 0
const DefaultCapacity = 64

// ValueType discriminates the two variants of a Value
type ValueType int

const (
	// TypeString marks a Value carrying a string
	TypeString ValueType = iota
	// TypeInteger marks a Value carrying an integer
	TypeInteger
)

// Value is a tagged union over {string, integer}.
// The scanner only stores strings (the first-seen filepath of
// a fingerprint); the integer variant exists for generality.
type Value struct {
	Type ValueType
	Str  string
	Int  int64
}

// StringValue returns a Value carrying the given string
func StringValue(s string) Value {
	return Value{Type: TypeString, Str: s}
}

// IntegerValue returns a Value carrying the given integer
func IntegerValue(i int64) Value {
	return Value{Type: TypeInteger, Int: i}
}

// String renders the Value per its tag: the string as-is, the integer in decimal
func (v Value) String() string {
	if v.Type == TypeInteger {
		return strconv.FormatInt(v.Int, 10)
	}
	return v.Str
}

// Pair is one key/value entry in a bucket chain. Every bucket slot is a
// sentinel Pair whose key and value carry no meaning; the sentinel's next
// pointer heads the chain of live entries.
type Pair struct {
	key   string
	value Value
	next  *Pair
}

// Table is a mutable mapping from fingerprint string to Value, implemented
// as a fixed-size array of buckets with separate chaining. The capacity is
// fixed for the table's lifetime; chains grow without bound and lookup
// degrades to a linear scan in the worst case.
// INVARIANT keys are pairwise distinct across all live entries of a chain
// INVARIANT size equals the number of live entries across all chains
type Table struct {
	buckets  []Pair
	capacity int
	size     int
}

// NewTable creates a Table with the given number of buckets.
// Capacity 0 is replaced by DefaultCapacity.
func NewTable(capacity int) *Table {
	t := new(Table)
	if capacity <= 0 {
		t.capacity = DefaultCapacity
	} else {
		t.capacity = capacity
	}
	t.buckets = make([]Pair, t.capacity)
	return t
}

// Capacity returns the fixed number of buckets
func (t *Table) Capacity() int {
	return t.capacity
}

// Size returns the number of live entries
func (t *Table) Size() int {
	return t.size
}

// bucket returns the sentinel Pair heading the chain responsible for key
func (t *Table) bucket(key string) *Pair {
	return &t.buckets[BucketHashString(key)%uint64(t.capacity)]
}

// Insert maps key to value. If the key is already present, the stored value
// is replaced in place and the size is unchanged. Otherwise a new entry is
// linked at the head of the bucket's chain. The table stores its own copies
// of key and value; the caller may reuse its originals afterwards.
func (t *Table) Insert(key string, value Value) {
	sentinel := t.bucket(key)

	for curr := sentinel.next; curr != nil; curr = curr.next {
		if curr.key == key {
			curr.value = ownedValue(value)
			return
		}
	}

	sentinel.next = &Pair{key: strings.Clone(key), value: ownedValue(value), next: sentinel.next}
	t.size++
}

// Search returns a reference to the value stored for key,
// or (nil, false) if the key is absent. The table is not mutated.
func (t *Table) Search(key string) (*Value, bool) {
	for curr := t.bucket(key).next; curr != nil; curr = curr.next {
		if curr.key == key {
			return &curr.value, true
		}
	}
	return nil, false
}

// Remove unlinks the entry with the given key from its chain and returns
// whether a removal occurred. The sentinel acts as predecessor for
// head-of-chain removals.
func (t *Table) Remove(key string) bool {
	prev := t.bucket(key)

	for curr := prev.next; curr != nil; curr = curr.next {
		if curr.key == key {
			prev.next = curr.next
			t.size--
			return true
		}
		prev = curr
	}
	return false
}

// Format writes every live entry as `key<TAB>value`, one per line.
// Chain and bucket visitation order is implementation-defined.
func (t *Table) Format(w io.Writer) error {
	for i := 0; i < t.capacity; i++ {
		for curr := t.buckets[i].next; curr != nil; curr = curr.next {
			if _, err := fmt.Fprintf(w, "%s\t%s\n", curr.key, curr.value.String()); err != nil {
				return err
			}
		}
	}
	return nil
}

// ownedValue materializes an independent copy of the value. Go strings are
// immutable, but a string value may alias a larger backing array of the
// caller; cloning detaches the entry from it.
func ownedValue(value Value) Value {
	if value.Type == TypeString {
		value.Str = strings.Clone(value.Str)
	}
	return value
}
