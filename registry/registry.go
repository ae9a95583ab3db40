// Package registry implements the named parameter store: an ordered index of
// registers backed by the intrusive tree, with value payloads optionally
// carved from a fixed arena so the store stays allocation-bounded.
//
// Registers are keyed by the 64-bit xxhash of their name rather than by
// string comparison; lookups touch a single integer per tree level. The
// theoretical hash-collision risk is accepted as negligible. Listing order is
// consequently hash order, which is stable but unrelated to lexicographic
// order; index-based enumeration (Name) is the intended listing mechanism.
package registry

import (
	"errors"

	"github.com/OneOfOne/xxhash"

	"github.com/cyphalkit/cyphalkit/arena"
	"github.com/cyphalkit/cyphalkit/avl"
)

// NameCapacity is the longest accepted register name, matching the uint8
// length prefix of the wire representation.
const NameCapacity = 255

var (
	// ErrBadName indicates an empty or over-long register name.
	ErrBadName = errors.New("registry: invalid register name")

	// ErrNoMemory indicates the backing arena could not hold the value.
	// The store is left unchanged.
	ErrNoMemory = errors.New("registry: value storage exhausted")
)

// Register is a single named entry. The intrusive tree node lives inside the
// register, so indexing a register costs no extra allocation.
type Register struct {
	name string
	hash uint64

	node avl.Node[*Register]

	ref   arena.Ref // owning fragment when arena-backed, NilRef otherwise
	value []byte
}

// Name returns the register's name.
func (r *Register) Name() string { return r.name }

// Value returns the current value bytes. The slice is the live backing
// storage: it is valid until the register is set again or removed, and must
// not be mutated by the caller.
func (r *Register) Value() []byte { return r.value }

// Store is the register index. The zero value is not usable; construct with
// NewStore.
type Store struct {
	tree avl.Tree[*Register]
	heap *arena.Heap
}

// NewStore creates a register store. When heap is non-nil, value payloads are
// allocated from it and Set reports ErrNoMemory when it is exhausted; a nil
// heap keeps values on the Go heap, for hosts that do not need bounded
// storage.
func NewStore(heap *arena.Heap) *Store {
	return &Store{heap: heap}
}

func hashName(name string) uint64 {
	return xxhash.ChecksumString64(name)
}

// byHash builds the tree predicate searching for the given name hash.
func byHash(hash uint64) func(*Register) int {
	return func(r *Register) int {
		switch {
		case hash < r.hash:
			return -1
		case hash > r.hash:
			return +1
		default:
			return 0
		}
	}
}

// Set creates or updates a register. Created reports whether a new register
// was inserted (false means an existing one was overwritten). When the store
// is arena-backed, the new value is allocated before the old one is released,
// so a failed update leaves the previous value intact.
func (s *Store) Set(name string, value []byte) (created bool, err error) {
	if len(name) == 0 || len(name) > NameCapacity {
		return false, ErrBadName
	}
	hash := hashName(name)

	var oom bool
	n, existed := s.tree.SearchOrCreate(byHash(hash), func() *avl.Node[*Register] {
		r := &Register{name: name, hash: hash}
		if err := s.store(r, value); err != nil {
			oom = true
			return nil // Decline the insertion; the tree stays untouched.
		}
		r.node.Value = r
		return &r.node
	})
	if oom {
		return false, ErrNoMemory
	}
	if !existed {
		return true, nil
	}

	// Overwrite: stage the new value first so failure keeps the old one.
	r := n.Value
	oldRef, oldValue := r.ref, r.value
	if err := s.store(r, value); err != nil {
		r.ref, r.value = oldRef, oldValue
		return false, ErrNoMemory
	}
	if s.heap != nil {
		_ = s.heap.Free(oldRef) // NilRef when the old value was empty.
	}
	return false, nil
}

// store places value into the register, using the arena when configured.
func (s *Store) store(r *Register, value []byte) error {
	if s.heap == nil {
		r.ref = arena.NilRef
		r.value = append([]byte(nil), value...)
		return nil
	}
	if len(value) == 0 {
		r.ref = arena.NilRef
		r.value = nil
		return nil
	}
	ref, payload, err := s.heap.Allocate(len(value))
	if err != nil {
		return err
	}
	copy(payload, value)
	r.ref = ref
	r.value = payload[:len(value)]
	return nil
}

// Get returns the value of the named register. The returned slice follows
// the Register.Value aliasing rules.
func (s *Store) Get(name string) ([]byte, bool) {
	r := s.Lookup(name)
	if r == nil {
		return nil, false
	}
	return r.value, true
}

// Lookup returns the named register itself, or nil if absent.
func (s *Store) Lookup(name string) *Register {
	if len(name) == 0 || len(name) > NameCapacity {
		return nil
	}
	n := s.tree.Search(byHash(hashName(name)))
	if n == nil {
		return nil
	}
	return n.Value
}

// Remove deletes the named register, returning its value storage to the
// arena. Reports whether the register existed.
func (s *Store) Remove(name string) bool {
	r := s.Lookup(name)
	if r == nil {
		return false
	}
	s.tree.Remove(&r.node)
	if s.heap != nil {
		_ = s.heap.Free(r.ref)
	}
	r.ref = arena.NilRef
	r.value = nil
	return true
}

// Len returns the number of registers. Linear time.
func (s *Store) Len() int {
	return s.tree.Count()
}

// Name returns the name of the index-th register in hash order, or false if
// the index is out of bounds. This is the listing primitive: clients iterate
// indices until the first miss.
func (s *Store) Name(index int) (string, bool) {
	n := s.tree.At(index)
	if n == nil {
		return "", false
	}
	return n.Value.name, true
}

// Walk visits every register in hash order until the visitor returns false.
// The store must not be mutated during the walk.
func (s *Store) Walk(visit func(r *Register) bool) {
	s.tree.TraverseInOrder(func(n *avl.Node[*Register]) bool {
		return !visit(n.Value)
	}, false)
}

// Clear removes every register, releasing arena-backed values. Implemented
// as a post-order sweep so node teardown never touches freed links.
func (s *Store) Clear() {
	var regs []*Register
	s.tree.TraversePostOrder(func(n *avl.Node[*Register]) {
		regs = append(regs, n.Value)
	}, false)
	for _, r := range regs {
		s.tree.Remove(&r.node)
		if s.heap != nil {
			_ = s.heap.Free(r.ref)
		}
		r.ref = arena.NilRef
		r.value = nil
	}
}
