package avl

// debugChecks gates the best-effort misuse detection (mutation during an
// in-progress traversal). Compile-time toggle so release builds pay nothing.
const debugChecks = false

// Node is the intrusive linkage record embedded in every indexed entity.
// Value is the back-reference to the owning entity; the tree never touches it.
// The zero value is an unlinked node.
type Node[T any] struct {
	up *Node[T]
	lr [2]*Node[T]
	bf int8

	Value T
}

// linked reports whether the node is part of some tree. Every linked node has
// a non-nil parent pointer; the root's parent is the tree's origin sentinel.
func (n *Node[T]) linked() bool {
	return n.up != nil
}

// isRoot reports whether the node is the root of its tree. The origin
// sentinel is the only node with a nil parent, so the root is recognized as
// the one linked node whose parent is unlinked.
func (n *Node[T]) isRoot() bool {
	return n.linked() && !n.up.linked()
}

// parent returns the parent node, or nil for the root (the origin sentinel is
// never exposed).
func (n *Node[T]) parent() *Node[T] {
	if n.isRoot() {
		return nil
	}
	return n.up
}

func (n *Node[T]) unlink() {
	n.up = nil
	n.lr[0] = nil
	n.lr[1] = nil
	n.bf = 0
}

// side converts a direction flag into a child slot index: false=left, right=1.
func side(right bool) int {
	if right {
		return 1
	}
	return 0
}

// rotate performs a single rotation about n. r selects the direction: a right
// rotation promotes the left child. n must be linked and the promoted child
// must exist.
func (n *Node[T]) rotate(r bool) {
	z := n.lr[side(!r)]
	if n.up.lr[1] == n {
		n.up.lr[1] = z
	} else {
		n.up.lr[0] = z
	}
	z.up = n.up
	n.up = z
	n.lr[side(!r)] = z.lr[side(r)]
	if n.lr[side(!r)] != nil {
		n.lr[side(!r)].up = n
	}
	z.lr[side(r)] = n
}

// adjustBalance applies a +1 (increment=true) or -1 height delta to n,
// rotating if the balance factor would leave {-1, 0, +1}. Returns the node
// that ended up in n's former position (n itself if no rotation occurred).
func (n *Node[T]) adjustBalance(increment bool) *Node[T] {
	out := n
	newBf := n.bf
	if increment {
		newBf++
	} else {
		newBf--
	}
	if newBf < -1 || newBf > 1 {
		r := newBf < 0 // Left-heavy means a right rotation is needed.
		var sign int8 = -1
		if r {
			sign = +1
		}
		z := n.lr[side(!r)] // The heavy side cannot be empty.
		if z.bf*sign <= 0 { // Same-side heavy or balanced child: single rotation.
			out = z
			n.rotate(r)
			if z.bf == 0 {
				n.bf = -sign
				z.bf = +sign
			} else {
				n.bf = 0
				z.bf = 0
			}
		} else { // Opposite-side heavy child: double rotation.
			y := z.lr[side(r)]
			out = y
			z.rotate(!r)
			n.rotate(r)
			switch {
			case y.bf*sign < 0:
				n.bf = +sign
				y.bf = 0
				z.bf = 0
			case y.bf*sign > 0:
				n.bf = 0
				y.bf = 0
				z.bf = -sign
			default:
				n.bf = 0
				z.bf = 0
			}
		}
	} else {
		n.bf = newBf
	}
	return out
}

// retraceOnGrowth climbs from a freshly inserted leaf restoring the balance
// invariant. Retracing stops once an ancestor absorbs the height change
// (balance factor becomes zero). Returns the new root if it changed, else nil.
func (n *Node[T]) retraceOnGrowth() *Node[T] {
	c := n
	p := n.parent()
	for p != nil {
		r := p.lr[1] == c
		c = p.adjustBalance(r)
		p = c.parent()
		if c.bf == 0 {
			// This ancestor became perfectly balanced, so the height of the
			// outer subtree is unchanged and upper balance factors hold.
			break
		}
	}
	if p == nil {
		return c // New root.
	}
	return nil
}

// extremum walks to the minimum (maximum=false) or maximum node of the
// subtree rooted at n. Returns nil for an empty subtree.
func extremum[T any](n *Node[T], maximum bool) *Node[T] {
	var result *Node[T]
	for c := n; c != nil; c = c.lr[side(maximum)] {
		result = c
	}
	return result
}

// Tree is an ordered index over caller-owned nodes. The root pointer is kept
// in the left child slot of an origin sentinel node, which makes "is this the
// root" a local question and keeps handle moves O(1). The zero value is an
// empty tree ready for use.
type Tree[T any] struct {
	// origin is not part of the tree; its left child slot holds the root.
	// It is the only node with a nil up pointer.
	origin Node[T]

	// Best-effort data race detection, active only when debugChecks is set.
	// A plain flag rather than a nesting counter: recursive traversal may
	// occasionally mask a genuine race, which is acceptable for a
	// testing-only aid.
	traversing bool
}

func (t *Tree[T]) root() *Node[T] {
	return t.origin.lr[0]
}

// Empty reports whether the tree has no nodes. Constant time, unlike Count.
func (t *Tree[T]) Empty() bool {
	return t.root() == nil
}

// Min returns the smallest node under the comparator order, or nil if the
// tree is empty. O(log n).
func (t *Tree[T]) Min() *Node[T] {
	return extremum(t.root(), false)
}

// Max returns the largest node, or nil if the tree is empty. O(log n).
func (t *Tree[T]) Max() *Node[T] {
	return extremum(t.root(), true)
}

// Search finds the node for which pre returns zero, or nil if there is no
// such node. pre compares the search target against the candidate node: it
// returns positive if the target is greater than the candidate, negative if
// smaller. It must be consistent with a fixed total order for the lifetime of
// the tree. O(log n), no mutation.
func (t *Tree[T]) Search(pre func(T) int) *Node[T] {
	n := t.root()
	for n != nil {
		cmp := pre(n.Value)
		if cmp == 0 {
			return n
		}
		n = n.lr[side(cmp > 0)]
	}
	return nil
}

// SearchOrCreate is Search except that on a confirmed miss the factory is
// invoked (without arguments) to produce a new node, which is linked at the
// computed insertion point and the tree rebalanced. The returned flag is true
// when the tree was left unmodified: either the node already existed, or the
// factory returned nil to decline the insertion (the usual way to propagate
// the caller's own allocation failure), in which case the result is (nil, true).
func (t *Tree[T]) SearchOrCreate(pre func(T) int, factory func() *Node[T]) (*Node[T], bool) {
	if debugChecks && t.traversing {
		panic("avl: tree modified during traversal")
	}
	up := t.root()
	n := t.root()
	r := false
	for n != nil {
		cmp := pre(n.Value)
		if cmp == 0 {
			return n, true
		}
		r = cmp > 0
		up = n
		n = n.lr[side(r)]
	}
	out := factory()
	if out == nil {
		return nil, true
	}
	out.unlink()
	if up != nil {
		up.lr[side(r)] = out
		out.up = up
	} else {
		t.origin.lr[0] = out
		out.up = &t.origin
	}
	if rt := out.retraceOnGrowth(); rt != nil {
		t.origin.lr[0] = rt
	}
	return out, false
}

// Remove unlinks the node from the tree and rebalances. The node must be
// currently linked in this tree; removing a foreign node is a caller contract
// violation and corrupts the tree. A nil node is a no-op. On return the
// node's links are reset so it is safe to reuse or reinsert. O(log n).
func (t *Tree[T]) Remove(node *Node[T]) {
	if node == nil {
		return
	}
	if debugChecks && t.traversing {
		panic("avl: tree modified during traversal")
	}
	var p *Node[T] // The lowest parent whose subtree was shortened.
	r := false     // Which side of p was shortened.

	// First update the topology and remember where retracing starts.
	// The tree may be transiently unbalanced until the retrace below.
	if node.lr[0] != nil && node.lr[1] != nil {
		// Two children: replace the node in-place with its in-order
		// successor, the minimum of the right subtree.
		re := extremum(node.lr[1], false)
		re.bf = node.bf
		re.lr[0] = node.lr[0]
		re.lr[0].up = re
		if re.up != node {
			p = re.parent() // Retracing starts at the successor's ex-parent.
			p.lr[0] = re.lr[1]
			if p.lr[0] != nil {
				p.lr[0].up = p
			}
			re.lr[1] = node.lr[1]
			re.lr[1].up = re
			r = false
		} else {
			// The successor is the node's own right child; its right
			// subtree keeps its place, and the shortening is on the right.
			p = re
			r = true
		}
		re.up = node.up
		if !re.isRoot() {
			if re.up.lr[1] == node {
				re.up.lr[1] = re
			} else {
				re.up.lr[0] = re
			}
		} else {
			t.origin.lr[0] = re
		}
	} else {
		// Zero or one child: splice the child (or nil) into the node's slot.
		p = node.up
		rr := node.lr[1] != nil
		if node.lr[side(rr)] != nil {
			node.lr[side(rr)].up = p
		}
		if !node.isRoot() {
			r = p.lr[1] == node
			p.lr[side(r)] = node.lr[side(rr)]
			if p.lr[side(r)] != nil {
				p.lr[side(r)].up = p
			}
		} else {
			t.origin.lr[0] = node.lr[side(rr)]
		}
	}

	// Retrace upward restoring balance. We stop at the root or at an
	// ancestor whose balance factor becomes nonzero, meaning it absorbed
	// the height delta and upper balance factors are unaffected.
	if p != &t.origin {
		var c *Node[T]
		for {
			c = p.adjustBalance(!r)
			p = c.parent()
			if c.bf != 0 || p == nil {
				break
			}
			r = p.lr[1] == c
		}
		if p == nil {
			t.origin.lr[0] = c
		}
	}
	node.unlink()
}
