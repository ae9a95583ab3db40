package avl

// Traversal is iterative and uses only the existing parent links: no
// recursion, no auxiliary stack. Direction of motion is decided from the
// relationship between the previously visited node and the current one, so
// the walk is O(n) total with O(1) state.

// TraverseInOrder visits every node in comparator order (reverse order when
// reverse is true). The visitor may short-circuit by returning true; the node
// it stopped on is returned, or nil if the traversal ran to completion. The
// tree must not be modified while the traversal is in progress.
func (t *Tree[T]) TraverseInOrder(visitor func(*Node[T]) bool, reverse bool) *Node[T] {
	if debugChecks {
		t.traversing = true
		defer func() { t.traversing = false }()
	}
	node := t.root()
	var prev *Node[T]
	for node != nil {
		next := node.parent()
		switch {
		case prev == next: // Came down from the parent.
			if left := node.lr[side(reverse)]; left != nil {
				next = left
			} else {
				if visitor(node) {
					return node
				}
				if right := node.lr[side(!reverse)]; right != nil {
					next = right
				}
			}
		case prev == node.lr[side(reverse)]: // Came up from the lesser child.
			if visitor(node) {
				return node
			}
			if right := node.lr[side(!reverse)]; right != nil {
				next = right
			}
		default:
			// Came up from the greater child; next is already the parent.
		}
		prev, node = node, next
	}
	return nil
}

// TraversePostOrder visits children before their parent (the greater child
// first when reverse is true). Once a node has been passed to the visitor the
// traversal will not reference it again, so the visitor may safely tear the
// node down, e.g. to release a whole tree back to an allocator. The tree
// itself must not be modified while the traversal is in progress.
func (t *Tree[T]) TraversePostOrder(visitor func(*Node[T]), reverse bool) {
	if debugChecks {
		t.traversing = true
		defer func() { t.traversing = false }()
	}
	node := t.root()
	var prev *Node[T]
	for node != nil {
		next := node.parent()
		switch {
		case prev == next: // Came down from the parent.
			if left := node.lr[side(reverse)]; left != nil {
				next = left
			} else if right := node.lr[side(!reverse)]; right != nil {
				next = right
			} else {
				visitor(node)
			}
		case prev == node.lr[side(reverse)]: // Came up from the lesser child.
			if right := node.lr[side(!reverse)]; right != nil {
				next = right
			} else {
				visitor(node)
			}
		default: // Came up from the greater child.
			visitor(node)
		}
		prev, node = node, next
	}
}

// At returns the i-th node in comparator order, or nil if the index is out of
// bounds. Linear time; implemented as a short-circuiting traversal.
func (t *Tree[T]) At(index int) *Node[T] {
	if index < 0 {
		return nil
	}
	i := index
	return t.TraverseInOrder(func(*Node[T]) bool {
		if i == 0 {
			return true
		}
		i--
		return false
	}, false)
}

// Count returns the number of nodes. Linear time; use responsibly.
func (t *Tree[T]) Count() int {
	n := 0
	t.TraverseInOrder(func(*Node[T]) bool {
		n++
		return false
	}, false)
	return n
}
