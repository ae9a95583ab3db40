package avl

import (
	"math/rand"
	"testing"
)

func benchTree(n int) (*Tree[int], []*Node[int]) {
	tr := &Tree[int]{}
	nodes := make([]*Node[int], n)
	order := rand.New(rand.NewSource(1)).Perm(n)
	for _, v := range order {
		node := nodeFor(v)
		tr.SearchOrCreate(byValue(v), func() *Node[int] { return node })
		nodes[v] = node
	}
	return tr, nodes
}

func BenchmarkSearch(b *testing.B) {
	tr, _ := benchTree(1 << 16)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if tr.Search(byValue(i&(1<<16-1))) == nil {
			b.Fatal("miss")
		}
	}
}

func BenchmarkInsertRemove(b *testing.B) {
	tr, _ := benchTree(1 << 16)
	probe := nodeFor(1 << 20) // Outside the resident key range.
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		n, existed := tr.SearchOrCreate(byValue(probe.Value), func() *Node[int] { return probe })
		if existed {
			b.Fatal("probe already present")
		}
		tr.Remove(n)
	}
}

func BenchmarkTraverseInOrder(b *testing.B) {
	tr, _ := benchTree(1 << 12)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		count := 0
		tr.TraverseInOrder(func(*Node[int]) bool {
			count++
			return false
		}, false)
		if count != 1<<12 {
			b.Fatal("short traversal")
		}
	}
}
