package arena

import (
	"math/rand"
	"testing"
)

func BenchmarkAllocateFree(b *testing.B) {
	h, err := New(make([]byte, 1<<20))
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ref, _, err := h.Allocate(240)
		if err != nil {
			b.Fatal(err)
		}
		if err := h.Free(ref); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkChurn(b *testing.B) {
	h, err := New(make([]byte, 1<<20))
	if err != nil {
		b.Fatal(err)
	}
	rng := rand.New(rand.NewSource(7))

	// Keep a ring of live fragments so allocation exercises bin selection and
	// splitting rather than always reusing the same hole.
	const ring = 512
	var refs [ring]Ref
	for i := range refs {
		refs[i], _, err = h.Allocate(1 + rng.Intn(256))
		if err != nil {
			b.Fatal(err)
		}
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		k := i % ring
		if err := h.Free(refs[k]); err != nil {
			b.Fatal(err)
		}
		refs[k], _, err = h.Allocate(1 + (i*37)%256)
		if err != nil {
			b.Fatal(err)
		}
	}
}
