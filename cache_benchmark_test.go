package evictcache

import (
	"crypto/rand"
	"math"
	"math/big"
	"testing"
)

const benchmarkCapacity = 1024

func getRand(tb testing.TB) int64 {
	out, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	if err != nil {
		tb.Fatal(err)
	}
	return out.Int64()
}

func newBenchCache(b *testing.B, a Algorithm, size int) *Cache[int64, int64] {
	b.Helper()
	c, err := New[int64, int64](size, WithAlgorithm[int64, int64](a))
	if err != nil {
		b.Fatalf("err: %v", err)
	}
	return c
}

func BenchmarkCache_Rand(b *testing.B) {
	for _, a := range algorithms {
		b.Run(a.String(), func(b *testing.B) {
			l := newBenchCache(b, a, 8192)
			trace := make([]int64, b.N*2)
			for i := 0; i < b.N*2; i++ {
				trace[i] = getRand(b) % 32768
			}

			b.ResetTimer()

			var hit, miss int
			for i := 0; i < 2*b.N; i++ {
				if i%2 == 0 {
					l.Insert(trace[i], trace[i])
				} else {
					if _, ok, _ := l.Find(trace[i]); ok {
						hit++
					} else {
						miss++
					}
				}
			}
			b.Logf("hit: %d miss: %d ratio: %f", hit, miss, float64(hit)/float64(hit+miss))
		})
	}
}

func BenchmarkCache_Freq(b *testing.B) {
	for _, a := range algorithms {
		b.Run(a.String(), func(b *testing.B) {
			l := newBenchCache(b, a, 8192)
			trace := make([]int64, b.N*2)
			for i := 0; i < b.N*2; i++ {
				if i%2 == 0 {
					trace[i] = getRand(b) % 16384
				} else {
					trace[i] = getRand(b) % 32768
				}
			}

			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				l.Insert(trace[i], trace[i])
			}
			var hit, miss int
			for i := 0; i < b.N; i++ {
				if _, ok, _ := l.Find(trace[i]); ok {
					hit++
				} else {
					miss++
				}
			}
			b.Logf("hit: %d miss: %d ratio: %f", hit, miss, float64(hit)/float64(hit+miss))
		})
	}
}

// BenchmarkCache_Insert_Eviction measures the cost of adding items
// when the cache is full and evictions occur.
func BenchmarkCache_Insert_Eviction(b *testing.B) {
	for _, a := range algorithms {
		b.Run(a.String(), func(b *testing.B) {
			cache := newBenchCache(b, a, benchmarkCapacity)
			for i := 0; i < benchmarkCapacity; i++ {
				cache.Insert(int64(i), int64(i))
			}

			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				cache.Insert(int64(i+benchmarkCapacity), int64(i))
			}
		})
	}
}

// BenchmarkCache_Find_Hit measures the cost of a cache hit.
func BenchmarkCache_Find_Hit(b *testing.B) {
	for _, a := range algorithms {
		b.Run(a.String(), func(b *testing.B) {
			cache := newBenchCache(b, a, benchmarkCapacity)
			for i := 0; i < benchmarkCapacity; i++ {
				cache.Insert(int64(i), int64(i))
			}

			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				cache.Find(int64(i % benchmarkCapacity))
			}
		})
	}
}

func BenchmarkKeyOf(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		KeyOf("user", i, 3.5)
	}
}
