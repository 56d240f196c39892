package idhash

import (
	"crypto/md5"
	"errors"
	"testing"
)

func TestComputeMintID(t *testing.T) {
	tests := []struct {
		name  string
		index int
		want  string
	}{
		{
			name:  "index 0",
			index: 0,
			want:  "5feceb66ffc86f38d952786c6d696c79c2dbc239dd4e91b46729d73a27fb57e9",
		},
		{
			name:  "index 1",
			index: 1,
			want:  "6b86b273ff34fce19d6b804eff5a3f5747ada4eaa22f1d49c01e52ddb7875b4b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeMintID(SHA256, tt.index)
			if got != tt.want {
				t.Errorf("ComputeMintID(%d) = %s, want %s", tt.index, got, tt.want)
			}
		})
	}
}

func TestComputeTxSignature(t *testing.T) {
	got := ComputeTxSignature(SHA256, 1, SignatureLength)
	want := "6b86b273ff34fce19d6b804eff5a3f5747ada4eaa22f"
	if got != want {
		t.Errorf("ComputeTxSignature(1) = %s, want %s", got, want)
	}
	if len(got) != 44 {
		t.Errorf("length = %d, want 44", len(got))
	}
}

func TestComputeTxSignature_Unique(t *testing.T) {
	const n = 100_000
	seen := make(map[string]int64, n)
	for i := int64(0); i < n; i++ {
		sig := ComputeTxSignature(SHA256, i, SignatureLength)
		if prev, ok := seen[sig]; ok {
			t.Fatalf("signature collision between rows %d and %d: %s", prev, i, sig)
		}
		seen[sig] = i
	}
}

func TestDigest_Truncation(t *testing.T) {
	data := []byte("42")
	full := Digest(SHA256, data, 0)

	tests := []struct {
		name    string
		n       int
		wantLen int
	}{
		{"no truncation", 0, 64},
		{"negative", -1, 64},
		{"truncate 44", 44, 44},
		{"truncate 8", 8, 8},
		{"beyond digest", 100, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Digest(SHA256, data, tt.n)
			if len(got) != tt.wantLen {
				t.Errorf("Digest length = %d, want %d", len(got), tt.wantLen)
			}
			if full[:len(got)] != got {
				t.Errorf("Digest(%d) = %s is not a prefix of %s", tt.n, got, full)
			}
		})
	}
}

func TestDigest_OtherHasher(t *testing.T) {
	md5Hasher := func(data []byte) []byte {
		sum := md5.Sum(data)
		return sum[:]
	}

	got := ComputeMintID(md5Hasher, 0)
	if got != "cfcd208495d565ef66e7dff9f98764da" {
		t.Errorf("md5 mint id = %s", got)
	}
}

func TestBuildPool(t *testing.T) {
	pool, err := BuildPool(SHA256, 100)
	if err != nil {
		t.Fatalf("BuildPool failed: %v", err)
	}
	if len(pool) != 100 {
		t.Fatalf("len(pool) = %d, want 100", len(pool))
	}

	seen := make(map[string]struct{}, len(pool))
	for i, id := range pool {
		if len(id) != 64 {
			t.Errorf("pool[%d] length = %d, want 64", i, len(id))
		}
		if id != ComputeMintID(SHA256, i) {
			t.Errorf("pool[%d] out of order", i)
		}
		seen[id] = struct{}{}
	}
	if len(seen) != 100 {
		t.Errorf("distinct ids = %d, want 100", len(seen))
	}
}

func TestBuildPool_Determinism(t *testing.T) {
	first, err := BuildPool(SHA256, 100)
	if err != nil {
		t.Fatalf("BuildPool failed: %v", err)
	}
	second, err := BuildPool(SHA256, 100)
	if err != nil {
		t.Fatalf("BuildPool failed: %v", err)
	}

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Determinism failed: first[%d]=%s != second[%d]=%s", i, first[i], i, second[i])
		}
	}
}

func TestBuildPool_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		_, err := BuildPool(SHA256, size)
		if !errors.Is(err, ErrInvalidPoolSize) {
			t.Errorf("BuildPool(%d) error = %v, want ErrInvalidPoolSize", size, err)
		}
	}
}
