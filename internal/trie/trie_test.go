package trie

import (
	"testing"
)

func TestEqualCorrectness(t *testing.T) {
	tests := []struct {
		name     string
		setup    func() (*Trie, *Trie)
		expectEq bool
	}{
		{
			name: "identical_empty_tries",
			setup: func() (*Trie, *Trie) {
				return New(), New()
			},
			expectEq: true,
		},
		{
			name: "identical_single_path",
			setup: func() (*Trie, *Trie) {
				t1, t2 := New(), New()
				path := []string{"a", "b", "c"}
				t1.Insert(path)
				t2.Insert(path)
				return t1, t2
			},
			expectEq: true,
		},
		{
			name: "identical_multiple_paths",
			setup: func() (*Trie, *Trie) {
				t1, t2 := New(), New()
				paths := [][]string{
					{"a", "b", "c"},
					{"a", "b", "d"},
					{"x", "y", "z"},
				}
				for _, path := range paths {
					t1.Insert(path)
					t2.Insert(path)
				}
				return t1, t2
			},
			expectEq: true,
		},
		{
			name: "different_paths",
			setup: func() (*Trie, *Trie) {
				t1, t2 := New(), New()
				t1.Insert([]string{"a", "b", "c"})
				t2.Insert([]string{"a", "b", "d"})
				return t1, t2
			},
			expectEq: false,
		},
		{
			name: "different_number_of_paths",
			setup: func() (*Trie, *Trie) {
				t1, t2 := New(), New()
				t1.Insert([]string{"a", "b", "c"})
				t2.Insert([]string{"a", "b", "c"})
				t2.Insert([]string{"x", "y", "z"})
				return t1, t2
			},
			expectEq: false,
		},
		{
			name: "different_path_lengths",
			setup: func() (*Trie, *Trie) {
				t1, t2 := New(), New()
				t1.Insert([]string{"a", "b", "c"})
				t2.Insert([]string{"a", "b"})
				return t1, t2
			},
			expectEq: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t1, t2 := tt.setup()

			result := t1.Equal(t2)
			if result != tt.expectEq {
				t.Errorf("Equal returned %v, expected %v", result, tt.expectEq)
			}
		})
	}
}

func buildSpecificTrie(paths [][]string) *Trie {
	t := New()
	for _, path := range paths {
		t.Insert(path)
	}
	return t
}

func TestSpecificStructures(t *testing.T) {
	tests := []struct {
		name     string
		paths1   [][]string
		paths2   [][]string
		expectEq bool
	}{
		{
			name: "deep_vs_wide",
			paths1: [][]string{
				{"a", "b", "c", "d", "e"},
				{"a", "b", "c", "d", "f"},
			},
			paths2: [][]string{
				{"a", "b"},
				{"a", "c"},
				{"a", "d"},
				{"a", "e"},
				{"a", "f"},
			},
			expectEq: false,
		},
		{
			name: "different_order_same_result",
			paths1: [][]string{
				{"a", "b", "c"},
				{"x", "y", "z"},
			},
			paths2: [][]string{
				{"x", "y", "z"},
				{"a", "b", "c"},
			},
			expectEq: true,
		},
		{
			name: "prefix_overlap",
			paths1: [][]string{
				{"a", "b", "c"},
				{"a", "b"},
			},
			paths2: [][]string{
				{"a", "b", "c"},
			},
			expectEq: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t1 := buildSpecificTrie(tt.paths1)
			t2 := buildSpecificTrie(tt.paths2)

			if got := t1.Equal(t2); got != tt.expectEq {
				t.Errorf("Equal got %v, want %v", got, tt.expectEq)
			}
		})
	}
}

func TestContainsPrefixOf(t *testing.T) {
	tests := []struct {
		name     string
		inserted [][]string
		query    []string
		want     bool
	}{
		{
			name:     "exact_match",
			inserted: [][]string{{"vendor"}},
			query:    []string{"vendor"},
			want:     true,
		},
		{
			name:     "inserted_path_is_prefix",
			inserted: [][]string{{"vendor"}},
			query:    []string{"vendor", "lib", "foo.rs"},
			want:     true,
		},
		{
			name:     "deeper_inserted_path",
			inserted: [][]string{{"src", "generated"}},
			query:    []string{"src", "generated", "parser.rs"},
			want:     true,
		},
		{
			name:     "sibling_does_not_match",
			inserted: [][]string{{"src", "generated"}},
			query:    []string{"src", "handlers", "merge.rs"},
			want:     false,
		},
		{
			name:     "query_shorter_than_inserted",
			inserted: [][]string{{"src", "generated"}},
			query:    []string{"src"},
			want:     false,
		},
		{
			name:     "empty_trie",
			inserted: nil,
			query:    []string{"anything"},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := buildSpecificTrie(tt.inserted)
			if got := tr.ContainsPrefixOf(tt.query); got != tt.want {
				t.Errorf("ContainsPrefixOf(%v) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestDebugString(t *testing.T) {
	tr := New()
	tr.Insert([]string{"a", "b"})
	tr.Insert([]string{"a", "c"})

	expected := "a(b(*)c(*))"
	if str := tr.DebugString(); str != expected {
		t.Errorf("DebugString() = %q, expected %q", str, expected)
	}
}

func TestDirectArenaOperations(t *testing.T) {
	arena := NewArena()

	sequences := [][]string{
		{"a", "b", "c"},
		{"a", "b", "d"},
		{"a", "e"},
		{"f"},
	}

	for _, seq := range sequences {
		arena.Insert(seq)
	}

	expected := "a(b(c(*)d(*))e(*))f(*)"
	if str := arena.DebugString(); str != expected {
		t.Errorf("DebugString() = %q, expected %q", str, expected)
	}

	arena2 := NewArena()
	for _, seq := range sequences {
		arena2.Insert(seq)
	}

	if !arena.Equal(arena2) {
		t.Error("inserted same sequences but arena is not equal")
	}
}
