package roster

import (
	"errors"
	"testing"
)

func TestNewRejectsNonPositiveRoomCounts(t *testing.T) {
	t.Parallel()

	for _, count := range []int{0, -1, -13} {
		if _, err := New("3D", "2", count); !errors.Is(err, ErrInvalidRosterSize) {
			t.Fatalf("expected ErrInvalidRosterSize for %d, got %v", count, err)
		}
	}
}

func TestLabelFormatsRoomIdentifiers(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		prefix string
		index  int
		want   string
	}{
		{name: "plain single digit", index: 4, want: "3D.2.4"},
		{name: "plain double digit", index: 13, want: "3D.2.13"},
		{name: "prefixed single digit", prefix: "0", index: 4, want: "3D.2.04"},
		{name: "prefix skipped for double digit", prefix: "0", index: 12, want: "3D.2.12"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := New("3D", "2", 13)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			r.IndexPrefix = tc.prefix
			if got := r.Label(tc.index); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestNextWrapsCyclically(t *testing.T) {
	t.Parallel()

	r, err := New("1A", "0", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sequence := []int{1}
	for i := 0; i < 6; i++ {
		sequence = append(sequence, r.Next(sequence[len(sequence)-1]))
	}

	want := []int{1, 2, 3, 1, 2, 3, 1}
	for i := range want {
		if sequence[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, sequence)
		}
	}
}

func TestContains(t *testing.T) {
	t.Parallel()

	r, err := New("2B", "1", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for index, want := range map[int]bool{0: false, 1: true, 5: true, 6: false, -1: false} {
		if got := r.Contains(index); got != want {
			t.Fatalf("Contains(%d) = %v, want %v", index, got, want)
		}
	}
}
