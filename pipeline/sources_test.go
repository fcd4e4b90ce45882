package pipeline

import (
	"context"
	"errors"
	"slices"
	"testing"
)

func TestRange(t *testing.T) {
	tests := []struct {
		name         string
		start, count int
		want         []int
	}{
		{"from zero", 0, 3, []int{0, 1, 2}},
		{"offset", 5, 2, []int{5, 6}},
		{"empty", 1, 0, nil},
		{"negative count", 1, -4, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Collect(context.Background(), Range(tc.start, tc.count))
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRange_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Collect(ctx, Range(0, 10))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRange_Reenumerable(t *testing.T) {
	p := Range(0, 3)
	for i := 0; i < 2; i++ {
		got, err := Collect(context.Background(), p)
		if err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(got, []int{0, 1, 2}) {
			t.Errorf("pass %d: got %v", i, got)
		}
	}
}

func TestEmpty(t *testing.T) {
	got, err := Collect(context.Background(), Empty[string]())
	if err != nil || len(got) != 0 {
		t.Errorf("expected empty, got %v err=%v", got, err)
	}
}

func TestThrow(t *testing.T) {
	boom := errors.New("boom")
	iter := Throw[int](boom).Iter(context.Background())
	defer iter.Close()
	for i := 0; i < 2; i++ {
		_, ok, err := iter.Next(context.Background())
		if ok || err != boom {
			t.Errorf("pull %d: ok=%v err=%v, want boom", i, ok, err)
		}
	}
}

func TestDefer(t *testing.T) {
	calls := 0
	p := Defer(func() *Pipeline[int] {
		calls++
		return Range(calls, 1)
	})
	if calls != 0 {
		t.Fatal("factory called before enumeration")
	}
	first, _ := Collect(context.Background(), p)
	second, _ := Collect(context.Background(), p)
	if !slices.Equal(first, []int{1}) || !slices.Equal(second, []int{2}) {
		t.Errorf("got %v then %v, want [1] then [2]", first, second)
	}
}
