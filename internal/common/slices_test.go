package common

import (
	"reflect"
	"testing"
)

func TestIsEmpty(t *testing.T) {
	if !IsEmpty([]int(nil)) {
		t.Error("nil slice should be empty")
	}

	if IsEmpty([]int{1}) {
		t.Error("non-empty slice reported empty")
	}
}

func TestFirst(t *testing.T) {
	if _, ok := First([]string(nil)); ok {
		t.Error("First on nil slice should report false")
	}

	v, ok := First([]string{"a", "b"})
	if !ok || v != "a" {
		t.Errorf("First = %q, %v", v, ok)
	}
}

func TestSortedKeys(t *testing.T) {
	got := SortedKeys(map[string]int{"c": 1, "a": 2, "b": 3})
	want := []string{"a", "b", "c"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("SortedKeys = %v, want %v", got, want)
	}

	if keys := SortedKeys(map[string]bool{}); len(keys) != 0 {
		t.Errorf("SortedKeys of empty map = %v", keys)
	}
}
