package kdb

import "testing"

func TestString_Atoms(t *testing.T) {
	tests := []struct {
		k    *K
		want string
	}{
		{NewBool(true), "1b"},
		{NewLong(42), "42"},
		{NewLong(NullLong), "0N"},
		{NewFloat(3.5), "3.5"},
		{NewSymbol("abc"), "`abc"},
		{NewChar('x'), `"x"`},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestString_List(t *testing.T) {
	k := NewLongList([]int64{1, 2, 3})
	want := "(1;2;3)"
	if got := k.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestString_Dictionary(t *testing.T) {
	d := NewDictionary(NewSymbolList([]string{"a"}), NewLongList([]int64{1}))
	want := "(`a)!(1)"
	if got := d.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestString_CompoundList(t *testing.T) {
	k := NewCompoundList([]*K{NewLong(1), NewSymbol("x")})
	want := "(1;`x)"
	if got := k.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
