package kdb

import "testing"

func TestK_TypeAndAttr(t *testing.T) {
	k := NewLongList([]int64{1, 2, 3}).WithAttr(AttrSorted)
	if k.Type() != LONG_LIST {
		t.Errorf("Type() = %d, want %d", k.Type(), LONG_LIST)
	}
	if k.Attr() != AttrSorted {
		t.Errorf("Attr() = %d, want %d", k.Attr(), AttrSorted)
	}
}

func TestK_Clone_Scalar(t *testing.T) {
	orig := NewLong(42)
	clone := orig.Clone()
	v, _ := clone.Long()
	if v != 42 {
		t.Errorf("Clone().Long() = %d, want 42", v)
	}
}

func TestK_Clone_ListIsDeepCopy(t *testing.T) {
	orig := NewLongList([]int64{1, 2, 3})
	clone := orig.Clone()

	origList, _ := orig.Longs()
	origList[0] = 999

	cloneList, _ := clone.Longs()
	if cloneList[0] != 1 {
		t.Errorf("mutating original mutated clone: clone[0] = %d, want 1", cloneList[0])
	}
}

func TestK_Clone_CompoundListIsDeep(t *testing.T) {
	inner := NewLong(1)
	orig := NewCompoundList([]*K{inner})
	clone := orig.Clone()

	origItems, _ := orig.Items()
	cloneItems, _ := clone.Items()

	if origItems[0] == cloneItems[0] {
		t.Errorf("Clone() shared inner pointer, want distinct")
	}
}

func TestK_Clone_Dictionary(t *testing.T) {
	d := NewDictionary(NewSymbolList([]string{"a"}), NewLongList([]int64{1}))
	clone := d.Clone()

	keys, _ := clone.Keys()
	syms, _ := keys.Symbols()
	if len(syms) != 1 || syms[0] != "a" {
		t.Errorf("Clone() dictionary keys = %v, want [a]", syms)
	}
}
