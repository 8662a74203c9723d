package kdb

import (
	"testing"
	"time"
)

func TestScalarAccessors(t *testing.T) {
	tests := []struct {
		name string
		k    *K
		want func(t *testing.T, k *K)
	}{
		{"bool", NewBool(true), func(t *testing.T, k *K) {
			v, err := k.Bool()
			if err != nil || v != true {
				t.Errorf("Bool() = %v, %v, want true, nil", v, err)
			}
		}},
		{"long", NewLong(7), func(t *testing.T, k *K) {
			v, err := k.Long()
			if err != nil || v != 7 {
				t.Errorf("Long() = %v, %v, want 7, nil", v, err)
			}
		}},
		{"symbol", NewSymbol("abc"), func(t *testing.T, k *K) {
			v, err := k.Symbol()
			if err != nil || v != "abc" {
				t.Errorf("Symbol() = %v, %v, want abc, nil", v, err)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) { tt.want(t, tt.k) })
	}
}

func TestScalarAccessor_WrongType(t *testing.T) {
	k := NewLong(1)
	_, err := k.Symbol()
	if err == nil {
		t.Fatalf("Symbol() on a LONG = nil error, want UsageError")
	}
}

func TestTimestamp_RoundTripsThroughTime(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	k := NewTimestampFromTime(now)
	got, err := k.Time()
	if err != nil {
		t.Fatalf("Time() error: %v", err)
	}
	if !got.Equal(now) {
		t.Errorf("Time() = %v, want %v", got, now)
	}
}

func TestTimespan_ToDuration(t *testing.T) {
	k := NewTimespan(int64(3 * time.Hour))
	d, err := k.Duration()
	if err != nil {
		t.Fatalf("Duration() error: %v", err)
	}
	if d != 3*time.Hour {
		t.Errorf("Duration() = %v, want 3h", d)
	}
}

func TestTable_ColumnAndSetColumn(t *testing.T) {
	tbl := NewTable(
		[]string{"sym", "price"},
		[]*K{NewSymbolList([]string{"AAPL", "IBM"}), NewFloatList([]float64{100, 200})},
	)

	col, err := tbl.Column("price")
	if err != nil {
		t.Fatalf("Column(price) error: %v", err)
	}
	prices, _ := col.Floats()
	if prices[0] != 100 {
		t.Errorf("Column(price) = %v, want [100 200]", prices)
	}

	if err := tbl.SetColumn("price", NewFloatList([]float64{101, 201})); err != nil {
		t.Fatalf("SetColumn(price) error: %v", err)
	}
	col, _ = tbl.Column("price")
	prices, _ = col.Floats()
	if prices[0] != 101 {
		t.Errorf("after SetColumn, Column(price) = %v, want [101 201]", prices)
	}

	if _, err := tbl.Column("nope"); err == nil {
		t.Errorf("Column(nope) = nil error, want NoSuchColumn")
	}
}

func TestDictionary_Find(t *testing.T) {
	d := NewDictionary(
		NewSymbolList([]string{"a", "b", "c"}),
		NewLongList([]int64{1, 2, 3}),
	)

	v, err := d.Find(NewSymbol("b"))
	if err != nil {
		t.Fatalf("Find(b) error: %v", err)
	}
	got, _ := v.Long()
	if got != 2 {
		t.Errorf("Find(b) = %d, want 2", got)
	}

	if _, err := d.Find(NewSymbol("z")); err == nil {
		t.Errorf("Find(z) = nil error, want not-found error")
	}
}

func TestIsNull(t *testing.T) {
	if !NewNull().IsNull() {
		t.Errorf("NewNull().IsNull() = false, want true")
	}
	if NewLong(0).IsNull() {
		t.Errorf("NewLong(0).IsNull() = true, want false")
	}
}
