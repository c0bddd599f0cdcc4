package format

import (
	"testing"
	"time"

	"github.com/ginjaninja78/csvexport/pkg/cell"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	day := time.Date(2020, 1, 28, 0, 0, 0, 0, time.UTC)
	moment := time.Date(2024, 11, 7, 9, 5, 42, 0, time.UTC)

	tests := []struct {
		name   string
		policy Policy
		value  cell.Value
		want   string
	}{
		{"textVerbatim", ISO(), cell.Text(`a;b"c`), `a;b"c`},
		{"dateISO", ISO(), cell.Date(day), "2020-01-28"},
		{"dateFrench", French(), cell.Date(day), "28/01/2020"},
		{"dateTimeISO", ISO(), cell.DateTime(moment), "2024-11-07T09:05"},
		{"dateTimeFrench", French(), cell.DateTime(moment), "07/11/2024T09:05"},
		{"float32French", French(), cell.Float32(1.79), "1,790"},
		{"float32ISO", ISO(), cell.Float32(1.79), "1.790"},
		{"float32Zero", French(), cell.Float32(0), "0,000"},
		{"float64Rounded", ISO(), cell.Float64(2.0006), "2.001"},
		{"float64Negative", French(), cell.Float64(-12.5), "-12,500"},
		{"float64Large", ISO(), cell.Float64(1e21), "1000000000000000000000.000"},
		{"integer", French(), cell.Integer(-42), "-42"},
		{"customSeparator", Custom("%Y", "::"), cell.Float64(1.5), "1::500"},
		{"absentText", ISO(), cell.Null(cell.KindText), ""},
		{"absentDate", French(), cell.Null(cell.KindDate), ""},
		{"absentDateTime", French(), cell.Null(cell.KindDateTime), ""},
		{"absentFloat32", French(), cell.Null(cell.KindFloat32), ""},
		{"absentFloat64", French(), cell.Null(cell.KindFloat64), ""},
		{"absentInteger", ISO(), cell.Null(cell.KindInteger), ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f, err := New(tt.policy)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if got := f.Format(tt.value); got != tt.want {
				t.Fatalf("Format = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewRejectsMalformedPattern(t *testing.T) {
	t.Parallel()

	if _, err := New(Custom("%Y-%Q", ".")); err == nil {
		t.Fatal("expected error for unknown strftime verb")
	}
	if _, err := New(nil); err == nil {
		t.Fatal("expected error for nil policy")
	}
}

func TestLayoutOverrides(t *testing.T) {
	t.Parallel()

	base := French()
	changed := base.WithDatePattern("%Y/%m/%d").WithDecimalSeparator(".")

	if base.DatePattern() != "%d/%m/%Y" || base.DecimalSeparator() != "," {
		t.Fatal("With* mutated the receiver")
	}
	if changed.DatePattern() != "%Y/%m/%d" || changed.DecimalSeparator() != "." {
		t.Fatalf("changed = %+v", changed)
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	fr, err := Lookup("FR")
	if err != nil || fr != French() {
		t.Fatalf("Lookup(FR) = %+v, %v", fr, err)
	}
	iso, err := Lookup("")
	if err != nil || iso != ISO() {
		t.Fatalf("Lookup(\"\") = %+v, %v", iso, err)
	}
	if _, err := Lookup("klingon"); err == nil {
		t.Fatal("expected error for unknown locale")
	}
}
