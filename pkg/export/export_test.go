package export

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ginjaninja78/csvexport/pkg/cell"
	"github.com/ginjaninja78/csvexport/pkg/format"
	"github.com/ginjaninja78/csvexport/pkg/quote"
	"github.com/ginjaninja78/csvexport/pkg/translate"
)

type basic struct {
	name string
	size float32
}

func (b basic) Cells() []cell.Cell {
	return []cell.Cell{
		cell.Titled("Name", cell.Text(b.name)),
		cell.Titled("Taille", cell.Float32(b.size)),
	}
}

type person struct {
	name      string
	size      float32
	born      time.Time
	deletedOn *time.Time
}

func (p person) Cells() []cell.Cell {
	return []cell.Cell{
		cell.Titled("Name", cell.Text(p.name)),
		cell.Titled("Size", cell.Float32(p.size)),
		cell.Titled("DOB", cell.Date(p.born)),
		cell.Titled("DeletedOn", cell.OptDate(p.deletedOn)),
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func people() []person {
	deleted := day(2024, time.November, 7)
	return []person{
		{name: "A", size: 1.79, born: day(2020, time.January, 28), deletedOn: &deleted},
		{name: "B", size: 1.75, born: day(1950, time.October, 11)},
	}
}

var sizeTable = translate.Table{"Size": "Taille"}

func TestSerializeFrench(t *testing.T) {
	t.Parallel()

	got := SerializeAll(NewFrench(), people(), sizeTable)
	want := `"Name";"Taille";"DOB";"DeletedOn"
"A";1,790;28/01/2020;07/11/2024
"B";1,750;11/10/1950;`

	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestSerializeISO(t *testing.T) {
	t.Parallel()

	got := SerializeAll(NewISO(), people(), sizeTable)
	want := `"Name","Taille","DOB","DeletedOn"
"A",1.790,2020-01-28,2024-11-07
"B",1.750,1950-10-11,`

	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestSerializeModes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		s    *Serializer
		want string
	}{
		{
			name: "none",
			s:    NewISO().WithConfig(UnixComma().WithMode(quote.None)),
			want: "Name,Taille\nA,0.000",
		},
		{
			name: "all",
			s:    NewFrench().WithConfig(UnixSemicolon().WithMode(quote.All)),
			want: "\"Name\";\"Taille\"\n\"A\";\"0,000\"",
		},
		{
			name: "mixed",
			s:    NewFrench().WithConfig(UnixSemicolon()),
			want: "\"Name\";\"Taille\"\n\"A\";0,000",
		},
		{
			name: "noHeader",
			s:    NewFrench().WithConfig(UnixSemicolon().WithHeader(false)),
			want: `"A";0,000`,
		},
		{
			name: "windows",
			s:    NewFrench().WithConfig(UnixSemicolon().WithLineEnding(Windows)),
			want: "\"Name\";\"Taille\"\r\n\"A\";0,000",
		},
		{
			name: "tab",
			s:    NewISO().WithConfig(UnixComma().WithSeparator(Tab)),
			want: "\"Name\"\t\"Taille\"\n\"A\"\t0.000",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := SerializeAll(tt.s, []basic{{name: "A"}}, nil)
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSerializeEdgeCases(t *testing.T) {
	t.Parallel()

	empty := cell.RecordFunc(func() []cell.Cell { return nil })
	untitled := cell.RecordFunc(func() []cell.Cell {
		return []cell.Cell{cell.Titled("id", cell.Integer(1)), cell.New(cell.Text("note"))}
	})
	short := cell.RecordFunc(func() []cell.Cell {
		return []cell.Cell{cell.Titled("id", cell.Integer(2))}
	})

	tests := []struct {
		name    string
		s       *Serializer
		records []cell.Record
		want    string
	}{
		{"noRecords", NewISO(), nil, ""},
		{"noRecordsNoHeader", NewISO().WithConfig(UnixComma().WithHeader(false)), nil, ""},
		{"emptyCells", NewISO(), []cell.Record{empty}, ""},
		{"emptyCellsSecondRow", NewISO(), []cell.Record{short, empty}, "\"id\"\n2\n"},
		{"untitledColumnSkippedInHeader", NewISO(), []cell.Record{untitled}, "\"id\"\n1,\"note\""},
		{"raggedRows", NewISO(), []cell.Record{untitled, short}, "\"id\"\n1,\"note\"\n2"},
		{"headerFromFirstRecordOnly", NewISO(), []cell.Record{short, untitled}, "\"id\"\n2\n1,\"note\""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.s.Serialize(tt.records, nil); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSerializeAllValueKinds(t *testing.T) {
	t.Parallel()

	moment := time.Date(2024, 11, 7, 18, 30, 59, 0, time.UTC)
	rec := cell.RecordFunc(func() []cell.Cell {
		return []cell.Cell{
			cell.Titled("t", cell.Text("x")),
			cell.Titled("ot", cell.Null(cell.KindText)),
			cell.Titled("dt", cell.DateTime(moment)),
			cell.Titled("odt", cell.Null(cell.KindDateTime)),
			cell.Titled("f64", cell.Float64(3.14159)),
			cell.Titled("of64", cell.Null(cell.KindFloat64)),
			cell.Titled("i", cell.Integer(12)),
			cell.Titled("oi", cell.Null(cell.KindInteger)),
		}
	})

	got := NewFrench().WithConfig(UnixSemicolon().WithHeader(false)).Serialize([]cell.Record{rec}, nil)
	want := `"x";"";07/11/2024T18:30;;3,142;;12;`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestHeaderIndependentOfData(t *testing.T) {
	t.Parallel()

	firstLine := func(out string) string {
		line, _, _ := strings.Cut(out, "\n")
		return line
	}

	for _, mode := range []quote.Mode{quote.None, quote.Mixed, quote.All} {
		s := NewFrench().WithConfig(UnixSemicolon().WithMode(mode))
		a := SerializeAll(s, []basic{{name: "A", size: 1}}, sizeTable)
		b := SerializeAll(s, []basic{{name: "zzz", size: 99.5}}, sizeTable)
		if firstLine(a) != firstLine(b) {
			t.Fatalf("%v: header changed with data: %q vs %q", mode, firstLine(a), firstLine(b))
		}
	}
}

func TestModeNoneNeverQuotes(t *testing.T) {
	t.Parallel()

	s := NewISO().WithConfig(UnixComma().WithMode(quote.None))
	out := SerializeAll(s, people(), sizeTable)
	if strings.Contains(out, `"`) {
		t.Fatalf("output contains a quote: %q", out)
	}
}

func TestTranslatedHeader(t *testing.T) {
	t.Parallel()

	table := translate.Table{
		"person": map[string]any{"name": "Nom"},
	}
	rec := cell.RecordFunc(func() []cell.Cell {
		return []cell.Cell{
			cell.Titled("person.name", cell.Text("A")),
			cell.Titled("person.size", cell.Float32(1)),
			cell.Titled("a.b.c", cell.Integer(1)),
		}
	})

	got := NewFrench().Serialize([]cell.Record{rec}, table)
	want := "\"Nom\";\"person.size\";\"a.b.c\"\n\"A\";1,000;1"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNewRejectsBadPolicy(t *testing.T) {
	t.Parallel()

	if _, err := New(UnixComma(), format.Custom("%Y-%Q", ".")); err == nil {
		t.Fatal("expected error for malformed pattern")
	}

	s, err := New(UnixComma().WithSeparator(Pipe), format.Custom("%Y", "."))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	rec := cell.RecordFunc(func() []cell.Cell {
		return []cell.Cell{cell.Titled("y", cell.Date(day(1999, time.March, 1))), cell.Titled("n", cell.Float64(2))}
	})
	if got, want := s.Serialize([]cell.Record{rec}, nil), "\"y\"|\"n\"\n1999|2.000"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWithConfigDoesNotMutate(t *testing.T) {
	t.Parallel()

	base := NewFrench()
	_ = base.WithConfig(UnixComma().WithMode(quote.All))
	if base.Config() != UnixSemicolon() {
		t.Fatalf("base config changed to %v", base.Config())
	}
	if base.Policy() != format.French() {
		t.Fatalf("policy = %v", base.Policy())
	}
}

func TestEncode(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := NewFrench().Encode(&buf, []cell.Record{basic{name: "A"}}, nil); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got, want := buf.String(), "\"Name\";\"Taille\"\n\"A\";0,000"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSerializeConcurrent(t *testing.T) {
	t.Parallel()

	s := NewFrench()
	want := SerializeAll(s, people(), sizeTable)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := SerializeAll(s, people(), sizeTable); got != want {
				t.Errorf("concurrent output differs: %q", got)
			}
		}()
	}
	wg.Wait()
}

func TestParseConfigValues(t *testing.T) {
	t.Parallel()

	if e, err := ParseLineEnding("CRLF"); err != nil || e != Windows {
		t.Fatalf("ParseLineEnding(CRLF) = %v, %v", e, err)
	}
	if _, err := ParseLineEnding("mac"); err == nil {
		t.Fatal("expected error for unknown line ending")
	}

	for in, want := range map[string]Separator{"semicolon": Semicolon, "": Comma, "tab": Tab, "|": Pipe, "#": "#"} {
		got, err := ParseSeparator(in)
		if err != nil || got != want {
			t.Fatalf("ParseSeparator(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseSeparator("::"); err == nil {
		t.Fatal("expected error for multi-character delimiter")
	}
}
