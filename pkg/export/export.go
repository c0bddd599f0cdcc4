// =============================================================================
// CSV Export - Serializer
// =============================================================================
//
// The serializer turns a list of records into delimited text.
//
// ALGORITHM:
//   1. Ask every record for its cells.
//   2. For the first record only, and only when headers are on, collect the
//      titles of titled cells (translated, then quoted as text).
//   3. Render and quote every cell; join each row with the separator.
//   4. Join the rows with the line ending.
//   5. Put the header line in front when any title was collected.
//
// The result never ends with a line ending. Column counts are not checked:
// records that disagree on their cells produce ragged rows.
//
// =============================================================================

package export

import (
	"io"
	"strings"

	"github.com/ginjaninja78/csvexport/pkg/cell"
	"github.com/ginjaninja78/csvexport/pkg/format"
	"github.com/ginjaninja78/csvexport/pkg/quote"
	"github.com/ginjaninja78/csvexport/pkg/translate"
)

// Serializer renders records using a Config and a formatting policy.
// It is immutable and safe for concurrent use.
type Serializer struct {
	config    Config
	formatter *format.Formatter
}

// New builds a Serializer. It fails when the policy's date pattern does not
// compile.
func New(cfg Config, policy format.Policy) (*Serializer, error) {
	f, err := format.New(policy)
	if err != nil {
		return nil, err
	}
	return &Serializer{config: cfg, formatter: f}, nil
}

// NewFrench returns a serializer for UnixSemicolon output with French dates
// and decimal commas.
func NewFrench() *Serializer {
	return &Serializer{config: UnixSemicolon(), formatter: format.MustNew(format.French())}
}

// NewISO returns a serializer for UnixComma output with ISO dates and
// decimal points.
func NewISO() *Serializer {
	return &Serializer{config: UnixComma(), formatter: format.MustNew(format.ISO())}
}

// WithConfig returns a copy of s using cfg. The formatting policy is kept.
func (s *Serializer) WithConfig(cfg Config) *Serializer {
	return &Serializer{config: cfg, formatter: s.formatter}
}

// Config returns the layout used by s.
func (s *Serializer) Config() Config { return s.config }

// Policy returns the formatting policy used by s.
func (s *Serializer) Policy() format.Policy { return s.formatter.Policy() }

// Serialize renders records as delimited text. tr may be nil, in which case
// header titles are printed as they are.
func (s *Serializer) Serialize(records []cell.Record, tr translate.Translator) string {
	sep := string(s.config.separator)
	eol := s.config.lineEnding.Sequence()
	mode := s.config.mode

	var header []string
	rows := make([]string, 0, len(records))

	for i, record := range records {
		cells := record.Cells()
		fields := make([]string, 0, len(cells))

		for _, c := range cells {
			if i == 0 && s.config.header && c.HasTitle {
				title := c.Title
				if tr != nil {
					title = tr.Translate(title)
				}
				header = append(header, quote.Header(mode, title))
			}

			text := s.formatter.Format(c.Value)
			fields = append(fields, quote.Apply(mode, text, c.Value.Textual()))
		}

		rows = append(rows, strings.Join(fields, sep))
	}

	var b strings.Builder
	if len(header) > 0 {
		b.WriteString(strings.Join(header, sep))
		b.WriteString(eol)
	}
	b.WriteString(strings.Join(rows, eol))

	return b.String()
}

// Encode writes the serialized records to w.
func (s *Serializer) Encode(w io.Writer, records []cell.Record, tr translate.Translator) error {
	_, err := io.WriteString(w, s.Serialize(records, tr))
	return err
}

// SerializeAll is Serialize for a slice of a concrete record type.
func SerializeAll[R cell.Record](s *Serializer, records []R, tr translate.Translator) string {
	generic := make([]cell.Record, len(records))
	for i, r := range records {
		generic[i] = r
	}
	return s.Serialize(generic, tr)
}
