// Package adif parses Amateur Data Interchange Format (ADIF) contact logs
// into schemaless QSO records.
package adif

import (
	"iter"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	eohRe = regexp.MustCompile(`(?i)<eoh>`)
	eorRe = regexp.MustCompile(`(?i)<eor>`)
	// Field tag: <name:length> or <name:length:t> with a single-character
	// type hint, which this parser ignores.
	tagRe = regexp.MustCompile(`<(\w+):(\d+)(?::\w)?>`)
)

// Derived fields injected by the parser.
const (
	// DateTimeField combines qso_date and time_on into one timestamp.
	DateTimeField = "qso_datetime"
	// ImportedAtField stamps every emitted record with the run time.
	ImportedAtField = "imported_at"
)

// numericFields lists ADIF fields stored as numbers when their values parse
// cleanly; anything else keeps the raw string.
var numericFields = map[string]struct{}{
	"freq":        {},
	"freq_rx":     {},
	"tx_pwr":      {},
	"distance":    {},
	"cqz":         {},
	"ituz":        {},
	"dxcc":        {},
	"my_cq_zone":  {},
	"my_dxcc":     {},
	"my_itu_zone": {},
}

// Record is one parsed QSO, keyed by lower-cased ADIF field name. Values are
// string, int64, float64, or time.Time for the derived fields.
type Record map[string]any

// Coercion reports how a known-numeric field value was handled.
type Coercion int

const (
	// CoercionNone means the field is not a known-numeric field.
	CoercionNone Coercion = iota
	// CoercionApplied means the value was converted to int64 or float64.
	CoercionApplied
	// CoercionSkipped means the value did not parse as a number and the raw
	// string was kept.
	CoercionSkipped
)

// Parser extracts QSO records from ADIF file text.
type Parser struct {
	// Now supplies the imported_at stamp. Defaults to time.Now.
	Now func() time.Time
}

// New returns a Parser using the wall clock.
func New() *Parser {
	return &Parser{Now: time.Now}
}

// Records returns a lazy single-pass sequence of records parsed from content.
// Header text up to the first <EOH> marker is discarded, the body is split on
// <EOR> markers, and blank segments are dropped. Every emitted record is
// non-empty and carries an imported_at stamp.
func (p *Parser) Records(content string) iter.Seq[Record] {
	return func(yield func(Record) bool) {
		// Best-effort decoding: drop byte sequences that are not valid UTF-8.
		content = strings.ToValidUTF8(content, "")

		if loc := eohRe.FindStringIndex(content); loc != nil {
			content = content[loc[1]:]
		}

		for _, segment := range eorRe.Split(content, -1) {
			segment = strings.TrimSpace(segment)
			if segment == "" {
				continue
			}
			rec := p.parseRecord(segment)
			if len(rec) == 0 {
				continue
			}
			rec[ImportedAtField] = p.Now().UTC()
			if !yield(rec) {
				return
			}
		}
	}
}

// ParseAll collects every record from content into a slice.
func (p *Parser) ParseAll(content string) []Record {
	var out []Record
	for rec := range p.Records(content) {
		out = append(out, rec)
	}
	return out
}

// parseRecord extracts the fields of one record segment. The last occurrence
// of a field name wins. Fields whose value trims to empty are skipped.
func (p *Parser) parseRecord(segment string) Record {
	rec := Record{}

	tags := tagRe.FindAllStringSubmatchIndex(segment, -1)
	for i, m := range tags {
		name := strings.ToLower(segment[m[2]:m[3]])
		length, err := strconv.Atoi(segment[m[4]:m[5]])
		if err != nil {
			continue
		}

		end := len(segment)
		if i+1 < len(tags) {
			end = tags[i+1][0]
		}
		raw := segment[m[1]:end]
		// A stray '<' that does not open a valid tag still ends the value run.
		if j := strings.IndexByte(raw, '<'); j >= 0 {
			raw = raw[:j]
		}
		// Truncate to the declared length (in characters) before trimming.
		if runes := []rune(raw); length < len(runes) {
			raw = string(runes[:length])
		}
		value := strings.TrimSpace(raw)
		if value == "" {
			continue
		}

		var stored any = value
		if _, ok := numericFields[name]; ok {
			stored, _ = CoerceNumeric(value)
		}

		if name == "qso_date" && len(value) == 8 {
			if t, err := time.Parse("20060102", value); err == nil {
				rec[DateTimeField] = t
			}
		}

		// Combining relies on qso_date appearing before time_on within the
		// record. ADIF does not guarantee field order, so a time-first record
		// leaves the derived field date-only or unset.
		if name == "time_on" {
			combineDateTime(rec, value)
		}

		rec[name] = stored
	}

	return rec
}

// combineDateTime merges a time_on value with an earlier qso_date field into
// the derived qso_datetime, overwriting the date-only value. Malformed input
// leaves the derived field untouched.
func combineDateTime(rec Record, timeOn string) {
	date, ok := rec["qso_date"].(string)
	if !ok || len(date) != 8 || len(timeOn) < 4 {
		return
	}
	padded := timeOn
	for len(padded) < 6 {
		padded += "0"
	}
	padded = padded[:6]
	if t, err := time.Parse("20060102150405", date+padded); err == nil {
		rec[DateTimeField] = t
	}
}

// CoerceNumeric converts value to float64 when it contains a decimal point,
// otherwise to int64. A value that parses as neither is returned unchanged
// with CoercionSkipped.
func CoerceNumeric(value string) (any, Coercion) {
	if strings.Contains(value, ".") {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f, CoercionApplied
		}
		return value, CoercionSkipped
	}
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return n, CoercionApplied
	}
	return value, CoercionSkipped
}
