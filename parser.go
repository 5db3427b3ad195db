package rsmatch

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseRows maps the raw rows of batch index onto MatchedSNP positionally:
// chromosome, rsID, position, allele1, allele2. Rows that do not have
// exactly five usable fields are dropped and reported as warnings.
func ParseRows(index int, rows []RawRow) ([]MatchedSNP, []Diagnostic) {
	if len(rows) == 0 {
		return nil, nil
	}
	out := make([]MatchedSNP, 0, len(rows))
	var diags []Diagnostic
	for i, row := range rows {
		m, reason := parseRow(row)
		if reason != "" {
			diags = append(diags, rowWarning(&RowParseWarning{Batch: index, Row: i, Reason: reason}))
			continue
		}
		out = append(out, m)
	}
	return out, diags
}

func parseRow(row RawRow) (MatchedSNP, string) {
	if len(row) != len(ReferenceColumns) {
		return MatchedSNP{}, fmt.Sprintf("expected %d fields, got %d", len(ReferenceColumns), len(row))
	}
	var text [5]string
	for i, v := range row {
		if i == 2 {
			continue
		}
		s, ok := asText(v)
		if !ok {
			return MatchedSNP{}, fmt.Sprintf("field %s: unsupported value %#v", ReferenceColumns[i], v)
		}
		text[i] = s
	}
	pos, ok := asInt(row[2])
	if !ok {
		return MatchedSNP{}, fmt.Sprintf("field pos: not an integer: %#v", row[2])
	}
	return MatchedSNP{
		Chromosome: text[0],
		RsID:       text[1],
		Position:   pos,
		Allele1:    text[3],
		Allele2:    text[4],
	}, ""
}

func asText(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case []byte:
		return string(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case float64:
		if t == math.Trunc(t) && !math.IsInf(t, 0) {
			return strconv.FormatInt(int64(t), 10), true
		}
		return strconv.FormatFloat(t, 'g', -1, 64), true
	}
	return "", false
}

func asInt(v any) (int64, bool) {
	switch t := v.(type) {
	case int64:
		return t, true
	case float64:
		if t != math.Trunc(t) || math.IsInf(t, 0) || math.IsNaN(t) {
			return 0, false
		}
		return int64(t), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		return n, err == nil
	case []byte:
		n, err := strconv.ParseInt(strings.TrimSpace(string(t)), 10, 64)
		return n, err == nil
	}
	return 0, false
}
