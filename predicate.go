package rsmatch

import (
	"fmt"
	"regexp"
	"strings"
)

// paramsPerVariant is the number of bound values in one variant predicate.
const paramsPerVariant = 6

// ReferenceColumns are the reference table columns read by every lookup,
// in MatchedSNP field order.
var ReferenceColumns = []string{"chr", "rsID", "pos", "A1", "A2"}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Predicate is a SQL boolean fragment with its bound arguments. Fragment
// text only ever contains column names, operators and '?' placeholders.
type Predicate struct {
	SQL  string
	Args []any
}

// Query is a complete parameterized SELECT.
type Query struct {
	SQL  string
	Args []any
}

// BuildPredicate returns the exact-match condition for v in both allele
// orientations.
func BuildPredicate(v VariantRecord) Predicate {
	return Predicate{
		SQL:  "(chr = ? AND pos = ? AND ((A1 = ? AND A2 = ?) OR (A1 = ? AND A2 = ?)))",
		Args: []any{v.Chromosome, v.Position, v.Allele1, v.Allele2, v.Allele2, v.Allele1},
	}
}

// CombinePredicates ORs preds together. The disjunction is grouped as a
// balanced tree so expression depth stays logarithmic in len(preds); SQLite
// rejects expressions nested more than 1000 deep. An empty slice yields a
// predicate that matches nothing.
func CombinePredicates(preds []Predicate) Predicate {
	if len(preds) == 0 {
		return Predicate{SQL: "0"}
	}
	n := 0
	for _, p := range preds {
		n += len(p.Args)
	}
	var sb strings.Builder
	args := make([]any, 0, n)
	writeOr(&sb, &args, preds)
	return Predicate{SQL: sb.String(), Args: args}
}

func writeOr(sb *strings.Builder, args *[]any, preds []Predicate) {
	if len(preds) == 1 {
		sb.WriteString(preds[0].SQL)
		*args = append(*args, preds[0].Args...)
		return
	}
	mid := len(preds) / 2
	sb.WriteByte('(')
	writeOr(sb, args, preds[:mid])
	sb.WriteString(" OR ")
	writeOr(sb, args, preds[mid:])
	sb.WriteByte(')')
}

// ValidateTableName checks name against identifier syntax. The table name is
// configuration, not data, but it is spliced into the statement text.
func ValidateTableName(name string) error {
	if !identPattern.MatchString(name) {
		return &ConfigError{Field: "table", Reason: fmt.Sprintf("invalid table name %q: must match %s", name, identPattern)}
	}
	return nil
}

// BuildQuery builds the single SELECT that looks up every variant in b.
func BuildQuery(table string, b Batch) (Query, error) {
	if err := ValidateTableName(table); err != nil {
		return Query{}, err
	}
	preds := make([]Predicate, len(b))
	for i, v := range b {
		preds[i] = BuildPredicate(v)
	}
	where := CombinePredicates(preds)
	sql := fmt.Sprintf(`SELECT %s FROM "%s" WHERE %s`,
		strings.Join(ReferenceColumns, ", "), table, where.SQL)
	return Query{SQL: sql, Args: where.Args}, nil
}
