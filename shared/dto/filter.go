package dto

import (
	"fmt"
	"maps"
	"strings"
)

const (
	FilterOperatorEq     = "eq"
	FilterOperatorLike   = "like"
	FilterOperatorSuffix = "suffix"
	FilterOperatorYear   = "year"
	FilterOperatorMonth  = "month"
)

const FilterGroupOperatorAnd = "AND"

// likeEscaper makes user input match literally inside a LIKE pattern, using
// the default backslash escape.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// Filter is one named-parameter predicate. ArgName defaults to Field; set it
// when two predicates hit the same column.
type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string
	Table    string
}

func (f *Filter) GetWhereClause() (string, map[string]any) {
	column := f.Field
	if f.Table != "" {
		column = f.Table + "." + f.Field
	}

	arg := f.ArgName
	if arg == "" {
		arg = f.Field
	}

	value := f.Value

	var format string

	switch f.Operator {
	case FilterOperatorEq:
		format = "%s = :%s"
	case FilterOperatorLike:
		format = "LOWER(%s) LIKE LOWER(:%s)"
		value = "%" + likeEscaper.Replace(fmt.Sprint(f.Value)) + "%"
	case FilterOperatorSuffix:
		// phone numbers are matched on their trailing digits
		format = "%s LIKE :%s"
		value = "%" + likeEscaper.Replace(fmt.Sprint(f.Value))
	case FilterOperatorYear:
		format = "EXTRACT(YEAR FROM %s) = :%s"
	case FilterOperatorMonth:
		format = "EXTRACT(MONTH FROM %s) = :%s"
	default:
		return "", map[string]any{}
	}

	return fmt.Sprintf(format, column, arg), map[string]any{arg: value}
}

// FilterGroup joins its filters (or nested groups) with Operator.
type FilterGroup struct {
	Filters  []any
	Operator string
}

// NewAndGroup starts an empty conjunction of optional predicates.
func NewAndGroup() FilterGroup {
	return FilterGroup{
		Operator: FilterGroupOperatorAnd,
		Filters:  []any{},
	}
}

// Add appends filter only when set is true. Find operations use it to turn a
// struct of optional inputs into predicates.
func (f *FilterGroup) Add(set bool, filter Filter) *FilterGroup {
	if set {
		f.Filters = append(f.Filters, filter)
	}

	return f
}

// IsEmpty reports whether no predicate was added.
func (f *FilterGroup) IsEmpty() bool {
	return len(f.Filters) == 0
}

func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	clauses := []string{}

	for _, item := range f.Filters {
		var (
			where string
			arg   map[string]any
		)

		switch filter := item.(type) {
		case Filter:
			where, arg = filter.GetWhereClause()
		case FilterGroup:
			where, arg = filter.GetWhereClause()
		}

		if where == "" {
			continue
		}

		clauses = append(clauses, where)
		maps.Copy(args, arg)
	}

	if len(clauses) == 0 {
		return "", args
	}

	return "(" + strings.Join(clauses, " "+f.Operator+" ") + ")", args
}
