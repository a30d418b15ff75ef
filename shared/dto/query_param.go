package dto

import (
	"net/http"
	"strconv"
	"strings"

	"studiodesk/shared/constant"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// QueryParams pages and orders a list. The zero value returns every row in
// repository order.
type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty,min=1"`
	Limit   int    `json:"limit"    validate:"omitempty,min=1"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest reads page, limit, sort_by and sort_dir. Malformed or
// non-positive numbers are ignored, as is an unknown direction. A page
// without a limit uses the default page size.
func (q *QueryParams) FromRequest(r *http.Request) {
	values := r.URL.Query()

	q.Page = positiveInt(values.Get(constant.RequestParamPage))
	q.Limit = positiveInt(values.Get(constant.RequestParamLimit))

	if q.Page > 0 && q.Limit == 0 {
		q.Limit = constant.DefaultValueLimit
	}

	q.SortBy = strings.TrimSpace(values.Get(constant.RequestParamSortBy))

	switch dir := strings.ToUpper(values.Get(constant.RequestParamSortDir)); dir {
	case SortDirAsc, SortDirDesc:
		q.SortDir = dir
	}
}

// Or returns q when it names a sort column, otherwise fallback with q's paging.
func (q QueryParams) Or(fallback QueryParams) QueryParams {
	if q.SortBy == "" {
		q.SortBy = fallback.SortBy
		q.SortDir = fallback.SortDir
	}

	return q
}

func positiveInt(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}

	return n
}
