package query

import (
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"forum-api/internal/model"
	"forum-api/pkg/apierror"
)

// Paging holds the default-and-clamp policy for page/size parameters.
type Paging struct {
	DefaultSize int64
	MaxSize     int64
}

func NewPaging(defaultSize int64, maxSize int64) Paging {
	if defaultSize <= 0 {
		defaultSize = 10
	}
	if maxSize < defaultSize {
		maxSize = defaultSize
	}
	return Paging{DefaultSize: defaultSize, MaxSize: maxSize}
}

// Parse reads sort, page and size. Absent page is 0, absent or zero size is
// the default, oversized size is clamped; negative or non-numeric values are
// rejected instead of reaching the store.
func (p Paging) Parse(values url.Values) (ListQuery, error) {
	if p.DefaultSize <= 0 || p.MaxSize < p.DefaultSize {
		p = NewPaging(p.DefaultSize, p.MaxSize)
	}

	page, err := parseNonNegative(values.Get("page"), "page", 0)
	if err != nil {
		return ListQuery{}, err
	}

	size, err := parseNonNegative(values.Get("size"), "size", p.DefaultSize)
	if err != nil {
		return ListQuery{}, err
	}
	if size == 0 {
		size = p.DefaultSize
	}
	if size > p.MaxSize {
		size = p.MaxSize
	}
	if page > math.MaxInt64/size {
		return ListQuery{}, apierror.Wrap(model.ErrInvalidInput, "BAD_REQUEST", "page is out of range", values.Get("page"), http.StatusBadRequest)
	}

	return ListQuery{
		SortDirection: strings.TrimSpace(values.Get("sort")),
		Page:          page,
		Size:          size,
	}, nil
}

func parseNonNegative(raw string, field string, fallback int64) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apierror.Wrap(model.ErrInvalidInput, "BAD_REQUEST", field+" must be an integer", raw, http.StatusBadRequest)
	}
	if v < 0 {
		return 0, apierror.Wrap(model.ErrInvalidInput, "BAD_REQUEST", field+" must not be negative", raw, http.StatusBadRequest)
	}

	return v, nil
}
