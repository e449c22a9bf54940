package chi

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	gochi "github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/tablefinder/internal/domain/search/query"
)

// searchParams are the query-string parameters of GET /api/restaurants/search.
// cuisines repeats: ?cuisines=Chinese&cuisines=Thai.
type searchParams struct {
	Lat      *float64 `form:"lat"`
	Long     *float64 `form:"long"`
	Cuisines []string `form:"cuisines"`
	Page     *int     `form:"page"`
	Limit    *int     `form:"limit"`
}

// listParams are the query-string parameters of GET /api/restaurants.
type listParams struct {
	Page  *int `form:"page"`
	Limit *int `form:"limit"`
}

func bindSearchParams(r *http.Request) (searchParams, error) {
	var p searchParams
	q := r.URL.Query()

	if err := runtime.BindQueryParameter("form", true, false, "lat", q, &p.Lat); err != nil {
		return p, fmt.Errorf("invalid format for parameter lat: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "long", q, &p.Long); err != nil {
		return p, fmt.Errorf("invalid format for parameter long: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "cuisines", q, &p.Cuisines); err != nil {
		return p, fmt.Errorf("invalid format for parameter cuisines: %w", err)
	}
	// Malformed pagination falls back to defaults, as in the JSON body.
	p.Page = bindOptionalInt(q, "page")
	p.Limit = bindOptionalInt(q, "limit")
	return p, nil
}

func bindListParams(r *http.Request) listParams {
	q := r.URL.Query()
	return listParams{Page: bindOptionalInt(q, "page"), Limit: bindOptionalInt(q, "limit")}
}

func bindOptionalInt(q url.Values, name string) *int {
	var v *int
	if err := runtime.BindQueryParameter("form", true, false, name, q, &v); err != nil {
		return nil
	}
	return v
}

func (p *searchParams) raw() query.Raw {
	return query.Raw{
		Lat:      p.Lat,
		Long:     p.Long,
		Cuisines: p.Cuisines,
		Page:     derefInt(p.Page),
		Limit:    derefInt(p.Limit),
	}
}

// idParam reads the {id} path segment.
func idParam(r *http.Request) (int64, error) {
	raw := gochi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("restaurant id must be a positive integer, got %q", raw)
	}
	return id, nil
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
