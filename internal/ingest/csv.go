// Package ingest reads restaurant records from Zomato-format CSV exports.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kailas-cloud/tablefinder/internal/domain/geo"
	domrest "github.com/kailas-cloud/tablefinder/internal/domain/restaurant"
)

// Column headers of the Zomato export.
const (
	ColID                = "Restaurant ID"
	ColName              = "Restaurant Name"
	ColCountryCode       = "Country Code"
	ColCity              = "City"
	ColAddress           = "Address"
	ColLocality          = "Locality"
	ColLongitude         = "Longitude"
	ColLatitude          = "Latitude"
	ColCuisines          = "Cuisines"
	ColAverageCostForTwo = "Average Cost for two"
	ColCurrency          = "Currency"
	ColHasTableBooking   = "Has Table booking"
	ColHasOnlineDelivery = "Has Online delivery"
	ColIsDeliveringNow   = "Is delivering now"
	ColSwitchToOrderMenu = "Switch to order menu"
	ColPriceRange        = "Price range"
	ColAggregateRating   = "Aggregate rating"
	ColRatingColor       = "Rating color"
	ColRatingText        = "Rating text"
	ColVotes             = "Votes"
)

const utf8BOM = "\uFEFF"

var requiredColumns = []string{ColID, ColName, ColLongitude, ColLatitude, ColCuisines}

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// Row is one parsed data row.
type Row struct {
	Line       int // 1-based, header is line 1
	Restaurant domrest.Restaurant
}

// RowError reports a data row that could not be parsed. Reading may continue.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }

func (e *RowError) Unwrap() error { return e.Err }

// Reader decodes restaurants row by row.
type Reader struct {
	csv  *csv.Reader
	cols map[string]int
	line int
}

// NewReader reads the header from r and checks the required columns are present.
func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read header: empty input")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		cols[strings.TrimSpace(h)] = i
	}
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("%w %q", ErrMissingColumn, c)
		}
	}

	return &Reader{csv: cr, cols: cols, line: 1}, nil
}

// Next returns the next row. It returns io.EOF after the last row and a
// *RowError for a row that fails to parse; callers may keep reading after a
// RowError. Any other error is fatal.
func (r *Reader) Next() (Row, error) {
	rec, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Row{}, io.EOF
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			r.line = perr.Line
			return Row{}, &RowError{Line: perr.Line, Err: perr.Err}
		}
		return Row{}, fmt.Errorf("read csv: %w", err)
	}
	r.line, _ = r.csv.FieldPos(0)

	rest, err := r.parse(rec)
	if err != nil {
		return Row{}, &RowError{Line: r.line, Err: err}
	}
	return Row{Line: r.line, Restaurant: rest}, nil
}

func (r *Reader) parse(rec []string) (domrest.Restaurant, error) {
	p := rowParser{rec: rec, cols: r.cols}

	out := domrest.Restaurant{
		ID:                p.int64(ColID),
		Name:              p.str(ColName),
		CountryCode:       p.int(ColCountryCode),
		City:              p.str(ColCity),
		Address:           p.str(ColAddress),
		Locality:          p.str(ColLocality),
		Location:          geo.NewPoint(p.float(ColLatitude), p.float(ColLongitude)),
		Cuisines:          domrest.ParseCuisines(p.str(ColCuisines)),
		AverageCostForTwo: p.int(ColAverageCostForTwo),
		Currency:          p.str(ColCurrency),
		HasTableBooking:   p.yesNo(ColHasTableBooking),
		HasOnlineDelivery: p.yesNo(ColHasOnlineDelivery),
		IsDeliveringNow:   p.yesNo(ColIsDeliveringNow),
		SwitchToOrderMenu: p.yesNo(ColSwitchToOrderMenu),
		PriceRange:        p.int(ColPriceRange),
		AggregateRating:   p.float(ColAggregateRating),
		RatingColor:       p.str(ColRatingColor),
		RatingText:        p.str(ColRatingText),
		Votes:             p.int(ColVotes),
	}
	if p.err != nil {
		return domrest.Restaurant{}, p.err
	}
	if err := out.Validate(); err != nil {
		return domrest.Restaurant{}, err
	}
	return out, nil
}

// rowParser reads typed cells and keeps the first conversion error.
type rowParser struct {
	rec  []string
	cols map[string]int
	err  error
}

func (p *rowParser) str(col string) string {
	i, ok := p.cols[col]
	if !ok || i >= len(p.rec) {
		return ""
	}
	return strings.TrimSpace(p.rec[i])
}

func (p *rowParser) fail(col, v string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("column %q: invalid value %q: %w", col, v, err)
	}
}

func (p *rowParser) int64(col string) int64 {
	v := p.str(col)
	if v == "" {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		p.fail(col, v, err)
	}
	return n
}

func (p *rowParser) int(col string) int {
	return int(p.int64(col))
}

func (p *rowParser) float(col string) float64 {
	v := p.str(col)
	if v == "" {
		if col == ColLatitude || col == ColLongitude {
			p.fail(col, v, errors.New("coordinate is required"))
		}
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(col, v, err)
	}
	return f
}

func (p *rowParser) yesNo(col string) bool {
	return strings.EqualFold(p.str(col), "yes")
}
