package postgres

import (
	"fmt"
	"strings"
)

// DefaultTable is the table used when Config.Table is empty.
const DefaultTable = "restaurants"

// queries holds the SQL for one table. Table names cannot be bound as
// parameters, so they are validated once and interpolated here.
type queries struct {
	table string
}

func newQueries(table string) (queries, error) {
	if table == "" {
		table = DefaultTable
	}
	if !validIdent(table) {
		return queries{}, fmt.Errorf("invalid table name %q", table)
	}
	return queries{table: table}, nil
}

func validIdent(s string) bool {
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return s != ""
}

func (q queries) schema() []string {
	return []string{
		"CREATE EXTENSION IF NOT EXISTS postgis",
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id     TEXT PRIMARY KEY,
	ord    DOUBLE PRECISION NOT NULL,
	fields JSONB NOT NULL,
	geo    GEOGRAPHY(Point, 4326) NOT NULL
)`, q.table),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s_geo_idx ON %s USING GIST (geo)", q.table, q.table),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s_ord_idx ON %s (ord, id)", q.table, q.table),
	}
}

// geoSearch binds $1 lon, $2 lat, $3 radius in meters. use_spheroid=false
// keeps distances on the same sphere the in-process haversine uses.
func (q queries) geoSearch() string {
	return fmt.Sprintf(`SELECT id, ST_Distance(geo, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography, false) AS distance
FROM %s
WHERE ST_DWithin(geo, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography, $3, false)
ORDER BY distance ASC, id ASC`, q.table)
}

// listIDs binds $1 offset and, when limited, $2 limit.
func (q queries) listIDs(limited bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT id FROM %s ORDER BY ord ASC, id ASC OFFSET $1", q.table)
	if limited {
		sb.WriteString(" LIMIT $2")
	}
	return sb.String()
}

func (q queries) countAll() string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", q.table)
}

// records binds $1 as a text array of ids.
func (q queries) records() string {
	return fmt.Sprintf("SELECT id, fields FROM %s WHERE id = ANY($1)", q.table)
}

// upsert binds $1 id, $2 ord, $3 fields, $4 lon, $5 lat.
func (q queries) upsert() string {
	return fmt.Sprintf(`INSERT INTO %s (id, ord, fields, geo)
VALUES ($1, $2, $3, ST_SetSRID(ST_MakePoint($4, $5), 4326)::geography)
ON CONFLICT (id) DO UPDATE SET ord = EXCLUDED.ord, fields = EXCLUDED.fields, geo = EXCLUDED.geo`, q.table)
}
