package domain

// CategoryColumn binds an internal category key to the source column that
// feeds it, e.g. proteins -> "Proteins LBS". Column names match the CSV
// header exactly, case-sensitively.
type CategoryColumn struct {
	Key    string
	Column string
}

// CategoryMapping is an ordered category-to-column table. Order determines
// the order of aggregation results.
type CategoryMapping []CategoryColumn

// CountySet is a membership set of normalized county codes.
type CountySet map[string]struct{}

// NewCountySet builds a CountySet from raw codes, normalizing each member.
func NewCountySet(codes ...string) CountySet {
	s := make(CountySet, len(codes))
	for _, code := range codes {
		s[NormalizeCounty(code)] = struct{}{}
	}
	return s
}

// Contains reports whether the raw county value, once normalized, is a
// member. A missing column value normalizes to the empty string, which is
// never a member.
func (s CountySet) Contains(raw string) bool {
	_, ok := s[NormalizeCounty(raw)]
	return ok
}

// CategoryTotal is one aggregated entry: a category key and its accumulated
// pounds across all in-scope rows.
type CategoryTotal struct {
	Key    string  `json:"key"`
	Pounds float64 `json:"pounds"`
}

// DefaultCategoryMapping is the standard eight-category table used by the
// dashboard. Exposed as data so tests and callers can substitute alternates.
var DefaultCategoryMapping = CategoryMapping{
	{Key: "proteins", Column: "Proteins LBS"},
	{Key: "starch", Column: "Starch LBS"},
	{Key: "veg", Column: "Veg LBS"},
	{Key: "fruit", Column: "Fruit LBS"},
	{Key: "baked_goods", Column: "Baked Goods LBS"},
	{Key: "dairy", Column: "Dairy LBS"},
	{Key: "grocery", Column: "Grocery LBS"},
	{Key: "individual_meal_lbs", Column: "Individual Meal LBS"},
}

// DefaultCountyColumn is the header naming each row's county code.
const DefaultCountyColumn = "County"

// DefaultCounties returns the standard tri-county filter set.
func DefaultCounties() CountySet {
	return NewCountySet("ELK", "MAR", "SJ")
}

// Aggregate sums the mapped numeric columns per category across every row
// whose county is in the filter set.
//
// The result has one entry per mapping entry, in mapping order, zero-valued
// when no row contributed. Rows outside the filter set are skipped whole (no
// partial contribution); a missing column contributes 0 via ToNumber.
// Negative raw values are summed as-is. Aggregate is a pure function of its
// inputs: calling it twice on the same rows yields identical totals.
func Aggregate(rows []Row, mapping CategoryMapping, countyColumn string, counties CountySet) []CategoryTotal {
	totals := make([]CategoryTotal, len(mapping))
	for i, cc := range mapping {
		totals[i] = CategoryTotal{Key: cc.Key}
	}

	for _, row := range rows {
		if !counties.Contains(row[countyColumn]) {
			continue
		}
		for i, cc := range mapping {
			totals[i].Pounds += ToNumber(row[cc.Column])
		}
	}
	return totals
}
