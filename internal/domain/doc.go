// Package domain models tri-county food rescue donation logs.
//
// # Data Source
//
// Donation logs are maintained by partner agencies as flat CSV exports, one
// file per reporting period, published to a static file host alongside the
// GeoJSON county boundary layers the dashboard map uses. The files carry a
// header line followed by one row per pickup, for example:
//
//	County,Proteins LBS,Starch LBS,Veg LBS,Fruit LBS,Baked Goods LBS,Dairy LBS,Grocery LBS,Individual Meal LBS
//	ELK,120.5,40,NA,12,0,33.2,8,5
//
// # CSV Conventions
//
// The exports are produced by volunteers with spreadsheet software and are
// deliberately parsed with a permissive, quote-free splitter:
//
//   - Fields never contain commas by construction; a field that did would be
//     mis-split. Quoted or escaped fields are NOT supported, and adding quote
//     support would change historical aggregation results, so the limitation
//     is preserved rather than fixed.
//   - Duplicate header names are not rejected; the rightmost column wins.
//   - Short rows are padded with empty strings, extra trailing fields are
//     dropped, and every field is trimmed of surrounding whitespace.
//
// Numeric cells use "NA" (any case) as the sentinel for an unmeasured value.
// Empty cells, "NA", and anything that fails decimal parsing all count as
// zero pounds; a malformed row never aborts a parse.
//
// # County Codes
//
// Rows are filtered to a fixed set of three-letter county abbreviations
// (ELK, MAR, SJ by default). Codes are compared after trimming and
// upper-casing, so "elk" and " ELK " both match. The filter set and the
// category-to-column mapping are plain data values passed into [Aggregate],
// never package-level mutable state, so tests can substitute alternates.
//
// # Categories
//
// Eight pound categories are tracked: proteins, starch, veg, fruit,
// baked_goods, dairy, grocery, and individual_meal_lbs. Each maps to one
// source column ("Proteins LBS" and so on, matched case-sensitively).
// Aggregation produces one total per category in mapping order, including
// zero entries for categories with no contributing rows.
package domain
