// Command totals recomputes per-category pound totals from a donation log CSV
// using the same parsing and aggregation the dashboard serves. With -expected
// it also validates the result against a totals fixture and exits nonzero on
// any mismatch, which makes it usable as a data integrity check in CI.
//
// Usage:
//
//	go run ./cmd/totals -csv data/mock/donations_2024.csv \
//	  -expected data/mock/donations_2024_totals.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/tricountyrescue/rescue-dashboard/internal/domain"
)

func main() {
	csvPath := flag.String("csv", "", "path to the donation log CSV")
	expectedPath := flag.String("expected", "", "optional path to an expected totals JSON fixture")
	countyList := flag.String("counties", "ELK,MAR,SJ", "comma-separated county codes to include")
	countyColumn := flag.String("county-column", domain.DefaultCountyColumn, "name of the county column")
	flag.Parse()

	if *csvPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*csvPath, *expectedPath, *countyList, *countyColumn); code != 0 {
		os.Exit(code)
	}
}

func run(csvPath, expectedPath, countyList, countyColumn string) int {
	data, err := os.ReadFile(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read CSV: %v\n", err)
		return 1
	}

	counties := domain.NewCountySet(strings.Split(countyList, ",")...)
	rows := domain.Parse(string(data))
	totals := domain.Aggregate(rows, domain.DefaultCategoryMapping, countyColumn, counties)

	out, err := json.MarshalIndent(totals, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: marshal totals: %v\n", err)
		return 1
	}
	fmt.Println(string(out))

	if expectedPath == "" {
		return 0
	}
	return compare(totals, expectedPath)
}

func compare(totals []domain.CategoryTotal, expectedPath string) int {
	data, err := os.ReadFile(expectedPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read expected totals: %v\n", err)
		return 1
	}
	var expected []domain.CategoryTotal
	if err := json.Unmarshal(data, &expected); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: parse expected totals: %v\n", err)
		return 1
	}

	var errs []string
	if len(expected) != len(totals) {
		errs = append(errs, fmt.Sprintf("category count: expected %d, got %d", len(expected), len(totals)))
	}
	byKey := make(map[string]float64, len(totals))
	for _, t := range totals {
		byKey[t.Key] = t.Pounds
	}
	for _, e := range expected {
		got, ok := byKey[e.Key]
		if !ok {
			errs = append(errs, fmt.Sprintf("%s: missing from computed totals", e.Key))
			continue
		}
		if math.Abs(got-e.Pounds) > 1e-9 {
			errs = append(errs, fmt.Sprintf("%s: expected %g lbs, got %g lbs", e.Key, e.Pounds, got))
		}
	}

	if len(errs) == 0 {
		fmt.Fprintln(os.Stderr, "totals match expected fixture")
		return 0
	}
	for i, e := range errs {
		fmt.Fprintf(os.Stderr, "  [%d] %s\n", i+1, e)
	}
	fmt.Fprintln(os.Stderr, "totals validation FAILED")
	return 1
}
