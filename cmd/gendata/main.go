// Command gendata generates a mock donation log CSV and a matching
// expected-totals JSON fixture. It runs the actual domain aggregation on the
// generated rows so the fixture always matches real dashboard behavior.
//
// Usage:
//
//	go run ./cmd/gendata \
//	  -rows 200 \
//	  -csv-out data/mock/donations_2024.csv \
//	  -totals-out data/mock/donations_2024_totals.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tricountyrescue/rescue-dashboard/internal/domain"
)

// counties mixes in-scope codes (some with case and whitespace noise the
// normalizer must absorb) with out-of-scope ones the aggregator must skip.
var counties = []string{"ELK", "MAR", "SJ", "elk", " mar ", "Sj", "OTH", "KERN", "XXX"}

// sentinels appear in place of numbers so fixtures exercise the lenient
// number handling.
var sentinels = []string{"", "NA", "na", "n/a"}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	rows := flag.Int("rows", 200, "number of data rows to generate")
	seed := flag.Int64("seed", 1, "random seed for reproducible output")
	csvOut := flag.String("csv-out", "", "output path for the donation CSV")
	totalsOut := flag.String("totals-out", "", "output path for the expected totals JSON")
	flag.Parse()

	if *csvOut == "" || *totalsOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -csv-out, -totals-out")
	}

	rng := rand.New(rand.NewSource(*seed))
	text := generateCSV(rng, *rows)

	if err := writeFile(*csvOut, []byte(text)); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}
	log.Printf("wrote CSV fixture: %s (%d rows)", *csvOut, *rows)

	// Run the real parse and aggregation so the fixture cannot drift from
	// dashboard behavior.
	parsed := domain.Parse(text)
	totals := domain.Aggregate(parsed, domain.DefaultCategoryMapping,
		domain.DefaultCountyColumn, domain.DefaultCounties())

	data, err := json.MarshalIndent(totals, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if err := writeFile(*totalsOut, data); err != nil {
		return fmt.Errorf("writing totals fixture: %w", err)
	}
	log.Printf("wrote totals fixture: %s", *totalsOut)

	printStats(parsed, totals)
	return nil
}

// generateCSV builds the file by joining fields with bare commas. The
// dashboard's parser splits on commas without quote handling, so the
// generator must never emit quoted or comma-bearing fields.
func generateCSV(rng *rand.Rand, rows int) string {
	header := []string{domain.DefaultCountyColumn}
	for _, cc := range domain.DefaultCategoryMapping {
		header = append(header, cc.Column)
	}

	var b strings.Builder
	b.WriteString(strings.Join(header, ","))
	b.WriteString("\n")

	for i := 0; i < rows; i++ {
		fields := make([]string, 0, len(header))
		fields = append(fields, counties[rng.Intn(len(counties))])
		for range domain.DefaultCategoryMapping {
			fields = append(fields, randomPounds(rng))
		}

		// Every twentieth row is ragged: short rows pad with empty
		// values, long rows drop the extras.
		switch {
		case i%20 == 7:
			fields = fields[:1+rng.Intn(len(fields)-1)]
		case i%20 == 13:
			fields = append(fields, "stray", "columns")
		}

		b.WriteString(strings.Join(fields, ","))
		b.WriteString("\n")
	}
	return b.String()
}

func randomPounds(rng *rand.Rand) string {
	if rng.Intn(10) == 0 {
		return sentinels[rng.Intn(len(sentinels))]
	}
	// Pounds with occasional decimals, the shape the reporting tool exports.
	v := float64(rng.Intn(500)) + float64(rng.Intn(100))/100
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func printStats(rows []domain.Row, totals []domain.CategoryTotal) {
	inScope := 0
	set := domain.DefaultCounties()
	for _, row := range rows {
		if set.Contains(row[domain.DefaultCountyColumn]) {
			inScope++
		}
	}

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Rows: %d total, %d in scope\n", len(rows), inScope)
	var grand float64
	for _, t := range totals {
		fmt.Printf("  %-22s %10.2f lbs\n", t.Key, t.Pounds)
		grand += t.Pounds
	}
	fmt.Printf("Grand total: %.2f lbs\n", grand)
}
