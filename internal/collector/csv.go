package collector

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"RankScope/internal/model"
)

// Required column names, matched case-insensitively.
const (
	ColumnLabel = "Label"
	ColumnPrice = "Price"
	ColumnRank  = "Rank"
)

// ParseStats counts what ParseCSV had to skip or blank out.
type ParseStats struct {
	Rows     int // data rows read
	BadPrice int // rows kept with an absent price
	BadRank  int // rows kept with an absent rank
	NoLabel  int // rows dropped for an empty label
}

// ParseCSV reads a header row followed by data rows. Malformed Price or Rank
// cells are stored as NaN rather than zero so they never skew a mean.
func ParseCSV(r io.Reader) ([]model.Record, ParseStats, error) {
	var st ParseStats

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, st, errors.New("parse csv: empty input")
		}
		return nil, st, fmt.Errorf("parse csv header: %w", err)
	}
	labelCol, priceCol, rankCol, err := columnIndexes(header)
	if err != nil {
		return nil, st, err
	}

	var records []model.Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, st, fmt.Errorf("parse csv row %d: %w", st.Rows+2, err)
		}
		st.Rows++

		label := strings.TrimSpace(cell(row, labelCol))
		if label == "" {
			st.NoLabel++
			continue
		}
		rec := model.Record{
			Label: label,
			Price: parsePrice(cell(row, priceCol)),
			Rank:  parseRank(cell(row, rankCol)),
		}
		if !rec.HasPrice() {
			st.BadPrice++
		}
		if !rec.HasRank() {
			st.BadRank++
		}
		records = append(records, rec)
	}
	return records, st, nil
}

func columnIndexes(header []string) (label, price, rank int, err error) {
	label, price, rank = -1, -1, -1
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		switch {
		case strings.EqualFold(h, ColumnLabel):
			label = i
		case strings.EqualFold(h, ColumnPrice):
			price = i
		case strings.EqualFold(h, ColumnRank):
			rank = i
		}
	}
	var missing []string
	if label < 0 {
		missing = append(missing, ColumnLabel)
	}
	if price < 0 {
		missing = append(missing, ColumnPrice)
	}
	if rank < 0 {
		missing = append(missing, ColumnRank)
	}
	if len(missing) > 0 {
		return 0, 0, 0, fmt.Errorf("parse csv header: missing column(s) %s", strings.Join(missing, ", "))
	}
	return label, price, rank, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func parsePrice(s string) float64 {
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	if s == "" {
		return math.NaN()
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return math.NaN()
	}
	f, _ := d.Float64()
	return f
}

func parseRank(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || f < 0 {
		return math.NaN()
	}
	return f
}
