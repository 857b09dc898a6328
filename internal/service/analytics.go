package service

import (
	"sort"
	"time"

	"github.com/voltview/voltview/internal/domain"
)

// Stats is the single-pass summary over an aggregation window.
type Stats struct {
	Count      int     `json:"count"`
	AvgPower   float64 `json:"avg_power"`
	AvgVoltage float64 `json:"avg_voltage"`
	PeakPower  float64 `json:"peak_power"`
}

// Summarize reduces a non-empty window of readings to count, mean
// power, mean voltage and peak power in one pass.
func Summarize(readings []domain.Reading) (Stats, error) {
	if len(readings) == 0 {
		return Stats{}, domain.ErrNoData
	}

	var sumPower, sumVoltage, peak float64
	for _, r := range readings {
		sumPower += r.Power
		sumVoltage += r.Voltage
		if r.Power > peak {
			peak = r.Power
		}
	}
	n := float64(len(readings))
	return Stats{
		Count:      len(readings),
		AvgPower:   sumPower / n,
		AvgVoltage: sumVoltage / n,
		PeakPower:  peak,
	}, nil
}

// GroupByDay partitions readings by the calendar-date prefix of their
// stored timestamp (the first 10 characters), preserving relative order
// within each bucket. The key is a lexical prefix: no timezone
// normalization happens, so readings near midnight group by whatever
// string was stored. Known limitation carried over from the dashboard.
func GroupByDay(readings []domain.Reading) map[string][]domain.Reading {
	grouped := make(map[string][]domain.Reading)
	for _, r := range readings {
		key := r.Timestamp
		if len(key) > 10 {
			key = key[:10]
		}
		grouped[key] = append(grouped[key], r)
	}
	return grouped
}

// HourlyBucket is the mean power of all readings sharing an hour-of-day
// label. Readings from different calendar days with the same hour
// collapse into one bucket.
type HourlyBucket struct {
	Hour     int     `json:"hour"`
	AvgPower float64 `json:"avg_power"`
	Count    int     `json:"count"`
}

// HourlyAverages partitions readings by hour of day (0-23) and returns
// per-bucket mean power, sorted by hour. Readings with unparseable
// timestamps are skipped.
func HourlyAverages(readings []domain.Reading) []HourlyBucket {
	type acc struct {
		sum   float64
		count int
	}
	hours := make(map[int]*acc)
	for _, r := range readings {
		t, err := time.Parse(time.RFC3339, r.Timestamp)
		if err != nil {
			continue
		}
		h := t.Hour()
		a := hours[h]
		if a == nil {
			a = &acc{}
			hours[h] = a
		}
		a.sum += r.Power
		a.count++
	}

	out := make([]HourlyBucket, 0, len(hours))
	for h, a := range hours {
		out = append(out, HourlyBucket{Hour: h, AvgPower: a.sum / float64(a.count), Count: a.count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hour < out[j].Hour })
	return out
}
