package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	app_errors "pico-watt/internal/errors"
	"pico-watt/internal/models"
	"pico-watt/internal/store"
	"pico-watt/internal/types"
)

// Bucket is a calendar-aligned grouping granularity.
type Bucket int

const (
	BucketHour Bucket = iota
	BucketDay
	BucketHalfMonth
)

// ValueColumn selects which stored value a series aggregates.
type ValueColumn int

const (
	ColumnEnergyKWh ValueColumn = iota
	ColumnPowerWatts
)

// Aggregate is the reduction applied to each bucket's samples.
type Aggregate int

const (
	AggregateSum Aggregate = iota
	AggregateAvg
)

// FillPolicy decides how a bucket with zero samples is represented.
type FillPolicy string

const (
	// FillNull emits null for empty buckets, rendering as a visual gap.
	FillNull FillPolicy = "null"
	// FillZero emits 0.0 for empty buckets, rendering as zero output.
	FillZero FillPolicy = "zero"
)

// SeriesPoint is one emitted bucket. The field is named "watt" even when the
// value is energy: existing consumers depend on that name.
type SeriesPoint struct {
	Zeit string   `json:"zeit"`
	Watt *float64 `json:"watt"`
}

// CurrentReading is the most recent stored sample, or nulls when the store
// is empty.
type CurrentReading struct {
	Zeit *string  `json:"zeit"`
	Watt *float64 `json:"watt"`
}

// SeriesQuery parameterizes one range query over the measurement store.
type SeriesQuery struct {
	Start     time.Time
	Bucket    Bucket
	Column    ValueColumn
	Aggregate Aggregate
	Fill      FillPolicy
	// EnumerateEmpty controls whether buckets without data are emitted at
	// all. The half-month path historically skips them; hourly and daily
	// paths enumerate the full window.
	EnumerateEmpty bool
}

// SeriesService answers range queries by bucketing stored measurements into
// calendar-aligned series. Bucketing happens in Go rather than in SQL so the
// same code path serves every supported dialect.
type SeriesService struct {
	store       *store.MeasurementStore
	defaultFill FillPolicy
	energyMode  bool
	now         func() time.Time
}

// NewSeriesService creates a new series service.
func NewSeriesService(measurementStore *store.MeasurementStore, configManager types.ConfigManager) *SeriesService {
	fill := FillPolicy(configManager.GetSeriesConfig().Fill)
	if fill != FillZero {
		fill = FillNull
	}
	return &SeriesService{
		store:       measurementStore,
		defaultFill: fill,
		energyMode:  configManager.GetIngestConfig().EnergyTracking,
		now:         time.Now,
	}
}

// DefaultFill returns the configured missing-bucket policy.
func (s *SeriesService) DefaultFill() FillPolicy {
	return s.defaultFill
}

// defaultColumn picks the value column matching the ingest configuration:
// energy sums when energy tracking is on, legacy power values otherwise.
func (s *SeriesService) defaultColumn() ValueColumn {
	if s.energyMode {
		return ColumnEnergyKWh
	}
	return ColumnPowerWatts
}

// Hourly returns the hour-bucketed series from start to now.
func (s *SeriesService) Hourly(ctx context.Context, start time.Time, fill FillPolicy) ([]SeriesPoint, error) {
	return s.Series(ctx, SeriesQuery{
		Start:          start,
		Bucket:         BucketHour,
		Column:         s.defaultColumn(),
		Aggregate:      AggregateSum,
		Fill:           fill,
		EnumerateEmpty: true,
	})
}

// Daily returns the day-bucketed series from start to now. Sum of energy is
// the mature semantics; the average-of-power variant remains reachable via
// Series for callers that need it.
func (s *SeriesService) Daily(ctx context.Context, start time.Time, fill FillPolicy) ([]SeriesPoint, error) {
	return s.Series(ctx, SeriesQuery{
		Start:          start,
		Bucket:         BucketDay,
		Column:         s.defaultColumn(),
		Aggregate:      AggregateSum,
		Fill:           fill,
		EnumerateEmpty: true,
	})
}

// HalfMonthly returns the half-month-bucketed series from start to now.
// Unlike the hourly and daily paths it emits only buckets that contain data;
// the asymmetry is deliberate and matches what consumers already render.
func (s *SeriesService) HalfMonthly(ctx context.Context, start time.Time) ([]SeriesPoint, error) {
	return s.Series(ctx, SeriesQuery{
		Start:     start,
		Bucket:    BucketHalfMonth,
		Column:    s.defaultColumn(),
		Aggregate: AggregateSum,
	})
}

// Raw returns the unbucketed passthrough of individual samples from start,
// one point per stored measurement with its power value.
func (s *SeriesService) Raw(ctx context.Context, start time.Time) ([]SeriesPoint, error) {
	measurements, err := s.store.Since(ctx, start)
	if err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	points := make([]SeriesPoint, 0, len(measurements))
	for _, m := range measurements {
		watt := m.PowerWatts
		points = append(points, SeriesPoint{
			Zeit: m.Timestamp.UTC().Format(time.RFC3339),
			Watt: watt,
		})
	}
	return points, nil
}

// Current returns the most recent stored sample, or nulls if none exists.
func (s *SeriesService) Current(ctx context.Context) (CurrentReading, error) {
	latest, err := s.store.Latest(ctx)
	if err != nil {
		return CurrentReading{}, app_errors.ParseDBError(err)
	}
	if latest == nil {
		return CurrentReading{}, nil
	}
	zeit := latest.Timestamp.UTC().Format(time.RFC3339)
	return CurrentReading{Zeit: &zeit, Watt: latest.PowerWatts}, nil
}

type bucketAcc struct {
	sum   float64
	count int
}

// Series runs one parameterized range query: fetch, group by bucket key,
// reduce, then join against the enumerated expected buckets.
func (s *SeriesService) Series(ctx context.Context, q SeriesQuery) ([]SeriesPoint, error) {
	if q.Fill != FillZero && q.Fill != FillNull {
		q.Fill = s.defaultFill
	}
	// All bucketing happens in UTC so labels computed from enumerated times
	// and from retrieved rows always agree, whatever the server timezone.
	now := s.now().UTC()
	start := q.Start.UTC()

	measurements, err := s.store.Since(ctx, start)
	if err != nil {
		return nil, app_errors.ParseDBError(err)
	}

	groups := make(map[string]*bucketAcc)
	for _, m := range measurements {
		value := columnValue(&m, q.Column)
		if value == nil {
			continue
		}
		key := bucketLabel(m.Timestamp.UTC(), q.Bucket)
		acc, ok := groups[key]
		if !ok {
			acc = &bucketAcc{}
			groups[key] = acc
		}
		acc.sum += *value
		acc.count++
	}

	if !q.EnumerateEmpty {
		// Emit only buckets holding at least one sample, in ascending
		// label order. All label formats sort chronologically as strings.
		labels := make([]string, 0, len(groups))
		for label := range groups {
			labels = append(labels, label)
		}
		sort.Strings(labels)

		points := make([]SeriesPoint, 0, len(labels))
		for _, label := range labels {
			value := reduce(groups[label], q.Aggregate)
			points = append(points, SeriesPoint{Zeit: label, Watt: &value})
		}
		return points, nil
	}

	// The expected bucket set is enumerated independently of the data: it
	// defines the output shape even over a completely empty store.
	points := []SeriesPoint{}
	for t := alignDown(start, q.Bucket); !t.After(now); t = nextBucket(t, q.Bucket) {
		label := bucketLabel(t, q.Bucket)
		point := SeriesPoint{Zeit: label}
		if acc, ok := groups[label]; ok {
			value := reduce(acc, q.Aggregate)
			point.Watt = &value
		} else if q.Fill == FillZero {
			zero := 0.0
			point.Watt = &zero
		}
		points = append(points, point)
	}
	return points, nil
}

func columnValue(m *models.Measurement, column ValueColumn) *float64 {
	if column == ColumnPowerWatts {
		return m.PowerWatts
	}
	return m.EnergyKWh
}

func reduce(acc *bucketAcc, aggregate Aggregate) float64 {
	if aggregate == AggregateAvg && acc.count > 0 {
		return acc.sum / float64(acc.count)
	}
	return acc.sum
}

// alignDown rounds t down to the natural boundary of the bucket: top of the
// hour, midnight, or the 1st/16th of the month.
func alignDown(t time.Time, bucket Bucket) time.Time {
	switch bucket {
	case BucketHour:
		return t.Truncate(time.Hour)
	case BucketDay:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	default:
		day := 1
		if t.Day() > 15 {
			day = 16
		}
		return time.Date(t.Year(), t.Month(), day, 0, 0, 0, 0, t.Location())
	}
}

// nextBucket advances t by one bucket width. Half-month boundaries alternate
// between the 1st and the 16th, so the step is not a fixed duration.
func nextBucket(t time.Time, bucket Bucket) time.Time {
	switch bucket {
	case BucketHour:
		return t.Add(time.Hour)
	case BucketDay:
		return t.AddDate(0, 0, 1)
	default:
		if t.Day() <= 15 {
			return time.Date(t.Year(), t.Month(), 16, 0, 0, 0, 0, t.Location())
		}
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, 1, 0)
	}
}

// bucketLabel renders the bucket key: RFC3339 for hours, YYYY-MM-DD for
// days, and the composite "YYYY-MM-<half>" token for half-months (half 1 is
// days 1-15, half 2 the rest).
func bucketLabel(t time.Time, bucket Bucket) string {
	switch bucket {
	case BucketHour:
		return t.Truncate(time.Hour).Format(time.RFC3339)
	case BucketDay:
		return t.Format("2006-01-02")
	default:
		half := 1
		if t.Day() > 15 {
			half = 2
		}
		return fmt.Sprintf("%s-%d", t.Format("2006-01"), half)
	}
}
