package models

// Interval names a review-delay bucket.
type Interval string

const (
	IntervalTomorrow  Interval = "tomorrow"
	IntervalThreeDays Interval = "three_days"
	IntervalOneWeek   Interval = "one_week"
	IntervalTwoWeeks  Interval = "two_weeks"
	IntervalOneMonth  Interval = "one_month"
)

// IntervalInfo carries the day count and display label for one interval.
type IntervalInfo struct {
	Days  int    `json:"days"`
	Label string `json:"label"`
}

// Intervals is the single source of truth for interval semantics. Every
// component that needs a day count must read it from here.
var Intervals = map[Interval]IntervalInfo{
	IntervalTomorrow:  {Days: 1, Label: "Tomorrow"},
	IntervalThreeDays: {Days: 3, Label: "In 3 days"},
	IntervalOneWeek:   {Days: 7, Label: "In 1 week"},
	IntervalTwoWeeks:  {Days: 14, Label: "In 2 weeks"},
	IntervalOneMonth:  {Days: 30, Label: "In 1 month"},
}

// IntervalOrder lists the defined intervals from shortest to longest.
var IntervalOrder = []Interval{
	IntervalTomorrow,
	IntervalThreeDays,
	IntervalOneWeek,
	IntervalTwoWeeks,
	IntervalOneMonth,
}

// Valid reports whether the interval is one of the defined buckets.
func (i Interval) Valid() bool {
	_, ok := Intervals[i]
	return ok
}

// Days returns the interval's day count, or 0 for an unknown interval.
func (i Interval) Days() int {
	return Intervals[i].Days
}

// Label returns the human-readable label, or an empty string for an unknown interval.
func (i Interval) Label() string {
	return Intervals[i].Label
}
