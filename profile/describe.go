package profile

import (
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/chop-dbhi/table-profiler/histogram"
	"github.com/chop-dbhi/table-profiler/table"
)

var (
	reChars    = regexp.MustCompile(`[a-zA-Z]`)
	reDigits   = regexp.MustCompile(`[0-9]`)
	reSpaces   = regexp.MustCompile(`\s`)
	reNonWords = regexp.MustCompile(`\W`)
)

// Describe computes the statistic record for a column given its kind.
// Supported kinds get the common tier first, then the kind-specific
// tier; unsupported columns get the reduced tier only. Field insertion
// order is significant for aggregation and must not be reordered.
func (r *Run) Describe(c *table.Column, kind Kind) *Record {
	s := r.stats(c)
	rec := NewRecord()

	if kind == Unsupported {
		describeUnsupported(s, rec)
		return rec
	}

	describeCommon(s, rec)

	switch kind {
	case Constant:
		rec.Set("type", Constant)

	case Unique:
		rec.Set("type", Unique)

	case Boolean:
		describeBoolean(s, rec)

	case Numeric:
		r.describeNumeric(s, rec)

	case Date:
		r.describeDate(s, rec)

	case Categorical:
		describeCategorical(s, rec)
	}

	return rec
}

// describeCommon computes the tier shared by every supported kind.
func describeCommon(s *columnStats, rec *Record) {
	length := s.length
	count := s.count()

	rec.Set("count", count)
	rec.Set("distinct_count", s.freq.DistinctCount)
	rec.Set("p_missing", 1-ratio(count, length))
	rec.Set("n_missing", s.missing)
	rec.Set("n_infinite", s.inf)
	rec.Set("p_infinite", ratio(s.inf, length))
	rec.Set("is_unique", s.freq.DistinctCount == length)
	rec.Set("mode", mode(s))
	rec.Set("p_unique", ratio(s.freq.DistinctCount, length))
	rec.Set("memorysize", memorySize(s.col.Values))
}

// describeUnsupported computes the reduced tier: no distinct or mode
// fields, since the values may not even be hashable.
func describeUnsupported(s *columnStats, rec *Record) {
	length := s.length
	count := s.count()

	rec.Set("count", count)
	rec.Set("p_missing", 1-ratio(count, length))
	rec.Set("n_missing", s.missing)
	rec.Set("n_infinite", s.inf)
	rec.Set("p_infinite", ratio(s.inf, length))
	rec.Set("type", Unsupported)
	rec.Set("memorysize", memorySize(s.col.Values))
}

// mode returns the most frequent value when the frequency table is
// meaningful (count > distinct_count > 1), otherwise the column's
// first raw value — even a leading null, matching the reference
// behavior.
func mode(s *columnStats) interface{} {
	distinct := s.freq.DistinctCount

	if s.count() > distinct && distinct > 1 {
		if top, _, ok := s.freq.Top(); ok {
			return top
		}
	}

	if s.length > 0 {
		return s.col.Values[0]
	}

	return nil
}

func describeBoolean(s *columnStats, rec *Record) {
	top, freq, _ := s.freq.Top()

	rec.Set("top", top)
	rec.Set("freq", freq)
	rec.Set("mean", trueRatio(s.values))
	rec.Set("type", Boolean)
}

// trueRatio is the proportion of true (or 1) among the observed
// values.
func trueRatio(values []interface{}) float64 {
	if len(values) == 0 {
		return 0
	}

	var n int

	for _, v := range values {
		switch x := v.(type) {
		case bool:
			if x {
				n++
			}
		case int64:
			if x == 1 {
				n++
			}
		}
	}

	return float64(n) / float64(len(values))
}

func (r *Run) describeDate(s *columnStats, rec *Record) {
	var (
		min, max time.Time
		xs       []float64
	)

	for _, v := range s.values {
		t, ok := v.(time.Time)
		if !ok {
			continue
		}

		if len(xs) == 0 || t.Before(min) {
			min = t
		}
		if len(xs) == 0 || t.After(max) {
			max = t
		}

		xs = append(xs, float64(t.Unix()))
	}

	rec.Set("min", min)
	rec.Set("max", max)
	rec.Set("range", max.Sub(min))
	rec.Set("histogram", renderHistogram(xs, r.Bins, false))
	rec.Set("mini_histogram", renderHistogram(xs, r.Bins, true))
	rec.Set("type", Date)
}

func describeCategorical(s *columnStats, rec *Record) {
	// Only meaningful with at least one non-missing value.
	if s.count() == 0 {
		return
	}

	top, freq, _ := s.freq.Top()

	var (
		minLen, maxLen int
		totalLen       int
		n              int

		hasChars, hasDigits, hasSpaces, hasNonWords bool
	)

	for _, v := range s.values {
		str, ok := v.(string)
		if !ok {
			continue
		}

		l := utf8.RuneCountInString(str)

		if n == 0 || l < minLen {
			minLen = l
		}
		if n == 0 || l > maxLen {
			maxLen = l
		}

		totalLen += l
		n++

		hasChars = hasChars || reChars.MatchString(str)
		hasDigits = hasDigits || reDigits.MatchString(str)
		hasSpaces = hasSpaces || reSpaces.MatchString(str)
		hasNonWords = hasNonWords || reNonWords.MatchString(str)
	}

	composition := NewRecord()
	composition.Set("chars", hasChars)
	composition.Set("digits", hasDigits)
	composition.Set("spaces", hasSpaces)
	composition.Set("non-words", hasNonWords)

	rec.Set("top", top)
	rec.Set("freq", freq)
	rec.Set("max_length", maxLen)
	rec.Set("mean_length", ratio(totalLen, n))
	rec.Set("min_length", minLen)
	rec.Set("composition", composition)
	rec.Set("type", Categorical)
}

// renderHistogram produces the opaque image artifact, substituting nil
// when rendering is not possible rather than failing the column.
func renderHistogram(xs []float64, bins int, mini bool) interface{} {
	var (
		b   []byte
		err error
	)

	if mini {
		b, err = histogram.Mini(xs, bins)
	} else {
		b, err = histogram.Full(xs, bins)
	}

	if err != nil || b == nil {
		return nil
	}

	return b
}

// ErrorRecord marks a column whose description failed. The column
// degrades to unsupported with the captured error as a note instead of
// aborting the whole run.
func ErrorRecord(note string) *Record {
	rec := NewRecord()
	rec.Set("type", Unsupported)
	rec.Set("error", note)

	return rec
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}

	return float64(n) / float64(d)
}
