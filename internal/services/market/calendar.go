package market

import (
	"time"

	"TrendPulse/internal/domain/models"
)

// NYSE defaults: UTC-6 exchange clock, 20:00 close.
const (
	DefaultTradeEndHour   = 20
	DefaultUTCOffsetHours = -6
)

// Calendar maps UTC timestamps onto exchange-local trading dates.
type Calendar struct {
	offset    time.Duration
	closeHour int
}

// NewCalendar creates a trading calendar. A close hour outside 1..23 falls
// back to the default; closeHour=0 would roll every timestamp to the next
// day. A zero offset is meaningful (UTC) and kept as given.
func NewCalendar(utcOffsetHours, closeHour int) Calendar {
	if closeHour <= 0 || closeHour > 23 {
		closeHour = DefaultTradeEndHour
	}
	return Calendar{
		offset:    time.Duration(utcOffsetHours) * time.Hour,
		closeHour: closeHour,
	}
}

// TradingDayOf applies the exchange offset and the rollover rule: a local
// time at or after the close hour already belongs to the next trading date.
func (c Calendar) TradingDayOf(ts time.Time) time.Time {
	local := ts.UTC().Add(c.offset)
	if local.Hour() >= c.closeHour {
		local = local.AddDate(0, 0, 1)
	}
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// GroupByTradingDay groups merged observations by trading date, preserving
// arrival order within a day. Days come out in first-seen order, not
// re-sorted afterwards.
func (c Calendar) GroupByTradingDay(obs []models.MergedObservation) []models.TradingDay {
	var days []models.TradingDay
	index := make(map[int64]int)

	for _, o := range obs {
		day := c.TradingDayOf(o.Timestamp)
		key := day.Unix()
		i, ok := index[key]
		if !ok {
			i = len(days)
			index[key] = i
			days = append(days, models.TradingDay{Date: day})
		}
		days[i].Observations = append(days[i].Observations, o)
	}
	return days
}

func unixUTC(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}
