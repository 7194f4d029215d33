package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// WeekKey is the ISO week of t in loc, e.g. "2025-W07".
func WeekKey(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// Weeks lists the distinct week keys of the orders, newest first.
func Weeks(orders []*Order, loc *time.Location) []string {
	seen := make(map[string]bool)
	var weeks []string
	for _, o := range orders {
		if o.CreatedAt.IsZero() {
			continue
		}
		key := WeekKey(o.CreatedAt, loc)
		if !seen[key] {
			seen[key] = true
			weeks = append(weeks, key)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(weeks)))
	return weeks
}

type OptionCount struct {
	Option string `json:"option"`
	Count  int    `json:"count"`
}

type SlotCount struct {
	Slot  string `json:"slot"`
	Count int    `json:"count"`
}

// WeeklyAnalytics is the admin dashboard summary for one event week.
type WeeklyAnalytics struct {
	Week            string        `json:"week"`
	TotalOrders     int           `json:"totalOrders"`
	CompletedOrders int           `json:"completedOrders"`
	AvgWaitMinutes  float64       `json:"avgWaitMinutes"`
	OptionCounts    []OptionCount `json:"optionCounts"`
	QuarterHours    []SlotCount   `json:"quarterHours"`
}

// Analyze summarizes the orders created in week. Average wait only counts
// completed orders.
func Analyze(orders []*Order, week string, loc *time.Location) WeeklyAnalytics {
	res := WeeklyAnalytics{Week: week, OptionCounts: []OptionCount{}, QuarterHours: []SlotCount{}}
	options := make(map[string]int)
	var optionOrder []string
	slots := make(map[string]int)
	var totalWait time.Duration

	for _, o := range orders {
		if o.CreatedAt.IsZero() || WeekKey(o.CreatedAt, loc) != week {
			continue
		}
		res.TotalOrders++

		if wait, ok := o.Wait(); ok {
			res.CompletedOrders++
			totalWait += wait
		}

		for _, opt := range o.SelectedOptions {
			if _, ok := options[opt]; !ok {
				optionOrder = append(optionOrder, opt)
			}
			options[opt]++
		}

		slots[QuarterHourSlot(o.CreatedAt, loc)]++
	}

	if res.CompletedOrders > 0 {
		res.AvgWaitMinutes = totalWait.Minutes() / float64(res.CompletedOrders)
	}
	for _, opt := range optionOrder {
		res.OptionCounts = append(res.OptionCounts, OptionCount{Option: opt, Count: options[opt]})
	}
	keys := make([]string, 0, len(slots))
	for k := range slots {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		res.QuarterHours = append(res.QuarterHours, SlotCount{Slot: k, Count: slots[k]})
	}
	return res
}

// QuarterHourSlot floors t to the quarter hour, formatted "22:15".
func QuarterHourSlot(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()/15*15)
}

// PancakesPerOrder is what the leaderboard credits for each completed order.
const PancakesPerOrder = 2

type LeaderboardEntry struct {
	Name     string `json:"name"`
	Pancakes int    `json:"pancakes"`
}

// Leaderboard ranks guests by pancakes from completed orders.
func Leaderboard(orders []*Order) []LeaderboardEntry {
	totals := make(map[string]int)
	for _, o := range orders {
		if o.Status != StatusCompleted {
			continue
		}
		name := strings.TrimSpace(o.Name)
		if name == "" {
			name = "Unknown"
		}
		totals[name] += PancakesPerOrder
	}

	entries := make([]LeaderboardEntry, 0, len(totals))
	for name, n := range totals {
		entries = append(entries, LeaderboardEntry{Name: name, Pancakes: n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Pancakes != entries[j].Pancakes {
			return entries[i].Pancakes > entries[j].Pancakes
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}
