package analysis

import (
	"sort"

	"LogonTriage/core"
)

// DefaultTopN is the number of entries shown per ranked table
const DefaultTopN = 10

// Entry is one row of a ranked table
type Entry struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Counter counts string values and remembers the order they were first seen
type Counter struct {
	counts map[string]int
	order  []string
}

// NewCounter creates an empty counter
func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int)}
}

// Add increments the count for value
func (c *Counter) Add(value string) {
	if _, ok := c.counts[value]; !ok {
		c.order = append(c.order, value)
	}
	c.counts[value]++
}

// Get returns the count for value
func (c *Counter) Get(value string) int {
	return c.counts[value]
}

// Len returns the number of distinct values
func (c *Counter) Len() int {
	return len(c.order)
}

// Ranked returns up to n entries by descending count. Equal counts keep
// first-seen order. n <= 0 returns every entry.
func (c *Counter) Ranked(n int) []Entry {
	entries := make([]Entry, 0, len(c.order))
	for _, v := range c.order {
		entries = append(entries, Entry{Value: v, Count: c.counts[v]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// Summary holds the per-classification totals and frequency tables for one run.
// It is built once by Summarize and only read afterwards.
type Summary struct {
	FailedTotal  int
	SuccessTotal int

	FailedByIP       *Counter
	FailedByAccount  *Counter
	SuccessByIP      *Counter
	SuccessByAccount *Counter

	TopN int
}

// Summarize partitions events into failed and successful logons and counts
// source addresses and accounts within each partition. Missing values are
// counted under core.Unknown.
func Summarize(events []*core.Event, topN int) *Summary {
	if topN <= 0 {
		topN = DefaultTopN
	}

	s := &Summary{
		FailedByIP:       NewCounter(),
		FailedByAccount:  NewCounter(),
		SuccessByIP:      NewCounter(),
		SuccessByAccount: NewCounter(),
		TopN:             topN,
	}

	for _, ev := range events {
		switch {
		case ev.IsFailure():
			s.FailedTotal++
			s.FailedByIP.Add(ev.AddressOrUnknown())
			s.FailedByAccount.Add(ev.AccountOrUnknown())
		case ev.IsSuccess():
			s.SuccessTotal++
			s.SuccessByIP.Add(ev.AddressOrUnknown())
			s.SuccessByAccount.Add(ev.AccountOrUnknown())
		}
	}

	return s
}

// TopFailedIPs returns the ranked source addresses of failed logons
func (s *Summary) TopFailedIPs() []Entry { return s.FailedByIP.Ranked(s.TopN) }

// TopFailedAccounts returns the ranked targeted accounts of failed logons
func (s *Summary) TopFailedAccounts() []Entry { return s.FailedByAccount.Ranked(s.TopN) }

// TopSuccessAccounts returns the ranked accounts of successful logons
func (s *Summary) TopSuccessAccounts() []Entry { return s.SuccessByAccount.Ranked(s.TopN) }

// TopSuccessIPs returns the ranked source addresses of successful logons
func (s *Summary) TopSuccessIPs() []Entry { return s.SuccessByIP.Ranked(s.TopN) }
