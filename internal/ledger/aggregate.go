package ledger

import "sort"

// CategoryStat is derived from the record set and has no identity of its
// own; it is recomputed whenever ledger state changes.
type CategoryStat struct {
	Category   string  `json:"category"`
	Total      float64 `json:"total"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// GrandTotal sums the amounts of all records. Zero for empty input.
func GrandTotal(records []Record) float64 {
	var total float64
	for _, r := range records {
		total += r.Amount
	}
	return total
}

// CategoryStats groups records by category and computes total, count and
// share of the grand total per group. The result is sorted by total
// descending, ties broken by category name ascending so output is
// deterministic. When the grand total is not positive there is nothing to
// attribute percentages to and the result is empty.
func CategoryStats(records []Record) []CategoryStat {
	grand := GrandTotal(records)
	if grand <= 0 {
		return []CategoryStat{}
	}

	byCategory := make(map[string]*CategoryStat)
	for _, r := range records {
		stat, ok := byCategory[r.Category]
		if !ok {
			stat = &CategoryStat{Category: r.Category}
			byCategory[r.Category] = stat
		}
		stat.Total += r.Amount
		stat.Count++
	}

	stats := make([]CategoryStat, 0, len(byCategory))
	for _, stat := range byCategory {
		stat.Percentage = stat.Total / grand * 100
		stats = append(stats, *stat)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Total != stats[j].Total {
			return stats[i].Total > stats[j].Total
		}
		return stats[i].Category < stats[j].Category
	})

	return stats
}

// DistinctCategories returns the category labels present in the record set,
// sorted ascending.
func DistinctCategories(records []Record) []string {
	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, r := range records {
		if _, ok := seen[r.Category]; ok {
			continue
		}
		seen[r.Category] = struct{}{}
		categories = append(categories, r.Category)
	}
	sort.Strings(categories)
	return categories
}

// FilterByCategory returns records unchanged when category is nil, otherwise
// only those whose category matches exactly. Matching is case-sensitive and
// untrimmed: labels are normalized at write time.
func FilterByCategory(records []Record, category *string) []Record {
	if category == nil {
		return records
	}
	filtered := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Category == *category {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
