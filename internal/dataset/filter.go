package dataset

import (
	"sort"

	"weather-dashboard/internal/models"
)

// Filter returns the subset of records matching the (year, region)
// selection. Records with a null Year never match. The RegionAll sentinel
// disables the region predicate. An empty result is valid, not an error.
func Filter(ds *models.Dataset, year int, region string) *models.Dataset {
	out := &models.Dataset{ExtraColumns: ds.ExtraColumns}
	for _, rec := range ds.Records {
		if rec.Year == nil || *rec.Year != year {
			continue
		}
		if region != models.RegionAll && rec.Region != region {
			continue
		}
		out.Records = append(out.Records, rec)
	}
	return out
}

// Years returns the distinct non-null years present, sorted ascending.
// A selection year must come from this set.
func Years(ds *models.Dataset) []int {
	seen := make(map[int]bool)
	var years []int
	for _, rec := range ds.Records {
		if rec.Year != nil && !seen[*rec.Year] {
			seen[*rec.Year] = true
			years = append(years, *rec.Year)
		}
	}
	sort.Ints(years)
	return years
}

// Regions returns the distinct region values present, sorted ascending.
func Regions(ds *models.Dataset) []string {
	seen := make(map[string]bool)
	var regions []string
	for _, rec := range ds.Records {
		if !seen[rec.Region] {
			seen[rec.Region] = true
			regions = append(regions, rec.Region)
		}
	}
	sort.Strings(regions)
	return regions
}
