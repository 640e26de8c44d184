package dataset

import (
	"strings"

	"weather-dashboard/internal/loader"
	"weather-dashboard/internal/models"
)

// columnAliases maps lowercased source header names to the canonical schema.
var columnAliases = map[string]string{
	"year":        models.ColumnYear,
	"month":       models.ColumnMonth,
	"region":      models.ColumnRegion,
	"temperature": models.ColumnTemperature,
	"rainfall":    models.ColumnRainfall,
	"humidity":    models.ColumnHumidity,
}

// columnCoercion binds a canonical column to the function that writes its
// coerced value into a record. Malformed cells degrade to nil inside the
// coercion, never an error.
type columnCoercion struct {
	column string
	apply  func(rec *models.Record, cell string)
}

var coercions = []columnCoercion{
	{models.ColumnYear, func(rec *models.Record, cell string) {
		rec.Year = models.NullableInt(cell)
	}},
	{models.ColumnMonth, func(rec *models.Record, cell string) {
		rec.Month = models.NullableInt(cell)
	}},
	{models.ColumnRegion, func(rec *models.Record, cell string) {
		if r := strings.TrimSpace(cell); r != "" {
			rec.Region = r
		}
	}},
	{models.ColumnTemperature, func(rec *models.Record, cell string) {
		rec.Temperature = models.NullableFloat(cell)
	}},
	{models.ColumnRainfall, func(rec *models.Record, cell string) {
		rec.Rainfall = models.NullableFloat(cell)
	}},
	{models.ColumnHumidity, func(rec *models.Record, cell string) {
		rec.Humidity = models.NullableFloat(cell)
	}},
}

// NormalizeHeader strips byte-order-mark artifacts and surrounding
// whitespace, then resolves known aliases to their canonical name.
// Unrecognized headers pass through cleaned but otherwise unchanged.
func NormalizeHeader(h string) string {
	h = strings.TrimSpace(strings.ReplaceAll(h, "\ufeff", ""))
	if canonical, ok := columnAliases[strings.ToLower(h)]; ok {
		return canonical
	}
	return h
}

// Normalize converts a raw table into a Dataset against the canonical
// schema. It never fails: the dashboard must render partial data, so every
// malformed cell resolves to null and a missing Region resolves to the
// UnknownRegion placeholder.
func Normalize(raw *loader.RawTable) *models.Dataset {
	headers := make([]string, len(raw.Headers))
	for i, h := range raw.Headers {
		headers[i] = NormalizeHeader(h)
	}

	// First occurrence wins for canonical columns; everything else is
	// retained as an extra column for the full-dataset view.
	canonicalIdx := make(map[string]int)
	var extraNames []string
	var extraIdx []int
	for i, h := range headers {
		if _, known := columnAliases[strings.ToLower(h)]; known {
			if _, seen := canonicalIdx[h]; !seen {
				canonicalIdx[h] = i
				continue
			}
		}
		extraNames = append(extraNames, h)
		extraIdx = append(extraIdx, i)
	}

	ds := &models.Dataset{ExtraColumns: extraNames}
	for _, row := range raw.Rows {
		rec := models.Record{Region: models.UnknownRegion}

		for _, c := range coercions {
			i, ok := canonicalIdx[c.column]
			if !ok || i >= len(row) {
				continue
			}
			c.apply(&rec, row[i])
		}

		if len(extraNames) > 0 {
			rec.Extra = make(map[string]string, len(extraNames))
			for k, i := range extraIdx {
				if i < len(row) {
					rec.Extra[extraNames[k]] = row[i]
				}
			}
		}

		ds.Records = append(ds.Records, rec)
	}

	return ds
}
