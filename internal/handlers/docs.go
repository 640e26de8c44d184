package handlers

import (
	"encoding/json"
	"net/http"
)

// OpenAPISpec returns the OpenAPI 3.0 specification for the Weather Trends Dashboard API
func OpenAPISpec(w http.ResponseWriter, r *http.Request) {
	recordSchema := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"year":        map[string]interface{}{"type": "integer", "nullable": true},
			"month":       map[string]interface{}{"type": "integer", "nullable": true},
			"region":      map[string]string{"type": "string"},
			"temperature": map[string]interface{}{"type": "number", "nullable": true},
			"rainfall":    map[string]interface{}{"type": "number", "nullable": true},
			"humidity":    map[string]interface{}{"type": "number", "nullable": true},
			"extra": map[string]interface{}{
				"type":                 "object",
				"additionalProperties": map[string]string{"type": "string"},
			},
		},
	}

	summarySchema := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"temperature": map[string]interface{}{"type": "number", "nullable": true},
			"rainfall":    map[string]interface{}{"type": "number", "nullable": true},
			"humidity":    map[string]interface{}{"type": "number", "nullable": true},
		},
	}

	spec := map[string]interface{}{
		"openapi": "3.0.0",
		"info": map[string]interface{}{
			"title":       "Weather Trends Dashboard API",
			"description": "Interactive weather dashboard backend: dataset loading with encoding detection, year/region filtering, summary statistics, chart series, and rule-based insights",
			"version":     "1.0.0",
			"contact": map[string]string{
				"name": "Weather Dashboard Team",
			},
		},
		"servers": []map[string]string{
			{"url": "http://localhost:8080", "description": "Local development server"},
		},
		"paths": map[string]interface{}{
			"/api/dashboard": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Build a dashboard view",
					"description": "Filter the dataset by year and region, then return the matching records, metric means, chart series, and insight findings",
					"parameters": []map[string]interface{}{
						{
							"name":        "year",
							"in":          "query",
							"description": "Year to filter by; must be one of the years in the dataset",
							"required":    true,
							"schema":      map[string]string{"type": "integer"},
						},
						{
							"name":        "region",
							"in":          "query",
							"description": "Region to filter by, or the \"All\" sentinel (default: All)",
							"required":    false,
							"schema":      map[string]interface{}{"type": "string", "default": "All"},
						},
						{
							"name":        "metrics",
							"in":          "query",
							"description": "Comma-separated metric names (default: Temperature)",
							"required":    false,
							"schema":      map[string]interface{}{"type": "string", "default": "Temperature"},
						},
						{
							"name":        "chart",
							"in":          "query",
							"description": "Chart type: Line, Bar, Area, Scatter, Pie, or Heatmap (default: Line)",
							"required":    false,
							"schema":      map[string]interface{}{"type": "string", "default": "Line"},
						},
					},
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Dashboard view for the selection; an empty match is a valid result",
							"content": map[string]interface{}{
								"application/json": map[string]interface{}{
									"schema": map[string]interface{}{
										"type": "object",
										"properties": map[string]interface{}{
											"records": map[string]interface{}{
												"type":  "array",
												"items": recordSchema,
											},
											"summary": summarySchema,
											"series": map[string]interface{}{
												"type": "array",
												"items": map[string]interface{}{
													"type": "object",
													"properties": map[string]interface{}{
														"metric": map[string]string{"type": "string"},
														"points": map[string]interface{}{"type": "array", "items": map[string]string{"type": "object"}},
														"groups": map[string]interface{}{"type": "array", "items": map[string]string{"type": "object"}},
													},
												},
											},
											"correlations": map[string]interface{}{
												"type":     "object",
												"nullable": true,
												"properties": map[string]interface{}{
													"metrics": map[string]interface{}{"type": "array", "items": map[string]string{"type": "string"}},
													"cells": map[string]interface{}{
														"type": "array",
														"items": map[string]interface{}{
															"type":  "array",
															"items": map[string]interface{}{"type": "number", "nullable": true},
														},
													},
												},
											},
											"findings": map[string]interface{}{
												"type": "array",
												"items": map[string]interface{}{
													"type": "object",
													"properties": map[string]interface{}{
														"metric":  map[string]string{"type": "string"},
														"message": map[string]string{"type": "string"},
													},
												},
											},
										},
									},
								},
							},
						},
						"400": map[string]interface{}{
							"description": "Invalid selection: unknown year, region, metric, or chart type",
						},
					},
				},
			},
			"/api/dataset": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Get the complete dataset",
					"description": "The full normalized dataset, including extra source columns",
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Successful response",
							"content": map[string]interface{}{
								"application/json": map[string]interface{}{
									"schema": map[string]interface{}{
										"type": "object",
										"properties": map[string]interface{}{
											"records": map[string]interface{}{
												"type":  "array",
												"items": recordSchema,
											},
											"extra_columns": map[string]interface{}{
												"type":  "array",
												"items": map[string]string{"type": "string"},
											},
										},
									},
								},
							},
						},
					},
				},
			},
			"/api/options": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Get selection options",
					"description": "Distinct years, regions (leading with All), metrics, and chart types valid for /api/dashboard",
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Successful response",
							"content": map[string]interface{}{
								"application/json": map[string]interface{}{
									"schema": map[string]interface{}{
										"type": "object",
										"properties": map[string]interface{}{
											"years":       map[string]interface{}{"type": "array", "items": map[string]string{"type": "integer"}},
											"regions":     map[string]interface{}{"type": "array", "items": map[string]string{"type": "string"}},
											"metrics":     map[string]interface{}{"type": "array", "items": map[string]string{"type": "string"}},
											"chart_types": map[string]interface{}{"type": "array", "items": map[string]string{"type": "string"}},
										},
									},
								},
							},
						},
					},
				},
			},
			"/health": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Health check",
					"description": "Check if the API is running and how many records are loaded",
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "API is healthy",
							"content": map[string]interface{}{
								"application/json": map[string]interface{}{
									"schema": map[string]interface{}{
										"type": "object",
										"properties": map[string]interface{}{
											"status":          map[string]string{"type": "string"},
											"dataset_records": map[string]string{"type": "integer"},
										},
									},
								},
							},
						},
					},
				},
			},
			"/metrics": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Prometheus metrics",
					"description": "Prometheus metrics endpoint for monitoring",
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Prometheus metrics in text format",
							"content": map[string]interface{}{
								"text/plain": map[string]interface{}{
									"schema": map[string]string{"type": "string"},
								},
							},
						},
					},
				},
			},
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(spec)
}
