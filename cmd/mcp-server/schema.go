package main

import "github.com/google/jsonschema-go/jsonschema"

// getTransactionsInputSchema is the declared input of get_transactions.
// Every property is optional and no cross-field rules apply.
func getTransactionsInputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"start_date": {
				Type:        "string",
				Description: "Start date (YYYY-MM-DD)",
			},
			"end_date": {
				Type:        "string",
				Description: "End date (YYYY-MM-DD)",
			},
			"category_id": {
				Type:        "number",
				Description: "Filter by category ID",
			},
		},
	}
}
