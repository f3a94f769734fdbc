package email

// PreviewData contains sample template data for local preview/testing.
//
// It maps:
//
//	templateName -> (templateVariableName -> exampleValue)
//
// Example:
//
//	PreviewData["low_stock"]["Name"] == "Elastic bandage"
var PreviewData = map[Template]map[string]string{
	TemplateLowStock: {
		"Name":            "Elastic bandage",
		"Code":            "EB-10",
		"StockQuantity":   "3",
		"MinStockLevel":   "10",
		"StorageLocation": "Cabinet B2",
	},
}
