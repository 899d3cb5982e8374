package log

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldError         = "error"
	FieldOperation     = "operation"
	FieldTransactionID = "transaction_id"
	FieldAccount       = "account"
	FieldCategory      = "category"
	FieldAmount        = "amount"
	FieldSplits        = "splits"
	FieldRows          = "rows"
	FieldPath          = "path"
	FieldYear          = "year"
	FieldMonth         = "month"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentCLI      = "cli"
	ComponentStorage  = "storage"
	ComponentImporter = "importer"
	ComponentExporter = "exporter"
)

// Operations defines standard operation names
const (
	OpImport = "import"
	OpSplit  = "split"
	OpQuery  = "query"
	OpExport = "export"
	OpDelete = "delete"
)
