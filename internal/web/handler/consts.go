package handler

const (
	// RootPath is the root path of a route group.
	RootPath = "/"

	// APIPrefix is the base path for all JSON endpoints.
	APIPrefix = "/api/v1"

	// ErrNilACDFatalLogMsg is used if app or cfg or db var pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or db is nil"
)
