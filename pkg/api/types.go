package api

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// SetRequest is the body of a field update
type SetRequest struct {
	Value    string `json:"value"`
	Selector string `json:"selector,omitempty"`
}

// AddRequest is the body of a transaction append
type AddRequest struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// FieldResponse is the payload returned for field reads and writes
type FieldResponse struct {
	RecordType string `json:"record_type"`
	Field      string `json:"field"`
	Value      string `json:"value"`
	Selector   string `json:"selector,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port   int
	Bind   string
	APIKey string // When empty the /api/v1 routes are unprotected
}

// FileEditor defines the file operations the API exposes
type FileEditor interface {
	Get(recordType, field, selector string) (string, error)
	Set(recordType, field, value, selector string) error
	Add(amount, currency string) error
}
