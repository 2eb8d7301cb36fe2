package types

// ConfigResponse wraps the current models mapping returned by GET /api/config/current.
type ConfigResponse struct {
	// Mapping of model name to its launch entry.
	Models map[string]LaunchEntry `json:"models"`
}

// ApplyRequest is the payload for POST /api/config/apply: a wholesale
// replacement of the models mapping with pre-built entries.
type ApplyRequest struct {
	Models map[string]LaunchEntry `json:"models"`
}

// AddModelResponse confirms an add/update and echoes the synthesized entry.
type AddModelResponse struct {
	// Human-readable confirmation.
	// example: Model 'llama3' added successfully
	Message string      `json:"message" example:"Model 'llama3' added successfully"`
	Config  LaunchEntry `json:"config"`
}

// ModelsResponse aggregates the three model views returned by GET /api/models.
type ModelsResponse struct {
	// Models currently loaded by the swap service (empty when unreachable).
	ActiveModels []ActiveModel `json:"active_models"`
	// Names present in the swap config document.
	ConfiguredModels []string `json:"configured_models"`
	// *.gguf files found in the local models directory.
	LocalFiles []string `json:"local_files"`
	// Absolute or relative path of the models directory being scanned.
	// example: ./models
	ModelsPath string `json:"models_path" example:"./models"`
}

// DownloadRequest asks the server to fetch a model file from a URL.
type DownloadRequest struct {
	// Source URL of the model file.
	// example: https://example.com/models/llama3.gguf
	URL string `json:"url" example:"https://example.com/models/llama3.gguf"`
	// Optional target filename; derived from the URL path when omitted.
	// example: llama3.gguf
	Filename string `json:"filename,omitempty" example:"llama3.gguf"`
}

// DownloadAccepted reports that a background download was started.
type DownloadAccepted struct {
	// example: Download started for llama3.gguf
	Message  string `json:"message" example:"Download started for llama3.gguf"`
	Filename string `json:"filename" example:"llama3.gguf"`
	// Target path the file will be written to.
	// example: models/llama3.gguf
	Path string `json:"path" example:"models/llama3.gguf"`
}

// UploadResponse confirms a completed model upload.
type UploadResponse struct {
	// example: Model llama3.gguf uploaded successfully
	Message  string `json:"message" example:"Model llama3.gguf uploaded successfully"`
	Filename string `json:"filename" example:"llama3.gguf"`
	// Bytes written.
	// example: 4368439296
	Size int64 `json:"size" example:"4368439296"`
}

// SystemStatus is returned by GET /api/system/status.
type SystemStatus struct {
	// "connected" or "disconnected" depending on the swap service probe.
	// example: connected
	ConnectionStatus string `json:"connection_status" example:"connected"`
	// Number of models the swap service reports as active.
	// example: 1
	ActiveModels int `json:"active_models" example:"1"`
	// Total test completions issued since startup.
	// example: 12
	TotalRequests int `json:"total_requests" example:"12"`
	// example: N/A
	MemoryUsage string `json:"memory_usage" example:"N/A"`
	// example: N/A
	GPUUsage string `json:"gpu_usage" example:"N/A"`
	// Rolling average of the last test completion times in milliseconds.
	// Omitted until at least one sample exists.
	// example: 230
	AvgResponseTime *int `json:"avg_response_time,omitempty" example:"230"`
}

// TestResponse reports the outcome of POST /api/system/test.
type TestResponse struct {
	// example: llama3
	Model string `json:"model" example:"llama3"`
	// Text the model replied with.
	// example: Test successful
	Response string `json:"response" example:"Test successful"`
	// Wall-clock elapsed time in milliseconds.
	// example: 230
	ResponseTime int `json:"response_time" example:"230"`
	// example: success
	Status string `json:"status" example:"success"`
}

// SettingsPayload is the GET/POST body for /api/settings. Updates apply for
// the process lifetime only; nothing is persisted to disk.
type SettingsPayload struct {
	// example: http://localhost:8090
	LlamaSwapURL string `json:"llama_swap_url" example:"http://localhost:8090"`
	// example: ./models
	ModelsPath string `json:"models_path" example:"./models"`
	// example: ./config.yaml
	ConfigFilePath string `json:"config_file_path" example:"./config.yaml"`
	// example: 30
	ConnectionTimeout int `json:"connection_timeout" example:"30"`
	// example: 30
	RefreshInterval int `json:"refresh_interval" example:"30"`
	// example: 1000
	MaxLogEntries    int  `json:"max_log_entries" example:"1000"`
	AutoDetectModels bool `json:"auto_detect_models" example:"true"`
	BackupOnChange   bool `json:"backup_on_change" example:"true"`
}

// LogsResponse wraps the activity log entries, oldest first.
type LogsResponse struct {
	Logs []string `json:"logs"`
}

// CommandsResponse carries operator command reference text.
type CommandsResponse struct {
	Commands string `json:"commands"`
}

// MessageResponse is a generic confirmation payload.
type MessageResponse struct {
	// example: Configuration applied successfully
	Message string `json:"message" example:"Configuration applied successfully"`
}

// HealthResponse is returned by GET /api/health.
type HealthResponse struct {
	// example: healthy
	Status string `json:"status" example:"healthy"`
	// RFC 3339 server time.
	Timestamp string `json:"timestamp"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: Model 'llama3' not found
	Error string `json:"error" example:"Model 'llama3' not found"`
	// HTTP status code.
	// example: 404
	Code int `json:"code" example:"404"`
}
