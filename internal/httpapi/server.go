// Package httpapi exposes the management API over chi, translating service
// errors to JSON error payloads and instrumenting every route for Prometheus.
package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"swapman/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	CurrentConfig() types.ConfigResponse
	AddOrUpdate(spec types.ModelSpec) (types.LaunchEntry, error)
	Remove(name string) error
	ReplaceAll(models map[string]types.LaunchEntry) error
	ExportBackup() ([]byte, string, error)

	Models(ctx context.Context) types.ModelsResponse
	StartDownload(url, filename string) (types.DownloadAccepted, error)
	SaveUpload(filename string, declaredSize int64, r io.Reader) (types.UploadResponse, error)

	Status(ctx context.Context) types.SystemStatus
	RunTest(ctx context.Context) (types.TestResponse, error)

	Settings() types.SettingsPayload
	UpdateSettings(p types.SettingsPayload) error

	Logs() []string
	ClearLogs()
	ExportLogs() (content, filename string)
}

type server struct {
	svc Service
}

// NewMux builds the full route tree around the given service.
func NewMux(svc Service) http.Handler {
	s := &server{svc: svc}

	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}
	r.Use(MetricsMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Route("/config", func(r chi.Router) {
			r.Get("/current", s.handleCurrentConfig)
			r.Post("/models", s.handleAddModel)
			r.Delete("/models/{name}", s.handleRemoveModel)
			r.Post("/apply", s.handleApplyConfig)
			r.Get("/backup", s.handleBackupConfig)
		})

		r.Route("/models", func(r chi.Router) {
			r.Get("/", s.handleModels)
			r.Post("/download", s.handleDownload)
			r.Post("/upload", s.handleUpload)
		})

		r.Route("/system", func(r chi.Router) {
			r.Get("/status", s.handleSystemStatus)
			r.Post("/test", s.handleSystemTest)
			r.Get("/commands/{type}", s.handleSystemCommands)
		})

		r.Get("/settings", s.handleGetSettings)
		r.Post("/settings", s.handleUpdateSettings)

		r.Get("/logs", s.handleLogs)
		r.Delete("/logs", s.handleClearLogs)
		r.Get("/logs/download", s.handleDownloadLogs)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// writeJSON encodes v as the response body with a 200 status.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
	}
}

// decodeJSON enforces the content type and body ceiling before decoding into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// handleHealth godoc
// @Summary Liveness probe
// @Produce json
// @Success 200 {object} types.HealthResponse
// @Router /api/health [get]
func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, types.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// handleCurrentConfig godoc
// @Summary Current swap configuration
// @Produce json
// @Success 200 {object} types.ConfigResponse
// @Router /api/config/current [get]
func (s *server) handleCurrentConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.svc.CurrentConfig())
}

// handleAddModel godoc
// @Summary Add or update a model configuration
// @Accept json
// @Produce json
// @Param model body types.ModelSpec true "Model parameters"
// @Success 200 {object} types.AddModelResponse
// @Failure 400 {object} types.ErrorResponse
// @Router /api/config/models [post]
func (s *server) handleAddModel(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	spec := types.DefaultModelSpec()
	if !decodeJSON(w, r, &spec) {
		return
	}
	entry, err := s.svc.AddOrUpdate(spec)
	if err != nil {
		writeServiceError(w, err)
		logRequestEnd(r, statusForError(err), start, err)
		return
	}
	writeJSON(w, types.AddModelResponse{
		Message: "Model '" + spec.Name + "' added successfully",
		Config:  entry,
	})
	logRequestEnd(r, http.StatusOK, start, nil)
}

// handleRemoveModel godoc
// @Summary Remove a model configuration
// @Produce json
// @Param name path string true "Model name"
// @Success 200 {object} types.MessageResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/config/models/{name} [delete]
func (s *server) handleRemoveModel(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	name := chi.URLParam(r, "name")
	if err := s.svc.Remove(name); err != nil {
		writeServiceError(w, err)
		logRequestEnd(r, statusForError(err), start, err)
		return
	}
	writeJSON(w, types.MessageResponse{Message: "Model '" + name + "' removed successfully"})
	logRequestEnd(r, http.StatusOK, start, nil)
}

// handleApplyConfig godoc
// @Summary Replace the whole models mapping
// @Accept json
// @Produce json
// @Param config body types.ApplyRequest true "Full models mapping"
// @Success 200 {object} types.MessageResponse
// @Router /api/config/apply [post]
func (s *server) handleApplyConfig(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req types.ApplyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.svc.ReplaceAll(req.Models); err != nil {
		writeServiceError(w, err)
		logRequestEnd(r, statusForError(err), start, err)
		return
	}
	writeJSON(w, types.MessageResponse{Message: "Configuration applied successfully"})
	logRequestEnd(r, http.StatusOK, start, nil)
}

// handleBackupConfig godoc
// @Summary Download the live config file
// @Produce application/x-yaml
// @Success 200 {file} file
// @Failure 404 {object} types.ErrorResponse
// @Router /api/config/backup [get]
func (s *server) handleBackupConfig(w http.ResponseWriter, r *http.Request) {
	data, name, err := s.svc.ExportBackup()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/x-yaml")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Write(data)
}

// handleModels godoc
// @Summary Aggregate model views
// @Produce json
// @Success 200 {object} types.ModelsResponse
// @Router /api/models [get]
func (s *server) handleModels(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := joinContexts(serverBaseCtx, r.Context())
	defer cancel()
	writeJSON(w, s.svc.Models(ctx))
}

// handleDownload godoc
// @Summary Start a background model download
// @Accept json
// @Produce json
// @Param request body types.DownloadRequest true "Download source"
// @Success 202 {object} types.DownloadAccepted
// @Failure 409 {object} types.ErrorResponse
// @Router /api/models/download [post]
func (s *server) handleDownload(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req types.DownloadRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	out, err := s.svc.StartDownload(req.URL, req.Filename)
	if err != nil {
		writeServiceError(w, err)
		logRequestEnd(r, statusForError(err), start, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(out)
	logRequestEnd(r, http.StatusAccepted, start, nil)
}

// handleUpload godoc
// @Summary Upload a model file
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Model file (.gguf)"
// @Success 200 {object} types.UploadResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 409 {object} types.ErrorResponse
// @Failure 413 {object} types.ErrorResponse
// @Router /api/models/upload [post]
func (s *server) handleUpload(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	out, err := s.svc.SaveUpload(header.Filename, header.Size, file)
	if err != nil {
		writeServiceError(w, err)
		logRequestEnd(r, statusForError(err), start, err)
		return
	}
	writeJSON(w, out)
	logRequestEnd(r, http.StatusOK, start, nil)
}

// handleSystemStatus godoc
// @Summary Swap service status and request stats
// @Produce json
// @Success 200 {object} types.SystemStatus
// @Router /api/system/status [get]
func (s *server) handleSystemStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := joinContexts(serverBaseCtx, r.Context())
	defer cancel()
	writeJSON(w, s.svc.Status(ctx))
}

// handleSystemTest godoc
// @Summary Run a test completion against the active model
// @Produce json
// @Success 200 {object} types.TestResponse
// @Failure 404 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/system/test [post]
func (s *server) handleSystemTest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, cancel := joinContexts(serverBaseCtx, r.Context())
	defer cancel()
	out, err := s.svc.RunTest(ctx)
	if err != nil {
		// Client disconnect or shutdown: nothing useful to write.
		if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
			return
		}
		writeServiceError(w, err)
		logRequestEnd(r, statusForError(err), start, err)
		return
	}
	writeJSON(w, out)
	logRequestEnd(r, http.StatusOK, start, nil)
}

// handleSystemCommands godoc
// @Summary Operator command reference
// @Produce json
// @Param type path string true "Command set" Enums(logs, restart, cache)
// @Success 200 {object} types.CommandsResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/system/commands/{type} [get]
func (s *server) handleSystemCommands(w http.ResponseWriter, r *http.Request) {
	text, ok := lookupCommands(chi.URLParam(r, "type"))
	if !ok {
		writeJSONError(w, http.StatusNotFound, "Command type not found")
		return
	}
	writeJSON(w, types.CommandsResponse{Commands: text})
}

// handleGetSettings godoc
// @Summary Current runtime settings
// @Produce json
// @Success 200 {object} types.SettingsPayload
// @Router /api/settings [get]
func (s *server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.svc.Settings())
}

// handleUpdateSettings godoc
// @Summary Update runtime settings (process lifetime)
// @Accept json
// @Produce json
// @Param settings body types.SettingsPayload true "New settings"
// @Success 200 {object} types.MessageResponse
// @Failure 400 {object} types.ErrorResponse
// @Router /api/settings [post]
func (s *server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var p types.SettingsPayload
	if !decodeJSON(w, r, &p) {
		return
	}
	if err := s.svc.UpdateSettings(p); err != nil {
		writeServiceError(w, err)
		logRequestEnd(r, statusForError(err), start, err)
		return
	}
	writeJSON(w, types.MessageResponse{Message: "Settings updated successfully"})
	logRequestEnd(r, http.StatusOK, start, nil)
}

// handleLogs godoc
// @Summary Activity log entries, oldest first
// @Produce json
// @Success 200 {object} types.LogsResponse
// @Router /api/logs [get]
func (s *server) handleLogs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, types.LogsResponse{Logs: s.svc.Logs()})
}

// handleClearLogs godoc
// @Summary Clear the activity log
// @Produce json
// @Success 200 {object} types.MessageResponse
// @Router /api/logs [delete]
func (s *server) handleClearLogs(w http.ResponseWriter, r *http.Request) {
	s.svc.ClearLogs()
	writeJSON(w, types.MessageResponse{Message: "Logs cleared successfully"})
}

// handleDownloadLogs godoc
// @Summary Download the activity log as a text file
// @Produce text/plain
// @Success 200 {file} file
// @Router /api/logs/download [get]
func (s *server) handleDownloadLogs(w http.ResponseWriter, r *http.Request) {
	content, name := s.svc.ExportLogs()
	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Write([]byte(content))
}
