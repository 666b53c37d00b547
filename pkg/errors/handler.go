package errors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrorResponse is the uniform error envelope sent to clients.
type ErrorResponse struct {
	Status  string           `json:"status"`
	Message string           `json:"message"`
	Errors  []FieldViolation `json:"errors,omitempty"`
	Stack   string           `json:"stack,omitempty"`
}

// Handler is the single terminal error handler: every fault produced anywhere
// in the pipeline is forwarded here, and this is the only place that shapes an
// error HTTP response.
type Handler struct {
	logger *zap.Logger
	debug  bool
}

// NewHandler creates a terminal error handler. When debug is true the response
// body includes the captured stack trace; in production it never does.
func NewHandler(logger *zap.Logger, debug bool) *Handler {
	return &Handler{logger: logger, debug: debug}
}

// Handle logs the error and writes the error envelope. Exactly one response is
// written per fault; callers must not touch the ResponseWriter afterwards.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	appErr := GetAppError(err)
	if appErr == nil {
		appErr = NewInternal("An internal error occurred").WithCause(err)
	}

	fields := []zap.Field{
		zap.Int("status", appErr.StatusCode),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("remoteAddr", r.RemoteAddr),
	}
	if appErr.Cause != nil {
		fields = append(fields, zap.NamedError("cause", appErr.Cause))
	}

	if appErr.StatusCode >= 500 {
		h.logger.Error(appErr.Message, fields...)
		if h.debug && appErr.StackTrace != "" {
			h.logger.Error("stack trace", zap.String("stack", appErr.StackTrace))
		}
	} else {
		h.logger.Warn(appErr.Message, fields...)
	}

	response := ErrorResponse{
		Status:  appErr.Status(),
		Message: appErr.Message,
		Errors:  appErr.Violations,
	}
	if h.debug {
		response.Stack = appErr.StackTrace
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)
	if encodeErr := json.NewEncoder(w).Encode(response); encodeErr != nil {
		h.logger.Error("Failed to encode error response", zap.Error(encodeErr))
	}
}

// NotFound handles unmatched routes, carrying the original request path in the
// message.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.Handle(w, r, NewNotFound("Not Found - "+r.URL.Path))
}

// MethodNotAllowed handles matched paths with an unsupported method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.Handle(w, r, newAppError("Method not allowed - "+r.Method+" "+r.URL.Path, http.StatusMethodNotAllowed))
}
