package http

import (
	"net/http"
	"time"

	"cdn-insights/internal/shared/svcerrors"
)

const codeRouteNotFound = "HTTP_4040"

// ConnectivityResponse is the body of GET /api/test.
type ConnectivityResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Success   bool   `json:"success"`
}

type connectivityHandler struct {
	now func() time.Time
}

func NewConnectivityHandler() AppHttpHandler {
	return &connectivityHandler{now: time.Now}
}

// Handle processes GET /api/test so that clients can check connectivity.
func (h *connectivityHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	_ = writeJSON(w, http.StatusOK, ConnectivityResponse{
		Message:   "Hello from cdn-insights!",
		Timestamp: h.now().UTC().Format("2006-01-02T15:04:05.000Z"),
		Success:   true,
	})
	return nil
}

type notFoundHandler struct{}

func (notFoundHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	return svcerrors.NewNotFoundError(codeRouteNotFound, "route not found: "+r.URL.Path, nil)
}
