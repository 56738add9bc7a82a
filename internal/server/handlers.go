package server

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/copperworks/labelcheck/internal/extraction"
	"github.com/copperworks/labelcheck/internal/model"
	"github.com/copperworks/labelcheck/internal/pipeline"
	"github.com/copperworks/labelcheck/internal/store"
)

// maxVerifyBody bounds the request body. Base64-encoded label images are
// large; 50 MB covers a dozen high-resolution scans.
const maxVerifyBody = 50 << 20

type verifyRequest struct {
	ApplicationID   string                `json:"application_id"`
	ApplicationName string                `json:"application_name"`
	Images          []verifyImage         `json:"images"`
	Expected        *model.ExpectedValues `json:"expected,omitempty"`
}

type verifyImage struct {
	Name string `json:"name"`
	// MediaType is an image MIME type such as image/jpeg.
	MediaType string `json:"media_type"`
	// Data is the base64-encoded image.
	Data string `json:"data"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxVerifyBody)

	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ApplicationID == "" {
		writeError(w, http.StatusBadRequest, "application_id is required")
		return
	}
	if len(req.Images) == 0 {
		writeError(w, http.StatusBadRequest, "at least one image is required")
		return
	}

	images := make([]extraction.LabelImage, 0, len(req.Images))
	for i, img := range req.Images {
		if !strings.HasPrefix(img.MediaType, "image/") {
			writeError(w, http.StatusBadRequest, "unsupported media type "+img.MediaType)
			return
		}
		data, err := base64.StdEncoding.DecodeString(img.Data)
		if err != nil {
			writeError(w, http.StatusBadRequest, "image data is not valid base64")
			return
		}
		images = append(images, extraction.LabelImage{
			Index:     i,
			Name:      img.Name,
			MediaType: img.MediaType,
			Data:      data,
		})
	}

	result, err := s.runner.Run(r.Context(), pipeline.Request{
		ApplicationID:   req.ApplicationID,
		ApplicationName: req.ApplicationName,
		Images:          images,
		Expected:        req.Expected,
	})
	if err != nil {
		zap.L().Error("server: verify failed",
			zap.String("application_id", req.ApplicationID),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "verification failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	filter := store.ReportFilter{
		Status:        model.OverallStatus(r.URL.Query().Get("status")),
		ApplicationID: r.URL.Query().Get("application_id"),
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		filter.Limit = n
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "offset must be a non-negative integer")
			return
		}
		filter.Offset = n
	}

	reports, err := s.store.ListReports(r.Context(), filter)
	if err != nil {
		zap.L().Error("server: list reports failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list reports")
		return
	}
	if reports == nil {
		reports = []model.Report{}
	}
	writeJSON(w, http.StatusOK, reports)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	report, err := s.store.GetReport(r.Context(), id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusNotFound, "report not found")
			return
		}
		zap.L().Error("server: get report failed", zap.String("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to get report")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleDeleteReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.store.DeleteReport(r.Context(), id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusNotFound, "report not found")
			return
		}
		zap.L().Error("server: delete report failed", zap.String("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to delete report")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("server: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
