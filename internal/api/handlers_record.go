package api

import (
	"context"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/ryabov/momentum/internal/service"
	"github.com/ryabov/momentum/pkg/httputil"
)

const dateLayout = "2006-01-02"

type ProgressRequest struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Type string `json:"type,omitempty"`
}

type RecordRequest struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Target    int    `json:"target"`
	Unit      string `json:"unit"`
	Increment int    `json:"increment"`
	Done      int    `json:"done"`
	Color     string `json:"color"`
	Icon      string `json:"icon"`
	Date      string `json:"date"`
}

func (s *Server) GetRecords(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get records error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "Not authenticated.", nil)
		return
	}
	// Malformed or absent date falls back to today.
	date := time.Now().Truncate(24 * time.Hour)
	if queryDate := r.URL.Query().Get("date"); queryDate != "" {
		parsed, err := time.Parse(dateLayout, queryDate)
		if err == nil {
			date = parsed
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	daily, err := s.recordsService.GetDaily(ctx, uid, date)
	if err != nil {
		respondServiceError(w, logger, err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, daily)
	logger.Info("daily records provided")
}

func (s *Server) ApplyProgress(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("apply progress error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "Not authenticated.", nil)
		return
	}
	var req ProgressRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("apply progress error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body.", nil)
		return
	}
	actionID, err := uuid.Parse(req.ID)
	if err != nil {
		logger.Error("apply progress error: invalid action id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "Invalid action id.", nil)
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		logger.Error("apply progress error: invalid date")
		httputil.WriteErrorResponse(w, http.StatusUnprocessableEntity, "Invalid input.",
			service.FieldErrors{{Field: "date", Message: "Must be a yyyy-MM-dd date."}})
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	record, err := s.recordsService.ApplyProgress(ctx, uid, actionID, date, req.Type)
	if err != nil {
		respondServiceError(w, logger, err)
		return
	}
	httputil.WriteEnvelopeResponse(w, http.StatusOK, "Action record updated.", record)
	logger.Info("progress applied")
}

func (s *Server) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("update record error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "Not authenticated.", nil)
		return
	}
	var req RecordRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("update record error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body.", nil)
		return
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		logger.Error("update record error: invalid record id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "Invalid action record id.", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	record, err := s.recordsService.UpdateRecord(ctx, uid, id, &service.RecordPayload{
		Name:      req.Name,
		Type:      req.Type,
		Target:    req.Target,
		Unit:      req.Unit,
		Increment: req.Increment,
		Done:      req.Done,
		Color:     req.Color,
		Icon:      req.Icon,
		Date:      req.Date,
	})
	if err != nil {
		respondServiceError(w, logger, err)
		return
	}
	httputil.WriteEnvelopeResponse(w, http.StatusOK, "Action record updated.", record)
	logger.Info("record updated")
}

func (s *Server) DeleteRecords(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("delete records error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "Not authenticated.", nil)
		return
	}
	var req DeleteRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil || req.IDs == nil {
		logger.Error("delete records error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body.", nil)
		return
	}
	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			logger.Error("delete records error: invalid record id")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "Invalid action record id.", nil)
			return
		}
		ids = append(ids, id)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	count, err := s.recordsService.Delete(ctx, uid, ids)
	if err != nil {
		respondServiceError(w, logger, err)
		return
	}
	httputil.WriteEnvelopeResponse(w, http.StatusOK, "Action records deleted.", ChangedRowsResponse{ChangedRows: count})
	logger.Info("records deleted")
}
