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

type ActionRequest struct {
	ID        string   `json:"id,omitempty"`
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Target    int      `json:"target"`
	Unit      string   `json:"unit"`
	Increment int      `json:"increment"`
	Color     string   `json:"color"`
	Icon      string   `json:"icon"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
	Weekdays  []string `json:"weekdays"`
}

func (req *ActionRequest) toPayload() *service.ActionPayload {
	return &service.ActionPayload{
		Name:      req.Name,
		Type:      req.Type,
		Target:    req.Target,
		Unit:      req.Unit,
		Increment: req.Increment,
		Color:     req.Color,
		Icon:      req.Icon,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Weekdays:  req.Weekdays,
	}
}

type DeleteRequest struct {
	IDs []string `json:"ids"`
}

type ChangedRowsResponse struct {
	ChangedRows int64 `json:"changedRows"`
}

func (s *Server) GetActions(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get actions error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "Not authenticated.", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	actions, err := s.actionsService.List(ctx, uid)
	if err != nil {
		respondServiceError(w, logger, err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, actions)
	logger.Info("actions provided")
}

func (s *Server) CreateAction(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("create action error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "Not authenticated.", nil)
		return
	}
	var req ActionRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("create action error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body.", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	action, err := s.actionsService.Create(ctx, uid, req.toPayload())
	if err != nil {
		respondServiceError(w, logger, err)
		return
	}
	httputil.WriteEnvelopeResponse(w, http.StatusCreated, "Action created.", action)
	logger.Info("action created")
}

func (s *Server) UpdateAction(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("update action error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "Not authenticated.", nil)
		return
	}
	var req ActionRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("update action error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body.", nil)
		return
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		logger.Error("update action error: invalid action id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "Invalid action id.", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	action, err := s.actionsService.Update(ctx, uid, id, req.toPayload())
	if err != nil {
		respondServiceError(w, logger, err)
		return
	}
	httputil.WriteEnvelopeResponse(w, http.StatusOK, "Action updated.", action)
	logger.Info("action updated")
}

func (s *Server) DeleteActions(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("delete actions error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "Not authenticated.", nil)
		return
	}
	var req DeleteRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil || req.IDs == nil {
		logger.Error("delete actions error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body.", nil)
		return
	}
	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			logger.Error("delete actions error: invalid action id")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "Invalid action id.", nil)
			return
		}
		ids = append(ids, id)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	count, err := s.actionsService.Delete(ctx, uid, ids)
	if err != nil {
		respondServiceError(w, logger, err)
		return
	}
	httputil.WriteEnvelopeResponse(w, http.StatusOK, "Actions deleted.", ChangedRowsResponse{ChangedRows: count})
	logger.Info("actions deleted")
}
