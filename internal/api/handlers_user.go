package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/ryabov/momentum/internal/service"
	"github.com/ryabov/momentum/pkg/httputil"
)

type SignupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangeInfoRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type ChangePasswordRequest struct {
	Password string `json:"password"`
}

type AuthResponse struct {
	UserID string `json:"userId"`
	Token  string `json:"token"`
}

func (s *Server) Signup(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req SignupRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("signup error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body.", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	user, err := s.userService.Signup(ctx, &service.SignupRequest{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondServiceError(w, logger, err)
		return
	}
	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		logger.Error("signup error: generating token error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "Error creating token.", nil)
		return
	}
	httputil.WriteEnvelopeResponse(w, http.StatusCreated, "User created.", AuthResponse{
		UserID: user.ID.String(),
		Token:  token,
	})
	logger.Info("successful signup")
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req LoginRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("login error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body.", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	user, err := s.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		respondServiceError(w, logger, err)
		return
	}
	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		logger.Error("login error: generating token error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "Error creating token.", nil)
		return
	}
	httputil.WriteEnvelopeResponse(w, http.StatusOK, "", AuthResponse{
		UserID: user.ID.String(),
		Token:  token,
	})
	logger.Info("successful login")
}

// TokenLogin echoes the identity the auth middleware already resolved,
// letting clients revalidate a stored token.
func (s *Server) TokenLogin(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("token login error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "Not authenticated.", nil)
		return
	}
	token, err := GetTokenFromContext(r)
	if err != nil {
		logger.Error("token login error: no raw token in context")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "Not authenticated.", nil)
		return
	}
	httputil.WriteEnvelopeResponse(w, http.StatusOK, "Token login successfully.", AuthResponse{
		UserID: uid.String(),
		Token:  token,
	})
	logger.Info("successful token login")
}

func (s *Server) ChangeInfo(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("change info error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "Not authenticated.", nil)
		return
	}
	var req ChangeInfoRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("change info error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body.", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	user, err := s.userService.ChangeInfo(ctx, uid, &service.ChangeInfoRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondServiceError(w, logger, err)
		return
	}
	httputil.WriteEnvelopeResponse(w, http.StatusOK, "User info updated.", user)
	logger.Info("user info updated")
}

func (s *Server) ChangePassword(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("change password error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "Not authenticated.", nil)
		return
	}
	var req ChangePasswordRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("change password error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body.", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	user, err := s.userService.ChangePassword(ctx, uid, &service.ChangePasswordRequest{
		Password: req.Password,
	})
	if err != nil {
		respondServiceError(w, logger, err)
		return
	}
	httputil.WriteEnvelopeResponse(w, http.StatusOK, "User password updated.", user)
	logger.Info("user password updated")
}
