package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/sodeng/branchops-backend-go/internal/domain/auth"
	"github.com/sodeng/branchops-backend-go/internal/handler/http/middleware"
	"github.com/sodeng/branchops-backend-go/internal/handler/http/response"
	"github.com/sodeng/branchops-backend-go/internal/pkg/jwt"
)

const streamKeepalive = 30 * time.Second

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	RefreshToken(w http.ResponseWriter, r *http.Request)
	Names(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	StreamToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	jwtService  jwt.Service
	authService auth.AuthService
}

func NewAuthHandler(jwtService jwt.Service, authService auth.AuthService) AuthHandler {
	return &authHandlerImpl{
		jwtService:  jwtService,
		authService: authService,
	}
}

type streamTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// refreshTokenFrom prefers the refresh_token cookie and falls back to the JSON body.
func refreshTokenFrom(r *http.Request) string {
	if cookie, err := r.Cookie("refresh_token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	var req auth.RefreshTokenRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		return ""
	}
	return req.RefreshToken
}

// Login implements AuthHandler.
func (h *authHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest
	if err := render.DecodeJSON(r.Body, &loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	tokenResponse, err := h.authService.Login(r.Context(), loginReq)
	if err != nil {
		slog.Warn("Login failed", "name", loginReq.Name, "error", err)
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, h.jwtService.RefreshTokenCookie(tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn))
	response.Created(w, "User logged in successfully", tokenResponse)
}

// Logout implements AuthHandler.
func (h *authHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	refreshToken := refreshTokenFrom(r)
	if refreshToken == "" {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	if err := h.authService.Logout(r.Context(), refreshToken); err != nil {
		response.HandleError(w, err)
		return
	}

	expired := h.jwtService.RefreshTokenCookie("", 0)
	expired.MaxAge = -1
	http.SetCookie(w, expired)
	response.SuccessWithMessage(w, "Logged out", nil)
}

// RefreshToken implements AuthHandler.
func (h *authHandlerImpl) RefreshToken(w http.ResponseWriter, r *http.Request) {
	req := auth.RefreshTokenRequest{RefreshToken: refreshTokenFrom(r)}

	tokenResponse, err := h.authService.RefreshToken(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, tokenResponse)
}

// Names implements AuthHandler.
func (h *authHandlerImpl) Names(w http.ResponseWriter, r *http.Request) {
	names, err := h.authService.ListNames(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, names)
}

// Me implements AuthHandler.
func (h *authHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	me, err := h.authService.Me(r.Context(), session.Email)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, me)
}

// StreamToken implements AuthHandler.
func (h *authHandlerImpl) StreamToken(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	token, expiresIn, err := h.jwtService.GenerateStreamToken(session.Email)
	if err != nil {
		response.InternalServerError(w, "Failed to generate stream token")
		return
	}
	response.Success(w, streamTokenResponse{Token: token, ExpiresIn: expiresIn})
}

// Stream implements AuthHandler. It pushes the caller's session events as
// server-sent events until the client disconnects.
func (h *authHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		response.Unauthorized(w, "Missing token")
		return
	}

	email, err := h.jwtService.ValidateStreamToken(tokenStr)
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events := make(chan auth.SessionEvent, 10)
	stop := h.authService.OnSessionChange(email, func(ev auth.SessionEvent) {
		select {
		case events <- ev:
		default:
			slog.Warn("Session stream lagging, event dropped", "email", email, "type", ev.Type)
		}
	})
	defer stop()

	fmt.Fprintf(w, "event: connected\ndata: {\"email\":%q}\n\n", email)
	flusher.Flush()

	keepalive := time.NewTicker(streamKeepalive)
	defer keepalive.Stop()

	for {
		select {
		case ev := <-events:
			data, err := json.Marshal(ev)
			if err != nil {
				slog.Error("Session event encode error", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: session\ndata: %s\n\n", data)
			flusher.Flush()
			if ev.Type == auth.SessionLogout {
				return
			}

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			slog.Debug("Session stream closed", "email", email)
			return
		}
	}
}
