package handler

import (
	"net/http"

	"marketplace-server/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (r registerRequest) toInput() service.RegisterInput {
	return service.RegisterInput{Name: r.Name, Surname: r.Surname, Email: r.Email, Password: r.Password}
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request data: %v", err)
		return
	}

	user, err := h.svc.Auth.Register(c.Request.Context(), req.toInput())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	registrationsTotal.Inc()
	c.JSON(http.StatusCreated, user)
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request data: %v", err)
		return
	}

	token, err := h.svc.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		loginsTotal.WithLabelValues("failure").Inc()
		handleServiceError(c, err)
		return
	}

	loginsTotal.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, token)
}

func (h *Handler) logout(c *gin.Context) {
	if err := h.svc.Auth.Logout(c.Request.Context(), claimsFrom(c)); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.svc.Users.List(c.Request.Context(), callerFrom(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) createUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request data: %v", err)
		return
	}

	user, err := h.svc.Users.Create(c.Request.Context(), callerFrom(c), req.toInput())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *Handler) getUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	user, err := h.svc.Users.Get(c.Request.Context(), callerFrom(c), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) updateUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request data: %v", err)
		return
	}

	user, err := h.svc.Users.Update(c.Request.Context(), callerFrom(c), id, req.toPatch())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) setPicture(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	file, err := h.readUpload(c)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	user, err := h.svc.Users.SetPicture(c.Request.Context(), callerFrom(c), id, *file)
	if err != nil {
		uploadsTotal.WithLabelValues("profile", "failure").Inc()
		handleServiceError(c, err)
		return
	}
	uploadsTotal.WithLabelValues("profile", "success").Inc()
	c.JSON(http.StatusOK, user)
}

func (h *Handler) promoteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	user, err := h.svc.Users.Promote(c.Request.Context(), callerFrom(c), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) crownUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	user, err := h.svc.Users.Crown(c.Request.Context(), callerFrom(c), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) deleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Users.Delete(c.Request.Context(), callerFrom(c), id); err != nil {
		handleServiceError(c, err)
		return
	}
	h.logger.Info("User deleted", zap.Int64("userID", id))
	c.Status(http.StatusNoContent)
}
