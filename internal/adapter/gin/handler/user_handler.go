package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-contact-service/internal/usecase/user"
	"user-contact-service/pkg/logger"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc  user.Usecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.Usecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// IDQuery binds the id query parameter. A missing id binds to 0 and is
// rejected by validation.
type IDQuery struct {
	ID int64 `form:"id"`
}

// FindUsersQuery binds the name filters of GET /users/find.
type FindUsersQuery struct {
	GivenNames string `form:"givenNames"`
	LastName   string `form:"lastName"`
}

// ListUsersQuery binds the paging parameters of GET /users/list.
type ListUsersQuery struct {
	PageNumber   int `form:"pageNumber"`
	ItemsPerPage int `form:"itemsPerPage,default=10"`
}

func (h *UserHandler) bindQuery(c *gin.Context, dst any) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		logger.WithContext(c.Request.Context(), h.log).Warn("invalid query string", zap.String("query", c.Request.URL.RawQuery), zap.Error(err))
		WriteProblem(c, http.StatusBadRequest, fmt.Sprintf("The query string is not valid: %v", err))
		return false
	}
	return true
}

func (h *UserHandler) bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		logger.WithContext(c.Request.Context(), h.log).Warn("invalid request body", zap.Error(err))
		WriteProblem(c, http.StatusBadRequest, fmt.Sprintf("The request body is not valid: %v", err))
		return false
	}
	return true
}

// GetUser handles GET /users?id=
func (h *UserHandler) GetUser(c *gin.Context) {
	var q IDQuery
	if !h.bindQuery(c, &q) {
		return
	}

	resp, err := h.uc.GetUser(c.Request.Context(), user.GetUserRequest{ID: q.ID})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// FindUsers handles GET /users/find?givenNames=&lastName=
func (h *UserHandler) FindUsers(c *gin.Context) {
	var q FindUsersQuery
	if !h.bindQuery(c, &q) {
		return
	}

	resp, err := h.uc.FindUsers(c.Request.Context(), user.FindUsersRequest{
		GivenNames: q.GivenNames,
		LastName:   q.LastName,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	if resp == nil {
		resp = []user.UserDto{}
	}

	c.JSON(http.StatusOK, resp)
}

// ListUsers handles GET /users/list?pageNumber=&itemsPerPage=
func (h *UserHandler) ListUsers(c *gin.Context) {
	var q ListUsersQuery
	if !h.bindQuery(c, &q) {
		return
	}

	resp, err := h.uc.ListUsers(c.Request.Context(), user.ListUsersRequest{
		PageNumber:   q.PageNumber,
		ItemsPerPage: q.ItemsPerPage,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req user.CreateUserRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.uc.CreateUser(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/users?id=%d", resp.UserID))
	c.JSON(http.StatusOK, resp)
}

// UpdateUser handles PUT /users
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req user.UpdateUserRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.uc.UpdateUser(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteUser handles DELETE /users?id=
func (h *UserHandler) DeleteUser(c *gin.Context) {
	var q IDQuery
	if !h.bindQuery(c, &q) {
		return
	}

	resp, err := h.uc.DeleteUser(c.Request.Context(), user.DeleteUserRequest{ID: q.ID})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
