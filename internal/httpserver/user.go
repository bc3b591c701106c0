package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopd/internal/domain"
	usersvc "shopd/internal/service/user"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signupResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

type loginResponse struct {
	Token string    `json:"token"`
	User  loginUser `json:"user"`
}

type loginUser struct {
	ID       int64        `json:"id"`
	Username string       `json:"username"`
	Token    string       `json:"token"`
	Cart     *domain.Cart `json:"cart"`
}

func (h handlers) signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": usersvc.ErrMissingCredentials.Error()})
		return
	}

	u, err := h.deps.UserSvc.Signup(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	token := ""
	if u.Token != nil {
		token = *u.Token
	}
	c.JSON(http.StatusCreated, signupResponse{ID: u.ID, Username: u.Username, Token: token})
}

func (h handlers) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": usersvc.ErrInvalidCredentials.Error()})
		return
	}

	u, cart, err := h.deps.UserSvc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	token := ""
	if u.Token != nil {
		token = *u.Token
	}
	c.JSON(http.StatusOK, loginResponse{
		Token: token,
		User: loginUser{
			ID:       u.ID,
			Username: u.Username,
			Token:    token,
			Cart:     cart,
		},
	})
}

func (h handlers) listUsers(c *gin.Context) {
	users, err := h.deps.UserSvc.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	c.JSON(http.StatusOK, users)
}
