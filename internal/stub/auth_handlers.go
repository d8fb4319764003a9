package stub

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/saferide/saferide/pkg/logger"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.Email == "" || req.Password == "" {
		fail(c, http.StatusBadRequest, "email and password are required")
		return
	}
	if req.Role == "" {
		req.Role = "passenger"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[req.Email]; exists {
		fail(c, http.StatusConflict, "account already exists")
		return
	}

	acct := &account{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     req.Role,
		Password: req.Password,
	}
	s.users[req.Email] = acct

	token := uuid.NewString()
	s.tokens[token] = acct.ID

	s.log.Info("stub: account registered",
		logger.String("user_id", acct.ID),
		logger.String("role", acct.Role),
	)
	ok(c, gin.H{"token": token, "user": userView(acct)})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, found := s.users[req.Email]
	if !found || acct.Password != req.Password {
		fail(c, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token := uuid.NewString()
	s.tokens[token] = acct.ID

	ok(c, gin.H{"token": token, "user": userView(acct)})
}

func userView(acct *account) gin.H {
	return gin.H{
		"id":    acct.ID,
		"name":  acct.Name,
		"email": acct.Email,
		"phone": acct.Phone,
		"role":  acct.Role,
	}
}
