package devserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"buildmart.GO/model"
)

func init() {
	RegisterModule(registerAuthRoutes)
}

func registerAuthRoutes(s *Server, g *echo.Group) {
	auth := g.Group("/auth")

	auth.POST("/login", func(c echo.Context) error {
		var creds model.Credentials
		if err := c.Bind(&creds); err != nil {
			return errJSON(c, http.StatusBadRequest, "invalid request body", "bad_request", "")
		}
		if creds.Email == "" {
			return errJSON(c, http.StatusBadRequest, "email is required", "validation", "email")
		}
		var user User
		if err := s.db.Where("email = ?", creds.Email).First(&user).Error; err != nil {
			return errJSON(c, http.StatusUnauthorized, "invalid credentials", "invalid_credentials", "")
		}
		if user.PasswordHash != hashPassword(creds.Password) {
			return errJSON(c, http.StatusUnauthorized, "invalid credentials", "invalid_credentials", "")
		}
		token := s.sessions.Issue(user.ID)
		dto := userDTO(&user)
		return wrapped(c, http.StatusOK, echo.Map{"token": token, "user": dto}, "login successful")
	})

	auth.POST("/register", func(c echo.Context) error {
		var reg model.Registration
		if err := c.Bind(&reg); err != nil {
			return errJSON(c, http.StatusBadRequest, "invalid request body", "bad_request", "")
		}
		if reg.Email == "" {
			return errJSON(c, http.StatusBadRequest, "email is required", "validation", "email")
		}
		if len(reg.Password) < 6 {
			return errJSON(c, http.StatusBadRequest, "password must be at least 6 characters", "validation", "password")
		}
		var count int64
		s.db.Model(&User{}).Where("email = ?", reg.Email).Count(&count)
		if count > 0 {
			return errJSON(c, http.StatusConflict, "email already registered", "duplicate", "email")
		}
		user := User{
			Email:        reg.Email,
			PasswordHash: hashPassword(reg.Password),
			FirstName:    reg.FirstName,
			LastName:     reg.LastName,
			Phone:        reg.Phone,
			Role:         model.RoleCustomer,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return errJSON(c, http.StatusInternalServerError, "could not create account", "", "")
		}
		// No token here: the account logs in explicitly after registering.
		return wrapped(c, http.StatusCreated, echo.Map{"user": userDTO(&user)}, "account created, please log in")
	})

	auth.POST("/refresh", func(c echo.Context) error {
		user := currentUser(c)
		if user == nil {
			return errJSON(c, http.StatusUnauthorized, "authentication required", "unauthorized", "")
		}
		if old, ok := c.Get("token").(string); ok {
			s.sessions.Revoke(old)
		}
		token := s.sessions.Issue(user.ID)
		return wrapped(c, http.StatusOK, echo.Map{"token": token}, "")
	})

	auth.POST("/logout", func(c echo.Context) error {
		if token, ok := c.Get("token").(string); ok {
			s.sessions.Revoke(token)
		}
		return wrapped(c, http.StatusOK, nil, "logged out")
	})

	// /auth/me returns the user bare, no envelope — the client has to accept
	// both shapes.
	auth.GET("/me", func(c echo.Context) error {
		user := currentUser(c)
		if user == nil {
			return errJSON(c, http.StatusUnauthorized, "authentication required", "unauthorized", "")
		}
		return bare(c, http.StatusOK, userDTO(user))
	})

	auth.PUT("/profile", func(c echo.Context) error {
		user := currentUser(c)
		if user == nil {
			return errJSON(c, http.StatusUnauthorized, "authentication required", "unauthorized", "")
		}
		var update model.ProfileUpdate
		if err := c.Bind(&update); err != nil {
			return errJSON(c, http.StatusBadRequest, "invalid request body", "bad_request", "")
		}
		if update.FirstName != "" {
			user.FirstName = update.FirstName
		}
		if update.LastName != "" {
			user.LastName = update.LastName
		}
		if update.Phone != "" {
			user.Phone = update.Phone
		}
		if err := s.db.Save(user).Error; err != nil {
			return errJSON(c, http.StatusInternalServerError, "could not update profile", "", "")
		}
		return wrapped(c, http.StatusOK, userDTO(user), "profile updated")
	})
}
