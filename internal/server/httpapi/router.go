package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/contacthub/internal/server/models"
)

// Static role allow-lists per operation category.
var (
	readRoles   = []models.Role{models.RoleAdmin, models.RoleModerator, models.RoleUser}
	createRoles = []models.Role{models.RoleAdmin, models.RoleModerator, models.RoleUser}
	updateRoles = []models.Role{models.RoleAdmin, models.RoleModerator}
	deleteRoles = []models.Role{models.RoleAdmin}
)

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), s.accessLog())

	api := router.Group("/api")

	api.GET("/healthchecker", s.healthcheck)

	auth := api.Group("/auth")
	auth.POST("/signup", RateLimit(s.counter, s.logger, 5, 5*time.Minute), s.signup)
	auth.POST("/login", s.login)
	auth.GET("/confirmed_email/:token", s.confirmEmail)
	auth.GET("/refresh_token", s.refreshToken)
	auth.POST("/request_email", s.requestEmail)

	users := api.Group("/users", s.Authenticate())
	users.GET("/me", s.currentUser)
	users.PATCH("/avatar", s.updateAvatar)

	contacts := api.Group("/contacts", s.Authenticate())
	contacts.GET("", RequireRoles(readRoles...), RateLimit(s.counter, s.logger, 10, time.Minute), s.listContacts)
	contacts.GET("/search_by", RequireRoles(readRoles...), s.searchContacts)
	contacts.GET("/upcoming_birthdays", RequireRoles(readRoles...), s.upcomingBirthdays)
	contacts.GET("/:id", RequireRoles(readRoles...), s.getContact)
	contacts.POST("", RequireRoles(createRoles...), RateLimit(s.counter, s.logger, 2, 5*time.Second), s.createContact)
	contacts.PUT("/:id", RequireRoles(updateRoles...), s.updateContact)
	contacts.DELETE("/:id", RequireRoles(deleteRoles...), s.deleteContact)

	notes := api.Group("/notes", s.Authenticate())
	notes.GET("", RequireRoles(readRoles...), s.listNotes)
	notes.GET("/:id", RequireRoles(readRoles...), s.getNote)
	notes.POST("", RequireRoles(createRoles...), s.createNote)
	notes.PUT("/:id", RequireRoles(updateRoles...), s.updateNote)
	notes.PATCH("/:id/status", RequireRoles(updateRoles...), s.updateNoteStatus)
	notes.DELETE("/:id", RequireRoles(deleteRoles...), s.deleteNote)

	tags := api.Group("/tags", s.Authenticate())
	tags.GET("", RequireRoles(readRoles...), s.listTags)
	tags.GET("/:id", RequireRoles(readRoles...), s.getTag)
	tags.POST("", RequireRoles(createRoles...), s.createTag)
	tags.PUT("/:id", RequireRoles(updateRoles...), s.updateTag)
	tags.DELETE("/:id", RequireRoles(deleteRoles...), s.deleteTag)

	return router
}
