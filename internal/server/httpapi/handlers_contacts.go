package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/contacthub/internal/server/repositories/contacts"
)

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid id"})
		return 0, false
	}
	return id, true
}

func paginationParams(c *gin.Context) (skip, limit int, ok bool) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid skip"})
		return 0, 0, false
	}
	limit, err = strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit <= 0 || limit > 500 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid limit"})
		return 0, 0, false
	}
	return skip, limit, true
}

func (s *Server) listContacts(c *gin.Context) {
	skip, limit, ok := paginationParams(c)
	if !ok {
		return
	}

	list, err := s.contacts.List(c.Request.Context(), skip, limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toContactResponses(list))
}

func (s *Server) getContact(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	contact, err := s.contacts.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toContactResponse(contact))
}

func (s *Server) searchContacts(c *gin.Context) {
	filter := contacts.SearchFilter{
		Name:     c.Query("name"),
		LastName: c.Query("last_name"),
		Email:    c.Query("email"),
	}

	list, err := s.contacts.Search(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toContactResponses(list))
}

func (s *Server) upcomingBirthdays(c *gin.Context) {
	list, err := s.contacts.UpcomingBirthdays(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toContactResponses(list))
}

func (s *Server) createContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	created, err := s.contacts.Create(c.Request.Context(), req.toModel())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toContactResponse(created))
}

func (s *Server) updateContact(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	updated, err := s.contacts.Update(c.Request.Context(), id, req.toModel())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toContactResponse(updated))
}

func (s *Server) deleteContact(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := s.contacts.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
