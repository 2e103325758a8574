package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) listTags(c *gin.Context) {
	skip, limit, ok := paginationParams(c)
	if !ok {
		return
	}

	list, err := s.tags.List(c.Request.Context(), skip, limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTagResponses(list))
}

func (s *Server) getTag(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	tag, err := s.tags.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTagResponse(tag))
}

func (s *Server) createTag(c *gin.Context) {
	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	created, err := s.tags.Create(c.Request.Context(), req.Name)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toTagResponse(created))
}

func (s *Server) updateTag(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	updated, err := s.tags.Update(c.Request.Context(), id, req.Name)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTagResponse(updated))
}

func (s *Server) deleteTag(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := s.tags.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
