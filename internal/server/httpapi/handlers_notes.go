package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/contacthub/internal/server/models"
)

func (s *Server) listNotes(c *gin.Context) {
	skip, limit, ok := paginationParams(c)
	if !ok {
		return
	}

	list, err := s.notes.List(c.Request.Context(), skip, limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toNoteResponses(list))
}

func (s *Server) getNote(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	note, err := s.notes.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toNoteResponse(note))
}

func (s *Server) createNote(c *gin.Context) {
	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	note := &models.Note{Title: req.Title, Description: req.Description, Done: req.Done}
	created, err := s.notes.Create(c.Request.Context(), note, req.Tags)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toNoteResponse(created))
}

func (s *Server) updateNote(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	note := &models.Note{Title: req.Title, Description: req.Description, Done: req.Done}
	updated, err := s.notes.Update(c.Request.Context(), id, note, req.Tags)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toNoteResponse(updated))
}

func (s *Server) updateNoteStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req noteStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	updated, err := s.notes.UpdateStatus(c.Request.Context(), id, *req.Done)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toNoteResponse(updated))
}

func (s *Server) deleteNote(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := s.notes.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
