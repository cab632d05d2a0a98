package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"netlist/internal/task"
	"netlist/internal/view"
)

const maxTextSize = 10 << 10 // 10KB

type taskRequest struct {
	Text     string `json:"text"`
	Priority string `json:"priority"`
}

type deletionRequest struct {
	Confirm bool `json:"confirm"`
}

type viewRequest struct {
	Filter string `json:"filter"`
	Sort   string `json:"sort"`
}

func (s *Server) handleList(c *gin.Context) {
	sel := s.svc.Selection()
	f, sm := sel.Filter, sel.Sort

	if q := c.Query("filter"); q != "" {
		parsed, err := view.ParseFilter(q)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		f = parsed
	}
	if q := c.Query("sort"); q != "" {
		parsed, err := view.ParseSort(q)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		sm = parsed
	}

	c.JSON(http.StatusOK, s.svc.Project(f, sm))
}

func (s *Server) handleCreate(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if len(req.Text) > maxTextSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text exceeds maximum size of 10KB"})
		return
	}

	p := task.PriorityHigh
	if req.Priority != "" {
		parsed, err := task.ParsePriority(req.Priority)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		p = parsed
	}

	t, ok, err := s.svc.Add(c.Request.Context(), req.Text, p)
	if err != nil {
		s.storageError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "text required and priority must be high, medium or low"})
		return
	}

	c.JSON(http.StatusCreated, t)
}

func (s *Server) handleGet(c *gin.Context) {
	t, ok := s.svc.Get(c.Param("id"))
	if !ok {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) handleUpdate(c *gin.Context) {
	id := c.Param("id")
	current, ok := s.svc.Get(id)
	if !ok {
		notFound(c)
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if len(req.Text) > maxTextSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text exceeds maximum size of 10KB"})
		return
	}

	p := current.Priority
	if req.Priority != "" {
		parsed, err := task.ParsePriority(req.Priority)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		p = parsed
	}

	t, ok, err := s.svc.Edit(c.Request.Context(), id, req.Text, p)
	if err != nil {
		s.storageError(c, err)
		return
	}
	if !ok {
		if _, exists := s.svc.Get(id); !exists {
			notFound(c)
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "text required and priority must be high, medium or low"})
		return
	}

	c.JSON(http.StatusOK, t)
}

func (s *Server) handleToggle(c *gin.Context) {
	t, ok, err := s.svc.Toggle(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.storageError(c, err)
		return
	}
	if !ok {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) handleRequestDelete(c *gin.Context) {
	req, ok := s.svc.RequestDelete(c.Param("id"))
	if !ok {
		notFound(c)
		return
	}
	c.JSON(http.StatusAccepted, req)
}

func (s *Server) handleResolveDelete(c *gin.Context) {
	var req deletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	token := c.Param("token")
	deleted, err := s.svc.ResolveDelete(c.Request.Context(), token, req.Confirm)
	if err != nil {
		s.storageError(c, err)
		return
	}
	// A confirmed request that deleted nothing had an unknown or spent token,
	// or its task is already gone.
	if req.Confirm && !deleted {
		notFound(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

func (s *Server) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, view.Compute(s.svc.Tasks()))
}

func (s *Server) handleGetView(c *gin.Context) {
	c.JSON(http.StatusOK, s.svc.Selection())
}

func (s *Server) handleSetView(c *gin.Context) {
	var req viewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var (
		f  view.Filter
		sm view.SortMode
	)
	if req.Filter != "" {
		parsed, err := view.ParseFilter(req.Filter)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		f = parsed
	}
	if req.Sort != "" {
		parsed, err := view.ParseSort(req.Sort)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		sm = parsed
	}

	if f != "" {
		s.svc.SetFilter(f)
	}
	if sm != "" {
		s.svc.SetSort(sm)
	}
	c.JSON(http.StatusOK, s.svc.Selection())
}

func (s *Server) storageError(c *gin.Context, err error) {
	s.log.Error("storage failure", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
}
