package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/san-kum/arrayviz/internal/analysis"
	"github.com/san-kum/arrayviz/internal/array"
	"github.com/san-kum/arrayviz/internal/session"
	"github.com/san-kum/arrayviz/internal/steps"
	"github.com/san-kum/arrayviz/internal/storage"
)

type arrayRequest struct {
	Size   *int        `json:"size"`
	Values array.Array `json:"values"`
}

type modeRequest struct {
	Mode session.Mode `json:"mode"`
}

type opRequest struct {
	Op    steps.Operation `json:"op"`
	Value int             `json:"value"`
	Index int             `json:"index"`
}

type stepRequest struct {
	Direction int    `json:"direction"`
	Jump      string `json:"jump" binding:"omitempty,oneof=start end"`
}

type stepsRequest struct {
	Op     steps.Operation `json:"op"`
	Value  int             `json:"value"`
	Index  int             `json:"index"`
	Values array.Array     `json:"values" binding:"required"`
	Save   bool            `json:"save"`
}

type stepsResponse struct {
	Steps steps.Sequence `json:"steps"`
	Stats analysis.Stats `json:"stats"`
	RunID string         `json:"runId,omitempty"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleGetArray(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.sess.Snapshot())
}

func (s *Server) handleSetArray(c *gin.Context) {
	var req arrayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	switch {
	case req.Values != nil:
		err = s.sess.LoadArray(req.Values)
	case req.Size != nil:
		_, err = s.sess.CreateArray(*req.Size)
	default:
		err = errors.New("either size or values is required")
	}
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, s.sess.Snapshot())
}

func (s *Server) handleMode(c *gin.Context) {
	var req modeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess.SetMode(req.Mode)
	c.JSON(http.StatusOK, s.sess.Snapshot())
}

func (s *Server) handleModify(c *gin.Context) {
	var req opRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sess.Modify(req.Op, req.Value, req.Index); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, s.sess.Snapshot())
}

func (s *Server) handleExecute(c *gin.Context) {
	var req opRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sess.Execute(req.Op, req.Value); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, s.sess.Snapshot())
}

func (s *Server) handleStep(c *gin.Context) {
	var req stepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var moved bool
	switch req.Jump {
	case "start":
		_, moved = s.sess.JumpToStart()
	case "end":
		_, moved = s.sess.JumpToEnd()
	default:
		_, moved = s.sess.Step(req.Direction)
	}
	c.JSON(http.StatusOK, gin.H{"moved": moved, "session": s.sess.Snapshot()})
}

// handleSteps generates a trace from the request alone. Binary search sorts
// the values first, as the session does.
func (s *Server) handleSteps(c *gin.Context) {
	var req stepsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := array.Validate(req.Values); err != nil {
		badRequest(c, err)
		return
	}
	input := req.Values
	if req.Op == steps.OpBinarySearch {
		input = input.Sorted()
	}
	seq, err := steps.Generate(req.Op, input, steps.Params{Value: req.Value, Index: req.Index})
	if err != nil {
		badRequest(c, err)
		return
	}

	resp := stepsResponse{Steps: seq, Stats: analysis.Summarize(seq)}
	if req.Save {
		if s.runs == nil {
			badRequest(c, errors.New("run storage is not configured"))
			return
		}
		resp.RunID, err = s.runs.Save(storage.RunMetadata{
			Operation: req.Op.String(),
			Input:     input,
			Value:     req.Value,
			Index:     req.Index,
			Metrics:   resp.Stats.Metrics(),
		}, seq)
		if err != nil {
			s.log.Error("failed to save run", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleListRuns(c *gin.Context) {
	runs, err := s.runs.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, runs)
}

func (s *Server) handleGetRun(c *gin.Context) {
	id := c.Param("id")
	meta, err := s.runs.Load(id)
	if err == nil {
		var seq steps.Sequence
		if seq, err = s.runs.LoadSteps(id); err == nil {
			c.JSON(http.StatusOK, gin.H{"run": meta, "steps": seq})
			return
		}
	}
	if errors.Is(err, storage.ErrRunNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
