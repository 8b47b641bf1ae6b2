package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aescanero/treed/pkg/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CreateNodeRequest represents a node creation request
type CreateNodeRequest struct {
	Label    string `json:"label"`
	ParentID *int   `json:"parent_id"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail represents error details
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// handleHealth handles health check requests
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"checks": gin.H{
			"store": "ok",
		},
		"nodes": s.manager.Len(),
	})
}

// handleGetTree handles full-tree retrieval. The response is the nested
// forest: an array of roots with children grouped under their parents.
func (s *Server) handleGetTree(c *gin.Context) {
	c.JSON(http.StatusOK, s.manager.Tree(c.Request.Context()))
}

// handleCreateNode handles node creation
func (s *Server) handleCreateNode(c *gin.Context) {
	var req CreateNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.logger.Error("invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	node, err := s.manager.CreateNode(c.Request.Context(), req.Label, req.ParentID)
	if err != nil {
		s.respondCreateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, node)
}

// respondCreateError maps create failures to HTTP error responses
func (s *Server) respondCreateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidLabel):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: ErrorDetail{
				Code:    "INVALID_LABEL",
				Message: err.Error(),
			},
		})
	case errors.Is(err, domain.ErrParentNotFound):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: ErrorDetail{
				Code:    "PARENT_NOT_FOUND",
				Message: err.Error(),
			},
		})
	default:
		s.logger.Error("failed to create node", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: "Failed to create node",
			},
		})
	}
}

// handleGetNode handles flat node lookup by id
func (s *Server) handleGetNode(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: "Node id must be an integer",
			},
		})
		return
	}

	node, err := s.manager.Node(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: ErrorDetail{
				Code:    "NODE_NOT_FOUND",
				Message: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, node)
}
