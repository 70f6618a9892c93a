package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tmorrow/schoolmock/internal/app/models/dto"
	"github.com/tmorrow/schoolmock/internal/middleware"
)

// Resetter wipes every stored record and rebuilds an empty schema.
type Resetter interface {
	Reset(ctx context.Context) error
}

// AdminController serves the operational endpoints that are not tied to a
// single entity.
type AdminController struct {
	resetter Resetter
	logger   zerolog.Logger
}

// NewAdminController creates an AdminController.
func NewAdminController(resetter Resetter, logger zerolog.Logger) *AdminController {
	return &AdminController{
		resetter: resetter,
		logger:   logger,
	}
}

// RegisterRoutes mounts the admin routes.
func (c *AdminController) RegisterRoutes(router gin.IRouter) {
	router.POST("/reset", c.Reset)
}

// Reset drops all data and recreates empty tables. It does not reseed; a
// restart with seeding enabled repopulates the dataset.
// @Summary Reset all data
// @Description Drops every table and recreates the schema empty. Does not repopulate; restart the service with seeding enabled to regenerate the dataset.
// @Tags admin
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /reset [post]
func (c *AdminController) Reset(ctx *gin.Context) {
	if err := c.resetter.Reset(ctx); err != nil {
		c.logger.Error().Err(err).Msg("State reset failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Msg("State reset")
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "State reset successfully"})
}
