package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tmorrow/schoolmock/internal/app/models"
	"github.com/tmorrow/schoolmock/internal/app/models/dto"
	"github.com/tmorrow/schoolmock/internal/app/services"
	"github.com/tmorrow/schoolmock/internal/middleware"
	"github.com/tmorrow/schoolmock/internal/pkg/helpers"
)

// ResourceController serves the uniform CRUD surface of one entity kind.
// One instance per entity replaces what would otherwise be nine
// near-identical handler sets; the descriptor supplies the path, the
// sortable columns and whether write routes exist at all.
type ResourceController[T any, PT models.RecordOf[T]] struct {
	service *services.ResourceService[T, PT]
	desc    models.Descriptor
}

// NewResourceController creates a controller for the entity described by desc.
func NewResourceController[T any, PT models.RecordOf[T]](service *services.ResourceService[T, PT]) *ResourceController[T, PT] {
	return &ResourceController[T, PT]{
		service: service,
		desc:    service.Descriptor(),
	}
}

// RegisterRoutes mounts the entity's routes. Read-only entities get only
// the listing and fetch routes.
func (c *ResourceController[T, PT]) RegisterRoutes(router gin.IRouter) {
	group := router.Group(c.desc.Path)
	group.GET("", c.List)
	group.GET("/:id", c.GetByID)
	if !c.desc.ReadOnly {
		group.POST("", c.Create)
		group.PUT("/:id", c.Update)
		group.DELETE("/:id", c.Delete)
	}
}

// List returns one page of the collection in the pagination envelope.
// Query params: limit (default 10), page or offset (offset wins), sort,
// order (asc/desc), updated_after.
func (c *ResourceController[T, PT]) List(ctx *gin.Context) {
	params := helpers.ParseListParams(ctx)

	items, total, err := c.service.List(ctx, params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PaginatedResponse[PT]{
		Items: items,
		Total: total,
		Next:  helpers.NextPageURL(c.desc.Path, params.Limit, params.Offset, total),
	})
}

// GetByID fetches a single record; 404 when the id does not exist.
func (c *ResourceController[T, PT]) GetByID(ctx *gin.Context) {
	id, ok := c.recordID(ctx)
	if !ok {
		return
	}

	rec, err := c.service.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, rec)
}

// Create persists a new record from the request body and returns it with
// the server-assigned id and timestamps.
func (c *ResourceController[T, PT]) Create(ctx *gin.Context) {
	var rec T
	if err := ctx.ShouldBindJSON(&rec); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.BindingErrorDetail(err)))
		return
	}

	pt := PT(&rec)
	// Identity and timestamps are always server-assigned, whatever the body
	// claims.
	*pt.Meta() = models.Base{}

	if err := c.service.Create(ctx, pt); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, pt)
}

// Update replaces every mutable field of an existing record and refreshes
// updated_at; 404 when the id does not exist.
func (c *ResourceController[T, PT]) Update(ctx *gin.Context) {
	id, ok := c.recordID(ctx)
	if !ok {
		return
	}

	var rec T
	if err := ctx.ShouldBindJSON(&rec); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.BindingErrorDetail(err)))
		return
	}

	pt := PT(&rec)
	if err := c.service.Update(ctx, id, pt); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, pt)
}

// Delete removes a record and returns it; 404 when absent, 409 while
// dependent rows still reference it.
func (c *ResourceController[T, PT]) Delete(ctx *gin.Context) {
	id, ok := c.recordID(ctx)
	if !ok {
		return
	}

	rec, err := c.service.Delete(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, rec)
}

// recordID parses the :id path parameter, answering 400 on garbage.
func (c *ResourceController[T, PT]) recordID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+c.desc.Name+" ID").
			WithDetails("ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return 0, false
	}
	return id, true
}
