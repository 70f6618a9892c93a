package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tmorrow/schoolmock/internal/app/controllers"
	"github.com/tmorrow/schoolmock/internal/app/models"
)

// Controllers bundles every handler the router mounts.
type Controllers struct {
	Geography      *controllers.ResourceController[models.Geography, *models.Geography]
	School         *controllers.ResourceController[models.School, *models.School]
	Student        *controllers.ResourceController[models.Student, *models.Student]
	ScholasticYear *controllers.ResourceController[models.ScholasticYear, *models.ScholasticYear]
	Class          *controllers.ResourceController[models.Class, *models.Class]
	Enrolment      *controllers.ResourceController[models.Enrolment, *models.Enrolment]
	ClassEnrolment *controllers.ResourceController[models.ClassEnrolment, *models.ClassEnrolment]
	Attendance     *controllers.ResourceController[models.Attendance, *models.Attendance]
	Incident       *controllers.ResourceController[models.Incident, *models.Incident]
	Admin          *controllers.AdminController
}

// SetupRoutes mounts every endpoint on the engine. Entity collections live
// at the root so that /geographies/, /students/ and friends match the paths
// clients already use.
func SetupRoutes(router *gin.Engine, c Controllers) {
	router.GET("/health", healthCheck)

	c.Geography.RegisterRoutes(router)
	c.School.RegisterRoutes(router)
	c.Student.RegisterRoutes(router)
	c.ScholasticYear.RegisterRoutes(router)
	c.Class.RegisterRoutes(router)
	c.Enrolment.RegisterRoutes(router)
	c.ClassEnrolment.RegisterRoutes(router)
	c.Attendance.RegisterRoutes(router)
	c.Incident.RegisterRoutes(router)
	c.Admin.RegisterRoutes(router)
}

// healthCheck godoc
// @Summary Service health probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
