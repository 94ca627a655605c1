package controllers

import (
	"BabyTracker/models"
	"BabyTracker/services"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// TrackableController serves the six-route CRUD surface shared by every
// trackable kind. S is the kind's statistics type.
type TrackableController[T any, PT models.TrackableModel[T], S any] struct {
	service    *services.TrackableService[T, PT]
	statistics func(ctx context.Context, userID, childID uint) (S, error)
	newCreate  func() models.TrackableCreate[T]
	newUpdate  func() models.TrackableUpdate[T]
}

func NewTrackableController[T any, PT models.TrackableModel[T], S any](
	service *services.TrackableService[T, PT],
	statistics func(ctx context.Context, userID, childID uint) (S, error),
	newCreate func() models.TrackableCreate[T],
	newUpdate func() models.TrackableUpdate[T],
) *TrackableController[T, PT, S] {
	return &TrackableController[T, PT, S]{
		service:    service,
		statistics: statistics,
		newCreate:  newCreate,
		newUpdate:  newUpdate,
	}
}

func NewFeedController(s *services.FeedService) *TrackableController[models.Feed, *models.Feed, *models.FeedStatistics] {
	return NewTrackableController(s.TrackableService, s.GetStatistics,
		func() models.TrackableCreate[models.Feed] { return &models.CreateFeedRequest{} },
		func() models.TrackableUpdate[models.Feed] { return &models.UpdateFeedRequest{} })
}

func NewSleepController(s *services.SleepService) *TrackableController[models.Sleep, *models.Sleep, *models.SleepStatistics] {
	return NewTrackableController(s.TrackableService, s.GetStatistics,
		func() models.TrackableCreate[models.Sleep] { return &models.CreateSleepRequest{} },
		func() models.TrackableUpdate[models.Sleep] { return &models.UpdateSleepRequest{} })
}

func NewDiaperController(s *services.DiaperService) *TrackableController[models.Diaper, *models.Diaper, *models.DiaperStatistics] {
	return NewTrackableController(s.TrackableService, s.GetStatistics,
		func() models.TrackableCreate[models.Diaper] { return &models.CreateDiaperRequest{} },
		func() models.TrackableUpdate[models.Diaper] { return &models.UpdateDiaperRequest{} })
}

func NewTemperatureController(s *services.TemperatureService) *TrackableController[models.Temperature, *models.Temperature, *models.TemperatureStatistics] {
	return NewTrackableController(s.TrackableService, s.GetStatistics,
		func() models.TrackableCreate[models.Temperature] { return &models.CreateTemperatureRequest{} },
		func() models.TrackableUpdate[models.Temperature] { return &models.UpdateTemperatureRequest{} })
}

func NewWeightController(s *services.WeightService) *TrackableController[models.Weight, *models.Weight, *models.WeightStatistics] {
	return NewTrackableController(s.TrackableService, s.GetStatistics,
		func() models.TrackableCreate[models.Weight] { return &models.CreateWeightRequest{} },
		func() models.TrackableUpdate[models.Weight] { return &models.UpdateWeightRequest{} })
}

func NewBathController(s *services.BathService) *TrackableController[models.Bath, *models.Bath, *models.BathStatistics] {
	return NewTrackableController(s.TrackableService, s.GetStatistics,
		func() models.TrackableCreate[models.Bath] { return &models.CreateBathRequest{} },
		func() models.TrackableUpdate[models.Bath] { return &models.UpdateBathRequest{} })
}

// Register mounts POST /, GET /child/:childId, GET /statistics/child/:childId
// and GET/PATCH/DELETE /:id on the group.
func (tc *TrackableController[T, PT, S]) Register(group *gin.RouterGroup) {
	group.POST("", tc.Create)
	group.GET("/child/:childId", tc.ListByChild)
	group.GET("/statistics/child/:childId", tc.Statistics)
	group.GET("/:id", tc.Get)
	group.PATCH("/:id", tc.Update)
	group.DELETE("/:id", tc.Delete)
}

func (tc *TrackableController[T, PT, S]) Create(c *gin.Context) {
	input := tc.newCreate()
	if err := c.ShouldBindJSON(input); err != nil {
		bindError(c, err)
		return
	}

	item, err := tc.service.Create(c.Request.Context(), currentUserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": item})
}

func (tc *TrackableController[T, PT, S]) ListByChild(c *gin.Context) {
	childID, ok := paramID(c, "childId")
	if !ok {
		return
	}

	items, err := tc.service.FindAll(c.Request.Context(), currentUserID(c), childID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (tc *TrackableController[T, PT, S]) Statistics(c *gin.Context) {
	childID, ok := paramID(c, "childId")
	if !ok {
		return
	}

	stats, err := tc.statistics(c.Request.Context(), currentUserID(c), childID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stats})
}

func (tc *TrackableController[T, PT, S]) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	item, err := tc.service.FindOne(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": item})
}

func (tc *TrackableController[T, PT, S]) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	input := tc.newUpdate()
	if err := c.ShouldBindJSON(input); err != nil {
		bindError(c, err)
		return
	}

	item, err := tc.service.Update(c.Request.Context(), currentUserID(c), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": item})
}

func (tc *TrackableController[T, PT, S]) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := tc.service.Remove(c.Request.Context(), currentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted", "data": gin.H{"id": id, "kind": tc.service.Kind()}})
}
