package routes

import (
	"BabyTracker/controllers"
	"BabyTracker/middlewares"
	"BabyTracker/utils"

	"github.com/gin-gonic/gin"
)

// TrackableRoutes is implemented by controllers.TrackableController.
type TrackableRoutes interface {
	Register(group *gin.RouterGroup)
}

type Options struct {
	Tokens     *utils.TokenManager
	Trackables map[string]TrackableRoutes // path prefix, e.g. "/feeds"
	UploadDir  string
	StaticDir  string
}

func RegisterRoutes(r *gin.Engine, opts Options) {
	auth := middlewares.AuthMiddleware(opts.Tokens)

	r.GET("/health", controllers.Health)
	if opts.UploadDir != "" {
		r.Static("/uploads", opts.UploadDir)
	}

	// The gateway checks the token itself; browsers cannot set headers on
	// a websocket handshake.
	r.GET("/events/ws", controllers.ServeWs)
	r.GET("/ws", controllers.ServeWs)
	r.GET("/ws/stats", auth, controllers.WebSocketStats)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", controllers.Register)
		authGroup.POST("/login", controllers.Login)
		authGroup.GET("/profile", auth, controllers.GetProfile)
		authGroup.PATCH("/profile", auth, controllers.UpdateProfile)
		authGroup.PUT("/password", auth, controllers.ChangePassword)
		authGroup.PUT("/device-token", auth, controllers.RegisterDeviceToken)
	}

	families := r.Group("/families")
	families.Use(auth)
	{
		families.POST("", controllers.CreateFamily)
		families.GET("", controllers.ListFamilies)
		families.POST("/join/:code", controllers.JoinFamily)
		families.POST("/invitations/:token/accept", controllers.AcceptInvitation)
		families.GET("/:id", controllers.GetFamily)
		families.PATCH("/:id", controllers.UpdateFamily)
		families.POST("/:id/invite", controllers.InviteMember)
		families.POST("/:id/invite-code", controllers.RegenerateInviteCode)
		families.PATCH("/:id/primary", controllers.SetPrimaryFamily)
		families.PATCH("/:id/members/:memberId", controllers.UpdateMember)
		families.DELETE("/:id/members/:memberId", controllers.RemoveMember)
		families.DELETE("/:id/leave", controllers.LeaveFamily)
	}

	children := r.Group("/children")
	children.Use(auth)
	{
		children.POST("/family/:familyId", controllers.CreateChild)
		children.GET("/family/:familyId", controllers.ListFamilyChildren)
		children.GET("/:id", controllers.GetChild)
		children.PATCH("/:id", controllers.UpdateChild)
		children.POST("/:id/avatar", controllers.UploadChildAvatar)
		children.GET("/:id/statistics", controllers.GetChildStatistics)
		children.POST("/:id/permissions", controllers.GrantChildPermission)
		children.DELETE("/:id/permissions/:userId", controllers.RevokeChildPermission)
	}

	for prefix, tc := range opts.Trackables {
		group := r.Group(prefix)
		group.Use(auth)
		tc.Register(group)
	}

	evts := r.Group("/events")
	evts.Use(auth)
	{
		evts.POST("", controllers.CreateEvent)
		evts.GET("/child/:childId", controllers.ListChildEvents)
		evts.GET("/milestones", controllers.ListMilestones)
		evts.GET("/milestones/child/:childId/suggested", controllers.SuggestedMilestones)
		evts.GET("/milestones/child/:childId", controllers.AchievedMilestones)
		evts.POST("/milestones/child/:childId", controllers.AchieveMilestone)
		evts.DELETE("/milestones/:eventId", controllers.RemoveMilestone)
		evts.GET("/:id", controllers.GetEvent)
		evts.PATCH("/:id", controllers.UpdateEvent)
		evts.DELETE("/:id", controllers.DeleteEvent)
	}

	notifications := r.Group("/notifications")
	notifications.Use(auth)
	{
		notifications.GET("", controllers.ListNotifications)
		notifications.GET("/unread-count", controllers.UnreadNotificationCount)
		notifications.PATCH("/read-all", controllers.MarkAllNotificationsRead)
		notifications.POST("/reminders", controllers.ScheduleReminder)
		notifications.PATCH("/:id/read", controllers.MarkNotificationRead)
		notifications.DELETE("/:id", controllers.DeleteNotification)
	}

	media := r.Group("/media")
	media.Use(auth)
	{
		media.POST("/upload/:type", controllers.UploadMedia)
	}

	if opts.StaticDir != "" {
		r.NoRoute(controllers.SPAFallback(opts.StaticDir))
	}
}
