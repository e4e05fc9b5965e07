package api

import (
	"net/http"

	"blastsms/internal/bootstrap"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type API struct {
	router *gin.RouterGroup
	deps   *bootstrap.Dependencies
}

func New(router *gin.RouterGroup, deps *bootstrap.Dependencies) API {
	return API{
		router: router,
		deps:   deps,
	}
}

func (a *API) RegisterRoutes() {
	a.Health()
	a.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := a.router.Group("/api")
	{
		authGroup := apiGroup.Group("/auth")
		authGroup.GET("/session", a.deps.AuthHandler.HandleSession)
		authGroup.POST("/login", a.deps.AuthHandler.HandleLogin)
		authGroup.POST("/logout", a.deps.AuthHandler.HandleLogout)
	}

	apiGroup.POST("/send-sms", a.deps.SMSHandler.HandleSendSMS)
	messagesGroup := apiGroup.Group("/messages")
	{
		messagesGroup.POST("/send", a.deps.SMSHandler.HandleSendMessage)
		messagesGroup.GET("/poll", a.deps.InboxHandler.HandlePoll)
	}

	campaignsGroup := apiGroup.Group("/campaigns")
	{
		campaignsGroup.GET("", a.deps.CampaignHandler.HandleListCampaigns)
		campaignsGroup.POST("", a.deps.CampaignHandler.HandleCreateCampaign)
		campaignsGroup.GET("/:campaign_id", a.deps.CampaignHandler.HandleGetCampaign)
		campaignsGroup.PUT("/:campaign_id", a.deps.CampaignHandler.HandleUpdateCampaign)
		campaignsGroup.DELETE("/:campaign_id", a.deps.CampaignHandler.HandleDeleteCampaign)
		campaignsGroup.POST("/:campaign_id/launch", a.deps.CampaignHandler.HandleLaunchCampaign)
		campaignsGroup.POST("/:campaign_id/pause", a.deps.CampaignHandler.HandlePauseCampaign)
		campaignsGroup.POST("/:campaign_id/resume", a.deps.CampaignHandler.HandleResumeCampaign)
	}

	queueGroup := apiGroup.Group("/queue")
	{
		queueGroup.GET("", a.deps.QueueHandler.HandleGetQueue)
		queueGroup.POST("/send", a.deps.QueueHandler.HandleSendAll)
		queueGroup.POST("/stop", a.deps.QueueHandler.HandleStop)
		queueGroup.POST("/clear", a.deps.QueueHandler.HandleClear)
	}

	conversationsGroup := apiGroup.Group("/conversations")
	{
		conversationsGroup.GET("", a.deps.InboxHandler.HandleListConversations)
		conversationsGroup.GET("/:conversation_id/messages", a.deps.InboxHandler.HandleGetConversation)
		conversationsGroup.POST("/:conversation_id/reply", a.deps.InboxHandler.HandleReply)
	}

	contactsGroup := apiGroup.Group("/contacts")
	{
		contactsGroup.GET("", a.deps.ContactsHandler.HandleListContacts)
		contactsGroup.POST("", a.deps.ContactsHandler.HandleCreateContact)
		contactsGroup.GET("/tags", a.deps.ContactsHandler.HandleListTags)
		contactsGroup.GET("/:contact_id", a.deps.ContactsHandler.HandleGetContact)
		contactsGroup.PUT("/:contact_id", a.deps.ContactsHandler.HandleUpdateContact)
		contactsGroup.DELETE("/:contact_id", a.deps.ContactsHandler.HandleDeleteContact)
	}

	apiGroup.GET("/analytics", a.deps.AnalyticsHandler.HandleGetAnalytics)
}

func (a *API) Health() {
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":  "ok",
			"hydrated": a.deps.State.Hydrated(),
			"readOnly": a.deps.State.ReadOnly(),
		})
	})
}
