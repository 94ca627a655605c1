package controllers

import (
	"BabyTracker/websocket"
	"net/http"

	"github.com/gin-gonic/gin"
)

var gateway *websocket.Gateway

func SetGateway(g *websocket.Gateway) {
	gateway = g
}

// ServeWs hands the connection to the gateway, which does its own token
// check so browsers can pass the token as a query or subprotocol.
func ServeWs(c *gin.Context) {
	gateway.ServeHTTP(c.Writer, c.Request)
}

func WebSocketStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": gateway.Stats()})
}
