package http

import (
	"github.com/gin-gonic/gin"
	"github.com/rishi925-eng/Vital-Trace/pkg/relay"
	"github.com/rishi925-eng/Vital-Trace/pkg/ws"
	"golang.org/x/time/rate"
)

type RestfulServer struct {
	Server *gin.Engine
	Relay  *relay.Relay
	Query  relay.IQuery
	Ws     *ws.Server
}

func (rs *RestfulServer) SetLimiter(deviceID string, deviceRate float64, deviceBurst int) {
	if rs.Relay.RateLimiterStore == nil {
		return
	}
	rs.Relay.RateLimiterStore.SetLimiter(deviceID, rate.Limit(deviceRate), deviceBurst)
}

func (rs *RestfulServer) Setup() {
	rs.Server.GET("/healthz", rs.HealthCheck)

	if rs.Ws != nil {
		rs.Server.GET("/ws", gin.WrapF(rs.Ws.Handle))
	}

	api := rs.Server.Group("/api")
	{
		api.GET("/devices", rs.GetDevices)
		api.GET("/data/:device_id", rs.GetDeviceData)
		api.GET("/data/:device_id/range", rs.GetDeviceDataRange)
		api.POST("/command", rs.PostCommand)
		api.POST("/devices/:device_id/limiter", rs.PostLimiter)
	}
}
