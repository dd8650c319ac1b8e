package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
)

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetDevices answers with the live fleet as currently registered.
func (rs *RestfulServer) GetDevices(c *gin.Context) {
	c.JSON(http.StatusOK, rs.Relay.Registry.FleetList())
}

const defaultDataLimit = 100

func (rs *RestfulServer) GetDeviceData(c *gin.Context) {
	deviceID := c.Param("device_id")

	limit := defaultDataLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	records, err := rs.Query.TelemetryByDeviceAndLimit(deviceID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

func (rs *RestfulServer) GetDeviceDataRange(c *gin.Context) {
	deviceID := c.Param("device_id")

	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start must be an RFC3339 timestamp"})
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must be an RFC3339 timestamp"})
		return
	}

	records, err := rs.Query.TelemetryByDeviceAndWindow(deviceID, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

type CommandRequest struct {
	DeviceID string `json:"device_id"`
	Command  string `json:"command"`
	Value    string `json:"value"`
}

var commandRequestSchema = z.Struct(z.Shape{
	"DeviceID": z.String().Min(1).Required(),
	"Command":  z.String().Min(1).Required(),
	"Value":    z.String(),
})

// PostCommand feeds the command router from the REST side. The answer
// means accepted, not delivered.
func (rs *RestfulServer) PostCommand(c *gin.Context) {
	var req CommandRequest
	if err := commandRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	result := rs.Relay.Dispatch(nil, req.DeviceID, req.Command, req.Value)

	c.JSON(http.StatusOK, gin.H{"success": result.Accepted, "message": "Command sent"})
}

type LimiterRequest struct {
	Rate  float64 `json:"rate"`
	Burst int     `json:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"rate":  z.Float64().Required(),
	"burst": z.Int().Required(),
})

func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	deviceID := c.Param("device_id")

	var req LimiterRequest
	if err := limiterRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	rs.SetLimiter(deviceID, req.Rate, req.Burst)

	c.Status(http.StatusOK)
}
