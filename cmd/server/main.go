package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/rishi925-eng/Vital-Trace/pkg/common"
	"github.com/rishi925-eng/Vital-Trace/pkg/db"
	relayHttp "github.com/rishi925-eng/Vital-Trace/pkg/http"
	"github.com/rishi925-eng/Vital-Trace/pkg/relay"
	"github.com/rishi925-eng/Vital-Trace/pkg/sink"
	"github.com/rishi925-eng/Vital-Trace/pkg/ws"
)

func main() {
	var err error

	err = godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	var dbInstance *db.DB
	relayDbType := os.Getenv(common.EnvKeyRelayDBType)
	switch relayDbType {
	case "file":
		dbInstance = db.GetInstance(db.UseSqliteDialector())
	case "memory":
		dbInstance = db.GetInstance(db.UseMemorySqliteDialector())
	default:
		log.Fatal("Unknown RELAY_DB_TYPE: " + relayDbType)
	}

	httpHostPort := strings.TrimSpace(os.Getenv(common.EnvKeyRelayHttpHostPort))

	var defaultRate float64
	var defaultBurst int64

	if defaultRate, err = strconv.ParseFloat(os.Getenv(common.EnvKeyRelayDefaultRate), 64); err != nil {
		log.Fatal("Invalid RELAY_DEFAULT_RATE, or not set in .env, should be a float64 value")
	}

	if defaultBurst, err = strconv.ParseInt(os.Getenv(common.EnvKeyRelayDefaultBurst), 10, 64); err != nil {
		log.Fatal("Invalid RELAY_DEFAULT_BURST, or not set in .env, should be an int value")
	}

	logger := common.GetLogger()

	store := sink.NewStore(*dbInstance)
	store.Start()
	defer store.Stop()

	relayCore := relay.New(relay.NewRegistry())
	relayCore.WithServices(relay.ServiceOpts{
		Sink:             store,
		RateLimiterStore: relay.NewRateLimiterStore(rate.Limit(defaultRate), int(defaultBurst)),
	})

	if httpHostPort == "" {
		// fallback to default http port
		httpHostPort = ":5001"
	}

	logger.Info("Starting HTTP server on port " + httpHostPort)
	rs := &relayHttp.RestfulServer{
		Server: gin.Default(),
		Relay:  relayCore,
		Query:  store,
		Ws:     ws.NewServer(relayCore),
	}
	rs.Setup()

	logger.Info("http server created with:",
		zap.String("default_limiter",
			fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", defaultRate, defaultBurst)))

	logger.Info("Starting HTTP server on: " + httpHostPort)
	if err := rs.Server.Run(httpHostPort); err != nil {
		log.Fatalf("http server failed to serve: %v", err)
	}
}
