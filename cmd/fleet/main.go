package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/rishi925-eng/Vital-Trace/pkg/common"
	"github.com/rishi925-eng/Vital-Trace/pkg/models"
	"github.com/rishi925-eng/Vital-Trace/pkg/relay"
	"github.com/rishi925-eng/Vital-Trace/pkg/simulator"
	"github.com/rishi925-eng/Vital-Trace/pkg/ws"
)

// wsEmitter bridges a relay websocket client into the simulator's
// emitter seam.
type wsEmitter struct {
	client *ws.Client
}

func (e *wsEmitter) Register(info models.DeviceInfo) error {
	return e.client.Register(info)
}

func (e *wsEmitter) Emit(record *models.TelemetryRecord) error {
	return e.client.SendTelemetry(record)
}

type fleetBox struct {
	sim    *simulator.Simulator
	client *ws.Client
}

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	serverURL := strings.TrimSpace(os.Getenv(common.EnvKeyFleetServerURL))
	if serverURL == "" {
		serverURL = "ws://127.0.0.1:5001/ws"
	}

	logger := common.GetLoggerWith(common.LoggerNameSimulator,
		zap.String(common.LoggerFieldRelayCategory, common.LoggerCategoryControlLoop))

	configs := simulator.DefaultFleet()
	boxes := make([]fleetBox, 0, len(configs))

	for _, config := range configs {
		client, err := ws.Dial(serverURL)
		if err != nil {
			logger.Error("Failed to connect box to relay",
				zap.String("device_id", config.DeviceID), zap.Error(err))
			continue
		}

		sim := simulator.New(config, &wsEmitter{client: client})

		go func() {
			err := client.Listen(ws.Handlers{
				OnCommand: func(delivery relay.CommandDelivery) {
					sim.HandleCommand(delivery.Command, delivery.Value)
				},
			})
			logger.Info("Box connection closed",
				zap.String("device_id", sim.Config.DeviceID), zap.Error(err))
		}()

		if err := sim.Start(); err != nil {
			logger.Error("Failed to start box",
				zap.String("device_id", config.DeviceID), zap.Error(err))
			client.Close()
			continue
		}

		boxes = append(boxes, fleetBox{sim: sim, client: client})
		fmt.Printf("connected %s (%s)\n", config.DeviceID, config.Name)

		// Stagger connections so the relay sees the fleet come online
		// the way real deployments do.
		time.Sleep(2 * time.Second)
	}

	if len(boxes) == 0 {
		log.Fatal("No boxes could connect to " + serverURL)
	}

	fmt.Printf("fleet of %v boxes running against %s\n", len(boxes), serverURL)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	fmt.Println("shutting down fleet")
	for _, box := range boxes {
		box.sim.Stop()
		box.client.Close()
	}
}
