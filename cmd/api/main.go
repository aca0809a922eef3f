package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/attendly/attendance-engine-go/internal/config"
	"github.com/attendly/attendance-engine-go/internal/domain/timeline"
	appHTTP "github.com/attendly/attendance-engine-go/internal/handler/http"
	"github.com/attendly/attendance-engine-go/internal/pkg/events"
	"github.com/attendly/attendance-engine-go/internal/pkg/inflight"
	"github.com/attendly/attendance-engine-go/internal/pkg/jwt"
	"github.com/attendly/attendance-engine-go/internal/pkg/timemath"
	"github.com/attendly/attendance-engine-go/internal/pkg/watchdog"
	"github.com/attendly/attendance-engine-go/internal/repository/hrisapi"
	attendanceService "github.com/attendly/attendance-engine-go/internal/service/attendance"
	dayOffService "github.com/attendly/attendance-engine-go/internal/service/dayoff"
	statsService "github.com/attendly/attendance-engine-go/internal/service/stats"
	timelineService "github.com/attendly/attendance-engine-go/internal/service/timeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	backend := hrisapi.NewClient(cfg.Backend.BaseURL, cfg.Backend.APIKey, cfg.Backend.Timeout)
	attendanceRepo := hrisapi.NewAttendanceRepository(backend)
	dayOffRepo := hrisapi.NewDayOffRepository(backend)
	holidayRepo := hrisapi.NewHolidayRepository(backend)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)
	hub := events.NewHub()
	registry := inflight.NewRegistry()

	workday := timeline.Workday{
		Start:   cfg.Workday.Start,
		End:     cfg.Workday.End,
		Display: timemath.Window{Start: cfg.Workday.DisplayStart, End: cfg.Workday.DisplayEnd},
	}
	watchdogCfg := watchdog.Config{
		WarnAt:  cfg.Workday.WarnAt,
		ForceAt: cfg.Workday.ForceAt,
		Tick:    cfg.Workday.Tick,
	}

	builder := timelineService.NewBuilder(workday)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, holidayRepo, builder, registry, hub, watchdogCfg, nil)
	dayOffSvc := dayOffService.NewDayOffService(dayOffRepo, attendanceRepo, holidayRepo, registry, hub, nil)
	statsSvc := statsService.NewStatsService(attendanceRepo, holidayRepo, nil)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, statsSvc)
	dayOffHandler := appHTTP.NewDayOffHandler(dayOffSvc)
	eventsHandler := appHTTP.NewEventsHandler(hub, JWTService)

	router := appHTTP.NewRouter(JWTService, attendanceHandler, dayOffHandler, eventsHandler)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	attendanceSvc.Stop()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Println("Shutdown error:", err)
	}
}
