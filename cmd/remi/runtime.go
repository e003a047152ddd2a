package main

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"

	"remi/internal/assistant"
	"remi/internal/clock"
	"remi/internal/config"
	"remi/internal/delivery"
	"remi/internal/focus"
	"remi/internal/logging"
	"remi/internal/observability"
	"remi/internal/reminder"
	"remi/internal/session"
	"remi/internal/store"
)

// runtime bundles everything a command needs to serve turns.
type runtime struct {
	cfg       config.Config
	engine    *assistant.Engine
	reminders *reminder.Scheduler
	focus     *focus.Scheduler
	store     *store.Store
	registry  *prometheus.Registry
	logger    logging.Logger
}

// buildRuntime loads configuration and wires the schedulers, store, and turn
// engine around the given delivery sink.
func buildRuntime(sink delivery.Sink) (*runtime, error) {
	cfg, err := config.Load(viper.GetString("config"))
	if err != nil {
		return nil, err
	}
	if dir := viper.GetString("store.dir"); dir != "" {
		cfg.Store.Dir = dir
	}

	logger := logging.NewComponentLogger("remi")

	st, err := store.New(cfg.Store.Dir)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	sessions, err := session.NewManager(cfg.Session.BagCapacity)
	if err != nil {
		return nil, fmt.Errorf("session manager: %w", err)
	}

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)

	clk := clock.System()
	reminders := reminder.NewScheduler(clk, sink, logging.NewComponentLogger("reminder"), metrics)
	foc := focus.NewScheduler(clk, sink, logging.NewComponentLogger("focus"), metrics)
	foc.FocusDuration = time.Duration(cfg.Focus.FocusMinutes) * time.Minute
	foc.BreakDuration = time.Duration(cfg.Focus.BreakMinutes) * time.Minute

	engine := assistant.NewEngine(clk, reminders, foc, sessions, st, nil, logging.NewComponentLogger("assistant"))

	return &runtime{
		cfg:       cfg,
		engine:    engine,
		reminders: reminders,
		focus:     foc,
		store:     st,
		registry:  registry,
		logger:    logger,
	}, nil
}

// shutdown cancels all pending timers.
func (r *runtime) shutdown() {
	r.reminders.Shutdown()
	r.focus.Shutdown()
}
