package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sebastiankruger/motorplant-simulator/internal/config"
	"github.com/sebastiankruger/motorplant-simulator/internal/factory"
	"github.com/sebastiankruger/motorplant-simulator/internal/health"
	"github.com/sebastiankruger/motorplant-simulator/internal/motor"
	"github.com/sebastiankruger/motorplant-simulator/internal/opcua"
	"github.com/sebastiankruger/motorplant-simulator/internal/sim"
)

var configFile string

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Recover from panics
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Recovered from panic")
		}
	}()

	root := &cobra.Command{
		Use:   "simulator",
		Short: "Closed-loop motor factory simulator",
		Long: "Simulates a factory of production lines whose machines each drive one DC and " +
			"one AC motor under PI speed control, producing per-motor telemetry time series.",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file overlaying env settings")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run a fixed-cycle batch simulation",
		RunE:  runBatch,
	}
	runCmd.Flags().Int("cycles", 0, "override total cycle count")
	runCmd.Flags().Bool("parallel", false, "step machines concurrently within each cycle")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run continuously, publishing motor telemetry over OPC UA",
		RunE:  serve,
	}

	root.AddCommand(runCmd, serveCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configFile != "" {
		return config.LoadFile(configFile)
	}
	return config.Load()
}

func runBatch(cmd *cobra.Command, args []string) error {
	log.Info().Msg("Starting Motor Factory Simulator")

	cfg, err := loadConfig()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}
	if n, _ := cmd.Flags().GetInt("cycles"); n > 0 {
		cfg.TotalCycles = n
	}
	if p, _ := cmd.Flags().GetBool("parallel"); p {
		cfg.Parallel = true
	}

	log.Info().
		Str("name", cfg.SimulatorName).
		Int("lines", cfg.Lines).
		Int("machines_per_line", cfg.MachinesPerLine).
		Int("total_cycles", cfg.TotalCycles).
		Int("cycle_interval", cfg.CycleInterval).
		Bool("parallel", cfg.Parallel).
		Msg("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	seed := cfg.EffectiveSeed()
	fac, err := factory.New(cfg, seed)
	if err != nil {
		log.Error().Err(err).Msg("Failed to build factory")
		return err
	}

	var opts []sim.Option
	if cfg.Parallel {
		opts = append(opts, sim.WithParallel(cfg.Lines*cfg.MachinesPerLine))
	}
	runner := sim.NewRunner(fac, opts...)
	defer runner.Close()

	if err := runner.Run(ctx, cfg.TotalCycles); err != nil {
		return err
	}

	// Post-run summary from the log, per line then per motor.
	mlog := runner.Log()
	for _, lm := range fac.Metrics(mlog) {
		log.Info().
			Str("line", lm.LineID).
			Int("motors", lm.MotorCount).
			Int("cycles", lm.Cycles).
			Float64("avg_speed", lm.AvgSpeed).
			Float64("avg_efficiency", lm.AvgEfficiency).
			Float64("max_temperature", lm.MaxTemperature).
			Msg("Line summary")
	}
	for _, id := range mlog.MotorIDs() {
		p, _ := mlog.Latest(id)
		log.Debug().
			Str("motor", id).
			Int("cycle", p.Cycle).
			Float64("speed", p.Speed).
			Float64("reference", p.Reference).
			Float64("temperature", p.Temperature).
			Float64("efficiency", p.Efficiency).
			Msg("Motor final status")
	}

	return nil
}

func serve(cmd *cobra.Command, args []string) error {
	log.Info().Msg("Starting Motor Factory Telemetry Server")

	cfg, err := loadConfig()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log.Info().
		Str("name", cfg.SimulatorName).
		Int("opcua_port", cfg.OPCUAPort).
		Int("lines", cfg.Lines).
		Int("machines_per_line", cfg.MachinesPerLine).
		Dur("publish_interval", cfg.PublishInterval).
		Msg("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fac, err := factory.New(cfg, cfg.EffectiveSeed())
	if err != nil {
		log.Error().Err(err).Msg("Failed to build factory")
		return err
	}

	// OPC UA server with one namespace per machine
	opcuaServer := opcua.NewServer(cfg.OPCUAPort)
	namespaces, err := opcua.RegisterFactory(opcuaServer, fac)
	if err != nil {
		log.Error().Err(err).Msg("Failed to register machine namespaces")
		return err
	}
	if err := opcuaServer.Start(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to start OPC UA server")
		return err
	}

	healthHandler := health.NewHandler()
	healthHandler.SetOPCUAReady(true)

	// Publish every snapshot to its machine's namespace as it is produced
	publish := func(snap motor.Snapshot) {
		if ns, ok := namespaces[opcua.MachineIDOf(snap.MotorID)]; ok {
			opcuaServer.UpdateNamespaceValues(ns, opcua.SnapshotValues(snap))
		}
	}
	runner := sim.NewRunner(fac, sim.WithObserver(publish))
	defer runner.Close()

	// HTTP server for health probes
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler.HandleHealth)
	mux.HandleFunc("/health/live", healthHandler.HandleLive)
	mux.HandleFunc("/health/ready", healthHandler.HandleReady)

	healthServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HealthPort),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Int("port", cfg.HealthPort).Msg("Starting HTTP server (health)")
		if err := healthServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("HTTP server error")
		}
	}()

	// Main simulation loop: one cycle per publish interval. Pacing lives
	// here, not in the engine.
	ticker := time.NewTicker(cfg.PublishInterval)
	defer ticker.Stop()

	log.Info().
		Str("run_id", runner.RunID()).
		Dur("interval", cfg.PublishInterval).
		Msg("Starting simulation loop")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Shutdown signal received")
			goto shutdown

		case <-ticker.C:
			runner.StepOnce()
			healthHandler.SetLastCycle(runner.Cycle())

			if runner.Cycle()%100 == 0 {
				for _, lm := range fac.Metrics(runner.Log()) {
					log.Debug().
						Str("line", lm.LineID).
						Int("cycle", runner.Cycle()).
						Float64("avg_speed", lm.AvgSpeed).
						Float64("max_temperature", lm.MaxTemperature).
						Msg("Simulation tick")
				}
			}
		}
	}

shutdown:
	log.Info().Msg("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Health server shutdown error")
	}
	if err := opcuaServer.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("OPC UA server shutdown error")
	}

	log.Info().Int("cycles", runner.Cycle()).Msg("Simulator stopped")
	return nil
}
