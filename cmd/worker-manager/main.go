// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"scriptgen-workers/internal/common/agents"
	"scriptgen-workers/internal/common/camunda"
	"scriptgen-workers/internal/common/config"
	"scriptgen-workers/internal/common/database"
	"scriptgen-workers/internal/common/llm"
	"scriptgen-workers/internal/common/logger"
	"scriptgen-workers/internal/common/observability"
	"scriptgen-workers/internal/knowledge"
	"scriptgen-workers/internal/library"
	"scriptgen-workers/pkg/registry"

	// Script generation workers (5)
	fs "scriptgen-workers/internal/workers/script-generation/finalize-script"
	gsd "scriptgen-workers/internal/workers/script-generation/generate-script-drafts"
	rsd "scriptgen-workers/internal/workers/script-generation/refine-script-draft"
	rp "scriptgen-workers/internal/workers/script-generation/research-product"
	rsc "scriptgen-workers/internal/workers/script-generation/retrieve-script-context"

	// Agent workflow workers (3)
	cs "scriptgen-workers/internal/workers/agents/competitor-spy"
	oas "scriptgen-workers/internal/workers/agents/orchestrate-agent-scripts"
	rvv "scriptgen-workers/internal/workers/agents/repurpose-viral-video"

	// Library workers (1)
	ss "scriptgen-workers/internal/workers/library/save-script"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs, err := observability.New(cfg.App.Name, prometheus.DefaultRegisterer)
	if err != nil {
		zapLog.Fatal("observability setup failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Init Zeebe Client with retry ---
	zeebeClient, err := camunda.Connect(ctx, cfg.Camunda, camunda.DefaultRetryConfig, log)
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully", zap.String("broker", cfg.Camunda.BrokerAddress))

	// --- Init Redis with retry ---
	redis := database.NewRedis(cfg.Redis)
	if err := redis.PingWithRetry(ctx, 10); err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	zapLog.Info("Redis connected successfully")

	// --- Knowledge base ---
	kb, err := loadKnowledgeBase(cfg.Knowledge)
	if err != nil {
		zapLog.Fatal("knowledge base load failed", zap.Error(err))
	}
	src := knowledge.NewRandomSource()
	if cfg.Knowledge.Seed != 0 {
		src = knowledge.NewSeededSource(cfg.Knowledge.Seed)
	}
	retriever := knowledge.NewRetriever(kb,
		knowledge.WithHookCount(cfg.Knowledge.HookCount),
		knowledge.WithRandSource(src),
	)

	// --- External service clients ---
	generator, err := llm.NewClient(ctx, cfg.GenAI, log)
	if err != nil {
		zapLog.Fatal("genai client init failed", zap.Error(err))
	}

	var agentsClient *agents.Client
	if cfg.Agents.BaseURL != "" {
		agentsClient, err = agents.NewClient(cfg.Agents, log)
		if err != nil {
			zapLog.Fatal("agents client init failed", zap.Error(err))
		}
		zapLog.Info("Agent webhooks enabled", zap.String("baseURL", cfg.Agents.BaseURL))
	} else {
		zapLog.Info("No agents.base_url configured, agent workers fall back to direct model calls")
	}

	store := library.NewStore(redis.Client, cfg.Library).WithLogger(log)

	// --- Register workers ---
	activities := registry.Builtin()
	for taskType := range cfg.Workers {
		if _, ok := activities.Find(taskType); !ok {
			zapLog.Warn("config has settings for an unknown worker", zap.String("taskType", taskType))
		}
	}

	configured := map[string]bool{
		registry.BackendGenAI:  true,
		registry.BackendRedis:  true,
		registry.BackendAgents: agentsClient != nil,
	}

	temperature := float32(cfg.GenAI.Temperature)
	var workers []worker.JobWorker
	register := func(taskType string, handler worker.JobHandler) {
		if a, ok := activities.Find(taskType); ok && !a.Available(configured) {
			zapLog.Info("Skipping worker, backend not configured",
				zap.String("taskType", taskType), zap.Strings("backends", a.Backends))
			return
		}
		w := camunda.StartWorker(zeebeClient, taskType, config.GetWorkerConfig(cfg, taskType), handler, log)
		if w != nil {
			workers = append(workers, w)
		}
	}
	timeout := func(taskType string) time.Duration {
		return config.GetWorkerConfig(cfg, taskType).TimeoutDuration()
	}

	register(rsc.TaskType, rsc.NewHandler(
		&rsc.Config{Timeout: timeout(rsc.TaskType)},
		retriever, obs, log,
	).Handle)

	register(rp.TaskType, rp.NewHandler(
		&rp.Config{
			Model:       cfg.GenAI.ResearchModel,
			Temperature: temperature,
			Timeout:     timeout(rp.TaskType),
			MaxSources:  3,
		},
		generator, obs, log,
	).Handle)

	register(gsd.TaskType, gsd.NewHandler(
		&gsd.Config{
			Model:          cfg.GenAI.DraftModel,
			ThinkingBudget: int32(cfg.GenAI.ThinkingBudget),
			Timeout:        timeout(gsd.TaskType),
		},
		generator, retriever, obs, log,
	).Handle)

	register(fs.TaskType, fs.NewHandler(
		&fs.Config{Model: cfg.GenAI.DraftModel, Timeout: timeout(fs.TaskType)},
		generator, obs, log,
	).WithAgents(agentsClient).Handle)

	register(rsd.TaskType, rsd.NewHandler(
		&rsd.Config{Model: cfg.GenAI.DraftModel, Timeout: timeout(rsd.TaskType)},
		generator, obs, log,
	).Handle)

	register(oas.TaskType, oas.NewHandler(
		&oas.Config{Timeout: timeout(oas.TaskType)},
		agentsClient, obs, log,
	).Handle)

	register(cs.TaskType, cs.NewHandler(
		&cs.Config{Model: cfg.GenAI.ResearchModel, Timeout: timeout(cs.TaskType)},
		agentsClient, generator, retriever, obs, log,
	).Handle)

	register(rvv.TaskType, rvv.NewHandler(
		&rvv.Config{
			Model:       cfg.GenAI.DraftModel,
			Temperature: 0.7,
			Timeout:     timeout(rvv.TaskType),
		},
		agentsClient, generator, obs, log,
	).Handle)

	register(ss.TaskType, ss.NewHandler(
		&ss.Config{Timeout: timeout(ss.TaskType)},
		store, obs, log,
	).Handle)

	zapLog.Info("Workers registered", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]interface{}{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{"zeebe": "ok", "redis": "ok"}
		status := http.StatusOK
		if err := zeebeClient.HealthCheck(r.Context()); err != nil {
			checks["zeebe"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if err := redis.Ping(r.Context()); err != nil {
			checks["redis"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		state := "ready"
		if status != http.StatusOK {
			state = "not ready"
		}
		writeStatus(w, status, map[string]interface{}{
			"status": state,
			"checks": checks,
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/health/agents", func(w http.ResponseWriter, r *http.Request) {
		if agentsClient == nil {
			writeStatus(w, http.StatusOK, agents.Health{Healthy: false, Workflows: map[string]bool{}})
			return
		}
		health := agentsClient.CheckHealth(r.Context())
		status := http.StatusOK
		if !health.Healthy {
			status = http.StatusServiceUnavailable
		}
		writeStatus(w, status, health)
	})
	mux.HandleFunc("/activities", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, activities)
	})
	mux.Handle("/metrics", promhttp.Handler())

	libraryHandler := library.NewHTTPHandler(store, cfg.Library.ListLimit, log)
	mux.Handle("/library", libraryHandler)
	mux.Handle("/library/", libraryHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.HTTPPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	zapLog.Info("Shutdown signal received, stopping workers...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Close()
		w.AwaitClose()
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping HTTP server", zap.Error(err))
	}
	if err := zeebeClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}
	if err := redis.Close(); err != nil {
		zapLog.Error("Error closing Redis client", zap.Error(err))
	}
	obs.Shutdown(shutdownCtx)

	zapLog.Info("Worker manager stopped gracefully")
}

func loadKnowledgeBase(cfg config.KnowledgeConfig) (*knowledge.KnowledgeBase, error) {
	if cfg.Path == "" {
		return knowledge.Default()
	}
	return knowledge.Load(cfg.Path)
}

func writeStatus(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
