package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/ward3d/wardprints/internal/adapter/meshy"
	"github.com/ward3d/wardprints/internal/domain/model"
)

// StorefrontFacade exposes the subset of application functionality required by the worker.
type StorefrontFacade interface {
	GenerationsForPolling(ctx context.Context, limit int) ([]model.Generation, error)
	CheckGenerationTask(ctx context.Context, taskID string) (*model.GenerationResult, error)
	ApplyGenerationResult(ctx context.Context, gen model.Generation, result *model.GenerationResult) error
}

// GenerationProcessor polls the mesh provider and resolves generation tasks concurrently.
type GenerationProcessor struct {
	facade       StorefrontFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Generation
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewGenerationProcessor constructs the generation worker pool.
func NewGenerationProcessor(facade StorefrontFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *GenerationProcessor {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &GenerationProcessor{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Generation, batchSize*workers),
	}
}

// Start launches background processing.
func (p *GenerationProcessor) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *GenerationProcessor) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *GenerationProcessor) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *GenerationProcessor) fetchAndDispatch(ctx context.Context) {
	gens, err := p.facade.GenerationsForPolling(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("fetch generations for polling failed", slog.String("error", err.Error()))
		return
	}
	for _, gen := range gens {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- gen:
		}
	}
}

func (p *GenerationProcessor) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case gen, ok := <-p.jobs:
			if !ok {
				return
			}
			p.handleGeneration(ctx, gen)
		}
	}
}

func (p *GenerationProcessor) handleGeneration(ctx context.Context, gen model.Generation) {
	result, err := p.facade.CheckGenerationTask(ctx, gen.ID)
	if err != nil {
		var rateLimited meshy.TooManyRequestsError
		switch {
		case errors.As(err, &rateLimited):
			p.logger.Warn("mesh provider rate limited", slog.Duration("retry_after", rateLimited.RetryAfter))
			time.Sleep(rateLimited.RetryAfter)
		case errors.Is(err, meshy.ErrTaskNotFound):
			// A task can lag behind its creation on the provider side.
			time.Sleep(p.pollInterval)
		default:
			p.logger.Error("mesh task fetch failed", slog.String("generation", gen.ID), slog.String("error", err.Error()))
		}
		return
	}

	if err := p.facade.ApplyGenerationResult(ctx, gen, result); err != nil {
		p.logger.Error("apply generation result failed", slog.String("generation", gen.ID), slog.String("error", err.Error()))
	}
}
