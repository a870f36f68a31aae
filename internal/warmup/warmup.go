package warmup

import (
	"context"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/baditaflorin/go_fuzzypath/internal/ports"
)

// WarmupConfig defines configuration for warming up the normalizers
type WarmupConfig struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Number of segments in each sample path
	SampleDepth int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultWarmupConfig returns the default warmup configuration
func DefaultWarmupConfig() WarmupConfig {
	return WarmupConfig{
		Concurrency: runtime.NumCPU(),
		Iterations:  1000,
		SampleDepth: 8,
		Duration:    5 * time.Second,
		ForceGC:     true,
	}
}

// Report summarizes a warmup run.
type Report struct {
	Normalizations int64
	Duration       time.Duration
	Interrupted    bool
}

// Manager handles warmup of registered normalizers
type Manager struct {
	logger      ports.Logger
	normalizers []ports.Normalizer
	config      WarmupConfig
}

// NewManager creates a new warmup manager
func NewManager(logger ports.Logger, config WarmupConfig) *Manager {
	if config.Concurrency <= 0 {
		config.Concurrency = 1
	}
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterNormalizer adds a normalizer to be warmed up
func (wm *Manager) RegisterNormalizer(norm ports.Normalizer) {
	wm.normalizers = append(wm.normalizers, norm)
}

// WarmUp runs every registered normalizer over a set of sample paths.
// It stops early when ctx is done or the configured duration elapses.
func (wm *Manager) WarmUp(ctx context.Context) Report {
	startTime := time.Now()
	wm.logger.Info("Starting normalizer warmup",
		"normalizers", len(wm.normalizers),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	// Create a context with timeout if duration is specified
	warmupCtx := ctx
	if wm.config.Duration > 0 {
		var cancel context.CancelFunc
		warmupCtx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	}

	count := wm.warmUpNormalizers(warmupCtx)

	// Force garbage collection if configured
	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	report := Report{
		Normalizations: count,
		Duration:       time.Since(startTime),
		Interrupted:    warmupCtx.Err() != nil,
	}
	wm.logger.Info("Normalizer warmup completed",
		"duration", report.Duration,
		"normalizations", report.Normalizations,
		"interrupted", report.Interrupted,
	)
	return report
}

// warmUpNormalizers runs warmup for all registered normalizers
func (wm *Manager) warmUpNormalizers(ctx context.Context) int64 {
	if len(wm.normalizers) == 0 {
		return 0
	}

	samples := generateSamplePaths(wm.config.SampleDepth)

	var count atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for j := 0; j < wm.config.Iterations; j++ {
				select {
				case <-ctx.Done():
					return
				default:
				}

				sample := samples[j%len(samples)]
				for _, normalizer := range wm.normalizers {
					_ = normalizer.Normalize(sample)
					count.Add(1)
				}
			}
		}()
	}

	wg.Wait()
	return count.Load()
}

// generateSamplePaths builds POSIX, Windows and UNC style paths with the given
// number of segments, covering the ASCII and non-ASCII code paths.
func generateSamplePaths(depth int) []string {
	if depth <= 0 {
		depth = 1
	}
	segments := []string{
		"Users", "home", "PROJECTS", "src", "Données", "ÜBER", "build", "İstanbul",
	}

	parts := make([]string, depth)
	for i := range parts {
		parts[i] = segments[i%len(segments)]
	}

	posix := strings.Join(parts, "/")
	windows := strings.Join(parts, `\`)
	return []string{
		"/" + posix,
		"//" + strings.Join(parts, "//") + "/",
		`C:\` + windows + `\`,
		`\\server\share\` + windows,
		strings.ToLower(posix),
	}
}
