package lineprocessor

import (
	"context"
	"io"
	"time"

	"github.com/baditaflorin/go_fuzzypath/internal/ports"
)

// Constants for line processing
const (
	// DefaultChunkSize defines the default size of each chunk for reading
	DefaultChunkSize = 64 * 1024 // 64KB

	// DefaultBatchSize defines how many lines to process in one batch
	DefaultBatchSize = 256

	// ContextCheckFrequency defines how often to check for context cancellation
	ContextCheckFrequency = 500 // lines

	// Common newline characters
	CR = '\r'
	LF = '\n'
)

// ProcessingConfig defines configuration for line processing
type ProcessingConfig struct {
	ChunkSize int
	BatchSize int
	// Workers > 1 normalizes batches concurrently. Output order always
	// matches input order.
	Workers int
}

// Stats summarizes one ProcessLines run.
type Stats struct {
	Lines          int
	BytesProcessed int64
	Duration       time.Duration
}

// Processor reads paths one per line, normalizes each and writes the results
// one per line. Empty lines are skipped. LF, CRLF and a lone CR all end a line.
type Processor struct {
	logger     ports.Logger
	normalizer ports.Normalizer
	config     ProcessingConfig
	chunkPool  *ChunkBufferPool
}

// NewProcessor creates a new line processor
func NewProcessor(logger ports.Logger, normalizer ports.Normalizer, config ProcessingConfig) *Processor {
	// Use defaults if not specified
	if config.ChunkSize <= 0 {
		config.ChunkSize = DefaultChunkSize
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultBatchSize
	}

	return &Processor{
		logger:     logger,
		normalizer: normalizer,
		config:     config,
		chunkPool:  NewChunkBufferPool(config.ChunkSize),
	}
}

// ProcessLines normalizes every line of reader into writer.
func (p *Processor) ProcessLines(ctx context.Context, reader io.Reader, writer io.Writer) (Stats, error) {
	startTime := time.Now()

	var stats Stats
	var err error
	if p.config.Workers > 1 {
		stats, err = p.processLinesParallel(ctx, reader, writer)
	} else {
		stats, err = p.processLinesSequential(ctx, reader, writer)
	}
	stats.Duration = time.Since(startTime)

	if err != nil {
		p.logger.Warn("Line processing stopped", "error", err, "lines", stats.Lines)
		return stats, err
	}
	p.logger.Debug("Line processing completed",
		"lines", stats.Lines,
		"bytes_processed", stats.BytesProcessed,
		"duration", stats.Duration,
	)
	return stats, nil
}

func (p *Processor) processLinesSequential(ctx context.Context, reader io.Reader, writer io.Writer) (Stats, error) {
	var stats Stats
	if err := ctx.Err(); err != nil {
		return stats, err
	}

	out := make([]byte, 0, 256)
	contextCheckCounter := 0

	n, err := p.splitLines(reader, func(line []byte) error {
		contextCheckCounter++
		if contextCheckCounter >= ContextCheckFrequency {
			contextCheckCounter = 0
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		out = append(out[:0], p.normalizer.Normalize(string(line))...)
		out = append(out, LF)
		if _, err := writer.Write(out); err != nil {
			return err
		}
		stats.Lines++
		return nil
	})
	stats.BytesProcessed = n
	return stats, err
}

// splitLines reads reader in chunks and calls fn for every non-empty line.
// Lines handed to fn are only valid during the call.
func (p *Processor) splitLines(reader io.Reader, fn func(line []byte) error) (int64, error) {
	chunkBuffer := p.chunkPool.Get()
	defer p.chunkPool.Put(chunkBuffer)

	var bytesProcessed int64
	var partial []byte
	// A CR ended the previous line; an LF right after it belongs to it.
	skipLF := false

	emit := func(line []byte) error {
		if len(line) == 0 {
			return nil
		}
		return fn(line)
	}

	for {
		n, err := reader.Read(chunkBuffer.Bytes)
		if n > 0 {
			bytesProcessed += int64(n)
			chunk := chunkBuffer.Bytes[:n]

			lineStart := 0
			for i := 0; i < n; i++ {
				b := chunk[i]
				if b != LF && b != CR {
					skipLF = false
					continue
				}
				if b == LF && skipLF {
					skipLF = false
					lineStart = i + 1
					continue
				}
				skipLF = b == CR

				line := chunk[lineStart:i]
				if len(partial) > 0 {
					partial = append(partial, line...)
					line = partial
				}
				if ferr := emit(line); ferr != nil {
					return bytesProcessed, ferr
				}
				partial = partial[:0]
				lineStart = i + 1
			}

			// Carry a partial line over to the next chunk
			if lineStart < n {
				partial = append(partial, chunk[lineStart:]...)
			}
		}

		if err != nil {
			if err != io.EOF {
				return bytesProcessed, err
			}
			return bytesProcessed, emit(partial)
		}
	}
}

// ReadLines returns the raw, non-empty lines of reader without normalizing
// them. Lines end the same way they do for ProcessLines.
func (p *Processor) ReadLines(ctx context.Context, reader io.Reader) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var lines []string
	_, err := p.splitLines(reader, func(line []byte) error {
		if len(lines)%ContextCheckFrequency == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		lines = append(lines, string(line))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}
