package lineprocessor

import (
	"context"
	"io"
	"sync"
)

// MaxJobQueueSize limits the number of pending jobs
const MaxJobQueueSize = 32

// lineJob is a batch of lines handed to a worker
type lineJob struct {
	id    int
	lines []string
}

// lineJobResult is the normalized output of one batch
type lineJobResult struct {
	id     int
	output []byte
	lines  int
}

type readOutcome struct {
	bytes int64
	err   error
}

// processLinesParallel splits the input into batches, normalizes batches on
// worker goroutines and writes the results back in input order.
func (p *Processor) processLinesParallel(ctx context.Context, reader io.Reader, writer io.Writer) (Stats, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan lineJob, MaxJobQueueSize)
	results := make(chan lineJobResult, MaxJobQueueSize)

	var wg sync.WaitGroup
	for i := 0; i < p.config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.lineWorker(ctx, jobs, results)
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	readDone := make(chan readOutcome, 1)
	go p.dispatchBatches(ctx, reader, jobs, readDone)

	// Results arrive in any order; write them back by batch id.
	var stats Stats
	var writeErr error
	pending := make(map[int]lineJobResult)
	next := 0
	for res := range results {
		if writeErr != nil {
			continue
		}
		pending[res.id] = res
		for {
			r, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			if _, err := writer.Write(r.output); err != nil {
				writeErr = err
				cancel()
				break
			}
			stats.Lines += r.lines
		}
	}

	outcome := <-readDone
	stats.BytesProcessed = outcome.bytes
	if writeErr != nil {
		return stats, writeErr
	}
	return stats, outcome.err
}

// dispatchBatches groups lines into batches of BatchSize and sends them to
// the workers. It closes jobs when the input is exhausted.
func (p *Processor) dispatchBatches(ctx context.Context, reader io.Reader, jobs chan<- lineJob, done chan<- readOutcome) {
	defer close(jobs)

	id := 0
	batch := make([]string, 0, p.config.BatchSize)
	send := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case jobs <- lineJob{id: id, lines: batch}:
			id++
			batch = make([]string, 0, p.config.BatchSize)
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	n, err := p.splitLines(reader, func(line []byte) error {
		batch = append(batch, string(line))
		if len(batch) >= p.config.BatchSize {
			return send()
		}
		return nil
	})
	if err == nil {
		err = send()
	}
	done <- readOutcome{bytes: n, err: err}
}

func (p *Processor) lineWorker(ctx context.Context, jobs <-chan lineJob, results chan<- lineJobResult) {
	for job := range jobs {
		var out []byte
		for _, line := range job.lines {
			out = append(out, p.normalizer.Normalize(line)...)
			out = append(out, LF)
		}

		select {
		case results <- lineJobResult{id: job.id, output: out, lines: len(job.lines)}:
		case <-ctx.Done():
			return
		}
	}
}
