package renderer

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"sync"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Context context.Context // Checked before the tile starts; nil means no cancellation
	Tile    *Tile
	TaskID  int         // For deterministic ordering
	Image   *image.RGBA // Shared output image to write to
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TaskID int
	Stats  RenderStats
	Error  error
}

// WorkerPool manages parallel tile rendering
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual tile rendering tasks
type Worker struct {
	ID          int
	renderer    *TileRenderer
	taskQueue   chan TileTask
	resultQueue chan TileResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// queueSize bounds the number of tasks and results that can be buffered.
func NewWorkerPool(renderer *TileRenderer, numWorkers, queueSize int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan TileTask, queueSize),
		resultQueue: make(chan TileResult, queueSize),
		numWorkers:  numWorkers,
	}

	// The tile renderer is read-only during rendering, so workers share it
	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			renderer:    renderer,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a tile task to the worker pool
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed tile result
func (wp *WorkerPool) GetResult() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		w.resultQueue <- w.renderTask(task)
	}
}

// renderTask renders one tile. A cancelled context skips the tile and a panic
// in a material or integrator is reported as the tile's error.
func (w *Worker) renderTask(task TileTask) (result TileResult) {
	result.TaskID = task.TaskID

	if task.Context != nil {
		if err := task.Context.Err(); err != nil {
			result.Error = err
			return result
		}
	}

	defer func() {
		if r := recover(); r != nil {
			result.Stats = RenderStats{}
			result.Error = fmt.Errorf("render panicked: %v", r)
		}
	}()

	// Each tile carries its own generator, so results do not depend on
	// which worker picks the task up
	sampler := core.NewRandomSampler(task.Tile.Random)
	result.Stats = w.renderer.RenderTileBounds(task.Tile.Bounds, task.Image, sampler)
	return result
}
