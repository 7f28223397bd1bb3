package mesher

import (
	"context"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"schematicmesher/internal/types"
)

// SceneJob is one (BlockSource, BoundingBox) region to mesh, sharing the
// ScenePool's Store. Label is carried through into SceneResult.Job purely
// for caller bookkeeping (e.g. a schematic file name).
type SceneJob struct {
	Label  string
	Source types.BlockSource
	Bounds types.BoundingBox
}

// SceneResult pairs a SceneJob's output with its correlation id and the
// job's position in the original submission order.
type SceneResult struct {
	Index  int
	Job    SceneJob
	ID     uuid.UUID
	Output *MesherOutput
	Err    error
}

// ScenePool dispatches one Mesher.Mesh call per worker goroutine over a
// batch of scene jobs sharing one Store, the way the teacher's
// WorkerPool dispatches one chunk-meshing job per worker over a shared
// World. Unlike the teacher's pool, ScenePool is not long-lived: Run
// processes exactly one batch and returns when it's done.
type ScenePool struct {
	newMesh func() *Mesher
	workers int
	logger  *log.Logger
}

// NewScenePool builds a pool that runs up to workers jobs concurrently,
// each worker meshing with the Mesher that newMesh returns. Each worker
// gets its own Mesher so the StateResolver/OpacityClassifier caches inside Mesh
// are never shared across goroutines.
func NewScenePool(newMesh func() *Mesher, workers int, logger *log.Logger) *ScenePool {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "schematicmesher",
		})
	}
	return &ScenePool{newMesh: newMesh, workers: workers, logger: logger}
}

// Run meshes every job, respecting ctx cancellation, and returns results
// in submission order regardless of completion order. A cancelled
// context stops dispatching new jobs but still returns results already
// computed, with Err set to ctx.Err() for jobs that never ran.
func (p *ScenePool) Run(ctx context.Context, jobs []SceneJob) []SceneResult {
	results := make([]SceneResult, len(jobs))
	ran := make([]bool, len(jobs))
	indices := make(chan int, len(jobs))
	for i := range jobs {
		indices <- i
	}
	close(indices)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			mesher := p.newMesh()
			for {
				select {
				case i, ok := <-indices:
					if !ok {
						return
					}
					results[i] = p.runOne(ctx, mesher, i, jobs[i])
					ran[i] = true
				case <-ctx.Done():
					return
				}
			}
		}(w)
	}
	wg.Wait()

	for i, job := range jobs {
		if !ran[i] {
			results[i] = SceneResult{Index: i, Job: job, ID: uuid.New(), Err: ctx.Err()}
		}
	}
	return results
}

func (p *ScenePool) runOne(ctx context.Context, mesher *Mesher, index int, job SceneJob) SceneResult {
	id := uuid.New()
	if err := ctx.Err(); err != nil {
		return SceneResult{Index: index, Job: job, ID: id, Err: err}
	}

	workerLogger := p.logger.With("scene", job.Label, "id", id.String())
	out, err := mesher.WithLogger(workerLogger).Mesh(job.Source, job.Bounds)
	if err != nil {
		workerLogger.Error("scene mesh failed", "err", err)
		return SceneResult{Index: index, Job: job, ID: id, Err: err}
	}
	return SceneResult{Index: index, Job: job, ID: id, Output: out}
}
