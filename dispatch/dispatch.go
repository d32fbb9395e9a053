// Package dispatch is the asynchronous boundary of the engine: callers submit
// named operations with radix-tagged string parameters and receive results
// tagged with their request identifier, in whatever order they complete.
package dispatch

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/go-errors/errors"
	"github.com/sirupsen/logrus"

	sra "github.com/mentalpoker/sra"
	"github.com/mentalpoker/sra/internal/common"
)

// Operation names accepted on the boundary.
const (
	OpRandomPrime       = "randomPrime"
	OpCheckPrime        = "checkPrime"
	OpRandomKeypair     = "randomKeypair"
	OpRandomQuadResidue = "randomQuadResidues"
	OpCheckResidues     = "checkResidues"
	OpEncrypt           = "encrypt"
	OpDecrypt           = "decrypt"
)

// ErrUnknownOp is returned for an operation name the engine does not serve.
var ErrUnknownOp = errors.New("unknown operation")

type (
	// Request names an operation and carries its parameters as boundary
	// strings. Every integer parameter is radix-tagged: "0x" means
	// hexadecimal, bare digits mean decimal.
	Request struct {
		ID     string   `json:"id"`
		Op     string   `json:"op"`
		Params []string `json:"params"`
	}

	// Response carries the request's results, or the error that stopped it,
	// tagged with the request identifier. Results render in the radix of
	// the parameter that governs them.
	Response struct {
		ID     string   `json:"id"`
		Result []string `json:"result,omitempty"`
		Err    string   `json:"error,omitempty"`
	}
)

// Engine serves requests on a pool of workers, one per CPU by default. All
// operations are pure functions over their parameters, so workers share
// nothing but the randomness source and need no locking.
type Engine struct {
	source  *common.Source
	workers int

	reqs  chan Request
	resps chan Response
	ready chan struct{}
	start sync.Once
}

// New creates an engine over the given randomness source; nil means the
// process default.
func New(source *common.Source) *Engine {
	if source == nil {
		source = common.DefaultSource()
	}
	workers := runtime.GOMAXPROCS(0)
	return &Engine{
		source:  source,
		workers: workers,
		reqs:    make(chan Request, workers),
		resps:   make(chan Response, 64),
		ready:   make(chan struct{}),
	}
}

// Start launches the worker pool and then signals readiness. Workers exit
// when ctx is cancelled; long searches inside a request observe the same
// cancellation.
func (e *Engine) Start(ctx context.Context) {
	e.start.Do(func() {
		for i := 0; i < e.workers; i++ {
			go e.worker(ctx)
		}
		close(e.ready)
		sra.Logger.WithField("workers", e.workers).Info("sra engine ready")
	})
}

// Ready is closed once the engine accepts requests.
func (e *Engine) Ready() <-chan struct{} {
	return e.ready
}

// Submit queues a request, blocking until a worker can take it or ctx is
// cancelled.
func (e *Engine) Submit(ctx context.Context, req Request) error {
	select {
	case e.reqs <- req:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Results delivers responses as they complete, in no particular order.
func (e *Engine) Results() <-chan Response {
	return e.resps
}

func (e *Engine) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-e.reqs:
			start := time.Now()
			result, err := e.handle(ctx, req)

			resp := Response{ID: req.ID, Result: result}
			fields := logrus.Fields{"op": req.Op, "id": req.ID, "took": time.Since(start)}
			if err != nil {
				resp.Err = err.Error()
				sra.Logger.WithFields(fields).WithError(err).Warn("request failed")
			} else {
				sra.Logger.WithFields(fields).Debug("request served")
			}

			select {
			case e.resps <- resp:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (e *Engine) handle(ctx context.Context, req Request) ([]string, error) {
	switch req.Op {
	case OpRandomPrime:
		return e.randomPrime(ctx, req.Params)
	case OpCheckPrime:
		return checkPrime(req.Params)
	case OpRandomKeypair:
		return e.randomKeypair(req.Params)
	case OpRandomQuadResidue:
		return randomQuadResidues(req.Params)
	case OpCheckResidues:
		return checkResidues(req.Params)
	case OpEncrypt:
		return transform(req.Params, true)
	case OpDecrypt:
		return transform(req.Params, false)
	default:
		return nil, ErrUnknownOp
	}
}
