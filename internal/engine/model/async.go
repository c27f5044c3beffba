package model

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/diorama/internal/engine/scene"
	"github.com/Faultbox/diorama/internal/logger"
)

var asyncLog = logger.Component("model.async")

// Result is the outcome of one asynchronous load.
type Result struct {
	Path     string
	Node     *scene.Node
	Err      error
	Duration time.Duration

	onLoad  func(*scene.Node)
	onError func(error)
}

// AsyncLoader runs loads in background goroutines and hands the results
// back to the frame thread through Poll, so continuations never run
// concurrently with a frame.
type AsyncLoader struct {
	loader  Loader
	results chan Result
	pending int
}

// NewAsyncLoader wraps loader.
func NewAsyncLoader(loader Loader) *AsyncLoader {
	return &AsyncLoader{
		loader:  loader,
		results: make(chan Result, 4),
	}
}

// Load starts loading path. Exactly one of onLoad and onError is called
// from a later Poll.
func (a *AsyncLoader) Load(path string, onLoad func(*scene.Node), onError func(error)) {
	a.pending++
	asyncLog.Info("loading model", zap.String("path", path))

	go func() {
		start := time.Now()
		node, err := a.loader.Load(path)
		a.results <- Result{
			Path:     path,
			Node:     node,
			Err:      err,
			Duration: time.Since(start),
			onLoad:   onLoad,
			onError:  onError,
		}
	}()
}

// Pending returns the number of loads whose continuations have not run.
func (a *AsyncLoader) Pending() int {
	return a.pending
}

// Poll runs the continuations of every finished load. It never blocks and
// returns the number of continuations run.
func (a *AsyncLoader) Poll() int {
	ran := 0
	for {
		select {
		case r := <-a.results:
			a.pending--
			ran++
			a.dispatch(r)
		default:
			return ran
		}
	}
}

// Wait blocks until every pending load has finished and its continuation
// has run. Continuations may start further loads, which are waited for too.
func (a *AsyncLoader) Wait() {
	for a.pending > 0 {
		r := <-a.results
		a.pending--
		a.dispatch(r)
	}
}

func (a *AsyncLoader) dispatch(r Result) {
	if r.Err != nil {
		if r.onError != nil {
			r.onError(r.Err)
		}
		return
	}
	asyncLog.Debug("model ready",
		zap.String("path", r.Path),
		zap.Duration("took", r.Duration))
	if r.onLoad != nil {
		r.onLoad(r.Node)
	}
}
