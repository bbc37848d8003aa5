//go:build cgo

package gui

import "github.com/appengine-ltd/survive-it-weather/internal/parser"

type intentQueue struct {
	ch chan parser.Intent
}

func newIntentQueue(size int) *intentQueue {
	if size < 1 {
		size = 16
	}
	return &intentQueue{ch: make(chan parser.Intent, size)}
}

// EnqueueIntent drops the intent when the queue is full.
func (q *intentQueue) EnqueueIntent(intent parser.Intent) bool {
	if q == nil {
		return false
	}
	select {
	case q.ch <- intent:
		return true
	default:
		return false
	}
}

func (q *intentQueue) Dequeue() (parser.Intent, bool) {
	if q == nil {
		return parser.Intent{}, false
	}
	select {
	case intent := <-q.ch:
		return intent, true
	default:
		return parser.Intent{}, false
	}
}
