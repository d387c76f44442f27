// SPDX-License-Identifier: GPL-3.0-only

// Package binding attaches debounced, live recognition to an interactive
// input such as a terminal prompt or a form field. Each Attach returns a
// Handle that owns its timer and callbacks until it is detached.
package binding

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"plmobile-server/classifier"
	"plmobile-server/commons"
	"plmobile-server/recognizer"

	"github.com/google/uuid"
)

const DefaultDebounce = 300 * time.Millisecond

var ErrHandleNotFound = errors.New("binding handle not found")

type State string

const (
	StateEmpty   State = "empty"
	StateValid   State = "valid"
	StateInvalid State = "invalid"
)

// Feedback is what a bound input shows after a recognition pass.
type Feedback struct {
	HandleID string
	Value    string
	State    State
	Display  string
	Result   recognizer.RecognitionResult
	Err      error
}

type Options struct {
	// Debounce overrides the registry delay for this handle.
	Debounce         time.Duration
	FormatOnBlur     bool
	Format           recognizer.Style
	HideOperatorInfo bool
	OnValidate       func(Feedback)
}

type Config struct {
	Debounce     time.Duration
	OnValidation func(Feedback)
}

type Registry struct {
	classifier classifier.Classifier
	config     Config

	mu      sync.Mutex
	handles map[string]*Handle
}

func NewRegistry(c classifier.Classifier, cfg Config) *Registry {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	return &Registry{
		classifier: c,
		config:     cfg,
		handles:    make(map[string]*Handle),
	}
}

func (r *Registry) Attach(opts Options) *Handle {
	if opts.Debounce <= 0 {
		opts.Debounce = r.config.Debounce
	}
	if opts.Format == "" {
		opts.Format = recognizer.Spaced
	}
	h := &Handle{
		id:       "listener_" + uuid.NewString(),
		registry: r,
		opts:     opts,
	}

	r.mu.Lock()
	r.handles[h.id] = h
	r.mu.Unlock()

	commons.Logger.Debugf("Attached binding %s", h.id)
	return h
}

// Detach stops the handle's pending work and forgets it. Detaching an id
// that is unknown or already detached returns ErrHandleNotFound.
func (r *Registry) Detach(id string) error {
	r.mu.Lock()
	h, ok := r.handles[id]
	delete(r.handles, id)
	r.mu.Unlock()
	if !ok {
		return ErrHandleNotFound
	}
	h.stop()
	commons.Logger.Debugf("Detached binding %s", id)
	return nil
}

func (r *Registry) Lookup(id string) (*Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.handles[id]
	return h, ok
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handles)
}

// Close detaches every handle.
func (r *Registry) Close() {
	r.mu.Lock()
	handles := r.handles
	r.handles = make(map[string]*Handle)
	r.mu.Unlock()

	for _, h := range handles {
		h.stop()
	}
}

type Handle struct {
	id       string
	registry *Registry
	opts     Options

	mu       sync.Mutex
	value    string
	timer    *time.Timer
	detached bool
	last     Feedback
}

func (h *Handle) ID() string {
	return h.id
}

func (h *Handle) Detach() error {
	return h.registry.Detach(h.id)
}

func (h *Handle) Value() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.value
}

// Last returns the most recent feedback.
func (h *Handle) Last() Feedback {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}

// Input records a new value and schedules validation after the debounce
// delay. Each call restarts the delay.
func (h *Handle) Input(value string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.detached {
		return
	}
	h.value = value
	if h.timer != nil {
		h.timer.Stop()
	}
	h.timer = time.AfterFunc(h.opts.Debounce, func() { h.validate(context.Background()) })
}

// Blur cancels pending validation, optionally reformats a valid value and
// validates immediately.
func (h *Handle) Blur(ctx context.Context) Feedback {
	h.mu.Lock()
	if h.timer != nil {
		h.timer.Stop()
	}
	value := h.value
	detached := h.detached
	h.mu.Unlock()
	if detached {
		return h.Last()
	}

	if h.opts.FormatOnBlur {
		if result, err := h.registry.classifier.Recognize(ctx, value); err == nil && result.Success {
			h.setValue(value, recognizer.Format(result.Normalized, h.opts.Format))
		}
	}
	return h.validate(ctx)
}

// Focus strips display formatting from a valid value when FormatOnBlur is set.
func (h *Handle) Focus(ctx context.Context) {
	if !h.opts.FormatOnBlur {
		return
	}
	value := h.Value()
	if result, err := h.registry.classifier.Recognize(ctx, value); err == nil && result.Success {
		h.setValue(value, result.Normalized)
	}
}

// setValue replaces old with next unless the value changed meanwhile.
func (h *Handle) setValue(old, next string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.detached && h.value == old {
		h.value = next
	}
}

func (h *Handle) validate(ctx context.Context) Feedback {
	value := h.Value()
	result, err := h.registry.classifier.Recognize(ctx, value)
	fb := h.feedback(value, result, err)

	h.mu.Lock()
	if h.detached {
		h.mu.Unlock()
		return fb
	}
	h.last = fb
	h.mu.Unlock()

	if h.opts.OnValidate != nil {
		h.opts.OnValidate(fb)
	}
	if h.registry.config.OnValidation != nil {
		h.registry.config.OnValidation(fb)
	}
	return fb
}

func (h *Handle) feedback(value string, result recognizer.RecognitionResult, err error) Feedback {
	fb := Feedback{HandleID: h.id, Value: value, Result: result, Err: err}
	switch {
	case strings.TrimSpace(value) == "":
		fb.State = StateEmpty
	case err != nil:
		fb.State = StateInvalid
		fb.Display = "✗ " + err.Error()
	case result.Success:
		fb.State = StateValid
		if !h.opts.HideOperatorInfo {
			fb.Display = "✓ " + result.Operator
			if result.IsM2M {
				fb.Display += " (M2M)"
			}
		}
	default:
		fb.State = StateInvalid
		fb.Display = "✗ " + result.Message
	}
	return fb
}

func (h *Handle) stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.detached = true
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
}
