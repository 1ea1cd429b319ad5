// Package recognition simulates image-based food recognition.
//
// A Recognizer waits a fixed delay to stand in for a remote model call and
// then picks from a fixed reference table. Randomness comes from an injected
// Rand so tests can assert exact picks.
package recognition

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var (
	ErrUnreadableImage   = errors.New("image is empty or unreadable")
	ErrRecognitionFailed = errors.New("could not identify the food")
	ErrEmptyTable        = errors.New("recognition table is empty")
)

const (
	// DefaultDelay mirrors the latency of the remote service being simulated.
	DefaultDelay = 2 * time.Second

	// suggestionCount is how many alternatives SuggestAlternatives returns.
	suggestionCount = 3
)

var tracer = otel.Tracer("github.com/mmynk/platelog/internal/recognition")

// Rand is the randomness the recognizer draws from.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// Image is an uploaded photo. Only emptiness is checked.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Options configures a Recognizer. Zero fields take defaults.
type Options struct {
	Delay time.Duration
	// FailureRate is the probability in [0,1] that a call fails with
	// ErrRecognitionFailed after the delay.
	FailureRate float64
	Table       []Food
	Rand        Rand
}

// Recognizer maps images to foods from its table.
// It is safe for concurrent use.
type Recognizer struct {
	delay       time.Duration
	failureRate float64
	table       []Food

	mu  sync.Mutex // guards rng
	rng Rand
}

// New creates a Recognizer. Without an explicit Rand it uses a PCG source
// seeded from the runtime's random generator.
func New(opts Options) *Recognizer {
	r := &Recognizer{
		delay:       opts.Delay,
		failureRate: opts.FailureRate,
		table:       opts.Table,
		rng:         opts.Rand,
	}
	if r.delay < 0 {
		r.delay = 0
	}
	if r.table == nil {
		r.table = defaultTable
	}
	if r.rng == nil {
		r.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return r
}

// Delay returns the simulated latency.
func (r *Recognizer) Delay() time.Duration {
	return r.delay
}

// Recognize waits for the configured delay, then returns one table entry
// chosen uniformly at random.
func (r *Recognizer) Recognize(ctx context.Context, img Image) (Food, error) {
	ctx, span := tracer.Start(ctx, "recognition.Recognize")
	defer span.End()
	span.SetAttributes(
		attribute.String("image.filename", img.Filename),
		attribute.Int("image.bytes", len(img.Data)),
	)

	if err := r.simulate(ctx, img); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Food{}, err
	}

	r.mu.Lock()
	food := r.table[r.rng.IntN(len(r.table))]
	r.mu.Unlock()

	span.SetAttributes(attribute.String("food.name", food.Name))
	return food, nil
}

// SuggestAlternatives waits for the configured delay, then returns up to
// three distinct table entries in random order.
func (r *Recognizer) SuggestAlternatives(ctx context.Context, img Image) ([]Food, error) {
	ctx, span := tracer.Start(ctx, "recognition.SuggestAlternatives")
	defer span.End()

	if err := r.simulate(ctx, img); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	// Partial Fisher-Yates over an index permutation; the table stays untouched.
	idx := make([]int, len(r.table))
	for i := range idx {
		idx[i] = i
	}
	n := min(suggestionCount, len(idx))

	r.mu.Lock()
	for i := 0; i < n; i++ {
		j := i + r.rng.IntN(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	r.mu.Unlock()

	out := make([]Food, n)
	for i := 0; i < n; i++ {
		out[i] = r.table[idx[i]]
	}
	span.SetAttributes(attribute.Int("suggestions", n))
	return out, nil
}

// simulate validates the image, sleeps for the delay and decides whether the
// call fails.
func (r *Recognizer) simulate(ctx context.Context, img Image) error {
	if len(img.Data) == 0 {
		return ErrUnreadableImage
	}
	if len(r.table) == 0 {
		return ErrEmptyTable
	}

	if r.delay > 0 {
		timer := time.NewTimer(r.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return err
	}

	if r.failureRate > 0 {
		r.mu.Lock()
		roll := r.rng.Float64()
		r.mu.Unlock()
		if roll < r.failureRate {
			return ErrRecognitionFailed
		}
	}
	return nil
}
