package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Problem describes a document that could not be read or decoded.
type Problem struct {
	Key string
	Err error
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %v", p.Key, p.Err)
}

// Verify reads every key concurrently and checks it decodes as a JSON array.
// Missing keys are fine. The returned error is only set when ctx ends early.
func Verify(ctx context.Context, p Provider, keys []string) ([]Problem, error) {
	var (
		mu       sync.Mutex
		problems []Problem
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, key := range keys {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := p.Get(key)
			if errors.Is(err, ErrNotFound) {
				return nil
			}
			if err == nil {
				var items []json.RawMessage
				err = json.Unmarshal(data, &items)
			}
			if err != nil {
				mu.Lock()
				problems = append(problems, Problem{Key: key, Err: err})
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(problems, func(i, j int) bool { return problems[i].Key < problems[j].Key })
	return problems, nil
}
