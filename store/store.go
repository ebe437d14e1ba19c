// Package store caches solved FreeCell positions.
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/pdrpinto/search"
	"github.com/pdrpinto/search/freecell"
)

var ErrNotFound = errors.New("store: solution not found")

// Record is a cached solution. Digest identifies the solved position and
// the strategy that solved it.
type Record struct {
	Digest     string            `json:"digest"`
	Strategy   search.Kind       `json:"strategy"`
	Moves      []freecell.Action `json:"moves"`
	Expanded   int               `json:"expanded"`
	Discovered int               `json:"discovered"`
	Elapsed    time.Duration     `json:"elapsed"`
	SolvedAt   time.Time         `json:"solved_at"`
}

type Store interface {
	Get(ctx context.Context, digest string) (*Record, error)
	Put(ctx context.Context, record *Record) error
	Delete(ctx context.Context, digest string) error
	Close() error
}

// Params are the search settings a cached solution depends on. Settings a
// strategy ignores do not change its digest.
type Params struct {
	Strategy   search.Kind
	DepthLimit int
	Reopen     bool
	Weights    freecell.Weights
}

// Digest derives the cache key of a position solved with params. The position
// is hashed in its written column and cell order, since cached moves name
// concrete columns and cells.
func Digest(params Params, state freecell.State) string {
	sum := sha256.New()
	fmt.Fprintf(sum, "strategy=%s\n", params.Strategy)
	switch params.Strategy {
	case search.KindDepthFirst:
		fmt.Fprintf(sum, "depth_limit=%d\n", params.DepthLimit)
	case search.KindBestFirst:
		w := params.Weights
		fmt.Fprintf(sum, "reopen=%t\nweights=%g,%g,%g,%g\n", params.Reopen, w.Disorder, w.Link, w.Cell, w.Home)
	}
	sum.Write([]byte(state.String()))
	return hex.EncodeToString(sum.Sum(nil))
}
