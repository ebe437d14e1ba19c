// Package search finds a sequence of actions leading from an initial state to
// a final state of an implicitly defined, possibly infinite problem graph.
//
// It exposes three strategies behind the Solver contract:
//
//   - BreadthFirst: FIFO frontier, shortest solutions, memory bounded.
//   - DepthFirst: LIFO frontier bounded by a maximum depth.
//   - BestFirst: A* ordering by g+h with a caller supplied Heuristic, memory bounded.
//
// Every strategy records, for each distinct state, the action and
// predecessor that first produced it, and rebuilds the solution by walking
// those records back from the goal. States are identified by their value key,
// never by identity, so equal states reached through different paths are the
// same search node.
//
// A search runs on the calling goroutine. Stepper drives the same search one
// iteration at a time, and SolveAll spreads independent instances over a
// worker pool.
//
// Failures always come with an empty action sequence; the returned error
// tells an exhausted frontier (ErrNoSolution), a depth cutoff (ErrDepthLimit),
// a tripped memory governor (ErrMemoryLimit) and cancellation apart.
package search
