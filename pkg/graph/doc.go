// Package graph assembles shader nodes into a committable shader.
//
// A Shader owns the ID allocator node constructors draw from and the set of
// nodes added to it. The graph that gets committed is implicit: the single
// terminal Output node plus everything reachable upstream through its
// inputs. Plan validates that subgraph and orders it producers-first; Commit
// pushes it to an engine.
package graph
