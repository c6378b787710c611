// Package shader defines the shader node graph model: typed sockets, the
// ordered socket collections owned by each node, the node base every kind
// embeds, and the error taxonomy shared by construction, validation,
// serialization and commit.
//
// Connections are made socket-to-socket. The consuming input holds a
// reference to exactly one producing output, and the output keeps the
// ordered set of inputs it feeds:
//
//	sh := graph.New("glow")
//	emit := nodes.NewEmission(sh.Alloc(), "emit")
//	sink := nodes.NewOutput(sh.Alloc(), "output")
//	err := sink.In.Surface.Connect(emit.Out.Emission)
//
// The model is not safe for concurrent mutation. Callers that share a graph
// under construction between goroutines must serialize access themselves.
package shader
