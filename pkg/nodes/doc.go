// Package nodes is the catalogue of shader node kinds.
//
// Every kind embeds shader.Base and exposes its sockets through typed In and
// Out structs whose field names match the declared socket names, so callers
// can write
//
//	sink.In.Surface.Connect(emit.Out.Emission)
//
// instead of looking sockets up by name. Kinds that carry enums or members
// which are not sockets override the corresponding shader.Node hooks.
package nodes
