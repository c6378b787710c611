package nodes

import "github.com/specialistvlad/shadergrid/pkg/shader"

// Output is the terminal sink of a shader graph. Surface must be connected;
// Volume and Displacement are optional.
type Output struct {
	shader.Base
	In struct {
		Surface      *shader.Socket
		Volume       *shader.Socket
		Displacement *shader.Socket
	}
}

func NewOutput(alloc *shader.Allocator, name string) *Output {
	n := &Output{}
	n.Init(alloc, n, KindOutput, name)
	n.In.Surface = n.Inputs().AddClosure("Surface")
	n.In.Volume = n.Inputs().AddOptional("Volume", shader.TypeClosure)
	n.In.Displacement = n.Inputs().AddOptional("Displacement", shader.TypeFloat)
	return n
}

// Terminal marks Output as the graph's sink.
func (n *Output) Terminal() {}
