package shader

// Socket is a typed, named slot on exactly one node.
//
// Inputs hold at most one source. Outputs keep the ordered list of inputs
// they feed. Non-closure sockets carry a literal; an optional socket may be
// left unset, in which case nothing is pushed to the engine for it.
type Socket struct {
	name     string
	typ      SocketType
	dir      Direction
	owner    Node
	optional bool

	value Value
	set   bool

	source  *Socket
	targets []*Socket
}

func (s *Socket) Name() string { return s.name }

// MarkupName is the socket name as written in markup attributes and
// connection references.
func (s *Socket) MarkupName() string { return MarkupName(s.name) }

func (s *Socket) Type() SocketType     { return s.typ }
func (s *Socket) Direction() Direction { return s.dir }
func (s *Socket) Node() Node           { return s.owner }
func (s *Socket) Optional() bool       { return s.optional }
func (s *Socket) Source() *Socket      { return s.source }
func (s *Socket) Connected() bool      { return s.source != nil }
func (s *Socket) HasValue() bool       { return s.set }

// Value returns the socket's literal and whether one is set.
func (s *Socket) Value() (Value, bool) { return s.value, s.set }

// Targets returns the inputs fed by this socket in connection order.
func (s *Socket) Targets() []*Socket {
	out := make([]*Socket, len(s.targets))
	copy(out, s.targets)
	return out
}

// SetValue replaces the socket's literal. Colors, vectors and float4 values
// are interchangeable and are retagged to the socket's declared type.
func (s *Socket) SetValue(v Value) error {
	nv, ok := v.retag(s.typ)
	if !ok {
		return NewError(ErrTypeMismatch, s.owner, s.name, nil, "cannot assign %s value to %s socket", v.typ, s.typ)
	}
	s.value = nv
	s.set = true
	return nil
}

// Unset clears the literal of an optional socket.
func (s *Socket) Unset() {
	if s.optional {
		s.value = Value{}
		s.set = false
	}
}

// Connect makes src the source of input socket s.
func (s *Socket) Connect(src *Socket) error {
	return s.connect(src, false)
}

// Reconnect is Connect that replaces an existing source instead of failing.
func (s *Socket) Reconnect(src *Socket) error {
	return s.connect(src, true)
}

func (s *Socket) connect(src *Socket, replace bool) error {
	if src == nil {
		return NewError(ErrUnresolvedReference, s.owner, s.name, nil, "nil source socket")
	}
	if s.dir != Input {
		return NewError(ErrDirection, s.owner, s.name, nil, "connection target must be an input")
	}
	if src.dir != Output {
		return NewError(ErrDirection, src.owner, src.name, nil, "connection source must be an output")
	}
	if sealed(s.owner) || sealed(src.owner) {
		return NewError(ErrSealed, s.owner, s.name, nil, "connections cannot change after commit")
	}
	if src.typ != s.typ {
		return NewError(ErrTypeMismatch, s.owner, s.name, nil, "cannot connect %s output %q of node %q to %s input",
			src.typ, src.name, src.owner.Name(), s.typ)
	}
	if s.source != nil {
		if !replace {
			return NewError(ErrAlreadyConnected, s.owner, s.name, nil, "already fed by %q of node %q",
				s.source.name, s.source.owner.Name())
		}
		s.unlink()
	}
	s.source = src
	src.targets = append(src.targets, s)
	return nil
}

// Disconnect removes the link in both directions. It is a no-op for an
// unconnected socket and fails once the owner is sealed.
func (s *Socket) Disconnect() error {
	if s.source == nil {
		return nil
	}
	if sealed(s.owner) {
		return NewError(ErrSealed, s.owner, s.name, nil, "connections cannot change after commit")
	}
	s.unlink()
	return nil
}

func (s *Socket) unlink() {
	src := s.source
	for i, t := range src.targets {
		if t == s {
			src.targets = append(src.targets[:i], src.targets[i+1:]...)
			break
		}
	}
	s.source = nil
}

func sealed(n Node) bool {
	return n != nil && n.Common().Sealed()
}
