// Package arena stores the states discovered by a search together with their
// provenance, so a solution can be rebuilt by walking predecessor handles.
package arena

// Handle identifies a node inside an Arena.
type Handle int

// NoParent marks the root node.
const NoParent Handle = -1

// Node is the provenance record of one discovered state.
type Node[StateType any, ActionType any, KeyType comparable] struct {
	Key    KeyType
	State  StateType
	Action ActionType
	Parent Handle
	Depth  int
}

// Arena owns every node discovered by one search. Nodes are keyed by the
// state's value key, so equal states always collide on the same handle.
type Arena[StateType any, ActionType any, KeyType comparable] struct {
	nodes []Node[StateType, ActionType, KeyType]
	index map[KeyType]Handle
}

func New[StateType any, ActionType any, KeyType comparable]() *Arena[StateType, ActionType, KeyType] {
	return &Arena[StateType, ActionType, KeyType]{
		nodes: make([]Node[StateType, ActionType, KeyType], 0, 64),
		index: make(map[KeyType]Handle, 64),
	}
}

// Root records the initial state. It must be the first insertion.
func (a *Arena[StateType, ActionType, KeyType]) Root(key KeyType, state StateType) Handle {
	h := Handle(len(a.nodes))
	a.nodes = append(a.nodes, Node[StateType, ActionType, KeyType]{Key: key, State: state, Parent: NoParent})
	a.index[key] = h
	return h
}

// Insert records a state reached from parent through action. If the key is
// already known the existing handle is returned with inserted set to false
// and the stored record is left untouched.
func (a *Arena[StateType, ActionType, KeyType]) Insert(
	key KeyType,
	state StateType,
	parent Handle,
	action ActionType,
) (h Handle, inserted bool) {
	if existing, ok := a.index[key]; ok {
		return existing, false
	}
	h = Handle(len(a.nodes))
	a.nodes = append(a.nodes, Node[StateType, ActionType, KeyType]{
		Key:    key,
		State:  state,
		Action: action,
		Parent: parent,
		Depth:  a.nodes[parent].Depth + 1,
	})
	a.index[key] = h
	return h, true
}

// Lookup returns the handle recorded for key.
func (a *Arena[StateType, ActionType, KeyType]) Lookup(key KeyType) (Handle, bool) {
	h, ok := a.index[key]
	return h, ok
}

// Node returns the record behind h. The pointer is invalidated by the next Insert.
func (a *Arena[StateType, ActionType, KeyType]) Node(h Handle) *Node[StateType, ActionType, KeyType] {
	return &a.nodes[h]
}

// Len returns the number of distinct keys recorded.
func (a *Arena[StateType, ActionType, KeyType]) Len() int {
	return len(a.index)
}

// Supersede records state as a new node for key, reached from parent through
// action, and points the index at it. The previous node keeps its record, so
// trails already running through it stay consistent with their states.
func (a *Arena[StateType, ActionType, KeyType]) Supersede(
	key KeyType,
	state StateType,
	parent Handle,
	action ActionType,
) Handle {
	h := Handle(len(a.nodes))
	a.nodes = append(a.nodes, Node[StateType, ActionType, KeyType]{
		Key:    key,
		State:  state,
		Action: action,
		Parent: parent,
		Depth:  a.nodes[parent].Depth + 1,
	})
	a.index[key] = h
	return h
}

// Trail returns the handles from the root to h.
func (a *Arena[StateType, ActionType, KeyType]) Trail(h Handle) []Handle {
	trail := make([]Handle, 0, a.nodes[h].Depth+1)
	for current := h; current != NoParent; current = a.nodes[current].Parent {
		trail = append(trail, current)
	}
	// reverse trail
	for i, j := 0, len(trail)-1; i < j; i, j = i+1, j-1 {
		trail[i], trail[j] = trail[j], trail[i]
	}
	return trail
}

// Actions rebuilds the forward action sequence leading from the root to h.
func (a *Arena[StateType, ActionType, KeyType]) Actions(h Handle) []ActionType {
	trail := a.Trail(h)
	actions := make([]ActionType, 0, len(trail)-1)
	for _, step := range trail[1:] {
		actions = append(actions, a.nodes[step].Action)
	}
	return actions
}

// States rebuilds the states visited from the root to h, both included.
func (a *Arena[StateType, ActionType, KeyType]) States(h Handle) []StateType {
	trail := a.Trail(h)
	states := make([]StateType, 0, len(trail))
	for _, step := range trail {
		states = append(states, a.nodes[step].State)
	}
	return states
}
