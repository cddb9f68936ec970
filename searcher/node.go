package searcher

import "durak/game"

// noNode marks the absence of a node handle.
const noNode = int32(-1)

// node is one tree node. Children are stored as parallel action/handle
// slices and expand in first-encountered order, which keeps tie-breaks
// stable. The untried list is populated up front when the node's state is
// fixed (determinized search) and left empty when legal actions are only
// discovered per determinization (information set search).
type node struct {
	parent   int32
	player   int         // seat that chose the edge action into this node
	action   game.Action // edge action from the parent
	actions  []game.Action
	children []int32
	untried  []game.Action
	wins     float64
	visits   int
}

// childFor returns the handle of the child reached by action, or noNode.
func (n *node) childFor(action game.Action) int32 {
	for i, a := range n.actions {
		if a == action {
			return n.children[i]
		}
	}
	return noNode
}

// tree is an arena of nodes indexed by int32 handles. The root is handle 0.
// Parent and child relations are indices, so the whole tree is dropped in
// one piece once a decision is made.
type tree struct {
	nodes []node
}

func newTree(rootUntried []game.Action) *tree {
	t := &tree{nodes: make([]node, 0, 1024)}
	t.nodes = append(t.nodes, node{
		parent:  noNode,
		player:  game.NoPlayer,
		untried: rootUntried,
	})
	return t
}

func (t *tree) at(idx int32) *node {
	return &t.nodes[idx]
}

// add appends a fresh node and links it under parent. Pointers into the
// arena obtained before add may be stale afterwards.
func (t *tree) add(parent int32, player int, action game.Action) int32 {
	t.nodes = append(t.nodes, node{parent: parent, player: player, action: action})
	child := int32(len(t.nodes) - 1)
	p := t.at(parent)
	p.actions = append(p.actions, action)
	p.children = append(p.children, child)
	return child
}

// backpropagate walks from idx to the root, counting the visit everywhere
// and crediting the outcome to the seat that chose each edge. The root has
// no edge and collects visits only.
func (t *tree) backpropagate(idx int32, loser int, drawScore float64) {
	for i := idx; i != noNode; {
		n := t.at(i)
		n.visits++
		if n.parent != noNode {
			n.wins += outcomeValue(loser, n.player, drawScore)
		}
		i = n.parent
	}
}

// rootStats reads the per-action totals off the root's children.
func (t *tree) rootStats() []ActionStat {
	root := t.at(0)
	stats := make([]ActionStat, len(root.children))
	for i, child := range root.children {
		c := t.at(child)
		stats[i] = ActionStat{Action: c.action, Wins: c.wins, Visits: c.visits}
	}
	return stats
}
