package forest

import (
	"fmt"
	"sync"

	"github.com/aescanero/treed/pkg/domain"
)

// Forest is the set of all nodes, keyed by id. Multiple roots are allowed.
// All access is serialized through an RWMutex: writes take the exclusive
// lock for validation plus insert, reads build snapshots under the shared
// lock.
type Forest struct {
	mu sync.RWMutex

	nextID int
	labels map[int]string

	// A child can only ever have one parent, tracked at insertion time so
	// the forest cannot degrade into a general graph.
	childToParent map[int]int
	childrenOf    map[int][]int

	// Insertion order of all ids; drives root and sibling ordering.
	order []int
}

// NewForest creates an empty forest. Ids start at 1.
func NewForest() *Forest {
	return &Forest{
		nextID:        1,
		labels:        make(map[int]string),
		childToParent: make(map[int]int),
		childrenOf:    make(map[int][]int),
	}
}

// AddNode inserts a new node with a freshly allocated id. The id counter
// only advances on successful insert, so rejected requests never consume
// ids.
func (f *Forest) AddNode(label string, parentID *int) (domain.Node, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if label == "" {
		return domain.Node{}, domain.ErrInvalidLabel
	}

	id := f.nextID
	if parentID != nil {
		if err := f.link(*parentID, id); err != nil {
			return domain.Node{}, err
		}
	}

	f.insert(id, label)
	f.nextID = id + 1

	return domain.Node{ID: id, Label: label, ParentID: parentID}, nil
}

// Restore inserts a node keeping its stored id, used when replaying
// persisted records on boot. Records must be replayed in ascending id
// order so parents exist before their children.
func (f *Forest) Restore(node domain.Node) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if node.Label == "" {
		return domain.ErrInvalidLabel
	}
	if _, exists := f.labels[node.ID]; exists {
		return fmt.Errorf("node %d already exists", node.ID)
	}

	if node.ParentID != nil {
		if err := f.link(*node.ParentID, node.ID); err != nil {
			return err
		}
	}

	f.insert(node.ID, node.Label)
	if node.ID >= f.nextID {
		f.nextID = node.ID + 1
	}

	return nil
}

// link records the parent/child edge after checking the forest invariants.
func (f *Forest) link(parentID, childID int) error {
	if parentID == childID {
		return fmt.Errorf("%w: %d", domain.ErrSelfParent, childID)
	}
	if _, linked := f.childToParent[childID]; linked {
		return fmt.Errorf("%w: %d", domain.ErrDuplicateParent, childID)
	}
	if _, exists := f.labels[parentID]; !exists {
		return fmt.Errorf("%w: %d", domain.ErrParentNotFound, parentID)
	}

	f.childToParent[childID] = parentID
	f.childrenOf[parentID] = append(f.childrenOf[parentID], childID)
	return nil
}

func (f *Forest) insert(id int, label string) {
	f.labels[id] = label
	f.order = append(f.order, id)
}

// discard removes a just-inserted node, rolling back an insert whose
// persistence failed. The id counter is left advanced so the discarded id
// is never handed out again.
func (f *Forest) discard(id int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.labels, id)

	for i, ordered := range f.order {
		if ordered == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}

	// A just-inserted node has no children yet, only a possible parent edge.
	if parentID, linked := f.childToParent[id]; linked {
		delete(f.childToParent, id)
		siblings := f.childrenOf[parentID]
		for i, childID := range siblings {
			if childID == id {
				f.childrenOf[parentID] = append(siblings[:i], siblings[i+1:]...)
				break
			}
		}
	}
}

// Node returns the flat record for an id.
func (f *Forest) Node(id int) (domain.Node, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	label, ok := f.labels[id]
	if !ok {
		return domain.Node{}, false
	}

	node := domain.Node{ID: id, Label: label}
	if parentID, linked := f.childToParent[id]; linked {
		node.ParentID = &parentID
	}
	return node, true
}

// Len returns the number of nodes in the forest.
func (f *Forest) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.labels)
}

// Snapshot assembles the nested root→children form. Roots and siblings
// appear in insertion order; every node appears exactly once. An empty
// forest yields an empty, non-nil slice.
func (f *Forest) Snapshot() []*domain.TreeNode {
	f.mu.RLock()
	defer f.mu.RUnlock()

	roots := []*domain.TreeNode{}
	for _, id := range f.order {
		if _, isChild := f.childToParent[id]; isChild {
			continue
		}
		roots = append(roots, f.subtree(id))
	}
	return roots
}

// subtree builds the nested form rooted at id. Called under the read lock.
// Parents always pre-exist their children, so recursion terminates.
func (f *Forest) subtree(id int) *domain.TreeNode {
	node := domain.NewTreeNode(id, f.labels[id])
	for _, childID := range f.childrenOf[id] {
		node.AddChild(f.subtree(childID))
	}
	return node
}
