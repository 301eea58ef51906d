package region

import "log/slog"

// Node is one region of the static hierarchy: an identifier, a display name,
// and the regions directly beneath it. The hierarchy is a rooted tree loaded
// once at process start and read-only afterwards.
type Node struct {
	ID         int64  `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Subregions []Node `json:"subregions" yaml:"subregions"`
}

// span is the Euler-tour interval of one region: the preorder index at which
// the region was entered and the largest preorder index inside its subtree.
// candidate is inside region iff region.enter <= candidate.enter <= region.exit.
type span struct {
	enter int
	exit  int
}

// Index answers closed-subtree containment queries over the region hierarchy
// in O(1) per lookup, at one small struct per region instead of one id set
// per region.
type Index struct {
	spans map[int64]span
}

// New returns an empty index. Every region id is then its own singleton
// subtree, so searches degrade to exact region matching.
func New() *Index {
	return &Index{spans: make(map[int64]span)}
}

// Build labels every region in the tree rooted at root with its Euler-tour
// interval. A nil root yields an empty index. When the same id appears twice
// in a malformed tree the first occurrence keeps its label and the duplicate
// is logged.
func Build(root *Node) *Index {
	idx := New()
	if root == nil {
		return idx
	}

	counter := 0
	idx.label(root, &counter)
	return idx
}

// label assigns the node's interval and recurses into its subregions.
// Returns the largest preorder index used inside the node's subtree.
func (idx *Index) label(n *Node, counter *int) int {
	enter := *counter
	*counter++

	exit := enter
	for i := range n.Subregions {
		exit = idx.label(&n.Subregions[i], counter)
	}

	if _, exists := idx.spans[n.ID]; exists {
		slog.Warn("Duplicate region id in hierarchy, keeping first occurrence", "region_id", n.ID)
		return exit
	}

	idx.spans[n.ID] = span{enter: enter, exit: exit}
	return exit
}

// Contains reports whether candidate lies in the closed subtree rooted at
// regionID, i.e. candidate is regionID itself or any descendant of it.
// Ids absent from the hierarchy match nothing but themselves.
func (idx *Index) Contains(regionID, candidate int64) bool {
	parent, ok := idx.spans[regionID]
	if !ok {
		return regionID == candidate
	}

	child, ok := idx.spans[candidate]
	if !ok {
		return regionID == candidate
	}

	return parent.enter <= child.enter && child.enter <= parent.exit
}

// Size returns the number of labeled regions.
func (idx *Index) Size() int {
	return len(idx.spans)
}
