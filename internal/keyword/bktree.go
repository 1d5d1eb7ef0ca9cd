package keyword

// Match is a stored term found by a fuzzy lookup together with its distance
// from the query.
type Match struct {
	Term     string
	Distance int
}

// bkNode is one arena slot. children maps the exact distance between the
// child's term and this node's term to the child's arena index.
type bkNode struct {
	term     string
	children map[int]int32
}

// BKTree is a metric tree over strings. Nodes live in a single arena slice and
// reference their children by index, so the tree owns every node and holds no
// pointers between them.
type BKTree struct {
	metric Metric
	nodes  []bkNode
}

// NewBKTree returns an empty tree using metric. A nil metric selects
// LevenshteinDistance.
func NewBKTree(metric Metric) *BKTree {
	if metric == nil {
		metric = LevenshteinDistance
	}
	return &BKTree{metric: metric}
}

// Insert adds term to the tree and reports whether it was new. Starting at the
// root, it follows the child whose bucket equals the distance to the current
// node until that bucket is free, then attaches a new node there.
func (t *BKTree) Insert(term string) bool {
	if len(t.nodes) == 0 {
		t.nodes = append(t.nodes, bkNode{term: term})
		return true
	}
	cur := int32(0)
	for {
		node := &t.nodes[cur]
		d := t.metric(term, node.term)
		if d == 0 {
			return false
		}
		child, ok := node.children[d]
		if !ok {
			if node.children == nil {
				node.children = make(map[int]int32)
			}
			node.children[d] = int32(len(t.nodes))
			t.nodes = append(t.nodes, bkNode{term: term})
			return true
		}
		cur = child
	}
}

// Search returns every stored term within maxDistance of query, in no
// particular order. A child at bucket k is visited only when
// d-maxDistance <= k <= d+maxDistance, where d is the query's distance to the
// parent; by the triangle inequality nothing outside that window can match.
func (t *BKTree) Search(query string, maxDistance int) []Match {
	if len(t.nodes) == 0 || maxDistance < 0 {
		return nil
	}
	var matches []Match
	stack := []int32{0}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := &t.nodes[idx]
		d := t.metric(query, node.term)
		if d <= maxDistance {
			matches = append(matches, Match{Term: node.term, Distance: d})
		}
		lo, hi := d-maxDistance, d+maxDistance
		for k, child := range node.children {
			if k >= lo && k <= hi {
				stack = append(stack, child)
			}
		}
	}
	return matches
}

// Contains reports whether term is stored in the tree.
func (t *BKTree) Contains(term string) bool {
	return len(t.Search(term, 0)) > 0
}

// Len returns the number of distinct stored terms.
func (t *BKTree) Len() int {
	return len(t.nodes)
}

// Terms returns the stored terms in insertion order.
func (t *BKTree) Terms() []string {
	terms := make([]string, len(t.nodes))
	for i, n := range t.nodes {
		terms[i] = n.term
	}
	return terms
}
