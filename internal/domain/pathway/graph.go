// Package pathway builds and traverses the bipartite compound-reaction
// network implied by the biochemistry index's reaction equations, answering
// shortest-path queries between two compounds (§8.3's trace_pathway tool).
package pathway

import (
	"regexp"

	"github.com/jplfaria/gem-flux-mcp/internal/domain/biochem"
)

// compoundTokenPattern extracts bare ModelSEED compound ids (ignoring any
// compartment suffix) from an ids-based equation string.
var compoundTokenPattern = regexp.MustCompile(`cpd\d{5}`)

// Edge is one reaction-network hop: reaction connects every compound on one
// side of its equation to every compound on the other.
type Edge struct {
	Reaction string
	From     string
	To       string
}

// Graph is an in-memory adjacency-list view of the compound-reaction
// network. It is built once from a biochem.Index and never mutated
// afterward, so it's safe for concurrent read access without locking.
type Graph struct {
	adjacency map[string][]Edge
}

// BuildFromIndex derives a Graph from every reaction in idx: each reaction's
// equation is split into left/right compound sets (compartment-agnostic —
// the network models reachability, not compartmentalized flux), and an edge
// is added in both directions between every left compound and every right
// compound, since ModelSEED reversibility doesn't change which compounds a
// reaction connects, only which direction flux may flow.
func BuildFromIndex(idx *biochem.Index) *Graph {
	g := &Graph{adjacency: map[string][]Edge{}}
	for _, rec := range idx.AllReactions() {
		left, right := splitEquationSides(rec.EquationWithIDs)
		if len(left) == 0 || len(right) == 0 {
			continue
		}
		for _, l := range left {
			for _, r := range right {
				g.addEdge(rec.ID, l, r)
				g.addEdge(rec.ID, r, l)
			}
		}
	}
	return g
}

// Edges returns every edge in the graph, each direction counted separately.
// Used by graph.Neo4jStore to mirror the in-memory network into Neo4j.
func (g *Graph) Edges() []Edge {
	var out []Edge
	for _, edges := range g.adjacency {
		out = append(out, edges...)
	}
	return out
}

func (g *Graph) addEdge(reaction, from, to string) {
	if from == to {
		return
	}
	g.adjacency[from] = append(g.adjacency[from], Edge{Reaction: reaction, From: from, To: to})
}

// splitEquationSides returns the distinct compound ids appearing on each
// side of an ids-based equation, compartment suffixes stripped. It does not
// distinguish <=>/=>/<= since the graph only needs connectivity, not
// direction.
func splitEquationSides(equation string) (left, right []string) {
	for _, candidate := range []string{"<=>", "=>", "<="} {
		if idx := indexOf(equation, candidate); idx >= 0 {
			return dedupeCompounds(equation[:idx]), dedupeCompounds(equation[idx+len(candidate):])
		}
	}
	return nil, nil
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}

func dedupeCompounds(side string) []string {
	seen := map[string]bool{}
	var out []string
	for _, tok := range compoundTokenPattern.FindAllString(side, -1) {
		if !seen[tok] {
			seen[tok] = true
			out = append(out, tok)
		}
	}
	return out
}

// Hop is one step of a traced path: the reaction taken and the compound
// arrived at.
type Hop struct {
	Reaction string `json:"reaction"`
	Compound string `json:"compound"`
}

// ShortestPath performs a breadth-first search from from to to, bounded by
// maxHops reaction steps. It returns the path (excluding the starting
// compound, which callers already know) and whether one was found within
// the hop budget.
func (g *Graph) ShortestPath(from, to string, maxHops int) ([]Hop, bool) {
	if from == to {
		return nil, true
	}
	type frame struct {
		compound string
		path     []Hop
	}
	visited := map[string]bool{from: true}
	queue := []frame{{compound: from}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if len(cur.path) >= maxHops {
			continue
		}
		for _, edge := range g.adjacency[cur.compound] {
			if visited[edge.To] {
				continue
			}
			nextPath := append(append([]Hop{}, cur.path...), Hop{Reaction: edge.Reaction, Compound: edge.To})
			if edge.To == to {
				return nextPath, true
			}
			visited[edge.To] = true
			queue = append(queue, frame{compound: edge.To, path: nextPath})
		}
	}
	return nil, false
}
