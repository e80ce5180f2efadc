// Package network: the Builder and the Build pipeline — node filtering,
// candidate generation, parallel pair solving and per-mode assembly.
package network

import (
	"context"
	"sort"

	"github.com/katalvlaran/terracost/costgrid"
	"github.com/katalvlaran/terracost/costmodel"
)

// Builder computes movement networks over one grid with one cost model.
// A Builder is immutable after construction and safe for concurrent Build
// calls; the grid and friction field are only ever read.
type Builder struct {
	grid     *costgrid.Grid
	model    costmodel.Model
	costMode costmodel.CostMode
	friction *costgrid.FrictionField
	cfg      Options
}

// NewBuilder binds a builder to a grid, cost model and cost mode.
// friction may be nil. The same validation as costgrid.NewField applies:
// ErrNilGrid, ErrNilModel, ErrEnergyUnsupported, ErrShapeMismatch.
func NewBuilder(grid *costgrid.Grid, model costmodel.Model, costMode costmodel.CostMode,
	friction *costgrid.FrictionField, opts ...Option) (*Builder, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// Probe field: runs the full grid/model/mode/friction validation once so
	// Build never fails on those grounds mid-flight.
	if _, err := costgrid.NewField(grid, model, fieldOptions(costMode, friction, cfg.AllowDiagonal)...); err != nil {
		return nil, err
	}

	return &Builder{
		grid:     grid,
		model:    model,
		costMode: costMode,
		friction: friction,
		cfg:      cfg,
	}, nil
}

// fieldOptions assembles the costgrid options shared by the probe field and
// every per-pair window field.
func fieldOptions(mode costmodel.CostMode, friction *costgrid.FrictionField, diagonal bool) []costgrid.FieldOption {
	opts := []costgrid.FieldOption{costgrid.WithMode(mode)}
	if friction != nil {
		opts = append(opts, costgrid.WithFriction(friction))
	}
	if diagonal {
		opts = append(opts, costgrid.WithDiagonal())
	}

	return opts
}

// pairKey identifies an unordered candidate pair by kept-node indices, a < b.
type pairKey struct {
	a, b int
}

// makePair normalizes (i, j) into a pairKey with a < b.
func makePair(i, j int) pairKey {
	if i > j {
		i, j = j, i
	}

	return pairKey{a: i, b: j}
}

// Build computes the network of the requested mode over the given nodes.
//
// Nodes outside the grid or on NoData are dropped up front; Graph.Nodes
// holds the survivors and Edge.A/Edge.B index into it. Fewer than two
// survivors is ErrTooFewNodes; a hub build with no surviving hubs is
// ErrNoHubs. A cancelled context aborts the whole build with
// pathfind.ErrCancelled and no partial graph.
func (b *Builder) Build(ctx context.Context, nodes []Node, mode Mode) (*Graph, error) {
	// 1) Keep only nodes that land on a valid grid cell.
	kept := make([]Node, 0, len(nodes))
	for _, nd := range nodes {
		cell, ok := b.grid.WorldToCell(nd.X, nd.Y)
		if !ok || !b.grid.Valid(cell.Row, cell.Col) {
			continue
		}
		kept = append(kept, nd)
	}
	if len(kept) < 2 {
		return nil, ErrTooFewNodes
	}

	hubs := make([]int, 0, len(kept))
	for i, nd := range kept {
		if nd.IsHub {
			hubs = append(hubs, i)
		}
	}
	if mode == ModeHub && len(hubs) == 0 {
		return nil, ErrNoHubs
	}

	// 2) Propose candidate pairs by Euclidean proximity.
	pairs := b.candidates(kept, hubs, mode)
	if len(pairs) == 0 {
		return nil, ErrNoCandidates
	}

	// 3) Solve every candidate with A* in both directions, in parallel.
	//    MST-only builds skip geometry here and re-solve the chosen edges.
	wantGeom := mode != ModeMST
	results, err := b.solvePairs(ctx, kept, pairs, wantGeom)
	if err != nil {
		return nil, err
	}

	// 4) Assemble the requested topology.
	g := &Graph{Nodes: kept}
	switch mode {
	case ModeMST:
		if err := b.appendMST(ctx, g, kept, results, KindMST); err != nil {
			return nil, err
		}
	case ModeKNN:
		b.appendKNN(g, results)
	case ModeHub:
		if err := b.appendHub(ctx, g, kept, hubs, results); err != nil {
			return nil, err
		}
	case ModeAll:
		if err := b.appendMST(ctx, g, kept, results, KindMST); err != nil {
			return nil, err
		}
		b.appendKNN(g, results)
		if len(hubs) > 0 {
			if err := b.appendHub(ctx, g, kept, hubs, results); err != nil {
				return nil, err
			}
		}
	}

	return g, nil
}

// candidates proposes unordered node pairs for the given mode:
// Euclidean k-nearest per node for peer networks, k-nearest hubs per
// non-hub (plus hub–hub pairs under HubMST) for hub networks, the union
// for ModeAll. Ties break by ascending node index.
func (b *Builder) candidates(kept []Node, hubs []int, mode Mode) []pairKey {
	set := make(map[pairKey]struct{})

	if mode == ModeMST || mode == ModeKNN || mode == ModeAll {
		for i := range kept {
			for _, j := range nearestByDistance(kept, i, allIndices(len(kept), i), b.cfg.CandidateK) {
				set[makePair(i, j)] = struct{}{}
			}
		}
	}

	if (mode == ModeHub || mode == ModeAll) && len(hubs) > 0 {
		hubSet := make(map[int]struct{}, len(hubs))
		for _, h := range hubs {
			hubSet[h] = struct{}{}
		}
		for i := range kept {
			if _, isHub := hubSet[i]; isHub {
				continue
			}
			for _, h := range nearestByDistance(kept, i, hubs, b.cfg.CandidateK) {
				set[makePair(i, h)] = struct{}{}
			}
		}
		if b.cfg.HubMST && len(hubs) >= 2 {
			for _, h := range hubs {
				others := make([]int, 0, len(hubs)-1)
				for _, o := range hubs {
					if o != h {
						others = append(others, o)
					}
				}
				for _, o := range nearestByDistance(kept, h, others, b.cfg.CandidateK) {
					set[makePair(h, o)] = struct{}{}
				}
			}
		}
	}

	pairs := make([]pairKey, 0, len(set))
	for pk := range set {
		pairs = append(pairs, pk)
	}
	// Deterministic solve order regardless of map iteration.
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].a != pairs[j].a {
			return pairs[i].a < pairs[j].a
		}

		return pairs[i].b < pairs[j].b
	})

	return pairs
}

// allIndices returns 0..n-1 with `skip` removed.
func allIndices(n, skip int) []int {
	out := make([]int, 0, n-1)
	for i := 0; i < n; i++ {
		if i != skip {
			out = append(out, i)
		}
	}

	return out
}

// nearestByDistance ranks `pool` by squared Euclidean distance from kept[i]
// (ties by ascending index) and returns the closest k.
func nearestByDistance(kept []Node, i int, pool []int, k int) []int {
	type cand struct {
		idx int
		d2  float64
	}
	cands := make([]cand, 0, len(pool))
	for _, j := range pool {
		dx := kept[j].X - kept[i].X
		dy := kept[j].Y - kept[i].Y
		cands = append(cands, cand{idx: j, d2: dx*dx + dy*dy})
	}
	sort.Slice(cands, func(a, b int) bool {
		if cands[a].d2 != cands[b].d2 {
			return cands[a].d2 < cands[b].d2
		}

		return cands[a].idx < cands[b].idx
	})

	if k > len(cands) {
		k = len(cands)
	}
	out := make([]int, k)
	for n := 0; n < k; n++ {
		out[n] = cands[n].idx
	}

	return out
}

// symWeight collapses the two directed costs into the MST weight.
func (b *Builder) symWeight(ab, ba float64) float64 {
	switch b.cfg.Symmetry {
	case SymmetryMin:
		if ab < ba {
			return ab
		}

		return ba
	case SymmetryMax:
		if ab > ba {
			return ab
		}

		return ba
	default:
		return (ab + ba) / 2
	}
}

// appendKNN keeps, for each node, its KNNK cheapest solved neighbors by
// directed cost; an edge survives if either endpoint kept the other.
func (b *Builder) appendKNN(g *Graph, results map[pairKey]*pairResult) {
	type directed struct {
		to   int
		cost float64
	}
	perNode := make(map[int][]directed)
	for pk, res := range results {
		perNode[pk.a] = append(perNode[pk.a], directed{to: pk.b, cost: res.costAB})
		perNode[pk.b] = append(perNode[pk.b], directed{to: pk.a, cost: res.costBA})
	}

	selected := make(map[pairKey]bool)
	for from, outs := range perNode {
		sort.Slice(outs, func(i, j int) bool {
			if outs[i].cost != outs[j].cost {
				return outs[i].cost < outs[j].cost
			}

			return outs[i].to < outs[j].to
		})
		k := b.cfg.KNNK
		if k > len(outs) {
			k = len(outs)
		}
		for _, d := range outs[:k] {
			selected[makePair(from, d.to)] = true
		}
	}

	pairs := make([]pairKey, 0, len(selected))
	for pk := range selected {
		pairs = append(pairs, pk)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].a != pairs[j].a {
			return pairs[i].a < pairs[j].a
		}

		return pairs[i].b < pairs[j].b
	})

	for _, pk := range pairs {
		g.Edges = append(g.Edges, b.edgeFromResult(pk, results[pk], KindKNN))
	}
}

// appendHub links every non-hub node to its cheapest reachable hub by
// directed cost, then optionally joins the hubs with an internal MST.
func (b *Builder) appendHub(ctx context.Context, g *Graph, kept []Node, hubs []int, results map[pairKey]*pairResult) error {
	hubSet := make(map[int]struct{}, len(hubs))
	for _, h := range hubs {
		hubSet[h] = struct{}{}
	}

	for i := range kept {
		if _, isHub := hubSet[i]; isHub {
			continue
		}
		best, bestCost := -1, 0.0
		for _, h := range hubs {
			res, ok := results[makePair(i, h)]
			if !ok {
				continue
			}
			cost := res.costAB
			if i > h {
				cost = res.costBA // directed: from the non-hub node
			}
			if best == -1 || cost < bestCost {
				best, bestCost = h, cost
			}
		}
		if best == -1 {
			continue // no reachable hub; the node stays isolated
		}
		pk := makePair(i, best)
		g.Edges = append(g.Edges, b.edgeFromResult(pk, results[pk], KindHubLink))
	}

	if b.cfg.HubMST && len(hubs) >= 2 {
		hubResults := make(map[pairKey]*pairResult)
		for pk, res := range results {
			_, aHub := hubSet[pk.a]
			_, bHub := hubSet[pk.b]
			if aHub && bHub {
				hubResults[pk] = res
			}
		}

		return b.appendRestrictedMST(ctx, g, kept, hubs, hubResults, KindHubMST)
	}

	return nil
}

// edgeFromResult materializes one Edge from a solved pair.
func (b *Builder) edgeFromResult(pk pairKey, res *pairResult, kind EdgeKind) Edge {
	return Edge{
		A:        pk.a,
		B:        pk.b,
		Kind:     kind,
		Polyline: res.polyline,
		DistM:    res.distM,
		CostAB:   res.costAB,
		CostBA:   res.costBA,
		CostSym:  b.symWeight(res.costAB, res.costBA),
	}
}
