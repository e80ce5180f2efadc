// Package network: Kruskal MST selection over symmetrized pair costs.
package network

import (
	"context"
	"sort"
)

// mstEdge is one candidate for Kruskal: an unordered pair with its
// symmetrized weight.
type mstEdge struct {
	pk pairKey
	w  float64
}

// appendMST selects a spanning tree over all kept nodes with Kruskal and
// appends the chosen edges. ModeMST solves pairs without geometry, so the
// n−1 winners are re-solved here with geometry before materializing.
func (b *Builder) appendMST(ctx context.Context, g *Graph, kept []Node, results map[pairKey]*pairResult, kind EdgeKind) error {
	members := make([]int, len(kept))
	for i := range members {
		members[i] = i
	}

	return b.appendKruskal(ctx, g, kept, members, results, kind)
}

// appendRestrictedMST runs Kruskal over a node subset (the hubs) using only
// pairs internal to that subset.
func (b *Builder) appendRestrictedMST(ctx context.Context, g *Graph, kept []Node, members []int, results map[pairKey]*pairResult, kind EdgeKind) error {
	return b.appendKruskal(ctx, g, kept, members, results, kind)
}

// appendKruskal is the shared selection core: sort symmetrized candidate
// weights ascending, accept an edge when it joins two components, stop at
// n−1 accepted. Fewer than n−1 is ErrDisconnected — never a partial tree.
func (b *Builder) appendKruskal(ctx context.Context, g *Graph, kept []Node, members []int, results map[pairKey]*pairResult, kind EdgeKind) error {
	if len(members) < 2 {
		return nil // a single member spans itself
	}

	// 1) Collect solved candidates with their symmetrized weights.
	edges := make([]mstEdge, 0, len(results))
	for pk, res := range results {
		edges = append(edges, mstEdge{pk: pk, w: b.symWeight(res.costAB, res.costBA)})
	}

	// 2) Ascending weight, deterministic tie-break by pair indices.
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].w != edges[j].w {
			return edges[i].w < edges[j].w
		}
		if edges[i].pk.a != edges[j].pk.a {
			return edges[i].pk.a < edges[j].pk.a
		}

		return edges[i].pk.b < edges[j].pk.b
	})

	// 3) Union-find over the member set.
	uf := newUnionFind(len(kept))
	chosen := make([]pairKey, 0, len(members)-1)
	for _, e := range edges {
		if uf.find(e.pk.a) == uf.find(e.pk.b) {
			continue
		}
		uf.union(e.pk.a, e.pk.b)
		chosen = append(chosen, e.pk)
		if len(chosen) == len(members)-1 {
			break
		}
	}
	if len(chosen) < len(members)-1 {
		return ErrDisconnected
	}

	// 4) Materialize the winners. MST-only builds carried no geometry, so
	//    re-solve just the chosen pairs (memory stays bound by n−1 paths).
	for _, pk := range chosen {
		res := results[pk]
		if res.polyline == nil {
			solved, err := b.solvePair(ctx, kept[pk.a], kept[pk.b], true)
			if err != nil {
				return err
			}
			if solved == nil {
				continue // pair no longer solvable, skip like the first pass
			}
			res = solved
		}
		g.Edges = append(g.Edges, b.edgeFromResult(pk, res, kind))
	}

	return nil
}

// unionFind is a disjoint-set forest with path compression and union by
// rank, over dense integer node indices.
type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{
		parent: make([]int, n),
		rank:   make([]int, n),
	}
	for i := range uf.parent {
		uf.parent[i] = i
	}

	return uf
}

// find walks to the root, halving the path as it goes.
func (uf *unionFind) find(u int) int {
	for uf.parent[u] != u {
		uf.parent[u] = uf.parent[uf.parent[u]]
		u = uf.parent[u]
	}

	return u
}

// union merges the sets of u and v, attaching the shallower root.
func (uf *unionFind) union(u, v int) {
	ru, rv := uf.find(u), uf.find(v)
	if ru == rv {
		return
	}
	if uf.rank[ru] < uf.rank[rv] {
		uf.parent[ru] = rv
	} else {
		uf.parent[rv] = ru
		if uf.rank[ru] == uf.rank[rv] {
			uf.rank[ru]++
		}
	}
}
