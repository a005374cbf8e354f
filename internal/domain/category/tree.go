package category

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// maxAncestorHops bounds every ancestor walk. Imported data can carry broken
// parent chains and those must degrade, not loop.
const maxAncestorHops = 50

// TreeNode is one assembled node of the canonical tree.
type TreeNode struct {
	Node     *Node
	Children []*TreeNode
}

// ShopTreeNode is one assembled node of a target shop's tree.
type ShopTreeNode struct {
	Node     *ShopNode
	Children []*ShopTreeNode
}

// TreeSummary reports assembly and mapping health counts.
type TreeSummary struct {
	CanonicalNodes   int                   `json:"canonical_nodes"`
	ShopNodes        int                   `json:"shop_nodes"`
	Orphans          int                   `json:"orphans"`
	ShopOrphans      int                   `json:"shop_orphans"`
	MappingsByStatus map[MappingStatus]int `json:"mappings_by_status"`
}

// BuildTree assembles the canonical tree from a flat node list. Nodes whose
// declared parent is absent from the set, and nodes unreachable from any root
// because their parent chain loops, are promoted to roots and counted as
// orphans. Children are ordered by position, then name.
func BuildTree(nodes []Node) ([]*TreeNode, TreeSummary) {
	summary := TreeSummary{
		CanonicalNodes:   len(nodes),
		MappingsByStatus: map[MappingStatus]int{},
	}
	byID := make(map[uuid.UUID]*TreeNode, len(nodes))
	for i := range nodes {
		byID[nodes[i].ID] = &TreeNode{Node: &nodes[i]}
		if nodes[i].Mapping != nil {
			summary.MappingsByStatus[nodes[i].Mapping.Status]++
		}
	}

	var roots []*TreeNode
	children := make(map[uuid.UUID][]*TreeNode)
	for i := range nodes {
		tn := byID[nodes[i].ID]
		pid := nodes[i].ParentID
		if pid == nil {
			roots = append(roots, tn)
			continue
		}
		if _, ok := byID[*pid]; !ok || *pid == nodes[i].ID {
			summary.Orphans++
			roots = append(roots, tn)
			continue
		}
		children[*pid] = append(children[*pid], tn)
	}

	visited := make(map[uuid.UUID]bool, len(nodes))
	var attach func(tn *TreeNode)
	attach = func(tn *TreeNode) {
		for _, child := range children[tn.Node.ID] {
			if visited[child.Node.ID] {
				// Back edge of a parent cycle; dropping it renders the
				// cycle as a chain under the promoted node.
				continue
			}
			visited[child.Node.ID] = true
			tn.Children = append(tn.Children, child)
			attach(child)
		}
	}
	for _, r := range roots {
		visited[r.Node.ID] = true
	}
	for _, r := range roots {
		attach(r)
	}
	// Nodes trapped in a parent cycle reach no root. The first node of each
	// cycle is promoted and counted as an orphan; the rest hang under it.
	for i := range nodes {
		tn := byID[nodes[i].ID]
		if visited[tn.Node.ID] {
			continue
		}
		summary.Orphans++
		visited[tn.Node.ID] = true
		roots = append(roots, tn)
		attach(tn)
	}

	sortTree(roots)
	return roots, summary
}

func sortTree(nodes []*TreeNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].Node.Position != nodes[j].Node.Position {
			return nodes[i].Node.Position < nodes[j].Node.Position
		}
		return nodes[i].Node.Name < nodes[j].Node.Name
	})
	for _, n := range nodes {
		sortTree(n.Children)
	}
}

// BuildShopTree assembles a target shop's tree the same way. Returns the
// roots and the orphan count.
func BuildShopTree(nodes []ShopNode) ([]*ShopTreeNode, int) {
	byID := make(map[uuid.UUID]*ShopTreeNode, len(nodes))
	for i := range nodes {
		byID[nodes[i].ID] = &ShopTreeNode{Node: &nodes[i]}
	}

	var roots []*ShopTreeNode
	children := make(map[uuid.UUID][]*ShopTreeNode)
	orphans := 0
	for i := range nodes {
		tn := byID[nodes[i].ID]
		pid := nodes[i].ParentID
		if pid == nil {
			roots = append(roots, tn)
			continue
		}
		if _, ok := byID[*pid]; !ok || *pid == nodes[i].ID {
			orphans++
			roots = append(roots, tn)
			continue
		}
		children[*pid] = append(children[*pid], tn)
	}

	visited := make(map[uuid.UUID]bool, len(nodes))
	var attach func(tn *ShopTreeNode)
	attach = func(tn *ShopTreeNode) {
		for _, child := range children[tn.Node.ID] {
			if visited[child.Node.ID] {
				continue
			}
			visited[child.Node.ID] = true
			tn.Children = append(tn.Children, child)
			attach(child)
		}
	}
	for _, r := range roots {
		visited[r.Node.ID] = true
	}
	for _, r := range roots {
		attach(r)
	}
	for i := range nodes {
		tn := byID[nodes[i].ID]
		if visited[tn.Node.ID] {
			continue
		}
		orphans++
		visited[tn.Node.ID] = true
		roots = append(roots, tn)
		attach(tn)
	}

	sort.SliceStable(roots, func(i, j int) bool {
		if roots[i].Node.Position != roots[j].Node.Position {
			return roots[i].Node.Position < roots[j].Node.Position
		}
		return roots[i].Node.Name < roots[j].Node.Name
	})
	var sortShop func([]*ShopTreeNode)
	sortShop = func(ns []*ShopTreeNode) {
		for _, n := range ns {
			sort.SliceStable(n.Children, func(i, j int) bool {
				if n.Children[i].Node.Position != n.Children[j].Node.Position {
					return n.Children[i].Node.Position < n.Children[j].Node.Position
				}
				return n.Children[i].Node.Name < n.Children[j].Node.Name
			})
			sortShop(n.Children)
		}
	}
	sortShop(roots)
	return roots, orphans
}

// PathOf walks the ancestor chain of a canonical node and joins names from
// root to node. The walk is capped; hitting the cap falls back to the node's
// own name. Returns the path and whether the cap was hit.
func PathOf(node *Node, byID map[uuid.UUID]*Node) (string, bool) {
	segments := []string{node.Name}
	cur := node
	for hops := 0; cur.ParentID != nil; hops++ {
		if hops >= maxAncestorHops {
			return node.Name, true
		}
		parent, ok := byID[*cur.ParentID]
		if !ok {
			break
		}
		segments = append([]string{parent.Name}, segments...)
		cur = parent
	}
	return strings.Join(segments, " > "), false
}

// ShopPathOf is PathOf for target-shop nodes.
func ShopPathOf(node *ShopNode, byID map[uuid.UUID]*ShopNode) (string, bool) {
	segments := []string{node.Name}
	cur := node
	for hops := 0; cur.ParentID != nil; hops++ {
		if hops >= maxAncestorHops {
			return node.Name, true
		}
		parent, ok := byID[*cur.ParentID]
		if !ok {
			break
		}
		segments = append([]string{parent.Name}, segments...)
		cur = parent
	}
	return strings.Join(segments, " > "), false
}
