package commands

import (
	"github.com/kasugano/shinju/internal/types"
)

// pruneUnmatchedChildren removes, post-order, every descendant subtree that
// carries no name or content match. Directories survive when they match by
// name or when any descendant survived, so the visual path to each match is
// preserved. The return value reports whether node itself should survive in
// its parent; the root's result is ignored because the root always renders.
func pruneUnmatchedChildren(node *types.TreeNode) bool {
	retainedChildren := node.Children[:0]
	anyChildRetained := false
	for _, childNode := range node.Children {
		if pruneUnmatchedChildren(childNode) {
			retainedChildren = append(retainedChildren, childNode)
			anyChildRetained = true
		}
	}
	node.Children = retainedChildren
	return node.NameMatch != "" || node.ContentMatch != nil || anyChildRetained
}

// assignLastMarkers sets IsLast on the final child of every sibling group.
// It must run after pruning so connector glyphs reflect the surviving
// siblings, not the originally listed ones.
func assignLastMarkers(node *types.TreeNode) {
	for childIndex, childNode := range node.Children {
		childNode.IsLast = childIndex == len(node.Children)-1
		assignLastMarkers(childNode)
	}
}
