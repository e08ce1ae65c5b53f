// Package render formats extraction results into the consolidated text
// artifact: summary header, directory tree, and per-file source blocks.
package render

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultMaxFilesPerDir is how many entries a directory shows in the tree
// before truncating with an ellipsis.
const DefaultMaxFilesPerDir = 8

type treeNode struct {
	name     string
	isFile   bool
	children map[string]*treeNode
}

func newTreeNode(name string, isFile bool) *treeNode {
	return &treeNode{
		name:     name,
		isFile:   isFile,
		children: make(map[string]*treeNode),
	}
}

// sortedChildren orders files before directories, alphabetical within each.
func (n *treeNode) sortedChildren() []*treeNode {
	nodes := make([]*treeNode, 0, len(n.children))
	for _, child := range n.children {
		nodes = append(nodes, child)
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].isFile != nodes[j].isFile {
			return nodes[i].isFile
		}
		return nodes[i].name < nodes[j].name
	})
	return nodes
}

// buildTree folds root-relative file paths into a directory tree.
func buildTree(relPaths []string) *treeNode {
	root := newTreeNode("", false)
	for _, rel := range relPaths {
		parts := strings.Split(filepath.ToSlash(rel), "/")
		current := root
		for i, part := range parts {
			isFile := i == len(parts)-1
			child, ok := current.children[part]
			if !ok {
				child = newTreeNode(part, isFile)
				current.children[part] = child
			}
			current = child
		}
	}
	return root
}

// Tree renders root-relative paths as a connector tree with 📁/📄 markers.
// Directories holding more than maxPerDir entries are truncated with an
// ellipsis line. maxPerDir <= 0 applies DefaultMaxFilesPerDir.
func Tree(relPaths []string, rootName string, maxPerDir int) string {
	if maxPerDir <= 0 {
		maxPerDir = DefaultMaxFilesPerDir
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📁 %s/\n", rootName)
	writeTree(&b, buildTree(relPaths), "", maxPerDir)
	return b.String()
}

func writeTree(b *strings.Builder, node *treeNode, prefix string, maxPerDir int) {
	children := node.sortedChildren()

	for idx, child := range children {
		last := idx == len(children)-1
		connector, extension := "├── ", "│   "
		if last {
			connector, extension = "└── ", "    "
		}

		if child.isFile {
			fmt.Fprintf(b, "%s%s📄 %s\n", prefix, connector, child.name)
			continue
		}

		fmt.Fprintf(b, "%s%s📁 %s/\n", prefix, connector, child.name)

		childPrefix := prefix + extension
		if len(child.children) > maxPerDir {
			shown := child.sortedChildren()[:maxPerDir]
			for _, grandchild := range shown {
				if grandchild.isFile {
					fmt.Fprintf(b, "%s├── 📄 %s\n", childPrefix, grandchild.name)
				} else {
					fmt.Fprintf(b, "%s├── 📁 %s/\n", childPrefix, grandchild.name)
				}
			}
			fmt.Fprintf(b, "%s├── ...\n", childPrefix)
			fmt.Fprintf(b, "%s└── (up to %d files in this directory)\n", childPrefix, len(child.children))
			continue
		}

		writeTree(b, child, childPrefix, maxPerDir)
	}
}
