package section

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleTree builds:
//
//	0..50  section header (children: file 1..10, file 11..50)
//	52..60 section header (child: file 53..60)
func sampleTree() *Tree {
	return Build([]*Section{
		{
			Kind: KindSectionHeader, Start: 0, End: 50,
			Data: GroupData{Key: KeyUnstaged},
			Children: []*Section{
				{Kind: KindFile, Start: 1, End: 10, Data: FileData{Path: "a.go", Key: KeyUnstaged}},
				{
					Kind: KindFile, Start: 11, End: 50,
					Data: FileData{Path: "b.go", Key: KeyUnstaged},
					Children: []*Section{
						{Kind: KindHunk, Start: 12, End: 30},
						{Kind: KindHunk, Start: 31, End: 50},
					},
				},
			},
		},
		{
			Kind: KindSectionHeader, Start: 52, End: 60,
			Data: GroupData{Key: KeyStaged},
			Children: []*Section{
				{Kind: KindFile, Start: 53, End: 60, Data: FileData{Path: "a.go", Key: KeyStaged}},
			},
		},
	})
}

func TestBuildSetsParents(t *testing.T) {
	tree := sampleTree()
	root := tree.Roots[0]
	require.Len(t, root.Children, 2)
	for _, c := range root.Children {
		assert.Same(t, root, c.Parent)
	}
	hunk := root.Children[1].Children[0]
	assert.Same(t, root.Children[1], hunk.Parent)
	assert.Nil(t, root.Parent)
}

func TestContainment(t *testing.T) {
	tree := sampleTree()
	var check func(n *Section)
	check = func(n *Section) {
		assert.LessOrEqual(t, n.Start, n.End)
		for _, c := range n.Children {
			assert.GreaterOrEqual(t, c.Start, n.Start)
			assert.LessOrEqual(t, c.End, n.End)
			check(c)
		}
	}
	for _, r := range tree.Roots {
		check(r)
	}
}

func TestAtReturnsDeepest(t *testing.T) {
	tree := sampleTree()

	n := tree.At(12)
	require.NotNil(t, n)
	assert.Equal(t, KindHunk, n.Kind)
	assert.Equal(t, 12, n.Start)

	n = tree.At(1)
	require.NotNil(t, n)
	assert.Equal(t, KindFile, n.Kind)

	n = tree.At(0)
	require.NotNil(t, n)
	assert.Equal(t, KindSectionHeader, n.Kind)

	assert.Nil(t, tree.At(51), "blank separator belongs to no section")
	assert.Nil(t, tree.At(99))
}

func TestAtStopsAtCollapsed(t *testing.T) {
	tree := sampleTree()
	tree.Roots[0].Collapsed = true

	n := tree.At(10)
	require.NotNil(t, n)
	assert.Equal(t, KindSectionHeader, n.Kind)
	assert.Equal(t, 0, n.Start)
}

func TestNavigationAcrossCollapsed(t *testing.T) {
	tree := sampleTree()
	tree.Roots[0].Collapsed = true

	// Children of the collapsed node are invisible, so the next visible
	// section after line 10 is the second root.
	assert.Equal(t, 52, tree.NextSection(10))
	assert.Equal(t, 0, tree.PrevSection(10))
	assert.Equal(t, -1, tree.NextSection(53))
}

func TestNavigationExpanded(t *testing.T) {
	tree := sampleTree()
	assert.Equal(t, 1, tree.NextSection(0))
	assert.Equal(t, 11, tree.NextSection(1))
	assert.Equal(t, 12, tree.NextSection(11))
	assert.Equal(t, 31, tree.NextSection(12))
	assert.Equal(t, 11, tree.PrevSection(12))
}

func TestSiblings(t *testing.T) {
	tree := sampleTree()
	assert.Equal(t, 11, tree.NextSibling(1))
	assert.Equal(t, 1, tree.PrevSibling(11))
	assert.Equal(t, -1, tree.NextSibling(11))
	assert.Equal(t, 52, tree.NextSibling(0), "roots are siblings of each other")
	assert.Equal(t, -1, tree.PrevSibling(0))
}

func TestParentLine(t *testing.T) {
	tree := sampleTree()
	assert.Equal(t, 11, tree.ParentLine(12))
	assert.Equal(t, 0, tree.ParentLine(1))
	assert.Equal(t, -1, tree.ParentLine(0))
}

func TestToggle(t *testing.T) {
	tree := sampleTree()
	assert.True(t, tree.Toggle(0))
	assert.True(t, tree.Roots[0].Collapsed)
	assert.True(t, tree.Toggle(0))
	assert.False(t, tree.Roots[0].Collapsed)

	// A leaf has nothing to collapse.
	assert.False(t, tree.Toggle(1))
}

func TestSetVisibilityLevel(t *testing.T) {
	tree := sampleTree()

	tree.SetVisibilityLevel(1)
	assert.True(t, tree.Roots[0].Collapsed)
	assert.True(t, tree.Roots[1].Collapsed)

	tree.SetVisibilityLevel(2)
	assert.False(t, tree.Roots[0].Collapsed)
	assert.True(t, tree.Roots[0].Children[1].Collapsed)

	tree.SetVisibilityLevel(4)
	assert.False(t, tree.Roots[0].Collapsed)
	assert.False(t, tree.Roots[0].Children[1].Collapsed)
}

func TestExpandKeyDistinguishesSections(t *testing.T) {
	unstaged := FileData{Path: "a.go", Key: KeyUnstaged}
	staged := FileData{Path: "a.go", Key: KeyStaged}
	assert.NotEqual(t, unstaged.ExpandKey(), staged.ExpandKey())
}
