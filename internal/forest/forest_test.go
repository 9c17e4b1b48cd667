package forest

import (
	"testing"

	"github.com/atorrance/taskwell/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestForest() (*Forest, *domain.TaskItem) {
	// 1
	// └─ 2
	//    └─ 3 (deep)
	// 5
	deep := &domain.TaskItem{ID1: 3, ID2: 1, Name: "deep"}
	mid := &domain.TaskItem{ID1: 2, ID2: 1, Name: "mid", Children: []*domain.TaskItem{deep}}
	root := &domain.TaskItem{ID1: 1, ID2: 1, Name: "root", Children: []*domain.TaskItem{mid}}
	other := &domain.TaskItem{ID1: 5, ID2: 1, Name: "other"}
	return New(root, other), deep
}

func TestNextID1_EmptyForest(t *testing.T) {
	assert.Equal(t, 1, New().NextID1())
}

func TestNextID1_ScansNestedChildren(t *testing.T) {
	f, _ := buildTestForest()
	assert.Equal(t, 6, f.NextID1())

	// The max can hide deep in a subtree.
	f.Roots[0].Children[0].Children[0].ID1 = 41
	assert.Equal(t, 42, f.NextID1())
}

func TestNextID1_ExceedsEveryExistingID(t *testing.T) {
	f, _ := buildTestForest()
	next := f.NextID1()
	f.Walk(func(item *domain.TaskItem) {
		assert.Greater(t, next, item.ID1)
	})
}

func TestRemove_NestedThreeLevelsDeep(t *testing.T) {
	f, deep := buildTestForest()
	require.True(t, f.Contains(deep))

	assert.True(t, f.Remove(deep))
	assert.False(t, f.Contains(deep))
	assert.Empty(t, f.Roots[0].Children[0].Children, "true parent's child list must shrink")
}

func TestRemove_Root(t *testing.T) {
	f, _ := buildTestForest()
	root := f.Roots[0]
	assert.True(t, f.Remove(root))
	require.Len(t, f.Roots, 1)
	assert.Equal(t, "other", f.Roots[0].Name)
}

func TestRemove_MissingIsNoOp(t *testing.T) {
	f, _ := buildTestForest()
	stranger := &domain.TaskItem{ID1: 99, ID2: 1}
	assert.False(t, f.Remove(stranger))
	assert.Equal(t, 4, f.Count())
}

func TestRemove_TakesSubtreeAlong(t *testing.T) {
	f, deep := buildTestForest()
	mid := f.Roots[0].Children[0]
	assert.True(t, f.Remove(mid))
	assert.False(t, f.Contains(deep), "descendants leave with their parent")
}

func TestAttach_CycleGuard(t *testing.T) {
	f, deep := buildTestForest()
	root := f.Roots[0]

	err := f.Attach(deep, root)
	require.Error(t, err, "attaching an ancestor under its descendant must fail")

	err = f.Attach(root, root)
	require.Error(t, err)

	fresh := &domain.TaskItem{ID1: 9, ID2: 1}
	require.NoError(t, f.Attach(deep, fresh))
	assert.Equal(t, fresh, deep.Children[0])
}

func TestExpandCollapseAll_CountsOnlyChanges(t *testing.T) {
	f, _ := buildTestForest()

	// Two nodes have children (root, mid); none are expanded yet.
	assert.Equal(t, 2, f.ExpandAll())
	assert.Equal(t, 0, f.ExpandAll(), "second expand changes nothing")

	assert.Equal(t, 2, f.CollapseAll())
	assert.Equal(t, 0, f.CollapseAll())
}

func TestFindByID(t *testing.T) {
	f, deep := buildTestForest()
	assert.Equal(t, deep, f.FindByID(3, 1))
	assert.Nil(t, f.FindByID(3, 2))
}
