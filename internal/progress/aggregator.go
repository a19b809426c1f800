package progress

import "tasknag-backend/internal/task/domain"

// Aggregate computes a parent's completion percentage from its direct
// children: the mean of each child's effective progress, truncated toward
// zero by integer division. An empty child set aggregates to 0.
func Aggregate(children []*domain.Task) int {
	if len(children) == 0 {
		return 0
	}

	total := 0
	for _, child := range children {
		total += EffectiveProgress(child)
	}
	return total / len(children)
}

// EffectiveProgress is 100 for a done task, else its stored progress. For a
// task with children the stored progress is already its own aggregate, so the
// computation recurses through arbitrary depth without re-walking the tree.
func EffectiveProgress(task *domain.Task) int {
	if task.IsDone() {
		return 100
	}
	return task.Progress
}
