package formatter

import (
	"fmt"
	"strings"

	"github.com/tfournier/girder/internal/contract"
)

// FormatWBS renders the rolled-up work breakdown tree with a progress badge
// per node.
func FormatWBS(items []contract.WBSItem) string {
	if len(items) == 0 {
		return Dim("No work breakdown data.") + "\n"
	}

	var tree []TreeItem
	for i, item := range items {
		flattenWBS(item, 0, i == len(items)-1, &tree)
	}

	return RenderBox("Work Breakdown", RenderTree(tree))
}

func flattenWBS(item contract.WBSItem, level int, isLast bool, out *[]TreeItem) {
	*out = append(*out, TreeItem{
		Code:        item.WBSCode,
		Title:       wbsTitle(item),
		Level:       level,
		IsLast:      isLast,
		IsCritical:  item.IsCritical,
		IsMilestone: item.IsMilestone,
		Detail:      wbsDetail(item),
	})
	for i, child := range item.Children {
		flattenWBS(child, level+1, i == len(item.Children)-1, out)
	}
}

func wbsTitle(item contract.WBSItem) string {
	title := Bold(item.Name)
	if item.Kind != "" && item.Kind != "task" {
		title += " " + Dim(item.Kind)
	}
	return title
}

func wbsDetail(item contract.WBSItem) string {
	var parts []string
	if item.PercentComplete != nil {
		parts = append(parts, fmt.Sprintf("%.0f%%", *item.PercentComplete))
	}
	if item.ActualHours != nil {
		spent := FormatHours(*item.ActualHours)
		if item.BaselineHours != nil {
			spent += " / " + FormatHours(*item.BaselineHours)
		}
		parts = append(parts, spent)
	}
	if item.TaskCount > 1 {
		parts = append(parts, fmt.Sprintf("%d tasks", item.TaskCount))
	}
	return strings.Join(parts, " · ")
}
