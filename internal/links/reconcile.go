package links

import "sort"

// SetURL 替换指定平台的链接地址，不触发序号重排。
// 平台不存在时追加一条停用条目，保证后续启用操作有落点。
func SetURL(list List, name, newURL string) List {
	out := list.Clone()
	if idx := out.Find(name); idx >= 0 {
		out[idx].URL = newURL
		return out
	}
	return append(out, SocialLink{Name: name, URL: newURL, Enabled: false, ID: 0})
}

// ToggleEnabled 切换指定平台的启用状态并重排序号。
// 启用前校验当前 URL 必须是合法的绝对地址，否则返回 ErrInvalidURL 且列表原样返回。
// currentURL 非空时会同步覆盖条目的 URL（编辑态的最新输入优先于已存值）。
// 平台不在列表中时仅允许以启用方式插入。
func ToggleEnabled(list List, name, currentURL string) (List, error) {
	idx := list.Find(name)

	if idx < 0 {
		// 新条目只能以启用状态进入列表
		if !IsValidURL(currentURL) {
			return list, ErrInvalidURL
		}
		out := append(list.Clone(), SocialLink{Name: name, URL: currentURL, Enabled: true})
		return reassignCanonical(out), nil
	}

	out := list.Clone()
	effectiveURL := out[idx].URL
	if currentURL != "" {
		effectiveURL = currentURL
	}

	if !out[idx].Enabled && !IsValidURL(effectiveURL) {
		return list, ErrInvalidURL
	}

	out[idx].URL = effectiveURL
	out[idx].Enabled = !out[idx].Enabled
	return reassignCanonical(out), nil
}

// Reorder 在启用子集内把 from 位置的条目移动到 to 位置。
// 停用条目不参与移动，重排后按移动后的顺序赋予序号（这是唯一以拖拽顺序为准的路径）。
// 下标越界时列表原样返回。
func Reorder(list List, from, to int) List {
	enabled := list.Enabled()
	if from < 0 || from >= len(enabled) || to < 0 || to >= len(enabled) {
		return list
	}

	moved := enabled[from]
	enabled = append(enabled[:from], enabled[from+1:]...)
	enabled = append(enabled[:to], append(List{moved}, enabled[to:]...)...)

	return reassignInsertion(append(enabled, list.Disabled()...))
}

// Normalize 在不改变启用子集相对顺序的前提下强制执行序号不变量：
// 启用条目获得 1..n 的连续序号，停用条目序号清零。
// 存储边界用它兜底外部提交的列表，拖拽产生的顺序得以保留。
func Normalize(list List) List {
	return reassignInsertion(list)
}

// reassignCanonical 按固定平台顺序对启用子集重排并赋予 1..n 的序号，
// 停用子集序号清零并兜底关闭启用位，最终列表为启用段接停用段。
func reassignCanonical(list List) List {
	enabled := list.Enabled()
	disabled := list.Disabled()

	sort.SliceStable(enabled, func(i, j int) bool {
		return platformIndex(enabled[i].Name) < platformIndex(enabled[j].Name)
	})
	sort.SliceStable(disabled, func(i, j int) bool {
		return platformIndex(disabled[i].Name) < platformIndex(disabled[j].Name)
	})

	return renumber(enabled, disabled)
}

// reassignInsertion 保持启用子集当前顺序赋予序号，仅在拖拽重排后使用。
func reassignInsertion(list List) List {
	return renumber(list.Enabled(), list.Disabled())
}

func renumber(enabled, disabled List) List {
	out := make(List, 0, len(enabled)+len(disabled))
	for i, link := range enabled {
		link.ID = i + 1
		link.Enabled = true
		out = append(out, link)
	}
	for _, link := range disabled {
		link.ID = 0
		link.Enabled = false
		out = append(out, link)
	}
	return out
}
