package links

// Draft 是链接列表的编辑缓冲：在已保存列表之上维护一份工作副本，
// 所有编辑都先作用于工作副本，直到 Commit 才形成新的持久化文本。
// 这把"先改本地缓存再保存"的编辑流程收敛为显式的草稿/提交两步。
type Draft struct {
	stored  List
	working List
}

// NewDraft 基于持久化文本创建草稿。
// 工作副本以固定平台目录为底，再叠加已保存条目的 URL 与启用状态，
// 保证每个受支持的平台都有可编辑的落点。
func NewDraft(raw string) *Draft {
	stored := Parse(raw)

	working := make(List, 0, len(platformOrder))
	for _, name := range platformOrder {
		entry := SocialLink{Name: name}
		if idx := stored.Find(name); idx >= 0 {
			entry.URL = stored[idx].URL
			entry.Enabled = stored[idx].Enabled
			entry.ID = stored[idx].ID
		}
		working = append(working, entry)
	}

	return &Draft{stored: stored, working: working}
}

// Working 返回工作副本的拷贝，供表单渲染使用。
func (d *Draft) Working() List {
	return d.working.Clone()
}

// Stored 返回当前已保存列表的拷贝。
func (d *Draft) Stored() List {
	return d.stored.Clone()
}

// SetURL 修改工作副本中指定平台的地址，不触发序号变化。
func (d *Draft) SetURL(name, newURL string) {
	d.working = SetURL(d.working, name, newURL)
}

// Toggle 切换指定平台的启用状态。
// 启用校验失败时返回 ErrInvalidURL，草稿保持不变。
func (d *Draft) Toggle(name string) error {
	idx := d.working.Find(name)
	if idx < 0 {
		return ErrInvalidURL
	}
	currentURL := d.working[idx].URL

	next, err := ToggleEnabled(d.working, name, currentURL)
	if err != nil {
		return err
	}
	d.working = next
	return nil
}

// Move 在启用子集内移动条目，拖拽顺序在提交前即生效。
func (d *Draft) Move(from, to int) {
	d.working = Reorder(d.working, from, to)
}

// Dirty 报告工作副本是否与已保存列表存在差异。
// 仅比较会被持久化的条目：URL 为空且从未启用的占位平台不计入。
func (d *Draft) Dirty() bool {
	return d.persistable().Serialize() != d.stored.Serialize()
}

// Commit 将工作副本提升为已保存状态并返回持久化文本。
func (d *Draft) Commit() string {
	d.stored = d.persistable()
	return d.stored.Serialize()
}

// Discard 丢弃未提交的修改，工作副本回退到已保存状态。
func (d *Draft) Discard() {
	fresh := NewDraft(d.stored.Serialize())
	d.working = fresh.working
}

// persistable 过滤出值得落库的条目：已启用的，或带有 URL 的停用条目。
func (d *Draft) persistable() List {
	out := make(List, 0, len(d.working))
	for _, link := range d.working {
		if link.Enabled || link.URL != "" {
			out = append(out, link)
		}
	}
	return out
}
