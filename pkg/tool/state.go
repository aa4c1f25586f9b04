package tool

// State 当前工具和排队中的下一个工具
//
// Set 只记录请求，Apply 在帧开始时统一切换，
// 这样同一帧内的系统看到的工具始终一致。
type State struct {
	current Tool
	next    Tool
	queued  bool
}

// NewState 以 initial 为当前工具创建状态
func NewState(initial Tool) *State {
	return &State{current: initial}
}

// Current 当前工具
func (s *State) Current() Tool {
	return s.current
}

// Is 当前工具是否属于集合
func (s *State) Is(tools Tools) bool {
	return tools.Contains(s.current)
}

// Set 请求在下一帧切换到 next
func (s *State) Set(next Tool) {
	s.next = next
	s.queued = true
}

// Pending 是否有排队的切换
func (s *State) Pending() (Tool, bool) {
	return s.next, s.queued
}

// Apply 执行排队的切换
// 返回切换前后的工具以及是否真的发生了变化（切换到相同工具不算变化）
func (s *State) Apply() (prev, cur Tool, changed bool) {
	prev = s.current
	if !s.queued {
		return prev, prev, false
	}
	s.queued = false
	s.current = s.next
	return prev, s.current, prev != s.current
}
