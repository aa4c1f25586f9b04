package selection

// Inbox 每帧的候选事件收件箱
//
// 生产者在本帧任意时刻 Push；流水线在所有生产者运行完之后调用 Seal，
// 之后 Drain 恰好取走一次本帧事件。Seal 之后才到达的事件会被推迟到下一帧，
// 这样迟到的生产者不会破坏本帧"注册表只消费一次"的约束。
type Inbox struct {
	events   []CandidateEvent
	deferred []CandidateEvent
	sealed   bool
}

// NewInbox 创建空收件箱
func NewInbox() *Inbox {
	return &Inbox{
		events: make([]CandidateEvent, 0, 16),
	}
}

// Push 追加一条事件，保持到达顺序
func (in *Inbox) Push(ev CandidateEvent) {
	if in.sealed {
		in.deferred = append(in.deferred, ev)
		return
	}
	in.events = append(in.events, ev)
}

// Seal 关闭本帧的事件接收
func (in *Inbox) Seal() {
	in.sealed = true
}

// IsSealed 本帧是否已封口
func (in *Inbox) IsSealed() bool {
	return in.sealed
}

// Len 返回本帧已接收（未推迟）的事件数量
func (in *Inbox) Len() int {
	return len(in.events)
}

// Deferred 返回被推迟到下一帧的事件数量
func (in *Inbox) Deferred() int {
	return len(in.deferred)
}

// Drain 取走本帧事件并重新打开收件箱
// 未封口时返回 nil：注册表不能在生产者完成之前消费
func (in *Inbox) Drain() []CandidateEvent {
	if !in.sealed {
		return nil
	}
	out := in.events
	in.events = in.deferred
	in.deferred = nil
	if in.events == nil {
		in.events = make([]CandidateEvent, 0, len(out))
	}
	in.sealed = false
	return out
}

// Reset 丢弃所有事件（离开选择模式时调用）
func (in *Inbox) Reset() {
	in.events = in.events[:0]
	in.deferred = nil
	in.sealed = false
}
