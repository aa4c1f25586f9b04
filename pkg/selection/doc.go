// Package selection 实现选择候选消歧引擎
//
// 数据流（每帧一次，顺序固定）：
//
//	命中测试生产者 → Inbox.Push
//	Inbox.Seal（屏障：本帧不再接收事件）
//	Registry.ApplyAll(Inbox.Drain())
//	Cursor.Update（滚轮步进 / 注册表变化时重新锚定）
//
// 本包只保存状态、不接触 ECS 实体的组件；
// 高亮代理、确认与取消选择由 systems 包中的各个系统完成。
// 所有状态都挂在一个 Session 上，进入选择工具时创建，离开时整体丢弃。
package selection
