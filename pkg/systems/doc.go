// Package systems 编辑器的 ECS 系统
//
// 每个系统持有 EntityManager 并在 Update 中处理一个阶段。
// 调用顺序由 scenes.EditorScene.Step 固定，系统之间不直接调用。
package systems
