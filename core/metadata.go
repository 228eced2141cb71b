package core

import "time"

// ModelMetadata 记录一次训练周期的产出信息，随其余工件一起持久化。
//
// LastTraining 为零值表示从未训练过，重训调度器据此直接判定需要训练。
// 索引映射用于解释协同模型矩阵位置对应的用户/物品 ID。
type ModelMetadata struct {
	ModelVersion string         `json:"model_version"`
	LastTraining time.Time      `json:"last_training"`
	UserIndex    map[string]int `json:"user_index,omitempty"`
	ItemIndex    map[string]int `json:"item_index,omitempty"`
}
