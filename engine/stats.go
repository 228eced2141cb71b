package engine

import "time"

// Stats 是引擎的运行状态概览，用于健康检查与监控面板。
type Stats struct {
	Users  int `json:"users"`
	Items  int `json:"items"`
	Events int `json:"events"`

	CollaborativeTrained bool `json:"collaborative_trained"`
	ContentTrained       bool `json:"content_trained"`

	ModelVersion string    `json:"model_version"`
	LastTraining time.Time `json:"last_training"`
}

// Stats 返回当前状态快照。LastTraining 为零值表示从未训练。
func (e *Engine) Stats() Stats {
	snap := e.models.Load()

	e.metaMu.Lock()
	version := e.meta.ModelVersion
	last := e.meta.LastTraining
	e.metaMu.Unlock()

	return Stats{
		Users:                e.behaviors.UserCount(),
		Items:                e.features.Len(),
		Events:               e.behaviors.EventCount(),
		CollaborativeTrained: snap.collaborative.Trained(),
		ContentTrained:       snap.content.Trained(),
		ModelVersion:         version,
		LastTraining:         last,
	}
}
