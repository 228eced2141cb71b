package engine

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rushteam/hybrec/core"
	"github.com/rushteam/hybrec/model"
)

// 持久化工件的键。每个工件独立序列化，缺失任意一个都是合法状态。
const (
	artifactCollaborative = "collaborative"
	artifactContent       = "content"
	artifactBehaviors     = "behaviors"
	artifactPreferences   = "preferences"
	artifactFeatures      = "features"
	artifactMetadata      = "metadata"
)

var artifactKeys = []string{
	artifactCollaborative,
	artifactContent,
	artifactBehaviors,
	artifactPreferences,
	artifactFeatures,
	artifactMetadata,
}

// Save 把引擎的全部状态写入持久化后端：行为日志、偏好画像、特征目录、
// 两个训练好的子模型与训练元数据。未训练的子模型不写工件。
func (e *Engine) Save(ctx context.Context) error {
	kvs := make(map[string][]byte, len(artifactKeys))
	put := func(key string, v any) error {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("engine: marshal %s: %w", key, err)
		}
		kvs[key] = data
		return nil
	}

	snap := e.models.Load()
	if snap.collaborative.Trained() {
		if err := put(artifactCollaborative, snap.collaborative); err != nil {
			return err
		}
	}
	if snap.content.Trained() {
		if err := put(artifactContent, snap.content); err != nil {
			return err
		}
	}
	if err := put(artifactBehaviors, e.behaviors.Events()); err != nil {
		return err
	}
	if err := put(artifactPreferences, e.behaviors.Profiles()); err != nil {
		return err
	}
	if err := put(artifactFeatures, e.features.All()); err != nil {
		return err
	}

	e.metaMu.Lock()
	meta := e.meta
	e.metaMu.Unlock()
	if err := put(artifactMetadata, meta); err != nil {
		return err
	}

	if err := e.store.BatchSet(ctx, kvs); err != nil {
		return fmt.Errorf("engine: save to %s: %w", e.store.Name(), err)
	}
	e.log.Info().Str("store", e.store.Name()).Int("artifacts", len(kvs)).Msg("state saved")
	return nil
}

// Load 从持久化后端恢复引擎状态，通常在启动时调用一次。
//
// 每个工件独立恢复：缺失的工件跳过（对应状态保持空/未训练），
// 损坏的工件记日志后跳过。只有后端本身不可用才返回错误。
func (e *Engine) Load(ctx context.Context) error {
	kvs, err := e.store.BatchGet(ctx, artifactKeys)
	if err != nil {
		return fmt.Errorf("engine: load from %s: %w", e.store.Name(), err)
	}

	if data, ok := kvs[artifactBehaviors]; ok {
		var events []core.BehaviorEvent
		if err := json.Unmarshal(data, &events); err != nil {
			e.log.Warn().Err(err).Str("artifact", artifactBehaviors).Msg("corrupt artifact skipped")
		} else {
			e.behaviors.RestoreEvents(events)
		}
	}
	if data, ok := kvs[artifactPreferences]; ok {
		var profiles map[string]*core.PreferenceProfile
		if err := json.Unmarshal(data, &profiles); err != nil {
			e.log.Warn().Err(err).Str("artifact", artifactPreferences).Msg("corrupt artifact skipped")
		} else {
			e.behaviors.RestoreProfiles(profiles)
		}
	}
	if data, ok := kvs[artifactFeatures]; ok {
		var records []core.FeatureRecord
		if err := json.Unmarshal(data, &records); err != nil {
			e.log.Warn().Err(err).Str("artifact", artifactFeatures).Msg("corrupt artifact skipped")
		} else {
			e.features.Restore(records)
		}
	}

	next := &snapshot{}
	if data, ok := kvs[artifactCollaborative]; ok {
		var c model.Collaborative
		if err := json.Unmarshal(data, &c); err != nil {
			e.log.Warn().Err(err).Str("artifact", artifactCollaborative).Msg("corrupt artifact skipped")
		} else {
			next.collaborative = &c
		}
	}
	if data, ok := kvs[artifactContent]; ok {
		var c model.Content
		if err := json.Unmarshal(data, &c); err != nil {
			e.log.Warn().Err(err).Str("artifact", artifactContent).Msg("corrupt artifact skipped")
		} else {
			next.content = &c
		}
	}
	e.models.Store(next)

	if data, ok := kvs[artifactMetadata]; ok {
		var meta core.ModelMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			e.log.Warn().Err(err).Str("artifact", artifactMetadata).Msg("corrupt artifact skipped")
		} else {
			e.metaMu.Lock()
			e.meta = meta
			e.metaMu.Unlock()
		}
	}

	e.log.Info().
		Str("store", e.store.Name()).
		Int("events", e.behaviors.EventCount()).
		Int("catalog", e.features.Len()).
		Bool("collaborative", next.collaborative.Trained()).
		Bool("content", next.content.Trained()).
		Msg("state loaded")
	return nil
}
