package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 是引擎的完整配置。零值字段在 Normalize 时落到默认值，
// 一个空的 Config 就是一份可用的开发配置（内存存储、默认阈值）。
type Config struct {
	Store     StoreConfig     `yaml:"store"`
	Model     ModelConfig     `yaml:"model"`
	Recommend RecommendConfig `yaml:"recommend"`

	// Rules 是候选排除规则（CEL 表达式），命中即剔除。
	Rules []string `yaml:"rules"`
}

// StoreConfig 选择持久化后端。
type StoreConfig struct {
	// Backend: memory / file / redis
	Backend string `yaml:"backend"`

	// Path 是 file 后端的工件目录
	Path string `yaml:"path"`

	Redis RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	Addr string `yaml:"addr"`
	DB   int    `yaml:"db"`
}

// ModelConfig 控制训练与重训。
type ModelConfig struct {
	// Components 协同模型潜在因子数上限
	Components int `yaml:"components"`

	// MaxFeatures 内容模型词表上限
	MaxFeatures int `yaml:"max_features"`

	// MinRetrainEvents 重训阈值：上次训练之后的新事件数
	MinRetrainEvents int `yaml:"min_retrain_events"`
}

// RecommendConfig 控制推荐请求的默认行为。
type RecommendConfig struct {
	// DefaultN 调用方未指定条数时的默认值
	DefaultN int `yaml:"default_n"`

	// MaxRecent 内容召回取最近交互的最后几个作为种子
	MaxRecent int `yaml:"max_recent"`
}

// 默认值
const (
	DefaultBackend          = "memory"
	DefaultPath             = "models"
	DefaultComponents       = 50
	DefaultMaxFeatures      = 1000
	DefaultMinRetrainEvents = 100
	DefaultN                = 10
	DefaultMaxRecent        = 3
)

// Default 返回一份开发用默认配置。
func Default() *Config {
	cfg := &Config{}
	cfg.Normalize()
	return cfg
}

// Normalize 把零值字段落到默认值。
func (c *Config) Normalize() {
	if c.Store.Backend == "" {
		c.Store.Backend = DefaultBackend
	}
	if c.Store.Path == "" {
		c.Store.Path = DefaultPath
	}
	if c.Model.Components <= 0 {
		c.Model.Components = DefaultComponents
	}
	if c.Model.MaxFeatures <= 0 {
		c.Model.MaxFeatures = DefaultMaxFeatures
	}
	if c.Model.MinRetrainEvents <= 0 {
		c.Model.MinRetrainEvents = DefaultMinRetrainEvents
	}
	if c.Recommend.DefaultN <= 0 {
		c.Recommend.DefaultN = DefaultN
	}
	if c.Recommend.MaxRecent <= 0 {
		c.Recommend.MaxRecent = DefaultMaxRecent
	}
}

// Load 从 YAML 文件加载配置并落默认值。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Normalize()
	return cfg, nil
}
