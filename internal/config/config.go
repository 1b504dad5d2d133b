package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config 聚合整个服务的配置项，进程启动时解析一次。
type Config struct {
	Server     ServerConfig
	Generation GenerationConfig
	Classifier ClassifierConfig
	Embedding  EmbeddingConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	generation, err := loadGenerationConfig()
	if err != nil {
		return nil, err
	}

	classifier, err := loadClassifierConfig()
	if err != nil {
		return nil, err
	}

	embedding := loadEmbeddingConfig()

	return &Config{
		Server:     server,
		Generation: generation,
		Classifier: classifier,
		Embedding:  embedding,
	}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// GenerationConfig 描述文本生成（Together 兼容 OpenAI 协议）相关配置。
// 采样参数固定为应用调好的默认值，必要时可用环境变量覆盖。
type GenerationConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
	TopP        float64
	Timeout     time.Duration
}

// Enabled 表示是否提供了生成所需的密钥。没有密钥时走本地兜底回复。
func (c GenerationConfig) Enabled() bool {
	return c.APIKey != ""
}

func loadGenerationConfig() (GenerationConfig, error) {
	cfg := GenerationConfig{
		APIKey:      strings.TrimSpace(os.Getenv("TOGETHER_API_KEY")),
		BaseURL:     getEnvOrDefault("TOGETHER_BASE_URL", "https://api.together.xyz/v1"),
		Model:       getEnvOrDefault("TOGETHER_MODEL", "mistralai/Mixtral-8x7B-Instruct-v0.1"),
		MaxTokens:   600,
		Temperature: 0.9,
		TopP:        0.95,
		Timeout:     60 * time.Second,
	}

	if maxTokens, err := parseOptionalIntEnv("GENERATION_MAX_TOKENS"); err != nil {
		return GenerationConfig{}, err
	} else if maxTokens != nil && *maxTokens > 0 {
		cfg.MaxTokens = *maxTokens
	}

	if temperature, err := parseOptionalFloatEnv("GENERATION_TEMPERATURE"); err != nil {
		return GenerationConfig{}, err
	} else if temperature != nil {
		cfg.Temperature = *temperature
	}

	if topP, err := parseOptionalFloatEnv("GENERATION_TOP_P"); err != nil {
		return GenerationConfig{}, err
	} else if topP != nil {
		cfg.TopP = *topP
	}

	if timeout, err := parseOptionalIntEnv("GENERATION_TIMEOUT_SECONDS"); err != nil {
		return GenerationConfig{}, err
	} else if timeout != nil && *timeout > 0 {
		cfg.Timeout = time.Duration(*timeout) * time.Second
	}

	return cfg, nil
}

// ClassifierConfig 描述情绪分类模型（HuggingFace 推理接口）相关配置。
type ClassifierConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Enabled 表示是否提供了分类所需的密钥。
func (c ClassifierConfig) Enabled() bool {
	return c.APIKey != ""
}

func loadClassifierConfig() (ClassifierConfig, error) {
	cfg := ClassifierConfig{
		APIKey:  strings.TrimSpace(os.Getenv("HF_API_KEY")),
		BaseURL: getEnvOrDefault("HF_BASE_URL", "https://api-inference.huggingface.co"),
		Model:   getEnvOrDefault("HF_MODEL", "j-hartmann/emotion-english-distilroberta-base"),
		Timeout: 30 * time.Second,
	}

	if timeout, err := parseOptionalIntEnv("HF_TIMEOUT_SECONDS"); err != nil {
		return ClassifierConfig{}, err
	} else if timeout != nil && *timeout > 0 {
		cfg.Timeout = time.Duration(*timeout) * time.Second
	}

	return cfg, nil
}

// EmbeddingConfig 描述 Voyage 向量化接口配置。该能力独立于对话主流程。
type EmbeddingConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Enabled 表示是否提供了向量化所需的密钥。
func (c EmbeddingConfig) Enabled() bool {
	return c.APIKey != ""
}

func loadEmbeddingConfig() EmbeddingConfig {
	return EmbeddingConfig{
		APIKey:  strings.TrimSpace(os.Getenv("VOYAGE_API_KEY")),
		BaseURL: getEnvOrDefault("VOYAGE_BASE_URL", "https://api.voyageai.com/v1"),
		Model:   getEnvOrDefault("VOYAGE_MODEL", "voyage-lite-02-instruct"),
		Timeout: 30 * time.Second,
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
