package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
)

const (
	defaultBaseURL = "http://127.0.0.1:5000"
	defaultPath    = "/ask"
	defaultLogFile = "askchat.log"
	defaultPort    = "5000"
)

// Config 聚合客户端与桩服务的配置项。
type Config struct {
	Client ClientConfig
	Log    LogConfig
	Server ServerConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	client, err := loadClientConfig()
	if err != nil {
		return nil, err
	}

	logCfg, err := loadLogConfig()
	if err != nil {
		return nil, err
	}

	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Client: client, Log: logCfg, Server: server}, nil
}

// ClientConfig 描述问答端点的位置。
type ClientConfig struct {
	BaseURL string
	Path    string
}

// Endpoint 返回提问请求发往的完整URL。
func (c ClientConfig) Endpoint() string {
	return strings.TrimRight(c.BaseURL, "/") + c.Path
}

func loadClientConfig() (ClientConfig, error) {
	base, err := ParseBaseURL("ASK_BASE_URL", getEnvOrDefault("ASK_BASE_URL", defaultBaseURL))
	if err != nil {
		return ClientConfig{}, err
	}

	path := getEnvOrDefault("ASK_PATH", defaultPath)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return ClientConfig{BaseURL: base, Path: path}, nil
}

// ParseBaseURL 校验 http(s) 基础URL并去掉末尾斜杠，source 标明取值来源（环境变量或命令行参数）。
func ParseBaseURL(source, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid %s value %q: %w", source, raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("invalid %s value %q: want http(s)://host[:port]", source, raw)
	}
	return strings.TrimRight(raw, "/"), nil
}

// LogConfig 描述诊断日志输出。
type LogConfig struct {
	File  string
	Level zapcore.Level
}

func loadLogConfig() (LogConfig, error) {
	level, err := parseLevelEnv("ASK_LOG_LEVEL", zapcore.InfoLevel)
	if err != nil {
		return LogConfig{}, err
	}
	return LogConfig{
		File:  getEnvOrDefault("ASK_LOG_FILE", defaultLogFile),
		Level: level,
	}, nil
}

// ServerConfig 描述桩服务的监听地址。
type ServerConfig struct {
	Addr       string
	EchoPrefix string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := getEnvOrDefault("PORT", defaultPort)

	addr := port
	if !strings.Contains(port, ":") {
		// 允许用户直接传入 ":5000" 或 "127.0.0.1:5000"。
		addr = ":" + port
	}
	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{
		Addr:       addr,
		EchoPrefix: os.Getenv("ASK_STUB_PREFIX"),
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseLevelEnv(key string, defaultValue zapcore.Level) (zapcore.Level, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	level, err := zapcore.ParseLevel(raw)
	if err != nil {
		return defaultValue, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return level, nil
}
