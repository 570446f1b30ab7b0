package llm

import (
	"TenderSync/internal/config"
	"TenderSync/internal/model"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
	// 原文过长时截断，避免超出模型上下文
	maxPromptChars = 12000

	systemPrompt = "ROLE: You are a Senior Information Scientist and DACH Procurement Strategist.\n" +
		"MISSION: Deconstruct complex German \"Amtsdeutsch\" tenders for a UK-based SME CEO.\n" +
		"Always respond with valid JSON."
)

// Client OpenAI chat-completions客户端（JSON模式）
type Client struct {
	cfg        *config.OpenAIConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewClient(cfg *config.OpenAIConfig, logger *logrus.Logger) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// chat-completions请求/响应结构（只声明用到的字段）
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// AnalyzeTender 对单条招标原文做双语分析，返回统一分析结果
func (c *Client) AnalyzeTender(ctx context.Context, rawText string) (*model.UnifiedTenderAnalysis, error) {
	if c.cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API Key未配置")
	}

	// 1. 构建请求（JSON模式强制结构化输出）
	reqBody := chatRequest{
		Model: c.model(),
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildUserPrompt(rawText)},
		},
		Temperature: 0.2,
		MaxTokens:   2000,
	}
	reqBody.ResponseFormat.Type = "json_object"

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("序列化LLM请求失败: %w", err)
	}

	// 2. 调用chat/completions
	endpoint := c.baseURL() + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("构建LLM请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("调用LLM失败: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Errorf("关闭LLM响应体失败: %v", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取LLM响应失败: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("LLM返回异常状态码%d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	// 3. 取出assistant消息内容并反序列化为统一分析结构
	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return nil, fmt.Errorf("解析LLM响应失败: %w", err)
	}
	if len(cr.Choices) == 0 || cr.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("LLM返回空内容")
	}

	var analysis model.UnifiedTenderAnalysis
	if err := json.Unmarshal([]byte(cr.Choices[0].Message.Content), &analysis); err != nil {
		return nil, fmt.Errorf("解析分析结果失败: %w", err)
	}
	return &analysis, nil
}

func buildUserPrompt(rawText string) string {
	return fmt.Sprintf(`INPUT DOCUMENT (German):
%s

OUTPUT FORMAT (JSON):
{
    "titleEn": "English translation of the tender title",
    "englishExecutiveSummary": "2-3 sentence summary of the project",
    "buyerNameEn": "English translation of the buyer organisation name",
    "fatalFlaws": ["list of showstopper requirements that UK SMEs cannot meet"],
    "hardCertifications": ["list of required certifications like BSI C5, ISO 27001, etc."],
    "techStack": ["detected programming languages, frameworks, cloud platforms"],
    "accessibilityScore": 7.5,
    "eligibilityProbability": 0.75
}

ANALYSIS:`, truncate(rawText, maxPromptChars))
}

func (c *Client) baseURL() string {
	if c.cfg.BaseURL != "" {
		return c.cfg.BaseURL
	}
	return defaultBaseURL
}

func (c *Client) model() string {
	if c.cfg.Model != "" {
		return c.cfg.Model
	}
	return defaultModel
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "\n[...truncated...]"
}
