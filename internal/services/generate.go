package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// GenerateService turns a topic/difficulty/count request into quiz questions
// via an OpenAI-compatible chat-completions endpoint. The model output is an
// opaque blob that needs extraction and validation before anything trusts it.
type GenerateService struct {
	httpClient *http.Client
	apiKey     string
	apiURL     string
	model      string
}

func NewGenerateService(apiKey, apiURL, model string) *GenerateService {
	return &GenerateService{
		httpClient: &http.Client{Timeout: 120 * time.Second},
		apiKey:     apiKey,
		apiURL:     apiURL,
		model:      model,
	}
}

func (s *GenerateService) IsAvailable() bool {
	return s.apiKey != ""
}

type GeneratedQuestion struct {
	Text          string   `json:"question"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option_index"`
}

type generatedQuiz struct {
	Questions []GeneratedQuestion `json:"questions"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

const systemPrompt = `You are a trivia question generator. Respond with ONLY valid JSON (no markdown, no code fences, no explanations) in the following format:

{
  "questions": [
    {
      "question": "Question text?",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "correct_option_index": 0
    }
  ]
}

Rules:
- Generate exactly the number of questions requested
- Each question must have exactly 4 options
- correct_option_index is the 0-based index of the right option
- Match the requested difficulty and make questions factually accurate
- Return ONLY the JSON object, nothing else`

// GenerateQuestions asks the model for count questions on the topic. A
// failed call or unparsable output comes back as an error carrying the raw
// model text; there is no retry.
func (s *GenerateService) GenerateQuestions(topic, difficulty string, count int) ([]GeneratedQuestion, error) {
	if !s.IsAvailable() {
		return nil, fmt.Errorf("quiz generation is not configured")
	}
	if count <= 0 {
		count = 5
	}
	if difficulty == "" {
		difficulty = "medium"
	}

	prompt := fmt.Sprintf("Create a quiz of %d questions on %s with difficulty level %s", count, topic, difficulty)
	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", s.apiURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("quiz generation failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quiz generation failed: API returned status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("quiz generation failed: unparsable API response: %s", string(body))
	}
	if chatResp.Error != nil {
		return nil, fmt.Errorf("quiz generation failed: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("quiz generation failed: empty response from model")
	}

	content := extractJSON(chatResp.Choices[0].Message.Content)

	var quiz generatedQuiz
	if err := json.Unmarshal([]byte(content), &quiz); err != nil {
		return nil, fmt.Errorf("quiz generation failed: model returned invalid JSON: %s", chatResp.Choices[0].Message.Content)
	}

	if err := validateQuestions(quiz.Questions); err != nil {
		return nil, fmt.Errorf("quiz generation failed: %w: %s", err, chatResp.Choices[0].Message.Content)
	}

	return quiz.Questions, nil
}

// extractJSON strips code fences and any chatter around the outermost JSON
// object. Models ignore the JSON-only instruction often enough that this is
// load-bearing.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
	}
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
	}
	if strings.HasSuffix(content, "```") {
		content = strings.TrimSuffix(content, "```")
	}
	content = strings.TrimSpace(content)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}

func validateQuestions(questions []GeneratedQuestion) error {
	if len(questions) == 0 {
		return fmt.Errorf("no questions in model output")
	}
	for i, q := range questions {
		if strings.TrimSpace(q.Text) == "" {
			return fmt.Errorf("question %d has empty text", i+1)
		}
		if len(q.Options) < 2 || len(q.Options) > 4 {
			return fmt.Errorf("question %d has %d options", i+1, len(q.Options))
		}
		if q.CorrectOption < 0 || q.CorrectOption >= len(q.Options) {
			return fmt.Errorf("question %d has correct_option_index %d out of range", i+1, q.CorrectOption)
		}
	}
	return nil
}
