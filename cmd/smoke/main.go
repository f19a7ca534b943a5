// Command smoke drives a running server through a full study session:
// register, log in, upload text, ask, generate a quiz and submit it.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type client struct {
	baseURL string
	token   string
	http    *http.Client
}

func prettyPrint(raw json.RawMessage) {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		fmt.Println(string(raw))
		return
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func (c *client) send(method, path string, body, out interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%s: undecodable response: %w", resp.Status, err)
	}
	if !env.Success {
		return fmt.Errorf("%s: %s", resp.Status, env.Message)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(env.Data)
	if out != nil {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

func step(title string, fn func() error) {
	color.Yellow("\n%s", title)
	if err := fn(); err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
}

func main() {
	baseURL := os.Getenv("SMOKE_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:5000/api"
	}
	c := &client{baseURL: baseURL, http: &http.Client{Timeout: 2 * time.Minute}}

	color.Cyan("🚀 Starting study session smoke test against %s\n", baseURL)

	email := fmt.Sprintf("smoke-%s@example.com", uuid.NewString()[:8])
	password := "smoke-password"

	step("1. Register", func() error {
		return c.send(http.MethodPost, "/auth/v1/register", map[string]string{
			"email": email, "password": password, "username": "smoke",
		}, nil)
	})

	step("2. Login", func() error {
		var res struct {
			Token string `json:"token"`
		}
		if err := c.send(http.MethodPost, "/auth/v1/login", map[string]string{"email": email, "password": password}, &res); err != nil {
			return err
		}
		c.token = res.Token
		return nil
	})

	var chatId string
	step("3. Upload text", func() error {
		var res struct {
			ChatId string `json:"chat_id"`
		}
		if err := c.send(http.MethodPost, "/content/v1/text", map[string]string{
			"text": "Photosynthesis converts light to chemical energy.",
		}, &res); err != nil {
			return err
		}
		chatId = res.ChatId
		return nil
	})

	step("4. Ask", func() error {
		return c.send(http.MethodPost, "/chat/v1/ask", map[string]string{
			"chat_id": chatId, "question": "What does photosynthesis convert?",
		}, nil)
	})

	var quiz struct {
		QuizId    string `json:"quiz_id"`
		Questions []struct {
			Answer string `json:"answer"`
		} `json:"questions"`
	}
	step("5. Generate quiz", func() error {
		return c.send(http.MethodGet, "/quiz/v1/"+chatId, nil, &quiz)
	})

	step("6. Submit quiz", func() error {
		answers := make([]string, len(quiz.Questions))
		for i, q := range quiz.Questions {
			answers[i] = q.Answer
		}
		return c.send(http.MethodPost, "/quiz/v1/"+chatId+"/submit", map[string]interface{}{
			"quiz_id": quiz.QuizId, "answers": answers,
		}, nil)
	})

	step("7. Cleanup: delete chat", func() error {
		return c.send(http.MethodDelete, "/chat/v1/"+chatId, nil, nil)
	})

	color.Cyan("\n✅ Smoke test complete")
}
