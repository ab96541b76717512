package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/dhleesep9/mentor-engine/pkg/chat"
	"github.com/dhleesep9/mentor-engine/pkg/progress"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

// CreateProgressRequest matches the API request structure
type CreateProgressRequest struct {
	Username string `json:"username"`
}

func createProgress(client *http.Client, baseURL string, username string) (*progress.Progress, error) {
	jsonData, err := json.Marshal(CreateProgressRequest{Username: username})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(
		baseURL+"/v1/progress",
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusCreated {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("failed to create progress: %s", errorResp.Error)
	}

	var p progress.Progress
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("failed to parse progress response: %w", err)
	}
	return &p, nil
}

func getProgress(client *http.Client, baseURL string, progressID uuid.UUID) (*progress.Progress, error) {
	resp, err := client.Get(fmt.Sprintf("%s/v1/progress/%s", baseURL, progressID))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("failed to get progress: %s", errorResp.Error)
	}

	var p progress.Progress
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("failed to parse progress response: %w", err)
	}
	return &p, nil
}

func sendChat(client *http.Client, baseURL string, progressID uuid.UUID, message string) (*chat.ChatResponse, error) {
	jsonData, err := json.Marshal(chat.ChatRequest{
		ProgressID: progressID,
		Message:    message,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(
		baseURL+"/v1/chat",
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("chat request failed: %s", errorResp.Error)
	}

	var chatResp chat.ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &chatResp, nil
}
