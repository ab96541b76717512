package services

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/dhleesep9/mentor-engine/pkg/chat"
)

// SentimentPromptPrefix identifies the affection-scoring system prompt,
// so mocks can tell it apart from mentor-reply requests.
const SentimentPromptPrefix = "당신은 감정 분석 전문가입니다."

// Affection deltas are clamped to this range per turn.
const (
	MinAffectionDelta = -3
	MaxAffectionDelta = 3
)

const sentimentInstruction = `다음 사용자 메시지를 분석하여 선생님(멘토)에 대한 태도가 얼마나 긍정적인지 판단해주세요.

사용자 메시지: %q

이 메시지는:
- 매우 긍정적 (격려, 감사, 응원, 신뢰 표현 등): 3
- 긍정적 (협조적, 수용적, 관심 표현 등): 2
- 약간 긍정적 (중립적이지만 긍정적 경향): 1
- 중립적 (단순 질문, 정보 요청 등): 0
- 약간 부정적 (불만, 반대, 거부감 등): -1
- 부정적 (비판, 불신, 거리두기 등): -2
- 매우 부정적 (적대적, 공격적, 완전 거부 등): -3

숫자 하나만 답변해주세요 (예: 2, -1, 0 등).`

var numberPattern = regexp.MustCompile(`-?\d+`)

// ScoreAffection asks the LLM how positive the player's message is and
// returns the per-turn affection delta. Any failure scores neutral (0):
// a broken scorer must never break the turn.
func ScoreAffection(ctx context.Context, llm LLMService, message string, logger *slog.Logger) int {
	messages := []chat.ChatMessage{
		{Role: chat.ChatRoleSystem, Content: SentimentPromptPrefix + " 사용자 메시지의 긍정/부정 정도를 정확하게 판단해주세요."},
		{Role: chat.ChatRoleUser, Content: fmt.Sprintf(sentimentInstruction, message)},
	}

	resp, err := llm.GenerateResponse(ctx, messages)
	if err != nil {
		logger.Warn("Sentiment scoring failed, treating as neutral", "error", err)
		return 0
	}

	return clampDelta(parseDelta(resp.Message))
}

// parseDelta extracts the first integer from the LLM's answer.
func parseDelta(answer string) int {
	answer = strings.TrimSpace(answer)
	if v, err := strconv.Atoi(answer); err == nil {
		return v
	}
	if m := numberPattern.FindString(answer); m != "" {
		v, _ := strconv.Atoi(m)
		return v
	}
	return 0
}

func clampDelta(v int) int {
	if v < MinAffectionDelta {
		return MinAffectionDelta
	}
	if v > MaxAffectionDelta {
		return MaxAffectionDelta
	}
	return v
}
