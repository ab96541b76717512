package game

import (
	"fmt"
	"strings"

	"github.com/dhleesep9/mentor-engine/pkg/exam"
	"github.com/dhleesep9/mentor-engine/pkg/progress"
	"github.com/dhleesep9/mentor-engine/pkg/statemachine"
)

const mentorPersona = `당신은 '서아'라는 이름의 수능 스터디 멘토입니다. ` +
	`플레이어는 수능을 준비하는 재수생이며, 당신은 매주 멘토링으로 학습을 돕습니다. ` +
	`항상 한국어로, 두세 문장 이내로 답하세요.`

// affectionTone maps accumulated affection to a speaking style hint for
// the LLM. Thresholds match the narrative bands of the game script.
func affectionTone(affection int) string {
	switch {
	case affection < 10:
		return "아직 서먹한 사이입니다. 정중하고 사무적인 말투를 유지하세요."
	case affection < 30:
		return "조금 친해진 사이입니다. 부드럽지만 격식 있는 말투를 사용하세요."
	case affection < 60:
		return "꽤 가까운 사이입니다. 편하고 다정한 말투를 사용하세요."
	default:
		return "매우 가까운 사이입니다. 애정이 드러나는 친밀한 말투를 사용하세요."
	}
}

// buildSystemPrompt assembles the LLM system message for one chat turn:
// persona, the current scene, the relationship tone, and session stats.
func buildSystemPrompt(p *progress.Progress, state statemachine.State) string {
	var b strings.Builder
	b.WriteString(mentorPersona)
	b.WriteString("\n\n")

	if state.Description != "" {
		b.WriteString("현재 장면: ")
		b.WriteString(state.Description)
		b.WriteString("\n")
	}
	b.WriteString(affectionTone(p.Affection))
	b.WriteString("\n")

	fmt.Fprintf(&b, "플레이어 상태: %d주차, 날짜 %s, 체력 %d, 멘탈 %d, 자신감 %d.",
		p.Week, p.GameDate, p.Stamina, p.Mental, p.Confidence)
	if len(p.SelectedSubjects) > 0 {
		fmt.Fprintf(&b, " 선택 과목: %s.", strings.Join(p.SelectedSubjects, ", "))
	}

	today := p.Date()
	if month, ok := exam.IsExamDay(today); ok {
		fmt.Fprintf(&b, " 오늘은 %s 날입니다.", exam.Name(month))
	} else if d := p.DaysUntil(exam.NextCSAT(today)); d > 0 {
		fmt.Fprintf(&b, " 수능까지 %d일 남았습니다.", d)
	}
	if p.ConversationCount > 0 {
		fmt.Fprintf(&b, " 이번 주 나눈 대화: %d회.", p.ConversationCount)
	}
	return b.String()
}

// fallbackReply keeps the conversation moving when the LLM is
// unavailable.
const fallbackReply = "미안, 잠깐 딴생각을 했어. 다시 한번 말해줄래?"
