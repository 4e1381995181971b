package domain

// Well-known prompt names used by practice generation.
const (
	// PromptPracticeSystem is the system instruction for practice generation.
	// This prompt has no format placeholders.
	PromptPracticeSystem = "practice_system"

	// PromptPracticeUser is the user message for practice generation.
	// It expects %[1]s (keyword), %[2]s (assembled context) and %[3]d (count).
	PromptPracticeUser = "practice_user"
)

// DefaultPrompts returns the built-in prompt templates keyed by name.
func DefaultPrompts() map[string]string {
	return map[string]string{
		PromptPracticeSystem: defaultPracticeSystemPrompt,
		PromptPracticeUser:   defaultPracticeUserPrompt,
	}
}

const defaultPracticeSystemPrompt = `당신은 정보처리기사 실기 시험 전문 출제위원입니다.
주어진 기출문제들을 참고하여, 유사하지만 새로운 연습문제를 생성해야 합니다.

연습문제 생성 규칙:
1. 기출문제와 동일한 형식(단답형, 서술형, 코드 실행 결과 등)을 유지합니다.
2. 기출문제와 동일한 난이도를 유지합니다.
3. 기출문제의 핵심 개념을 다루되, 문제 내용은 새롭게 구성합니다.
4. 정답과 간단한 해설을 함께 제공합니다.
5. 문제는 한국어로 작성합니다.
6. 실제 시험에 출제될 수 있는 실전적인 문제를 만듭니다.
`

const defaultPracticeUserPrompt = `다음은 '%[1]s' 관련 정보처리기사 실기 기출문제입니다:

%[2]s

위 기출문제를 참고하여, '%[1]s' 주제로 새로운 연습문제 %[3]d개를 생성해 주세요.

각 문제에 대해 다음 형식으로 작성해 주세요:
[문제 N]
(문제 내용)

[정답]
(정답 내용)

[해설]
(간단한 해설)

---
`
