package service

import (
	"fmt"
	"math/rand"
	"wordquiz_backend/internal/model"
)

// answerAudioRef 选项音频的规范命名，按源题ID推导，不复用题干音频
func answerAudioRef(questionID int) string {
	return fmt.Sprintf("audio/q%d_answer.mp3", questionID)
}

type candidate struct {
	text    string
	audio   string
	correct bool
}

// GenerateOptions 为 target 生成 count 个选项：1个正确答案加 count-1 个
// 从池中其它题目抽取的干扰项，洗入 1..count 槽位，返回正确槽位号。
// 每次调用独立洗牌：同一道题在一个会话里被抽中两次，两次的选项
// 排布互不相关。
func GenerateOptions(target *model.QuestionDefinition, pack *model.QuestionPack, count int, r *rand.Rand) ([]model.Option, int) {
	if count < 1 {
		count = 1
	}

	candidates := make([]candidate, 0, count)
	candidates = append(candidates, candidate{
		text:    target.Answer,
		audio:   answerAudioRef(target.ID),
		correct: true,
	})

	// 不放回地抽取干扰项
	remaining := make([]int, 0, len(pack.IDs))
	for _, id := range pack.IDs {
		if id != target.ID {
			remaining = append(remaining, id)
		}
	}
	r.Shuffle(len(remaining), func(i, j int) {
		remaining[i], remaining[j] = remaining[j], remaining[i]
	})
	if len(remaining) > count-1 {
		remaining = remaining[:count-1]
	}
	for _, id := range remaining {
		candidates = append(candidates, candidate{
			text:  pack.Questions[id].Answer,
			audio: answerAudioRef(id),
		})
	}

	// 池子太小时用带后缀的正确答案补齐，不让生成失败
	for i := len(candidates); i < count; i++ {
		candidates = append(candidates, candidate{
			text:  fmt.Sprintf("%s (вариант %d)", target.Answer, i+1),
			audio: answerAudioRef(target.ID),
		})
	}

	r.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	options := make([]model.Option, len(candidates))
	correct := 1
	for i, c := range candidates {
		options[i] = model.Option{
			Number: i + 1,
			Text:   c.text,
			Audio:  c.audio,
		}
		if c.correct {
			correct = i + 1
		}
	}

	return options, correct
}
