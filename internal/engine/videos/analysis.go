package videos

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/minsuk/vidscout/internal/engine"
)

const (
	sectionMaxChars = 350 // transcript chunk size, counted in runes
	maxSections     = 12
	seedKeywordTopK = 5
)

// Analyze fetches metadata and transcript for one video and derives
// Korean-first content seeds from them: a translated title, transcript
// sections, a shorts script skeleton, and an image-prompt seed. Transcript
// and translation failures degrade; only metadata lookup can error.
func Analyze(ctx context.Context, sess *engine.Session, videoID string) (engine.VideoAnalysisOutput, error) {
	out := engine.VideoAnalysisOutput{VideoID: videoID}

	details, err := engine.VideoDetails(ctx, sess, []string{videoID})
	if err != nil {
		return out, err
	}
	if len(details) == 0 {
		return out, fmt.Errorf("video %s not found", videoID)
	}
	rec := RecordFromDetail(details[0])
	out.Title = rec.Title

	if ko := engine.TranslateKorean(ctx, rec.Title); ko != rec.Title {
		out.TranslatedTitle = ko
	}

	var shown string
	transcript, lang, err := engine.FetchTranscript(ctx, videoID, []string{"ko", "en"})
	if err != nil {
		out.Degraded = append(out.Degraded, "transcript unavailable: "+err.Error())
	} else {
		out.TranscriptLang = lang
		shown = transcript
		if lang != "ko" {
			shown = engine.TranslateBlock(ctx, transcript)
		}
		out.Sections = chunkTranscript(shown, sectionMaxChars)
		if len(out.Sections) > maxSections {
			out.Sections = out.Sections[:maxSections]
		}
	}

	out.ShortsScript, out.ImagePrompt = heuristicSeeds(rec.Title, shown)
	return out, nil
}

// chunkTranscript splits a transcript into space-joined sections of at
// most maxChars runes, breaking only at line boundaries.
func chunkTranscript(transcript string, maxChars int) []engine.TranscriptSection {
	var sections []engine.TranscriptSection
	var buf []string
	flush := func() {
		if len(buf) == 0 {
			return
		}
		sections = append(sections, engine.TranscriptSection{
			Index: len(sections) + 1,
			Text:  strings.Join(buf, " "),
		})
		buf = nil
	}
	for _, line := range strings.Split(transcript, "\n") {
		joined := strings.Join(append(buf, line), " ")
		if utf8.RuneCountInString(joined) > maxChars {
			flush()
		}
		buf = append(buf, line)
	}
	flush()
	return sections
}

var seedWordRe = regexp.MustCompile(`[A-Za-z가-힣0-9]+`)

var seedStopwords = map[string]struct{}{
	"그리고": {}, "그래서": {}, "하지만": {}, "그러나": {}, "그냥": {},
	"근데": {}, "이건": {}, "저건": {}, "에서": {}, "하다": {},
	"the": {}, "and": {}, "to": {}, "of": {}, "in": {}, "a": {}, "is": {},
}

// transcriptKeywords returns the top frequent words of a transcript,
// stopword-filtered, ties broken by first occurrence.
func transcriptKeywords(transcript string, topk int) []string {
	if transcript == "" {
		return nil
	}
	words := seedWordRe.FindAllString(strings.ToLower(transcript), -1)
	freq := make(map[string]int)
	order := make(map[string]int)
	for i, w := range words {
		if utf8.RuneCountInString(w) <= 1 {
			continue
		}
		if _, stop := seedStopwords[w]; stop {
			continue
		}
		if _, seen := freq[w]; !seen {
			order[w] = i
		}
		freq[w]++
	}
	keys := make([]string, 0, len(freq))
	for w := range freq {
		keys = append(keys, w)
	}
	sort.Slice(keys, func(i, j int) bool {
		if freq[keys[i]] != freq[keys[j]] {
			return freq[keys[i]] > freq[keys[j]]
		}
		return order[keys[i]] < order[keys[j]]
	})
	if len(keys) > topk {
		keys = keys[:topk]
	}
	return keys
}

// heuristicSeeds builds the Korean shorts-script skeleton (hook, problem,
// solution, CTA) and the image-prompt seed from the title and transcript.
func heuristicSeeds(title, transcript string) (script, imagePrompt string) {
	title = strings.TrimSpace(title)
	keywords := transcriptKeywords(transcript, seedKeywordTopK)

	hook := "핵심만 집어서 말할게요."
	if title != "" {
		hook = engine.TruncateRunes(title, 40, "") + "? 핵심만 집어서 말할게요."
	}
	problem := "사람들이 놓치는 포인트를 짧게 정리해볼까요?"
	solution := "핵심 키워드를 추리고 메시지를 압축하세요."
	if len(keywords) > 0 {
		solution = "키워드: " + strings.Join(keywords, ", ")
	}
	cta := "도움됐다면 저장하고 다음 아이디어로 이어가요."
	script = fmt.Sprintf("후킹: %s\n문제: %s\n해결: %s\nCTA: %s", hook, problem, solution, cta)

	kw := "간결/선명/집중"
	if len(keywords) > 0 {
		kw = strings.Join(keywords, ", ")
	}
	imagePrompt = fmt.Sprintf("포토리얼, 밝은 톤, 주제: %q, 핵심어: %s", title, kw)
	return script, imagePrompt
}
