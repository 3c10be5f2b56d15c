package engine

import (
	"sort"
	"strings"
)

// Demographic brackets. "all" disables demographic filtering.
const (
	AgeAll      = "all"
	youngestTag = "10s"
)

// AgeTags lists the supported brackets, youngest first.
var AgeTags = []string{"10s", "20s", "30s", "40s", "50s", "60s"}

// ageKeywords is the per-bracket allowlist. The tables are product data:
// keywords a bracket's viewers actually search for, Korean and English mixed.
var ageKeywords = map[string][]string{
	"10s": {"minecraft", "roblox", "포켓몬", "애니", "게임", "마인크래프트", "틴", "학생", "공부법", "고등학교", "중학교", "초등학교", "로블록스"},
	"20s": {"대학생", "브이로그", "여행", "취업", "자취", "카페", "패션", "아이돌", "kpop", "연예"},
	"30s": {"직장인", "육아", "재테크", "부동산", "인테리어", "홈카페", "저축", "요리", "헬스"},
	"40s": {"건강", "퇴직", "가족", "골프", "등산", "주택", "가전", "보험", "클래식"},
	"50s": {"건강검진", "관절", "은퇴", "취미", "가드닝", "캠핑", "요리", "여행"},
	"60s": {"시니어", "건강", "복지", "정원", "텃밭", "낚시", "국악", "교양", "역사", "트로트", "연금", "노후"},
}

// genericGameNeg is applied on top of every bracket's blacklist except the
// youngest: gaming content is expected for teens, noise for everyone else.
var genericGameNeg = []string{
	"game", "게임", "겜", "마인크래프트", "minecraft", "roblox", "로블록스", "포켓몬",
	"fortnite", "genshin", "원신", "lol", "리그 오브 레전드", "valorant", "발로란트",
	"배그", "pubg", "steam", "스팀", "xbox", "ps5", "플스", "닌텐도", "nintendo", "switch", "스위치",
}

// ageNegKeywords is derived once: a bracket's blacklist is the union of all
// other brackets' allowlists, lower-cased and sorted.
var ageNegKeywords = buildAgeNegKeywords()

func buildAgeNegKeywords() map[string][]string {
	neg := make(map[string][]string, len(AgeTags))
	for _, tag := range AgeTags {
		set := make(map[string]struct{})
		for _, other := range AgeTags {
			if other == tag {
				continue
			}
			for _, kw := range ageKeywords[other] {
				set[strings.ToLower(kw)] = struct{}{}
			}
		}
		list := make([]string, 0, len(set))
		for kw := range set {
			list = append(list, kw)
		}
		sort.Strings(list)
		neg[tag] = list
	}
	return neg
}

// ValidAgeTag reports whether tag names a known bracket.
func ValidAgeTag(tag string) bool {
	_, ok := ageKeywords[tag]
	return ok
}

// AgeRelevanceScore counts how many of the bracket's keywords appear as
// case-insensitive substrings of the title. 0 for unknown tags or empty
// titles.
func AgeRelevanceScore(title, tag string) int {
	keywords, ok := ageKeywords[tag]
	if title == "" || !ok {
		return 0
	}
	t := strings.ToLower(title)
	score := 0
	for _, kw := range keywords {
		if strings.Contains(t, strings.ToLower(kw)) {
			score++
		}
	}
	return score
}

// AgeNegativeHit reports whether the title hits the bracket's blacklist:
// any other bracket's keyword, or (for every bracket except the youngest)
// any generic gaming term. Applied as an exclusion gate before the
// relevance score.
func AgeNegativeHit(title, tag string) bool {
	neg, ok := ageNegKeywords[tag]
	if title == "" || !ok {
		return false
	}
	t := strings.ToLower(title)
	for _, kw := range neg {
		if strings.Contains(t, kw) {
			return true
		}
	}
	if tag != youngestTag {
		for _, kw := range genericGameNeg {
			if strings.Contains(t, strings.ToLower(kw)) {
				return true
			}
		}
	}
	return false
}

// seedQueryBan holds terms too generic to seed a useful search with.
var seedQueryBan = map[string]struct{}{
	"건강": {}, "여행": {}, "요리": {}, "가족": {}, "취미": {},
}

// SeedQueries derives up to topk seed search keywords for a bracket from its
// allowlist, skipping banned generic terms and padding from the same list.
// Falls back to two generic terms when the bracket has no keywords.
func SeedQueries(tag string, topk int) []string {
	keys := ageKeywords[tag]
	var qs []string
	for _, k := range keys {
		if _, banned := seedQueryBan[k]; banned {
			continue
		}
		qs = append(qs, k)
		if len(qs) >= topk {
			break
		}
	}
	for len(qs) < topk && len(keys) > len(qs) {
		qs = append(qs, keys[len(qs)])
	}
	if len(qs) == 0 {
		return []string{"교양", "뉴스"}
	}
	return qs
}
