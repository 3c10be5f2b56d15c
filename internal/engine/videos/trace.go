package videos

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"

	"github.com/minsuk/vidscout/internal/engine"
)

// Source tracing: given a shorts record, extract reupload tokens (@handles,
// long numeric hashtags) and frequent keyphrases, then search short-form
// platforms for pages mentioning them and rank the hits.

var tokenPatterns = []*regexp.Regexp{
	regexp.MustCompile(`@[\w.\-]{3,}`),
	regexp.MustCompile(`#[0-9]{4,}`),
}

var keyphraseRe = regexp.MustCompile(`[A-Za-z가-힣0-9]{2,}`)

var keyphraseStopwords = map[string]struct{}{
	"the": {}, "and": {}, "you": {}, "for": {}, "with": {},
	"this": {}, "that": {}, "are": {}, "from": {},
	"제": {}, "것": {}, "해서": {}, "그리고": {}, "하지만": {},
	"그러나": {}, "근데": {}, "이건": {}, "저건": {}, "에서": {}, "하다": {},
}

// traceSitePool are the domains searched with site: scoping, in order.
var traceSitePool = []string{
	"tiktok.com", "instagram.com", "facebook.com", "x.com", "twitter.com",
	"reddit.com", "9gag.com", "imgur.com", "bilibili.com", "tv.naver.com", "kakao.tv",
}

const (
	tokenQueryMaxChars = 180
	traceDomainCap     = 2  // max candidates kept per registrable domain
	traceMaxCandidates = 12 // final candidate list size
	traceMinTokenLen   = 4
)

// extractTokens collects reupload tokens from txt into the set.
func extractTokens(txt string, into map[string]struct{}) {
	for _, pat := range tokenPatterns {
		for _, t := range pat.FindAllString(txt, -1) {
			if len(t) >= traceMinTokenLen {
				into[t] = struct{}{}
			}
		}
	}
}

// ExtractKeyphrases returns the most frequent alnum/Hangul runs in text,
// stopword-filtered, at least 3 chars, ties broken by first occurrence.
func ExtractKeyphrases(text string, topk int) []string {
	if text == "" {
		return nil
	}
	words := keyphraseRe.FindAllString(strings.ToLower(text), -1)
	freq := make(map[string]int)
	order := make(map[string]int)
	for i, w := range words {
		if _, stop := keyphraseStopwords[w]; stop {
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

	var out []string
	for _, k := range keys {
		if len(k) < 3 {
			continue
		}
		out = append(out, k)
		if len(out) >= topk {
			break
		}
	}
	return out
}

func domainWeight(link string) float64 {
	if link == "" {
		return 0
	}
	u := strings.ToLower(link)
	switch {
	case strings.Contains(u, "tiktok.com"):
		return 3.0
	case strings.Contains(u, "instagram.com"):
		return 2.5
	case strings.Contains(u, "facebook.com"), strings.Contains(u, "fb.watch"):
		return 1.8
	case strings.Contains(u, "x.com"), strings.Contains(u, "twitter.com"):
		return 1.6
	case strings.Contains(u, "naver.com"), strings.Contains(u, "daum.net"):
		return 1.2
	}
	return 1.0
}

// registrableDomain maps a link to its eTLD+1 so mirror subdomains share
// one cap bucket. Falls back to the raw host on parse failure.
func registrableDomain(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Hostname() == "" {
		return link
	}
	host := strings.ToLower(u.Hostname())
	if d, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return d
	}
	return host
}

// TraceSource extracts tokens and keyphrases from a video record and
// searches the site pool for origin candidates. Missing web-search
// credentials or nothing extractable are hard errors; individual site
// query failures degrade.
func TraceSource(ctx context.Context, rec engine.VideoRecord) (engine.SourceTraceOutput, error) {
	out := engine.SourceTraceOutput{VideoID: rec.VideoID}

	if engine.Cfg.CSEAPIKey == "" || engine.Cfg.CSECX == "" {
		return out, engine.ErrNoSearchKeys
	}

	tokens := make(map[string]struct{})
	extractTokens(rec.Title, tokens)
	extractTokens(rec.Description, tokens)
	if engine.Cfg.OCR != nil && rec.ThumbnailURL != "" {
		text := engine.OCRThumbnail(ctx, rec.ThumbnailURL)
		if text == "" {
			out.Degraded = append(out.Degraded, "ocr: no text extracted from thumbnail")
		} else {
			extractTokens(text, tokens)
		}
	}

	titleKeys := ExtractKeyphrases(rec.Title, 4)
	descKeys := ExtractKeyphrases(rec.Description, 3)
	keyStr := strings.Join(append(headOf(titleKeys, 2), headOf(descKeys, 2)...), " ")

	if len(tokens) == 0 && keyStr == "" {
		return out, engine.ErrNoTraceSignals
	}

	sortedTokens := make([]string, 0, len(tokens))
	for t := range tokens {
		sortedTokens = append(sortedTokens, t)
	}
	sort.Strings(sortedTokens)
	out.Tokens = sortedTokens
	out.Keyphrases = append(titleKeys, descKeys...)

	tokenQ := ""
	if len(sortedTokens) > 0 {
		tokenQ = engine.TruncateRunes(strings.Join(sortedTokens, " OR "), tokenQueryMaxChars, "")
	}

	lim := rate.NewLimiter(rate.Every(engine.Cfg.TraceSearchInterval), 1)
	var pool []engine.WebResult
	for _, site := range traceSitePool {
		if err := lim.Wait(ctx); err != nil {
			return out, err
		}
		res, err := engine.SearchWeb(ctx, traceQuery(tokenQ, keyStr, site), 10)
		if err != nil {
			if errors.Is(err, engine.ErrNoSearchKeys) {
				return out, err
			}
			slog.Warn("videos: trace site search failed",
				slog.String("site", site), slog.Any("error", err))
			out.Degraded = append(out.Degraded, fmt.Sprintf("search %s failed: %v", site, err))
			continue
		}
		pool = append(pool, res...)
	}

	if err := lim.Wait(ctx); err != nil {
		return out, err
	}
	res, err := engine.SearchWeb(ctx, traceQuery(tokenQ, keyStr, ""), 10)
	if err != nil {
		out.Degraded = append(out.Degraded, "unscoped search failed: "+err.Error())
	} else {
		pool = append(pool, res...)
	}

	out.Candidates = rankCandidates(tokens, rec.Title, pool, append(titleKeys, descKeys...))
	return out, nil
}

// traceQuery assembles one CSE query from the token OR-group, the
// keyphrase string, and an optional site scope.
func traceQuery(tokenQ, keyStr, site string) string {
	var q string
	switch {
	case tokenQ != "" && keyStr != "":
		q = fmt.Sprintf("(%s) %s", tokenQ, keyStr)
	case tokenQ != "":
		q = fmt.Sprintf("(%s)", tokenQ)
	default:
		q = keyStr
	}
	if site != "" {
		q += " site:" + site
	}
	return q
}

// rankCandidates scores each web result against the extracted signals and
// returns the top candidates, at most two per registrable domain. Results
// matching neither a token nor a keyphrase are dropped.
func rankCandidates(tokens map[string]struct{}, title string, results []engine.WebResult, keys []string) []engine.ExternalCandidate {
	if len(results) == 0 {
		return nil
	}

	loTokens := make([]string, 0, len(tokens))
	for t := range tokens {
		loTokens = append(loTokens, strings.ToLower(t))
	}
	loKeys := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		loKeys[strings.ToLower(k)] = struct{}{}
	}
	tlo := strings.ToLower(title)

	titleProbes := []string{engine.TruncateRunes(tlo, 20, "")}
	words := strings.Fields(tlo)
	if len(words) > 3 {
		words = words[:3]
	}
	titleProbes = append(titleProbes, words...)

	var ranked []engine.ExternalCandidate
	for _, r := range results {
		body := strings.ToLower(r.Title + " " + r.Snippet)

		hitTok := 0
		for _, t := range loTokens {
			if strings.Contains(body, t) {
				hitTok++
			}
		}
		hitKey := 0
		for k := range loKeys {
			if strings.Contains(body, k) {
				hitKey++
			}
		}
		if hitTok == 0 && hitKey == 0 {
			continue
		}

		titleSim := 0.0
		for _, p := range titleProbes {
			if p != "" && strings.Contains(body, p) {
				titleSim = 1.0
				break
			}
		}

		ranked = append(ranked, engine.ExternalCandidate{
			Title:   r.Title,
			Link:    r.Link,
			Snippet: r.Snippet,
			Score:   float64(hitTok)*2.0 + float64(hitKey)*1.2 + domainWeight(r.Link) + titleSim,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	perDomain := make(map[string]int)
	filtered := ranked[:0]
	for _, c := range ranked {
		d := registrableDomain(c.Link)
		if perDomain[d] >= traceDomainCap {
			continue
		}
		perDomain[d]++
		filtered = append(filtered, c)
		if len(filtered) >= traceMaxCandidates {
			break
		}
	}
	return filtered
}

func headOf(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
