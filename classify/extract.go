package classify

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/docbase/docbase"
)

// Extractor scan bounds. Header-like facts live near the top of a document;
// bounding the scans keeps extraction linear in practice.
const (
	versionScanLen = 2000
	headerScanLen  = 2000
	dateScanLen    = 5000
	speakerScanLen = 5000

	maxDates        = 3
	maxParticipants = 10
	maxSections     = 20
	maxTopics       = 10
)

// Extract runs the named extractors over the content and merges their
// output. Extractors are pure and independent; a later extractor overwrites
// only keys it produces itself. Unknown names are ignored. All values are
// primitive strings.
func Extract(content string, extractors []docbase.Extractor) map[string]string {
	merged := make(map[string]string)
	for _, name := range extractors {
		fn, ok := extractorFuncs[name]
		if !ok {
			continue
		}
		for k, v := range fn(content) {
			merged[k] = v
		}
	}
	return merged
}

var extractorFuncs = map[docbase.Extractor]func(string) map[string]string{
	docbase.ExtractorBasic:        extractBasic,
	docbase.ExtractorVersion:      extractVersion,
	docbase.ExtractorDatetime:     extractDatetime,
	docbase.ExtractorParticipants: extractParticipants,
	docbase.ExtractorEmailHeader:  extractEmailHeaders,
	docbase.ExtractorSections:     extractSections,
	docbase.ExtractorTopics:       extractTopics,
}

var (
	codeRe = regexp.MustCompile("```|def |class |function |import ")
	urlRe  = regexp.MustCompile(`https?://\S+`)
)

func extractBasic(content string) map[string]string {
	return map[string]string{
		"line_count": strconv.Itoa(len(strings.Split(content, "\n"))),
		"word_count": strconv.Itoa(len(strings.Fields(content))),
		"has_code":   strconv.FormatBool(codeRe.MatchString(content)),
		"has_urls":   strconv.FormatBool(urlRe.MatchString(content)),
	}
}

var versionRes = []*regexp.Regexp{
	regexp.MustCompile(`[Vv]ersion\s*[:=]?\s*([\d.]+)`),
	regexp.MustCompile(`v([\d.]+)`),
	regexp.MustCompile(`release\s*[:=]?\s*([\d.]+)`),
}

func extractVersion(content string) map[string]string {
	sample := head(content, versionScanLen)
	for _, re := range versionRes {
		if m := re.FindStringSubmatch(sample); m != nil {
			return map[string]string{"version": m[1]}
		}
	}
	return nil
}

var dateRes = []*regexp.Regexp{
	regexp.MustCompile(`\d{4}-\d{2}-\d{2}`),
	regexp.MustCompile(`\d{2}/\d{2}/\d{4}`),
	regexp.MustCompile(`(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+\d{1,2},?\s+\d{4}`),
}

func extractDatetime(content string) map[string]string {
	sample := head(content, dateScanLen)
	var dates []string
	for _, re := range dateRes {
		for _, m := range re.FindAllString(sample, maxDates) {
			dates = append(dates, m)
		}
	}
	if len(dates) == 0 {
		return nil
	}
	if len(dates) > maxDates {
		dates = dates[:maxDates]
	}
	return map[string]string{"dates_mentioned": strings.Join(dates, ", ")}
}

var participantRe = regexp.MustCompile(`(?m)^([A-Z][A-Za-z ]+):\s`)

func extractParticipants(content string) map[string]string {
	sample := head(content, speakerScanLen)
	seen := make(map[string]bool)
	var participants []string
	for _, m := range participantRe.FindAllStringSubmatch(sample, -1) {
		name := m[1]
		if seen[name] {
			continue
		}
		seen[name] = true
		participants = append(participants, name)
		if len(participants) == maxParticipants {
			break
		}
	}
	if len(participants) == 0 {
		return nil
	}
	return map[string]string{"participants": strings.Join(participants, ", ")}
}

var emailHeaderRes = map[string]*regexp.Regexp{
	"sender":    regexp.MustCompile(`From:\s*(.+)`),
	"recipient": regexp.MustCompile(`To:\s*(.+)`),
	"subject":   regexp.MustCompile(`Subject:\s*(.+)`),
	"date":      regexp.MustCompile(`Date:\s*(.+)`),
}

func extractEmailHeaders(content string) map[string]string {
	sample := head(content, headerScanLen)
	headers := make(map[string]string)
	for key, re := range emailHeaderRes {
		if m := re.FindStringSubmatch(sample); m != nil {
			headers[key] = strings.TrimSpace(m[1])
		}
	}
	if len(headers) == 0 {
		return nil
	}
	return headers
}

var sectionRes = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^#{1,3}\s+(.+)$`),
	regexp.MustCompile(`(?m)^(\d+\.?\s+[A-Z].+)$`),
	regexp.MustCompile(`(?m)^(Chapter\s+\d+.*)$`),
}

func extractSections(content string) map[string]string {
	var sections []string
	for _, re := range sectionRes {
		for _, m := range re.FindAllStringSubmatch(content, maxSections) {
			sections = append(sections, m[1])
		}
	}
	if len(sections) == 0 {
		return nil
	}
	if len(sections) > maxSections {
		sections = sections[:maxSections]
	}
	return map[string]string{"sections": strings.Join(sections, " | ")}
}

var (
	wordRe    = regexp.MustCompile(`\b[a-z]+\b`)
	stopWords = map[string]bool{
		"the": true, "is": true, "at": true, "which": true, "on": true,
		"and": true, "a": true, "an": true, "to": true, "for": true,
		"of": true, "in": true, "with": true, "as": true, "by": true,
		"that": true, "this": true, "it": true, "from": true, "or": true,
		"but": true,
	}
)

// extractTopics ranks words by frequency, ties broken alphabetically so the
// output is deterministic.
func extractTopics(content string) map[string]string {
	freq := make(map[string]int)
	for _, word := range wordRe.FindAllString(strings.ToLower(content), -1) {
		if len(word) > 3 && !stopWords[word] {
			freq[word]++
		}
	}
	if len(freq) == 0 {
		return nil
	}

	words := make([]string, 0, len(freq))
	for word := range freq {
		words = append(words, word)
	}
	sort.Slice(words, func(i, j int) bool {
		if freq[words[i]] != freq[words[j]] {
			return freq[words[i]] > freq[words[j]]
		}
		return words[i] < words[j]
	})
	if len(words) > maxTopics {
		words = words[:maxTopics]
	}
	return map[string]string{"key_terms": strings.Join(words, ", ")}
}

func head(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
