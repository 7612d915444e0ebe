// Package chunk splits document content into bounded spans for embedding
// and retrieval. Each strategy respects a different structural boundary
// (sections, conversation turns, messages, API endpoints, chapters, records,
// timestamps); all of them degrade to plain sliding-window chunking when
// their structural markers are absent, so chunking never fails.
package chunk

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/docbase/docbase"
)

// MinWords is the shortest document worth chunking. Anything shorter
// produces zero chunks.
const MinWords = 50

const defaultSize = 800

// span is a chunk before identity assignment.
type span struct {
	text string
	typ  string
	meta map[string]string
}

// Split chunks text with the given strategy. Size and overlap are measured
// in words. Chunk IDs, sequence numbers, and the origin are filled in here;
// strategy-specific boundary metadata rides along on each chunk.
func Split(origin, text string, strategy docbase.Strategy, size, overlap int) []docbase.Chunk {
	if len(strings.Fields(text)) < MinWords {
		return nil
	}
	if size <= 0 {
		size = defaultSize
	}
	if overlap < 0 {
		overlap = 0
	}

	var spans []span
	switch strategy {
	case docbase.StrategySection:
		spans = bySections(text, size, overlap)
	case docbase.StrategyConversation:
		spans = byConversation(text, size, overlap)
	case docbase.StrategyMessage:
		spans = byMessages(text, size, overlap)
	case docbase.StrategyEndpoint:
		spans = byEndpoints(text, size, overlap)
	case docbase.StrategyChapter:
		spans = byChapters(text, size, overlap)
	case docbase.StrategyRecord:
		spans = byRecords(text, size, overlap)
	case docbase.StrategyTimestamp:
		spans = byTimestamps(text, size, overlap)
	default:
		spans = slidingWindow(text, size, overlap)
	}

	chunks := make([]docbase.Chunk, 0, len(spans))
	for _, s := range spans {
		if strings.TrimSpace(s.text) == "" {
			continue
		}
		seq := len(chunks)
		chunks = append(chunks, docbase.Chunk{
			ID:       ID(origin, seq, s.text),
			Origin:   origin,
			Seq:      seq,
			Text:     s.text,
			Type:     s.typ,
			Metadata: s.meta,
		})
	}
	return chunks
}

func slidingWindow(text string, size, overlap int) []span {
	words := strings.Fields(text)
	step := size - overlap
	if step < 1 {
		step = size
	}

	var spans []span
	for i := 0; i < len(words); i += step {
		end := i + size
		if end > len(words) {
			end = len(words)
		}
		spans = append(spans, span{
			text: strings.Join(words[i:end], " "),
			typ:  "sliding_window",
			meta: map[string]string{
				"start_idx": strconv.Itoa(i),
				"end_idx":   strconv.Itoa(end),
			},
		})
		if end == len(words) {
			break
		}
	}
	return spans
}

var sectionRe = regexp.MustCompile(`(?m)(^#{1,6}\s+.+$|^=+$|^-+$|\n\n\n+)`)

// bySections accumulates sections into chunks, flushing at the size bound
// and carrying the last overlap words into the next chunk for context.
func bySections(text string, size, overlap int) []span {
	var spans []span
	var cur []string
	for _, piece := range splitKeep(sectionRe, text) {
		words := strings.Fields(piece)
		if len(cur)+len(words) > size && len(cur) > 0 {
			spans = append(spans, span{
				text: strings.Join(cur, " "),
				typ:  "section",
				meta: map[string]string{"boundary": "section_end"},
			})
			if overlap > 0 && len(cur) > overlap {
				cur = append([]string(nil), cur[len(cur)-overlap:]...)
			} else {
				cur = nil
			}
		}
		cur = append(cur, words...)
	}
	if len(cur) > 0 {
		spans = append(spans, span{
			text: strings.Join(cur, " "),
			typ:  "section",
			meta: map[string]string{"boundary": "document_end"},
		})
	}
	if len(spans) == 0 {
		return slidingWindow(text, size, overlap)
	}
	return spans
}

var turnRe = regexp.MustCompile(`(?m)^([A-Z][A-Za-z ]+):`)

// byConversation keeps speaker turns intact and records which speakers
// appear in each chunk. When overlap is requested, the previous chunk's
// final turn is carried whole into the next chunk so cross-chunk context
// survives the boundary.
func byConversation(text string, size, overlap int) []span {
	locs := turnRe.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return slidingWindow(text, size, overlap)
	}

	var spans []span
	var cur, speakers []string
	seen := make(map[string]bool)
	count := 0
	fresh := 0 // turns in cur that were not carried from the previous chunk

	emit := func() {
		spans = append(spans, span{
			text: strings.Join(cur, "\n"),
			typ:  "conversation",
			meta: map[string]string{"speakers": strings.Join(speakers, ", ")},
		})
	}
	flush := func() {
		emit()
		carry := ""
		if overlap > 0 {
			carry = cur[len(cur)-1]
		}
		cur, speakers, count, fresh = nil, nil, 0, 0
		seen = make(map[string]bool)
		if carry != "" {
			carrySpeaker := carry[:strings.IndexByte(carry, ':')]
			cur = []string{carry}
			speakers = []string{carrySpeaker}
			seen[carrySpeaker] = true
			count = len(strings.Fields(carry))
		}
	}

	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		speaker := text[loc[2]:loc[3]]
		body := strings.TrimSpace(text[loc[1]:end])
		n := len(strings.Fields(body))

		if count+n > size && fresh > 0 {
			flush()
		}
		cur = append(cur, speaker+": "+body)
		if !seen[speaker] {
			seen[speaker] = true
			speakers = append(speakers, speaker)
		}
		count += n
		fresh++
	}
	if fresh > 0 {
		emit()
	}
	return spans
}

var messageRe = regexp.MustCompile(`(From:|Subject:|Date:|---+|===+|\n\n\n+)`)

func byMessages(text string, size, overlap int) []span {
	var spans []span
	var cur []string
	count := 0
	for _, piece := range splitKeep(messageRe, text) {
		n := len(strings.Fields(piece))
		if count+n > size && len(cur) > 0 {
			spans = append(spans, span{
				text: strings.Join(cur, " "),
				typ:  "message",
				meta: map[string]string{"boundary": "message_end"},
			})
			cur, count = nil, 0
		}
		if strings.TrimSpace(piece) != "" {
			cur = append(cur, strings.TrimSpace(piece))
			count += n
		}
	}
	if len(cur) > 0 {
		spans = append(spans, span{
			text: strings.Join(cur, " "),
			typ:  "message",
			meta: map[string]string{"boundary": "thread_end"},
		})
	}
	if len(spans) == 0 {
		return slidingWindow(text, size, overlap)
	}
	return spans
}

var endpointRes = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^(?:GET|POST|PUT|DELETE|PATCH)\s+/\S+`),
	regexp.MustCompile(`(?m)^### .+ Endpoint`),
	regexp.MustCompile(`(?m)^## /\S+`),
}

// byEndpoints splits API documentation at endpoint headings, one chunk per
// endpoint regardless of size, so an endpoint's description never straddles
// two chunks.
func byEndpoints(text string, size, overlap int) []span {
	for _, re := range endpointRes {
		if !re.MatchString(text) {
			continue
		}

		var spans []span
		var cur []string
		endpoint := ""
		flush := func() {
			meta := map[string]string{}
			if endpoint != "" {
				meta["endpoint"] = endpoint
			}
			spans = append(spans, span{text: strings.Join(cur, "\n"), typ: "api_endpoint", meta: meta})
		}

		for _, piece := range splitKeep(re, text) {
			if re.MatchString(piece) && strings.TrimSpace(piece) == strings.TrimSpace(re.FindString(piece)) {
				if len(cur) > 0 {
					flush()
				}
				endpoint = strings.TrimSpace(piece)
				cur = []string{piece}
				continue
			}
			cur = append(cur, piece)
		}
		if len(cur) > 0 {
			flush()
		}
		return spans
	}
	return bySections(text, size, overlap)
}

var chapterRes = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^Chapter\s+\d+`),
	regexp.MustCompile(`(?m)^CHAPTER\s+[IVX]+`),
	regexp.MustCompile(`(?m)^\d+\.\s+[A-Z]`),
}

// byChapters splits at chapter headings; oversized chapters are further
// split with the sliding window, keeping the chapter title on every piece.
func byChapters(text string, size, overlap int) []span {
	for _, re := range chapterRes {
		starts := re.FindAllStringIndex(text, -1)
		if len(starts) == 0 {
			continue
		}

		var spans []span
		emit := func(title, body string) {
			meta := map[string]string{}
			if title != "" {
				meta["chapter"] = title
			}
			if len(strings.Fields(body)) > size {
				for _, sub := range slidingWindow(body, size, overlap) {
					m := map[string]string{}
					for k, v := range meta {
						m[k] = v
					}
					spans = append(spans, span{text: sub.text, typ: "chapter_section", meta: m})
				}
				return
			}
			spans = append(spans, span{text: body, typ: "chapter", meta: meta})
		}

		if preamble := text[:starts[0][0]]; strings.TrimSpace(preamble) != "" {
			emit("", preamble)
		}
		for i, loc := range starts {
			end := len(text)
			if i+1 < len(starts) {
				end = starts[i+1][0]
			}
			emit(text[loc[0]:loc[1]], text[loc[0]:end])
		}
		return spans
	}
	return bySections(text, size, overlap)
}

// byRecords groups structured lines (CSV-like or tab-separated) into chunks,
// repeating the header line atop each chunk so records stay interpretable.
func byRecords(text string, size, overlap int) []span {
	lines := strings.Split(text, "\n")
	if len(lines) < 2 || !looksTabular(lines) {
		return slidingWindow(text, size, overlap)
	}

	header := lines[0]
	var spans []span
	var cur []string
	flush := func() {
		spans = append(spans, span{
			text: header + "\n" + strings.Join(cur, "\n"),
			typ:  "records",
			meta: map[string]string{"record_count": strconv.Itoa(len(cur))},
		})
		cur = nil
	}

	for _, line := range lines[1:] {
		cur = append(cur, line)
		if len(strings.Fields(strings.Join(cur, " "))) > size {
			flush()
		}
	}
	if len(cur) > 0 {
		flush()
	}
	return spans
}

func looksTabular(lines []string) bool {
	n := len(lines)
	if n > 5 {
		n = 5
	}
	for _, line := range lines[:n] {
		if !strings.Contains(line, ",") && !strings.Contains(line, "\t") {
			return false
		}
	}
	return true
}

var timestampRes = []*regexp.Regexp{
	regexp.MustCompile(`\d{2}:\d{2}:\d{2}`),
	regexp.MustCompile(`\[\d{2}:\d{2}\]`),
	regexp.MustCompile(`\d{2}:\d{2}`),
}

// byTimestamps chunks subtitle- or transcript-style content at timestamp
// markers, keeping each span's leading timestamp with its text.
func byTimestamps(text string, size, overlap int) []span {
	for _, re := range timestampRes {
		if !re.MatchString(text) {
			continue
		}

		var spans []span
		var cur []string
		current := ""
		count := 0
		flush := func() {
			spans = append(spans, span{
				text: strings.Join(cur, " "),
				typ:  "timed_content",
				meta: map[string]string{"has_timestamps": "true"},
			})
			cur, count = nil, 0
		}

		for _, piece := range splitKeep(re, text) {
			if re.MatchString(piece) && re.FindString(piece) == piece {
				current = piece
				continue
			}
			if current != "" {
				cur = append(cur, current+" "+piece)
				current = ""
			} else {
				cur = append(cur, piece)
			}
			count += len(strings.Fields(piece))
			if count > size {
				flush()
			}
		}
		if len(cur) > 0 {
			flush()
		}
		return spans
	}
	return slidingWindow(text, size, overlap)
}

// splitKeep splits s at every match of re, keeping the matches themselves
// as standalone pieces in stream order.
func splitKeep(re *regexp.Regexp, s string) []string {
	var out []string
	last := 0
	for _, loc := range re.FindAllStringIndex(s, -1) {
		if loc[0] > last {
			out = append(out, s[last:loc[0]])
		}
		out = append(out, s[loc[0]:loc[1]])
		last = loc[1]
	}
	if last < len(s) {
		out = append(out, s[last:])
	}
	return out
}
