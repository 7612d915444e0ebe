// Package classify scores document content against category heuristics to
// select a chunking strategy, chunk size, and metadata extractor set. The
// heuristics live in a declarative rule table so they stay data, not control
// flow.
package classify

import (
	"path"
	"strings"

	"github.com/docbase/docbase"
)

// Scoring weights and thresholds. A category below the floor falls back to
// general; confidence is the score normalized against the ceiling.
const (
	filenameWeight  = 10
	extensionWeight = 5
	contentWeight   = 3
	scoreFloor      = 5
	scoreCeiling    = 20

	// contentSampleLen bounds how much content the keyword scan reads.
	contentSampleLen = 1000

	fallbackChunkSize = 800
)

// rule binds one category to its scoring signals and chunking parameters.
type rule struct {
	category   docbase.Category
	keywords   []string
	extensions []string
	strategy   docbase.Strategy
	chunkSize  int
	extractors []docbase.Extractor
}

var rules = []rule{
	{
		category:   docbase.CategoryTechnical,
		keywords:   []string{"manual", "guide", "documentation", "readme", "install", "setup", "config"},
		extensions: []string{".md", ".txt", ".pdf"},
		strategy:   docbase.StrategySection,
		chunkSize:  1000,
		extractors: []docbase.Extractor{docbase.ExtractorBasic, docbase.ExtractorVersion, docbase.ExtractorSections},
	},
	{
		category:   docbase.CategoryConversation,
		keywords:   []string{"transcript", "chat", "conversation", "meeting", "call", "interview"},
		extensions: []string{".txt", ".json", ".csv"},
		strategy:   docbase.StrategyConversation,
		chunkSize:  800,
		extractors: []docbase.Extractor{docbase.ExtractorBasic, docbase.ExtractorParticipants, docbase.ExtractorDatetime, docbase.ExtractorTopics},
	},
	{
		category:   docbase.CategoryCorrespondence,
		keywords:   []string{"email", "memo", "letter", "message"},
		extensions: []string{".eml", ".msg", ".txt"},
		strategy:   docbase.StrategyMessage,
		chunkSize:  600,
		extractors: []docbase.Extractor{docbase.ExtractorBasic, docbase.ExtractorEmailHeader, docbase.ExtractorDatetime},
	},
	{
		category:   docbase.CategoryReference,
		keywords:   []string{"api", "reference", "specification", "schema"},
		extensions: []string{".json", ".yaml", ".md"},
		strategy:   docbase.StrategyEndpoint,
		chunkSize:  500,
		extractors: []docbase.Extractor{docbase.ExtractorBasic, docbase.ExtractorSections, docbase.ExtractorVersion},
	},
	{
		category:   docbase.CategoryLiterature,
		keywords:   []string{"book", "chapter", "article", "paper", "journal"},
		extensions: []string{".epub", ".pdf", ".txt"},
		strategy:   docbase.StrategyChapter,
		chunkSize:  1200,
		extractors: []docbase.Extractor{docbase.ExtractorBasic, docbase.ExtractorSections, docbase.ExtractorTopics},
	},
	{
		category:   docbase.CategoryData,
		keywords:   []string{"report", "analysis", "statistics", "metrics", "log"},
		extensions: []string{".csv", ".json", ".log", ".txt"},
		strategy:   docbase.StrategyRecord,
		chunkSize:  400,
		extractors: []docbase.Extractor{docbase.ExtractorBasic, docbase.ExtractorDatetime},
	},
	{
		category:   docbase.CategoryMedia,
		keywords:   []string{"subtitle", "caption", "lyrics", "script"},
		extensions: []string{".srt", ".vtt", ".txt"},
		strategy:   docbase.StrategyTimestamp,
		chunkSize:  300,
		extractors: []docbase.Extractor{docbase.ExtractorBasic, docbase.ExtractorDatetime},
	},
}

// Classify scores the origin name and content against every category rule
// and returns the classification of the best match. Scores below the floor
// fall back to the general category with sliding-window chunking. The rule
// order breaks ties: the earlier category wins an equal score.
func Classify(origin, content string) docbase.Classification {
	name := strings.ToLower(path.Base(origin))
	ext := strings.ToLower(path.Ext(name))

	sample := strings.ToLower(content)
	if len(sample) > contentSampleLen {
		sample = sample[:contentSampleLen]
	}

	var best *rule
	bestScore := 0
	for i := range rules {
		r := &rules[i]
		score := 0
		for _, kw := range r.keywords {
			if strings.Contains(name, kw) {
				score += filenameWeight
			}
		}
		for _, e := range r.extensions {
			if ext == e {
				score += extensionWeight
				break
			}
		}
		for _, kw := range r.keywords {
			if strings.Contains(sample, kw) {
				score += contentWeight
			}
		}
		if score > bestScore {
			best, bestScore = r, score
		}
	}

	if best == nil || bestScore < scoreFloor {
		return docbase.Classification{
			Category:   docbase.CategoryGeneral,
			Confidence: 0.3,
			Strategy:   docbase.StrategySlidingWindow,
			ChunkSize:  fallbackChunkSize,
			Extractors: []docbase.Extractor{docbase.ExtractorBasic},
		}
	}

	confidence := float64(bestScore) / scoreCeiling
	if confidence > 1.0 {
		confidence = 1.0
	}
	return docbase.Classification{
		Category:   best.category,
		Confidence: confidence,
		Strategy:   best.strategy,
		ChunkSize:  best.chunkSize,
		Extractors: best.extractors,
	}
}
