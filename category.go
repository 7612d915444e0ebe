package docbase

// Category labels a class of document content. Each category binds to one
// chunking strategy, a default chunk size, and a set of metadata extractors.
// Categories are static configuration, not persisted per document.
type Category string

// Known document categories. CategoryGeneral is the fallback when no
// category scores above the classification floor.
const (
	CategoryTechnical      Category = "technical"
	CategoryConversation   Category = "conversation"
	CategoryCorrespondence Category = "correspondence"
	CategoryReference      Category = "reference"
	CategoryLiterature     Category = "literature"
	CategoryData           Category = "data"
	CategoryMedia          Category = "media"
	CategoryGeneral        Category = "general"
)

// Extractor names a metadata extractor: a pure function from content to a
// partial metadata map. Extractors run independently; their outputs are
// merged, later extractors overwriting only keys they themselves produce.
type Extractor string

// Metadata extractors.
const (
	ExtractorBasic        Extractor = "basic"
	ExtractorVersion      Extractor = "version"
	ExtractorDatetime     Extractor = "datetime"
	ExtractorParticipants Extractor = "participants"
	ExtractorEmailHeader  Extractor = "email_headers"
	ExtractorSections     Extractor = "sections"
	ExtractorTopics       Extractor = "topics"
)

// Classification is the result of scoring content against category
// heuristics: the winning category and the chunking parameters it maps to.
type Classification struct {
	Category   Category
	Confidence float64
	Strategy   Strategy
	ChunkSize  int
	Extractors []Extractor
}
