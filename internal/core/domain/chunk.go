package domain

// Chunk is the unit of retrievable text. Chunks are created during ingestion
// and never mutated; they disappear only when their source document is removed.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// SourceID identifies the originating document (e.g. the filename).
	SourceID string

	// Index is the ordinal position within the source, starting at 0.
	// Indexes are contiguous and unique per source.
	Index int

	// Content is the chunk text. Never empty.
	Content string

	// Embedding is the vector representation of Content.
	// Its length equals the embedder's output dimensionality.
	Embedding []float32

	// Metadata contains arbitrary key-value pairs (e.g. page number).
	Metadata map[string]any
}

// Passage is a single ranked retrieval result.
type Passage struct {
	// Content is the retrieved chunk text.
	Content string

	// SourceID identifies the document the passage came from.
	SourceID string

	// ChunkIndex is the chunk's ordinal within its source.
	ChunkIndex int

	// Similarity is the cosine similarity to the query (higher is better).
	Similarity float64
}

// Turn is one message in a conversation. Turns are owned by the caller;
// the core never persists them.
type Turn struct {
	// Role is "user" or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// Conversation roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Answer is the result of one orchestrated chat request.
type Answer struct {
	// Text is the generated response.
	Text string

	// Provider is the name of the backend that produced the response.
	Provider string

	// Model is the model identifier used.
	Model string

	// Sources lists the distinct source IDs whose chunks contributed
	// context, in rank order. Empty when RAG was disabled or nothing
	// was retrieved.
	Sources []string
}

// ProviderStatus describes the result of probing one backend.
type ProviderStatus struct {
	// Name is the provider name.
	Name string

	// Available reports whether the probe succeeded.
	Available bool

	// Model is the configured model identifier.
	Model string

	// Err holds the probe failure, nil when Available.
	Err error
}

// Stats summarises the state of the document collection.
type Stats struct {
	// TotalChunks is the number of entries in the vector index.
	TotalChunks int

	// TotalDocuments is the number of distinct sources.
	TotalDocuments int

	// Documents lists the source IDs.
	Documents []string
}
