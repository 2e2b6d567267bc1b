package internal

// Relation links one item to another by identifier. Title is empty until
// the enrichment pass resolves it.
type Relation struct {
	Type     string `json:"type"`
	ObjectID string `json:"objectId"`
	Title    string `json:"title,omitempty"`
}

type Geography struct {
	Country *string `json:"country,omitempty"`
	City    *string `json:"city,omitempty"`
}

type Series struct {
	Name     *string `json:"name,omitempty"`
	Position *string `json:"position,omitempty"`
}

type Storage struct {
	Building *string `json:"building,omitempty"`
	Shelf    *string `json:"shelf,omitempty"`
}

type Edition struct {
	Number *string `json:"number,omitempty"`
	Size   *string `json:"size,omitempty"`
}

// Item is the canonical record produced by the normalizer. Optional fields
// are nil when the export carried no usable data; they are never empty
// strings, empty maps, or empty slices. Related is the one exception: it is
// always non-nil so consumers can iterate without a nil check.
type Item struct {
	ID         string `json:"id"`
	ObjectType string `json:"objectType"`
	Department string `json:"department"`
	Title      string `json:"title"`

	Accession         *string `json:"accessionNumber,omitempty"`
	Creator           *string `json:"creator,omitempty"`
	Date              *string `json:"date,omitempty"`
	Materials         *string `json:"materials,omitempty"`
	Dimensions        *string `json:"dimensions,omitempty"`
	Description       *string `json:"description,omitempty"`
	Condition         *string `json:"condition,omitempty"`
	CreditLine        *string `json:"creditLine,omitempty"`
	Transcription     *string `json:"transcription,omitempty"`
	Status            *string `json:"status,omitempty"`
	Rights            *string `json:"rights,omitempty"`
	InventoryLocation *string `json:"inventoryLocation,omitempty"`

	Flags       map[string]bool   `json:"flags,omitempty"`
	Related     []Relation        `json:"related"`
	ExternalIDs map[string]string `json:"externalIds,omitempty"`

	Geography *Geography `json:"geography,omitempty"`
	Series    *Series    `json:"series,omitempty"`
	Storage   *Storage   `json:"storage,omitempty"`
	Edition   *Edition   `json:"edition,omitempty"`

	Notes      []any `json:"notes,omitempty"`
	Keywords   []any `json:"keywords,omitempty"`
	Variants   []any `json:"variants,omitempty"`
	Tags       []any `json:"tags,omitempty"`
	Provenance []any `json:"provenance,omitempty"`
}

// Envelope is the export file wrapper: a source label, an export timestamp
// and the raw records themselves.
type Envelope struct {
	Source     string      `json:"source"`
	ExportedAt string      `json:"exported_at"`
	Objects    []RawRecord `json:"objects"`
}
