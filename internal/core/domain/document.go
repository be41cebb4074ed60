package domain

// MIMETypePlainText is the mime type used for all generated document text.
const MIMETypePlainText = "text/plain"

// Content is a block of document text with its mime type.
type Content struct {
	MIMEType string
	Text     string
}

// PlainText builds a text/plain content block.
func PlainText(text string) Content {
	return Content{MIMEType: MIMETypePlainText, Text: text}
}

// Person identifies a document author.
type Person struct {
	Name  string
	Email string
}

// Permissions controls who can see an indexed document.
type Permissions struct {
	// AllowAnonymousAccess makes the document visible to everyone in
	// the search index. All synced documents default to this.
	AllowAnonymousAccess bool
}

// Document is the normalised mapping target submitted to the search
// index. IDs are unique within one sync run's output; later duplicates
// are dropped by the coordinator, never overwritten.
type Document struct {
	// ID is the source record id, unique per run.
	ID string

	// Datasource names the index bucket this document belongs to.
	Datasource string

	// ObjectType tags the document's entity kind (e.g. "Incident").
	ObjectType string

	// Title is the human-readable title.
	Title string

	// Status is the source record's lifecycle status, when present.
	Status string

	// Tags are colon-delimited key:value labels (e.g. "status:open").
	// Order carries no meaning.
	Tags []string

	// Body is the full searchable text.
	Body Content

	// Summary is a short description, when the source provides one.
	Summary *Content

	// Author is the originating user, when resolvable.
	Author *Person

	// ViewURL links back to the record. Always populated: when the
	// source gives no URL a deterministic default is built from the
	// object type and id.
	ViewURL string

	// CreatedAt and UpdatedAt are epoch seconds. Zero means the source
	// value was absent or unparsable.
	CreatedAt int64
	UpdatedAt int64

	// Permissions for the indexed document.
	Permissions Permissions
}

// AddTag appends a key:value tag.
func (d *Document) AddTag(key, value string) {
	d.Tags = append(d.Tags, key+":"+value)
}
