package notion

// Request and response shapes for the pages endpoint. Only the fields this
// service writes are modelled.

type CreatePageRequest struct {
	Parent     Parent              `json:"parent"`
	Properties map[string]Property `json:"properties"`
	Children   []Block             `json:"children,omitempty"`
}

type Parent struct {
	DatabaseID string `json:"database_id"`
}

// Property is a page property value. Exactly one field should be set.
type Property struct {
	Title  []RichText    `json:"title,omitempty"`
	Date   *DateValue    `json:"date,omitempty"`
	Select *SelectOption `json:"select,omitempty"`
	Number *int          `json:"number,omitempty"`
}

type RichText struct {
	Type string      `json:"type,omitempty"`
	Text TextContent `json:"text"`
}

type TextContent struct {
	Content string `json:"content"`
}

type DateValue struct {
	Start string `json:"start"`
}

type SelectOption struct {
	Name string `json:"name"`
}

type Block struct {
	Object    string     `json:"object"`
	Type      string     `json:"type"`
	Paragraph *Paragraph `json:"paragraph,omitempty"`
}

type Paragraph struct {
	RichText []RichText `json:"rich_text"`
}

// Page is the subset of the created page returned to callers.
type Page struct {
	Object string `json:"object"`
	ID     string `json:"id"`
	URL    string `json:"url"`
}

func TitleProperty(content string) Property {
	return Property{Title: []RichText{{Text: TextContent{Content: content}}}}
}

func DateProperty(start string) Property {
	return Property{Date: &DateValue{Start: start}}
}

func SelectProperty(name string) Property {
	return Property{Select: &SelectOption{Name: name}}
}

func NumberProperty(n int) Property {
	return Property{Number: &n}
}

// ParagraphBlock returns a block holding a single plain-text run.
func ParagraphBlock(content string) Block {
	return Block{
		Object: "block",
		Type:   "paragraph",
		Paragraph: &Paragraph{
			RichText: []RichText{{Type: "text", Text: TextContent{Content: content}}},
		},
	}
}
