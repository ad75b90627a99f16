package content

import (
	"encoding/json"
	"fmt"
)

// envelope is the type-tagged wire form of a block.
type envelope struct {
	Type    string     `json:"type"`
	ID      string     `json:"id,omitempty"`
	Level   int        `json:"level,omitempty"`
	Content string     `json:"content,omitempty"`
	Ordered bool       `json:"ordered,omitempty"`
	Items   []ListItem `json:"items,omitempty"`
	Headers []string   `json:"headers,omitempty"`
	Rows    []TableRow `json:"rows,omitempty"`
	Variant string     `json:"variant,omitempty"`
}

func toEnvelope(b Block) envelope {
	switch v := b.(type) {
	case Heading:
		return envelope{Type: "heading", ID: v.BlockID, Level: v.Level, Content: v.Text}
	case Paragraph:
		return envelope{Type: "paragraph", ID: v.BlockID, Content: v.Text}
	case List:
		return envelope{Type: "list", ID: v.BlockID, Ordered: v.Ordered, Items: v.Items}
	case Table:
		return envelope{Type: "table", ID: v.BlockID, Headers: v.Headers, Rows: v.Rows}
	case Callout:
		return envelope{Type: "callout", ID: v.BlockID, Variant: string(v.Variant), Content: v.Text}
	case Divider:
		return envelope{Type: "divider", ID: v.BlockID}
	}
	return envelope{}
}

func fromEnvelope(e envelope) (Block, error) {
	id := e.ID
	if id == "" {
		id = NewID()
	}
	switch e.Type {
	case "heading":
		level := e.Level
		if level < 1 {
			level = 1
		}
		if level > 6 {
			level = 6
		}
		return Heading{BlockID: id, Level: level, Text: e.Content}, nil
	case "paragraph":
		return Paragraph{BlockID: id, Text: e.Content}, nil
	case "list":
		return List{BlockID: id, Ordered: e.Ordered, Items: e.Items}, nil
	case "table":
		return Table{BlockID: id, Headers: e.Headers, Rows: e.Rows}, nil
	case "callout":
		variant := CalloutVariant(e.Variant)
		if variant == "" {
			variant = CalloutInfo
		}
		return Callout{BlockID: id, Variant: variant, Text: e.Content}, nil
	case "divider":
		return Divider{BlockID: id}, nil
	default:
		return nil, fmt.Errorf("unknown block type: %q", e.Type)
	}
}

// MarshalBlocks encodes a block list as a JSON array of tagged objects.
func MarshalBlocks(blocks []Block) ([]byte, error) {
	envs := make([]envelope, len(blocks))
	for i, b := range blocks {
		envs[i] = toEnvelope(b)
	}
	return json.Marshal(envs)
}

// UnmarshalBlocks decodes a JSON array of tagged objects into blocks.
// Blocks missing an id get a fresh one.
func UnmarshalBlocks(data []byte) ([]Block, error) {
	var envs []envelope
	if err := json.Unmarshal(data, &envs); err != nil {
		return nil, fmt.Errorf("decode blocks: %w", err)
	}
	blocks := make([]Block, 0, len(envs))
	for i, e := range envs {
		b, err := fromEnvelope(e)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}
