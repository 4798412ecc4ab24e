package tables

import (
	"encoding/json"

	"github.com/jcorbin/mdtable/markdown"
)

// cellView is the serialized form of a TableCell: inline content is given
// both as plain text and as markdown.
type cellView struct {
	Text      string    `json:"text" yaml:"text"`
	Markdown  string    `json:"markdown" yaml:"markdown"`
	IsHeader  bool      `json:"isHeader" yaml:"isHeader"`
	Alignment Alignment `json:"alignment" yaml:"alignment"`
}

func (cell TableCell) view() cellView {
	return cellView{
		Text:      markdown.PlainText(cell.Inlines),
		Markdown:  string(markdown.AppendInlines(nil, cell.Inlines, true)),
		IsHeader:  cell.IsHeader,
		Alignment: cell.Alignment,
	}
}

// MarshalJSON implements json.Marshaler.
func (cell TableCell) MarshalJSON() ([]byte, error) {
	return json.Marshal(cell.view())
}

// MarshalYAML implements yaml.Marshaler.
func (cell TableCell) MarshalYAML() (interface{}, error) {
	return cell.view(), nil
}
