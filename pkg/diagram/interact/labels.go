package interact

import (
	"strings"

	"github.com/google/uuid"

	"github.com/reeflow/reeflow/pkg/errors"
	"github.com/reeflow/reeflow/pkg/flow"
)

// Label is a free-text annotation pinned to a canvas position.
type Label struct {
	ID   string     `json:"id" bson:"id"`
	Text string     `json:"text" bson:"text"`
	At   flow.Point `json:"at" bson:"at"`
}

// Labels is an ordered label collection. Operations return a new slice;
// the receiver is never mutated.
type Labels []Label

// Add appends a label with a fresh UUID at the given position.
// Leading and trailing whitespace is trimmed; an empty text is rejected.
func (ls Labels) Add(text string, at flow.Point) (Labels, Label, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return ls, Label{}, errors.New(errors.ErrCodeInvalidInput, "label text cannot be empty")
	}
	l := Label{ID: uuid.NewString(), Text: text, At: at}
	out := make(Labels, len(ls), len(ls)+1)
	copy(out, ls)
	return append(out, l), l, nil
}

// Edit replaces the text of the label with the given ID.
func (ls Labels) Edit(id, text string) (Labels, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return ls, errors.New(errors.ErrCodeInvalidInput, "label text cannot be empty")
	}
	out := make(Labels, len(ls))
	copy(out, ls)
	for i := range out {
		if out[i].ID == id {
			out[i].Text = text
			return out, nil
		}
	}
	return ls, errors.New(errors.ErrCodeLabelNotFound, "label %q", id)
}

// Move repositions the label with the given ID.
func (ls Labels) Move(id string, at flow.Point) (Labels, error) {
	out := make(Labels, len(ls))
	copy(out, ls)
	for i := range out {
		if out[i].ID == id {
			out[i].At = at
			return out, nil
		}
	}
	return ls, errors.New(errors.ErrCodeLabelNotFound, "label %q", id)
}

// Delete removes the label with the given ID.
func (ls Labels) Delete(id string) (Labels, error) {
	for i := range ls {
		if ls[i].ID == id {
			out := make(Labels, 0, len(ls)-1)
			out = append(out, ls[:i]...)
			return append(out, ls[i+1:]...), nil
		}
	}
	return ls, errors.New(errors.ErrCodeLabelNotFound, "label %q", id)
}
