package services

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// GalleryInput is the body of a gallery create or replace request.
type GalleryInput struct {
	Title       *string           `json:"title"`
	Attachments []AttachmentInput `json:"attachment_json"`
}

// AttachmentInput is one entry of attachment_json. Nil fields were absent
// (or null) in the request, which is not the same as an empty caption.
type AttachmentInput struct {
	Caption *string
	ImageID *string
}

// NewAttachment builds a fully populated AttachmentInput.
func NewAttachment(caption, imageID string) AttachmentInput {
	return AttachmentInput{Caption: &caption, ImageID: &imageID}
}

func (a *AttachmentInput) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("attachment must be an object: %w", err)
	}

	*a = AttachmentInput{}
	if v, ok := raw["caption"]; ok && !isJSONNull(v) {
		var caption string
		if err := json.Unmarshal(v, &caption); err != nil {
			return fmt.Errorf("caption must be a string")
		}
		a.Caption = &caption
	}
	if v, ok := raw["image_id"]; ok && !isJSONNull(v) {
		ref, err := imageRef(v)
		if err != nil {
			return err
		}
		a.ImageID = &ref
	}
	return nil
}

func (a AttachmentInput) MarshalJSON() ([]byte, error) {
	out := map[string]string{}
	if a.Caption != nil {
		out["caption"] = *a.Caption
	}
	if a.ImageID != nil {
		out["image_id"] = *a.ImageID
	}
	return json.Marshal(out)
}

// imageRef accepts image ids sent either as strings or as bare numbers.
// Numbers never resolve to an image but must reach the resolver so they
// are reported as invalid references rather than malformed bodies.
func imageRef(v json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s, nil
	}
	dec := json.NewDecoder(bytes.NewReader(v))
	dec.UseNumber()
	var n json.Number
	if err := dec.Decode(&n); err != nil {
		return "", fmt.Errorf("image_id must be a string or number")
	}
	return n.String(), nil
}

func isJSONNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}
