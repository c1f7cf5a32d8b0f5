package record

// Thumbnail is one pre-scaled variant of an attachment.
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Attachment is a file reference as returned in an attachment field.
type Attachment struct {
	ID         string               `json:"id,omitempty"`
	URL        string               `json:"url"`
	Filename   string               `json:"filename,omitempty"`
	Type       string               `json:"type,omitempty"`
	Thumbnails map[string]Thumbnail `json:"thumbnails,omitempty"`
}

// ResolveURL picks the best image url: large thumbnail, then full, then the
// raw attachment url.
func (a Attachment) ResolveURL() string {
	for _, size := range []string{"large", "full"} {
		if th, ok := a.Thumbnails[size]; ok && th.URL != "" {
			return th.URL
		}
	}
	return a.URL
}

// Attachments decodes zero, one or many attachment descriptors from a field
// value. Entries that are not descriptors are skipped.
func Attachments(v any) []Attachment {
	switch t := v.(type) {
	case map[string]any:
		if a, ok := attachmentFrom(t); ok {
			return []Attachment{a}
		}
	case []any:
		out := make([]Attachment, 0, len(t))
		for _, e := range t {
			m, ok := e.(map[string]any)
			if !ok {
				continue
			}
			if a, ok := attachmentFrom(m); ok {
				out = append(out, a)
			}
		}
		return out
	case []Attachment:
		return t
	case Attachment:
		return []Attachment{t}
	}
	return nil
}

// WithURL keeps only attachments that carry a url.
func WithURL(in []Attachment) []Attachment {
	out := make([]Attachment, 0, len(in))
	for _, a := range in {
		if a.URL != "" {
			out = append(out, a)
		}
	}
	return out
}

func attachmentFrom(m map[string]any) (Attachment, bool) {
	a := Attachment{
		ID:       str(m["id"]),
		URL:      str(m["url"]),
		Filename: str(m["filename"]),
		Type:     str(m["type"]),
	}
	if thumbs, ok := m["thumbnails"].(map[string]any); ok {
		a.Thumbnails = make(map[string]Thumbnail, len(thumbs))
		for size, raw := range thumbs {
			tm, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			th := Thumbnail{URL: str(tm["url"])}
			if w, ok := Number(tm["width"]); ok {
				th.Width = int(w)
			}
			if h, ok := Number(tm["height"]); ok {
				th.Height = int(h)
			}
			a.Thumbnails[size] = th
		}
	}
	if a.URL == "" && a.ID == "" && len(a.Thumbnails) == 0 {
		return Attachment{}, false
	}
	return a, true
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
