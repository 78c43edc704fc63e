package export

import "strings"

// NormalizePath converts a platform-specific local_path into a web-root
// relative path. Backslashes become forward slashes and a leading drive
// letter prefix such as "C:" is dropped. ok is false when nothing usable
// remains, in which case the attachment is not rendered.
func NormalizePath(localPath string) (p string, ok bool) {
	if localPath == "" {
		return "", false
	}
	p = strings.ReplaceAll(localPath, `\`, "/")
	if len(p) >= 2 && isASCIILetter(p[0]) && p[1] == ':' {
		p = p[2:]
	}
	if p == "" {
		return "", false
	}
	return p, true
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// AttachmentURL joins a web root and a normalized path with exactly one
// slash between them. The target is never checked for existence.
func AttachmentURL(webRoot, normalized string) string {
	return strings.TrimRight(webRoot, "/") + "/" + strings.TrimLeft(normalized, "/")
}

// Kind is the rendering category of an attachment.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
	KindFile  Kind = "file"
)

// ClassifyMimetype maps a free-form MIME string onto a Kind by prefix.
func ClassifyMimetype(mimetype string) Kind {
	m := strings.ToLower(strings.TrimSpace(mimetype))
	switch {
	case strings.HasPrefix(m, "image/"):
		return KindImage
	case strings.HasPrefix(m, "video/"):
		return KindVideo
	default:
		return KindFile
	}
}

// ResolvedAttachment is an Attachment with its browser-fetchable URL.
type ResolvedAttachment struct {
	Attachment
	Kind Kind   `json:"kind"`
	URL  string `json:"url"`
}

func (a ResolvedAttachment) IsImage() bool { return a.Kind == KindImage }
func (a ResolvedAttachment) IsVideo() bool { return a.Kind == KindVideo }

// ResolveAttachments resolves every attachment against webRoot, silently
// omitting those whose path normalizes to nothing.
func ResolveAttachments(files []Attachment, webRoot string) []ResolvedAttachment {
	var out []ResolvedAttachment
	for _, f := range files {
		p, ok := NormalizePath(f.LocalPath)
		if !ok {
			continue
		}
		out = append(out, ResolvedAttachment{
			Attachment: f,
			Kind:       ClassifyMimetype(f.Mimetype),
			URL:        AttachmentURL(webRoot, p),
		})
	}
	return out
}
