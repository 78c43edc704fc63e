package api

import (
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"
)

// AttachmentHandler serves files beneath root at a URL mount prefix.
// Dotfile segments are refused and directories are never listed.
type AttachmentHandler struct {
	root  http.Dir
	mount string
	now   func() time.Time
}

func NewAttachmentHandler(root, mount string) *AttachmentHandler {
	return &AttachmentHandler{
		root:  http.Dir(root),
		mount: strings.TrimRight(mount, "/"),
		now:   time.Now,
	}
}

func (h *AttachmentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rel, ok := strings.CutPrefix(r.URL.Path, h.mount)
	if !ok || (rel != "" && rel[0] != '/') {
		http.NotFound(w, r)
		return
	}
	for _, seg := range strings.Split(rel, "/") {
		if strings.HasPrefix(seg, ".") {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
	}
	name := path.Clean("/" + rel)

	f, err := h.root.Open(name)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil || fi.IsDir() {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("X-Timestamp", strconv.FormatInt(h.now().UnixMilli(), 10))
	w.Header().Set("X-Sent", "true")
	http.ServeContent(w, r, fi.Name(), fi.ModTime(), f)
}
