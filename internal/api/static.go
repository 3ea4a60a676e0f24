package api

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"
)

// MountShell serves the built web shell from dir at "/". Paths that name no
// file fall back to index.html so the shell's own routes survive a reload.
// Unknown /api paths still get the JSON 404. A missing dir mounts nothing.
func (s *Server) MountShell(dir string) bool {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		s.logger.Warn("web shell not found, serving the API only", "dir", dir)
		return false
	}

	root := os.DirFS(dir)
	files := http.FileServer(http.FS(root))

	s.router.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
		if name == "" {
			name = "."
		}
		if _, err := fs.Stat(root, name); errors.Is(err, fs.ErrNotExist) {
			http.ServeFileFS(w, r, root, "index.html")
			return
		}
		files.ServeHTTP(w, r)
	})
	return true
}
