package mime

import (
	"path/filepath"
	"strings"
)

type MIME = string

const (
	OctetStream MIME = "application/octet-stream"
	Plain       MIME = "text/plain"
	HTML        MIME = "text/html"
	CSS         MIME = "text/css"
	JS          MIME = "text/javascript"
	XML         MIME = "text/xml"
	CSV         MIME = "text/csv"
	JSON        MIME = "application/json"
	YAML        MIME = "application/yaml"
	PDF         MIME = "application/pdf"
	ZIP         MIME = "application/zip"
	GZIP        MIME = "application/gzip"
	WASM        MIME = "application/wasm"
	AVIF        MIME = "image/avif"
	GIF         MIME = "image/gif"
	JPEG        MIME = "image/jpeg"
	PNG         MIME = "image/png"
	SVG         MIME = "image/svg+xml"
	ICO         MIME = "image/vnd.microsoft.icon"
	WEBP        MIME = "image/webp"
	WOFF        MIME = "font/woff"
	WOFF2       MIME = "font/woff2"
	MP4         MIME = "video/mp4"
)

// Extension maps lower-case file extensions (with the leading dot) onto their content types.
var Extension = map[string]MIME{
	".html":  HTML,
	".htm":   HTML,
	".css":   CSS,
	".js":    JS,
	".mjs":   JS,
	".xml":   XML,
	".csv":   CSV,
	".txt":   Plain,
	".json":  JSON,
	".yaml":  YAML,
	".yml":   YAML,
	".pdf":   PDF,
	".zip":   ZIP,
	".gz":    GZIP,
	".wasm":  WASM,
	".avif":  AVIF,
	".gif":   GIF,
	".jpeg":  JPEG,
	".jpg":   JPEG,
	".png":   PNG,
	".svg":   SVG,
	".ico":   ICO,
	".webp":  WEBP,
	".woff":  WOFF,
	".woff2": WOFF2,
	".mp4":   MP4,
}

// ByPath returns the content type for the file path judging by its extension,
// or OctetStream if the extension is missing or unknown.
func ByPath(path string) MIME {
	ext := strings.ToLower(filepath.Ext(path))
	if mime, found := Extension[ext]; found {
		return mime
	}

	return OctetStream
}
