// Package mediatype reconciles declared MIME types with filename extensions
// for the fixed set of media formats Vacay accepts.
//
// Declared MIME types coming from browsers and mobile platforms are
// unreliable: common formats frequently arrive as application/octet-stream
// or with an empty type. The filename extension is the more stable signal,
// so classification falls back to it whenever the declared type is absent,
// generic, or unrecognized. Classification is a pure function and never
// fails with an error; it returns a verdict.
package mediatype

import "strings"

// generic is the placeholder type some platforms report for any file.
const generic = "application/octet-stream"

type entry struct {
	mime       string
	extensions []string
}

// Whitelisted formats. Order matters only for Allowed()'s output.
// Both video/mov and video/quicktime are accepted declarations for .mov
// files; the canonical type resolved from the extension is video/mov.
var whitelist = []entry{
	{"image/jpeg", []string{".jpg", ".jpeg"}},
	{"image/png", []string{".png"}},
	{"image/webp", []string{".webp"}},
	{"image/gif", []string{".gif"}},
	{"video/mp4", []string{".mp4"}},
	{"video/mov", []string{".mov"}},
	{"video/quicktime", []string{".mov"}},
	{"video/avi", []string{".avi"}},
}

// extension -> canonical MIME type used when the declared type is unusable.
var byExtension = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
	".mp4":  "video/mp4",
	".mov":  "video/mov",
	".avi":  "video/avi",
}

// Result is a classification verdict. When Valid is true, MIME holds the
// canonical type to persist, which may differ from the declared one.
type Result struct {
	Valid bool
	MIME  string
}

// Classify maps (filename, declared MIME type) to a supported canonical type.
//
// In order, first match wins:
//  1. declared type exactly matches a whitelist entry: accepted as-is;
//  2. declared type is empty or generic: resolve by extension;
//  3. declared type is present but unknown: still resolve by extension,
//     correcting the type to the canonical value;
//  4. otherwise rejected.
func Classify(filename, declared string) Result {
	name := strings.ToLower(filename)

	for _, e := range whitelist {
		if e.mime == declared {
			return Result{Valid: true, MIME: declared}
		}
	}

	for ext, mime := range byExtension {
		if strings.HasSuffix(name, ext) {
			return Result{Valid: true, MIME: mime}
		}
	}

	return Result{}
}

// IsImage reports whether mime is an image type.
func IsImage(mime string) bool { return strings.HasPrefix(mime, "image/") }

// IsVideo reports whether mime is a video type.
func IsVideo(mime string) bool { return strings.HasPrefix(mime, "video/") }

// ExtensionFor returns the download filename extension for a classified
// MIME type. Unrecognized video types default to .mp4 and anything else
// defaults to .jpg, so generated filenames always carry an extension.
func ExtensionFor(mime string) string {
	switch mime {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	case "video/mp4":
		return ".mp4"
	case "video/mov", "video/quicktime":
		return ".mov"
	case "video/avi":
		return ".avi"
	}
	if IsVideo(mime) {
		return ".mp4"
	}
	return ".jpg"
}

// Allowed returns the content-type allowlist advertised to clients when an
// upload is refused: every whitelisted type plus the generic placeholder,
// since clients with unreliable type detection still transfer bytes under
// octet-stream.
func Allowed() []string {
	out := make([]string, 0, len(whitelist)+1)
	for _, e := range whitelist {
		out = append(out, e.mime)
	}
	return append(out, generic)
}
