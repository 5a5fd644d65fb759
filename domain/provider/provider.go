package provider

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Provider identifies the hosting service a video URL belongs to.
type Provider string

const (
	Unknown  Provider = ""
	YouTube  Provider = "youtube"
	Vimeo    Provider = "vimeo"
	XVideos  Provider = "xvideos"
	PornHub  Provider = "pornhub"
	GDrive   Provider = "gdrive"
	Dropbox  Provider = "dropbox"
	Terabox  Provider = "terabox"
	Telegram Provider = "telegram"
	Catbox   Provider = "catbox"
)

// ErrInvalidProviderURL marks a URL that matched a provider but yielded no
// usable video id. Distinct from an unrecognized URL, which is not an error.
var ErrInvalidProviderURL = errors.New("invalid url for matched provider")

// hostPatterns drive the generic detection loop. GDrive and Telegram are
// matched explicitly before this loop: drive.google.com shares the google
// token with YouTube CDN hosts, and t.me is too short for substring matching.
var hostPatterns = []struct {
	provider Provider
	tokens   []string
}{
	{YouTube, []string{"youtube.com", "youtu.be"}},
	{Vimeo, []string{"vimeo.com"}},
	{XVideos, []string{"xvideos.com", "xvideos"}},
	{PornHub, []string{"pornhub.com", "pornhubpremium.com"}},
	{Dropbox, []string{"dropbox.com", "dropboxusercontent.com"}},
	{Terabox, []string{"terabox.com", "terabox.app", "1024terabox.com", "teraboxapp.com"}},
	{Catbox, []string{"catbox.moe"}},
}

// Detect classifies a URL into one of the known providers, or Unknown.
// Pure function of its input; malformed or empty URLs yield Unknown,
// never an error.
func Detect(raw string) Provider {
	host := hostOf(raw)
	if host == "" {
		return Unknown
	}
	if host == "drive.google.com" || strings.HasSuffix(host, ".drive.google.com") {
		return GDrive
	}
	if host == "t.me" || host == "telegram.me" || host == "telegram.org" ||
		strings.HasSuffix(host, ".t.me") || strings.HasSuffix(host, ".telegram.org") {
		return Telegram
	}
	for _, p := range hostPatterns {
		for _, token := range p.tokens {
			if host == token || strings.HasSuffix(host, "."+token) || strings.Contains(host, token) {
				return p.provider
			}
		}
	}
	return Unknown
}

func hostOf(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

var (
	vimeoPathRe   = regexp.MustCompile(`vimeo\.com/(?:video/)?(\d+)(?:/([0-9a-fA-F]+))?`)
	xvideosPathRe = regexp.MustCompile(`/(?:video\.?|embedframe/)([A-Za-z0-9]+)`)
	gdriveFileRe  = regexp.MustCompile(`/file/d/([A-Za-z0-9_-]+)`)
	youtubeIDRe   = regexp.MustCompile(`^[A-Za-z0-9_-]{6,}$`)
)

// Resolve classifies a URL and derives its embeddable player URL. An
// unrecognized or malformed URL yields (Unknown, "", nil); a recognized
// provider whose id cannot be extracted yields ErrInvalidProviderURL.
func Resolve(raw string) (Provider, string, error) {
	p := Detect(raw)
	if p == Unknown {
		return Unknown, "", nil
	}
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Unknown, "", nil
	}

	switch p {
	case YouTube:
		id := youtubeID(u)
		if id == "" {
			return p, "", fmt.Errorf("%w: %s", ErrInvalidProviderURL, YouTube)
		}
		return p, "https://www.youtube.com/embed/" + id, nil
	case Vimeo:
		m := vimeoPathRe.FindStringSubmatch(raw)
		if m == nil {
			return p, "", fmt.Errorf("%w: %s", ErrInvalidProviderURL, Vimeo)
		}
		embed := "https://player.vimeo.com/video/" + m[1]
		if m[2] != "" {
			embed += "?h=" + m[2]
		}
		return p, embed, nil
	case XVideos:
		m := xvideosPathRe.FindStringSubmatch(u.Path)
		if m == nil {
			return p, "", fmt.Errorf("%w: %s", ErrInvalidProviderURL, XVideos)
		}
		return p, "https://www.xvideos.com/embedframe/" + m[1], nil
	case PornHub:
		key := u.Query().Get("viewkey")
		if key == "" {
			// Embed links carry the key as the last path segment.
			if seg := lastSegment(u.Path); strings.HasPrefix(u.Path, "/embed/") {
				key = seg
			}
		}
		if key == "" {
			return p, "", fmt.Errorf("%w: %s", ErrInvalidProviderURL, PornHub)
		}
		return p, "https://www.pornhub.com/embed/" + key, nil
	case GDrive:
		id := gdriveID(u)
		if id == "" {
			return p, "", fmt.Errorf("%w: %s", ErrInvalidProviderURL, GDrive)
		}
		return p, "https://drive.google.com/file/d/" + id + "/preview", nil
	case Dropbox:
		return p, dropboxDirectURL(u), nil
	case Terabox:
		token := teraboxToken(u)
		if token == "" {
			return p, "", fmt.Errorf("%w: %s", ErrInvalidProviderURL, Terabox)
		}
		return p, "https://www.terabox.com/sharing/embed?surl=" + token, nil
	case Telegram:
		channel, msg := telegramPost(u)
		if channel == "" || msg == "" {
			return p, "", fmt.Errorf("%w: %s", ErrInvalidProviderURL, Telegram)
		}
		return p, "https://t.me/" + channel + "/" + msg + "?embed=1&mode=tv", nil
	case Catbox:
		if lastSegment(u.Path) == "" {
			return p, "", fmt.Errorf("%w: %s", ErrInvalidProviderURL, Catbox)
		}
		return p, u.String(), nil
	}
	return Unknown, "", nil
}

// ThumbnailURL derives a directly loadable thumbnail without a network call.
// Returns "" for providers whose thumbnails require async resolution
// (Vimeo, Dropbox, Terabox, Telegram, Catbox) and for unrecognized URLs.
func ThumbnailURL(raw string) string {
	p := Detect(raw)
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	switch p {
	case YouTube:
		if id := youtubeID(u); id != "" {
			return "https://img.youtube.com/vi/" + id + "/maxresdefault.jpg"
		}
	case GDrive:
		if id := gdriveID(u); id != "" {
			return "https://drive.google.com/thumbnail?id=" + id + "&sz=w640"
		}
	case XVideos:
		if m := xvideosPathRe.FindStringSubmatch(u.Path); m != nil {
			return xvideosThumb(m[1])
		}
	case PornHub:
		key := u.Query().Get("viewkey")
		if key == "" && strings.HasPrefix(u.Path, "/embed/") {
			key = lastSegment(u.Path)
		}
		if key != "" {
			return pornhubThumb(key)
		}
	}
	return ""
}

// VideoID extracts the provider-native id from a URL, for providers that key
// videos by one. Providers addressed only by full URL (Dropbox, Catbox) and
// unrecognized URLs yield "".
func VideoID(raw string) string {
	p := Detect(raw)
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	switch p {
	case YouTube:
		return youtubeID(u)
	case Vimeo:
		if m := vimeoPathRe.FindStringSubmatch(raw); m != nil {
			return m[1]
		}
	case XVideos:
		if m := xvideosPathRe.FindStringSubmatch(u.Path); m != nil {
			return m[1]
		}
	case PornHub:
		if key := u.Query().Get("viewkey"); key != "" {
			return key
		}
		if strings.HasPrefix(u.Path, "/embed/") {
			return lastSegment(u.Path)
		}
	case GDrive:
		return gdriveID(u)
	case Terabox:
		return teraboxToken(u)
	case Telegram:
		if channel, msg := telegramPost(u); channel != "" && msg != "" {
			return channel + "/" + msg
		}
	}
	return ""
}

func youtubeID(u *url.URL) string {
	host := strings.ToLower(u.Hostname())
	id := ""
	if v := u.Query().Get("v"); v != "" {
		id = v
	} else if host == "youtu.be" {
		id = lastSegment(u.Path)
	} else {
		segs := strings.Split(strings.Trim(u.Path, "/"), "/")
		for i, s := range segs {
			if (s == "embed" || s == "shorts" || s == "live" || s == "v") && i+1 < len(segs) {
				id = segs[i+1]
				break
			}
		}
	}
	if !youtubeIDRe.MatchString(id) {
		return ""
	}
	return id
}

func gdriveID(u *url.URL) string {
	if m := gdriveFileRe.FindStringSubmatch(u.Path); m != nil {
		return m[1]
	}
	return u.Query().Get("id")
}

// dropboxDirectURL rewrites a share link into a directly playable one.
func dropboxDirectURL(u *url.URL) string {
	direct := *u
	if strings.Contains(direct.Host, "dropbox.com") && !strings.Contains(direct.Host, "dropboxusercontent") {
		direct.Host = "dl.dropboxusercontent.com"
	}
	q := direct.Query()
	q.Del("dl")
	q.Set("raw", "1")
	direct.RawQuery = q.Encode()
	return direct.String()
}

func teraboxToken(u *url.URL) string {
	if strings.HasPrefix(u.Path, "/s/") {
		token := lastSegment(u.Path)
		// Share tokens carry a leading 1 that the embed endpoint rejects.
		return strings.TrimPrefix(token, "1")
	}
	if surl := u.Query().Get("surl"); surl != "" {
		return surl
	}
	return ""
}

func telegramPost(u *url.URL) (string, string) {
	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segs) < 2 || segs[0] == "" || segs[1] == "" {
		return "", ""
	}
	return segs[0], segs[1]
}

func lastSegment(path string) string {
	segs := strings.Split(strings.Trim(path, "/"), "/")
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}

// xvideosThumb builds the CDN still path from id fragments. The CDN shards
// thumbnails by leading id pairs.
func xvideosThumb(id string) string {
	if len(id) < 6 {
		return fmt.Sprintf("https://cdn77-pic.xvideos-cdn.com/videos/thumbs169ll/%s/%s.30.jpg", id, id)
	}
	return fmt.Sprintf("https://cdn77-pic.xvideos-cdn.com/videos/thumbs169ll/%s/%s/%s/%s/%s.30.jpg",
		id[0:2], id[2:4], id[4:6], id, id)
}

// pornhubThumb builds the CDN still path from viewkey fragments.
func pornhubThumb(key string) string {
	if len(key) < 8 {
		return fmt.Sprintf("https://ei.phncdn.com/videos/%s/original.jpg", key)
	}
	return fmt.Sprintf("https://ei.phncdn.com/videos/%s/%s/%s/original.jpg",
		key[0:4], key[4:8], key)
}
