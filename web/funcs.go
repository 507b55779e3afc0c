package web

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"html/template"
	"strings"

	"github.com/mhsanaei/blog/web/locale"
)

const gravatarBase = "https://www.gravatar.com/avatar/"

// gravatarURL returns the avatar image for email: 100px, retro fallback, rated g.
func gravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("%s%s?s=100&d=retro&r=g", gravatarBase, hex.EncodeToString(sum[:]))
}

// trustedHTML marks post bodies written by the admin as safe markup.
// Comment text must never go through it.
func trustedHTML(s string) template.HTML {
	return template.HTML(s)
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"i18n":     locale.I18n,
		"gravatar": gravatarURL,
		"safeHTML": trustedHTML,
	}
}
