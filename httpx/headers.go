package httpx

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	AlertHeader       = "X-coopcycleApp-alert"
	AlertParamsHeader = "X-coopcycleApp-params"
	TotalCountHeader  = "X-Total-Count"
	RequestIDHeader   = "X-Request-ID"

	MergePatchJSON = "application/merge-patch+json"
)

// Alert sets the notification headers read by admin front ends, e.g.
// coopcycleApp.panier.created with the identifier as parameter.
func Alert(w http.ResponseWriter, entity, action, param string) {
	w.Header().Set(AlertHeader, "coopcycleApp."+entity+"."+action)
	w.Header().Set(AlertParamsHeader, param)
}

// Paginate writes X-Total-Count and an RFC 5988 Link header for a 0-based
// page of size items.
func Paginate(w http.ResponseWriter, u *url.URL, page, size int, total int64) {
	w.Header().Set(TotalCountHeader, strconv.FormatInt(total, 10))
	if size <= 0 {
		return
	}
	last := 0
	if total > 0 {
		last = int((total - 1) / int64(size))
	}
	var links []string
	link := func(p int, rel string) {
		q := u.Query()
		q.Set("page", strconv.Itoa(p))
		q.Set("size", strconv.Itoa(size))
		ref := url.URL{Path: u.Path, RawQuery: q.Encode()}
		links = append(links, fmt.Sprintf(`<%s>; rel="%s"`, ref.String(), rel))
	}
	if page < last {
		link(page+1, "next")
	}
	if page > 0 {
		link(page-1, "prev")
	}
	link(last, "last")
	link(0, "first")
	w.Header().Set("Link", strings.Join(links, ","))
}
