package handler

import (
	"net/url"
	"strconv"

	"github.com/blues/crowdhub/internal/logic"
	"github.com/gin-gonic/gin"
)

type pageLink struct {
	Number  int
	URL     string
	Current bool
}

// pageLinks 分页链接，保留原查询参数
type pageLinks struct {
	Prev  string
	Next  string
	Pages []pageLink
}

func buildPageLinks[T any](u *url.URL, page *logic.Page[T]) pageLinks {
	var links pageLinks
	if page.HasPrev() {
		links.Prev = pageURL(u, page.Page-1)
	}
	if page.HasNext() {
		links.Next = pageURL(u, page.Page+1)
	}
	if page.LastPage > 1 {
		for n := 1; n <= page.LastPage; n++ {
			links.Pages = append(links.Pages, pageLink{Number: n, URL: pageURL(u, n), Current: n == page.Page})
		}
	}
	return links
}

func pageURL(u *url.URL, page int) string {
	query := u.Query()
	query.Set("page", strconv.Itoa(page))
	return u.Path + "?" + query.Encode()
}

// pageParam 解析 page 参数，非法值按第一页处理
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		return 1
	}
	return logic.NormalizePage(page)
}

// idParam 解析路径中的 id
func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
