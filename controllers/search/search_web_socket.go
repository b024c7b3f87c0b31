package searchControllers

import (
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/junaidrashid-git/storefront/debounce"
	"github.com/junaidrashid-git/storefront/logger"
	"github.com/junaidrashid-git/storefront/middleware"
	"github.com/junaidrashid-git/storefront/storefront"
)

var log = logger.New("search")

// checkOrigin accepts the server's own host and the configured origins ("*" allows any).
// Requests without an Origin header do not come from a browser page and are let through.
func checkOrigin(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if u, err := url.Parse(origin); err == nil && strings.EqualFold(u.Host, r.Host) {
			return true
		}
		for _, o := range allowed {
			o = strings.TrimSpace(o)
			if o == "*" || strings.EqualFold(o, origin) {
				return true
			}
		}
		log.Warning("rejected websocket from origin %s", origin)
		return false
	}
}

// GET /ws/search
// Every text frame is the search box's current text. Searches run after a quiet period and
// each one pushes the resulting view. The first frame sent is the mounted page.
func SearchWebSocketHandler(pages *storefront.Registry, delay time.Duration, allowedOrigins []string) gin.HandlerFunc {
	upgrader := websocket.Upgrader{CheckOrigin: checkOrigin(allowedOrigins)}

	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Warning("websocket upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		ctx := c.Request.Context()
		page := pages.Page(middleware.VisitorID(c))
		page.Mount(ctx)

		var writeMu sync.Mutex
		push := func(v storefront.View) error {
			writeMu.Lock()
			defer writeMu.Unlock()
			return conn.WriteJSON(v)
		}
		if err := push(page.View(ctx)); err != nil {
			return
		}

		searches := debounce.New(delay, func(text string) {
			if ctx.Err() != nil {
				return
			}
			page.Search(ctx, text)
			if err := push(page.View(ctx)); err != nil {
				log.Warning("failed to push search results: %v", err)
			}
		})
		defer searches.Stop()

		for {
			msgType, data, err := conn.ReadMessage()
			if err != nil {
				break
			}
			if msgType != websocket.TextMessage {
				continue
			}
			searches.Trigger(string(data))
		}
	}
}
