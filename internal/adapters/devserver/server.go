// Package devserver serves the public directory during a dev session with the
// sprite injected into pages, a virtual sprite module and a live-reload channel.
package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"
	"go.trai.ch/spritz/internal/core/domain"
	"go.trai.ch/spritz/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Notifier = (*Server)(nil)

const (
	// RouteSprite serves the raw sprite document.
	RouteSprite = "/@spritz/sprite.svg"
	// RouteModule serves the sprite as an ES module default export.
	RouteModule = "/@spritz/sprite.js"
	// RouteClient serves the live-reload client script.
	RouteClient = "/@spritz/client.js"
	// RouteEvents is the Server-Sent Events live-reload channel.
	RouteEvents = "/@spritz/events"

	// EventHello is sent once per connection with the session id.
	EventHello = "hello"
	// EventSpriteUpdate is sent with the new version after every regeneration.
	EventSpriteUpdate = "sprite-update"

	pageCacheSize     = 128
	readHeaderTimeout = 5 * time.Second
	indexFile         = "index.html"
)

// clientScript swaps the in-page sprite on update and reloads after a restart.
const clientScript = `const rootId = %q;
let session;
const source = new EventSource(%q);
source.addEventListener(%q, (e) => {
  if (session && session !== e.data) location.reload();
  session = e.data;
});
source.addEventListener(%q, async () => {
  const current = document.getElementById(rootId);
  if (!current) {
    location.reload();
    return;
  }
  const res = await fetch(%q, { cache: "no-store" });
  const tpl = document.createElement("template");
  tpl.innerHTML = await res.text();
  current.replaceWith(tpl.content.firstElementChild);
});
`

// Server is the dev HTTP server of one session.
type Server struct {
	cfg      *domain.Config
	injector ports.Injector
	logger   ports.Logger
	engine   *gin.Engine
	session  string
	client   string
	pages    *lru.Cache

	mu     sync.RWMutex
	sprite *domain.Sprite

	subsMu sync.Mutex
	subs   map[chan string]struct{}
	closed bool

	srv      *http.Server
	listener net.Listener
}

// New creates a dev server for cfg. Nothing is bound until Start.
func New(cfg *domain.Config, injector ports.Injector, log ports.Logger) (*Server, error) {
	pages, err := lru.New(pageCacheSize)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrDevServerFailed.Error())
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		cfg:      cfg,
		injector: injector,
		logger:   log,
		engine:   engine,
		session:  uuid.NewString(),
		pages:    pages,
		subs:     make(map[chan string]struct{}),
	}
	s.client = fmt.Sprintf(clientScript, cfg.RootID, RouteEvents, EventHello, EventSpriteUpdate, RouteSprite)

	engine.GET(RouteSprite, s.handleSprite)
	engine.HEAD(RouteSprite, s.handleSprite)
	engine.GET(RouteModule, s.handleModule)
	engine.GET(RouteClient, s.handleClient)
	engine.GET(RouteEvents, s.handleEvents)
	engine.NoRoute(s.handleStatic)

	return s, nil
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Session returns the id announced to live-reload clients.
func (s *Server) Session() string {
	return s.session
}

// Start binds the configured address and serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.DevAddr)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrDevServerFailed.Error()), "addr", s.cfg.DevAddr)
	}
	s.listener = ln
	s.srv = &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error(zerr.Wrap(err, domain.ErrDevServerFailed.Error()))
		}
	}()

	return nil
}

// Addr returns the bound address, or the configured one before Start.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.cfg.DevAddr
}

// Shutdown ends every live-reload stream and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.subsMu.Lock()
	s.closed = true
	for ch := range s.subs {
		close(ch)
		delete(s.subs, ch)
	}
	s.subsMu.Unlock()

	if s.srv == nil {
		return nil
	}
	if err := s.srv.Shutdown(ctx); err != nil {
		return zerr.Wrap(err, domain.ErrDevServerFailed.Error())
	}
	return nil
}

// Notify swaps the served sprite and announces its version to every client.
func (s *Server) Notify(_ context.Context, sprite *domain.Sprite) {
	s.mu.Lock()
	s.sprite = sprite
	s.mu.Unlock()

	if sprite == nil {
		return
	}

	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for ch := range s.subs {
		// Only the latest version matters to a slow client.
		select {
		case <-ch:
		default:
		}
		ch <- sprite.Version
	}
}

func (s *Server) current() *domain.Sprite {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sprite
}

func (s *Server) subscribe() (chan string, bool) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	if s.closed {
		return nil, false
	}
	ch := make(chan string, 1)
	s.subs[ch] = struct{}{}
	return ch, true
}

func (s *Server) unsubscribe(ch chan string) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	if _, ok := s.subs[ch]; ok {
		delete(s.subs, ch)
		close(ch)
	}
}

// etag returns the quoted entity tag of sprite.
func etag(sprite *domain.Sprite) string {
	return `"` + sprite.Version + `"`
}

// fresh writes 304 when the client already holds sprite.
func fresh(c *gin.Context, sprite *domain.Sprite) bool {
	tag := etag(sprite)
	c.Header("ETag", tag)
	c.Header("Cache-Control", "no-cache")
	if c.GetHeader("If-None-Match") == tag {
		c.Status(http.StatusNotModified)
		return true
	}
	return false
}

func (s *Server) handleSprite(c *gin.Context) {
	sprite := s.current()
	if sprite == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	if fresh(c, sprite) {
		return
	}
	c.Data(http.StatusOK, "image/svg+xml; charset=utf-8", []byte(sprite.Markup))
}

func (s *Server) handleModule(c *gin.Context) {
	sprite := s.current()
	if sprite == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	if fresh(c, sprite) {
		return
	}
	literal, err := json.Marshal(sprite.Markup)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	body := "export default " + string(literal) + ";\n"
	c.Data(http.StatusOK, "text/javascript; charset=utf-8", []byte(body))
}

func (s *Server) handleClient(c *gin.Context) {
	c.Data(http.StatusOK, "text/javascript; charset=utf-8", []byte(s.client))
}

func (s *Server) handleEvents(c *gin.Context) {
	ch, ok := s.subscribe()
	if !ok {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	defer s.unsubscribe(ch)

	c.SSEvent(EventHello, s.session)
	c.Writer.Flush()

	c.Stream(func(_ io.Writer) bool {
		select {
		case version, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(EventSpriteUpdate, version)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// handleStatic serves files below the public directory. HTML pages receive
// the sprite and the live-reload client.
func (s *Server) handleStatic(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.Status(http.StatusMethodNotAllowed)
		return
	}

	name := filepath.Join(s.cfg.PublicDir, filepath.FromSlash(path.Clean("/"+c.Request.URL.Path)))
	info, err := os.Stat(name)
	if err == nil && info.IsDir() {
		name = filepath.Join(name, indexFile)
		info, err = os.Stat(name)
	}
	if err != nil || info.IsDir() {
		c.Status(http.StatusNotFound)
		return
	}

	if !strings.EqualFold(filepath.Ext(name), ".html") {
		c.File(name)
		return
	}

	body, err := s.page(name, info)
	if err != nil {
		s.logger.Error(err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}

// page returns the transformed page, served from the cache while neither the
// file nor the sprite changed.
func (s *Server) page(name string, info os.FileInfo) ([]byte, error) {
	sprite := s.current()
	version := ""
	if sprite != nil {
		version = sprite.Version
	}
	key := fmt.Sprintf("%s|%d|%s", name, info.ModTime().UnixNano(), version)
	if cached, ok := s.pages.Get(key); ok {
		if body, ok := cached.([]byte); ok {
			return body, nil
		}
	}

	raw, err := os.ReadFile(name)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrPageReadFailed.Error()), "path", name)
	}

	body := raw
	if sprite != nil {
		body, err = s.injector.Inject(raw, sprite, s.cfg.Inject)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrPageTransformFailed.Error()), "path", name)
		}
	}
	body = withClient(body)

	s.pages.Add(key, body)
	return body, nil
}

// withClient adds the live-reload script before the closing body tag, or at
// the end of pages without one.
func withClient(page []byte) []byte {
	tag := `<script type="module" src="` + RouteClient + `"></script>`
	lower := strings.ToLower(string(page))
	at := strings.LastIndex(lower, "</body>")
	if at < 0 {
		return append(page, tag...)
	}
	out := make([]byte, 0, len(page)+len(tag))
	out = append(out, page[:at]...)
	out = append(out, tag...)
	return append(out, page[at:]...)
}
