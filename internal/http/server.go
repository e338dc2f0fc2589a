package http

import (
	"context"
	"encoding/json"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"tddbank/internal/auth"
	"tddbank/internal/backend"
	"tddbank/internal/cache"
	"tddbank/internal/insights"
	"tddbank/internal/log"
	"tddbank/internal/middleware/ratelimit"
	"tddbank/internal/middleware/security"
	"tddbank/internal/middleware/trace"
	"tddbank/internal/services"
	appweb "tddbank/web"
)

// Options carries the dependencies a Server needs.
type Options struct {
	Addr                string
	Sessions            *auth.Service
	Checker             *auth.Checker
	Accounts            *services.AccountService
	Backend             backend.Backend
	Logger              *log.Logger
	SignInRatePerMinute int
}

// Server is the web front end. It embeds http.Server; page routes pass
// through the auth gate exactly once, handlers never re-check.
type Server struct {
	http.Server
	templates *template.Template
	logger    *log.Logger

	sessions *auth.Service
	checker  *auth.Checker
	accounts *services.AccountService
	backend  backend.Backend

	detector *security.Detector
	tracer   *trace.Middleware
	limiter  *ratelimit.Limiter

	// Derived insight views are memoized per range+filter; the fixture
	// data never changes, the TTL only bounds memory.
	viewCache *cache.LRUCache[insights.View]
	cacheMgr  *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run
// http.Server.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	logger = logger.WithComponent(log.ComponentHTTP)

	detector := security.NewDetector()

	s := &Server{
		Server: http.Server{
			Addr:              opts.Addr,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger:   logger,
		sessions: opts.Sessions,
		checker:  opts.Checker,
		accounts: opts.Accounts,
		backend:  opts.Backend,
		detector: detector,
		tracer:   trace.NewMiddleware(detector.ExtractClientIP),
		limiter: ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerMinute: opts.SignInRatePerMinute,
			CleanupInterval:   5 * time.Minute,
		}),
		viewCache: cache.NewLRUCache[insights.View](100, 5*time.Minute),
		cacheMgr:  cache.NewManager(),
	}

	s.cacheMgr.Register(s.viewCache)
	s.cacheMgr.StartCleanup(10 * time.Minute)

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		logger.Warn("Failed parsing templates", log.FieldError, err)
	}
	s.templates = t

	root := http.NewServeMux()

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		root.Handle("/static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		logger.Warn("Failed to mount embedded static FS", log.FieldError, err)
	}

	root.HandleFunc("/healthz", s.handleHealth)
	root.HandleFunc("/readyz", s.handleReady)
	root.HandleFunc("/metrics", s.handleMetrics)

	// Page routes. The gate is the single authorization boundary.
	pages := http.NewServeMux()
	pages.HandleFunc("/", s.handleDashboard)
	pages.HandleFunc("/sign-in", s.withSignInRateLimit(s.handleSignIn))
	pages.HandleFunc("/sign-up", s.handleSignUp)
	pages.HandleFunc("/sign-out", s.handleSignOut)
	pages.HandleFunc("/insights", s.handleInsights)
	pages.HandleFunc("/ui/insights", s.handleInsightsPartial)
	pages.HandleFunc("/settings", s.handleSettings)
	pages.HandleFunc("/settings/profile", s.handleSettingsProfile)
	pages.HandleFunc("/settings/2fa", s.handleSettings2FA)
	pages.HandleFunc("/security", s.handleSecurity)
	pages.HandleFunc("/security/privacy", s.handleSecurityPrivacy)
	pages.HandleFunc("/security/deactivate", s.handleSecurityDeactivate)
	pages.HandleFunc("/support", s.handleSupport)
	pages.HandleFunc("/ui/faq-search", s.handleFAQSearch)
	root.Handle("/", s.sessions.Gate(pages))

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	s.Handler = headers.Middleware(s.tracer.Middleware(s.withSuspicionLogging(root)))

	return s
}

// withSuspicionLogging logs requests matching known scanner patterns.
// They are logged and counted, never blocked.
func (s *Server) withSuspicionLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.detector.DetectSuspiciousRequest(r) {
			s.logger.Warn("Suspicious request pattern",
				log.FieldClientIP, s.detector.ExtractClientIP(r),
				log.FieldPath, r.URL.Path)
		}
		next.ServeHTTP(w, r)
	})
}

// withSignInRateLimit guards the credential check against hammering.
// Only POST submissions count; rendering the form is free.
func (s *Server) withSignInRateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			clientIP := s.detector.ExtractClientIP(r)
			if !s.limiter.Allow(clientIP) {
				s.logger.Warn("Sign-in rate limit exceeded",
					log.FieldClientIP, clientIP, log.FieldPath, r.URL.Path)
				w.Header().Set("Retry-After", "60")
				http.Error(w, "Too many sign-in attempts. Please try again later.", http.StatusTooManyRequests)
				return
			}
		}
		next(w, r)
	}
}

// Shutdown gracefully shuts down the server and its background routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cacheMgr.Stop()
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	// Readiness is tied to the backing store answering reads.
	if _, err := s.backend.ReadUserName(r.Context()); err != nil {
		s.logger.Error("Readiness check failed", log.FieldError, err)
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	traceMetrics := s.tracer.GetMetrics()
	detectMetrics := s.detector.GetMetrics()

	payload := map[string]interface{}{
		"total_requests":       traceMetrics.TotalRequests,
		"avg_response_time_us": traceMetrics.AverageResponseTime,
		"suspicious_requests":  detectMetrics.SuspiciousRequests,
		"ratelimit_clients":    s.limiter.ActiveClients(),
		"view_cache_entries":   s.viewCache.Size(),
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

// render executes one template, falling back to a 500 when templates
// failed to parse at startup.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data interface{}) {
	if s.templates == nil {
		s.logger.Error("Templates not loaded", log.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("Template execution failed",
			log.FieldError, err, "template", name, log.FieldPath, r.URL.Path)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
