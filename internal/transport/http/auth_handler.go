package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"quiz-trainer/internal/auth"
	"quiz-trainer/internal/domain"
)

const sessionCookie = "session_id"

// unauthorizedDetail is the API body detail for requests without a session.
const unauthorizedDetail = "Unauthorized"

type userKey struct{}

// UserFrom returns the logged-in user stored by RequireUser.
func UserFrom(ctx context.Context) string {
	user, _ := ctx.Value(userKey{}).(string)
	return user
}

const loginPage = `<!DOCTYPE html>
<html><head><title>Login</title></head><body>
<form method="post" action="/login">
<input name="username" placeholder="username">
<input name="password" type="password" placeholder="password">
<button type="submit">Login</button>
</form>
</body></html>
`

const indexPage = `<!DOCTYPE html>
<html><head><title>Quiz trainer</title></head><body>
<p>Quiz trainer is running. Connect to /ws to take a quiz.</p>
</body></html>
`

// AuthHandler serves the login pages and guards the rest of the surface.
type AuthHandler struct {
	auth      *auth.Authenticator
	staticDir string
	ttl       time.Duration
}

func NewAuthHandler(a *auth.Authenticator, staticDir string, ttl time.Duration) *AuthHandler {
	return &AuthHandler{auth: a, staticDir: staticDir, ttl: ttl}
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if _, err := h.user(r); err == nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	h.serveStatic(w, r, "login.html", loginPage)
}

// Login checks the submitted form and sets the session cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	id, err := h.auth.Login(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	if errors.Is(err, domain.ErrInvalidCredentials) {
		http.Redirect(w, r, "/login?error=1", http.StatusFound)
		return
	}
	if err != nil {
		log.Printf("login failed: %v", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	cookie := &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if h.ttl > 0 {
		cookie.MaxAge = int(h.ttl / time.Second)
	}
	http.SetCookie(w, cookie)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if err := h.auth.Logout(r.Context(), c.Value); err != nil {
			log.Printf("logout failed: %v", err)
		}
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1})
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (h *AuthHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.serveStatic(w, r, "index.html", indexPage)
}

// RequireUser rejects requests without a live session. API routes get a JSON
// 401, pages are redirected to the login form.
func (h *AuthHandler) RequireUser(api bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := h.user(r)
			if err != nil {
				if !errors.Is(err, domain.ErrUnauthorized) {
					log.Printf("session lookup failed: %v", err)
				}
				if api {
					writeDetail(w, http.StatusUnauthorized, unauthorizedDetail)
				} else {
					http.Redirect(w, r, "/login", http.StatusFound)
				}
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey{}, user)))
		})
	}
}

func (h *AuthHandler) user(r *http.Request) (string, error) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return "", domain.ErrUnauthorized
	}
	return h.auth.User(r.Context(), c.Value)
}

func (h *AuthHandler) serveStatic(w http.ResponseWriter, r *http.Request, name, fallback string) {
	if h.staticDir != "" {
		path := filepath.Join(h.staticDir, name)
		if _, err := os.Stat(path); err == nil {
			http.ServeFile(w, r, path)
			return
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(fallback))
}
