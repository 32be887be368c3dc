package handler

import (
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionCookie = "session_token"
	sessionTTL    = 24 * time.Hour
)

// generateSessionToken signs a JWT that carries the Redis-registered
// session ID. The cookie alone is not enough: the session must also still
// exist server-side, which is what makes logout effective.
func (h *Handler) generateSessionToken(sessionID string) (string, error) {
	claims := jwt.MapClaims{
		"sid": sessionID,
		"exp": time.Now().Add(sessionTTL).Unix(),
		"iss": "roadwatch-service",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.Config.SecretKey))
}

// parseSessionToken verifies the JWT signature and expiry and returns the
// embedded session ID.
func (h *Handler) parseSessionToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(h.Config.SecretKey), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid session token")
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", fmt.Errorf("session token carries no session id")
	}
	return sid, nil
}

const loginPage = `<!DOCTYPE html>
<html>
<head><title>Admin Login</title></head>
<body>
<h1>Admin Login</h1>
%s
<form method="POST" action="%s">
  <label>Username <input type="text" name="username" required></label><br>
  <label>Password <input type="password" name="password" required></label><br>
  <button type="submit">Log in</button>
</form>
</body>
</html>`

// ShowLogin renders the minimal credential form. The requested destination
// survives the round trip through the form action's next parameter.
func (h *Handler) ShowLogin(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(loginPageHTML(loginAction(c), "")))
}

// Login checks the submitted credentials against the configured admin
// identity. Success registers a session in Redis, sets the signed cookie
// and redirects to the originally requested page.
func (h *Handler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	if username != h.Config.AdminUsername ||
		bcrypt.CompareHashAndPassword(h.Config.AdminPasswordHash, []byte(password)) != nil {
		c.Data(http.StatusUnauthorized, "text/html; charset=utf-8",
			[]byte(loginPageHTML(loginAction(c), "Invalid credentials")))
		return
	}

	sessionID := uuid.New().String()
	if err := h.Storage.SaveSession(sessionID, sessionTTL); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not create session."})
		return
	}

	token, err := h.generateSessionToken(sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not create session."})
		return
	}

	setSessionCookie(c, token, int(sessionTTL.Seconds()))

	next := c.Query("next")
	if !strings.HasPrefix(next, "/") {
		next = "/admin-dashboard"
	}
	c.Redirect(http.StatusFound, next)
}

// Logout revokes the server-side session and expires the cookie.
func (h *Handler) Logout(c *gin.Context) {
	if cookie, err := c.Cookie(sessionCookie); err == nil {
		if sid, err := h.parseSessionToken(cookie); err == nil {
			if err := h.Storage.DeleteSession(sid); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not clear session."})
				return
			}
		}
	}

	setSessionCookie(c, "", -1)
	c.Redirect(http.StatusFound, "/admin/login")
}

func setSessionCookie(c *gin.Context, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     sessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func loginAction(c *gin.Context) string {
	action := "/admin/login"
	if next := c.Query("next"); strings.HasPrefix(next, "/") {
		action += "?next=" + url.QueryEscape(next)
	}
	return action
}

func loginPageHTML(action, errorMsg string) string {
	errorBlock := ""
	if errorMsg != "" {
		errorBlock = "<p>" + html.EscapeString(errorMsg) + "</p>"
	}
	return fmt.Sprintf(loginPage, errorBlock, action)
}
