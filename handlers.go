package main

import (
	"net/http"
	"strings"

	"be04/auth"

	"github.com/gin-gonic/gin"
)

const refreshCookieName = "refreshToken"

// The refresh cookie is scoped to the auth group so it only travels on
// refresh and sign-out calls.
const refreshCookiePath = "/auth"

func setupRoutes(r *gin.Engine) {
	a := r.Group("/auth")
	a.POST("/signup", signUpHandler)
	a.POST("/signin", signInHandler)
	a.POST("/refresh", refreshHandler)
	a.POST("/signout", signOutHandler)

	authed := r.Group("")
	authed.Use(bearerAuthMiddleware())
	authed.GET("/me", meHandler)

	admin := r.Group("/admin")
	admin.Use(bearerAuthMiddleware())
	setupAdminRoutes(admin)
}

// bearerAuthMiddleware verifies the Authorization header as an access
// token and stashes the claim set on the context.
func bearerAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			c.Abort()
			return
		}
		claims, err := tokenCodec.Verify(authHeader[7:], auth.AccessToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		c.Set("sub", claims.Subject)
		c.Set("email", claims.Email)
		c.Set("name", claims.Name)
		c.Next()
	}
}

// currentUserID returns the authenticated account id set by the middleware.
func currentUserID(c *gin.Context) *uint {
	if v, ok := c.Get("sub"); ok {
		if id, ok := v.(uint); ok {
			return &id
		}
	}
	return nil
}

func meHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"id":    c.GetUint("sub"),
		"email": c.GetString("email"),
		"name":  c.GetString("name"),
	})
}

func signUpHandler(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	profile, err := authService.SignUp(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func signInHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	session, err := authService.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	setRefreshCookie(c, session.RefreshToken)
	c.JSON(http.StatusOK, session)
}

// refreshHandler rotates the session. The refresh token arrives in the
// cookie; a JSON body field is accepted as a fallback for non-browser
// clients.
func refreshHandler(c *gin.Context) {
	token := presentedRefreshToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "refresh token required"})
		return
	}
	session, err := authService.Refresh(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}
	setRefreshCookie(c, session.RefreshToken)
	c.JSON(http.StatusOK, session)
}

func signOutHandler(c *gin.Context) {
	if err := authService.SignOut(c.Request.Context(), presentedRefreshToken(c)); err != nil {
		respondError(c, err)
		return
	}
	clearRefreshCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}

func presentedRefreshToken(c *gin.Context) string {
	if token, err := c.Cookie(refreshCookieName); err == nil && token != "" {
		return token
	}
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.ShouldBindJSON(&req); err == nil {
		return req.RefreshToken
	}
	return ""
}

// setRefreshCookie writes the refresh token carrier. httpOnly and
// secure are off outside production to ease local testing.
func setRefreshCookie(c *gin.Context, token string) {
	hardened := appCfg.Production()
	c.SetCookie(refreshCookieName, token, int(tokenCodec.TTL(auth.RefreshToken).Seconds()), refreshCookiePath, "", hardened, hardened)
}

func clearRefreshCookie(c *gin.Context) {
	hardened := appCfg.Production()
	c.SetCookie(refreshCookieName, "", -1, refreshCookiePath, "", hardened, hardened)
}
