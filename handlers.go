package main

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"legallens/models"

	"github.com/gin-gonic/gin"
)

// Services are wired once in main (or in test setup) and shared by handlers.
var (
	auths  *AuthService
	tokens *TokenService
	docs   *DocumentService
)

const maxUploadBytes = 20 * 1024 * 1024

func setupRoutes(r *gin.Engine) {
	r.POST("/auth/register", registerHandler)
	r.POST("/auth/login", loginHandler)
	r.POST("/auth/refresh", refreshHandler)
	r.POST("/auth/revoke", revokeHandler)
	authGroup := r.Group("")
	authGroup.Use(jwtAuthMiddleware())
	authGroup.GET("/me", meHandler)
	authGroup.POST("/documents", uploadDocumentHandler)
	authGroup.GET("/documents", listDocumentsHandler)
	authGroup.GET("/documents/:id", getDocumentHandler)
	authGroup.DELETE("/documents/:id", deleteDocumentHandler)
	authGroup.POST("/documents/:id/chat", chatDocumentHandler)
}

// jwtAuthMiddleware resolves the bearer token to a user id without touching
// storage. A missing or malformed header is an authentication failure, never
// an anonymous path.
func jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			return
		}
		userID, err := tokens.VerifyAccess(authHeader[7:])
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, ErrTokenExpired) {
				msg = "expired token"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}
		c.Set("userID", userID)
		c.Next()
	}
}

func currentUserID(c *gin.Context) uint {
	v, _ := c.Get("userID")
	id, ok := v.(uint)
	if !ok {
		// middleware always sets it on protected routes
		panic("handler reached without authenticated user id")
	}
	return id
}

func registerHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := auths.Register(req.Email, req.Password)
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}
	access, refresh, err := tokens.Issue(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue tokens"})
		return
	}
	c.JSON(http.StatusCreated, tokenResponse(access, refresh))
}

func loginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := auths.Authenticate(req.Email, req.Password)
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}
	access, refresh, err := tokens.Issue(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue tokens"})
		return
	}
	if err := auths.TouchLastLogin(user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record login"})
		return
	}
	c.JSON(http.StatusOK, tokenResponse(access, refresh))
}

// refreshHandler exchanges a refresh token for a new pair; the presented
// token is revoked as part of the rotation.
func refreshHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	access, refresh, err := tokens.Rotate(req.RefreshToken)
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tokenResponse(access, refresh))
}

// revokeHandler revokes a refresh token (useful on logout).
func revokeHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := tokens.Revoke(req.RefreshToken); err != nil {
		if errors.Is(err, ErrRefreshTokenInvalid) {
			c.JSON(http.StatusNotFound, gin.H{"error": "refresh token not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "refresh token revoked"})
}

func meHandler(c *gin.Context) {
	user, err := auths.GetUser(currentUserID(c))
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":            user.ID,
		"email":         user.Email,
		"created_at":    user.CreatedAt,
		"last_login_at": user.LastLoginAt,
	})
}

// uploadDocumentHandler runs the full pipeline on a single multipart file.
func uploadDocumentHandler(c *gin.Context) {
	userID := currentUserID(c)
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file missing"})
		return
	}
	if file.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large (max 20MB)"})
		return
	}
	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}

	doc, err := docs.Create(c.Request.Context(), file.Filename, data, file.Header.Get("Content-Type"), userID)
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, documentJSON(doc))
}

func listDocumentsHandler(c *gin.Context) {
	items, err := docs.List(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func getDocumentHandler(c *gin.Context) {
	docID, ok := docIDParam(c)
	if !ok {
		return
	}
	doc, err := docs.Get(docID, currentUserID(c))
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, documentJSON(doc))
}

func deleteDocumentHandler(c *gin.Context) {
	docID, ok := docIDParam(c)
	if !ok {
		return
	}
	if err := docs.Delete(docID, currentUserID(c)); err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "document deleted"})
}

// chatDocumentHandler answers a question about one stored document. Chat
// turns are not persisted; each question stands alone.
func chatDocumentHandler(c *gin.Context) {
	docID, ok := docIDParam(c)
	if !ok {
		return
	}
	var req struct {
		Question string `json:"question" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	answer, err := docs.Answer(c.Request.Context(), docID, currentUserID(c), req.Question)
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

func docIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		// an unparsable id can never match a row; same signal as a miss
		c.JSON(http.StatusNotFound, gin.H{"error": ErrNotFound.Error()})
		return 0, false
	}
	return uint(id), true
}

func tokenResponse(access, refresh string) gin.H {
	return gin.H{
		"access_token":  access,
		"refresh_token": refresh,
		"token_type":    "bearer",
	}
}

func documentJSON(doc *models.Document) gin.H {
	return gin.H{
		"id":         doc.ID,
		"title":      doc.Title,
		"content":    doc.Content,
		"summary":    doc.Summary,
		"red_flags":  doc.RedFlags,
		"clauses":    doc.Clauses,
		"created_at": doc.CreatedAt,
	}
}

// errStatus maps an error kind to its HTTP status.
func errStatus(err error) int {
	switch {
	case errors.Is(err, ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, ErrWeakPassword):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrTokenInvalid),
		errors.Is(err, ErrRefreshTokenInvalid),
		errors.Is(err, ErrRefreshTokenExpired):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnsupportedFileType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ErrExtractionFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrAnalysisFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
