package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/habitloop/curator/internal/curation"
	"github.com/habitloop/curator/internal/domain"
	"github.com/habitloop/curator/internal/isoduration"
	"github.com/habitloop/curator/internal/library"
	"github.com/habitloop/curator/internal/logging"
	"github.com/habitloop/curator/internal/policy"
	"github.com/habitloop/curator/internal/videoid"
	"github.com/habitloop/curator/internal/youtube"
)

// Handler handles HTTP requests for the curator API.
type Handler struct {
	gateway        youtube.Gateway
	searcher       *curation.Searcher
	workflow       *curation.Workflow
	store          *library.Store
	maxResults     int
	logger         logging.Logger
	metricsHandler http.Handler
}

// NewHandler creates a new API handler.
func NewHandler(
	gateway youtube.Gateway,
	searcher *curation.Searcher,
	workflow *curation.Workflow,
	store *library.Store,
	maxResults int,
	logger logging.Logger,
	metricsHandler http.Handler,
) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{
		gateway:        gateway,
		searcher:       searcher,
		workflow:       workflow,
		store:          store,
		maxResults:     maxResults,
		logger:         logger,
		metricsHandler: metricsHandler,
	}
}

// MetadataResponse is the verified-metadata payload for one video.
type MetadataResponse struct {
	VideoID     domain.VideoID `json:"videoId"`
	Title       string         `json:"title"`
	ChannelName string         `json:"channelName"`
	Duration    float64        `json:"duration"`
	DurationSec int            `json:"durationSeconds"`
	DurationRaw string         `json:"durationRaw"`
	Thumbnail   string         `json:"thumbnail"`
	Verified    bool           `json:"verified"`
}

// SearchResponse wraps the filtered results of one catalog search.
type SearchResponse struct {
	Query        string                `json:"query"`
	TotalResults int                   `json:"totalResults"`
	Videos       []domain.SearchResult `json:"videos"`
}

// VerifyRequest carries the URL to verify.
type VerifyRequest struct {
	URL string `json:"url" binding:"required"`
}

// CommitRequest carries the verified candidate plus the coaching fields
// the user fills in before saving.
type CommitRequest struct {
	Candidate curation.Candidate `json:"candidate" binding:"required"`
	Prompt    string             `json:"prompt"`
	Category  string             `json:"category"`
}

// GetMetadata handles GET /api/videos/metadata?url=
func (h *Handler) GetMetadata(c *gin.Context) {
	rawURL := c.Query("url")
	if rawURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url query parameter is required"})
		return
	}

	id, err := videoid.Resolve(rawURL)
	if err != nil {
		h.writeError(c, err)
		return
	}

	metas, err := h.gateway.FetchMetadata(c.Request.Context(), []domain.VideoID{id})
	if err != nil {
		h.writeError(c, err)
		return
	}
	meta := metas[0]

	resolved := isoduration.Decode(meta.DurationRaw)
	if verr := policy.Check(resolved).Violation(); verr != nil {
		h.writeError(c, verr)
		return
	}

	c.JSON(http.StatusOK, MetadataResponse{
		VideoID:     meta.ID,
		Title:       meta.Title,
		ChannelName: meta.ChannelName,
		Duration:    resolved.Minutes,
		DurationSec: resolved.Seconds,
		DurationRaw: meta.DurationRaw,
		Thumbnail:   meta.Thumbnail,
		Verified:    true,
	})
}

// SearchVideos handles GET /api/videos/search?query=&maxResults=
func (h *Handler) SearchVideos(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter is required"})
		return
	}

	maxResults := 10
	if raw := c.Query("maxResults"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "maxResults must be a positive integer"})
			return
		}
		maxResults = n
	}
	if maxResults > h.maxResults {
		maxResults = h.maxResults
	}

	results, err := h.searcher.Search(c.Request.Context(), query, maxResults)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, SearchResponse{
		Query:        query,
		TotalResults: len(results),
		Videos:       results,
	})
}

// GetTranscript handles GET /api/videos/transcript?url=
func (h *Handler) GetTranscript(c *gin.Context) {
	rawURL := c.Query("url")
	if rawURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url query parameter is required"})
		return
	}

	id, err := videoid.Resolve(rawURL)
	if err != nil {
		h.writeError(c, err)
		return
	}

	transcript, err := h.gateway.FetchTranscript(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"videoId": id, "transcript": transcript})
}

// VerifyVideo handles POST /api/videos/verify
func (h *Handler) VerifyVideo(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.workflow.SetURL(req.URL)
	outcome := h.workflow.Verify(c.Request.Context())
	c.JSON(http.StatusOK, outcome)
}

// CommitVideo handles POST /api/library/commit: the save gate plus the
// actual insert. The candidate must match the workflow's last successful
// verification and still pass the duration policy.
func (h *Handler) CommitVideo(c *gin.Context) {
	var req CommitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.workflow.Save(req.Candidate); err != nil {
		h.writeError(c, err)
		return
	}

	tags := req.Candidate.Tags
	item, err := h.store.Add(c.Request.Context(), domain.LibraryItem{
		VideoID:         string(req.Candidate.VideoID),
		Title:           req.Candidate.Title,
		URL:             req.Candidate.URL,
		ChannelName:     req.Candidate.ChannelName,
		DurationMinutes: req.Candidate.DurationMinutes,
		Prompt:          req.Prompt,
		Category:        req.Category,
		ViewCount:       req.Candidate.ViewCount,
		LikeCount:       req.Candidate.LikeCount,
		PublishedAt:     req.Candidate.PublishedAt,
		Tags:            &tags,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.logger.Info("library item committed",
		logging.String("video_id", item.VideoID),
		logging.Int64("id", item.ID))
	c.JSON(http.StatusCreated, item)
}

// ListLibrary handles GET /api/library
func (h *Handler) ListLibrary(c *gin.Context) {
	items, err := h.store.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

// AddLibraryItem handles POST /api/library: a direct insert that bypasses
// the verification workflow but never the duration policy.
func (h *Handler) AddLibraryItem(c *gin.Context) {
	var item domain.LibraryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := videoid.Resolve(item.URL); err != nil {
		h.writeError(c, err)
		return
	}

	added, err := h.store.Add(c.Request.Context(), item)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, added)
}

// UpdateLibraryItem handles PUT /api/library/:id
func (h *Handler) UpdateLibraryItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	var item domain.LibraryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item.ID = id

	updated, err := h.store.Update(c.Request.Context(), item)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteLibraryItem handles DELETE /api/library/:id
func (h *Handler) DeleteLibraryItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// writeError maps the error taxonomy onto HTTP responses. Upstream
// failures pass their status through when it is a sensible HTTP code.
func (h *Handler) writeError(c *gin.Context, err error) {
	var ife *domain.InputFormatError
	if errors.As(err, &ife) {
		c.JSON(http.StatusBadRequest, gin.H{"error": ife.Error()})
		return
	}

	var pve *domain.PolicyViolationError
	if errors.As(err, &pve) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":           pve.Error(),
			"duration":        pve.Minutes,
			"durationSeconds": pve.Seconds,
			"maxSeconds":      pve.MaxSeconds,
		})
		return
	}

	var cfg *domain.ConfigurationError
	if errors.As(err, &cfg) {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": cfg.Error(),
			"hint":  cfg.Hint,
		})
		return
	}

	if errors.Is(err, domain.ErrVideoNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "video not found"})
		return
	}
	if errors.Is(err, domain.ErrTranscriptUnavailable) {
		c.JSON(http.StatusNotFound, gin.H{"error": "transcript not available for this video"})
		return
	}
	if errors.Is(err, library.ErrItemNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "library item not found"})
		return
	}
	if errors.Is(err, curation.ErrNotVerified) {
		c.JSON(http.StatusConflict, gin.H{"error": curation.ErrNotVerified.Error()})
		return
	}

	var ue *domain.UpstreamError
	if errors.As(err, &ue) {
		status := ue.Status
		if status < http.StatusBadRequest || status > 599 {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": "upstream platform error", "details": ue.Message})
		return
	}

	h.logger.Error("unhandled request failure", logging.Err(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
