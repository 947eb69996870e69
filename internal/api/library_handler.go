package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"alcyxob/hoops-trainer/internal/domain"
	"alcyxob/hoops-trainer/internal/logger"
	"alcyxob/hoops-trainer/internal/platform"
	"alcyxob/hoops-trainer/internal/service"
)

// LibraryHandler serves videos and exercises.
type LibraryHandler struct {
	library service.LibraryService
	titles  service.TitleService
}

// NewLibraryHandler creates a new LibraryHandler.
func NewLibraryHandler(library service.LibraryService, titles service.TitleService) *LibraryHandler {
	return &LibraryHandler{library: library, titles: titles}
}

// --- DTOs ---

// AddVideoRequest defines the expected JSON for adding a video by URL.
type AddVideoRequest struct {
	URL        string            `json:"url"`
	Category   string            `json:"category"`
	Visibility domain.Visibility `json:"visibility" binding:"omitempty,oneof=public private"`
}

// AddExerciseRequest defines the expected JSON for adding an exercise.
type AddExerciseRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Visibility  domain.Visibility `json:"visibility" binding:"omitempty,oneof=public private"`
}

// VideoView is a stored video plus what a player needs to render it.
type VideoView struct {
	domain.VideoItem
	DisplayTitle string `json:"displayTitle"`
	EmbedURL     string `json:"embedUrl"`
}

// LibraryView is the library as returned to clients.
type LibraryView struct {
	Videos    []VideoView           `json:"videos"`
	Exercises []domain.ExerciseItem `json:"exercises"`
}

func newVideoView(v domain.VideoItem) VideoView {
	return VideoView{VideoItem: v, DisplayTitle: v.DisplayTitle(), EmbedURL: platform.EmbedURL(v)}
}

func newLibraryView(state domain.LibraryState) LibraryView {
	view := LibraryView{
		Videos:    make([]VideoView, 0, len(state.Videos)),
		Exercises: state.Exercises,
	}
	if view.Exercises == nil {
		view.Exercises = []domain.ExerciseItem{}
	}
	for _, v := range state.Videos {
		view.Videos = append(view.Videos, newVideoView(v))
	}
	return view
}

// --- Handler Methods ---

// GetLibrary godoc
// @Summary List visible videos and exercises
// @Tags Library
// @Produce json
// @Param category query string false "Category, 'all' or 'uncategorized'"
// @Param visibility query string false "public, private or all"
// @Success 200 {object} LibraryView
// @Router /library [get]
func (h *LibraryHandler) GetLibrary(c *gin.Context) {
	principal, ok := principalID(c)
	if !ok {
		return
	}
	filter := domain.BrowseFilter{
		Category:   c.Query("category"),
		Visibility: c.Query("visibility"),
	}
	c.JSON(http.StatusOK, newLibraryView(h.library.Browse(c.Request.Context(), principal, filter)))
}

// GetCategories godoc
// @Summary List browsable categories
// @Tags Library
// @Produce json
// @Success 200 {array} string
// @Router /library/categories [get]
func (h *LibraryHandler) GetCategories(c *gin.Context) {
	principal, ok := principalID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.library.Categories(c.Request.Context(), principal))
}

// GetChannels godoc
// @Summary List YouTube channels found in the visible library
// @Tags Library
// @Produce json
// @Success 200 {array} domain.ChannelInfo
// @Router /library/channels [get]
func (h *LibraryHandler) GetChannels(c *gin.Context) {
	principal, ok := principalID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.library.Channels(c.Request.Context(), principal))
}

// AddVideo godoc
// @Summary Add a video by URL
// @Tags Library
// @Accept json
// @Produce json
// @Param video body AddVideoRequest true "Video URL and category"
// @Success 201 {object} VideoView
// @Failure 400 {object} gin.H "Missing URL, or a Facebook link that cannot be embedded"
// @Router /library/videos [post]
func (h *LibraryHandler) AddVideo(c *gin.Context) {
	var req AddVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	principal, ok := principalID(c)
	if !ok {
		return
	}

	video, err := h.library.AddVideo(c.Request.Context(), principal, service.VideoInput{
		URL:        req.URL,
		Category:   req.Category,
		Visibility: req.Visibility,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to add video.")
		return
	}
	c.JSON(http.StatusCreated, newVideoView(video))
}

// PutVideo godoc
// @Summary Replace a video record
// @Description Full-record replacement. The caller becomes the owner.
// @Tags Library
// @Accept json
// @Produce json
// @Param id path string true "Video ID"
// @Param video body domain.VideoItem true "Complete video record"
// @Success 200 {object} LibraryView
// @Router /library/videos/{id} [put]
func (h *LibraryHandler) PutVideo(c *gin.Context) {
	var item domain.VideoItem
	if err := c.ShouldBindJSON(&item); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	id := c.Param("id")
	if item.ID != "" && item.ID != id {
		abortWithError(c, http.StatusBadRequest, "Video id in body does not match the URL.")
		return
	}
	item.ID = id

	principal, ok := principalID(c)
	if !ok {
		return
	}
	state, err := h.library.UpsertVideo(c.Request.Context(), principal, item)
	if err != nil {
		respondServiceError(c, err, "Failed to save video.")
		return
	}
	c.JSON(http.StatusOK, newLibraryView(state.VisibleTo(principal)))
}

// DeleteVideo godoc
// @Summary Remove a video
// @Description Removing an unknown id is not an error.
// @Tags Library
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} LibraryView
// @Router /library/videos/{id} [delete]
func (h *LibraryHandler) DeleteVideo(c *gin.Context) {
	principal, ok := principalID(c)
	if !ok {
		return
	}
	state, err := h.library.RemoveVideo(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to remove video.")
		return
	}
	c.JSON(http.StatusOK, newLibraryView(state.VisibleTo(principal)))
}

// UpdateMissingTitles godoc
// @Summary Backfill missing YouTube titles
// @Description Best effort. Individual failures are counted, not returned as errors.
// @Tags Library
// @Produce json
// @Success 200 {object} service.EnrichmentReport
// @Router /library/videos/titles [post]
func (h *LibraryHandler) UpdateMissingTitles(c *gin.Context) {
	principal, ok := principalID(c)
	if !ok {
		return
	}
	// Only a cancelled request ends the pass early; the partial report is still returned.
	report, err := h.titles.UpdateAllMissingTitles(c.Request.Context(), principal)
	if err != nil {
		logger.Warn().Err(err).Msg("Title enrichment interrupted")
	}
	c.JSON(http.StatusOK, report)
}

// UpdateVideoTitle godoc
// @Summary Fetch the title of one YouTube video
// @Tags Library
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} VideoView
// @Failure 404 {object} gin.H "Unknown, hidden or non-YouTube video"
// @Failure 502 {object} gin.H "Title lookup failed"
// @Router /library/videos/{id}/title [post]
func (h *LibraryHandler) UpdateVideoTitle(c *gin.Context) {
	principal, ok := principalID(c)
	if !ok {
		return
	}
	video, err := h.titles.UpdateVideoTitle(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrVideoNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusBadGateway, "Failed to fetch video title.")
		return
	}
	c.JSON(http.StatusOK, newVideoView(video))
}

// AddExercise godoc
// @Summary Add a text exercise
// @Tags Library
// @Accept json
// @Produce json
// @Param exercise body AddExerciseRequest true "Exercise details"
// @Success 201 {object} domain.ExerciseItem
// @Router /library/exercises [post]
func (h *LibraryHandler) AddExercise(c *gin.Context) {
	var req AddExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	principal, ok := principalID(c)
	if !ok {
		return
	}

	exercise, err := h.library.AddExercise(c.Request.Context(), principal, service.ExerciseInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Visibility:  req.Visibility,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to add exercise.")
		return
	}
	c.JSON(http.StatusCreated, exercise)
}

// PutExercise godoc
// @Summary Replace an exercise record
// @Tags Library
// @Accept json
// @Produce json
// @Param id path string true "Exercise ID"
// @Param exercise body domain.ExerciseItem true "Complete exercise record"
// @Success 200 {object} LibraryView
// @Router /library/exercises/{id} [put]
func (h *LibraryHandler) PutExercise(c *gin.Context) {
	var item domain.ExerciseItem
	if err := c.ShouldBindJSON(&item); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	id := c.Param("id")
	if item.ID != "" && item.ID != id {
		abortWithError(c, http.StatusBadRequest, "Exercise id in body does not match the URL.")
		return
	}
	item.ID = id

	principal, ok := principalID(c)
	if !ok {
		return
	}
	state, err := h.library.UpsertExercise(c.Request.Context(), principal, item)
	if err != nil {
		respondServiceError(c, err, "Failed to save exercise.")
		return
	}
	c.JSON(http.StatusOK, newLibraryView(state.VisibleTo(principal)))
}

// DeleteExercise godoc
// @Summary Remove an exercise
// @Tags Library
// @Produce json
// @Param id path string true "Exercise ID"
// @Success 200 {object} LibraryView
// @Router /library/exercises/{id} [delete]
func (h *LibraryHandler) DeleteExercise(c *gin.Context) {
	principal, ok := principalID(c)
	if !ok {
		return
	}
	state, err := h.library.RemoveExercise(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to remove exercise.")
		return
	}
	c.JSON(http.StatusOK, newLibraryView(state.VisibleTo(principal)))
}
