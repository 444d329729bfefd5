package handler

import (
	"strconv"
	"strings"

	"main/dto"
	"main/middleware"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NoteHandler struct {
	notesService *usecase.NotesService
}

func NewNoteHandler(notesService *usecase.NotesService) *NoteHandler {
	return &NoteHandler{notesService: notesService}
}

// List returns one page of the caller's notes with the conjunctive
// filters from the query string applied.
func (h *NoteHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "Invalid API key")
		return
	}

	page, limit := parsePagination(c)

	opts := usecase.NoteListOptions{
		Tags:      c.Query("tags"),
		Language:  c.Query("language"),
		IsSnippet: c.Query("isSnippet"),
		Favorited: c.Query("favorited"),
		Search:    c.Query("search"),
		Sort:      c.Query("sort"),
		Order:     c.Query("order"),
		Page:      page,
		Limit:     limit,
	}

	notes, total, err := h.notesService.ListNotes(c.Request.Context(), user.ID, opts)
	if err != nil {
		c.Error(err)
		return
	}

	utils.SuccessWithPagination(c, notes, utils.NewPagination(page, limit, total))
}

// Search ranks the caller's notes by text relevance.
func (h *NoteHandler) Search(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "Invalid API key")
		return
	}

	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		utils.BadRequest(c, "Search query (q) is required")
		return
	}

	page, limit := parsePagination(c)

	notes, total, err := h.notesService.SearchNotes(c.Request.Context(), user.ID, query, page, limit)
	if err != nil {
		c.Error(err)
		return
	}

	utils.SuccessWithPagination(c, notes, utils.NewPagination(page, limit, total))
}

func (h *NoteHandler) Get(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "Invalid API key")
		return
	}

	noteID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	note, err := h.notesService.GetNote(c.Request.Context(), noteID, user.ID)
	if err != nil {
		c.Error(err)
		return
	}

	utils.Success(c, note)
}

func (h *NoteHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "Invalid API key")
		return
	}

	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	req.Normalize()
	if errs := utils.ValidateStruct(&req); errs != nil {
		utils.ValidationFailed(c, errs)
		return
	}

	note, err := h.notesService.CreateNote(c.Request.Context(), &req, user.ID)
	if err != nil {
		c.Error(err)
		return
	}

	utils.TrackNoteOperation("create")
	utils.Created(c, "", note)
}

func (h *NoteHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "Invalid API key")
		return
	}

	noteID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	req.Normalize()
	if errs := validateNoteUpdate(&req); errs != nil {
		utils.ValidationFailed(c, errs)
		return
	}

	note, err := h.notesService.UpdateNote(c.Request.Context(), noteID, user.ID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	utils.Success(c, note)
}

func (h *NoteHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "Invalid API key")
		return
	}

	noteID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.notesService.DeleteNote(c.Request.Context(), noteID, user.ID); err != nil {
		c.Error(err)
		return
	}

	utils.Message(c, "Note deleted successfully")
}

func (h *NoteHandler) ToggleFavorite(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "Invalid API key")
		return
	}

	noteID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	note, err := h.notesService.ToggleFavorite(c.Request.Context(), noteID, user.ID)
	if err != nil {
		c.Error(err)
		return
	}

	utils.TrackNoteOperation("favorite")
	utils.Success(c, note)
}

// validateNoteUpdate layers the update-only rules over the shared
// schema: at least one field, and provided strings cannot be blank.
func validateNoteUpdate(req *dto.UpdateNoteRequest) []string {
	if !req.HasUpdates() {
		return []string{"At least one field is required"}
	}

	errs := utils.ValidateStruct(req)
	if req.Title != nil && *req.Title == "" {
		errs = append(errs, "Title cannot be empty")
	}
	if req.Content != nil && strings.TrimSpace(*req.Content) == "" {
		errs = append(errs, "Content cannot be empty")
	}
	return errs
}

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit
}
