package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/parfolio/internal/chains"
	"github.com/jonathan/parfolio/internal/pipeline"
	"github.com/jonathan/parfolio/internal/server/middleware"
	"github.com/jonathan/parfolio/internal/types"
)

// StructureRequest is the body for POST /ai/structure
type StructureRequest struct {
	RawTranscript string `json:"raw_transcript" validate:"required"`
}

// TagRequest is the body for POST /ai/tag
type TagRequest struct {
	Problem string `json:"problem" validate:"required"`
	Action  string `json:"action" validate:"required"`
	Result  string `json:"result" validate:"required"`
}

// TagResponse is the response for POST /ai/tag
type TagResponse struct {
	Tags []types.TagAssignment `json:"tags"`
}

// CoachRequest is the body for POST /ai/coach
type CoachRequest struct {
	FirstName string             `json:"first_name"`
	Problem   string             `json:"problem" validate:"required"`
	Action    string             `json:"action" validate:"required"`
	Result    string             `json:"result" validate:"required"`
	Tags      []string           `json:"tags"`
	Profile   *types.UserProfile `json:"user_profile"`
}

// ProcessRequest is the body for POST /ai/process
type ProcessRequest struct {
	RawTranscript string `json:"raw_transcript" validate:"required"`
}

// CreateStoryRequest is the body for POST /stories
type CreateStoryRequest struct {
	Title   string   `json:"title" validate:"required"`
	Problem string   `json:"problem" validate:"required"`
	Action  string   `json:"action" validate:"required"`
	Result  string   `json:"result" validate:"required"`
	Tags    []string `json:"tags"`
}

// UpdateTagsRequest is the body for PUT /stories/{id}/tags
type UpdateTagsRequest struct {
	Tags []string `json:"tags" validate:"required,min=1"`
}

// decodeAndValidate decodes the JSON body into dst and runs struct validation
func (s *Server) decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if err := s.validate.Struct(dst); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
			ve := validationErrors[0]
			return fmt.Errorf("validation error: %s - %s", ve.Field(), ve.Tag())
		}
		return fmt.Errorf("validation error: invalid request")
	}
	return nil
}

// handleStructure turns a raw transcript into a structured PAR story
func (s *Server) handleStructure(w http.ResponseWriter, r *http.Request) {
	var req StructureRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	structure, err := chains.StructureTranscript(r.Context(), s.client, req.RawTranscript)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), "Failed to process transcript: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, structure)
}

// handleTag assigns 1-3 competency tags to a PAR story
func (s *Server) handleTag(w http.ResponseWriter, r *http.Request) {
	var req TagRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	tags, err := chains.TagStory(r.Context(), s.client, types.PARTriple{
		Problem: req.Problem,
		Action:  req.Action,
		Result:  req.Result,
	})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), "Tagging failed: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, TagResponse{Tags: tags})
}

// handleCoach generates strength/gap/suggestion insights for a PAR story
func (s *Server) handleCoach(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CoachRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.coach.CoachStory(r.Context(), userID, chains.CoachingInput{
		FirstName: req.FirstName,
		PAR: types.PARTriple{
			Problem: req.Problem,
			Action:  req.Action,
			Result:  req.Result,
		},
		Tags:    req.Tags,
		Profile: req.Profile,
	})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), "Coaching failed: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleProcess runs the full transcript-to-coached-story pipeline
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req ProcessRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.processor.Process(r.Context(), pipeline.ProcessOptions{
		UserID:        userID,
		RawTranscript: req.RawTranscript,
	})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), "Processing failed: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleListStories returns the authenticated user's portfolio
func (s *Server) handleListStories(w http.ResponseWriter, r *http.Request) {
	userID, store, ok := s.storyRequest(w, r)
	if !ok {
		return
	}

	stories, err := store.ListStories(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if stories == nil {
		stories = []types.Story{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"stories": stories})
}

// handleGetStory returns one story, scoped to its owner
func (s *Server) handleGetStory(w http.ResponseWriter, r *http.Request) {
	userID, store, ok := s.storyRequest(w, r)
	if !ok {
		return
	}

	story, err := store.GetStory(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, story)
}

// handleCreateStory stores a new story for the authenticated user
func (s *Server) handleCreateStory(w http.ResponseWriter, r *http.Request) {
	userID, store, ok := s.storyRequest(w, r)
	if !ok {
		return
	}

	var req CreateStoryRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := store.CreateStory(r.Context(), types.Story{
		UserID:  userID,
		Title:   req.Title,
		Problem: req.Problem,
		Action:  req.Action,
		Result:  req.Result,
		Tags:    req.Tags,
	})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, map[string]string{"id": id})
}

// handleUpdateStoryTags replaces a story's tags
func (s *Server) handleUpdateStoryTags(w http.ResponseWriter, r *http.Request) {
	userID, store, ok := s.storyRequest(w, r)
	if !ok {
		return
	}

	var req UpdateTagsRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.UpdateStoryTags(r.Context(), userID, r.PathValue("id"), req.Tags); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "updated"})
}

// handleGetProfile returns the authenticated user's career profile
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, store, ok := s.storyRequest(w, r)
	if !ok {
		return
	}

	profile, err := store.GetProfile(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, profile)
}

// handleUpsertProfile creates or updates the authenticated user's profile
func (s *Server) handleUpsertProfile(w http.ResponseWriter, r *http.Request) {
	userID, store, ok := s.storyRequest(w, r)
	if !ok {
		return
	}

	var profile types.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := store.UpsertProfile(r.Context(), userID, profile); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "updated"})
}

// storyRequest extracts the authenticated user and checks that storage is
// configured
func (s *Server) storyRequest(w http.ResponseWriter, r *http.Request) (string, storyStore, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return "", nil, false
	}
	if s.stories == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "story storage is not configured")
		return "", nil, false
	}
	return userID, s.stories, true
}
