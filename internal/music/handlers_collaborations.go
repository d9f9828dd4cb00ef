package music

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"openmusic/internal/auth"
)

type collaborationRequest struct {
	PlaylistID string `json:"playlistId"`
	UserID     string `json:"userId"`
}

func (req *collaborationRequest) validate() string {
	req.PlaylistID = strings.TrimSpace(req.PlaylistID)
	req.UserID = strings.TrimSpace(req.UserID)
	if req.PlaylistID == "" || req.UserID == "" {
		return "playlistId and userId are required"
	}
	return ""
}

// handleAddCollaboration grants a user collaborator access to a playlist.
// Only the playlist owner may add collaborators.
func (s *Server) handleAddCollaboration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requesterID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	var body collaborationRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg := body.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	if _, err := s.verifyPlaylistOwner(ctx, body.PlaylistID, requesterID); err != nil {
		s.writeGuardError(w, err, "add collaboration")
		return
	}

	exists, err := s.userExists(ctx, body.UserID)
	if err != nil {
		log.Printf("openmusic: add collaboration user lookup: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	if !exists {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	id := "collab-" + uuid.NewString()
	var insertedID string
	err = s.db.QueryRow(ctx, `
		INSERT INTO collaborations (id, playlist_id, user_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (playlist_id, user_id) DO NOTHING
		RETURNING id
	`, id, body.PlaylistID, body.UserID).Scan(&insertedID)
	if errors.Is(err, pgx.ErrNoRows) {
		writeError(w, http.StatusConflict, "collaboration already exists")
		return
	}
	if err != nil {
		log.Printf("openmusic: add collaboration insert: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	s.publishEvent(ctx, map[string]any{
		"type": "playlist.collaborator_added",
		"payload": map[string]any{
			"playlistId": body.PlaylistID,
			"userId":     body.UserID,
		},
	})

	writeJSON(w, http.StatusCreated, map[string]string{"collaborationId": insertedID})
}

// handleDeleteCollaboration revokes collaborator access. Allowed for the
// playlist owner and for a collaborator removing themself.
func (s *Server) handleDeleteCollaboration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requesterID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	var body collaborationRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg := body.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	p, err := s.getPlaylist(ctx, body.PlaylistID)
	if err != nil {
		s.writeGuardError(w, err, "delete collaboration")
		return
	}
	if requesterID != p.OwnerID && requesterID != body.UserID {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	tag, err := s.db.Exec(ctx, `
		DELETE FROM collaborations
		WHERE playlist_id = $1 AND user_id = $2
	`, body.PlaylistID, body.UserID)
	if err != nil {
		log.Printf("openmusic: delete collaboration: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	if tag.RowsAffected() == 0 {
		writeError(w, http.StatusNotFound, "collaboration not found")
		return
	}

	s.publishEvent(ctx, map[string]any{
		"type": "playlist.collaborator_removed",
		"payload": map[string]any{
			"playlistId": body.PlaylistID,
			"userId":     body.UserID,
		},
	})

	w.WriteHeader(http.StatusNoContent)
}
