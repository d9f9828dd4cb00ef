package music

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"openmusic/internal/auth"
)

func (s *Server) handleCreatePlaylist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" || len(body.Name) > 200 {
		writeError(w, http.StatusBadRequest, "name must be between 1 and 200 characters")
		return
	}

	id := "playlist-" + uuid.NewString()
	if _, err := s.db.Exec(ctx, `
		INSERT INTO playlists (id, name, owner_id)
		VALUES ($1, $2, $3)
	`, id, body.Name, ownerID); err != nil {
		log.Printf("openmusic: create playlist: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"playlistId": id})
}

func (s *Server) handleListPlaylists(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	// Playlists I own or collaborate on, with the owner's username.
	rows, err := s.db.Query(ctx, `
		SELECT DISTINCT p.id, p.name, u.username, p.created_at
		FROM playlists p
		JOIN users u ON u.id = p.owner_id
		LEFT JOIN collaborations c ON c.playlist_id = p.id AND c.user_id = $1
		WHERE p.owner_id = $1 OR c.user_id IS NOT NULL
		ORDER BY p.created_at DESC
	`, userID)
	if err != nil {
		log.Printf("openmusic: list playlists: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	defer rows.Close()

	playlists := []PlaylistSummary{}
	for rows.Next() {
		var pl PlaylistSummary
		// created_at is selected only because DISTINCT + ORDER BY requires it.
		var createdAt time.Time
		if err := rows.Scan(&pl.ID, &pl.Name, &pl.Username, &createdAt); err != nil {
			log.Printf("openmusic: list playlists scan: %v", err)
			writeError(w, http.StatusInternalServerError, "database error")
			return
		}
		playlists = append(playlists, pl)
	}
	if err := rows.Err(); err != nil {
		log.Printf("openmusic: list playlists rows: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	writeJSON(w, http.StatusOK, playlists)
}

// handleDeletePlaylist removes a playlist. Owner only; collaborators cannot
// delete.
func (s *Server) handleDeletePlaylist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}
	playlistID := chi.URLParam(r, "id")

	if _, err := s.verifyPlaylistOwner(ctx, playlistID, userID); err != nil {
		s.writeGuardError(w, err, "delete playlist")
		return
	}

	if _, err := s.db.Exec(ctx, `DELETE FROM playlists WHERE id = $1`, playlistID); err != nil {
		log.Printf("openmusic: delete playlist: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeGuardError maps guard failures onto HTTP statuses.
func (s *Server) writeGuardError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, ErrPlaylistNotFound):
		writeError(w, http.StatusNotFound, "playlist not found")
	case errors.Is(err, ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	default:
		log.Printf("openmusic: %s: %v", op, err)
		writeError(w, http.StatusInternalServerError, "database error")
	}
}
