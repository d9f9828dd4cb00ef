package music

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"openmusic/internal/auth"
)

type playlistSongRequest struct {
	SongID string `json:"songId"`
}

func (s *Server) handleAddPlaylistSong(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}
	playlistID := chi.URLParam(r, "id")

	var body playlistSongRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	body.SongID = strings.TrimSpace(body.SongID)
	if body.SongID == "" {
		writeError(w, http.StatusBadRequest, "songId is required")
		return
	}

	if err := s.verifyPlaylistAccess(ctx, playlistID, userID); err != nil {
		s.writeGuardError(w, err, "add playlist song")
		return
	}

	var songID string
	err := s.db.QueryRow(ctx, `SELECT id FROM songs WHERE id = $1`, body.SongID).Scan(&songID)
	if errors.Is(err, pgx.ErrNoRows) {
		writeError(w, http.StatusNotFound, "song not found")
		return
	}
	if err != nil {
		log.Printf("openmusic: add playlist song lookup: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	tag, err := s.db.Exec(ctx, `
		INSERT INTO playlist_songs (playlist_id, song_id)
		VALUES ($1, $2)
		ON CONFLICT (playlist_id, song_id) DO NOTHING
	`, playlistID, body.SongID)
	if err != nil {
		log.Printf("openmusic: add playlist song insert: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	if tag.RowsAffected() == 0 {
		writeError(w, http.StatusConflict, "song already in playlist")
		return
	}

	s.publishEvent(ctx, map[string]any{
		"type": "playlist.song_added",
		"payload": map[string]any{
			"playlistId": playlistID,
			"songId":     body.SongID,
			"userId":     userID,
		},
	})

	writeJSON(w, http.StatusCreated, map[string]string{
		"playlistId": playlistID,
		"songId":     body.SongID,
	})
}

func (s *Server) handleListPlaylistSongs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}
	playlistID := chi.URLParam(r, "id")

	if err := s.verifyPlaylistAccess(ctx, playlistID, userID); err != nil {
		s.writeGuardError(w, err, "list playlist songs")
		return
	}

	var out PlaylistWithSongs
	err := s.db.QueryRow(ctx, `
		SELECT p.id, p.name, u.username
		FROM playlists p
		JOIN users u ON u.id = p.owner_id
		WHERE p.id = $1
	`, playlistID).Scan(&out.ID, &out.Name, &out.Username)
	if errors.Is(err, pgx.ErrNoRows) {
		writeError(w, http.StatusNotFound, "playlist not found")
		return
	}
	if err != nil {
		log.Printf("openmusic: list playlist songs fetch: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	rows, err := s.db.Query(ctx, `
		SELECT s.id, s.title, s.performer
		FROM songs s
		JOIN playlist_songs ps ON ps.song_id = s.id
		WHERE ps.playlist_id = $1
		ORDER BY ps.created_at ASC
	`, playlistID)
	if err != nil {
		log.Printf("openmusic: list playlist songs query: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	defer rows.Close()

	out.Songs = []SongSummary{}
	for rows.Next() {
		var song SongSummary
		if err := rows.Scan(&song.ID, &song.Title, &song.Performer); err != nil {
			log.Printf("openmusic: list playlist songs scan: %v", err)
			writeError(w, http.StatusInternalServerError, "database error")
			return
		}
		out.Songs = append(out.Songs, song)
	}
	if err := rows.Err(); err != nil {
		log.Printf("openmusic: list playlist songs rows: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"playlist": out})
}

func (s *Server) handleDeletePlaylistSong(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}
	playlistID := chi.URLParam(r, "id")

	var body playlistSongRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.SongID == "" {
		writeError(w, http.StatusBadRequest, "songId is required")
		return
	}

	if err := s.verifyPlaylistAccess(ctx, playlistID, userID); err != nil {
		s.writeGuardError(w, err, "delete playlist song")
		return
	}

	tag, err := s.db.Exec(ctx, `
		DELETE FROM playlist_songs
		WHERE playlist_id = $1 AND song_id = $2
	`, playlistID, body.SongID)
	if err != nil {
		log.Printf("openmusic: delete playlist song: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	if tag.RowsAffected() == 0 {
		writeError(w, http.StatusNotFound, "song not in playlist")
		return
	}

	s.publishEvent(ctx, map[string]any{
		"type": "playlist.song_removed",
		"payload": map[string]any{
			"playlistId": playlistID,
			"songId":     body.SongID,
			"userId":     userID,
		},
	})

	w.WriteHeader(http.StatusNoContent)
}
