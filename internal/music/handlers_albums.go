package music

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type albumRequest struct {
	Name string `json:"name"`
	Year int    `json:"year"`
}

func (req *albumRequest) validate() string {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return "name is required"
	}
	if req.Year <= 0 {
		return "year must be a positive number"
	}
	return ""
}

func (s *Server) handleAddAlbum(w http.ResponseWriter, r *http.Request) {
	var req albumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	id := "album-" + uuid.NewString()
	if _, err := s.db.Exec(r.Context(), `
		INSERT INTO albums (id, name, year)
		VALUES ($1, $2, $3)
	`, id, req.Name, req.Year); err != nil {
		log.Printf("openmusic: add album: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"albumId": id})
}

func (s *Server) handleGetAlbum(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	albumID := chi.URLParam(r, "id")

	var a Album
	err := s.db.QueryRow(ctx, `
		SELECT id, name, year, created_at
		FROM albums
		WHERE id = $1
	`, albumID).Scan(&a.ID, &a.Name, &a.Year, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		writeError(w, http.StatusNotFound, "album not found")
		return
	}
	if err != nil {
		log.Printf("openmusic: get album: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, title, performer
		FROM songs
		WHERE album_id = $1
		ORDER BY created_at ASC
	`, albumID)
	if err != nil {
		log.Printf("openmusic: get album songs: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	defer rows.Close()

	songs := []SongSummary{}
	for rows.Next() {
		var song SongSummary
		if err := rows.Scan(&song.ID, &song.Title, &song.Performer); err != nil {
			log.Printf("openmusic: get album songs scan: %v", err)
			writeError(w, http.StatusInternalServerError, "database error")
			return
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		log.Printf("openmusic: get album songs rows: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"album": a,
		"songs": songs,
	})
}

func (s *Server) handlePutAlbum(w http.ResponseWriter, r *http.Request) {
	var req albumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	tag, err := s.db.Exec(r.Context(), `
		UPDATE albums
		SET name = $1, year = $2
		WHERE id = $3
	`, req.Name, req.Year, chi.URLParam(r, "id"))
	if err != nil {
		log.Printf("openmusic: put album: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	if tag.RowsAffected() == 0 {
		writeError(w, http.StatusNotFound, "album not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "album updated"})
}

func (s *Server) handleDeleteAlbum(w http.ResponseWriter, r *http.Request) {
	tag, err := s.db.Exec(r.Context(), `DELETE FROM albums WHERE id = $1`, chi.URLParam(r, "id"))
	if err != nil {
		log.Printf("openmusic: delete album: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	if tag.RowsAffected() == 0 {
		writeError(w, http.StatusNotFound, "album not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
